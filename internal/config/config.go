package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"gopkg.in/yaml.v3"

	"github.com/dkoosis/packrun/internal/build"
	"github.com/dkoosis/packrun/internal/dashboard"
	"github.com/dkoosis/packrun/internal/locate"
)

const (
	// LocalFileName is the project-level config file, looked up in the working directory.
	LocalFileName = ".packrun.yaml"

	appName = "packrun"

	// MaxDepth bounds the search depth accepted from any source.
	MaxDepth = 16

	// DefaultMaxLineLength caps one line of tool output, in bytes.
	DefaultMaxLineLength = 1 * 1024 * 1024
)

// AppConfig is the application's configuration as read from YAML.
type AppConfig struct {
	Root          string      `yaml:"root"`
	Depth         int         `yaml:"depth"`
	WorkDir       string      `yaml:"work_dir"`
	Tool          build.Tool  `yaml:"tool"`
	Jobs          []build.Job `yaml:"jobs"`
	UsageNotes    []string    `yaml:"usage_notes"`
	NoColor       bool        `yaml:"no_color"`
	Debug         bool        `yaml:"debug"`
	MaxLineLength int         `yaml:"max_line_length"` // In bytes
	MetricsFile   string      `yaml:"metrics_file"`

	Theme dashboard.DashboardTheme `yaml:"theme"`

	fileKeys map[string]bool // keys present in the loaded file, "tool.command" style for nested ones
}

// DefaultJobs is the canonical job set: the overlay application, its settings
// editor, and the magnifier.
func DefaultJobs() []build.Job {
	return []build.Job{
		{Source: "overlay.py", Output: "Overlay", Label: "Overlay application"},
		{Source: "settings_gui.py", Output: "OverlaySettings", Label: "Settings editor"},
		{Source: "magnifier.py", Output: "Magnifier", Label: "Magnifier"},
	}
}

// DefaultUsageNotes are printed after the canonical job set builds cleanly.
func DefaultUsageNotes() []string {
	suffix := build.PlatformExeSuffix()
	dist := build.DefaultDistDir
	return []string{
		"Usage:",
		fmt.Sprintf("  %s starts the overlay.", filepath.Join(dist, "Overlay"+suffix)),
		fmt.Sprintf("  %s edits its settings.", filepath.Join(dist, "OverlaySettings"+suffix)),
		fmt.Sprintf("  %s runs the magnifier on its own.", filepath.Join(dist, "Magnifier"+suffix)),
		"Keep all three executables in the same directory.",
	}
}

// Defaults returns the built-in configuration.
func Defaults() *AppConfig {
	return &AppConfig{
		Depth:         locate.DefaultDepth,
		Tool:          build.DefaultTool(),
		Jobs:          DefaultJobs(),
		UsageNotes:    DefaultUsageNotes(),
		MaxLineLength: DefaultMaxLineLength,
		Theme:         *dashboard.DefaultDashboardTheme(),
	}
}

// LoadConfig reads the YAML file at path over the defaults. An empty path
// selects the first file found by getConfigPath; finding none is not an error.
// It returns the config and the file it came from ("" for defaults only).
func LoadConfig(path string) (*AppConfig, string, error) {
	appCfg := Defaults()

	if path == "" {
		path = getConfigPath(xdg.ConfigHome)
		if path == "" {
			return appCfg, "", nil
		}
	}

	yamlFile, err := os.ReadFile(path)
	if err != nil {
		return nil, path, fmt.Errorf("reading config file %s: %w", path, err)
	}

	// Fields absent from the file keep their defaults.
	if err := yaml.Unmarshal(yamlFile, appCfg); err != nil {
		return nil, path, fmt.Errorf("parsing config file %s: %w", path, err)
	}
	var raw map[string]any
	if err := yaml.Unmarshal(yamlFile, &raw); err != nil {
		return nil, path, fmt.Errorf("parsing config file %s: %w", path, err)
	}
	appCfg.fileKeys = presentKeys(raw)

	// The default notes describe the default jobs only.
	if appCfg.InFile("jobs") && !appCfg.InFile("usage_notes") {
		appCfg.UsageNotes = nil
	}
	return appCfg, path, nil
}

// InFile reports whether the loaded file set key. Nested keys are joined with
// a dot, e.g. "tool.command".
func (c *AppConfig) InFile(key string) bool {
	return c.fileKeys[key]
}

func presentKeys(raw map[string]any) map[string]bool {
	keys := make(map[string]bool, len(raw))
	for k, v := range raw {
		keys[k] = true
		if nested, ok := v.(map[string]any); ok {
			for nk := range nested {
				keys[k+"."+nk] = true
			}
		}
	}
	return keys
}

// getConfigPath tries to find the config file.
// It checks the local directory first, then the XDG config dir under configHome.
func getConfigPath(configHome string) string {
	if _, err := os.Stat(LocalFileName); err == nil {
		return LocalFileName
	}
	if configHome == "" {
		return ""
	}
	xdgPath := filepath.Join(configHome, appName, "config.yaml")
	if _, err := os.Stat(xdgPath); err == nil {
		return xdgPath
	}
	return ""
}

// Validate reports the first invalid setting.
func (c *AppConfig) Validate() error {
	if c.Depth < 0 || c.Depth > MaxDepth {
		return fmt.Errorf("depth must be between 0 and %d, got: %d", MaxDepth, c.Depth)
	}
	if c.Tool.Command == "" {
		return errors.New("tool.command must not be empty")
	}
	if c.Tool.Timeout < 0 {
		return fmt.Errorf("tool.timeout must not be negative, got: %s", c.Tool.Timeout)
	}
	if c.MaxLineLength <= 0 {
		return fmt.Errorf("max_line_length must be positive, got: %d", c.MaxLineLength)
	}
	seen := make(map[string]bool, len(c.Jobs))
	for i, job := range c.Jobs {
		if job.Source == "" {
			return fmt.Errorf("jobs[%d]: source must not be empty", i)
		}
		if job.Output == "" {
			return fmt.Errorf("jobs[%d]: output must not be empty", i)
		}
		if seen[job.Output] {
			return fmt.Errorf("jobs[%d]: duplicate output name %q", i, job.Output)
		}
		seen[job.Output] = true
	}
	return nil
}

// SelectJobs returns the configured jobs whose output names appear in names,
// in configured order. No names selects every job.
func (c *AppConfig) SelectJobs(names []string) ([]build.Job, error) {
	if len(names) == 0 {
		return append([]build.Job(nil), c.Jobs...), nil
	}
	want := make(map[string]bool, len(names))
	for _, n := range names {
		want[n] = true
	}
	var jobs []build.Job
	for _, job := range c.Jobs {
		if want[job.Output] {
			jobs = append(jobs, job)
			delete(want, job.Output)
		}
	}
	for _, n := range names {
		if want[n] {
			return nil, fmt.Errorf("unknown output %q", n)
		}
	}
	return jobs, nil
}
