package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// CliFlags holds the values of command-line flags.
type CliFlags struct {
	ConfigPath string
	Root       string
	Depth      int
	Tool       string
	NoClean    bool
	Timeout    time.Duration
	NoColor    bool
	Debug      bool

	// Flags to track if they were explicitly set by the user
	RootSet    bool
	DepthSet   bool
	ToolSet    bool
	NoCleanSet bool
	TimeoutSet bool
	NoColorSet bool
	DebugSet   bool
}

// ResolvedConfig holds the final configuration after applying all priority rules.
type ResolvedConfig struct {
	*AppConfig

	// File is the YAML file that was read, empty when only defaults apply.
	File string

	// Resolution metadata (for debugging): "cli", "env", "file", or "default".
	RootSource    string
	DepthSource   string
	ToolSource    string
	NoColorSource string
}

// ResolveConfig resolves configuration from all sources with explicit priority order.
//
// Resolution order:
//  1. Load .env into the process environment (existing variables win)
//  2. Load base config from YAML (or defaults)
//  3. Apply environment variables
//  4. Apply CLI flags (highest priority)
//  5. Validate
func ResolveConfig(cliFlags CliFlags) (*ResolvedConfig, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("loading .env: %w", err)
	}

	appCfg, file, err := LoadConfig(cliFlags.ConfigPath)
	if err != nil {
		return nil, err
	}

	fileOr := func(set bool) string {
		if set {
			return "file"
		}
		return "default"
	}
	resolved := &ResolvedConfig{
		AppConfig:     appCfg,
		File:          file,
		RootSource:    fileOr(appCfg.InFile("root")),
		DepthSource:   fileOr(appCfg.InFile("depth")),
		ToolSource:    fileOr(appCfg.InFile("tool.command")),
		NoColorSource: fileOr(appCfg.InFile("no_color")),
	}

	if err := applyEnv(resolved); err != nil {
		return nil, err
	}
	applyFlags(resolved, cliFlags)

	if err := resolved.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return resolved, nil
}

func applyEnv(r *ResolvedConfig) error {
	if v := os.Getenv("PACKRUN_ROOT"); v != "" {
		r.Root = v
		r.RootSource = "env"
	}
	if v := os.Getenv("PACKRUN_DEPTH"); v != "" {
		depth, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("PACKRUN_DEPTH: %w", err)
		}
		r.Depth = depth
		r.DepthSource = "env"
	}
	if v := os.Getenv("PACKRUN_TOOL"); v != "" {
		r.Tool.Command = v
		r.ToolSource = "env"
	}
	if noClean := getEnvBool("PACKRUN_NO_CLEAN"); noClean != nil {
		r.Tool.Clean = !*noClean
	}
	if v := os.Getenv("PACKRUN_TIMEOUT"); v != "" {
		timeout, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("PACKRUN_TIMEOUT: %w", err)
		}
		r.Tool.Timeout = timeout
	}
	if noColor := getEnvBool("PACKRUN_NO_COLOR"); noColor != nil {
		r.NoColor = *noColor
		r.NoColorSource = "env"
	} else if os.Getenv("NO_COLOR") != "" {
		r.NoColor = true
		r.NoColorSource = "env"
	}
	if os.Getenv("PACKRUN_DEBUG") != "" {
		r.Debug = true
	}
	return nil
}

func applyFlags(r *ResolvedConfig, f CliFlags) {
	if f.RootSet {
		r.Root = f.Root
		r.RootSource = "cli"
	}
	if f.DepthSet {
		r.Depth = f.Depth
		r.DepthSource = "cli"
	}
	if f.ToolSet {
		r.Tool.Command = f.Tool
		r.ToolSource = "cli"
	}
	if f.NoCleanSet {
		r.Tool.Clean = !f.NoClean
	}
	if f.TimeoutSet {
		r.Tool.Timeout = f.Timeout
	}
	if f.NoColorSet {
		r.NoColor = f.NoColor
		r.NoColorSource = "cli"
	}
	if f.DebugSet {
		r.Debug = f.Debug
	}
}

// getEnvBool reads a boolean from environment variables, trying multiple keys.
// Returns nil if none are set, or a pointer to the boolean value.
func getEnvBool(keys ...string) *bool {
	for _, key := range keys {
		if val := os.Getenv(key); val != "" {
			if b, err := strconv.ParseBool(val); err == nil {
				return &b
			}
		}
	}
	return nil
}
