package build

import (
	"path/filepath"
	"runtime"
	"time"
)

// DefaultDistDir is where the packaging tool writes artifacts, relative to
// the directory it runs in.
const DefaultDistDir = "dist"

// Tool describes the external packaging command and its argument template.
type Tool struct {
	Command     string            `yaml:"command"`
	VersionArgs []string          `yaml:"version_args"`
	Clean       bool              `yaml:"clean"`      // wipe intermediate caches before each build
	DistDir     string            `yaml:"dist_dir"`   // artifact directory relative to the work dir
	ExeSuffix   string            `yaml:"exe_suffix"` // appended to the output name
	ExtraArgs   []string          `yaml:"extra_args"` // inserted before the source path
	Env         map[string]string `yaml:"env"`
	Timeout     time.Duration     `yaml:"timeout"` // per job; zero means no limit
}

// DefaultTool returns the PyInstaller configuration.
func DefaultTool() Tool {
	return Tool{
		Command:     "pyinstaller",
		VersionArgs: []string{"--version"},
		Clean:       true,
		DistDir:     DefaultDistDir,
		ExeSuffix:   PlatformExeSuffix(),
	}
}

// PlatformExeSuffix returns the executable suffix for the running platform.
func PlatformExeSuffix() string {
	if runtime.GOOS == "windows" {
		return ".exe"
	}
	return ""
}

// Args returns the tool arguments for one job: single-file output, no console
// window, optional clean, explicit name, then the source as the only positional
// argument.
func (t Tool) Args(job Job, source string) []string {
	args := []string{"--onefile", "--noconsole"}
	if t.Clean {
		args = append(args, "--clean")
	}
	if dist := t.distDir(); dist != DefaultDistDir {
		args = append(args, "--distpath", dist)
	}
	args = append(args, "--name", job.Output)
	args = append(args, t.ExtraArgs...)
	return append(args, source)
}

// ArtifactPath returns where the job's artifact is expected after a build run
// from workDir.
func (t Tool) ArtifactPath(workDir string, job Job) string {
	dist := t.distDir()
	if !filepath.IsAbs(dist) {
		dist = filepath.Join(workDir, dist)
	}
	return filepath.Join(dist, job.Output+t.ExeSuffix)
}

func (t Tool) distDir() string {
	if t.DistDir == "" {
		return DefaultDistDir
	}
	return t.DistDir
}
