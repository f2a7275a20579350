// Package projectconfig provides the ProjectConfig struct and loader for
// .templatecheck.yaml project-level configuration files.
package projectconfig

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ConfigFileName is the project configuration file searched for by Load.
const ConfigFileName = ".templatecheck.yaml"

// Default values for project configuration, referenced by New().
const (
	DefaultMode       = "quick"
	DefaultPython     = "python3"
	DefaultResultsDir = "."

	DefaultSyntaxTimeoutSec    = 10
	DefaultImportsTimeoutSec   = 30
	DefaultExecutionTimeoutSec = 600
)

// TimeoutsConfig holds per-check subprocess deadlines in seconds.
type TimeoutsConfig struct {
	SyntaxSec    int `yaml:"syntax_sec,omitempty"`
	ImportsSec   int `yaml:"imports_sec,omitempty"`
	ExecutionSec int `yaml:"execution_sec,omitempty"`
}

// CheckConfig describes one checker in a configured pipeline. Params are
// decoded by the checks factory.
type CheckConfig struct {
	Kind   string         `yaml:"kind"`
	Params map[string]any `yaml:"params,omitempty"`
}

// ProjectConfig is the top-level configuration loaded from .templatecheck.yaml.
type ProjectConfig struct {
	// Mode selects quick or full test mode.
	Mode string `yaml:"mode,omitempty"`
	// Python is the interpreter binary used for subprocess checks.
	Python string `yaml:"python,omitempty"`
	// ResultsDir is where test_results_<timestamp>.json files are written.
	ResultsDir string `yaml:"results_dir,omitempty"`
	// Registry points to a registry YAML file. Empty means the compiled-in
	// default registry.
	Registry string         `yaml:"registry,omitempty"`
	Timeouts TimeoutsConfig `yaml:"timeouts,omitempty"`
	// Checks overrides the default checklist pipeline when non-empty.
	Checks []CheckConfig `yaml:"checks,omitempty"`
}

// New returns a ProjectConfig with all hard-coded defaults populated.
func New() *ProjectConfig {
	return &ProjectConfig{
		Mode:       DefaultMode,
		Python:     DefaultPython,
		ResultsDir: DefaultResultsDir,
		Timeouts: TimeoutsConfig{
			SyntaxSec:    DefaultSyntaxTimeoutSec,
			ImportsSec:   DefaultImportsTimeoutSec,
			ExecutionSec: DefaultExecutionTimeoutSec,
		},
	}
}

// Load finds .templatecheck.yaml by walking up from startDir (max 10
// levels), unmarshals it, and fills in missing fields with defaults.
// If no config file is found, returns defaults with a nil error.
// Real I/O errors (e.g. permission denied) are returned to the caller.
func Load(startDir string) (*ProjectConfig, error) {
	cfg := New()

	data, path, err := findConfigFile(startDir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			slog.Debug("no project config found, using defaults", "start_dir", startDir)
			return cfg, nil // no file found → return defaults
		}
		return nil, fmt.Errorf("loading %s: %w", ConfigFileName, err)
	}

	var fileCfg ProjectConfig
	if err := yaml.Unmarshal(data, &fileCfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", ConfigFileName, err)
	}

	mergeConfig(cfg, &fileCfg)
	slog.Debug("project config loaded", "path", path, "mode", cfg.Mode)
	return cfg, nil
}

// findConfigFile walks up from dir looking for the config file (max 10
// levels) and returns its content and path. Returns os.ErrNotExist if none
// is found. Propagates real I/O errors (e.g. permission denied) instead of
// silently swallowing them.
func findConfigFile(dir string) ([]byte, string, error) {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return nil, "", fmt.Errorf("resolving path %q: %w", dir, err)
	}
	dir = absDir

	for i := 0; i < 10; i++ {
		p := filepath.Join(dir, ConfigFileName)
		data, err := os.ReadFile(p)
		if err == nil {
			return data, p, nil
		}
		if !errors.Is(err, os.ErrNotExist) {
			return nil, "", fmt.Errorf("reading %q: %w", p, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break // reached filesystem root
		}
		dir = parent
	}
	return nil, "", os.ErrNotExist
}

// mergeConfig overlays non-zero values from src onto dst.
func mergeConfig(dst, src *ProjectConfig) {
	if src.Mode != "" {
		dst.Mode = src.Mode
	}
	if src.Python != "" {
		dst.Python = src.Python
	}
	if src.ResultsDir != "" {
		dst.ResultsDir = src.ResultsDir
	}
	if src.Registry != "" {
		dst.Registry = src.Registry
	}
	if src.Timeouts.SyntaxSec != 0 {
		dst.Timeouts.SyntaxSec = src.Timeouts.SyntaxSec
	}
	if src.Timeouts.ImportsSec != 0 {
		dst.Timeouts.ImportsSec = src.Timeouts.ImportsSec
	}
	if src.Timeouts.ExecutionSec != 0 {
		dst.Timeouts.ExecutionSec = src.Timeouts.ExecutionSec
	}
	if len(src.Checks) > 0 {
		dst.Checks = src.Checks
	}
}
