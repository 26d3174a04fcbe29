// Package config defines the apiref configuration record and its loading
// rules: YAML file, optional .env overlay, per-domain defaults and
// validation. All effects of the configuration are named, typed fields;
// components receive the record (or a sub-record) explicitly at
// construction, never through package-level state.
package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	aerrors "git.home.luguber.info/inful/apiref/internal/errors"
	"git.home.luguber.info/inful/apiref/internal/fsio"
)

// Config is the root configuration record.
type Config struct {
	Project ProjectConfig `yaml:"project"`
	Source  SourceConfig  `yaml:"source"`
	Output  OutputConfig  `yaml:"output"`
	Build   BuildConfig   `yaml:"build"`
	Site    SiteConfig    `yaml:"site"`
	History HistoryConfig `yaml:"history"`
	Logging LoggingConfig `yaml:"logging"`
}

// ProjectConfig identifies the documented project.
type ProjectConfig struct {
	// Name is the published package name examples import from; the
	// verifier rewrites `from '<name>'` specifiers to the local tree.
	Name string `yaml:"name"`
	// SourceDir is the directory examples are rewritten to point at.
	SourceDir string `yaml:"sourceDir"`
}

// SourceConfig selects the files handed to the parser.
type SourceConfig struct {
	Globs   []string `yaml:"globs"`
	Exclude []string `yaml:"exclude"`
}

// OutputConfig locates the generated document set.
type OutputConfig struct {
	Dir string `yaml:"dir"`
}

// BuildConfig tunes pipeline execution.
type BuildConfig struct {
	// Concurrency bounds simultaneous file operations: a positive
	// integer, "auto" (ambient parallelism) or "unbounded".
	Concurrency string `yaml:"concurrency"`
	// TypeCheck controls example verification.
	TypeCheck TypeCheckConfig `yaml:"typeCheck"`
}

// TypeCheckConfig configures the external type-checker invocation.
type TypeCheckConfig struct {
	Enabled *bool `yaml:"enabled"`
	// Command is the checker executable base name; the platform-specific
	// suffix is resolved at spawn time.
	Command string `yaml:"command"`
	// CompilerOptions is written verbatim into the synthesized checker
	// configuration file.
	CompilerOptions map[string]any `yaml:"compilerOptions"`
}

// SiteConfig carries the documentation-site fields patched into _config.yml.
type SiteConfig struct {
	Title         string `yaml:"title"`
	Theme         string `yaml:"theme"`
	SearchEnabled *bool  `yaml:"searchEnabled"`
	// Homepage is the project URL linked from the site's aux navigation.
	Homepage string `yaml:"homepage"`
}

// HistoryConfig enables the run-report store when Path is set.
type HistoryConfig struct {
	Path string `yaml:"path"`
}

// LoggingConfig controls slog setup.
type LoggingConfig struct {
	Level  LogLevel  `yaml:"level"`
	Format LogFormat `yaml:"format"`
}

// TypeCheckEnabled resolves the tri-state enabled flag (default true).
func (c TypeCheckConfig) TypeCheckEnabled() bool {
	return c.Enabled == nil || *c.Enabled
}

// SearchOn resolves the tri-state search flag (default true).
func (s SiteConfig) SearchOn() bool {
	return s.SearchEnabled == nil || *s.SearchEnabled
}

// Workers parses the concurrency setting into a worker bound.
func (b BuildConfig) Workers() (fsio.Workers, error) {
	switch strings.TrimSpace(strings.ToLower(b.Concurrency)) {
	case "", "auto":
		return fsio.WorkersAmbient, nil
	case "unbounded":
		return fsio.WorkersUnbounded, nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(b.Concurrency))
	if err != nil || n < 1 {
		return 0, aerrors.New(aerrors.CategoryConfig, aerrors.SeverityFatal,
			"build.concurrency must be a positive integer, \"auto\" or \"unbounded\"").
			WithContext("field", "build.concurrency")
	}
	return fsio.Workers(n), nil
}

// Load reads, overlays, defaults and validates the configuration at path.
// A `.env` file next to the working directory is applied first so that
// APIREF_* environment variables can override file values.
func Load(path string) (*Config, error) {
	_ = godotenv.Load() // optional; absence is not an error

	data, err := os.ReadFile(path) // #nosec G304 -- path is the user-supplied -c flag
	if err != nil {
		if os.IsNotExist(err) {
			return nil, aerrors.ConfigNotFound(path)
		}
		return nil, aerrors.ConfigInvalid(err, path)
	}

	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, aerrors.ConfigInvalid(err, path)
	}

	applyEnvOverrides(cfg)

	if err := ApplyDefaults(cfg); err != nil {
		return nil, err
	}
	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyEnvOverrides lets a handful of deployment-sensitive fields be set
// from the environment without editing the file.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("APIREF_PROJECT_NAME"); v != "" {
		cfg.Project.Name = v
	}
	if v := os.Getenv("APIREF_OUTPUT_DIR"); v != "" {
		cfg.Output.Dir = v
	}
	if v := os.Getenv("APIREF_CONCURRENCY"); v != "" {
		cfg.Build.Concurrency = v
	}
	if v := os.Getenv("APIREF_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = NormalizeLogLevel(v)
	}
	if v := os.Getenv("APIREF_HISTORY_PATH"); v != "" {
		cfg.History.Path = v
	}
}

// Validate checks cross-field requirements after defaults are applied.
func Validate(cfg *Config) error {
	if strings.TrimSpace(cfg.Project.Name) == "" {
		return aerrors.ConfigRequired("project.name")
	}
	if len(cfg.Source.Globs) == 0 {
		return aerrors.ConfigRequired("source.globs")
	}
	if _, err := cfg.Build.Workers(); err != nil {
		return err
	}
	return nil
}
