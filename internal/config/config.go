// Package config loads the optional appshell.yaml configuration file.
package config

import (
	stderrors "errors"
	"io/fs"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/appshell/internal/foundation/errors"
)

const (
	// DefaultPath is read when no configuration file is named explicitly.
	DefaultPath = "appshell.yaml"
	// LayoutDirEnv overrides skeleton.input_dir.
	LayoutDirEnv = "APPSHELL_LAYOUT_DIR"

	DefaultChangesDir = "./__changes"
	DefaultOwner      = "hiowenluke"
	DefaultRepo       = "headshot-ai"
)

// Config is the top-level configuration document.
type Config struct {
	Skeleton SkeletonConfig `yaml:"skeleton"`
	Stamp    StampConfig    `yaml:"stamp"`
	Linkify  LinkifyConfig  `yaml:"linkify"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// SkeletonConfig configures skeleton generation.
type SkeletonConfig struct {
	// InputDir holds the layout JSON files. Empty means the executable's directory.
	InputDir string      `yaml:"input_dir,omitempty"`
	Watch    WatchConfig `yaml:"watch,omitempty"`
}

// StampConfig configures change-note stamping.
type StampConfig struct {
	Dir string `yaml:"dir"`
	Git bool   `yaml:"git,omitempty"`
}

// LinkifyConfig names the repository commit links point at.
type LinkifyConfig struct {
	Owner string `yaml:"owner"`
	Repo  string `yaml:"repo"`
}

// LoggingConfig controls diagnostic output on stderr.
type LoggingConfig struct {
	Level  LogLevel  `yaml:"level"`
	Format LogFormat `yaml:"format"`
}

// Default returns a configuration with every default applied.
func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

// Load reads the configuration at configPath. An empty configPath reads DefaultPath and
// falls back to defaults when that file does not exist; a named file must exist.
func Load(configPath string) (*Config, error) {
	loadEnvFiles()

	explicit := configPath != ""
	if !explicit {
		configPath = DefaultPath
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- path comes from the command line
	if err != nil {
		if !stderrors.Is(err, fs.ErrNotExist) {
			return nil, errors.WrapError(err, errors.CategoryConfig, "failed to read config file").
				WithContext("path", configPath).
				Fatal().
				Build()
		}
		if explicit {
			return nil, errors.ConfigError("configuration file not found: " + configPath).
				WithContext("path", configPath).
				Build()
		}
		cfg := Default()
		applyEnvOverrides(cfg)
		return cfg, nil
	}

	cfg, err := Parse(data)
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryConfig, "invalid configuration").
			WithContext("path", configPath).
			Fatal().
			Build()
	}
	return cfg, nil
}

// Parse decodes a configuration document after expanding ${VAR} references, then
// normalizes, defaults and validates it.
func Parse(data []byte) (*Config, error) {
	expanded := os.ExpandEnv(string(data))

	var cfg Config
	if strings.TrimSpace(expanded) != "" {
		if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
			return nil, errors.WrapError(err, errors.CategoryParse, "failed to unmarshal config").Build()
		}
	}

	if err := normalize(&cfg); err != nil {
		return nil, err
	}
	applyDefaults(&cfg)
	applyEnvOverrides(&cfg)
	if err := validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.Stamp.Dir == "" {
		cfg.Stamp.Dir = DefaultChangesDir
	}
	if cfg.Linkify.Owner == "" {
		cfg.Linkify.Owner = DefaultOwner
	}
	if cfg.Linkify.Repo == "" {
		cfg.Linkify.Repo = DefaultRepo
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = LogLevelInfo
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = LogFormatText
	}
}

func applyEnvOverrides(cfg *Config) {
	if dir := strings.TrimSpace(os.Getenv(LayoutDirEnv)); dir != "" {
		cfg.Skeleton.InputDir = dir
	}
}

// validate checks that owner and repo are single URL path segments and that the watch
// retry settings form a usable policy.
func validate(cfg *Config) error {
	if _, err := cfg.Skeleton.Watch.RetryPolicy(); err != nil {
		return err
	}

	fields := []struct{ name, value string }{
		{"linkify.owner", cfg.Linkify.Owner},
		{"linkify.repo", cfg.Linkify.Repo},
	}
	for _, f := range fields {
		if strings.ContainsAny(f.value, "/ \t") {
			return errors.ValidationError("must be a single path segment: " + f.name).
				WithContext("field", f.name).
				WithContext("value", f.value).
				Build()
		}
	}
	return nil
}
