package config

import (
	"bytes"
	"os"

	"github.com/natefinch/atomic"
	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/appshell/internal/foundation/errors"
	"git.home.luguber.info/inful/appshell/internal/retry"
)

// Example returns the configuration written by Init.
func Example() *Config {
	maxRetries := 2
	return &Config{
		Skeleton: SkeletonConfig{
			InputDir: "./layout_data",
			Watch: WatchConfig{
				RetryBackoff:      retry.ModeLinear,
				RetryInitialDelay: "100ms",
				RetryMaxDelay:     "1s",
				MaxRetries:        &maxRetries,
			},
		},
		Stamp:    StampConfig{Dir: DefaultChangesDir, Git: true},
		Linkify:  LinkifyConfig{Owner: DefaultOwner, Repo: DefaultRepo},
		Logging:  LoggingConfig{Level: LogLevelInfo, Format: LogFormatText},
	}
}

// Init writes an example configuration file to configPath.
func Init(configPath string, force bool) error {
	if _, err := os.Stat(configPath); err == nil && !force {
		return errors.NewError(errors.CategoryAlreadyExists, "configuration file already exists: "+configPath+" (use --force to overwrite)").
			WithContext("path", configPath).
			Build()
	}

	var buf bytes.Buffer
	buf.WriteString("# appshell configuration. ${VAR} references are expanded from the environment.\n")
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(Example()); err != nil {
		return errors.WrapError(err, errors.CategoryInternal, "failed to marshal example config").Build()
	}
	if err := enc.Close(); err != nil {
		return errors.WrapError(err, errors.CategoryInternal, "failed to marshal example config").Build()
	}

	if err := atomic.WriteFile(configPath, &buf); err != nil {
		return errors.WrapError(err, errors.CategoryFileSystem, "failed to write config file").
			WithContext("path", configPath).
			Build()
	}
	return nil
}
