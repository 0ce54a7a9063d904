package config

import (
	"log/slog"

	"git.home.luguber.info/inful/appshell/internal/foundation/errors"
	"git.home.luguber.info/inful/appshell/internal/foundation/normalization"
)

// LogLevel enumerates supported logging levels.
type LogLevel string

const (
	LogLevelDebug LogLevel = "debug"
	LogLevelInfo  LogLevel = "info"
	LogLevelWarn  LogLevel = "warn"
	LogLevelError LogLevel = "error"
)

var logLevelNormalizer = normalization.NewNormalizer(map[string]LogLevel{
	"debug":   LogLevelDebug,
	"info":    LogLevelInfo,
	"warn":    LogLevelWarn,
	"warning": LogLevelWarn,
	"error":   LogLevelError,
}, LogLevelInfo)

func NormalizeLogLevel(raw string) LogLevel {
	return logLevelNormalizer.Normalize(raw)
}

// SlogLevel maps the level onto slog.
func (l LogLevel) SlogLevel() slog.Level {
	switch l {
	case LogLevelDebug:
		return slog.LevelDebug
	case LogLevelWarn:
		return slog.LevelWarn
	case LogLevelError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// LogFormat enumerates supported log output formats.
type LogFormat string

const (
	LogFormatJSON LogFormat = "json"
	LogFormatText LogFormat = "text"
)

var logFormatNormalizer = normalization.NewNormalizer(map[string]LogFormat{
	"json": LogFormatJSON,
	"text": LogFormatText,
}, LogFormatText)

func NormalizeLogFormat(raw string) LogFormat {
	return logFormatNormalizer.Normalize(raw)
}

// normalize case-folds enumerations and rejects unknown values.
func normalize(cfg *Config) error {
	level, err := logLevelNormalizer.NormalizeWithError(string(cfg.Logging.Level))
	if err != nil {
		return errors.WrapError(err, errors.CategoryValidation, "logging.level").Build()
	}
	format, err := logFormatNormalizer.NormalizeWithError(string(cfg.Logging.Format))
	if err != nil {
		return errors.WrapError(err, errors.CategoryValidation, "logging.format").Build()
	}
	backoff, err := retryModeNormalizer.NormalizeWithError(string(cfg.Skeleton.Watch.RetryBackoff))
	if err != nil {
		return errors.WrapError(err, errors.CategoryValidation, "skeleton.watch.retry_backoff").Build()
	}
	cfg.Logging.Level = level
	cfg.Logging.Format = format
	cfg.Skeleton.Watch.RetryBackoff = backoff
	return nil
}
