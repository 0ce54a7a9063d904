package config

import (
	"time"

	"git.home.luguber.info/inful/appshell/internal/foundation/errors"
	"git.home.luguber.info/inful/appshell/internal/foundation/normalization"
	"git.home.luguber.info/inful/appshell/internal/retry"
)

// WatchConfig tunes how watch mode retries a layout file that fails to regenerate,
// usually because an editor is still writing it. Unset fields keep retry.DefaultPolicy.
type WatchConfig struct {
	RetryBackoff      retry.Mode `yaml:"retry_backoff,omitempty"`
	RetryInitialDelay string     `yaml:"retry_initial_delay,omitempty"`
	RetryMaxDelay     string     `yaml:"retry_max_delay,omitempty"`
	MaxRetries        *int       `yaml:"max_retries,omitempty"`
}

var retryModeNormalizer = normalization.NewNormalizer(map[string]retry.Mode{
	"fixed":       retry.ModeFixed,
	"linear":      retry.ModeLinear,
	"exponential": retry.ModeExponential,
}, "")

// RetryPolicy builds the regeneration policy. Delays use time.ParseDuration syntax.
func (w WatchConfig) RetryPolicy() (retry.Policy, error) {
	p := retry.DefaultPolicy()
	if w.RetryBackoff != "" {
		p.Mode = w.RetryBackoff
	}
	var err error
	if w.RetryInitialDelay != "" {
		if p.Initial, err = parseDelay("skeleton.watch.retry_initial_delay", w.RetryInitialDelay); err != nil {
			return retry.Policy{}, err
		}
	}
	if w.RetryMaxDelay != "" {
		if p.Max, err = parseDelay("skeleton.watch.retry_max_delay", w.RetryMaxDelay); err != nil {
			return retry.Policy{}, err
		}
	}
	if w.MaxRetries != nil {
		p.MaxRetries = *w.MaxRetries
	}
	if err := p.Validate(); err != nil {
		return retry.Policy{}, errors.WrapError(err, errors.CategoryValidation, "skeleton.watch").Build()
	}
	return retry.NewPolicy(p.Mode, p.Initial, p.Max, p.MaxRetries), nil
}

func parseDelay(field, raw string) (time.Duration, error) {
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, errors.WrapError(err, errors.CategoryValidation, field).
			WithContext("value", raw).
			Build()
	}
	return d, nil
}
