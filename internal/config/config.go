// Package config holds the benchmark run configuration: worker counts,
// event budgets, rate limits and the shape of each generated event.
package config

import (
	"time"

	"github.com/srtdog64/randbench/internal/errors"
)

// Config is the full benchmark configuration.
type Config struct {
	Workload  WorkloadConfig
	Reporting ReportingConfig
}

// WorkloadConfig controls the worker pool and the per-event work.
type WorkloadConfig struct {
	// Threads is the number of concurrent workers, each owning its own
	// generator stream.
	Threads int
	// Events is the total event budget across all workers; 0 means
	// unlimited.
	Events int64
	// Duration bounds the run wall-clock time; 0 means unlimited.
	Duration time.Duration
	// Rate caps events per second across all workers; 0 disables the
	// limiter.
	Rate int
	// RangeMin and RangeMax bound the sampled keys, inclusive.
	RangeMin uint32
	RangeMax uint32
	// KeysPerEvent is the number of keys drawn per event through the
	// configured distribution.
	KeysPerEvent int
	// UniqueIDs adds one unique-id draw per event.
	UniqueIDs bool
	// Template, when non-empty, adds one templated random string per
	// event ('#' digit, '@' letter).
	Template string
}

// ReportingConfig controls the live stats output.
type ReportingConfig struct {
	Interval time.Duration
}

// DefaultConfig returns a Config with sane defaults.
func DefaultConfig() *Config {
	return &Config{
		Workload: WorkloadConfig{
			Threads:      DefaultThreads,
			Events:       DefaultEvents,
			Duration:     0,
			Rate:         0,
			RangeMin:     DefaultRangeMin,
			RangeMax:     DefaultRangeMax,
			KeysPerEvent: DefaultKeysPerEvent,
		},
		Reporting: ReportingConfig{
			Interval: DefaultReportInterval,
		},
	}
}

// Validate checks the configuration, returning a *errors.ConfigError for
// the first violated constraint.
func (c *Config) Validate() error {
	if c.Workload.Threads < 1 {
		return errors.NewConfigError(CfgThreads, c.Workload.Threads, "must be at least 1")
	}
	if c.Workload.Events < 0 {
		return errors.NewConfigError(CfgEvents, c.Workload.Events, "must not be negative")
	}
	if c.Workload.Rate < 0 {
		return errors.NewConfigError(CfgRate, c.Workload.Rate, "must not be negative")
	}
	if c.Workload.RangeMin > c.Workload.RangeMax {
		return errors.NewConfigError(CfgRangeMin, c.Workload.RangeMin, "must not exceed range-max")
	}
	if c.Workload.KeysPerEvent < 0 {
		return errors.NewConfigError(CfgKeysPerEvent, c.Workload.KeysPerEvent, "must not be negative")
	}
	if c.Reporting.Interval <= 0 {
		return errors.NewConfigError(CfgReportInterval, c.Reporting.Interval, "must be positive")
	}
	return nil
}
