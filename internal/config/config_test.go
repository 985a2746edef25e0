package config

import (
	"testing"

	"github.com/srtdog64/randbench/internal/errors"
)

func TestDefaultConfigValid(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Errorf("default configuration failed validation: %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		option string
	}{
		{
			name:   "zero threads",
			mutate: func(c *Config) { c.Workload.Threads = 0 },
			option: CfgThreads,
		},
		{
			name:   "negative events",
			mutate: func(c *Config) { c.Workload.Events = -1 },
			option: CfgEvents,
		},
		{
			name:   "negative rate",
			mutate: func(c *Config) { c.Workload.Rate = -5 },
			option: CfgRate,
		},
		{
			name: "inverted range",
			mutate: func(c *Config) {
				c.Workload.RangeMin = 100
				c.Workload.RangeMax = 10
			},
			option: CfgRangeMin,
		},
		{
			name:   "negative keys per event",
			mutate: func(c *Config) { c.Workload.KeysPerEvent = -1 },
			option: CfgKeysPerEvent,
		},
		{
			name:   "zero report interval",
			mutate: func(c *Config) { c.Reporting.Interval = 0 },
			option: CfgReportInterval,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			if err == nil {
				t.Fatal("Validate() accepted an invalid configuration")
			}

			ce := errors.GetConfig(err)
			if ce == nil {
				t.Fatalf("Validate() returned %T, want *errors.ConfigError", err)
			}
			if ce.Option != tt.option {
				t.Errorf("Option = %q, want %q", ce.Option, tt.option)
			}
		})
	}
}
