package config

import (
	"time"

	flag "github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	// CfgThreads configures the number of worker threads.
	CfgThreads = "threads"
	// CfgEvents configures the total event budget (0 = unlimited).
	CfgEvents = "events"
	// CfgDuration configures the run duration limit (0 = unlimited).
	CfgDuration = "duration"
	// CfgRate configures the target events per second (0 = unlimited).
	CfgRate = "rate"
	// CfgRangeMin configures the inclusive lower key bound.
	CfgRangeMin = "range-min"
	// CfgRangeMax configures the inclusive upper key bound.
	CfgRangeMax = "range-max"
	// CfgKeysPerEvent configures the number of keys drawn per event.
	CfgKeysPerEvent = "keys-per-event"
	// CfgUniqueIDs adds a unique-id draw to every event.
	CfgUniqueIDs = "unique-ids"
	// CfgTemplate configures the random string template ("" = disabled).
	CfgTemplate = "string-template"
	// CfgReportInterval configures the live stats interval.
	CfgReportInterval = "report-interval"
)

// Default values for the benchmark configuration flags.
const (
	DefaultThreads        = 4
	DefaultEvents         = int64(100000)
	DefaultRangeMin       = uint32(1)
	DefaultRangeMax       = uint32(1000000)
	DefaultKeysPerEvent   = 10
	DefaultReportInterval = 2 * time.Second
)

// Flags has the benchmark configuration flags.
var Flags = flag.NewFlagSet("", flag.ContinueOnError)

// FromViper collects the benchmark configuration as parsed from the
// command line.
func FromViper() *Config {
	return &Config{
		Workload: WorkloadConfig{
			Threads:      viper.GetInt(CfgThreads),
			Events:       viper.GetInt64(CfgEvents),
			Duration:     viper.GetDuration(CfgDuration),
			Rate:         viper.GetInt(CfgRate),
			RangeMin:     viper.GetUint32(CfgRangeMin),
			RangeMax:     viper.GetUint32(CfgRangeMax),
			KeysPerEvent: viper.GetInt(CfgKeysPerEvent),
			UniqueIDs:    viper.GetBool(CfgUniqueIDs),
			Template:     viper.GetString(CfgTemplate),
		},
		Reporting: ReportingConfig{
			Interval: viper.GetDuration(CfgReportInterval),
		},
	}
}

func init() {
	Flags.Int(CfgThreads, DefaultThreads, "number of worker threads")
	Flags.Int64(CfgEvents, DefaultEvents, "total number of events (0 = unlimited)")
	Flags.Duration(CfgDuration, 0, "run duration limit (0 = unlimited)")
	Flags.Int(CfgRate, 0, "target event rate per second (0 = unlimited)")
	Flags.Uint32(CfgRangeMin, DefaultRangeMin, "lower bound of the sampled key range")
	Flags.Uint32(CfgRangeMax, DefaultRangeMax, "upper bound of the sampled key range")
	Flags.Int(CfgKeysPerEvent, DefaultKeysPerEvent, "keys drawn per event through the configured distribution")
	Flags.Bool(CfgUniqueIDs, false, "draw one unique id per event")
	Flags.String(CfgTemplate, "", "random string template per event ('#' digit, '@' letter)")
	Flags.Duration(CfgReportInterval, DefaultReportInterval, "interval between live stats reports")

	_ = viper.BindPFlags(Flags)
}
