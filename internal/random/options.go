package random

import (
	flag "github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	// CfgRandType selects the distribution used by Default.
	CfgRandType = "rand-type"
	// CfgRandSpecIter configures the number of iterations used for
	// gaussian/special averaging.
	CfgRandSpecIter = "rand-spec-iter"
	// CfgRandSpecPct configures the percentage of the range treated as
	// 'special' (band width, special distribution only).
	CfgRandSpecPct = "rand-spec-pct"
	// CfgRandSpecRes configures the percentage of samples routed to the
	// special band (special distribution only).
	CfgRandSpecRes = "rand-spec-res"
	// CfgRandSeed configures the RNG seed. When 0, the current time is
	// used instead.
	CfgRandSeed = "rand-seed"
	// CfgRandParetoH configures the parameter h for the pareto
	// distribution.
	CfgRandParetoH = "rand-pareto-h"
)

// Flags has the random number generator configuration flags.
var Flags = flag.NewFlagSet("", flag.ContinueOnError)

// Options holds the raw option values consumed by New. The zero value is
// not usable; start from DefaultOptions or FromViper.
type Options struct {
	Distribution string
	Iterations   int
	SpecialPct   int
	SpecialRes   int
	Seed         int64
	ParetoH      float64
}

// DefaultOptions returns the option defaults, mirroring the registered
// flag defaults.
func DefaultOptions() Options {
	return Options{
		Distribution: "special",
		Iterations:   12,
		SpecialPct:   1,
		SpecialRes:   75,
		Seed:         0,
		ParetoH:      0.2,
	}
}

// FromViper collects the option values as parsed from the command line.
func FromViper() Options {
	return Options{
		Distribution: viper.GetString(CfgRandType),
		Iterations:   viper.GetInt(CfgRandSpecIter),
		SpecialPct:   viper.GetInt(CfgRandSpecPct),
		SpecialRes:   viper.GetInt(CfgRandSpecRes),
		Seed:         viper.GetInt64(CfgRandSeed),
		ParetoH:      viper.GetFloat64(CfgRandParetoH),
	}
}

func init() {
	defs := DefaultOptions()

	Flags.String(CfgRandType, defs.Distribution, "random numbers distribution {uniform,gaussian,special,pareto}")
	Flags.Int(CfgRandSpecIter, defs.Iterations, "number of iterations used for numbers generation")
	Flags.Int(CfgRandSpecPct, defs.SpecialPct, "percentage of values to be treated as 'special' (for special distribution)")
	Flags.Int(CfgRandSpecRes, defs.SpecialRes, "percentage of 'special' values to use (for special distribution)")
	Flags.Int64(CfgRandSeed, defs.Seed, "seed for random number generator. When 0, the current time is used")
	Flags.Float64(CfgRandParetoH, defs.ParetoH, "parameter h for pareto distribution")

	_ = viper.BindPFlags(Flags)
}
