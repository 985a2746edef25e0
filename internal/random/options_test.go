package random

import (
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"
)

func TestDefaultOptionsUsable(t *testing.T) {
	s, err := New(DefaultOptions())
	require.NoError(t, err)
	require.Equal(t, DistSpecial, s.Distribution())
}

func TestFromViper(t *testing.T) {
	viper.Set(CfgRandType, "pareto")
	viper.Set(CfgRandSpecIter, 7)
	viper.Set(CfgRandSpecPct, 5)
	viper.Set(CfgRandSpecRes, 50)
	viper.Set(CfgRandSeed, int64(1234))
	viper.Set(CfgRandParetoH, 0.3)
	defer viper.Reset()

	opts := FromViper()
	require.Equal(t, "pareto", opts.Distribution)
	require.Equal(t, 7, opts.Iterations)
	require.Equal(t, 5, opts.SpecialPct)
	require.Equal(t, 50, opts.SpecialRes)
	require.Equal(t, int64(1234), opts.Seed)
	require.Equal(t, 0.3, opts.ParetoH)

	s, err := New(opts)
	require.NoError(t, err)
	require.Equal(t, DistPareto, s.Distribution())
}
