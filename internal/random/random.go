// Package random implements the distribution-driven pseudo-random sampling
// engine: per-worker xoroshiro128+ streams, four integer distributions over
// a caller-supplied range, a serialized unique-id generator and a templated
// random string builder.
package random

import (
	"fmt"
	"math"
	"sync"

	"github.com/srtdog64/randbench/internal/errors"
)

// largePrime seeds and advances the unique-id counter. Consecutive
// multiples of a prime stay collision-free far longer under the range
// modulus than a plain increment would.
const largePrime = 2147483647

// Distribution identifies a sampling algorithm.
type Distribution int

const (
	// DistUniform is the flat distribution.
	DistUniform Distribution = iota
	// DistGaussian approximates a normal distribution by averaging
	// uniform draws (Irwin-Hall).
	DistGaussian
	// DistSpecial mixes gaussian-like samples with a narrow uniform band
	// around the range center.
	DistSpecial
	// DistPareto is a bounded heavy-tailed distribution skewed toward
	// the low end of the range.
	DistPareto
)

// String returns the distribution name as accepted by --rand-type.
func (d Distribution) String() string {
	switch d {
	case DistUniform:
		return "uniform"
	case DistGaussian:
		return "gaussian"
	case DistSpecial:
		return "special"
	case DistPareto:
		return "pareto"
	default:
		return fmt.Sprintf("[unknown distribution: %d]", int(d))
	}
}

// ParseDistribution parses a --rand-type value.
func ParseDistribution(s string) (Distribution, error) {
	switch s {
	case "uniform":
		return DistUniform, nil
	case "gaussian":
		return DistGaussian, nil
	case "special":
		return DistSpecial, nil
	case "pareto":
		return DistPareto, nil
	default:
		return 0, errors.NewConfigError(CfgRandType, s, "unknown distribution")
	}
}

// Sampler is the process-wide sampling engine. It is immutable after New
// and safe for concurrent use from any number of workers, provided each
// worker samples through its own Stream.
type Sampler struct {
	dist Distribution

	iterations int

	// Derived constants, precomputed once to keep the sampling paths
	// division-free.
	iterMult float64 // 1 / iterations
	pctMult  float64 // pct / 100
	pct2Mult float64 // pct / 200
	resMult  float64 // 100 / (100 - res)

	paretoH     float64
	paretoPower float64 // ln(h) / ln(1-h)

	seed *seeder
	uniq *uniqueCounter
}

// New validates the supplied options, precomputes the derived constants
// and returns a ready Sampler. Any validation failure is a *ConfigError
// and must abort startup.
func New(opts Options) (*Sampler, error) {
	dist, err := ParseDistribution(opts.Distribution)
	if err != nil {
		return nil, err
	}

	if opts.Iterations < 1 {
		return nil, errors.NewConfigError(CfgRandSpecIter, opts.Iterations, "must be at least 1")
	}
	if opts.SpecialPct < 0 || opts.SpecialPct > 100 {
		return nil, errors.NewConfigError(CfgRandSpecPct, opts.SpecialPct, "must be in [0, 100]")
	}
	// 100 would make the range multiplier divide by zero.
	if opts.SpecialRes < 0 || opts.SpecialRes >= 100 {
		return nil, errors.NewConfigError(CfgRandSpecRes, opts.SpecialRes, "must be in [0, 100)")
	}
	if opts.ParetoH <= 0 || opts.ParetoH >= 1 {
		return nil, errors.NewConfigError(CfgRandParetoH, opts.ParetoH, "must be in (0, 1)")
	}

	return &Sampler{
		dist:        dist,
		iterations:  opts.Iterations,
		iterMult:    1.0 / float64(opts.Iterations),
		pctMult:     float64(opts.SpecialPct) / 100.0,
		pct2Mult:    float64(opts.SpecialPct) / 200.0,
		resMult:     100.0 / (100.0 - float64(opts.SpecialRes)),
		paretoH:     opts.ParetoH,
		paretoPower: math.Log(opts.ParetoH) / math.Log(1.0-opts.ParetoH),
		seed:        newSeeder(opts.Seed),
		uniq:        newUniqueCounter(),
	}, nil
}

// Distribution returns the distribution Default dispatches to.
func (s *Sampler) Distribution() Distribution {
	return s.dist
}

// NewStream creates an independently seeded generator stream. Each worker
// must create its own Stream before sampling.
func (s *Sampler) NewStream() *Stream {
	s0, s1 := s.seed.state()
	return &Stream{s: [2]uint64{s0, s1}}
}

// Default returns a random number in [a, b] using the configured
// distribution. Callers must ensure a <= b.
func (s *Sampler) Default(st *Stream, a, b uint32) uint32 {
	switch s.dist {
	case DistUniform:
		return s.Uniform(st, a, b)
	case DistGaussian:
		return s.Gaussian(st, a, b)
	case DistSpecial:
		return s.Special(st, a, b)
	case DistPareto:
		return s.Pareto(st, a, b)
	default:
		panic("random: unsupported distribution")
	}
}

// Uniform returns a random number in [a, b] with every value equally
// likely.
func (s *Sampler) Uniform(st *Stream, a, b uint32) uint32 {
	return a + uint32(st.Float64()*float64(b-a+1))
}

// Gaussian returns a random number in [a, b] concentrated around the range
// midpoint. It averages the configured number of uniform draws; more
// iterations give a tighter bell.
func (s *Sampler) Gaussian(st *Stream, a, b uint32) uint32 {
	t := float64(b - a + 1)

	var sum float64
	for i := 0; i < s.iterations; i++ {
		sum += st.Float64() * t
	}

	return a + uint32(sum*s.iterMult)
}

// Special returns a random number in [a, b]: most samples follow the
// gaussian shape, but the configured fraction is drawn uniformly from a
// narrow band around the range center.
//
// The band placement is intentionally not clamped; extreme pct/range
// combinations can land just outside [a, b], matching the de facto
// behavior benchmark suites expect from this distribution.
func (s *Sampler) Special(st *Stream, a, b uint32) uint32 {
	t := float64(b - a)

	// Enlarge the projection range so that the fraction of draws
	// landing beyond t is exactly the configured reservation.
	rangeSize := t * s.resMult

	rnd := st.Float64()
	res := rnd * rangeSize

	if res < t {
		var sum float64
		for i := 0; i < s.iterations; i++ {
			sum += st.Float64()
		}
		return a + uint32(sum*t*s.iterMult)
	}

	// Remap the same draw into a band of width t*pct+1 centered on the
	// middle of [a, b].
	d := t * s.pctMult
	res = rnd * (d + 1)
	res += t/2 - t*s.pct2Mult

	return a + uint32(res)
}

// Pareto returns a random number in [a, b] skewed toward a; smaller h
// gives a heavier skew.
func (s *Sampler) Pareto(st *Stream, a, b uint32) uint32 {
	return a + uint32(float64(b-a+1)*math.Pow(st.Float64(), s.paretoPower))
}

// Unique returns a number in [a, b] from a globally serialized sequence:
// no two calls observe the same underlying counter value. Values repeat
// only once the counter cycles through the range, and are unpredictable
// only in ordering, not cryptographically.
func (s *Sampler) Unique(a, b uint32) uint32 {
	return a + uint32(s.uniq.next()%uint64(b-a+1))
}

// FillString fills buf according to template: '#' becomes a random digit,
// '@' a random lowercase letter, anything else is copied verbatim. Digits
// and letters always come from the uniform path regardless of the
// configured distribution. buf must be at least len(template) bytes.
func (s *Sampler) FillString(st *Stream, template string, buf []byte) {
	for i := 0; i < len(template); i++ {
		switch template[i] {
		case '#':
			buf[i] = byte(s.Uniform(st, '0', '9'))
		case '@':
			buf[i] = byte(s.Uniform(st, 'a', 'z'))
		default:
			buf[i] = template[i]
		}
	}
}

// String is a convenience wrapper around FillString that allocates the
// result.
func (s *Sampler) String(st *Stream, template string) string {
	buf := make([]byte, len(template))
	s.FillString(st, template, buf)
	return string(buf)
}

// uniqueCounter is the shared state behind Unique. The mutex is held only
// across the read-advance sequence; contention simply serializes callers.
type uniqueCounter struct {
	mu      sync.Mutex
	counter uint64
}

func newUniqueCounter() *uniqueCounter {
	return &uniqueCounter{counter: largePrime}
}

// next returns the current counter value and advances it by largePrime.
func (u *uniqueCounter) next() uint64 {
	u.mu.Lock()
	v := u.counter
	u.counter += largePrime
	u.mu.Unlock()
	return v
}
