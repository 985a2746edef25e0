package random

import (
	"math"
	"math/bits"
	mrand "math/rand"
	"sync"
	"time"
)

// Stream is a xoroshiro128+ pseudo-random generator. It is fast and
// statistically sound for workload generation, but NOT cryptographically
// secure.
//
// A Stream is owned by exactly one worker goroutine: it requires no locking
// and must never be shared. Create one per worker with Sampler.NewStream
// before sampling.
type Stream struct {
	s [2]uint64
}

// Uint64 advances the state and returns the next raw 64-bit value.
func (st *Stream) Uint64() uint64 {
	s0, s1 := st.s[0], st.s[1]
	result := s0 + s1

	s1 ^= s0
	st.s[0] = bits.RotateLeft64(s0, 55) ^ s1 ^ (s1 << 14)
	st.s[1] = bits.RotateLeft64(s1, 36)

	return result
}

// Float64 returns a uniformly distributed float64 in [0, 1), derived from
// the top 53 bits of the next raw draw.
func (st *Stream) Float64() float64 {
	return float64(st.Uint64()>>11) / (1 << 53)
}

// seeder is the coarse entropy source used to seed per-worker Streams.
// It is never used for sampling directly; its only job is to hand out
// independent initial states. Guarded by a mutex so workers can seed
// themselves concurrently at startup.
type seeder struct {
	mu  sync.Mutex
	src *mrand.Rand
}

func newSeeder(seed int64) *seeder {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &seeder{src: mrand.New(mrand.NewSource(seed))}
}

// state returns a fresh, never all-zero 128-bit generator state. Each state
// word packs two independent draws reduced to 32 bits, so only the coarse
// source's well-distributed low bits end up in the state.
func (s *seeder) state() (uint64, uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var s0, s1 uint64
	for s0 == 0 && s1 == 0 {
		s0 = s.draw()<<32 | s.draw()
		s1 = s.draw()<<32 | s.draw()
	}
	return s0, s1
}

func (s *seeder) draw() uint64 {
	return uint64(s.src.Int63()) % math.MaxUint32
}
