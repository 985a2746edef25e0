package random

import (
	"testing"
)

func TestStreamKnownAnswer(t *testing.T) {
	// First two outputs of xoroshiro128+ from the state (1, 2),
	// computed by hand from the update rule.
	st := &Stream{s: [2]uint64{1, 2}}

	if got := st.Uint64(); got != 3 {
		t.Errorf("first output = %#x, want 0x3", got)
	}
	if got := st.Uint64(); got != 0x008000300000c003 {
		t.Errorf("second output = %#x, want 0x008000300000c003", got)
	}
}

func TestStreamFloat64Range(t *testing.T) {
	st := &Stream{s: [2]uint64{0x853c49e6748fea9b, 0xda3e39cb94b95bdb}}

	for i := 0; i < 10000; i++ {
		f := st.Float64()
		if f < 0 || f >= 1 {
			t.Fatalf("Float64() = %v, want [0.0, 1.0)", f)
		}
	}
}

func TestStreamsIndependent(t *testing.T) {
	opts := DefaultOptions()
	opts.Seed = 42
	s, err := New(opts)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	a := s.NewStream()
	b := s.NewStream()

	same := true
	for i := 0; i < 16; i++ {
		if a.Uint64() != b.Uint64() {
			same = false
			break
		}
	}
	if same {
		t.Error("two independently seeded streams produced identical sequences")
	}
}

func TestSeederNonZeroState(t *testing.T) {
	sd := newSeeder(42)

	for i := 0; i < 1000; i++ {
		s0, s1 := sd.state()
		if s0 == 0 && s1 == 0 {
			t.Fatal("seeder produced an all-zero state")
		}
	}
}

func TestSeederTimeFallback(t *testing.T) {
	// Seed 0 means "derive from wall clock"; two seeders created with it
	// should still hand out usable states.
	sd := newSeeder(0)
	s0, s1 := sd.state()
	if s0 == 0 && s1 == 0 {
		t.Fatal("time-seeded seeder produced an all-zero state")
	}
}

func BenchmarkStreamUint64(b *testing.B) {
	st := &Stream{s: [2]uint64{1, 2}}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = st.Uint64()
	}
}

func BenchmarkStreamFloat64(b *testing.B) {
	st := &Stream{s: [2]uint64{1, 2}}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = st.Float64()
	}
}
