package workload

import (
	"context"
	"testing"
	"time"

	"github.com/srtdog64/randbench/internal/config"
	"github.com/srtdog64/randbench/internal/metrics"
	"github.com/srtdog64/randbench/internal/random"
)

func newTestRunner(t *testing.T, cfg config.WorkloadConfig) (*Runner, *metrics.Collector) {
	t.Helper()

	opts := random.DefaultOptions()
	opts.Seed = 42
	sampler, err := random.New(opts)
	if err != nil {
		t.Fatalf("random.New: %v", err)
	}

	collector := metrics.NewCollector()
	t.Cleanup(collector.Stop)

	return NewRunner(sampler, cfg, collector), collector
}

func TestRunner_EventBudget(t *testing.T) {
	cfg := config.WorkloadConfig{
		Threads:      2,
		Events:       500,
		RangeMin:     1,
		RangeMax:     100000,
		KeysPerEvent: 3,
		UniqueIDs:    true,
		Template:     "##-@@",
	}

	runner, collector := newTestRunner(t, cfg)

	if err := runner.Run(context.Background()); err != nil {
		t.Fatalf("Run returned error: %v", err)
	}

	stats := collector.GetStats()
	if stats.TotalEvents != 500 {
		t.Errorf("Expected 500 events, got %d", stats.TotalEvents)
	}
	// 3 distribution keys + 1 unique id per event.
	if stats.TotalKeys != 500*4 {
		t.Errorf("Expected %d keys, got %d", 500*4, stats.TotalKeys)
	}
	if stats.Active != 0 {
		t.Errorf("Expected all workers stopped, got %d active", stats.Active)
	}
}

func TestRunner_Cancellation(t *testing.T) {
	cfg := config.WorkloadConfig{
		Threads:      2,
		Events:       0, // unlimited
		RangeMin:     1,
		RangeMax:     1000,
		KeysPerEvent: 1,
	}

	runner, collector := newTestRunner(t, cfg)

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() {
		errCh <- runner.Run(ctx)
	}()

	time.Sleep(100 * time.Millisecond)
	cancel()

	select {
	case err := <-errCh:
		if err != context.Canceled {
			t.Errorf("Run returned %v, want context.Canceled", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not stop after cancellation")
	}

	if collector.GetStats().TotalEvents == 0 {
		t.Error("Expected some events before cancellation")
	}
}

func TestRunner_DurationLimit(t *testing.T) {
	cfg := config.WorkloadConfig{
		Threads:      1,
		Events:       0,
		Duration:     200 * time.Millisecond,
		RangeMin:     1,
		RangeMax:     1000,
		KeysPerEvent: 1,
	}

	runner, _ := newTestRunner(t, cfg)

	done := make(chan error, 1)
	go func() {
		done <- runner.Run(context.Background())
	}()

	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Run returned %v after duration limit, want nil", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not stop after the duration limit")
	}
}

func TestRunner_RateLimit(t *testing.T) {
	cfg := config.WorkloadConfig{
		Threads:      2,
		Events:       1000,
		Rate:         50, // should cap the run well below full speed
		Duration:     300 * time.Millisecond,
		RangeMin:     1,
		RangeMax:     1000,
		KeysPerEvent: 1,
	}

	runner, collector := newTestRunner(t, cfg)

	if err := runner.Run(context.Background()); err != nil {
		t.Fatalf("Run returned error: %v", err)
	}

	// 300ms at 50 evt/s plus the initial burst allowance.
	total := collector.GetStats().TotalEvents
	if total > 100 {
		t.Errorf("Rate limiter ineffective: %d events in 300ms at 50 evt/s", total)
	}
	if total == 0 {
		t.Error("Expected some events despite the rate limit")
	}
}
