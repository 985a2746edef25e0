// Package workload drives the sampling engine from a pool of worker
// goroutines, each owning its own generator stream.
package workload

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/time/rate"

	"github.com/srtdog64/randbench/internal/config"
	"github.com/srtdog64/randbench/internal/metrics"
	"github.com/srtdog64/randbench/internal/random"
)

// Runner executes the configured workload: Threads workers draw keys,
// unique ids and templated strings per event until the event budget, the
// duration limit or the context ends the run.
type Runner struct {
	sampler *random.Sampler
	cfg     config.WorkloadConfig
	metrics *metrics.Collector
	limiter *rate.Limiter

	remaining int64
}

// NewRunner creates a Runner. The sampler must already be initialized and
// the configuration validated.
func NewRunner(sampler *random.Sampler, cfg config.WorkloadConfig, collector *metrics.Collector) *Runner {
	r := &Runner{
		sampler:   sampler,
		cfg:       cfg,
		metrics:   collector,
		remaining: cfg.Events,
	}
	if cfg.Rate > 0 {
		r.limiter = rate.NewLimiter(rate.Limit(cfg.Rate), cfg.Rate)
	}
	return r
}

// Run starts the workers and blocks until the run completes. It returns
// nil on normal completion (budget exhausted or duration reached) and the
// context error when the caller canceled the run.
func (r *Runner) Run(ctx context.Context) error {
	runCtx := ctx
	if r.cfg.Duration > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(ctx, r.cfg.Duration)
		defer cancel()
	}

	var wg sync.WaitGroup
	wg.Add(r.cfg.Threads)
	for i := 0; i < r.cfg.Threads; i++ {
		go func() {
			defer wg.Done()
			r.worker(runCtx)
		}()
	}
	wg.Wait()

	// The duration limit expiring is normal completion, not an error.
	return ctx.Err()
}

func (r *Runner) worker(ctx context.Context) {
	r.metrics.IncrementActive()
	defer r.metrics.DecrementActive()

	// Per-worker stream, seeded here so every worker gets an
	// independent sequence.
	stream := r.sampler.NewStream()

	var buf []byte
	if r.cfg.Template != "" {
		buf = make([]byte, len(r.cfg.Template))
	}

	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		if !r.claimEvent() {
			return
		}

		if r.limiter != nil {
			if err := r.limiter.Wait(ctx); err != nil {
				return
			}
		}

		start := time.Now()
		keys := r.event(stream, buf)
		r.metrics.RecordEvent(time.Since(start), keys)
	}
}

// claimEvent reserves one event from the shared budget. A zero budget
// means unlimited.
func (r *Runner) claimEvent() bool {
	if r.cfg.Events == 0 {
		return true
	}
	return atomic.AddInt64(&r.remaining, -1) >= 0
}

func (r *Runner) event(stream *random.Stream, buf []byte) int {
	keys := 0
	for i := 0; i < r.cfg.KeysPerEvent; i++ {
		_ = r.sampler.Default(stream, r.cfg.RangeMin, r.cfg.RangeMax)
		keys++
	}
	if r.cfg.UniqueIDs {
		_ = r.sampler.Unique(r.cfg.RangeMin, r.cfg.RangeMax)
		keys++
	}
	if buf != nil {
		r.sampler.FillString(stream, r.cfg.Template, buf)
	}
	return keys
}
