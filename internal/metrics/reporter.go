package metrics

import (
	"context"
	"fmt"
	"time"
)

// Reporter prints periodic interval lines during a run and a summary at
// the end, sysbench-style.
type Reporter struct {
	collector *Collector
	interval  time.Duration
}

// NewReporter creates a Reporter over the given collector.
func NewReporter(collector *Collector, interval time.Duration) *Reporter {
	return &Reporter{
		collector: collector,
		interval:  interval,
	}
}

// Start emits interval lines until the context is canceled, then prints
// the final report.
func (r *Reporter) Start(ctx context.Context) {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	startTime := time.Now()

	for {
		select {
		case <-ctx.Done():
			r.printFinalReport(startTime)
			return
		case <-ticker.C:
			r.printInterval(startTime)
		}
	}
}

func (r *Reporter) printInterval(startTime time.Time) {
	stats := r.collector.GetStats()
	elapsed := time.Since(startTime)

	fmt.Printf("[ %3ds ] thds: %d events: %d evt/s: %.2f lat (ms): p50=%.2f p95=%.2f p99=%.2f\n",
		int(elapsed.Seconds()),
		stats.Active,
		stats.TotalEvents,
		stats.AvgPerSec,
		durationMs(stats.P50Latency),
		durationMs(stats.P95Latency),
		durationMs(stats.P99Latency))
}

func (r *Reporter) printFinalReport(startTime time.Time) {
	stats := r.collector.GetStats()
	elapsed := time.Since(startTime)

	fmt.Println("\n=== randbench Final Report ===")
	fmt.Printf("Total Duration:    %v\n", elapsed.Round(time.Millisecond))
	fmt.Println()

	fmt.Println("--- Event Summary ---")
	fmt.Printf("Total Events:      %d\n", stats.TotalEvents)
	fmt.Printf("Total Keys:        %d\n", stats.TotalKeys)
	if elapsed > 0 {
		fmt.Printf("Overall evt/s:     %.2f\n", float64(stats.TotalEvents)/elapsed.Seconds())
	}
	fmt.Println()

	fmt.Println("--- Rate ---")
	fmt.Printf("Avg evt/s:         %.2f\n", stats.AvgPerSec)
	fmt.Printf("Std Deviation:     %.2f\n", stats.StdDev)
	fmt.Printf("Min/Max:           %d / %d\n", stats.MinPerSec, stats.MaxPerSec)
	fmt.Println()

	fmt.Println("--- Latency (ms) ---")
	fmt.Printf("Avg:               %.3f\n", durationMs(stats.AvgLatency))
	fmt.Printf("Min/Max:           %.3f / %.3f\n", durationMs(stats.MinLatency), durationMs(stats.MaxLatency))
	fmt.Printf("Percentiles:       p50=%.3f, p95=%.3f, p99=%.3f\n",
		durationMs(stats.P50Latency),
		durationMs(stats.P95Latency),
		durationMs(stats.P99Latency))
}

func durationMs(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
