package metrics

import (
	"math"
	"sort"
	"sync"
	"sync/atomic"
	"time"
)

// latencySampleCap bounds the retained latency samples so long runs do
// not grow the collector without bound.
const latencySampleCap = 100000

// Collector aggregates workload statistics. Counter updates are atomic;
// the per-second series and latency samples are guarded by the mutex.
type Collector struct {
	totalEvents   int64
	totalKeys     int64
	activeWorkers int32

	mu              sync.RWMutex
	eventsPerSecond []int
	currentCount    int
	latencies       []time.Duration

	stopChan chan struct{}
}

// NewCollector creates a Collector and starts its per-second bucketing
// loop. Callers must Stop it when done.
func NewCollector() *Collector {
	c := &Collector{
		eventsPerSecond: make([]int, 0, 3600),
		latencies:       make([]time.Duration, 0, 10000),
		stopChan:        make(chan struct{}),
	}
	go c.recordLoop()
	return c
}

// RecordEvent records one completed event with its latency and the number
// of keys it drew.
func (c *Collector) RecordEvent(latency time.Duration, keys int) {
	atomic.AddInt64(&c.totalEvents, 1)
	atomic.AddInt64(&c.totalKeys, int64(keys))

	c.mu.Lock()
	c.currentCount++
	if len(c.latencies) < latencySampleCap {
		c.latencies = append(c.latencies, latency)
	}
	c.mu.Unlock()
}

// IncrementActive marks one worker as running.
func (c *Collector) IncrementActive() {
	atomic.AddInt32(&c.activeWorkers, 1)
}

// DecrementActive marks one worker as stopped.
func (c *Collector) DecrementActive() {
	atomic.AddInt32(&c.activeWorkers, -1)
}

func (c *Collector) recordLoop() {
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-c.stopChan:
			return
		case <-ticker.C:
			c.mu.Lock()
			c.eventsPerSecond = append(c.eventsPerSecond, c.currentCount)
			c.currentCount = 0
			c.mu.Unlock()
		}
	}
}

// Stop terminates the bucketing loop.
func (c *Collector) Stop() {
	close(c.stopChan)
}

// Stats is a point-in-time snapshot of the collected metrics.
type Stats struct {
	TotalEvents int64
	TotalKeys   int64
	Active      int32

	AvgPerSec float64
	StdDev    float64
	MinPerSec int
	MaxPerSec int

	AvgLatency time.Duration
	MinLatency time.Duration
	MaxLatency time.Duration
	P50Latency time.Duration
	P95Latency time.Duration
	P99Latency time.Duration
}

// GetStats returns a snapshot of the current statistics.
func (c *Collector) GetStats() Stats {
	c.mu.RLock()
	defer c.mu.RUnlock()

	stats := Stats{
		TotalEvents: atomic.LoadInt64(&c.totalEvents),
		TotalKeys:   atomic.LoadInt64(&c.totalKeys),
		Active:      atomic.LoadInt32(&c.activeWorkers),
	}

	if len(c.eventsPerSecond) > 0 {
		stats.AvgPerSec = c.calculateAverage()
		stats.StdDev = c.calculateStdDev(stats.AvgPerSec)
		stats.MinPerSec, stats.MaxPerSec = c.calculateMinMax()
	}

	if len(c.latencies) > 0 {
		stats.AvgLatency, stats.MinLatency, stats.MaxLatency = c.calculateLatencyBounds()
		stats.P50Latency, stats.P95Latency, stats.P99Latency = c.calculateLatencyPercentiles()
	}

	return stats
}

func (c *Collector) calculateAverage() float64 {
	if len(c.eventsPerSecond) == 0 {
		return 0
	}

	var sum int
	for _, v := range c.eventsPerSecond {
		sum += v
	}
	return float64(sum) / float64(len(c.eventsPerSecond))
}

func (c *Collector) calculateStdDev(avg float64) float64 {
	if len(c.eventsPerSecond) < 2 {
		return 0
	}

	var sum float64
	for _, v := range c.eventsPerSecond {
		diff := float64(v) - avg
		sum += diff * diff
	}
	return math.Sqrt(sum / float64(len(c.eventsPerSecond)))
}

func (c *Collector) calculateMinMax() (int, int) {
	if len(c.eventsPerSecond) == 0 {
		return 0, 0
	}

	min := c.eventsPerSecond[0]
	max := c.eventsPerSecond[0]

	for _, v := range c.eventsPerSecond[1:] {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}

	return min, max
}

func (c *Collector) calculateLatencyBounds() (time.Duration, time.Duration, time.Duration) {
	var sum time.Duration
	min := c.latencies[0]
	max := c.latencies[0]

	for _, l := range c.latencies {
		sum += l
		if l < min {
			min = l
		}
		if l > max {
			max = l
		}
	}

	avg := sum / time.Duration(len(c.latencies))
	return avg, min, max
}

func (c *Collector) calculateLatencyPercentiles() (time.Duration, time.Duration, time.Duration) {
	sorted := make([]time.Duration, len(c.latencies))
	copy(sorted, c.latencies)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

	return percentile(sorted, 50), percentile(sorted, 95), percentile(sorted, 99)
}

func percentile(sorted []time.Duration, p int) time.Duration {
	if len(sorted) == 0 {
		return 0
	}

	index := int(math.Ceil(float64(len(sorted)) * float64(p) / 100.0))
	if index >= len(sorted) {
		index = len(sorted) - 1
	}
	if index < 0 {
		index = 0
	}

	return sorted[index]
}
