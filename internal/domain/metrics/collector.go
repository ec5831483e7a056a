package metrics

import (
	"sync"
	"time"
)

// OperationStats aggregates outcomes for one named operation.
type OperationStats struct {
	Count       int64     `json:"count"`
	Failures    int64     `json:"failures"`
	TotalMillis int64     `json:"total_millis"`
	AvgMillis   int64     `json:"avg_millis"`
	LastError   string    `json:"last_error,omitempty"`
	LastAt      time.Time `json:"last_at"`
}

// Snapshot is a point-in-time view of collected statistics.
type Snapshot struct {
	Operations map[string]OperationStats `json:"operations"`
	UptimeSecs int64                     `json:"uptime_secs"`
	Timestamp  time.Time                 `json:"timestamp"`
}

// Collector counts operation outcomes and latencies for the local API's
// diagnostics endpoint. It is safe for concurrent use.
type Collector struct {
	mu        sync.RWMutex
	ops       map[string]*OperationStats
	startedAt time.Time
}

// NewCollector creates an empty collector.
func NewCollector() *Collector {
	return &Collector{
		ops:       make(map[string]*OperationStats),
		startedAt: time.Now(),
	}
}

// Record registers one completed operation.
func (c *Collector) Record(op string, duration time.Duration, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	stats, ok := c.ops[op]
	if !ok {
		stats = &OperationStats{}
		c.ops[op] = stats
	}

	stats.Count++
	stats.TotalMillis += duration.Milliseconds()
	stats.AvgMillis = stats.TotalMillis / stats.Count
	stats.LastAt = time.Now()
	if err != nil {
		stats.Failures++
		stats.LastError = err.Error()
	}
}

// Snapshot returns a copy of the collected statistics.
func (c *Collector) Snapshot() Snapshot {
	c.mu.RLock()
	defer c.mu.RUnlock()

	operations := make(map[string]OperationStats, len(c.ops))
	for op, stats := range c.ops {
		operations[op] = *stats
	}

	return Snapshot{
		Operations: operations,
		UptimeSecs: int64(time.Since(c.startedAt).Seconds()),
		Timestamp:  time.Now(),
	}
}
