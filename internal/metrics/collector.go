// Package metrics provides in-memory runtime statistics collection.
package metrics

import (
	"math"
	"sync"
	"time"
)

// AgentMetrics holds aggregated metrics for a single agent role.
type AgentMetrics struct {
	Runs      int64
	Retries   int64
	Fallbacks int64
	Failures  int64
	TotalTime time.Duration
	MinTime   time.Duration
	MaxTime   time.Duration
}

// AgentSnapshot provides computed stats from raw metrics.
type AgentSnapshot struct {
	Runs        int64   `json:"runs"`
	Retries     int64   `json:"retries"`
	Fallbacks   int64   `json:"fallbacks"`
	Failures    int64   `json:"failures"`
	TotalTimeMs int64   `json:"total_time_ms"`
	AvgTimeMs   float64 `json:"avg_time_ms"`
	MinTimeMs   int64   `json:"min_time_ms"`
	MaxTimeMs   int64   `json:"max_time_ms"`
}

// Snapshot represents full pipeline statistics at a point in time.
type Snapshot struct {
	UptimeSeconds float64                  `json:"uptime_seconds"`
	Agents        map[string]AgentSnapshot `json:"agents"`
}

// Collector aggregates in-memory runtime statistics per agent role.
// All methods are thread-safe.
type Collector struct {
	mu        sync.RWMutex
	startTime time.Time
	agents    map[string]*AgentMetrics
}

// NewCollector creates a new metrics collector.
func NewCollector() *Collector {
	return &Collector{
		startTime: time.Now(),
		agents:    make(map[string]*AgentMetrics),
	}
}

// getOrCreate returns existing metrics or creates new ones for a role.
// Caller must hold write lock.
func (c *Collector) getOrCreate(role string) *AgentMetrics {
	m, ok := c.agents[role]
	if !ok {
		m = &AgentMetrics{MinTime: time.Duration(math.MaxInt64)}
		c.agents[role] = m
	}
	return m
}

// RecordRun records a completed agent invocation.
func (c *Collector) RecordRun(role string, duration time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	m := c.getOrCreate(role)
	m.Runs++
	m.TotalTime += duration

	if duration < m.MinTime {
		m.MinTime = duration
	}
	if duration > m.MaxTime {
		m.MaxTime = duration
	}
}

// RecordRetry records one retry attempt for a role.
func (c *Collector) RecordRetry(role string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.getOrCreate(role).Retries++
}

// RecordFallback records a fallback to deterministic output for a role.
func (c *Collector) RecordFallback(role string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.getOrCreate(role).Fallbacks++
}

// RecordFailure records a terminal agent failure for a role.
func (c *Collector) RecordFailure(role string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.getOrCreate(role).Failures++
}

// Snapshot returns a point-in-time snapshot of all metrics.
func (c *Collector) Snapshot() Snapshot {
	c.mu.RLock()
	defer c.mu.RUnlock()

	agents := make(map[string]AgentSnapshot, len(c.agents))
	for role, m := range c.agents {
		snap := AgentSnapshot{
			Runs:        m.Runs,
			Retries:     m.Retries,
			Fallbacks:   m.Fallbacks,
			Failures:    m.Failures,
			TotalTimeMs: m.TotalTime.Milliseconds(),
			MaxTimeMs:   m.MaxTime.Milliseconds(),
		}
		if m.Runs > 0 {
			snap.AvgTimeMs = float64(m.TotalTime.Milliseconds()) / float64(m.Runs)
			snap.MinTimeMs = m.MinTime.Milliseconds()
		}
		agents[role] = snap
	}

	return Snapshot{
		UptimeSeconds: time.Since(c.startTime).Seconds(),
		Agents:        agents,
	}
}
