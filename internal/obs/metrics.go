package obs

import (
	"sync/atomic"
	"time"
)

// Metrics collects lightweight counters and latency stats for one
// simulation run. All methods are safe for concurrent use.
type Metrics struct {
	events     uint64
	executions uint64
	queueDrops uint64

	syncLatency LatencyStats
}

// LatencyStats aggregates duration samples in nanoseconds.
type LatencyStats struct {
	count uint64
	sum   uint64
	min   uint64
	max   uint64
}

// LatencySnapshot is a point-in-time view of latency stats.
type LatencySnapshot struct {
	Count uint64
	Min   time.Duration
	Max   time.Duration
	Avg   time.Duration
}

// Snapshot is a point-in-time view of all counters.
type Snapshot struct {
	Events     uint64
	Executions uint64
	QueueDrops uint64
	Sync       LatencySnapshot
}

func (m *Metrics) AddEvent() {
	atomic.AddUint64(&m.events, 1)
}

func (m *Metrics) AddExecutions(n int) {
	atomic.AddUint64(&m.executions, uint64(n))
}

func (m *Metrics) AddQueueDrop() {
	atomic.AddUint64(&m.queueDrops, 1)
}

func (m *Metrics) ObserveSync(d time.Duration) {
	m.syncLatency.observe(uint64(d))
}

func (m *Metrics) Snapshot() Snapshot {
	return Snapshot{
		Events:     atomic.LoadUint64(&m.events),
		Executions: atomic.LoadUint64(&m.executions),
		QueueDrops: atomic.LoadUint64(&m.queueDrops),
		Sync:       m.syncLatency.snapshot(),
	}
}

func (s *LatencyStats) observe(v uint64) {
	atomic.AddUint64(&s.count, 1)
	atomic.AddUint64(&s.sum, v)
	for {
		old := atomic.LoadUint64(&s.min)
		if old != 0 && old <= v {
			break
		}
		if atomic.CompareAndSwapUint64(&s.min, old, v) {
			break
		}
	}
	for {
		old := atomic.LoadUint64(&s.max)
		if old >= v {
			break
		}
		if atomic.CompareAndSwapUint64(&s.max, old, v) {
			break
		}
	}
}

func (s *LatencyStats) snapshot() LatencySnapshot {
	count := atomic.LoadUint64(&s.count)
	if count == 0 {
		return LatencySnapshot{}
	}
	sum := atomic.LoadUint64(&s.sum)
	return LatencySnapshot{
		Count: count,
		Min:   time.Duration(atomic.LoadUint64(&s.min)),
		Max:   time.Duration(atomic.LoadUint64(&s.max)),
		Avg:   time.Duration(sum / count),
	}
}
