package obs

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMetricsCounters(t *testing.T) {
	var m Metrics
	m.AddEvent()
	m.AddEvent()
	m.AddExecutions(3)
	m.AddQueueDrop()

	snap := m.Snapshot()
	assert.Equal(t, uint64(2), snap.Events)
	assert.Equal(t, uint64(3), snap.Executions)
	assert.Equal(t, uint64(1), snap.QueueDrops)
}

func TestLatencyStats(t *testing.T) {
	var m Metrics
	m.ObserveSync(10 * time.Millisecond)
	m.ObserveSync(30 * time.Millisecond)
	m.ObserveSync(20 * time.Millisecond)

	sync := m.Snapshot().Sync
	assert.Equal(t, uint64(3), sync.Count)
	assert.Equal(t, 10*time.Millisecond, sync.Min)
	assert.Equal(t, 30*time.Millisecond, sync.Max)
	assert.Equal(t, 20*time.Millisecond, sync.Avg)
}

func TestEmptyLatencySnapshot(t *testing.T) {
	var m Metrics
	assert.Equal(t, LatencySnapshot{}, m.Snapshot().Sync)
}
