package bus

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"main/internal/market"
)

func TestTryPublishFullQueue(t *testing.T) {
	q := NewQueue(1)
	require.NoError(t, q.TryPublish(market.NewEvent(1)))
	assert.ErrorIs(t, q.TryPublish(market.NewEvent(2)), ErrQueueFull)
}

func TestPublishAfterClose(t *testing.T) {
	q := NewQueue(1)
	q.Close()
	assert.ErrorIs(t, q.TryPublish(market.NewEvent(1)), ErrQueueClosed)
	assert.ErrorIs(t, q.Publish(context.Background(), market.NewEvent(1)), ErrQueueClosed)
}

func TestPublishHonorsContext(t *testing.T) {
	q := NewQueue(1)
	require.NoError(t, q.Publish(context.Background(), market.NewEvent(1)))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	assert.ErrorIs(t, q.Publish(ctx, market.NewEvent(2)), context.DeadlineExceeded)
}

func TestRunDrainsInOrderUntilClose(t *testing.T) {
	q := NewQueue(8)
	for i := int64(1); i <= 5; i++ {
		require.NoError(t, q.TryPublish(market.NewEvent(i)))
	}
	q.Close()

	var got []int64
	q.Run(context.Background(), func(ev *market.Event) {
		got = append(got, ev.Time)
	})
	assert.Equal(t, []int64{1, 2, 3, 4, 5}, got)
}

func TestRunStopsOnContextCancel(t *testing.T) {
	q := NewQueue(1)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	done := make(chan struct{})
	go func() {
		q.Run(ctx, func(*market.Event) {})
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not stop after context cancel")
	}
}

func TestCloseIsIdempotent(t *testing.T) {
	q := NewQueue(1)
	q.Close()
	assert.NotPanics(t, q.Close)
}
