package recorder

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"main/internal/market"
	"main/internal/model"
)

func testEvent(ts int64, asset string, price int64) *market.Event {
	ev := market.NewEvent(ts)
	ev.Add(market.Observation{
		Asset:  asset,
		Price:  model.Price(price),
		Open:   model.Price(price),
		High:   model.Price(price + 1),
		Low:    model.Price(price - 1),
		Close:  model.Price(price),
		Volume: model.Quantity(100_000_000),
		Bar:    true,
	})
	return ev
}

func TestJournalRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "feed.jsonl")

	w, err := NewWriter(path)
	require.NoError(t, err)
	events := []*market.Event{
		testEvent(1, "AAAUSD", 100_000_000),
		testEvent(2, "AAAUSD", 101_000_000),
		testEvent(3, "BBBUSD", 50_000_000),
	}
	for _, ev := range events {
		require.NoError(t, w.Append(ev))
	}
	require.NoError(t, w.Close())

	p, err := NewPlayback(path, 0)
	require.NoError(t, err)

	var got []*market.Event
	require.NoError(t, p.Run(context.Background(), func(ev *market.Event) error {
		got = append(got, ev)
		return nil
	}))

	require.Len(t, got, len(events))
	for i, ev := range events {
		assert.Equal(t, ev.Time, got[i].Time)
		assert.Equal(t, ev.Observations(), got[i].Observations())
	}
}

func TestPlaybackValidation(t *testing.T) {
	_, err := NewPlayback("", 0)
	assert.ErrorIs(t, err, ErrEmptyPath)

	_, err = NewPlayback("feed.jsonl", -1)
	assert.ErrorIs(t, err, ErrInvalidSpeed)
}

func TestPlaybackMissingFile(t *testing.T) {
	p, err := NewPlayback(filepath.Join(t.TempDir(), "missing.jsonl"), 0)
	require.NoError(t, err)
	assert.Error(t, p.Run(context.Background(), func(*market.Event) error { return nil }))
}

type countingClock struct {
	sleeps []time.Duration
}

func (c *countingClock) Sleep(_ context.Context, d time.Duration) error {
	c.sleeps = append(c.sleeps, d)
	return nil
}

func TestPlaybackPacesByEventTime(t *testing.T) {
	path := filepath.Join(t.TempDir(), "feed.jsonl")
	w, err := NewWriter(path)
	require.NoError(t, err)
	require.NoError(t, w.Append(testEvent(int64(time.Second), "AAAUSD", 100_000_000)))
	require.NoError(t, w.Append(testEvent(int64(3*time.Second), "AAAUSD", 101_000_000)))
	require.NoError(t, w.Close())

	clock := &countingClock{}
	p, err := NewPlayback(path, 2)
	require.NoError(t, err)
	p.WithClock(clock)

	var count int
	require.NoError(t, p.Run(context.Background(), func(*market.Event) error {
		count++
		return nil
	}))

	assert.Equal(t, 2, count)
	// a 2s gap at 2x speed sleeps 1s
	require.Len(t, clock.sleeps, 1)
	assert.Equal(t, time.Second, clock.sleeps[0])
}
