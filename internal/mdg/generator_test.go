package mdg

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"main/internal/model"
	"main/internal/ops"
)

func testSpec() ops.GeneratorSpec {
	return ops.GeneratorSpec{
		Assets:        []string{"AAAUSD", "BBBUSD"},
		BasePrice:     model.Price(100_000_000),
		VolatilityBps: 20,
		Seed:          42,
		Ticks:         100,
		Interval:      time.Second,
	}
}

func TestGeneratorValidation(t *testing.T) {
	spec := testSpec()
	spec.Assets = nil
	_, err := New(spec)
	assert.Error(t, err)

	spec = testSpec()
	spec.BasePrice = 0
	_, err = New(spec)
	assert.Error(t, err)
}

func TestGeneratorDeterministicWithSeed(t *testing.T) {
	g1, err := New(testSpec())
	require.NoError(t, err)
	g2, err := New(testSpec())
	require.NoError(t, err)

	for i := int64(0); i < 50; i++ {
		ev1 := g1.Next(i)
		ev2 := g2.Next(i)
		require.Equal(t, ev1.Observations(), ev2.Observations(), "tick %d", i)
	}
}

func TestGeneratorBarsAreConsistent(t *testing.T) {
	g, err := New(testSpec())
	require.NoError(t, err)

	prevClose := map[string]model.Price{}
	for i := int64(0); i < 200; i++ {
		ev := g.Next(i)
		require.Equal(t, 2, ev.Len())
		for _, obs := range ev.Observations() {
			assert.True(t, obs.Bar)
			assert.LessOrEqual(t, obs.Low, obs.Open)
			assert.LessOrEqual(t, obs.Low, obs.Close)
			assert.GreaterOrEqual(t, obs.High, obs.Open)
			assert.GreaterOrEqual(t, obs.High, obs.Close)
			assert.Equal(t, obs.Close, obs.Price)
			assert.Positive(t, obs.Volume)

			// each bar opens at the previous close
			if prev, ok := prevClose[obs.Asset]; ok {
				assert.Equal(t, prev, obs.Open)
			}
			prevClose[obs.Asset] = obs.Close
		}
	}
}
