package mdg

import (
	"fmt"
	"math/rand"
	"time"

	"main/internal/market"
	"main/internal/model"
	"main/internal/ops"
)

// Generator creates synthetic market data events: one random-walk OHLC
// bar per asset per tick. A fixed seed makes a run reproducible.
type Generator struct {
	assets        []string
	rng           *rand.Rand
	last          map[string]model.Price
	volatilityBps int64
	interval      int64
}

func New(spec ops.GeneratorSpec) (*Generator, error) {
	if len(spec.Assets) == 0 {
		return nil, fmt.Errorf("generator has no assets")
	}
	if spec.BasePrice <= 0 {
		return nil, fmt.Errorf("generator base price must be > 0")
	}
	seed := spec.Seed
	if seed == 0 {
		seed = time.Now().UTC().UnixNano()
	}
	last := make(map[string]model.Price, len(spec.Assets))
	for _, asset := range spec.Assets {
		last[asset] = spec.BasePrice
	}
	return &Generator{
		assets:        spec.Assets,
		rng:           rand.New(rand.NewSource(seed)),
		last:          last,
		volatilityBps: spec.VolatilityBps,
		interval:      int64(spec.Interval),
	}, nil
}

// Interval returns the nanoseconds between generated events.
func (g *Generator) Interval() int64 {
	return g.interval
}

// Next produces the event for the given timestamp, advancing every
// asset by one random-walk step.
func (g *Generator) Next(now int64) *market.Event {
	ev := market.NewEvent(now)
	for _, asset := range g.assets {
		open := g.last[asset]
		step := func() model.Price {
			bps := g.rng.Int63n(2*g.volatilityBps+1) - g.volatilityBps
			return model.Price(model.ApplyBps(int64(open), bps))
		}
		last := step()
		high, low := open, open
		for _, p := range [...]model.Price{last, step(), step()} {
			if p > high {
				high = p
			}
			if p < low {
				low = p
			}
		}
		g.last[asset] = last

		ev.Add(market.Observation{
			Asset:  asset,
			Price:  last,
			Open:   open,
			High:   high,
			Low:    low,
			Close:  last,
			Volume: model.Quantity(g.rng.Int63n(100)+1) * 100_000_000,
			Bar:    true,
		})
	}
	return ev
}
