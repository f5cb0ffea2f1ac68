package market

import "main/internal/model"

// PriceField selects which price of an observation to use as reference.
type PriceField uint8

const (
	_price_field_beg PriceField = iota
	PriceFieldRef
	PriceFieldOpen
	PriceFieldHigh
	PriceFieldLow
	PriceFieldClose
	_price_field_end
)

func (f PriceField) IsAvailable() bool {
	return f > _price_field_beg && f < _price_field_end
}

// Observation is one price sample for a single asset. The zero OHLCV
// fields are only meaningful when Bar is set.
type Observation struct {
	Asset  string
	Price  model.Price
	Open   model.Price
	High   model.Price
	Low    model.Price
	Close  model.Price
	Volume model.Quantity
	Bar    bool
}

// PriceBy returns the price for the given field, falling back to the
// reference price when the observation carries no bar.
func (o Observation) PriceBy(field PriceField) model.Price {
	if !o.Bar {
		return o.Price
	}
	switch field {
	case PriceFieldOpen:
		return o.Open
	case PriceFieldHigh:
		return o.High
	case PriceFieldLow:
		return o.Low
	case PriceFieldClose:
		return o.Close
	default:
		return o.Price
	}
}

// Event is one step of market data: a timestamp plus at most one
// observation per asset, kept in arrival order.
type Event struct {
	Time   int64
	byName map[string]int
	obs    []Observation
}

func NewEvent(time int64) *Event {
	return &Event{
		Time:   time,
		byName: make(map[string]int),
	}
}

// Add inserts or replaces the observation for its asset. Arrival order
// is preserved for the first insertion.
func (e *Event) Add(o Observation) {
	if idx, ok := e.byName[o.Asset]; ok {
		e.obs[idx] = o
		return
	}
	e.byName[o.Asset] = len(e.obs)
	e.obs = append(e.obs, o)
}

func (e *Event) Get(asset string) (Observation, bool) {
	idx, ok := e.byName[asset]
	if !ok {
		return Observation{}, false
	}
	return e.obs[idx], true
}

// Observations returns all observations in arrival order.
func (e *Event) Observations() []Observation {
	return e.obs
}

func (e *Event) Len() int {
	return len(e.obs)
}
