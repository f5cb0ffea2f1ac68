package pricing

import (
	"main/internal/market"
	"main/internal/model"
)

// Pricing converts a signed order size into an execution price for one
// observation. LowPrice and HighPrice expose the worst and best prices
// seen during the step, used by stop triggers.
type Pricing interface {
	MarketPrice(size model.Quantity) model.Price
	LowPrice(size model.Quantity) model.Price
	HighPrice(size model.Quantity) model.Price
}

// Engine turns raw observations into Pricing values. Reset is invoked
// when the execution engine is fully cleared.
type Engine interface {
	GetPricing(obs market.Observation, time int64) Pricing
	Reset()
}

// NoCostEngine prices every size at the observation's reference price.
type NoCostEngine struct{}

func NewNoCostEngine() *NoCostEngine {
	return &NoCostEngine{}
}

func (e *NoCostEngine) GetPricing(obs market.Observation, _ int64) Pricing {
	return noCostPricing{obs: obs}
}

func (e *NoCostEngine) Reset() {}

type noCostPricing struct {
	obs market.Observation
}

func (p noCostPricing) MarketPrice(model.Quantity) model.Price {
	return p.obs.Price
}

func (p noCostPricing) LowPrice(model.Quantity) model.Price {
	return p.obs.PriceBy(market.PriceFieldLow)
}

func (p noCostPricing) HighPrice(model.Quantity) model.Price {
	return p.obs.PriceBy(market.PriceFieldHigh)
}

// SpreadEngine widens the selected reference price by a symmetric spread
// in basis points: buys pay mid*(1+spread/2), sells receive
// mid*(1-spread/2). Zero size returns the unadjusted mid.
type SpreadEngine struct {
	spreadBps int64
	field     market.PriceField
}

func NewSpreadEngine(spreadBps int64, field market.PriceField) *SpreadEngine {
	if !field.IsAvailable() {
		field = market.PriceFieldRef
	}
	return &SpreadEngine{spreadBps: spreadBps, field: field}
}

func (e *SpreadEngine) GetPricing(obs market.Observation, _ int64) Pricing {
	return spreadPricing{
		obs:     obs,
		halfBps: e.spreadBps / 2,
		field:   e.field,
	}
}

func (e *SpreadEngine) Reset() {}

type spreadPricing struct {
	obs     market.Observation
	halfBps int64
	field   market.PriceField
}

func (p spreadPricing) adjust(base model.Price, size model.Quantity) model.Price {
	switch size.Sign() {
	case 1:
		return model.Price(model.ApplyBps(int64(base), p.halfBps))
	case -1:
		return model.Price(model.ApplyBps(int64(base), -p.halfBps))
	default:
		return base
	}
}

func (p spreadPricing) MarketPrice(size model.Quantity) model.Price {
	return p.adjust(p.obs.PriceBy(p.field), size)
}

func (p spreadPricing) LowPrice(size model.Quantity) model.Price {
	return p.adjust(p.obs.PriceBy(market.PriceFieldLow), size)
}

func (p spreadPricing) HighPrice(size model.Quantity) model.Price {
	return p.adjust(p.obs.PriceBy(market.PriceFieldHigh), size)
}
