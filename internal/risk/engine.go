package risk

import (
	"main/internal/model"
	"main/internal/model/enum"
	"main/internal/order"
)

// Action is the outcome of a pre-trade evaluation.
type Action uint8

const (
	ActionAllow Action = iota
	ActionDeny
)

// Reason explains a deny decision.
type Reason uint8

const (
	ReasonNone Reason = iota
	ReasonKillSwitch
	ReasonMaxQty
	ReasonBuyingPower
)

func (r Reason) String() string {
	switch r {
	case ReasonKillSwitch:
		return "kill switch"
	case ReasonMaxQty:
		return "max order quantity"
	case ReasonBuyingPower:
		return "insufficient buying power"
	default:
		return "none"
	}
}

// Config defines static pre-trade limits.
type Config struct {
	KillSwitch  bool           `json:"killSwitch"`
	MaxOrderQty model.Quantity `json:"maxOrderQty"`
}

// View provides the ledger facts needed for one evaluation.
type View struct {
	BuyingPower model.Notional
	PriceOf     func(asset string) (model.Price, bool)
}

// Decision is the evaluation result. Denials surface as REJECTED order
// status, never as errors.
type Decision struct {
	OrderID  uint64
	Action   Action
	Reason   Reason
	Exposure model.Notional
}

// Engine evaluates orders against the configured limits. Only buy-side
// exposure counts against buying power; sell-side exposure is ignored,
// a documented policy of the simulator.
type Engine struct {
	cfg Config
}

func NewEngine(cfg Config) *Engine {
	return &Engine{cfg: cfg}
}

func (e *Engine) Evaluate(o order.Order, view View) Decision {
	decision := Decision{OrderID: o.ID, Action: ActionAllow, Reason: ReasonNone}

	if e.cfg.KillSwitch {
		decision.Action = ActionDeny
		decision.Reason = ReasonKillSwitch
		return decision
	}

	for _, leg := range createLegs(o) {
		if e.cfg.MaxOrderQty > 0 && leg.Size.Abs() > e.cfg.MaxOrderQty {
			decision.Action = ActionDeny
			decision.Reason = ReasonMaxQty
			return decision
		}
		decision.Exposure += buyExposure(leg, view)
	}

	if decision.Exposure > 0 && decision.Exposure > view.BuyingPower {
		decision.Action = ActionDeny
		decision.Reason = ReasonBuyingPower
	}
	return decision
}

// createLegs flattens an order into the create legs that can open
// exposure. Modify kinds contribute nothing.
func createLegs(o order.Order) []order.Order {
	switch o.Kind {
	case enum.OrderKindCancel, enum.OrderKindUpdate:
		return nil
	case enum.OrderKindBracket:
		// only the entry opens exposure; the exits offset it
		return o.Legs[:1]
	case enum.OrderKindOCO, enum.OrderKindOTO:
		return o.Legs
	default:
		return []order.Order{o}
	}
}

func buyExposure(o order.Order, view View) model.Notional {
	if o.Size <= 0 {
		return 0
	}
	price := o.Limit
	if price == 0 {
		price = o.Stop
	}
	if price == 0 && view.PriceOf != nil {
		if last, ok := view.PriceOf(o.Asset); ok {
			price = last
		}
	}
	if price == 0 {
		return 0
	}
	notional, overflow := model.NotionalOf(price, o.Size)
	if overflow {
		return model.Notional(int64(^uint64(0) >> 1))
	}
	return notional
}
