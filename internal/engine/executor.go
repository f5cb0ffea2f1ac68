package engine

import (
	"time"

	"main/internal/model"
	"main/internal/model/enum"
	"main/internal/order"
	"main/internal/pricing"
)

// Default expiry windows. DAY expires after one trading day, GTC only
// after a very large window.
const (
	dayWindow = int64(24 * time.Hour)
	gtcWindow = int64(90 * 24 * time.Hour)
)

// Executor wraps one order with mutable lifecycle state.
type Executor interface {
	Order() order.Order
	Status() enum.OrderStatus
}

// CreateExecutor drives an order that produces executions. It is only
// invoked when a price observation exists for the order's asset.
type CreateExecutor interface {
	Executor

	Execute(p pricing.Pricing, now int64) []order.Execution

	// ForceCancel moves an open executor to CANCELLED. It reports
	// whether the transition happened.
	ForceCancel(now int64) bool

	// Modify replaces the mutable limit/stop/trail parameters while the
	// executor is open, without touching its status.
	Modify(replacement order.Order) bool
}

// TargetLookup resolves a pending create executor by order id.
type TargetLookup func(id uint64) (CreateExecutor, bool)

// ModifyExecutor drives a cancel or update order. It runs every event,
// with or without a price observation.
type ModifyExecutor interface {
	Executor

	Execute(lookup TargetLookup, now int64)
}

type singleExecutor struct {
	ord        order.Order
	status     enum.OrderStatus
	remaining  model.Quantity
	acceptedAt int64
	attempts   int
	triggered  bool
	extreme    model.Price
	hasExtreme bool
}

func newSingleExecutor(o order.Order) *singleExecutor {
	return &singleExecutor{
		ord:       o,
		status:    enum.OrderStatusInitial,
		remaining: o.Size,
	}
}

func (ex *singleExecutor) Order() order.Order {
	return ex.ord
}

func (ex *singleExecutor) Status() enum.OrderStatus {
	return ex.status
}

func (ex *singleExecutor) ForceCancel(_ int64) bool {
	if !ex.status.IsOpen() {
		return false
	}
	ex.status = enum.OrderStatusCancelled
	return true
}

func (ex *singleExecutor) Modify(replacement order.Order) bool {
	if !ex.status.IsOpen() {
		return false
	}
	ex.ord.Limit = replacement.Limit
	ex.ord.Stop = replacement.Stop
	ex.ord.Trail = replacement.Trail
	return true
}

func (ex *singleExecutor) Execute(p pricing.Pricing, now int64) []order.Execution {
	if !ex.status.IsOpen() {
		return nil
	}
	if ex.status == enum.OrderStatusInitial {
		ex.status = enum.OrderStatusAccepted
		ex.acceptedAt = now
	}

	fill := ex.fillable(p)

	// FOK never partially fills: anything short of the full remainder on
	// the first attempt expires the order untouched.
	if ex.ord.TIF.Policy == enum.TimeInForceFOK && ex.attempts == 0 && fill != ex.remaining {
		ex.attempts++
		ex.status = enum.OrderStatusExpired
		return nil
	}
	ex.attempts++

	var out []order.Execution
	if fill != 0 {
		price := ex.fillPrice(p, fill)
		ex.remaining -= fill
		out = append(out, order.Execution{Order: ex.ord, Size: fill, Price: price, Time: now})
	}

	switch {
	case ex.remaining == 0:
		ex.status = enum.OrderStatusCompleted
	case ex.expired(now):
		ex.status = enum.OrderStatusExpired
	}
	return out
}

func (ex *singleExecutor) expired(now int64) bool {
	tif := ex.ord.TIF
	switch tif.Policy {
	case enum.TimeInForceDAY:
		return now-ex.acceptedAt > dayWindow
	case enum.TimeInForceGTC:
		return now-ex.acceptedAt > gtcWindow
	case enum.TimeInForceGTD:
		// the deadline instant itself is still eligible
		return now > tif.Deadline
	case enum.TimeInForceIOC:
		return ex.attempts >= 1
	case enum.TimeInForceFOK:
		return ex.attempts >= 1
	default:
		return false
	}
}

func (ex *singleExecutor) fillable(p pricing.Pricing) model.Quantity {
	switch ex.ord.Kind {
	case enum.OrderKindMarket:
		return ex.remaining
	case enum.OrderKindLimit:
		return ex.limitFill(p)
	case enum.OrderKindStop:
		if ex.armStop(p, ex.ord.Stop) {
			return ex.remaining
		}
		return 0
	case enum.OrderKindStopLimit:
		if ex.armStop(p, ex.ord.Stop) {
			return ex.limitFill(p)
		}
		return 0
	case enum.OrderKindTrailingStop:
		if ex.armStop(p, ex.trailLevel(p)) {
			return ex.remaining
		}
		return 0
	case enum.OrderKindTrailingLimit:
		if ex.armStop(p, ex.trailLevel(p)) {
			return ex.limitFill(p)
		}
		return 0
	default:
		return 0
	}
}

// armStop latches once the observed price range crosses the level.
func (ex *singleExecutor) armStop(p pricing.Pricing, level model.Price) bool {
	if ex.triggered {
		return true
	}
	if ex.ord.Size > 0 {
		ex.triggered = p.HighPrice(ex.ord.Size) >= level
	} else {
		ex.triggered = p.LowPrice(ex.ord.Size) <= level
	}
	return ex.triggered
}

// trailLevel refreshes the favorable extreme and returns the current
// trigger level: extreme minus trail for sells, plus trail for buys.
func (ex *singleExecutor) trailLevel(p pricing.Pricing) model.Price {
	size := ex.ord.Size
	if size < 0 {
		h := p.HighPrice(size)
		if !ex.hasExtreme || h > ex.extreme {
			ex.extreme = h
			ex.hasExtreme = true
		}
		return ex.extreme - ex.ord.Trail
	}
	l := p.LowPrice(size)
	if !ex.hasExtreme || l < ex.extreme {
		ex.extreme = l
		ex.hasExtreme = true
	}
	return ex.extreme + ex.ord.Trail
}

func (ex *singleExecutor) limitFill(p pricing.Pricing) model.Quantity {
	if ex.ord.Size > 0 {
		if p.LowPrice(ex.ord.Size) <= ex.ord.Limit {
			return ex.remaining
		}
		return 0
	}
	if p.HighPrice(ex.ord.Size) >= ex.ord.Limit {
		return ex.remaining
	}
	return 0
}

func (ex *singleExecutor) fillPrice(p pricing.Pricing, fill model.Quantity) model.Price {
	mkt := p.MarketPrice(fill)
	switch ex.ord.Kind {
	case enum.OrderKindLimit, enum.OrderKindStopLimit, enum.OrderKindTrailingLimit:
		// better of limit and market
		if fill > 0 && ex.ord.Limit < mkt {
			return ex.ord.Limit
		}
		if fill < 0 && ex.ord.Limit > mkt {
			return ex.ord.Limit
		}
		return mkt
	default:
		return mkt
	}
}
