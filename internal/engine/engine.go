package engine

import (
	"main/internal/market"
	"main/internal/order"
	"main/internal/pricing"
	"main/pkg/exception"
)

// Engine dispatches market events to all pending order executors. Two
// insertion-ordered collections keep modify executors strictly ahead of
// create executors within one event, and arrival order breaks ties.
//
// An Engine is not safe for concurrent use; one simulation run owns one
// engine and drives it from a single goroutine.
type Engine struct {
	pricingEngine pricing.Engine
	registry      *Registry
	modify        []ModifyExecutor
	create        []CreateExecutor
}

func New(p pricing.Engine) *Engine {
	return &Engine{
		pricingEngine: p,
		registry:      NewRegistry(),
	}
}

// Registry exposes the engine's factory registry for custom kinds.
func (e *Engine) Registry() *Registry {
	return e.registry
}

// Add resolves a factory for the order's kind and appends the executor
// to the matching collection. A missing factory is a configuration
// error and aborts the run.
func (e *Engine) Add(o order.Order) error {
	factory, ok := e.registry.Get(o.Kind)
	if !ok {
		return exception.ErrEngineUnknownKind
	}
	if e.pending(o.ID) {
		return exception.ErrEngineDuplicateOrderID
	}
	switch ex := factory(o).(type) {
	case ModifyExecutor:
		e.modify = append(e.modify, ex)
	case CreateExecutor:
		e.create = append(e.create, ex)
	default:
		return exception.ErrEngineInvalidFactory
	}
	return nil
}

func (e *Engine) pending(id uint64) bool {
	for _, m := range e.modify {
		if m.Order().ID == id {
			return true
		}
	}
	for _, c := range e.create {
		if c.Order().ID == id {
			return true
		}
	}
	return false
}

// AddAll registers a batch of orders in the given order.
func (e *Engine) AddAll(orders []order.Order) error {
	for _, o := range orders {
		if err := e.Add(o); err != nil {
			return err
		}
	}
	return nil
}

// Execute advances every open executor for one event. Modify executors
// run first regardless of price availability; create executors run only
// when the event carries an observation for their asset, and are
// retried on later events otherwise. Executions are returned in
// iteration order.
func (e *Engine) Execute(ev *market.Event) []order.Execution {
	lookup := func(id uint64) (CreateExecutor, bool) {
		for _, c := range e.create {
			if c.Order().ID == id {
				return c, true
			}
		}
		return nil, false
	}

	for _, m := range e.modify {
		if m.Status().IsOpen() {
			m.Execute(lookup, ev.Time)
		}
	}

	var out []order.Execution
	for _, c := range e.create {
		if !c.Status().IsOpen() {
			continue
		}
		obs, ok := ev.Get(c.Order().Asset)
		if !ok {
			continue
		}
		p := e.pricingEngine.GetPricing(obs, ev.Time)
		out = append(out, c.Execute(p, ev.Time)...)
	}
	return out
}

// States returns the current (order, status) pair of every pending
// executor, modify executors first.
func (e *Engine) States() []order.State {
	out := make([]order.State, 0, len(e.modify)+len(e.create))
	for _, m := range e.modify {
		out = append(out, order.State{Order: m.Order(), Status: m.Status()})
	}
	for _, c := range e.create {
		out = append(out, order.State{Order: c.Order(), Status: c.Status()})
	}
	return out
}

// RemoveClosedOrders purges closed executors from both collections. The
// caller decides the cadence, typically once per event.
func (e *Engine) RemoveClosedOrders() {
	e.modify = removeClosed(e.modify)
	e.create = removeClosed(e.create)
}

// Clear drops all pending executors and resets the pricing engine.
func (e *Engine) Clear() {
	e.modify = nil
	e.create = nil
	e.pricingEngine.Reset()
}

func removeClosed[T Executor](executors []T) []T {
	out := executors[:0]
	for _, ex := range executors {
		if ex.Status().IsOpen() {
			out = append(out, ex)
		}
	}
	return out
}
