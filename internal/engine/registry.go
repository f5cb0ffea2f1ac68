package engine

import (
	"main/internal/model/enum"
	"main/internal/order"
)

// Factory builds the executor for one order kind. The returned value
// must implement CreateExecutor or ModifyExecutor.
type Factory func(o order.Order) Executor

// Registry maps order kinds to executor factories. Each engine owns its
// own registry value, pre-populated with the eleven builtin kinds, so
// custom registrations never leak across engine instances.
type Registry struct {
	factories map[enum.OrderKind]Factory
}

func NewRegistry() *Registry {
	r := &Registry{factories: make(map[enum.OrderKind]Factory, 16)}

	single := func(o order.Order) Executor { return newSingleExecutor(o) }
	r.Register(enum.OrderKindMarket, single)
	r.Register(enum.OrderKindLimit, single)
	r.Register(enum.OrderKindStop, single)
	r.Register(enum.OrderKindStopLimit, single)
	r.Register(enum.OrderKindTrailingStop, single)
	r.Register(enum.OrderKindTrailingLimit, single)
	r.Register(enum.OrderKindCancel, func(o order.Order) Executor { return newCancelExecutor(o) })
	r.Register(enum.OrderKindUpdate, func(o order.Order) Executor { return newUpdateExecutor(o) })
	r.Register(enum.OrderKindBracket, func(o order.Order) Executor { return newBracketExecutor(o) })
	r.Register(enum.OrderKindOCO, func(o order.Order) Executor { return newOCOExecutor(o) })
	r.Register(enum.OrderKindOTO, func(o order.Order) Executor { return newOTOExecutor(o) })
	return r
}

// Register adds or replaces the factory for a kind.
func (r *Registry) Register(kind enum.OrderKind, f Factory) {
	r.factories[kind] = f
}

func (r *Registry) Unregister(kind enum.OrderKind) {
	delete(r.factories, kind)
}

func (r *Registry) Get(kind enum.OrderKind) (Factory, bool) {
	f, ok := r.factories[kind]
	return f, ok
}
