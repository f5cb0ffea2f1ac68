package engine

import (
	"github.com/yanun0323/logs"

	"main/internal/model/enum"
	"main/internal/order"
)

// cancelExecutor force-cancels its target create executor if that one is
// still open. It completes either way and emits no execution, so a
// cancel aimed at an already-closed order is a harmless no-op.
type cancelExecutor struct {
	ord    order.Order
	status enum.OrderStatus
}

func newCancelExecutor(o order.Order) *cancelExecutor {
	return &cancelExecutor{ord: o, status: enum.OrderStatusInitial}
}

func (ex *cancelExecutor) Order() order.Order {
	return ex.ord
}

func (ex *cancelExecutor) Status() enum.OrderStatus {
	return ex.status
}

func (ex *cancelExecutor) Execute(lookup TargetLookup, now int64) {
	if !ex.status.IsOpen() {
		return
	}
	if target, ok := lookup(ex.ord.Target); ok {
		if target.ForceCancel(now) {
			logs.Infof("cancelled order id=%d", ex.ord.Target)
		}
	}
	ex.status = enum.OrderStatusCompleted
}

// updateExecutor swaps the mutable parameters of its target in place.
// A target that is gone or already closed rejects the update; the order
// lifecycle never reopens.
type updateExecutor struct {
	ord    order.Order
	status enum.OrderStatus
}

func newUpdateExecutor(o order.Order) *updateExecutor {
	return &updateExecutor{ord: o, status: enum.OrderStatusInitial}
}

func (ex *updateExecutor) Order() order.Order {
	return ex.ord
}

func (ex *updateExecutor) Status() enum.OrderStatus {
	return ex.status
}

func (ex *updateExecutor) Execute(lookup TargetLookup, now int64) {
	if !ex.status.IsOpen() {
		return
	}
	target, ok := lookup(ex.ord.Target)
	if !ok || !target.Modify(ex.ord.Legs[0]) {
		ex.status = enum.OrderStatusRejected
		return
	}
	ex.status = enum.OrderStatusCompleted
}
