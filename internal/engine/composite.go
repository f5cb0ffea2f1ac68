package engine

import (
	"main/internal/model/enum"
	"main/internal/order"
	"main/internal/pricing"
)

// bracketExecutor coordinates an entry with a take-profit and stop-loss
// exit. The exits only start working once the entry has completed, and
// the first exit to close cancels the other.
type bracketExecutor struct {
	ord    order.Order
	status enum.OrderStatus
	entry  *singleExecutor
	profit *singleExecutor
	loss   *singleExecutor
}

func newBracketExecutor(o order.Order) *bracketExecutor {
	return &bracketExecutor{
		ord:    o,
		status: enum.OrderStatusInitial,
		entry:  newSingleExecutor(o.Legs[0]),
		profit: newSingleExecutor(o.Legs[1]),
		loss:   newSingleExecutor(o.Legs[2]),
	}
}

func (ex *bracketExecutor) Order() order.Order {
	return ex.ord
}

func (ex *bracketExecutor) Status() enum.OrderStatus {
	return ex.status
}

func (ex *bracketExecutor) ForceCancel(now int64) bool {
	if !ex.status.IsOpen() {
		return false
	}
	ex.entry.ForceCancel(now)
	ex.profit.ForceCancel(now)
	ex.loss.ForceCancel(now)
	ex.status = enum.OrderStatusCancelled
	return true
}

func (ex *bracketExecutor) Modify(order.Order) bool {
	return false
}

func (ex *bracketExecutor) Execute(p pricing.Pricing, now int64) []order.Execution {
	if !ex.status.IsOpen() {
		return nil
	}
	if ex.status == enum.OrderStatusInitial {
		ex.status = enum.OrderStatusAccepted
	}

	var out []order.Execution
	if ex.entry.Status().IsOpen() {
		out = append(out, ex.entry.Execute(p, now)...)
	}

	switch entrySt := ex.entry.Status(); {
	case entrySt.IsOpen():
		return out
	case entrySt.Aborted():
		ex.profit.ForceCancel(now)
		ex.loss.ForceCancel(now)
		ex.status = entrySt
		return out
	}

	if ex.profit.Status().IsOpen() {
		out = append(out, ex.profit.Execute(p, now)...)
	}
	if ex.loss.Status().IsOpen() && ex.profit.Status().IsOpen() {
		out = append(out, ex.loss.Execute(p, now)...)
	}

	if st := ex.profit.Status(); st.IsClosed() {
		ex.loss.ForceCancel(now)
		ex.status = st
	} else if st := ex.loss.Status(); st.IsClosed() {
		ex.profit.ForceCancel(now)
		ex.status = st
	}
	return out
}

// ocoExecutor runs its siblings in order until the first one closes,
// then cancels the rest.
type ocoExecutor struct {
	ord    order.Order
	status enum.OrderStatus
	legs   []*singleExecutor
}

func newOCOExecutor(o order.Order) *ocoExecutor {
	legs := make([]*singleExecutor, 0, len(o.Legs))
	for _, leg := range o.Legs {
		legs = append(legs, newSingleExecutor(leg))
	}
	return &ocoExecutor{ord: o, status: enum.OrderStatusInitial, legs: legs}
}

func (ex *ocoExecutor) Order() order.Order {
	return ex.ord
}

func (ex *ocoExecutor) Status() enum.OrderStatus {
	return ex.status
}

func (ex *ocoExecutor) ForceCancel(now int64) bool {
	if !ex.status.IsOpen() {
		return false
	}
	for _, leg := range ex.legs {
		leg.ForceCancel(now)
	}
	ex.status = enum.OrderStatusCancelled
	return true
}

func (ex *ocoExecutor) Modify(order.Order) bool {
	return false
}

func (ex *ocoExecutor) Execute(p pricing.Pricing, now int64) []order.Execution {
	if !ex.status.IsOpen() {
		return nil
	}
	if ex.status == enum.OrderStatusInitial {
		ex.status = enum.OrderStatusAccepted
	}

	var out []order.Execution
	for _, leg := range ex.legs {
		if !leg.Status().IsOpen() {
			continue
		}
		out = append(out, leg.Execute(p, now)...)
		if st := leg.Status(); st.IsClosed() {
			for _, other := range ex.legs {
				if other != leg {
					other.ForceCancel(now)
				}
			}
			ex.status = st
			break
		}
	}
	return out
}

// otoExecutor runs the primary first; follow-ons never activate unless
// the primary completes.
type otoExecutor struct {
	ord     order.Order
	status  enum.OrderStatus
	primary *singleExecutor
	rest    []*singleExecutor
}

func newOTOExecutor(o order.Order) *otoExecutor {
	rest := make([]*singleExecutor, 0, len(o.Legs)-1)
	for _, leg := range o.Legs[1:] {
		rest = append(rest, newSingleExecutor(leg))
	}
	return &otoExecutor{
		ord:     o,
		status:  enum.OrderStatusInitial,
		primary: newSingleExecutor(o.Legs[0]),
		rest:    rest,
	}
}

func (ex *otoExecutor) Order() order.Order {
	return ex.ord
}

func (ex *otoExecutor) Status() enum.OrderStatus {
	return ex.status
}

func (ex *otoExecutor) ForceCancel(now int64) bool {
	if !ex.status.IsOpen() {
		return false
	}
	ex.primary.ForceCancel(now)
	for _, leg := range ex.rest {
		leg.ForceCancel(now)
	}
	ex.status = enum.OrderStatusCancelled
	return true
}

func (ex *otoExecutor) Modify(order.Order) bool {
	return false
}

func (ex *otoExecutor) Execute(p pricing.Pricing, now int64) []order.Execution {
	if !ex.status.IsOpen() {
		return nil
	}
	if ex.status == enum.OrderStatusInitial {
		ex.status = enum.OrderStatusAccepted
	}

	var out []order.Execution
	if ex.primary.Status().IsOpen() {
		out = append(out, ex.primary.Execute(p, now)...)
	}

	switch primarySt := ex.primary.Status(); {
	case primarySt.IsOpen():
		return out
	case primarySt.Aborted():
		for _, leg := range ex.rest {
			leg.ForceCancel(now)
		}
		ex.status = primarySt
		return out
	}

	allDone := true
	aborted := enum.OrderStatus(0)
	for _, leg := range ex.rest {
		if leg.Status().IsOpen() {
			out = append(out, leg.Execute(p, now)...)
		}
		st := leg.Status()
		if st.IsOpen() {
			allDone = false
		} else if aborted == 0 && st.Aborted() {
			aborted = st
		}
	}
	if allDone {
		if aborted != 0 {
			ex.status = aborted
		} else {
			ex.status = enum.OrderStatusCompleted
		}
	}
	return out
}
