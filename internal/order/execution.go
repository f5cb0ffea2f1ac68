package order

import (
	"main/internal/model"
	"main/internal/model/enum"
)

// Execution is a single immutable fill: a signed quantity matched at a
// price for one order. Produced once by an executor, consumed once by
// the broker layer.
type Execution struct {
	Order Order
	Size  model.Quantity
	Price model.Price
	Time  int64
}

// Trade is the historical record of a fill after it has been applied to
// the ledger.
type Trade struct {
	Time    int64
	Asset   string
	Size    model.Quantity
	Price   model.Price
	Fee     model.Fee
	PNL     model.Notional
	OrderID uint64
}

// State pairs an order with its lifecycle status. Instances are owned by
// the internal account.
type State struct {
	Order    Order
	Status   enum.OrderStatus
	OpenedAt int64
	ClosedAt int64
}
