package broker

import (
	"main/internal/model"
	"main/internal/order"
)

// FeeModel computes the fee charged for one execution.
type FeeModel interface {
	Calculate(e order.Execution) model.Fee
}

// NoFee charges nothing.
type NoFee struct{}

func (NoFee) Calculate(order.Execution) model.Fee {
	return 0
}

// PercentageFee charges a fraction of the traded notional, expressed in
// basis points.
type PercentageFee struct {
	Bps int64
}

func (f PercentageFee) Calculate(e order.Execution) model.Fee {
	notional, overflow := model.NotionalOf(e.Price, e.Size.Abs())
	if overflow {
		return 0
	}
	return model.Fee(int64(notional) * f.Bps / 10_000)
}
