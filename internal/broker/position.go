package broker

import (
	"main/internal/account"
	"main/internal/model"
	"main/internal/order"
)

// applyFill folds one execution into a position and returns the updated
// position plus the realized result. Average-cost method; crossing
// through zero opens the remainder at the fill price.
func applyFill(pos account.Position, e order.Execution) (account.Position, model.Notional) {
	if pos.Size == 0 {
		return account.Position{
			Asset:      e.Order.Asset,
			Size:       e.Size,
			AvgPrice:   e.Price,
			MktPrice:   e.Price,
			LastUpdate: e.Time,
		}, 0
	}

	pos.MktPrice = e.Price
	pos.LastUpdate = e.Time

	if pos.Size.Sign() == e.Size.Sign() {
		pos.AvgPrice = model.WeightedAvg(pos.AvgPrice, pos.Size, e.Price, e.Size)
		pos.Size += e.Size
		return pos, 0
	}

	closed := e.Size.Abs()
	if held := pos.Size.Abs(); closed > held {
		closed = held
	}
	direction := pos.Size.Sign()
	realized := model.PNLOf(pos.AvgPrice, e.Price, closed, direction)

	newSize := pos.Size + e.Size
	switch {
	case newSize == 0:
		pos.Size = 0
	case newSize.Sign() == pos.Size.Sign():
		pos.Size = newSize
	default:
		// crossed through zero
		pos.Size = newSize
		pos.AvgPrice = e.Price
	}
	return pos, realized
}
