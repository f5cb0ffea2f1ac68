package account

import "main/internal/model"

// Position is the per-asset holding. A flat position is absent from the
// ledger rather than stored with zero size.
type Position struct {
	Asset      string
	Size       model.Quantity
	AvgPrice   model.Price
	MktPrice   model.Price
	LastUpdate int64
}

func (p Position) Open() bool {
	return p.Size != 0
}

// Long reports a positive-size position.
func (p Position) Long() bool {
	return p.Size > 0
}

// UnrealizedPNL marks the position against its last known price.
func (p Position) UnrealizedPNL() model.Notional {
	direction := 1
	if p.Size < 0 {
		direction = -1
	}
	return model.PNLOf(p.AvgPrice, p.MktPrice, p.Size.Abs(), direction)
}
