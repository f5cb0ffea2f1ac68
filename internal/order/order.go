package order

import (
	"main/internal/model"
	"main/internal/model/enum"
	"main/pkg/exception"
)

// TIF is the time-in-force attached to an order. Deadline is only used
// by GTD and holds a unix-nano instant.
type TIF struct {
	Policy   enum.TimeInForce
	Deadline int64
}

func GTC() TIF { return TIF{Policy: enum.TimeInForceGTC} }
func DAY() TIF { return TIF{Policy: enum.TimeInForceDAY} }
func IOC() TIF { return TIF{Policy: enum.TimeInForceIOC} }
func FOK() TIF { return TIF{Policy: enum.TimeInForceFOK} }

func GTD(deadline int64) TIF {
	return TIF{Policy: enum.TimeInForceGTD, Deadline: deadline}
}

// Order is an immutable order specification tagged by kind. The ID is
// stable for the order's life; an update is a new Order referencing the
// old id via Target, never a mutation of the original.
//
// Field usage by kind:
//   - Limit: limit and stop-limit kinds
//   - Stop: stop, stop-limit and trailing kinds (trailing ignores it)
//   - Trail: trailing kinds, an absolute price offset from the extreme
//   - Target: cancel and update kinds
//   - Legs: composite kinds and the update replacement
type Order struct {
	ID     uint64
	Asset  string
	Kind   enum.OrderKind
	Size   model.Quantity
	Limit  model.Price
	Stop   model.Price
	Trail  model.Price
	TIF    TIF
	Target uint64
	Legs   []Order
	Tag    string
}

func normalizeTIF(tif TIF) (TIF, error) {
	if tif.Policy == 0 {
		tif.Policy = enum.TimeInForceGTC
	}
	if !tif.Policy.IsAvailable() {
		return tif, exception.ErrInvalidArgument
	}
	if tif.Policy == enum.TimeInForceGTD && tif.Deadline == 0 {
		return tif, exception.ErrOrderInvalidDeadline
	}
	return tif, nil
}

// NewMarket creates a market order. Size is signed: positive buys,
// negative sells.
func NewMarket(id uint64, asset string, size model.Quantity, tif TIF) (Order, error) {
	tif, err := normalizeTIF(tif)
	if err != nil {
		return Order{}, err
	}
	if size == 0 {
		return Order{}, exception.ErrOrderInvalidSize
	}
	return Order{ID: id, Asset: asset, Kind: enum.OrderKindMarket, Size: size, TIF: tif}, nil
}

func NewLimit(id uint64, asset string, size model.Quantity, limit model.Price, tif TIF) (Order, error) {
	tif, err := normalizeTIF(tif)
	if err != nil {
		return Order{}, err
	}
	if size == 0 {
		return Order{}, exception.ErrOrderInvalidSize
	}
	if limit <= 0 {
		return Order{}, exception.ErrOrderInvalidPrice
	}
	return Order{ID: id, Asset: asset, Kind: enum.OrderKindLimit, Size: size, Limit: limit, TIF: tif}, nil
}

func NewStop(id uint64, asset string, size model.Quantity, stop model.Price, tif TIF) (Order, error) {
	tif, err := normalizeTIF(tif)
	if err != nil {
		return Order{}, err
	}
	if size == 0 {
		return Order{}, exception.ErrOrderInvalidSize
	}
	if stop <= 0 {
		return Order{}, exception.ErrOrderInvalidPrice
	}
	return Order{ID: id, Asset: asset, Kind: enum.OrderKindStop, Size: size, Stop: stop, TIF: tif}, nil
}

func NewStopLimit(id uint64, asset string, size model.Quantity, stop, limit model.Price, tif TIF) (Order, error) {
	tif, err := normalizeTIF(tif)
	if err != nil {
		return Order{}, err
	}
	if size == 0 {
		return Order{}, exception.ErrOrderInvalidSize
	}
	if stop <= 0 || limit <= 0 {
		return Order{}, exception.ErrOrderInvalidPrice
	}
	return Order{ID: id, Asset: asset, Kind: enum.OrderKindStopLimit, Size: size, Stop: stop, Limit: limit, TIF: tif}, nil
}

// NewTrailingStop creates a stop order whose trigger trails the most
// favorable observed price by the absolute offset trail.
func NewTrailingStop(id uint64, asset string, size model.Quantity, trail model.Price, tif TIF) (Order, error) {
	tif, err := normalizeTIF(tif)
	if err != nil {
		return Order{}, err
	}
	if size == 0 {
		return Order{}, exception.ErrOrderInvalidSize
	}
	if trail <= 0 {
		return Order{}, exception.ErrOrderInvalidTrail
	}
	return Order{ID: id, Asset: asset, Kind: enum.OrderKindTrailingStop, Size: size, Trail: trail, TIF: tif}, nil
}

func NewTrailingLimit(id uint64, asset string, size model.Quantity, trail model.Price, limit model.Price, tif TIF) (Order, error) {
	tif, err := normalizeTIF(tif)
	if err != nil {
		return Order{}, err
	}
	if size == 0 {
		return Order{}, exception.ErrOrderInvalidSize
	}
	if trail <= 0 {
		return Order{}, exception.ErrOrderInvalidTrail
	}
	if limit <= 0 {
		return Order{}, exception.ErrOrderInvalidPrice
	}
	return Order{ID: id, Asset: asset, Kind: enum.OrderKindTrailingLimit, Size: size, Trail: trail, Limit: limit, TIF: tif}, nil
}

// NewCancel creates an order that cancels target if it is still open.
// It completes either way and never produces an execution.
func NewCancel(id uint64, target Order) (Order, error) {
	if !target.Kind.IsCreate() {
		return Order{}, exception.ErrOrderInvalidTarget
	}
	return Order{ID: id, Asset: target.Asset, Kind: enum.OrderKindCancel, Target: target.ID}, nil
}

// NewUpdate creates an order that replaces the mutable limit/stop/trail
// parameters of target with those of replacement. The replacement must
// keep the target's asset and concrete kind.
func NewUpdate(id uint64, target, replacement Order) (Order, error) {
	if !target.Kind.IsSingle() {
		return Order{}, exception.ErrOrderInvalidTarget
	}
	if replacement.Asset != target.Asset {
		return Order{}, exception.ErrOrderMismatchAsset
	}
	if replacement.Kind != target.Kind {
		return Order{}, exception.ErrOrderMismatchKind
	}
	return Order{
		ID:     id,
		Asset:  target.Asset,
		Kind:   enum.OrderKindUpdate,
		Target: target.ID,
		Legs:   []Order{replacement},
	}, nil
}

// NewBracket combines an entry with a take-profit and a stop-loss exit.
// The exits activate only once the entry completes, and sizes must
// offset the entry exactly.
func NewBracket(id uint64, entry, takeProfit, stopLoss Order) (Order, error) {
	if !entry.Kind.IsSingle() {
		return Order{}, exception.ErrOrderInvalidLegs
	}
	if takeProfit.Kind != enum.OrderKindLimit {
		return Order{}, exception.ErrOrderInvalidLegs
	}
	if stopLoss.Kind != enum.OrderKindStop && stopLoss.Kind != enum.OrderKindStopLimit {
		return Order{}, exception.ErrOrderInvalidLegs
	}
	if takeProfit.Asset != entry.Asset || stopLoss.Asset != entry.Asset {
		return Order{}, exception.ErrOrderMismatchAsset
	}
	if takeProfit.Size != -entry.Size || stopLoss.Size != -entry.Size {
		return Order{}, exception.ErrOrderMismatchSize
	}
	return Order{
		ID:    id,
		Asset: entry.Asset,
		Kind:  enum.OrderKindBracket,
		Size:  entry.Size,
		Legs:  []Order{entry, takeProfit, stopLoss},
	}, nil
}

// NewOCO groups sibling orders where the first one to close cancels the
// remaining open siblings.
func NewOCO(id uint64, legs ...Order) (Order, error) {
	if len(legs) < 2 {
		return Order{}, exception.ErrOrderInvalidLegs
	}
	asset := legs[0].Asset
	for _, leg := range legs {
		if !leg.Kind.IsSingle() {
			return Order{}, exception.ErrOrderInvalidLegs
		}
		if leg.Asset != asset {
			return Order{}, exception.ErrOrderMismatchAsset
		}
	}
	return Order{ID: id, Asset: asset, Kind: enum.OrderKindOCO, Legs: legs}, nil
}

// NewOTO triggers the follow-on orders only after the primary completes.
func NewOTO(id uint64, primary Order, followOns ...Order) (Order, error) {
	if !primary.Kind.IsSingle() || len(followOns) == 0 {
		return Order{}, exception.ErrOrderInvalidLegs
	}
	legs := make([]Order, 0, len(followOns)+1)
	legs = append(legs, primary)
	for _, leg := range followOns {
		if !leg.Kind.IsSingle() {
			return Order{}, exception.ErrOrderInvalidLegs
		}
		if leg.Asset != primary.Asset {
			return Order{}, exception.ErrOrderMismatchAsset
		}
		legs = append(legs, leg)
	}
	return Order{ID: id, Asset: primary.Asset, Kind: enum.OrderKindOTO, Legs: legs}, nil
}
