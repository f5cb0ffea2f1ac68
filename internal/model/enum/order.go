package enum

// OrderKind market, limit, stop, stop limit, trailing stop, trailing limit,
// cancel, update, bracket, oco, oto
type OrderKind uint8

const (
	_order_kind_beg OrderKind = iota
	OrderKindMarket
	OrderKindLimit
	OrderKindStop
	OrderKindStopLimit
	OrderKindTrailingStop
	OrderKindTrailingLimit
	OrderKindCancel
	OrderKindUpdate
	OrderKindBracket
	OrderKindOCO
	OrderKindOTO
	_order_kind_end
)

func (k OrderKind) IsAvailable() bool {
	return k > _order_kind_beg && k < _order_kind_end
}

// IsModify reports whether the kind mutates another order instead of
// creating exposure.
func (k OrderKind) IsModify() bool {
	return k == OrderKindCancel || k == OrderKindUpdate
}

func (k OrderKind) IsCreate() bool {
	return k.IsAvailable() && !k.IsModify()
}

// IsSingle reports whether the kind is a non-composite create kind.
func (k OrderKind) IsSingle() bool {
	return k >= OrderKindMarket && k <= OrderKindTrailingLimit
}

func (k OrderKind) String() string {
	switch k {
	case OrderKindMarket:
		return "MARKET"
	case OrderKindLimit:
		return "LIMIT"
	case OrderKindStop:
		return "STOP"
	case OrderKindStopLimit:
		return "STOP_LIMIT"
	case OrderKindTrailingStop:
		return "TRAILING_STOP"
	case OrderKindTrailingLimit:
		return "TRAILING_LIMIT"
	case OrderKindCancel:
		return "CANCEL"
	case OrderKindUpdate:
		return "UPDATE"
	case OrderKindBracket:
		return "BRACKET"
	case OrderKindOCO:
		return "OCO"
	case OrderKindOTO:
		return "OTO"
	default:
		return "UNKNOWN"
	}
}

// OrderStatus initial, accepted, completed, cancelled, expired, rejected
type OrderStatus uint8

const (
	_order_status_beg OrderStatus = iota
	OrderStatusInitial
	OrderStatusAccepted
	OrderStatusCompleted
	OrderStatusCancelled
	OrderStatusExpired
	OrderStatusRejected
	_order_status_end
)

func (s OrderStatus) IsAvailable() bool {
	return s > _order_status_beg && s < _order_status_end
}

func (s OrderStatus) IsOpen() bool {
	return s == OrderStatusInitial || s == OrderStatusAccepted
}

func (s OrderStatus) IsClosed() bool {
	return s.IsAvailable() && !s.IsOpen()
}

// Aborted reports a closed status other than COMPLETED.
func (s OrderStatus) Aborted() bool {
	return s.IsClosed() && s != OrderStatusCompleted
}

func (s OrderStatus) String() string {
	switch s {
	case OrderStatusInitial:
		return "INITIAL"
	case OrderStatusAccepted:
		return "ACCEPTED"
	case OrderStatusCompleted:
		return "COMPLETED"
	case OrderStatusCancelled:
		return "CANCELLED"
	case OrderStatusExpired:
		return "EXPIRED"
	case OrderStatusRejected:
		return "REJECTED"
	default:
		return "UNKNOWN"
	}
}

// TimeInForce GTC, DAY, GTD, IOC, FOK
type TimeInForce uint8

const (
	_time_in_force_beg TimeInForce = iota
	TimeInForceGTC
	TimeInForceDAY
	TimeInForceGTD
	TimeInForceIOC
	TimeInForceFOK
	_time_in_force_end
)

func (s TimeInForce) IsAvailable() bool {
	return s > _time_in_force_beg && s < _time_in_force_end
}

func (s TimeInForce) String() string {
	switch s {
	case TimeInForceGTC:
		return "GTC"
	case TimeInForceDAY:
		return "DAY"
	case TimeInForceGTD:
		return "GTD"
	case TimeInForceIOC:
		return "IOC"
	case TimeInForceFOK:
		return "FOK"
	default:
		return "UNKNOWN"
	}
}
