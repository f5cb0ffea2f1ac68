package exception

import "errors"

var (
	ErrEngineUnknownKind      = errors.New("engine: no factory registered for order kind")
	ErrEngineInvalidFactory   = errors.New("engine: factory returned unsupported executor")
	ErrEngineDuplicateOrderID = errors.New("engine: order id already pending")
)
