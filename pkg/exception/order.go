package exception

import "errors"

var (
	ErrOrderInvalidSize     = errors.New("order: size must be non-zero")
	ErrOrderInvalidPrice    = errors.New("order: price must be positive")
	ErrOrderInvalidTrail    = errors.New("order: trail amount must be positive")
	ErrOrderInvalidDeadline = errors.New("order: GTD deadline must be set")
	ErrOrderMismatchAsset   = errors.New("order: mismatch asset across legs")
	ErrOrderMismatchKind    = errors.New("order: update kind differs from target")
	ErrOrderInvalidTarget   = errors.New("order: target is not a create order")
	ErrOrderInvalidLegs     = errors.New("order: invalid composite legs")
	ErrOrderMismatchSize    = errors.New("order: exit size must offset entry size")
)
