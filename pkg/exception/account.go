package exception

import "errors"

var (
	ErrAccountUnknownOrder = errors.New("account: order id not registered")
	ErrAccountNeverOpened  = errors.New("account: closing an order id that was never opened")
	ErrAccountNilSnapshot  = errors.New("account: nil snapshot")
)
