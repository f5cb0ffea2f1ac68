package account

import (
	"sort"

	"main/internal/model"
	"main/internal/order"
	"main/pkg/exception"
)

// Account is an immutable, defensively copied snapshot of the ledger.
// It never reflects later mutation and is safe to retain indefinitely
// or hand to another goroutine.
type Account struct {
	BaseCurrency string
	LastUpdate   int64
	BuyingPower  model.Notional
	Cash         map[string]model.Notional
	Positions    map[string]Position
	OpenOrders   []order.State
	ClosedOrders []order.State
	Trades       []order.Trade
}

// ToAccount applies retention, then freezes the ledger into a snapshot.
func (a *InternalAccount) ToAccount() *Account {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.enforceRetentionLocked()

	cash := make(map[string]model.Notional, len(a.cash))
	for currency, amount := range a.cash {
		cash[currency] = amount
	}
	positions := make(map[string]Position, len(a.positions))
	for asset, p := range a.positions {
		positions[asset] = p
	}

	open := make([]order.State, 0, len(a.openOrders))
	for _, st := range a.openOrders {
		open = append(open, st)
	}
	sort.Slice(open, func(i, j int) bool {
		return open[i].Order.ID < open[j].Order.ID
	})

	return &Account{
		BaseCurrency: a.baseCurrency,
		LastUpdate:   a.lastUpdate,
		BuyingPower:  a.buyingPower,
		Cash:         cash,
		Positions:    positions,
		OpenOrders:   open,
		ClosedOrders: append([]order.State(nil), a.closedOrders...),
		Trades:       append([]order.Trade(nil), a.trades...),
	}
}

// Load resets the ledger and re-hydrates it from a snapshot.
func (a *InternalAccount) Load(acc *Account) error {
	if acc == nil {
		return exception.ErrAccountNilSnapshot
	}
	a.mu.Lock()
	defer a.mu.Unlock()

	a.baseCurrency = acc.BaseCurrency
	a.lastUpdate = acc.LastUpdate
	a.buyingPower = acc.BuyingPower

	a.cash = make(map[string]model.Notional, len(acc.Cash))
	for currency, amount := range acc.Cash {
		a.cash[currency] = amount
	}
	a.positions = make(map[string]Position, len(acc.Positions))
	for asset, p := range acc.Positions {
		a.positions[asset] = p
	}
	a.openOrders = make(map[uint64]order.State, len(acc.OpenOrders))
	for _, st := range acc.OpenOrders {
		a.openOrders[st.Order.ID] = st
	}
	a.closedOrders = append([]order.State(nil), acc.ClosedOrders...)
	a.trades = append([]order.Trade(nil), acc.Trades...)
	return nil
}
