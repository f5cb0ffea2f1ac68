package account

import (
	"sync"
	"time"

	"main/internal/market"
	"main/internal/model"
	"main/internal/model/enum"
	"main/internal/order"
	"main/pkg/exception"
)

// InternalAccount is the exclusive owner of mutable ledger state: cash
// wallet, positions, order states, trades and buying power. Every
// operation is individually atomic under one mutex, which makes it safe
// to hand a frozen snapshot to another goroutine, but two simulation
// threads must not interleave calls into one instance without external
// sequencing.
type InternalAccount struct {
	mu sync.Mutex

	baseCurrency string
	retention    time.Duration
	lastUpdate   int64
	buyingPower  model.Notional

	cash         map[string]model.Notional
	positions    map[string]Position
	openOrders   map[uint64]order.State
	closedOrders []order.State
	trades       []order.Trade
}

// NewInternalAccount creates an empty ledger. Trades and closed orders
// older than the retention window are pruned on every snapshot; zero
// retention discards them immediately.
func NewInternalAccount(baseCurrency string, retention time.Duration) *InternalAccount {
	return &InternalAccount{
		baseCurrency: baseCurrency,
		retention:    retention,
		cash:         make(map[string]model.Notional),
		positions:    make(map[string]Position),
		openOrders:   make(map[uint64]order.State),
	}
}

func (a *InternalAccount) BaseCurrency() string {
	return a.baseCurrency
}

func (a *InternalAccount) LastUpdate() int64 {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.lastUpdate
}

// Deposit credits the wallet. Amounts are per currency; there is no
// implicit conversion.
func (a *InternalAccount) Deposit(currency string, amount model.Notional) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.cash[currency] += amount
}

func (a *InternalAccount) CashBalance(currency string) model.Notional {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.cash[currency]
}

func (a *InternalAccount) SetBuyingPower(bp model.Notional) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.buyingPower = bp
}

func (a *InternalAccount) BuyingPower() model.Notional {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.buyingPower
}

// InitializeOrders registers new orders in INITIAL state. It must run
// before any UpdateOrder referencing the same ids.
func (a *InternalAccount) InitializeOrders(orders []order.Order, now int64) {
	a.mu.Lock()
	defer a.mu.Unlock()
	for _, o := range orders {
		a.openOrders[o.ID] = order.State{
			Order:    o,
			Status:   enum.OrderStatusInitial,
			OpenedAt: now,
		}
	}
	a.lastUpdate = now
}

// UpdateOrder moves an order through its lifecycle. An unknown id is a
// signaled, recoverable error; an id that already closed is left
// untouched so a closed status never reopens. Closing an id that was
// never opened is a caller-sequencing bug and panics.
func (a *InternalAccount) UpdateOrder(o order.Order, now int64, status enum.OrderStatus) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	st, ok := a.openOrders[o.ID]
	if !ok {
		if a.closedLocked(o.ID) {
			return nil
		}
		if status.IsClosed() {
			panic(exception.ErrAccountNeverOpened)
		}
		return exception.ErrAccountUnknownOrder
	}

	st.Order = o
	st.Status = status
	a.lastUpdate = now
	if status.IsClosed() {
		st.ClosedAt = now
		delete(a.openOrders, o.ID)
		a.closedOrders = append(a.closedOrders, st)
		return nil
	}
	a.openOrders[o.ID] = st
	return nil
}

func (a *InternalAccount) closedLocked(id uint64) bool {
	for i := len(a.closedOrders) - 1; i >= 0; i-- {
		if a.closedOrders[i].Order.ID == id {
			return true
		}
	}
	return false
}

// OrderStatus returns the current status of a known order id.
func (a *InternalAccount) OrderStatus(id uint64) (enum.OrderStatus, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if st, ok := a.openOrders[id]; ok {
		return st.Status, true
	}
	for i := len(a.closedOrders) - 1; i >= 0; i-- {
		if a.closedOrders[i].Order.ID == id {
			return a.closedOrders[i].Status, true
		}
	}
	return 0, false
}

// SetPosition upserts a position, removing it once flat.
func (a *InternalAccount) SetPosition(p Position) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if !p.Open() {
		delete(a.positions, p.Asset)
		return
	}
	a.positions[p.Asset] = p
	if p.LastUpdate > a.lastUpdate {
		a.lastUpdate = p.LastUpdate
	}
}

func (a *InternalAccount) Position(asset string) (Position, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	p, ok := a.positions[asset]
	return p, ok
}

// AddTrade appends a realized trade record.
func (a *InternalAccount) AddTrade(t order.Trade) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.trades = append(a.trades, t)
	if t.Time > a.lastUpdate {
		a.lastUpdate = t.Time
	}
}

// UpdateMarketPrices refreshes last price and time of every open
// position with a matching observation. No P&L is realized.
func (a *InternalAccount) UpdateMarketPrices(ev *market.Event) {
	a.mu.Lock()
	defer a.mu.Unlock()
	for asset, p := range a.positions {
		obs, ok := ev.Get(asset)
		if !ok {
			continue
		}
		p.MktPrice = obs.Price
		p.LastUpdate = ev.Time
		a.positions[asset] = p
	}
	if ev.Time > a.lastUpdate {
		a.lastUpdate = ev.Time
	}
}

// retention pruning, oldest first; both lists are append-only and thus
// time ordered.
func (a *InternalAccount) enforceRetentionLocked() {
	cutoff := a.lastUpdate - int64(a.retention)

	idx := 0
	for idx < len(a.trades) && a.trades[idx].Time < cutoff {
		idx++
	}
	if idx > 0 {
		a.trades = append([]order.Trade(nil), a.trades[idx:]...)
	}

	idx = 0
	for idx < len(a.closedOrders) && a.closedOrders[idx].ClosedAt < cutoff {
		idx++
	}
	if idx > 0 {
		a.closedOrders = append([]order.State(nil), a.closedOrders[idx:]...)
	}
}
