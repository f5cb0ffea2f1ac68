package broker

import (
	"github.com/yanun0323/errors"
	"github.com/yanun0323/logs"

	"main/internal/account"
	"main/internal/engine"
	"main/internal/market"
	"main/internal/model"
	"main/internal/model/enum"
	"main/internal/order"
	"main/internal/risk"
)

// Broker simulates an exchange-side counterparty: it owns one execution
// engine and one internal account, routes new orders through pre-trade
// risk checks, and applies every execution to the ledger. One broker
// serves one simulation run on a single goroutine.
type Broker struct {
	engine  *engine.Engine
	account *account.InternalAccount
	risk    *risk.Engine
	fees    FeeModel
}

func New(eng *engine.Engine, acct *account.InternalAccount, riskEngine *risk.Engine, fees FeeModel) *Broker {
	if fees == nil {
		fees = NoFee{}
	}
	return &Broker{
		engine:  eng,
		account: acct,
		risk:    riskEngine,
		fees:    fees,
	}
}

func (b *Broker) Engine() *engine.Engine {
	return b.engine
}

func (b *Broker) Account() *account.InternalAccount {
	return b.account
}

// PlaceOrders registers a batch of orders for the current step. Orders
// denied by risk checks are marked REJECTED and never reach the engine;
// an unknown order kind is a configuration error and aborts the run.
func (b *Broker) PlaceOrders(now int64, orders ...order.Order) error {
	b.account.InitializeOrders(orders, now)

	view := risk.View{
		BuyingPower: b.account.BuyingPower(),
		PriceOf: func(asset string) (model.Price, bool) {
			p, ok := b.account.Position(asset)
			if !ok {
				return 0, false
			}
			return p.MktPrice, true
		},
	}

	for _, o := range orders {
		if decision := b.risk.Evaluate(o, view); decision.Action == risk.ActionDeny {
			logs.Infof("rejected order id=%d kind=%s reason=%s", o.ID, o.Kind, decision.Reason)
			if err := b.account.UpdateOrder(o, now, enum.OrderStatusRejected); err != nil {
				return errors.Wrap(err, "reject order")
			}
			continue
		}
		if err := b.engine.Add(o); err != nil {
			return errors.Wrap(err, "add order")
		}
	}
	return nil
}

// Sync advances one market event end to end: run the engine, apply the
// resulting executions to the ledger, propagate executor statuses,
// purge closed executors, mark positions to market and freeze a
// snapshot.
func (b *Broker) Sync(ev *market.Event) *account.Account {
	executions := b.engine.Execute(ev)
	for _, e := range executions {
		b.applyExecution(e)
	}

	for _, st := range b.engine.States() {
		if err := b.account.UpdateOrder(st.Order, ev.Time, st.Status); err != nil {
			logs.Errorf("update order id=%d, err: %v", st.Order.ID, err)
		}
	}
	b.engine.RemoveClosedOrders()

	b.account.UpdateMarketPrices(ev)
	b.account.SetBuyingPower(b.account.CashBalance(b.account.BaseCurrency()))
	return b.account.ToAccount()
}

func (b *Broker) applyExecution(e order.Execution) {
	fee := b.fees.Calculate(e)
	notional, overflow := model.NotionalOf(e.Price, e.Size)
	if overflow {
		logs.Errorf("notional overflow order id=%d, execution dropped", e.Order.ID)
		return
	}

	pos, _ := b.account.Position(e.Order.Asset)
	pos, realized := applyFill(pos, e)
	b.account.SetPosition(pos)

	base := b.account.BaseCurrency()
	b.account.Deposit(base, -notional)
	b.account.Deposit(base, -model.Notional(fee))

	b.account.AddTrade(order.Trade{
		Time:    e.Time,
		Asset:   e.Order.Asset,
		Size:    e.Size,
		Price:   e.Price,
		Fee:     fee,
		PNL:     realized,
		OrderID: e.Order.ID,
	})
}
