package broker

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"main/internal/account"
	"main/internal/engine"
	"main/internal/market"
	"main/internal/model"
	"main/internal/model/enum"
	"main/internal/order"
	"main/internal/pricing"
	"main/internal/risk"
)

func qt(t *testing.T, s string) model.Quantity {
	t.Helper()
	q, err := model.ParseQuantity(s)
	require.NoError(t, err)
	return q
}

func px(t *testing.T, s string) model.Price {
	t.Helper()
	p, err := model.ParsePrice(s)
	require.NoError(t, err)
	return p
}

func ntl(t *testing.T, s string) model.Notional {
	t.Helper()
	n, err := model.ParseNotional(s)
	require.NoError(t, err)
	return n
}

func newTestBroker(t *testing.T, deposit string, riskCfg risk.Config, fees FeeModel) *Broker {
	t.Helper()
	acct := account.NewInternalAccount("USD", time.Hour)
	acct.Deposit("USD", ntl(t, deposit))
	acct.SetBuyingPower(acct.CashBalance("USD"))
	return New(engine.New(pricing.NewNoCostEngine()), acct, risk.NewEngine(riskCfg), fees)
}

func barEvent(t *testing.T, ts int64, asset, ref string) *market.Event {
	t.Helper()
	p := px(t, ref)
	ev := market.NewEvent(ts)
	ev.Add(market.Observation{Asset: asset, Price: p, Open: p, High: p, Low: p, Close: p, Bar: true})
	return ev
}

func TestBrokerMarketBuyEndToEnd(t *testing.T) {
	b := newTestBroker(t, "10000", risk.Config{}, nil)

	o, err := order.NewMarket(1, "AAA", qt(t, "10"), order.GTC())
	require.NoError(t, err)
	require.NoError(t, b.PlaceOrders(1, o))

	snap := b.Sync(barEvent(t, 2, "AAA", "100"))

	assert.Equal(t, ntl(t, "9000"), snap.Cash["USD"])
	assert.Equal(t, ntl(t, "9000"), snap.BuyingPower)

	pos, ok := snap.Positions["AAA"]
	require.True(t, ok)
	assert.Equal(t, qt(t, "10"), pos.Size)
	assert.Equal(t, px(t, "100"), pos.AvgPrice)

	require.Len(t, snap.Trades, 1)
	assert.Equal(t, uint64(1), snap.Trades[0].OrderID)

	require.Len(t, snap.ClosedOrders, 1)
	assert.Equal(t, enum.OrderStatusCompleted, snap.ClosedOrders[0].Status)
	assert.Empty(t, snap.OpenOrders)
}

func TestBrokerChargesPercentageFee(t *testing.T) {
	b := newTestBroker(t, "10000", risk.Config{}, PercentageFee{Bps: 10})

	o, err := order.NewMarket(1, "AAA", qt(t, "10"), order.GTC())
	require.NoError(t, err)
	require.NoError(t, b.PlaceOrders(1, o))

	snap := b.Sync(barEvent(t, 2, "AAA", "100"))

	// 10 bps of 1000 notional is 1
	assert.Equal(t, ntl(t, "8999"), snap.Cash["USD"])
	require.Len(t, snap.Trades, 1)
	assert.Equal(t, model.Fee(1_000_000), snap.Trades[0].Fee)
}

func TestBrokerSellCreditsCash(t *testing.T) {
	b := newTestBroker(t, "0", risk.Config{}, nil)
	b.Account().SetPosition(account.Position{Asset: "AAA", Size: qt(t, "10"), AvgPrice: px(t, "100"), MktPrice: px(t, "100"), LastUpdate: 1})

	o, err := order.NewMarket(1, "AAA", qt(t, "-10"), order.GTC())
	require.NoError(t, err)
	require.NoError(t, b.PlaceOrders(1, o))

	snap := b.Sync(barEvent(t, 2, "AAA", "110"))

	assert.Equal(t, ntl(t, "1100"), snap.Cash["USD"])
	_, ok := snap.Positions["AAA"]
	assert.False(t, ok)

	require.Len(t, snap.Trades, 1)
	assert.Equal(t, ntl(t, "100"), snap.Trades[0].PNL)
}

func TestBrokerRejectsOnBuyingPower(t *testing.T) {
	b := newTestBroker(t, "100", risk.Config{}, nil)

	o, err := order.NewLimit(1, "AAA", qt(t, "10"), px(t, "100"), order.GTC())
	require.NoError(t, err)
	require.NoError(t, b.PlaceOrders(1, o))

	st, ok := b.Account().OrderStatus(1)
	require.True(t, ok)
	assert.Equal(t, enum.OrderStatusRejected, st)

	snap := b.Sync(barEvent(t, 2, "AAA", "100"))
	assert.Empty(t, snap.Trades)
	assert.Equal(t, ntl(t, "100"), snap.Cash["USD"])
}

func TestBrokerKillSwitchRejectsEverything(t *testing.T) {
	b := newTestBroker(t, "10000", risk.Config{KillSwitch: true}, nil)

	o, err := order.NewMarket(1, "AAA", qt(t, "1"), order.GTC())
	require.NoError(t, err)
	require.NoError(t, b.PlaceOrders(1, o))

	st, ok := b.Account().OrderStatus(1)
	require.True(t, ok)
	assert.Equal(t, enum.OrderStatusRejected, st)
}

func TestApplyFillAveragesSameSide(t *testing.T) {
	buy := func(size, price string, ts int64) order.Execution {
		return order.Execution{Order: order.Order{Asset: "AAA"}, Size: qt(t, size), Price: px(t, price), Time: ts}
	}

	pos, realized := applyFill(account.Position{}, buy("10", "100", 1))
	assert.Equal(t, model.Notional(0), realized)
	assert.Equal(t, px(t, "100"), pos.AvgPrice)

	pos, realized = applyFill(pos, buy("10", "110", 2))
	assert.Equal(t, model.Notional(0), realized)
	assert.Equal(t, qt(t, "20"), pos.Size)
	assert.Equal(t, px(t, "105"), pos.AvgPrice)
}

func TestApplyFillPartialCloseKeepsAvg(t *testing.T) {
	pos := account.Position{Asset: "AAA", Size: qt(t, "10"), AvgPrice: px(t, "100")}
	e := order.Execution{Order: order.Order{Asset: "AAA"}, Size: qt(t, "-4"), Price: px(t, "110"), Time: 2}

	pos, realized := applyFill(pos, e)
	assert.Equal(t, qt(t, "6"), pos.Size)
	assert.Equal(t, px(t, "100"), pos.AvgPrice)
	assert.Equal(t, ntl(t, "40"), realized)
}

func TestApplyFillCrossThroughZero(t *testing.T) {
	pos := account.Position{Asset: "AAA", Size: qt(t, "10"), AvgPrice: px(t, "100")}
	e := order.Execution{Order: order.Order{Asset: "AAA"}, Size: qt(t, "-15"), Price: px(t, "110"), Time: 2}

	pos, realized := applyFill(pos, e)

	// only the held 10 units realize; the remaining 5 open short at 110
	assert.Equal(t, ntl(t, "100"), realized)
	assert.Equal(t, qt(t, "-5"), pos.Size)
	assert.Equal(t, px(t, "110"), pos.AvgPrice)
}

func TestApplyFillShortCoverRealizesInverse(t *testing.T) {
	pos := account.Position{Asset: "AAA", Size: qt(t, "-10"), AvgPrice: px(t, "100")}
	e := order.Execution{Order: order.Order{Asset: "AAA"}, Size: qt(t, "10"), Price: px(t, "90"), Time: 2}

	pos, realized := applyFill(pos, e)
	assert.Equal(t, ntl(t, "100"), realized)
	assert.False(t, pos.Open())
}
