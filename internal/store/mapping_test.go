package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"main/internal/account"
	"main/internal/model"
	"main/internal/order"
)

func TestSnapshotRowRoundTrip(t *testing.T) {
	acc := &account.Account{
		BaseCurrency: "USD",
		LastUpdate:   1234,
		BuyingPower:  model.Notional(9_000_000_000),
		Cash: map[string]model.Notional{
			"USD": 9_000_000_000,
			"EUR": 10_000_000,
		},
		Positions: map[string]account.Position{
			"AAAUSD": {
				Asset:      "AAAUSD",
				Size:       model.Quantity(1_000_000_000),
				AvgPrice:   model.Price(100_000_000),
				MktPrice:   model.Price(110_000_000),
				LastUpdate: 1234,
			},
		},
		Trades: []order.Trade{
			{
				Time:    1000,
				Asset:   "AAAUSD",
				Size:    model.Quantity(1_000_000_000),
				Price:   model.Price(100_000_000),
				Fee:     model.Fee(1_000_000),
				PNL:     model.Notional(-500_000),
				OrderID: 7,
			},
		},
	}

	row := toRow("run-1", acc)
	assert.Equal(t, "run-1", row.RunID)
	require.Len(t, row.Cash, 2)
	require.Len(t, row.Positions, 1)
	require.Len(t, row.Trades, 1)

	got := fromRow(row)
	assert.Equal(t, acc.BaseCurrency, got.BaseCurrency)
	assert.Equal(t, acc.LastUpdate, got.LastUpdate)
	assert.Equal(t, acc.BuyingPower, got.BuyingPower)
	assert.Equal(t, acc.Cash, got.Cash)
	assert.Equal(t, acc.Positions, got.Positions)
	assert.Equal(t, acc.Trades, got.Trades)
}

func TestSnapshotRowEmptyAccount(t *testing.T) {
	row := toRow("run-2", &account.Account{BaseCurrency: "USD"})
	got := fromRow(row)

	assert.Equal(t, "USD", got.BaseCurrency)
	assert.Empty(t, got.Cash)
	assert.Empty(t, got.Positions)
	assert.Empty(t, got.Trades)
}
