package store

import (
	"main/internal/account"
	"main/internal/model"
	"main/internal/order"
)

func toRow(runID string, acc *account.Account) *SnapshotRow {
	row := &SnapshotRow{
		RunID:        runID,
		BaseCurrency: acc.BaseCurrency,
		LastUpdate:   acc.LastUpdate,
		BuyingPower:  int64(acc.BuyingPower),
	}
	for currency, amount := range acc.Cash {
		row.Cash = append(row.Cash, CashRow{Currency: currency, Amount: int64(amount)})
	}
	for _, p := range acc.Positions {
		row.Positions = append(row.Positions, PositionRow{
			Asset:      p.Asset,
			Size:       int64(p.Size),
			AvgPrice:   int64(p.AvgPrice),
			MktPrice:   int64(p.MktPrice),
			LastUpdate: p.LastUpdate,
		})
	}
	for _, t := range acc.Trades {
		row.Trades = append(row.Trades, TradeRow{
			Time:    t.Time,
			Asset:   t.Asset,
			Size:    int64(t.Size),
			Price:   int64(t.Price),
			Fee:     int64(t.Fee),
			PNL:     int64(t.PNL),
			OrderID: t.OrderID,
		})
	}
	return row
}

func fromRow(row *SnapshotRow) *account.Account {
	acc := &account.Account{
		BaseCurrency: row.BaseCurrency,
		LastUpdate:   row.LastUpdate,
		BuyingPower:  model.Notional(row.BuyingPower),
		Cash:         make(map[string]model.Notional, len(row.Cash)),
		Positions:    make(map[string]account.Position, len(row.Positions)),
	}
	for _, c := range row.Cash {
		acc.Cash[c.Currency] = model.Notional(c.Amount)
	}
	for _, p := range row.Positions {
		acc.Positions[p.Asset] = account.Position{
			Asset:      p.Asset,
			Size:       model.Quantity(p.Size),
			AvgPrice:   model.Price(p.AvgPrice),
			MktPrice:   model.Price(p.MktPrice),
			LastUpdate: p.LastUpdate,
		}
	}
	for _, t := range row.Trades {
		acc.Trades = append(acc.Trades, order.Trade{
			Time:    t.Time,
			Asset:   t.Asset,
			Size:    model.Quantity(t.Size),
			Price:   model.Price(t.Price),
			Fee:     model.Fee(t.Fee),
			PNL:     model.Notional(t.PNL),
			OrderID: t.OrderID,
		})
	}
	return acc
}
