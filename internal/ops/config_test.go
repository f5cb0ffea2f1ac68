package ops

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"main/internal/market"
	"main/internal/model"
)

func TestResolveDefaults(t *testing.T) {
	loaded, err := Resolve(FileConfig{})
	require.NoError(t, err)

	assert.Equal(t, "USD", loaded.BaseCurrency)
	assert.Equal(t, model.Notional(0), loaded.InitialDeposit)
	assert.Equal(t, time.Duration(24*365)*time.Hour, loaded.Retention)
	assert.Equal(t, market.PriceFieldRef, loaded.PriceField)
	assert.Equal(t, []string{"SIMUSD"}, loaded.Generator.Assets)
	assert.Equal(t, model.Price(100_000_000), loaded.Generator.BasePrice)
	assert.Equal(t, int64(20), loaded.Generator.VolatilityBps)
	assert.Equal(t, 1000, loaded.Generator.Ticks)
	assert.Equal(t, time.Second, loaded.Generator.Interval)
	assert.False(t, loaded.Features.EnablePersistence)
	assert.True(t, loaded.Features.EnableRiskChecks)
}

func TestLoadFromFile(t *testing.T) {
	raw := `{
		"account": {"baseCurrency": "EUR", "initialDeposit": 10000, "retentionHours": 48},
		"pricing": {"spreadBps": 10, "priceField": "CLOSE"},
		"risk": {"killSwitch": false, "maxOrderQty": 500000000},
		"fee": {"bps": 5},
		"generator": {"assets": ["AAAUSD", "BBBUSD"], "basePrice": 250, "volatilityBps": 30, "seed": 42, "ticks": 100, "intervalMs": 250},
		"features": {"enablePersistence": true, "enableRiskChecks": false}
	}`
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(raw), 0o600))

	loaded, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "EUR", loaded.BaseCurrency)
	assert.Equal(t, model.Notional(10_000_000_000), loaded.InitialDeposit)
	assert.Equal(t, 48*time.Hour, loaded.Retention)
	assert.Equal(t, int64(10), loaded.SpreadBps)
	assert.Equal(t, market.PriceFieldClose, loaded.PriceField)
	assert.Equal(t, model.Quantity(500_000_000), loaded.Risk.MaxOrderQty)
	assert.Equal(t, int64(5), loaded.FeeBps)
	assert.Equal(t, []string{"AAAUSD", "BBBUSD"}, loaded.Generator.Assets)
	assert.Equal(t, model.Price(250_000_000), loaded.Generator.BasePrice)
	assert.Equal(t, int64(42), loaded.Generator.Seed)
	assert.Equal(t, 250*time.Millisecond, loaded.Generator.Interval)
	assert.True(t, loaded.Features.EnablePersistence)
	assert.False(t, loaded.Features.EnableRiskChecks)
}

func TestResolveRejectsBadValues(t *testing.T) {
	_, err := Resolve(FileConfig{Account: AccountConfig{RetentionHours: -1}})
	assert.Error(t, err)

	_, err = Resolve(FileConfig{Pricing: PricingConfig{SpreadBps: -1}})
	assert.Error(t, err)

	_, err = Resolve(FileConfig{Pricing: PricingConfig{PriceField: "MID"}})
	assert.Error(t, err)

	_, err = Resolve(FileConfig{Fee: FeeConfig{Bps: -1}})
	assert.Error(t, err)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}
