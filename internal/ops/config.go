package ops

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/yanun0323/decimal"

	"main/internal/market"
	"main/internal/model"
	"main/internal/risk"
)

// FileConfig mirrors the JSON config layout. Human-entered amounts are
// decimal strings and converted to scaled integers on load.
type FileConfig struct {
	Account   AccountConfig      `json:"account"`
	Pricing   PricingConfig      `json:"pricing"`
	Risk      risk.Config        `json:"risk"`
	Fee       FeeConfig          `json:"fee"`
	Generator GeneratorConfig    `json:"generator"`
	Store     StoreConfig        `json:"store"`
	Features  FeatureFlagsConfig `json:"features"`
}

// AccountConfig describes the simulated account.
type AccountConfig struct {
	BaseCurrency   string          `json:"baseCurrency"`
	InitialDeposit decimal.Decimal `json:"initialDeposit"`
	RetentionHours int             `json:"retentionHours"`
}

// PricingConfig selects the pricing engine. Zero spread means no-cost
// pricing.
type PricingConfig struct {
	SpreadBps  int64  `json:"spreadBps"`
	PriceField string `json:"priceField"`
}

// FeeConfig describes the fee model in basis points of traded notional.
type FeeConfig struct {
	Bps int64 `json:"bps"`
}

// GeneratorConfig drives the synthetic market data feed.
type GeneratorConfig struct {
	Assets        []string        `json:"assets"`
	BasePrice     decimal.Decimal `json:"basePrice"`
	VolatilityBps int64           `json:"volatilityBps"`
	Seed          int64           `json:"seed"`
	Ticks         int             `json:"ticks"`
	IntervalMs    int64           `json:"intervalMs"`
}

// StoreConfig holds the Postgres connection settings for snapshot
// persistence.
type StoreConfig struct {
	Host     string `json:"host"`
	Port     int    `json:"port"`
	User     string `json:"user"`
	Password string `json:"password"`
	Database string `json:"database"`
}

// FeatureFlagsConfig captures optional runtime flags.
type FeatureFlagsConfig struct {
	EnablePersistence *bool `json:"enablePersistence"`
	EnableRiskChecks  *bool `json:"enableRiskChecks"`
}

// FeatureFlags are resolved runtime flags.
type FeatureFlags struct {
	EnablePersistence bool
	EnableRiskChecks  bool
}

// Loaded is the resolved configuration ready for use.
type Loaded struct {
	BaseCurrency   string
	InitialDeposit model.Notional
	Retention      time.Duration
	SpreadBps      int64
	PriceField     market.PriceField
	Risk           risk.Config
	FeeBps         int64
	Generator      GeneratorSpec
	Store          StoreConfig
	Features       FeatureFlags
}

// GeneratorSpec is the resolved generator definition.
type GeneratorSpec struct {
	Assets        []string
	BasePrice     model.Price
	VolatilityBps int64
	Seed          int64
	Ticks         int
	Interval      time.Duration
}

// Load reads a JSON config file and resolves defaults.
func Load(path string) (Loaded, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Loaded{}, err
	}
	var cfg FileConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Loaded{}, err
	}
	return Resolve(cfg)
}

// Resolve validates a FileConfig and fills defaults.
func Resolve(cfg FileConfig) (Loaded, error) {
	baseCurrency := cfg.Account.BaseCurrency
	if baseCurrency == "" {
		baseCurrency = "USD"
	}
	deposit, err := model.ParseNotional(cfg.Account.InitialDeposit.String())
	if err != nil {
		return Loaded{}, fmt.Errorf("invalid initial deposit: %w", err)
	}
	if cfg.Account.RetentionHours < 0 {
		return Loaded{}, fmt.Errorf("retentionHours must be >= 0")
	}
	retentionHours := cfg.Account.RetentionHours
	if retentionHours == 0 {
		retentionHours = 24 * 365
	}

	if cfg.Pricing.SpreadBps < 0 {
		return Loaded{}, fmt.Errorf("spreadBps must be >= 0")
	}
	field, err := resolvePriceField(cfg.Pricing.PriceField)
	if err != nil {
		return Loaded{}, err
	}

	if cfg.Fee.Bps < 0 {
		return Loaded{}, fmt.Errorf("fee bps must be >= 0")
	}

	gen, err := resolveGenerator(cfg.Generator)
	if err != nil {
		return Loaded{}, err
	}

	return Loaded{
		BaseCurrency:   baseCurrency,
		InitialDeposit: deposit,
		Retention:      time.Duration(retentionHours) * time.Hour,
		SpreadBps:      cfg.Pricing.SpreadBps,
		PriceField:     field,
		Risk:           cfg.Risk,
		FeeBps:         cfg.Fee.Bps,
		Generator:      gen,
		Store:          cfg.Store,
		Features:       resolveFeatures(cfg.Features),
	}, nil
}

func resolvePriceField(name string) (market.PriceField, error) {
	switch name {
	case "", "REF":
		return market.PriceFieldRef, nil
	case "OPEN":
		return market.PriceFieldOpen, nil
	case "HIGH":
		return market.PriceFieldHigh, nil
	case "LOW":
		return market.PriceFieldLow, nil
	case "CLOSE":
		return market.PriceFieldClose, nil
	default:
		return 0, fmt.Errorf("unknown price field: %s", name)
	}
}

func resolveGenerator(cfg GeneratorConfig) (GeneratorSpec, error) {
	assets := cfg.Assets
	if len(assets) == 0 {
		assets = []string{"SIMUSD"}
	}
	basePrice, err := model.ParsePrice(cfg.BasePrice.String())
	if err != nil {
		return GeneratorSpec{}, fmt.Errorf("invalid base price: %w", err)
	}
	if basePrice <= 0 {
		basePrice = 100 * 1_000_000
	}
	volatility := cfg.VolatilityBps
	if volatility <= 0 {
		volatility = 20
	}
	ticks := cfg.Ticks
	if ticks <= 0 {
		ticks = 1000
	}
	interval := time.Duration(cfg.IntervalMs) * time.Millisecond
	if interval <= 0 {
		interval = time.Second
	}
	return GeneratorSpec{
		Assets:        assets,
		BasePrice:     basePrice,
		VolatilityBps: volatility,
		Seed:          cfg.Seed,
		Ticks:         ticks,
		Interval:      interval,
	}, nil
}

func resolveFeatures(cfg FeatureFlagsConfig) FeatureFlags {
	flags := FeatureFlags{
		EnablePersistence: false,
		EnableRiskChecks:  true,
	}
	if cfg.EnablePersistence != nil {
		flags.EnablePersistence = *cfg.EnablePersistence
	}
	if cfg.EnableRiskChecks != nil {
		flags.EnableRiskChecks = *cfg.EnableRiskChecks
	}
	return flags
}
