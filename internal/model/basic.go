package model

import (
	"strconv"
	"strings"

	"main/pkg/exception"
)

// Fixed scales for the scaled-integer value types. A Price of 1_000_000
// represents 1.0 units of currency, a Quantity of 100_000_000 represents
// 1.0 units of the asset.
const (
	PriceScale    = 6
	QuantityScale = 8
	NotionalScale = 6
	FeeScale      = 6
)

const maxInt64 = int64(^uint64(0) >> 1)

// Price is a scaled integer with PriceScale decimal places.
type Price int64

func (p Price) AppendString(buf []byte) []byte {
	return appendScaledInt(buf, int64(p), PriceScale)
}

func (p Price) String() string {
	return string(p.AppendString(nil))
}

// Quantity is a signed scaled integer with QuantityScale decimal places.
// Positive is buy, negative is sell.
type Quantity int64

func (q Quantity) AppendString(buf []byte) []byte {
	return appendScaledInt(buf, int64(q), QuantityScale)
}

func (q Quantity) String() string {
	return string(q.AppendString(nil))
}

func (q Quantity) Abs() Quantity {
	if q < 0 {
		return -q
	}
	return q
}

// Sign returns 1 for buy, -1 for sell, 0 for zero.
func (q Quantity) Sign() int {
	switch {
	case q > 0:
		return 1
	case q < 0:
		return -1
	default:
		return 0
	}
}

// Notional is a scaled integer with NotionalScale decimal places.
type Notional int64

func (n Notional) AppendString(buf []byte) []byte {
	return appendScaledInt(buf, int64(n), NotionalScale)
}

func (n Notional) String() string {
	return string(n.AppendString(nil))
}

// Fee is a scaled integer with FeeScale decimal places.
type Fee int64

func (f Fee) AppendString(buf []byte) []byte {
	return appendScaledInt(buf, int64(f), FeeScale)
}

func (f Fee) String() string {
	return string(f.AppendString(nil))
}

const quantityUnit = int64(100_000_000)

// NotionalOf multiplies a price by a signed quantity. The second return
// value reports overflow.
func NotionalOf(price Price, qty Quantity) (Notional, bool) {
	p := int64(price)
	q := int64(qty)
	if p == 0 || q == 0 {
		return 0, false
	}
	ap, aq := p, q
	if ap < 0 {
		ap = -ap
	}
	if aq < 0 {
		aq = -aq
	}
	if ap > maxInt64/aq {
		return 0, true
	}
	return Notional(p * q / quantityUnit), false
}

// PNLOf returns the realized result of closing qty units bought at entry
// and sold at exit. qty is the absolute closed quantity, direction gives
// the sign (1 long, -1 short).
func PNLOf(entry, exit Price, qty Quantity, direction int) Notional {
	diff := int64(exit) - int64(entry)
	if direction < 0 {
		diff = -diff
	}
	return Notional(diff * int64(qty) / quantityUnit)
}

// WeightedAvg returns the quantity-weighted average of two prices.
func WeightedAvg(p1 Price, q1 Quantity, p2 Price, q2 Quantity) Price {
	a1 := int64(q1.Abs())
	a2 := int64(q2.Abs())
	total := a1 + a2
	if total == 0 {
		return 0
	}
	return Price((int64(p1)*a1 + int64(p2)*a2) / total)
}

// ApplyBps scales a value by (10000+bps)/10000 without floating point.
func ApplyBps(v int64, bps int64) int64 {
	return v + v*bps/10_000
}

// ParsePrice parses a decimal string into a Price.
func ParsePrice(s string) (Price, error) {
	v, err := parseScaled(s, PriceScale)
	return Price(v), err
}

// ParseQuantity parses a decimal string into a Quantity.
func ParseQuantity(s string) (Quantity, error) {
	v, err := parseScaled(s, QuantityScale)
	return Quantity(v), err
}

// ParseNotional parses a decimal string into a Notional.
func ParseNotional(s string) (Notional, error) {
	v, err := parseScaled(s, NotionalScale)
	return Notional(v), err
}

func parseScaled(s string, scale int) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}

	neg := false
	switch s[0] {
	case '-':
		neg = true
		s = s[1:]
	case '+':
		s = s[1:]
	}

	whole, frac, _ := strings.Cut(s, ".")
	if len(frac) > scale {
		frac = frac[:scale]
	}
	for len(frac) < scale {
		frac += "0"
	}

	if whole == "" {
		whole = "0"
	}
	combined := whole + frac
	v, err := strconv.ParseInt(combined, 10, 64)
	if err != nil {
		return 0, exception.ErrModelInvalidDecimal
	}
	if neg {
		v = -v
	}
	return v, nil
}

func appendScaledInt(buf []byte, value int64, scale int) []byte {
	if scale <= 0 {
		return strconv.AppendInt(buf, value, 10)
	}

	neg := value < 0
	u := uint64(value)
	if neg {
		u = uint64(^value) + 1
	}

	var tmp [32]byte
	digits := strconv.AppendUint(tmp[:0], u, 10)

	if neg {
		buf = append(buf, '-')
	}

	if len(digits) <= scale {
		buf = append(buf, '0', '.')
		for i := 0; i < scale-len(digits); i++ {
			buf = append(buf, '0')
		}
		buf = append(buf, digits...)
		return buf
	}

	idx := len(digits) - scale
	buf = append(buf, digits[:idx]...)
	buf = append(buf, '.')
	buf = append(buf, digits[idx:]...)
	return buf
}
