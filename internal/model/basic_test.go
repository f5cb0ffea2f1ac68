package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePrice(t *testing.T) {
	for _, tc := range []struct {
		in   string
		want Price
	}{
		{"100", 100_000_000},
		{"100.5", 100_500_000},
		{"0.000001", 1},
		{"-12.25", -12_250_000},
		{"", 0},
		{"  3 ", 3_000_000},
		{"1.0000019", 1_000_001}, // extra digits truncated
	} {
		got, err := ParsePrice(tc.in)
		require.NoError(t, err, tc.in)
		assert.Equal(t, tc.want, got, tc.in)
	}
}

func TestParsePriceInvalid(t *testing.T) {
	_, err := ParsePrice("abc")
	assert.Error(t, err)
}

func TestPriceString(t *testing.T) {
	assert.Equal(t, "100.500000", Price(100_500_000).String())
	assert.Equal(t, "-0.000001", Price(-1).String())
	assert.Equal(t, "0.000000", Price(0).String())
}

func TestQuantityStringRoundTrip(t *testing.T) {
	q, err := ParseQuantity("2.5")
	require.NoError(t, err)
	assert.Equal(t, Quantity(250_000_000), q)
	assert.Equal(t, "2.50000000", q.String())
}

func TestNotionalOf(t *testing.T) {
	price, _ := ParsePrice("100")
	qty, _ := ParseQuantity("50")

	n, overflow := NotionalOf(price, qty)
	require.False(t, overflow)
	assert.Equal(t, "5000.000000", n.String())

	n, overflow = NotionalOf(price, -qty)
	require.False(t, overflow)
	assert.Equal(t, "-5000.000000", n.String())

	_, overflow = NotionalOf(Price(maxInt64), Quantity(maxInt64))
	assert.True(t, overflow)
}

func TestPNLOf(t *testing.T) {
	entry, _ := ParsePrice("100")
	exit, _ := ParsePrice("110")
	qty, _ := ParseQuantity("10")

	assert.Equal(t, "100.000000", PNLOf(entry, exit, qty, 1).String())
	assert.Equal(t, "-100.000000", PNLOf(entry, exit, qty, -1).String())
}

func TestWeightedAvg(t *testing.T) {
	p1, _ := ParsePrice("100")
	p2, _ := ParsePrice("200")
	q, _ := ParseQuantity("1")

	avg := WeightedAvg(p1, q, p2, q)
	assert.Equal(t, "150.000000", avg.String())

	avg = WeightedAvg(p1, 3*q, p2, q)
	assert.Equal(t, "125.000000", avg.String())
}

func TestApplyBps(t *testing.T) {
	assert.Equal(t, int64(10_050), ApplyBps(10_000, 50))
	assert.Equal(t, int64(9_950), ApplyBps(10_000, -50))
	assert.Equal(t, int64(10_000), ApplyBps(10_000, 0))
}

func TestQuantitySign(t *testing.T) {
	assert.Equal(t, 1, Quantity(5).Sign())
	assert.Equal(t, -1, Quantity(-5).Sign())
	assert.Equal(t, 0, Quantity(0).Sign())
	assert.Equal(t, Quantity(5), Quantity(-5).Abs())
}
