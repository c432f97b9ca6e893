package quant

import (
	"github.com/shopspring/decimal"
)

// PriceE8 represents a price multiplied by 100,000,000 (10^8).
// E.g., 13.46 = 1,346,000,000 PriceE8.
// The scale matches the 8-digit fractional precision of the MBP output,
// so every representable output price round-trips exactly.
type PriceE8 int64

const PriceScale = 100_000_000

// ParsePrice converts a decimal price string to PriceE8.
// Note: Only used at the boundary. Internal logic uses PriceE8 directly.
// A blank or unparseable string reports ok=false; callers treat the
// event as price-less rather than synthesizing a zero.
func ParsePrice(s string) (PriceE8, bool) {
	if s == "" {
		return 0, false
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, false
	}
	return PriceE8(d.Shift(8).Round(0).IntPart()), true
}

// String renders the price with fixed 8-digit fractional precision.
func (p PriceE8) String() string {
	return decimal.New(int64(p), -8).StringFixed(8)
}
