package number

import (
	"github.com/shopspring/decimal"
)

const (
	// Precision fractional digits of a ledger amount
	Precision int32 = 8
	// MaxPrecision fractional digits kept by ratio math
	MaxPrecision int32 = 16
)

// MaxAmount largest representable ledger amount, (2^64-1) / 1e8
var MaxAmount = Decimal("184467440737.09551615")

func Decimal(v string) decimal.Decimal {
	d, _ := decimal.NewFromString(v)
	return d
}

func Ceil(d decimal.Decimal, precision int32) decimal.Decimal {
	return d.Shift(precision).Ceil().Shift(-precision)
}

// Amount truncate to ledger precision
func Amount(d decimal.Decimal) decimal.Decimal {
	return d.Truncate(Precision)
}

// Representable 0 <= d <= MaxAmount
func Representable(d decimal.Decimal) bool {
	return !d.IsNegative() && d.LessThanOrEqual(MaxAmount)
}
