package dataset

import (
	"math"
	"math/big"

	"github.com/shopspring/decimal"
)

// Summary holds the two dashboard metrics.
type Summary struct {
	TotalValue     int     `json:"totalValue"`
	AvgPerformance float64 `json:"avgPerformance"`
}

// Summarize computes the total of all values and the mean performance.
func Summarize(d Dataset) Summary {
	var s Summary
	if len(d.Records) == 0 {
		return s
	}

	var perf float64
	for _, r := range d.Records {
		s.TotalValue += r.Value
		perf += r.Performance
	}
	s.AvgPerformance = perf / float64(len(d.Records))
	return s
}

// AvgPerformanceDisplay formats the mean performance to two decimals,
// rounding the exact binary value half to even like printf's %.2f.
func (s Summary) AvgPerformanceDisplay() string {
	return exactDecimal(s.AvgPerformance).StringFixedBank(2)
}

// exactDecimal returns the exact decimal value of f. NewFromFloat would use
// the shortest representation instead, so 1.005 would round up.
func exactDecimal(f float64) decimal.Decimal {
	if f == 0 || math.IsNaN(f) || math.IsInf(f, 0) {
		return decimal.Zero
	}
	frac, exp := math.Frexp(f)
	mant := big.NewInt(int64(frac * (1 << 53)))
	exp -= 53

	// f = mant * 2^exp = mant * 5^-exp / 10^-exp
	if exp >= 0 {
		return decimal.NewFromBigInt(mant.Lsh(mant, uint(exp)), 0)
	}
	five := new(big.Int).Exp(big.NewInt(5), big.NewInt(int64(-exp)), nil)
	return decimal.NewFromBigInt(mant.Mul(mant, five), int32(exp))
}

// TotalValueDisplay formats the total value.
func (s Summary) TotalValueDisplay() string {
	return decimal.NewFromInt(int64(s.TotalValue)).String()
}
