package pricing

import (
	"fmt"
	"math"
)

// DefaultCurrency is used when a catalog row does not carry its own code.
const DefaultCurrency = "USD"

// Money is an amount in minor units (cents for USD) plus a currency code.
// All engine arithmetic stays in int64 minor units; floats never touch an
// amount between input and the final rounding step.
type Money struct {
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
}

func NewMoney(amount int64, currency string) Money {
	if currency == "" {
		currency = DefaultCurrency
	}
	return Money{Amount: amount, Currency: currency}
}

func (m Money) IsZero() bool { return m.Amount == 0 }

func (m Money) Neg() Money { return Money{Amount: -m.Amount, Currency: m.Currency} }

// Add fails on currency mismatch instead of silently mixing units.
func (m Money) Add(other Money) (Money, error) {
	if other.Amount == 0 {
		return m, nil
	}
	if m.Amount == 0 && m.Currency == "" {
		return other, nil
	}
	if m.Currency != other.Currency {
		return Money{}, fmt.Errorf("currency mismatch: %s vs %s", m.Currency, other.Currency)
	}
	return Money{Amount: m.Amount + other.Amount, Currency: m.Currency}, nil
}

func (m Money) MulInt(n int64) Money {
	return Money{Amount: m.Amount * n, Currency: m.Currency}
}

func (m Money) String() string {
	return fmt.Sprintf("%d.%02d %s", m.Amount/100, abs64(m.Amount%100), m.Currency)
}

func abs64(n int64) int64 {
	if n < 0 {
		return -n
	}
	return n
}

// bpScale is the denominator for basis-point percentages (100% == 10000 bp).
const bpScale int64 = 10_000

// checkedMul guards the fixed-point accumulator against overflow. An overflow
// here is a defect in the request itself (absurd amounts), surfaced as a fatal
// error per the aggregation contract.
func checkedMul(a, b int64) (int64, error) {
	if a == 0 || b == 0 {
		return 0, nil
	}
	if abs64(a) > math.MaxInt64/abs64(b) {
		return 0, fmt.Errorf("money arithmetic overflow: %d * %d", a, b)
	}
	return a * b, nil
}

// roundHalfUpDiv rounds n/scale to the nearest integer, half away from zero.
// This is the single rounding rule of the engine, applied once per composed
// price, never per sub-step.
func roundHalfUpDiv(n, scale int64) int64 {
	if scale <= 1 {
		return n
	}
	if n >= 0 {
		return (n + scale/2) / scale
	}
	return -((-n + scale/2) / scale)
}

// BasisPoints converts a user-facing decimal percentage (e.g. 12.5) into
// basis points. This is the only float conversion in the package and it never
// touches a monetary amount.
func BasisPoints(percent float64) int64 {
	return int64(math.Round(percent * 100))
}
