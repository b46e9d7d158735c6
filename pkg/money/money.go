package money

import (
	"github.com/shopspring/decimal"
)

// Money represents a sterling amount with financial precision.
type Money struct {
	decimal.Decimal
}

// New creates a Money from a float64.
func New(value float64) Money {
	return Money{decimal.NewFromFloat(value)}
}

// FromDecimal wraps an existing decimal.Decimal.
func FromDecimal(d decimal.Decimal) Money {
	return Money{d}
}

// FromString parses a Money from its string form.
func FromString(value string) (Money, error) {
	d, err := decimal.NewFromString(value)
	if err != nil {
		return Money{}, err
	}
	return Money{d}, nil
}

// Round rounds to pence, half away from zero.
func (m Money) Round() Money {
	return Money{m.Decimal.Round(2)}
}

// Add adds another amount.
func (m Money) Add(other Money) Money {
	return Money{m.Decimal.Add(other.Decimal)}
}

// Sub subtracts another amount.
func (m Money) Sub(other Money) Money {
	return Money{m.Decimal.Sub(other.Decimal)}
}

// Mul multiplies by a decimal factor.
func (m Money) Mul(factor decimal.Decimal) Money {
	return Money{m.Decimal.Mul(factor)}
}

// GreaterThan checks if this amount is greater than another.
func (m Money) GreaterThan(other Money) bool {
	return m.Decimal.GreaterThan(other.Decimal)
}

// LessThan checks if this amount is less than another.
func (m Money) LessThan(other Money) bool {
	return m.Decimal.LessThan(other.Decimal)
}

// Equal checks if this amount equals another.
func (m Money) Equal(other Money) bool {
	return m.Decimal.Equal(other.Decimal)
}

// IsZero checks if the amount is zero.
func (m Money) IsZero() bool {
	return m.Decimal.IsZero()
}

// IsNegative checks if the amount is negative.
func (m Money) IsNegative() bool {
	return m.Decimal.IsNegative()
}

// Min returns the smaller of two amounts.
func Min(a, b Money) Money {
	if a.LessThan(b) {
		return a
	}
	return b
}

// Max returns the larger of two amounts.
func Max(a, b Money) Money {
	if a.GreaterThan(b) {
		return a
	}
	return b
}

// Zero returns a zero amount.
func Zero() Money {
	return Money{decimal.Zero}
}

// String returns the amount fixed to pence.
func (m Money) String() string {
	return m.Decimal.StringFixed(2)
}

// Format renders the amount with a currency symbol.
func (m Money) Format() string {
	if m.IsNegative() {
		return "-£" + m.Decimal.Neg().StringFixed(2)
	}
	return "£" + m.String()
}
