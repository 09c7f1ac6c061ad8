package domain

import (
	"log/slog"

	"github.com/shopspring/decimal"
)

const (
	// MaxAmountScale is the most decimal places an amount may carry.
	MaxAmountScale = 8
	// MaxAmountIntegerDigits bounds the integer part of an amount.
	MaxAmountIntegerDigits = 18
)

// Money is an exact decimal amount. The zero value is a valid zero amount.
type Money struct {
	value decimal.Decimal
}

// NewMoney wraps a decimal amount.
func NewMoney(value decimal.Decimal) Money {
	return Money{value: value}
}

// NewMoneyFromInt is a shorthand for whole amounts.
func NewMoneyFromInt(value int64) Money {
	return Money{value: decimal.NewFromInt(value)}
}

// ZeroMoney is the initial balance of every account.
func ZeroMoney() Money {
	return Money{value: decimal.Zero}
}

func (m Money) Add(other Money) Money { return Money{value: m.value.Add(other.value)} }

func (m Money) Sub(other Money) Money { return Money{value: m.value.Sub(other.value)} }

// IsPositive reports whether the amount is strictly greater than zero.
func (m Money) IsPositive() bool { return m.value.IsPositive() }

func (m Money) IsNegative() bool { return m.value.IsNegative() }

func (m Money) GreaterThanOrEqual(other Money) bool {
	return m.value.GreaterThanOrEqual(other.value)
}

// Equal compares numerically, so 1.0 equals 1.
func (m Money) Equal(other Money) bool { return m.value.Equal(other.value) }

func (m Money) String() string { return m.value.String() }

// InRange reports whether the amount has at most MaxAmountScale decimal places
// and MaxAmountIntegerDigits integer digits. It never rescales the value.
func (m Money) InRange() bool {
	exp := int64(m.value.Exponent())
	if exp < -MaxAmountScale {
		return false
	}
	return int64(m.value.NumDigits())+exp <= MaxAmountIntegerDigits
}

// LogValue keeps out-of-range amounts from being expanded into log lines.
func (m Money) LogValue() slog.Value {
	if !m.InRange() {
		return slog.StringValue("out of range")
	}
	return slog.StringValue(m.value.String())
}

// MarshalJSON always emits a quoted decimal string so no client parses it as a float.
func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(`"` + m.value.String() + `"`), nil
}

// UnmarshalJSON accepts both a JSON number and a quoted decimal string.
func (m *Money) UnmarshalJSON(data []byte) error {
	return m.value.UnmarshalJSON(data)
}
