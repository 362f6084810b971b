// Package money provides functionality for handling monetary values.
//
// It is a value object that represents an amount of a single currency with two
// decimal places.
// Invariants:
//   - Amount is always stored as an integer count of minor units (cents).
//   - Arithmetic never silently overflows; every operation that could exceed
//     int64 returns an error instead.
package money

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	// ErrInvalidAmount is returned when an amount cannot be parsed as a decimal number.
	ErrInvalidAmount = errors.New("invalid amount")

	// ErrTooManyDecimals is returned when an amount carries more than two fractional digits.
	ErrTooManyDecimals = errors.New("amount has more than two decimal places")

	// ErrOverflow is returned when an arithmetic result exceeds the maximum safe value.
	ErrOverflow = errors.New("amount exceeds maximum safe value")

	// ErrUnderflow is returned when an operation would drive a non-negative amount below zero.
	ErrUnderflow = errors.New("amount would become negative")
)

// minorUnits is the number of fractional digits carried by every amount.
const minorUnits = 2

// Money represents a monetary value as an integer count of minor units (cents).
// The zero value is a valid Money of zero cents.
type Money struct {
	cents int64
}

// Zero is the zero monetary value.
var Zero = Money{}

// FromCents creates a Money from a raw count of minor units. Used for
// repository hydration and test setup.
func FromCents(cents int64) Money {
	return Money{cents: cents}
}

// FromDecimalString parses a decimal string such as "12.34" into Money.
// Invariants enforced:
//   - The string must be a plain decimal number.
//   - At most two fractional digits may be present.
//   - The value must fit in an int64 count of cents.
func FromDecimalString(s string) (Money, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Zero, fmt.Errorf("%w: empty string", ErrInvalidAmount)
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Zero, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}
	return fromDecimal(d)
}

func fromDecimal(d decimal.Decimal) (Money, error) {
	shifted := d.Shift(minorUnits)
	if !shifted.IsInteger() {
		return Zero, fmt.Errorf("%w: %s", ErrTooManyDecimals, d)
	}
	big := shifted.BigInt()
	if !big.IsInt64() {
		return Zero, fmt.Errorf("%w: %s", ErrOverflow, d)
	}
	return Money{cents: big.Int64()}, nil
}

// Cents returns the amount as a count of minor units.
func (m Money) Cents() int64 {
	return m.cents
}

// Add returns the sum of two amounts, or ErrOverflow if the result does not
// fit in an int64 count of cents.
func (m Money) Add(other Money) (Money, error) {
	sum := m.cents + other.cents
	if (other.cents > 0 && sum < m.cents) || (other.cents < 0 && sum > m.cents) {
		return Zero, ErrOverflow
	}
	return Money{cents: sum}, nil
}

// Sub returns the difference of two amounts. The result may be negative; call
// sites that disallow negative results must check IsNegative or use Compare
// beforehand.
func (m Money) Sub(other Money) (Money, error) {
	diff := m.cents - other.cents
	if other.cents < 0 && diff < m.cents {
		return Zero, ErrOverflow
	}
	if other.cents > 0 && diff > m.cents {
		return Zero, ErrUnderflow
	}
	return Money{cents: diff}, nil
}

// Compare returns -1, 0, or 1 when m is less than, equal to, or greater than other.
func (m Money) Compare(other Money) int {
	switch {
	case m.cents < other.cents:
		return -1
	case m.cents > other.cents:
		return 1
	default:
		return 0
	}
}

// Negate returns the amount with its sign flipped.
func (m Money) Negate() Money {
	return Money{cents: -m.cents}
}

// IsPositive returns true if the amount is greater than zero.
func (m Money) IsPositive() bool { return m.cents > 0 }

// IsNegative returns true if the amount is less than zero.
func (m Money) IsNegative() bool { return m.cents < 0 }

// IsZero returns true if the amount is zero.
func (m Money) IsZero() bool { return m.cents == 0 }

// LessThan returns true if m is strictly less than other.
func (m Money) LessThan(other Money) bool { return m.cents < other.cents }

// Equals returns true if both amounts are identical.
func (m Money) Equals(other Money) bool { return m.cents == other.cents }

// ToDecimalString formats the amount with exactly two fractional digits.
func (m Money) ToDecimalString() string {
	return decimal.New(m.cents, -minorUnits).StringFixed(minorUnits)
}

// String implements fmt.Stringer.
func (m Money) String() string {
	return m.ToDecimalString()
}

// MarshalJSON encodes the amount as a decimal string with two fractional
// digits, the canonical wire form.
func (m Money) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.ToDecimalString())
}

// UnmarshalJSON accepts either a JSON number or a decimal string.
func (m *Money) UnmarshalJSON(data []byte) error {
	var raw json.Number
	dec := json.NewDecoder(strings.NewReader(string(data)))
	dec.UseNumber()
	if err := dec.Decode(&raw); err != nil {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("%w: %s", ErrInvalidAmount, data)
		}
		raw = json.Number(s)
	}
	parsed, err := FromDecimalString(raw.String())
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}
