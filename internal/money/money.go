package money

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	ErrInvalid   = errors.New("invalid amount")
	ErrNegative  = errors.New("negative amount")
	ErrPrecision = errors.New("amount has more than 2 decimal places")
	ErrRange     = errors.New("amount out of range")
)

var maxCents = decimal.NewFromInt(math.MaxInt64)

// Cents is an amount of Euro in minor units. Every computation on money
// happens on Cents; decimals only appear when parsing or printing.
type Cents int64

const CentsPerEuro = 100

// Parse reads a major-unit amount such as "3.87" or "12".
func Parse(s string) (Cents, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalid, s)
	}
	return FromDecimal(d)
}

// FromDecimal converts a major-unit decimal to cents. Values below zero or
// finer than a cent are rejected, and so are values whose cents do not
// fit in an int64.
func FromDecimal(d decimal.Decimal) (Cents, error) {
	if d.IsNegative() {
		return 0, fmt.Errorf("%w: %s", ErrNegative, d.String())
	}
	if !d.Round(2).Equal(d) {
		return 0, fmt.Errorf("%w: %s", ErrPrecision, d.String())
	}
	cents := d.Shift(2)
	if cents.GreaterThan(maxCents) {
		return 0, fmt.Errorf("%w: %s", ErrRange, d.String())
	}
	return Cents(cents.IntPart()), nil
}

// FromFloat is a convenience for literals in tests and the demo. The float
// is rounded to the nearest cent.
func FromFloat(f float64) Cents {
	return Cents(decimal.NewFromFloat(f).Shift(2).Round(0).IntPart())
}

// Decimal returns the major-unit value.
func (c Cents) Decimal() decimal.Decimal {
	return decimal.New(int64(c), -2)
}

// String formats with exactly two decimals, e.g. 813 -> "8.13".
func (c Cents) String() string {
	return c.Decimal().StringFixed(2)
}

// Label is the shortest major-unit form, e.g. 50 -> "0.5", 500 -> "5".
func (c Cents) Label() string {
	return c.Decimal().String()
}

func (c Cents) MarshalJSON() ([]byte, error) {
	return []byte(c.String()), nil
}

func (c *Cents) UnmarshalJSON(b []byte) error {
	var d decimal.Decimal
	if err := d.UnmarshalJSON(b); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalid, string(b))
	}
	v, err := FromDecimal(d)
	if err != nil {
		return err
	}
	*c = v
	return nil
}
