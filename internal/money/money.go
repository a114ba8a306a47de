// Package money converts between the decimal amount strings used on the
// wire ("12.34") and the int64 minor currency units used everywhere inside
// the service. The ledger itself never sees a decimal.
package money

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

var (
	// ErrTooPrecise is returned for amounts with sub-cent precision.
	ErrTooPrecise = errors.New("money: amount has more than two decimal places")

	// ErrOutOfRange is returned for amounts that do not fit in int64
	// minor units.
	ErrOutOfRange = errors.New("money: amount out of range")
)

// minorFactor shifts a decimal amount into minor units (two places).
var minorFactor = decimal.New(1, 2)

// Parse converts a decimal string like "12.34" into minor units (1234).
func Parse(s string) (int64, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, fmt.Errorf("money: invalid amount %q: %w", s, err)
	}

	minor := d.Mul(minorFactor)
	if !minor.IsInteger() {
		return 0, ErrTooPrecise
	}

	big := minor.BigInt()
	if !big.IsInt64() {
		return 0, ErrOutOfRange
	}
	return big.Int64(), nil
}

// Format renders minor units as a two-place decimal string: 1234 -> "12.34".
func Format(minor int64) string {
	return decimal.New(minor, -2).StringFixed(2)
}

// SplitEqually divides total minor units across n shares, distributing the
// remainder one unit at a time to the earliest shares so the parts always
// sum exactly to total. Returns nil when n <= 0.
func SplitEqually(total int64, n int) []int64 {
	if n <= 0 {
		return nil
	}

	base := total / int64(n)
	remainder := total % int64(n)

	shares := make([]int64, n)
	for i := range shares {
		shares[i] = base
		if int64(i) < remainder {
			shares[i]++
		}
	}
	return shares
}
