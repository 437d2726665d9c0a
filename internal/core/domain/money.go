package domain

import (
	"bytes"
	"errors"
	"fmt"
	"math"
	"math/bits"
	"strconv"
)

// Money is an amount in cents. It renders as a decimal number with two
// fractional digits on the wire (e.g. 301.00).
type Money int64

// ErrAmountTooLarge reports arithmetic that would leave the range Money can
// hold.
var ErrAmountTooLarge = errors.New("amount exceeds the supported range")

// MoneyFromFloat converts a decimal amount to cents, rounding half away from zero.
func MoneyFromFloat(f float64) Money {
	return Money(math.Round(f * 100))
}

// Dollars converts a whole-unit amount to Money.
func Dollars(n int64) Money {
	return Money(n * 100)
}

// Add returns m+n, or ErrAmountTooLarge when the sum overflows.
func (m Money) Add(n Money) (Money, error) {
	if (n > 0 && m > math.MaxInt64-n) || (n < 0 && m < math.MinInt64-n) {
		return 0, ErrAmountTooLarge
	}
	return m + n, nil
}

// Times returns m*qty for a non-negative amount and quantity, or
// ErrAmountTooLarge when the product overflows.
func (m Money) Times(qty int) (Money, error) {
	if m < 0 || qty < 0 {
		return 0, ErrInvalidAmount
	}
	hi, lo := bits.Mul64(uint64(m), uint64(qty))
	if hi != 0 || lo > math.MaxInt64 {
		return 0, ErrAmountTooLarge
	}
	return Money(lo), nil
}

func (m Money) Float() float64 {
	return float64(m) / 100
}

func (m Money) String() string {
	return strconv.FormatFloat(m.Float(), 'f', 2, 64)
}

func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(m.String()), nil
}

// UnmarshalJSON accepts a JSON number or a quoted decimal string.
func (m *Money) UnmarshalJSON(b []byte) error {
	b = bytes.Trim(b, `"`)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*m = 0
		return nil
	}
	f, err := strconv.ParseFloat(string(b), 64)
	if err != nil {
		return fmt.Errorf("money: invalid amount %q", b)
	}
	if math.IsNaN(f) || math.Abs(f*100) >= math.MaxInt64 {
		return fmt.Errorf("money: %w", ErrAmountTooLarge)
	}
	*m = MoneyFromFloat(f)
	return nil
}
