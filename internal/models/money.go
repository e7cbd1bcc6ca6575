package models

import (
	"fmt"
	"math"
	"strconv"
)

// Money is an amount in whole Vietnamese dong. VND has no subunit in
// practice, so all currency math is plain integer arithmetic; floats
// are never used for amounts.
type Money int64

// AddAmounts adds two amounts. Negative operands and overflow are
// rejected so a cart total can never go negative or wrap.
func AddAmounts(a, b Money) (Money, error) {
	if a < 0 || b < 0 {
		return 0, ErrNegativeAmount
	}
	if a > math.MaxInt64-b {
		return 0, ErrAmountOverflow
	}
	return a + b, nil
}

// MultiplyPrice computes unitPrice * quantity for a line total.
// Quantity must be at least 1.
func MultiplyPrice(unitPrice Money, quantity int) (Money, error) {
	if quantity < 1 {
		return 0, ErrInvalidQuantity
	}
	if unitPrice < 0 {
		return 0, ErrNegativeAmount
	}
	if unitPrice > 0 && Money(quantity) > math.MaxInt64/unitPrice {
		return 0, ErrAmountOverflow
	}
	return unitPrice * Money(quantity), nil
}

// FormatVND renders an amount for display, e.g. 1300000 -> "1.300.000 ₫".
// Display only; never parsed back.
func FormatVND(amount Money) string {
	digits := strconv.FormatInt(int64(amount), 10)
	negative := false
	if len(digits) > 0 && digits[0] == '-' {
		negative = true
		digits = digits[1:]
	}

	var grouped []byte
	for i, d := range []byte(digits) {
		if i > 0 && (len(digits)-i)%3 == 0 {
			grouped = append(grouped, '.')
		}
		grouped = append(grouped, d)
	}

	if negative {
		return fmt.Sprintf("-%s ₫", grouped)
	}
	return fmt.Sprintf("%s ₫", grouped)
}
