package models

import "errors"

// Common errors used throughout the application
var (
	ErrActivityNotFound = errors.New("activity not found")
	ErrOrderNotFound    = errors.New("order not found")
	ErrUnitNotFound     = errors.New("unit not found")
	ErrUnauthorized     = errors.New("unauthorized access")
	ErrInvalidInput     = errors.New("invalid input")
	ErrDuplicateEntry   = errors.New("duplicate entry")
)

// Cart and checkout errors. Handlers map each of these onto a
// user-facing message; anything else is wrapped and logged.
var (
	ErrInvalidQuantity      = errors.New("quantity must be at least 1")
	ErrNegativeAmount       = errors.New("amount cannot be negative")
	ErrAmountOverflow       = errors.New("amount exceeds the representable range")
	ErrEmptyCart            = errors.New("cart is empty")
	ErrIncompleteRegistrant = errors.New("registrant is missing required fields")
	ErrTotalsMismatch       = errors.New("cart totals do not match line items")
)
