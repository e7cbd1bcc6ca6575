package models

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"regexp"
	"time"
)

// PaymentStatus represents the payment status of an order
type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "pending"
	PaymentPaid      PaymentStatus = "paid"
	PaymentCancelled PaymentStatus = "cancelled"
)

// Order represents an order in the system. The order code doubles as
// the bank-transfer memo for the payment QR.
type Order struct {
	ID             string        `json:"id" db:"id"`
	OrderCode      string        `json:"order_code" db:"order_code"`
	RegistrationID string        `json:"registration_id" db:"registration_id"`
	TotalAmount    Money         `json:"total_amount" db:"total_amount"`
	PaymentStatus  PaymentStatus `json:"payment_status" db:"payment_status"`
	QRCodeURL      string        `json:"qr_code_url" db:"qr_code_url"`
	Notes          string        `json:"notes" db:"notes"`
	CreatedAt      time.Time     `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time     `json:"updated_at" db:"updated_at"`
}

// OrderItem represents one (activity, pricing tier) line of an order
type OrderItem struct {
	ID           string      `json:"id" db:"id"`
	OrderID      string      `json:"order_id" db:"order_id"`
	ActivityID   string      `json:"activity_id" db:"activity_id"`
	Quantity     int         `json:"quantity" db:"quantity"`
	PricePerUnit Money       `json:"price_per_unit" db:"price_per_unit"`
	Subtotal     Money       `json:"subtotal" db:"subtotal"`
	PricingTier  PricingTier `json:"pricing_tier" db:"pricing_tier"`
	CreatedAt    time.Time   `json:"created_at" db:"created_at"`

	// Joined display data
	ActivityTitle string `json:"activity_title,omitempty" db:"activity_title"`
}

// Attendee represents the person attending one activity of an order.
// Multiple attendees per registrant are not modeled; every line of a
// checkout carries the registrant as the primary attendee.
type Attendee struct {
	ID          string    `json:"id" db:"id"`
	OrderID     string    `json:"order_id" db:"order_id"`
	ActivityID  string    `json:"activity_id" db:"activity_id"`
	FullName    string    `json:"full_name" db:"full_name"`
	PhoneNumber string    `json:"phone_number" db:"phone_number"`
	Email       string    `json:"email" db:"email"`
	UnitID      string    `json:"unit_id" db:"unit_id"`
	IsPrimary   bool      `json:"is_primary" db:"is_primary"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}

// PaymentHistory records a payment status transition on an order
type PaymentHistory struct {
	ID             string    `json:"id" db:"id"`
	OrderID        string    `json:"order_id" db:"order_id"`
	PreviousStatus string    `json:"previous_status" db:"previous_status"`
	NewStatus      string    `json:"new_status" db:"new_status"`
	VerifiedBy     string    `json:"verified_by" db:"verified_by"`
	Notes          string    `json:"notes" db:"notes"`
	CreatedAt      time.Time `json:"created_at" db:"created_at"`
}

// OrderSummary is the denormalized row shown on admin order lists and
// public order lookup
type OrderSummary struct {
	OrderID       string        `json:"order_id" db:"order_id"`
	OrderCode     string        `json:"order_code" db:"order_code"`
	FullName      string        `json:"full_name" db:"full_name"`
	PhoneNumber   string        `json:"phone_number" db:"phone_number"`
	Email         string        `json:"email" db:"email"`
	UnitName      string        `json:"unit_name" db:"unit_name"`
	TotalAmount   Money         `json:"total_amount" db:"total_amount"`
	PaymentStatus PaymentStatus `json:"payment_status" db:"payment_status"`
	ItemCount     int           `json:"item_count" db:"item_count"`
	CreatedAt     time.Time     `json:"created_at" db:"created_at"`

	Items     []*OrderItem `json:"items,omitempty"`
	Attendees []*Attendee  `json:"attendees,omitempty"`
}

// AdminStats holds the aggregate numbers for the admin dashboard
type AdminStats struct {
	TotalActivities    int   `json:"total_activities"`
	TotalOrders        int   `json:"total_orders"`
	TotalRevenue       Money `json:"total_revenue"`
	PendingPayments    int   `json:"pending_payments"`
	TotalRegistrations int   `json:"total_registrations"`
	PaidOrders         int   `json:"paid_orders"`
}

// Order code format: REG-YYYYMMDD-XXXXXX (e.g. REG-20260829-042517)
var orderCodeRegex = regexp.MustCompile(`^REG-\d{8}-\d{6}$`)

// GenerateOrderCode generates a date-stamped order code with a random
// suffix. Uniqueness is probabilistic; the persistence layer retries
// on collision.
func GenerateOrderCode() string {
	now := time.Now()
	dateStr := now.Format("20060102")

	max := big.NewInt(1000000)
	randomNum, err := rand.Int(rand.Reader, max)
	if err != nil {
		// Fallback to timestamp-based generation if crypto/rand fails
		return fmt.Sprintf("REG-%s-%06d", dateStr, now.UnixNano()%1000000)
	}

	return fmt.Sprintf("REG-%s-%06d", dateStr, randomNum.Int64())
}

// ValidOrderCode reports whether code matches the order code format
func ValidOrderCode(code string) bool {
	return orderCodeRegex.MatchString(code)
}

// Validate validates the order data
func (o *Order) Validate() error {
	if !ValidOrderCode(o.OrderCode) {
		return errors.New("order code format is invalid")
	}

	if o.TotalAmount < 0 {
		return errors.New("total amount cannot be negative")
	}

	if o.RegistrationID == "" {
		return errors.New("registration id is required")
	}

	return validatePaymentStatus(o.PaymentStatus)
}

func validatePaymentStatus(status PaymentStatus) error {
	switch status {
	case PaymentPending, PaymentPaid, PaymentCancelled:
		return nil
	default:
		return errors.New("invalid payment status")
	}
}

// IsPending returns true if the order awaits payment verification
func (o *Order) IsPending() bool {
	return o.PaymentStatus == PaymentPending
}

// IsPaid returns true if payment has been verified
func (o *Order) IsPaid() bool {
	return o.PaymentStatus == PaymentPaid
}

// CanTransitionTo reports whether the order's payment status may move
// to the given status. Paid and cancelled are terminal except for
// reverting a mistaken verification back to pending.
func (o *Order) CanTransitionTo(status PaymentStatus) bool {
	if err := validatePaymentStatus(status); err != nil {
		return false
	}

	switch o.PaymentStatus {
	case PaymentPending:
		return status != PaymentPending
	case PaymentPaid, PaymentCancelled:
		return status == PaymentPending
	default:
		return false
	}
}

// StatusDisplayName returns a human-readable payment status
func (o *Order) StatusDisplayName() string {
	switch o.PaymentStatus {
	case PaymentPending:
		return "Pending Payment"
	case PaymentPaid:
		return "Paid"
	case PaymentCancelled:
		return "Cancelled"
	default:
		return string(o.PaymentStatus)
	}
}
