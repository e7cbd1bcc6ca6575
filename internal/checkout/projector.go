// Package checkout turns a cart snapshot plus registrant details into
// the order graph the persistence layer writes: one registration, one
// order, and one order item and attendee per cart line. The projection
// is pure; persistence and cart clearing are the caller's steps.
package checkout

import (
	"strings"

	"activity-registration-storefront/internal/cart"
	"activity-registration-storefront/internal/models"
)

// CodeGenerator produces an order code. The projector calls it exactly
// once per projection and never retries; collision handling belongs to
// the persistence layer.
type CodeGenerator func() string

// OrderRecord is the order row to insert, always created pending.
type OrderRecord struct {
	OrderCode     string               `json:"order_code"`
	TotalAmount   models.Money         `json:"total_amount"`
	PaymentStatus models.PaymentStatus `json:"payment_status"`
}

// ItemRecord is one order_items row to insert.
type ItemRecord struct {
	ActivityID   string             `json:"activity_id"`
	Quantity     int                `json:"quantity"`
	PricePerUnit models.Money       `json:"price_per_unit"`
	Subtotal     models.Money       `json:"subtotal"`
	PricingTier  models.PricingTier `json:"pricing_tier"`
}

// AttendeeRecord is one attendees row to insert. Every record of a
// payload denotes the same registrant as primary attendee.
type AttendeeRecord struct {
	ActivityID  string `json:"activity_id"`
	FullName    string `json:"full_name"`
	PhoneNumber string `json:"phone_number"`
	Email       string `json:"email"`
	UnitID      string `json:"unit_id"`
	IsPrimary   bool   `json:"is_primary"`
}

// Payload is the checkout-ready order graph consumed by the
// persistence layer as a single atomic write.
type Payload struct {
	Registration models.RegistrationRequest `json:"registration"`
	Order        OrderRecord                `json:"order"`
	Items        []ItemRecord               `json:"items"`
	Attendees    []AttendeeRecord           `json:"attendees"`
}

// Project builds the checkout payload from the cart snapshot and the
// already-validated registrant data.
//
// The registrant's mandatory fields are re-checked, and the snapshot's
// running totals are re-summed against its line items before the
// totals are trusted; a disagreement means the aggregate is broken and
// surfaces as ErrTotalsMismatch.
func Project(snap cart.Snapshot, registrant models.RegistrationRequest, generateCode CodeGenerator) (*Payload, error) {
	if len(snap.Items) == 0 {
		return nil, models.ErrEmptyCart
	}
	if !registrant.Complete() {
		return nil, models.ErrIncompleteRegistrant
	}

	var sumAmount models.Money
	sumItems := 0
	items := make([]ItemRecord, 0, len(snap.Items))

	for _, line := range snap.Items {
		subtotal, err := models.MultiplyPrice(line.UnitPrice, line.Quantity)
		if err != nil {
			return nil, err
		}
		sumAmount, err = models.AddAmounts(sumAmount, subtotal)
		if err != nil {
			return nil, err
		}
		sumItems += line.Quantity

		items = append(items, ItemRecord{
			ActivityID:   line.ActivityID,
			Quantity:     line.Quantity,
			PricePerUnit: line.UnitPrice,
			Subtotal:     subtotal,
			PricingTier:  line.PricingTier,
		})
	}

	if sumAmount != snap.TotalAmount || sumItems != snap.TotalItems {
		return nil, models.ErrTotalsMismatch
	}

	attendees := make([]AttendeeRecord, 0, len(snap.Items))
	for _, line := range snap.Items {
		attendees = append(attendees, AttendeeRecord{
			ActivityID:  line.ActivityID,
			FullName:    strings.TrimSpace(registrant.FullName),
			PhoneNumber: strings.TrimSpace(registrant.PhoneNumber),
			Email:       strings.TrimSpace(registrant.Email),
			UnitID:      registrant.UnitID,
			IsPrimary:   true,
		})
	}

	return &Payload{
		Registration: registrant,
		Order: OrderRecord{
			OrderCode:     generateCode(),
			TotalAmount:   snap.TotalAmount,
			PaymentStatus: models.PaymentPending,
		},
		Items:     items,
		Attendees: attendees,
	}, nil
}
