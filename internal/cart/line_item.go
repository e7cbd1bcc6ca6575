package cart

import (
	"activity-registration-storefront/internal/models"
)

// LineItem represents one (activity, pricing tier) selection in the
// cart. Title and unit price are snapshots captured at add time, so a
// cart survives activity edits elsewhere in the system. All fields
// except Quantity are immutable once created.
type LineItem struct {
	ActivityID  string             `json:"activity_id"`
	Title       string             `json:"title"`
	PricingTier models.PricingTier `json:"pricing_tier"`
	UnitPrice   models.Money       `json:"unit_price"`
	Quantity    int                `json:"quantity"`
}

// NewLineItem creates a line item, rejecting non-positive quantities
// and negative prices.
func NewLineItem(activityID, title string, tier models.PricingTier, unitPrice models.Money, quantity int) (LineItem, error) {
	if quantity < 1 {
		return LineItem{}, models.ErrInvalidQuantity
	}
	if unitPrice < 0 {
		return LineItem{}, models.ErrNegativeAmount
	}
	if !models.ValidTier(tier) {
		return LineItem{}, models.ErrInvalidInput
	}

	return LineItem{
		ActivityID:  activityID,
		Title:       title,
		PricingTier: tier,
		UnitPrice:   unitPrice,
		Quantity:    quantity,
	}, nil
}

// WithQuantity returns a copy of the line item with the new quantity.
func (li LineItem) WithQuantity(quantity int) (LineItem, error) {
	if quantity < 1 {
		return LineItem{}, models.ErrInvalidQuantity
	}
	li.Quantity = quantity
	return li, nil
}

// LineTotal returns unitPrice * quantity.
func (li LineItem) LineTotal() (models.Money, error) {
	return models.MultiplyPrice(li.UnitPrice, li.Quantity)
}

// matches reports whether the line item is the cart entry for the
// given (activity, tier) pair.
func (li LineItem) matches(activityID string, tier models.PricingTier) bool {
	return li.ActivityID == activityID && li.PricingTier == tier
}
