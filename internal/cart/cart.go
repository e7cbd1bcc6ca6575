// Package cart implements the in-memory shopping cart aggregate: an
// ordered set of (activity, pricing tier) line items plus running
// totals that stay consistent with the items through every mutation.
//
// A cart belongs to exactly one session and is driven synchronously
// by that session's requests, so the aggregate itself carries no
// locking. Every mutation either succeeds with consistent state or
// fails leaving the cart untouched.
package cart

import (
	"fmt"
	"time"

	"activity-registration-storefront/internal/models"
)

// NoticeDuration bounds how long an add-to-cart toast is displayed.
const NoticeDuration = 2500 * time.Millisecond

// Notice is the transient UI feedback emitted by AddItem. It is not
// part of the durable cart state. DurationMS is in milliseconds so the
// JSON value matches what a frontend toast timer expects.
type Notice struct {
	Message    string `json:"message"`
	DurationMS int64  `json:"duration_ms"`
}

// Snapshot is an immutable read-only view of the cart for display or
// projection. Mutating a snapshot never affects the cart it came from.
type Snapshot struct {
	Items       []LineItem   `json:"items"`
	TotalAmount models.Money `json:"total_amount"`
	TotalItems  int          `json:"total_items"`
}

// Cart is the aggregate root. Totals are maintained incrementally by
// delta on every mutation; they always equal the sums over the items.
type Cart struct {
	items       []LineItem
	totalAmount models.Money
	totalItems  int
}

// New creates an empty cart.
func New() *Cart {
	return &Cart{}
}

// FromSnapshot rebuilds a cart from a previously taken snapshot,
// re-deriving the totals from the line items rather than trusting the
// stored ones. Invalid lines are rejected wholesale.
func FromSnapshot(snap Snapshot) (*Cart, error) {
	c := New()
	for _, item := range snap.Items {
		li, err := NewLineItem(item.ActivityID, item.Title, item.PricingTier, item.UnitPrice, item.Quantity)
		if err != nil {
			return nil, fmt.Errorf("invalid cart line for activity %s: %w", item.ActivityID, err)
		}
		if c.find(li.ActivityID, li.PricingTier) != -1 {
			return nil, fmt.Errorf("duplicate cart line for activity %s: %w", item.ActivityID, models.ErrInvalidInput)
		}
		if err := c.appendItem(li); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// AddItem adds a selection to the cart. A selection matching an
// existing (activity, tier) line increments that line's quantity;
// otherwise a new line is appended in insertion order. Returns the
// transient notice to show the user.
func (c *Cart) AddItem(activityID, title string, tier models.PricingTier, unitPrice models.Money, quantity int) (Notice, error) {
	li, err := NewLineItem(activityID, title, tier, unitPrice, quantity)
	if err != nil {
		return Notice{}, err
	}

	if idx := c.find(activityID, tier); idx != -1 {
		merged, err := c.items[idx].WithQuantity(c.items[idx].Quantity + quantity)
		if err != nil {
			return Notice{}, err
		}
		if err := c.applyDelta(merged.UnitPrice, quantity); err != nil {
			return Notice{}, err
		}
		c.items[idx] = merged
	} else {
		if err := c.appendItem(li); err != nil {
			return Notice{}, err
		}
	}

	return Notice{
		Message:    fmt.Sprintf("Added %d x %s to cart", quantity, title),
		DurationMS: NoticeDuration.Milliseconds(),
	}, nil
}

// UpdateQuantity sets the quantity of an existing line. Quantities
// below 1 are rejected with no state change; removing a line goes
// through RemoveItem, never through a zero quantity. Updating a line
// that is not in the cart is a no-op.
func (c *Cart) UpdateQuantity(activityID string, tier models.PricingTier, quantity int) error {
	if quantity < 1 {
		return models.ErrInvalidQuantity
	}

	idx := c.find(activityID, tier)
	if idx == -1 {
		return nil
	}

	updated, err := c.items[idx].WithQuantity(quantity)
	if err != nil {
		return err
	}

	diff := quantity - c.items[idx].Quantity
	if err := c.applyDelta(updated.UnitPrice, diff); err != nil {
		return err
	}
	c.items[idx] = updated
	return nil
}

// RemoveItem removes the (activity, tier) line from the cart. Removing
// an absent line is a no-op, so removal is idempotent.
func (c *Cart) RemoveItem(activityID string, tier models.PricingTier) {
	idx := c.find(activityID, tier)
	if idx == -1 {
		return
	}

	item := c.items[idx]
	// Contribution of an existing line never underflows the totals.
	c.totalAmount -= item.UnitPrice * models.Money(item.Quantity)
	c.totalItems -= item.Quantity
	c.items = append(c.items[:idx], c.items[idx+1:]...)
}

// Clear resets the cart to empty. Called after successful checkout
// and on explicit user request only; failed checkouts keep the cart.
func (c *Cart) Clear() {
	c.items = nil
	c.totalAmount = 0
	c.totalItems = 0
}

// Snapshot returns a deep copy of the current cart state.
func (c *Cart) Snapshot() Snapshot {
	items := make([]LineItem, len(c.items))
	copy(items, c.items)
	return Snapshot{
		Items:       items,
		TotalAmount: c.totalAmount,
		TotalItems:  c.totalItems,
	}
}

// IsEmpty returns true when the cart holds no line items.
func (c *Cart) IsEmpty() bool {
	return len(c.items) == 0
}

// TotalAmount returns the running sum of all line totals.
func (c *Cart) TotalAmount() models.Money {
	return c.totalAmount
}

// TotalItems returns the running sum of all line quantities.
func (c *Cart) TotalItems() int {
	return c.totalItems
}

func (c *Cart) find(activityID string, tier models.PricingTier) int {
	for i := range c.items {
		if c.items[i].matches(activityID, tier) {
			return i
		}
	}
	return -1
}

// appendItem adds a new line and folds its contribution into the
// totals, validating the arithmetic before any field is written.
func (c *Cart) appendItem(li LineItem) error {
	lineTotal, err := li.LineTotal()
	if err != nil {
		return err
	}
	newAmount, err := models.AddAmounts(c.totalAmount, lineTotal)
	if err != nil {
		return err
	}

	c.items = append(c.items, li)
	c.totalAmount = newAmount
	c.totalItems += li.Quantity
	return nil
}

// applyDelta adjusts the totals by quantityDiff units of unitPrice.
// The new totals are fully computed and checked before being
// committed, so a failed mutation leaves the cart unchanged.
func (c *Cart) applyDelta(unitPrice models.Money, quantityDiff int) error {
	if quantityDiff == 0 {
		return nil
	}

	magnitude := quantityDiff
	if magnitude < 0 {
		magnitude = -magnitude
	}
	delta, err := models.MultiplyPrice(unitPrice, magnitude)
	if err != nil {
		return err
	}

	if quantityDiff > 0 {
		newAmount, err := models.AddAmounts(c.totalAmount, delta)
		if err != nil {
			return err
		}
		c.totalAmount = newAmount
		c.totalItems += quantityDiff
		return nil
	}

	newAmount := c.totalAmount - delta
	newItems := c.totalItems + quantityDiff
	if newAmount < 0 || newItems < 0 {
		return models.ErrNegativeAmount
	}
	c.totalAmount = newAmount
	c.totalItems = newItems
	return nil
}
