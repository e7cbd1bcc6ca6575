package cart

import (
	"fmt"

	"activity-registration-storefront/internal/models"
)

// ActionType tags a cart action.
type ActionType string

const (
	ActionAddItem        ActionType = "ADD_ITEM"
	ActionUpdateQuantity ActionType = "UPDATE_QUANTITY"
	ActionRemoveItem     ActionType = "REMOVE_ITEM"
	ActionClearCart      ActionType = "CLEAR_CART"
)

// Action is the tagged union driving the cart through its single
// transition function. Page-level code builds actions from user input
// and feeds them to Apply; which fields are read depends on Type.
type Action struct {
	Type ActionType `json:"type"`

	// ADD_ITEM
	Title     string       `json:"title,omitempty"`
	UnitPrice models.Money `json:"unit_price,omitempty"`

	// ADD_ITEM, UPDATE_QUANTITY, REMOVE_ITEM
	ActivityID  string             `json:"activity_id,omitempty"`
	PricingTier models.PricingTier `json:"pricing_tier,omitempty"`

	// ADD_ITEM, UPDATE_QUANTITY
	Quantity int `json:"quantity,omitempty"`
}

// Apply dispatches an action to the matching cart operation. The
// returned notice is non-empty only for ADD_ITEM.
func (c *Cart) Apply(action Action) (Notice, error) {
	switch action.Type {
	case ActionAddItem:
		return c.AddItem(action.ActivityID, action.Title, action.PricingTier, action.UnitPrice, action.Quantity)
	case ActionUpdateQuantity:
		return Notice{}, c.UpdateQuantity(action.ActivityID, action.PricingTier, action.Quantity)
	case ActionRemoveItem:
		c.RemoveItem(action.ActivityID, action.PricingTier)
		return Notice{}, nil
	case ActionClearCart:
		c.Clear()
		return Notice{}, nil
	default:
		return Notice{}, fmt.Errorf("unknown cart action %q: %w", action.Type, models.ErrInvalidInput)
	}
}
