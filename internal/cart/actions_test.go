package cart

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"activity-registration-storefront/internal/models"
)

func TestCart_Apply(t *testing.T) {
	c := New()

	notice, err := c.Apply(Action{
		Type:        ActionAddItem,
		ActivityID:  "act-1",
		Title:       "Gala Dinner",
		PricingTier: models.TierMember,
		UnitPrice:   500000,
		Quantity:    2,
	})
	require.NoError(t, err)
	assert.Equal(t, "Added 2 x Gala Dinner to cart", notice.Message)

	_, err = c.Apply(Action{
		Type:        ActionUpdateQuantity,
		ActivityID:  "act-1",
		PricingTier: models.TierMember,
		Quantity:    3,
	})
	require.NoError(t, err)
	assert.Equal(t, models.Money(1500000), c.TotalAmount())

	_, err = c.Apply(Action{
		Type:        ActionRemoveItem,
		ActivityID:  "act-1",
		PricingTier: models.TierMember,
	})
	require.NoError(t, err)
	assert.True(t, c.IsEmpty())

	mustAdd(t, c, "act-2", "Workshop", models.TierNonMember, 300000, 1)
	_, err = c.Apply(Action{Type: ActionClearCart})
	require.NoError(t, err)
	assert.True(t, c.IsEmpty())
}

func TestCart_Apply_UnknownAction(t *testing.T) {
	c := New()
	_, err := c.Apply(Action{Type: "CHECKOUT"})
	assert.ErrorIs(t, err, models.ErrInvalidInput)
}
