package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"activity-registration-storefront/internal/models"
)

func TestResendEmailService_GetFromField(t *testing.T) {
	service := NewResendEmailService(ResendConfig{
		FromEmail: "noreply@example.com",
		FromName:  "Registration Desk",
	})
	assert.Equal(t, "Registration Desk <noreply@example.com>", service.getFromField())

	service = NewResendEmailService(ResendConfig{FromEmail: "noreply@example.com"})
	assert.Equal(t, "noreply@example.com", service.getFromField())
}

func TestResendEmailService_SkipsEmptyRecipient(t *testing.T) {
	service := NewResendEmailService(ResendConfig{APIKey: "re_test"})

	err := service.SendOrderConfirmation("", "Nguyen Van An", &models.Order{}, nil, PaymentLink{})
	assert.NoError(t, err)
}

func TestResendEmailService_RequiresAPIKey(t *testing.T) {
	service := NewResendEmailService(ResendConfig{})

	err := service.SendOrderConfirmation("an@example.com", "Nguyen Van An", &models.Order{}, nil, PaymentLink{})
	assert.Error(t, err)
}

func TestConfirmationHTML_EscapesUserInput(t *testing.T) {
	order := &models.Order{OrderCode: "REG-20260829-ABC123", TotalAmount: 500000}
	items := []*models.OrderItem{
		{ActivityTitle: "Gala <b>Dinner</b>", PricingTier: models.TierMember, Quantity: 1, Subtotal: 500000},
	}

	body := confirmationHTML(`Nguyen <script>alert("x")</script>`, order, items, PaymentLink{})

	assert.NotContains(t, body, "<script>")
	assert.NotContains(t, body, "Gala <b>Dinner</b>")
	assert.Contains(t, body, "Nguyen &lt;script&gt;")
	assert.Contains(t, body, "Gala &lt;b&gt;Dinner&lt;/b&gt;")
	assert.Contains(t, body, "REG-20260829-ABC123")
}
