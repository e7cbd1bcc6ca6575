package services

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"activity-registration-storefront/internal/cart"
	"activity-registration-storefront/internal/checkout"
	"activity-registration-storefront/internal/models"
	"activity-registration-storefront/internal/repositories"
)

type fakeOrderWriter struct {
	payload *checkout.Payload
	qrURL   string
	err     error
}

func (f *fakeOrderWriter) CreateFromCheckout(payload *checkout.Payload, buildQRURL repositories.QRURLBuilder) (*models.Order, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.payload = payload
	f.qrURL = buildQRURL(payload.Order.OrderCode, payload.Order.TotalAmount)
	return &models.Order{
		ID:             "order-1",
		OrderCode:      payload.Order.OrderCode,
		RegistrationID: "reg-1",
		TotalAmount:    payload.Order.TotalAmount,
		PaymentStatus:  payload.Order.PaymentStatus,
		QRCodeURL:      f.qrURL,
	}, nil
}

type fakeUnitChecker struct {
	exists bool
	err    error
}

func (f *fakeUnitChecker) Exists(id string) (bool, error) {
	return f.exists, f.err
}

type fakeEmailSender struct {
	sentTo string
	err    error
}

func (f *fakeEmailSender) SendOrderConfirmation(toEmail, fullName string, order *models.Order, items []*models.OrderItem, link PaymentLink) error {
	f.sentTo = toEmail
	return f.err
}

func checkoutTestSnapshot(t *testing.T) cart.Snapshot {
	t.Helper()
	c := cart.New()
	_, err := c.AddItem("act-a", "Gala Dinner", models.TierMember, 500000, 2)
	require.NoError(t, err)
	_, err = c.AddItem("act-b", "Workshop", models.TierNonMember, 300000, 1)
	require.NoError(t, err)
	return c.Snapshot()
}

func checkoutTestRegistrant() models.RegistrationRequest {
	return models.RegistrationRequest{
		FullName:    "Nguyen Van An",
		PhoneNumber: "0912345678",
		Email:       "an.nguyen@example.com",
		UnitID:      "unit-1",
	}
}

func TestCheckoutService_Submit(t *testing.T) {
	writer := &fakeOrderWriter{}
	email := &fakeEmailSender{}
	service := NewCheckoutService(writer, &fakeUnitChecker{exists: true}, testQRService(), email, zap.NewNop())

	result, err := service.Submit(checkoutTestSnapshot(t), checkoutTestRegistrant())
	require.NoError(t, err)

	assert.Equal(t, models.Money(1300000), result.Order.TotalAmount)
	assert.Equal(t, models.PaymentPending, result.Order.PaymentStatus)
	assert.True(t, models.ValidOrderCode(result.Order.OrderCode))

	require.Len(t, result.Items, 2)
	assert.Equal(t, "Gala Dinner", result.Items[0].ActivityTitle)
	assert.Equal(t, models.Money(1000000), result.Items[0].Subtotal)
	assert.Equal(t, "Workshop", result.Items[1].ActivityTitle)

	// QR URL handed to the persistence layer carries the order code as
	// the transfer memo.
	assert.Contains(t, writer.qrURL, result.Order.OrderCode)
	assert.Equal(t, result.Order.TotalAmount, result.Payment.Amount)
	assert.Equal(t, result.Order.OrderCode, result.Payment.Description)

	assert.Equal(t, "an.nguyen@example.com", email.sentTo)
}

func TestCheckoutService_Submit_InvalidRegistrant(t *testing.T) {
	writer := &fakeOrderWriter{}
	service := NewCheckoutService(writer, &fakeUnitChecker{exists: true}, testQRService(), nil, zap.NewNop())

	registrant := checkoutTestRegistrant()
	registrant.PhoneNumber = "12345"

	_, err := service.Submit(checkoutTestSnapshot(t), registrant)
	assert.ErrorIs(t, err, models.ErrInvalidInput)
	assert.Nil(t, writer.payload)
}

func TestCheckoutService_Submit_UnknownUnit(t *testing.T) {
	writer := &fakeOrderWriter{}
	service := NewCheckoutService(writer, &fakeUnitChecker{exists: false}, testQRService(), nil, zap.NewNop())

	_, err := service.Submit(checkoutTestSnapshot(t), checkoutTestRegistrant())
	assert.ErrorIs(t, err, models.ErrUnitNotFound)
	assert.Nil(t, writer.payload)
}

func TestCheckoutService_Submit_EmptyCart(t *testing.T) {
	writer := &fakeOrderWriter{}
	service := NewCheckoutService(writer, &fakeUnitChecker{exists: true}, testQRService(), nil, zap.NewNop())

	_, err := service.Submit(cart.New().Snapshot(), checkoutTestRegistrant())
	assert.ErrorIs(t, err, models.ErrEmptyCart)
	assert.Nil(t, writer.payload)
}

func TestCheckoutService_Submit_PersistenceFailure(t *testing.T) {
	writer := &fakeOrderWriter{err: errors.New("connection reset")}
	service := NewCheckoutService(writer, &fakeUnitChecker{exists: true}, testQRService(), nil, zap.NewNop())

	_, err := service.Submit(checkoutTestSnapshot(t), checkoutTestRegistrant())
	assert.Error(t, err)
}

func TestCheckoutService_Submit_EmailFailureDoesNotFailCheckout(t *testing.T) {
	writer := &fakeOrderWriter{}
	email := &fakeEmailSender{err: errors.New("rate limited")}
	service := NewCheckoutService(writer, &fakeUnitChecker{exists: true}, testQRService(), email, zap.NewNop())

	result, err := service.Submit(checkoutTestSnapshot(t), checkoutTestRegistrant())
	require.NoError(t, err)
	assert.NotNil(t, result.Order)
}
