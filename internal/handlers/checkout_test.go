package handlers

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"activity-registration-storefront/internal/checkout"
	"activity-registration-storefront/internal/config"
	"activity-registration-storefront/internal/models"
	"activity-registration-storefront/internal/repositories"
	"activity-registration-storefront/internal/services"
)

type stubOrderWriter struct {
	created int
}

func (s *stubOrderWriter) CreateFromCheckout(payload *checkout.Payload, buildQRURL repositories.QRURLBuilder) (*models.Order, error) {
	s.created++
	return &models.Order{
		ID:             "order-1",
		OrderCode:      payload.Order.OrderCode,
		RegistrationID: "reg-1",
		TotalAmount:    payload.Order.TotalAmount,
		PaymentStatus:  payload.Order.PaymentStatus,
		QRCodeURL:      buildQRURL(payload.Order.OrderCode, payload.Order.TotalAmount),
	}, nil
}

type stubUnitChecker struct{ exists bool }

func (s *stubUnitChecker) Exists(id string) (bool, error) { return s.exists, nil }

func testCheckoutFixture(t *testing.T) (*CartHandler, *CheckoutHandler, *stubOrderWriter) {
	t.Helper()

	cartHandler := testCartHandler()

	qr := services.NewVietQRService(config.VietQRConfig{
		BankCode:        "VCB",
		AccountNumber:   "0123456789",
		BeneficiaryName: "HOI SU KIEN",
	})
	writer := &stubOrderWriter{}
	checkoutService := services.NewCheckoutService(writer, &stubUnitChecker{exists: true}, qr, nil, zap.NewNop())

	checkoutHandler := NewCheckoutHandler(checkoutService, cartHandler.store, zap.NewNop())
	return cartHandler, checkoutHandler, writer
}

func validCheckoutBody() models.RegistrationRequest {
	return models.RegistrationRequest{
		FullName:    "Nguyen Van An",
		PhoneNumber: "0912345678",
		Email:       "an.nguyen@example.com",
		UnitID:      "unit-1",
	}
}

func TestCheckoutHandler_Submit(t *testing.T) {
	cartHandler, checkoutHandler, writer := testCheckoutFixture(t)

	rec, _ := doJSON(t, cartHandler.AddToCart, http.MethodPost, "/api/cart/items", cartItemRequest{
		ActivityID:  "act-1",
		PricingTier: models.TierMember,
		Quantity:    2,
	}, nil)
	cookies := rec.Result().Cookies()

	rec2, resp2 := doJSON(t, checkoutHandler.Submit, http.MethodPost, "/api/checkout", validCheckoutBody(), cookies)
	require.Equal(t, http.StatusCreated, rec2.Code)
	require.True(t, resp2.Success)
	assert.Equal(t, 1, writer.created)

	raw, err := json.Marshal(resp2.Data)
	require.NoError(t, err)
	var result services.CheckoutResult
	require.NoError(t, json.Unmarshal(raw, &result))

	assert.Equal(t, models.Money(1000000), result.Order.TotalAmount)
	assert.True(t, models.ValidOrderCode(result.Order.OrderCode))
	assert.Contains(t, result.Payment.QRURL, result.Order.OrderCode)

	// Successful checkout clears the session cart.
	rec3, resp3 := doJSON(t, cartHandler.ViewCart, http.MethodGet, "/api/cart", nil, rec2.Result().Cookies())
	require.Equal(t, http.StatusOK, rec3.Code)
	view := cartFromResponse(t, resp3.Data)
	assert.Empty(t, view.Items)
}

func TestCheckoutHandler_Submit_EmptyCart(t *testing.T) {
	_, checkoutHandler, writer := testCheckoutFixture(t)

	rec, resp := doJSON(t, checkoutHandler.Submit, http.MethodPost, "/api/checkout", validCheckoutBody(), nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Cart is empty", resp.Error)
	assert.Equal(t, 0, writer.created)
}

func TestCheckoutHandler_Submit_InvalidRegistrantKeepsCart(t *testing.T) {
	cartHandler, checkoutHandler, writer := testCheckoutFixture(t)

	rec, _ := doJSON(t, cartHandler.AddToCart, http.MethodPost, "/api/cart/items", cartItemRequest{
		ActivityID:  "act-1",
		PricingTier: models.TierMember,
		Quantity:    1,
	}, nil)
	cookies := rec.Result().Cookies()

	body := validCheckoutBody()
	body.PhoneNumber = "12345"

	rec2, resp2 := doJSON(t, checkoutHandler.Submit, http.MethodPost, "/api/checkout", body, cookies)
	assert.Equal(t, http.StatusBadRequest, rec2.Code)
	assert.False(t, resp2.Success)
	assert.Equal(t, 0, writer.created)

	// Failed checkout leaves the cart intact for retry.
	rec3, resp3 := doJSON(t, cartHandler.ViewCart, http.MethodGet, "/api/cart", nil, cookies)
	require.Equal(t, http.StatusOK, rec3.Code)
	view := cartFromResponse(t, resp3.Data)
	require.Len(t, view.Items, 1)
}
