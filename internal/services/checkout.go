package services

import (
	"fmt"

	"go.uber.org/zap"

	"activity-registration-storefront/internal/cart"
	"activity-registration-storefront/internal/checkout"
	"activity-registration-storefront/internal/models"
	"activity-registration-storefront/internal/repositories"
)

// OrderWriter is the persistence collaborator for a checkout: it
// writes the projected order graph atomically or reports failure as a
// whole.
type OrderWriter interface {
	CreateFromCheckout(payload *checkout.Payload, buildQRURL repositories.QRURLBuilder) (*models.Order, error)
}

// UnitChecker verifies the registrant's organizational unit exists
type UnitChecker interface {
	Exists(id string) (bool, error)
}

// ConfirmationSender emails the registrant after a successful checkout
type ConfirmationSender interface {
	SendOrderConfirmation(toEmail, fullName string, order *models.Order, items []*models.OrderItem, link PaymentLink) error
}

// CheckoutResult is everything the confirmation page shows: the order,
// its lines, and the bank transfer details with the QR image URL.
type CheckoutResult struct {
	Order   *models.Order       `json:"order"`
	Items   []*models.OrderItem `json:"items"`
	Payment PaymentLink         `json:"payment"`
}

// CheckoutService drives a checkout attempt: validate the registrant,
// project the cart into an order graph, persist it, and send the
// confirmation email. The caller clears the session cart only after
// Submit returns successfully; any failure leaves the cart intact for
// retry.
type CheckoutService struct {
	orders       OrderWriter
	units        UnitChecker
	qr           *VietQRService
	email        ConfirmationSender
	generateCode checkout.CodeGenerator
	logger       *zap.Logger
}

// NewCheckoutService creates a new checkout service. A nil email
// sender disables confirmation emails.
func NewCheckoutService(orders OrderWriter, units UnitChecker, qr *VietQRService, email ConfirmationSender, logger *zap.Logger) *CheckoutService {
	return &CheckoutService{
		orders:       orders,
		units:        units,
		qr:           qr,
		email:        email,
		generateCode: models.GenerateOrderCode,
		logger:       logger,
	}
}

// Submit runs one checkout attempt for the given cart snapshot and
// registrant. It performs no cart mutation; persistence is atomic from
// the caller's point of view.
func (s *CheckoutService) Submit(snap cart.Snapshot, registrant models.RegistrationRequest) (*CheckoutResult, error) {
	if err := registrant.Validate(); err != nil {
		return nil, fmt.Errorf("%v: %w", err, models.ErrInvalidInput)
	}

	exists, err := s.units.Exists(registrant.UnitID)
	if err != nil {
		return nil, fmt.Errorf("failed to verify unit: %w", err)
	}
	if !exists {
		return nil, models.ErrUnitNotFound
	}

	payload, err := checkout.Project(snap, registrant, s.generateCode)
	if err != nil {
		return nil, err
	}

	order, err := s.orders.CreateFromCheckout(payload, func(orderCode string, amount models.Money) string {
		return s.qr.BuildQuickLink(amount, orderCode).QRURL
	})
	if err != nil {
		return nil, fmt.Errorf("failed to persist order: %w", err)
	}

	items := make([]*models.OrderItem, 0, len(payload.Items))
	for i, item := range payload.Items {
		items = append(items, &models.OrderItem{
			OrderID:       order.ID,
			ActivityID:    item.ActivityID,
			Quantity:      item.Quantity,
			PricePerUnit:  item.PricePerUnit,
			Subtotal:      item.Subtotal,
			PricingTier:   item.PricingTier,
			ActivityTitle: snap.Items[i].Title,
		})
	}

	link := s.qr.BuildQuickLink(order.TotalAmount, order.OrderCode)

	// Confirmation email is best-effort; a delivery failure never
	// fails the checkout.
	if s.email != nil {
		if err := s.email.SendOrderConfirmation(registrant.Email, registrant.FullName, order, items, link); err != nil {
			s.logger.Warn("failed to send confirmation email",
				zap.String("order_code", order.OrderCode),
				zap.Error(err))
		}
	}

	s.logger.Info("order created",
		zap.String("order_code", order.OrderCode),
		zap.Int64("total_amount", int64(order.TotalAmount)),
		zap.Int("items", len(items)))

	return &CheckoutResult{
		Order:   order,
		Items:   items,
		Payment: link,
	}, nil
}
