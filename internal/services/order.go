package services

import (
	"errors"
	"fmt"
	"strings"

	"activity-registration-storefront/internal/models"
	"activity-registration-storefront/internal/repositories"
)

// OrderRepository interface for order data operations
type OrderRepository interface {
	GetByCode(orderCode string) (*models.OrderSummary, error)
	SearchByPhone(phoneNumber string) ([]*models.OrderSummary, error)
	List(filters repositories.OrderSearchFilters) ([]*models.OrderSummary, error)
	ListParticipants(activityID string) ([]*models.Participant, error)
	UpdatePaymentStatus(orderID string, newStatus models.PaymentStatus, verifiedBy, notes string) (*models.Order, error)
	GetAdminStats() (*models.AdminStats, error)
	GetActivityStats() ([]*models.ActivityStats, error)
}

// Order lookup keys accepted by the public search endpoint
const (
	SearchByOrderCode   = "order_code"
	SearchByPhoneNumber = "phone_number"
)

// OrderService handles order lookup and back-office order management
type OrderService struct {
	orderRepo OrderRepository
}

// NewOrderService creates a new order service
func NewOrderService(orderRepo OrderRepository) *OrderService {
	return &OrderService{orderRepo: orderRepo}
}

// Lookup finds orders by order code or registrant phone number
func (s *OrderService) Lookup(searchBy, value string) ([]*models.OrderSummary, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, fmt.Errorf("search value is required: %w", models.ErrInvalidInput)
	}

	switch searchBy {
	case SearchByOrderCode:
		summary, err := s.orderRepo.GetByCode(value)
		if err != nil {
			return nil, err
		}
		return []*models.OrderSummary{summary}, nil
	case SearchByPhoneNumber:
		if !models.IsValidPhoneNumber(value) {
			return nil, fmt.Errorf("phone number format is invalid: %w", models.ErrInvalidInput)
		}
		summaries, err := s.orderRepo.SearchByPhone(strings.ReplaceAll(value, " ", ""))
		if err != nil {
			return nil, err
		}
		if len(summaries) == 0 {
			return nil, models.ErrOrderNotFound
		}
		return summaries, nil
	default:
		return nil, fmt.Errorf("unknown search key %q: %w", searchBy, models.ErrInvalidInput)
	}
}

// List retrieves order summaries for the admin order list
func (s *OrderService) List(filters repositories.OrderSearchFilters) ([]*models.OrderSummary, error) {
	return s.orderRepo.List(filters)
}

// Participants returns the public roster for one activity
func (s *OrderService) Participants(activityID string) ([]*models.Participant, error) {
	if activityID == "" {
		return nil, models.ErrActivityNotFound
	}
	return s.orderRepo.ListParticipants(activityID)
}

// VerifyPayment transitions an order's payment status on behalf of an
// administrator
func (s *OrderService) VerifyPayment(orderID string, newStatus models.PaymentStatus, verifiedBy, notes string) (*models.Order, error) {
	if orderID == "" {
		return nil, models.ErrOrderNotFound
	}
	if verifiedBy == "" {
		return nil, errors.New("verifier is required")
	}
	return s.orderRepo.UpdatePaymentStatus(orderID, newStatus, verifiedBy, notes)
}

// DashboardStats returns the admin dashboard aggregates plus the most
// recent orders
func (s *OrderService) DashboardStats(recentLimit int) (*models.AdminStats, []*models.OrderSummary, error) {
	stats, err := s.orderRepo.GetAdminStats()
	if err != nil {
		return nil, nil, err
	}

	if recentLimit <= 0 {
		recentLimit = 10
	}
	recent, err := s.orderRepo.List(repositories.OrderSearchFilters{Limit: recentLimit, SortDesc: true})
	if err != nil {
		return nil, nil, err
	}

	return stats, recent, nil
}

// ActivityStats returns per-activity registration statistics
func (s *OrderService) ActivityStats() ([]*models.ActivityStats, error) {
	return s.orderRepo.GetActivityStats()
}
