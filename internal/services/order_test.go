package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"activity-registration-storefront/internal/models"
	"activity-registration-storefront/internal/repositories"
)

type fakeOrderRepo struct {
	byCode  map[string]*models.OrderSummary
	byPhone map[string][]*models.OrderSummary

	listFilters repositories.OrderSearchFilters
	listResult  []*models.OrderSummary

	updated      *models.Order
	stats        *models.AdminStats
	participants map[string][]*models.Participant
}

func (f *fakeOrderRepo) GetByCode(orderCode string) (*models.OrderSummary, error) {
	summary, ok := f.byCode[orderCode]
	if !ok {
		return nil, models.ErrOrderNotFound
	}
	return summary, nil
}

func (f *fakeOrderRepo) SearchByPhone(phoneNumber string) ([]*models.OrderSummary, error) {
	return f.byPhone[phoneNumber], nil
}

func (f *fakeOrderRepo) List(filters repositories.OrderSearchFilters) ([]*models.OrderSummary, error) {
	f.listFilters = filters
	return f.listResult, nil
}

func (f *fakeOrderRepo) ListParticipants(activityID string) ([]*models.Participant, error) {
	return f.participants[activityID], nil
}

func (f *fakeOrderRepo) UpdatePaymentStatus(orderID string, newStatus models.PaymentStatus, verifiedBy, notes string) (*models.Order, error) {
	f.updated = &models.Order{ID: orderID, PaymentStatus: newStatus}
	return f.updated, nil
}

func (f *fakeOrderRepo) GetAdminStats() (*models.AdminStats, error) {
	return f.stats, nil
}

func (f *fakeOrderRepo) GetActivityStats() ([]*models.ActivityStats, error) {
	return nil, nil
}

func TestOrderService_Lookup_ByCode(t *testing.T) {
	repo := &fakeOrderRepo{byCode: map[string]*models.OrderSummary{
		"REG-20260829-000001": {OrderCode: "REG-20260829-000001", FullName: "Nguyen Van An"},
	}}
	service := NewOrderService(repo)

	summaries, err := service.Lookup(SearchByOrderCode, "REG-20260829-000001")
	require.NoError(t, err)
	require.Len(t, summaries, 1)
	assert.Equal(t, "Nguyen Van An", summaries[0].FullName)

	_, err = service.Lookup(SearchByOrderCode, "REG-20260829-999999")
	assert.ErrorIs(t, err, models.ErrOrderNotFound)
}

func TestOrderService_Lookup_ByPhone(t *testing.T) {
	repo := &fakeOrderRepo{byPhone: map[string][]*models.OrderSummary{
		"0912345678": {{OrderCode: "REG-20260829-000001"}},
	}}
	service := NewOrderService(repo)

	// Embedded spaces are stripped before the repository sees the number.
	summaries, err := service.Lookup(SearchByPhoneNumber, "091 234 5678")
	require.NoError(t, err)
	require.Len(t, summaries, 1)

	_, err = service.Lookup(SearchByPhoneNumber, "0999999999")
	assert.ErrorIs(t, err, models.ErrOrderNotFound)
}

func TestOrderService_Lookup_Rejections(t *testing.T) {
	service := NewOrderService(&fakeOrderRepo{})

	_, err := service.Lookup(SearchByOrderCode, "   ")
	assert.ErrorIs(t, err, models.ErrInvalidInput)

	_, err = service.Lookup(SearchByPhoneNumber, "12345")
	assert.ErrorIs(t, err, models.ErrInvalidInput)

	_, err = service.Lookup("email", "an@example.com")
	assert.ErrorIs(t, err, models.ErrInvalidInput)
}

func TestOrderService_Participants(t *testing.T) {
	repo := &fakeOrderRepo{participants: map[string][]*models.Participant{
		"act-1": {
			{FullName: "Nguyen Van An", PhoneNumber: "0912345678", UnitName: "Chi hoi 1"},
			{FullName: "Tran Thi Binh", PhoneNumber: "0923456789", UnitName: ""},
		},
	}}
	service := NewOrderService(repo)

	participants, err := service.Participants("act-1")
	require.NoError(t, err)
	require.Len(t, participants, 2)
	assert.Equal(t, "Nguyen Van An", participants[0].FullName)
	assert.Equal(t, "Chi hoi 1", participants[0].UnitName)

	_, err = service.Participants("")
	assert.ErrorIs(t, err, models.ErrActivityNotFound)
}

func TestOrderService_VerifyPayment(t *testing.T) {
	repo := &fakeOrderRepo{}
	service := NewOrderService(repo)

	order, err := service.VerifyPayment("order-1", models.PaymentPaid, "admin@example.com", "bank ref 123")
	require.NoError(t, err)
	assert.Equal(t, models.PaymentPaid, order.PaymentStatus)

	_, err = service.VerifyPayment("", models.PaymentPaid, "admin@example.com", "")
	assert.ErrorIs(t, err, models.ErrOrderNotFound)

	_, err = service.VerifyPayment("order-1", models.PaymentPaid, "", "")
	assert.Error(t, err)
}

func TestOrderService_DashboardStats(t *testing.T) {
	repo := &fakeOrderRepo{
		stats:      &models.AdminStats{TotalOrders: 7, TotalRevenue: 9100000},
		listResult: []*models.OrderSummary{{OrderCode: "REG-20260829-000001"}},
	}
	service := NewOrderService(repo)

	stats, recent, err := service.DashboardStats(0)
	require.NoError(t, err)
	assert.Equal(t, 7, stats.TotalOrders)
	require.Len(t, recent, 1)

	// A non-positive limit falls back to the default page size.
	assert.Equal(t, 10, repo.listFilters.Limit)
	assert.True(t, repo.listFilters.SortDesc)
}
