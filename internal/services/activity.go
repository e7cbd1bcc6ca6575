package services

import (
	"fmt"

	"activity-registration-storefront/internal/models"
)

// ActivityRepository interface for activity data operations
type ActivityRepository interface {
	Create(req *models.ActivityCreateRequest) (*models.Activity, error)
	GetByID(id string) (*models.Activity, error)
	List(status models.ActivityStatus) ([]*models.Activity, error)
	Update(id string, req *models.ActivityUpdateRequest) (*models.Activity, error)
	Delete(id string) error
}

// ActivityService is the activity catalog: the storefront reads
// active activities from it, and the admin back office manages them
// through it.
type ActivityService struct {
	activityRepo ActivityRepository
}

// NewActivityService creates a new activity service
func NewActivityService(activityRepo ActivityRepository) *ActivityService {
	return &ActivityService{activityRepo: activityRepo}
}

// ListActive returns the activities open for registration
func (s *ActivityService) ListActive() ([]*models.Activity, error) {
	return s.activityRepo.List(models.ActivityActive)
}

// ListAll returns every activity regardless of status
func (s *ActivityService) ListAll() ([]*models.Activity, error) {
	return s.activityRepo.List("")
}

// GetByID retrieves one activity
func (s *ActivityService) GetByID(id string) (*models.Activity, error) {
	if id == "" {
		return nil, models.ErrActivityNotFound
	}
	return s.activityRepo.GetByID(id)
}

// PriceForTier resolves the unit price a selection snapshots at add
// time. Inactive activities cannot be priced.
func (s *ActivityService) PriceForTier(id string, tier models.PricingTier) (*models.Activity, models.Money, error) {
	activity, err := s.activityRepo.GetByID(id)
	if err != nil {
		return nil, 0, err
	}

	if !activity.IsOpen() {
		return nil, 0, fmt.Errorf("activity %q is not open for registration: %w", activity.Title, models.ErrInvalidInput)
	}

	price, err := activity.PriceFor(tier)
	if err != nil {
		return nil, 0, fmt.Errorf("%v: %w", err, models.ErrInvalidInput)
	}

	return activity, price, nil
}

// Create creates a new activity
func (s *ActivityService) Create(req *models.ActivityCreateRequest) (*models.Activity, error) {
	if req.Status == "" {
		req.Status = models.ActivityActive
	}
	return s.activityRepo.Create(req)
}

// Update updates an existing activity
func (s *ActivityService) Update(id string, req *models.ActivityUpdateRequest) (*models.Activity, error) {
	return s.activityRepo.Update(id, req)
}

// Delete removes an activity that has no orders
func (s *ActivityService) Delete(id string) error {
	return s.activityRepo.Delete(id)
}
