package models

import (
	"errors"
	"strings"
	"time"
)

// ActivityStatus represents the status of an activity
type ActivityStatus string

const (
	ActivityActive    ActivityStatus = "active"
	ActivityInactive  ActivityStatus = "inactive"
	ActivityCancelled ActivityStatus = "cancelled"
)

// PricingTier determines which of an activity's two prices applies to
// a selection. Member and non-member selections of the same activity
// are distinct line items and are never merged.
type PricingTier string

const (
	TierMember    PricingTier = "member"
	TierNonMember PricingTier = "non_member"
)

// ValidTier reports whether tier is one of the known pricing tiers.
func ValidTier(tier PricingTier) bool {
	return tier == TierMember || tier == TierNonMember
}

// Activity represents a purchasable event/session with separate
// member and non-member prices
type Activity struct {
	ID                  string         `json:"id" db:"id"`
	Title               string         `json:"title" db:"title"`
	Description         string         `json:"description" db:"description"`
	PriceMember         Money          `json:"price_member" db:"price_member"`
	PriceNonMember      Money          `json:"price_non_member" db:"price_non_member"`
	MaxParticipants     int            `json:"max_participants" db:"max_participants"`
	CurrentParticipants int            `json:"current_participants" db:"current_participants"`
	Status              ActivityStatus `json:"status" db:"status"`
	StartDate           *time.Time     `json:"start_date" db:"start_date"`
	EndDate             *time.Time     `json:"end_date" db:"end_date"`
	Location            string         `json:"location" db:"location"`
	ImageURL            string         `json:"image_url" db:"image_url"`
	CreatedAt           time.Time      `json:"created_at" db:"created_at"`
	UpdatedAt           time.Time      `json:"updated_at" db:"updated_at"`
}

// ActivityCreateRequest represents the data needed to create a new activity
type ActivityCreateRequest struct {
	Title           string         `json:"title"`
	Description     string         `json:"description"`
	PriceMember     Money          `json:"price_member"`
	PriceNonMember  Money          `json:"price_non_member"`
	MaxParticipants int            `json:"max_participants"`
	Status          ActivityStatus `json:"status"`
	StartDate       *time.Time     `json:"start_date"`
	EndDate         *time.Time     `json:"end_date"`
	Location        string         `json:"location"`
	ImageURL        string         `json:"image_url"`
}

// ActivityUpdateRequest represents the data that can be updated for an activity
type ActivityUpdateRequest struct {
	Title           string         `json:"title"`
	Description     string         `json:"description"`
	PriceMember     Money          `json:"price_member"`
	PriceNonMember  Money          `json:"price_non_member"`
	MaxParticipants int            `json:"max_participants"`
	Status          ActivityStatus `json:"status"`
	StartDate       *time.Time     `json:"start_date"`
	EndDate         *time.Time     `json:"end_date"`
	Location        string         `json:"location"`
	ImageURL        string         `json:"image_url"`
}

// ActivityStats represents per-activity registration statistics for
// the admin back office
type ActivityStats struct {
	ID              string         `json:"id" db:"id"`
	Title           string         `json:"title" db:"title"`
	PriceMember     Money          `json:"price_member" db:"price_member"`
	PriceNonMember  Money          `json:"price_non_member" db:"price_non_member"`
	MaxParticipants int            `json:"max_participants" db:"max_participants"`
	Registrations   int            `json:"registrations" db:"registrations"`
	TotalQuantity   int            `json:"total_quantity" db:"total_quantity"`
	Revenue         Money          `json:"revenue" db:"revenue"`
	Status          ActivityStatus `json:"status" db:"status"`
}

// PriceFor returns the price that applies to the given pricing tier.
func (a *Activity) PriceFor(tier PricingTier) (Money, error) {
	switch tier {
	case TierMember:
		return a.PriceMember, nil
	case TierNonMember:
		return a.PriceNonMember, nil
	default:
		return 0, errors.New("unknown pricing tier")
	}
}

// IsOpen returns true if the activity accepts new registrations
func (a *Activity) IsOpen() bool {
	return a.Status == ActivityActive
}

// Validate validates the activity creation data
func (req *ActivityCreateRequest) Validate() error {
	if err := validateActivityTitle(req.Title); err != nil {
		return err
	}

	if err := validateActivityPrices(req.PriceMember, req.PriceNonMember); err != nil {
		return err
	}

	// Empty status is allowed on create; it defaults to active.
	if req.Status != "" {
		if err := validateActivityStatus(req.Status); err != nil {
			return err
		}
	}

	if err := validateActivityDates(req.StartDate, req.EndDate); err != nil {
		return err
	}

	if req.MaxParticipants < 0 {
		return errors.New("max participants cannot be negative")
	}

	return nil
}

// Validate validates the activity update data
func (req *ActivityUpdateRequest) Validate() error {
	if err := validateActivityTitle(req.Title); err != nil {
		return err
	}

	if err := validateActivityPrices(req.PriceMember, req.PriceNonMember); err != nil {
		return err
	}

	if err := validateActivityStatus(req.Status); err != nil {
		return err
	}

	return validateActivityDates(req.StartDate, req.EndDate)
}

func validateActivityTitle(title string) error {
	if strings.TrimSpace(title) == "" {
		return errors.New("activity title is required")
	}

	if len(strings.TrimSpace(title)) < 3 {
		return errors.New("activity title must be at least 3 characters")
	}

	if len(title) > 255 {
		return errors.New("activity title must be less than 255 characters")
	}

	return nil
}

func validateActivityPrices(priceMember, priceNonMember Money) error {
	if priceMember < 0 || priceNonMember < 0 {
		return errors.New("activity prices cannot be negative")
	}
	return nil
}

func validateActivityStatus(status ActivityStatus) error {
	switch status {
	case ActivityActive, ActivityInactive, ActivityCancelled:
		return nil
	default:
		return errors.New("invalid activity status")
	}
}

func validateActivityDates(start, end *time.Time) error {
	if start != nil && end != nil && end.Before(*start) {
		return errors.New("end date cannot be before start date")
	}
	return nil
}
