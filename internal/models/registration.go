package models

import (
	"errors"
	"regexp"
	"strings"
	"time"
)

// Unit represents an organizational unit registrants belong to
type Unit struct {
	ID          string    `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	Description string    `json:"description" db:"description"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}

// SeatRequest values accepted on the registration form
const (
	SeatProtocol     = "protocol"
	SeatChapterTable = "chapter_table"
)

// Registration represents the person registering for a checkout. One
// registration owns one order; every ticket in the order belongs to
// this person.
type Registration struct {
	ID          string    `json:"id" db:"id"`
	FullName    string    `json:"full_name" db:"full_name"`
	PhoneNumber string    `json:"phone_number" db:"phone_number"`
	Email       string    `json:"email" db:"email"`
	UnitID      string    `json:"unit_id" db:"unit_id"`
	Title       string    `json:"title" db:"title"`
	SeatReq     string    `json:"seat_req" db:"seat_req"`
	SpecReq     string    `json:"spec_req" db:"spec_req"`
	Note        string    `json:"note" db:"note"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}

// Participant is the public roster row for one activity: the primary
// attendee's contact details with the unit name resolved.
type Participant struct {
	FullName    string `json:"full_name" db:"full_name"`
	PhoneNumber string `json:"phone_number" db:"phone_number"`
	Email       string `json:"email" db:"email"`
	UnitName    string `json:"unit_name" db:"unit_name"`
}

// RegistrationRequest represents the checkout form data for the
// person registering
type RegistrationRequest struct {
	FullName    string `json:"full_name"`
	PhoneNumber string `json:"phone_number"`
	Email       string `json:"email"`
	UnitID      string `json:"unit_id"`
	Title       string `json:"title"`
	SeatReq     string `json:"seat_req"`
	SpecReq     string `json:"spec_req"`
	Note        string `json:"note"`
}

var (
	// Vietnamese mobile numbers: leading 0 or +84, then a non-zero
	// prefix and 8-9 digits
	phoneRegex = regexp.MustCompile(`^(?:\+84|0)[1-9]\d{8,9}$`)
	emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
)

// IsValidPhoneNumber validates a Vietnamese mobile number, ignoring
// embedded whitespace
func IsValidPhoneNumber(phone string) bool {
	return phoneRegex.MatchString(strings.ReplaceAll(phone, " ", ""))
}

// Validate validates the registration form data
func (req *RegistrationRequest) Validate() error {
	if err := validateFullName(req.FullName); err != nil {
		return err
	}

	if !IsValidPhoneNumber(req.PhoneNumber) {
		return errors.New("phone number format is invalid")
	}

	if req.Email != "" && !emailRegex.MatchString(req.Email) {
		return errors.New("email format is invalid")
	}

	if strings.TrimSpace(req.UnitID) == "" {
		return errors.New("organizational unit is required")
	}

	if err := validateSeatReq(req.SeatReq); err != nil {
		return err
	}

	return nil
}

// Complete reports whether the mandatory fields are present. A weaker
// check than Validate, re-run where validation is assumed to have
// already happened upstream.
func (req *RegistrationRequest) Complete() bool {
	return strings.TrimSpace(req.FullName) != "" &&
		strings.TrimSpace(req.PhoneNumber) != "" &&
		strings.TrimSpace(req.UnitID) != ""
}

func validateFullName(name string) error {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return errors.New("full name is required")
	}

	if len([]rune(trimmed)) < 2 {
		return errors.New("full name must be at least 2 characters")
	}

	if len(name) > 255 {
		return errors.New("full name must be less than 255 characters")
	}

	return nil
}

func validateSeatReq(seatReq string) error {
	switch seatReq {
	case "", SeatProtocol, SeatChapterTable:
		return nil
	default:
		return errors.New("invalid seat request")
	}
}
