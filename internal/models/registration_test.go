package models

import (
	"testing"
)

func validRegistrationRequest() RegistrationRequest {
	return RegistrationRequest{
		FullName:    "Nguyen Van An",
		PhoneNumber: "0912345678",
		Email:       "an.nguyen@example.com",
		UnitID:      "unit-1",
	}
}

func TestRegistrationRequest_Validate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*RegistrationRequest)
		wantErr bool
		errMsg  string
	}{
		{
			name:   "valid request",
			modify: func(r *RegistrationRequest) {},
		},
		{
			name: "valid with international phone",
			modify: func(r *RegistrationRequest) {
				r.PhoneNumber = "+84912345678"
			},
		},
		{
			name: "valid without email",
			modify: func(r *RegistrationRequest) {
				r.Email = ""
			},
		},
		{
			name: "valid with seat request",
			modify: func(r *RegistrationRequest) {
				r.SeatReq = SeatProtocol
			},
		},
		{
			name: "empty full name",
			modify: func(r *RegistrationRequest) {
				r.FullName = ""
			},
			wantErr: true,
			errMsg:  "full name is required",
		},
		{
			name: "full name too short",
			modify: func(r *RegistrationRequest) {
				r.FullName = "A"
			},
			wantErr: true,
			errMsg:  "full name must be at least 2 characters",
		},
		{
			name: "whitespace-only full name",
			modify: func(r *RegistrationRequest) {
				r.FullName = "   "
			},
			wantErr: true,
			errMsg:  "full name is required",
		},
		{
			name: "phone missing prefix",
			modify: func(r *RegistrationRequest) {
				r.PhoneNumber = "912345678"
			},
			wantErr: true,
			errMsg:  "phone number format is invalid",
		},
		{
			name: "phone too short",
			modify: func(r *RegistrationRequest) {
				r.PhoneNumber = "0912345"
			},
			wantErr: true,
			errMsg:  "phone number format is invalid",
		},
		{
			name: "phone second digit zero",
			modify: func(r *RegistrationRequest) {
				r.PhoneNumber = "0012345678"
			},
			wantErr: true,
			errMsg:  "phone number format is invalid",
		},
		{
			name: "invalid email format",
			modify: func(r *RegistrationRequest) {
				r.Email = "not-an-email"
			},
			wantErr: true,
			errMsg:  "email format is invalid",
		},
		{
			name: "missing unit",
			modify: func(r *RegistrationRequest) {
				r.UnitID = ""
			},
			wantErr: true,
			errMsg:  "organizational unit is required",
		},
		{
			name: "invalid seat request",
			modify: func(r *RegistrationRequest) {
				r.SeatReq = "balcony"
			},
			wantErr: true,
			errMsg:  "invalid seat request",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRegistrationRequest()
			tt.modify(&req)

			err := req.Validate()
			if tt.wantErr {
				if err == nil {
					t.Errorf("Validate() expected error, got nil")
					return
				}
				if err.Error() != tt.errMsg {
					t.Errorf("Validate() error = %q, want %q", err.Error(), tt.errMsg)
				}
				return
			}
			if err != nil {
				t.Errorf("Validate() unexpected error = %v", err)
			}
		})
	}
}

func TestIsValidPhoneNumber(t *testing.T) {
	tests := []struct {
		phone string
		want  bool
	}{
		{"0912345678", true},
		{"09123456789", true},
		{"+84912345678", true},
		{"091 234 5678", true}, // spaces stripped before matching
		{"912345678", false},
		{"0912345", false},
		{"+85912345678", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.phone, func(t *testing.T) {
			if got := IsValidPhoneNumber(tt.phone); got != tt.want {
				t.Errorf("IsValidPhoneNumber(%q) = %v, want %v", tt.phone, got, tt.want)
			}
		})
	}
}

func TestRegistrationRequest_Complete(t *testing.T) {
	req := validRegistrationRequest()
	if !req.Complete() {
		t.Error("Complete() = false for a fully populated request")
	}

	req.Email = ""
	if !req.Complete() {
		t.Error("Complete() = false without email; email is optional")
	}

	req.PhoneNumber = " "
	if req.Complete() {
		t.Error("Complete() = true with blank phone number")
	}
}
