package models

import (
	"errors"
	"math"
	"testing"
)

func TestAddAmounts(t *testing.T) {
	tests := []struct {
		name    string
		a, b    Money
		want    Money
		wantErr error
	}{
		{
			name: "simple addition",
			a:    500000,
			b:    300000,
			want: 800000,
		},
		{
			name: "zero operands",
			a:    0,
			b:    0,
			want: 0,
		},
		{
			name:    "negative left operand",
			a:       -1,
			b:       100,
			wantErr: ErrNegativeAmount,
		},
		{
			name:    "negative right operand",
			a:       100,
			b:       -1,
			wantErr: ErrNegativeAmount,
		},
		{
			name:    "overflow",
			a:       math.MaxInt64,
			b:       1,
			wantErr: ErrAmountOverflow,
		},
		{
			name: "at the boundary",
			a:    math.MaxInt64 - 1,
			b:    1,
			want: math.MaxInt64,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := AddAmounts(tt.a, tt.b)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("AddAmounts() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Errorf("AddAmounts() unexpected error = %v", err)
				return
			}
			if got != tt.want {
				t.Errorf("AddAmounts() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestMultiplyPrice(t *testing.T) {
	tests := []struct {
		name      string
		unitPrice Money
		quantity  int
		want      Money
		wantErr   error
	}{
		{
			name:      "line total",
			unitPrice: 500000,
			quantity:  2,
			want:      1000000,
		},
		{
			name:      "quantity one",
			unitPrice: 300000,
			quantity:  1,
			want:      300000,
		},
		{
			name:      "free activity",
			unitPrice: 0,
			quantity:  10,
			want:      0,
		},
		{
			name:      "zero quantity rejected",
			unitPrice: 100,
			quantity:  0,
			wantErr:   ErrInvalidQuantity,
		},
		{
			name:      "negative quantity rejected",
			unitPrice: 100,
			quantity:  -3,
			wantErr:   ErrInvalidQuantity,
		},
		{
			name:      "negative price rejected",
			unitPrice: -100,
			quantity:  2,
			wantErr:   ErrNegativeAmount,
		},
		{
			name:      "overflow rejected",
			unitPrice: math.MaxInt64 / 2,
			quantity:  3,
			wantErr:   ErrAmountOverflow,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := MultiplyPrice(tt.unitPrice, tt.quantity)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("MultiplyPrice() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Errorf("MultiplyPrice() unexpected error = %v", err)
				return
			}
			if got != tt.want {
				t.Errorf("MultiplyPrice() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFormatVND(t *testing.T) {
	tests := []struct {
		name   string
		amount Money
		want   string
	}{
		{"zero", 0, "0 ₫"},
		{"under a thousand", 500, "500 ₫"},
		{"thousands", 50000, "50.000 ₫"},
		{"millions", 1300000, "1.300.000 ₫"},
		{"exact grouping boundary", 1000, "1.000 ₫"},
		{"negative", -250000, "-250.000 ₫"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatVND(tt.amount); got != tt.want {
				t.Errorf("FormatVND(%d) = %q, want %q", tt.amount, got, tt.want)
			}
		})
	}
}
