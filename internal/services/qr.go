package services

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/hashicorp/go-retryablehttp"

	"activity-registration-storefront/internal/config"
	"activity-registration-storefront/internal/models"
)

const vietQRImageBase = "https://img.vietqr.io/image"

// PaymentLink carries everything the confirmation page needs to show
// the bank transfer: the QR image URL plus the raw account details.
type PaymentLink struct {
	QRURL         string       `json:"qr_url"`
	BankCode      string       `json:"bank_code"`
	AccountNumber string       `json:"account_number"`
	AccountName   string       `json:"account_name"`
	Amount        models.Money `json:"amount"`
	Description   string       `json:"description"`
}

// VietQRService builds payment QR image URLs for the configured
// receiving account. The image itself is rendered by the external
// VietQR service; this only constructs and optionally probes the URL.
type VietQRService struct {
	config config.VietQRConfig
	client *retryablehttp.Client
}

// NewVietQRService creates a new VietQR service
func NewVietQRService(cfg config.VietQRConfig) *VietQRService {
	client := retryablehttp.NewClient()
	client.RetryMax = 2
	client.HTTPClient.Timeout = 10 * time.Second
	client.Logger = nil

	return &VietQRService{
		config: cfg,
		client: client,
	}
}

// BuildQuickLink constructs the VietQR quick-link image URL. The
// description is the bank-transfer memo, which is always the order
// code.
func (s *VietQRService) BuildQuickLink(amount models.Money, description string) PaymentLink {
	qrURL := fmt.Sprintf("%s/%s-%s-compact.png?amount=%d&addInfo=%s&accountName=%s",
		vietQRImageBase,
		s.config.BankCode,
		s.config.AccountNumber,
		amount,
		url.QueryEscape(description),
		url.QueryEscape(s.config.BeneficiaryName),
	)

	return PaymentLink{
		QRURL:         qrURL,
		BankCode:      s.config.BankCode,
		AccountNumber: s.config.AccountNumber,
		AccountName:   s.config.BeneficiaryName,
		Amount:        amount,
		Description:   description,
	}
}

// ProbeImage checks that a generated QR image URL is reachable.
// Used from health checks; checkout never blocks on it.
func (s *VietQRService) ProbeImage(ctx context.Context, qrURL string) error {
	req, err := retryablehttp.NewRequestWithContext(ctx, "HEAD", qrURL, nil)
	if err != nil {
		return fmt.Errorf("failed to build probe request: %w", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("QR image probe failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return fmt.Errorf("QR image service returned status %d", resp.StatusCode)
	}
	return nil
}
