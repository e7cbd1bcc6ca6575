package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"html"
	"strings"
	"time"

	"github.com/hashicorp/go-retryablehttp"

	"activity-registration-storefront/internal/models"
)

const resendAPIURL = "https://api.resend.com/emails"

// ResendConfig represents Resend email service configuration
type ResendConfig struct {
	APIKey    string
	FromEmail string
	FromName  string
}

// ResendEmailService sends transactional email via the Resend API
type ResendEmailService struct {
	config ResendConfig
	client *retryablehttp.Client
}

// NewResendEmailService creates a new Resend email service
func NewResendEmailService(config ResendConfig) *ResendEmailService {
	client := retryablehttp.NewClient()
	client.RetryMax = 3
	client.HTTPClient.Timeout = 30 * time.Second
	client.Logger = nil

	return &ResendEmailService{
		config: config,
		client: client,
	}
}

// ResendEmailRequest represents the request structure for the Resend API
type ResendEmailRequest struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	HTML    string   `json:"html,omitempty"`
	Text    string   `json:"text,omitempty"`
}

// ResendEmailResponse represents the response from the Resend API
type ResendEmailResponse struct {
	ID string `json:"id"`
}

// getFromField constructs the from field properly
func (s *ResendEmailService) getFromField() string {
	if s.config.FromName != "" {
		return fmt.Sprintf("%s <%s>", s.config.FromName, s.config.FromEmail)
	}
	return s.config.FromEmail
}

// SendOrderConfirmation emails the registrant their order code, line
// items and bank transfer instructions. Registrations without an
// email address are silently skipped.
func (s *ResendEmailService) SendOrderConfirmation(toEmail, fullName string, order *models.Order, items []*models.OrderItem, link PaymentLink) error {
	if toEmail == "" {
		return nil
	}
	if s.config.APIKey == "" {
		return fmt.Errorf("resend API key not configured")
	}

	return s.send(ResendEmailRequest{
		From:    s.getFromField(),
		To:      []string{toEmail},
		Subject: fmt.Sprintf("Registration %s received", order.OrderCode),
		HTML:    confirmationHTML(fullName, order, items, link),
	})
}

// confirmationHTML renders the order confirmation body. Registrant and
// activity names come from user input and are escaped before
// interpolation.
func confirmationHTML(fullName string, order *models.Order, items []*models.OrderItem, link PaymentLink) string {
	var lines strings.Builder
	for _, item := range items {
		tierLabel := "Member"
		if item.PricingTier == models.TierNonMember {
			tierLabel = "Non-member"
		}
		fmt.Fprintf(&lines, "<tr><td>%s x %d (%s)</td><td align=\"right\">%s</td></tr>",
			html.EscapeString(item.ActivityTitle), item.Quantity, tierLabel, models.FormatVND(item.Subtotal))
	}

	return fmt.Sprintf(`
<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
	<h2>Registration received</h2>
	<p>Hi %s,</p>
	<p>Your registration has been recorded. Your order code is <strong>%s</strong>.</p>
	<table width="100%%" style="border-collapse: collapse;">%s
		<tr><td><strong>Total</strong></td><td align="right"><strong>%s</strong></td></tr>
	</table>
	<h3>Payment</h3>
	<p>Bank: %s<br>Account: %s<br>Account holder: %s<br>
	Transfer memo: <strong>%s</strong></p>
	<p><img src="%s" alt="Payment QR" width="256" height="256"></p>
	<p>We will confirm your payment and follow up by email or SMS.</p>
</body>
</html>`,
		html.EscapeString(fullName),
		order.OrderCode,
		lines.String(),
		models.FormatVND(order.TotalAmount),
		link.BankCode,
		link.AccountNumber,
		link.AccountName,
		order.OrderCode,
		link.QRURL,
	)
}

func (s *ResendEmailService) send(emailReq ResendEmailRequest) error {
	body, err := json.Marshal(emailReq)
	if err != nil {
		return fmt.Errorf("failed to marshal email request: %w", err)
	}

	req, err := retryablehttp.NewRequest("POST", resendAPIURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create email request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+s.config.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return fmt.Errorf("resend API returned status %d", resp.StatusCode)
	}

	var emailResp ResendEmailResponse
	if err := json.NewDecoder(resp.Body).Decode(&emailResp); err != nil {
		return fmt.Errorf("failed to decode email response: %w", err)
	}

	return nil
}
