package services

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"activity-registration-storefront/internal/config"
)

func testQRService() *VietQRService {
	return NewVietQRService(config.VietQRConfig{
		BankCode:        "VCB",
		AccountNumber:   "0123456789",
		BeneficiaryName: "HOI SU KIEN",
	})
}

func TestVietQRService_BuildQuickLink(t *testing.T) {
	link := testQRService().BuildQuickLink(1300000, "REG-20260829-042517")

	assert.Equal(t,
		"https://img.vietqr.io/image/VCB-0123456789-compact.png?amount=1300000&addInfo=REG-20260829-042517&accountName=HOI+SU+KIEN",
		link.QRURL)
	assert.Equal(t, "VCB", link.BankCode)
	assert.Equal(t, "0123456789", link.AccountNumber)
	assert.Equal(t, "HOI SU KIEN", link.AccountName)
	assert.Equal(t, "REG-20260829-042517", link.Description)
}

func TestVietQRService_BuildQuickLink_EscapesMemo(t *testing.T) {
	link := testQRService().BuildQuickLink(500000, "REG 2026 #1")
	assert.Contains(t, link.QRURL, "addInfo=REG+2026+%231")
}

func TestVietQRService_ProbeImage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodHead, r.Method)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	service := testQRService()
	require.NoError(t, service.ProbeImage(context.Background(), srv.URL))
}

func TestVietQRService_ProbeImage_ErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	service := testQRService()
	assert.Error(t, service.ProbeImage(context.Background(), srv.URL))
}
