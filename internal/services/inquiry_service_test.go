package services_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/nicolesuntn-stack/willsun-garment-site/internal/models"
	"github.com/nicolesuntn-stack/willsun-garment-site/internal/services"
)

func validInquiry() *models.Inquiry {
	return &models.Inquiry{
		CompanyName:    "Acme Imports",
		ManagerContact: "buyer@acme.example",
		Category:       "shirts",
		Quantity:       "5000",
		TargetPrice:    "4.50 USD",
		SelectedProducts: []models.CartItem{
			{Slug: "classic-oxford-shirt", Name: "Classic Oxford Shirt", Category: "shirts"},
			{Slug: "", Name: "Broken entry", Category: "shirts"}, // must be dropped
		},
	}
}

func TestInquirySubmit_NoChannelsConfigured(t *testing.T) {
	service := services.NewInquiryService(services.SMTPConfig{}, "", nil)

	inquiry := validInquiry()
	result := service.Submit(inquiry)

	assert.Equal(t, services.StatusSavedNoDelivery, result.Status)
	assert.Empty(t, result.Channels)
	assert.NotEmpty(t, inquiry.ID)
	// Malformed cart entries are dropped during sanitization.
	assert.Len(t, inquiry.SelectedProducts, 1)
}

func TestInquirySubmit_WebhookDelivery(t *testing.T) {
	var received models.Inquiry
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	service := services.NewInquiryService(services.SMTPConfig{}, server.URL, nil)

	result := service.Submit(validInquiry())
	assert.Equal(t, services.StatusDelivered, result.Status)
	assert.Equal(t, []string{"webhook"}, result.Channels)
	assert.Equal(t, "Acme Imports", received.CompanyName)
	assert.Len(t, received.SelectedProducts, 1)
}

func TestInquirySubmit_WebhookFailureDegrades(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	service := services.NewInquiryService(services.SMTPConfig{}, server.URL, nil)

	// The inquiry is still accepted; only the status changes.
	result := service.Submit(validInquiry())
	assert.Equal(t, services.StatusSavedNoDelivery, result.Status)
}
