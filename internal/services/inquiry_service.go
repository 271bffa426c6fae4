package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/smtp"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/nicolesuntn-stack/willsun-garment-site/internal/models"
	"github.com/nicolesuntn-stack/willsun-garment-site/pkg/rabbitmq"
)

// Delivery statuses reported back to the submitter. An inquiry is always
// accepted once it validates; the status only communicates whether a human
// will actually be notified.
const (
	StatusDelivered       = "delivered"
	StatusSavedNoDelivery = "saved_without_delivery"
)

// SMTPConfig holds the optional mail transport settings. All four
// connection fields must be set for the transport to be used.
type SMTPConfig struct {
	Host string
	Port int
	User string
	Pass string
	To   string
	From string
}

func (c SMTPConfig) configured() bool {
	return c.Host != "" && c.Port != 0 && c.User != "" && c.Pass != ""
}

// DeliveryResult reports which channels, if any, carried the inquiry.
type DeliveryResult struct {
	Status   string
	Channels []string
}

// InquiryService accepts buyer inquiries and forwards them over whatever
// channels are configured: SMTP mail, a forwarding webhook, and an AMQP
// event. Every channel is optional and best-effort; delivery failures
// degrade the result, they never reject the inquiry.
type InquiryService struct {
	smtp       SMTPConfig
	webhookURL string
	mqClient   *rabbitmq.Client
	httpClient *http.Client
}

// NewInquiryService creates a new InquiryService. mqClient may be nil.
func NewInquiryService(smtpCfg SMTPConfig, webhookURL string, mqClient *rabbitmq.Client) *InquiryService {
	return &InquiryService{
		smtp:       smtpCfg,
		webhookURL: webhookURL,
		mqClient:   mqClient,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// Submit assigns the inquiry an ID, sanitizes the attached cart selection,
// and attempts each configured delivery channel independently.
func (s *InquiryService) Submit(inquiry *models.Inquiry) DeliveryResult {
	inquiry.ID = uuid.New().String()
	inquiry.SelectedProducts = sanitizeCartItems(inquiry.SelectedProducts)

	var channels []string

	if s.smtp.configured() {
		if err := s.sendMail(inquiry); err != nil {
			log.Printf("Warning: failed to mail inquiry %s: %v", inquiry.ID, err)
		} else {
			channels = append(channels, "email")
		}
	}

	if s.webhookURL != "" {
		if err := s.forwardWebhook(inquiry); err != nil {
			log.Printf("Warning: failed to forward inquiry %s to webhook: %v", inquiry.ID, err)
		} else {
			channels = append(channels, "webhook")
		}
	}

	if s.mqClient != nil {
		event := map[string]interface{}{
			"inquiryID":   inquiry.ID,
			"companyName": inquiry.CompanyName,
			"category":    inquiry.Category,
			"quantity":    inquiry.Quantity,
			"products":    len(inquiry.SelectedProducts),
		}
		if err := s.mqClient.PublishInquiryReceived(event); err != nil {
			log.Printf("Warning: failed to publish inquiry event for %s: %v", inquiry.ID, err)
		} else {
			channels = append(channels, "queue")
		}
	}

	if len(channels) == 0 {
		return DeliveryResult{Status: StatusSavedNoDelivery}
	}
	return DeliveryResult{Status: StatusDelivered, Channels: channels}
}

func (s *InquiryService) sendMail(inquiry *models.Inquiry) error {
	var body strings.Builder
	fmt.Fprintf(&body, "Company: %s\n", inquiry.CompanyName)
	fmt.Fprintf(&body, "Contact: %s\n", inquiry.ManagerContact)
	fmt.Fprintf(&body, "Category: %s\n", inquiry.Category)
	fmt.Fprintf(&body, "Quantity: %s\n", inquiry.Quantity)
	fmt.Fprintf(&body, "Target Price: %s\n", inquiry.TargetPrice)
	for _, item := range inquiry.SelectedProducts {
		fmt.Fprintf(&body, "Selected: %s (%s)\n", item.Name, item.Slug)
	}

	msg := fmt.Sprintf(
		"From: %s\r\nTo: %s\r\nSubject: New Inquiry - %s\r\n\r\n%s",
		s.smtp.From, s.smtp.To, inquiry.CompanyName, body.String(),
	)

	addr := fmt.Sprintf("%s:%d", s.smtp.Host, s.smtp.Port)
	auth := smtp.PlainAuth("", s.smtp.User, s.smtp.Pass, s.smtp.Host)
	if err := smtp.SendMail(addr, auth, s.smtp.From, []string{s.smtp.To}, []byte(msg)); err != nil {
		return fmt.Errorf("smtp send failed: %w", err)
	}
	return nil
}

func (s *InquiryService) forwardWebhook(inquiry *models.Inquiry) error {
	payload, err := json.Marshal(inquiry)
	if err != nil {
		return fmt.Errorf("failed to marshal inquiry: %w", err)
	}

	resp, err := s.httpClient.Post(s.webhookURL, "application/json", bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("webhook request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("webhook returned status %d", resp.StatusCode)
	}
	return nil
}

// sanitizeCartItems drops entries missing any of slug, name, or category,
// matching what the browser-side cart guarantees.
func sanitizeCartItems(items []models.CartItem) []models.CartItem {
	out := make([]models.CartItem, 0, len(items))
	for _, item := range items {
		if strings.TrimSpace(item.Slug) == "" ||
			strings.TrimSpace(item.Name) == "" ||
			strings.TrimSpace(item.Category) == "" {
			continue
		}
		out = append(out, item)
	}
	return out
}
