package handlers

import (
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/nicolesuntn-stack/willsun-garment-site/internal/models"
	"github.com/nicolesuntn-stack/willsun-garment-site/internal/services"
)

// InquiryHandler accepts buyer inquiries from the public site.
type InquiryHandler struct {
	service  *services.InquiryService
	validate *validator.Validate
}

// NewInquiryHandler creates a new InquiryHandler.
func NewInquiryHandler(service *services.InquiryService) *InquiryHandler {
	return &InquiryHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the inquiry route with the Fiber app.
func (h *InquiryHandler) RegisterRoutes(router fiber.Router) {
	router.Post("/inquiry", h.HandleSubmitInquiry)
}

// HandleSubmitInquiry validates the payload and hands it to the delivery
// pipeline. Once validation passes the inquiry is always accepted; the
// status field reports whether any notification channel carried it.
func (h *InquiryHandler) HandleSubmitInquiry(c *fiber.Ctx) error {
	var inquiry models.Inquiry
	if err := c.BodyParser(&inquiry); err != nil {
		log.Printf("Error parsing inquiry body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Missing required fields",
		})
	}

	if err := h.validate.Struct(inquiry); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Missing required fields",
		})
	}

	result := h.service.Submit(&inquiry)
	return c.JSON(fiber.Map{"ok": true, "status": result.Status})
}
