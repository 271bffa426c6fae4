package handlers

import (
	"errors"
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/nicolesuntn-stack/willsun-garment-site/internal/models"
	"github.com/nicolesuntn-stack/willsun-garment-site/internal/services"
)

// AdminHandler handles the operator-only product mutation API and the
// translation assist endpoint. Authorization is applied by the caller when
// registering the route group.
type AdminHandler struct {
	catalog    *services.CatalogService
	translator *services.TranslateService
	validate   *validator.Validate
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(catalog *services.CatalogService, translator *services.TranslateService) *AdminHandler {
	return &AdminHandler{
		catalog:    catalog,
		translator: translator,
		validate:   validator.New(),
	}
}

// RegisterRoutes registers the admin routes with the Fiber app.
func (h *AdminHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/products", h.HandleListProducts)
	router.Post("/products", h.HandleCreateProduct)
	router.Put("/products", h.HandleUpdateProduct)
	router.Patch("/products", h.HandleSetProductActive)
	router.Post("/translate", h.HandleTranslate)
}

// HandleListProducts returns every record, inactive ones included.
func (h *AdminHandler) HandleListProducts(c *fiber.Ctx) error {
	items, err := h.catalog.List(true)
	if err != nil {
		log.Printf("Error listing products for admin: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not list products",
		})
	}
	return c.JSON(fiber.Map{"items": items})
}

// HandleCreateProduct validates, normalizes, and persists a new record.
func (h *AdminHandler) HandleCreateProduct(c *fiber.Ctx) error {
	var input models.ProductInput
	if err := c.BodyParser(&input); err != nil {
		log.Printf("Error parsing create product body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid payload",
		})
	}

	item, err := h.catalog.Create(input)
	if err != nil {
		return h.rejectCatalogError(c, "create", err)
	}
	return c.JSON(fiber.Map{"ok": true, "item": item})
}

// HandleUpdateProduct replaces every mutable field of an existing record.
func (h *AdminHandler) HandleUpdateProduct(c *fiber.Ctx) error {
	var input models.ProductInput
	if err := c.BodyParser(&input); err != nil {
		log.Printf("Error parsing update product body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid payload",
		})
	}

	item, err := h.catalog.Update(input)
	if err != nil {
		if errors.Is(err, services.ErrInvalidSlug) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Slug is required",
			})
		}
		return h.rejectCatalogError(c, "update", err)
	}
	return c.JSON(fiber.Map{"ok": true, "item": item})
}

// setActiveRequest is the PATCH payload. IsActive is a pointer so a
// missing flag is distinguishable from false.
type setActiveRequest struct {
	Slug     string `json:"slug"`
	IsActive *bool  `json:"isActive"`
}

// HandleSetProductActive flips only the publication flag.
func (h *AdminHandler) HandleSetProductActive(c *fiber.Ctx) error {
	var req setActiveRequest
	if err := c.BodyParser(&req); err != nil || req.Slug == "" || req.IsActive == nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid payload",
		})
	}

	if err := h.catalog.SetActive(req.Slug, *req.IsActive); err != nil {
		return h.rejectCatalogError(c, "toggle", err)
	}
	return c.JSON(fiber.Map{"ok": true})
}

// translateRequest wraps the Chinese field block submitted for assist.
type translateRequest struct {
	ZH *models.LocalizedFields `json:"zh"`
}

// HandleTranslate pre-fills the English fields from Chinese input. The
// external call is best-effort: unconfigured or failing upstreams resolve
// to the Chinese text echoed back as an editable fallback.
func (h *AdminHandler) HandleTranslate(c *fiber.Ctx) error {
	var req translateRequest
	if err := c.BodyParser(&req); err != nil || req.ZH == nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid Chinese fields",
		})
	}

	zh := *req.ZH
	zh.Trim()
	if err := h.validate.Struct(zh); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid Chinese fields",
		})
	}

	result := h.translator.Translate(c.Context(), zh)
	if result.Err != "" {
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"ok":       false,
			"error":    result.Err,
			"fallback": result.EN,
		})
	}
	if result.Warning != "" {
		return c.JSON(fiber.Map{"ok": true, "en": result.EN, "warning": result.Warning})
	}
	return c.JSON(fiber.Map{"ok": true, "en": result.EN})
}

// rejectCatalogError maps catalog sentinel errors to their distinct HTTP
// rejections. Anything unrecognized is a storage failure and surfaces as a
// hard 500.
func (h *AdminHandler) rejectCatalogError(c *fiber.Ctx, op string, err error) error {
	switch {
	case errors.Is(err, services.ErrInvalidCategory):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid category"})
	case errors.Is(err, services.ErrInvalidLocalizedFields):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid localized fields"})
	case errors.Is(err, services.ErrInvalidSlug):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid slug"})
	case errors.Is(err, services.ErrSlugExists):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Slug already exists"})
	case errors.Is(err, services.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Product not found"})
	default:
		log.Printf("Error during product %s: %v", op, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Storage failure"})
	}
}
