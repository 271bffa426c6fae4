package handlers

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"

	"github.com/nicolesuntn-stack/willsun-garment-site/internal/locale"
	"github.com/nicolesuntn-stack/willsun-garment-site/internal/models"
	"github.com/nicolesuntn-stack/willsun-garment-site/internal/services"
)

// CatalogHandler serves the public, read-only product catalog. Records are
// projected into the requested locale and inactive records stay hidden.
type CatalogHandler struct {
	catalog *services.CatalogService
}

// NewCatalogHandler creates a new CatalogHandler.
func NewCatalogHandler(catalog *services.CatalogService) *CatalogHandler {
	return &CatalogHandler{
		catalog: catalog,
	}
}

// RegisterRoutes registers the public catalog routes with the Fiber app.
func (h *CatalogHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/products", h.HandleListProducts)
	router.Get("/products/:slug", h.HandleGetProduct)
}

// requestLocale picks the locale from the query string, falling back to the
// Accept-Language header.
func requestLocale(c *fiber.Ctx) string {
	if loc := c.Query("locale"); locale.IsLocale(loc) {
		return loc
	}
	return locale.Preferred(c.Get(fiber.HeaderAcceptLanguage))
}

// HandleListProducts returns active records projected into one locale,
// optionally filtered by category.
func (h *CatalogHandler) HandleListProducts(c *fiber.Ctx) error {
	records, err := h.catalog.List(false)
	if err != nil {
		log.Printf("Error listing public products: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not list products",
		})
	}

	loc := requestLocale(c)
	category := c.Query("category")

	items := make([]models.ProductItem, 0, len(records))
	for _, rec := range records {
		if category != "" && rec.Category != category {
			continue
		}
		items = append(items, rec.Localized(loc))
	}
	return c.JSON(fiber.Map{"items": items})
}

// HandleGetProduct returns one active record projected into one locale.
func (h *CatalogHandler) HandleGetProduct(c *fiber.Ctx) error {
	slug := c.Params("slug")
	record, err := h.catalog.FindBySlug(slug)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Product not found",
			})
		}
		log.Printf("Error finding product %s: %v", slug, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not load product",
		})
	}
	if !record.IsActive {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Product not found",
		})
	}

	return c.JSON(fiber.Map{"item": record.Localized(requestLocale(c))})
}
