package services

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/nicolesuntn-stack/willsun-garment-site/internal/models"
	"github.com/nicolesuntn-stack/willsun-garment-site/internal/repositories"
)

// Sentinel errors returned by catalog operations. Handlers map each to a
// distinct HTTP rejection; none of them is ever collapsed into a generic
// failure.
var (
	ErrInvalidCategory        = errors.New("invalid category")
	ErrInvalidLocalizedFields = errors.New("invalid localized fields")
	ErrInvalidSlug            = errors.New("invalid slug")
	ErrSlugExists             = repositories.ErrSlugExists
	ErrNotFound               = errors.New("product not found")
)

var (
	slugStripPattern    = regexp.MustCompile(`[^a-z0-9\s-]`)
	slugSpacePattern    = regexp.MustCompile(`\s+`)
	slugCollapsePattern = regexp.MustCompile(`-+`)
)

// NormalizeSlug derives a URL-safe slug from a product name: lowercase,
// strip everything outside [a-z0-9 space hyphen], collapse whitespace to
// single hyphens, collapse hyphen runs.
func NormalizeSlug(name string) string {
	slug := strings.ToLower(name)
	slug = slugStripPattern.ReplaceAllString(slug, "")
	slug = strings.TrimSpace(slug)
	slug = slugSpacePattern.ReplaceAllString(slug, "-")
	slug = slugCollapsePattern.ReplaceAllString(slug, "-")
	return slug
}

// CatalogService owns validation and normalization of product records and
// delegates persistence to the injected repository.
type CatalogService struct {
	repo     repositories.ProductRepository
	seed     []models.ProductRecord
	validate *validator.Validate
}

// NewCatalogService creates a new CatalogService. seed is the bundled
// catalog returned when the backend holds no records at all; it may be nil.
func NewCatalogService(repo repositories.ProductRepository, seed []models.ProductRecord) *CatalogService {
	return &CatalogService{
		repo:     repo,
		seed:     seed,
		validate: validator.New(),
	}
}

// List returns all records, or only active ones. A backend holding zero
// records falls back to the bundled seed catalog so the public site never
// renders empty; this is defined availability behavior, not an error.
func (s *CatalogService) List(includeInactive bool) ([]models.ProductRecord, error) {
	records, err := s.repo.List(includeInactive)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return s.seedRecords(includeInactive), nil
	}
	return records, nil
}

func (s *CatalogService) seedRecords(includeInactive bool) []models.ProductRecord {
	out := make([]models.ProductRecord, 0, len(s.seed))
	for _, rec := range s.seed {
		if !includeInactive && !rec.IsActive {
			continue
		}
		out = append(out, rec)
	}
	return out
}

// FindBySlug returns the localizable record for a slug, or ErrNotFound.
// The seed catalog is consulted when the backend is empty, mirroring List.
func (s *CatalogService) FindBySlug(slug string) (*models.ProductRecord, error) {
	record, err := s.repo.FindBySlug(slug)
	if err != nil {
		return nil, err
	}
	if record != nil {
		return record, nil
	}

	records, err := s.repo.List(true)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		for _, rec := range s.seed {
			if rec.Slug == slug {
				found := rec
				return &found, nil
			}
		}
	}
	return nil, ErrNotFound
}

// Create validates and normalizes the input, derives the slug when the
// caller supplied none, and persists the record. The stored record is
// returned so the caller can echo it.
func (s *CatalogService) Create(input models.ProductInput) (*models.ProductRecord, error) {
	record, err := s.normalize(input)
	if err != nil {
		return nil, err
	}

	if record.Slug == "" {
		record.Slug = NormalizeSlug(input.EN.Name)
	}
	if record.Slug == "" {
		return nil, ErrInvalidSlug
	}

	// Pre-check gives a clean rejection before any write is attempted; the
	// repository enforces the same invariant at insert time, so a
	// concurrent create with the same slug still fails.
	existing, err := s.repo.List(true)
	if err != nil {
		return nil, err
	}
	for _, rec := range existing {
		if rec.Slug == record.Slug {
			return nil, ErrSlugExists
		}
	}

	if err := s.repo.Create(record); err != nil {
		return nil, err
	}
	return record, nil
}

// Update validates the input and replaces every mutable field of the
// record identified by input.Slug. The slug itself never changes.
func (s *CatalogService) Update(input models.ProductInput) (*models.ProductRecord, error) {
	if strings.TrimSpace(input.Slug) == "" {
		return nil, ErrInvalidSlug
	}

	record, err := s.normalize(input)
	if err != nil {
		return nil, err
	}
	record.Slug = strings.TrimSpace(input.Slug)

	updated, err := s.repo.Update(record)
	if err != nil {
		return nil, err
	}
	if !updated {
		return nil, ErrNotFound
	}
	return record, nil
}

// SetActive flips the publication flag of an existing record.
func (s *CatalogService) SetActive(slug string, active bool) error {
	updated, err := s.repo.SetActive(slug, active)
	if err != nil {
		return err
	}
	if !updated {
		return ErrNotFound
	}
	return nil
}

// normalize applies the shared create/update contract: category inside the
// closed set, twelve non-empty localized fields, media lists filtered to
// non-empty trimmed strings, images never empty, image == images[0].
func (s *CatalogService) normalize(input models.ProductInput) (*models.ProductRecord, error) {
	if !isAllowedCategory(input.Category) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidCategory, input.Category)
	}

	zh := input.ZH
	en := input.EN
	zh.Trim()
	en.Trim()
	if s.validate.Struct(zh) != nil || s.validate.Struct(en) != nil {
		return nil, ErrInvalidLocalizedFields
	}

	record := &models.ProductRecord{
		Slug:     strings.TrimSpace(input.Slug),
		Category: input.Category,
		Image:    strings.TrimSpace(input.Image),
		Images:   normalizeMediaList(input.Images),
		Videos:   normalizeMediaList(input.Videos),
		IsActive: true,
		ZH:       zh,
		EN:       en,
	}
	if input.IsActive != nil {
		record.IsActive = *input.IsActive
	}

	if record.Image == "" {
		record.Image = models.PlaceholderImage
	}
	if len(record.Images) == 0 {
		record.Images = []string{record.Image}
	}
	record.Image = record.Images[0]

	return record, nil
}

func isAllowedCategory(category models.ProductCategory) bool {
	for _, allowed := range models.AllowedCategories {
		if category == allowed {
			return true
		}
	}
	return false
}

func normalizeMediaList(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		trimmed := strings.TrimSpace(v)
		if trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
