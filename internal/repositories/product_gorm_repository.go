package repositories

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/nicolesuntn-stack/willsun-garment-site/internal/models"
)

// GORMProductRepository is the relational implementation of
// ProductRepository. The driver (SQLite or PostgreSQL) is decided by
// whoever opens the *gorm.DB; this type is agnostic.
type GORMProductRepository struct {
	db *gorm.DB
}

// NewGORMProductRepository creates a new instance of GORMProductRepository.
func NewGORMProductRepository(db *gorm.DB) *GORMProductRepository {
	return &GORMProductRepository{
		db: db,
	}
}

// List retrieves records newest-first.
func (r *GORMProductRepository) List(includeInactive bool) ([]models.ProductRecord, error) {
	query := r.db.Order("created_at DESC")
	if !includeInactive {
		query = query.Where("is_active = ?", true)
	}

	var records []models.ProductRecord
	if err := query.Find(&records).Error; err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	return records, nil
}

// FindBySlug retrieves a single record, or (nil, nil) when absent.
func (r *GORMProductRepository) FindBySlug(slug string) (*models.ProductRecord, error) {
	var record models.ProductRecord
	if err := r.db.First(&record, "slug = ?", slug).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find product %s: %w", slug, err)
	}
	return &record, nil
}

// Create inserts a new record. The slug is the primary key, so a duplicate
// insert fails at the database even if the pre-check below races.
func (r *GORMProductRepository) Create(record *models.ProductRecord) error {
	var count int64
	if err := r.db.Model(&models.ProductRecord{}).Where("slug = ?", record.Slug).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to check slug %s: %w", record.Slug, err)
	}
	if count > 0 {
		return ErrSlugExists
	}

	if err := r.db.Create(record).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrSlugExists
		}
		return fmt.Errorf("failed to create product %s: %w", record.Slug, err)
	}
	return nil
}

// Update replaces all mutable fields for an existing slug.
func (r *GORMProductRepository) Update(record *models.ProductRecord) (bool, error) {
	existing, err := r.FindBySlug(record.Slug)
	if err != nil {
		return false, err
	}
	if existing == nil {
		return false, nil
	}

	record.CreatedAt = existing.CreatedAt
	if err := r.db.Save(record).Error; err != nil {
		return false, fmt.Errorf("failed to update product %s: %w", record.Slug, err)
	}
	return true, nil
}

// SetActive flips only the publication flag.
func (r *GORMProductRepository) SetActive(slug string, active bool) (bool, error) {
	existing, err := r.FindBySlug(slug)
	if err != nil {
		return false, err
	}
	if existing == nil {
		return false, nil
	}

	if err := r.db.Model(&models.ProductRecord{}).Where("slug = ?", slug).Update("is_active", active).Error; err != nil {
		return false, fmt.Errorf("failed to set product %s active=%t: %w", slug, active, err)
	}
	return true, nil
}
