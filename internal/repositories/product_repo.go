package repositories

import (
	"errors"

	"github.com/nicolesuntn-stack/willsun-garment-site/internal/models"
)

// ErrSlugExists is returned by Create when a record with the same slug is
// already stored. Uniqueness is enforced inside every backend so concurrent
// creates cannot slip past the API-level pre-check.
var ErrSlugExists = errors.New("slug already exists")

// ProductRepository defines the interface for product persistence.
// All three backends (in-memory, flat file, relational) satisfy it with
// identical contracts.
type ProductRepository interface {
	// List returns records newest-first. With includeInactive false only
	// published records are returned.
	List(includeInactive bool) ([]models.ProductRecord, error)
	// FindBySlug returns (nil, nil) when no record matches.
	FindBySlug(slug string) (*models.ProductRecord, error)
	Create(record *models.ProductRecord) error
	// Update replaces all mutable fields for an existing slug.
	// Returns false when the slug does not exist; the store is unchanged.
	Update(record *models.ProductRecord) (bool, error)
	// SetActive flips only the publication flag.
	SetActive(slug string, active bool) (bool, error)
}
