package repositories

import (
	"sync"
	"time"

	"github.com/nicolesuntn-stack/willsun-garment-site/internal/models"
)

// MemoryProductRepository is an in-process implementation of
// ProductRepository. It is the fallback backend when no database or data
// file is configured, and it backs most tests. All access goes through a
// single mutex so the read-then-write sequences (slug check + insert) are
// atomic.
type MemoryProductRepository struct {
	records []models.ProductRecord
	mu      sync.RWMutex
}

// NewMemoryProductRepository creates a memory store pre-loaded with seed,
// which may be nil. Seed order is preserved.
func NewMemoryProductRepository(seed []models.ProductRecord) *MemoryProductRepository {
	records := make([]models.ProductRecord, len(seed))
	copy(records, seed)
	return &MemoryProductRepository{records: records}
}

// List returns records newest-first. Create prepends, so stored order is
// already the answer.
func (r *MemoryProductRepository) List(includeInactive bool) ([]models.ProductRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]models.ProductRecord, 0, len(r.records))
	for _, rec := range r.records {
		if !includeInactive && !rec.IsActive {
			continue
		}
		out = append(out, rec)
	}
	return out, nil
}

// FindBySlug returns a copy of the matching record, or (nil, nil).
func (r *MemoryProductRepository) FindBySlug(slug string) (*models.ProductRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, rec := range r.records {
		if rec.Slug == slug {
			found := rec
			return &found, nil
		}
	}
	return nil, nil
}

// Create prepends a new record so listings stay newest-first.
func (r *MemoryProductRepository) Create(record *models.ProductRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, rec := range r.records {
		if rec.Slug == record.Slug {
			return ErrSlugExists
		}
	}

	now := time.Now()
	record.CreatedAt = now
	record.UpdatedAt = now
	r.records = append([]models.ProductRecord{*record}, r.records...)
	return nil
}

// Update replaces all mutable fields for the record's slug.
func (r *MemoryProductRepository) Update(record *models.ProductRecord) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.records {
		if r.records[i].Slug != record.Slug {
			continue
		}
		record.CreatedAt = r.records[i].CreatedAt
		record.UpdatedAt = time.Now()
		r.records[i] = *record
		return true, nil
	}
	return false, nil
}

// SetActive flips only the publication flag.
func (r *MemoryProductRepository) SetActive(slug string, active bool) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.records {
		if r.records[i].Slug == slug {
			r.records[i].IsActive = active
			r.records[i].UpdatedAt = time.Now()
			return true, nil
		}
	}
	return false, nil
}
