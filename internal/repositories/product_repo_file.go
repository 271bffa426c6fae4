package repositories

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/nicolesuntn-stack/willsun-garment-site/internal/models"
)

// productDocument is the on-disk layout: a single JSON document holding
// every record.
type productDocument struct {
	Items []models.ProductRecord `json:"items"`
}

// FileProductRepository persists the catalog as a flat JSON file. Every
// mutation is a read-modify-write of the whole document under a mutex.
// Suited to single-process deployments where a database is overkill.
type FileProductRepository struct {
	path string
	mu   sync.Mutex
}

// NewFileProductRepository creates a file-backed store at path. A missing
// file is treated as an empty catalog until the first write.
func NewFileProductRepository(path string) *FileProductRepository {
	return &FileProductRepository{path: path}
}

func (r *FileProductRepository) load() (*productDocument, error) {
	data, err := os.ReadFile(r.path)
	if err != nil {
		if os.IsNotExist(err) {
			return &productDocument{}, nil
		}
		return nil, fmt.Errorf("failed to read product file %s: %w", r.path, err)
	}

	var doc productDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse product file %s: %w", r.path, err)
	}
	return &doc, nil
}

func (r *FileProductRepository) save(doc *productDocument) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal product document: %w", err)
	}
	if err := os.WriteFile(r.path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write product file %s: %w", r.path, err)
	}
	return nil
}

// List returns records newest-first; Create prepends, so document order is
// already the answer.
func (r *FileProductRepository) List(includeInactive bool) ([]models.ProductRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	doc, err := r.load()
	if err != nil {
		return nil, err
	}

	out := make([]models.ProductRecord, 0, len(doc.Items))
	for _, rec := range doc.Items {
		if !includeInactive && !rec.IsActive {
			continue
		}
		out = append(out, rec)
	}
	return out, nil
}

// FindBySlug returns the matching record, or (nil, nil).
func (r *FileProductRepository) FindBySlug(slug string) (*models.ProductRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	doc, err := r.load()
	if err != nil {
		return nil, err
	}
	for _, rec := range doc.Items {
		if rec.Slug == slug {
			found := rec
			return &found, nil
		}
	}
	return nil, nil
}

// Create prepends a new record and rewrites the document.
func (r *FileProductRepository) Create(record *models.ProductRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	doc, err := r.load()
	if err != nil {
		return err
	}
	for _, rec := range doc.Items {
		if rec.Slug == record.Slug {
			return ErrSlugExists
		}
	}

	now := time.Now()
	record.CreatedAt = now
	record.UpdatedAt = now
	doc.Items = append([]models.ProductRecord{*record}, doc.Items...)
	return r.save(doc)
}

// Update replaces all mutable fields for the record's slug.
func (r *FileProductRepository) Update(record *models.ProductRecord) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	doc, err := r.load()
	if err != nil {
		return false, err
	}
	for i := range doc.Items {
		if doc.Items[i].Slug != record.Slug {
			continue
		}
		record.CreatedAt = doc.Items[i].CreatedAt
		record.UpdatedAt = time.Now()
		doc.Items[i] = *record
		return true, r.save(doc)
	}
	return false, nil
}

// SetActive flips only the publication flag.
func (r *FileProductRepository) SetActive(slug string, active bool) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	doc, err := r.load()
	if err != nil {
		return false, err
	}
	for i := range doc.Items {
		if doc.Items[i].Slug == slug {
			doc.Items[i].IsActive = active
			doc.Items[i].UpdatedAt = time.Now()
			return true, r.save(doc)
		}
	}
	return false, nil
}
