package models

import (
	"strings"
	"time"
)

// ProductCategory is the closed set of catalog categories.
type ProductCategory = string

const (
	CategoryShirts    ProductCategory = "shirts"
	CategoryPants     ProductCategory = "pants"
	CategoryOuterwear ProductCategory = "outerwear"
)

// AllowedCategories lists every category a record may carry.
var AllowedCategories = []ProductCategory{CategoryShirts, CategoryPants, CategoryOuterwear}

// PlaceholderImage is used when a record is created without any media.
const PlaceholderImage = "/images/products/product-placeholder.jpg"

// LocalizedFields holds the six text fields a product carries per language.
// All six must be non-empty (after trimming) before a record is persisted.
type LocalizedFields struct {
	Name     string `json:"name" validate:"required"`
	Summary  string `json:"summary" validate:"required"`
	Overview string `json:"overview" validate:"required"`
	Fabric   string `json:"fabric" validate:"required"`
	Sizes    string `json:"sizes" validate:"required"`
	Colors   string `json:"colors" validate:"required"`
}

// Trim trims surrounding whitespace on every field in place.
func (f *LocalizedFields) Trim() {
	f.Name = strings.TrimSpace(f.Name)
	f.Summary = strings.TrimSpace(f.Summary)
	f.Overview = strings.TrimSpace(f.Overview)
	f.Fabric = strings.TrimSpace(f.Fabric)
	f.Sizes = strings.TrimSpace(f.Sizes)
	f.Colors = strings.TrimSpace(f.Colors)
}

// ProductRecord is the authoritative shape of a catalog entry.
// The slug is the primary key and never changes after creation.
type ProductRecord struct {
	Slug     string          `json:"slug" gorm:"primaryKey;type:varchar(120)"`
	Category ProductCategory `json:"category" gorm:"type:varchar(20)" validate:"required,oneof=shirts pants outerwear"`
	Image    string          `json:"image"`
	Images   []string        `json:"images" gorm:"serializer:json"`
	Videos   []string        `json:"videos" gorm:"serializer:json"`
	IsActive bool            `json:"isActive"`
	ZH       LocalizedFields `json:"zh" gorm:"embedded;embeddedPrefix:zh_"`
	EN       LocalizedFields `json:"en" gorm:"embedded;embeddedPrefix:en_"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ProductInput is the admin-facing payload for create and update requests.
// IsActive is a pointer so an omitted flag can default to true.
type ProductInput struct {
	Slug     string          `json:"slug"`
	Category ProductCategory `json:"category"`
	Image    string          `json:"image"`
	Images   []string        `json:"images"`
	Videos   []string        `json:"videos"`
	IsActive *bool           `json:"isActive"`
	ZH       LocalizedFields `json:"zh"`
	EN       LocalizedFields `json:"en"`
}

// ProductItem is the locale-projected view served to the public catalog.
type ProductItem struct {
	Slug     string          `json:"slug"`
	Category ProductCategory `json:"category"`
	Image    string          `json:"image"`
	Images   []string        `json:"images"`
	Videos   []string        `json:"videos"`
	Name     string          `json:"name"`
	Summary  string          `json:"summary"`
	Overview string          `json:"overview"`
	Fabric   string          `json:"fabric"`
	Sizes    string          `json:"sizes"`
	Colors   string          `json:"colors"`
}

// Localized merges the matching language block with the shared fields.
// Pure mapping, no I/O.
func (r ProductRecord) Localized(locale string) ProductItem {
	fields := r.EN
	if locale == "zh" {
		fields = r.ZH
	}
	return ProductItem{
		Slug:     r.Slug,
		Category: r.Category,
		Image:    r.Image,
		Images:   r.Images,
		Videos:   r.Videos,
		Name:     fields.Name,
		Summary:  fields.Summary,
		Overview: fields.Overview,
		Fabric:   fields.Fabric,
		Sizes:    fields.Sizes,
		Colors:   fields.Colors,
	}
}
