// Package seed loads the embedded starter catalog into an empty store and
// keeps the curated collection up to date.
package seed

import (
	"context"
	_ "embed"
	"fmt"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"luxe/internal/models"
	"luxe/internal/store"
)

//go:embed catalog.yaml
var catalogYAML []byte

// Item is one catalog entry in the seed file.
type Item struct {
	Name          string   `yaml:"name"`
	Description   string   `yaml:"description"`
	Price         int64    `yaml:"price"`
	OriginalPrice *int64   `yaml:"original_price"`
	Category      string   `yaml:"category"`
	Images        []string `yaml:"images"`
	Videos        []string `yaml:"videos"`
	Colors        []string `yaml:"colors"`
	Brand         string   `yaml:"brand"`
	Featured      bool     `yaml:"featured"`
	InStock       bool     `yaml:"in_stock"`
}

// Catalog is the embedded seed file. Products is the base catalog, applied
// only to an empty store. Collection is upserted on every run, matched by
// category plus case-insensitive name.
type Catalog struct {
	Products   []Item `yaml:"products"`
	Collection []Item `yaml:"collection"`
}

// Result summarizes one seeding run.
type Result struct {
	Skipped  bool `json:"skipped"`
	Seeded   int  `json:"seeded"`
	Inserted int  `json:"inserted"`
	Updated  int  `json:"updated"`
}

// LoadCatalog parses the embedded seed file.
func LoadCatalog() (*Catalog, error) {
	var catalog Catalog
	if err := yaml.Unmarshal(catalogYAML, &catalog); err != nil {
		return nil, fmt.Errorf("parse seed catalog: %w", err)
	}
	return &catalog, nil
}

// Apply runs the catalog against the store.
func Apply(ctx context.Context, st store.CatalogStore, now time.Time) (*Result, error) {
	catalog, err := LoadCatalog()
	if err != nil {
		return nil, err
	}
	return ApplyCatalog(ctx, st, catalog, now)
}

// ApplyCatalog seeds the base list when the store is empty, then upserts the
// collection.
func ApplyCatalog(ctx context.Context, st store.CatalogStore, catalog *Catalog, now time.Time) (*Result, error) {
	result := &Result{}

	count, err := st.CountProducts(ctx)
	if err != nil {
		return nil, err
	}
	if count == 0 {
		for i := range catalog.Products {
			if err := insertItem(ctx, st, &catalog.Products[i], now); err != nil {
				return nil, err
			}
			result.Seeded++
		}
	} else {
		result.Skipped = true
	}

	for i := range catalog.Collection {
		inserted, err := upsertItem(ctx, st, &catalog.Collection[i], now)
		if err != nil {
			return nil, err
		}
		if inserted {
			result.Inserted++
		} else {
			result.Updated++
		}
	}

	return result, nil
}

func insertItem(ctx context.Context, st store.CatalogStore, item *Item, now time.Time) error {
	product, err := item.toProduct(now)
	if err != nil {
		return err
	}
	product.ID, err = st.NewProductID()
	if err != nil {
		return err
	}
	return st.CreateProduct(ctx, product)
}

func upsertItem(ctx context.Context, st store.CatalogStore, item *Item, now time.Time) (bool, error) {
	product, err := item.toProduct(now)
	if err != nil {
		return false, err
	}

	inCategory, err := st.ListProducts(ctx, store.ProductFilter{Category: product.Category})
	if err != nil {
		return false, err
	}

	for i := range inCategory {
		if !strings.EqualFold(inCategory[i].Name, product.Name) {
			continue
		}
		product.ID = inCategory[i].ID
		product.CreatedAt = inCategory[i].CreatedAt
		return false, st.ReplaceProduct(ctx, product)
	}

	product.ID, err = st.NewProductID()
	if err != nil {
		return false, err
	}
	return true, st.CreateProduct(ctx, product)
}

func (item *Item) toProduct(now time.Time) (*models.Product, error) {
	if strings.TrimSpace(item.Name) == "" {
		return nil, fmt.Errorf("seed item name is required")
	}
	category, err := models.NormalizeCategory(item.Category)
	if err != nil {
		return nil, fmt.Errorf("seed item %q: %w", item.Name, err)
	}
	return &models.Product{
		Name:          strings.TrimSpace(item.Name),
		Description:   item.Description,
		Price:         item.Price,
		OriginalPrice: item.OriginalPrice,
		Category:      category,
		Images:        item.Images,
		Videos:        item.Videos,
		Colors:        item.Colors,
		Brand:         item.Brand,
		Featured:      item.Featured,
		InStock:       item.InStock,
		CreatedAt:     now,
		UpdatedAt:     now,
	}, nil
}
