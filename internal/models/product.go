package models

import (
	"fmt"
	"strings"
	"time"
)

// Product is a catalog entry. Prices are stored in rupees as whole numbers.
// OriginalPrice, when set, is the strike-through MRP shown next to Price.
type Product struct {
	ID            string     `json:"id"`
	Name          string     `json:"name"`
	Description   string     `json:"description"`
	Price         int64      `json:"price"`
	OriginalPrice *int64     `json:"original_price,omitempty"`
	Category      string     `json:"category"`
	Images        []string   `json:"images"`
	Videos        []string   `json:"videos,omitempty"`
	Colors        []string   `json:"colors,omitempty"`
	Brand         string     `json:"brand,omitempty"`
	Featured      bool       `json:"featured"`
	InStock       bool       `json:"in_stock"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// ProductSummary is the compact listing used by admin tooling.
type ProductSummary struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Category string `json:"category"`
	Price    int64  `json:"price"`
	InStock  bool   `json:"in_stock"`
}

// NormalizeCategory lowercases and trims a category value.
func NormalizeCategory(raw string) (string, error) {
	category := strings.ToLower(strings.TrimSpace(raw))
	if category == "" {
		return "", fmt.Errorf("category is required")
	}
	return category, nil
}

// MediaURLs returns every referenced media URL, images first.
func (p *Product) MediaURLs() []string {
	urls := make([]string, 0, len(p.Images)+len(p.Videos))
	urls = append(urls, p.Images...)
	urls = append(urls, p.Videos...)
	return urls
}

// SameName reports whether the product's name matches, ignoring case.
func (p *Product) SameName(name string) bool {
	return strings.EqualFold(p.Name, name)
}
