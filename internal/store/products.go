package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"luxe/internal/models"
)

// ProductFilter narrows ListProducts results.
type ProductFilter struct {
	Category string
	Featured *bool
	InStock  *bool
	Limit    int
	Offset   int
}

// ProductExists reports whether a product id is taken.
func (s *Store) ProductExists(id string) (bool, error) {
	var one int
	err := s.db.QueryRow("SELECT 1 FROM products WHERE id = ?", id).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// NewProductID generates an unused product id.
func (s *Store) NewProductID() (string, error) {
	return GenerateID("pr", s.ProductExists)
}

// CreateProduct inserts a product row.
func (s *Store) CreateProduct(ctx context.Context, product *models.Product) error {
	if product == nil {
		return fmt.Errorf("product is required")
	}

	images, err := encodeStringList(product.Images)
	if err != nil {
		return err
	}
	videos, err := encodeOptionalStringList(product.Videos)
	if err != nil {
		return err
	}
	colors, err := encodeOptionalStringList(product.Colors)
	if err != nil {
		return err
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO products (
			id, name, description, price, original_price, category, images, videos, colors, brand, featured, in_stock, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		product.ID,
		product.Name,
		product.Description,
		product.Price,
		nullInt64(product.OriginalPrice),
		product.Category,
		images,
		videos,
		colors,
		nullIfEmpty(product.Brand),
		boolToInt(product.Featured),
		boolToInt(product.InStock),
		formatTime(product.CreatedAt),
		formatTime(product.UpdatedAt),
	)
	return err
}

// GetProduct returns a product by id, or nil when missing.
func (s *Store) GetProduct(ctx context.Context, id string) (*models.Product, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, name, description, price, original_price, category, images, videos, colors, brand, featured, in_stock, created_at, updated_at
		FROM products WHERE id = ?
	`, id)
	return scanProduct(row)
}

// GetProductByName returns a product by case-insensitive name match.
func (s *Store) GetProductByName(ctx context.Context, name string) (*models.Product, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, name, description, price, original_price, category, images, videos, colors, brand, featured, in_stock, created_at, updated_at
		FROM products WHERE name = ? COLLATE NOCASE
		LIMIT 1
	`, strings.TrimSpace(name))
	return scanProduct(row)
}

// ListProducts returns products matching the filter, newest first.
func (s *Store) ListProducts(ctx context.Context, filter ProductFilter) ([]models.Product, error) {
	where := []string{}
	args := []any{}

	if filter.Category != "" {
		where = append(where, "category = ?")
		args = append(args, filter.Category)
	}
	if filter.Featured != nil {
		where = append(where, "featured = ?")
		args = append(args, boolToInt(*filter.Featured))
	}
	if filter.InStock != nil {
		where = append(where, "in_stock = ?")
		args = append(args, boolToInt(*filter.InStock))
	}

	query := `
		SELECT id, name, description, price, original_price, category, images, videos, colors, brand, featured, in_stock, created_at, updated_at
		FROM products`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY created_at DESC, id ASC"
	if filter.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, filter.Limit)
		if filter.Offset > 0 {
			query += " OFFSET ?"
			args = append(args, filter.Offset)
		}
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	products := make([]models.Product, 0)
	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		if product == nil {
			continue
		}
		products = append(products, *product)
	}
	return products, rows.Err()
}

// ListProductSummaries returns the compact admin listing, sorted by name.
func (s *Store) ListProductSummaries(ctx context.Context) ([]models.ProductSummary, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, category, price, in_stock
		FROM products
		ORDER BY name COLLATE NOCASE ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	summaries := make([]models.ProductSummary, 0)
	for rows.Next() {
		var summary models.ProductSummary
		var inStock int
		if err := rows.Scan(&summary.ID, &summary.Name, &summary.Category, &summary.Price, &inStock); err != nil {
			return nil, err
		}
		summary.InStock = inStock != 0
		summaries = append(summaries, summary)
	}
	return summaries, rows.Err()
}

// CountProducts returns the total catalog size.
func (s *Store) CountProducts(ctx context.Context) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM products").Scan(&count)
	return count, err
}

// ReplaceProduct overwrites every mutable field on an existing product.
func (s *Store) ReplaceProduct(ctx context.Context, product *models.Product) error {
	if product == nil {
		return fmt.Errorf("product is required")
	}

	images, err := encodeStringList(product.Images)
	if err != nil {
		return err
	}
	videos, err := encodeOptionalStringList(product.Videos)
	if err != nil {
		return err
	}
	colors, err := encodeOptionalStringList(product.Colors)
	if err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx, `
		UPDATE products
		SET name = ?, description = ?, price = ?, original_price = ?, category = ?,
		    images = ?, videos = ?, colors = ?, brand = ?, featured = ?, in_stock = ?, updated_at = ?
		WHERE id = ?
	`,
		product.Name,
		product.Description,
		product.Price,
		nullInt64(product.OriginalPrice),
		product.Category,
		images,
		videos,
		colors,
		nullIfEmpty(product.Brand),
		boolToInt(product.Featured),
		boolToInt(product.InStock),
		formatTime(product.UpdatedAt),
		product.ID,
	)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("product %s not found", product.ID)
	}
	return nil
}

// UpdateProductMedia replaces a product's images and videos lists.
func (s *Store) UpdateProductMedia(ctx context.Context, id string, images, videos []string, now time.Time) error {
	encodedImages, err := encodeStringList(images)
	if err != nil {
		return err
	}
	encodedVideos, err := encodeOptionalStringList(videos)
	if err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx, `
		UPDATE products
		SET images = ?, videos = ?, updated_at = ?
		WHERE id = ?
	`, encodedImages, encodedVideos, formatTime(now), id)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("product %s not found", id)
	}
	return nil
}

func scanProduct(scanner interface {
	Scan(dest ...any) error
}) (*models.Product, error) {
	var product models.Product
	var originalPrice sql.NullInt64
	var images string
	var videos, colors, brand sql.NullString
	var featured, inStock int
	var createdAt, updatedAt string

	if err := scanner.Scan(
		&product.ID,
		&product.Name,
		&product.Description,
		&product.Price,
		&originalPrice,
		&product.Category,
		&images,
		&videos,
		&colors,
		&brand,
		&featured,
		&inStock,
		&createdAt,
		&updatedAt,
	); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}

	if originalPrice.Valid {
		v := originalPrice.Int64
		product.OriginalPrice = &v
	}
	product.Brand = brand.String
	product.Featured = featured != 0
	product.InStock = inStock != 0

	var err error
	if product.Images, err = decodeStringList(images); err != nil {
		return nil, err
	}
	if videos.Valid {
		if product.Videos, err = decodeStringList(videos.String); err != nil {
			return nil, err
		}
	}
	if colors.Valid {
		if product.Colors, err = decodeStringList(colors.String); err != nil {
			return nil, err
		}
	}

	if product.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, err
	}
	if product.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return nil, err
	}

	return &product, nil
}

// List columns hold JSON arrays of strings. Optional lists store NULL when
// empty so the row stays compact.
func encodeStringList(values []string) (string, error) {
	if values == nil {
		values = []string{}
	}
	buf, err := json.Marshal(values)
	if err != nil {
		return "", err
	}
	return string(buf), nil
}

func encodeOptionalStringList(values []string) (any, error) {
	if len(values) == 0 {
		return nil, nil
	}
	return encodeStringList(values)
}

func decodeStringList(value string) ([]string, error) {
	if value == "" {
		return nil, nil
	}
	var values []string
	if err := json.Unmarshal([]byte(value), &values); err != nil {
		return nil, fmt.Errorf("decode list column: %w", err)
	}
	return values, nil
}

func nullIfEmpty(value string) any {
	if value == "" {
		return nil
	}
	return value
}

func nullInt64(value *int64) any {
	if value == nil {
		return nil
	}
	return *value
}

func nullTime(value *time.Time) any {
	if value == nil || value.IsZero() {
		return nil
	}
	return formatTime(*value)
}

func boolToInt(value bool) int {
	if value {
		return 1
	}
	return 0
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func parseTime(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	return time.Parse(time.RFC3339Nano, value)
}
