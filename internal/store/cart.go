package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"luxe/internal/models"
)

// CartItemExists reports whether a cart item id is taken.
func (s *Store) CartItemExists(id string) (bool, error) {
	var one int
	err := s.db.QueryRow("SELECT 1 FROM cart_items WHERE id = ?", id).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// NewCartItemID generates an unused cart item id.
func (s *Store) NewCartItemID() (string, error) {
	return GenerateID("ci", s.CartItemExists)
}

// InsertCartItem inserts a new cart line.
func (s *Store) InsertCartItem(ctx context.Context, item *models.CartItem) error {
	if item == nil {
		return fmt.Errorf("cart item is required")
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO cart_items (id, owner_id, product_id, quantity, color, packaging, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`,
		item.ID,
		item.OwnerID,
		item.ProductID,
		item.Quantity,
		nullString(item.Color),
		nullString(item.Packaging),
		formatTime(item.CreatedAt),
		formatTime(item.UpdatedAt),
	)
	return err
}

// GetCartItem returns one cart line by id, or nil when missing.
func (s *Store) GetCartItem(ctx context.Context, id string) (*models.CartItem, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, owner_id, product_id, quantity, color, packaging, created_at, updated_at
		FROM cart_items WHERE id = ?
	`, id)
	return scanCartItem(row)
}

// ListCartItemsForProduct returns the owner's lines for one product. This is
// the narrow lookup AddToCart matches variants against.
func (s *Store) ListCartItemsForProduct(ctx context.Context, ownerID, productID string) ([]models.CartItem, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, owner_id, product_id, quantity, color, packaging, created_at, updated_at
		FROM cart_items
		WHERE owner_id = ? AND product_id = ?
		ORDER BY created_at ASC, id ASC
	`, ownerID, productID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectCartItems(rows)
}

// ListCartItems returns all of the owner's cart lines, oldest first.
func (s *Store) ListCartItems(ctx context.Context, ownerID string) ([]models.CartItem, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, owner_id, product_id, quantity, color, packaging, created_at, updated_at
		FROM cart_items
		WHERE owner_id = ?
		ORDER BY created_at ASC, id ASC
	`, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectCartItems(rows)
}

// ListCartItemsWithProducts joins cart lines to their products. Lines whose
// product has been deleted are dropped by the join, matching the contract
// that dangling references disappear from view rather than erroring.
func (s *Store) ListCartItemsWithProducts(ctx context.Context, ownerID string) ([]models.CartItemWithProduct, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT
			c.id, c.owner_id, c.product_id, c.quantity, c.color, c.packaging, c.created_at, c.updated_at,
			p.id, p.name, p.description, p.price, p.original_price, p.category, p.images, p.videos, p.colors, p.brand, p.featured, p.in_stock, p.created_at, p.updated_at
		FROM cart_items c
		JOIN products p ON p.id = c.product_id
		WHERE c.owner_id = ?
		ORDER BY c.created_at ASC, c.id ASC
	`, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]models.CartItemWithProduct, 0)
	for rows.Next() {
		var item models.CartItem
		var color, packaging sql.NullString
		var itemCreated, itemUpdated string

		var product models.Product
		var originalPrice sql.NullInt64
		var images string
		var videos, colors, brand sql.NullString
		var featured, inStock int
		var productCreated, productUpdated string

		if err := rows.Scan(
			&item.ID, &item.OwnerID, &item.ProductID, &item.Quantity, &color, &packaging, &itemCreated, &itemUpdated,
			&product.ID, &product.Name, &product.Description, &product.Price, &originalPrice, &product.Category,
			&images, &videos, &colors, &brand, &featured, &inStock, &productCreated, &productUpdated,
		); err != nil {
			return nil, err
		}

		if color.Valid {
			v := color.String
			item.Color = &v
		}
		if packaging.Valid {
			v := packaging.String
			item.Packaging = &v
		}
		if item.CreatedAt, err = parseTime(itemCreated); err != nil {
			return nil, err
		}
		if item.UpdatedAt, err = parseTime(itemUpdated); err != nil {
			return nil, err
		}

		if originalPrice.Valid {
			v := originalPrice.Int64
			product.OriginalPrice = &v
		}
		product.Brand = brand.String
		product.Featured = featured != 0
		product.InStock = inStock != 0
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
		if product.CreatedAt, err = parseTime(productCreated); err != nil {
			return nil, err
		}
		if product.UpdatedAt, err = parseTime(productUpdated); err != nil {
			return nil, err
		}

		items = append(items, models.CartItemWithProduct{CartItem: item, Product: product})
	}
	return items, rows.Err()
}

// UpdateCartItemQuantity sets the absolute quantity on one line.
func (s *Store) UpdateCartItemQuantity(ctx context.Context, id string, quantity int, now time.Time) error {
	_, err := s.db.ExecContext(ctx, `
		UPDATE cart_items SET quantity = ?, updated_at = ? WHERE id = ?
	`, quantity, formatTime(now), id)
	return err
}

// DeleteCartItem removes one cart line. Deleting a missing line is a no-op.
func (s *Store) DeleteCartItem(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM cart_items WHERE id = ?", id)
	return err
}

// CartCount returns the sum of quantities across the owner's lines.
func (s *Store) CartCount(ctx context.Context, ownerID string) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, `
		SELECT COALESCE(SUM(quantity), 0) FROM cart_items WHERE owner_id = ?
	`, ownerID).Scan(&count)
	return count, err
}

func collectCartItems(rows *sql.Rows) ([]models.CartItem, error) {
	items := make([]models.CartItem, 0)
	for rows.Next() {
		item, err := scanCartItem(rows)
		if err != nil {
			return nil, err
		}
		if item == nil {
			continue
		}
		items = append(items, *item)
	}
	return items, rows.Err()
}

func scanCartItem(scanner interface {
	Scan(dest ...any) error
}) (*models.CartItem, error) {
	var item models.CartItem
	var color, packaging sql.NullString
	var createdAt, updatedAt string

	if err := scanner.Scan(
		&item.ID,
		&item.OwnerID,
		&item.ProductID,
		&item.Quantity,
		&color,
		&packaging,
		&createdAt,
		&updatedAt,
	); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}

	if color.Valid {
		v := color.String
		item.Color = &v
	}
	if packaging.Valid {
		v := packaging.String
		item.Packaging = &v
	}

	var err error
	if item.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, err
	}
	if item.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return nil, err
	}
	return &item, nil
}

func nullString(value *string) any {
	if value == nil {
		return nil
	}
	return *value
}
