package server

import (
	"context"
	"fmt"
	"time"

	"luxe/internal/models"
	"luxe/internal/store"
)

// CartService implements the variant-aware cart merge rules. A line is
// identified by owner, product, and the exact color/packaging pair, where
// an absent option and an empty-string option are distinct variants.
type CartService struct {
	store   store.CartStore
	catalog store.CatalogStore
}

func NewCartService(s *store.Store) *CartService {
	if s == nil {
		return nil
	}
	return &CartService{store: s, catalog: s}
}

// Add merges one add into the owner's cart. When a line with the same
// product and variant already exists its quantity is incremented,
// otherwise a new line is created. Returns the affected line id.
func (c *CartService) Add(ctx context.Context, ownerID, productID string, quantity int, color, packaging *string, now time.Time) (string, error) {
	if quantity == 0 {
		quantity = 1
	}
	if err := validateQuantity(quantity); err != nil {
		return "", err
	}

	product, err := c.catalog.GetProduct(ctx, productID)
	if err != nil {
		return "", err
	}
	if product == nil {
		return "", notFoundCode(fmt.Errorf("product %s not found", productID), ErrCodeProductNotFound)
	}

	color = normalizeVariant(color)
	packaging = normalizeVariant(packaging)

	existing, err := c.store.ListCartItemsForProduct(ctx, ownerID, productID)
	if err != nil {
		return "", err
	}
	for _, item := range existing {
		if item.VariantMatches(color, packaging) {
			if err := c.store.UpdateCartItemQuantity(ctx, item.ID, item.Quantity+quantity, now); err != nil {
				return "", err
			}
			return item.ID, nil
		}
	}

	id, err := c.store.NewCartItemID()
	if err != nil {
		return "", err
	}
	item := &models.CartItem{
		ID:        id,
		OwnerID:   ownerID,
		ProductID: productID,
		Quantity:  quantity,
		Color:     color,
		Packaging: packaging,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := c.store.InsertCartItem(ctx, item); err != nil {
		return "", err
	}
	return id, nil
}

// SetQuantity sets an absolute quantity on one line. A quantity of zero
// or less removes the line. Updating a line that does not exist, or one
// owned by someone else, is a no-op. Returns the line id, or nil when
// the line was removed or absent.
func (c *CartService) SetQuantity(ctx context.Context, ownerID, itemID string, quantity int, now time.Time) (*string, error) {
	item, err := c.store.GetCartItem(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if item == nil || item.OwnerID != ownerID {
		return nil, nil
	}

	if quantity <= 0 {
		if err := c.store.DeleteCartItem(ctx, itemID); err != nil {
			return nil, err
		}
		return nil, nil
	}

	if err := validateQuantity(quantity); err != nil {
		return nil, err
	}
	if err := c.store.UpdateCartItemQuantity(ctx, itemID, quantity, now); err != nil {
		return nil, err
	}
	return &itemID, nil
}

// Items lists the owner's cart joined with product details. Lines whose
// product has been deleted are omitted.
func (c *CartService) Items(ctx context.Context, ownerID string) ([]models.CartItemWithProduct, error) {
	return c.store.ListCartItemsWithProducts(ctx, ownerID)
}

// Count returns the total quantity across the owner's lines.
func (c *CartService) Count(ctx context.Context, ownerID string) (int, error) {
	return c.store.CartCount(ctx, ownerID)
}
