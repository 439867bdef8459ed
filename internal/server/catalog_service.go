package server

import (
	"context"
	"fmt"
	"strings"
	"time"

	"luxe/internal/models"
	"luxe/internal/store"
)

const (
	maxProductNameLen        = 200
	maxProductDescriptionLen = 4000
)

// CatalogService owns product reads and admin product writes.
type CatalogService struct {
	store          store.CatalogStore
	whatsappNumber string
}

func NewCatalogService(catalogStore store.CatalogStore, whatsappNumber string) *CatalogService {
	return &CatalogService{store: catalogStore, whatsappNumber: whatsappNumber}
}

func (c *CatalogService) List(ctx context.Context, filter store.ProductFilter) ([]models.Product, error) {
	if filter.Category != "" {
		category, err := models.NormalizeCategory(filter.Category)
		if err != nil {
			return nil, badRequestCode(err, ErrCodeInvalidCategory)
		}
		filter.Category = category
	}
	return c.store.ListProducts(ctx, filter)
}

func (c *CatalogService) Get(ctx context.Context, id string) (*models.Product, error) {
	product, err := c.store.GetProduct(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, notFoundCode(fmt.Errorf("product %s not found", id), ErrCodeProductNotFound)
	}
	return product, nil
}

func (c *CatalogService) Summaries(ctx context.Context) ([]models.ProductSummary, error) {
	return c.store.ListProductSummaries(ctx)
}

// Create validates and inserts a new product.
func (c *CatalogService) Create(ctx context.Context, input *models.Product, now time.Time) (*models.Product, error) {
	name, err := requireText(input.Name, "name", maxProductNameLen)
	if err != nil {
		return nil, err
	}
	if len(input.Description) > maxProductDescriptionLen {
		return nil, badRequest(fmt.Errorf("description exceeds %d characters", maxProductDescriptionLen))
	}
	category, err := models.NormalizeCategory(input.Category)
	if err != nil {
		return nil, badRequestCode(err, ErrCodeInvalidCategory)
	}
	if err := validatePrice(input.Price); err != nil {
		return nil, err
	}
	if input.OriginalPrice != nil {
		if err := validatePrice(*input.OriginalPrice); err != nil {
			return nil, err
		}
	}

	id, err := c.store.NewProductID()
	if err != nil {
		return nil, err
	}

	product := &models.Product{
		ID:            id,
		Name:          name,
		Description:   strings.TrimSpace(input.Description),
		Price:         input.Price,
		OriginalPrice: input.OriginalPrice,
		Category:      category,
		Images:        input.Images,
		Videos:        input.Videos,
		Colors:        input.Colors,
		Brand:         strings.TrimSpace(input.Brand),
		Featured:      input.Featured,
		InStock:       input.InStock,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := c.store.CreateProduct(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

// UpdateMediaByName replaces the media lists of the product with the
// given name. The lookup is case-insensitive.
func (c *CatalogService) UpdateMediaByName(ctx context.Context, name string, images, videos []string, now time.Time) (*models.Product, error) {
	name, err := requireText(name, "name", maxProductNameLen)
	if err != nil {
		return nil, err
	}
	if len(images) == 0 {
		return nil, badRequestCode(fmt.Errorf("images are required"), ErrCodeMissingRequired)
	}

	product, err := c.store.GetProductByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, notFoundCode(fmt.Errorf("product %q not found", name), ErrCodeProductNotFound)
	}

	if err := c.store.UpdateProductMedia(ctx, product.ID, images, videos, now); err != nil {
		return nil, err
	}
	product.Images = images
	product.Videos = videos
	product.UpdatedAt = now
	return product, nil
}

// OrderLink builds the WhatsApp checkout URL for one product.
func (c *CatalogService) OrderLink(ctx context.Context, id, color string) (string, error) {
	product, err := c.Get(ctx, id)
	if err != nil {
		return "", err
	}
	return orderLink(c.whatsappNumber, product, color), nil
}
