package store

import (
	"context"
	"time"

	"luxe/internal/models"
)

// CatalogStore abstracts product storage for the catalog service.
type CatalogStore interface {
	NewProductID() (string, error)
	CreateProduct(ctx context.Context, product *models.Product) error
	GetProduct(ctx context.Context, id string) (*models.Product, error)
	GetProductByName(ctx context.Context, name string) (*models.Product, error)
	ListProducts(ctx context.Context, filter ProductFilter) ([]models.Product, error)
	ListProductSummaries(ctx context.Context) ([]models.ProductSummary, error)
	CountProducts(ctx context.Context) (int, error)
	ReplaceProduct(ctx context.Context, product *models.Product) error
	UpdateProductMedia(ctx context.Context, id string, images, videos []string, now time.Time) error
}

// CartStore abstracts cart line storage for the cart service.
type CartStore interface {
	NewCartItemID() (string, error)
	InsertCartItem(ctx context.Context, item *models.CartItem) error
	GetCartItem(ctx context.Context, id string) (*models.CartItem, error)
	ListCartItemsForProduct(ctx context.Context, ownerID, productID string) ([]models.CartItem, error)
	ListCartItems(ctx context.Context, ownerID string) ([]models.CartItem, error)
	ListCartItemsWithProducts(ctx context.Context, ownerID string) ([]models.CartItemWithProduct, error)
	UpdateCartItemQuantity(ctx context.Context, id string, quantity int, now time.Time) error
	DeleteCartItem(ctx context.Context, id string) error
	CartCount(ctx context.Context, ownerID string) (int, error)
}

// StorageStore abstracts blob metadata storage for uploads and the audit.
type StorageStore interface {
	NewStorageFileID() (string, error)
	InsertStorageFile(ctx context.Context, file *models.StorageFile) error
	GetStorageFile(ctx context.Context, id string) (*models.StorageFile, error)
	ListStorageFiles(ctx context.Context) ([]models.StorageFile, error)
}

// IdentityStore abstracts customer, session, and OTP storage for the auth
// service.
type IdentityStore interface {
	NewUserID() (string, error)
	CreateUser(ctx context.Context, user *models.User) error
	GetUser(ctx context.Context, id string) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	MarkUserVerified(ctx context.Context, id string, when time.Time) error
	UpsertOTPCode(ctx context.Context, code *OTPCode) error
	GetOTPCode(ctx context.Context, email string) (*OTPCode, error)
	IncrementOTPAttempts(ctx context.Context, email string) error
	DeleteOTPCode(ctx context.Context, email string) error
	CreateSession(ctx context.Context, principalID, kind, tokenHash string, expiresAt, createdAt time.Time) error
	GetSessionByTokenHash(ctx context.Context, tokenHash string, now time.Time) (*Session, error)
	RevokeSessionByTokenHash(ctx context.Context, tokenHash string, revokedAt time.Time) error
	GetAdminUserByUsername(ctx context.Context, username string) (*AdminUser, error)
	GetAdminUserByID(ctx context.Context, id string) (*AdminUser, error)
}

// SubscriberStore abstracts newsletter signup storage.
type SubscriberStore interface {
	NewSubscriberID() (string, error)
	InsertSubscriber(ctx context.Context, subscriber *models.Subscriber) (bool, error)
	ListSubscribers(ctx context.Context) ([]models.Subscriber, error)
}

var (
	_ CatalogStore    = (*Store)(nil)
	_ CartStore       = (*Store)(nil)
	_ StorageStore    = (*Store)(nil)
	_ IdentityStore   = (*Store)(nil)
	_ SubscriberStore = (*Store)(nil)
)
