// Package api defines the wire types shared by the server and CLI client.
package api

import "time"

// ErrorResponse is the JSON error envelope.
type ErrorResponse struct {
	Error     string `json:"error"`
	Code      string `json:"code,omitempty"`
	ErrorCode int    `json:"error_code,omitempty"`
}

// InfoResponse is returned by GET /v1/info.
type InfoResponse struct {
	Version       string         `json:"version"`
	SchemaVersion int            `json:"schema_version"`
	TotalProducts int            `json:"total_products"`
	ProductCounts map[string]int `json:"product_counts"`
}

// ProductResponse is one catalog entry on the wire.
type ProductResponse struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Description   string    `json:"description"`
	Price         int64     `json:"price"`
	OriginalPrice *int64    `json:"original_price,omitempty"`
	Category      string    `json:"category"`
	Images        []string  `json:"images"`
	Videos        []string  `json:"videos,omitempty"`
	Colors        []string  `json:"colors,omitempty"`
	Brand         string    `json:"brand,omitempty"`
	Featured      bool      `json:"featured"`
	InStock       bool      `json:"in_stock"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// ProductSummaryResponse is the compact admin listing row.
type ProductSummaryResponse struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Category string `json:"category"`
	Price    int64  `json:"price"`
	InStock  bool   `json:"in_stock"`
}

// ProductCreateRequest creates one product.
type ProductCreateRequest struct {
	Name          string   `json:"name"`
	Description   string   `json:"description"`
	Price         int64    `json:"price"`
	OriginalPrice *int64   `json:"original_price,omitempty"`
	Category      string   `json:"category"`
	Images        []string `json:"images"`
	Videos        []string `json:"videos,omitempty"`
	Colors        []string `json:"colors,omitempty"`
	Brand         string   `json:"brand,omitempty"`
	Featured      bool     `json:"featured"`
	InStock       bool     `json:"in_stock"`
}

// ProductImagesRequest replaces a product's media lists, addressed by name.
type ProductImagesRequest struct {
	Name   string   `json:"name"`
	Images []string `json:"images"`
	Videos []string `json:"videos,omitempty"`
}

// OrderLinkResponse carries the WhatsApp checkout link for one product.
type OrderLinkResponse struct {
	URL string `json:"url"`
}

// CartAddRequest merges one add into the caller's cart.
type CartAddRequest struct {
	ProductID string  `json:"product_id"`
	Quantity  *int    `json:"quantity,omitempty"`
	Color     *string `json:"color,omitempty"`
	Packaging *string `json:"packaging,omitempty"`
}

// CartItemIDResponse returns the affected line id, null when the line was
// removed or absent.
type CartItemIDResponse struct {
	ItemID *string `json:"item_id"`
}

// CartQuantityRequest sets an absolute quantity on one line.
type CartQuantityRequest struct {
	Quantity int `json:"quantity"`
}

// CartItemResponse is one cart line joined with its product.
type CartItemResponse struct {
	ID        string          `json:"id"`
	ProductID string          `json:"product_id"`
	Quantity  int             `json:"quantity"`
	Color     *string         `json:"color,omitempty"`
	Packaging *string         `json:"packaging,omitempty"`
	Product   ProductResponse `json:"product"`
}

// CartCountResponse is the owner's total quantity.
type CartCountResponse struct {
	Count int `json:"count"`
}

// OTPRequestRequest asks for a login code.
type OTPRequestRequest struct {
	Email string `json:"email"`
}

// OTPVerifyRequest redeems a login code.
type OTPVerifyRequest struct {
	Email string `json:"email"`
	Code  string `json:"code"`
}

// SessionResponse is returned on successful login.
type SessionResponse struct {
	Token     string        `json:"token"`
	ExpiresAt time.Time     `json:"expires_at"`
	User      *UserResponse `json:"user,omitempty"`
}

// UserResponse is the authenticated customer.
type UserResponse struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	Name     string `json:"name,omitempty"`
	Verified bool   `json:"verified"`
}

// AdminLoginRequest authenticates a provisioned admin account.
type AdminLoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// ProfileRequest saves the caller's shipping details.
type ProfileRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Phone     string `json:"phone"`
	Address1  string `json:"address1"`
	Address2  string `json:"address2,omitempty"`
	City      string `json:"city"`
	State     string `json:"state"`
	Pin       string `json:"pin"`
}

// ProfileResponse is the stored shipping profile.
type ProfileResponse struct {
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Phone     string    `json:"phone"`
	Address1  string    `json:"address1"`
	Address2  string    `json:"address2,omitempty"`
	City      string    `json:"city"`
	State     string    `json:"state"`
	Pin       string    `json:"pin"`
	UpdatedAt time.Time `json:"updated_at"`
}

// SubscribeRequest adds a newsletter signup.
type SubscribeRequest struct {
	Email string `json:"email"`
}

// SubscribeResponse reports whether the signup was new.
type SubscribeResponse struct {
	Subscribed bool `json:"subscribed"`
	Added      bool `json:"added"`
}

// NewsletterRequest broadcasts to all subscribers.
type NewsletterRequest struct {
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// NewsletterResponse summarizes a broadcast.
type NewsletterResponse struct {
	Recipients int `json:"recipients"`
	Batches    int `json:"batches"`
}

// StorageFileResponse is one uploaded blob with classification.
type StorageFileResponse struct {
	ID          string    `json:"id"`
	ContentType string    `json:"content_type"`
	SizeBytes   int64     `json:"size_bytes"`
	UploadedAt  time.Time `json:"uploaded_at"`
	URL         string    `json:"url,omitempty"`
	Status      string    `json:"status"`
}

// StorageUploadResponse is returned after an admin upload.
type StorageUploadResponse struct {
	ID          string `json:"id"`
	URL         string `json:"url,omitempty"`
	SHA256      string `json:"sha256"`
	SizeBytes   int64  `json:"size_bytes"`
	ContentType string `json:"content_type"`
}

// StorageAuditResponse is the full audit view.
type StorageAuditResponse struct {
	Total           int                     `json:"total"`
	Active          int                     `json:"active"`
	Orphaned        int                     `json:"orphaned"`
	ActiveFiles     []StorageFileResponse   `json:"active_files"`
	OrphanedFiles   []StorageFileResponse   `json:"orphaned_files"`
	GroupedOrphaned [][]StorageFileResponse `json:"grouped_orphaned"`
	WindowMS        int64                   `json:"window_ms"`
}

// SeedResponse summarizes a seeding run.
type SeedResponse struct {
	Skipped  bool `json:"skipped"`
	Seeded   int  `json:"seeded"`
	Inserted int  `json:"inserted"`
	Updated  int  `json:"updated"`
}
