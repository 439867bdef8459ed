package models

import "time"

// CartItem is one line in an owner's cart. Color and Packaging are variant
// selectors: a nil pointer means the variant was never chosen, while an empty
// string is a deliberate (if odd) choice. The two are distinct identities and
// must never be merged.
type CartItem struct {
	ID        string    `json:"id"`
	OwnerID   string    `json:"owner_id"`
	ProductID string    `json:"product_id"`
	Quantity  int       `json:"quantity"`
	Color     *string   `json:"color,omitempty"`
	Packaging *string   `json:"packaging,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CartItemWithProduct joins a cart line with its product for display.
type CartItemWithProduct struct {
	CartItem
	Product Product `json:"product"`
}

// VariantMatches reports whether the given variant selectors identify the
// same line as this item.
func (c *CartItem) VariantMatches(color, packaging *string) bool {
	return optionalEqual(c.Color, color) && optionalEqual(c.Packaging, packaging)
}

func optionalEqual(a, b *string) bool {
	if a == nil && b == nil {
		return true
	}
	if a == nil || b == nil {
		return false
	}
	return *a == *b
}
