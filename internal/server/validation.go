package server

import (
	"fmt"
	"regexp"
	"strings"
)

var idRegex = regexp.MustCompile(`^[a-z]{2}-[0-9a-z]{4}$`)

// validateID checks the short two-letter-prefix id format. An empty prefix
// accepts any resource prefix.
func validateID(id, prefix string) bool {
	if !idRegex.MatchString(id) {
		return false
	}
	if prefix == "" {
		return true
	}
	return strings.HasPrefix(id, prefix+"-")
}

func requireText(value, field string, maxLen int) (string, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return "", badRequestCode(fmt.Errorf("%s is required", field), ErrCodeMissingRequired)
	}
	if maxLen > 0 && len(value) > maxLen {
		return "", badRequest(fmt.Errorf("%s exceeds %d characters", field, maxLen))
	}
	return value, nil
}

func validateQuantity(quantity int) error {
	if quantity < 1 {
		return badRequestCode(fmt.Errorf("quantity must be >= 1"), ErrCodeInvalidQuantity)
	}
	if quantity > 999 {
		return badRequestCode(fmt.Errorf("quantity must be <= 999"), ErrCodeInvalidQuantity)
	}
	return nil
}

func validatePrice(price int64) error {
	if price <= 0 {
		return badRequestCode(fmt.Errorf("price must be > 0"), ErrCodeInvalidPrice)
	}
	return nil
}

func normalizeVariant(value *string) *string {
	if value == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*value)
	return &trimmed
}
