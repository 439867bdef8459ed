package server

import (
	"fmt"
	"net/url"
	"strings"

	"luxe/internal/models"
)

// Category labels shown in the WhatsApp message.
var categoryLabels = map[string]string{
	"goggles": "Goggles",
	"watches": "Watches",
	"belts":   "Belts",
}

func categoryLabel(category string) string {
	if label, ok := categoryLabels[category]; ok {
		return label
	}
	return category
}

// orderLink builds the wa.me checkout URL for one product. The optional
// color is capitalized in the message the way the storefront shows it.
func orderLink(number string, product *models.Product, color string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Hi! I'm interested in %q (%s). Price: ₹%s", product.Name, categoryLabel(product.Category), formatINR(product.Price))
	if product.OriginalPrice != nil {
		fmt.Fprintf(&b, " (MRP ₹%s)", formatINR(*product.OriginalPrice))
	}
	b.WriteString(".")
	if color = strings.TrimSpace(color); color != "" {
		fmt.Fprintf(&b, " Color: %s.", capitalize(color))
	}

	return "https://wa.me/" + number + "?text=" + url.QueryEscape(b.String())
}

// formatINR renders a rupee amount with Indian digit grouping
// (1,23,456: thousands first, then lakhs and crores in pairs).
func formatINR(amount int64) string {
	digits := fmt.Sprintf("%d", amount)
	negative := strings.HasPrefix(digits, "-")
	if negative {
		digits = digits[1:]
	}
	if len(digits) > 3 {
		head := digits[:len(digits)-3]
		tail := digits[len(digits)-3:]
		var groups []string
		for len(head) > 2 {
			groups = append([]string{head[len(head)-2:]}, groups...)
			head = head[:len(head)-2]
		}
		if head != "" {
			groups = append([]string{head}, groups...)
		}
		digits = strings.Join(groups, ",") + "," + tail
	}
	if negative {
		return "-" + digits
	}
	return digits
}

func capitalize(value string) string {
	if value == "" {
		return ""
	}
	return strings.ToUpper(value[:1]) + value[1:]
}
