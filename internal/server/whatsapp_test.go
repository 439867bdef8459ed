package server

import (
	"net/url"
	"strings"
	"testing"

	"luxe/internal/models"
)

func TestFormatINR(t *testing.T) {
	cases := []struct {
		amount int64
		want   string
	}{
		{0, "0"},
		{999, "999"},
		{1000, "1,000"},
		{2999, "2,999"},
		{45999, "45,999"},
		{123456, "1,23,456"},
		{12345678, "1,23,45,678"},
	}
	for _, tc := range cases {
		if got := formatINR(tc.amount); got != tc.want {
			t.Fatalf("formatINR(%d) = %q, want %q", tc.amount, got, tc.want)
		}
	}
}

func TestOrderLinkMessage(t *testing.T) {
	mrp := int64(45999)
	product := &models.Product{
		Name:          "Aviator Pro",
		Category:      "goggles",
		Price:         2999,
		OriginalPrice: &mrp,
	}

	link := orderLink("9871629699", product, "black")
	if !strings.HasPrefix(link, "https://wa.me/9871629699?text=") {
		t.Fatalf("unexpected link prefix: %s", link)
	}

	parsed, err := url.Parse(link)
	if err != nil {
		t.Fatalf("parse link: %v", err)
	}
	message := parsed.Query().Get("text")
	want := `Hi! I'm interested in "Aviator Pro" (Goggles). Price: ₹2,999 (MRP ₹45,999). Color: Black.`
	if message != want {
		t.Fatalf("unexpected message:\n got %q\nwant %q", message, want)
	}
}

func TestOrderLinkWithoutOptionalParts(t *testing.T) {
	product := &models.Product{
		Name:     "Designer Chain Belt",
		Category: "belts",
		Price:    1599,
	}

	parsed, err := url.Parse(orderLink("9871629699", product, ""))
	if err != nil {
		t.Fatalf("parse link: %v", err)
	}
	message := parsed.Query().Get("text")
	want := `Hi! I'm interested in "Designer Chain Belt" (Belts). Price: ₹1,599.`
	if message != want {
		t.Fatalf("unexpected message:\n got %q\nwant %q", message, want)
	}
}

func TestOrderLinkUnknownCategoryPassesThrough(t *testing.T) {
	product := &models.Product{Name: "Rose Gift Box", Category: "gift box", Price: 999}

	parsed, err := url.Parse(orderLink("9871629699", product, ""))
	if err != nil {
		t.Fatalf("parse link: %v", err)
	}
	if got := parsed.Query().Get("text"); !strings.Contains(got, "(gift box)") {
		t.Fatalf("expected raw category in message, got %q", got)
	}
}
