package models

import "testing"

func strPtr(s string) *string { return &s }

func TestVariantMatches(t *testing.T) {
	cases := []struct {
		name           string
		itemColor      *string
		itemPackaging  *string
		color          *string
		packaging      *string
		want           bool
	}{
		{"both absent", nil, nil, nil, nil, true},
		{"same color", strPtr("gold"), nil, strPtr("gold"), nil, true},
		{"different color", strPtr("gold"), nil, strPtr("rose"), nil, false},
		{"color vs absent", strPtr("gold"), nil, nil, nil, false},
		{"absent vs color", nil, nil, strPtr("gold"), nil, false},
		{"empty string is not absent", strPtr(""), nil, nil, nil, false},
		{"empty string matches empty string", strPtr(""), nil, strPtr(""), nil, true},
		{"same color different packaging", strPtr("gold"), strPtr("box"), strPtr("gold"), strPtr("wrap"), false},
		{"same color same packaging", strPtr("gold"), strPtr("box"), strPtr("gold"), strPtr("box"), true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			item := CartItem{Color: tc.itemColor, Packaging: tc.itemPackaging}
			got := item.VariantMatches(tc.color, tc.packaging)
			if got != tc.want {
				t.Fatalf("VariantMatches() = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestMediaURLs(t *testing.T) {
	p := Product{
		Images: []string{"https://cdn.example/a.jpg", "https://cdn.example/b.jpg"},
		Videos: []string{"https://cdn.example/v.mp4"},
	}
	urls := p.MediaURLs()
	if len(urls) != 3 {
		t.Fatalf("expected 3 urls, got %d", len(urls))
	}
	if urls[0] != "https://cdn.example/a.jpg" || urls[2] != "https://cdn.example/v.mp4" {
		t.Fatalf("unexpected order: %v", urls)
	}
}

func TestNormalizeCategory(t *testing.T) {
	got, err := NormalizeCategory("  Perfumes ")
	if err != nil {
		t.Fatalf("NormalizeCategory: %v", err)
	}
	if got != "perfumes" {
		t.Fatalf("got %q, want %q", got, "perfumes")
	}

	if _, err := NormalizeCategory("   "); err == nil {
		t.Fatalf("expected error for blank category")
	}
}
