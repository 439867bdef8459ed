package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"luxe/internal/api"
	"luxe/internal/format"
)

var outputFormatter format.Formatter = format.JSONFormatter{}

func writeJSON(payload any) error {
	return outputFormatter.Write(os.Stdout, payload)
}

func writePlain(format string, args ...any) error {
	_, err := fmt.Fprintf(os.Stdout, format, args...)
	return err
}

func writeProductList(products []api.ProductResponse) error {
	for _, product := range products {
		if err := writePlain("%s\n", formatProductLine(product)); err != nil {
			return err
		}
	}
	return nil
}

func writeProductDetail(product api.ProductResponse) error {
	lines := []string{
		fmt.Sprintf("id: %s", product.ID),
		fmt.Sprintf("name: %s", product.Name),
		fmt.Sprintf("category: %s", product.Category),
		fmt.Sprintf("price: %d", product.Price),
	}

	if product.OriginalPrice != nil {
		lines = append(lines, fmt.Sprintf("original_price: %d", *product.OriginalPrice))
	}
	if product.Brand != "" {
		lines = append(lines, fmt.Sprintf("brand: %s", product.Brand))
	}
	lines = append(lines,
		fmt.Sprintf("featured: %t", product.Featured),
		fmt.Sprintf("in_stock: %t", product.InStock),
	)
	if len(product.Colors) > 0 {
		lines = append(lines, fmt.Sprintf("colors: %s", strings.Join(product.Colors, ", ")))
	}
	if len(product.Images) > 0 {
		lines = append(lines, "images:")
		for _, image := range product.Images {
			lines = append(lines, fmt.Sprintf("  - %s", image))
		}
	}
	if len(product.Videos) > 0 {
		lines = append(lines, "videos:")
		for _, video := range product.Videos {
			lines = append(lines, fmt.Sprintf("  - %s", video))
		}
	}
	if product.Description != "" {
		lines = append(lines, fmt.Sprintf("description: %s", product.Description))
	}
	lines = append(lines,
		fmt.Sprintf("created_at: %s", formatTime(product.CreatedAt)),
		fmt.Sprintf("updated_at: %s", formatTime(product.UpdatedAt)),
	)

	return writePlain("%s\n", strings.Join(lines, "\n"))
}

func formatProductLine(product api.ProductResponse) string {
	stock := "in stock"
	if !product.InStock {
		stock = "out of stock"
	}
	return fmt.Sprintf("%s [%s] ₹%d (%s) - %s", product.ID, product.Category, product.Price, stock, product.Name)
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}
