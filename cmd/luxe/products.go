package main

import (
	"net/url"
	"strconv"

	"github.com/spf13/cobra"

	"luxe/internal/api"
	"luxe/internal/config"
)

func newProductsCmd(cfg *config.Config, jsonOutput *bool) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "products",
		Short: "Browse and manage the product catalog",
	}

	cmd.AddCommand(
		newProductsListCmd(cfg, jsonOutput),
		newProductsShowCmd(cfg, jsonOutput),
		newProductsCreateCmd(cfg, jsonOutput),
		newProductsSetImagesCmd(cfg, jsonOutput),
		newProductsOrderLinkCmd(cfg, jsonOutput),
	)
	return cmd
}

func newProductsListCmd(cfg *config.Config, jsonOutput *bool) *cobra.Command {
	var (
		category string
		featured bool
		inStock  bool
		limit    int
		offset   int
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List products",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withClient(cfg, func(client *api.Client) error {
				query := url.Values{}
				setIfNotEmpty(query, "category", category)
				if cmd.Flags().Changed("featured") {
					query.Set("featured", strconv.FormatBool(featured))
				}
				if cmd.Flags().Changed("in-stock") {
					query.Set("in_stock", strconv.FormatBool(inStock))
				}
				if limit > 0 {
					query.Set("limit", intToString(limit))
				}
				if offset > 0 {
					query.Set("offset", intToString(offset))
				}

				resp, err := client.ListProducts(cmd.Context(), query)
				if err != nil {
					return err
				}
				if *jsonOutput {
					return writeJSON(resp)
				}
				return writeProductList(resp)
			})
		},
	}

	cmd.Flags().StringVar(&category, "category", "", "category filter")
	cmd.Flags().BoolVar(&featured, "featured", false, "featured filter")
	cmd.Flags().BoolVar(&inStock, "in-stock", false, "stock filter")
	cmd.Flags().IntVar(&limit, "limit", 0, "limit results")
	cmd.Flags().IntVar(&offset, "offset", 0, "offset results")

	return cmd
}

func newProductsShowCmd(cfg *config.Config, jsonOutput *bool) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show one product",
		Args:  requireExactlyArgs(1, "product id is required"),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withClient(cfg, func(client *api.Client) error {
				resp, err := client.GetProduct(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				if *jsonOutput {
					return writeJSON(resp)
				}
				return writeProductDetail(resp)
			})
		},
	}
}

func newProductsCreateCmd(cfg *config.Config, jsonOutput *bool) *cobra.Command {
	var (
		description   string
		price         int64
		originalPrice int64
		category      string
		images        string
		videos        string
		colors        string
		brand         string
		featured      bool
		inStock       bool
	)

	cmd := &cobra.Command{
		Use:   "create <name>",
		Short: "Create a product",
		Args:  requireExactlyArgs(1, "product name is required"),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := api.ProductCreateRequest{
				Name:        args[0],
				Description: description,
				Price:       price,
				Category:    category,
				Images:      splitCommaList(images),
				Videos:      splitCommaList(videos),
				Colors:      splitCommaList(colors),
				Brand:       brand,
				Featured:    featured,
				InStock:     inStock,
			}
			if originalPrice > 0 {
				req.OriginalPrice = &originalPrice
			}

			return withClient(cfg, func(client *api.Client) error {
				resp, err := client.CreateProduct(cmd.Context(), req)
				if err != nil {
					return err
				}
				if *jsonOutput {
					return writeJSON(resp)
				}
				return writePlain("created product %s (%s)\n", resp.ID, resp.Name)
			})
		},
	}

	cmd.Flags().StringVar(&description, "description", "", "product description")
	cmd.Flags().Int64Var(&price, "price", 0, "selling price in rupees (required)")
	cmd.Flags().Int64Var(&originalPrice, "original-price", 0, "MRP in rupees")
	cmd.Flags().StringVar(&category, "category", "", "product category (required)")
	cmd.Flags().StringVar(&images, "images", "", "comma separated image URLs (required)")
	cmd.Flags().StringVar(&videos, "videos", "", "comma separated video URLs")
	cmd.Flags().StringVar(&colors, "colors", "", "comma separated colors")
	cmd.Flags().StringVar(&brand, "brand", "", "brand name")
	cmd.Flags().BoolVar(&featured, "featured", false, "mark as featured")
	cmd.Flags().BoolVar(&inStock, "in-stock", true, "mark as in stock")

	return cmd
}

func newProductsSetImagesCmd(cfg *config.Config, jsonOutput *bool) *cobra.Command {
	var (
		images string
		videos string
	)

	cmd := &cobra.Command{
		Use:   "set-images <name>",
		Short: "Replace a product's media, addressed by name",
		Args:  requireExactlyArgs(1, "product name is required"),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := api.ProductImagesRequest{
				Name:   args[0],
				Images: splitCommaList(images),
				Videos: splitCommaList(videos),
			}

			return withClient(cfg, func(client *api.Client) error {
				resp, err := client.UpdateProductImages(cmd.Context(), req)
				if err != nil {
					return err
				}
				if *jsonOutput {
					return writeJSON(resp)
				}
				return writePlain("updated media for %s (%d images, %d videos)\n", resp.ID, len(resp.Images), len(resp.Videos))
			})
		},
	}

	cmd.Flags().StringVar(&images, "images", "", "comma separated image URLs (required)")
	cmd.Flags().StringVar(&videos, "videos", "", "comma separated video URLs")

	return cmd
}

func newProductsOrderLinkCmd(cfg *config.Config, jsonOutput *bool) *cobra.Command {
	var color string

	cmd := &cobra.Command{
		Use:   "order-link <id>",
		Short: "Print the WhatsApp order link for a product",
		Args:  requireExactlyArgs(1, "product id is required"),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withClient(cfg, func(client *api.Client) error {
				query := url.Values{}
				setIfNotEmpty(query, "color", color)

				resp, err := client.OrderLink(cmd.Context(), args[0], query)
				if err != nil {
					return err
				}
				if *jsonOutput {
					return writeJSON(resp)
				}
				return writePlain("%s\n", resp.URL)
			})
		},
	}

	cmd.Flags().StringVar(&color, "color", "", "selected color")

	return cmd
}
