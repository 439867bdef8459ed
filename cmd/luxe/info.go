package main

import (
	"sort"

	"github.com/spf13/cobra"

	"luxe/internal/api"
	"luxe/internal/config"
)

func newInfoCmd(cfg *config.Config, jsonOutput *bool) *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Show server and catalog info",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withClient(cfg, func(client *api.Client) error {
				resp, err := client.GetInfo(cmd.Context())
				if err != nil {
					return err
				}

				if *jsonOutput {
					return writeJSON(resp)
				}

				_ = writePlain("version: %s\n", resp.Version)
				_ = writePlain("schema_version: %d\n", resp.SchemaVersion)
				_ = writePlain("total_products: %d\n", resp.TotalProducts)

				categories := make([]string, 0, len(resp.ProductCounts))
				for category := range resp.ProductCounts {
					categories = append(categories, category)
				}
				sort.Strings(categories)
				for _, category := range categories {
					_ = writePlain("  %s: %d\n", category, resp.ProductCounts[category])
				}
				return nil
			})
		},
	}
}
