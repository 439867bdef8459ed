package main

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"

	"luxe/internal/api"
	"luxe/internal/config"
)

func newAdminCmd(cfg *config.Config, jsonOutput *bool) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "admin",
		Short: "Administrative commands",
	}

	cmd.AddCommand(
		newAdminSeedCmd(cfg, jsonOutput),
		newAdminProductsCmd(cfg, jsonOutput),
		newAdminNewsletterCmd(cfg, jsonOutput),
		newAdminUploadCmd(cfg, jsonOutput),
		newAdminAuditCmd(cfg, jsonOutput),
		newAdminUserCmd(cfg, jsonOutput),
	)
	return cmd
}

func newAdminSeedCmd(cfg *config.Config, jsonOutput *bool) *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Seed the starter catalog into an empty database",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withClient(cfg, func(client *api.Client) error {
				resp, err := client.Seed(cmd.Context())
				if err != nil {
					return err
				}
				if *jsonOutput {
					return writeJSON(resp)
				}
				if resp.Skipped {
					return writePlain("catalog not empty, seeding skipped\n")
				}
				return writePlain("seeded %d products (%d inserted, %d updated)\n", resp.Seeded, resp.Inserted, resp.Updated)
			})
		},
	}
}

func newAdminProductsCmd(cfg *config.Config, jsonOutput *bool) *cobra.Command {
	return &cobra.Command{
		Use:   "products",
		Short: "List compact product summaries",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withClient(cfg, func(client *api.Client) error {
				summaries, err := client.ListProductSummaries(cmd.Context())
				if err != nil {
					return err
				}
				if *jsonOutput {
					return writeJSON(summaries)
				}
				for _, summary := range summaries {
					stock := "in stock"
					if !summary.InStock {
						stock = "out of stock"
					}
					if err := writePlain("%s\t%s\t₹%d\t%s\t%s\n", summary.ID, summary.Category, summary.Price, stock, summary.Name); err != nil {
						return err
					}
				}
				return nil
			})
		},
	}
}

func newAdminNewsletterCmd(cfg *config.Config, jsonOutput *bool) *cobra.Command {
	var (
		subject string
		body    string
	)

	cmd := &cobra.Command{
		Use:   "newsletter",
		Short: "Send a newsletter to all subscribers",
		RunE: func(cmd *cobra.Command, args []string) error {
			if subject == "" || body == "" {
				return fmt.Errorf("--subject and --body are required")
			}

			return withClient(cfg, func(client *api.Client) error {
				resp, err := client.SendNewsletter(cmd.Context(), api.NewsletterRequest{Subject: subject, Body: body})
				if err != nil {
					return err
				}
				if *jsonOutput {
					return writeJSON(resp)
				}
				return writePlain("sent to %d subscribers in %d batches\n", resp.Recipients, resp.Batches)
			})
		},
	}

	cmd.Flags().StringVar(&subject, "subject", "", "newsletter subject (required)")
	cmd.Flags().StringVar(&body, "body", "", "newsletter body (required)")

	return cmd
}

func newAdminUploadCmd(cfg *config.Config, jsonOutput *bool) *cobra.Command {
	var contentType string

	cmd := &cobra.Command{
		Use:   "upload <path>",
		Short: "Upload a media file to blob storage",
		Args:  requireExactlyArgs(1, "file path is required"),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()

			return withClient(cfg, func(client *api.Client) error {
				resp, err := client.UploadFile(cmd.Context(), filepath.Base(args[0]), contentType, f)
				if err != nil {
					return err
				}
				if *jsonOutput {
					return writeJSON(resp)
				}
				if err := writePlain("uploaded %s (%d bytes, sha256 %s)\n", resp.ID, resp.SizeBytes, resp.SHA256); err != nil {
					return err
				}
				if resp.URL != "" {
					return writePlain("%s\n", resp.URL)
				}
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&contentType, "content-type", "", "media type of the file")

	return cmd
}

func newAdminAuditCmd(cfg *config.Config, jsonOutput *bool) *cobra.Command {
	var windowMS int64

	cmd := &cobra.Command{
		Use:   "audit",
		Short: "Reconcile storage records against blob storage",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withClient(cfg, func(client *api.Client) error {
				query := url.Values{}
				if windowMS > 0 {
					query.Set("window_ms", strconv.FormatInt(windowMS, 10))
				}

				resp, err := client.StorageAudit(cmd.Context(), query)
				if err != nil {
					return err
				}
				if *jsonOutput {
					return writeJSON(resp)
				}

				_ = writePlain("total: %d\n", resp.Total)
				_ = writePlain("active: %d\n", resp.Active)
				_ = writePlain("orphaned: %d\n", resp.Orphaned)
				if len(resp.GroupedOrphaned) > 0 {
					_ = writePlain("orphan groups (window %dms):\n", resp.WindowMS)
					for i, group := range resp.GroupedOrphaned {
						_ = writePlain("  group %d:\n", i+1)
						for _, file := range group {
							_ = writePlain("    %s  %s  %d bytes  %s\n", file.ID, formatTime(file.UploadedAt), file.SizeBytes, file.ContentType)
						}
					}
				}
				return nil
			})
		},
	}

	cmd.Flags().Int64Var(&windowMS, "window-ms", 0, "orphan grouping window in milliseconds")

	return cmd
}
