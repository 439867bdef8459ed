package main

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"luxe/internal/blobstore"
	"luxe/internal/config"
	"luxe/internal/mailer"
	"luxe/internal/server"
	"luxe/internal/store"
)

func newSrvCmd(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "srv",
		Short: "Run the luxe API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			if cfg == nil {
				return fmt.Errorf("config not initialized")
			}
			if cfg.DBPath == "" {
				return fmt.Errorf("db path is required")
			}

			logger := slog.Default().With("component", "server")

			addr, err := server.ListenAddr(cfg.APIURL)
			if err != nil {
				return err
			}

			logger.Info("opening database", "path", cfg.DBPath)
			st, err := store.Open(cfg.DBPath)
			if err != nil {
				return err
			}
			defer st.Close()

			bs, err := buildBlobStore(cmd, cfg)
			if err != nil {
				return err
			}

			mail, err := buildMailSender(cfg, logger)
			if err != nil {
				return err
			}

			srv := server.New(server.Options{
				Addr:               addr,
				Store:              st,
				Blobs:              bs,
				Mail:               mail,
				Version:            version,
				WhatsAppNumber:     cfg.WhatsAppNumber,
				GroupWindowMS:      cfg.Audit.GroupWindowMS,
				SessionTTL:         time.Duration(cfg.Auth.SessionTTLHours) * time.Hour,
				UploadMaxBytes:     cfg.Upload.MaxUploadBytes,
				MultipartMaxMemory: cfg.Upload.MultipartMaxMemory,
				Logger:             logger,
			})
			return srv.ListenAndServe()
		},
	}
}

func buildBlobStore(cmd *cobra.Command, cfg *config.Config) (blobstore.BlobStore, error) {
	publicBaseURL := cfg.Blob.PublicBaseURL
	if publicBaseURL == "" {
		publicBaseURL = cfg.APIURL
	}

	switch cfg.Blob.Backend {
	case "", "local":
		root := cfg.Blob.Root
		if root == "" {
			root = filepath.Join(filepath.Dir(cfg.DBPath), ".luxe", "blobs")
		}
		return blobstore.NewLocalCAS(root, publicBaseURL)
	case "s3":
		return blobstore.NewMinioStore(cmd.Context(), blobstore.MinioOptions{
			Endpoint:      cfg.Blob.S3Endpoint,
			AccessKey:     cfg.Blob.S3AccessKey,
			SecretKey:     cfg.Blob.S3SecretKey,
			Bucket:        cfg.Blob.S3Bucket,
			UseSSL:        cfg.Blob.S3UseSSL,
			PublicBaseURL: cfg.Blob.PublicBaseURL,
		})
	default:
		return nil, fmt.Errorf("unknown blob backend %q", cfg.Blob.Backend)
	}
}

// buildMailSender returns nil when no API key is configured; the server then
// logs mail instead of sending it.
func buildMailSender(cfg *config.Config, logger *slog.Logger) (mailer.Sender, error) {
	if cfg.Mail.APIKey == "" {
		logger.Warn("mail api key not configured, mail will be logged instead of sent")
		return nil, nil
	}
	return mailer.NewHTTPSender(mailer.Options{
		OTPEndpoint:        cfg.Mail.OTPEndpoint,
		NewsletterEndpoint: cfg.Mail.NewsletterEndpoint,
		APIKey:             cfg.Mail.APIKey,
		AppName:            cfg.Mail.AppName,
	})
}
