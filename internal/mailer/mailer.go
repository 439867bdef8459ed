// Package mailer delivers transactional email through an external HTTP
// sending service.
package mailer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"
)

const (
	defaultSendTimeout = 15 * time.Second
	defaultAppName     = "Luxe"
)

// Sender is the delivery abstraction the auth and subscriber services use.
type Sender interface {
	SendOTP(ctx context.Context, to, code string) error
	SendWelcome(ctx context.Context, to string) error
	SendNewsletter(ctx context.Context, to []string, subject, body string) error
}

// Options configures the HTTP sender.
type Options struct {
	OTPEndpoint        string
	NewsletterEndpoint string
	APIKey             string
	AppName            string
	Timeout            time.Duration
}

// HTTPSender posts JSON to the configured delivery endpoints with the
// service API key in an x-api-key header.
type HTTPSender struct {
	opts Options
	http *http.Client
}

// NewHTTPSender builds a sender from options.
func NewHTTPSender(opts Options) (*HTTPSender, error) {
	if strings.TrimSpace(opts.OTPEndpoint) == "" {
		return nil, fmt.Errorf("otp endpoint is required")
	}
	if opts.AppName == "" {
		opts.AppName = defaultAppName
	}
	if opts.Timeout <= 0 {
		opts.Timeout = defaultSendTimeout
	}
	return &HTTPSender{
		opts: opts,
		http: &http.Client{Timeout: opts.Timeout},
	}, nil
}

type otpPayload struct {
	To      string `json:"to"`
	OTP     string `json:"otp"`
	AppName string `json:"appName"`
}

type newsletterPayload struct {
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	Body    string   `json:"body"`
	AppName string   `json:"appName"`
}

// SendOTP delivers one login code.
func (s *HTTPSender) SendOTP(ctx context.Context, to, code string) error {
	return s.post(ctx, s.opts.OTPEndpoint, otpPayload{To: to, OTP: code, AppName: s.opts.AppName})
}

// SendWelcome delivers the signup greeting. It reuses the newsletter
// endpoint with a fixed subject.
func (s *HTTPSender) SendWelcome(ctx context.Context, to string) error {
	if strings.TrimSpace(s.opts.NewsletterEndpoint) == "" {
		return nil
	}
	return s.post(ctx, s.opts.NewsletterEndpoint, newsletterPayload{
		To:      []string{to},
		Subject: "Welcome to " + s.opts.AppName,
		Body:    "Thanks for subscribing. New arrivals land in your inbox first.",
		AppName: s.opts.AppName,
	})
}

// SendNewsletter delivers one newsletter batch.
func (s *HTTPSender) SendNewsletter(ctx context.Context, to []string, subject, body string) error {
	if len(to) == 0 {
		return nil
	}
	if strings.TrimSpace(s.opts.NewsletterEndpoint) == "" {
		return fmt.Errorf("newsletter endpoint is not configured")
	}
	return s.post(ctx, s.opts.NewsletterEndpoint, newsletterPayload{
		To:      to,
		Subject: subject,
		Body:    body,
		AppName: s.opts.AppName,
	})
}

func (s *HTTPSender) post(ctx context.Context, endpoint string, payload any) error {
	buf, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(buf))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if s.opts.APIKey != "" {
		req.Header.Set("x-api-key", s.opts.APIKey)
	}

	resp, err := s.http.Do(req)
	if err != nil {
		return fmt.Errorf("send mail: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("mail service returned %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	return nil
}

// LogSender logs instead of delivering. Used when no mail service is
// configured, so local development still surfaces OTP codes.
type LogSender struct {
	Logger *slog.Logger
}

func (s *LogSender) logger() *slog.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return slog.Default()
}

func (s *LogSender) SendOTP(ctx context.Context, to, code string) error {
	s.logger().Info("mail disabled, otp not sent", "to", to, "otp", code)
	return nil
}

func (s *LogSender) SendWelcome(ctx context.Context, to string) error {
	s.logger().Info("mail disabled, welcome not sent", "to", to)
	return nil
}

func (s *LogSender) SendNewsletter(ctx context.Context, to []string, subject, body string) error {
	s.logger().Info("mail disabled, newsletter not sent", "recipients", len(to), "subject", subject)
	return nil
}

var (
	_ Sender = (*HTTPSender)(nil)
	_ Sender = (*LogSender)(nil)
)
