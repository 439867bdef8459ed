package server

import (
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"luxe/internal/blobstore"
	"luxe/internal/mailer"
	"luxe/internal/store"
)

const (
	adminTokenEnvKey       = "LUXE_ADMIN_TOKEN"
	allowRemoteEnvKey      = "LUXE_ALLOW_REMOTE"
	readHeaderTimeout      = 5 * time.Second
	readTimeout            = 30 * time.Second
	writeTimeout           = 60 * time.Second
	idleTimeout            = 60 * time.Second
	uploadConcurrencyLimit = 2
	auditConcurrencyLimit  = 2
	mailConcurrencyLimit   = 1
)

// Server wraps HTTP handlers for the luxe API.
type Server struct {
	addr               string
	store              *store.Store
	catalog            *CatalogService
	cart               *CartService
	authService        *AuthService
	storage            *StorageService
	audit              *AuditService
	subscribers        *SubscriberService
	logger             *slog.Logger
	version            string
	adminToken         string
	whatsappNumber     string
	uploadMaxBytes     int64
	multipartMaxMemory int64
	loginLimiter       *loginRateLimiter
	otpLimiter         *loginRateLimiter
	uploadLimiter      chan struct{}
	auditLimiter       chan struct{}
	mailLimiter        chan struct{}
}

// Options configures a Server.
type Options struct {
	Addr               string
	Store              *store.Store
	Blobs              blobstore.BlobStore
	Mail               mailer.Sender
	Version            string
	WhatsAppNumber     string
	GroupWindowMS      int64
	SessionTTL         time.Duration
	UploadMaxBytes     int64
	MultipartMaxMemory int64
	Logger             *slog.Logger
}

// New creates a new server instance.
func New(opts Options) *Server {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	mail := opts.Mail
	if mail == nil {
		mail = &mailer.LogSender{Logger: logger}
	}

	s := &Server{
		addr:               opts.Addr,
		store:              opts.Store,
		logger:             logger,
		version:            opts.Version,
		adminToken:         strings.TrimSpace(os.Getenv(adminTokenEnvKey)),
		whatsappNumber:     opts.WhatsAppNumber,
		uploadMaxBytes:     opts.UploadMaxBytes,
		multipartMaxMemory: opts.MultipartMaxMemory,
		loginLimiter:       newLoginRateLimiter(5, 5*time.Minute, 10*time.Minute),
		otpLimiter:         newLoginRateLimiter(5, 10*time.Minute, 15*time.Minute),
		uploadLimiter:      make(chan struct{}, uploadConcurrencyLimit),
		auditLimiter:       make(chan struct{}, auditConcurrencyLimit),
		mailLimiter:        make(chan struct{}, mailConcurrencyLimit),
	}

	s.catalog = NewCatalogService(opts.Store, opts.WhatsAppNumber)
	s.cart = NewCartService(opts.Store)
	s.authService = NewAuthService(opts.Store, mail, opts.SessionTTL)
	s.storage = NewStorageService(opts.Store, opts.Blobs)
	s.audit = NewAuditService(opts.Store, opts.Blobs, opts.GroupWindowMS)
	s.subscribers = NewSubscriberService(opts.Store, mail)

	return s
}

// ListenAndServe starts the HTTP server.
func (s *Server) ListenAndServe() error {
	s.log().Info("starting server", "addr", s.addr)
	server := &http.Server{
		Addr:              s.addr,
		Handler:           s.withRequestLogging(s.routes()),
		ReadHeaderTimeout: readHeaderTimeout,
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
	}

	return server.ListenAndServe()
}

// ListenAddr converts a base API URL into a listen address.
func ListenAddr(apiURL string) (string, error) {
	if apiURL == "" {
		return "", fmt.Errorf("api url is required")
	}
	if u, err := url.Parse(apiURL); err == nil && u.Host != "" {
		host := u.Hostname()
		if !isAllowedListenHost(host) {
			return "", fmt.Errorf("remote listen host %q requires %s=true", host, allowRemoteEnvKey)
		}
		return u.Host, nil
	}

	host, _, err := net.SplitHostPort(apiURL)
	if err == nil && !isAllowedListenHost(host) {
		return "", fmt.Errorf("remote listen host %q requires %s=true", host, allowRemoteEnvKey)
	}

	return apiURL, nil
}

func isAllowedListenHost(host string) bool {
	if host == "" {
		return true
	}
	if strings.EqualFold(strings.TrimSpace(os.Getenv(allowRemoteEnvKey)), "true") {
		return true
	}
	if host == "localhost" {
		return true
	}
	ip := net.ParseIP(host)
	return ip != nil && ip.IsLoopback()
}

func (s *Server) acquireLimiter(limiter chan struct{}, w http.ResponseWriter, r *http.Request, name string) bool {
	if limiter == nil {
		return true
	}
	select {
	case limiter <- struct{}{}:
		return true
	default:
		err := apiError{
			status:  http.StatusTooManyRequests,
			code:    "resource_exhausted",
			errCode: ErrCodeResourceExhausted,
			err:     fmt.Errorf("too many concurrent %s requests", name),
		}
		s.writeErrorReq(w, r, http.StatusTooManyRequests, err)
		return false
	}
}

func (s *Server) log() *slog.Logger {
	if s != nil && s.logger != nil {
		return s.logger
	}
	return slog.Default()
}

func (s *Server) releaseLimiter(limiter chan struct{}) {
	if limiter == nil {
		return
	}
	select {
	case <-limiter:
	default:
	}
}
