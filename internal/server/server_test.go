package server

import (
	"context"
	"log/slog"
	"path/filepath"
	"sync"
	"testing"

	"luxe/internal/blobstore"
	"luxe/internal/store"
)

// captureSender records outgoing mail so tests can complete OTP flows.
type captureSender struct {
	mu          sync.Mutex
	otpByEmail  map[string]string
	welcomes    []string
	newsletters [][]string
}

func newCaptureSender() *captureSender {
	return &captureSender{otpByEmail: make(map[string]string)}
}

func (c *captureSender) SendOTP(ctx context.Context, to, code string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.otpByEmail[to] = code
	return nil
}

func (c *captureSender) SendWelcome(ctx context.Context, to string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.welcomes = append(c.welcomes, to)
	return nil
}

func (c *captureSender) SendNewsletter(ctx context.Context, to []string, subject, body string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	batch := make([]string, len(to))
	copy(batch, to)
	c.newsletters = append(c.newsletters, batch)
	return nil
}

func (c *captureSender) lastOTP(email string) string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.otpByEmail[email]
}

func newTestServer(t *testing.T) (*Server, *captureSender) {
	t.Helper()

	dir := t.TempDir()
	st, err := store.Open(filepath.Join(dir, "test.db"))
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { st.Close() })

	blobs, err := blobstore.NewLocalCAS(filepath.Join(dir, "blobs"), "http://127.0.0.1:7420")
	if err != nil {
		t.Fatalf("open blob store: %v", err)
	}

	mail := newCaptureSender()
	srv := New(Options{
		Addr:               "127.0.0.1:0",
		Store:              st,
		Blobs:              blobs,
		Mail:               mail,
		WhatsAppNumber:     "9871629699",
		GroupWindowMS:      300000,
		MultipartMaxMemory: 8 << 20,
		Logger:             slog.New(slog.DiscardHandler),
	})
	srv.subscribers.batchPause = 0
	return srv, mail
}

func TestListenAddrRemoteGuard(t *testing.T) {
	t.Run("allows loopback", func(t *testing.T) {
		t.Setenv(allowRemoteEnvKey, "")
		addr, err := ListenAddr("http://127.0.0.1:7420")
		if err != nil {
			t.Fatalf("expected loopback to be allowed, got error: %v", err)
		}
		if addr != "127.0.0.1:7420" {
			t.Fatalf("unexpected addr: %s", addr)
		}
	})

	t.Run("blocks non-loopback by default", func(t *testing.T) {
		t.Setenv(allowRemoteEnvKey, "")
		_, err := ListenAddr("http://0.0.0.0:7420")
		if err == nil {
			t.Fatal("expected error for non-loopback listen host")
		}
	})

	t.Run("allows non-loopback when explicitly enabled", func(t *testing.T) {
		t.Setenv(allowRemoteEnvKey, "true")
		addr, err := ListenAddr("http://0.0.0.0:7420")
		if err != nil {
			t.Fatalf("expected allow-remote to permit host, got error: %v", err)
		}
		if addr != "0.0.0.0:7420" {
			t.Fatalf("unexpected addr: %s", addr)
		}
	})
}
