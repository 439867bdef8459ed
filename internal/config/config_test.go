package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/BurntSushi/toml"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.APIURL != "http://127.0.0.1:7420" {
		t.Fatalf("expected default API URL, got %q", cfg.APIURL)
	}
	if cfg.DBPath != "" {
		t.Fatalf("expected empty db path, got %q", cfg.DBPath)
	}
	if cfg.LogLevel != DefaultLogLevel {
		t.Fatalf("expected default log level %q, got %q", DefaultLogLevel, cfg.LogLevel)
	}
	if cfg.WhatsAppNumber != DefaultWhatsAppNumber {
		t.Fatalf("expected default whatsapp number, got %q", cfg.WhatsAppNumber)
	}
	if cfg.Audit.GroupWindowMS != DefaultGroupWindowMS {
		t.Fatalf("expected group window %d, got %d", DefaultGroupWindowMS, cfg.Audit.GroupWindowMS)
	}
	if cfg.Blob.Backend != "local" {
		t.Fatalf("expected local blob backend, got %q", cfg.Blob.Backend)
	}
	if cfg.Mail.OTPEndpoint != DefaultOTPEndpoint {
		t.Fatalf("expected default otp endpoint, got %q", cfg.Mail.OTPEndpoint)
	}
	if cfg.Upload.MaxUploadBytes != DefaultMaxUploadBytes {
		t.Fatalf("expected upload default %d, got %d", DefaultMaxUploadBytes, cfg.Upload.MaxUploadBytes)
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, configFileName)
	if err := os.WriteFile(path, []byte(`api_url = "http://localhost:9999"
log_level = "warn"
whatsapp_number = "911234567890"

[audit]
group_window_ms = 60000

[blob]
backend = "s3"
s3_bucket = "luxe-media"
`), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg := Default()
	if err := loadFile(path, &cfg); err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.APIURL != "http://localhost:9999" {
		t.Fatalf("expected api_url override, got %q", cfg.APIURL)
	}
	if cfg.LogLevel != "warn" {
		t.Fatalf("expected log_level 'warn', got %q", cfg.LogLevel)
	}
	if cfg.WhatsAppNumber != "911234567890" {
		t.Fatalf("expected whatsapp override, got %q", cfg.WhatsAppNumber)
	}
	if cfg.Audit.GroupWindowMS != 60000 {
		t.Fatalf("expected group window 60000, got %d", cfg.Audit.GroupWindowMS)
	}
	if cfg.Blob.Backend != "s3" || cfg.Blob.S3Bucket != "luxe-media" {
		t.Fatalf("expected s3 blob config, got %+v", cfg.Blob)
	}
}

func TestLoadFileMissing(t *testing.T) {
	cfg := Default()
	if err := loadFile("/nonexistent/path/.luxe.toml", &cfg); err != nil {
		t.Fatalf("missing file should not error: %v", err)
	}
	if cfg.APIURL != DefaultAPIURL {
		t.Fatalf("defaults should be preserved")
	}
}

func TestSetKey(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, configFileName)

	if err := SetKey(path, "audit.group_window_ms", "120000"); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := SetKey(path, "api_url", "http://localhost:8080"); err != nil {
		t.Fatalf("set: %v", err)
	}

	var data map[string]any
	if _, err := toml.DecodeFile(path, &data); err != nil {
		t.Fatalf("decode: %v", err)
	}
	audit, ok := data["audit"].(map[string]any)
	if !ok {
		t.Fatalf("expected audit table, got %T", data["audit"])
	}
	if audit["group_window_ms"] != int64(120000) {
		t.Fatalf("expected 120000, got %v", audit["group_window_ms"])
	}
	if data["api_url"] != "http://localhost:8080" {
		t.Fatalf("expected api_url, got %v", data["api_url"])
	}
}

func TestSetKeyRejectsUnknown(t *testing.T) {
	path := filepath.Join(t.TempDir(), configFileName)
	if err := SetKey(path, "no_such_key", "x"); err == nil {
		t.Fatalf("expected error for unknown key")
	}
	if err := SetKey(path, "audit.group_window_ms", "-5"); err == nil {
		t.Fatalf("expected error for non-positive window")
	}
	if err := SetKey(path, "blob.backend", "ftp"); err == nil {
		t.Fatalf("expected error for unknown backend")
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv(configDirEnvKey, t.TempDir())
	t.Setenv("LUXE_API_URL", "http://localhost:7001")
	t.Setenv("LUXE_GROUP_WINDOW_MS", "45000")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.APIURL != "http://localhost:7001" {
		t.Fatalf("expected env api url, got %q", cfg.APIURL)
	}
	if cfg.Audit.GroupWindowMS != 45000 {
		t.Fatalf("expected env window, got %d", cfg.Audit.GroupWindowMS)
	}
}
