package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
)

const (
	DefaultAPIURL     = "http://127.0.0.1:7420"
	DefaultDBFileName = ".luxe.db"

	DefaultWhatsAppNumber = "9871629699"
	DefaultAppName        = "Luxe"
	DefaultOTPEndpoint    = "https://email.vly.ai/send_otp"

	DefaultGroupWindowMS int64 = 5 * 60 * 1000
	DefaultSessionTTLHrs       = 24 * 30
	DefaultLogLevel            = "info"

	DefaultMaxUploadBytes     int64 = 100 * 1024 * 1024
	DefaultMultipartMaxMemory int64 = 8 * 1024 * 1024

	configDirEnvKey          = "LUXE_CONFIG_DIR"
	trustProjectConfigEnvKey = "LUXE_TRUST_PROJECT_CONFIG"

	configFileName = ".luxe.toml"
)

// BlobConfig selects and configures the blob backend.
type BlobConfig struct {
	// Backend is "local" or "s3".
	Backend       string `toml:"backend"`
	Root          string `toml:"root"`
	PublicBaseURL string `toml:"public_base_url"`
	S3Endpoint    string `toml:"s3_endpoint"`
	S3AccessKey   string `toml:"s3_access_key"`
	S3SecretKey   string `toml:"s3_secret_key"`
	S3Bucket      string `toml:"s3_bucket"`
	S3UseSSL      bool   `toml:"s3_use_ssl"`
}

// MailConfig configures the outbound mail service.
type MailConfig struct {
	OTPEndpoint        string `toml:"otp_endpoint"`
	NewsletterEndpoint string `toml:"newsletter_endpoint"`
	APIKey             string `toml:"api_key"`
	AppName            string `toml:"app_name"`
}

// AuthConfig configures sessions.
type AuthConfig struct {
	SessionTTLHours int `toml:"session_ttl_hours"`
}

// AuditConfig configures the storage audit.
type AuditConfig struct {
	GroupWindowMS int64 `toml:"group_window_ms"`
}

// UploadConfig bounds admin media uploads.
type UploadConfig struct {
	MaxUploadBytes     int64 `toml:"max_upload_bytes"`
	MultipartMaxMemory int64 `toml:"multipart_max_memory"`
}

// Config defines runtime configuration for luxe.
type Config struct {
	APIURL                   string       `toml:"api_url"`
	DBPath                   string       `toml:"db_path"`
	LogLevel                 string       `toml:"log_level"`
	WhatsAppNumber           string       `toml:"whatsapp_number"`
	Blob                     BlobConfig   `toml:"blob"`
	Mail                     MailConfig   `toml:"mail"`
	Auth                     AuthConfig   `toml:"auth"`
	Audit                    AuditConfig  `toml:"audit"`
	Upload                   UploadConfig `toml:"upload"`
	TrustedProjectConfigPath string       `toml:"-"`
}

// Default returns default configuration values.
func Default() Config {
	return Config{
		APIURL:         DefaultAPIURL,
		DBPath:         "",
		LogLevel:       DefaultLogLevel,
		WhatsAppNumber: DefaultWhatsAppNumber,
		Blob: BlobConfig{
			Backend: "local",
		},
		Mail: MailConfig{
			OTPEndpoint: DefaultOTPEndpoint,
			AppName:     DefaultAppName,
		},
		Auth: AuthConfig{
			SessionTTLHours: DefaultSessionTTLHrs,
		},
		Audit: AuditConfig{
			GroupWindowMS: DefaultGroupWindowMS,
		},
		Upload: UploadConfig{
			MaxUploadBytes:     DefaultMaxUploadBytes,
			MultipartMaxMemory: DefaultMultipartMaxMemory,
		},
	}
}

func loadFile(path string, cfg *Config) error {
	_, err := loadFileIfExists(path, cfg)
	return err
}

func loadFileIfExists(path string, cfg *Config) (bool, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	if info.IsDir() {
		return false, nil
	}
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return false, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return true, nil
}

func overrideConfigPath() (string, bool) {
	dir := strings.TrimSpace(os.Getenv(configDirEnvKey))
	if dir == "" {
		return "", false
	}
	return filepath.Join(dir, configFileName), true
}

func trustProjectConfig() bool {
	raw := strings.TrimSpace(os.Getenv(trustProjectConfigEnvKey))
	if raw == "" {
		return false
	}
	value, err := strconv.ParseBool(raw)
	if err != nil {
		return false
	}
	return value
}

var allowedKeys = []string{
	"api_url",
	"db_path",
	"log_level",
	"whatsapp_number",
	"blob.backend",
	"blob.root",
	"blob.public_base_url",
	"blob.s3_endpoint",
	"blob.s3_access_key",
	"blob.s3_secret_key",
	"blob.s3_bucket",
	"blob.s3_use_ssl",
	"mail.otp_endpoint",
	"mail.newsletter_endpoint",
	"mail.api_key",
	"mail.app_name",
	"auth.session_ttl_hours",
	"audit.group_window_ms",
	"upload.max_upload_bytes",
	"upload.multipart_max_memory",
}

// AllowedKeys returns the set of valid config keys.
func AllowedKeys() []string {
	return allowedKeys
}

// IsAllowedKey checks if a key is a valid config key.
func IsAllowedKey(key string) bool {
	for _, k := range allowedKeys {
		if k == key {
			return true
		}
	}
	return false
}

// Get returns the value of a config key.
func (c *Config) Get(key string) (string, error) {
	switch key {
	case "api_url":
		return c.APIURL, nil
	case "db_path":
		return c.DBPath, nil
	case "log_level":
		return c.LogLevel, nil
	case "whatsapp_number":
		return c.WhatsAppNumber, nil
	case "blob.backend":
		return c.Blob.Backend, nil
	case "blob.root":
		return c.Blob.Root, nil
	case "blob.public_base_url":
		return c.Blob.PublicBaseURL, nil
	case "blob.s3_endpoint":
		return c.Blob.S3Endpoint, nil
	case "blob.s3_access_key":
		return c.Blob.S3AccessKey, nil
	case "blob.s3_secret_key":
		return c.Blob.S3SecretKey, nil
	case "blob.s3_bucket":
		return c.Blob.S3Bucket, nil
	case "blob.s3_use_ssl":
		return strconv.FormatBool(c.Blob.S3UseSSL), nil
	case "mail.otp_endpoint":
		return c.Mail.OTPEndpoint, nil
	case "mail.newsletter_endpoint":
		return c.Mail.NewsletterEndpoint, nil
	case "mail.api_key":
		return c.Mail.APIKey, nil
	case "mail.app_name":
		return c.Mail.AppName, nil
	case "auth.session_ttl_hours":
		return strconv.Itoa(c.Auth.SessionTTLHours), nil
	case "audit.group_window_ms":
		return strconv.FormatInt(c.Audit.GroupWindowMS, 10), nil
	case "upload.max_upload_bytes":
		return strconv.FormatInt(c.Upload.MaxUploadBytes, 10), nil
	case "upload.multipart_max_memory":
		return strconv.FormatInt(c.Upload.MultipartMaxMemory, 10), nil
	default:
		return "", fmt.Errorf("unknown key: %s", key)
	}
}

// GlobalPath returns the path to the global config file.
func GlobalPath() (string, error) {
	if path, ok := overrideConfigPath(); ok {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, configFileName), nil
}

// ProjectPath returns the path to the project config file.
func ProjectPath() (string, error) {
	if path, ok := overrideConfigPath(); ok {
		return path, nil
	}
	cwd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	return filepath.Join(cwd, configFileName), nil
}

// SetKey reads the TOML file at path, sets key=value, and writes it back.
func SetKey(path, key, value string) error {
	if !IsAllowedKey(key) {
		return fmt.Errorf("unknown key: %s", key)
	}

	data := make(map[string]any)
	if _, err := os.Stat(path); err == nil {
		if _, err := toml.DecodeFile(path, &data); err != nil {
			return fmt.Errorf("parse %s: %w", path, err)
		}
	}

	parsedValue, err := parseSetValue(key, value)
	if err != nil {
		return err
	}
	if err := setNestedKey(data, strings.Split(key, "."), parsedValue); err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return toml.NewEncoder(f).Encode(data)
}

// Load reads config from trusted files and applies env overrides.
func Load() (*Config, error) {
	cfg := Default()

	if overridePath, ok := overrideConfigPath(); ok {
		if err := loadFile(overridePath, &cfg); err != nil {
			return nil, err
		}
	} else {
		if home, err := os.UserHomeDir(); err == nil {
			if err := loadFile(filepath.Join(home, configFileName), &cfg); err != nil {
				return nil, err
			}
		}

		if trustProjectConfig() {
			if cwd, err := os.Getwd(); err == nil {
				projectPath := filepath.Join(cwd, configFileName)
				info, statErr := os.Stat(projectPath)
				switch {
				case statErr == nil && !info.IsDir():
					if err := loadFile(projectPath, &cfg); err != nil {
						return nil, err
					}
					cfg.TrustedProjectConfigPath = projectPath
				case statErr != nil && !os.IsNotExist(statErr):
					return nil, statErr
				}
			}
		}
	}

	if cfg.DBPath == "" {
		if cwd, err := os.Getwd(); err == nil {
			cfg.DBPath = filepath.Join(cwd, DefaultDBFileName)
		}
	}

	if apiURL := os.Getenv("LUXE_API_URL"); apiURL != "" {
		cfg.APIURL = apiURL
	}
	if dbPath := os.Getenv("LUXE_DB"); dbPath != "" {
		cfg.DBPath = dbPath
	}
	if number := strings.TrimSpace(os.Getenv("LUXE_WHATSAPP_NUMBER")); number != "" {
		cfg.WhatsAppNumber = number
	}
	if key := strings.TrimSpace(os.Getenv("LUXE_MAIL_API_KEY")); key != "" {
		cfg.Mail.APIKey = key
	}
	if key := strings.TrimSpace(os.Getenv("LUXE_S3_ACCESS_KEY")); key != "" {
		cfg.Blob.S3AccessKey = key
	}
	if key := strings.TrimSpace(os.Getenv("LUXE_S3_SECRET_KEY")); key != "" {
		cfg.Blob.S3SecretKey = key
	}
	if raw := strings.TrimSpace(os.Getenv("LUXE_GROUP_WINDOW_MS")); raw != "" {
		if parsed, err := strconv.ParseInt(raw, 10, 64); err == nil && parsed > 0 {
			cfg.Audit.GroupWindowMS = parsed
		}
	}

	cfg.normalizeDefaults()

	return &cfg, nil
}

func parseSetValue(key, value string) (any, error) {
	value = strings.TrimSpace(value)
	switch key {
	case "upload.max_upload_bytes", "upload.multipart_max_memory", "audit.group_window_ms":
		parsed, err := strconv.ParseInt(value, 10, 64)
		if err != nil || parsed <= 0 {
			return nil, fmt.Errorf("%s must be a positive integer", key)
		}
		return parsed, nil
	case "auth.session_ttl_hours":
		parsed, err := strconv.Atoi(value)
		if err != nil || parsed <= 0 {
			return nil, fmt.Errorf("%s must be a positive integer", key)
		}
		return parsed, nil
	case "blob.s3_use_ssl":
		parsed, err := strconv.ParseBool(value)
		if err != nil {
			return nil, fmt.Errorf("%s must be true or false", key)
		}
		return parsed, nil
	case "blob.backend":
		if value != "local" && value != "s3" {
			return nil, fmt.Errorf("blob.backend must be local or s3")
		}
		return value, nil
	default:
		return value, nil
	}
}

func setNestedKey(data map[string]any, parts []string, value any) error {
	if len(parts) == 0 {
		return fmt.Errorf("invalid config key")
	}
	if len(parts) == 1 {
		data[parts[0]] = value
		return nil
	}
	childRaw, ok := data[parts[0]]
	if !ok {
		child := map[string]any{}
		data[parts[0]] = child
		return setNestedKey(child, parts[1:], value)
	}
	child, ok := childRaw.(map[string]any)
	if !ok {
		return fmt.Errorf("cannot set nested key %q", strings.Join(parts, "."))
	}
	return setNestedKey(child, parts[1:], value)
}

func (c *Config) normalizeDefaults() {
	if c.LogLevel == "" {
		c.LogLevel = DefaultLogLevel
	}
	if c.Blob.Backend == "" {
		c.Blob.Backend = "local"
	}
	if c.Mail.AppName == "" {
		c.Mail.AppName = DefaultAppName
	}
	if c.Auth.SessionTTLHours <= 0 {
		c.Auth.SessionTTLHours = DefaultSessionTTLHrs
	}
	if c.Audit.GroupWindowMS <= 0 {
		c.Audit.GroupWindowMS = DefaultGroupWindowMS
	}
	if c.Upload.MaxUploadBytes <= 0 {
		c.Upload.MaxUploadBytes = DefaultMaxUploadBytes
	}
	if c.Upload.MultipartMaxMemory <= 0 {
		c.Upload.MultipartMaxMemory = DefaultMultipartMaxMemory
	}
}
