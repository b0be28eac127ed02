package chapa

import (
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

// Config carries everything a Client needs to talk to the API.
type Config struct {
	// SecretKey authenticates every request. Required.
	SecretKey string

	// PublicKey is the publishable counterpart of the secret key. Optional,
	// only surfaced through Client.PublicKey for embedding in checkout pages.
	PublicKey string

	// BaseURL is the API host. Defaults to DefaultBaseURL.
	BaseURL string

	// APIVersion is the path segment between the host and the endpoint.
	// Defaults to DefaultAPIVersion.
	APIVersion string

	// Timeout bounds each request when no custom HTTPClient is supplied.
	// Defaults to DefaultTimeout.
	Timeout time.Duration

	// HTTPClient performs the requests. Defaults to an *http.Client with
	// Timeout applied.
	HTTPClient HTTPDoer

	// Logger receives debug lines for each request. Defaults to a silent
	// logger. The secret key is never written to it.
	Logger *logrus.Logger

	// WebhookSecret signs incoming webhook payloads.
	WebhookSecret string

	// EncryptionKey is the 24-byte key used to encrypt card payloads.
	EncryptionKey string
}

// DefaultConfig returns a Config pre-filled with the production defaults.
// The secret key still has to be set before the config is usable.
func DefaultConfig() *Config {
	return &Config{
		BaseURL:    DefaultBaseURL,
		APIVersion: DefaultAPIVersion,
		Timeout:    DefaultTimeout,
	}
}

// LoadConfig builds a Config from environment variables, loading a .env
// file first when one exists.
//
// Recognized variables:
//
//	CHAPA_SECRET_KEY      (required)
//	CHAPA_PUBLIC_KEY
//	CHAPA_BASE_URL
//	CHAPA_API_VERSION
//	CHAPA_TIMEOUT         (seconds, or a Go duration like "45s")
//	CHAPA_WEBHOOK_SECRET
//	CHAPA_ENCRYPTION_KEY
func LoadConfig() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		SecretKey:     os.Getenv("CHAPA_SECRET_KEY"),
		PublicKey:     os.Getenv("CHAPA_PUBLIC_KEY"),
		BaseURL:       getEnv("CHAPA_BASE_URL", DefaultBaseURL),
		APIVersion:    getEnv("CHAPA_API_VERSION", DefaultAPIVersion),
		Timeout:       getEnvDuration("CHAPA_TIMEOUT", DefaultTimeout),
		WebhookSecret: os.Getenv("CHAPA_WEBHOOK_SECRET"),
		EncryptionKey: os.Getenv("CHAPA_ENCRYPTION_KEY"),
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) validate() error {
	if c.SecretKey == "" {
		return NewValidationError("secret_key", "CHAPA_SECRET_KEY is required")
	}
	return nil
}

// withDefaults fills the zero-valued fields so NewClient never has to
// special-case a partially built config.
func (c *Config) withDefaults() *Config {
	if c.BaseURL == "" {
		c.BaseURL = DefaultBaseURL
	}
	if c.APIVersion == "" {
		c.APIVersion = DefaultAPIVersion
	}
	if c.Timeout <= 0 {
		c.Timeout = DefaultTimeout
	}
	if c.HTTPClient == nil {
		c.HTTPClient = &http.Client{Timeout: c.Timeout}
	}
	return c
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	if seconds, err := strconv.Atoi(value); err == nil {
		return time.Duration(seconds) * time.Second
	}
	if d, err := time.ParseDuration(value); err == nil {
		return d
	}
	return fallback
}
