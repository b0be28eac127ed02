package chapa

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	t.Setenv("CHAPA_SECRET_KEY", testSecretKey)
	t.Setenv("CHAPA_PUBLIC_KEY", "CHAPUBK_TEST-xyz")
	t.Setenv("CHAPA_BASE_URL", "https://sandbox.example.com")
	t.Setenv("CHAPA_API_VERSION", "v2")
	t.Setenv("CHAPA_TIMEOUT", "45")
	t.Setenv("CHAPA_WEBHOOK_SECRET", "whsec-123")
	t.Setenv("CHAPA_ENCRYPTION_KEY", "123456789012345678901234")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, testSecretKey, cfg.SecretKey)
	assert.Equal(t, "CHAPUBK_TEST-xyz", cfg.PublicKey)
	assert.Equal(t, "https://sandbox.example.com", cfg.BaseURL)
	assert.Equal(t, "v2", cfg.APIVersion)
	assert.Equal(t, 45*time.Second, cfg.Timeout)
	assert.Equal(t, "whsec-123", cfg.WebhookSecret)
	assert.Equal(t, "123456789012345678901234", cfg.EncryptionKey)
}

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("CHAPA_SECRET_KEY", testSecretKey)
	t.Setenv("CHAPA_PUBLIC_KEY", "")
	t.Setenv("CHAPA_BASE_URL", "")
	t.Setenv("CHAPA_API_VERSION", "")
	t.Setenv("CHAPA_TIMEOUT", "")
	t.Setenv("CHAPA_WEBHOOK_SECRET", "")
	t.Setenv("CHAPA_ENCRYPTION_KEY", "")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, DefaultBaseURL, cfg.BaseURL)
	assert.Equal(t, DefaultAPIVersion, cfg.APIVersion)
	assert.Equal(t, DefaultTimeout, cfg.Timeout)
}

func TestLoadConfigMissingSecretKey(t *testing.T) {
	t.Setenv("CHAPA_SECRET_KEY", "")

	_, err := LoadConfig()
	require.Error(t, err)
	assert.True(t, IsValidation(err))

	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "secret_key", validationErr.Field)
}

func TestGetEnvDuration(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  time.Duration
	}{
		{name: "seconds", value: "45", want: 45 * time.Second},
		{name: "go duration", value: "2m", want: 2 * time.Minute},
		{name: "garbage falls back", value: "soon", want: DefaultTimeout},
		{name: "unset falls back", value: "", want: DefaultTimeout},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("CHAPA_TIMEOUT", tt.value)
			assert.Equal(t, tt.want, getEnvDuration("CHAPA_TIMEOUT", DefaultTimeout))
		})
	}
}

func TestConfigWithDefaults(t *testing.T) {
	cfg := (&Config{SecretKey: testSecretKey}).withDefaults()
	assert.Equal(t, DefaultBaseURL, cfg.BaseURL)
	assert.Equal(t, DefaultAPIVersion, cfg.APIVersion)
	assert.Equal(t, DefaultTimeout, cfg.Timeout)
	require.NotNil(t, cfg.HTTPClient)

	httpClient, ok := cfg.HTTPClient.(*http.Client)
	require.True(t, ok)
	assert.Equal(t, DefaultTimeout, httpClient.Timeout)
}

func TestConfigWithDefaultsKeepsCustomValues(t *testing.T) {
	custom := doerFunc(func(req *http.Request) (*http.Response, error) { return nil, nil })
	cfg := (&Config{
		SecretKey:  testSecretKey,
		BaseURL:    "https://sandbox.example.com",
		APIVersion: "v2",
		Timeout:    time.Minute,
		HTTPClient: custom,
	}).withDefaults()

	assert.Equal(t, "https://sandbox.example.com", cfg.BaseURL)
	assert.Equal(t, "v2", cfg.APIVersion)
	assert.Equal(t, time.Minute, cfg.Timeout)
	assert.NotNil(t, cfg.HTTPClient)
}
