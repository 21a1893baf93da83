package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clearEnv pins every variable the loader reads to a known baseline so the
// host environment cannot leak into the tests
func clearEnv(t *testing.T) {
	t.Helper()
	baseline := map[string]string{
		"PORT":                  "8080",
		"ENVIRONMENT":           EnvDevelopment,
		"BACKEND_URL":           "http://localhost:54321",
		"BACKEND_API_KEY":       "",
		"SESSION_SECRET":        "",
		"SESSION_TTL":           "15m",
		"DEFAULT_CAMPAIGN_CODE": "uyeplus",
		"SMTP_PORT":             "587",
		"REDIS_DB":              "0",
		"REDIS_TTL":             "10m",
	}
	for key, value := range baseline {
		t.Setenv(key, value)
	}
}

func TestLoadConfig_Defaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "9090")
	t.Setenv("SESSION_TTL", "15m")
	t.Setenv("REDIS_TTL", "10m")
	t.Setenv("SMTP_PORT", "587")
	t.Setenv("REDIS_DB", "0")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, EnvDevelopment, cfg.Environment)
	assert.False(t, cfg.IsProduction())
	// Development runtime substitutes the fixed fallback secret
	assert.Equal(t, DevSessionSecret, cfg.SessionSecret)
}

func TestLoadConfig_InvalidPort(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "not-a-port")

	_, err := LoadConfig()
	assert.Error(t, err)
}

// productionEnv sets a complete, valid production environment on top of the
// baseline; individual tests then blank the value under test
func productionEnv(t *testing.T) {
	t.Helper()
	clearEnv(t)
	t.Setenv("ENVIRONMENT", EnvProduction)
	t.Setenv("BACKEND_URL", "https://backend.example.org")
	t.Setenv("BACKEND_API_KEY", "real-api-key-123")
	t.Setenv("SESSION_SECRET", "a-real-secret-value")
	t.Setenv("SMTP_HOST", "smtp.example.org")
	t.Setenv("SMTP_USERNAME", "mailer")
	t.Setenv("SMTP_PASSWORD", "mailer-password")
	t.Setenv("SMTP_SENDER", "no-reply@example.org")
	t.Setenv("NOTIFY_EMAIL", "ops@example.org")
}

func TestLoadConfig_ProductionRequiresRealSecrets(t *testing.T) {
	tests := []struct {
		name      string
		secret    string
		apiKey    string
		expectErr bool
	}{
		{
			name:      "Missing session secret",
			secret:    "",
			apiKey:    "real-api-key-123",
			expectErr: true,
		},
		{
			name:      "Placeholder session secret",
			secret:    "your-secret-key",
			apiKey:    "real-api-key-123",
			expectErr: true,
		},
		{
			name:      "Dev fallback used as production secret",
			secret:    DevSessionSecret,
			apiKey:    "real-api-key-123",
			expectErr: true,
		},
		{
			name:      "Missing API key",
			secret:    "a-real-secret-value",
			apiKey:    "",
			expectErr: true,
		},
		{
			name:      "Placeholder API key",
			secret:    "a-real-secret-value",
			apiKey:    "changeme",
			expectErr: true,
		},
		{
			name:      "Real secrets accepted",
			secret:    "a-real-secret-value",
			apiKey:    "real-api-key-123",
			expectErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			productionEnv(t)
			t.Setenv("SESSION_SECRET", tt.secret)
			t.Setenv("BACKEND_API_KEY", tt.apiKey)

			cfg, err := LoadConfig()
			if tt.expectErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, cfg.IsProduction())
			assert.Equal(t, tt.secret, cfg.SessionSecret)
		})
	}
}

func TestLoadConfig_ProductionRequiresDeliveryConfig(t *testing.T) {
	required := []string{
		"DEFAULT_CAMPAIGN_CODE",
		"SMTP_HOST",
		"SMTP_USERNAME",
		"SMTP_PASSWORD",
		"SMTP_SENDER",
		"NOTIFY_EMAIL",
	}
	for _, key := range required {
		t.Run("Missing "+key, func(t *testing.T) {
			productionEnv(t)
			t.Setenv(key, "")

			_, err := LoadConfig()
			require.Error(t, err)
			assert.Contains(t, err.Error(), key)
		})
	}

	t.Run("Invalid SMTP_PORT", func(t *testing.T) {
		productionEnv(t)
		t.Setenv("SMTP_PORT", "0")

		_, err := LoadConfig()
		assert.Error(t, err)
	})

	t.Run("Complete configuration accepted", func(t *testing.T) {
		productionEnv(t)

		cfg, err := LoadConfig()
		require.NoError(t, err)
		assert.Equal(t, "ops@example.org", cfg.NotifyEmail)
		assert.Equal(t, "smtp.example.org", cfg.SMTPHost)
	})

	t.Run("Development runs without delivery config", func(t *testing.T) {
		clearEnv(t)

		_, err := LoadConfig()
		assert.NoError(t, err)
	})
}

func TestLoadConfig_DevelopmentKeepsExplicitSecret(t *testing.T) {
	clearEnv(t)
	t.Setenv("SESSION_SECRET", "my-local-secret")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "my-local-secret", cfg.SessionSecret)
}
