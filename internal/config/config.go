package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Environment names recognized by the config loader.
const (
	EnvProduction  = "production"
	EnvDevelopment = "development"
)

// DevSessionSecret is the fallback signing secret used outside production.
const DevSessionSecret = "dev-session-secret-do-not-use-in-production"

// placeholderSecrets are literals that must never protect production traffic.
var placeholderSecrets = []string{
	"",
	"changeme",
	"change-me",
	"placeholder",
	"secret",
	"your-secret-key",
	"your-api-key",
	DevSessionSecret,
}

// Config holds all configuration values
type Config struct {
	// Server configuration
	Port        int    `json:"port"`
	Environment string `json:"environment"`

	// Backend configuration
	BackendURL    string `json:"backend_url"`
	BackendAPIKey string `json:"backend_api_key"`

	// Session credential configuration
	SessionSecret string        `json:"session_secret"`
	SessionTTL    time.Duration `json:"session_ttl"`

	// Campaign configuration
	DefaultCampaignCode string `json:"default_campaign_code"`
	ConsentVersion      string `json:"consent_version"`

	// SMTP configuration
	SMTPHost     string `json:"smtp_host"`
	SMTPPort     int    `json:"smtp_port"`
	SMTPUsername string `json:"smtp_username"`
	SMTPPassword string `json:"smtp_password"`
	SMTPSender   string `json:"smtp_sender"`
	NotifyEmail  string `json:"notify_email"`

	// Redis configuration
	RedisURI      string        `json:"redis_uri"`
	RedisPassword string        `json:"redis_password"`
	RedisDB       int           `json:"redis_db"`
	RedisTTL      time.Duration `json:"redis_ttl"`

	// Tracing configuration
	TracingEnabled  bool   `json:"tracing_enabled"`
	TracingEndpoint string `json:"tracing_endpoint"`
}

// IsProduction reports whether the strict runtime policy applies.
func (c *Config) IsProduction() bool {
	return c.Environment == EnvProduction
}

// LoadConfig loads configuration from environment variables. In production it
// refuses missing or placeholder secrets so the process fails at startup
// instead of serving with an insecure signing key.
func LoadConfig() (*Config, error) {
	port, err := strconv.Atoi(getEnvOrDefault("PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid PORT: %w", err)
	}

	smtpPort, err := strconv.Atoi(getEnvOrDefault("SMTP_PORT", "587"))
	if err != nil {
		return nil, fmt.Errorf("invalid SMTP_PORT: %w", err)
	}

	redisDB, err := strconv.Atoi(getEnvOrDefault("REDIS_DB", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
	}

	redisTTL, err := time.ParseDuration(getEnvOrDefault("REDIS_TTL", "10m"))
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_TTL: %w", err)
	}

	sessionTTL, err := time.ParseDuration(getEnvOrDefault("SESSION_TTL", "15m"))
	if err != nil {
		return nil, fmt.Errorf("invalid SESSION_TTL: %w", err)
	}

	cfg := &Config{
		// Server configuration
		Port:        port,
		Environment: getEnvOrDefault("ENVIRONMENT", EnvDevelopment),

		// Backend configuration
		BackendURL:    getEnvOrDefault("BACKEND_URL", "http://localhost:54321"),
		BackendAPIKey: os.Getenv("BACKEND_API_KEY"),

		// Session credential configuration
		SessionSecret: os.Getenv("SESSION_SECRET"),
		SessionTTL:    sessionTTL,

		// Campaign configuration
		DefaultCampaignCode: getEnvOrDefault("DEFAULT_CAMPAIGN_CODE", "uyeplus"),
		ConsentVersion:      getEnvOrDefault("CONSENT_VERSION", "v1"),

		// SMTP configuration
		SMTPHost:     getEnvOrDefault("SMTP_HOST", "localhost"),
		SMTPPort:     smtpPort,
		SMTPUsername: os.Getenv("SMTP_USERNAME"),
		SMTPPassword: os.Getenv("SMTP_PASSWORD"),
		SMTPSender:   getEnvOrDefault("SMTP_SENDER", "no-reply@localhost"),
		NotifyEmail:  os.Getenv("NOTIFY_EMAIL"),

		// Redis configuration
		RedisURI:      getEnvOrDefault("REDIS_URI", "redis://localhost:6379"),
		RedisPassword: getEnvOrDefault("REDIS_PASSWORD", ""),
		RedisDB:       redisDB,
		RedisTTL:      redisTTL,

		// Tracing configuration
		TracingEnabled:  getEnvOrDefault("TRACING_ENABLED", "false") == "true",
		TracingEndpoint: getEnvOrDefault("TRACING_ENDPOINT", "localhost:4317"),
	}

	if cfg.IsProduction() {
		if cfg.BackendURL == "" {
			return nil, fmt.Errorf("BACKEND_URL environment variable is required in production")
		}
		if isPlaceholderSecret(cfg.BackendAPIKey) {
			return nil, fmt.Errorf("BACKEND_API_KEY is missing or a placeholder; refusing to start in production")
		}
		if isPlaceholderSecret(cfg.SessionSecret) {
			return nil, fmt.Errorf("SESSION_SECRET is missing or a placeholder; refusing to start in production")
		}
		// A submission cannot complete without a working notification
		// channel, so the whole delivery surface is mandatory here.
		required := []struct {
			name  string
			value string
		}{
			{"DEFAULT_CAMPAIGN_CODE", cfg.DefaultCampaignCode},
			{"SMTP_HOST", cfg.SMTPHost},
			{"SMTP_USERNAME", cfg.SMTPUsername},
			{"SMTP_PASSWORD", cfg.SMTPPassword},
			{"SMTP_SENDER", cfg.SMTPSender},
			{"NOTIFY_EMAIL", cfg.NotifyEmail},
		}
		for _, r := range required {
			if r.value == "" {
				return nil, fmt.Errorf("%s environment variable is required in production", r.name)
			}
		}
		if cfg.SMTPPort <= 0 {
			return nil, fmt.Errorf("SMTP_PORT must be a positive port number in production")
		}
	} else if cfg.SessionSecret == "" {
		cfg.SessionSecret = DevSessionSecret
	}

	return cfg, nil
}

// isPlaceholderSecret reports whether the value is empty or a known
// placeholder literal.
func isPlaceholderSecret(value string) bool {
	for _, p := range placeholderSecrets {
		if value == p {
			return true
		}
	}
	return false
}

// getEnvOrDefault returns environment variable value or default if not set
func getEnvOrDefault(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}
