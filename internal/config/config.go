package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds application configuration.
type Config struct {
	// Server
	ServerAddr string
	ServerPort int

	// Database
	DBHost     string
	DBPort     int
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// JWT (provisioning API)
	JWTSecret      string
	JWTIssuer      string
	AccessTokenTTL time.Duration

	// Slack integration
	SlackSigningSecret string

	// Chatwork integration
	ChatworkWebhookToken string
	ChatworkAPIToken     string

	// Display timezone for chat replies (IANA name)
	DisplayTimezone string

	// Rate limiting
	RateLimit RateLimitConfig

	// Request limits
	MaxRequestBodySize int64
}

// RateLimitConfig holds rate limiting settings for the provisioning API.
type RateLimitConfig struct {
	Enabled      bool
	AuthRequests int
	AuthWindow   time.Duration
	APIRequests  int
	APIWindow    time.Duration
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{
		// Server defaults
		ServerAddr: getEnv("SERVER_ADDR", "0.0.0.0"),
		ServerPort: getEnvInt("SERVER_PORT", 8080),

		// Database defaults
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnvInt("DB_PORT", 5432),
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: getEnv("DB_PASSWORD", "postgres"),
		DBName:     getEnv("DB_NAME", "shiftlog"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),

		// JWT defaults
		JWTSecret:      getEnv("JWT_SECRET", ""),
		JWTIssuer:      getEnv("JWT_ISSUER", "shiftlog"),
		AccessTokenTTL: getEnvDuration("ACCESS_TOKEN_TTL", 15*time.Minute),

		// Chat integrations (each optional; its webhook route is only
		// mounted when configured)
		SlackSigningSecret:   getEnv("SLACK_SIGNING_SECRET", ""),
		ChatworkWebhookToken: getEnv("CHATWORK_WEBHOOK_TOKEN", ""),
		ChatworkAPIToken:     getEnv("CHATWORK_API_TOKEN", ""),

		DisplayTimezone: getEnv("DISPLAY_TIMEZONE", "UTC"),

		RateLimit: RateLimitConfig{
			Enabled:      getEnvBool("RATE_LIMIT_ENABLED", true),
			AuthRequests: getEnvInt("RATE_LIMIT_AUTH_REQUESTS", 10),
			AuthWindow:   getEnvDuration("RATE_LIMIT_AUTH_WINDOW", time.Minute),
			APIRequests:  getEnvInt("RATE_LIMIT_API_REQUESTS", 120),
			APIWindow:    getEnvDuration("RATE_LIMIT_API_WINDOW", time.Minute),
		},

		MaxRequestBodySize: int64(getEnvInt("MAX_REQUEST_BODY_SIZE", 1<<20)),
	}

	// Validate required fields
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}

	return cfg, nil
}

// HasSlack returns true if the Slack integration is configured.
func (c *Config) HasSlack() bool {
	return c.SlackSigningSecret != ""
}

// HasChatwork returns true if the Chatwork integration is configured.
func (c *Config) HasChatwork() bool {
	return c.ChatworkWebhookToken != "" && c.ChatworkAPIToken != ""
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
