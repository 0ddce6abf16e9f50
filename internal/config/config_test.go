package config

import (
	"os"
	"testing"
	"time"
)

func clearEnv() {
	envVars := []string{
		"SERVER_ADDR", "SERVER_PORT",
		"DB_HOST", "DB_PORT", "DB_USER", "DB_PASSWORD", "DB_NAME", "DB_SSLMODE",
		"JWT_ISSUER", "ACCESS_TOKEN_TTL",
		"SLACK_SIGNING_SECRET", "CHATWORK_WEBHOOK_TOKEN", "CHATWORK_API_TOKEN",
		"DISPLAY_TIMEZONE", "RATE_LIMIT_ENABLED",
	}
	for _, v := range envVars {
		os.Unsetenv(v)
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv()
	os.Setenv("JWT_SECRET", "test-secret-key")
	defer os.Unsetenv("JWT_SECRET")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.ServerAddr != "0.0.0.0" {
		t.Errorf("ServerAddr = %q, want %q", cfg.ServerAddr, "0.0.0.0")
	}
	if cfg.ServerPort != 8080 {
		t.Errorf("ServerPort = %d, want %d", cfg.ServerPort, 8080)
	}
	if cfg.DBHost != "localhost" {
		t.Errorf("DBHost = %q, want %q", cfg.DBHost, "localhost")
	}
	if cfg.DBSSLMode != "disable" {
		t.Errorf("DBSSLMode = %q, want %q", cfg.DBSSLMode, "disable")
	}
	if cfg.AccessTokenTTL != 15*time.Minute {
		t.Errorf("AccessTokenTTL = %v, want %v", cfg.AccessTokenTTL, 15*time.Minute)
	}
	if cfg.DisplayTimezone != "UTC" {
		t.Errorf("DisplayTimezone = %q, want UTC", cfg.DisplayTimezone)
	}
	if cfg.HasSlack() {
		t.Error("HasSlack() should be false without SLACK_SIGNING_SECRET")
	}
	if cfg.HasChatwork() {
		t.Error("HasChatwork() should be false without Chatwork tokens")
	}
}

func TestLoad_RequiredJWTSecret(t *testing.T) {
	clearEnv()
	os.Unsetenv("JWT_SECRET")

	if _, err := Load(); err == nil {
		t.Error("Load should fail when JWT_SECRET is not set")
	}
}

func TestLoad_CustomValues(t *testing.T) {
	clearEnv()
	os.Setenv("JWT_SECRET", "custom-secret")
	os.Setenv("SERVER_PORT", "9090")
	os.Setenv("SLACK_SIGNING_SECRET", "slack-secret")
	os.Setenv("CHATWORK_WEBHOOK_TOKEN", "hook-token")
	os.Setenv("CHATWORK_API_TOKEN", "api-token")
	os.Setenv("DISPLAY_TIMEZONE", "Asia/Tokyo")
	defer clearEnv()
	defer os.Unsetenv("JWT_SECRET")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.ServerPort != 9090 {
		t.Errorf("ServerPort = %d, want 9090", cfg.ServerPort)
	}
	if !cfg.HasSlack() {
		t.Error("HasSlack() should be true")
	}
	if !cfg.HasChatwork() {
		t.Error("HasChatwork() should be true")
	}
	if cfg.DisplayTimezone != "Asia/Tokyo" {
		t.Errorf("DisplayTimezone = %q, want Asia/Tokyo", cfg.DisplayTimezone)
	}
}

func TestLoad_ChatworkNeedsBothTokens(t *testing.T) {
	clearEnv()
	os.Setenv("JWT_SECRET", "custom-secret")
	os.Setenv("CHATWORK_WEBHOOK_TOKEN", "hook-token")
	defer clearEnv()
	defer os.Unsetenv("JWT_SECRET")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.HasChatwork() {
		t.Error("HasChatwork() should require both webhook and API tokens")
	}
}
