package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Ingestion modes. Exactly one source is active per deployment; pointing
// a platform webhook at a polling deployment is an operator error the
// code does not detect.
const (
	ModePolling = "polling"
	ModeWebhook = "webhook"
)

// Config holds all application configuration
type Config struct {
	// BotToken may be empty: outbound Telegram calls then degrade to
	// logged failures instead of crashing the process.
	BotToken   string
	AdminIDs   []int64
	Mode       string
	WebhookURL string
	LoginURL   string
	HTTPAddr   string
	APIToken   string
	Relay      RelayConfig
	Database   DatabaseConfig
}

// RelayConfig configures the sender bot that forwards panel commands to
// the downstream chat.
type RelayConfig struct {
	BotToken string
	ChatID   int64
}

// DatabaseConfig holds database connection settings
type DatabaseConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Try to load .env file (ignore error if not exists)
	_ = godotenv.Load()

	adminIDs, err := parseAdminIDs(os.Getenv("TELEGRAM_ADMIN_IDS"))
	if err != nil {
		return nil, fmt.Errorf("invalid TELEGRAM_ADMIN_IDS: %w", err)
	}

	relayChatID, err := parseOptionalInt64(os.Getenv("RELAY_CHAT_ID"))
	if err != nil {
		return nil, fmt.Errorf("invalid RELAY_CHAT_ID: %w", err)
	}

	cfg := &Config{
		BotToken:   os.Getenv("BOT_TOKEN"),
		AdminIDs:   adminIDs,
		Mode:       getEnv("BOT_MODE", ModePolling),
		WebhookURL: os.Getenv("WEBHOOK_URL"),
		LoginURL:   os.Getenv("LOGIN_URL"),
		HTTPAddr:   getEnv("HTTP_ADDR", ":5000"),
		APIToken:   os.Getenv("API_TOKEN"),
		Relay: RelayConfig{
			BotToken: os.Getenv("SENDER_BOT_TOKEN"),
			ChatID:   relayChatID,
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			Name:     getEnv("DB_NAME", "panel"),
			User:     getEnv("DB_USER", "panel"),
			Password: os.Getenv("DB_PASSWORD"),
		},
	}

	// Validate required fields
	if cfg.Mode != ModePolling && cfg.Mode != ModeWebhook {
		return nil, fmt.Errorf("BOT_MODE must be %q or %q, got %q", ModePolling, ModeWebhook, cfg.Mode)
	}
	if cfg.Database.Password == "" {
		return nil, fmt.Errorf("DB_PASSWORD is required")
	}

	return cfg, nil
}

// DSN returns PostgreSQL connection string
func (c *Config) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.Name,
	)
}

// parseAdminIDs parses a comma-separated list of numeric sender ids.
// Empty entries are skipped; an empty list means nobody is authorized.
func parseAdminIDs(raw string) ([]int64, error) {
	var ids []int64
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.ParseInt(part, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("parse admin id %q: %w", part, err)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func parseOptionalInt64(raw string) (int64, error) {
	if raw == "" {
		return 0, nil
	}
	return strconv.ParseInt(raw, 10, 64)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
