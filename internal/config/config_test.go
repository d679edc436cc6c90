package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetEnv(t *testing.T) {
	tests := []struct {
		name         string
		key          string
		defaultValue string
		setEnv       bool
		envValue     string
		expected     string
	}{
		{
			name:         "env variable set",
			key:          "TEST_KEY",
			defaultValue: "default",
			setEnv:       true,
			envValue:     "custom",
			expected:     "custom",
		},
		{
			name:         "env variable not set",
			key:          "TEST_KEY_NOT_SET",
			defaultValue: "default",
			setEnv:       false,
			expected:     "default",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.setEnv {
				t.Setenv(tt.key, tt.envValue)
			}

			result := getEnv(tt.key, tt.defaultValue)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestParseAdminIDs(t *testing.T) {
	tests := []struct {
		name          string
		raw           string
		expected      []int64
		expectedError bool
	}{
		{
			name:     "single id",
			raw:      "7877620348",
			expected: []int64{7877620348},
		},
		{
			name:     "multiple ids with spaces",
			raw:      " 7877620348 , 111, 222 ",
			expected: []int64{7877620348, 111, 222},
		},
		{
			name:     "trailing comma",
			raw:      "111,",
			expected: []int64{111},
		},
		{
			name:     "empty list",
			raw:      "",
			expected: nil,
		},
		{
			name:          "non-numeric id",
			raw:           "111,abc",
			expectedError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ids, err := parseAdminIDs(tt.raw)

			if tt.expectedError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.expected, ids)
			}
		})
	}
}

func TestConfig_DSN(t *testing.T) {
	cfg := &Config{
		Database: DatabaseConfig{
			Host:     "localhost",
			Port:     "5432",
			User:     "testuser",
			Password: "testpass",
			Name:     "testdb",
		},
	}

	dsn := cfg.DSN()
	expected := "host=localhost port=5432 user=testuser password=testpass dbname=testdb sslmode=disable"
	assert.Equal(t, expected, dsn)
}

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("DB_PASSWORD", "secret")
	t.Setenv("TELEGRAM_ADMIN_IDS", "111,222")
	t.Setenv("BOT_TOKEN", "")
	t.Setenv("BOT_MODE", "")
	t.Setenv("RELAY_CHAT_ID", "")
	t.Setenv("HTTP_ADDR", "")
}

func TestLoad_Defaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, ModePolling, cfg.Mode)
	assert.Equal(t, ":5000", cfg.HTTPAddr)
	assert.Equal(t, []int64{111, 222}, cfg.AdminIDs)
	// A missing bot token degrades sends; it must not fail loading.
	assert.Empty(t, cfg.BotToken)
}

func TestLoad_MissingDBPassword(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("DB_PASSWORD", "")

	cfg, err := Load()

	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "DB_PASSWORD")
}

func TestLoad_InvalidMode(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("BOT_MODE", "both")

	cfg, err := Load()

	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "BOT_MODE")
}

func TestLoad_InvalidAdminIDs(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("TELEGRAM_ADMIN_IDS", "not-a-number")

	cfg, err := Load()

	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "TELEGRAM_ADMIN_IDS")
}

func TestLoad_RelayConfig(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("SENDER_BOT_TOKEN", "sender-token")
	t.Setenv("RELAY_CHAT_ID", "-1002875645772")

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, "sender-token", cfg.Relay.BotToken)
	assert.Equal(t, int64(-1002875645772), cfg.Relay.ChatID)
}

func TestLoad_WebhookMode(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("BOT_MODE", "webhook")
	t.Setenv("WEBHOOK_URL", "https://example.com/api/telegram-webhook")

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, ModeWebhook, cfg.Mode)
	assert.Equal(t, "https://example.com/api/telegram-webhook", cfg.WebhookURL)
}
