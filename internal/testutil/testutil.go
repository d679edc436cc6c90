package testutil

import (
	"time"

	"panelbot/internal/domain"

	"go.uber.org/zap"
)

// NewTestLogger creates a no-op logger for tests
func NewTestLogger() *zap.Logger {
	return zap.NewNop()
}

// NewTestAccount creates a test account
func NewTestAccount(id int64, username, passwordHash string) *domain.Account {
	return &domain.Account{
		ID:           id,
		Username:     username,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now(),
	}
}
