package repository

import "panelbot/internal/domain"

// AccountRepository defines panel account storage operations.
type AccountRepository interface {
	// GetByUsername returns the account with the exact username, or
	// (nil, nil) when no such account exists.
	GetByUsername(username string) (*domain.Account, error)
	Create(username, passwordHash string) (*domain.Account, error)
}
