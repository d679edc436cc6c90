package postgres

import (
	"database/sql"

	"panelbot/internal/domain"
)

// AccountRepo implements repository.AccountRepository
type AccountRepo struct {
	db *sql.DB
}

// NewAccountRepo creates a new account repository
func NewAccountRepo(db *sql.DB) *AccountRepo {
	return &AccountRepo{db: db}
}

// GetByUsername looks up an account by exact username
func (r *AccountRepo) GetByUsername(username string) (*domain.Account, error) {
	var a domain.Account
	query := `SELECT id, username, password, created_at FROM accounts WHERE username = $1`
	err := r.db.QueryRow(query, username).Scan(&a.ID, &a.Username, &a.PasswordHash, &a.CreatedAt)

	if err == sql.ErrNoRows {
		// No such account
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &a, nil
}

// Create inserts a new account and returns the stored record
func (r *AccountRepo) Create(username, passwordHash string) (*domain.Account, error) {
	var a domain.Account
	query := `
		INSERT INTO accounts (username, password)
		VALUES ($1, $2)
		RETURNING id, username, password, created_at
	`
	err := r.db.QueryRow(query, username, passwordHash).Scan(&a.ID, &a.Username, &a.PasswordHash, &a.CreatedAt)
	if err != nil {
		return nil, err
	}

	return &a, nil
}
