package service

import (
	"errors"
	"fmt"

	"panelbot/internal/credential"
	"panelbot/internal/domain"
	"panelbot/internal/repository"
)

// ErrAccountExists is returned by Provision when the username is taken.
var ErrAccountExists = errors.New("account already exists")

// AccountService provisions panel accounts with generated credentials.
type AccountService struct {
	accounts repository.AccountRepository
}

// NewAccountService creates a new account service
func NewAccountService(accounts repository.AccountRepository) *AccountService {
	return &AccountService{accounts: accounts}
}

// Provision creates an account for username with a generated password and
// returns the issued credential. The existence check, not a transaction,
// is what keeps repeated invocations for the same username idempotent:
// two racing calls can both pass it, in which case the second create
// fails on the table's uniqueness constraint and surfaces here as an
// ordinary error.
func (s *AccountService) Provision(username string) (*domain.Credential, error) {
	existing, err := s.accounts.GetByUsername(username)
	if err != nil {
		return nil, fmt.Errorf("lookup account: %w", err)
	}
	if existing != nil {
		return nil, ErrAccountExists
	}

	password, err := credential.GeneratePassword(username)
	if err != nil {
		return nil, fmt.Errorf("generate password: %w", err)
	}
	hash, err := credential.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	account, err := s.accounts.Create(username, hash)
	if err != nil {
		return nil, fmt.Errorf("create account: %w", err)
	}

	return &domain.Credential{
		AccountID: account.ID,
		Username:  account.Username,
		Password:  password,
		Hash:      hash,
	}, nil
}
