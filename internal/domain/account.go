package domain

import "time"

// Account is a panel login account provisioned through the bot.
type Account struct {
	ID           int64
	Username     string
	PasswordHash string
	CreatedAt    time.Time
}

// Credential carries a freshly issued login. The plaintext password lives
// only here and in the one message that delivers it; storage only ever
// sees the hash.
type Credential struct {
	AccountID int64
	Username  string
	Password  string
	Hash      string
}
