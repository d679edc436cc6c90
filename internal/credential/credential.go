// Package credential generates panel passwords and their storage hashes.
package credential

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"math/big"
	"strings"

	"golang.org/x/crypto/scrypt"
)

// scrypt parameters must stay in sync with the panel's login verifier.
const (
	saltBytes = 16
	keyBytes  = 64
	scryptN   = 16384
	scryptR   = 8
	scryptP   = 1
)

// GeneratePassword derives a human-memorable password: the username
// followed by a random three-digit suffix in [100, 999].
func GeneratePassword(username string) (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900))
	if err != nil {
		return "", fmt.Errorf("generate password suffix: %w", err)
	}
	return fmt.Sprintf("%s%d", username, n.Int64()+100), nil
}

// HashPassword derives the storage form of a password:
// hex(scrypt key) + "." + hex(salt), with a fresh 16-byte salt.
func HashPassword(password string) (string, error) {
	raw := make([]byte, saltBytes)
	if _, err := rand.Read(raw); err != nil {
		return "", fmt.Errorf("generate salt: %w", err)
	}
	// The hex form of the salt, not the raw bytes, keys the KDF; the
	// stored format is shared with the panel's auth layer.
	salt := hex.EncodeToString(raw)

	key, err := scrypt.Key([]byte(password), []byte(salt), scryptN, scryptR, scryptP, keyBytes)
	if err != nil {
		return "", fmt.Errorf("derive key: %w", err)
	}
	return hex.EncodeToString(key) + "." + salt, nil
}

// Verify reports whether password matches a stored hash. The stored form
// is split on its single dot: derived key first, salt second.
func Verify(password, stored string) (bool, error) {
	i := strings.LastIndex(stored, ".")
	if i < 0 {
		return false, fmt.Errorf("malformed password hash")
	}
	keyHex, salt := stored[:i], stored[i+1:]

	want, err := hex.DecodeString(keyHex)
	if err != nil {
		return false, fmt.Errorf("malformed password hash: %w", err)
	}
	got, err := scrypt.Key([]byte(password), []byte(salt), scryptN, scryptR, scryptP, len(want))
	if err != nil {
		return false, fmt.Errorf("derive key: %w", err)
	}
	return subtle.ConstantTimeCompare(want, got) == 1, nil
}
