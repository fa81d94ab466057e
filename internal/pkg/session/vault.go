package session

import (
	"errors"
	"fmt"

	"github.com/zalando/go-keyring"
)

// TokenVault keeps bearer tokens outside the session database
type TokenVault interface {
	Put(origin, token string) error
	// Get returns "" when no token is stored
	Get(origin string) (string, error)
	Delete(origin string) error
}

// DefaultKeyringService is the OS keyring service name
const DefaultKeyringService = "aidctl"

// KeyringVault stores tokens in the OS keyring, one entry per origin
type KeyringVault struct {
	Service string
}

// NewKeyringVault creates a vault under service (DefaultKeyringService if empty)
func NewKeyringVault(service string) *KeyringVault {
	if service == "" {
		service = DefaultKeyringService
	}
	return &KeyringVault{Service: service}
}

// Put stores the token for origin
func (v *KeyringVault) Put(origin, token string) error {
	if err := keyring.Set(v.Service, origin, token); err != nil {
		return fmt.Errorf("failed to store token in keyring: %w", err)
	}
	return nil
}

// Get returns the token for origin
func (v *KeyringVault) Get(origin string) (string, error) {
	token, err := keyring.Get(v.Service, origin)
	if errors.Is(err, keyring.ErrNotFound) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to read token from keyring: %w", err)
	}
	return token, nil
}

// Delete removes the token for origin. Deleting a missing entry is not an error.
func (v *KeyringVault) Delete(origin string) error {
	err := keyring.Delete(v.Service, origin)
	if err != nil && !errors.Is(err, keyring.ErrNotFound) {
		return fmt.Errorf("failed to delete token from keyring: %w", err)
	}
	return nil
}
