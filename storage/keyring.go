package storage

import (
	"encoding/base64"
	"errors"
	"fmt"

	"github.com/zalando/go-keyring"
)

// KeyringStore persists values in the operating system keyring (Keychain,
// Secret Service, or Windows Credential Manager). Values are base64-encoded
// because keyring secrets are strings. The vault still applies its own
// encryption on top of whatever protection the keyring offers.
type KeyringStore struct {
	service string
}

// NewKeyringStore returns a store scoped to the given keyring service name.
func NewKeyringStore(service string) *KeyringStore {
	return &KeyringStore{service: service}
}

// Read returns the decoded secret stored under key, or false when absent.
func (k *KeyringStore) Read(key string) ([]byte, bool, error) {
	secret, err := keyring.Get(k.service, key)
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to read %s from keyring: %w", key, err)
	}

	data, err := base64.StdEncoding.DecodeString(secret)
	if err != nil {
		return nil, false, fmt.Errorf("keyring entry %s is not base64: %w", key, err)
	}
	return data, true, nil
}

// Write stores data under key, replacing any existing secret.
func (k *KeyringStore) Write(key string, data []byte) error {
	if err := keyring.Set(k.service, key, base64.StdEncoding.EncodeToString(data)); err != nil {
		return fmt.Errorf("failed to write %s to keyring: %w", key, err)
	}
	return nil
}

// Delete removes the secret under key.
func (k *KeyringStore) Delete(key string) error {
	if err := keyring.Delete(k.service, key); err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return nil
		}
		return fmt.Errorf("failed to delete %s from keyring: %w", key, err)
	}
	return nil
}
