package storage

import (
	"errors"

	"github.com/zalando/go-keyring"
)

// KeyringService groups this app's secrets in the OS keychain.
const KeyringService = "fluffyjobs"

// KeyringStore keeps the token pair in the OS keychain and delegates
// everything else (user record, entitlement side keys) to a fallback KV.
type KeyringStore struct {
	fallback KV
}

func NewKeyringStore(fallback KV) *KeyringStore {
	return &KeyringStore{fallback: fallback}
}

func secretKey(key string) bool {
	return key == KeyAccessToken || key == KeyRefreshToken
}

func (k *KeyringStore) Get(key string) (string, error) {
	if !secretKey(key) {
		return k.fallback.Get(key)
	}
	value, err := keyring.Get(KeyringService, key)
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return "", ErrNotFound
		}
		// Keychain unavailable (locked, headless, etc.) -- try the files.
		return k.fallback.Get(key)
	}
	return value, nil
}

func (k *KeyringStore) Set(key, value string) error {
	if !secretKey(key) {
		return k.fallback.Set(key, value)
	}
	if err := keyring.Set(KeyringService, key, value); err != nil {
		return k.fallback.Set(key, value)
	}
	// A stale file copy must not outlive the keychain entry.
	_ = k.fallback.Delete(key)
	return nil
}

func (k *KeyringStore) Delete(key string) error {
	if !secretKey(key) {
		return k.fallback.Delete(key)
	}
	err := keyring.Delete(KeyringService, key)
	if err != nil && !errors.Is(err, keyring.ErrNotFound) {
		_ = k.fallback.Delete(key)
		return err
	}
	return k.fallback.Delete(key)
}
