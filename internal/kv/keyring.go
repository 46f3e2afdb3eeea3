package kv

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"sort"

	"github.com/99designs/keyring"
)

const serviceName = "humanai-workspace"

// KeyringStorage implements Storage on top of the operating system's
// credential store, falling back to encrypted files.
type KeyringStorage struct {
	ring keyring.Keyring
}

// OpenKeyring returns a keyring configured for the workspace service.
// fileDir is used by the encrypted file backend.
func OpenKeyring(fileDir string) (keyring.Keyring, error) {
	ring, err := keyring.Open(keyring.Config{
		ServiceName: serviceName,
		AllowedBackends: []keyring.BackendType{
			keyring.KeychainBackend,
			keyring.SecretServiceBackend,
			keyring.WinCredBackend,
			keyring.PassBackend,
			keyring.FileBackend,
		},
		FileDir:                  fileDir,
		FilePasswordFunc:         keyring.FixedStringPrompt("humanai-workspace-file-key"),
		KeychainTrustApplication: true,
	})
	if err != nil {
		return nil, fmt.Errorf("opening keyring: %w", err)
	}
	return ring, nil
}

// NewKeyringStorage wraps an opened keyring.
func NewKeyringStorage(ring keyring.Keyring) *KeyringStorage {
	return &KeyringStorage{ring: ring}
}

// Get retrieves the value stored under key.
func (s *KeyringStorage) Get(_ context.Context, key string) (string, error) {
	item, err := s.ring.Get(key)
	if err != nil {
		if errors.Is(err, keyring.ErrKeyNotFound) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("getting %q: %w", key, err)
	}
	return string(item.Data), nil
}

// Set stores value under key.
func (s *KeyringStorage) Set(_ context.Context, key, value string) error {
	err := s.ring.Set(keyring.Item{
		Key:   key,
		Data:  []byte(value),
		Label: serviceName + " " + key,
	})
	if err != nil {
		return fmt.Errorf("setting %q: %w", key, err)
	}
	return nil
}

// Remove deletes key if present.
func (s *KeyringStorage) Remove(_ context.Context, key string) error {
	err := s.ring.Remove(key)
	if err != nil && !errors.Is(err, keyring.ErrKeyNotFound) && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("removing %q: %w", key, err)
	}
	return nil
}

// Keys lists all stored keys.
func (s *KeyringStorage) Keys(_ context.Context) ([]string, error) {
	keys, err := s.ring.Keys()
	if err != nil {
		return nil, fmt.Errorf("listing keys: %w", err)
	}
	sort.Strings(keys)
	return keys, nil
}

// Close is a no-op; keyrings hold no open handles.
func (s *KeyringStorage) Close() error {
	return nil
}
