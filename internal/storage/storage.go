// Package storage isolates where session state is persisted (plain files
// or the OS keychain) behind a small key-value interface, so the session
// container never touches a concrete medium.
package storage

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jfabis/FluffyJobs/internal/models"
)

// Storage keys. These are a compatibility surface: changing one orphans
// every previously persisted session.
const (
	KeyAccessToken  = "access_token"
	KeyRefreshToken = "refresh_token"
	KeyUserData     = "user_data"
)

var (
	// ErrNotFound means the key has never been set (or was deleted).
	ErrNotFound = errors.New("storage: key not found")
	// ErrCorrupt means a stored value exists but cannot be decoded.
	ErrCorrupt = errors.New("storage: corrupt stored value")
)

// KV is the minimal persistence contract. Implementations must be safe to
// call with arbitrary stored garbage: Get returns what is there, never
// panics, and reports absence with ErrNotFound.
type KV interface {
	Get(key string) (string, error)
	Set(key, value string) error
	Delete(key string) error
}

// SessionStore layers the typed session records over a KV.
type SessionStore struct {
	kv KV
}

func NewSessionStore(kv KV) *SessionStore {
	return &SessionStore{kv: kv}
}

// KV exposes the underlying store for side records (Pro entitlement keys).
func (s *SessionStore) KV() KV {
	return s.kv
}

// AccessToken returns the stored access token, or "" when absent.
func (s *SessionStore) AccessToken() string {
	tok, err := s.kv.Get(KeyAccessToken)
	if err != nil {
		return ""
	}
	return tok
}

func (s *SessionStore) Tokens() (models.TokenPair, error) {
	access, err := s.kv.Get(KeyAccessToken)
	if err != nil {
		return models.TokenPair{}, err
	}
	refresh, err := s.kv.Get(KeyRefreshToken)
	if err != nil && !errors.Is(err, ErrNotFound) {
		return models.TokenPair{}, err
	}
	return models.TokenPair{Access: access, Refresh: refresh}, nil
}

func (s *SessionStore) SetTokens(pair models.TokenPair) error {
	if err := s.kv.Set(KeyAccessToken, pair.Access); err != nil {
		return err
	}
	if pair.Refresh == "" {
		return nil
	}
	return s.kv.Set(KeyRefreshToken, pair.Refresh)
}

// User decodes the persisted user record. A present but undecodable value
// is reported as ErrCorrupt so the caller can recover by clearing state.
func (s *SessionStore) User() (models.User, error) {
	raw, err := s.kv.Get(KeyUserData)
	if err != nil {
		return models.User{}, err
	}
	var user models.User
	if err := json.Unmarshal([]byte(raw), &user); err != nil {
		return models.User{}, fmt.Errorf("%w: %s: %v", ErrCorrupt, KeyUserData, err)
	}
	return user, nil
}

func (s *SessionStore) SetUser(user models.User) error {
	data, err := json.Marshal(user)
	if err != nil {
		return err
	}
	return s.kv.Set(KeyUserData, string(data))
}

// ClearSession removes the token pair and user record. Side keys (Pro
// entitlement) survive so re-login restores prior entitlement.
func (s *SessionStore) ClearSession() {
	_ = s.kv.Delete(KeyAccessToken)
	_ = s.kv.Delete(KeyRefreshToken)
	_ = s.kv.Delete(KeyUserData)
}
