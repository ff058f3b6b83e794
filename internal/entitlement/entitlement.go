// Package entitlement tracks per-user Pro status. Entitlement is
// client-trusted in the current product: the payment provider redirect
// drives Grant with no server-side confirmation. Keeping it behind this
// interface lets a later revision swap in a verified backend check
// without touching callers.
package entitlement

import (
	"errors"
	"fmt"

	"github.com/jfabis/FluffyJobs/internal/storage"
)

// Store answers and records whether a user id has Pro entitlement.
type Store interface {
	Has(userID int64) bool
	Grant(userID int64) error
	Revoke(userID int64) error
}

// KVStore keeps one side key per user id, outside the session records so
// logout does not erase entitlement.
type KVStore struct {
	kv storage.KV
}

func NewKVStore(kv storage.KV) *KVStore {
	return &KVStore{kv: kv}
}

func key(userID int64) string {
	return fmt.Sprintf("pro_status_%d", userID)
}

func (s *KVStore) Has(userID int64) bool {
	value, err := s.kv.Get(key(userID))
	if err != nil {
		return false
	}
	return value == "true"
}

func (s *KVStore) Grant(userID int64) error {
	return s.kv.Set(key(userID), "true")
}

func (s *KVStore) Revoke(userID int64) error {
	err := s.kv.Delete(key(userID))
	if err != nil && !errors.Is(err, storage.ErrNotFound) {
		return err
	}
	return nil
}
