package storage

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/jfabis/FluffyJobs/internal/models"
)

func newTestStore(t *testing.T) *SessionStore {
	t.Helper()
	kv, err := NewFileStore(filepath.Join(t.TempDir(), "state"))
	if err != nil {
		t.Fatalf("NewFileStore() error = %v", err)
	}
	return NewSessionStore(kv)
}

func TestFileStoreRoundTrip(t *testing.T) {
	kv, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore() error = %v", err)
	}

	if _, err := kv.Get("access_token"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Get() on empty store error = %v, want ErrNotFound", err)
	}
	if err := kv.Set("access_token", "tok1"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	got, err := kv.Get("access_token")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got != "tok1" {
		t.Fatalf("Get() = %q, want %q", got, "tok1")
	}
	if err := kv.Delete("access_token"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, err := kv.Get("access_token"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Get() after delete error = %v, want ErrNotFound", err)
	}
	// Deleting a missing key is not an error.
	if err := kv.Delete("access_token"); err != nil {
		t.Fatalf("Delete() (2nd) error = %v", err)
	}
}

func TestFileStoreRejectsPathKeys(t *testing.T) {
	kv, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore() error = %v", err)
	}
	for _, key := range []string{"", "..", "a/b", "../escape"} {
		if err := kv.Set(key, "x"); err == nil {
			t.Fatalf("Set(%q) expected error", key)
		}
	}
}

func TestSessionStoreUserRoundTrip(t *testing.T) {
	store := newTestStore(t)

	user := models.User{ID: 1, Email: "a@b.com", Name: "A", Provider: models.ProviderEmail}
	if err := store.SetUser(user); err != nil {
		t.Fatalf("SetUser() error = %v", err)
	}
	got, err := store.User()
	if err != nil {
		t.Fatalf("User() error = %v", err)
	}
	if got != user {
		t.Fatalf("User() = %+v, want %+v", got, user)
	}
}

func TestSessionStoreCorruptUser(t *testing.T) {
	store := newTestStore(t)

	if err := store.KV().Set(KeyUserData, "{not json"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if _, err := store.User(); !errors.Is(err, ErrCorrupt) {
		t.Fatalf("User() error = %v, want ErrCorrupt", err)
	}
}

func TestClearSessionKeepsSideKeys(t *testing.T) {
	store := newTestStore(t)

	if err := store.SetTokens(models.TokenPair{Access: "tok1", Refresh: "ref1"}); err != nil {
		t.Fatalf("SetTokens() error = %v", err)
	}
	if err := store.SetUser(models.User{ID: 7, Email: "a@b.com"}); err != nil {
		t.Fatalf("SetUser() error = %v", err)
	}
	if err := store.KV().Set("pro_status_7", "true"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	store.ClearSession()

	if tok := store.AccessToken(); tok != "" {
		t.Fatalf("AccessToken() after clear = %q, want empty", tok)
	}
	if _, err := store.User(); !errors.Is(err, ErrNotFound) {
		t.Fatalf("User() after clear error = %v, want ErrNotFound", err)
	}
	pro, err := store.KV().Get("pro_status_7")
	if err != nil || pro != "true" {
		t.Fatalf("side key after clear = (%q, %v), want (true, nil)", pro, err)
	}
}
