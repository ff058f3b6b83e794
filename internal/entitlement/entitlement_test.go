package entitlement

import (
	"testing"

	"github.com/jfabis/FluffyJobs/internal/storage"
)

func TestGrantHasRevoke(t *testing.T) {
	kv, err := storage.NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore() error = %v", err)
	}
	store := NewKVStore(kv)

	if store.Has(3) {
		t.Fatal("Has() on fresh store = true, want false")
	}
	if err := store.Grant(3); err != nil {
		t.Fatalf("Grant() error = %v", err)
	}
	if !store.Has(3) {
		t.Fatal("Has() after grant = false, want true")
	}
	if store.Has(4) {
		t.Fatal("Has(4) = true, entitlement must be scoped per user id")
	}
	if err := store.Revoke(3); err != nil {
		t.Fatalf("Revoke() error = %v", err)
	}
	if store.Has(3) {
		t.Fatal("Has() after revoke = true, want false")
	}
	// Revoking an absent grant is not an error.
	if err := store.Revoke(3); err != nil {
		t.Fatalf("Revoke() (2nd) error = %v", err)
	}
}
