package storage

import (
	"errors"
	"path/filepath"
	"testing"
)

func TestSQLiteStore_SetGet(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "preferences.db")

	store, err := NewSQLiteStore(dbPath)
	if err != nil {
		t.Fatalf("NewSQLiteStore: %v", err)
	}
	defer store.Close()

	if _, err := store.Get("theme"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	if err := store.Set("theme", "light"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := store.Set("theme", "system"); err != nil {
		t.Fatalf("Set overwrite: %v", err)
	}
	v, err := store.Get("theme")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if v != "system" {
		t.Errorf("expected system, got %s", v)
	}
}

func TestSQLiteStore_Reopen(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "nested", "preferences.db")

	store, err := NewSQLiteStore(dbPath)
	if err != nil {
		t.Fatalf("NewSQLiteStore: %v", err)
	}
	if err := store.Set("theme", "magical-berg"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	store.Close()

	reopened, err := NewSQLiteStore(dbPath)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer reopened.Close()
	v, err := reopened.Get("theme")
	if err != nil || v != "magical-berg" {
		t.Errorf("expected magical-berg after reopen, got %q (%v)", v, err)
	}
}
