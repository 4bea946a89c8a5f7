package storage

import (
	"errors"
	"testing"

	"github.com/zalando/go-keyring"
)

func TestKeyringStore(t *testing.T) {
	keyring.MockInit()
	s := NewKeyringStore("")

	if _, err := s.Get("theme"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	if err := s.Set("theme", "schwartz-wald"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	v, err := s.Get("theme")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if v != "schwartz-wald" {
		t.Errorf("expected schwartz-wald, got %s", v)
	}
	if err := s.Delete("theme"); err != nil {
		t.Errorf("Delete failed: %v", err)
	}
	if err := s.Delete("theme"); err != nil {
		t.Errorf("Delete of missing key should be a no-op: %v", err)
	}
}

func TestKeyringStore_BackendErrorIsUnavailable(t *testing.T) {
	keyring.MockInitWithError(errors.New("no secret service"))
	defer keyring.MockInit()
	s := NewKeyringStore("")

	if _, err := s.Get("theme"); !errors.Is(err, ErrUnavailable) {
		t.Errorf("expected ErrUnavailable, got %v", err)
	}
	if err := s.Set("theme", "dark"); !errors.Is(err, ErrUnavailable) {
		t.Errorf("expected ErrUnavailable, got %v", err)
	}
}
