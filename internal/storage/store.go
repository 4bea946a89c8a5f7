package storage

import (
	"errors"
	"io"
)

// ErrNotFound is returned by Get when nothing is stored under the key.
var ErrNotFound = errors.New("storage: key not found")

// ErrUnavailable is returned when the backing store cannot be reached at all.
// Callers treat it as "nothing persisted" on reads and skip writes.
var ErrUnavailable = errors.New("storage: unavailable")

// Store is a string key/value store holding user preferences.
type Store interface {
	Get(key string) (string, error)
	Set(key, value string) error
}

// Close closes s if it holds resources.
func Close(s Store) error {
	if c, ok := s.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

func isUnavailable(err error) bool {
	return errors.Is(err, ErrUnavailable)
}
