package storage

import (
	"path/filepath"

	"github.com/fluesternde/berggeist-theme/internal/core"
	"github.com/fluesternde/berggeist-theme/internal/types"
)

// Backend names accepted by Open.
const (
	BackendFile    = "file"
	BackendMemory  = "memory"
	BackendKeyring = "keyring"
	BackendSQLite  = "sqlite"
	BackendMongo   = "mongo"
)

// Open builds the store described by cfg. Relative paths resolve against
// configDir.
func Open(cfg types.StorageConfig, configDir string) (Store, error) {
	switch cfg.Backend {
	case "", BackendFile:
		path := cfg.Path
		if path == "" {
			path = PreferencesFile(configDir)
		}
		return NewFileStore(resolvePath(path, configDir)), nil
	case BackendMemory:
		return NewMemoryStore(), nil
	case BackendKeyring:
		return NewKeyringStore(""), nil
	case BackendSQLite:
		path := cfg.Path
		if path == "" {
			path = "preferences.db"
		}
		return NewSQLiteStore(resolvePath(path, configDir))
	case BackendMongo:
		uri := cfg.MongoURI
		if uri == "" {
			uri = "mongodb://localhost:27017"
		}
		return NewMongoStore(uri, cfg.Database, cfg.Collection)
	}
	return nil, &core.UnknownBackendError{Backend: cfg.Backend}
}

func resolvePath(path, configDir string) string {
	if filepath.IsAbs(path) || configDir == "" {
		return path
	}
	return filepath.Join(configDir, path)
}
