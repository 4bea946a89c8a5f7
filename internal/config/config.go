// Package config loads the YAML settings file.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/fluesternde/berggeist-theme/internal/appearance"
	"github.com/fluesternde/berggeist-theme/internal/storage"
	"github.com/fluesternde/berggeist-theme/internal/theme"
	"github.com/fluesternde/berggeist-theme/internal/types"
)

// Environment overrides.
const (
	EnvStorage    = "BERGGEIST_THEME_STORAGE"
	EnvAppearance = "BERGGEIST_APPEARANCE"
	EnvConfigDir  = "BERGGEIST_CONFIG_DIR"
)

type Config struct {
	Theme      types.ThemeConfig   `yaml:",inline"`
	Storage    types.StorageConfig `yaml:"storage"`
	Appearance string              `yaml:"appearance"`
	Debug      bool                `yaml:"debug"`
}

func Default() *Config {
	return &Config{
		Theme:      theme.DefaultConfig(),
		Storage:    types.StorageConfig{Backend: storage.BackendFile},
		Appearance: appearance.KindAuto,
	}
}

// Dir returns the config directory, honoring BERGGEIST_CONFIG_DIR.
func Dir() (string, error) {
	if dir := os.Getenv(EnvConfigDir); dir != "" {
		return dir, nil
	}
	base, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, "berggeist"), nil
}

// Path returns the default config file path.
func Path() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

// Load reads path (or the default path when empty). A missing file yields
// the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path == "" {
		p, err := Path()
		if err != nil {
			return nil, fmt.Errorf("resolve config path: %w", err)
		}
		path = p
	}

	// 1. Load from file
	f, err := os.Open(path)
	if err == nil {
		defer f.Close()
		if err := yaml.NewDecoder(f).Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	} else if !os.IsNotExist(err) {
		return nil, err
	}

	// 2. Override from Env
	if backend := os.Getenv(EnvStorage); backend != "" {
		cfg.Storage.Backend = backend
	}
	if kind := os.Getenv(EnvAppearance); kind != "" {
		cfg.Appearance = kind
	}

	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the theme settings and fills their defaults.
func Validate(cfg *Config) error {
	t, err := theme.WithDefaults(cfg.Theme)
	if err != nil {
		return fmt.Errorf("default_theme: %w", err)
	}
	cfg.Theme = t
	return nil
}

// Save writes cfg to path (or the default path when empty).
func Save(cfg *Config, path string) error {
	if path == "" {
		p, err := Path()
		if err != nil {
			return err
		}
		path = p
	}

	// Create directory if it doesn't exist
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer f.Close()

	encoder := yaml.NewEncoder(f)
	encoder.SetIndent(2)
	if err := encoder.Encode(cfg); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}
