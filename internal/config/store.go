package config

import (
	"encoding/json"
	"fmt"
	"os"

	"golang.org/x/exp/slog"

	"daybook/internal/fsx"
	"daybook/internal/vault"
)

const filePermissions = 0o600

// Store loads and persists the config document at a fixed path. It is the
// sole owner of the password hash and key-derivation material.
type Store struct {
	path string
	root string
	log  *slog.Logger
}

func NewStore(path, storageRoot string, log *slog.Logger) *Store {
	return &Store{path: path, root: storageRoot, log: log}
}

func (s *Store) Path() string {
	return s.path
}

// Load reads the config document. A missing file falls back to defaults with
// a warning; a file that exists but does not parse is ErrCorrupt and is never
// papered over.
func (s *Store) Load() (*Config, error) {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		s.log.Warn("config not found, using defaults", "path", s.path)
		return Default(s.root), nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	cfg := Default(s.root)
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	return cfg, nil
}

// Save writes the document atomically so a crash mid-write never leaves a
// half-written config behind.
func (s *Store) Save(cfg *Config) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	if err := fsx.WriteFileAtomic(s.path, data, filePermissions); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}
	return nil
}

// SetPassword enables the password lock: new salt and seed, slow hash, fresh
// verifier. The returned key belongs to the new password; any previously
// cached session key must be dropped by the caller.
func (s *Store) SetPassword(cfg *Config, password, hint string) (*vault.Key, error) {
	hash, err := vault.HashPassword(password)
	if err != nil {
		return nil, err
	}
	mat, key, err := vault.NewMaterial(password)
	if err != nil {
		return nil, err
	}

	cfg.Security.PasswordEnabled = true
	cfg.Security.PasswordHash = hash
	cfg.Security.PasswordHint = hint
	cfg.Security.Material = mat

	if err := s.Save(cfg); err != nil {
		return nil, err
	}
	return key, nil
}

// DisablePassword removes the lock and the derivation material.
func (s *Store) DisablePassword(cfg *Config) error {
	cfg.Security.PasswordEnabled = false
	cfg.Security.PasswordHash = ""
	cfg.Security.PasswordHint = ""
	cfg.Security.Material = vault.Material{}
	return s.Save(cfg)
}

// VerifyPassword checks the password against the stored hash.
func (s *Store) VerifyPassword(cfg *Config, password string) bool {
	if !cfg.Security.PasswordEnabled || cfg.Security.PasswordHash == "" {
		return false
	}
	return vault.VerifyPassword(cfg.Security.PasswordHash, password)
}
