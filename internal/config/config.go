package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"daybook/internal/vault"
)

const (
	CurrentVersion = "2.0"

	defaultAlias = "daybook"
	defaultTone  = "friendly"

	BackendLocal  = "local"
	BackendS3     = "s3"
	BackendWebDAV = "webdav"
)

// Config is the persisted process-wide state. Known fields are enumerated
// below; anything else found in the document is kept in extra and written
// back verbatim on Save, so older binaries never drop fields added later.
type Config struct {
	Version  string     `json:"version"`
	Alias    string     `json:"alias"`
	Tone     string     `json:"tone"`
	Profile  Profile    `json:"profile"`
	Security Security   `json:"security"`
	Paths    Paths      `json:"paths"`
	Sync     SyncConfig `json:"sync"`

	extra map[string]json.RawMessage
}

type Profile struct {
	Name string `json:"name"`
	Goal string `json:"goal"`
}

type Security struct {
	PasswordEnabled   bool           `json:"password_enabled"`
	PasswordHash      string         `json:"password_hash,omitempty"`
	PasswordHint      string         `json:"password_hint,omitempty"`
	EncryptionEnabled bool           `json:"encryption_enabled"`
	Material          vault.Material `json:"key_material"`
}

type Paths struct {
	Root     string `json:"root"`
	Journal  string `json:"journal"`
	Snippets string `json:"snippets"`
	Backups  string `json:"backups"`
	Cache    string `json:"cache"`
}

// SyncConfig selects one backend and its safety gates. Non-local backends
// ship disabled and every backend defaults to dry-run, so a fresh install
// can never push data anywhere by accident.
type SyncConfig struct {
	Backend      string        `json:"backend"`
	DryRun       bool          `json:"dry_run"`
	RestorePoint bool          `json:"restore_point"`
	Local        LocalBackend  `json:"local"`
	S3           S3Backend     `json:"s3"`
	WebDAV       WebDAVBackend `json:"webdav"`
}

type LocalBackend struct {
	Enabled bool   `json:"enabled"`
	Path    string `json:"path,omitempty"`
}

type S3Backend struct {
	Enabled bool   `json:"enabled"`
	Bucket  string `json:"bucket,omitempty"`
	Prefix  string `json:"prefix,omitempty"`
	Region  string `json:"region,omitempty"`
	// Endpoint allows S3-compatible stores (MinIO etc.).
	Endpoint string `json:"endpoint,omitempty"`
	// Profile names a credentials profile resolved by the SDK; secrets are
	// never stored in this document.
	Profile string `json:"profile,omitempty"`
}

type WebDAVBackend struct {
	Enabled  bool   `json:"enabled"`
	URL      string `json:"url,omitempty"`
	Path     string `json:"path,omitempty"`
	Username string `json:"username,omitempty"`
	// PasswordEnv names the environment variable holding the password.
	PasswordEnv string `json:"password_env,omitempty"`
}

// Default returns the first-run configuration rooted at dir.
func Default(dir string) *Config {
	return &Config{
		Version: CurrentVersion,
		Alias:   defaultAlias,
		Tone:    defaultTone,
		Profile: Profile{Name: "Friend", Goal: "journal"},
		Security: Security{
			EncryptionEnabled: true,
		},
		Paths: Paths{
			Root:     dir,
			Journal:  filepath.Join(dir, "journal"),
			Snippets: filepath.Join(dir, "snippets"),
			Backups:  filepath.Join(dir, "backups"),
			Cache:    filepath.Join(dir, "cache"),
		},
		Sync: SyncConfig{
			Backend:      BackendLocal,
			DryRun:       true,
			RestorePoint: true,
			Local:        LocalBackend{Enabled: true},
		},
	}
}

// EnsureDirs creates every storage directory declared in the config.
func (c *Config) EnsureDirs() error {
	for _, dir := range []string{c.Paths.Root, c.Paths.Journal, c.Paths.Snippets, c.Paths.Backups, c.Paths.Cache} {
		if dir == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return fmt.Errorf("creating %s: %w", dir, err)
		}
	}
	return nil
}

// EncryptionActive reports whether new writes are encrypted: the encryption
// toggle alone does nothing until a password provides key material.
func (c *Config) EncryptionActive() bool {
	return c.Security.EncryptionEnabled && c.Security.PasswordEnabled
}

// BackendDescriptor returns the configured backend kind and whether it is
// enabled.
func (c *Config) BackendDescriptor() (kind string, enabled bool) {
	switch c.Sync.Backend {
	case BackendS3:
		return BackendS3, c.Sync.S3.Enabled
	case BackendWebDAV:
		return BackendWebDAV, c.Sync.WebDAV.Enabled
	default:
		return BackendLocal, c.Sync.Local.Enabled
	}
}

type knownConfig Config

var knownKeys = map[string]struct{}{
	"version": {}, "alias": {}, "tone": {}, "profile": {},
	"security": {}, "paths": {}, "sync": {},
}

// UnmarshalJSON decodes the known fields and stashes everything else so Save
// round-trips unknown keys untouched.
func (c *Config) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if err := json.Unmarshal(data, (*knownConfig)(c)); err != nil {
		return err
	}
	for key := range knownKeys {
		delete(raw, key)
	}
	if len(raw) > 0 {
		c.extra = raw
	}
	return nil
}

func (c *Config) MarshalJSON() ([]byte, error) {
	data, err := json.Marshal((*knownConfig)(c))
	if err != nil {
		return nil, err
	}
	if len(c.extra) == 0 {
		return data, nil
	}

	var merged map[string]json.RawMessage
	if err := json.Unmarshal(data, &merged); err != nil {
		return nil, err
	}
	for key, value := range c.extra {
		if _, known := knownKeys[key]; known {
			continue
		}
		merged[key] = value
	}
	return json.Marshal(merged)
}
