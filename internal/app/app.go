// Package app wires the stores, the key manager and the engines into one
// application object shared by the CLI and the local web API.
package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"golang.org/x/exp/slog"

	"daybook/internal/archive"
	"daybook/internal/config"
	"daybook/internal/journal"
	"daybook/internal/snippet"
	"daybook/internal/syncer"
	"daybook/internal/vault"
)

var ErrPasswordDisabled = errors.New("password protection is not enabled")

type App struct {
	Runtime  *config.Runtime
	Cfg      *config.Config
	Store    *config.Store
	Keys     *vault.Manager
	Journal  *journal.Store
	Snippets *snippet.Store
	Builder  *archive.Builder
	Restorer *archive.Engine
	Syncer   *syncer.Engine
	Log      *slog.Logger
}

func New(rt *config.Runtime, log *slog.Logger) (*App, error) {
	store := config.NewStore(rt.ConfigPath, rt.StorageDir, log)
	cfg, err := store.Load()
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	if err := cfg.EnsureDirs(); err != nil {
		return nil, err
	}

	a := &App{
		Runtime:  rt,
		Cfg:      cfg,
		Store:    store,
		Keys:     vault.NewManager(),
		Builder:  archive.NewBuilder(log),
		Restorer: archive.NewEngine(log),
		Syncer:   syncer.New(cfg.Paths.Backups, log),
		Log:      log,
	}
	if err := a.openStores(); err != nil {
		return nil, err
	}
	return a, nil
}

func (a *App) openStores() error {
	js, err := journal.NewStore(a.Cfg.Paths.Journal, a.Cfg.EncryptionActive(), a.Log)
	if err != nil {
		return fmt.Errorf("opening journal: %w", err)
	}
	ss, err := snippet.NewStore(a.Cfg.Paths.Snippets, a.Cfg.EncryptionActive(), a.Log)
	if err != nil {
		return fmt.Errorf("opening snippet store: %w", err)
	}
	a.Journal = js
	a.Snippets = ss
	return nil
}

// reopenStores picks up a changed encryption mode after password changes.
func (a *App) reopenStores() error {
	if a.Snippets != nil {
		if err := a.Snippets.Close(); err != nil {
			a.Log.Warn("closing snippet store", "error", err)
		}
	}
	return a.openStores()
}

func (a *App) Close() {
	if a.Snippets != nil {
		if err := a.Snippets.Close(); err != nil {
			a.Log.Warn("closing snippet store", "error", err)
		}
	}
}

// Key returns the session key, or nil while the vault is locked. Stores
// treat a nil key as "plaintext only".
func (a *App) Key() *vault.Key {
	key, err := a.Keys.CurrentKey()
	if err != nil {
		return nil
	}
	return key
}

// Unlock derives the session key from the password. The derivation is slow
// on purpose; the result lives only in memory.
func (a *App) Unlock(password string) error {
	if !a.Cfg.Security.PasswordEnabled {
		return ErrPasswordDisabled
	}
	if _, err := a.Keys.Unlock(password, a.Cfg.Security.Material); err != nil {
		return err
	}
	a.Log.Debug("vault unlocked")
	return nil
}

// LockVault drops the session key.
func (a *App) LockVault() {
	a.Keys.Lock()
}

func (a *App) Locked() bool {
	return a.Keys.IsLocked()
}

// SetPassword enables protection or rotates the password. Either way the
// cached session key is invalidated; callers unlock again with the new
// password.
func (a *App) SetPassword(password, hint string) error {
	if _, err := a.Store.SetPassword(a.Cfg, password, hint); err != nil {
		return err
	}
	a.Keys.Lock()
	return a.reopenStores()
}

func (a *App) DisablePassword() error {
	if err := a.Store.DisablePassword(a.Cfg); err != nil {
		return err
	}
	a.Keys.Lock()
	return a.reopenStores()
}

// Backup builds a timestamped archive in the backups directory and returns
// its path.
func (a *App) Backup() (string, archive.Manifest, error) {
	name := fmt.Sprintf("daybook-%s.zip", time.Now().Format("20060102-150405"))
	out := filepath.Join(a.Cfg.Paths.Backups, name)

	man, err := a.Builder.Build(a.Cfg.Paths.Root, out, archive.Options{
		IncludeRestorePoint: a.Cfg.Sync.RestorePoint,
		Protected:           a.Cfg.EncryptionActive(),
	})
	if err != nil {
		return "", archive.Manifest{}, err
	}
	return out, man, nil
}

// Restore replaces the storage tree with the archive contents. The snippet
// database is closed around the swap and both stores are reopened from the
// restored files.
func (a *App) Restore(archivePath string) (archive.Manifest, error) {
	if err := a.Snippets.Close(); err != nil {
		a.Log.Warn("closing snippet store before restore", "error", err)
	}

	man, err := a.Restorer.Restore(archivePath, a.Cfg.Paths.Root)
	if err != nil {
		// The target tree is untouched on failure; reopen what we closed.
		if openErr := a.openStores(); openErr != nil {
			return archive.Manifest{}, openErr
		}
		return archive.Manifest{}, err
	}

	if err := a.openStores(); err != nil {
		return archive.Manifest{}, err
	}
	return man, nil
}

// SyncNow delivers an archive to the configured backend. With an empty path
// it backs up first and syncs the fresh archive.
func (a *App) SyncNow(ctx context.Context, archivePath string) (syncer.Result, error) {
	if archivePath == "" {
		var err error
		archivePath, _, err = a.Backup()
		if err != nil {
			return syncer.Result{}, err
		}
	}
	return a.Syncer.Sync(ctx, a.Cfg.Sync, archivePath)
}

// LatestBackup returns the newest archive in the backups directory.
func (a *App) LatestBackup() (string, error) {
	entries, err := os.ReadDir(a.Cfg.Paths.Backups)
	if err != nil {
		return "", err
	}

	var archives []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".zip") {
			archives = append(archives, e.Name())
		}
	}
	if len(archives) == 0 {
		return "", fmt.Errorf("no backup archives in %s", a.Cfg.Paths.Backups)
	}

	// Timestamped names sort chronologically.
	sort.Strings(archives)
	return filepath.Join(a.Cfg.Paths.Backups, archives[len(archives)-1]), nil
}
