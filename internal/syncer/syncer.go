// Package syncer delivers backup archives to a configured backend under
// safety gates: disabled backends fail fast and dry-run is the default.
package syncer

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/exp/slog"

	"daybook/internal/config"
)

// Preview describes exactly what a transfer would do, without doing it.
type Preview struct {
	Backend        string `json:"backend"`
	Destination    string `json:"destination"`
	Size           int64  `json:"size"`
	WouldOverwrite bool   `json:"would_overwrite"`
}

// Result is the outcome of a sync invocation.
type Result struct {
	Backend     string `json:"backend"`
	Destination string `json:"destination"`
	Size        int64  `json:"size"`
	DryRun      bool   `json:"dry_run"`
}

// Backend is the closed contract every destination implements. Transfer must
// stage first and finalize only on full success, so a partial upload never
// looks like a complete object.
type Backend interface {
	Kind() string
	Preview(ctx context.Context, archivePath string) (Preview, error)
	Transfer(ctx context.Context, archivePath string) (Result, error)
}

// Engine drives one sync invocation: validate the descriptor, then either
// preview (dry run) or execute.
type Engine struct {
	log *slog.Logger
	// defaultLocalDir receives local-backend copies when no explicit path is
	// configured; usually <root>/backups.
	defaultLocalDir string
}

func New(defaultLocalDir string, log *slog.Logger) *Engine {
	return &Engine{log: log, defaultLocalDir: defaultLocalDir}
}

// Sync delivers the archive according to the sync configuration. With
// DryRun set it reports the would-be transfer and guarantees no write
// outside the local archive. Transport failures and context timeouts come
// back wrapped in ErrSyncFailed.
func (e *Engine) Sync(ctx context.Context, cfg config.SyncConfig, archivePath string) (Result, error) {
	backend, enabled, err := e.backendFor(cfg)
	if err != nil {
		return Result{}, err
	}
	if !enabled {
		return Result{}, fmt.Errorf("%s: %w", backend.Kind(), ErrBackendDisabled)
	}

	if _, err := os.Stat(archivePath); err != nil {
		return Result{}, fmt.Errorf("archive %s: %w", archivePath, err)
	}

	if cfg.DryRun {
		p, err := backend.Preview(ctx, archivePath)
		if err != nil {
			return Result{}, fmt.Errorf("%w: %v", ErrSyncFailed, err)
		}
		e.log.Info("dry run, nothing transferred",
			"backend", p.Backend, "destination", p.Destination,
			"size", p.Size, "would_overwrite", p.WouldOverwrite)
		return Result{Backend: p.Backend, Destination: p.Destination, Size: p.Size, DryRun: true}, nil
	}

	res, err := backend.Transfer(ctx, archivePath)
	if err != nil {
		if ctx.Err() != nil {
			return Result{}, fmt.Errorf("%w: %v", ErrSyncFailed, ctx.Err())
		}
		return Result{}, fmt.Errorf("%w: %v", ErrSyncFailed, err)
	}

	e.log.Info("archive transferred", "backend", res.Backend, "destination", res.Destination, "size", res.Size)
	return res, nil
}

func (e *Engine) backendFor(cfg config.SyncConfig) (Backend, bool, error) {
	switch cfg.Backend {
	case config.BackendLocal, "":
		dir := cfg.Local.Path
		if dir == "" {
			dir = e.defaultLocalDir
		}
		return NewLocal(dir), cfg.Local.Enabled, nil
	case config.BackendS3:
		return NewS3(cfg.S3), cfg.S3.Enabled, nil
	case config.BackendWebDAV:
		return NewWebDAV(cfg.WebDAV), cfg.WebDAV.Enabled, nil
	default:
		return nil, false, fmt.Errorf("%w: %s", ErrUnknownBackend, cfg.Backend)
	}
}

func archiveSize(archivePath string) (int64, error) {
	info, err := os.Stat(archivePath)
	if err != nil {
		return 0, err
	}
	return info.Size(), nil
}

func archiveName(archivePath string) string {
	return filepath.Base(archivePath)
}
