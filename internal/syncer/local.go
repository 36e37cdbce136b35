package syncer

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"daybook/internal/config"
	"daybook/internal/fsx"
)

// Local copies archives into a directory on the same machine.
type Local struct {
	dir string
}

func NewLocal(dir string) *Local {
	return &Local{dir: dir}
}

func (l *Local) Kind() string { return config.BackendLocal }

func (l *Local) destination(archivePath string) string {
	return filepath.Join(l.dir, archiveName(archivePath))
}

func (l *Local) Preview(_ context.Context, archivePath string) (Preview, error) {
	size, err := archiveSize(archivePath)
	if err != nil {
		return Preview{}, err
	}
	dst := l.destination(archivePath)
	_, statErr := os.Stat(dst)
	return Preview{
		Backend:        l.Kind(),
		Destination:    dst,
		Size:           size,
		WouldOverwrite: statErr == nil,
	}, nil
}

// Transfer copies through a temp file in the destination directory and
// renames it into place, so a killed copy never leaves a truncated file that
// looks like a finished backup.
func (l *Local) Transfer(ctx context.Context, archivePath string) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	size, err := archiveSize(archivePath)
	if err != nil {
		return Result{}, err
	}

	dst := l.destination(archivePath)
	if err := fsx.CopyFile(archivePath, dst, 0o600); err != nil {
		return Result{}, fmt.Errorf("copying archive: %w", err)
	}

	return Result{Backend: l.Kind(), Destination: dst, Size: size}, nil
}
