package syncer

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"strings"
	"time"

	"github.com/studio-b12/gowebdav"

	"daybook/internal/config"
)

type webdavClient interface {
	Stat(path string) (os.FileInfo, error)
	MkdirAll(path string, perm os.FileMode) error
	WriteStream(path string, stream io.Reader, mode os.FileMode) error
	Rename(oldpath, newpath string, overwrite bool) error
	Remove(path string) error
}

// WebDAV uploads archives to a WebDAV share. The account password comes from
// the environment variable named in the config, never from the config file
// itself.
type WebDAV struct {
	cfg config.WebDAVBackend

	// newClient is swappable in tests.
	newClient func() (webdavClient, error)
}

func NewWebDAV(cfg config.WebDAVBackend) *WebDAV {
	b := &WebDAV{cfg: cfg}
	b.newClient = b.defaultClient
	return b
}

func (b *WebDAV) Kind() string { return config.BackendWebDAV }

func (b *WebDAV) defaultClient() (webdavClient, error) {
	if b.cfg.URL == "" {
		return nil, fmt.Errorf("webdav url is not configured")
	}
	password := ""
	if b.cfg.PasswordEnv != "" {
		password = os.Getenv(b.cfg.PasswordEnv)
	}
	return gowebdav.NewClient(b.cfg.URL, b.cfg.Username, password), nil
}

func (b *WebDAV) remotePath(archivePath string) string {
	dir := "/" + strings.Trim(b.cfg.Path, "/")
	return path.Join(dir, archiveName(archivePath))
}

func (b *WebDAV) destination(archivePath string) string {
	return strings.TrimRight(b.cfg.URL, "/") + b.remotePath(archivePath)
}

func (b *WebDAV) Preview(_ context.Context, archivePath string) (Preview, error) {
	size, err := archiveSize(archivePath)
	if err != nil {
		return Preview{}, err
	}

	p := Preview{
		Backend:     b.Kind(),
		Destination: b.destination(archivePath),
		Size:        size,
	}

	client, err := b.newClient()
	if err != nil {
		return Preview{}, err
	}
	_, statErr := client.Stat(b.remotePath(archivePath))
	p.WouldOverwrite = statErr == nil
	return p, nil
}

// Transfer streams to a staging name on the share and renames it into place,
// so a dropped connection never leaves a truncated upload at the final name.
// A context deadline bounds the whole upload; an abandoned staging file is
// overwritten by the next transfer.
func (b *WebDAV) Transfer(ctx context.Context, archivePath string) (Result, error) {
	size, err := archiveSize(archivePath)
	if err != nil {
		return Result{}, err
	}

	client, err := b.newClient()
	if err != nil {
		return Result{}, err
	}
	// gowebdav takes a wall-clock timeout rather than a context.
	if deadline, ok := ctx.Deadline(); ok {
		if ts, ok := client.(interface{ SetTimeout(time.Duration) }); ok {
			ts.SetTimeout(time.Until(deadline))
		}
	}

	remote := b.remotePath(archivePath)
	staging := remote + ".part"

	done := make(chan error, 1)
	go func() { done <- b.upload(client, archivePath, staging, remote) }()

	select {
	case <-ctx.Done():
		return Result{}, ctx.Err()
	case err := <-done:
		if err != nil {
			return Result{}, err
		}
	}

	return Result{Backend: b.Kind(), Destination: b.destination(archivePath), Size: size}, nil
}

func (b *WebDAV) upload(client webdavClient, archivePath, staging, remote string) error {
	if err := client.MkdirAll(path.Dir(remote), 0o755); err != nil {
		return fmt.Errorf("creating remote dir: %w", err)
	}

	f, err := os.Open(archivePath)
	if err != nil {
		return fmt.Errorf("opening archive: %w", err)
	}
	defer f.Close()

	if err := client.WriteStream(staging, f, 0o644); err != nil {
		client.Remove(staging)
		return fmt.Errorf("uploading to %s: %w", staging, err)
	}

	if err := client.Rename(staging, remote, true); err != nil {
		client.Remove(staging)
		return fmt.Errorf("finalizing %s: %w", remote, err)
	}
	return nil
}
