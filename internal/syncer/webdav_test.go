package syncer

import (
	"context"
	"errors"
	"io"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"daybook/internal/config"
)

type fakeWebDAV struct {
	statErr  error
	writeErr error
	// block, when set, stalls WriteStream until the channel is closed.
	block chan struct{}

	timeout time.Duration
	files   map[string]string
	renames [][2]string
	removed []string
}

func newFakeWebDAV() *fakeWebDAV {
	return &fakeWebDAV{files: map[string]string{}}
}

func (f *fakeWebDAV) Stat(path string) (os.FileInfo, error) {
	if f.statErr != nil {
		return nil, f.statErr
	}
	return nil, nil
}

func (f *fakeWebDAV) MkdirAll(string, os.FileMode) error { return nil }

func (f *fakeWebDAV) SetTimeout(d time.Duration) { f.timeout = d }

func (f *fakeWebDAV) WriteStream(path string, stream io.Reader, _ os.FileMode) error {
	if f.block != nil {
		<-f.block
	}
	if f.writeErr != nil {
		return f.writeErr
	}
	data, err := io.ReadAll(stream)
	if err != nil {
		return err
	}
	f.files[path] = string(data)
	return nil
}

func (f *fakeWebDAV) Rename(oldpath, newpath string, _ bool) error {
	f.renames = append(f.renames, [2]string{oldpath, newpath})
	f.files[newpath] = f.files[oldpath]
	delete(f.files, oldpath)
	return nil
}

func (f *fakeWebDAV) Remove(path string) error {
	f.removed = append(f.removed, path)
	delete(f.files, path)
	return nil
}

func newTestWebDAV(cfg config.WebDAVBackend, client *fakeWebDAV) *WebDAV {
	b := NewWebDAV(cfg)
	b.newClient = func() (webdavClient, error) { return client, nil }
	return b
}

func TestWebDAVTransferStagesThenRenames(t *testing.T) {
	archive := writeArchive(t, "dav bytes")
	fake := newFakeWebDAV()
	cfg := config.WebDAVBackend{Enabled: true, URL: "https://dav.example.com", Path: "daybook"}

	res, err := newTestWebDAV(cfg, fake).Transfer(context.Background(), archive)
	require.NoError(t, err)

	require.Len(t, fake.renames, 1)
	assert.Equal(t, "/daybook/daybook-backup.zip.part", fake.renames[0][0])
	assert.Equal(t, "/daybook/daybook-backup.zip", fake.renames[0][1])
	assert.Equal(t, "dav bytes", fake.files["/daybook/daybook-backup.zip"])
	assert.Equal(t, "https://dav.example.com/daybook/daybook-backup.zip", res.Destination)
}

func TestWebDAVTransferUploadFailureCleansStaging(t *testing.T) {
	archive := writeArchive(t, "x")
	fake := newFakeWebDAV()
	fake.writeErr = errors.New("broken pipe")
	cfg := config.WebDAVBackend{Enabled: true, URL: "https://dav.example.com"}

	_, err := newTestWebDAV(cfg, fake).Transfer(context.Background(), archive)
	require.Error(t, err)
	assert.Empty(t, fake.renames)
	assert.Contains(t, fake.removed, "/daybook-backup.zip.part")
}

func TestWebDAVTransferHonorsContextDeadline(t *testing.T) {
	archive := writeArchive(t, "x")
	fake := newFakeWebDAV()
	fake.block = make(chan struct{})
	defer close(fake.block)
	cfg := config.WebDAVBackend{Enabled: true, URL: "https://dav.example.com"}

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := newTestWebDAV(cfg, fake).Transfer(ctx, archive)
	require.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Positive(t, fake.timeout, "client timeout must follow the context deadline")
}

func TestWebDAVTransferHonorsCancellation(t *testing.T) {
	archive := writeArchive(t, "x")
	fake := newFakeWebDAV()
	fake.block = make(chan struct{})
	defer close(fake.block)
	cfg := config.WebDAVBackend{Enabled: true, URL: "https://dav.example.com"}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newTestWebDAV(cfg, fake).Transfer(ctx, archive)
	require.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, fake.renames, "a cancelled upload must never be finalized")
}

func TestWebDAVPreview(t *testing.T) {
	archive := writeArchive(t, "payload")
	cfg := config.WebDAVBackend{Enabled: true, URL: "https://dav.example.com", Path: "/daybook/"}

	t.Run("remote file exists", func(t *testing.T) {
		p, err := newTestWebDAV(cfg, newFakeWebDAV()).Preview(context.Background(), archive)
		require.NoError(t, err)
		assert.True(t, p.WouldOverwrite)
		assert.Equal(t, "https://dav.example.com/daybook/daybook-backup.zip", p.Destination)
	})

	t.Run("remote file missing", func(t *testing.T) {
		fake := newFakeWebDAV()
		fake.statErr = errors.New("404")
		p, err := newTestWebDAV(cfg, fake).Preview(context.Background(), archive)
		require.NoError(t, err)
		assert.False(t, p.WouldOverwrite)
	})
}

func TestWebDAVRequiresURL(t *testing.T) {
	b := NewWebDAV(config.WebDAVBackend{Enabled: true})
	_, err := b.Transfer(context.Background(), writeArchive(t, "x"))
	assert.Error(t, err)
}
