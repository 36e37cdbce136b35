package app

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slog"

	"daybook/internal/config"
	"daybook/internal/journal"
	"daybook/internal/vault"
)

func newTestApp(t *testing.T) *App {
	t.Helper()
	dir := t.TempDir()
	rt := &config.Runtime{
		Env:        config.EnvLocal,
		ConfigPath: filepath.Join(dir, "config.json"),
		StorageDir: dir,
	}
	log := slog.New(slog.NewTextHandler(io.Discard, nil))

	a, err := New(rt, log)
	require.NoError(t, err)
	t.Cleanup(a.Close)
	return a
}

func TestNewCreatesStorageTree(t *testing.T) {
	a := newTestApp(t)

	for _, dir := range []string{
		a.Cfg.Paths.Journal,
		a.Cfg.Paths.Snippets,
		a.Cfg.Paths.Backups,
		a.Cfg.Paths.Cache,
	} {
		info, err := os.Stat(dir)
		require.NoError(t, err)
		assert.True(t, info.IsDir())
	}
}

func TestUnlockRequiresPasswordProtection(t *testing.T) {
	a := newTestApp(t)
	err := a.Unlock("anything")
	assert.ErrorIs(t, err, ErrPasswordDisabled)
}

func TestSetPasswordThenUnlock(t *testing.T) {
	a := newTestApp(t)

	require.NoError(t, a.SetPassword("correct horse", "a hint"))
	assert.Nil(t, a.Key(), "setting a password must not leave a cached key")

	assert.ErrorIs(t, a.Unlock("wrong"), vault.ErrWrongPassword)
	assert.Nil(t, a.Key())

	require.NoError(t, a.Unlock("correct horse"))
	assert.NotNil(t, a.Key())
}

func TestSetPasswordInvalidatesSessionKey(t *testing.T) {
	a := newTestApp(t)

	require.NoError(t, a.SetPassword("first", ""))
	require.NoError(t, a.Unlock("first"))
	require.NotNil(t, a.Key())

	require.NoError(t, a.SetPassword("second", ""))
	assert.Nil(t, a.Key())

	assert.ErrorIs(t, a.Unlock("first"), vault.ErrWrongPassword)
	require.NoError(t, a.Unlock("second"))
}

func TestDefaultModeStoresPlaintext(t *testing.T) {
	a := newTestApp(t)

	// Encryption is on by default but there is no key material until a
	// password exists, so first-run writes stay plaintext.
	e, err := a.Journal.Append(journal.Entry{Type: journal.TypeDiary, Content: "no password yet"}, a.Key())
	require.NoError(t, err)
	assert.False(t, e.Encrypted)
}

func TestPasswordEnablesEncryptedWrites(t *testing.T) {
	a := newTestApp(t)

	require.NoError(t, a.SetPassword("pw", ""))
	require.NoError(t, a.Unlock("pw"))

	e, err := a.Journal.Append(journal.Entry{Type: journal.TypeDiary, Content: "now private"}, a.Key())
	require.NoError(t, err)
	assert.True(t, e.Encrypted)
}

func TestBackupAndLatestBackup(t *testing.T) {
	a := newTestApp(t)
	require.NoError(t, a.SetPassword("pw", ""))
	require.NoError(t, a.Unlock("pw"))

	_, err := a.Journal.Append(journal.Entry{Type: journal.TypeDiary, Content: "kept"}, a.Key())
	require.NoError(t, err)

	path, man, err := a.Backup()
	require.NoError(t, err)
	assert.FileExists(t, path)
	assert.True(t, man.Protected)

	latest, err := a.LatestBackup()
	require.NoError(t, err)
	assert.Equal(t, path, latest)
}

func TestLatestBackupEmpty(t *testing.T) {
	a := newTestApp(t)
	_, err := a.LatestBackup()
	assert.Error(t, err)
}

func TestSyncNowDryRunByDefault(t *testing.T) {
	a := newTestApp(t)

	res, err := a.SyncNow(context.Background(), "")
	require.NoError(t, err)
	assert.True(t, res.DryRun)

	// The implicit backup exists, but nothing was copied to a destination
	// other than the backups directory itself.
	entries, err := os.ReadDir(a.Cfg.Paths.Backups)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestRestoreRoundTrip(t *testing.T) {
	src := newTestApp(t)
	require.NoError(t, src.SetPassword("pw", ""))
	require.NoError(t, src.Unlock("pw"))

	entry, err := src.Journal.Append(journal.Entry{Type: journal.TypeNotes, Content: "restore me"}, src.Key())
	require.NoError(t, err)

	path, _, err := src.Backup()
	require.NoError(t, err)

	dst := newTestApp(t)
	_, err = dst.Restore(path)
	require.NoError(t, err)

	// The payload includes the config document, so the restored tree carries
	// the source's key material and the source password opens it.
	restoredCfg, err := dst.Store.Load()
	require.NoError(t, err)
	assert.True(t, restoredCfg.Security.PasswordEnabled)

	key, err := vault.NewManager().Unlock("pw", restoredCfg.Security.Material)
	require.NoError(t, err)

	got, err := dst.Journal.Get(entry.ID, key)
	require.NoError(t, err)
	assert.Equal(t, "restore me", got.Content)
}
