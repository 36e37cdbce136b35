package snippet

import (
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slog"

	"daybook/internal/vault"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

func plainStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewStore(t.TempDir(), false, testLogger())
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func encryptedStore(t *testing.T) (*Store, *vault.Key) {
	t.Helper()
	_, key, err := vault.NewMaterial("correct-horse")
	require.NoError(t, err)
	s, err := NewStore(t.TempDir(), true, testLogger())
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s, key
}

func TestAppendAndList(t *testing.T) {
	s := plainStore(t)

	saved, err := s.Append(Snippet{Language: "go", Category: CategoryTip, Text: "prefer errors.Is"}, nil)
	require.NoError(t, err)
	assert.NotEmpty(t, saved.ID)
	assert.Equal(t, SourceManual, saved.Source)
	assert.False(t, saved.CreatedAt.IsZero())

	got, err := s.List(Filter{}, nil)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "prefer errors.Is", got[0].Text)
}

func TestAppendRejectsInvalidCategory(t *testing.T) {
	s := plainStore(t)

	_, err := s.Append(Snippet{Language: "go", Category: "joke", Text: "x"}, nil)
	assert.ErrorIs(t, err, ErrInvalidCategory)
}

func TestListFilters(t *testing.T) {
	s := plainStore(t)
	for _, sn := range []Snippet{
		{Language: "go", Category: CategoryTip, Text: "a"},
		{Language: "go", Category: CategoryError, Text: "b"},
		{Language: "python", Category: CategoryTip, Text: "c"},
	} {
		_, err := s.Append(sn, nil)
		require.NoError(t, err)
	}

	tests := []struct {
		name   string
		filter Filter
		want   int
	}{
		{"all", Filter{}, 3},
		{"by language", Filter{Language: "go"}, 2},
		{"by category", Filter{Category: CategoryTip}, 2},
		{"both", Filter{Language: "go", Category: CategoryTip}, 1},
		{"limit", Filter{Limit: 2}, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := s.List(tt.filter, nil)
			require.NoError(t, err)
			assert.Len(t, got, tt.want)
		})
	}
}

func TestEncryptedSnippets(t *testing.T) {
	s, key := encryptedStore(t)

	saved, err := s.Append(Snippet{Language: "go", Category: CategoryExample, Text: "private knowledge"}, key)
	require.NoError(t, err)
	assert.True(t, saved.Encrypted)

	got, err := s.List(Filter{}, key)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "private knowledge", got[0].Text)

	// Without the key the store refuses rather than returning ciphertext.
	_, err = s.List(Filter{}, nil)
	assert.ErrorIs(t, err, vault.ErrLocked)

	_, err = s.Append(Snippet{Language: "go", Category: CategoryTip, Text: "x"}, nil)
	assert.ErrorIs(t, err, vault.ErrLocked)
}

func TestImport(t *testing.T) {
	s := plainStore(t)

	payload := `[
		{"language": "go", "category": "tip", "text": "use context"},
		{"language": "go", "category": "error", "text": "nil map write"}
	]`
	n, err := s.Import(strings.NewReader(payload), nil)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	got, err := s.List(Filter{}, nil)
	require.NoError(t, err)
	require.Len(t, got, 2)
	for _, sn := range got {
		assert.Equal(t, SourceImported, sn.Source)
	}
}

func TestImportStopsOnInvalidRecord(t *testing.T) {
	s := plainStore(t)

	payload := `[
		{"language": "go", "category": "tip", "text": "fine"},
		{"language": "go", "category": "nonsense", "text": "bad"}
	]`
	n, err := s.Import(strings.NewReader(payload), nil)
	assert.ErrorIs(t, err, ErrInvalidCategory)
	assert.Equal(t, 1, n)
}

func TestStoreReopens(t *testing.T) {
	dir := t.TempDir()
	s, err := NewStore(dir, false, testLogger())
	require.NoError(t, err)
	_, err = s.Append(Snippet{Language: "go", Category: CategoryTip, Text: "persisted"}, nil)
	require.NoError(t, err)
	require.NoError(t, s.Close())

	again, err := NewStore(dir, false, testLogger())
	require.NoError(t, err)
	defer again.Close()

	n, err := again.Count()
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}
