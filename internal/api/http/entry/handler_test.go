package entry

import (
	"context"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slog"

	"daybook/internal/journal"
	"daybook/internal/vault"
)

type staticKeys struct {
	key *vault.Key
}

func (s staticKeys) Key() *vault.Key { return s.key }

func newTestHandler(t *testing.T, encrypt bool) (*Handler, *journal.Store, *vault.Key) {
	t.Helper()
	log := slog.New(slog.NewTextHandler(io.Discard, nil))

	store, err := journal.NewStore(t.TempDir(), encrypt, log)
	require.NoError(t, err)

	var key *vault.Key
	if encrypt {
		_, k, err := vault.NewMaterial("handler test password")
		require.NoError(t, err)
		key = k
	}

	return NewHandler(store, staticKeys{key: key}, log, nil), store, key
}

func TestHandlerCreateAndList(t *testing.T) {
	h, _, _ := newTestHandler(t, false)
	ctx := context.Background()

	created, err := h.create(ctx, &createInput{Body: createRequest{
		Type:    "diary",
		Content: "first entry",
		Tags:    []string{"mood"},
	}})
	require.NoError(t, err)
	assert.NotEmpty(t, created.Body.ID)
	assert.Equal(t, "Ok", created.Body.Status)

	out, err := h.list(ctx, &listInput{})
	require.NoError(t, err)
	require.Equal(t, 1, out.Body.Count)
	assert.Equal(t, "first entry", out.Body.Entries[0].Content)
	assert.Empty(t, out.Body.Entries[0].Error)
}

func TestHandlerCreateInvalidType(t *testing.T) {
	h, _, _ := newTestHandler(t, false)

	_, err := h.create(context.Background(), &createInput{Body: createRequest{
		Type:    "memoir",
		Content: "x",
	}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "memoir")
}

func TestHandlerCreateLockedVault(t *testing.T) {
	h, _, _ := newTestHandler(t, true)

	// Encrypted store, nil key: the handler reports a conflict instead of
	// storing plaintext.
	h.keys = staticKeys{key: nil}
	_, err := h.create(context.Background(), &createInput{Body: createRequest{
		Type:    "diary",
		Content: "secret",
	}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "locked")
}

func TestHandlerListTagFilter(t *testing.T) {
	h, _, _ := newTestHandler(t, false)
	ctx := context.Background()

	for _, e := range []createRequest{
		{Type: "diary", Content: "tagged", Tags: []string{"work"}},
		{Type: "notes", Content: "untagged"},
	} {
		_, err := h.create(ctx, &createInput{Body: e})
		require.NoError(t, err)
	}

	out, err := h.list(ctx, &listInput{Tag: "work"})
	require.NoError(t, err)
	require.Equal(t, 1, out.Body.Count)
	assert.Equal(t, "tagged", out.Body.Entries[0].Content)
}

func TestHandlerListSurfacesDecryptFailures(t *testing.T) {
	h, store, key := newTestHandler(t, true)
	ctx := context.Background()

	_, err := store.Append(journal.Entry{Type: journal.TypeDiary, Content: "readable"}, key)
	require.NoError(t, err)

	// A key derived from a different password cannot open the entry.
	_, wrongKey, err := vault.NewMaterial("another password")
	require.NoError(t, err)
	h.keys = staticKeys{key: wrongKey}

	out, err := h.list(ctx, &listInput{})
	require.NoError(t, err)
	require.Equal(t, 1, out.Body.Count)
	assert.Empty(t, out.Body.Entries[0].Content)
	assert.NotEmpty(t, out.Body.Entries[0].Error)
	assert.NotEmpty(t, out.Body.Entries[0].ID, "metadata survives a decrypt failure")
}

func TestHandlerExport(t *testing.T) {
	h, _, _ := newTestHandler(t, false)
	ctx := context.Background()

	_, err := h.create(ctx, &createInput{Body: createRequest{Type: "quote", Content: "exported line"}})
	require.NoError(t, err)

	out, err := h.export(ctx, &exportInput{Format: "markdown"})
	require.NoError(t, err)
	assert.Equal(t, "markdown", out.Body.Format)
	assert.Contains(t, out.Body.Data, "exported line")

	_, err = h.export(ctx, &exportInput{Format: "pdf"})
	require.Error(t, err)
}

func TestHandlerSearch(t *testing.T) {
	h, _, _ := newTestHandler(t, false)
	ctx := context.Background()

	_, err := h.create(ctx, &createInput{Body: createRequest{Type: "diary", Content: "walked the dog", Tags: []string{"pets"}}})
	require.NoError(t, err)
	_, err = h.create(ctx, &createInput{Body: createRequest{Type: "diary", Content: "wrote code"}})
	require.NoError(t, err)

	out, err := h.search(ctx, &searchInput{Query: "dog"})
	require.NoError(t, err)
	assert.Equal(t, 1, out.Body.Count)

	out, err = h.search(ctx, &searchInput{Query: "#pets"})
	require.NoError(t, err)
	assert.Equal(t, 1, out.Body.Count)
}

func TestHandlerTags(t *testing.T) {
	h, _, _ := newTestHandler(t, false)
	ctx := context.Background()

	created, err := h.create(ctx, &createInput{Body: createRequest{Type: "todo", Content: "buy milk", Tags: []string{"errands"}}})
	require.NoError(t, err)

	out, err := h.tags(ctx, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{created.Body.ID}, out.Body.Tags["errands"])
}
