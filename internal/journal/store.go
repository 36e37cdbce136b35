package journal

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"iter"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"
	"golang.org/x/exp/slog"

	"daybook/internal/fsx"
	"daybook/internal/vault"
)

const (
	indexName = "journal.json"
	lockName  = "journal.lock"

	filePermissions = 0o600
)

// index is the on-disk document: an ordered list of entries plus a
// tag -> entry-id lookup kept consistent with it.
type index struct {
	Entries []Entry             `json:"entries"`
	Tags    map[string][]string `json:"tags"`
}

// Store is the durable journal. Writers from different processes are
// serialized with an advisory file lock; readers never take it and see the
// last fully-committed index thanks to atomic replace on write.
type Store struct {
	dir     string
	encrypt bool
	log     *slog.Logger
	lock    *flock.Flock
}

// NewStore opens (or lazily creates) the journal under dir. encrypt is the
// store-wide write mode; entries already on disk keep whatever mode produced
// them.
func NewStore(dir string, encrypt bool, log *slog.Logger) (*Store, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("creating journal dir: %w", err)
	}
	return &Store{
		dir:     dir,
		encrypt: encrypt,
		log:     log,
		lock:    flock.New(filepath.Join(dir, lockName)),
	}, nil
}

func (s *Store) IndexPath() string {
	return filepath.Join(s.dir, indexName)
}

// Encrypted reports the store-wide write mode.
func (s *Store) Encrypted() bool {
	return s.encrypt
}

// Append stores a new entry, encrypting its content first when the store is
// in encrypted mode. The entry comes back with its assigned id and stamp.
func (s *Store) Append(e Entry, key *vault.Key) (Entry, error) {
	if err := e.Type.Validate(); err != nil {
		return Entry{}, err
	}

	e.ID = uuid.NewString()
	if e.Date == "" || e.Time == "" {
		e.Date, e.Time = stampNow(time.Now())
	}

	if s.encrypt {
		if key == nil {
			return Entry{}, vault.ErrLocked
		}
		blob, err := vault.Encrypt(key, []byte(e.Content))
		if err != nil {
			return Entry{}, fmt.Errorf("encrypting entry: %w", err)
		}
		e.Content = base64.StdEncoding.EncodeToString(blob)
		e.Encrypted = true
	}

	if err := s.lock.Lock(); err != nil {
		return Entry{}, fmt.Errorf("locking journal: %w", err)
	}
	defer s.lock.Unlock()

	idx, err := s.load()
	if err != nil {
		return Entry{}, err
	}

	idx.Entries = append(idx.Entries, e)
	for _, tag := range e.Tags {
		idx.Tags[tag] = append(idx.Tags[tag], e.ID)
	}

	if err := s.save(idx); err != nil {
		return Entry{}, err
	}

	s.log.Debug("entry appended", "id", e.ID, "type", e.Type, "encrypted", e.Encrypted)
	return e, nil
}

// List yields entries in insertion order with content already decrypted. A
// per-entry decrypt failure is yielded alongside the entry metadata, never
// swallowed and never turned into empty content; the caller decides whether
// to skip or abort. Ranging again restarts from the committed index.
func (s *Store) List(tagFilter string, key *vault.Key) iter.Seq2[Entry, error] {
	return func(yield func(Entry, error) bool) {
		idx, err := s.load()
		if err != nil {
			yield(Entry{}, err)
			return
		}

		for _, e := range idx.Entries {
			if tagFilter != "" && !hasTag(e, tagFilter) {
				continue
			}
			open, err := s.open(e, key)
			if !yield(open, err) {
				return
			}
		}
	}
}

// Get returns a single entry by id, decrypted.
func (s *Store) Get(id string, key *vault.Key) (Entry, error) {
	idx, err := s.load()
	if err != nil {
		return Entry{}, err
	}
	for _, e := range idx.Entries {
		if e.ID == id {
			return s.open(e, key)
		}
	}
	return Entry{}, fmt.Errorf("entry %s: %w", id, ErrNotFound)
}

// Tags returns the tag lookup as stored.
func (s *Store) Tags() (map[string][]string, error) {
	idx, err := s.load()
	if err != nil {
		return nil, err
	}
	return idx.Tags, nil
}

// Count returns the number of stored entries.
func (s *Store) Count() (int, error) {
	idx, err := s.load()
	if err != nil {
		return 0, err
	}
	return len(idx.Entries), nil
}

// open decrypts a stored entry when needed. Entries written unencrypted are
// returned verbatim regardless of the current store mode.
func (s *Store) open(e Entry, key *vault.Key) (Entry, error) {
	if !e.Encrypted {
		return e, nil
	}
	if key == nil {
		return stripped(e), fmt.Errorf("entry %s: %w", e.ID, vault.ErrLocked)
	}
	blob, err := base64.StdEncoding.DecodeString(e.Content)
	if err != nil {
		return stripped(e), fmt.Errorf("entry %s: %w", e.ID, vault.ErrDecryptionFailed)
	}
	plain, err := vault.Decrypt(key, blob)
	if err != nil {
		return stripped(e), fmt.Errorf("entry %s: %w", e.ID, err)
	}
	e.Content = string(plain)
	e.Encrypted = false
	return e, nil
}

// stripped keeps the metadata but drops the ciphertext, so a failed decrypt
// can still be reported with context.
func stripped(e Entry) Entry {
	e.Content = ""
	return e
}

func hasTag(e Entry, tag string) bool {
	for _, t := range e.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

func (s *Store) load() (*index, error) {
	idx := &index{Tags: map[string][]string{}}

	data, err := os.ReadFile(s.IndexPath())
	if os.IsNotExist(err) {
		return idx, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading journal index: %w", err)
	}
	if err := json.Unmarshal(data, idx); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrIndexCorrupt, err)
	}
	if idx.Tags == nil {
		idx.Tags = map[string][]string{}
	}
	return idx, nil
}

func (s *Store) save(idx *index) error {
	data, err := json.MarshalIndent(idx, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding journal index: %w", err)
	}
	if err := fsx.WriteFileAtomic(s.IndexPath(), data, filePermissions); err != nil {
		return fmt.Errorf("saving journal index: %w", err)
	}
	return nil
}
