package snippet

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
	"golang.org/x/exp/slog"

	"daybook/internal/vault"
)

//go:embed migrations/*.sql
var migrationFiles embed.FS

const dbName = "snippets.db"

// Store keeps snippets in a SQLite file inside the storage tree, so archives
// pick it up together with the journal.
type Store struct {
	db      *sql.DB
	path    string
	encrypt bool
	log     *slog.Logger
}

// NewStore opens (creating if needed) the snippet database under dir and
// applies pending migrations.
func NewStore(dir string, encrypt bool, log *slog.Logger) (*Store, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("creating snippets dir: %w", err)
	}
	path := filepath.Join(dir, dbName)

	db, err := sql.Open("sqlite3", path+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("opening snippet db: %w", err)
	}

	if err := migrateUp(path); err != nil {
		db.Close()
		return nil, err
	}

	return &Store{db: db, path: path, encrypt: encrypt, log: log}, nil
}

func migrateUp(dbPath string) error {
	src, err := iofs.New(migrationFiles, "migrations")
	if err != nil {
		return fmt.Errorf("loading migrations: %w", err)
	}
	m, err := migrate.NewWithSourceInstance("iofs", src, "sqlite3://"+dbPath)
	if err != nil {
		return fmt.Errorf("preparing migrations: %w", err)
	}
	defer m.Close()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migrating snippet db: %w", err)
	}
	return nil
}

func (s *Store) Path() string {
	return s.path
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Append stores a new snippet, encrypting its text first when the store is
// in encrypted mode.
func (s *Store) Append(sn Snippet, key *vault.Key) (Snippet, error) {
	if err := sn.Category.Validate(); err != nil {
		return Snippet{}, err
	}

	sn.ID = uuid.NewString()
	if sn.CreatedAt.IsZero() {
		sn.CreatedAt = time.Now()
	}
	if sn.Source == "" {
		sn.Source = SourceManual
	}

	content := []byte(sn.Text)
	if s.encrypt {
		if key == nil {
			return Snippet{}, vault.ErrLocked
		}
		blob, err := vault.Encrypt(key, content)
		if err != nil {
			return Snippet{}, fmt.Errorf("encrypting snippet: %w", err)
		}
		content = blob
		sn.Encrypted = true
	}

	_, err := s.db.Exec(`
		INSERT INTO snippets (id, language, category, content, source, created_at, encrypted)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, sn.ID, sn.Language, sn.Category, content, sn.Source,
		sn.CreatedAt.Format(time.RFC3339), sn.Encrypted)
	if err != nil {
		return Snippet{}, fmt.Errorf("saving snippet: %w", err)
	}

	s.log.Debug("snippet appended", "id", sn.ID, "language", sn.Language, "category", sn.Category)
	return sn, nil
}

// List returns snippets in insertion order with text already decrypted. A
// decrypt failure aborts with the failing snippet's id in the error; corrupt
// rows are never silently dropped.
func (s *Store) List(filter Filter, key *vault.Key) ([]Snippet, error) {
	query := "SELECT id, language, category, content, source, created_at, encrypted FROM snippets WHERE 1=1"
	var args []any

	if filter.Language != "" {
		query += " AND language = ?"
		args = append(args, filter.Language)
	}
	if filter.Category != "" {
		query += " AND category = ?"
		args = append(args, filter.Category)
	}
	query += " ORDER BY created_at, id"
	if filter.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, filter.Limit)
	}

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying snippets: %w", err)
	}
	defer rows.Close()

	var out []Snippet
	for rows.Next() {
		var sn Snippet
		var content []byte
		var createdAt string
		if err := rows.Scan(&sn.ID, &sn.Language, &sn.Category, &content,
			&sn.Source, &createdAt, &sn.Encrypted); err != nil {
			return nil, fmt.Errorf("scanning snippet: %w", err)
		}
		sn.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)

		if sn.Encrypted {
			if key == nil {
				return nil, fmt.Errorf("snippet %s: %w", sn.ID, vault.ErrLocked)
			}
			plain, err := vault.Decrypt(key, content)
			if err != nil {
				return nil, fmt.Errorf("snippet %s: %w", sn.ID, err)
			}
			sn.Text = string(plain)
			sn.Encrypted = false
		} else {
			sn.Text = string(content)
		}
		out = append(out, sn)
	}
	return out, rows.Err()
}

// Count returns the number of stored snippets.
func (s *Store) Count() (int, error) {
	var n int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM snippets").Scan(&n); err != nil {
		return 0, fmt.Errorf("counting snippets: %w", err)
	}
	return n, nil
}
