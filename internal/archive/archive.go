// Package archive builds and restores portable backup archives of the
// storage tree. An archive is a zip container with a manifest header, the
// encrypted-at-rest payload files and an optional plaintext restore point.
package archive

import (
	"archive/zip"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"golang.org/x/exp/slog"
)

const (
	FormatVersion = 1

	manifestName     = "manifest.json"
	payloadPrefix    = "payload/"
	restorePointName = "restore/entries.json"
)

// Manifest is the self-describing header: everything needed to validate an
// archive before a single byte is written during restore.
type Manifest struct {
	FormatVersion int       `json:"format_version"`
	CreatedAt     time.Time `json:"created_at"`
	Protected     bool      `json:"protected"`
	Checksum      string    `json:"checksum"`
	Files         []string  `json:"files"`
	RestorePoint  bool      `json:"restore_point"`
}

// Options controls what goes into the archive beyond the payload.
type Options struct {
	// IncludeRestorePoint embeds a plaintext copy of the journal index so an
	// operator who lost the password can still recover entry metadata and
	// unencrypted entries. On by default at every call site.
	IncludeRestorePoint bool
	// Protected records whether the payload carries password-protected data.
	Protected bool
}

// Builder packages a storage tree into a single archive file.
type Builder struct {
	log *slog.Logger
}

func NewBuilder(log *slog.Logger) *Builder {
	return &Builder{log: log}
}

// skipped names directories and file patterns that never belong in an
// archive: derived local state, locks and in-flight temp files.
func skipped(rel string) bool {
	top := rel
	if i := strings.IndexByte(rel, filepath.Separator); i >= 0 {
		top = rel[:i]
	}
	if top == "backups" || top == "cache" {
		return true
	}
	base := filepath.Base(rel)
	return strings.HasSuffix(base, ".lock") || strings.Contains(base, ".tmp-")
}

// Build copies the current encrypted-at-rest files under storageRoot into a
// single archive at outPath and returns its manifest.
func (b *Builder) Build(storageRoot, outPath string, opts Options) (Manifest, error) {
	files, err := collectFiles(storageRoot)
	if err != nil {
		return Manifest{}, err
	}

	sum := sha256.New()
	for _, rel := range files {
		data, err := os.ReadFile(filepath.Join(storageRoot, rel))
		if err != nil {
			return Manifest{}, fmt.Errorf("reading %s: %w", rel, err)
		}
		sum.Write(data)
	}

	manifest := Manifest{
		FormatVersion: FormatVersion,
		CreatedAt:     time.Now().UTC(),
		Protected:     opts.Protected,
		Checksum:      hex.EncodeToString(sum.Sum(nil)),
		Files:         files,
		RestorePoint:  opts.IncludeRestorePoint,
	}

	if err := os.MkdirAll(filepath.Dir(outPath), 0o700); err != nil {
		return Manifest{}, fmt.Errorf("creating archive dir: %w", err)
	}
	out, err := os.Create(outPath)
	if err != nil {
		return Manifest{}, fmt.Errorf("creating archive: %w", err)
	}
	defer out.Close()

	zw := zip.NewWriter(out)

	if err := writeManifest(zw, manifest); err != nil {
		return Manifest{}, err
	}
	for _, rel := range files {
		if err := copyIntoZip(zw, filepath.Join(storageRoot, rel), payloadPrefix+filepath.ToSlash(rel)); err != nil {
			return Manifest{}, err
		}
	}
	if opts.IncludeRestorePoint {
		if err := writeRestorePoint(zw, storageRoot); err != nil {
			return Manifest{}, err
		}
	}

	if err := zw.Close(); err != nil {
		return Manifest{}, fmt.Errorf("finalizing archive: %w", err)
	}
	if err := out.Sync(); err != nil {
		return Manifest{}, fmt.Errorf("syncing archive: %w", err)
	}

	b.log.Info("archive built", "path", outPath, "files", len(files), "protected", manifest.Protected)
	return manifest, nil
}

// collectFiles walks the storage tree and returns payload-relative paths in
// sorted order; the checksum depends on that order.
func collectFiles(storageRoot string) ([]string, error) {
	var files []string
	err := filepath.Walk(storageRoot, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(storageRoot, path)
		if err != nil {
			return err
		}
		if skipped(rel) {
			return nil
		}
		files = append(files, rel)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking storage tree: %w", err)
	}
	sort.Strings(files)
	return files, nil
}

func writeManifest(zw *zip.Writer, m Manifest) error {
	w, err := zw.Create(manifestName)
	if err != nil {
		return fmt.Errorf("writing manifest: %w", err)
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(m); err != nil {
		return fmt.Errorf("encoding manifest: %w", err)
	}
	return nil
}

func copyIntoZip(zw *zip.Writer, src, name string) error {
	f, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("opening %s: %w", src, err)
	}
	defer f.Close()

	w, err := zw.Create(name)
	if err != nil {
		return fmt.Errorf("adding %s: %w", name, err)
	}
	if _, err := io.Copy(w, f); err != nil {
		return fmt.Errorf("copying %s: %w", name, err)
	}
	return nil
}

// writeRestorePoint embeds the journal index as-is. The index document is
// plain JSON: entry metadata and any unencrypted bodies are readable without
// the password, while encrypted bodies stay ciphertext.
func writeRestorePoint(zw *zip.Writer, storageRoot string) error {
	indexPath := filepath.Join(storageRoot, "journal", "journal.json")
	data, err := os.ReadFile(indexPath)
	if os.IsNotExist(err) {
		data = []byte(`{"entries": [], "tags": {}}`)
	} else if err != nil {
		return fmt.Errorf("reading journal index: %w", err)
	}

	w, err := zw.Create(restorePointName)
	if err != nil {
		return fmt.Errorf("writing restore point: %w", err)
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("writing restore point: %w", err)
	}
	return nil
}
