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
	"strings"

	"golang.org/x/exp/slog"
)

// Engine restores a storage tree from an archive. Restored files overwrite
// whatever is at the target (last-restored-wins, no merge).
type Engine struct {
	log *slog.Logger
}

func NewEngine(log *slog.Logger) *Engine {
	return &Engine{log: log}
}

// Inspect reads and validates the manifest without writing anything. Useful
// for showing an archive's contents before committing to a restore.
func (e *Engine) Inspect(archivePath string) (Manifest, error) {
	zr, err := zip.OpenReader(archivePath)
	if err != nil {
		return Manifest{}, fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	defer zr.Close()

	return readManifest(&zr.Reader)
}

// Restore validates the manifest and payload checksum first and only then
// writes: the payload is staged into a temp directory next to the target and
// swapped in with per-file renames, so a failed validation leaves the target
// completely untouched.
func (e *Engine) Restore(archivePath, storageRoot string) (Manifest, error) {
	zr, err := zip.OpenReader(archivePath)
	if err != nil {
		return Manifest{}, fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	defer zr.Close()

	manifest, err := readManifest(&zr.Reader)
	if err != nil {
		return Manifest{}, err
	}

	payload := make(map[string]*zip.File)
	for _, f := range zr.File {
		if rel, ok := strings.CutPrefix(f.Name, payloadPrefix); ok {
			if !localRelPath(rel) {
				return Manifest{}, fmt.Errorf("%w: unsafe payload path %s", ErrInvalid, f.Name)
			}
			payload[rel] = f
		}
	}

	// Checksum runs over manifest file order, same as Build.
	sum := sha256.New()
	for _, rel := range manifest.Files {
		if !localRelPath(rel) {
			return Manifest{}, fmt.Errorf("%w: unsafe path %s in manifest", ErrInvalid, rel)
		}
		f, ok := payload[filepath.ToSlash(rel)]
		if !ok {
			return Manifest{}, fmt.Errorf("%w: payload file %s missing", ErrInvalid, rel)
		}
		if err := hashZipFile(sum, f); err != nil {
			return Manifest{}, err
		}
	}
	if hex.EncodeToString(sum.Sum(nil)) != manifest.Checksum {
		return Manifest{}, fmt.Errorf("%w: checksum mismatch", ErrInvalid)
	}

	if err := os.MkdirAll(storageRoot, 0o700); err != nil {
		return Manifest{}, fmt.Errorf("creating storage root: %w", err)
	}

	// Stage everything before touching the target.
	staging, err := os.MkdirTemp(filepath.Dir(storageRoot), ".restore-*")
	if err != nil {
		return Manifest{}, fmt.Errorf("creating staging dir: %w", err)
	}
	defer os.RemoveAll(staging)

	for _, rel := range manifest.Files {
		if err := extractTo(payload[filepath.ToSlash(rel)], filepath.Join(staging, rel)); err != nil {
			return Manifest{}, err
		}
	}

	// Swap staged files into place. Each rename is atomic and overwrites the
	// previous version.
	for _, rel := range manifest.Files {
		dst := filepath.Join(storageRoot, rel)
		if err := os.MkdirAll(filepath.Dir(dst), 0o700); err != nil {
			return Manifest{}, fmt.Errorf("creating %s: %w", filepath.Dir(dst), err)
		}
		if err := os.Rename(filepath.Join(staging, rel), dst); err != nil {
			return Manifest{}, fmt.Errorf("restoring %s: %w", rel, err)
		}
	}

	e.log.Info("archive restored", "path", archivePath, "files", len(manifest.Files), "root", storageRoot)
	return manifest, nil
}

// localRelPath reports whether rel stays inside the directory it is joined
// to: non-empty, relative, no ".." segments. Archive-supplied paths must pass
// this before any file is staged.
func localRelPath(rel string) bool {
	return rel != "" && filepath.IsLocal(filepath.FromSlash(rel))
}

func readManifest(zr *zip.Reader) (Manifest, error) {
	for _, f := range zr.File {
		if f.Name != manifestName {
			continue
		}
		r, err := f.Open()
		if err != nil {
			return Manifest{}, fmt.Errorf("%w: %v", ErrInvalid, err)
		}
		defer r.Close()

		var m Manifest
		if err := json.NewDecoder(r).Decode(&m); err != nil {
			return Manifest{}, fmt.Errorf("%w: unreadable manifest", ErrInvalid)
		}
		if m.FormatVersion != FormatVersion {
			return Manifest{}, fmt.Errorf("%w: unsupported format version %d", ErrInvalid, m.FormatVersion)
		}
		return m, nil
	}
	return Manifest{}, fmt.Errorf("%w: manifest missing", ErrInvalid)
}

func hashZipFile(w io.Writer, f *zip.File) error {
	r, err := f.Open()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	defer r.Close()
	if _, err := io.Copy(w, r); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	return nil
}

func extractTo(f *zip.File, dst string) error {
	if err := os.MkdirAll(filepath.Dir(dst), 0o700); err != nil {
		return fmt.Errorf("staging %s: %w", dst, err)
	}
	r, err := f.Open()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	defer r.Close()

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("staging %s: %w", dst, err)
	}
	defer out.Close()

	if _, err := io.Copy(out, r); err != nil {
		return fmt.Errorf("staging %s: %w", dst, err)
	}
	return out.Sync()
}
