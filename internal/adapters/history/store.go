// Package history persists the last placement per target document.
package history

import (
	"crypto/sha256"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"go.trai.ch/sigil/internal/core/domain"
	"go.trai.ch/sigil/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.HistoryStore = (*Store)(nil)

// Store keeps one JSON file per target document, named by the hash of the
// target's absolute path so arbitrary paths map to safe file names.
type Store struct {
	dir string
}

// NewStore creates a store rooted at the given directory.
func NewStore(dir string) *Store {
	return &Store{dir: filepath.Clean(dir)}
}

// DefaultDir returns the store location in the user cache directory.
func DefaultDir() (string, error) {
	dir, err := os.UserCacheDir()
	if err != nil {
		return "", zerr.Wrap(err, "failed to locate cache directory")
	}
	return domain.HistoryDir(dir), nil
}

// Lookup returns the stored entry for a target document.
func (s *Store) Lookup(target string) (domain.HistoryEntry, bool, error) {
	data, err := os.ReadFile(s.entryPath(target)) //nolint:gosec // Entry names are hashes
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return domain.HistoryEntry{}, false, nil
		}
		return domain.HistoryEntry{}, false, zerr.With(zerr.Wrap(err, "failed to read history entry"), "target", target)
	}

	var entry domain.HistoryEntry
	if err := json.Unmarshal(data, &entry); err != nil {
		return domain.HistoryEntry{}, false, zerr.With(errors.Join(domain.ErrHistoryCorrupt, err), "target", target)
	}
	return entry, true, nil
}

// Save stores the entry for a target document.
func (s *Store) Save(target string, entry domain.HistoryEntry) error {
	data, err := json.MarshalIndent(entry, "", "  ")
	if err != nil {
		return zerr.Wrap(err, "failed to marshal history entry")
	}

	if err := os.MkdirAll(s.dir, domain.DirPerm); err != nil {
		return zerr.Wrap(err, "failed to create history directory")
	}
	if err := os.WriteFile(s.entryPath(target), data, domain.FilePerm); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to write history entry"), "target", target)
	}
	return nil
}

// Clear removes all stored entries.
func (s *Store) Clear() error {
	if err := os.RemoveAll(s.dir); err != nil {
		return zerr.Wrap(err, "failed to clear history")
	}
	return nil
}

// entryPath names the entry file after the target's absolute path, so the
// same document maps to the same entry from any working directory.
func (s *Store) entryPath(target string) string {
	abs, err := filepath.Abs(target)
	if err != nil {
		abs = target
	}
	sum := sha256.Sum256([]byte(abs))
	return filepath.Join(s.dir, fmt.Sprintf("%x.json", sum))
}
