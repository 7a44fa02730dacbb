package fs

import (
	"os"
	"path/filepath"
	"strings"

	"go.trai.ch/sigil/internal/core/domain"
	"go.trai.ch/sigil/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.SignatureResolver = (*Resolver)(nil)

// Resolver locates signature files on disk.
type Resolver struct {
	override   string
	configured string
}

// NewResolver creates a resolver. The override comes from the command line,
// the configured directory from the loaded configuration, either may be
// empty.
func NewResolver(override, configured string) *Resolver {
	return &Resolver{override: override, configured: configured}
}

// Dir returns the active signature directory: the override, then the
// SIGIL_SIGNATURES variable, then the configured directory, then the user
// data directory.
func (r *Resolver) Dir() (string, error) {
	if r.override != "" {
		return r.override, nil
	}
	if dir := os.Getenv("SIGIL_SIGNATURES"); dir != "" {
		return dir, nil
	}
	if r.configured != "" {
		return r.configured, nil
	}
	return defaultDir()
}

// defaultDir prefers the XDG data directory and keeps supporting the older
// dotfile location when only that exists.
func defaultDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", zerr.Wrap(err, "failed to locate home directory")
	}

	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		dataHome = filepath.Join(home, ".local", "share")
	}
	xdg := domain.UserSignatureDir(dataHome)
	if _, err := os.Stat(xdg); err == nil {
		return xdg, nil
	}

	dotfile := filepath.Join(home, "."+domain.AppName, domain.SignatureDirName)
	if _, err := os.Stat(dotfile); err == nil {
		return dotfile, nil
	}
	return xdg, nil
}

// List returns the PDF files in the active directory. os.ReadDir sorts by
// name, and the shared prefix keeps the joined paths in that order.
func (r *Resolver) List() ([]string, error) {
	dir, err := r.Dir()
	if err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, zerr.With(domain.ErrNoSignatures, "dir", dir)
		}
		return nil, zerr.With(zerr.Wrap(err, "failed to read signature directory"), "dir", dir)
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.EqualFold(filepath.Ext(entry.Name()), ".pdf") {
			continue
		}
		files = append(files, filepath.Join(dir, entry.Name()))
	}
	if len(files) == 0 {
		return nil, zerr.With(domain.ErrNoSignatures, "dir", dir)
	}
	return files, nil
}

// Resolve maps a name or path to an existing signature file. Anything with
// a path separator is used as given, a bare name is looked up in the active
// directory with and without the .pdf extension, and an empty name selects
// the first listed file.
func (r *Resolver) Resolve(name string) (string, error) {
	if name == "" {
		files, err := r.List()
		if err != nil {
			return "", err
		}
		return files[0], nil
	}

	if strings.ContainsRune(name, os.PathSeparator) {
		if _, err := os.Stat(name); err != nil {
			return "", zerr.With(domain.ErrSignatureNotFound, "path", name)
		}
		return name, nil
	}

	dir, err := r.Dir()
	if err != nil {
		return "", err
	}
	for _, candidate := range []string{
		filepath.Join(dir, name),
		filepath.Join(dir, name+".pdf"),
	} {
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}
	}
	return "", zerr.With(zerr.With(domain.ErrSignatureNotFound, "name", name), "dir", dir)
}
