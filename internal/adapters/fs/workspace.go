package fs

import (
	"os"
	"path/filepath"

	"go.trai.ch/sigil/internal/core/domain"
	"go.trai.ch/zerr"
)

// Workspace owns the scratch directory for intermediate artifacts. Every
// artifact lives at a fixed path inside it, so repeated pipeline steps
// overwrite their previous output instead of accumulating files.
type Workspace struct {
	root string
}

// NewWorkspace creates a fresh scratch directory.
func NewWorkspace() (*Workspace, error) {
	root, err := os.MkdirTemp("", domain.WorkDirPrefix+"*")
	if err != nil {
		return nil, zerr.Wrap(err, "failed to create workspace")
	}
	return &Workspace{root: root}, nil
}

// Root returns the scratch directory.
func (w *Workspace) Root() string {
	return w.root
}

// Path returns the fixed location for a named artifact.
func (w *Workspace) Path(name string) string {
	return filepath.Join(w.root, name)
}

// Close removes the scratch directory and everything in it.
func (w *Workspace) Close() error {
	return os.RemoveAll(w.root)
}
