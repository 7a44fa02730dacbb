package fs_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"go.trai.ch/sigil/internal/adapters/fs"
	"go.trai.ch/sigil/internal/core/domain"
)

// writeSigs populates a directory with the given file names and returns it.
func writeSigs(t *testing.T, names ...string) string {
	t.Helper()
	dir := t.TempDir()
	for _, name := range names {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("%PDF-1.4"), 0o644))
	}
	return dir
}

func TestDirPrecedence(t *testing.T) {
	override := t.TempDir()
	envDir := t.TempDir()
	configured := t.TempDir()

	t.Setenv("SIGIL_SIGNATURES", envDir)

	dir, err := fs.NewResolver(override, configured).Dir()
	require.NoError(t, err)
	require.Equal(t, override, dir)

	dir, err = fs.NewResolver("", configured).Dir()
	require.NoError(t, err)
	require.Equal(t, envDir, dir)

	t.Setenv("SIGIL_SIGNATURES", "")

	dir, err = fs.NewResolver("", configured).Dir()
	require.NoError(t, err)
	require.Equal(t, configured, dir)
}

func TestDirDefaultPrefersXDGOverDotfile(t *testing.T) {
	home := t.TempDir()
	data := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_DATA_HOME", data)
	t.Setenv("SIGIL_SIGNATURES", "")

	resolver := fs.NewResolver("", "")
	xdg := filepath.Join(data, "sigil", "signatures")
	dotfile := filepath.Join(home, ".sigil", "signatures")

	// Nothing exists yet, the XDG location is the answer.
	dir, err := resolver.Dir()
	require.NoError(t, err)
	require.Equal(t, xdg, dir)

	// Only the legacy dotfile directory exists.
	require.NoError(t, os.MkdirAll(dotfile, 0o755))
	dir, err = resolver.Dir()
	require.NoError(t, err)
	require.Equal(t, dotfile, dir)

	// Both exist, XDG wins.
	require.NoError(t, os.MkdirAll(xdg, 0o755))
	dir, err = resolver.Dir()
	require.NoError(t, err)
	require.Equal(t, xdg, dir)
}

func TestListFiltersAndSorts(t *testing.T) {
	dir := writeSigs(t, "b.pdf", "a.PDF", "notes.txt")
	require.NoError(t, os.Mkdir(filepath.Join(dir, "archive.pdf.d"), 0o755))

	files, err := fs.NewResolver(dir, "").List()

	require.NoError(t, err)
	require.Equal(t, []string{
		filepath.Join(dir, "a.PDF"),
		filepath.Join(dir, "b.pdf"),
	}, files)
}

func TestListNoSignatures(t *testing.T) {
	dir := writeSigs(t, "notes.txt")

	_, err := fs.NewResolver(dir, "").List()

	require.ErrorIs(t, err, domain.ErrNoSignatures)
}

func TestListMissingDir(t *testing.T) {
	_, err := fs.NewResolver(filepath.Join(t.TempDir(), "absent"), "").List()

	require.ErrorIs(t, err, domain.ErrNoSignatures)
}

func TestResolveBareName(t *testing.T) {
	dir := writeSigs(t, "initials.pdf")
	resolver := fs.NewResolver(dir, "")

	for _, name := range []string{"initials", "initials.pdf"} {
		path, err := resolver.Resolve(name)
		require.NoError(t, err)
		require.Equal(t, filepath.Join(dir, "initials.pdf"), path)
	}
}

func TestResolvePathUsedAsGiven(t *testing.T) {
	dir := writeSigs(t, "sig.pdf")
	path := filepath.Join(dir, "sig.pdf")

	got, err := fs.NewResolver(t.TempDir(), "").Resolve(path)

	require.NoError(t, err)
	require.Equal(t, path, got)
}

func TestResolveMissingPath(t *testing.T) {
	_, err := fs.NewResolver(t.TempDir(), "").Resolve(filepath.Join(t.TempDir(), "nope.pdf"))

	require.ErrorIs(t, err, domain.ErrSignatureNotFound)
}

func TestResolveEmptySelectsFirst(t *testing.T) {
	dir := writeSigs(t, "zeta.pdf", "alpha.pdf")

	path, err := fs.NewResolver(dir, "").Resolve("")

	require.NoError(t, err)
	require.Equal(t, filepath.Join(dir, "alpha.pdf"), path)
}

func TestResolveUnknownName(t *testing.T) {
	dir := writeSigs(t, "initials.pdf")

	_, err := fs.NewResolver(dir, "").Resolve("formal")

	require.ErrorIs(t, err, domain.ErrSignatureNotFound)
}
