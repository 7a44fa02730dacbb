package fs_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"go.trai.ch/sigil/internal/adapters/fs"
)

func TestDigestFileStableAcrossCalls(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc.pdf")
	require.NoError(t, os.WriteFile(path, []byte("content"), 0o644))

	digester := fs.NewDigester()

	first, err := digester.DigestFile(path)
	require.NoError(t, err)
	require.Len(t, first, 16)

	second, err := digester.DigestFile(path)
	require.NoError(t, err)
	require.Equal(t, first, second)
}

func TestDigestFileDetectsChange(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc.pdf")
	require.NoError(t, os.WriteFile(path, []byte("before"), 0o644))

	digester := fs.NewDigester()

	before, err := digester.DigestFile(path)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(path, []byte("after"), 0o644))

	after, err := digester.DigestFile(path)
	require.NoError(t, err)
	require.NotEqual(t, before, after)
}

func TestDigestFileEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty")
	require.NoError(t, os.WriteFile(path, nil, 0o644))

	digest, err := fs.NewDigester().DigestFile(path)

	require.NoError(t, err)
	// xxhash64 of empty input.
	require.Equal(t, "ef46db3751d8e999", digest)
}

func TestDigestFileMissing(t *testing.T) {
	_, err := fs.NewDigester().DigestFile(filepath.Join(t.TempDir(), "nope.pdf"))

	require.Error(t, err)
}

func TestWorkspacePathsAreFixed(t *testing.T) {
	ws, err := fs.NewWorkspace()
	require.NoError(t, err)
	t.Cleanup(func() { _ = ws.Close() })

	page := ws.Path("page.pdf")
	require.Equal(t, page, ws.Path("page.pdf"))
	require.Equal(t, ws.Root(), filepath.Dir(page))
}

func TestWorkspaceCloseRemovesEverything(t *testing.T) {
	ws, err := fs.NewWorkspace()
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(ws.Path("stamped.pdf"), []byte("pdf"), 0o644))
	require.NoError(t, ws.Close())

	_, err = os.Stat(ws.Root())
	require.True(t, os.IsNotExist(err))
}
