package app

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"go.trai.ch/sigil/internal/adapters/toolchain"
	"go.trai.ch/sigil/internal/core/domain"
	"go.trai.ch/sigil/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

// prepareHarness is an App over mocks plus a target document and a
// signature directory holding aaa.pdf and bbb.pdf.
type prepareHarness struct {
	app    *App
	target string
	sigDir string
}

func newPrepareHarness(t *testing.T) prepareHarness {
	t.Helper()
	ctrl := gomock.NewController(t)

	loader := mocks.NewMockConfigLoader(ctrl)
	loader.EXPECT().Load(gomock.Any()).Return(domain.DefaultConfig(), "", nil).AnyTimes()
	history := mocks.NewMockHistoryStore(ctrl)
	history.EXPECT().Lookup(gomock.Any()).Return(domain.HistoryEntry{}, false, nil).AnyTimes()
	log := mocks.NewMockLogger(ctrl)

	a := New(
		loader,
		toolchain.NewSelector(mocks.NewMockExecutor(ctrl), log),
		mocks.NewMockDigester(ctrl),
		history,
		mocks.NewMockWatcher(ctrl),
		mocks.NewMockTracer(ctrl),
		log,
	)

	target := filepath.Join(t.TempDir(), "contract.pdf")
	require.NoError(t, os.WriteFile(target, []byte("%PDF-1.4"), 0o644))

	sigDir := t.TempDir()
	for _, name := range []string{"aaa.pdf", "bbb.pdf"} {
		require.NoError(t, os.WriteFile(filepath.Join(sigDir, name), []byte("%PDF-1.4"), 0o644))
	}
	return prepareHarness{app: a, target: target, sigDir: sigDir}
}

func (h prepareHarness) prepare(t *testing.T, opts SignOptions) *session {
	t.Helper()

	opts.Target = h.target
	opts.SignatureDir = h.sigDir
	opts.Toolchain = "embedded"

	st, err := h.app.prepare(opts, io.Discard)
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.workspace.Close() })
	return st
}

func TestPrepareSelectsBareSignatureName(t *testing.T) {
	h := newPrepareHarness(t)

	for _, name := range []string{"bbb", "bbb.pdf"} {
		st := h.prepare(t, SignOptions{Signature: name})
		require.Len(t, st.signatures, 2)
		require.Equal(t, filepath.Join(h.sigDir, "bbb.pdf"), st.signatures[st.sigIdx].Path)
	}
}

func TestPrepareSelectsExplicitPathOutsideDirectory(t *testing.T) {
	h := newPrepareHarness(t)

	external := filepath.Join(t.TempDir(), "mine.pdf")
	require.NoError(t, os.WriteFile(external, []byte("%PDF-1.4"), 0o644))

	st := h.prepare(t, SignOptions{Signature: external, SignaturePage: 2})

	// The external file joins the list so the preview can still cycle back
	// to the directory's signatures.
	require.Len(t, st.signatures, 3)
	require.Equal(t, external, st.signatures[st.sigIdx].Path)
	require.Equal(t, 2, st.signatures[st.sigIdx].Page)
}

func TestPrepareSelectsRelativePathSpelling(t *testing.T) {
	h := newPrepareHarness(t)

	rel, err := filepath.Rel(mustGetwd(t), filepath.Join(h.sigDir, "aaa.pdf"))
	require.NoError(t, err)

	st := h.prepare(t, SignOptions{Signature: rel})

	// A different spelling of a listed file selects that file instead of
	// growing the list.
	require.Len(t, st.signatures, 2)
	require.Equal(t, filepath.Join(h.sigDir, "aaa.pdf"), st.signatures[st.sigIdx].Path)
}

func TestPrepareAppliesSignaturePage(t *testing.T) {
	h := newPrepareHarness(t)

	st := h.prepare(t, SignOptions{Signature: "aaa", SignaturePage: 3})

	require.Equal(t, 3, st.signatures[st.sigIdx].Page)
	for i, sig := range st.signatures {
		if i != st.sigIdx {
			require.Equal(t, 1, sig.Page)
		}
	}
}

func mustGetwd(t *testing.T) string {
	t.Helper()
	wd, err := os.Getwd()
	require.NoError(t, err)
	return wd
}
