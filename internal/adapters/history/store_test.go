package history_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"go.trai.ch/sigil/internal/adapters/history"
	"go.trai.ch/sigil/internal/core/domain"
)

func testEntry() domain.HistoryEntry {
	return domain.HistoryEntry{
		Placement: domain.Placement{Anchor: domain.AnchorTopLeft, DX: 12, DY: 24, Scale: 0.8},
		Signature: "initials",
		Page:      "last",
	}
}

func TestLookupMissingEntry(t *testing.T) {
	store := history.NewStore(t.TempDir())

	_, ok, err := store.Lookup("/docs/contract.pdf")

	require.NoError(t, err)
	require.False(t, ok)
}

func TestSaveThenLookup(t *testing.T) {
	store := history.NewStore(t.TempDir())
	want := testEntry()

	require.NoError(t, store.Save("/docs/contract.pdf", want))

	got, ok, err := store.Lookup("/docs/contract.pdf")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, want, got)
}

func TestSaveOverwrites(t *testing.T) {
	store := history.NewStore(t.TempDir())
	require.NoError(t, store.Save("/docs/contract.pdf", testEntry()))

	updated := testEntry()
	updated.Placement.Scale = 1.5
	require.NoError(t, store.Save("/docs/contract.pdf", updated))

	got, ok, err := store.Lookup("/docs/contract.pdf")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, updated, got)
}

func TestEntriesAreKeyedByAbsolutePath(t *testing.T) {
	store := history.NewStore(t.TempDir())
	docs := t.TempDir()
	target := filepath.Join(docs, "contract.pdf")

	require.NoError(t, store.Save(target, testEntry()))

	// The relative spelling of the same document finds the entry.
	t.Chdir(docs)
	_, ok, err := store.Lookup("contract.pdf")
	require.NoError(t, err)
	require.True(t, ok)
}

func TestLookupCorruptEntry(t *testing.T) {
	dir := t.TempDir()
	store := history.NewStore(dir)
	require.NoError(t, store.Save("/docs/contract.pdf", testEntry()))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.NoError(t, os.WriteFile(filepath.Join(dir, entries[0].Name()), []byte("{not json"), 0o644))

	_, ok, err := store.Lookup("/docs/contract.pdf")
	require.ErrorIs(t, err, domain.ErrHistoryCorrupt)
	require.False(t, ok)
}

func TestClearRemovesAllEntries(t *testing.T) {
	store := history.NewStore(t.TempDir())
	require.NoError(t, store.Save("/docs/a.pdf", testEntry()))
	require.NoError(t, store.Save("/docs/b.pdf", testEntry()))

	require.NoError(t, store.Clear())

	_, ok, err := store.Lookup("/docs/a.pdf")
	require.NoError(t, err)
	require.False(t, ok)

	// The store keeps working after a clear.
	require.NoError(t, store.Save("/docs/a.pdf", testEntry()))
}
