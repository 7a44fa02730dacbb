package watcher_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.trai.ch/sigil/internal/adapters/watcher"
	"go.trai.ch/sigil/internal/core/ports"
	"go.trai.ch/sigil/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

const eventTimeout = 5 * time.Second

// startWatcher begins watching the given files and returns a channel fed by
// the event iterator.
func startWatcher(t *testing.T, paths ...string) <-chan ports.WatchEvent {
	t.Helper()

	// A strict mock: any filesystem error surfacing as a Warn fails the test.
	w, err := watcher.NewWatcher(mocks.NewMockLogger(gomock.NewController(t)))
	require.NoError(t, err)
	t.Cleanup(func() { _ = w.Stop() })

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	require.NoError(t, w.Start(ctx, paths))

	events := make(chan ports.WatchEvent, 16)
	go func() {
		defer close(events)
		for event := range w.Events() {
			events <- event
		}
	}()
	return events
}

func awaitEvent(t *testing.T, events <-chan ports.WatchEvent) ports.WatchEvent {
	t.Helper()

	select {
	case event, ok := <-events:
		require.True(t, ok, "event stream ended early")
		return event
	case <-time.After(eventTimeout):
		t.Fatal("timed out waiting for a file event")
		return ports.WatchEvent{}
	}
}

func TestWatcherReportsWriteToWatchedFile(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "contract.pdf")
	require.NoError(t, os.WriteFile(target, []byte("v1"), 0o600))

	events := startWatcher(t, target)

	require.NoError(t, os.WriteFile(target, []byte("v2"), 0o600))

	event := awaitEvent(t, events)
	require.Equal(t, target, event.Path)
}

func TestWatcherIgnoresSiblingFiles(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "contract.pdf")
	sibling := filepath.Join(dir, "notes.txt")
	require.NoError(t, os.WriteFile(target, []byte("v1"), 0o600))
	require.NoError(t, os.WriteFile(sibling, []byte("v1"), 0o600))

	events := startWatcher(t, target)

	// Touch the sibling first. If its events leaked through they would
	// arrive before the target's, since delivery preserves order.
	require.NoError(t, os.WriteFile(sibling, []byte("v2"), 0o600))
	require.NoError(t, os.WriteFile(target, []byte("v2"), 0o600))

	event := awaitEvent(t, events)
	require.Equal(t, target, event.Path)
}

func TestWatcherSurvivesAtomicReplace(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "contract.pdf")
	require.NoError(t, os.WriteFile(target, []byte("v1"), 0o600))

	events := startWatcher(t, target)

	// Editors write a temp file and rename it over the original. Watching
	// the directory keeps the path under observation across the swap.
	staging := filepath.Join(dir, ".contract.pdf.tmp")
	require.NoError(t, os.WriteFile(staging, []byte("v2"), 0o600))
	require.NoError(t, os.Rename(staging, target))

	event := awaitEvent(t, events)
	require.Equal(t, target, event.Path)
}

func TestWatcherStopsWhenContextCancelled(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "contract.pdf")
	require.NoError(t, os.WriteFile(target, []byte("v1"), 0o600))

	w, err := watcher.NewWatcher(mocks.NewMockLogger(gomock.NewController(t)))
	require.NoError(t, err)
	t.Cleanup(func() { _ = w.Stop() })

	ctx, cancel := context.WithCancel(context.Background())
	require.NoError(t, w.Start(ctx, []string{target}))

	done := make(chan struct{})
	go func() {
		defer close(done)
		for range w.Events() {
		}
	}()

	cancel()

	select {
	case <-done:
	case <-time.After(eventTimeout):
		t.Fatal("event stream did not end after cancellation")
	}
}
