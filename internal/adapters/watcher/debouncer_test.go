package watcher_test

import (
	"sync"
	"testing"
	"testing/synctest"
	"time"

	"github.com/stretchr/testify/require"
	"go.trai.ch/sigil/internal/adapters/watcher"
)

// recorder collects debouncer callbacks so tests can assert on batches.
type recorder struct {
	mu    sync.Mutex
	calls [][]string
}

func (r *recorder) record(paths []string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, paths)
}

func (r *recorder) batches() [][]string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.calls
}

func TestDebouncerCoalescesRapidEvents(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		rec := &recorder{}
		d := watcher.NewDebouncer(100*time.Millisecond, rec.record)

		d.Add("/docs/contract.pdf")
		d.Add("/docs/signature.pdf")
		d.Add("/docs/contract.pdf")

		time.Sleep(150 * time.Millisecond)
		synctest.Wait()

		batches := rec.batches()
		require.Len(t, batches, 1)
		require.ElementsMatch(t, []string{"/docs/contract.pdf", "/docs/signature.pdf"}, batches[0])
	})
}

func TestDebouncerResetsWindowOnNewEvents(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		rec := &recorder{}
		d := watcher.NewDebouncer(100*time.Millisecond, rec.record)

		d.Add("/docs/contract.pdf")
		time.Sleep(60 * time.Millisecond)
		d.Add("/docs/contract.pdf")
		time.Sleep(60 * time.Millisecond)
		synctest.Wait()

		require.Empty(t, rec.batches(), "window should restart on every event")

		time.Sleep(50 * time.Millisecond)
		synctest.Wait()

		require.Len(t, rec.batches(), 1)
	})
}

func TestDebouncerFiresSeparateBatches(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		rec := &recorder{}
		d := watcher.NewDebouncer(100*time.Millisecond, rec.record)

		d.Add("/docs/contract.pdf")
		time.Sleep(150 * time.Millisecond)
		synctest.Wait()

		d.Add("/docs/signature.pdf")
		time.Sleep(150 * time.Millisecond)
		synctest.Wait()

		batches := rec.batches()
		require.Len(t, batches, 2)
		require.Equal(t, []string{"/docs/contract.pdf"}, batches[0])
		require.Equal(t, []string{"/docs/signature.pdf"}, batches[1])
	})
}

func TestFlushDeliversPendingImmediately(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		rec := &recorder{}
		d := watcher.NewDebouncer(100*time.Millisecond, rec.record)

		d.Add("/docs/contract.pdf")
		d.Flush()

		require.Len(t, rec.batches(), 1)

		// The stopped timer must not deliver the same batch again.
		time.Sleep(150 * time.Millisecond)
		synctest.Wait()

		require.Len(t, rec.batches(), 1)
	})
}

func TestFlushWithNothingPendingDoesNothing(t *testing.T) {
	rec := &recorder{}
	d := watcher.NewDebouncer(100*time.Millisecond, rec.record)

	d.Flush()

	require.Empty(t, rec.batches())
}

func TestFlushAfterFireDoesNotRepeat(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		rec := &recorder{}
		d := watcher.NewDebouncer(100*time.Millisecond, rec.record)

		d.Add("/docs/contract.pdf")
		time.Sleep(150 * time.Millisecond)
		synctest.Wait()

		d.Flush()

		require.Len(t, rec.batches(), 1)
	})
}

func TestDebouncerToleratesNilCallback(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		d := watcher.NewDebouncer(100*time.Millisecond, nil)

		d.Add("/docs/contract.pdf")
		time.Sleep(150 * time.Millisecond)
		synctest.Wait()

		d.Add("/docs/contract.pdf")
		d.Flush()
	})
}
