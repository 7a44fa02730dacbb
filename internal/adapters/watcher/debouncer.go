package watcher

import (
	"sync"
	"time"

	"go.trai.ch/sigil/internal/core/domain"
)

// DefaultDebounceWindow is how long the watcher waits for a document to stop
// changing before triggering a refresh. Exporters write large files in
// bursts, and every burst resets the window.
const DefaultDebounceWindow = 200 * time.Millisecond

// Debouncer coalesces rapid file system events into a single callback.
// Pending paths are interned: a watched file emits the same path over and
// over, so the set compares handles instead of strings.
type Debouncer struct {
	mu       sync.Mutex
	pending  map[domain.InternedString]struct{}
	timer    *time.Timer
	window   time.Duration
	callback func(paths []string)
}

// NewDebouncer creates a debouncer that collects paths for the given window
// and then invokes callback with the deduplicated batch.
func NewDebouncer(window time.Duration, callback func(paths []string)) *Debouncer {
	return &Debouncer{
		pending:  make(map[domain.InternedString]struct{}),
		window:   window,
		callback: callback,
	}
}

// Add records a changed path and restarts the debounce window.
func (d *Debouncer) Add(path string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.pending[domain.NewInternedString(path)] = struct{}{}

	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.window, d.fire)
}

// fire runs when the window expires without further events.
func (d *Debouncer) fire() {
	d.mu.Lock()
	if len(d.pending) == 0 {
		d.timer = nil
		d.mu.Unlock()
		return
	}

	paths := d.drain()
	d.timer = nil
	d.mu.Unlock()

	if d.callback != nil {
		go d.callback(paths)
	}
}

// Flush delivers any pending paths immediately and synchronously. Used on
// shutdown, where the final refresh must complete before teardown continues.
func (d *Debouncer) Flush() {
	d.mu.Lock()
	if d.timer != nil {
		if !d.timer.Stop() {
			// The timer already fired. Let that delivery run its course.
			d.mu.Unlock()
			return
		}
		d.timer = nil
	}
	paths := d.drain()
	d.mu.Unlock()

	if len(paths) > 0 && d.callback != nil {
		d.callback(paths)
	}
}

// drain empties the pending set. Callers must hold the lock.
func (d *Debouncer) drain() []string {
	paths := make([]string, 0, len(d.pending))
	for path := range d.pending {
		paths = append(paths, path.String())
	}
	clear(d.pending)
	return paths
}
