package telemetry

import (
	"errors"
	"sync"
	"time"
)

// ErrProcessorClosed is returned by writes after Close.
var ErrProcessorClosed = errors.New("batch processor is closed")

// BatchProcessor coalesces many small writes into fewer flushes. Tool stderr
// arrives in tiny chunks, and attaching every chunk to a span as its own
// event drowns the trace.
type BatchProcessor struct {
	mu        sync.Mutex
	buf       []byte
	sizeLimit int
	flushFn   func([]byte)
	ticker    *time.Ticker
	done      chan struct{}
	closed    bool
}

// NewBatchProcessor creates a processor that flushes once the buffer reaches
// sizeLimit bytes or timeLimit elapses, whichever comes first.
func NewBatchProcessor(sizeLimit int, timeLimit time.Duration, flushFn func([]byte)) *BatchProcessor {
	bp := &BatchProcessor{
		sizeLimit: sizeLimit,
		flushFn:   flushFn,
		ticker:    time.NewTicker(timeLimit),
		done:      make(chan struct{}),
	}
	go bp.run()
	return bp
}

func (bp *BatchProcessor) run() {
	for {
		select {
		case <-bp.done:
			return
		case <-bp.ticker.C:
			bp.Flush()
		}
	}
}

// Write buffers p, flushing synchronously when the size limit is reached.
func (bp *BatchProcessor) Write(p []byte) (int, error) {
	bp.mu.Lock()
	defer bp.mu.Unlock()

	if bp.closed {
		return 0, ErrProcessorClosed
	}

	bp.buf = append(bp.buf, p...)
	if len(bp.buf) >= bp.sizeLimit {
		bp.flushLocked()
	}
	return len(p), nil
}

// Flush delivers buffered data immediately.
func (bp *BatchProcessor) Flush() {
	bp.mu.Lock()
	defer bp.mu.Unlock()
	bp.flushLocked()
}

// flushLocked delivers the buffer. Callers must hold the lock; holding it
// through the callback keeps flushes ordered.
func (bp *BatchProcessor) flushLocked() {
	if len(bp.buf) == 0 {
		return
	}

	data := bp.buf
	bp.buf = nil
	if bp.flushFn != nil {
		bp.flushFn(data)
	}
}

// Close flushes remaining data and stops the timer. Writes after Close fail.
func (bp *BatchProcessor) Close() error {
	bp.mu.Lock()
	defer bp.mu.Unlock()

	if bp.closed {
		return nil
	}
	bp.closed = true
	bp.ticker.Stop()
	close(bp.done)
	bp.flushLocked()
	return nil
}
