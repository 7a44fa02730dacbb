package pipeline

import (
	"context"

	"go.trai.ch/sigil/internal/core/domain"
	"go.trai.ch/zerr"
)

// ErrSessionClosed is returned when a call arrives after the session loop
// has stopped.
var ErrSessionClosed = zerr.New("session closed")

// Session owns a pipeline on a single goroutine. The cell engine is not
// safe for concurrent use, so the preview UI and the file watcher hand
// their work to the session instead of touching cells directly.
//
// Writes are queued and applied in order. A synchronous call drains every
// queued write first, so a burst of drag events is folded into the one
// recomputation triggered by the next frame request.
type Session struct {
	pipe *Pipeline

	ops  chan func(context.Context)
	done chan struct{}
}

// NewSession wraps a pipeline. Run must be started before any other method
// is used.
func NewSession(p *Pipeline) *Session {
	return &Session{
		pipe: p,
		ops:  make(chan func(context.Context), 64),
		done: make(chan struct{}),
	}
}

// Run executes queued operations until ctx is cancelled. It always returns
// nil so an errgroup keeps the other preview goroutines alive.
func (s *Session) Run(ctx context.Context) error {
	defer close(s.done)
	for {
		select {
		case <-ctx.Done():
			return nil
		case op := <-s.ops:
			op(ctx)
			s.drain(ctx)
		}
	}
}

func (s *Session) drain(ctx context.Context) {
	for {
		select {
		case op := <-s.ops:
			op(ctx)
		default:
			return
		}
	}
}

// Update queues a write. It never blocks on recomputation; the work runs on
// the session goroutine before the next synchronous call completes.
func (s *Session) Update(op func(p *Pipeline)) {
	select {
	case s.ops <- func(context.Context) { op(s.pipe) }:
	case <-s.done:
	}
}

// SetPage queues a page switch.
func (s *Session) SetPage(n int) {
	s.Update(func(p *Pipeline) { p.SetPage(n) })
}

// SetPlacement queues a signature move.
func (s *Session) SetPlacement(pl domain.Placement) {
	s.Update(func(p *Pipeline) { p.SetPlacement(pl) })
}

// SetDPI queues a raster resolution change.
func (s *Session) SetDPI(n int) {
	s.Update(func(p *Pipeline) { p.SetDPI(n) })
}

// SetViewport queues a terminal area change.
func (s *Session) SetViewport(cols, rows int) {
	s.Update(func(p *Pipeline) { p.SetViewport(Viewport{Cols: cols, Rows: rows}) })
}

// SwitchSignature changes the artwork. It runs synchronously so an
// unreadable file is reported to the caller instead of surfacing on some
// later frame.
func (s *Session) SwitchSignature(ctx context.Context, sig domain.Signature) error {
	_, err := call(ctx, s, func(_ context.Context, p *Pipeline) (struct{}, error) {
		return struct{}{}, p.SetSignature(sig)
	})
	return err
}

// call runs fn on the session goroutine and waits for its result.
func call[T any](ctx context.Context, s *Session, fn func(ctx context.Context, p *Pipeline) (T, error)) (T, error) {
	type result struct {
		v   T
		err error
	}
	ch := make(chan result, 1)
	op := func(opCtx context.Context) {
		v, err := fn(opCtx, s.pipe)
		ch <- result{v: v, err: err}
	}

	var zero T
	select {
	case s.ops <- op:
	case <-s.done:
		return zero, ErrSessionClosed
	case <-ctx.Done():
		return zero, ctx.Err()
	}

	select {
	case res := <-ch:
		return res.v, res.err
	case <-s.done:
		return zero, ErrSessionClosed
	}
}

// Frame renders the current state, applying all queued writes first.
func (s *Session) Frame(ctx context.Context) (Snapshot, error) {
	return call(ctx, s, func(ctx context.Context, p *Pipeline) (Snapshot, error) {
		return p.Frame(ctx)
	})
}

// Save writes the signed document, applying all queued writes first.
func (s *Session) Save(ctx context.Context, outPath string) (string, error) {
	return call(ctx, s, func(ctx context.Context, p *Pipeline) (string, error) {
		return p.Save(ctx, outPath)
	})
}

// Refresh re-stamps the input files, typically after a watcher event.
func (s *Session) Refresh(ctx context.Context) error {
	_, err := call(ctx, s, func(ctx context.Context, p *Pipeline) (struct{}, error) {
		return struct{}{}, p.Refresh(ctx)
	})
	return err
}

// Resolve maps a page spec against the document on the session goroutine.
func (s *Session) Resolve(ctx context.Context, spec domain.PageSpec) (int, error) {
	return call(ctx, s, func(ctx context.Context, p *Pipeline) (int, error) {
		return p.ResolvePage(ctx, spec)
	})
}

// Stats reports recompute counts, synchronized with queued work.
func (s *Session) Stats(ctx context.Context) (map[string]int, error) {
	return call(ctx, s, func(ctx context.Context, p *Pipeline) (map[string]int, error) {
		return p.Stats(), nil
	})
}
