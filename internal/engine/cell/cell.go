package cell

import (
	"context"

	"go.trai.ch/zerr"
)

// Fn is a cell computation. It may read other cells of the same Runtime;
// every such read is recorded as a dependency of the computed cell.
type Fn[T comparable] func(ctx context.Context) (T, error)

// Cell is a memoized value that tracks which other cells it was computed
// from. Reading a cell returns the cached value when nothing upstream
// changed and recomputes it otherwise. Writing a cell marks its transitive
// dependents dirty without recomputing anything.
type Cell[T comparable] struct {
	rt *Runtime
	m  meta

	val T
	fn  Fn[T]
}

// New returns a cell computed by fn. The computation does not run until the
// first Get.
func New[T comparable](rt *Runtime, name string, fn Fn[T]) *Cell[T] {
	c := &Cell[T]{rt: rt, fn: fn}
	c.m.init(name)
	return c
}

// NewVolatile returns a computed cell whose identity covers its inputs as
// well as its value. Use it when fn returns a stable handle, such as a fixed
// output path rewritten in place, that hides upstream changes from plain
// value comparison.
func NewVolatile[T comparable](rt *Runtime, name string, fn Fn[T]) *Cell[T] {
	c := New(rt, name, fn)
	c.m.volatile = true
	return c
}

// NewLiteral returns a cell holding a constant until the next Set.
func NewLiteral[T comparable](rt *Runtime, name string, v T) *Cell[T] {
	c := &Cell[T]{rt: rt, val: v}
	c.m.init(name)
	return c
}

// Name returns the name the cell was created with.
func (c *Cell[T]) Name() string {
	return c.m.name
}

// Get returns the cell's current value, recomputing it first if a
// transitively reachable input changed. When called from inside another
// cell's computation the read is recorded as a dependency of that cell.
func (c *Cell[T]) Get(ctx context.Context) (T, error) {
	if err := c.resolve(ctx); err != nil {
		var zero T
		return zero, err
	}
	c.rt.observe(c)
	return c.val, nil
}

// Set replaces the cell's source with a literal value. Writing the value the
// cell already holds is a no-op. Otherwise the cell and its transitive
// dependents are marked dirty; nothing recomputes until the next Get.
func (c *Cell[T]) Set(v T) {
	if c.fn == nil && v == c.val {
		return
	}
	if c.fn != nil {
		c.fn = nil
		c.dropEdges()
	}
	c.val = v
	c.m.stale = true
	c.m.invalidate()
}

// SetFunc replaces the cell's source with a new computation. Functions are
// never considered equal, so this always marks the cell and its transitive
// dependents dirty.
func (c *Cell[T]) SetFunc(fn Fn[T]) {
	c.fn = fn
	c.m.stale = true
	c.m.invalidate()
}

func (c *Cell[T]) node() *meta {
	return &c.m
}

// resolve brings the cell up to date. An up-to-date cell returns
// immediately. A dirty cell first re-resolves its recorded precedents and
// compares their identities against the snapshots taken when this cell last
// ran; recomputation happens only if one of them actually changed, or if the
// cell's own source was replaced. The first mismatch settles the question,
// so later precedents are not examined here. Recomputation reads every input
// it uses through Get, so values observed by the new run are always fresh.
func (c *Cell[T]) resolve(ctx context.Context) error {
	m := &c.m
	if m.upToDate {
		return nil
	}
	if m.visiting {
		return zerr.With(ErrCycle, "cell", m.name)
	}
	m.visiting = true
	defer func() { m.visiting = false }()

	// Nested resolves must not be attributed to whoever is evaluating
	// above us.
	outer := c.rt.active
	c.rt.active = nil
	defer func() { c.rt.active = outer }()

	if !m.stale {
		for i, p := range m.pre {
			if err := p.resolve(ctx); err != nil {
				return err
			}
			if p.node().identity != m.snaps[i] {
				m.stale = true
				break
			}
		}
	}
	if m.stale {
		if err := c.recompute(ctx); err != nil {
			return err
		}
	}
	m.upToDate = true
	return nil
}

// recompute reruns the cell's source and rebuilds its edges. Edges
// discovered by the run are collected in a frame and committed together
// with the new value; if the computation fails, the frame is discarded and
// the previous value, edges and snapshots remain in place, with the cell
// still marked for recomputation.
func (c *Cell[T]) recompute(ctx context.Context) error {
	m := &c.m

	if c.fn == nil {
		m.identity = fingerprint(c.rt, c.val)
		m.stale = false
		return nil
	}

	fr := &frame{}
	m.frame = fr
	c.rt.active = m
	v, err := c.fn(ctx)
	c.rt.active = nil
	m.frame = nil

	if err != nil {
		for _, p := range fr.pre {
			pm := p.node()
			if !hasNode(m.pre, pm) {
				delete(pm.dependents, m.self)
			}
		}
		return zerr.With(err, "cell", m.name)
	}

	for _, p := range m.pre {
		pm := p.node()
		if !hasNode(fr.pre, pm) {
			delete(pm.dependents, m.self)
		}
	}
	m.pre = fr.pre
	m.snaps = fr.snaps

	c.val = v
	vfp := fingerprint(c.rt, v)
	if m.volatile {
		m.identity = foldIdentity(vfp, m.snaps)
	} else {
		m.identity = vfp
	}
	m.stale = false
	return nil
}

// dropEdges detaches the cell from its precedents. Called when a write turns
// a computation into a literal, which by definition has no inputs.
func (c *Cell[T]) dropEdges() {
	m := &c.m
	for _, p := range m.pre {
		delete(p.node().dependents, m.self)
	}
	m.pre = nil
	m.snaps = nil
}
