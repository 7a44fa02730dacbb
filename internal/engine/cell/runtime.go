// Package cell implements an incremental, dependency-tracked computation
// cache. A cell holds either a literal value or a zero-argument computation
// and memoizes its result. Dependencies between cells are not declared up
// front: whenever a computation reads another cell through the same Runtime,
// an edge is recorded from the reader to the cell it read. Writing a cell
// lazily invalidates its transitive dependents; the next read re-validates
// recorded inputs against snapshots taken at the previous run and recomputes
// only the cells whose inputs actually changed value.
//
// The engine is single threaded. All cells attached to one Runtime must be
// read and written from the same goroutine.
package cell

import (
	"context"
	"encoding/binary"
	"hash/maphash"
	"weak"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/zerr"
)

// ErrCycle is returned when a computation reads a cell that is currently
// being resolved further up the same evaluation stack.
var ErrCycle = zerr.New("dependency cycle detected")

// Runtime carries the ambient evaluation state shared by a group of cells:
// the cell currently recomputing, if any, and the seed used to fingerprint
// cell values. It replaces the usual global "current observer" variable so
// independent cell graphs never interfere.
type Runtime struct {
	seed   maphash.Seed
	active *meta
}

// NewRuntime returns a Runtime with a fresh fingerprint seed.
func NewRuntime() *Runtime {
	return &Runtime{seed: maphash.MakeSeed()}
}

// handle is the type-erased view of a cell used for precedent bookkeeping,
// so cells of different result types can appear in one precedent list.
type handle interface {
	resolve(ctx context.Context) error
	node() *meta
}

// frame accumulates the edges discovered during one recomputation. It is
// swapped into the cell's persistent lists only if the computation succeeds.
type frame struct {
	pre   []handle
	snaps []uint64
}

// meta holds the non-generic bookkeeping of a cell: freshness flags,
// identity, precedent edges with their identity snapshots, and the set of
// dependents to invalidate on change. Dependents are weak references; being
// observed does not keep a cell alive.
type meta struct {
	name     string
	upToDate bool
	stale    bool
	volatile bool
	visiting bool

	identity uint64
	pre      []handle
	snaps    []uint64

	dependents map[weak.Pointer[meta]]struct{}
	self       weak.Pointer[meta]

	frame *frame
}

func (m *meta) init(name string) {
	m.name = name
	m.stale = true
	m.dependents = make(map[weak.Pointer[meta]]struct{})
	m.self = weak.Make(m)
}

// invalidate clears upToDate on this cell and cascades to its dependents.
// Already dirty cells are skipped, which bounds the traversal to the clean
// frontier. Dead weak references are pruned on the way.
func (m *meta) invalidate() {
	if !m.upToDate {
		return
	}
	m.upToDate = false
	for wp := range m.dependents {
		d := wp.Value()
		if d == nil {
			delete(m.dependents, wp)
			continue
		}
		d.invalidate()
	}
}

// observe wires the edge for a completed read: the active cell, if any,
// records h as a precedent together with h's identity at this moment, and h
// records the active cell as a dependent.
func (rt *Runtime) observe(h handle) {
	outer := rt.active
	if outer == nil {
		return
	}
	m := h.node()
	outer.frame.pre = append(outer.frame.pre, h)
	outer.frame.snaps = append(outer.frame.snaps, m.identity)
	m.dependents[outer.self] = struct{}{}
}

// fingerprint maps a cell value to the 64-bit identity used for snapshot
// comparison. Equal values always map to equal identities; distinct values
// collide with negligible probability.
func fingerprint[T comparable](rt *Runtime, v T) uint64 {
	return maphash.Comparable(rt.seed, v)
}

// foldIdentity derives a volatile cell's identity from its own value
// fingerprint and the snapshots it took of its precedents, so a change
// anywhere upstream shifts the identity even when the value itself is a
// stable handle.
func foldIdentity(valueFP uint64, snaps []uint64) uint64 {
	h := xxhash.New()
	_ = binary.Write(h, binary.LittleEndian, valueFP)
	for _, s := range snaps {
		_ = binary.Write(h, binary.LittleEndian, s)
	}
	return h.Sum64()
}

func hasNode(pre []handle, m *meta) bool {
	for _, p := range pre {
		if p.node() == m {
			return true
		}
	}
	return false
}
