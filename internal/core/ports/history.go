package ports

import "go.trai.ch/sigil/internal/core/domain"

// HistoryStore remembers placements across runs, keyed by target document.
// This is presentation state for reopening a preview, not a computation
// cache; the incremental engine never reads it.
//
//go:generate mockgen -source=history.go -destination=mocks/mock_history.go -package=mocks
type HistoryStore interface {
	// Lookup returns the stored entry for a target document. ok is false
	// when nothing is stored.
	Lookup(target string) (entry domain.HistoryEntry, ok bool, err error)
	// Save stores the entry for a target document.
	Save(target string, entry domain.HistoryEntry) error
	// Clear removes all stored entries.
	Clear() error
}
