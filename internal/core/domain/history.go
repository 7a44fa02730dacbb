package domain

// HistoryEntry is what sigil remembers about the last signing of a
// document, so the preview reopens where the user left off.
type HistoryEntry struct {
	Placement Placement `json:"placement,omitzero"`
	Signature string    `json:"signature,omitzero"`
	Page      string    `json:"page,omitzero"`
}
