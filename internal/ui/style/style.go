// Package style holds the shared color palette and icons used across the CLI.
package style

import "github.com/charmbracelet/lipgloss"

// Palette.
var (
	Indigo = lipgloss.Color("#5B5FE9")
	Slate  = lipgloss.Color("#64748B")
	Ink    = lipgloss.Color("#111827")
	Paper  = lipgloss.Color("#F8FAFC")
	Green  = lipgloss.Color("#16A34A")
	Red    = lipgloss.Color("#DC2626")
	Amber  = lipgloss.Color("#D97706")
)

// Icons.
const (
	Check   = "✓"
	Cross   = "✗"
	Warning = "!"
	Pen     = "✎"
	Dot     = "●"
	Circle  = "○"
)
