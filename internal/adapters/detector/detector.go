// Package detector answers whether the terminal can host the interactive
// preview.
package detector

import (
	"os"

	"golang.org/x/term"
)

// Environment describes the run context relevant to mode selection.
type Environment struct {
	IsTTY bool
	IsCI  bool
}

// Detect inspects stdout and the CI convention variables.
func Detect() Environment {
	ci := os.Getenv("CI")
	return Environment{
		IsTTY: term.IsTerminal(int(os.Stdout.Fd())),
		IsCI:  ci == "true" || ci == "1",
	}
}

// CanPreview reports whether the interactive preview can run here. CI wins
// over a TTY, since CI systems often allocate pseudo-terminals.
func (e Environment) CanPreview() bool {
	return e.IsTTY && !e.IsCI
}
