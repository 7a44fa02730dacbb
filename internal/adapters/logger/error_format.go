package logger

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"

	"go.trai.ch/zerr"
)

// errorEntry is one level of an error chain: the message of that level plus
// any structured fields attached to it.
type errorEntry struct {
	Message  string
	Metadata map[string]any
}

// collectErrorEntries walks the chain from err outward. Each zerr error
// contributes its bare message and fields, and the walk continues into its
// cause. The first foreign error ends the walk with its full Error() text,
// since everything it wraps is already part of that text.
func collectErrorEntries(err error) []errorEntry {
	var entries []errorEntry

	for current := err; current != nil; {
		zErr, ok := current.(*zerr.Error)
		if !ok {
			entries = append(entries, errorEntry{Message: current.Error()})
			break
		}
		entries = append(entries, errorEntry{
			Message:  zErr.Message(),
			Metadata: zErr.Metadata(),
		})
		current = errors.Unwrap(current)
	}

	return entries
}

// formatErrorEntries renders a chain as a headline followed by an indented
// "Caused by:" list. Fields print under their level with sorted keys.
func formatErrorEntries(entries []errorEntry) string {
	if len(entries) == 0 {
		return ""
	}

	var lines []string
	render := func(entry errorEntry, head, cont string) {
		msgLines := strings.Split(entry.Message, "\n")
		lines = append(lines, head+msgLines[0])
		for _, line := range msgLines[1:] {
			lines = append(lines, cont+line)
		}
		for _, key := range slices.Sorted(maps.Keys(entry.Metadata)) {
			lines = append(lines, fmt.Sprintf("%s%s: %v", cont, key, entry.Metadata[key]))
		}
	}

	render(entries[0], "Error: ", "       ")
	for i, entry := range entries[1:] {
		if i == 0 {
			lines = append(lines, "", "  Caused by:")
		}
		render(entry, "    → ", "      ")
	}

	return strings.Join(lines, "\n")
}
