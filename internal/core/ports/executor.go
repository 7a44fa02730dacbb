// Package ports defines the core interfaces for the application.
package ports

import "context"

// Command describes one external tool invocation.
type Command struct {
	// Name is the tool binary, resolved against PATH.
	Name string
	// Args are the arguments, one element per argv entry.
	Args []string
	// Dir is the working directory; empty means the process default.
	Dir string
	// Env contains extra environment variables in "KEY=VALUE" format,
	// merged over the inherited allow-list.
	Env []string
}

// Result carries what a finished tool produced.
type Result struct {
	// Stdout is the captured standard output. Several adapters parse it.
	Stdout []byte
	// ExitCode is the tool's exit status.
	ExitCode int
}

// Executor defines the interface for running external tools.
//
//go:generate mockgen -source=executor.go -destination=mocks/mock_executor.go -package=mocks
type Executor interface {
	// Run executes the command and waits for it. Standard output is
	// captured into the result; standard error is streamed to the logger
	// and the active span. A non-zero exit returns an error carrying the
	// exit code.
	Run(ctx context.Context, cmd Command) (Result, error)
}
