package tui

import (
	"time"

	"go.trai.ch/sigil/internal/engine/pipeline"
)

// MsgFrame delivers a freshly rendered frame.
type MsgFrame struct {
	Snap pipeline.Snapshot
}

// MsgFrameError reports a failed recomputation. The previous frame stays on
// screen.
type MsgFrameError struct {
	Err error
}

// MsgSaved reports the outcome of writing the signed document.
type MsgSaved struct {
	Path string
	Size int64
	Err  error
}

// MsgFileChanged is sent when a watched input file was rewritten on disk.
type MsgFileChanged struct {
	Path string
}

// MsgStepStart is sent when a pipeline step begins recomputing.
type MsgStepStart struct {
	SpanID string
	Name   string
	Start  time.Time
}

// MsgStepLog carries external tool output for the output pane.
type MsgStepLog struct {
	SpanID string
	Data   []byte
}

// MsgStepEnd is sent when a pipeline step finishes.
type MsgStepEnd struct {
	SpanID string
	End    time.Time
	Err    error
}
