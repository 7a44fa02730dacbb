package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.trai.ch/sigil/internal/core/ports"
)

var _ ports.StepSink = (*Sink)(nil)

// Sink forwards step lifecycle events into the program's message loop. It
// may be called from any goroutine.
type Sink struct {
	program *tea.Program
}

// NewSink creates a sink feeding the given program.
func NewSink(p *tea.Program) *Sink {
	return &Sink{program: p}
}

// OnStepStart implements ports.StepSink.
func (s *Sink) OnStepStart(spanID, name string, startTime time.Time) {
	s.program.Send(MsgStepStart{SpanID: spanID, Name: name, Start: startTime})
}

// OnStepLog implements ports.StepSink.
func (s *Sink) OnStepLog(spanID string, data []byte) {
	s.program.Send(MsgStepLog{SpanID: spanID, Data: data})
}

// OnStepEnd implements ports.StepSink.
func (s *Sink) OnStepEnd(spanID string, endTime time.Time, err error) {
	s.program.Send(MsgStepEnd{SpanID: spanID, End: endTime, Err: err})
}
