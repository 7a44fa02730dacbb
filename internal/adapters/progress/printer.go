// Package progress prints plain step progress lines for non-interactive
// runs, one completed step per line.
package progress

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/muesli/termenv"
	"go.trai.ch/sigil/internal/core/ports"
	"go.trai.ch/sigil/internal/ui/output"
	"go.trai.ch/sigil/internal/ui/style"
)

var _ ports.StepSink = (*Printer)(nil)

// Printer implements ports.StepSink for batch mode. Tool output is prefixed
// with its step name; completions print with a symbol and duration.
type Printer struct {
	out *termenv.Output

	mu    sync.Mutex
	steps map[string]*stepState
	bufs  map[string]*bytes.Buffer
}

type stepState struct {
	name  string
	start time.Time
}

// NewPrinter creates a printer writing to w. A nil writer falls back to
// stderr. Colors stay at plain ANSI, which survives CI log capture.
func NewPrinter(w io.Writer) *Printer {
	if w == nil {
		w = os.Stderr
	}

	return &Printer{
		out:   output.NewWithProfile(w, output.ColorProfileANSI),
		steps: make(map[string]*stepState),
		bufs:  make(map[string]*bytes.Buffer),
	}
}

// OnStepStart records the step. Nothing prints until there is output or a
// completion, so cache hits stay silent in the step stream.
func (p *Printer) OnStepStart(spanID, name string, startTime time.Time) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.steps[spanID] = &stepState{name: name, start: startTime}
	p.bufs[spanID] = new(bytes.Buffer)
}

// OnStepLog buffers data and prints complete lines with the step prefix.
func (p *Printer) OnStepLog(spanID string, data []byte) {
	p.mu.Lock()
	defer p.mu.Unlock()

	step, ok := p.steps[spanID]
	if !ok {
		return
	}

	buf := p.bufs[spanID]
	buf.Write(data)

	for {
		line, err := buf.ReadBytes('\n')
		if err != nil {
			if len(line) > 0 {
				rest := new(bytes.Buffer)
				rest.Write(line)
				p.bufs[spanID] = rest
			}
			break
		}
		p.printLineLocked(step.name, line)
	}
}

// OnStepEnd flushes buffered output and prints the completion line.
func (p *Printer) OnStepEnd(spanID string, endTime time.Time, err error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	step, ok := p.steps[spanID]
	if !ok {
		return
	}

	p.flushLocked(spanID)

	duration := formatDuration(endTime.Sub(step.start))
	if err != nil {
		symbol := p.out.String(style.Cross).Foreground(termenv.ANSIRed).String()
		_, _ = fmt.Fprintf(p.out, "%s %s (%s): %v\n", symbol, step.name, duration, err)
	} else {
		symbol := p.out.String(style.Check).Foreground(termenv.ANSIGreen).String()
		_, _ = fmt.Fprintf(p.out, "%s %s (%s)\n", symbol, step.name, duration)
	}

	delete(p.steps, spanID)
	delete(p.bufs, spanID)
}

// Flush prints any buffered partial lines. Called once the run is over.
func (p *Printer) Flush() {
	p.mu.Lock()
	defer p.mu.Unlock()

	for spanID := range p.bufs {
		p.flushLocked(spanID)
	}
}

func (p *Printer) flushLocked(spanID string) {
	step, ok := p.steps[spanID]
	if !ok {
		return
	}

	buf := p.bufs[spanID]
	if buf.Len() > 0 {
		p.printLineLocked(step.name, buf.Bytes())
		buf.Reset()
	}
}

func (p *Printer) printLineLocked(name string, line []byte) {
	line = bytes.TrimSuffix(line, []byte("\n"))
	line = bytes.TrimSuffix(line, []byte("\r"))
	if len(line) == 0 {
		return
	}

	prefix := p.out.String(fmt.Sprintf("[%s]", name)).Faint().String()
	_, _ = fmt.Fprintf(p.out, "%s %s\n", prefix, string(line))
}

func formatDuration(d time.Duration) string {
	if d < time.Millisecond {
		return "<1ms"
	}
	return d.Round(time.Millisecond).String()
}
