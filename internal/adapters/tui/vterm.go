package tui

import (
	"bytes"
	"sync"

	"github.com/vito/midterm"
)

// Vterm renders external tool output through a virtual terminal, so ANSI
// sequences in tool stderr come out as styled cells instead of garbage.
type Vterm struct {
	mu      sync.Mutex
	vt      *midterm.Terminal
	offset  int
	height  int
	viewBuf bytes.Buffer
}

// NewVterm creates an empty terminal.
func NewVterm() *Vterm {
	return &Vterm{
		vt:     midterm.NewAutoResizingTerminal(),
		height: 1,
	}
}

// Write appends tool output. The view sticks to the live end unless the
// user has scrolled up.
func (v *Vterm) Write(p []byte) (int, error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	atBottom := v.offset >= v.maxOffset()
	n, err := v.vt.Write(p)
	if atBottom {
		v.offset = v.maxOffset()
	}
	return n, err
}

// SetSize resizes the visible window. Width is the wrap column of the
// underlying terminal.
func (v *Vterm) SetSize(w, h int) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}

	atBottom := v.offset >= v.maxOffset()
	v.height = h
	v.vt.ResizeX(w)
	if atBottom || v.offset > v.maxOffset() {
		v.offset = v.maxOffset()
	}
}

// ScrollBy moves the window by delta lines, negative is up.
func (v *Vterm) ScrollBy(delta int) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.offset = clampInt(v.offset+delta, 0, v.maxOffset())
}

// ScrollTop jumps to the oldest line.
func (v *Vterm) ScrollTop() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.offset = 0
}

// ScrollBottom jumps back to the live end.
func (v *Vterm) ScrollBottom() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.offset = v.maxOffset()
}

// Offset returns the index of the first visible line.
func (v *Vterm) Offset() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.offset
}

// MaxOffset returns the largest valid offset.
func (v *Vterm) MaxOffset() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.maxOffset()
}

// UsedHeight returns the number of lines written so far.
func (v *Vterm) UsedHeight() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.vt.UsedHeight()
}

// View renders the visible window.
func (v *Vterm) View() string {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.offset = clampInt(v.offset, 0, v.maxOffset())
	v.viewBuf.Reset()
	for i := range v.height {
		row := v.offset + i
		if row >= v.vt.UsedHeight() {
			break
		}
		if i > 0 {
			v.viewBuf.WriteByte('\n')
		}
		_ = v.vt.RenderLine(&v.viewBuf, row)
	}
	return v.viewBuf.String()
}

func (v *Vterm) maxOffset() int {
	return max(v.vt.UsedHeight()-v.height, 0)
}

func clampInt(n, lo, hi int) int {
	if n < lo {
		return lo
	}
	if n > hi {
		return hi
	}
	return n
}
