package tui

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/dustin/go-humanize"
	"go.trai.ch/sigil/internal/core/domain"
	"go.trai.ch/sigil/internal/engine/pipeline"
	"go.trai.ch/sigil/internal/ui/style"
)

const (
	// nudgeStep is how far one keypress moves the signature, in points.
	nudgeStep = 5.0
	// scaleStep is the factor one keypress grows or shrinks the signature.
	scaleStep = 1.1
	// chromeRows is the status bar plus the short help line.
	chromeRows = 2
	// paneRows is the height of the output or help pane, excluding its
	// title line.
	paneRows = 10
)

// dpiCycle holds the raster resolutions the d key steps through.
var dpiCycle = []int{72, 96, 144}

// anchorCycle walks the page perimeter, then the center.
var anchorCycle = []domain.Anchor{
	domain.AnchorBottomLeft,
	domain.AnchorBottomRight,
	domain.AnchorTopRight,
	domain.AnchorTopLeft,
	domain.AnchorCenter,
}

// Driver is what the preview needs from the signing session. Setters queue
// writes; Frame applies everything queued and renders.
type Driver interface {
	SetPage(n int)
	SetPlacement(pl domain.Placement)
	SetDPI(n int)
	SetViewport(cols, rows int)
	SwitchSignature(ctx context.Context, sig domain.Signature) error
	Frame(ctx context.Context) (pipeline.Snapshot, error)
	Refresh(ctx context.Context) error
	Save(ctx context.Context, outPath string) (string, error)
}

// Model is the bubbletea model for the interactive preview.
type Model struct {
	drv Driver
	ctx context.Context

	Keys    KeyMap
	Help    help.Model
	Spinner spinner.Model
	Term    *Vterm

	// Pending edits. These lead the last snapshot until a frame confirms
	// them, so a burst of keypresses accumulates instead of resetting.
	Placement domain.Placement
	Page      int
	DPI       int

	Signatures []domain.Signature
	SigIdx     int

	Target  string
	OutPath string

	Width  int
	Height int

	Snap      pipeline.Snapshot
	HaveFrame bool

	// At most one frame computation is in flight; requests arriving in the
	// meantime are collapsed into the pending flags and replayed once.
	Computing      bool
	PendingFrame   bool
	PendingRefresh bool
	PendingSwitch  bool
	Saving         bool

	ShowLog bool

	Notice    string
	NoticeErr bool

	// Step is the name of the step currently recomputing, for the status
	// bar. Steps that are reused from cache never appear here.
	Step  string
	steps map[string]stepState
}

type stepState struct {
	name  string
	start time.Time
}

// Init waits for the first WindowSizeMsg; the initial frame needs the
// terminal size.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m, m.handleKey(msg)
	case tea.WindowSizeMsg:
		return m, m.handleResize(msg)
	case spinner.TickMsg:
		return m, m.handleSpinnerTick(msg)
	case MsgFrame:
		return m, m.handleFrame(msg)
	case MsgFrameError:
		return m, m.handleFrameError(msg)
	case MsgSaved:
		return m, m.handleSaved(msg)
	case MsgFileChanged:
		return m, m.requestRefresh()
	case MsgStepStart:
		m.handleStepStart(msg)
	case MsgStepLog:
		_, _ = m.Term.Write(msg.Data)
	case MsgStepEnd:
		m.handleStepEnd(msg)
	}
	return m, nil
}

//nolint:cyclop // one case per key binding
func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.Keys.Quit):
		return tea.Quit
	case key.Matches(msg, m.Keys.Help):
		m.Help.ShowAll = !m.Help.ShowAll
		m.ShowLog = false
		return m.applyViewport()
	case key.Matches(msg, m.Keys.Log):
		m.ShowLog = !m.ShowLog
		m.Help.ShowAll = false
		return m.applyViewport()
	case key.Matches(msg, m.Keys.Scroll):
		if m.ShowLog {
			m.scrollLog(msg.String())
		}
		return nil
	case key.Matches(msg, m.Keys.Up):
		return m.nudge(0, nudgeStep)
	case key.Matches(msg, m.Keys.Down):
		return m.nudge(0, -nudgeStep)
	case key.Matches(msg, m.Keys.Left):
		return m.nudge(-nudgeStep, 0)
	case key.Matches(msg, m.Keys.Right):
		return m.nudge(nudgeStep, 0)
	case key.Matches(msg, m.Keys.ScaleUp):
		return m.rescale(scaleStep)
	case key.Matches(msg, m.Keys.ScaleDown):
		return m.rescale(1 / scaleStep)
	case key.Matches(msg, m.Keys.Anchor):
		return m.cycleAnchor()
	case key.Matches(msg, m.Keys.NextPage):
		return m.turnPage(1)
	case key.Matches(msg, m.Keys.PrevPage):
		return m.turnPage(-1)
	case key.Matches(msg, m.Keys.NextSig):
		return m.cycleSignature()
	case key.Matches(msg, m.Keys.DPI):
		return m.cycleDPI()
	case key.Matches(msg, m.Keys.Refresh):
		return m.requestRefresh()
	case key.Matches(msg, m.Keys.Save):
		return m.save()
	}
	return nil
}

func (m *Model) handleResize(msg tea.WindowSizeMsg) tea.Cmd {
	m.Width = msg.Width
	m.Height = msg.Height
	m.Help.Width = msg.Width
	m.Term.SetSize(max(msg.Width-2, 1), paneRows)
	return m.applyViewport()
}

func (m *Model) handleSpinnerTick(msg spinner.TickMsg) tea.Cmd {
	if !m.Computing && !m.Saving {
		return nil
	}
	var cmd tea.Cmd
	m.Spinner, cmd = m.Spinner.Update(msg)
	return cmd
}

func (m *Model) handleFrame(msg MsgFrame) tea.Cmd {
	m.Computing = false
	m.Snap = msg.Snap
	m.HaveFrame = true
	m.Notice = ""
	m.NoticeErr = false
	return m.nextPending()
}

func (m *Model) handleFrameError(msg MsgFrameError) tea.Cmd {
	m.Computing = false
	m.Notice = msg.Err.Error()
	m.NoticeErr = true
	return m.nextPending()
}

func (m *Model) handleSaved(msg MsgSaved) tea.Cmd {
	m.Saving = false
	if msg.Err != nil {
		m.Notice = msg.Err.Error()
		m.NoticeErr = true
		return nil
	}
	m.Notice = "saved " + msg.Path
	if msg.Size > 0 {
		m.Notice += fmt.Sprintf(" (%s)", humanize.Bytes(uint64(msg.Size)))
	}
	m.NoticeErr = false
	return nil
}

func (m *Model) handleStepStart(msg MsgStepStart) {
	m.steps[msg.SpanID] = stepState{name: msg.Name, start: msg.Start}
	m.Step = msg.Name
}

func (m *Model) handleStepEnd(msg MsgStepEnd) {
	st, ok := m.steps[msg.SpanID]
	if !ok {
		return
	}
	delete(m.steps, msg.SpanID)
	if st.name == m.Step {
		m.Step = ""
	}

	duration := fmtDuration(msg.End.Sub(st.start))
	if msg.Err != nil {
		_, _ = fmt.Fprintf(m.Term, "%s %s (%s): %v\n",
			stepFailStyle.Render(style.Cross), st.name, duration, msg.Err)
	} else {
		_, _ = fmt.Fprintf(m.Term, "%s %s (%s)\n",
			stepDoneStyle.Render(style.Check), st.name, duration)
	}
}

// nudge moves the signature one step in screen direction: dx right, dy up.
// Offsets are measured toward the page interior, so the deltas flip with
// the anchor to keep arrow keys visually consistent.
func (m *Model) nudge(dx, dy float64) tea.Cmd {
	switch m.Placement.Anchor {
	case domain.AnchorBottomRight:
		dx = -dx
	case domain.AnchorTopLeft:
		dy = -dy
	case domain.AnchorTopRight:
		dx, dy = -dx, -dy
	}
	m.Placement = m.Placement.Shifted(dx, dy)
	m.drv.SetPlacement(m.Placement)
	return m.requestFrame()
}

func (m *Model) rescale(f float64) tea.Cmd {
	m.Placement = m.Placement.Rescaled(f)
	m.drv.SetPlacement(m.Placement)
	return m.requestFrame()
}

func (m *Model) cycleAnchor() tea.Cmd {
	next := anchorCycle[0]
	for i, a := range anchorCycle {
		if a == m.Placement.Anchor {
			next = anchorCycle[(i+1)%len(anchorCycle)]
			break
		}
	}
	m.Placement.Anchor = next
	m.drv.SetPlacement(m.Placement)
	return m.requestFrame()
}

func (m *Model) turnPage(delta int) tea.Cmd {
	if !m.HaveFrame {
		return nil
	}
	n := m.Page + delta
	if n < 1 || n > m.Snap.PageCount {
		return nil
	}
	m.Page = n
	m.drv.SetPage(n)
	return m.requestFrame()
}

func (m *Model) cycleSignature() tea.Cmd {
	if len(m.Signatures) < 2 {
		return nil
	}
	m.SigIdx = (m.SigIdx + 1) % len(m.Signatures)
	return m.requestSwitch()
}

func (m *Model) cycleDPI() tea.Cmd {
	next := dpiCycle[0]
	for i, dpi := range dpiCycle {
		if dpi == m.DPI {
			next = dpiCycle[(i+1)%len(dpiCycle)]
			break
		}
	}
	m.DPI = next
	m.drv.SetDPI(next)
	return m.requestFrame()
}

func (m *Model) save() tea.Cmd {
	if m.Saving {
		return nil
	}
	m.Saving = true
	return tea.Batch(m.saveCmd(), m.Spinner.Tick)
}

func (m *Model) requestFrame() tea.Cmd {
	if m.Computing {
		m.PendingFrame = true
		return nil
	}
	m.Computing = true
	return tea.Batch(m.frameCmd(), m.Spinner.Tick)
}

func (m *Model) requestRefresh() tea.Cmd {
	if m.Computing {
		m.PendingRefresh = true
		return nil
	}
	m.Computing = true
	return tea.Batch(m.refreshCmd(), m.Spinner.Tick)
}

func (m *Model) requestSwitch() tea.Cmd {
	if m.Computing {
		m.PendingSwitch = true
		return nil
	}
	m.Computing = true
	return tea.Batch(m.switchSigCmd(m.Signatures[m.SigIdx]), m.Spinner.Tick)
}

// nextPending replays the highest priority queued request once the
// in-flight frame lands. Remaining flags are picked up by later frames.
func (m *Model) nextPending() tea.Cmd {
	switch {
	case m.PendingSwitch:
		m.PendingSwitch = false
		return m.requestSwitch()
	case m.PendingRefresh:
		m.PendingRefresh = false
		return m.requestRefresh()
	case m.PendingFrame:
		m.PendingFrame = false
		return m.requestFrame()
	}
	return nil
}

// applyViewport pushes the current frame area to the pipeline and renders
// at the new size.
func (m *Model) applyViewport() tea.Cmd {
	if m.Width == 0 {
		return nil
	}
	m.drv.SetViewport(m.Width, m.frameRows())
	return m.requestFrame()
}

func (m *Model) frameRows() int {
	rows := m.Height - chromeRows
	if m.paneOpen() {
		rows -= paneRows + 1
	}
	return max(rows, 1)
}

func (m *Model) paneOpen() bool {
	return m.ShowLog || m.Help.ShowAll
}

func (m *Model) scrollLog(k string) {
	switch k {
	case "pgup":
		m.Term.ScrollBy(-paneRows)
	case "pgdown":
		m.Term.ScrollBy(paneRows)
	case "home":
		m.Term.ScrollTop()
	case "end":
		m.Term.ScrollBottom()
	}
}

func fmtDuration(d time.Duration) string {
	if d < time.Millisecond {
		return "<1ms"
	}
	return d.Round(time.Millisecond).String()
}
