package tui

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"go.trai.ch/sigil/internal/core/domain"
	"go.trai.ch/sigil/internal/ui/style"
)

// View renders the preview: the page frame, an optional output or help
// pane, the status bar, and the short help line.
func (m *Model) View() string {
	if m.Width == 0 {
		return "Initializing..."
	}

	sections := []string{m.frameView()}
	switch {
	case m.Help.ShowAll:
		sections = append(sections, m.helpPane())
	case m.ShowLog:
		sections = append(sections, m.logPane())
	}
	sections = append(sections, m.statusBar(), m.shortHelp())

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m *Model) frameView() string {
	rows := m.frameRows()
	if !m.HaveFrame {
		placeholder := m.Spinner.View() + " rendering preview"
		return lipgloss.Place(m.Width, rows, lipgloss.Center, lipgloss.Center, placeholder)
	}
	return lipgloss.Place(m.Width, rows, lipgloss.Center, lipgloss.Center, m.Snap.ANSI)
}

func (m *Model) logPane() string {
	body := paneStyle.Height(paneRows).Render(m.Term.View())
	return titleStyle.Render("output") + "\n" + body
}

func (m *Model) helpPane() string {
	body := paneStyle.Height(paneRows).Render(m.Help.View(m.Keys))
	return titleStyle.Render("keys") + "\n" + body
}

func (m *Model) shortHelp() string {
	h := m.Help
	h.ShowAll = false
	return h.View(m.Keys)
}

func (m *Model) statusBar() string {
	left := m.statusLeft()
	right := m.statusRight()

	pad := m.Width - lipgloss.Width(left) - lipgloss.Width(right)
	if pad < 1 {
		pad = 1
	}
	return left + strings.Repeat(" ", pad) + right
}

func (m *Model) statusLeft() string {
	pl := m.Placement
	sep := statusDimStyle.Render(" · ")

	segments := []string{
		fmt.Sprintf("page %d/%d", m.Page, m.Snap.PageCount),
		fmt.Sprintf("%s %s,%spt (%.1f,%.1fmm)", pl.Anchor,
			fmtPt(pl.DX), fmtPt(pl.DY),
			pl.DX*domain.MMPerPoint, pl.DY*domain.MMPerPoint),
		fmt.Sprintf("×%.2f", pl.Scale),
		fmt.Sprintf("%ddpi", m.DPI),
	}
	if m.Snap.Signature != "" {
		segments = append(segments, style.Pen+" "+filepath.Base(m.Snap.Signature))
	}
	if !m.Snap.PageSize.IsZero() {
		segments = append(segments, statusDimStyle.Render(
			fmt.Sprintf("%.0f×%.0fpt", m.Snap.PageSize.W, m.Snap.PageSize.H)))
	}
	return strings.Join(segments, sep)
}

func (m *Model) statusRight() string {
	switch {
	case m.Notice != "" && m.NoticeErr:
		return noticeErrStyle.Render(style.Cross + " " + firstLine(m.Notice))
	case m.Notice != "":
		return noticeOKStyle.Render(style.Check + " " + firstLine(m.Notice))
	case m.Saving:
		return stepStyle.Render(m.Spinner.View() + " saving")
	case m.Computing && m.Step != "":
		return stepStyle.Render(m.Spinner.View() + " " + m.Step)
	case m.Computing:
		return stepStyle.Render(m.Spinner.View())
	}
	return statusDimStyle.Render(filepath.Base(m.Target))
}

func fmtPt(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
