package tui

import (
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"go.trai.ch/sigil/internal/core/domain"
)

// frameCmd renders a frame with every queued write applied.
func (m *Model) frameCmd() tea.Cmd {
	return func() tea.Msg {
		snap, err := m.drv.Frame(m.ctx)
		if err != nil {
			return MsgFrameError{Err: err}
		}
		return MsgFrame{Snap: snap}
	}
}

// refreshCmd re-reads the input files, then renders.
func (m *Model) refreshCmd() tea.Cmd {
	return func() tea.Msg {
		if err := m.drv.Refresh(m.ctx); err != nil {
			return MsgFrameError{Err: err}
		}
		snap, err := m.drv.Frame(m.ctx)
		if err != nil {
			return MsgFrameError{Err: err}
		}
		return MsgFrame{Snap: snap}
	}
}

// switchSigCmd swaps the artwork, then renders. A rejected file leaves the
// previous signature in place.
func (m *Model) switchSigCmd(sig domain.Signature) tea.Cmd {
	return func() tea.Msg {
		if err := m.drv.SwitchSignature(m.ctx, sig); err != nil {
			return MsgFrameError{Err: err}
		}
		snap, err := m.drv.Frame(m.ctx)
		if err != nil {
			return MsgFrameError{Err: err}
		}
		return MsgFrame{Snap: snap}
	}
}

// saveCmd writes the signed document and reports its size.
func (m *Model) saveCmd() tea.Cmd {
	outPath := m.OutPath
	return func() tea.Msg {
		path, err := m.drv.Save(m.ctx, outPath)
		if err != nil {
			return MsgSaved{Err: err}
		}
		var size int64
		if fi, statErr := os.Stat(path); statErr == nil {
			size = fi.Size()
		}
		return MsgSaved{Path: path, Size: size}
	}
}
