package tui

import (
	"github.com/charmbracelet/lipgloss"
	"go.trai.ch/sigil/internal/ui/style"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Padding(0, 1).
			Background(style.Indigo).
			Foreground(style.Paper)

	paneStyle = lipgloss.NewStyle().
			PaddingLeft(1)

	statusDimStyle = lipgloss.NewStyle().
			Foreground(style.Slate)

	stepStyle = lipgloss.NewStyle().
			Foreground(style.Slate)

	noticeOKStyle = lipgloss.NewStyle().
			Foreground(style.Green).
			Bold(true)

	noticeErrStyle = lipgloss.NewStyle().
			Foreground(style.Red).
			Bold(true)

	stepDoneStyle = lipgloss.NewStyle().
			Foreground(style.Green)

	stepFailStyle = lipgloss.NewStyle().
			Foreground(style.Red)

	spinnerStyle = lipgloss.NewStyle().
			Foreground(style.Indigo)
)
