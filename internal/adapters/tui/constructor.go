// Package tui implements the interactive placement preview.
package tui

import (
	"context"
	"io"
	"os"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/lipgloss"
	"go.trai.ch/sigil/internal/core/domain"
	"go.trai.ch/sigil/internal/engine/pipeline"
	"go.trai.ch/sigil/internal/ui/output"
)

var _ Driver = (*pipeline.Session)(nil)

// Config carries the resolved session state the preview starts from.
type Config struct {
	Driver     Driver
	Target     string
	OutPath    string
	Signatures []domain.Signature
	SigIdx     int
	Page       int
	Placement  domain.Placement
	DPI        int
}

// NewModel creates the preview model. The writer decides the color profile;
// pass the terminal the program renders to.
func NewModel(ctx context.Context, cfg Config, w io.Writer) *Model {
	if w == nil {
		w = os.Stderr
	}

	out := output.New(w)
	lipgloss.SetColorProfile(out.Profile)

	sp := spinner.New()
	sp.Spinner = spinner.MiniDot
	sp.Style = spinnerStyle

	return &Model{
		drv:        cfg.Driver,
		ctx:        ctx,
		Keys:       DefaultKeyMap(),
		Help:       help.New(),
		Spinner:    sp,
		Term:       NewVterm(),
		Placement:  cfg.Placement,
		Page:       cfg.Page,
		DPI:        cfg.DPI,
		Signatures: cfg.Signatures,
		SigIdx:     cfg.SigIdx,
		Target:     cfg.Target,
		OutPath:    cfg.OutPath,
		steps:      make(map[string]stepState),
	}
}
