// Package gs adapts Ghostscript. It renders the positioned signature onto
// a blank page through the pdfwrite device and doubles as a fallback
// rasterizer where poppler is not installed.
package gs

import (
	"context"
	"fmt"
	"strconv"

	"go.trai.ch/sigil/internal/core/ports"
)

// Placer builds overlay pages with the pdfwrite device.
type Placer struct {
	exec ports.Executor
}

// NewPlacer creates a Ghostscript backed placer.
func NewPlacer(exec ports.Executor) *Placer {
	return &Placer{exec: exec}
}

// PlaceSignature draws the signature page onto a fresh canvas of the
// requested size. The BeginPage hook installs a translate and scale, so the
// artwork lands with its lower left corner at the requested position.
func (p *Placer) PlaceSignature(ctx context.Context, req ports.PlaceRequest) (string, error) {
	page := strconv.Itoa(req.Signature.Page)
	transform := fmt.Sprintf(
		"<</BeginPage {%s %s translate %s %s scale}>> setpagedevice",
		num(req.Position.X), num(req.Position.Y), num(req.Scale), num(req.Scale),
	)

	_, err := p.exec.Run(ctx, ports.Command{
		Name: "gs",
		Args: []string{
			"-q", "-dBATCH", "-dNOPAUSE", "-dSAFER",
			"-sDEVICE=pdfwrite",
			"-o", req.OutPath,
			"-dDEVICEWIDTHPOINTS=" + num(req.Canvas.W),
			"-dDEVICEHEIGHTPOINTS=" + num(req.Canvas.H),
			"-dFIXEDMEDIA",
			"-dFirstPage=" + page,
			"-dLastPage=" + page,
			"-c", transform,
			"-f", req.Signature.Path,
		},
	})
	if err != nil {
		return "", err
	}
	return req.OutPath, nil
}

// Rasterizer implements ports.Rasterizer with the png16m device.
type Rasterizer struct {
	exec ports.Executor
}

// NewRasterizer creates a Ghostscript backed rasterizer.
func NewRasterizer(exec ports.Executor) *Rasterizer {
	return &Rasterizer{exec: exec}
}

// Rasterize renders the page to a PNG with antialiasing.
func (r *Rasterizer) Rasterize(ctx context.Context, req ports.RasterRequest) (string, error) {
	_, err := r.exec.Run(ctx, ports.Command{
		Name: "gs",
		Args: []string{
			"-q", "-dBATCH", "-dNOPAUSE", "-dSAFER",
			"-sDEVICE=png16m",
			"-r" + strconv.Itoa(req.DPI),
			"-dTextAlphaBits=4", "-dGraphicsAlphaBits=4",
			"-o", req.OutPath,
			req.Path,
		},
	})
	if err != nil {
		return "", err
	}
	return req.OutPath, nil
}

// num formats a coordinate the way PostScript likes it, without a trailing
// exponent or excess digits.
func num(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
