// Package raster turns rendered page images into blocks of terminal cells.
package raster

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"strings"

	"github.com/muesli/termenv"
	"go.trai.ch/sigil/internal/core/ports"
	"go.trai.ch/sigil/internal/ui/output"
	"go.trai.ch/zerr"
	"golang.org/x/image/draw"
)

var _ ports.FrameRenderer = (*HalfBlockRenderer)(nil)

const upperHalfBlock = "▀"

// HalfBlockRenderer maps two image rows onto one terminal cell: the upper
// half block glyph carries the top pixel in its foreground and the bottom
// pixel in the cell background. That doubles the vertical resolution and
// keeps pixels roughly square in common terminal fonts.
type HalfBlockRenderer struct {
	out *termenv.Output
}

// NewHalfBlockRenderer creates a renderer using out's color profile. A nil
// output uses the interactive profile on stdout.
func NewHalfBlockRenderer(out *termenv.Output) *HalfBlockRenderer {
	if out == nil {
		out = output.New(os.Stdout)
	}
	return &HalfBlockRenderer{out: out}
}

// RenderFile reads a PNG and renders it into at most cols by rows cells,
// preserving aspect ratio.
func (r *HalfBlockRenderer) RenderFile(path string, cols, rows int) (string, error) {
	if cols < 1 || rows < 1 {
		return "", zerr.With(zerr.With(zerr.New("render area is empty"), "cols", cols), "rows", rows)
	}

	f, err := os.Open(path) //nolint:gosec // Path is controlled by caller
	if err != nil {
		return "", zerr.Wrap(err, "failed to open frame")
	}
	defer f.Close() //nolint:errcheck // Read-only file

	img, err := png.Decode(f)
	if err != nil {
		return "", zerr.Wrap(err, "failed to decode frame")
	}

	return r.render(img, cols, rows), nil
}

func (r *HalfBlockRenderer) render(img image.Image, cols, rows int) string {
	scaled := fit(img, cols, rows*2)
	b := scaled.Bounds()
	w, h := b.Dx(), b.Dy()

	var sb strings.Builder
	for y := 0; y < h; y += 2 {
		if y > 0 {
			sb.WriteByte('\n')
		}
		for x := range w {
			top := hexColor(scaled.At(b.Min.X+x, b.Min.Y+y))
			bottom := top
			if y+1 < h {
				bottom = hexColor(scaled.At(b.Min.X+x, b.Min.Y+y+1))
			}

			cell := r.out.String(upperHalfBlock).
				Foreground(termenv.RGBColor(top)).
				Background(termenv.RGBColor(bottom))
			sb.WriteString(cell.String())
		}
	}

	return sb.String()
}

// fit scales img to the largest size within maxW by maxH pixels that keeps
// its aspect ratio. An image already at target size passes through.
func fit(img image.Image, maxW, maxH int) image.Image {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w <= 0 || h <= 0 {
		return image.NewRGBA(image.Rect(0, 0, 1, 2))
	}
	if w == maxW && h == maxH {
		return img
	}

	scale := min(float64(maxW)/float64(w), float64(maxH)/float64(h))
	tw := min(maxW, max(1, int(float64(w)*scale+0.5)))
	th := min(maxH, max(1, int(float64(h)*scale+0.5)))

	dst := image.NewRGBA(image.Rect(0, 0, tw, th))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, b, draw.Over, nil)
	return dst
}

func hexColor(c color.Color) string {
	r, g, b, _ := c.RGBA()
	return fmt.Sprintf("#%02x%02x%02x", uint8(r>>8), uint8(g>>8), uint8(b>>8)) //nolint:gosec // RGBA returns 16-bit components
}
