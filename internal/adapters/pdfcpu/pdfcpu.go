// Package pdfcpu backs the inspection and composition ports with the
// embedded pdfcpu library. It needs no external tools, which makes it the
// fallback toolchain on machines without qpdf or ghostscript and the only
// backend of the embedded mode. It cannot rasterize.
package pdfcpu

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"

	pdfapi "github.com/pdfcpu/pdfcpu/pkg/api"
	pdflib "github.com/pdfcpu/pdfcpu/pkg/pdfcpu"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"
	"go.trai.ch/sigil/internal/core/domain"
	"go.trai.ch/sigil/internal/core/ports"
	"go.trai.ch/zerr"
)

// Inspector implements ports.Inspector on the embedded library.
type Inspector struct{}

// NewInspector creates an embedded inspector.
func NewInspector() *Inspector {
	return &Inspector{}
}

// PageCount returns the number of pages in the document.
func (i *Inspector) PageCount(_ context.Context, path string) (int, error) {
	n, err := pdfapi.PageCountFile(path)
	if err != nil {
		return 0, zerr.With(zerr.Wrap(err, "failed to read page count"), "path", path)
	}
	return n, nil
}

// PageSize returns the media box of the given page in points.
func (i *Inspector) PageSize(_ context.Context, path string, page int) (domain.Size, error) {
	dims, err := pdfapi.PageDimsFile(path)
	if err != nil {
		return domain.Size{}, zerr.With(zerr.Wrap(err, "failed to read page dimensions"), "path", path)
	}
	if page < 1 || page > len(dims) {
		return domain.Size{}, zerr.With(zerr.With(domain.ErrPageOutOfRange, "page", page), "pages", len(dims))
	}
	d := dims[page-1]
	return domain.Size{W: d.Width, H: d.Height}, nil
}

// Composer implements all of ports.Composer on the embedded library. Page
// surgery maps onto trim and merge, signature placement onto a PDF stamp
// over a generated blank canvas.
type Composer struct{}

// NewComposer creates an embedded composer.
func NewComposer() *Composer {
	return &Composer{}
}

// ExtractPage copies one page into its own document.
func (c *Composer) ExtractPage(_ context.Context, path string, page int, outPath string) (string, error) {
	conf := model.NewDefaultConfiguration()
	if err := pdfapi.TrimFile(path, outPath, []string{strconv.Itoa(page)}, conf); err != nil {
		return "", zerr.With(zerr.Wrap(err, "failed to extract page"), "page", page)
	}
	return outPath, nil
}

// PlaceSignature stamps the signature page onto a blank canvas of the
// requested size. The stamp keeps the signature's own dimensions scaled by
// the requested factor, anchored at the absolute lower left position.
func (c *Composer) PlaceSignature(_ context.Context, req ports.PlaceRequest) (string, error) {
	canvas := req.OutPath + ".canvas.pdf"
	if err := writeBlankPage(canvas, req.Canvas); err != nil {
		return "", err
	}
	defer os.Remove(canvas)

	src := fmt.Sprintf("%s:%d", req.Signature.Path, req.Signature.Page)
	desc := fmt.Sprintf("scale:%s abs, pos:bl, rot:0", num(req.Scale))
	wm, err := pdflib.ParsePDFWatermarkDetails(src, desc, true, types.POINTS)
	if err != nil {
		return "", zerr.With(zerr.Wrap(err, "failed to prepare signature stamp"), "signature", req.Signature.Path)
	}
	// Dx and Dy shift from the anchor, which sits flush at the corner.
	wm.Dx = req.Position.X
	wm.Dy = req.Position.Y

	conf := model.NewDefaultConfiguration()
	if err := pdfapi.AddWatermarksFile(canvas, req.OutPath, []string{"1"}, wm, conf); err != nil {
		return "", zerr.With(zerr.Wrap(err, "failed to place signature"), "signature", req.Signature.Path)
	}
	return req.OutPath, nil
}

// Overlay stamps the overlay page onto the base page. Both pages share the
// target page's dimensions, so an unscaled centered stamp lines up exactly.
func (c *Composer) Overlay(_ context.Context, pagePath, overlayPath, outPath string) (string, error) {
	wm, err := pdflib.ParsePDFWatermarkDetails(overlayPath+":1", "scale:1 abs, pos:c, rot:0", true, types.POINTS)
	if err != nil {
		return "", zerr.With(zerr.Wrap(err, "failed to prepare overlay stamp"), "overlay", overlayPath)
	}
	conf := model.NewDefaultConfiguration()
	if err := pdfapi.AddWatermarksFile(pagePath, outPath, []string{"1"}, wm, conf); err != nil {
		return "", zerr.Wrap(err, "failed to stamp overlay")
	}
	return outPath, nil
}

// ReplacePage splices pagePath in place of the given page by trimming the
// surrounding ranges and merging the three parts.
func (c *Composer) ReplacePage(ctx context.Context, target string, page int, pagePath, outPath string) (string, error) {
	count, err := NewInspector().PageCount(ctx, target)
	if err != nil {
		return "", err
	}
	if page < 1 || page > count {
		return "", zerr.With(zerr.With(domain.ErrPageOutOfRange, "page", page), "pages", count)
	}

	parts := make([]string, 0, 3)
	if page > 1 {
		head := outPath + ".head.pdf"
		conf := model.NewDefaultConfiguration()
		if err := pdfapi.TrimFile(target, head, []string{fmt.Sprintf("1-%d", page-1)}, conf); err != nil {
			return "", zerr.Wrap(err, "failed to split leading pages")
		}
		defer os.Remove(head)
		parts = append(parts, head)
	}
	parts = append(parts, pagePath)
	if page < count {
		tail := outPath + ".tail.pdf"
		conf := model.NewDefaultConfiguration()
		if err := pdfapi.TrimFile(target, tail, []string{fmt.Sprintf("%d-%d", page+1, count)}, conf); err != nil {
			return "", zerr.Wrap(err, "failed to split trailing pages")
		}
		defer os.Remove(tail)
		parts = append(parts, tail)
	}

	// A single page target leaves nothing to merge.
	if len(parts) == 1 {
		if err := copyFile(pagePath, outPath); err != nil {
			return "", zerr.Wrap(err, "failed to copy replacement page")
		}
		return outPath, nil
	}

	conf := model.NewDefaultConfiguration()
	if err := pdfapi.MergeCreateFile(parts, outPath, false, conf); err != nil {
		return "", zerr.Wrap(err, "failed to merge replacement")
	}
	return outPath, nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()
	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer out.Close()
	if _, err := io.Copy(out, in); err != nil {
		return err
	}
	return out.Close()
}
