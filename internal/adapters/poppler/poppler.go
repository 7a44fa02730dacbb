// Package poppler adapts the poppler-utils command line tools. pdfinfo
// serves document inspection and pdftoppm serves page rasterization.
package poppler

import (
	"context"
	"strconv"
	"strings"

	"go.trai.ch/sigil/internal/core/domain"
	"go.trai.ch/sigil/internal/core/ports"
	"go.trai.ch/zerr"
)

// Inspector implements ports.Inspector using pdfinfo.
type Inspector struct {
	exec ports.Executor
}

// NewInspector creates a pdfinfo backed inspector.
func NewInspector(exec ports.Executor) *Inspector {
	return &Inspector{exec: exec}
}

// PageCount returns the number of pages reported by pdfinfo.
func (i *Inspector) PageCount(ctx context.Context, path string) (int, error) {
	res, err := i.exec.Run(ctx, ports.Command{Name: "pdfinfo", Args: []string{path}})
	if err != nil {
		return 0, err
	}

	for line := range strings.Lines(string(res.Stdout)) {
		rest, ok := strings.CutPrefix(line, "Pages:")
		if !ok {
			continue
		}
		n, err := strconv.Atoi(strings.TrimSpace(rest))
		if err != nil || n < 1 {
			break
		}
		return n, nil
	}
	return 0, zerr.With(zerr.New("pdfinfo reported no page count"), "path", path)
}

// PageSize returns the media box of one page in points. pdfinfo prints it
// as "Page    N size: 612 x 792 pts (letter)".
func (i *Inspector) PageSize(ctx context.Context, path string, page int) (domain.Size, error) {
	n := strconv.Itoa(page)
	res, err := i.exec.Run(ctx, ports.Command{
		Name: "pdfinfo",
		Args: []string{"-f", n, "-l", n, path},
	})
	if err != nil {
		return domain.Size{}, err
	}

	for line := range strings.Lines(string(res.Stdout)) {
		if !strings.HasPrefix(line, "Page") {
			continue
		}
		_, rest, ok := strings.Cut(line, "size:")
		if !ok {
			continue
		}
		size, ok := parseSize(rest)
		if !ok {
			break
		}
		return size, nil
	}
	return domain.Size{}, zerr.With(zerr.With(zerr.New("pdfinfo reported no page size"), "path", path), "page", page)
}

// parseSize reads "612 x 792 pts (letter)" into a Size.
func parseSize(s string) (domain.Size, bool) {
	fields := strings.Fields(s)
	if len(fields) < 3 || fields[1] != "x" {
		return domain.Size{}, false
	}
	w, errW := strconv.ParseFloat(fields[0], 64)
	h, errH := strconv.ParseFloat(fields[2], 64)
	if errW != nil || errH != nil {
		return domain.Size{}, false
	}
	return domain.Size{W: w, H: h}, true
}

// Rasterizer implements ports.Rasterizer using pdftoppm.
type Rasterizer struct {
	exec ports.Executor
}

// NewRasterizer creates a pdftoppm backed rasterizer.
func NewRasterizer(exec ports.Executor) *Rasterizer {
	return &Rasterizer{exec: exec}
}

// Rasterize renders the page to a PNG. pdftoppm takes an output prefix and
// appends the extension itself.
func (r *Rasterizer) Rasterize(ctx context.Context, req ports.RasterRequest) (string, error) {
	prefix := strings.TrimSuffix(req.OutPath, ".png")
	_, err := r.exec.Run(ctx, ports.Command{
		Name: "pdftoppm",
		Args: []string{"-png", "-r", strconv.Itoa(req.DPI), "-singlefile", req.Path, prefix},
	})
	if err != nil {
		return "", err
	}
	return prefix + ".png", nil
}
