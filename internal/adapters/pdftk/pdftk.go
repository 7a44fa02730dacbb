// Package pdftk adapts the pdftk command line tool. Its cat and stamp
// operators cover page restructuring, and dump_data covers inspection.
package pdftk

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"go.trai.ch/sigil/internal/core/domain"
	"go.trai.ch/sigil/internal/core/ports"
	"go.trai.ch/zerr"
)

// Inspector implements ports.Inspector using pdftk dump_data.
type Inspector struct {
	exec ports.Executor
}

// NewInspector creates a pdftk backed inspector.
func NewInspector(exec ports.Executor) *Inspector {
	return &Inspector{exec: exec}
}

// PageCount returns the NumberOfPages field of the data dump.
func (i *Inspector) PageCount(ctx context.Context, path string) (int, error) {
	out, err := dumpData(ctx, i.exec, path)
	if err != nil {
		return 0, err
	}
	for line := range strings.Lines(out) {
		rest, ok := strings.CutPrefix(line, "NumberOfPages:")
		if !ok {
			continue
		}
		n, err := strconv.Atoi(strings.TrimSpace(rest))
		if err != nil || n < 1 {
			break
		}
		return n, nil
	}
	return 0, zerr.With(zerr.New("pdftk reported no page count"), "path", path)
}

// PageSize reads the PageMedia block of the given page. Blocks arrive as
// PageMediaNumber followed by PageMediaDimensions.
func (i *Inspector) PageSize(ctx context.Context, path string, page int) (domain.Size, error) {
	out, err := dumpData(ctx, i.exec, path)
	if err != nil {
		return domain.Size{}, err
	}

	current := 0
	for line := range strings.Lines(out) {
		if rest, ok := strings.CutPrefix(line, "PageMediaNumber:"); ok {
			current, _ = strconv.Atoi(strings.TrimSpace(rest))
			continue
		}
		rest, ok := strings.CutPrefix(line, "PageMediaDimensions:")
		if !ok || current != page {
			continue
		}
		fields := strings.Fields(rest)
		if len(fields) != 2 {
			break
		}
		w, errW := strconv.ParseFloat(fields[0], 64)
		h, errH := strconv.ParseFloat(fields[1], 64)
		if errW != nil || errH != nil {
			break
		}
		return domain.Size{W: w, H: h}, nil
	}
	return domain.Size{}, zerr.With(zerr.With(zerr.New("pdftk reported no page size"), "path", path), "page", page)
}

func dumpData(ctx context.Context, exec ports.Executor, path string) (string, error) {
	res, err := exec.Run(ctx, ports.Command{
		Name: "pdftk",
		Args: []string{path, "dump_data"},
	})
	if err != nil {
		return "", err
	}
	return string(res.Stdout), nil
}

// Composer implements the page restructuring half of ports.Composer.
type Composer struct {
	exec ports.Executor
}

// NewComposer creates a pdftk backed page composer.
func NewComposer(exec ports.Executor) *Composer {
	return &Composer{exec: exec}
}

// ExtractPage copies one page into its own document.
func (c *Composer) ExtractPage(ctx context.Context, path string, page int, outPath string) (string, error) {
	_, err := c.exec.Run(ctx, ports.Command{
		Name: "pdftk",
		Args: []string{path, "cat", strconv.Itoa(page), "output", outPath},
	})
	if err != nil {
		return "", err
	}
	return outPath, nil
}

// Overlay stamps the overlay page onto the base page.
func (c *Composer) Overlay(ctx context.Context, pagePath, overlayPath, outPath string) (string, error) {
	_, err := c.exec.Run(ctx, ports.Command{
		Name: "pdftk",
		Args: []string{pagePath, "stamp", overlayPath, "output", outPath},
	})
	if err != nil {
		return "", err
	}
	return outPath, nil
}

// ReplacePage splices pagePath in place of the given page using input
// handles: A is the target, B is the replacement.
func (c *Composer) ReplacePage(ctx context.Context, target string, page int, pagePath, outPath string) (string, error) {
	count, err := NewInspector(c.exec).PageCount(ctx, target)
	if err != nil {
		return "", err
	}
	if page < 1 || page > count {
		return "", zerr.With(zerr.With(domain.ErrPageOutOfRange, "page", page), "pages", count)
	}

	args := []string{"A=" + target, "B=" + pagePath, "cat"}
	if page > 1 {
		args = append(args, fmt.Sprintf("A1-%d", page-1))
	}
	args = append(args, "B1")
	if page < count {
		args = append(args, fmt.Sprintf("A%d-end", page+1))
	}
	args = append(args, "output", outPath)

	if _, err := c.exec.Run(ctx, ports.Command{Name: "pdftk", Args: args}); err != nil {
		return "", err
	}
	return outPath, nil
}
