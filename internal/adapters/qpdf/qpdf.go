// Package qpdf adapts the qpdf command line tool for page restructuring
// and, through its JSON output, document inspection.
package qpdf

import (
	"context"
	"fmt"
	"strconv"

	"github.com/tidwall/gjson"
	"go.trai.ch/sigil/internal/core/domain"
	"go.trai.ch/sigil/internal/core/ports"
	"go.trai.ch/zerr"
)

// parentHopLimit bounds the walk up the page tree when the media box is
// inherited.
const parentHopLimit = 8

// Inspector implements ports.Inspector using qpdf --json.
type Inspector struct {
	exec ports.Executor
}

// NewInspector creates a qpdf backed inspector.
func NewInspector(exec ports.Executor) *Inspector {
	return &Inspector{exec: exec}
}

// PageCount returns the length of the pages array in the JSON dump.
func (i *Inspector) PageCount(ctx context.Context, path string) (int, error) {
	out, err := jsonDump(ctx, i.exec, path, "--json-key=pages")
	if err != nil {
		return 0, err
	}
	n := gjson.GetBytes(out, "pages.#").Int()
	if n < 1 {
		return 0, zerr.With(zerr.New("qpdf reported no pages"), "path", path)
	}
	return int(n), nil
}

// PageSize reads the page's media box from the object dump. A page without
// its own /MediaBox inherits one, so the lookup follows /Parent references
// up the page tree.
func (i *Inspector) PageSize(ctx context.Context, path string, page int) (domain.Size, error) {
	out, err := jsonDump(ctx, i.exec, path, "--json-key=pages", "--json-key=qpdf")
	if err != nil {
		return domain.Size{}, err
	}

	ref := gjson.GetBytes(out, fmt.Sprintf("pages.%d.object", page-1)).String()
	objects := gjson.GetBytes(out, "qpdf.1")

	for hops := 0; ref != "" && hops < parentHopLimit; hops++ {
		obj := objects.Get("obj:" + ref + ".value")
		if box := obj.Get("/MediaBox"); box.Exists() {
			return sizeFromBox(box)
		}
		ref = obj.Get("/Parent").String()
	}
	return domain.Size{}, zerr.With(zerr.With(zerr.New("no media box found"), "path", path), "page", page)
}

func jsonDump(ctx context.Context, exec ports.Executor, path string, keys ...string) ([]byte, error) {
	args := append([]string{"--json=2", "--warning-exit-0"}, keys...)
	args = append(args, path)
	res, err := exec.Run(ctx, ports.Command{Name: "qpdf", Args: args})
	if err != nil {
		return nil, err
	}
	return res.Stdout, nil
}

// sizeFromBox converts a [x0 y0 x1 y1] media box into a Size.
func sizeFromBox(box gjson.Result) (domain.Size, error) {
	corners := box.Array()
	if len(corners) != 4 {
		return domain.Size{}, zerr.With(zerr.New("malformed media box"), "box", box.Raw)
	}
	size := domain.Size{
		W: corners[2].Float() - corners[0].Float(),
		H: corners[3].Float() - corners[1].Float(),
	}
	if size.IsZero() {
		return domain.Size{}, zerr.With(zerr.New("malformed media box"), "box", box.Raw)
	}
	return size, nil
}

// Composer implements the page restructuring half of ports.Composer: page
// extraction, stamping, and page replacement. Signature placement needs a
// drawing tool and lives elsewhere.
type Composer struct {
	exec ports.Executor
}

// NewComposer creates a qpdf backed page composer.
func NewComposer(exec ports.Executor) *Composer {
	return &Composer{exec: exec}
}

// ExtractPage copies one page into its own document.
func (c *Composer) ExtractPage(ctx context.Context, path string, page int, outPath string) (string, error) {
	n := strconv.Itoa(page)
	_, err := c.exec.Run(ctx, ports.Command{
		Name: "qpdf",
		Args: []string{"--warning-exit-0", path, "--pages", ".", n, "--", outPath},
	})
	if err != nil {
		return "", err
	}
	return outPath, nil
}

// Overlay stamps the overlay page onto the base page.
func (c *Composer) Overlay(ctx context.Context, pagePath, overlayPath, outPath string) (string, error) {
	_, err := c.exec.Run(ctx, ports.Command{
		Name: "qpdf",
		Args: []string{"--warning-exit-0", pagePath, "--overlay", overlayPath, "--", outPath},
	})
	if err != nil {
		return "", err
	}
	return outPath, nil
}

// ReplacePage splices pagePath in place of the given page of the target.
func (c *Composer) ReplacePage(ctx context.Context, target string, page int, pagePath, outPath string) (string, error) {
	count, err := NewInspector(c.exec).PageCount(ctx, target)
	if err != nil {
		return "", err
	}
	if page < 1 || page > count {
		return "", zerr.With(zerr.With(domain.ErrPageOutOfRange, "page", page), "pages", count)
	}

	// qpdf page selection: ". <range>" pulls from the primary input, "z"
	// is the last page.
	args := []string{"--warning-exit-0", target, "--pages"}
	if page > 1 {
		args = append(args, ".", fmt.Sprintf("1-%d", page-1))
	}
	args = append(args, pagePath, "1")
	if page < count {
		args = append(args, ".", fmt.Sprintf("%d-z", page+1))
	}
	args = append(args, "--", outPath)

	if _, err := c.exec.Run(ctx, ports.Command{Name: "qpdf", Args: args}); err != nil {
		return "", err
	}
	return outPath, nil
}
