// Package pipeline builds the incremental signing graph on top of the cell
// engine. Each expensive step (inspection, page extraction, signature
// placement, overlay, rasterization) lives in its own cell; user edits
// write the literal input cells and the next frame read recomputes only
// the steps whose inputs actually changed.
//
// Side-effecting steps write to fixed workspace paths, so their cells are
// volatile: the returned path is stable while the file behind it changes
// with the inputs.
package pipeline

import (
	"context"
	"errors"

	"go.trai.ch/sigil/internal/core/domain"
	"go.trai.ch/sigil/internal/core/ports"
	"go.trai.ch/sigil/internal/engine/cell"
	"go.trai.ch/zerr"
)

// Tools bundles the collaborators the pipeline steps call out to.
type Tools struct {
	Inspector  ports.Inspector
	Rasterizer ports.Rasterizer
	Composer   ports.Composer
	Digester   ports.Digester
	Renderer   ports.FrameRenderer
	Tracer     ports.Tracer
}

// Paths fixes where the intermediate artifacts live for one session. The
// same path is rewritten in place on every recomputation.
type Paths struct {
	Page    string
	Overlay string
	Stamped string
	Preview string
}

// Viewport is the terminal area available for the rendered page.
type Viewport struct {
	Cols int
	Rows int
}

// Snapshot is everything one rendered frame carries for display.
type Snapshot struct {
	ANSI      string
	Page      int
	PageCount int
	PageSize  domain.Size
	SigSize   domain.Size
	Signature string
	SigPage   int
	Placement domain.Placement
	DPI       int
}

// Pipeline wires the signing cells together. All methods must be called
// from a single goroutine; Session provides that discipline for the
// interactive path.
type Pipeline struct {
	tools Tools
	paths Paths
	rt    *cell.Runtime

	target      *cell.Cell[string]
	targetStamp *cell.Cell[string]
	sigPath     *cell.Cell[string]
	sigStamp    *cell.Cell[string]
	sigPage     *cell.Cell[int]
	page        *cell.Cell[int]
	placement   *cell.Cell[domain.Placement]
	dpi         *cell.Cell[int]
	viewport    *cell.Cell[Viewport]

	outPath *cell.Cell[string]

	pageCount *cell.Cell[int]
	pageSize  *cell.Cell[domain.Size]
	sigSize   *cell.Cell[domain.Size]
	pageFile  *cell.Cell[string]
	placed    *cell.Cell[string]
	stamped   *cell.Cell[string]
	preview   *cell.Cell[string]
	frame     *cell.Cell[string]
	signed    *cell.Cell[string]

	counts map[string]int
}

// New builds the signing graph for one target document. Stamps start empty;
// call Refresh before the first read so content changes on disk are
// tracked from a known state.
func New(tools Tools, paths Paths, target string, sig domain.Signature, placement domain.Placement, dpi int) *Pipeline {
	rt := cell.NewRuntime()
	p := &Pipeline{
		tools:  tools,
		paths:  paths,
		rt:     rt,
		counts: make(map[string]int),
	}

	p.target = cell.NewLiteral(rt, "target", target)
	p.targetStamp = cell.NewLiteral(rt, "targetStamp", "")
	p.sigPath = cell.NewLiteral(rt, "sigPath", sig.Path)
	p.sigStamp = cell.NewLiteral(rt, "sigStamp", "")
	p.sigPage = cell.NewLiteral(rt, "sigPage", sig.Page)
	p.page = cell.NewLiteral(rt, "page", 1)
	p.placement = cell.NewLiteral(rt, "placement", placement)
	p.dpi = cell.NewLiteral(rt, "dpi", dpi)
	p.viewport = cell.NewLiteral(rt, "viewport", Viewport{Cols: 80, Rows: 24})
	p.outPath = cell.NewLiteral(rt, "outPath", "")

	p.pageCount = cell.New(rt, "pages", step(p, "pages", func(ctx context.Context) (int, error) {
		path, err := p.target.Get(ctx)
		if err != nil {
			return 0, err
		}
		if _, err := p.targetStamp.Get(ctx); err != nil {
			return 0, err
		}
		return p.tools.Inspector.PageCount(ctx, path)
	}))

	p.pageSize = cell.New(rt, "page-size", step(p, "page-size", func(ctx context.Context) (domain.Size, error) {
		path, err := p.target.Get(ctx)
		if err != nil {
			return domain.Size{}, err
		}
		if _, err := p.targetStamp.Get(ctx); err != nil {
			return domain.Size{}, err
		}
		n, err := p.page.Get(ctx)
		if err != nil {
			return domain.Size{}, err
		}
		return p.tools.Inspector.PageSize(ctx, path, n)
	}))

	p.sigSize = cell.New(rt, "sig-size", step(p, "sig-size", func(ctx context.Context) (domain.Size, error) {
		path, err := p.sigPath.Get(ctx)
		if err != nil {
			return domain.Size{}, err
		}
		if _, err := p.sigStamp.Get(ctx); err != nil {
			return domain.Size{}, err
		}
		n, err := p.sigPage.Get(ctx)
		if err != nil {
			return domain.Size{}, err
		}
		return p.tools.Inspector.PageSize(ctx, path, n)
	}))

	p.pageFile = cell.NewVolatile(rt, "extract", step(p, "extract", func(ctx context.Context) (string, error) {
		path, err := p.target.Get(ctx)
		if err != nil {
			return "", err
		}
		if _, err := p.targetStamp.Get(ctx); err != nil {
			return "", err
		}
		n, err := p.page.Get(ctx)
		if err != nil {
			return "", err
		}
		return p.tools.Composer.ExtractPage(ctx, path, n, p.paths.Page)
	}))

	p.placed = cell.NewVolatile(rt, "place", step(p, "place", func(ctx context.Context) (string, error) {
		sigPath, err := p.sigPath.Get(ctx)
		if err != nil {
			return "", err
		}
		if _, err := p.sigStamp.Get(ctx); err != nil {
			return "", err
		}
		sigPage, err := p.sigPage.Get(ctx)
		if err != nil {
			return "", err
		}
		pageSize, err := p.pageSize.Get(ctx)
		if err != nil {
			return "", err
		}
		sigSize, err := p.sigSize.Get(ctx)
		if err != nil {
			return "", err
		}
		pl, err := p.placement.Get(ctx)
		if err != nil {
			return "", err
		}
		pos, _ := pl.Resolve(pageSize, sigSize)
		return p.tools.Composer.PlaceSignature(ctx, ports.PlaceRequest{
			Signature: domain.Signature{Path: sigPath, Page: sigPage},
			Canvas:    pageSize,
			Position:  pos,
			Scale:     pl.Scale,
			OutPath:   p.paths.Overlay,
		})
	}))

	p.stamped = cell.NewVolatile(rt, "stamp", step(p, "stamp", func(ctx context.Context) (string, error) {
		pagePath, err := p.pageFile.Get(ctx)
		if err != nil {
			return "", err
		}
		overlayPath, err := p.placed.Get(ctx)
		if err != nil {
			return "", err
		}
		return p.tools.Composer.Overlay(ctx, pagePath, overlayPath, p.paths.Stamped)
	}))

	p.preview = cell.NewVolatile(rt, "rasterize", step(p, "rasterize", func(ctx context.Context) (string, error) {
		stampedPath, err := p.stamped.Get(ctx)
		if err != nil {
			return "", err
		}
		dpi, err := p.dpi.Get(ctx)
		if err != nil {
			return "", err
		}
		return p.tools.Rasterizer.Rasterize(ctx, ports.RasterRequest{
			Path:    stampedPath,
			DPI:     dpi,
			OutPath: p.paths.Preview,
		})
	}))

	p.frame = cell.New(rt, "frame", step(p, "frame", func(ctx context.Context) (string, error) {
		png, err := p.preview.Get(ctx)
		if err != nil {
			return "", err
		}
		vp, err := p.viewport.Get(ctx)
		if err != nil {
			return "", err
		}
		return p.tools.Renderer.RenderFile(png, vp.Cols, vp.Rows)
	}))

	p.signed = cell.NewVolatile(rt, "save", step(p, "save", func(ctx context.Context) (string, error) {
		target, err := p.target.Get(ctx)
		if err != nil {
			return "", err
		}
		if _, err := p.targetStamp.Get(ctx); err != nil {
			return "", err
		}
		n, err := p.page.Get(ctx)
		if err != nil {
			return "", err
		}
		stampedPath, err := p.stamped.Get(ctx)
		if err != nil {
			return "", err
		}
		out, err := p.outPath.Get(ctx)
		if err != nil {
			return "", err
		}
		return p.tools.Composer.ReplacePage(ctx, target, n, stampedPath, out)
	}))

	return p
}

// step wraps a cell computation with a span and a recompute counter.
func step[T comparable](p *Pipeline, name string, fn cell.Fn[T]) cell.Fn[T] {
	return func(ctx context.Context) (T, error) {
		ctx, span := p.tools.Tracer.Start(ctx, name)
		defer span.End()
		p.counts[name]++
		v, err := fn(ctx)
		if err != nil {
			span.RecordError(err)
		}
		return v, err
	}
}

// Refresh re-digests the target and signature files and writes the stamps.
// Writing an unchanged digest is a no-op, so spurious watcher events cost a
// hash and nothing more.
func (p *Pipeline) Refresh(ctx context.Context) error {
	target, err := p.target.Get(ctx)
	if err != nil {
		return err
	}
	stamp, err := p.tools.Digester.DigestFile(target)
	if err != nil {
		return zerr.With(errors.Join(domain.ErrTargetNotFound, err), "path", target)
	}
	p.targetStamp.Set(stamp)

	sig, err := p.sigPath.Get(ctx)
	if err != nil {
		return err
	}
	if sig == "" {
		return nil
	}
	stamp, err = p.tools.Digester.DigestFile(sig)
	if err != nil {
		return zerr.With(errors.Join(domain.ErrSignatureNotFound, err), "path", sig)
	}
	p.sigStamp.Set(stamp)
	return nil
}

// SetSignature switches the artwork and stamps its current content.
func (p *Pipeline) SetSignature(sig domain.Signature) error {
	stamp, err := p.tools.Digester.DigestFile(sig.Path)
	if err != nil {
		return zerr.With(errors.Join(domain.ErrSignatureNotFound, err), "path", sig.Path)
	}
	p.sigPath.Set(sig.Path)
	p.sigPage.Set(sig.Page)
	p.sigStamp.Set(stamp)
	return nil
}

// SetPlacement moves the signature.
func (p *Pipeline) SetPlacement(pl domain.Placement) {
	p.placement.Set(pl)
}

// SetPage switches the previewed page.
func (p *Pipeline) SetPage(n int) {
	p.page.Set(n)
}

// SetDPI changes the raster resolution.
func (p *Pipeline) SetDPI(n int) {
	p.dpi.Set(n)
}

// SetViewport resizes the rendered frame.
func (p *Pipeline) SetViewport(v Viewport) {
	p.viewport.Set(v)
}

// ResolvePage maps a page spec to a concrete page number using the
// document's page count.
func (p *Pipeline) ResolvePage(ctx context.Context, spec domain.PageSpec) (int, error) {
	count, err := p.pageCount.Get(ctx)
	if err != nil {
		return 0, err
	}
	return spec.Resolve(count)
}

// Page returns the page currently previewed.
func (p *Pipeline) Page(ctx context.Context) (int, error) {
	return p.page.Get(ctx)
}

// Placement returns the current placement.
func (p *Pipeline) Placement(ctx context.Context) (domain.Placement, error) {
	return p.placement.Get(ctx)
}

// Signature returns the current artwork reference.
func (p *Pipeline) Signature(ctx context.Context) (domain.Signature, error) {
	path, err := p.sigPath.Get(ctx)
	if err != nil {
		return domain.Signature{}, err
	}
	page, err := p.sigPage.Get(ctx)
	if err != nil {
		return domain.Signature{}, err
	}
	return domain.Signature{Path: path, Page: page}, nil
}

// Stamped brings the composed page up to date and returns its path.
func (p *Pipeline) Stamped(ctx context.Context) (string, error) {
	return p.stamped.Get(ctx)
}

// Frame brings the rendered frame up to date and returns it with the state
// it was computed from.
func (p *Pipeline) Frame(ctx context.Context) (Snapshot, error) {
	ansi, err := p.frame.Get(ctx)
	if err != nil {
		return Snapshot{}, err
	}
	snap := Snapshot{ANSI: ansi}
	if snap.Page, err = p.page.Get(ctx); err != nil {
		return Snapshot{}, err
	}
	if snap.PageCount, err = p.pageCount.Get(ctx); err != nil {
		return Snapshot{}, err
	}
	if snap.PageSize, err = p.pageSize.Get(ctx); err != nil {
		return Snapshot{}, err
	}
	if snap.SigSize, err = p.sigSize.Get(ctx); err != nil {
		return Snapshot{}, err
	}
	if snap.Signature, err = p.sigPath.Get(ctx); err != nil {
		return Snapshot{}, err
	}
	if snap.SigPage, err = p.sigPage.Get(ctx); err != nil {
		return Snapshot{}, err
	}
	if snap.Placement, err = p.placement.Get(ctx); err != nil {
		return Snapshot{}, err
	}
	if snap.DPI, err = p.dpi.Get(ctx); err != nil {
		return Snapshot{}, err
	}
	return snap, nil
}

// Save splices the stamped page into the target and writes the result to
// outPath. The stamped page is reused from the preview when its inputs are
// unchanged, and saving again with no changes at all returns the previous
// output without rewriting it.
func (p *Pipeline) Save(ctx context.Context, outPath string) (string, error) {
	p.outPath.Set(outPath)
	return p.signed.Get(ctx)
}

// Stats returns how often each step has recomputed.
func (p *Pipeline) Stats() map[string]int {
	out := make(map[string]int, len(p.counts))
	for k, v := range p.counts {
		out[k] = v
	}
	return out
}
