// Package toolchain probes the PATH for external PDF tools and assembles
// the backend set for the configured mode. Every role falls back to the
// embedded pdfcpu toolkit in auto mode, except rasterization, which has no
// embedded implementation and degrades to a lazy error.
package toolchain

import (
	"context"
	"os/exec"

	"go.trai.ch/sigil/internal/adapters/gs"
	"go.trai.ch/sigil/internal/adapters/pdfcpu"
	"go.trai.ch/sigil/internal/adapters/pdftk"
	"go.trai.ch/sigil/internal/adapters/poppler"
	"go.trai.ch/sigil/internal/adapters/qpdf"
	"go.trai.ch/sigil/internal/core/domain"
	"go.trai.ch/sigil/internal/core/ports"
	"go.trai.ch/zerr"
)

const (
	roleInspect = "inspect"
	roleCompose = "compose"
	rolePlace   = "place"
	roleRaster  = "raster"

	embeddedTool    = "embedded pdfcpu"
	unavailableTool = "unavailable"
)

// probedTools are the binaries the selector looks for.
var probedTools = []string{"pdfinfo", "pdftoppm", "qpdf", "pdftk", "gs"}

// PageTool is the page surgery half of ports.Composer.
type PageTool interface {
	ExtractPage(ctx context.Context, path string, page int, outPath string) (string, error)
	Overlay(ctx context.Context, pagePath, overlayPath, outPath string) (string, error)
	ReplacePage(ctx context.Context, target string, page int, pagePath, outPath string) (string, error)
}

// Placer is the drawing half of ports.Composer.
type Placer interface {
	PlaceSignature(ctx context.Context, req ports.PlaceRequest) (string, error)
}

// composer joins the two halves into a full ports.Composer. The halves may
// come from different tools, qpdf restructures pages but cannot draw.
type composer struct {
	PageTool
	Placer
}

// Role records which backend serves one toolchain role.
type Role struct {
	// Name is one of inspect, compose, place, raster.
	Name string
	// Tool is the binary name, or a marker for the embedded toolkit.
	Tool string
	// Path is the resolved binary location, empty for the embedded toolkit.
	Path string
}

// Report describes the outcome of toolchain selection.
type Report struct {
	Mode  domain.Toolchain
	Roles []Role
}

// Kit bundles the selected PDF backends.
type Kit struct {
	Inspector  ports.Inspector
	Rasterizer ports.Rasterizer
	Composer   ports.Composer
	Report     Report
}

// Selector assembles toolchain kits.
type Selector struct {
	executor ports.Executor
	logger   ports.Logger
	lookPath func(string) (string, error)
}

// NewSelector creates a selector that probes the process PATH.
func NewSelector(executor ports.Executor, logger ports.Logger) *Selector {
	return &Selector{executor: executor, logger: logger, lookPath: exec.LookPath}
}

// Build assembles the kit for the requested mode. In exec mode a missing
// role is an error, in auto mode it falls back to the embedded toolkit.
func (s *Selector) Build(mode domain.Toolchain) (Kit, error) {
	switch mode {
	case domain.ToolchainEmbedded:
		return s.embedded(), nil
	case domain.ToolchainExec:
		return s.assemble(domain.ToolchainExec, false)
	default:
		return s.assemble(domain.ToolchainAuto, true)
	}
}

func (s *Selector) assemble(mode domain.Toolchain, allowEmbedded bool) (Kit, error) {
	found := s.probe()

	inspector, inspectRole, err := s.pickInspector(found, allowEmbedded)
	if err != nil {
		return Kit{}, err
	}
	pages, composeRole, err := s.pickPageTool(found, allowEmbedded)
	if err != nil {
		return Kit{}, err
	}
	placer, placeRole, err := s.pickPlacer(found, allowEmbedded)
	if err != nil {
		return Kit{}, err
	}
	rasterizer, rasterRole := s.pickRasterizer(found)

	return Kit{
		Inspector:  inspector,
		Composer:   composer{PageTool: pages, Placer: placer},
		Rasterizer: rasterizer,
		Report: Report{
			Mode:  mode,
			Roles: []Role{inspectRole, composeRole, placeRole, rasterRole},
		},
	}, nil
}

func (s *Selector) embedded() Kit {
	return Kit{
		Inspector:  pdfcpu.NewInspector(),
		Composer:   pdfcpu.NewComposer(),
		Rasterizer: unavailableRasterizer{},
		Report: Report{
			Mode: domain.ToolchainEmbedded,
			Roles: []Role{
				{Name: roleInspect, Tool: embeddedTool},
				{Name: roleCompose, Tool: embeddedTool},
				{Name: rolePlace, Tool: embeddedTool},
				{Name: roleRaster, Tool: unavailableTool},
			},
		},
	}
}

func (s *Selector) probe() map[string]string {
	found := make(map[string]string, len(probedTools))
	for _, tool := range probedTools {
		if path, err := s.lookPath(tool); err == nil {
			found[tool] = path
		}
	}
	return found
}

func (s *Selector) pickInspector(found map[string]string, allowEmbedded bool) (ports.Inspector, Role, error) {
	if path, ok := found["pdfinfo"]; ok {
		return poppler.NewInspector(s.executor), Role{Name: roleInspect, Tool: "pdfinfo", Path: path}, nil
	}
	if path, ok := found["qpdf"]; ok {
		return qpdf.NewInspector(s.executor), Role{Name: roleInspect, Tool: "qpdf", Path: path}, nil
	}
	if path, ok := found["pdftk"]; ok {
		return pdftk.NewInspector(s.executor), Role{Name: roleInspect, Tool: "pdftk", Path: path}, nil
	}
	if !allowEmbedded {
		return nil, Role{}, missingRole(roleInspect, "pdfinfo, qpdf or pdftk")
	}
	return pdfcpu.NewInspector(), Role{Name: roleInspect, Tool: embeddedTool}, nil
}

func (s *Selector) pickPageTool(found map[string]string, allowEmbedded bool) (PageTool, Role, error) {
	if path, ok := found["qpdf"]; ok {
		return qpdf.NewComposer(s.executor), Role{Name: roleCompose, Tool: "qpdf", Path: path}, nil
	}
	if path, ok := found["pdftk"]; ok {
		return pdftk.NewComposer(s.executor), Role{Name: roleCompose, Tool: "pdftk", Path: path}, nil
	}
	if !allowEmbedded {
		return nil, Role{}, missingRole(roleCompose, "qpdf or pdftk")
	}
	return pdfcpu.NewComposer(), Role{Name: roleCompose, Tool: embeddedTool}, nil
}

func (s *Selector) pickPlacer(found map[string]string, allowEmbedded bool) (Placer, Role, error) {
	if path, ok := found["gs"]; ok {
		return gs.NewPlacer(s.executor), Role{Name: rolePlace, Tool: "gs", Path: path}, nil
	}
	if !allowEmbedded {
		return nil, Role{}, missingRole(rolePlace, "gs")
	}
	return pdfcpu.NewComposer(), Role{Name: rolePlace, Tool: embeddedTool}, nil
}

func (s *Selector) pickRasterizer(found map[string]string) (ports.Rasterizer, Role) {
	if path, ok := found["pdftoppm"]; ok {
		return poppler.NewRasterizer(s.executor), Role{Name: roleRaster, Tool: "pdftoppm", Path: path}
	}
	if path, ok := found["gs"]; ok {
		return gs.NewRasterizer(s.executor), Role{Name: roleRaster, Tool: "gs", Path: path}
	}
	s.logger.Warn("no raster tool found, preview disabled until poppler-utils or ghostscript is installed")
	return unavailableRasterizer{}, Role{Name: roleRaster, Tool: unavailableTool}
}

func missingRole(role, candidates string) error {
	return zerr.With(zerr.With(domain.ErrNoToolchain, "role", role), "install", candidates)
}

// unavailableRasterizer fails on first use rather than at startup, so that
// signing keeps working on machines without a raster tool.
type unavailableRasterizer struct{}

func (unavailableRasterizer) Rasterize(context.Context, ports.RasterRequest) (string, error) {
	return "", zerr.With(domain.ErrNoToolchain, "role", roleRaster)
}
