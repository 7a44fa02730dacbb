package ports

import (
	"context"

	"go.trai.ch/sigil/internal/core/domain"
)

//go:generate mockgen -source=pdf.go -destination=mocks/mock_pdf.go -package=mocks

// Inspector reads document metadata without modifying anything.
type Inspector interface {
	// PageCount returns the number of pages in the document.
	PageCount(ctx context.Context, path string) (int, error)
	// PageSize returns the media box of the given 1-based page in points.
	PageSize(ctx context.Context, path string, page int) (domain.Size, error)
}

// RasterRequest asks for a PNG rendering of a single page document.
type RasterRequest struct {
	// Path is the single page PDF to render.
	Path string
	// DPI is the render resolution.
	DPI int
	// OutPath is where the PNG goes. Implementations reuse this exact
	// path on every call, so consumers must not treat an unchanged path
	// as an unchanged image.
	OutPath string
}

// Rasterizer renders a page to an image file.
type Rasterizer interface {
	// Rasterize renders the page and returns the path it wrote, which is
	// always the requested output path.
	Rasterize(ctx context.Context, req RasterRequest) (string, error)
}

// PlaceRequest positions a signature on a blank canvas matching the target
// page, producing a full-size overlay page.
type PlaceRequest struct {
	// Signature is the artwork to place.
	Signature domain.Signature
	// Canvas is the target page size in points.
	Canvas domain.Size
	// Position is the absolute lower left corner for the scaled artwork.
	Position domain.Point
	// Scale is the factor applied to the artwork's natural size.
	Scale float64
	// OutPath is where the overlay page goes, reused across calls.
	OutPath string
}

// Composer performs the page-level assembly steps of signing.
type Composer interface {
	// ExtractPage copies one page of a document into its own file and
	// returns outPath.
	ExtractPage(ctx context.Context, path string, page int, outPath string) (string, error)
	// PlaceSignature renders the positioned signature onto a blank page
	// of the requested canvas size and returns the overlay path.
	PlaceSignature(ctx context.Context, req PlaceRequest) (string, error)
	// Overlay stamps the overlay page onto the base page and returns
	// outPath.
	Overlay(ctx context.Context, pagePath, overlayPath, outPath string) (string, error)
	// ReplacePage writes a copy of the target with the given 1-based page
	// swapped for pagePath, returning outPath.
	ReplacePage(ctx context.Context, target string, page int, pagePath, outPath string) (string, error)
}
