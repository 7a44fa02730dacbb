package domain

import "go.trai.ch/zerr"

// MMPerPoint converts PDF points to millimeters.
const MMPerPoint = 25.4 / 72.0

// Size is a width and height in PDF points.
type Size struct {
	W float64
	H float64
}

// IsZero reports whether the size has no area.
func (s Size) IsZero() bool {
	return s.W <= 0 || s.H <= 0
}

// Point is a position in PDF points with the origin at the lower left
// corner of the page.
type Point struct {
	X float64
	Y float64
}

// Anchor names the page corner or center a placement is measured from.
type Anchor string

const (
	AnchorBottomLeft  Anchor = "bl"
	AnchorBottomRight Anchor = "br"
	AnchorTopLeft     Anchor = "tl"
	AnchorTopRight    Anchor = "tr"
	AnchorCenter      Anchor = "c"
)

// ParseAnchor converts a flag or config value into an Anchor.
func ParseAnchor(s string) (Anchor, error) {
	switch Anchor(s) {
	case AnchorBottomLeft, AnchorBottomRight, AnchorTopLeft, AnchorTopRight, AnchorCenter:
		return Anchor(s), nil
	}
	return "", zerr.With(ErrInvalidPlacement, "anchor", s)
}

// Placement describes where the signature goes on a page: an anchor, both
// offsets in points measured from the anchor toward the page interior, and
// a scale factor applied to the signature's natural size.
type Placement struct {
	Anchor Anchor
	DX     float64
	DY     float64
	Scale  float64
}

// DefaultPlacement is half an inch in from the bottom right corner at
// natural size.
func DefaultPlacement() Placement {
	return Placement{Anchor: AnchorBottomRight, DX: 36, DY: 36, Scale: 1}
}

// Shifted returns the placement moved by dx and dy points. The direction
// follows the anchor, so a positive dx always moves the signature further
// into the page.
func (p Placement) Shifted(dx, dy float64) Placement {
	p.DX += dx
	p.DY += dy
	return p
}

// Rescaled returns the placement with the scale multiplied by f, kept
// within sane bounds.
func (p Placement) Rescaled(f float64) Placement {
	p.Scale *= f
	if p.Scale < 0.05 {
		p.Scale = 0.05
	}
	if p.Scale > 20 {
		p.Scale = 20
	}
	return p
}

// Resolve returns the absolute lower left position and the scaled size of
// the signature on the given page. The result is clamped so the signature
// stays on the page whenever it fits.
func (p Placement) Resolve(page, sig Size) (Point, Size) {
	scaled := Size{W: sig.W * p.Scale, H: sig.H * p.Scale}

	var pt Point
	switch p.Anchor {
	case AnchorBottomLeft:
		pt = Point{X: p.DX, Y: p.DY}
	case AnchorBottomRight:
		pt = Point{X: page.W - p.DX - scaled.W, Y: p.DY}
	case AnchorTopLeft:
		pt = Point{X: p.DX, Y: page.H - p.DY - scaled.H}
	case AnchorTopRight:
		pt = Point{X: page.W - p.DX - scaled.W, Y: page.H - p.DY - scaled.H}
	case AnchorCenter:
		pt = Point{X: (page.W-scaled.W)/2 + p.DX, Y: (page.H-scaled.H)/2 + p.DY}
	default:
		pt = Point{X: page.W - p.DX - scaled.W, Y: p.DY}
	}

	pt.X = clamp(pt.X, 0, page.W-scaled.W)
	pt.Y = clamp(pt.Y, 0, page.H-scaled.H)
	return pt, scaled
}

func clamp(v, lo, hi float64) float64 {
	if hi < lo {
		hi = lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
