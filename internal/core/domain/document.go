package domain

import (
	"strconv"

	"go.trai.ch/zerr"
)

// PageSpec selects one page of the target document. The zero value selects
// the first page.
type PageSpec struct {
	// Number is the 1-based page number. Zero means the spec was given as
	// a keyword.
	Number int
	Last   bool
}

// ParsePageSpec converts a flag value into a PageSpec. Accepted forms are
// "first", "last", a 1-based page number, and the empty string.
func ParsePageSpec(s string) (PageSpec, error) {
	switch s {
	case "", "first":
		return PageSpec{}, nil
	case "last":
		return PageSpec{Last: true}, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return PageSpec{}, zerr.With(ErrInvalidPageSpec, "page", s)
	}
	return PageSpec{Number: n}, nil
}

// Resolve maps the spec to a concrete page number given the document's page
// count.
func (p PageSpec) Resolve(pageCount int) (int, error) {
	if pageCount < 1 {
		return 0, zerr.With(ErrPageOutOfRange, "pages", pageCount)
	}
	switch {
	case p.Last:
		return pageCount, nil
	case p.Number == 0:
		return 1, nil
	case p.Number > pageCount:
		return 0, zerr.With(zerr.With(ErrPageOutOfRange, "page", p.Number), "pages", pageCount)
	}
	return p.Number, nil
}

// String renders the spec the way it was given on the command line.
func (p PageSpec) String() string {
	switch {
	case p.Last:
		return "last"
	case p.Number == 0:
		return "first"
	}
	return strconv.Itoa(p.Number)
}

// Signature identifies the artwork to stamp: a PDF file and the page inside
// it that carries the drawing.
type Signature struct {
	Path string
	Page int
}

// Request is a fully resolved signing request.
type Request struct {
	Target    string
	Page      PageSpec
	Signature Signature
	Placement Placement
	Output    string
}

// PageInfo describes one page of an inspected document.
type PageInfo struct {
	Number int
	Size   Size
}

// DocumentInfo summarizes an inspected document.
type DocumentInfo struct {
	Path      string
	PageCount int
	Pages     []PageInfo
	FileSize  int64
}
