package pdfcpu_test

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"go.trai.ch/sigil/internal/adapters/pdfcpu"
	"go.trai.ch/sigil/internal/core/domain"
	"go.trai.ch/sigil/internal/core/ports"
)

var (
	letter = domain.Size{W: 612, H: 792}
	a4     = domain.Size{W: 595.28, H: 841.89}
)

// writeDoc writes a minimal document with one page per size. Offsets in the
// cross reference table are tracked while writing so the fixture is well
// formed.
func writeDoc(t *testing.T, path string, sizes ...domain.Size) {
	t.Helper()

	var buf bytes.Buffer
	buf.WriteString("%PDF-1.4\n")

	offsets := make([]int, 0, 2+2*len(sizes))
	obj := func(body string) {
		offsets = append(offsets, buf.Len())
		buf.WriteString(body)
	}

	kids := make([]string, len(sizes))
	for i := range sizes {
		kids[i] = fmt.Sprintf("%d 0 R", 3+2*i)
	}
	obj("1 0 obj\n<< /Type /Catalog /Pages 2 0 R >>\nendobj\n")
	obj(fmt.Sprintf("2 0 obj\n<< /Type /Pages /Kids [%s] /Count %d >>\nendobj\n",
		strings.Join(kids, " "), len(sizes)))
	for i, size := range sizes {
		content := fmt.Sprintf("q Q %% page %d", i+1)
		obj(fmt.Sprintf(
			"%d 0 obj\n<< /Type /Page /Parent 2 0 R /MediaBox [0 0 %v %v] /Resources << >> /Contents %d 0 R >>\nendobj\n",
			3+2*i, size.W, size.H, 4+2*i,
		))
		obj(fmt.Sprintf("%d 0 obj\n<< /Length %d >>\nstream\n%s\nendstream\nendobj\n",
			4+2*i, len(content), content))
	}

	xref := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n", len(offsets)+1)
	buf.WriteString("0000000000 65535 f \n")
	for _, off := range offsets {
		fmt.Fprintf(&buf, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n",
		len(offsets)+1, xref)

	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))
}

func TestInspectorPageCount(t *testing.T) {
	target := filepath.Join(t.TempDir(), "doc.pdf")
	writeDoc(t, target, letter, a4, letter)

	count, err := pdfcpu.NewInspector().PageCount(context.Background(), target)

	require.NoError(t, err)
	require.Equal(t, 3, count)
}

func TestInspectorPageSize(t *testing.T) {
	target := filepath.Join(t.TempDir(), "doc.pdf")
	writeDoc(t, target, letter, a4)

	insp := pdfcpu.NewInspector()

	size, err := insp.PageSize(context.Background(), target, 1)
	require.NoError(t, err)
	require.Equal(t, letter, size)

	size, err = insp.PageSize(context.Background(), target, 2)
	require.NoError(t, err)
	require.Equal(t, a4, size)
}

func TestInspectorPageSizeOutOfRange(t *testing.T) {
	target := filepath.Join(t.TempDir(), "doc.pdf")
	writeDoc(t, target, letter)

	_, err := pdfcpu.NewInspector().PageSize(context.Background(), target, 4)

	require.ErrorIs(t, err, domain.ErrPageOutOfRange)
}

func TestComposerExtractPage(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "doc.pdf")
	writeDoc(t, target, letter, a4, letter)
	out := filepath.Join(dir, "page.pdf")

	got, err := pdfcpu.NewComposer().ExtractPage(context.Background(), target, 2, out)

	require.NoError(t, err)
	require.Equal(t, out, got)

	insp := pdfcpu.NewInspector()
	count, err := insp.PageCount(context.Background(), out)
	require.NoError(t, err)
	require.Equal(t, 1, count)

	size, err := insp.PageSize(context.Background(), out, 1)
	require.NoError(t, err)
	require.Equal(t, a4, size)
}

func TestComposerPlaceSignature(t *testing.T) {
	dir := t.TempDir()
	sig := filepath.Join(dir, "sig.pdf")
	writeDoc(t, sig, domain.Size{W: 200, H: 100})
	out := filepath.Join(dir, "overlay.pdf")

	got, err := pdfcpu.NewComposer().PlaceSignature(context.Background(), ports.PlaceRequest{
		Signature: domain.Signature{Path: sig, Page: 1},
		Canvas:    letter,
		Position:  domain.Point{X: 376, Y: 36},
		Scale:     0.5,
		OutPath:   out,
	})

	require.NoError(t, err)
	require.Equal(t, out, got)

	// The overlay adopts the canvas size, not the signature's.
	size, err := pdfcpu.NewInspector().PageSize(context.Background(), out, 1)
	require.NoError(t, err)
	require.Equal(t, letter, size)
}

func TestComposerOverlay(t *testing.T) {
	dir := t.TempDir()
	base := filepath.Join(dir, "base.pdf")
	writeDoc(t, base, letter)
	overlay := filepath.Join(dir, "overlay.pdf")
	writeDoc(t, overlay, letter)
	out := filepath.Join(dir, "stamped.pdf")

	got, err := pdfcpu.NewComposer().Overlay(context.Background(), base, overlay, out)

	require.NoError(t, err)
	require.Equal(t, out, got)

	count, err := pdfcpu.NewInspector().PageCount(context.Background(), out)
	require.NoError(t, err)
	require.Equal(t, 1, count)
}

func TestComposerReplacePage(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "doc.pdf")
	writeDoc(t, target, letter, letter, letter)
	page := filepath.Join(dir, "signed-page.pdf")
	writeDoc(t, page, a4)
	out := filepath.Join(dir, "signed.pdf")

	got, err := pdfcpu.NewComposer().ReplacePage(context.Background(), target, 2, page, out)

	require.NoError(t, err)
	require.Equal(t, out, got)

	insp := pdfcpu.NewInspector()
	count, err := insp.PageCount(context.Background(), out)
	require.NoError(t, err)
	require.Equal(t, 3, count)

	for page, want := range map[int]domain.Size{1: letter, 2: a4, 3: letter} {
		size, err := insp.PageSize(context.Background(), out, page)
		require.NoError(t, err)
		require.Equal(t, want, size, "page %d", page)
	}
}

func TestComposerReplacePageSinglePage(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "doc.pdf")
	writeDoc(t, target, letter)
	page := filepath.Join(dir, "signed-page.pdf")
	writeDoc(t, page, a4)
	out := filepath.Join(dir, "signed.pdf")

	_, err := pdfcpu.NewComposer().ReplacePage(context.Background(), target, 1, page, out)

	require.NoError(t, err)

	size, err := pdfcpu.NewInspector().PageSize(context.Background(), out, 1)
	require.NoError(t, err)
	require.Equal(t, a4, size)
}

func TestComposerReplacePageOutOfRange(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "doc.pdf")
	writeDoc(t, target, letter, letter)
	page := filepath.Join(dir, "signed-page.pdf")
	writeDoc(t, page, letter)

	_, err := pdfcpu.NewComposer().ReplacePage(context.Background(), target, 9, page, filepath.Join(dir, "out.pdf"))

	require.ErrorIs(t, err, domain.ErrPageOutOfRange)
}
