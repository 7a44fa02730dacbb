package raster_test

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/muesli/termenv"
	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/sigil/internal/adapters/raster"
)

// newTestRenderer pins the profile to true color so cell escapes are
// byte-stable regardless of the test terminal.
func newTestRenderer() *raster.HalfBlockRenderer {
	out := termenv.NewOutput(os.Stderr, termenv.WithProfile(termenv.TrueColor))
	return raster.NewHalfBlockRenderer(out)
}

func writePNG(t *testing.T, img image.Image) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "frame.png")
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, img))
	require.NoError(t, f.Close())
	return path
}

// stripe fills a horizontal band of img with c.
func stripe(img *image.RGBA, yMin, yMax int, c color.RGBA) {
	b := img.Bounds()
	for y := yMin; y < yMax; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			img.SetRGBA(x, y, c)
		}
	}
}

func cellCount(s string) int {
	return strings.Count(s, "▀")
}

func TestRenderFileStripes(t *testing.T) {
	// 3x4 image fills a 3x2 cell grid exactly, so no resampling blurs the
	// stripe borders and the output is predictable per cell.
	img := image.NewRGBA(image.Rect(0, 0, 3, 4))
	stripe(img, 0, 1, color.RGBA{R: 255, A: 255})
	stripe(img, 1, 2, color.RGBA{B: 255, A: 255})
	stripe(img, 2, 3, color.RGBA{G: 255, A: 255})
	stripe(img, 3, 4, color.RGBA{R: 255, G: 255, B: 255, A: 255})

	got, err := newTestRenderer().RenderFile(writePNG(t, img), 3, 2)
	require.NoError(t, err)

	g := goldie.New(t)
	g.Assert(t, "frame_3x2", []byte(got))
}

func TestRenderFitsWideImage(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 8, 2))
	stripe(img, 0, 2, color.RGBA{R: 255, A: 255})

	got, err := newTestRenderer().RenderFile(writePNG(t, img), 4, 4)
	require.NoError(t, err)

	lines := strings.Split(got, "\n")
	assert.Len(t, lines, 1, "a wide image collapses to few rows")
	assert.Equal(t, 4, cellCount(lines[0]))
}

func TestRenderFitsTallImage(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 2, 8))
	stripe(img, 0, 8, color.RGBA{B: 255, A: 255})

	got, err := newTestRenderer().RenderFile(writePNG(t, img), 8, 2)
	require.NoError(t, err)

	lines := strings.Split(got, "\n")
	assert.Len(t, lines, 2)
	for _, line := range lines {
		assert.Equal(t, 1, cellCount(line), "a tall image narrows to keep aspect")
	}
}

func TestRenderUpscalesSmallImage(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	stripe(img, 0, 2, color.RGBA{R: 128, G: 128, B: 128, A: 255})

	got, err := newTestRenderer().RenderFile(writePNG(t, img), 6, 3)
	require.NoError(t, err)

	lines := strings.Split(got, "\n")
	assert.Len(t, lines, 3)
	assert.Equal(t, 6, cellCount(lines[0]))
}

func TestRenderFileMissing(t *testing.T) {
	_, err := newTestRenderer().RenderFile(filepath.Join(t.TempDir(), "absent.png"), 4, 4)

	assert.Error(t, err)
}

func TestRenderFileNotPNG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "frame.png")
	require.NoError(t, os.WriteFile(path, []byte("%PDF-1.7 not an image"), 0o600))

	_, err := newTestRenderer().RenderFile(path, 4, 4)

	assert.Error(t, err)
}

func TestRenderFileEmptyArea(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))

	_, err := newTestRenderer().RenderFile(writePNG(t, img), 0, 2)

	assert.Error(t, err)
}
