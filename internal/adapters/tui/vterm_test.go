package tui_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/sigil/internal/adapters/tui"
)

func stripReset(s string) string {
	return strings.ReplaceAll(s, "\x1b[0m", "")
}

func TestVtermWriteSticksToBottom(t *testing.T) {
	t.Parallel()

	vt := tui.NewVterm()
	vt.SetSize(40, 5)

	_, err := vt.Write([]byte("line1\nline2\nline3\nline4\nline5\nline6"))
	require.NoError(t, err)

	assert.Positive(t, vt.MaxOffset())
	assert.Equal(t, vt.MaxOffset(), vt.Offset())
}

func TestVtermWriteWhileScrolledUpStaysPut(t *testing.T) {
	t.Parallel()

	vt := tui.NewVterm()
	vt.SetSize(40, 4)
	_, _ = vt.Write([]byte("1\n2\n3\n4\n5\n6\n7\n8"))

	vt.ScrollTop()
	_, _ = vt.Write([]byte("\n9\n10"))

	assert.Zero(t, vt.Offset())
}

func TestVtermViewWindow(t *testing.T) {
	t.Parallel()

	vt := tui.NewVterm()
	vt.SetSize(40, 2)
	_, _ = vt.Write([]byte("alpha\nbravo\ncharlie\ndelta"))

	// Stuck to the live end: the last two lines are visible.
	assert.Equal(t, "charlie\ndelta", stripReset(vt.View()))

	vt.ScrollTop()
	assert.Equal(t, "alpha\nbravo", stripReset(vt.View()))

	vt.ScrollBottom()
	assert.Equal(t, "charlie\ndelta", stripReset(vt.View()))
}

func TestVtermScrollClamps(t *testing.T) {
	t.Parallel()

	vt := tui.NewVterm()
	vt.SetSize(40, 2)
	_, _ = vt.Write([]byte("a\nb\nc\nd"))
	require.Equal(t, 2, vt.MaxOffset())

	vt.ScrollBy(-10)
	assert.Zero(t, vt.Offset())

	vt.ScrollBy(1)
	assert.Equal(t, 1, vt.Offset())

	vt.ScrollBy(10)
	assert.Equal(t, 2, vt.Offset())
}

func TestVtermSetSizeClampsOffset(t *testing.T) {
	t.Parallel()

	vt := tui.NewVterm()
	vt.SetSize(40, 2)
	_, _ = vt.Write([]byte("l1\nl2\nl3\nl4\nl5\nl6\nl7\nl8\nl9\nl10"))
	require.Equal(t, 8, vt.Offset())

	// Growing the window while at the bottom keeps it at the bottom.
	vt.SetSize(40, 8)
	assert.Equal(t, 2, vt.Offset())
	assert.Equal(t, vt.MaxOffset(), vt.Offset())

	// Shrinking while scrolled up leaves the anchor line alone.
	vt.ScrollTop()
	vt.SetSize(40, 3)
	assert.Zero(t, vt.Offset())
}

func TestVtermSetSizeMinimums(t *testing.T) {
	t.Parallel()

	vt := tui.NewVterm()
	vt.SetSize(0, 0)
	_, _ = vt.Write([]byte("x\ny\nz"))

	// Height clamps to one row.
	view := stripReset(vt.View())
	assert.NotContains(t, view, "\n")
}

func TestVtermWrapsAtWidth(t *testing.T) {
	t.Parallel()

	vt := tui.NewVterm()
	vt.SetSize(4, 2)
	_, _ = vt.Write([]byte("abcdefgh"))

	assert.Equal(t, "abcd\nefgh", stripReset(vt.View()))
}
