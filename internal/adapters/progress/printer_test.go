package progress_test

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/sigil/internal/adapters/progress"
)

var stepStart = time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)

func newTestPrinter(t *testing.T) (*progress.Printer, *bytes.Buffer) {
	t.Helper()
	t.Setenv("NO_COLOR", "1")

	buf := &bytes.Buffer{}
	return progress.NewPrinter(buf), buf
}

func TestPrinterPrintsCompletedStep(t *testing.T) {
	p, buf := newTestPrinter(t)

	p.OnStepStart("s1", "extract page", stepStart)
	p.OnStepEnd("s1", stepStart.Add(12*time.Millisecond), nil)

	assert.Equal(t, "✓ extract page (12ms)\n", buf.String())
}

func TestPrinterPrintsFailedStep(t *testing.T) {
	p, buf := newTestPrinter(t)

	p.OnStepStart("s1", "overlay", stepStart)
	p.OnStepEnd("s1", stepStart.Add(8*time.Millisecond), errors.New("tool exited 2"))

	assert.Equal(t, "✗ overlay (8ms): tool exited 2\n", buf.String())
}

func TestPrinterRoundsSubMillisecondDurations(t *testing.T) {
	p, buf := newTestPrinter(t)

	p.OnStepStart("s1", "inspect", stepStart)
	p.OnStepEnd("s1", stepStart.Add(500*time.Microsecond), nil)

	assert.Equal(t, "✓ inspect (<1ms)\n", buf.String())
}

func TestPrinterPrefixesToolOutput(t *testing.T) {
	p, buf := newTestPrinter(t)

	p.OnStepStart("s1", "render page", stepStart)
	p.OnStepLog("s1", []byte("pdftoppm: syntax wa"))
	p.OnStepLog("s1", []byte("rning\npartial"))

	assert.Equal(t, "[render page] pdftoppm: syntax warning\n", buf.String(),
		"only complete lines print")

	p.OnStepEnd("s1", stepStart.Add(40*time.Millisecond), nil)

	assert.Equal(t,
		"[render page] pdftoppm: syntax warning\n"+
			"[render page] partial\n"+
			"✓ render page (40ms)\n",
		buf.String())
}

func TestPrinterInterleavesSteps(t *testing.T) {
	p, buf := newTestPrinter(t)

	p.OnStepStart("s1", "extract page", stepStart)
	p.OnStepStart("s2", "place signature", stepStart)
	p.OnStepEnd("s2", stepStart.Add(9*time.Millisecond), nil)
	p.OnStepEnd("s1", stepStart.Add(15*time.Millisecond), nil)

	assert.Equal(t,
		"✓ place signature (9ms)\n"+
			"✓ extract page (15ms)\n",
		buf.String())
}

func TestPrinterIgnoresUnknownSpans(t *testing.T) {
	p, buf := newTestPrinter(t)

	p.OnStepLog("ghost", []byte("lost output\n"))
	p.OnStepEnd("ghost", stepStart, nil)

	assert.Empty(t, buf.String())
}

func TestPrinterFlushPrintsPartialLines(t *testing.T) {
	p, buf := newTestPrinter(t)

	p.OnStepStart("s1", "probe", stepStart)
	p.OnStepLog("s1", []byte("no trailing newline"))
	p.Flush()

	assert.Equal(t, "[probe] no trailing newline\n", buf.String())
}
