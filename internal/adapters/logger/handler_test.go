package logger_test

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/sigil/internal/adapters/logger"
)

func newTestHandler(t *testing.T) (*logger.PrettyHandler, *bytes.Buffer) {
	t.Helper()
	t.Setenv("NO_COLOR", "1")

	buf := &bytes.Buffer{}
	return logger.NewPrettyHandler(buf, nil), buf
}

func TestPrettyHandlerEnabled(t *testing.T) {
	h, _ := newTestHandler(t)

	assert.False(t, h.Enabled(context.Background(), slog.LevelDebug))
	assert.True(t, h.Enabled(context.Background(), slog.LevelInfo))
	assert.True(t, h.Enabled(context.Background(), slog.LevelError))
}

func TestPrettyHandlerLevelIcons(t *testing.T) {
	h, buf := newTestHandler(t)
	lg := slog.New(h)

	lg.Info("stamped")
	lg.Warn("slow tool")
	lg.Error("broke")

	assert.Equal(t, "stamped\n! slow tool\n✗ broke\n", buf.String())
}

func TestPrettyHandlerAttrs(t *testing.T) {
	h, buf := newTestHandler(t)
	lg := slog.New(h).With("tool", "qpdf")

	lg.Info("probe", "status", "ok")

	assert.Equal(t, "probe tool=qpdf status=ok\n", buf.String())
}

func TestPrettyHandlerGroupPrefixesKeys(t *testing.T) {
	h, buf := newTestHandler(t)
	lg := slog.New(h).WithGroup("sign")

	lg.Info("done", "page", 3)

	assert.Equal(t, "done sign.page=3\n", buf.String())
}
