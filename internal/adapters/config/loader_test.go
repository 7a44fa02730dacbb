package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"go.trai.ch/sigil/internal/adapters/config"
	"go.trai.ch/sigil/internal/core/domain"
)

// writeConfig drops a .sigil.yaml with the given content into dir.
func writeConfig(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, ".sigil.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// isolateUserDirs points the user-level lookups at empty directories.
func isolateUserDirs(t *testing.T) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("HOME", t.TempDir())
}

func TestLoadDefaultsWhenNoFileExists(t *testing.T) {
	isolateUserDirs(t)

	cfg, path, err := config.NewLoader().Load(t.TempDir())

	require.NoError(t, err)
	require.Empty(t, path)
	require.Equal(t, domain.DefaultConfig(), cfg)
}

func TestLoadMergesPartialFileOverDefaults(t *testing.T) {
	isolateUserDirs(t)
	dir := t.TempDir()
	want := writeConfig(t, dir, "dpi: 144\nsignature: initials\n")

	cfg, path, err := config.NewLoader().Load(dir)

	require.NoError(t, err)
	require.Equal(t, want, path)
	require.Equal(t, 144, cfg.DPI)
	require.Equal(t, "initials", cfg.Signature)
	// Untouched fields keep their defaults.
	require.Equal(t, domain.ToolchainAuto, cfg.Toolchain)
	require.Equal(t, domain.DefaultPlacement(), cfg.Placement)
}

func TestLoadFindsFileInParentDirectory(t *testing.T) {
	isolateUserDirs(t)
	root := t.TempDir()
	want := writeConfig(t, root, "toolchain: embedded\n")
	nested := filepath.Join(root, "contracts", "2026")
	require.NoError(t, os.MkdirAll(nested, 0o755))

	cfg, path, err := config.NewLoader().Load(nested)

	require.NoError(t, err)
	require.Equal(t, want, path)
	require.Equal(t, domain.ToolchainEmbedded, cfg.Toolchain)
}

func TestLoadFallsBackToUserConfigDir(t *testing.T) {
	isolateUserDirs(t)
	userDir := os.Getenv("XDG_CONFIG_HOME")
	require.NoError(t, os.MkdirAll(filepath.Join(userDir, "sigil"), 0o755))
	want := filepath.Join(userDir, "sigil", "config.yaml")
	require.NoError(t, os.WriteFile(want, []byte("dpi: 72\n"), 0o644))

	cfg, path, err := config.NewLoader().Load(t.TempDir())

	require.NoError(t, err)
	require.Equal(t, want, path)
	require.Equal(t, 72, cfg.DPI)
}

func TestLoadPlacementBlock(t *testing.T) {
	isolateUserDirs(t)
	dir := t.TempDir()
	writeConfig(t, dir, `placement:
  anchor: tl
  dx: 0
  dy: 12.5
  scale: 0.75
`)

	cfg, _, err := config.NewLoader().Load(dir)

	require.NoError(t, err)
	require.Equal(t, domain.Placement{Anchor: domain.AnchorTopLeft, DX: 0, DY: 12.5, Scale: 0.75}, cfg.Placement)
}

func TestLoadResolvesRelativeSignatureDir(t *testing.T) {
	isolateUserDirs(t)
	dir := t.TempDir()
	writeConfig(t, dir, "signature_dir: sigs\n")

	cfg, _, err := config.NewLoader().Load(dir)

	require.NoError(t, err)
	require.Equal(t, filepath.Join(dir, "sigs"), cfg.SignatureDir)
}

func TestLoadExpandsHomeInSignatureDir(t *testing.T) {
	isolateUserDirs(t)
	home := os.Getenv("HOME")
	dir := t.TempDir()
	writeConfig(t, dir, "signature_dir: ~/signatures\n")

	cfg, _, err := config.NewLoader().Load(dir)

	require.NoError(t, err)
	require.Equal(t, filepath.Join(home, "signatures"), cfg.SignatureDir)
}

func TestLoadRejectsMalformedYAML(t *testing.T) {
	isolateUserDirs(t)
	dir := t.TempDir()
	writeConfig(t, dir, "dpi: [not a number\n")

	_, _, err := config.NewLoader().Load(dir)

	require.ErrorIs(t, err, domain.ErrInvalidConfig)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{name: "dpi out of range", content: "dpi: 5000\n"},
		{name: "unknown toolchain", content: "toolchain: imagemagick\n"},
		{name: "unknown anchor", content: "placement:\n  anchor: middle\n"},
		{name: "negative scale", content: "placement:\n  scale: -1\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolateUserDirs(t)
			dir := t.TempDir()
			writeConfig(t, dir, tt.content)

			_, _, err := config.NewLoader().Load(dir)

			require.Error(t, err)
		})
	}
}
