package domain

import "go.trai.ch/zerr"

// Toolchain selects how PDF operations are executed.
type Toolchain string

const (
	// ToolchainAuto probes for external tools and falls back to the
	// embedded toolkit.
	ToolchainAuto Toolchain = "auto"
	// ToolchainExec uses the external tools (poppler, pdftk, qpdf,
	// ghostscript) exclusively.
	ToolchainExec Toolchain = "exec"
	// ToolchainEmbedded uses the pure Go toolkit exclusively.
	ToolchainEmbedded Toolchain = "embedded"
)

// Config holds the user-tunable settings.
type Config struct {
	// SignatureDir overrides where signature files are looked up.
	SignatureDir string
	// Signature names the default signature file, relative to the
	// signature directory unless absolute.
	Signature string
	// Toolchain selects the PDF backend.
	Toolchain Toolchain
	// DPI is the raster resolution for the preview.
	DPI int
	// Placement is the starting placement for documents without history.
	Placement Placement
}

// DefaultConfig returns the settings used when no configuration file is
// found.
func DefaultConfig() Config {
	return Config{
		Toolchain: ToolchainAuto,
		DPI:       96,
		Placement: DefaultPlacement(),
	}
}

// Validate checks the config for values no command could work with.
func (c Config) Validate() error {
	switch c.Toolchain {
	case ToolchainAuto, ToolchainExec, ToolchainEmbedded:
	default:
		return zerr.With(ErrInvalidConfig, "toolchain", string(c.Toolchain))
	}
	if c.DPI < 12 || c.DPI > 600 {
		return zerr.With(ErrInvalidConfig, "dpi", c.DPI)
	}
	if c.Placement.Scale <= 0 {
		return zerr.With(ErrInvalidConfig, "scale", c.Placement.Scale)
	}
	if c.Placement.Anchor != "" {
		if _, err := ParseAnchor(string(c.Placement.Anchor)); err != nil {
			return err
		}
	}
	return nil
}
