// Package config provides the configuration loader for sigil.
package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"go.trai.ch/sigil/internal/core/domain"
	"go.trai.ch/sigil/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

var _ ports.ConfigLoader = (*Loader)(nil)

// Loader discovers and reads .sigil.yaml files.
type Loader struct{}

// NewLoader creates a new Loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load walks from cwd up to the filesystem root looking for the
// configuration file, then tries the user config directory, then falls
// back to defaults.
func (l *Loader) Load(cwd string) (domain.Config, string, error) {
	path, err := discover(cwd)
	if err != nil {
		return domain.Config{}, "", err
	}
	if path == "" {
		return domain.DefaultConfig(), "", nil
	}

	cfg, err := parse(path)
	if err != nil {
		return domain.Config{}, "", err
	}
	return cfg, path, nil
}

func discover(cwd string) (string, error) {
	dir, err := filepath.Abs(cwd)
	if err != nil {
		return "", zerr.With(zerr.Wrap(err, "failed to resolve working directory"), "cwd", cwd)
	}

	for {
		candidate := filepath.Join(dir, domain.ConfigFileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	if userDir, err := os.UserConfigDir(); err == nil {
		candidate := domain.UserConfigPath(userDir)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}
	}
	return "", nil
}

func parse(path string) (domain.Config, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is discovered above
	if err != nil {
		return domain.Config{}, zerr.With(zerr.Wrap(err, "failed to read config file"), "path", path)
	}

	var file File
	if err := yaml.Unmarshal(data, &file); err != nil {
		return domain.Config{}, zerr.With(errors.Join(domain.ErrInvalidConfig, err), "path", path)
	}

	cfg, err := file.toDomain(filepath.Dir(path))
	if err != nil {
		return domain.Config{}, zerr.With(err, "path", path)
	}
	return cfg, nil
}

// toDomain merges the file over the defaults and validates the result.
// Relative directories resolve against the file's own location.
func (f File) toDomain(base string) (domain.Config, error) {
	cfg := domain.DefaultConfig()

	if f.SignatureDir != "" {
		cfg.SignatureDir = resolveDir(f.SignatureDir, base)
	}
	if f.Signature != "" {
		cfg.Signature = f.Signature
	}
	if f.Toolchain != "" {
		cfg.Toolchain = domain.Toolchain(f.Toolchain)
	}
	if f.DPI != 0 {
		cfg.DPI = f.DPI
	}
	if f.Placement.Anchor != "" {
		anchor, err := domain.ParseAnchor(f.Placement.Anchor)
		if err != nil {
			return domain.Config{}, err
		}
		cfg.Placement.Anchor = anchor
	}
	if f.Placement.DX != nil {
		cfg.Placement.DX = *f.Placement.DX
	}
	if f.Placement.DY != nil {
		cfg.Placement.DY = *f.Placement.DY
	}
	if f.Placement.Scale != 0 {
		cfg.Placement.Scale = f.Placement.Scale
	}

	if err := cfg.Validate(); err != nil {
		return domain.Config{}, err
	}
	return cfg, nil
}

func resolveDir(dir, base string) string {
	if after, ok := strings.CutPrefix(dir, "~/"); ok {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, after)
		}
		return dir
	}
	if filepath.IsAbs(dir) {
		return dir
	}
	return filepath.Join(base, dir)
}
