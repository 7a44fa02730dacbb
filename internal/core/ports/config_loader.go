package ports

import "go.trai.ch/sigil/internal/core/domain"

// ConfigLoader defines the interface for loading the user configuration.
//
//go:generate mockgen -source=config_loader.go -destination=mocks/mock_config_loader.go -package=mocks
type ConfigLoader interface {
	// Load discovers and reads the configuration for the given working
	// directory, falling back to defaults when no file exists. The second
	// return is the file the settings came from, empty for defaults.
	Load(cwd string) (domain.Config, string, error)
}
