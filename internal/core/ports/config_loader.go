package ports

import "go.trai.ch/apiroutes/internal/core/domain"

// ConfigLoader defines the interface for loading the project configuration.
//
//go:generate mockgen -source=config_loader.go -destination=mocks/mock_config_loader.go -package=mocks
type ConfigLoader interface {
	// Load finds the configuration for the given working directory.
	// If path is not empty it names the config file explicitly.
	Load(cwd, path string) (*domain.ProjectConfig, error)
}
