package ports

import "go.trai.ch/cmk/internal/core/domain"

// ConfigLoader defines the interface for loading the step file.
//
//go:generate mockgen -source=config_loader.go -destination=mocks/mock_config_loader.go -package=mocks
type ConfigLoader interface {
	// Load finds the step file at or above cwd and returns its validated steps.
	Load(cwd string) (*domain.Project, error)
}
