package ports

import "go.trai.ch/ormwire/internal/core/domain"

// ConfigLoader defines the interface for loading the configuration tree.
//
//go:generate mockgen -source=config_loader.go -destination=mocks/mock_config_loader.go -package=mocks
type ConfigLoader interface {
	// Load reads the file at path together with everything it imports and returns
	// the merged, normalized and validated tree.
	Load(path string) (*domain.Config, error)
}
