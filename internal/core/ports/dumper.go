package ports

import "go.trai.ch/ormwire/internal/core/domain"

// GraphDumper renders a compiled container.
//
//go:generate mockgen -source=dumper.go -destination=mocks/mock_dumper.go -package=mocks
type GraphDumper interface {
	// Dump serializes the whole graph.
	Dump(c *domain.Container) ([]byte, error)
	// Describe renders a single service, following aliases.
	Describe(c *domain.Container, id string) (string, error)
}
