// Package passes holds the compiler passes that rewrite the service graph after the
// extension has registered every connection and entity manager.
package passes

import (
	"slices"

	"go.trai.ch/ormwire/internal/core/domain"
	"go.trai.ch/ormwire/internal/core/ports"
)

// Default returns the passes in the order they must run.
func Default(logger ports.Logger) []ports.CompilerPass {
	return []ports.CompilerPass{
		NewWellKnownSchemaFilter(),
		NewSchemaFilter(logger),
		NewEntityListener(logger),
		NewEventListener(logger),
	}
}

// connectionNames returns the configured connection names in registration order.
func connectionNames(c *domain.Container) []string {
	v, _ := c.Parameter(domain.ConnectionsParameter)
	connections, _ := v.(map[string]any)

	byID := make(map[string]string, len(connections))
	for name, id := range connections {
		if s, ok := id.(string); ok {
			byID[s] = name
		}
	}

	names := make([]string, 0, len(connections))
	for id := range c.Definitions() {
		if name, ok := byID[id]; ok {
			names = append(names, name)
		}
	}
	return names
}

func stringParameter(c *domain.Container, name string) string {
	v, _ := c.Parameter(name)
	s, _ := v.(string)
	return s
}

// byPriority orders tagged services by their priority attribute, highest first.
// Services with equal priority keep their registration order.
func byPriority(tagged []domain.TaggedService) []domain.TaggedService {
	slices.SortStableFunc(tagged, func(a, b domain.TaggedService) int {
		return b.Attributes.Int("priority") - a.Attributes.Int("priority")
	})
	return tagged
}
