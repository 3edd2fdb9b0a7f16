package passes

import (
	"context"
	"slices"

	"go.trai.ch/ormwire/internal/core/domain"
	"go.trai.ch/ormwire/internal/core/ports"
)

// SchemaFilter gathers the schema filters of every connection into one filter manager
// and installs it on the connection's configuration.
type SchemaFilter struct {
	logger ports.Logger
}

// NewSchemaFilter creates a new SchemaFilter pass.
func NewSchemaFilter(logger ports.Logger) *SchemaFilter {
	return &SchemaFilter{logger: logger}
}

// Name implements ports.CompilerPass.
func (p *SchemaFilter) Name() string {
	return "schema_filter"
}

// Process implements ports.CompilerPass.
func (p *SchemaFilter) Process(_ context.Context, c *domain.Container, tags domain.TagIndex) error {
	tagged := tags.Tagged(domain.SchemaFilterTag)
	if len(tagged) == 0 {
		return nil
	}

	connections := connectionNames(c)
	filters := make(map[string][]any, len(connections))
	for _, svc := range wellKnownFirst(tagged) {
		name, ok := svc.Attributes.String("connection")
		if !ok {
			for _, conn := range connections {
				filters[conn] = appendFilter(filters[conn], svc.ID)
			}
			continue
		}
		if !slices.Contains(connections, name) {
			p.logger.Warn("schema filter " + svc.ID + " names unknown connection " + name + ", skipping")
			continue
		}
		filters[name] = appendFilter(filters[name], svc.ID)
	}

	for _, conn := range connections {
		refs := filters[conn]
		if len(refs) == 0 {
			continue
		}
		configuration, ok := c.Definition(domain.ConnectionConfigurationID(conn))
		if !ok {
			continue
		}

		managerID := domain.SchemaFilterManagerIDFor(conn)
		c.SetDefinition(managerID, domain.NewChildDefinition(domain.SchemaFilterManagerID, refs))
		configuration.AddMethodCallOnce("setSchemaAssetsFilter", domain.Ref(managerID))
	}
	return nil
}

// wellKnownFirst moves the occurrences of the well-known filter ahead of the others.
func wellKnownFirst(tagged []domain.TaggedService) []domain.TaggedService {
	slices.SortStableFunc(tagged, func(a, b domain.TaggedService) int {
		switch {
		case a.ID == b.ID:
			return 0
		case a.ID == domain.WellKnownSchemaFilterID:
			return -1
		case b.ID == domain.WellKnownSchemaFilterID:
			return 1
		default:
			return 0
		}
	})
	return tagged
}

func appendFilter(refs []any, id string) []any {
	ref := domain.Ref(id)
	if slices.Contains(refs, any(ref)) {
		return refs
	}
	return append(refs, ref)
}
