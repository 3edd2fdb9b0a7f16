package extension

import (
	"slices"

	"go.trai.ch/ormwire/internal/core/domain"
)

// registerServices adds the user-declared services. They are registered after the
// base definitions so that a user service may replace a shipped one.
func registerServices(c *domain.Container, services []domain.ServiceConfig) {
	for _, svc := range services {
		if svc.Alias != "" {
			if svc.Public {
				c.SetPublicAlias(svc.ID, svc.Alias)
			} else {
				c.SetAlias(svc.ID, svc.Alias)
			}
			continue
		}

		def := &domain.Definition{
			Class:     svc.Class,
			Parent:    svc.Parent,
			Abstract:  svc.Abstract,
			Public:    svc.Public,
			Lazy:      svc.Lazy,
			Synthetic: svc.Synthetic,
			Arguments: slices.Clone(svc.Arguments),
		}
		if svc.Factory != nil {
			factory := *svc.Factory
			def.Factory = &factory
		}
		for _, call := range svc.Calls {
			def.AddMethodCall(call.Method, call.Args...)
		}
		for _, tag := range svc.Tags {
			def.AddTag(tag.Name, tag.Attributes)
		}
		c.SetDefinition(svc.ID, def)
	}
}
