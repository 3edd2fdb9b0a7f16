package passes

import (
	"context"
	"slices"

	"go.trai.ch/ormwire/internal/core/domain"
	"go.trai.ch/ormwire/internal/core/ports"
	"go.trai.ch/zerr"
)

// EventListener attaches tagged listeners and subscribers to the event manager of the
// connections they belong to.
type EventListener struct {
	logger ports.Logger
}

// NewEventListener creates a new EventListener pass.
func NewEventListener(logger ports.Logger) *EventListener {
	return &EventListener{logger: logger}
}

// Name implements ports.CompilerPass.
func (p *EventListener) Name() string {
	return "event_listener"
}

// Process implements ports.CompilerPass.
func (p *EventListener) Process(_ context.Context, c *domain.Container, tags domain.TagIndex) error {
	connections := connectionNames(c)

	for _, svc := range byPriority(tags.Tagged(domain.EventListenerTag)) {
		event, ok := svc.Attributes.String("event")
		if !ok {
			err := zerr.With(domain.ErrInvalidConfiguration, "service_id", svc.ID)
			return zerr.With(err, "missing_attribute", "event")
		}
		for _, manager := range p.eventManagers(c, connections, svc) {
			manager.AddMethodCallOnce("addEventListener", []any{event}, domain.Ref(svc.ID))
		}
	}

	for _, svc := range tags.Tagged(domain.EventSubscriberTag) {
		for _, manager := range p.eventManagers(c, connections, svc) {
			manager.AddMethodCallOnce("addEventSubscriber", domain.Ref(svc.ID))
		}
	}
	return nil
}

// eventManagers returns the event managers svc is attached to: the one of the connection
// it names, or all of them.
func (p *EventListener) eventManagers(c *domain.Container, connections []string, svc domain.TaggedService) []*domain.Definition {
	targets := connections
	if name, ok := svc.Attributes.String("connection"); ok {
		if !slices.Contains(connections, name) {
			p.logger.Warn("event listener " + svc.ID + " names unknown connection " + name + ", skipping")
			return nil
		}
		targets = []string{name}
	}

	managers := make([]*domain.Definition, 0, len(targets))
	for _, name := range targets {
		if def, ok := c.Definition(domain.EventManagerID(name)); ok {
			managers = append(managers, def)
		}
	}
	return managers
}
