package passes

import (
	"context"
	"fmt"

	"go.trai.ch/ormwire/internal/core/domain"
	"go.trai.ch/ormwire/internal/core/ports"
	"go.trai.ch/zerr"
)

// EntityListener registers tagged entity listeners with the listener resolver of their
// entity manager and binds them to entity events.
type EntityListener struct {
	logger ports.Logger
}

// NewEntityListener creates a new EntityListener pass.
func NewEntityListener(logger ports.Logger) *EntityListener {
	return &EntityListener{logger: logger}
}

// Name implements ports.CompilerPass.
func (p *EntityListener) Name() string {
	return "entity_listener"
}

// LocatorID is the id of the service locator holding the lazy listeners of a resolver.
func LocatorID(resolverID string) string {
	return resolverID + ".service_locator"
}

// Process implements ports.CompilerPass.
func (p *EntityListener) Process(_ context.Context, c *domain.Container, tags domain.TagIndex) error {
	tagged := tags.Tagged(domain.EntityListenerTag)
	if len(tagged) == 0 {
		return nil
	}

	defaultEM := stringParameter(c, domain.DefaultEntityManagerPar)
	locators := make(map[string]*domain.ServiceLocator)
	var locatorOrder []string

	for _, svc := range byPriority(tagged) {
		listener, ok := c.Definition(svc.ID)
		if !ok {
			return zerr.With(domain.ErrServiceNotFound, "service_id", svc.ID)
		}
		if listener.Abstract {
			err := zerr.Wrap(domain.ErrAbstractService, fmt.Sprintf("The service %q must not be abstract.", svc.ID))
			return zerr.With(err, "service_id", svc.ID)
		}

		em, ok := svc.Attributes.String("entity_manager")
		if !ok {
			em = defaultEM
		}
		if !c.HasDefinition(domain.EntityManagerID(em)) {
			p.logger.Warn("entity listener " + svc.ID + " names unknown entity manager " + em + ", skipping")
			continue
		}

		resolverID := domain.EntityListenerResolverID(em)
		if !c.Has(resolverID) {
			continue
		}
		resolver, err := c.FindDefinition(resolverID)
		if err != nil {
			return err
		}
		resolver.Public = true

		listenerClass, err := c.ResolveClass(svc.ID)
		if err != nil {
			return zerr.With(err, "service_id", svc.ID)
		}
		if _, ok := svc.Attributes.String("entity"); ok {
			p.attach(c, em, listenerClass, svc.Attributes)
		}

		resolverClass, err := c.ResolveClass(resolverID)
		if err != nil {
			return zerr.With(err, "service_id", resolverID)
		}
		if !c.Implements(resolverClass, domain.EntityListenerResolverInterface) {
			err := zerr.Wrap(domain.ErrMissingCapability, fmt.Sprintf(
				"The entity listener resolver %q must implement %s.", resolverID, domain.EntityListenerResolverInterface))
			return zerr.With(err, "service_id", resolverID)
		}

		supportsLazy := c.Implements(resolverClass, domain.EntityListenerServiceResolverInterface)
		lazy, lazySet := svc.Attributes.Bool("lazy")
		if lazy && !supportsLazy {
			err := zerr.Wrap(domain.ErrMissingCapability, fmt.Sprintf(
				"Lazy-loaded entity listeners can only be resolved by a resolver implementing %s.",
				domain.EntityListenerServiceResolverInterface))
			return zerr.With(err, "service_id", svc.ID)
		}

		if lazy || (!lazySet && supportsLazy) {
			resolver.AddMethodCallOnce("registerService", listenerClass, svc.ID)
			if resolverClass != domain.ContainerResolverClass {
				listener.Public = true
				continue
			}
			locator, ok := locators[resolverID]
			if !ok {
				locator = &domain.ServiceLocator{}
				locators[resolverID] = locator
				locatorOrder = append(locatorOrder, resolverID)
			}
			locator.Set(svc.ID, domain.Ref(svc.ID))
			continue
		}

		resolver.AddMethodCallOnce("register", domain.Ref(svc.ID))
	}

	for _, resolverID := range locatorOrder {
		resolver, err := c.FindDefinition(resolverID)
		if err != nil {
			return err
		}
		locatorID := LocatorID(resolverID)
		c.Register(locatorID, domain.ServiceLocatorClass, *locators[resolverID])
		resolver.SetArgument(0, domain.Ref(locatorID))
	}
	return nil
}

// attach binds the listener class to an entity event on the entity manager's
// attach-listeners subscriber.
func (p *EntityListener) attach(c *domain.Container, em, class string, attrs domain.Attributes) {
	attachID := domain.AttachEntityListenersID(em)
	if !c.Has(attachID) {
		return
	}
	subscriber, err := c.FindDefinition(attachID)
	if err != nil {
		return
	}

	entity, _ := attrs.String("entity")
	var event any
	eventName, hasEvent := attrs.String("event")
	if hasEvent {
		event = eventName
	}
	args := []any{entity, class, event}

	if method, ok := attrs.String("method"); ok {
		args = append(args, method)
	} else if hasEvent && !c.HasMethod(class, eventName) && c.HasMethod(class, "__invoke") {
		args = append(args, "__invoke")
	}
	subscriber.AddMethodCallOnce("addEntityListener", args...)
}
