// Package extension turns a configuration tree into an uncompiled service graph.
package extension

import (
	"context"

	"github.com/google/uuid"
	"go.trai.ch/ormwire/internal/core/domain"
	"go.trai.ch/ormwire/internal/core/ports"
)

// buildNamespace scopes the build ids derived from input fingerprints.
var buildNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://go.trai.ch/ormwire"))

// Extension registers the definitions of connections and entity managers.
type Extension struct {
	logger  ports.Logger
	locator ports.BundleLocator
	tracer  ports.Tracer
}

// New creates a new Extension.
func New(logger ports.Logger, locator ports.BundleLocator, tracer ports.Tracer) *Extension {
	return &Extension{
		logger:  logger,
		locator: locator,
		tracer:  tracer,
	}
}

// Load builds the service graph described by cfg. Connections are registered before
// entity managers. fingerprint identifies the inputs and seeds the build id; it may be
// empty.
func (e *Extension) Load(ctx context.Context, cfg *domain.Config, fingerprint string) (*domain.Container, error) {
	_, span := e.tracer.Start(ctx, "extension.load")
	defer span.End()

	c := domain.NewContainer()
	registerBase(c, cfg)
	registerServices(c, cfg.Services)
	loadDBAL(c, &cfg.DBAL)
	if err := e.loadORM(c, cfg); err != nil {
		span.RecordError(err)
		return nil, err
	}

	if fingerprint != "" {
		c.SetParameter(BuildIDParameter, uuid.NewSHA1(buildNamespace, []byte(fingerprint)).String())
	}
	span.SetAttribute(domain.SpanAttrServicesCount, c.Len())
	return c, nil
}
