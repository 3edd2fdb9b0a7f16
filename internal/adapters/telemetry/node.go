package telemetry

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/ormwire/internal/core/ports"
)

const (
	// ProviderNodeID is the unique identifier for the Telemetry adapter Graft node.
	ProviderNodeID graft.ID = "adapter.telemetry"
	// TracerNodeID is the unique identifier for the tracer Graft node.
	TracerNodeID graft.ID = "adapter.telemetry.tracer"
)

func init() {
	graft.Register(graft.Node[*Provider]{
		ID:        ProviderNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (*Provider, error) {
			return NewProvider("ormwire"), nil
		},
	})

	graft.Register(graft.Node[ports.Tracer]{
		ID:        TracerNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{ProviderNodeID},
		Run: func(ctx context.Context) (ports.Tracer, error) {
			provider, err := graft.Dep[*Provider](ctx)
			if err != nil {
				return nil, err
			}
			return provider, nil
		},
	})
}
