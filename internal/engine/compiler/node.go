package compiler

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/ormwire/internal/adapters/telemetry" //nolint:depguard // Wired in engine wiring
	"go.trai.ch/ormwire/internal/core/ports"
)

// NodeID is the unique identifier for the compiler Graft node.
const NodeID graft.ID = "engine.compiler"

func init() {
	graft.Register(graft.Node[*Compiler]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{telemetry.TracerNodeID},
		Run: func(ctx context.Context) (*Compiler, error) {
			tracer, err := graft.Dep[ports.Tracer](ctx)
			if err != nil {
				return nil, err
			}
			return New(tracer), nil
		},
	})
}
