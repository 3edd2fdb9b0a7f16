package passes

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/ormwire/internal/adapters/logger" //nolint:depguard // Wired in engine wiring
	"go.trai.ch/ormwire/internal/core/ports"
)

// NodeID is the unique identifier for the compiler passes Graft node.
const NodeID graft.ID = "engine.passes"

func init() {
	graft.Register(graft.Node[[]ports.CompilerPass]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.NodeID},
		Run: func(ctx context.Context) ([]ports.CompilerPass, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return Default(log), nil
		},
	})
}
