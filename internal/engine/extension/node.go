package extension

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/ormwire/internal/adapters/fs"        //nolint:depguard // Wired in engine wiring
	"go.trai.ch/ormwire/internal/adapters/logger"    //nolint:depguard // Wired in engine wiring
	"go.trai.ch/ormwire/internal/adapters/telemetry" //nolint:depguard // Wired in engine wiring
	"go.trai.ch/ormwire/internal/core/ports"
)

// NodeID is the unique identifier for the extension Graft node.
const NodeID graft.ID = "engine.extension"

func init() {
	graft.Register(graft.Node[*Extension]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			logger.NodeID,
			fs.LocatorNodeID,
			telemetry.TracerNodeID,
		},
		Run: func(ctx context.Context) (*Extension, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			locator, err := graft.Dep[ports.BundleLocator](ctx)
			if err != nil {
				return nil, err
			}

			tracer, err := graft.Dep[ports.Tracer](ctx)
			if err != nil {
				return nil, err
			}

			return New(log, locator, tracer), nil
		},
	})
}
