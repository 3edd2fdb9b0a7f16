package dumper

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/ormwire/internal/core/ports"
)

// NodeID is the unique identifier for the graph dumper Graft node.
const NodeID graft.ID = "adapter.dumper"

func init() {
	graft.Register(graft.Node[ports.GraphDumper]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.GraphDumper, error) {
			return New(), nil
		},
	})
}
