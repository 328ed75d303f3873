package invocation

import (
	"context"

	"github.com/grindlemire/graft"
)

// NodeID is the unique identifier for the composer Graft node.
const NodeID graft.ID = "engine.composer"

func init() {
	graft.Register(graft.Node[*Composer]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{},
		Run: func(_ context.Context) (*Composer, error) {
			return NewComposer(), nil
		},
	})
}
