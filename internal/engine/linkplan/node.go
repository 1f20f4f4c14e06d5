package linkplan

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/fftwlink/internal/adapters/fs" //nolint:depguard // Wired in engine wiring
	"go.trai.ch/fftwlink/internal/core/ports"
)

// NodeID is the unique identifier for the link plan emitter Graft node.
const NodeID graft.ID = "engine.linkplan"

func init() {
	graft.Register(graft.Node[*Emitter]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{fs.VerifierNodeID},
		Run: func(ctx context.Context) (*Emitter, error) {
			verifier, err := graft.Dep[ports.Verifier](ctx)
			if err != nil {
				return nil, err
			}
			return NewEmitter(verifier), nil
		},
	})
}
