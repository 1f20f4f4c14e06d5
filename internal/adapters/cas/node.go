package cas

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/fftwlink/internal/core/ports"
)

// NodeID is the unique identifier for the provision record store Graft node.
const NodeID graft.ID = "adapter.provision_store"

func init() {
	graft.Register(graft.Node[ports.ProvisionStore]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.ProvisionStore, error) {
			store, err := NewStore()
			if err != nil {
				return nil, err
			}
			return store, nil
		},
	})
}
