package archive

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/fftwlink/internal/core/ports"
)

const (
	// ExtractorNodeID is the unique identifier for the zip extractor Graft node.
	ExtractorNodeID graft.ID = "adapter.archive.extractor"
	// DigesterNodeID is the unique identifier for the digest verifier Graft node.
	DigesterNodeID graft.ID = "adapter.archive.digester"
)

func init() {
	graft.Register(graft.Node[ports.Extractor]{
		ID:        ExtractorNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.Extractor, error) {
			return NewExtractor(), nil
		},
	})

	graft.Register(graft.Node[ports.Digester]{
		ID:        DigesterNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.Digester, error) {
			return NewDigester(), nil
		},
	})
}
