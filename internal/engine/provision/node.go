package provision

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/fftwlink/internal/adapters/archive"   //nolint:depguard // Wired in engine wiring
	"go.trai.ch/fftwlink/internal/adapters/cas"       //nolint:depguard // Wired in engine wiring
	"go.trai.ch/fftwlink/internal/adapters/fetch"     //nolint:depguard // Wired in engine wiring
	"go.trai.ch/fftwlink/internal/adapters/fs"        //nolint:depguard // Wired in engine wiring
	"go.trai.ch/fftwlink/internal/adapters/logger"    //nolint:depguard // Wired in engine wiring
	"go.trai.ch/fftwlink/internal/adapters/shell"     //nolint:depguard // Wired in engine wiring
	"go.trai.ch/fftwlink/internal/adapters/telemetry" //nolint:depguard // Wired in engine wiring
	"go.trai.ch/fftwlink/internal/core/ports"
)

// NodeID is the unique identifier for the provisioner selector Graft node.
const NodeID graft.ID = "engine.provision"

func init() {
	graft.Register(graft.Node[*Selector]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			shell.NodeID,
			cas.NodeID,
			fs.CopierNodeID,
			fs.HasherNodeID,
			fs.VerifierNodeID,
			fetch.NodeID,
			archive.ExtractorNodeID,
			archive.DigesterNodeID,
			telemetry.TracerNodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (*Selector, error) {
			executor, err := graft.Dep[ports.Executor](ctx)
			if err != nil {
				return nil, err
			}

			store, err := graft.Dep[ports.ProvisionStore](ctx)
			if err != nil {
				return nil, err
			}

			copier, err := graft.Dep[ports.TreeCopier](ctx)
			if err != nil {
				return nil, err
			}

			hasher, err := graft.Dep[ports.Hasher](ctx)
			if err != nil {
				return nil, err
			}

			verifier, err := graft.Dep[ports.Verifier](ctx)
			if err != nil {
				return nil, err
			}

			fetcher, err := graft.Dep[ports.Fetcher](ctx)
			if err != nil {
				return nil, err
			}

			extractor, err := graft.Dep[ports.Extractor](ctx)
			if err != nil {
				return nil, err
			}

			digester, err := graft.Dep[ports.Digester](ctx)
			if err != nil {
				return nil, err
			}

			tracer, err := graft.Dep[ports.Tracer](ctx)
			if err != nil {
				return nil, err
			}

			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			return NewSelector(
				NewBundled(),
				NewSource(executor, copier, hasher, verifier, store, tracer, log),
				NewDownload(fetcher, extractor, digester, executor, verifier, store, tracer, log),
			), nil
		},
	})
}
