package app

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/fftwlink/internal/adapters/cas"       //nolint:depguard // Wired in app layer
	"go.trai.ch/fftwlink/internal/adapters/config"    //nolint:depguard // Wired in app layer
	"go.trai.ch/fftwlink/internal/adapters/fs"        //nolint:depguard // Wired in app layer
	"go.trai.ch/fftwlink/internal/adapters/logger"    //nolint:depguard // Wired in app layer
	"go.trai.ch/fftwlink/internal/adapters/render"    //nolint:depguard // Wired in app layer
	"go.trai.ch/fftwlink/internal/adapters/telemetry" //nolint:depguard // Wired in app layer
	"go.trai.ch/fftwlink/internal/adapters/watcher"   //nolint:depguard // Wired in app layer
	"go.trai.ch/fftwlink/internal/core/ports"
	"go.trai.ch/fftwlink/internal/engine/linkplan"
	"go.trai.ch/fftwlink/internal/engine/provision"
)

const (
	// AppNodeID is the unique identifier for the main App Graft node.
	AppNodeID graft.ID = "app.main"
	// ComponentsNodeID is the unique identifier for the App components Graft node.
	ComponentsNodeID graft.ID = "app.components"
)

func init() {
	graft.Register(graft.Node[*App]{
		ID:        AppNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			config.NodeID,
			provision.NodeID,
			linkplan.NodeID,
			render.NodeID,
			cas.NodeID,
			fs.VerifierNodeID,
			watcher.NodeID,
			telemetry.TracerNodeID,
			logger.NodeID,
		},
		Run: runAppNode,
	})

	graft.Register(graft.Node[*Components]{
		ID:        ComponentsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			AppNodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (*Components, error) {
			app, err := graft.Dep[*App](ctx)
			if err != nil {
				return nil, err
			}

			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			return NewComponents(app, log), nil
		},
	})
}

func runAppNode(ctx context.Context) (*App, error) {
	loader, err := graft.Dep[ports.ConfigLoader](ctx)
	if err != nil {
		return nil, err
	}

	selector, err := graft.Dep[*provision.Selector](ctx)
	if err != nil {
		return nil, err
	}

	emitter, err := graft.Dep[*linkplan.Emitter](ctx)
	if err != nil {
		return nil, err
	}

	renderer, err := graft.Dep[ports.Renderer](ctx)
	if err != nil {
		return nil, err
	}

	store, err := graft.Dep[ports.ProvisionStore](ctx)
	if err != nil {
		return nil, err
	}

	verifier, err := graft.Dep[ports.Verifier](ctx)
	if err != nil {
		return nil, err
	}

	w, err := graft.Dep[ports.Watcher](ctx)
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

	return New(loader, selector, emitter, renderer, store, verifier, w, tracer, log), nil
}
