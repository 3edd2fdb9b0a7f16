package app

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/ormwire/internal/adapters/cas"       //nolint:depguard // Wired in app layer
	"go.trai.ch/ormwire/internal/adapters/config"    //nolint:depguard // Wired in app layer
	"go.trai.ch/ormwire/internal/adapters/dumper"    //nolint:depguard // Wired in app layer
	"go.trai.ch/ormwire/internal/adapters/fs"        //nolint:depguard // Wired in app layer
	"go.trai.ch/ormwire/internal/adapters/logger"    //nolint:depguard // Wired in app layer
	"go.trai.ch/ormwire/internal/adapters/telemetry" //nolint:depguard // Wired in app layer
	"go.trai.ch/ormwire/internal/adapters/watcher"   //nolint:depguard // Wired in app layer
	"go.trai.ch/ormwire/internal/core/ports"
	"go.trai.ch/ormwire/internal/engine/compiler"
	"go.trai.ch/ormwire/internal/engine/extension"
	"go.trai.ch/ormwire/internal/engine/passes"
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
			fs.HasherNodeID,
			cas.NodeID,
			dumper.NodeID,
			watcher.NodeID,
			logger.NodeID,
			extension.NodeID,
			compiler.NodeID,
			passes.NodeID,
			telemetry.ProviderNodeID,
		},
		Run: runAppNode,
	})

	graft.Register(graft.Node[*Components]{
		ID:        ComponentsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			AppNodeID,
			logger.NodeID,
			telemetry.ProviderNodeID,
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

			provider, err := graft.Dep[*telemetry.Provider](ctx)
			if err != nil {
				return nil, err
			}

			return &Components{
				App:      app,
				Logger:   log,
				Provider: provider,
			}, nil
		},
	})
}

func runAppNode(ctx context.Context) (*App, error) {
	loader, err := graft.Dep[ports.ConfigLoader](ctx)
	if err != nil {
		return nil, err
	}

	fingerprinter, err := graft.Dep[ports.Fingerprinter](ctx)
	if err != nil {
		return nil, err
	}

	store, err := graft.Dep[ports.GraphStore](ctx)
	if err != nil {
		return nil, err
	}

	graphDumper, err := graft.Dep[ports.GraphDumper](ctx)
	if err != nil {
		return nil, err
	}

	fileWatcher, err := graft.Dep[ports.Watcher](ctx)
	if err != nil {
		return nil, err
	}

	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	ext, err := graft.Dep[*extension.Extension](ctx)
	if err != nil {
		return nil, err
	}

	comp, err := graft.Dep[*compiler.Compiler](ctx)
	if err != nil {
		return nil, err
	}

	compilerPasses, err := graft.Dep[[]ports.CompilerPass](ctx)
	if err != nil {
		return nil, err
	}

	provider, err := graft.Dep[*telemetry.Provider](ctx)
	if err != nil {
		return nil, err
	}

	return New(loader, fingerprinter, store, graphDumper, fileWatcher, log, ext, comp, compilerPasses).
		WithRecorder(provider.Recorder()), nil
}
