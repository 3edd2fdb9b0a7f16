// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/ormwire/internal/adapters/cas"
	_ "go.trai.ch/ormwire/internal/adapters/config"
	_ "go.trai.ch/ormwire/internal/adapters/dumper"
	_ "go.trai.ch/ormwire/internal/adapters/fs"
	_ "go.trai.ch/ormwire/internal/adapters/logger"
	_ "go.trai.ch/ormwire/internal/adapters/telemetry"
	_ "go.trai.ch/ormwire/internal/adapters/watcher"
	// Register app and engine nodes.
	_ "go.trai.ch/ormwire/internal/app"
	_ "go.trai.ch/ormwire/internal/engine/compiler"
	_ "go.trai.ch/ormwire/internal/engine/extension"
	_ "go.trai.ch/ormwire/internal/engine/passes"
)
