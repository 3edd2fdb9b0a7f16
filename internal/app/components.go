package app

import (
	"go.trai.ch/ormwire/internal/adapters/telemetry"
	"go.trai.ch/ormwire/internal/core/ports"
)

// Components contains all the initialized application components.
// This struct provides controlled access to components needed by the CLI layer.
type Components struct {
	App      *App
	Logger   ports.Logger
	Provider *telemetry.Provider
}
