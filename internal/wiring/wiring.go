// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/fftwlink/internal/adapters/archive"
	_ "go.trai.ch/fftwlink/internal/adapters/cas"
	_ "go.trai.ch/fftwlink/internal/adapters/config"
	_ "go.trai.ch/fftwlink/internal/adapters/fetch"
	_ "go.trai.ch/fftwlink/internal/adapters/fs"
	_ "go.trai.ch/fftwlink/internal/adapters/logger"
	_ "go.trai.ch/fftwlink/internal/adapters/render"
	_ "go.trai.ch/fftwlink/internal/adapters/shell"
	_ "go.trai.ch/fftwlink/internal/adapters/telemetry"
	_ "go.trai.ch/fftwlink/internal/adapters/watcher"
	// Register app and engine nodes.
	_ "go.trai.ch/fftwlink/internal/app"
	_ "go.trai.ch/fftwlink/internal/engine/linkplan"
	_ "go.trai.ch/fftwlink/internal/engine/provision"
)
