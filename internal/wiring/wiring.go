// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/cmk/internal/adapters/config"
	_ "go.trai.ch/cmk/internal/adapters/logger"
	_ "go.trai.ch/cmk/internal/adapters/shell"
	// Register app and engine nodes.
	_ "go.trai.ch/cmk/internal/app"
	_ "go.trai.ch/cmk/internal/engine/invocation"
)
