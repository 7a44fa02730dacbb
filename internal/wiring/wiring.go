// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/sigil/internal/adapters/config"
	_ "go.trai.ch/sigil/internal/adapters/fs"
	_ "go.trai.ch/sigil/internal/adapters/history"
	_ "go.trai.ch/sigil/internal/adapters/logger"
	_ "go.trai.ch/sigil/internal/adapters/shell"
	_ "go.trai.ch/sigil/internal/adapters/telemetry"
	_ "go.trai.ch/sigil/internal/adapters/toolchain"
	_ "go.trai.ch/sigil/internal/adapters/watcher"
	// Register app nodes.
	_ "go.trai.ch/sigil/internal/app"
)
