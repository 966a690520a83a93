// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "github.com/chorehq/chore/internal/adapters/cache"
	_ "github.com/chorehq/chore/internal/adapters/config"
	_ "github.com/chorehq/chore/internal/adapters/console"
	_ "github.com/chorehq/chore/internal/adapters/flock"
	_ "github.com/chorehq/chore/internal/adapters/logger"
	_ "github.com/chorehq/chore/internal/adapters/opener"
	_ "github.com/chorehq/chore/internal/adapters/shell"
	// Register app, engine and plugin nodes.
	_ "github.com/chorehq/chore/internal/app"
	_ "github.com/chorehq/chore/internal/engine/evaluator"
	_ "github.com/chorehq/chore/internal/engine/executor"
	_ "github.com/chorehq/chore/internal/engine/scheduler"
	_ "github.com/chorehq/chore/internal/plugins"
)
