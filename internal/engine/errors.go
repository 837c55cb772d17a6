package engine

import (
	"fmt"

	"github.com/Guliveer/nodestat/internal/executor"
	"github.com/Guliveer/nodestat/internal/reader"
)

// PluginNotFoundError is returned by Get when a requested name has no
// registered plugin.
type PluginNotFoundError struct {
	Name string
}

func (e *PluginNotFoundError) Error() string {
	return fmt.Sprintf("plugin %s not found", e.Name)
}

// Aliases so callers matching engine errors need only this package.
type (
	FileReadError     = reader.FileReadError
	ProcessSpawnError = executor.SpawnError
	ProcessExitError  = executor.ExitError
)
