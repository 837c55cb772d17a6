// Package engine orchestrates metric collection: it owns the plugin registry
// and runs named plugins in order, giving each one a Handle to the file,
// line and process primitives.
package engine

import "context"

// Handle is the only sanctioned way for a plugin to touch the OS.
type Handle interface {
	// ReadAll returns the contents of files joined in the given order.
	ReadAll(ctx context.Context, files ...string) (string, error)

	// ForEachLine calls onLine for every newline-separated segment of files.
	ForEachLine(ctx context.Context, onLine func(line string), files ...string) error

	// Exec runs a command and returns its standard output.
	Exec(ctx context.Context, path string, args ...string) (string, error)

	// Trim strips surrounding whitespace.
	Trim(s string) string

	// Split tokenizes on runs of whitespace.
	Split(s string) []string
}

// Plugin produces one metric value. The engine never inspects the value.
type Plugin interface {
	Collect(ctx context.Context, h Handle) (any, error)
}

// PluginFunc adapts an ordinary function to the Plugin interface.
type PluginFunc func(ctx context.Context, h Handle) (any, error)

// Collect calls f(ctx, h).
func (f PluginFunc) Collect(ctx context.Context, h Handle) (any, error) {
	return f(ctx, h)
}

// Availability is implemented by plugins that can tell whether their data
// source exists on the current host.
type Availability interface {
	IsAvailable() bool
}

// Result maps each requested plugin name to the value it produced.
type Result map[string]any
