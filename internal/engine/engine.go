package engine

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/Guliveer/nodestat/internal/executor"
	"github.com/Guliveer/nodestat/internal/reader"
	"github.com/Guliveer/nodestat/internal/strutil"
)

const (
	statusSuccess  = "success"
	statusError    = "error"
	statusNotFound = "not_found"
)

// Engine owns a plugin registry and serves as the Handle passed to every
// plugin it runs. Construct one per process, or one per test.
type Engine struct {
	registry *Registry
	logger   *zap.Logger
}

var _ Handle = (*Engine)(nil)

// New creates an engine with an empty registry. A nil logger discards output.
func New(logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{
		registry: NewRegistry(logger),
		logger:   logger,
	}
}

// Registry exposes the engine's plugin registry.
func (e *Engine) Registry() *Registry { return e.registry }

// Register inserts or overwrites the plugin for name.
func (e *Engine) Register(name string, p Plugin) { e.registry.Register(name, p) }

// RegisterAll registers every entry of plugins.
func (e *Engine) RegisterAll(plugins map[string]Plugin) { e.registry.RegisterAll(plugins) }

// Lookup returns the plugin registered under name.
func (e *Engine) Lookup(name string) (Plugin, bool) { return e.registry.Lookup(name) }

// Get runs the named plugins one after another, left to right, and collects
// their values. A name requested more than once runs only at its first
// position. Get stops at the first unknown name or failing plugin and
// returns that error with a nil Result. Plugin errors are returned as-is.
func (e *Engine) Get(ctx context.Context, names ...string) (Result, error) {
	result := make(Result, len(names))

	for _, name := range names {
		if _, done := result[name]; done {
			continue
		}

		p, ok := e.registry.Lookup(name)
		if !ok {
			getTotal.WithLabelValues(statusNotFound).Inc()
			e.logger.Debug("Plugin not found", zap.String("plugin", name))
			return nil, &PluginNotFoundError{Name: name}
		}

		start := time.Now()
		value, err := p.Collect(ctx, e)
		elapsed := time.Since(start)
		pluginDuration.WithLabelValues(name).Observe(elapsed.Seconds())

		if err != nil {
			pluginErrors.WithLabelValues(name).Inc()
			getTotal.WithLabelValues(statusError).Inc()
			e.logger.Debug("Plugin failed",
				zap.String("plugin", name),
				zap.Duration("elapsed", elapsed),
				zap.Error(err))
			return nil, err
		}

		e.logger.Debug("Plugin collected",
			zap.String("plugin", name),
			zap.Duration("elapsed", elapsed))
		result[name] = value
	}

	getTotal.WithLabelValues(statusSuccess).Inc()
	return result, nil
}

// ReadAll returns the contents of files joined in the given order.
func (e *Engine) ReadAll(ctx context.Context, files ...string) (string, error) {
	return reader.ReadAll(ctx, files...)
}

// Read is ReadAll under its caller-facing name.
func (e *Engine) Read(ctx context.Context, files ...string) (string, error) {
	return e.ReadAll(ctx, files...)
}

// ForEachLine calls onLine for every line of files.
func (e *Engine) ForEachLine(ctx context.Context, onLine func(line string), files ...string) error {
	return reader.ForEachLine(ctx, onLine, files...)
}

// Lines is ForEachLine under its caller-facing name.
func (e *Engine) Lines(ctx context.Context, onLine func(line string), files ...string) error {
	return e.ForEachLine(ctx, onLine, files...)
}

// Exec runs path with args and returns its standard output.
func (e *Engine) Exec(ctx context.Context, path string, args ...string) (string, error) {
	return executor.Exec(ctx, path, args...)
}

// Trim strips surrounding whitespace.
func (e *Engine) Trim(s string) string { return strutil.Trim(s) }

// Split tokenizes s on runs of whitespace.
func (e *Engine) Split(s string) []string { return strutil.Split(s) }
