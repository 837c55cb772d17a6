package engine

import (
	"sort"
	"sync"

	"go.uber.org/zap"
)

// Registry maps collector names to plugins. Registering a name twice
// replaces the earlier plugin.
type Registry struct {
	mu      sync.RWMutex
	plugins map[string]Plugin
	logger  *zap.Logger
}

// NewRegistry creates an empty registry. A nil logger discards output.
func NewRegistry(logger *zap.Logger) *Registry {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Registry{
		plugins: make(map[string]Plugin),
		logger:  logger,
	}
}

// Register inserts or overwrites the plugin for name. Nil plugins are
// ignored.
func (r *Registry) Register(name string, p Plugin) {
	if p == nil {
		r.logger.Warn("Ignoring nil plugin", zap.String("name", name))
		return
	}

	r.mu.Lock()
	_, replaced := r.plugins[name]
	r.plugins[name] = p
	r.mu.Unlock()

	r.logger.Info("Registered plugin",
		zap.String("name", name),
		zap.Bool("replaced", replaced))
}

// RegisterAll registers every entry of plugins independently.
func (r *Registry) RegisterAll(plugins map[string]Plugin) {
	for name, p := range plugins {
		r.Register(name, p)
	}
}

// Lookup returns the plugin registered under name.
func (r *Registry) Lookup(name string) (Plugin, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.plugins[name]
	return p, ok
}

// Names returns the registered names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	names := make([]string, 0, len(r.plugins))
	for name := range r.plugins {
		names = append(names, name)
	}
	r.mu.RUnlock()

	sort.Strings(names)
	return names
}
