// Package scheduler implements a tick-based periodic poller on top of the
// engine. The engine never schedules itself; this package is the caller that
// decides the cadence. Each tick produces one snapshot, handed to a callback.
package scheduler

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/Guliveer/nodestat/internal/config"
	"github.com/Guliveer/nodestat/internal/engine"
	"github.com/Guliveer/nodestat/internal/models"
)

// Getter is the part of the engine the scheduler needs.
type Getter interface {
	Get(ctx context.Context, names ...string) (engine.Result, error)
}

// Scheduler polls a fixed list of plugins at a fixed interval.
type Scheduler struct {
	getter   Getter
	plugins  []string
	interval time.Duration
	timeout  time.Duration
	logger   *zap.Logger

	onSnapshot func(models.Snapshot)
}

// New creates a Scheduler from the collection section of cfg.
func New(getter Getter, cfg *config.Config, logger *zap.Logger) *Scheduler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Scheduler{
		getter:   getter,
		plugins:  append([]string(nil), cfg.Collection.Plugins...),
		interval: cfg.Collection.Interval.Duration,
		timeout:  cfg.Collection.Timeout.Duration,
		logger:   logger,
	}
}

// OnSnapshot sets the callback invoked after every poll, failed or not.
func (s *Scheduler) OnSnapshot(fn func(models.Snapshot)) {
	s.onSnapshot = fn
}

// Start polls immediately and then on every tick. It blocks until ctx is
// cancelled. A poll that is still running when ctx ends is abandoned by its
// own deadline, not awaited.
func (s *Scheduler) Start(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.emit(s.Poll(ctx))

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.emit(s.Poll(ctx))
		}
	}
}

// Poll runs one Get with the configured timeout and wraps the outcome.
func (s *Scheduler) Poll(ctx context.Context) models.Snapshot {
	pollCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	snapshot := models.Snapshot{
		Timestamp: time.Now().UTC(),
		Plugins:   s.plugins,
	}

	result, err := s.getter.Get(pollCtx, s.plugins...)
	if err != nil {
		s.logger.Warn("Collection failed",
			zap.Strings("plugins", s.plugins),
			zap.Error(err))
		snapshot.Error = err.Error()
		return snapshot
	}

	snapshot.Values = result
	s.logger.Debug("Collected metrics",
		zap.Time("timestamp", snapshot.Timestamp),
		zap.Int("plugins", len(result)))
	return snapshot
}

func (s *Scheduler) emit(snapshot models.Snapshot) {
	if s.onSnapshot != nil {
		s.onSnapshot(snapshot)
	}
}
