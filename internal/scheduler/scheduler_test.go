package scheduler

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/Guliveer/nodestat/internal/config"
	"github.com/Guliveer/nodestat/internal/engine"
	"github.com/Guliveer/nodestat/internal/models"
)

type fakeGetter struct {
	mu    sync.Mutex
	calls [][]string
	err   error
}

func (f *fakeGetter) Get(ctx context.Context, names ...string) (engine.Result, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, names)
	if f.err != nil {
		return nil, f.err
	}
	res := make(engine.Result, len(names))
	for _, n := range names {
		res[n] = n
	}
	return res, nil
}

func testConfig(interval time.Duration, plugins ...string) *config.Config {
	cfg := config.DefaultConfig()
	cfg.Collection.Interval = config.Duration{Duration: interval}
	cfg.Collection.Plugins = plugins
	return cfg
}

func TestPoll_Success(t *testing.T) {
	g := &fakeGetter{}
	s := New(g, testConfig(time.Second, "load", "mem"), zaptest.NewLogger(t))

	snap := s.Poll(context.Background())
	assert.Empty(t, snap.Error)
	assert.Equal(t, []string{"load", "mem"}, snap.Plugins)
	assert.Equal(t, map[string]any{"load": "load", "mem": "mem"}, snap.Values)
	assert.False(t, snap.Timestamp.IsZero())
}

func TestPoll_Failure(t *testing.T) {
	g := &fakeGetter{err: errors.New("plugin missing not found")}
	s := New(g, testConfig(time.Second, "missing"), zaptest.NewLogger(t))

	snap := s.Poll(context.Background())
	assert.Nil(t, snap.Values)
	assert.Equal(t, "plugin missing not found", snap.Error)
}

func TestPoll_AppliesTimeout(t *testing.T) {
	cfg := testConfig(time.Second, "slow")
	cfg.Collection.Timeout = config.Duration{Duration: 20 * time.Millisecond}

	s := New(getterFunc(func(ctx context.Context, names ...string) (engine.Result, error) {
		<-ctx.Done()
		return nil, ctx.Err()
	}), cfg, zaptest.NewLogger(t))

	snap := s.Poll(context.Background())
	assert.Equal(t, context.DeadlineExceeded.Error(), snap.Error)
}

type getterFunc func(ctx context.Context, names ...string) (engine.Result, error)

func (f getterFunc) Get(ctx context.Context, names ...string) (engine.Result, error) {
	return f(ctx, names...)
}

func TestStart_PollsUntilCancelled(t *testing.T) {
	g := &fakeGetter{}
	s := New(g, testConfig(10*time.Millisecond, "load"), zaptest.NewLogger(t))

	ctx, cancel := context.WithCancel(context.Background())
	snapshots := make(chan models.Snapshot, 16)
	s.OnSnapshot(func(snap models.Snapshot) {
		select {
		case snapshots <- snap:
		default:
		}
	})

	done := make(chan struct{})
	go func() {
		s.Start(ctx)
		close(done)
	}()

	for i := 0; i < 3; i++ {
		select {
		case snap := <-snapshots:
			require.Empty(t, snap.Error)
		case <-time.After(5 * time.Second):
			t.Fatal("no snapshot received")
		}
	}

	cancel()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("Start did not return after cancel")
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	assert.GreaterOrEqual(t, len(g.calls), 3)
	for _, call := range g.calls {
		assert.Equal(t, []string{"load"}, call)
	}
}
