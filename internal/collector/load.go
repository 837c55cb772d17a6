package collector

import (
	"context"
	"strconv"
	"strings"

	"github.com/Guliveer/nodestat/internal/engine"
	"github.com/Guliveer/nodestat/internal/models"
	"github.com/Guliveer/nodestat/internal/platform"
)

// Load reads the run-queue averages from /proc/loadavg.
type Load struct {
	Path string
}

// NewLoad creates a load plugin reading path.
func NewLoad(path string) *Load {
	return &Load{Path: path}
}

// Collect parses a line like "0.52 0.58 0.59 2/1234 56789".
func (l *Load) Collect(ctx context.Context, h engine.Handle) (any, error) {
	content, err := h.ReadAll(ctx, l.Path)
	if err != nil {
		return nil, err
	}

	fields := h.Split(h.Trim(content))
	if len(fields) < 3 {
		return nil, malformed(l.Path, "want at least 3 fields, got %d", len(fields))
	}

	var avg models.LoadAvg
	for i, dst := range []*float64{&avg.One, &avg.Five, &avg.Fifteen} {
		v, err := strconv.ParseFloat(fields[i], 64)
		if err != nil {
			return nil, malformed(l.Path, "load %q is not a number", fields[i])
		}
		*dst = v
	}

	if len(fields) > 3 {
		running, total, ok := strings.Cut(fields[3], "/")
		if !ok {
			return nil, malformed(l.Path, "scheduling entities %q", fields[3])
		}
		if avg.Running, err = strconv.Atoi(running); err != nil {
			return nil, malformed(l.Path, "running %q", running)
		}
		if avg.Total, err = strconv.Atoi(total); err != nil {
			return nil, malformed(l.Path, "total %q", total)
		}
	}
	if len(fields) > 4 {
		if avg.LastPID, err = strconv.Atoi(fields[4]); err != nil {
			return nil, malformed(l.Path, "last pid %q", fields[4])
		}
	}

	return avg, nil
}

// IsAvailable reports whether the loadavg file is readable.
func (l *Load) IsAvailable() bool { return platform.Readable(l.Path) }
