package collector

import (
	"context"
	"strconv"

	"github.com/Guliveer/nodestat/internal/engine"
	"github.com/Guliveer/nodestat/internal/models"
	"github.com/Guliveer/nodestat/internal/platform"
	"github.com/Guliveer/nodestat/internal/strutil"
)

// Mem reads memory counters from /proc/meminfo.
type Mem struct {
	Path string
}

// NewMem creates a mem plugin reading path.
func NewMem(path string) *Mem {
	return &Mem{Path: path}
}

// Collect converts every "Key: value [kB]" line into bytes.
func (m *Mem) Collect(ctx context.Context, h engine.Handle) (any, error) {
	info := make(models.MemInfo)
	var parseErr error

	err := h.ForEachLine(ctx, func(line string) {
		if parseErr != nil || h.Trim(line) == "" {
			return
		}
		key, value, ok := strutil.KeyValue(line, ":")
		if !ok {
			parseErr = malformed(m.Path, "line %q has no separator", line)
			return
		}
		fields := h.Split(value)
		if len(fields) == 0 {
			parseErr = malformed(m.Path, "%s has no value", key)
			return
		}
		n, err := strconv.ParseUint(fields[0], 10, 64)
		if err != nil {
			parseErr = malformed(m.Path, "%s value %q is not a number", key, fields[0])
			return
		}
		if len(fields) > 1 && fields[1] == "kB" {
			n *= 1024
		}
		info[key] = n
	}, m.Path)
	if err != nil {
		return nil, err
	}
	if parseErr != nil {
		return nil, parseErr
	}

	return info, nil
}

// IsAvailable reports whether the meminfo file is readable.
func (m *Mem) IsAvailable() bool { return platform.Readable(m.Path) }
