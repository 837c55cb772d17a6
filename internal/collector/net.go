package collector

import (
	"context"
	"strings"

	"github.com/Guliveer/nodestat/internal/engine"
	"github.com/Guliveer/nodestat/internal/models"
	"github.com/Guliveer/nodestat/internal/platform"
)

// netDevFields is the number of counters after "iface:" in /proc/net/dev.
const netDevFields = 16

// Net reads per-interface traffic counters from /proc/net/dev.
type Net struct {
	Path string
}

// NewNet creates a net plugin reading path.
func NewNet(path string) *Net {
	return &Net{Path: path}
}

// Collect skips the two table headers and parses one row per interface.
func (n *Net) Collect(ctx context.Context, h engine.Handle) (any, error) {
	stats := make(models.NetStats)
	var parseErr error

	err := h.ForEachLine(ctx, func(line string) {
		if parseErr != nil || strings.Contains(line, "|") || h.Trim(line) == "" {
			return
		}
		iface, rest, ok := strings.Cut(line, ":")
		if !ok {
			parseErr = malformed(n.Path, "line %q has no interface", line)
			return
		}
		fields := h.Split(rest)
		if len(fields) < netDevFields {
			parseErr = malformed(n.Path, "%s: want %d counters, got %d", h.Trim(iface), netDevFields, len(fields))
			return
		}
		c, err := parseUints(n.Path, fields[:netDevFields])
		if err != nil {
			parseErr = err
			return
		}
		stats[h.Trim(iface)] = models.NetIO{
			RxBytes:   c[0],
			RxPackets: c[1],
			RxErrors:  c[2],
			RxDrop:    c[3],
			TxBytes:   c[8],
			TxPackets: c[9],
			TxErrors:  c[10],
			TxDrop:    c[11],
		}
	}, n.Path)
	if err != nil {
		return nil, err
	}
	if parseErr != nil {
		return nil, parseErr
	}

	return stats, nil
}

// IsAvailable reports whether the net/dev file is readable.
func (n *Net) IsAvailable() bool { return platform.Readable(n.Path) }
