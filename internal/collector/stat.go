package collector

import (
	"context"
	"strconv"
	"strings"

	"github.com/Guliveer/nodestat/internal/engine"
	"github.com/Guliveer/nodestat/internal/models"
	"github.com/Guliveer/nodestat/internal/platform"
)

// Stat reads kernel activity counters from /proc/stat.
type Stat struct {
	Path string
}

// NewStat creates a stat plugin reading path.
func NewStat(path string) *Stat {
	return &Stat{Path: path}
}

// Collect parses the cpu rows and the scalar counters. Rows it does not
// know (softirq, page, swap, ...) are ignored.
func (s *Stat) Collect(ctx context.Context, h engine.Handle) (any, error) {
	stat := models.CPUStat{CPUs: make(map[string]models.CPUTimes)}
	var parseErr error

	err := h.ForEachLine(ctx, func(line string) {
		if parseErr != nil {
			return
		}
		fields := h.Split(line)
		if len(fields) < 2 {
			return
		}
		key := fields[0]

		if strings.HasPrefix(key, "cpu") {
			times, err := parseCPUTimes(s.Path, fields[1:])
			if err != nil {
				parseErr = err
				return
			}
			stat.CPUs[key] = times
			return
		}

		var dst *uint64
		switch key {
		case "intr":
			dst = &stat.Interrupts
		case "ctxt":
			dst = &stat.ContextSwitches
		case "processes":
			dst = &stat.Processes
		case "procs_running":
			dst = &stat.Running
		case "procs_blocked":
			dst = &stat.Blocked
		case "btime":
			bt, err := strconv.ParseInt(fields[1], 10, 64)
			if err != nil {
				parseErr = malformed(s.Path, "btime %q", fields[1])
				return
			}
			stat.BootTime = bt
			return
		default:
			return
		}
		v, err := strconv.ParseUint(fields[1], 10, 64)
		if err != nil {
			parseErr = malformed(s.Path, "%s %q is not a number", key, fields[1])
			return
		}
		*dst = v
	}, s.Path)
	if err != nil {
		return nil, err
	}
	if parseErr != nil {
		return nil, parseErr
	}

	return stat, nil
}

// parseCPUTimes accepts the four columns every kernel reports and up to the
// ten of current kernels.
func parseCPUTimes(source string, fields []string) (models.CPUTimes, error) {
	if len(fields) < 4 {
		return models.CPUTimes{}, malformed(source, "cpu row has %d columns", len(fields))
	}
	if len(fields) > 10 {
		fields = fields[:10]
	}
	v, err := parseUints(source, fields)
	if err != nil {
		return models.CPUTimes{}, err
	}
	col := func(i int) uint64 {
		if i < len(v) {
			return v[i]
		}
		return 0
	}
	return models.CPUTimes{
		User:      col(0),
		Nice:      col(1),
		System:    col(2),
		Idle:      col(3),
		IOWait:    col(4),
		IRQ:       col(5),
		SoftIRQ:   col(6),
		Steal:     col(7),
		Guest:     col(8),
		GuestNice: col(9),
	}, nil
}

// IsAvailable reports whether the stat file is readable.
func (s *Stat) IsAvailable() bool { return platform.Readable(s.Path) }
