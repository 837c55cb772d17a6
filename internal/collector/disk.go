package collector

import (
	"context"
	"strings"

	"github.com/Guliveer/nodestat/internal/engine"
	"github.com/Guliveer/nodestat/internal/models"
	"github.com/Guliveer/nodestat/internal/platform"
)

// dfBlockSize matches the -k flag passed to df.
const dfBlockSize = 1024

// Disk reports per-mount usage by running df in POSIX output mode.
type Disk struct {
	DFPath string
}

// NewDisk creates a disk plugin running the df at dfPath.
func NewDisk(dfPath string) *Disk {
	return &Disk{DFPath: dfPath}
}

// Collect runs "df -kP" and parses one row per filesystem. Mount points may
// contain spaces, so the rest of the row after the fifth column is the mount,
// taken verbatim.
func (d *Disk) Collect(ctx context.Context, h engine.Handle) (any, error) {
	out, err := h.Exec(ctx, d.DFPath, "-kP")
	if err != nil {
		return nil, err
	}

	disks := make([]models.DiskInfo, 0)
	for i, line := range strings.Split(out, "\n") {
		if i == 0 || h.Trim(line) == "" {
			continue
		}
		fields := h.Split(line)
		if len(fields) < 6 {
			return nil, malformed(d.DFPath, "row %q has %d columns", line, len(fields))
		}
		blocks, err := parseUints(d.DFPath, fields[1:4])
		if err != nil {
			return nil, err
		}
		disks = append(disks, models.DiskInfo{
			Filesystem: fields[0],
			Mount:      skipFields(line, 5),
			Total:      blocks[0] * dfBlockSize,
			Used:       blocks[1] * dfBlockSize,
			Free:       blocks[2] * dfBlockSize,
		})
	}

	return disks, nil
}

// IsAvailable reports whether df can be found.
func (d *Disk) IsAvailable() bool { return platform.Executable(d.DFPath) }

// skipFields returns line with its first n whitespace-separated fields and
// the whitespace that follows them removed. Trailing whitespace is dropped.
func skipFields(line string, n int) string {
	rest := strings.TrimLeft(line, " \t")
	for i := 0; i < n; i++ {
		end := strings.IndexAny(rest, " \t")
		if end < 0 {
			return ""
		}
		rest = strings.TrimLeft(rest[end:], " \t")
	}
	return strings.TrimRight(rest, " \t\r")
}
