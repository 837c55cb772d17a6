// Package collector provides the built-in metric plugins: disk, load, mem,
// net and stat. Each one reaches the OS only through the engine.Handle it is
// given, so every plugin can be pointed at fixture files in tests.
package collector

import (
	"errors"
	"fmt"
	"path/filepath"
	"strconv"

	"github.com/Guliveer/nodestat/internal/engine"
)

// ErrMalformed is wrapped by every parse failure in this package.
var ErrMalformed = errors.New("malformed input")

// Options locates the data sources used by the default plugins.
type Options struct {
	// ProcRoot is the procfs mount point, normally "/proc".
	ProcRoot string
	// DFPath is the df executable used by the disk plugin.
	DFPath string
}

// DefaultOptions returns the options for a standard Linux host.
func DefaultOptions() Options {
	return Options{
		ProcRoot: "/proc",
		DFPath:   "df",
	}
}

// Defaults returns the built-in plugins keyed by name.
func Defaults(opts Options) map[string]engine.Plugin {
	if opts.ProcRoot == "" {
		opts.ProcRoot = "/proc"
	}
	if opts.DFPath == "" {
		opts.DFPath = "df"
	}
	return map[string]engine.Plugin{
		"disk": NewDisk(opts.DFPath),
		"load": NewLoad(filepath.Join(opts.ProcRoot, "loadavg")),
		"mem":  NewMem(filepath.Join(opts.ProcRoot, "meminfo")),
		"net":  NewNet(filepath.Join(opts.ProcRoot, "net", "dev")),
		"stat": NewStat(filepath.Join(opts.ProcRoot, "stat")),
	}
}

// Register adds the built-in plugins to e.
func Register(e *engine.Engine, opts Options) {
	e.RegisterAll(Defaults(opts))
}

func malformed(source, format string, args ...any) error {
	return fmt.Errorf("%s: %s: %w", source, fmt.Sprintf(format, args...), ErrMalformed)
}

// parseUints converts every field to uint64.
func parseUints(source string, fields []string) ([]uint64, error) {
	out := make([]uint64, len(fields))
	for i, f := range fields {
		n, err := strconv.ParseUint(f, 10, 64)
		if err != nil {
			return nil, malformed(source, "field %d %q is not a number", i, f)
		}
		out[i] = n
	}
	return out, nil
}
