//go:build windows

package config

import (
	"os"
	"path/filepath"
)

func configSearchPaths() []string {
	return []string{
		filepath.Join(os.Getenv("LOCALAPPDATA"), "nodestat", "config.yaml"),
		filepath.Join(os.Getenv("ProgramData"), "nodestat", "nodestat.yaml"),
	}
}
