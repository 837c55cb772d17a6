// Package platform answers host questions the collectors need before they
// run: whether a data source is readable, whether a helper command exists,
// and what machine this is.
package platform

import (
	"context"
	"os/exec"

	"github.com/shirou/gopsutil/v3/host"

	"github.com/Guliveer/nodestat/internal/models"
)

// Executable reports whether name resolves to a runnable command.
func Executable(name string) bool {
	_, err := exec.LookPath(name)
	return err == nil
}

// Host returns identifying information about the current machine.
func Host(ctx context.Context) (models.HostInfo, error) {
	info, err := host.InfoWithContext(ctx)
	if err != nil {
		return models.HostInfo{}, err
	}
	return models.HostInfo{
		Hostname:        info.Hostname,
		OS:              info.OS,
		Platform:        info.Platform,
		PlatformVersion: info.PlatformVersion,
		KernelVersion:   info.KernelVersion,
		UptimeSeconds:   info.Uptime,
	}, nil
}
