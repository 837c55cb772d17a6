// Package models defines the values produced by the built-in collectors.
// The engine treats them as opaque; they are serialized to JSON by callers.
package models

import "time"

// LoadAvg is the content of /proc/loadavg.
type LoadAvg struct {
	One     float64 `json:"one"`
	Five    float64 `json:"five"`
	Fifteen float64 `json:"fifteen"`
	Running int     `json:"running"`
	Total   int     `json:"total"`
	LastPID int     `json:"last_pid"`
}

// MemInfo maps /proc/meminfo keys (e.g. "MemTotal") to bytes. Entries that
// carry no unit, such as HugePages_Total, are stored as plain counts.
type MemInfo map[string]uint64

// NetIO holds the per-interface counters from /proc/net/dev.
type NetIO struct {
	RxBytes   uint64 `json:"rx_bytes"`
	RxPackets uint64 `json:"rx_packets"`
	RxErrors  uint64 `json:"rx_errors"`
	RxDrop    uint64 `json:"rx_drop"`
	TxBytes   uint64 `json:"tx_bytes"`
	TxPackets uint64 `json:"tx_packets"`
	TxErrors  uint64 `json:"tx_errors"`
	TxDrop    uint64 `json:"tx_drop"`
}

// NetStats maps interface name to its counters.
type NetStats map[string]NetIO

// CPUTimes are the jiffy counters of one "cpu" row in /proc/stat.
type CPUTimes struct {
	User      uint64 `json:"user"`
	Nice      uint64 `json:"nice"`
	System    uint64 `json:"system"`
	Idle      uint64 `json:"idle"`
	IOWait    uint64 `json:"iowait"`
	IRQ       uint64 `json:"irq"`
	SoftIRQ   uint64 `json:"softirq"`
	Steal     uint64 `json:"steal"`
	Guest     uint64 `json:"guest"`
	GuestNice uint64 `json:"guest_nice"`
}

// CPUStat is the parsed content of /proc/stat. CPUs is keyed by row label:
// "cpu" for the aggregate, "cpu0", "cpu1", ... per core.
type CPUStat struct {
	CPUs            map[string]CPUTimes `json:"cpus"`
	Interrupts      uint64              `json:"interrupts"`
	ContextSwitches uint64              `json:"context_switches"`
	BootTime        int64               `json:"boot_time"`
	Processes       uint64              `json:"processes"`
	Running         uint64              `json:"procs_running"`
	Blocked         uint64              `json:"procs_blocked"`
}

// DiskInfo represents usage for a single mounted filesystem, in bytes.
type DiskInfo struct {
	Filesystem string `json:"filesystem"`
	Mount      string `json:"mount"`
	Total      uint64 `json:"total"`
	Used       uint64 `json:"used"`
	Free       uint64 `json:"free"`
}

// HostInfo identifies the machine a collector runs on.
type HostInfo struct {
	Hostname        string `json:"hostname"`
	OS              string `json:"os"`
	Platform        string `json:"platform"`
	PlatformVersion string `json:"platform_version"`
	KernelVersion   string `json:"kernel_version"`
	UptimeSeconds   uint64 `json:"uptime_seconds"`
}

// Snapshot is one poll of a set of plugins. Exactly one of Values and Error
// is set.
type Snapshot struct {
	Timestamp time.Time      `json:"timestamp"`
	Plugins   []string       `json:"plugins"`
	Values    map[string]any `json:"values,omitempty"`
	Error     string         `json:"error,omitempty"`
}
