// Package sysinfo discovers facts about the running system that the schema
// registry is parameterized on.
package sysinfo

import (
	"github.com/shirou/gopsutil/v3/host"
)

// KernelRelease returns the running kernel's release string, e.g.
// "6.8.0-45-generic".
func KernelRelease() (string, error) {
	return host.KernelVersion()
}
