//go:build linux

package sysmetrics

import (
	"fmt"

	"golang.org/x/sys/unix"
)

// sysinfoMemory reads total and available RAM with sysinfo(2). Available is
// approximated as free plus buffer memory since the kernel does not export
// MemAvailable through this call.
func sysinfoMemory() (memInfo, error) {
	var info unix.Sysinfo_t
	if err := unix.Sysinfo(&info); err != nil {
		return memInfo{}, fmt.Errorf("sysmetrics: sysinfo: %w", err)
	}
	unit := uint64(info.Unit)
	if unit == 0 {
		unit = 1
	}
	return memInfo{
		Total:     uint64(info.Totalram) * unit,
		Available: (uint64(info.Freeram) + uint64(info.Bufferram)) * unit,
	}, nil
}
