// Package sysmetrics provides a local hardware metrics collector for SysIntel.
// It reads CPU and memory usage from /proc and temperatures, GPU load and fan
// speeds from /sys on Linux.
package sysmetrics

// Paths are relative to the collector's filesystem root so tests can supply
// an fstest.MapFS in place of the real "/".
const (
	procStatPath    = "proc/stat"
	procMeminfoPath = "proc/meminfo"

	thermalZoneGlob = "sys/class/thermal/thermal_zone*"
	drmBusyGlob     = "sys/class/drm/card*/device/gpu_busy_percent"
	hwmonGlob       = "sys/class/hwmon/hwmon*"
)

// gpuHwmonDrivers are hwmon chip names that report the GPU die temperature.
var gpuHwmonDrivers = map[string]bool{
	"amdgpu":  true,
	"nouveau": true,
	"radeon":  true,
}

// memInfo is memory in bytes as reported by /proc/meminfo or sysinfo(2).
type memInfo struct {
	Total     uint64
	Available uint64
}

// usedPercent returns the share of Total not Available, clamped to 0-100.
func (m memInfo) usedPercent() (float64, bool) {
	if m.Total == 0 || m.Available > m.Total {
		return 0, false
	}
	return float64(m.Total-m.Available) / float64(m.Total) * 100.0, true
}
