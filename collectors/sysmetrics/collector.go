package sysmetrics

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path"
	"strconv"
	"strings"
	"time"

	"github.com/Enazzzz/SysIntel/collectors"
)

const (
	// collectorName is the unique identifier for this collector.
	collectorName = "sysmetrics"

	// collectorDescription describes what this collector gathers.
	collectorDescription = "Local hardware metrics (CPU, memory, GPU, temperatures, fans)"
)

// SysMetricsCollector implements collectors.Collector for local hardware
// metrics. CPU usage is computed from the delta between two /proc/stat
// readings, so the first Collect reports no CPU usage.
type SysMetricsCollector struct {
	logger *slog.Logger

	// root is the filesystem that /proc and /sys are read from.
	root fs.FS

	// prevIdle and prevTotal track the last CPU sample for delta computation.
	prevIdle  uint64
	prevTotal uint64
	seeded    bool

	// Overridable for testing.
	sysinfo func() (memInfo, error)
}

// NewSysMetricsCollector creates a collector reading the real /proc and /sys.
// If logger is nil, a no-op logger is used.
func NewSysMetricsCollector(logger *slog.Logger) *SysMetricsCollector {
	return NewWithFS(os.DirFS("/"), logger)
}

// NewWithFS creates a collector reading from root, which must contain the
// proc and sys trees at its top level.
func NewWithFS(root fs.FS, logger *slog.Logger) *SysMetricsCollector {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	return &SysMetricsCollector{
		logger:  logger,
		root:    root,
		sysinfo: sysinfoMemory,
	}
}

// Name returns the collector's unique identifier.
func (c *SysMetricsCollector) Name() string {
	return collectorName
}

// Description returns a human-readable description of what this collector gathers.
func (c *SysMetricsCollector) Description() string {
	return collectorDescription
}

// Metrics returns the metric keys this collector can report.
func (c *SysMetricsCollector) Metrics() []string {
	return append([]string(nil), collectors.AllMetrics...)
}

// Collect reads every metric. Sensors that are absent on this machine are
// left out of the readings; read and parse failures become warnings.
func (c *SysMetricsCollector) Collect(ctx context.Context) (*collectors.CollectResult, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	var warnings []string
	readings := make(map[string]float64)

	warn := func(msg string) {
		if msg != "" {
			warnings = append(warnings, msg)
		}
	}

	if v, ok, w := c.readCPU(); ok {
		readings[collectors.MetricCPUUsage] = v
	} else {
		warn(w)
	}

	if v, ok, w := c.readMemory(); ok {
		readings[collectors.MetricMemoryUsage] = v
	} else {
		warn(w)
	}

	if v, ok, w := c.readGPUBusy(); ok {
		readings[collectors.MetricGPUUsage] = v
	} else {
		warn(w)
	}

	if v, ok, w := c.readCPUTemp(); ok {
		readings[collectors.MetricCPUTemp] = v
	} else {
		warn(w)
	}

	if v, ok, w := c.readGPUTemp(); ok {
		readings[collectors.MetricGPUTemp] = v
	} else {
		warn(w)
	}

	readings[collectors.MetricFanSpeed] = c.readFanSpeed()

	c.logger.Debug("sysmetrics collected",
		"metrics", len(readings),
		"warnings", len(warnings),
	)

	return &collectors.CollectResult{
		Collector: collectorName,
		Timestamp: time.Now(),
		Readings:  readings,
		Warnings:  warnings,
	}, nil
}

// readCPU reads /proc/stat to compute CPU usage as a percentage.
// It calculates the delta between the current and previous readings.
// On the first call it seeds the counters and reports nothing.
func (c *SysMetricsCollector) readCPU() (float64, bool, string) {
	f, err := c.root.Open(procStatPath)
	if err != nil {
		return 0, false, fmt.Sprintf("sysmetrics: open /proc/stat: %v", err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Text()
		if !strings.HasPrefix(line, "cpu ") {
			continue
		}

		fields := strings.Fields(line)
		if len(fields) < 5 {
			return 0, false, "sysmetrics: /proc/stat cpu line too short"
		}

		// Fields: cpu user nice system idle iowait irq softirq steal ...
		// iowait counts as idle time.
		var total, idle uint64
		for i := 1; i < len(fields); i++ {
			val, err := strconv.ParseUint(fields[i], 10, 64)
			if err != nil {
				return 0, false, fmt.Sprintf("sysmetrics: parse /proc/stat field %d: %v", i, err)
			}
			total += val
			if i == 4 || i == 5 {
				idle += val
			}
		}

		if !c.seeded || total < c.prevTotal {
			c.prevIdle, c.prevTotal, c.seeded = idle, total, true
			return 0, false, ""
		}

		deltaTotal := total - c.prevTotal
		deltaIdle := idle - c.prevIdle
		c.prevIdle, c.prevTotal = idle, total

		if deltaTotal == 0 {
			return 0, false, ""
		}

		pct := (1.0 - float64(deltaIdle)/float64(deltaTotal)) * 100.0
		return clampPercent(pct), true, ""
	}

	return 0, false, "sysmetrics: cpu line not found in /proc/stat"
}

// readMemory computes memory usage from /proc/meminfo, falling back to
// sysinfo(2) when the file is unreadable or incomplete.
func (c *SysMetricsCollector) readMemory() (float64, bool, string) {
	mem, err := c.readMeminfo()
	if err != nil {
		c.logger.Debug("meminfo unavailable, using sysinfo", "error", err)
		if mem, err = c.sysinfo(); err != nil {
			return 0, false, err.Error()
		}
	}

	pct, ok := mem.usedPercent()
	if !ok {
		return 0, false, "sysmetrics: memory totals are inconsistent"
	}
	return clampPercent(pct), true, ""
}

// readMeminfo parses MemTotal and MemAvailable from /proc/meminfo.
func (c *SysMetricsCollector) readMeminfo() (memInfo, error) {
	f, err := c.root.Open(procMeminfoPath)
	if err != nil {
		return memInfo{}, fmt.Errorf("sysmetrics: open /proc/meminfo: %w", err)
	}
	defer f.Close()

	var mem memInfo
	var foundTotal, foundAvailable bool

	scanner := bufio.NewScanner(f)
	for scanner.Scan() && !(foundTotal && foundAvailable) {
		line := scanner.Text()

		switch {
		case strings.HasPrefix(line, "MemTotal:"):
			val, err := parseMemInfoLine(line)
			if err != nil {
				return memInfo{}, fmt.Errorf("sysmetrics: parse MemTotal: %w", err)
			}
			mem.Total, foundTotal = val*1024, true
		case strings.HasPrefix(line, "MemAvailable:"):
			val, err := parseMemInfoLine(line)
			if err != nil {
				return memInfo{}, fmt.Errorf("sysmetrics: parse MemAvailable: %w", err)
			}
			mem.Available, foundAvailable = val*1024, true
		}
	}

	if !foundTotal || !foundAvailable {
		return memInfo{}, fmt.Errorf("sysmetrics: MemTotal or MemAvailable missing from /proc/meminfo")
	}
	return mem, nil
}

// parseMemInfoLine extracts the numeric kB value from a /proc/meminfo line.
// Format: "MemTotal:       16384000 kB"
func parseMemInfoLine(line string) (uint64, error) {
	fields := strings.Fields(line)
	if len(fields) < 2 {
		return 0, fmt.Errorf("too few fields: %q", line)
	}
	return strconv.ParseUint(fields[1], 10, 64)
}

// readGPUBusy reports gpu_busy_percent from the first DRM card exposing it.
// Machines without such a card report nothing and no warning.
func (c *SysMetricsCollector) readGPUBusy() (float64, bool, string) {
	matches, err := fs.Glob(c.root, drmBusyGlob)
	if err != nil || len(matches) == 0 {
		return 0, false, ""
	}

	for _, p := range matches {
		v, err := c.readNumber(p)
		if err != nil {
			c.logger.Debug("gpu_busy_percent unreadable", "path", p, "error", err)
			continue
		}
		return clampPercent(v), true, ""
	}
	return 0, false, "sysmetrics: no readable gpu_busy_percent"
}

// readCPUTemp reports the CPU temperature in °C from the thermal zones. The
// x86 package zone is preferred; otherwise the first zone with a reading wins.
func (c *SysMetricsCollector) readCPUTemp() (float64, bool, string) {
	zones, err := fs.Glob(c.root, thermalZoneGlob)
	if err != nil || len(zones) == 0 {
		return 0, false, ""
	}

	var fallback float64
	var haveFallback bool
	for _, zone := range zones {
		milli, err := c.readNumber(path.Join(zone, "temp"))
		if err != nil {
			continue
		}
		celsius := milli / 1000.0

		kind, _ := c.readString(path.Join(zone, "type"))
		if strings.Contains(kind, "pkg") || strings.Contains(kind, "cpu") {
			return celsius, true, ""
		}
		if !haveFallback {
			fallback, haveFallback = celsius, true
		}
	}

	if haveFallback {
		return fallback, true, ""
	}
	return 0, false, "sysmetrics: no readable thermal zone"
}

// readGPUTemp reports temp1_input of the first hwmon chip driven by a GPU
// driver, in °C.
func (c *SysMetricsCollector) readGPUTemp() (float64, bool, string) {
	chips, err := fs.Glob(c.root, hwmonGlob)
	if err != nil {
		return 0, false, ""
	}

	for _, chip := range chips {
		name, err := c.readString(path.Join(chip, "name"))
		if err != nil || !gpuHwmonDrivers[name] {
			continue
		}
		milli, err := c.readNumber(path.Join(chip, "temp1_input"))
		if err != nil {
			return 0, false, fmt.Sprintf("sysmetrics: read %s temperature: %v", name, err)
		}
		return milli / 1000.0, true, ""
	}
	return 0, false, ""
}

// readFanSpeed averages every fan*_input across all hwmon chips. A machine
// without fan sensors reports 0.
func (c *SysMetricsCollector) readFanSpeed() float64 {
	fans, err := fs.Glob(c.root, hwmonGlob+"/fan*_input")
	if err != nil {
		return 0
	}

	var sum float64
	var n int
	for _, p := range fans {
		rpm, err := c.readNumber(p)
		if err != nil {
			continue
		}
		sum += rpm
		n++
	}
	if n == 0 {
		return 0
	}
	return sum / float64(n)
}

func (c *SysMetricsCollector) readString(p string) (string, error) {
	data, err := fs.ReadFile(c.root, p)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}

func (c *SysMetricsCollector) readNumber(p string) (float64, error) {
	s, err := c.readString(p)
	if err != nil {
		return 0, err
	}
	return strconv.ParseFloat(s, 64)
}

func clampPercent(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

// Compile-time interface compliance check.
var _ collectors.Collector = (*SysMetricsCollector)(nil)
