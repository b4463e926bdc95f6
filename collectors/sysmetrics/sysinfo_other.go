//go:build !linux

package sysmetrics

import "errors"

func sysinfoMemory() (memInfo, error) {
	return memInfo{}, errors.New("sysmetrics: sysinfo not supported on this platform")
}
