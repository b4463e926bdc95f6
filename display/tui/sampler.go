package tui

import (
	"context"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Enazzzz/SysIntel/collectors"
)

// tickMsg asks for one sample. Ticks from an older generation are stale and
// dropped, which is how a pending tick is cancelled.
type tickMsg struct {
	gen int
}

// sampleMsg carries the result of one collection run.
type sampleMsg struct {
	gen    int
	result *collectors.CollectResult
	err    error
}

// sampler serialises collection runs. Collectors such as sysmetrics keep
// delta state between calls and must not run concurrently.
type sampler struct {
	mu       sync.Mutex
	registry *collectors.Registry
}

func (s *sampler) collect(ctx context.Context, timeout time.Duration) (*collectors.CollectResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	return s.registry.CollectAll(ctx)
}

// collectCmd runs the registry off the Update loop.
func collectCmd(ctx context.Context, s *sampler, gen int, timeout time.Duration) tea.Cmd {
	return func() tea.Msg {
		res, err := s.collect(ctx, timeout)
		return sampleMsg{gen: gen, result: res, err: err}
	}
}

// tickCmd schedules the next sample for gen after interval.
func tickCmd(gen int, interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(time.Time) tea.Msg {
		return tickMsg{gen: gen}
	})
}

// tickNow requests a sample for gen immediately.
func tickNow(gen int) tea.Cmd {
	return func() tea.Msg {
		return tickMsg{gen: gen}
	}
}
