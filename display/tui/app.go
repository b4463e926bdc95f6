package tui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"

	"github.com/Enazzzz/SysIntel/collectors"
	"github.com/Enazzzz/SysIntel/config"
	"github.com/Enazzzz/SysIntel/dashboard"
	"github.com/Enazzzz/SysIntel/display/color"
	"github.com/Enazzzz/SysIntel/display/widgets"
	"github.com/Enazzzz/SysIntel/internal/format"
	"github.com/Enazzzz/SysIntel/status"
)

// sparkWidth is the width of each sparkline in the summary row.
const sparkWidth = 12

// Options configures a Model.
type Options struct {
	// Config is the starting configuration. It must already be validated.
	Config *config.Config
	// ConfigPath is where the save key writes settings. Empty disables saving.
	ConfigPath string
	// Registry supplies readings on every tick.
	Registry *collectors.Registry
	// Logger receives diagnostics. Nil discards them.
	Logger *slog.Logger
	// Context bounds every collection run. Nil means context.Background.
	Context context.Context
}

// Model is the top-level Bubbletea model for the SysIntel dashboard.
type Model struct {
	cfg        config.Config
	configPath string
	dash       *dashboard.Dashboard
	sampler    *sampler
	graphs     []dashboard.Graph
	active     int
	width      int
	height     int
	ready      bool

	// gen is bumped whenever the sampling cadence changes. Ticks and samples
	// carrying an older generation are dropped.
	gen     int
	pending int

	evaluator   *status.Evaluator
	health      status.SystemStatus
	warnings    []string
	lastErr     error
	lastUpdated time.Time
	status      string

	help   help.Model
	zones  *zone.Manager
	logger *slog.Logger
	ctx    context.Context
}

// NewModel returns a Model with empty history and the first graph active.
func NewModel(opts Options) (Model, error) {
	if opts.Config == nil {
		return Model{}, errors.New("tui: nil config")
	}
	if opts.Registry == nil {
		return Model{}, errors.New("tui: nil registry")
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}

	settings, err := dashboard.SettingsFrom(opts.Config)
	if err != nil {
		return Model{}, fmt.Errorf("tui: %w", err)
	}
	graphs := dashboard.DefaultGraphs(settings.Palette)

	return Model{
		cfg:        *opts.Config,
		configPath: opts.ConfigPath,
		dash:       dashboard.New(settings, graphs, logger),
		sampler:    &sampler{registry: opts.Registry},
		graphs:     graphs,
		evaluator:  status.NewEvaluator(status.DefaultEvaluatorConfig()),
		health:     status.SystemStatus{Overall: status.LevelUnknown},
		help:       help.New(),
		zones:      zone.New(),
		logger:     logger,
		ctx:        ctx,
	}, nil
}

// Init implements tea.Model. It requests the first sample immediately.
func (m Model) Init() tea.Cmd {
	return tickNow(m.gen)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		return m.handleTick(msg)

	case sampleMsg:
		return m.handleSample(msg), nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		if msg.Action != tea.MouseActionRelease || msg.Button != tea.MouseButtonLeft {
			return m, nil
		}
		for i, g := range m.graphs {
			if z := m.zones.Get(m.tabZone(g.ID)); z != nil && z.InBounds(msg) {
				m.active = i
				break
			}
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.ready = true
	}

	return m, nil
}

func (m Model) handleTick(msg tickMsg) (tea.Model, tea.Cmd) {
	if msg.gen != m.gen {
		return m, nil
	}
	interval := m.cfg.Interval()

	// A collection that outlives its interval costs the chart a gap rather
	// than queueing work behind it.
	if m.pending > 0 {
		m.dash.Append(nil)
		m.logger.Debug("collection still running, recording a missed sample")
		return m, tickCmd(m.gen, interval)
	}

	m.pending++
	return m, tea.Batch(
		collectCmd(m.ctx, m.sampler, m.gen, interval),
		tickCmd(m.gen, interval),
	)
}

func (m Model) handleSample(msg sampleMsg) Model {
	if msg.gen != m.gen {
		return m
	}
	if m.pending > 0 {
		m.pending--
	}

	if msg.err != nil {
		m.lastErr = msg.err
		m.dash.Append(nil)
		m.logger.Warn("collection failed", "error", msg.err)
		return m
	}

	m.lastErr = nil
	m.warnings = nil
	if msg.result != nil {
		m.dash.Append(msg.result.Readings)
		m.health = m.evaluator.Evaluate(msg.result.Readings)
		m.warnings = msg.result.Warnings
		m.lastUpdated = msg.result.Timestamp
	} else {
		m.dash.Append(nil)
	}
	return m
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, keys.NextTab):
		m.active = (m.active + 1) % len(m.graphs)

	case key.Matches(msg, keys.PrevTab):
		m.active = (m.active - 1 + len(m.graphs)) % len(m.graphs)

	case key.Matches(msg, keys.Smoothing):
		m.cfg.Display.Smoothing = m.cfg.Display.Smoothing.Next()
		m.status = "smoothing: " + m.cfg.Display.Smoothing.String()
		return m.apply()

	case key.Matches(msg, keys.Faster):
		m.cfg.Sampling.IntervalMS = config.StepInterval(m.cfg.Sampling.IntervalMS, -1)
		m.status = "interval: " + format.FormatInterval(m.cfg.Interval())
		return m.apply()

	case key.Matches(msg, keys.Slower):
		m.cfg.Sampling.IntervalMS = config.StepInterval(m.cfg.Sampling.IntervalMS, +1)
		m.status = "interval: " + format.FormatInterval(m.cfg.Interval())
		return m.apply()

	case key.Matches(msg, keys.TempUnit):
		if m.cfg.Display.TempUnit == config.Fahrenheit {
			m.cfg.Display.TempUnit = config.Celsius
		} else {
			m.cfg.Display.TempUnit = config.Fahrenheit
		}
		m.status = "temperature: °" + m.cfg.Display.TempUnit
		return m.apply()

	case key.Matches(msg, keys.SaveSettings):
		m.status = m.save()

	case key.Matches(msg, keys.Help):
		m.help.ShowAll = !m.help.ShowAll

	default:
		for i, k := range tabKeys {
			if key.Matches(msg, k) && i < len(m.graphs) {
				m.active = i
				break
			}
		}
	}

	return m, nil
}

// apply pushes the edited config into the dashboard. When history is reset
// the tick chain restarts under a new generation so the new interval takes
// effect at once.
func (m Model) apply() (tea.Model, tea.Cmd) {
	settings, err := dashboard.SettingsFrom(&m.cfg)
	if err != nil {
		m.status = err.Error()
		return m, nil
	}
	if !m.dash.Apply(settings) {
		return m, nil
	}
	m.gen++
	m.pending = 0
	m.lastUpdated = time.Time{}
	return m, tickNow(m.gen)
}

func (m Model) save() string {
	if m.configPath == "" {
		return "no config path, settings not saved"
	}
	if err := config.SaveConfig(&m.cfg, m.configPath); err != nil {
		m.logger.Error("saving settings", "path", m.configPath, "error", err)
		return "save failed: " + err.Error()
	}
	m.logger.Info("settings saved", "path", m.configPath)
	return "saved " + m.configPath
}

func (m Model) tabZone(id string) string {
	return "tab-" + id
}

// View implements tea.Model. It renders the tab bar, the active chart, the
// summary row, the status line and the key help.
func (m Model) View() string {
	if !m.ready {
		return "Initializing..."
	}

	header := m.renderHeader()
	summary := m.renderSummary()
	statusLine := m.renderStatus()
	helpView := m.help.View(keys)

	rows := m.height - lipgloss.Height(header) - lipgloss.Height(summary) -
		lipgloss.Height(statusLine) - lipgloss.Height(helpView)
	chartView := m.renderChart(rows)

	view := lipgloss.JoinVertical(lipgloss.Left, header, chartView, summary, statusLine, helpView)
	return m.zones.Scan(view)
}

// renderHeader renders the tab bar with the active graph highlighted.
func (m Model) renderHeader() string {
	tabs := make([]string, 0, len(m.graphs))
	for i, g := range m.graphs {
		style := styleInactiveTab
		if i == m.active {
			style = styleActiveTab
		}
		tabs = append(tabs, m.zones.Mark(m.tabZone(g.ID), style.Render(g.Title)))
	}

	tabBar := lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
	return styleHeader.Width(m.width).Render(tabBar)
}

func (m Model) renderChart(rows int) string {
	if rows < 1 || m.width < 1 {
		return ""
	}
	return renderChart(m.dash, m.graphs[m.active].ID, m.width, rows, m.cfg.Display.RenderScale)
}

// renderSummary shows the latest value and a sparkline for every series.
func (m Model) renderSummary() string {
	var cells []string
	for _, g := range m.graphs {
		unit := m.dash.UnitLabel(g)
		for _, spec := range g.Series {
			lo, hi := m.dash.Bounds(spec)
			latest, _ := m.dash.Latest(spec.Metric)

			spark := widgets.RenderSparkline(widgets.SparklineConfig{
				Samples:   m.dash.History(spec.Metric),
				Smoothing: m.cfg.Display.Smoothing,
				Width:     sparkWidth,
				Min:       lo,
				Max:       hi,
				Color:     color.Lipgloss(spec.Color),
			})
			value := format.FormatReading(latest.Value, latest.Present(), unit)
			switch m.health.Level(spec.Metric) {
			case status.LevelWarning:
				value = styleWarning.Render(value)
			case status.LevelCritical:
				value = styleError.Render(value)
			}
			cells = append(cells, styleSummary.Render(fmt.Sprintf("%s %s %s",
				styleLabel.Render(spec.Label), spark, value)))
		}
	}
	return lipgloss.NewStyle().MaxWidth(m.width).Render(lipgloss.JoinHorizontal(lipgloss.Top, cells...))
}

// renderStatus shows the sampling settings, collector health and the last
// action's outcome.
func (m Model) renderStatus() string {
	parts := []string{
		"every " + format.FormatInterval(m.cfg.Interval()),
		"span " + format.FormatSpan(m.cfg.Display.VisibleSeconds),
		"smoothing " + m.cfg.Display.Smoothing.String(),
		"°" + m.cfg.Display.TempUnit,
		"updated " + format.FormatTimeSince(m.lastUpdated),
	}
	line := strings.Join(parts, " │ ")

	if worst, ok := m.health.Worst(); ok {
		switch worst.Level {
		case status.LevelWarning:
			line += " │ " + styleWarning.Render(worst.Reason)
		case status.LevelCritical:
			line += " │ " + styleError.Render(worst.Reason)
		}
	}

	switch {
	case m.lastErr != nil:
		line += " │ " + styleError.Render(m.lastErr.Error())
	case len(m.warnings) > 0:
		first := format.TruncateWithEllipsis(m.warnings[0], 48)
		line += " │ " + styleWarning.Render(fmt.Sprintf("%d warning(s): %s", len(m.warnings), first))
	}
	if m.status != "" {
		line += " │ " + m.status
	}

	return styleStatus.MaxWidth(m.width).Render(line)
}

// Run starts the TUI and blocks until the user quits or ctx is cancelled.
func Run(ctx context.Context, opts Options) error {
	opts.Context = ctx
	m, err := NewModel(opts)
	if err != nil {
		return err
	}

	p := tea.NewProgram(m,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithContext(ctx),
	)
	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("tui: %w", err)
	}
	return nil
}
