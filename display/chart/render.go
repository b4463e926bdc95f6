package chart

import (
	"fmt"
	"image/color"
	"math"
)

// MinSurface is the smallest width or height Render will draw on.
const MinSurface = 10

const (
	verticalGridLines   = 11
	horizontalGridLines = 5
	xAxisLabels         = 6

	titleInset   = 10
	markerHalf   = 5
	seriesWidth  = 2
	yLabelInset  = 5
	xLabelBottom = 2

	legendOffset   = 120
	legendTop      = 10
	legendRow      = 22
	legendSwatchW  = 18
	legendSwatchH  = 16
	legendTextGap  = 25
	legendTextDrop = 8
)

// SeriesConfig describes how one series is drawn. Each series maps values
// onto the surface height with its own bounds.
type SeriesConfig struct {
	Label     string
	Color     color.NRGBA
	YMin      float64
	YMax      float64
	Smoothing Smoothing
}

// project maps a value onto a y pixel coordinate for a surface of height h.
// Equal bounds collapse every value onto the bottom edge.
func (c SeriesConfig) project(v float64, h int) float64 {
	span := c.YMax - c.YMin
	var ratio float64
	if span != 0 {
		ratio = (v - c.YMin) / span
	}
	return float64(h) - ratio*float64(h)
}

// LegendEntry is one swatch in the top-right legend.
type LegendEntry struct {
	Text  string
	Color color.NRGBA
}

// ChartConfig holds the per-graph settings shared by every series.
type ChartConfig struct {
	// Title is drawn in the top-left corner when non-empty.
	Title string
	// VisibleSeconds is the time span shown across the full width.
	VisibleSeconds float64
	// Background fills the whole surface before anything else is drawn.
	Background color.NRGBA
	// Grid colours the stippled gridlines.
	Grid color.NRGBA
	// Label colours the title, axis labels, legend text and placeholder.
	Label color.NRGBA
	// Legend is drawn only when it has entries.
	Legend []LegendEntry
}

// Series pairs a snapshot of a window with the settings used to draw it.
type Series struct {
	Config   SeriesConfig
	Samples  []Sample
	Capacity int
}

// mapper returns the time mapper for this series on a surface of width w.
func (s Series) mapper(w int, visibleSeconds float64) TimeMapper {
	capacity := s.Capacity
	if capacity < len(s.Samples) {
		capacity = len(s.Samples)
	}
	return TimeMapper{Width: w, VisibleSeconds: visibleSeconds, Capacity: capacity, Count: len(s.Samples)}
}

// Render produces the drawing primitives for one frame of a w×h surface.
// Primitives are ordered back to front: background, grid, title, series
// (fill before line), axis labels, legend.
//
// A single series with fewer than two samples, or with no non-zero valid
// sample, draws a static grid with either a marker for the lone sample or an
// "N/A" placeholder. With several series such a series is skipped (a lone
// valid sample still gets its marker) and the rest of the chart is drawn.
//
// Surfaces smaller than MinSurface in either dimension produce no output.
func Render(cfg ChartConfig, series []Series, w, h int) []Primitive {
	if w < MinSurface || h < MinSurface {
		return nil
	}

	r := &renderer{cfg: cfg, w: w, h: h}
	r.add(Rect{Min: Point{0, 0}, Max: Point{float64(w), float64(h)}, Fill: cfg.Background})

	if len(series) == 1 && !drawable(series[0]) {
		r.drawEmpty(series[0])
		return r.out
	}

	grid := r.gridMapper(series)
	left := grid.LeftEdge()

	r.drawGrid(grid, left)
	r.drawTitle()
	for i, s := range series {
		r.drawSeries(s, i == 0)
	}
	if len(series) > 0 {
		r.drawYLabels(series[0].Config, left)
	}
	r.drawXLabels(grid, left)
	r.drawLegend()

	return r.out
}

// drawable reports whether a series has enough data for a line.
func drawable(s Series) bool {
	return len(s.Samples) >= 2 && anyPresent(s.Samples)
}

type renderer struct {
	cfg  ChartConfig
	w, h int
	out  []Primitive
}

func (r *renderer) add(p Primitive) {
	r.out = append(r.out, p)
}

// gridMapper spans the largest capacity and the fullest window of all series.
func (r *renderer) gridMapper(series []Series) TimeMapper {
	m := TimeMapper{Width: r.w, VisibleSeconds: r.cfg.VisibleSeconds}
	for _, s := range series {
		sm := s.mapper(r.w, r.cfg.VisibleSeconds)
		m.Capacity = max(m.Capacity, sm.Capacity)
		m.Count = max(m.Count, sm.Count)
	}
	return m
}

func (r *renderer) gridLine(from, to Point) {
	r.add(Line{From: from, To: to, Color: r.cfg.Grid, Width: 1, Stipple: Gray25})
}

// drawEmpty is the single-series placeholder frame.
func (r *renderer) drawEmpty(s Series) {
	for i := 0; i < verticalGridLines; i++ {
		x := float64(r.w * i / 10)
		r.gridLine(Point{x, 0}, Point{x, float64(r.h)})
	}
	for i := 0; i < horizontalGridLines; i++ {
		y := float64(r.h * i / 4)
		r.gridLine(Point{0, y}, Point{float64(r.w), y})
	}
	r.drawTitle()

	if len(s.Samples) == 1 && s.Samples[0].Present() {
		r.drawMarker(s.Config, s.Samples[0].Value)
		return
	}
	r.add(Text{
		At:     Point{float64(r.w / 2), float64(r.h / 2)},
		Anchor: AnchorCenter,
		Text:   "N/A",
		Color:  r.cfg.Label,
		Font:   FontPlaceholder,
	})
}

func (r *renderer) drawGrid(m TimeMapper, left float64) {
	for i := 0; i < verticalGridLines; i++ {
		t := float64(i) * r.cfg.VisibleSeconds / 10
		x := m.TimeToX(t)
		if x < left {
			continue
		}
		r.gridLine(Point{x, 0}, Point{x, float64(r.h)})
	}
	for i := 0; i < horizontalGridLines; i++ {
		y := float64(r.h * i / 4)
		r.gridLine(Point{left, y}, Point{float64(r.w), y})
	}
}

func (r *renderer) drawTitle() {
	if r.cfg.Title == "" {
		return
	}
	r.add(Text{
		At:     Point{titleInset, titleInset},
		Anchor: AnchorNW,
		Text:   r.cfg.Title,
		Color:  r.cfg.Label,
		Font:   FontTitle,
	})
}

// drawMarker draws the short vertical tick for a lone sample at "now".
func (r *renderer) drawMarker(c SeriesConfig, v float64) {
	x := float64(r.w - 1)
	y := c.project(v, r.h)
	r.add(Line{
		From:  Point{x, y - markerHalf},
		To:    Point{x, y + markerHalf},
		Color: c.Color,
		Width: seriesWidth,
	})
}

func (r *renderer) drawSeries(s Series, primary bool) {
	if !drawable(s) {
		if len(s.Samples) == 1 && s.Samples[0].Present() {
			r.drawMarker(s.Config, s.Samples[0].Value)
		}
		return
	}

	m := s.mapper(r.w, r.cfg.VisibleSeconds)
	pts := m.Interpolate(Smooth(s.Samples, s.Config.Smoothing))
	if len(pts) == 0 {
		return
	}
	for i := range pts {
		pts[i].Y = s.Config.project(pts[i].Y, r.h)
	}

	if primary {
		h := float64(r.h)
		area := make([]Point, 0, len(pts)+2)
		area = append(area, Point{pts[0].X, h})
		area = append(area, pts...)
		area = append(area, Point{pts[len(pts)-1].X, h})
		r.add(Polygon{Points: area, Fill: s.Config.Color, Stipple: Gray50})
	}

	for i := 1; i < len(pts); i++ {
		r.add(Line{From: pts[i-1], To: pts[i], Color: s.Config.Color, Width: seriesWidth})
	}
}

func (r *renderer) drawYLabels(c SeriesConfig, left float64) {
	for i := 0; i < horizontalGridLines; i++ {
		v := c.YMax - (c.YMax-c.YMin)*float64(i)/4
		r.add(Text{
			At:     Point{left + yLabelInset, float64(r.h * i / 4)},
			Anchor: AnchorNW,
			Text:   fmt.Sprintf("%.0f", v),
			Color:  r.cfg.Label,
			Font:   FontAxis,
		})
	}
}

func (r *renderer) drawXLabels(m TimeMapper, left float64) {
	visible := r.cfg.VisibleSeconds
	for i := 0; i < xAxisLabels; i++ {
		t := math.Floor(visible * float64(i) / 5)
		x := m.TimeToX(t)
		if x < left {
			continue
		}
		text := "now"
		if t > 0 {
			text = fmt.Sprintf("%.0fs", visible-t)
		}
		r.add(Text{
			At:     Point{x, float64(r.h - xLabelBottom)},
			Anchor: AnchorSW,
			Text:   text,
			Color:  r.cfg.Label,
			Font:   FontAxis,
		})
	}
}

func (r *renderer) drawLegend() {
	x := float64(r.w - legendOffset)
	for i, e := range r.cfg.Legend {
		top := float64(legendTop + i*legendRow)
		r.add(Rect{
			Min:  Point{x, top},
			Max:  Point{x + legendSwatchW, top + legendSwatchH},
			Fill: e.Color,
		})
		r.add(Text{
			At:     Point{x + legendTextGap, top + legendTextDrop},
			Anchor: AnchorW,
			Text:   e.Text,
			Color:  r.cfg.Label,
			Font:   FontLegend,
		})
	}
}
