package tui

import (
	"github.com/Enazzzz/SysIntel/dashboard"
	"github.com/Enazzzz/SysIntel/display/raster"
	"github.com/Enazzzz/SysIntel/display/render"
)

// renderChart draws graph id into a cols×rows block of half-block cells.
// Each cell covers scale×2·scale chart pixels, so the chart is rasterised
// larger than the terminal and resampled down.
func renderChart(d *dashboard.Dashboard, id string, cols, rows, scale int) string {
	if cols <= 0 || rows <= 0 {
		return ""
	}
	if scale < 1 {
		scale = 1
	}

	w, h := cols*scale, rows*2*scale
	prims := d.Frame(id, w, h)
	if len(prims) == 0 {
		return ""
	}
	return render.HalfBlocks(raster.Paint(prims, w, h), cols, rows)
}
