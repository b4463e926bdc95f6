// Package raster paints chart primitives onto an RGBA image. It backs both
// the PNG snapshots written by the CLI and the frames streamed to the
// terminal by the TUI.
//
// Stipple patterns are approximated with alpha: a 25% stipple paints the
// colour at a quarter of its opacity.
package raster

import (
	"image"
	"image/color"
	"io"
	"math"

	"github.com/fogleman/gg"
	"golang.org/x/image/font/basicfont"

	"github.com/Enazzzz/SysIntel/display/chart"
)

// fontStyle describes how a font role is drawn with the bitmap face.
type fontStyle struct {
	scale float64
	bold  bool
}

var fontStyles = map[chart.FontRole]fontStyle{
	chart.FontTitle:       {scale: 1, bold: true},
	chart.FontPlaceholder: {scale: 2, bold: true},
	chart.FontAxis:        {scale: 1},
	chart.FontLegend:      {scale: 1, bold: true},
}

// Canvas is a drawing surface primitives are painted onto.
type Canvas struct {
	img *image.RGBA
	dc  *gg.Context
}

// NewCanvas creates a transparent w×h canvas. Negative sizes are treated as
// zero.
func NewCanvas(w, h int) *Canvas {
	img := image.NewRGBA(image.Rect(0, 0, max(w, 0), max(h, 0)))
	dc := gg.NewContextForRGBA(img)
	dc.SetFontFace(basicfont.Face7x13)
	return &Canvas{img: img, dc: dc}
}

// Paint draws primitives in order, later ones on top.
func (c *Canvas) Paint(prims []chart.Primitive) {
	if c.img.Bounds().Empty() {
		return
	}
	for _, p := range prims {
		switch v := p.(type) {
		case chart.Rect:
			c.rect(v)
		case chart.Line:
			c.line(v)
		case chart.Polygon:
			c.polygon(v)
		case chart.Text:
			c.text(v)
		}
	}
}

// Image returns the backing image. It is shared with the canvas.
func (c *Canvas) Image() *image.RGBA {
	return c.img
}

// EncodePNG writes the canvas as a PNG image.
func (c *Canvas) EncodePNG(w io.Writer) error {
	return c.dc.EncodePNG(w)
}

// SavePNG writes the canvas to a PNG file.
func (c *Canvas) SavePNG(path string) error {
	return c.dc.SavePNG(path)
}

// Paint rasterises one chart frame onto a new w×h image.
func Paint(prims []chart.Primitive, w, h int) *image.RGBA {
	c := NewCanvas(w, h)
	c.Paint(prims)
	return c.img
}

func stippled(col color.NRGBA, s chart.Stipple) color.NRGBA {
	col.A = uint8(math.Round(float64(col.A) * s.Coverage()))
	return col
}

func (c *Canvas) rect(r chart.Rect) {
	c.dc.SetColor(r.Fill)
	c.dc.DrawRectangle(r.Min.X, r.Min.Y, r.Max.X-r.Min.X, r.Max.Y-r.Min.Y)
	c.dc.Fill()
}

func (c *Canvas) line(l chart.Line) {
	width := l.Width
	if width <= 0 {
		width = 1
	}
	c.dc.SetColor(stippled(l.Color, l.Stipple))
	c.dc.SetLineWidth(width)
	c.dc.DrawLine(l.From.X, l.From.Y, l.To.X, l.To.Y)
	c.dc.Stroke()
}

func (c *Canvas) polygon(p chart.Polygon) {
	if len(p.Points) < 3 {
		return
	}
	c.dc.SetColor(stippled(p.Fill, p.Stipple))
	c.dc.MoveTo(p.Points[0].X, p.Points[0].Y)
	for _, pt := range p.Points[1:] {
		c.dc.LineTo(pt.X, pt.Y)
	}
	c.dc.ClosePath()
	c.dc.Fill()
}

// anchorFactors converts an anchor into gg's (ax, ay) where ay=1 puts the
// top of the text on the anchor point and ay=0 puts the baseline on it.
func anchorFactors(a chart.Anchor) (float64, float64) {
	switch a {
	case chart.AnchorSW:
		return 0, 0
	case chart.AnchorW:
		return 0, 0.5
	case chart.AnchorCenter:
		return 0.5, 0.5
	default:
		return 0, 1
	}
}

func (c *Canvas) text(t chart.Text) {
	if t.Text == "" {
		return
	}
	style, ok := fontStyles[t.Font]
	if !ok {
		style = fontStyles[chart.FontAxis]
	}
	ax, ay := anchorFactors(t.Anchor)

	c.dc.Push()
	defer c.dc.Pop()
	if style.scale != 1 {
		c.dc.ScaleAbout(style.scale, style.scale, t.At.X, t.At.Y)
	}
	c.dc.SetColor(t.Color)
	c.dc.DrawStringAnchored(t.Text, t.At.X, t.At.Y, ax, ay)
	if style.bold {
		c.dc.DrawStringAnchored(t.Text, t.At.X+1, t.At.Y, ax, ay)
	}
}
