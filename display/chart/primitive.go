package chart

import "image/color"

// Point is a position on the drawing surface in pixels, origin top-left.
type Point struct {
	X, Y float64
}

// Stipple is a coverage pattern for lines and fills. Backends that cannot
// dither may approximate it with alpha.
type Stipple int

const (
	// Solid paints every pixel.
	Solid Stipple = iota
	// Gray25 paints roughly a quarter of the pixels.
	Gray25
	// Gray50 paints roughly half of the pixels.
	Gray50
)

// Coverage returns the fraction of pixels the pattern paints.
func (s Stipple) Coverage() float64 {
	switch s {
	case Gray25:
		return 0.25
	case Gray50:
		return 0.5
	default:
		return 1
	}
}

// Anchor says which point of a text's bounding box sits on Text.At.
type Anchor int

const (
	AnchorNW Anchor = iota
	AnchorSW
	AnchorW
	AnchorCenter
)

// FontRole names the typographic role of a text primitive. Backends choose
// the concrete face and size.
type FontRole int

const (
	// FontTitle is the bold chart title.
	FontTitle FontRole = iota
	// FontPlaceholder is the large "N/A" shown when there is no data.
	FontPlaceholder
	// FontAxis is the small monospace face used for axis labels.
	FontAxis
	// FontLegend is the bold legend face.
	FontLegend
)

// Primitive is one drawing instruction. The concrete types are Rect, Line,
// Polygon and Text; backends type-switch on them and paint in order.
type Primitive interface {
	primitive()
}

// Rect is a filled axis-aligned rectangle from Min to Max.
type Rect struct {
	Min, Max Point
	Fill     color.NRGBA
}

// Line is a straight segment.
type Line struct {
	From, To Point
	Color    color.NRGBA
	Width    float64
	Stipple  Stipple
}

// Polygon is a closed, filled shape.
type Polygon struct {
	Points  []Point
	Fill    color.NRGBA
	Stipple Stipple
}

// Text is a single line of text.
type Text struct {
	At     Point
	Anchor Anchor
	Text   string
	Color  color.NRGBA
	Font   FontRole
}

func (Rect) primitive()    {}
func (Line) primitive()    {}
func (Polygon) primitive() {}
func (Text) primitive()    {}
