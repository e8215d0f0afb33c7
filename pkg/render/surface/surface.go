// Package surface defines the drawing target the compositor paints onto.
//
// A [Surface] follows the immediate-mode path model of an HTML canvas 2D
// context: build a path with MoveTo, LineTo, CubicTo, Ellipse, Arc and
// Rect, then Fill and/or Stroke it with the current styles. Filling or
// stroking does not consume the path; BeginPath starts a new one.
//
// Two backends are provided:
//
//   - [Raster] rasterizes with github.com/fogleman/gg and encodes PNG.
//   - [Vector] records an SVG document with github.com/ajstarks/svgo.
//
// Ellipse and Arc connect to the current point with a straight line when a
// subpath is already open, exactly as a canvas does. Both backends share the
// same tracer, so a composition produces the same geometry in either format.
package surface

import (
	"image/color"
)

// Surface is a 2D drawing target addressed in logical pixels.
type Surface interface {
	// Size returns the logical width and height.
	Size() (w, h int)

	SetFillColor(c color.Color)
	SetFillGradient(g LinearGradient)
	SetStrokeColor(c color.Color)
	SetLineWidth(w float64)

	BeginPath()
	MoveTo(x, y float64)
	LineTo(x, y float64)
	CubicTo(c1x, c1y, c2x, c2y, x, y float64)
	ClosePath()

	// Ellipse appends an elliptical arc centered on (x, y), rotated by
	// rotation radians, swept clockwise (in y-down space) from start to end.
	Ellipse(x, y, rx, ry, rotation, start, end float64)
	// Arc appends a circular arc.
	Arc(x, y, r, start, end float64)
	// Rect appends a closed rectangle and leaves (x, y) as the current point.
	Rect(x, y, w, h float64)

	// Fill paints the interior of the current path using the nonzero rule.
	Fill()
	// Stroke outlines the current path.
	Stroke()
	// FillRect paints a rectangle without touching the current path.
	FillRect(x, y, w, h float64)
}

// Stop is one color stop of a gradient. Offset is in [0, 1].
type Stop struct {
	Offset float64
	Color  color.Color
}

// LinearGradient interpolates between stops along (X0, Y0) → (X1, Y1).
type LinearGradient struct {
	X0, Y0, X1, Y1 float64
	Stops          []Stop
}
