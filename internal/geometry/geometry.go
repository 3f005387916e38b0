// Package geometry contains the drawing helpers and hit testing shared by
// chart renderers.
package geometry

import (
	"math"

	"github.com/wandb/tschart/internal/dataset"
)

// TextAlign is the horizontal anchor of FillText.
type TextAlign int

const (
	AlignStart TextAlign = iota
	AlignCenter
	AlignEnd
)

// Context is a 2D raster drawing context with canvas-like path semantics.
//
// Paths accumulate between BeginPath and Stroke/Fill. Colors are CSS-style
// hex strings. Coordinates are device pixels with the origin at top left.
type Context interface {
	ClearRect(x, y, w, h float64)

	BeginPath()
	MoveTo(x, y float64)
	LineTo(x, y float64)
	Arc(x, y, radius, startAngle, endAngle float64)
	Stroke()
	Fill()

	SetStrokeColor(color string)
	SetFillColor(color string)
	SetLineWidth(width float64)
	SetFontSize(px float64)
	SetTextAlign(align TextAlign)
	FillText(text string, x, y float64)

	Save()
	Restore()
}

// Point is a coordinate pair in device pixels.
type Point struct {
	X, Y int
}

// Pointer is the hover position in device pixels.
//
// A nil *Pointer means the pointer is outside the surface.
type Pointer struct {
	X float64
}

// LineStyle configures Line.
type LineStyle struct {
	Color string
	// Width in device pixels. Zero keeps the context's current width.
	Width float64
}

// ComputeBoundaries returns the minimum and maximum over every "line"
// column of ds, keys excluded.
func ComputeBoundaries(ds *dataset.Dataset) (yMin, yMax float64, err error) {
	yMin, yMax = math.Inf(1), math.Inf(-1)
	found := false

	for _, col := range ds.Columns {
		if ds.Types[col.Key] != dataset.KindLine {
			continue
		}
		for _, v := range col.Values {
			found = true
			if v < yMin {
				yMin = v
			}
			if v > yMax {
				yMax = v
			}
		}
	}

	if !found {
		return 0, 0, dataset.ErrNoLineColumns
	}
	return yMin, yMax, nil
}

// Slot returns the index of the column slot containing x.
//
// Slot k covers [k*s - s/2, k*s + s/2) with s = width/(columnLength-1), so
// slots never overlap and cover the whole axis.
func Slot(x float64, columnLength int, width float64) int {
	s := width / float64(columnLength-1)
	return int(math.Floor((x + s/2) / s))
}

// IsOver reports whether xPixel lies in the same column slot as the pointer.
//
// columnLength is the number of samples on the axis. A nil pointer, a
// degenerate axis or a zero width never match.
func IsOver(pointer *Pointer, xPixel float64, columnLength int, width float64) bool {
	if pointer == nil || columnLength < 2 || width <= 0 {
		return false
	}
	return Slot(pointer.X, columnLength, width) == Slot(xPixel, columnLength, width)
}

// Line strokes a polyline through coords. Nothing is filled.
func Line(ctx Context, coords []Point, style LineStyle) {
	if len(coords) == 0 {
		return
	}

	ctx.BeginPath()
	if style.Width > 0 {
		ctx.SetLineWidth(style.Width)
	}
	ctx.SetStrokeColor(style.Color)
	ctx.MoveTo(float64(coords[0].X), float64(coords[0].Y))
	for _, p := range coords[1:] {
		ctx.LineTo(float64(p.X), float64(p.Y))
	}
	ctx.Stroke()
}

// Circle fills a disc of the given radius centred on p.
func Circle(ctx Context, p Point, color string, radius float64) {
	ctx.BeginPath()
	ctx.SetFillColor(color)
	ctx.Arc(float64(p.X), float64(p.Y), radius, 0, 2*math.Pi)
	ctx.Fill()
}
