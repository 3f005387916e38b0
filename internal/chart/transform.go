package chart

import (
	"math"

	"github.com/wandb/tschart/internal/dataset"
	"github.com/wandb/tschart/internal/geometry"
)

// transform maps sample indices and values to device pixels.
type transform struct {
	samples int
	width   float64
	height  float64
	padding float64

	yMin, yMax float64
	xRatio     float64
	yRatio     float64
}

func newTransform(ds *dataset.Dataset, width, height, padding float64) (transform, error) {
	yMin, yMax, err := geometry.ComputeBoundaries(ds)
	if err != nil {
		return transform{}, err
	}

	n := ds.SampleCount()
	t := transform{
		samples: n,
		width:   width,
		height:  height,
		padding: padding,
		yMin:    yMin,
		yMax:    yMax,
		xRatio:  width / float64(n-1),
	}
	if yMax > yMin {
		t.yRatio = t.viewHeight() / (yMax - yMin)
	}
	return t, nil
}

func (t transform) viewHeight() float64 {
	return t.height - 2*t.padding
}

// flat reports a series range of zero, drawn as a mid-height line.
func (t transform) flat() bool {
	return t.yRatio == 0
}

func (t transform) x(i int) int {
	return int(math.Floor(float64(i) * t.xRatio))
}

// y maps a value to a device row. yMin sits on the bottom padding and yMax
// on the top one.
func (t transform) y(v float64) int {
	if t.flat() {
		return int(math.Floor(t.padding + t.viewHeight()/2))
	}
	return int(math.Floor(t.height - t.padding - (v-t.yMin)*t.yRatio))
}

func (t transform) coords(values []float64) []geometry.Point {
	out := make([]geometry.Point, len(values))
	for i, v := range values {
		out[i] = geometry.Point{X: t.x(i), Y: t.y(v)}
	}
	return out
}

// hovered returns the first sample index inside the pointer's hit region.
func (t transform) hovered(p *geometry.Pointer) (int, bool) {
	if p == nil {
		return 0, false
	}
	for i := range t.samples {
		if geometry.IsOver(p, float64(t.x(i)), t.samples, t.width) {
			return i, true
		}
	}
	return 0, false
}
