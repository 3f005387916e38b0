package chart

import (
	"math"
	"strconv"
	"time"

	"github.com/wandb/tschart/internal/geometry"
)

func (r *Renderer) paint() {
	start := time.Now()
	w, h := r.surface.BufferSize()
	width, height := float64(w), float64(h)

	r.ctx.ClearRect(0, 0, width, height)

	t, err := newTransform(r.data, width, height, r.cfg.Padding)
	if err != nil {
		// Unreachable for a validated dataset.
		r.logger.CaptureError(err)
		return
	}

	pointer := r.pointer.Get()
	index, hovered := t.hovered(pointer)

	r.yAxis(t)
	r.xAxis(t, index, hovered)
	r.series(t, index, hovered)
	r.updateHover(t, index, hovered)

	if r.metrics != nil {
		r.metrics.FramesPainted.Inc()
		r.metrics.PaintDuration.Observe(time.Since(start).Seconds())
	}
}

// yAxis draws the horizontal grid and right-aligned value labels.
func (r *Renderer) yAxis(t transform) {
	step := t.viewHeight() / float64(r.cfg.Rows)
	textStep := (t.yMax - t.yMin) / float64(r.cfg.Rows)

	r.ctx.Save()
	defer r.ctx.Restore()

	r.ctx.BeginPath()
	r.ctx.SetStrokeColor(r.cfg.GridColor)
	r.ctx.SetLineWidth(r.cfg.GridWidth)
	r.ctx.SetFontSize(r.cfg.FontSize)
	r.ctx.SetFillColor(r.cfg.LabelColor)
	r.ctx.SetTextAlign(geometry.AlignEnd)

	for i := 1; i <= r.cfg.Rows; i++ {
		y := t.padding + step*float64(i)
		label := strconv.FormatFloat(math.Round(t.yMax-textStep*float64(i)), 'f', -1, 64)
		r.ctx.FillText(label, t.width-5, y-10)
		r.ctx.MoveTo(0, y)
		r.ctx.LineTo(t.width, y)
	}
	r.ctx.Stroke()
}

// xAxis draws the date labels and, when a sample is hovered, the guide line.
func (r *Renderer) xAxis(t transform, index int, hovered bool) {
	step := int(math.Round(float64(t.samples) / float64(r.cfg.Cols)))
	if step < 1 {
		step = 1
	}
	loc := r.cfg.location()
	layout := r.cfg.dateFormat()

	r.ctx.Save()
	defer r.ctx.Restore()

	r.ctx.SetFontSize(r.cfg.FontSize)
	r.ctx.SetFillColor(r.cfg.LabelColor)
	r.ctx.SetTextAlign(geometry.AlignStart)

	for i := 0; i < t.samples; i += step {
		ts, ok := r.data.Timestamp(i)
		if !ok {
			break
		}
		r.ctx.FillText(ts.In(loc).Format(layout), float64(t.x(i)), t.height-10)
	}

	if !hovered {
		return
	}
	x := float64(t.x(index))
	geometry.Line(r.ctx,
		[]geometry.Point{
			{X: int(x), Y: int(t.padding / 2)},
			{X: int(x), Y: int(t.height - t.padding)},
		},
		geometry.LineStyle{Color: r.cfg.GridColor, Width: r.cfg.GridWidth},
	)
}

// series draws one polyline per line column and a circle on the first
// hovered coordinate.
func (r *Renderer) series(t transform, index int, hovered bool) {
	r.ctx.Save()
	defer r.ctx.Restore()

	for _, col := range r.lines {
		color := r.data.Color(col.Key)
		coords := t.coords(col.Values)
		geometry.Line(r.ctx, coords, geometry.LineStyle{Color: color, Width: r.cfg.LineWidth})

		if hovered {
			geometry.Circle(r.ctx, coords[index], color, r.cfg.CircleRadius)
		}
	}
}
