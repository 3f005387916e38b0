package surface

import (
	"image"
	"image/color"
	"image/draw"
	"log/slog"
	"math"

	"github.com/fogleman/gg"

	"github.com/wandb/tschart/internal/geometry"
)

type drawState struct {
	stroke   color.NRGBA
	fill     color.NRGBA
	align    geometry.TextAlign
	fontSize float64
}

// ggContext adapts a gg.Context to geometry.Context.
//
// gg clears its path on Stroke and Fill while a canvas keeps it until the
// next BeginPath; the preserving gg calls are used to keep canvas behaviour.
type ggContext struct {
	dc    *gg.Context
	faces faceCache

	drawState
	stack []drawState
}

var _ geometry.Context = (*ggContext)(nil)

func newGGContext(w, h int) *ggContext {
	c := &ggContext{
		dc: gg.NewContext(w, h),
		drawState: drawState{
			stroke:   color.NRGBA{A: 0xff},
			fill:     color.NRGBA{A: 0xff},
			fontSize: 10,
		},
	}
	c.dc.SetLineWidth(1)
	c.applyFont()
	return c
}

func (c *ggContext) ClearRect(x, y, w, h float64) {
	img, ok := c.dc.Image().(draw.Image)
	if !ok {
		return
	}
	r := image.Rect(
		int(math.Floor(x)), int(math.Floor(y)),
		int(math.Ceil(x+w)), int(math.Ceil(y+h)),
	)
	draw.Draw(img, r.Intersect(img.Bounds()), image.Transparent, image.Point{}, draw.Src)
}

func (c *ggContext) BeginPath() {
	c.dc.ClearPath()
}

func (c *ggContext) MoveTo(x, y float64) {
	c.dc.MoveTo(x, y)
}

func (c *ggContext) LineTo(x, y float64) {
	c.dc.LineTo(x, y)
}

func (c *ggContext) Arc(x, y, radius, startAngle, endAngle float64) {
	c.dc.DrawArc(x, y, radius, startAngle, endAngle)
}

func (c *ggContext) Stroke() {
	c.dc.SetColor(c.stroke)
	c.dc.StrokePreserve()
}

func (c *ggContext) Fill() {
	c.dc.SetColor(c.fill)
	c.dc.FillPreserve()
}

func (c *ggContext) SetStrokeColor(s string) {
	if col, err := ParseColor(s); err == nil {
		c.stroke = col
	} else {
		slog.Debug("surface: ignoring stroke color", "err", err)
	}
}

func (c *ggContext) SetFillColor(s string) {
	if col, err := ParseColor(s); err == nil {
		c.fill = col
	} else {
		slog.Debug("surface: ignoring fill color", "err", err)
	}
}

func (c *ggContext) SetLineWidth(width float64) {
	c.dc.SetLineWidth(width)
}

func (c *ggContext) SetFontSize(px float64) {
	if px <= 0 {
		return
	}
	c.fontSize = px
	c.applyFont()
}

func (c *ggContext) applyFont() {
	face, err := c.faces.face(c.fontSize)
	if err != nil {
		slog.Debug("surface: keeping previous font", "err", err)
		return
	}
	c.dc.SetFontFace(face)
}

func (c *ggContext) SetTextAlign(align geometry.TextAlign) {
	c.align = align
}

// FillText draws text with its baseline at y, anchored horizontally by the
// current alignment.
func (c *ggContext) FillText(text string, x, y float64) {
	var ax float64
	switch c.align {
	case geometry.AlignCenter:
		ax = 0.5
	case geometry.AlignEnd:
		ax = 1
	}
	c.dc.SetColor(c.fill)
	c.dc.DrawStringAnchored(text, x, y, ax, 0)
}

func (c *ggContext) Save() {
	c.dc.Push()
	c.stack = append(c.stack, c.drawState)
}

func (c *ggContext) Restore() {
	n := len(c.stack)
	if n == 0 {
		return
	}
	c.dc.Pop()
	c.drawState = c.stack[n-1]
	c.stack = c.stack[:n-1]
}
