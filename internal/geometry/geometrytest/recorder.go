// Package geometrytest provides a recording geometry.Context for tests.
package geometrytest

import (
	"fmt"

	"github.com/wandb/tschart/internal/geometry"
)

// Op is one recorded drawing call.
type Op struct {
	Name string
	Args []float64
	Text string
}

func (o Op) String() string {
	if o.Text != "" {
		return fmt.Sprintf("%s(%q %v)", o.Name, o.Text, o.Args)
	}
	return fmt.Sprintf("%s%v", o.Name, o.Args)
}

// Path is a stroked or filled path with the style active when it was drawn.
type Path struct {
	Points    [][2]float64
	Arcs      int
	Color     string
	LineWidth float64
	Filled    bool
}

// Text is a FillText call with its style.
type Text struct {
	Value string
	X, Y  float64
	Color string
	Size  float64
	Align geometry.TextAlign
}

type state struct {
	stroke    string
	fill      string
	lineWidth float64
	fontSize  float64
	align     geometry.TextAlign
}

// Recorder implements geometry.Context by recording every call.
type Recorder struct {
	Ops     []Op
	Strokes []Path
	Fills   []Path
	Texts   []Text
	Clears  int

	state
	stack []state
	path  Path
}

var _ geometry.Context = (*Recorder)(nil)

func NewRecorder() *Recorder {
	return &Recorder{state: state{lineWidth: 1, fontSize: 10, stroke: "#000", fill: "#000"}}
}

// Reset drops everything recorded so far but keeps the current style.
func (r *Recorder) Reset() {
	r.Ops = nil
	r.Strokes = nil
	r.Fills = nil
	r.Texts = nil
	r.Clears = 0
	r.path = Path{}
}

func (r *Recorder) record(name string, args ...float64) {
	r.Ops = append(r.Ops, Op{Name: name, Args: args})
}

func (r *Recorder) ClearRect(x, y, w, h float64) {
	r.record("ClearRect", x, y, w, h)
	r.Clears++
}

func (r *Recorder) BeginPath() {
	r.record("BeginPath")
	r.path = Path{}
}

func (r *Recorder) MoveTo(x, y float64) {
	r.record("MoveTo", x, y)
	r.path.Points = append(r.path.Points, [2]float64{x, y})
}

func (r *Recorder) LineTo(x, y float64) {
	r.record("LineTo", x, y)
	r.path.Points = append(r.path.Points, [2]float64{x, y})
}

func (r *Recorder) Arc(x, y, radius, startAngle, endAngle float64) {
	r.record("Arc", x, y, radius, startAngle, endAngle)
	r.path.Points = append(r.path.Points, [2]float64{x, y})
	r.path.Arcs++
}

// Stroke records the current path. Like a canvas, the path is kept so a
// later Fill or Stroke would paint it again.
func (r *Recorder) Stroke() {
	r.record("Stroke")
	p := r.path
	p.Points = append([][2]float64(nil), r.path.Points...)
	p.Color = r.stroke
	p.LineWidth = r.lineWidth
	r.Strokes = append(r.Strokes, p)
}

func (r *Recorder) Fill() {
	r.record("Fill")
	p := r.path
	p.Points = append([][2]float64(nil), r.path.Points...)
	p.Color = r.fill
	p.Filled = true
	r.Fills = append(r.Fills, p)
}

func (r *Recorder) SetStrokeColor(color string) {
	r.Ops = append(r.Ops, Op{Name: "SetStrokeColor", Text: color})
	r.stroke = color
}

func (r *Recorder) SetFillColor(color string) {
	r.Ops = append(r.Ops, Op{Name: "SetFillColor", Text: color})
	r.fill = color
}

func (r *Recorder) SetLineWidth(width float64) {
	r.record("SetLineWidth", width)
	r.lineWidth = width
}

func (r *Recorder) SetFontSize(px float64) {
	r.record("SetFontSize", px)
	r.fontSize = px
}

func (r *Recorder) SetTextAlign(align geometry.TextAlign) {
	r.record("SetTextAlign", float64(align))
	r.align = align
}

func (r *Recorder) FillText(text string, x, y float64) {
	r.Ops = append(r.Ops, Op{Name: "FillText", Text: text, Args: []float64{x, y}})
	r.Texts = append(r.Texts, Text{Value: text, X: x, Y: y, Color: r.fill, Size: r.fontSize, Align: r.align})
}

func (r *Recorder) Save() {
	r.record("Save")
	r.stack = append(r.stack, r.state)
}

func (r *Recorder) Restore() {
	r.record("Restore")
	if n := len(r.stack); n > 0 {
		r.state = r.stack[n-1]
		r.stack = r.stack[:n-1]
	}
}

// StrokesWithColor returns the stroked paths drawn in color.
func (r *Recorder) StrokesWithColor(color string) []Path {
	var out []Path
	for _, p := range r.Strokes {
		if p.Color == color {
			out = append(out, p)
		}
	}
	return out
}

// FillsWithColor returns the filled paths drawn in color.
func (r *Recorder) FillsWithColor(color string) []Path {
	var out []Path
	for _, p := range r.Fills {
		if p.Color == color {
			out = append(out, p)
		}
	}
	return out
}
