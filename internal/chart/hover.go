package chart

import "time"

// SeriesValue is one series' sample at the hovered index.
type SeriesValue struct {
	Key   string
	Name  string
	Color string
	Value float64
}

// Hover describes the sample under the pointer as of the last paint.
type Hover struct {
	Index int
	Time  time.Time

	// Left and Top locate the hovered sample in logical pixels relative to
	// the surface. Top is the highest point among the series.
	Left, Top float64

	Values []SeriesValue
}

// Hover returns the hovered sample computed by the last paint, or false
// if the pointer was outside the chart.
func (r *Renderer) Hover() (Hover, bool) {
	return r.hover, r.hasHover
}

func (r *Renderer) updateHover(t transform, index int, hovered bool) {
	r.hasHover = hovered
	if !hovered {
		r.hover = Hover{}
		return
	}

	h := Hover{
		Index:  index,
		Left:   float64(t.x(index)) / r.cfg.Scale,
		Top:    t.height / r.cfg.Scale,
		Values: make([]SeriesValue, 0, len(r.lines)),
	}
	if ts, ok := r.data.Timestamp(index); ok {
		h.Time = ts.In(r.cfg.location())
	}

	for _, col := range r.lines {
		v := col.Values[index]
		h.Values = append(h.Values, SeriesValue{
			Key:   col.Key,
			Name:  r.data.Name(col.Key),
			Color: r.data.Color(col.Key),
			Value: v,
		})
		h.Top = min(h.Top, float64(t.y(v))/r.cfg.Scale)
	}
	r.hover = h
}
