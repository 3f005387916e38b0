// Package chart renders a time-series line chart with hover feedback.
//
// A Renderer owns a drawing surface. It paints the grid, the x-axis dates
// and one polyline per series, and it keeps a pointer position that pointer
// events on the surface update. Every pointer write requests one frame; the
// frame repaints with the guide line and highlight circles for the hovered
// sample.
package chart

import (
	"fmt"
	"time"

	"github.com/wandb/tschart/internal/dataset"
	"github.com/wandb/tschart/internal/frame"
	"github.com/wandb/tschart/internal/geometry"
	"github.com/wandb/tschart/internal/observability"
	"github.com/wandb/tschart/internal/reactive"
	"github.com/wandb/tschart/internal/surface"
)

// Surface is what a Renderer draws on and listens to.
type Surface interface {
	SetLogicalSize(w, h float64)
	SetBufferSize(w, h int)
	BufferSize() (w, h int)
	Context() geometry.Context
	BoundingRect() surface.Rect

	OnPointerMove(fn func(surface.PointerEvent)) *surface.Subscription
	OnPointerLeave(fn func()) *surface.Subscription
}

type Option func(*Renderer)

func WithLogger(logger *observability.CoreLogger) Option {
	return func(r *Renderer) { r.logger = logger }
}

func WithMetrics(m *Metrics) Option {
	return func(r *Renderer) { r.metrics = m }
}

// WithScheduler sets where repaint frames are requested.
//
// Without it the renderer uses a private frame.Queue that nothing flushes,
// so only Init paints.
func WithScheduler(s frame.Scheduler) Option {
	return func(r *Renderer) { r.sched = s }
}

func WithConfig(cfg Config) Option {
	return func(r *Renderer) { r.cfg = cfg }
}

// Renderer paints a dataset onto a Surface.
//
// Not safe for concurrent use. All methods, pointer handlers and frame
// callbacks must run on the host's event loop.
type Renderer struct {
	cfg     Config
	surface Surface
	ctx     geometry.Context
	data    *dataset.Dataset
	lines   []dataset.Column

	logger  *observability.CoreLogger
	metrics *Metrics
	sched   frame.Scheduler

	// pointer is the hover position in device pixels, nil when outside.
	pointer *reactive.State[*geometry.Pointer]
	subs    []*surface.Subscription

	hover     Hover
	hasHover  bool
	destroyed bool
}

// New validates ds, sizes the surface and subscribes to its pointer events.
// Nothing is painted until Init.
func New(s Surface, ds *dataset.Dataset, opts ...Option) (*Renderer, error) {
	r := &Renderer{
		cfg:     DefaultConfig(),
		surface: s,
		data:    ds,
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.logger == nil {
		r.logger = observability.NewNoOpLogger()
	}
	if r.sched == nil {
		r.sched = frame.NewQueue()
	}

	if err := r.cfg.Validate(); err != nil {
		return nil, err
	}
	if ds == nil {
		return nil, fmt.Errorf("chart: new: %w", dataset.ErrNoLineColumns)
	}
	if err := ds.Validate(); err != nil {
		return nil, fmt.Errorf("chart: new: %w", err)
	}
	r.lines = ds.Lines()

	s.SetLogicalSize(r.cfg.Width, r.cfg.Height)
	s.SetBufferSize(r.cfg.BufferSize())
	r.ctx = s.Context()

	var stateOpts []reactive.Option
	if r.metrics != nil {
		stateOpts = append(stateOpts,
			reactive.WithCounters(r.metrics.PointerWrites, r.metrics.FrameRequests))
	}
	r.pointer = reactive.New[*geometry.Pointer](nil, r.sched, r.repaint, stateOpts...)

	r.subs = append(r.subs,
		s.OnPointerMove(r.pointerMove),
		s.OnPointerLeave(r.pointerLeave),
	)

	r.logger.Debug(
		"chart: created renderer",
		"series", len(r.lines),
		"samples", ds.SampleCount(),
	)
	return r, nil
}

// Init paints the first frame synchronously.
func (r *Renderer) Init() {
	if r.destroyed {
		return
	}
	r.paint()
}

// Destroy cancels any pending frame and detaches the pointer listeners.
//
// It is safe to call more than once. Afterwards the renderer never draws.
func (r *Renderer) Destroy() {
	if r.destroyed {
		return
	}
	r.destroyed = true

	r.pointer.Close()
	for _, sub := range r.subs {
		sub.Unsubscribe()
	}
	r.subs = nil
	r.logger.Debug("chart: destroyed renderer")
}

// Destroyed reports whether Destroy has been called.
func (r *Renderer) Destroyed() bool {
	return r.destroyed
}

// Config returns the renderer's configuration.
func (r *Renderer) Config() Config {
	return r.cfg
}

// Pointer returns the stored hover position in device pixels.
func (r *Renderer) Pointer() (x float64, ok bool) {
	p := r.pointer.Get()
	if p == nil {
		return 0, false
	}
	return p.X, true
}

func (r *Renderer) pointerMove(ev surface.PointerEvent) {
	rect := r.surface.BoundingRect()
	r.pointer.Set(&geometry.Pointer{X: (ev.ClientX - rect.Left) * r.cfg.Scale})
}

func (r *Renderer) pointerLeave() {
	r.pointer.Set(nil)
}

func (r *Renderer) repaint(time.Time) {
	if r.destroyed {
		return
	}
	r.paint()
}
