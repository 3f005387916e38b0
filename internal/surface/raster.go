// Package surface implements an in-memory HiDPI raster drawing surface that
// also acts as a pointer-event source.
package surface

import (
	"fmt"
	"image"
	"image/draw"
	"io"

	"github.com/wandb/tschart/internal/geometry"
)

// Rect is a bounding rectangle in client (logical) coordinates.
type Rect struct {
	Left, Top     float64
	Width, Height float64
}

// Contains reports whether the client point lies inside r.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.Left && x < r.Left+r.Width && y >= r.Top && y < r.Top+r.Height
}

// PointerEvent carries client-space coordinates.
type PointerEvent struct {
	ClientX, ClientY float64
}

// Subscription is a handle to a registered listener.
type Subscription struct {
	remove func()
}

// Unsubscribe detaches the listener. Calling it again does nothing.
func (s *Subscription) Unsubscribe() {
	if s == nil || s.remove == nil {
		return
	}
	s.remove()
	s.remove = nil
}

// Raster is a drawing surface with a logical layout size and an
// independent device-pixel buffer.
//
// Like a canvas element, resizing the buffer discards its contents.
type Raster struct {
	ctx *ggContext

	logicalW, logicalH float64
	left, top          float64

	nextID  uint64
	onMove  map[uint64]func(PointerEvent)
	onLeave map[uint64]func()
}

// NewRaster returns a surface whose logical size equals its buffer size.
func NewRaster(w, h int) *Raster {
	return &Raster{
		ctx:      newGGContext(w, h),
		logicalW: float64(w),
		logicalH: float64(h),
		onMove:   make(map[uint64]func(PointerEvent)),
		onLeave:  make(map[uint64]func()),
	}
}

// SetLogicalSize sets the layout size used for pointer translation.
func (r *Raster) SetLogicalSize(w, h float64) {
	r.logicalW, r.logicalH = w, h
}

func (r *Raster) LogicalSize() (w, h float64) {
	return r.logicalW, r.logicalH
}

// SetBufferSize reallocates the pixel buffer if its size changes.
func (r *Raster) SetBufferSize(w, h int) {
	if bw, bh := r.BufferSize(); bw == w && bh == h {
		return
	}
	r.ctx = newGGContext(w, h)
}

func (r *Raster) BufferSize() (w, h int) {
	return r.ctx.dc.Width(), r.ctx.dc.Height()
}

// SetPosition places the surface in client space.
func (r *Raster) SetPosition(left, top float64) {
	r.left, r.top = left, top
}

// BoundingRect returns the surface's logical rectangle in client space.
func (r *Raster) BoundingRect() Rect {
	return Rect{Left: r.left, Top: r.top, Width: r.logicalW, Height: r.logicalH}
}

// Context returns the drawing context of the current buffer.
func (r *Raster) Context() geometry.Context {
	return r.ctx
}

// Image returns the live buffer. It changes on every paint.
func (r *Raster) Image() image.Image {
	return r.ctx.dc.Image()
}

// Snapshot returns a copy of the buffer that later paints do not affect.
func (r *Raster) Snapshot() *image.RGBA {
	src := r.ctx.dc.Image()
	dst := image.NewRGBA(src.Bounds())
	draw.Draw(dst, dst.Bounds(), src, src.Bounds().Min, draw.Src)
	return dst
}

// EncodePNG writes the current buffer as PNG.
func (r *Raster) EncodePNG(w io.Writer) error {
	if err := r.ctx.dc.EncodePNG(w); err != nil {
		return fmt.Errorf("surface: encode png: %w", err)
	}
	return nil
}

// OnPointerMove registers fn for pointer-move events.
func (r *Raster) OnPointerMove(fn func(PointerEvent)) *Subscription {
	r.nextID++
	id := r.nextID
	r.onMove[id] = fn
	return &Subscription{remove: func() { delete(r.onMove, id) }}
}

// OnPointerLeave registers fn for pointer-leave events.
func (r *Raster) OnPointerLeave(fn func()) *Subscription {
	r.nextID++
	id := r.nextID
	r.onLeave[id] = fn
	return &Subscription{remove: func() { delete(r.onLeave, id) }}
}

// Listeners returns the number of attached listeners.
func (r *Raster) Listeners() int {
	return len(r.onMove) + len(r.onLeave)
}

// DispatchPointerMove delivers a move event to every move listener.
func (r *Raster) DispatchPointerMove(clientX, clientY float64) {
	ev := PointerEvent{ClientX: clientX, ClientY: clientY}
	for _, fn := range r.onMove {
		fn(ev)
	}
}

// DispatchPointerLeave delivers a leave event to every leave listener.
func (r *Raster) DispatchPointerLeave() {
	for _, fn := range r.onLeave {
		fn()
	}
}
