package chart

import (
	"errors"
	"fmt"
	"time"
)

var ErrInvalidConfig = errors.New("chart: invalid config")

// Config is the fixed drawing configuration of a Renderer.
//
// Sizes are logical pixels unless noted otherwise. The buffer is the logical
// size multiplied by Scale.
type Config struct {
	Width  float64
	Height float64
	Scale  float64

	// Padding is reserved above and below the plot, in device pixels.
	Padding float64
	// Rows is the number of horizontal grid lines.
	Rows int
	// Cols is the approximate number of x-axis labels.
	Cols int

	// CircleRadius, FontSize and LineWidth are in device pixels.
	CircleRadius float64
	FontSize     float64
	LineWidth    float64

	GridColor  string
	GridWidth  float64
	LabelColor string

	// DateFormat is the time layout of x-axis labels.
	DateFormat string
	// Location is the time zone x-axis labels are printed in.
	Location *time.Location
}

// DefaultConfig returns a 600x200 chart drawn into a 1200x400 buffer.
func DefaultConfig() Config {
	return Config{
		Width:        600,
		Height:       200,
		Scale:        2,
		Padding:      40,
		Rows:         5,
		Cols:         6,
		CircleRadius: 5,
		FontSize:     20,
		LineWidth:    4,
		GridColor:    "#bbb",
		GridWidth:    1,
		LabelColor:   "#96a2aa",
		DateFormat:   "Jan 2",
		Location:     time.UTC,
	}
}

// BufferSize returns the device-pixel size of the surface buffer.
func (c Config) BufferSize() (w, h int) {
	return int(c.Width * c.Scale), int(c.Height * c.Scale)
}

// Validate rejects configurations that cannot be painted.
func (c Config) Validate() error {
	w, h := c.BufferSize()
	switch {
	case c.Scale <= 0:
		return fmt.Errorf("%w: scale %v", ErrInvalidConfig, c.Scale)
	case w <= 0 || h <= 0:
		return fmt.Errorf("%w: size %vx%v", ErrInvalidConfig, c.Width, c.Height)
	case c.Padding < 0 || 2*c.Padding >= float64(h):
		return fmt.Errorf("%w: padding %v for height %d", ErrInvalidConfig, c.Padding, h)
	case c.Rows < 1:
		return fmt.Errorf("%w: rows %d", ErrInvalidConfig, c.Rows)
	case c.Cols < 1:
		return fmt.Errorf("%w: cols %d", ErrInvalidConfig, c.Cols)
	}
	return nil
}

func (c Config) location() *time.Location {
	if c.Location == nil {
		return time.UTC
	}
	return c.Location
}

func (c Config) dateFormat() string {
	if c.DateFormat == "" {
		return "Jan 2"
	}
	return c.DateFormat
}
