package chart

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics are the renderer's Prometheus collectors.
type Metrics struct {
	FramesPainted prometheus.Counter
	PaintDuration prometheus.Histogram
	PointerWrites prometheus.Counter
	FrameRequests prometheus.Counter
}

// NewMetrics creates the collectors and registers them with reg.
//
// Collectors that reg already knows are reused, so several renderers can
// share one registry. A nil reg leaves the collectors unregistered.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		FramesPainted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "tschart",
			Name:      "frames_painted_total",
			Help:      "Number of chart paints, initial paint included.",
		}),
		PaintDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "tschart",
			Name:      "paint_duration_seconds",
			Help:      "Time spent painting one frame.",
			Buckets:   prometheus.ExponentialBuckets(0.0005, 2, 10),
		}),
		PointerWrites: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "tschart",
			Name:      "pointer_writes_total",
			Help:      "Number of pointer state writes.",
		}),
		FrameRequests: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "tschart",
			Name:      "frame_requests_total",
			Help:      "Number of frames requested by pointer state writes.",
		}),
	}
	if reg == nil {
		return m, nil
	}

	var err error
	if m.FramesPainted, err = register(reg, m.FramesPainted); err != nil {
		return nil, err
	}
	if m.PaintDuration, err = register(reg, m.PaintDuration); err != nil {
		return nil, err
	}
	if m.PointerWrites, err = register(reg, m.PointerWrites); err != nil {
		return nil, err
	}
	if m.FrameRequests, err = register(reg, m.FrameRequests); err != nil {
		return nil, err
	}
	return m, nil
}

func register[C prometheus.Collector](reg prometheus.Registerer, c C) (C, error) {
	err := reg.Register(c)
	if err == nil {
		return c, nil
	}

	var are prometheus.AlreadyRegisteredError
	if errors.As(err, &are) {
		if existing, ok := are.ExistingCollector.(C); ok {
			return existing, nil
		}
	}
	return c, err
}
