package export

import (
	"cmp"
	"context"
	"fmt"
	"path/filepath"
	"slices"
	"time"

	"github.com/spf13/afero"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"github.com/wandb/tschart/internal/chart"
	"github.com/wandb/tschart/internal/dataset"
	"github.com/wandb/tschart/internal/frame"
	"github.com/wandb/tschart/internal/observability"
	"github.com/wandb/tschart/internal/surface"
)

const maxEncoders = 4

// epoch is time zero of the replay clock.
var epoch = time.Unix(0, 0).UTC()

// TracePoint is one recorded pointer event.
type TracePoint struct {
	// AtMs is the event time in milliseconds since the start of the trace.
	AtMs int64 `yaml:"at_ms"`
	// X is the client x coordinate in logical pixels.
	X float64 `yaml:"x"`
	// Leave marks a pointer-leave event; X is ignored.
	Leave bool `yaml:"leave"`
}

func (p TracePoint) at() time.Duration {
	return time.Duration(p.AtMs) * time.Millisecond
}

// LoadTrace reads a YAML list of trace points.
func LoadTrace(fs afero.Fs, path string) ([]TracePoint, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, fmt.Errorf("export: read trace: %w", err)
	}

	var trace []TracePoint
	if err := yaml.Unmarshal(data, &trace); err != nil {
		return nil, fmt.Errorf("export: decode trace %s: %w", path, err)
	}
	for i, p := range trace {
		if p.AtMs < 0 {
			return nil, fmt.Errorf("export: trace %s: point %d: negative at_ms", path, i)
		}
	}
	return trace, nil
}

type ReplayParams struct {
	Fs    afero.Fs
	Dir   string
	Data  *dataset.Dataset
	Trace []TracePoint

	// Interval is the virtual frame period. Defaults to frame.DefaultInterval.
	Interval time.Duration

	Logger  *observability.CoreLogger
	Options []chart.Option
}

// Replay feeds a pointer trace to a renderer on a virtual clock and writes
// every painted frame to Dir as frame-NNNN.png.
//
// Frame 0 is the initial paint. Events strictly before a frame boundary
// are delivered before that frame fires, so several events within one
// interval produce a single frame. Returns the number of frames written.
func Replay(ctx context.Context, params ReplayParams) (int, error) {
	interval := params.Interval
	if interval <= 0 {
		interval = frame.DefaultInterval
	}
	logger := params.Logger
	if logger == nil {
		logger = observability.NewNoOpLogger()
	}

	trace := slices.Clone(params.Trace)
	slices.SortStableFunc(trace, func(a, b TracePoint) int {
		return cmp.Compare(a.AtMs, b.AtMs)
	})

	raster := surface.NewRaster(1, 1)
	queue := frame.NewQueue()
	opts := append(slices.Clone(params.Options),
		chart.WithScheduler(queue),
		chart.WithLogger(logger))

	r, err := chart.New(raster, params.Data, opts...)
	if err != nil {
		return 0, err
	}
	defer r.Destroy()

	if err := params.Fs.MkdirAll(params.Dir, 0o755); err != nil {
		return 0, fmt.Errorf("export: create %s: %w", params.Dir, err)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxEncoders)

	frames := 0
	emit := func() {
		path := filepath.Join(params.Dir, fmt.Sprintf("frame-%04d.png", frames))
		img := raster.Snapshot()
		frames++
		g.Go(func() error {
			return WritePNG(params.Fs, path, img)
		})
	}

	r.Init()
	emit()

	next := interval
	i := 0
	for i < len(trace) || queue.Pending() > 0 {
		if err := gctx.Err(); err != nil {
			break
		}

		// Skip idle frames up to the one following the next event.
		if queue.Pending() == 0 && trace[i].at() >= next {
			next = (trace[i].at()/interval + 1) * interval
		}

		for ; i < len(trace) && trace[i].at() < next; i++ {
			if trace[i].Leave {
				raster.DispatchPointerLeave()
			} else {
				raster.DispatchPointerMove(trace[i].X, 0)
			}
		}

		if queue.Flush(epoch.Add(next)) > 0 {
			emit()
		}
		next += interval
	}

	if err := g.Wait(); err != nil {
		return frames, err
	}
	if err := ctx.Err(); err != nil {
		return frames, err
	}

	logger.Debug("export: replay finished", "frames", frames, "events", len(trace))
	return frames, nil
}
