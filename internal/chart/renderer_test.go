package chart_test

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wandb/tschart/internal/chart"
	"github.com/wandb/tschart/internal/dataset"
	"github.com/wandb/tschart/internal/frame"
	"github.com/wandb/tschart/internal/geometry"
	"github.com/wandb/tschart/internal/geometry/geometrytest"
	"github.com/wandb/tschart/internal/observabilitytest"
	"github.com/wandb/tschart/internal/surface"
)

const gridColor = "#bbb"

// recordingSurface is a Raster whose drawing calls are recorded.
type recordingSurface struct {
	*surface.Raster
	rec *geometrytest.Recorder
}

func (s *recordingSurface) Context() geometry.Context { return s.rec }

func newRecordingSurface() *recordingSurface {
	return &recordingSurface{
		Raster: surface.NewRaster(1, 1),
		rec:    geometrytest.NewRecorder(),
	}
}

func sevenPoints() *dataset.Dataset {
	return &dataset.Dataset{
		Columns: []dataset.Column{
			{Key: "x", Values: []float64{1, 2, 3, 4, 5, 6, 7}},
			{Key: "y", Values: []float64{10, 20, 15, 25, 30, 5, 40}},
		},
		Types:  map[string]dataset.Kind{"x": dataset.KindX, "y": dataset.KindLine},
		Colors: map[string]string{"y": "#ff0000"},
	}
}

type fixture struct {
	surface  *recordingSurface
	queue    *frame.Queue
	renderer *chart.Renderer
}

func setup(t *testing.T, ds *dataset.Dataset, opts ...chart.Option) *fixture {
	t.Helper()

	f := &fixture{surface: newRecordingSurface(), queue: frame.NewQueue()}
	opts = append([]chart.Option{
		chart.WithScheduler(f.queue),
		chart.WithLogger(observabilitytest.NewTestLogger(t)),
	}, opts...)

	r, err := chart.New(f.surface, ds, opts...)
	require.NoError(t, err)
	f.renderer = r
	return f
}

func (f *fixture) rec() *geometrytest.Recorder { return f.surface.rec }

func TestNew_SizesSurface(t *testing.T) {
	f := setup(t, sevenPoints())

	w, h := f.surface.LogicalSize()
	assert.Equal(t, 600.0, w)
	assert.Equal(t, 200.0, h)

	bw, bh := f.surface.BufferSize()
	assert.Equal(t, 1200, bw)
	assert.Equal(t, 400, bh)

	assert.Equal(t, 2, f.surface.Listeners())
	assert.Empty(t, f.rec().Ops, "nothing is painted before Init")
}

func TestNew_RejectsInvalidDataset(t *testing.T) {
	ds := sevenPoints()
	delete(ds.Colors, "y")

	s := newRecordingSurface()
	_, err := chart.New(s, ds)

	require.Error(t, err)
	assert.ErrorIs(t, err, dataset.ErrMissingColor)
	var verr *dataset.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "y", verr.Column)
	assert.Zero(t, s.Listeners(), "no listeners on failure")
}

func TestNew_RejectsNilDataset(t *testing.T) {
	_, err := chart.New(newRecordingSurface(), nil)
	assert.ErrorIs(t, err, dataset.ErrNoLineColumns)
}

func TestNew_RejectsInvalidConfig(t *testing.T) {
	cfg := chart.DefaultConfig()
	cfg.Rows = 0

	_, err := chart.New(newRecordingSurface(), sevenPoints(), chart.WithConfig(cfg))
	assert.ErrorIs(t, err, chart.ErrInvalidConfig)
}

func TestInit_SevenPointScenario(t *testing.T) {
	f := setup(t, sevenPoints())
	f.renderer.Init()

	rec := f.rec()
	assert.Equal(t, 1, rec.Clears)

	lines := rec.StrokesWithColor("#ff0000")
	require.Len(t, lines, 1, "exactly one polyline")
	require.Len(t, lines[0].Points, 7)
	assert.Equal(t, 4.0, lines[0].LineWidth)

	// yMin=5 sits on the bottom padding, yMax=40 on the top padding.
	assert.Equal(t, [2]float64{0, 314}, lines[0].Points[0])
	assert.Equal(t, [2]float64{200, 222}, lines[0].Points[1])
	assert.Equal(t, [2]float64{1000, 360}, lines[0].Points[5])
	assert.Equal(t, 1200.0, lines[0].Points[6][0])
	assert.InDelta(t, 40, lines[0].Points[6][1], 1)
}

func TestInit_YAxis(t *testing.T) {
	f := setup(t, sevenPoints())
	f.renderer.Init()

	var labels []string
	var ys []float64
	for _, text := range f.rec().Texts {
		if text.Align != geometry.AlignEnd {
			continue
		}
		labels = append(labels, text.Value)
		ys = append(ys, text.Y)
		assert.Equal(t, 1195.0, text.X)
		assert.Equal(t, "#96a2aa", text.Color)
		assert.Equal(t, 20.0, text.Size)
	}
	assert.Equal(t, []string{"33", "26", "19", "12", "5"}, labels)
	assert.Equal(t, []float64{94, 158, 222, 286, 350}, ys)

	grid := f.rec().StrokesWithColor(gridColor)
	require.Len(t, grid, 1, "grid only, no guide line")
	assert.Len(t, grid[0].Points, 10)
	assert.Equal(t, 1.0, grid[0].LineWidth)
}

func TestInit_XAxisLabels(t *testing.T) {
	f := setup(t, dataset.Sample())
	f.renderer.Init()

	var labels []string
	for _, text := range f.rec().Texts {
		if text.Align == geometry.AlignStart {
			labels = append(labels, text.Value)
			assert.Equal(t, 390.0, text.Y)
		}
	}
	assert.Equal(t,
		[]string{"Mar 1", "Mar 8", "Mar 15", "Mar 22", "Mar 29", "Apr 5"},
		labels)
}

func TestInit_LabelLocation(t *testing.T) {
	ds := sevenPoints()
	// 2019-03-01T02:00:00Z is still February 28 at UTC-5.
	ds.Columns[0].Values[0] = float64(time.Date(2019, 3, 1, 2, 0, 0, 0, time.UTC).UnixMilli())

	cfg := chart.DefaultConfig()
	cfg.Location = time.FixedZone("EST", -5*60*60)

	f := setup(t, ds, chart.WithConfig(cfg))
	f.renderer.Init()

	for _, text := range f.rec().Texts {
		if text.Align == geometry.AlignStart {
			assert.Equal(t, "Feb 28", text.Value)
			return
		}
	}
	t.Fatal("no x label")
}

func TestHover_DrawsGuideAndCircle(t *testing.T) {
	f := setup(t, sevenPoints())
	f.renderer.Init()
	f.rec().Reset()

	f.surface.SetPosition(30, 0)
	f.surface.DispatchPointerMove(30+100, 5)

	x, ok := f.renderer.Pointer()
	require.True(t, ok)
	assert.Equal(t, 200.0, x)
	assert.Empty(t, f.rec().Ops, "paint waits for the frame")

	require.Equal(t, 1, f.queue.Flush(time.Now()))

	grid := f.rec().StrokesWithColor(gridColor)
	require.Len(t, grid, 2)
	assert.Equal(t, [][2]float64{{200, 20}, {200, 360}}, grid[1].Points)

	circles := f.rec().FillsWithColor("#ff0000")
	require.Len(t, circles, 1)
	assert.Equal(t, [][2]float64{{200, 222}}, circles[0].Points)
	assert.Equal(t, 1, circles[0].Arcs)

	h, ok := f.renderer.Hover()
	require.True(t, ok)
	assert.Equal(t, 1, h.Index)
	assert.Equal(t, 100.0, h.Left)
	assert.Equal(t, 111.0, h.Top)
	require.Len(t, h.Values, 1)
	assert.Equal(t, chart.SeriesValue{Key: "y", Name: "y", Color: "#ff0000", Value: 20}, h.Values[0])
	assert.Equal(t, time.UnixMilli(2).UTC(), h.Time)
}

func TestHover_CircleOnEverySeries(t *testing.T) {
	f := setup(t, dataset.Sample())
	f.surface.DispatchPointerMove(0, 0)
	f.queue.Flush(time.Now())

	assert.Len(t, f.rec().FillsWithColor("#3DC23F"), 1)
	assert.Len(t, f.rec().FillsWithColor("#F34C44"), 1)

	h, ok := f.renderer.Hover()
	require.True(t, ok)
	assert.Zero(t, h.Index)
	assert.Equal(t, "Joined", h.Values[0].Name)
	assert.Equal(t, "Left", h.Values[1].Name)
}

func TestHover_NullPointerDrawsNothing(t *testing.T) {
	f := setup(t, sevenPoints())
	f.surface.DispatchPointerMove(100, 0)
	f.queue.Flush(time.Now())
	require.Len(t, f.rec().FillsWithColor("#ff0000"), 1)

	f.rec().Reset()
	f.surface.DispatchPointerLeave()
	f.queue.Flush(time.Now())

	assert.Len(t, f.rec().StrokesWithColor(gridColor), 1, "grid without guide")
	assert.Empty(t, f.rec().Fills)
	assert.Len(t, f.rec().StrokesWithColor("#ff0000"), 1)

	_, ok := f.renderer.Hover()
	assert.False(t, ok)
	_, ok = f.renderer.Pointer()
	assert.False(t, ok)
}

func TestHover_CoalescesIntoOneFrame(t *testing.T) {
	m, err := chart.NewMetrics(prometheus.NewRegistry())
	require.NoError(t, err)
	f := setup(t, sevenPoints(), chart.WithMetrics(m))

	f.surface.DispatchPointerMove(10, 0)
	f.surface.DispatchPointerMove(400, 0)
	f.surface.DispatchPointerMove(590, 0)

	assert.Equal(t, 1, f.queue.Pending())
	assert.Equal(t, 1, f.queue.Flush(time.Now()))
	assert.Equal(t, 1, f.rec().Clears)

	h, ok := f.renderer.Hover()
	require.True(t, ok)
	assert.Equal(t, 6, h.Index, "the frame sees the last write")

	assert.Equal(t, 1.0, testutil.ToFloat64(m.FramesPainted))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.PointerWrites))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.FrameRequests))
	assert.Equal(t, 1, testutil.CollectAndCount(m.PaintDuration))
}

func TestDestroy_CancelsPendingFrame(t *testing.T) {
	f := setup(t, sevenPoints())
	f.surface.DispatchPointerMove(100, 0)
	require.Equal(t, 1, f.queue.Pending())

	f.renderer.Destroy()

	assert.Zero(t, f.queue.Pending())
	assert.Zero(t, f.queue.Flush(time.Now()))
	assert.Empty(t, f.rec().Ops)
	assert.True(t, f.renderer.Destroyed())
}

func TestDestroy_Twice(t *testing.T) {
	f := setup(t, sevenPoints())
	f.renderer.Init()
	f.rec().Reset()

	f.renderer.Destroy()
	f.renderer.Destroy()
	assert.Zero(t, f.surface.Listeners())

	f.surface.DispatchPointerMove(100, 0)
	f.surface.DispatchPointerLeave()
	f.renderer.Init()

	assert.Zero(t, f.queue.Pending())
	assert.Empty(t, f.rec().Ops, "no drawing after Destroy")
}

func TestPaint_FlatSeries(t *testing.T) {
	ds := sevenPoints()
	ds.Columns[1].Values = []float64{10, 10, 10, 10, 10, 10, 10}

	f := setup(t, ds)
	f.renderer.Init()

	lines := f.rec().StrokesWithColor("#ff0000")
	require.Len(t, lines, 1)
	for _, p := range lines[0].Points {
		assert.Equal(t, 200.0, p[1])
	}

	var labels []string
	for _, text := range f.rec().Texts {
		if text.Align == geometry.AlignEnd {
			labels = append(labels, text.Value)
		}
	}
	assert.Equal(t, []string{"10", "10", "10", "10", "10"}, labels)
}

func TestPaint_TwoSamples(t *testing.T) {
	ds := &dataset.Dataset{
		Columns: []dataset.Column{
			{Key: "x", Values: []float64{0, 86400000}},
			{Key: "y", Values: []float64{1, 2}},
		},
		Types:  map[string]dataset.Kind{"x": dataset.KindX, "y": dataset.KindLine},
		Colors: map[string]string{"y": "#000000"},
	}
	f := setup(t, ds)
	f.renderer.Init()

	lines := f.rec().StrokesWithColor("#000000")
	require.Len(t, lines, 1)
	assert.Equal(t, [][2]float64{{0, 360}, {1200, 40}}, lines[0].Points)
}

func TestPaint_RealSurface(t *testing.T) {
	raster := surface.NewRaster(1, 1)
	r, err := chart.New(raster, dataset.Sample())
	require.NoError(t, err)
	r.Init()

	img := raster.Snapshot()
	assert.Equal(t, 1200, img.Bounds().Dx())
	assert.Equal(t, 400, img.Bounds().Dy())

	painted := 0
	for i := 3; i < len(img.Pix); i += 4 {
		if img.Pix[i] != 0 {
			painted++
		}
	}
	assert.Positive(t, painted)
}

func TestNewMetrics_ReusesRegistered(t *testing.T) {
	reg := prometheus.NewRegistry()
	a, err := chart.NewMetrics(reg)
	require.NoError(t, err)
	b, err := chart.NewMetrics(reg)
	require.NoError(t, err)

	a.FramesPainted.Inc()
	assert.Equal(t, 1.0, testutil.ToFloat64(b.FramesPainted))
}

func TestNew_LogsCreation(t *testing.T) {
	logger, buf := observabilitytest.NewRecordingTestLogger(t)
	_, err := chart.New(newRecordingSurface(), sevenPoints(), chart.WithLogger(logger))
	require.NoError(t, err)

	logs := observabilitytest.ExtractLogs(t, buf)
	require.NotEmpty(t, logs)
	assert.Equal(t, "chart: created renderer", logs[0]["msg"])
	assert.Equal(t, 1.0, logs[0]["series"])
	assert.Equal(t, 7.0, logs[0]["samples"])
}
