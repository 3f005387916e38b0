package geometry_test

import (
	"fmt"
	"math"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wandb/tschart/internal/dataset"
	"github.com/wandb/tschart/internal/geometry"
	"github.com/wandb/tschart/internal/geometry/geometrytest"
)

func randomDataset(r *rand.Rand, lines, samples int) *dataset.Dataset {
	ds := &dataset.Dataset{
		Types:  map[string]dataset.Kind{"x": dataset.KindX},
		Colors: map[string]string{},
	}
	xs := make([]float64, samples)
	for i := range xs {
		// Huge timestamps must not leak into the y boundaries.
		xs[i] = 1e12 + float64(i)
	}
	ds.Columns = append(ds.Columns, dataset.Column{Key: "x", Values: xs})

	for l := range lines {
		key := fmt.Sprintf("y%d", l)
		vs := make([]float64, samples)
		for i := range vs {
			vs[i] = r.NormFloat64() * 1000
		}
		ds.Columns = append(ds.Columns, dataset.Column{Key: key, Values: vs})
		ds.Types[key] = dataset.KindLine
		ds.Colors[key] = "#123456"
	}
	return ds
}

func TestComputeBoundaries_MatchesReferenceScan(t *testing.T) {
	r := rand.New(rand.NewPCG(1, 2))

	for iter := range 200 {
		ds := randomDataset(r, 2+r.IntN(4), 2+r.IntN(50))

		wantMin, wantMax := math.Inf(1), math.Inf(-1)
		for _, col := range ds.Lines() {
			for _, v := range col.Values {
				wantMin = math.Min(wantMin, v)
				wantMax = math.Max(wantMax, v)
			}
		}

		yMin, yMax, err := geometry.ComputeBoundaries(ds)
		require.NoError(t, err)
		require.LessOrEqual(t, yMin, yMax, "iteration %d", iter)
		require.Equal(t, wantMin, yMin, "iteration %d", iter)
		require.Equal(t, wantMax, yMax, "iteration %d", iter)
	}
}

func TestComputeBoundaries_Scenario(t *testing.T) {
	ds := &dataset.Dataset{
		Columns: []dataset.Column{
			{Key: "x", Values: []float64{1, 2, 3, 4, 5, 6, 7}},
			{Key: "y", Values: []float64{10, 20, 15, 25, 30, 5, 40}},
		},
		Types:  map[string]dataset.Kind{"x": dataset.KindX, "y": dataset.KindLine},
		Colors: map[string]string{"y": "#ff0000"},
	}

	yMin, yMax, err := geometry.ComputeBoundaries(ds)
	require.NoError(t, err)
	assert.Equal(t, 5.0, yMin)
	assert.Equal(t, 40.0, yMax)
}

func TestComputeBoundaries_AllEqual(t *testing.T) {
	ds := &dataset.Dataset{
		Columns: []dataset.Column{
			{Key: "x", Values: []float64{1, 2}},
			{Key: "y", Values: []float64{3, 3}},
		},
		Types: map[string]dataset.Kind{"x": dataset.KindX, "y": dataset.KindLine},
	}
	yMin, yMax, err := geometry.ComputeBoundaries(ds)
	require.NoError(t, err)
	assert.Equal(t, yMin, yMax)
}

func TestComputeBoundaries_NoLines(t *testing.T) {
	ds := &dataset.Dataset{
		Columns: []dataset.Column{{Key: "x", Values: []float64{1, 2}}},
		Types:   map[string]dataset.Kind{"x": dataset.KindX},
	}
	_, _, err := geometry.ComputeBoundaries(ds)
	require.ErrorIs(t, err, dataset.ErrNoLineColumns)
}

func TestIsOver_NilPointerNeverMatches(t *testing.T) {
	r := rand.New(rand.NewPCG(3, 4))
	for range 500 {
		x := r.Float64()*4000 - 1000
		length := r.IntN(100)
		width := r.Float64() * 2000
		require.False(t, geometry.IsOver(nil, x, length, width))
	}
}

func TestIsOver_SelfHit(t *testing.T) {
	const width = 1200.0
	for length := 2; length < 200; length++ {
		ratio := width / float64(length-1)
		for i := range length {
			x := math.Floor(float64(i) * ratio)
			require.True(t,
				geometry.IsOver(&geometry.Pointer{X: x}, x, length, width),
				"length=%d index=%d", length, i)
		}
	}
}

// Every device pixel of the surface belongs to exactly one sample.
func TestIsOver_RegionsTileTheSurface(t *testing.T) {
	const width = 1200.0
	for _, length := range []int{2, 3, 7, 42, 113, 600} {
		ratio := width / float64(length-1)
		xs := make([]float64, length)
		for i := range xs {
			xs[i] = math.Floor(float64(i) * ratio)
		}

		for px := 0; px < int(width); px++ {
			hits := 0
			for _, x := range xs {
				if geometry.IsOver(&geometry.Pointer{X: float64(px)}, x, length, width) {
					hits++
				}
			}
			require.Equal(t, 1, hits, "length=%d pixel=%d", length, px)
		}
	}
}

func TestIsOver_HalfSlot(t *testing.T) {
	// 5 samples over 400px: centres at 0, 100, 200, 300, 400.
	p := func(x float64) *geometry.Pointer { return &geometry.Pointer{X: x} }

	assert.True(t, geometry.IsOver(p(149.9), 100, 5, 400))
	assert.False(t, geometry.IsOver(p(150), 100, 5, 400), "upper bound is exclusive")
	assert.True(t, geometry.IsOver(p(150), 200, 5, 400))
	assert.True(t, geometry.IsOver(p(50), 100, 5, 400), "lower bound is inclusive")
	assert.False(t, geometry.IsOver(p(100), 100, 1, 400), "single sample axis")
}

func TestTransformIsMonotonic(t *testing.T) {
	r := rand.New(rand.NewPCG(5, 6))
	for range 100 {
		ratio := r.Float64() * 50
		prev := math.Inf(-1)
		for i := range 500 {
			x := math.Floor(float64(i) * ratio)
			require.GreaterOrEqual(t, x, prev)
			prev = x
		}
	}
}

func TestLine(t *testing.T) {
	rec := geometrytest.NewRecorder()
	coords := []geometry.Point{{0, 10}, {5, 20}, {10, 5}}

	geometry.Line(rec, coords, geometry.LineStyle{Color: "#ff0000", Width: 4})

	require.Len(t, rec.Strokes, 1)
	assert.Empty(t, rec.Fills)
	stroke := rec.Strokes[0]
	assert.Equal(t, "#ff0000", stroke.Color)
	assert.Equal(t, 4.0, stroke.LineWidth)
	assert.Equal(t, [][2]float64{{0, 10}, {5, 20}, {10, 5}}, stroke.Points)
}

func TestLine_KeepsWidthWhenUnset(t *testing.T) {
	rec := geometrytest.NewRecorder()
	rec.SetLineWidth(3)

	geometry.Line(rec, []geometry.Point{{0, 0}, {1, 1}}, geometry.LineStyle{Color: "#000"})

	require.Len(t, rec.Strokes, 1)
	assert.Equal(t, 3.0, rec.Strokes[0].LineWidth)
}

func TestLine_Empty(t *testing.T) {
	rec := geometrytest.NewRecorder()
	geometry.Line(rec, nil, geometry.LineStyle{Color: "#000"})
	assert.Empty(t, rec.Ops)
}

func TestCircle(t *testing.T) {
	rec := geometrytest.NewRecorder()
	geometry.Circle(rec, geometry.Point{X: 7, Y: 9}, "#00ff00", 5)

	require.Len(t, rec.Fills, 1)
	assert.Empty(t, rec.Strokes)
	fill := rec.Fills[0]
	assert.Equal(t, "#00ff00", fill.Color)
	assert.Equal(t, 1, fill.Arcs)
	assert.Equal(t, [][2]float64{{7, 9}}, fill.Points)
}
