package controller

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/YuminosukeSato/mlboard/cluster"
	"github.com/YuminosukeSato/mlboard/core/algorithm"
	"github.com/YuminosukeSato/mlboard/dataset"
	"github.com/YuminosukeSato/mlboard/geom"
	"github.com/YuminosukeSato/mlboard/regression"
	"github.com/YuminosukeSato/mlboard/tree"
)

// recordingSurface counts draw calls; enough to assert that Redraw
// painted something sensible without rasterizing.
type recordingSurface struct {
	points    int
	lines     int
	rects     int
	texts     int
	centroids int
}

func (r *recordingSurface) DrawPoint(x, y, radius float64, c color.Color) { r.points++ }

func (r *recordingSurface) DrawLine(x1, y1, x2, y2, w float64, c color.Color) { r.lines++ }

func (r *recordingSurface) DrawRect(rect geom.Rect, c color.Color, fill bool) { r.rects++ }

func (r *recordingSurface) DrawText(s string, x, y float64, c color.Color) { r.texts++ }

func (r *recordingSurface) DrawCentroid(x, y float64, i int, c color.Color) { r.centroids++ }

func TestSelectAlgorithm(t *testing.T) {
	c := New(700, 500)
	require.NoError(t, c.LoadPreset("linear-trend"))

	tests := []struct {
		kind algorithm.Kind
		ok   func(a algorithm.Algorithm) bool
	}{
		{algorithm.KindLinearRegression, func(a algorithm.Algorithm) bool { _, ok := a.(*regression.LinearRegression); return ok }},
		{algorithm.KindKMeans, func(a algorithm.Algorithm) bool { _, ok := a.(*cluster.KMeans); return ok }},
		{algorithm.KindDecisionTree, func(a algorithm.Algorithm) bool { _, ok := a.(*tree.DecisionTree); return ok }},
	}
	for _, tt := range tests {
		require.NoError(t, c.SelectAlgorithm(tt.kind))
		assert.True(t, tt.ok(c.Algorithm()), "wrong concrete type for %v", tt.kind)
		assert.Equal(t, tt.kind, c.Algorithm().Kind())
	}

	assert.Error(t, c.SelectAlgorithm(algorithm.Kind(99)))
}

// Sessions are independent: each controller owns its own algorithm
// instances and dataset.
func TestSessionsAreIsolated(t *testing.T) {
	a := New(700, 500)
	b := New(700, 500)

	assert.NotEqual(t, a.ID(), b.ID())

	require.NoError(t, a.LoadPreset("two-clusters"))
	require.NoError(t, a.SelectAlgorithm(algorithm.KindKMeans))
	require.NoError(t, b.SelectAlgorithm(algorithm.KindKMeans))

	assert.NotSame(t, a.Algorithm(), b.Algorithm())
	assert.Len(t, a.Points(), 6)
	assert.Empty(t, b.Points())
}

func TestRunRegressionSession(t *testing.T) {
	c := New(700, 500)
	require.NoError(t, c.LoadPreset("linear-trend"))
	require.NoError(t, c.SelectAlgorithm(algorithm.KindLinearRegression))
	require.NoError(t, c.Run())

	lr := c.Algorithm().(*regression.LinearRegression)
	assert.True(t, lr.IsComplete())
	assert.Less(t, lr.Model().Slope, 0.0, "linear-trend runs downhill in canvas coordinates")

	stats := c.Stats()
	assert.NotEmpty(t, stats)
}

// Any dataset change re-initializes the active algorithm from scratch.
func TestDatasetChangeReinitializes(t *testing.T) {
	c := New(700, 500, WithRandomState(7))
	require.NoError(t, c.LoadPreset("two-clusters"))
	require.NoError(t, c.SelectAlgorithm(algorithm.KindKMeans))
	require.NoError(t, c.Run())

	km := c.Algorithm().(*cluster.KMeans)
	require.True(t, km.Converged())

	require.NoError(t, c.AddPoint(350, 250))
	assert.False(t, km.Converged(), "adding a point must reset derived state")
	assert.Len(t, c.Points(), 7)
	assert.Len(t, km.Assignments(), 7)
}

func TestStepWithoutAlgorithm(t *testing.T) {
	c := New(700, 500)

	_, err := c.Step()
	assert.Error(t, err)
	assert.Error(t, c.Run())
	assert.Error(t, c.SetParam("k", 3))
	assert.Nil(t, c.Params())
	assert.Nil(t, c.Stats())
}

func TestGenerateFillsCanvasSize(t *testing.T) {
	c := New(700, 500)
	require.NoError(t, c.Generate(dataset.GenerateOptions{Count: 12, Seed: 5}))

	points := c.Points()
	require.Len(t, points, 12)
	for _, p := range points {
		assert.True(t, p.X >= 0 && p.X <= 700 && p.Y >= 0 && p.Y <= 500,
			"point (%v, %v) outside the session canvas", p.X, p.Y)
	}
}

func TestRedraw(t *testing.T) {
	c := New(700, 500)
	require.NoError(t, c.LoadPreset("linear-trend"))

	// No algorithm selected: just the points.
	s := &recordingSurface{}
	c.Redraw(s)
	assert.Equal(t, 10, s.points)

	require.NoError(t, c.SelectAlgorithm(algorithm.KindLinearRegression))
	require.NoError(t, c.Run())

	s = &recordingSurface{}
	c.Redraw(s)
	assert.GreaterOrEqual(t, s.points, 10)
	assert.Greater(t, s.lines, 0, "the fitted line should be drawn")
	assert.Greater(t, s.texts, 0, "the equation should be drawn")
}

func TestClear(t *testing.T) {
	c := New(700, 500)
	require.NoError(t, c.LoadPreset("three-clusters"))
	require.NoError(t, c.Clear())
	assert.Empty(t, c.Points())
}

func TestTickExpiresPulse(t *testing.T) {
	c := New(700, 500)
	require.NoError(t, c.AddPoint(100, 100))
	require.True(t, c.pulseActive)

	c.Tick(0.5)
	assert.True(t, c.pulseActive)
	c.Tick(0.6)
	assert.False(t, c.pulseActive)
}
