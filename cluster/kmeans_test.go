package cluster

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/YuminosukeSato/mlboard/dataset"
	"github.com/YuminosukeSato/mlboard/geom"
	"github.com/YuminosukeSato/mlboard/pkg/errors"
)

func twoClusters(t *testing.T) []geom.Point {
	t.Helper()
	points, err := dataset.Preset("two-clusters")
	require.NoError(t, err)
	return points
}

func TestRunTwoClusters(t *testing.T) {
	points := twoClusters(t)
	km := NewKMeans(WithK(2), WithRandomState(7))
	require.NoError(t, km.Init(points))

	// One seed per triple; Run keeps pre-seeded centroids.
	km.centroids = []geom.Point{points[0], points[5]}
	require.NoError(t, km.Run())

	assert.True(t, km.Converged())
	assert.Len(t, km.Centroids(), 2)

	// The preset is two well-separated triples; each triple must land
	// in its own cluster.
	a := km.Assignments()
	require.Len(t, a, 6)
	assert.Equal(t, a[0], a[1])
	assert.Equal(t, a[0], a[2])
	assert.Equal(t, a[3], a[4])
	assert.Equal(t, a[3], a[5])
	assert.NotEqual(t, a[0], a[3])
}

func TestRunDeterministicWithSeed(t *testing.T) {
	run := func() ([]geom.Point, []int) {
		km := NewKMeans(WithK(2), WithRandomState(42))
		require.NoError(t, km.Init(twoClusters(t)))
		require.NoError(t, km.Run())
		return km.Centroids(), km.Assignments()
	}

	c1, a1 := run()
	c2, a2 := run()
	assert.Equal(t, c1, c2)
	assert.Equal(t, a1, a2)
}

func TestWCSSNonIncreasing(t *testing.T) {
	points, err := dataset.Generate(dataset.GenerateOptions{
		Count: 40, Width: 700, Height: 500,
		Pattern: dataset.PatternClusters, Seed: 11,
	})
	require.NoError(t, err)

	km := NewKMeans(WithK(3), WithRandomState(11))
	require.NoError(t, km.Init(points))
	require.NoError(t, km.Run())

	history := km.History()
	require.NotEmpty(t, history)
	for i := 1; i < len(history); i++ {
		assert.LessOrEqual(t, history[i].WCSS, history[i-1].WCSS+1e-9,
			"WCSS rose between iterations %d and %d", i-1, i)
	}
}

// Once converged, another assign-update pass must change nothing.
func TestConvergenceIsFixedPoint(t *testing.T) {
	km := NewKMeans(WithK(2), WithRandomState(3))
	require.NoError(t, km.Init(twoClusters(t)))
	require.NoError(t, km.Run())
	require.True(t, km.Converged())

	before := km.Centroids()
	changed := km.AssignPoints()
	km.UpdateCentroids()

	assert.False(t, changed)
	assert.Equal(t, before, km.Centroids())
}

// The manual cycle is keyed on the step count modulo three and starts
// every cycle by re-seeding: seed, assign, update, then seed again.
// The first assign pass always reports a change (all points start
// unassigned), so step four is deterministically another seeding.
func TestStepCycleReseeds(t *testing.T) {
	km := NewKMeans(WithK(2), WithRandomState(9))
	require.NoError(t, km.Init(twoClusters(t)))

	wantPrefixes := []string{"Seeded", "Assigned", "Moved", "Seeded"}
	for i, prefix := range wantPrefixes {
		res, err := km.Step()
		require.NoError(t, err, "step %d", i)
		assert.Contains(t, res.Description, prefix, "step %d", i)
		assert.False(t, res.Done, "step %d", i)
	}
}

func TestStepAfterConvergence(t *testing.T) {
	km := NewKMeans(WithK(2), WithRandomState(5))
	require.NoError(t, km.Init(twoClusters(t)))
	require.NoError(t, km.Run())

	iterations := km.Iterations()
	res, err := km.Step()
	require.NoError(t, err)
	assert.True(t, res.Done)
	assert.Equal(t, iterations, km.Iterations(), "terminal step must not iterate")
}

func TestKClampedToDataset(t *testing.T) {
	km := NewKMeans(WithK(10), WithRandomState(1))
	points := []geom.Point{geom.NewPoint(1, 1), geom.NewPoint(2, 2), geom.NewPoint(3, 3)}
	require.NoError(t, km.Init(points))
	require.NoError(t, km.Run())

	assert.Len(t, km.Centroids(), 3)
}

// A non-positive k passed through the unvalidated option still yields
// one centroid instead of an empty slice that AssignPoints would trip
// over.
func TestKClampedToAtLeastOne(t *testing.T) {
	for _, k := range []int{0, -3} {
		km := NewKMeans(WithK(k), WithRandomState(1))
		points := []geom.Point{geom.NewPoint(1, 1), geom.NewPoint(2, 2)}
		require.NoError(t, km.Init(points))
		require.NoError(t, km.Run())

		assert.Len(t, km.Centroids(), 1, "k=%d", k)
		assert.True(t, km.Converged())
	}
}

func TestRunEmptyDataset(t *testing.T) {
	km := NewKMeans()
	require.NoError(t, km.Init(nil))

	var ide *errors.InsufficientDataError
	assert.ErrorAs(t, km.Run(), &ide)
	_, err := km.Step()
	assert.ErrorAs(t, err, &ide)
}

// Equidistant centroids must not flip-flop a point between them: the
// lowest centroid index wins ties.
func TestAssignTieBreak(t *testing.T) {
	km := NewKMeans(WithK(2), WithRandomState(1))
	points := []geom.Point{
		geom.NewPoint(0, 0), geom.NewPoint(10, 0),
		geom.NewPoint(5, 0), // equidistant from both seeds
	}
	require.NoError(t, km.Init(points))

	km.centroids = []geom.Point{geom.NewPoint(0, 0), geom.NewPoint(10, 0)}
	km.AssignPoints()

	assert.Equal(t, 0, km.Assignments()[2])
}

func TestReset(t *testing.T) {
	km := NewKMeans(WithK(2), WithRandomState(2))
	require.NoError(t, km.Init(twoClusters(t)))
	require.NoError(t, km.Run())

	km.Reset()
	assert.Nil(t, km.Centroids())
	assert.Empty(t, km.History())
	assert.False(t, km.Converged())
	assert.Equal(t, 0, km.Iterations())
	for _, a := range km.Assignments() {
		assert.Equal(t, Unassigned, a)
	}

	require.NoError(t, km.Run())
	assert.True(t, km.Converged())
}

func TestSetParam(t *testing.T) {
	km := NewKMeans()

	require.NoError(t, km.SetParam("k", 5))
	require.NoError(t, km.SetParam("maxIterations", 100))

	assert.Error(t, km.SetParam("k", 0))
	assert.Error(t, km.SetParam("k", 99))
	assert.Error(t, km.SetParam("bogus", 1))
}
