// Package cluster implements step-wise K-means clustering over 2D
// canvas points.
package cluster

import (
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"github.com/YuminosukeSato/mlboard/core/algorithm"
	"github.com/YuminosukeSato/mlboard/geom"
	"github.com/YuminosukeSato/mlboard/pkg/errors"
	mllog "github.com/YuminosukeSato/mlboard/pkg/log"
)

// Unassigned marks a point that has not been assigned to any cluster.
const Unassigned = -1

// Snapshot is a full clustering state recorded after one iteration.
type Snapshot struct {
	Centroids   []geom.Point
	Assignments []int
	WCSS        float64
	Changed     bool
}

// phase names the three stages of the manual stepping cycle.
type phase int

const (
	phaseSeed phase = iota
	phaseAssign
	phaseUpdate
)

// KMeans clusters points into k groups by iterating nearest-centroid
// assignment and centroid recomputation.
//
// Centroid seeding samples k distinct point indices uniformly at
// random, so two runs differ unless a random state is fixed: the
// nondeterminism is intrinsic to the algorithm, not a defect.
//
// Not safe for concurrent use.
type KMeans struct {
	algorithm.Base

	// Hyperparameters.
	k             int
	maxIterations int
	randomState   int64

	points      []geom.Point
	centroids   []geom.Point
	assignments []int
	history     []Snapshot
	iterations  int
	converged   bool

	stepCount   int
	lastChanged bool

	rng *rand.Rand
}

// Option configures a KMeans.
type Option func(*KMeans)

// WithK sets the requested number of clusters.
func WithK(k int) Option {
	return func(km *KMeans) {
		km.k = k
	}
}

// WithMaxIterations sets the iteration cap for Run.
func WithMaxIterations(n int) Option {
	return func(km *KMeans) {
		km.maxIterations = n
	}
}

// WithRandomState fixes the random seed. A negative value (the
// default) seeds from the clock.
func WithRandomState(seed int64) Option {
	return func(km *KMeans) {
		km.randomState = seed
	}
}

// NewKMeans creates a K-means module with default tunables (k=3,
// maxIterations=50, clock-seeded randomness).
func NewKMeans(options ...Option) *KMeans {
	km := &KMeans{
		k:             3,
		maxIterations: 50,
		randomState:   -1,
	}
	for _, opt := range options {
		opt(km)
	}

	if km.randomState >= 0 {
		km.rng = rand.New(rand.NewSource(km.randomState))
	} else {
		km.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return km
}

// Kind implements algorithm.Algorithm.
func (km *KMeans) Kind() algorithm.Kind {
	return algorithm.KindKMeans
}

// Init seeds the module with a fresh copy of points and discards all
// derived state. The effective cluster count is clamped to
// min(k, len(points)).
func (km *KMeans) Init(points []geom.Point) error {
	km.points = geom.ClonePoints(points)
	if km.k > len(km.points) && len(km.points) > 0 {
		km.k = len(km.points)
	}

	km.centroids = nil
	km.assignments = newUnassigned(len(km.points))
	km.history = nil
	km.iterations = 0
	km.converged = false
	km.stepCount = 0
	km.lastChanged = false
	km.ClearState()
	km.SetInitialized()

	slog.Debug("kmeans initialized",
		mllog.AlgorithmKey, km.Kind().String(),
		mllog.OperationKey, mllog.OperationInit,
		mllog.PointsKey, len(km.points),
		"k", km.k,
	)
	return nil
}

func newUnassigned(n int) []int {
	a := make([]int, n)
	for i := range a {
		a[i] = Unassigned
	}
	return a
}

// InitializeCentroids samples k distinct point indices uniformly at
// random without replacement and copies those points as the initial
// centroids.
func (km *KMeans) InitializeCentroids() error {
	if !km.IsInitialized() {
		return errors.NewNotFittedError("KMeans", "InitializeCentroids")
	}
	if len(km.points) == 0 {
		return errors.NewInsufficientDataError("KMeans", 1, 0)
	}
	// k may have been set outside the validated range via options or
	// SetParam after Init; re-clamp so the permutation below always
	// has enough indices and at least one centroid exists.
	if km.k < 1 {
		km.k = 1
	}
	if km.k > len(km.points) {
		km.k = len(km.points)
	}

	perm := km.rng.Perm(len(km.points))
	km.centroids = make([]geom.Point, km.k)
	for i := 0; i < km.k; i++ {
		p := km.points[perm[i]]
		km.centroids[i] = geom.NewPoint(p.X, p.Y)
	}
	return nil
}

// AssignPoints assigns every point to its nearest centroid by Euclidean
// distance and reports whether any assignment changed. Ties break to
// the lowest centroid index: the comparison uses strict less-than, so
// an equally distant later centroid never wins.
func (km *KMeans) AssignPoints() bool {
	changed := false
	for i, p := range km.points {
		best := 0
		bestDist := geom.SquaredDistance(p, km.centroids[0])
		for c := 1; c < len(km.centroids); c++ {
			if d := geom.SquaredDistance(p, km.centroids[c]); d < bestDist {
				bestDist = d
				best = c
			}
		}
		if km.assignments[i] != best {
			km.assignments[i] = best
			changed = true
		}
	}
	return changed
}

// UpdateCentroids moves each centroid to the mean of its assigned
// points. A cluster that lost all of its points keeps its previous
// centroid, preventing a collapse to NaN.
func (km *KMeans) UpdateCentroids() {
	members := make([][]geom.Point, len(km.centroids))
	for i, p := range km.points {
		if a := km.assignments[i]; a != Unassigned {
			members[a] = append(members[a], p)
		}
	}
	for c := range km.centroids {
		if len(members[c]) == 0 {
			errors.Warn(errors.NewEmptyClusterWarning(c, km.iterations))
			continue
		}
		km.centroids[c] = geom.Mean(members[c])
	}
}

// Run iterates assign-update until no assignment changes or the
// iteration cap is reached, recording a full snapshot per iteration.
func (km *KMeans) Run() error {
	if !km.IsInitialized() {
		return errors.NewNotFittedError("KMeans", "Run")
	}
	if len(km.points) == 0 {
		return errors.NewInsufficientDataError("KMeans", 1, 0)
	}

	if km.centroids == nil {
		if err := km.InitializeCentroids(); err != nil {
			return err
		}
	}

	for iter := 0; iter < km.maxIterations; iter++ {
		changed := km.AssignPoints()
		km.UpdateCentroids()
		km.iterations++
		km.recordSnapshot(changed)

		if !changed {
			km.converged = true
			break
		}
	}

	if !km.converged {
		errors.Warn(errors.NewConvergenceWarning("KMeans", km.maxIterations, ""))
	}
	km.SetComplete()

	slog.Debug("kmeans finished",
		mllog.AlgorithmKey, km.Kind().String(),
		mllog.OperationKey, mllog.OperationRun,
		mllog.IterationKey, km.iterations,
		mllog.ConvergedKey, km.converged,
		mllog.WCSSKey, km.WCSS(),
	)
	return nil
}

func (km *KMeans) recordSnapshot(changed bool) {
	km.history = append(km.history, Snapshot{
		Centroids:   geom.ClonePoints(km.centroids),
		Assignments: append([]int(nil), km.assignments...),
		WCSS:        km.WCSS(),
		Changed:     changed,
	})
}

// Step advances the manual cycle by one phase, keyed on the step count
// modulo three: seed centroids, assign points, update centroids. Each
// new cycle draws fresh random centroids, so stepping keeps re-seeding
// until an assign pass reports no change against the previous cycle's
// assignments.
func (km *KMeans) Step() (algorithm.StepResult, error) {
	if !km.IsInitialized() {
		return algorithm.StepResult{}, errors.NewNotFittedError("KMeans", "Step")
	}
	if km.converged {
		return algorithm.StepResult{
			Description: fmt.Sprintf("Complete: converged after %d iterations.", km.iterations),
			Done:        true,
		}, nil
	}
	if len(km.points) == 0 {
		return algorithm.StepResult{}, errors.NewInsufficientDataError("KMeans", 1, 0)
	}

	var res algorithm.StepResult
	switch phase(km.stepCount % 3) {
	case phaseSeed:
		if err := km.InitializeCentroids(); err != nil {
			return algorithm.StepResult{}, err
		}
		res.Description = fmt.Sprintf("Seeded %d centroids from randomly chosen points.", km.k)

	case phaseAssign:
		km.lastChanged = km.AssignPoints()
		if km.lastChanged {
			res.Description = "Assigned each point to its nearest centroid; some assignments changed."
		} else {
			res.Description = "Assigned each point to its nearest centroid; nothing changed."
		}

	case phaseUpdate:
		km.UpdateCentroids()
		km.iterations++
		km.recordSnapshot(km.lastChanged)
		res.Description = fmt.Sprintf("Moved centroids to their cluster means (iteration %d, WCSS %.1f).", km.iterations, km.WCSS())

		if !km.lastChanged {
			km.converged = true
			km.SetComplete()
			res.Description = fmt.Sprintf("Converged after %d iterations: no assignment changed.", km.iterations)
			res.Done = true
		}
	}
	km.stepCount++

	slog.Debug("kmeans step",
		mllog.AlgorithmKey, km.Kind().String(),
		mllog.OperationKey, mllog.OperationStep,
		mllog.StepKey, km.stepCount,
		mllog.IterationKey, km.iterations,
	)
	return res, nil
}

// Reset discards centroids, assignments and history but keeps the
// point set.
func (km *KMeans) Reset() {
	km.centroids = nil
	km.assignments = newUnassigned(len(km.points))
	km.history = nil
	km.iterations = 0
	km.converged = false
	km.stepCount = 0
	km.lastChanged = false
	km.ResetProgress()
}

// WCSS returns the within-cluster sum of squared distances from each
// assigned point to its centroid. Unassigned points contribute nothing.
func (km *KMeans) WCSS() float64 {
	var sum float64
	for i, p := range km.points {
		if a := km.assignments[i]; a != Unassigned {
			sum += geom.SquaredDistance(p, km.centroids[a])
		}
	}
	return sum
}

// Centroids returns a copy of the current centroids.
func (km *KMeans) Centroids() []geom.Point {
	return geom.ClonePoints(km.centroids)
}

// Assignments returns a copy of the current assignment vector, index
// parallel to the dataset.
func (km *KMeans) Assignments() []int {
	return append([]int(nil), km.assignments...)
}

// History returns the recorded per-iteration snapshots.
func (km *KMeans) History() []Snapshot {
	return append([]Snapshot(nil), km.history...)
}

// Converged reports whether the last run reached a fixed point.
func (km *KMeans) Converged() bool {
	return km.converged
}

// Iterations returns the number of completed assign-update iterations.
func (km *KMeans) Iterations() int {
	return km.iterations
}

// Visualize colors points by their cluster, links them to their
// centroid, and draws the labeled centroid markers.
func (km *KMeans) Visualize(s algorithm.Surface) {
	for i, p := range km.points {
		a := Unassigned
		if i < len(km.assignments) {
			a = km.assignments[i]
		}
		if a != Unassigned && a < len(km.centroids) {
			c := km.centroids[a]
			s.DrawLine(p.X, p.Y, c.X, c.Y, 0.5, algorithm.ClassColor(a))
		}
		s.DrawPoint(p.X, p.Y, 4, algorithm.ClassColor(a))
	}
	for c, centroid := range km.centroids {
		s.DrawCentroid(centroid.X, centroid.Y, c, algorithm.ClassColor(c))
	}
}

// Stats implements algorithm.Algorithm.
func (km *KMeans) Stats() []algorithm.Stat {
	return []algorithm.Stat{
		{Label: "k", Value: fmt.Sprintf("%d", km.k)},
		{Label: "points", Value: fmt.Sprintf("%d", len(km.points))},
		{Label: "iterations", Value: fmt.Sprintf("%d", km.iterations)},
		{Label: "wcss", Value: fmt.Sprintf("%.1f", km.WCSS())},
		{Label: "converged", Value: fmt.Sprintf("%t", km.converged)},
	}
}

// Params implements algorithm.Algorithm.
func (km *KMeans) Params() []algorithm.ParamSpec {
	return []algorithm.ParamSpec{
		{ID: "k", Min: 1, Max: 10, Step: 1, Default: 3},
		{ID: "maxIterations", Min: 10, Max: 200, Step: 10, Default: 50},
	}
}

// SetParam implements algorithm.Algorithm. A new k takes effect when
// centroids are next seeded, clamped against the dataset size.
func (km *KMeans) SetParam(id string, value float64) error {
	for _, spec := range km.Params() {
		if spec.ID != id {
			continue
		}
		if !spec.Validate(value) {
			return errors.NewValidationError(id, fmt.Sprintf("out of range [%g, %g]", spec.Min, spec.Max), value)
		}
		switch id {
		case "k":
			km.k = int(value)
		case "maxIterations":
			km.maxIterations = int(value)
		}
		return nil
	}
	return errors.Wrapf(errors.ErrUnknownParam, "%q", id)
}
