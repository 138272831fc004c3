package tree

import (
	"fmt"
	"image/color"
	"log/slog"

	"github.com/YuminosukeSato/mlboard/core/algorithm"
	"github.com/YuminosukeSato/mlboard/geom"
	"github.com/YuminosukeSato/mlboard/pkg/errors"
	mllog "github.com/YuminosukeSato/mlboard/pkg/log"
)

// demoLabelSplit is the x threshold of the illustrative labeling rule
// applied to unlabeled points. It is a demo device for a 700px canvas,
// not a labeling heuristic.
const demoLabelSplit = 350.0

var boundaryColor = color.RGBA{R: 0x45, G: 0x5a, B: 0x64, A: 0xff}

// DecisionTree is the stepping-contract wrapper around the pure tree
// builder. Run (or the first Step) builds the whole tree eagerly;
// stepping then replays the derived split boundaries one at a time for
// display.
//
// Not safe for concurrent use.
type DecisionTree struct {
	algorithm.Base

	maxDepth   int
	minSamples int
	bounds     geom.Rect

	points     []geom.Point
	root       *Node
	boundaries []Boundary
	regions    []Region
	revealed   int
}

// Option configures a DecisionTree.
type Option func(*DecisionTree)

// WithMaxDepth sets the recursion depth limit.
func WithMaxDepth(d int) Option {
	return func(dt *DecisionTree) {
		dt.maxDepth = d
	}
}

// WithMinSamples sets the smallest node the builder will split.
func WithMinSamples(n int) Option {
	return func(dt *DecisionTree) {
		dt.minSamples = n
	}
}

// WithBounds sets the canvas rectangle the root node governs.
func WithBounds(r geom.Rect) Option {
	return func(dt *DecisionTree) {
		dt.bounds = r
	}
}

// NewDecisionTree creates a decision-tree module with default tunables
// (maxDepth=3, minSamples=2, 700x500 canvas bounds).
func NewDecisionTree(options ...Option) *DecisionTree {
	dt := &DecisionTree{
		maxDepth:   3,
		minSamples: 2,
		bounds:     geom.NewRect(0, 0, 700, 500),
	}
	for _, opt := range options {
		opt(dt)
	}
	return dt
}

// Kind implements algorithm.Algorithm.
func (dt *DecisionTree) Kind() algorithm.Kind {
	return algorithm.KindDecisionTree
}

// Init seeds the module with a fresh copy of points. Unlabeled points
// are backfilled with the fixed demo rule label = x < 350 ? 0 : 1.
func (dt *DecisionTree) Init(points []geom.Point) error {
	dt.points = geom.ClonePoints(points)
	for i, p := range dt.points {
		if p.Label == geom.Unlabeled {
			if p.X < demoLabelSplit {
				dt.points[i].Label = 0
			} else {
				dt.points[i].Label = 1
			}
		}
	}

	dt.root = nil
	dt.boundaries = nil
	dt.regions = nil
	dt.revealed = 0
	dt.ClearState()
	dt.SetInitialized()

	slog.Debug("tree initialized",
		mllog.AlgorithmKey, dt.Kind().String(),
		mllog.OperationKey, mllog.OperationInit,
		mllog.PointsKey, len(dt.points),
	)
	return nil
}

func (dt *DecisionTree) build() {
	dt.root = Build(dt.points, 0, dt.bounds, Config{MaxDepth: dt.maxDepth, MinSamples: dt.minSamples})
	dt.boundaries = Boundaries(dt.root)
	dt.regions = Regions(dt.root)
}

// Run builds the whole tree and reveals every boundary.
func (dt *DecisionTree) Run() error {
	if !dt.IsInitialized() {
		return errors.NewNotFittedError("DecisionTree", "Run")
	}
	if len(dt.points) == 0 {
		return errors.NewInsufficientDataError("DecisionTree", 1, 0)
	}

	dt.build()
	dt.revealed = len(dt.boundaries)
	dt.SetComplete()

	slog.Debug("tree built",
		mllog.AlgorithmKey, dt.Kind().String(),
		mllog.OperationKey, mllog.OperationRun,
		mllog.PointsKey, len(dt.points),
		"depth", dt.root.Depth(),
		"leaves", len(dt.regions),
	)
	return nil
}

// Step builds the tree on its first call, then reveals one split
// boundary per call. It does not build incrementally; the replay is a
// display device over a finished tree.
func (dt *DecisionTree) Step() (algorithm.StepResult, error) {
	if !dt.IsInitialized() {
		return algorithm.StepResult{}, errors.NewNotFittedError("DecisionTree", "Step")
	}
	if dt.IsComplete() {
		return algorithm.StepResult{
			Description: fmt.Sprintf("Complete: %d leaves partition the canvas.", len(dt.regions)),
			Done:        true,
		}, nil
	}
	if len(dt.points) == 0 {
		return algorithm.StepResult{}, errors.NewInsufficientDataError("DecisionTree", 1, 0)
	}

	if dt.root == nil {
		dt.build()
		if len(dt.boundaries) == 0 {
			dt.SetComplete()
			return algorithm.StepResult{
				Description: "Built the tree: the data is pure, no split needed.",
				Done:        true,
			}, nil
		}
	}

	b := dt.boundaries[dt.revealed]
	dt.revealed++

	res := algorithm.StepResult{
		Description: fmt.Sprintf("Split %d/%d: %s < %.1f at depth %d.",
			dt.revealed, len(dt.boundaries), b.Feature, b.Threshold, b.Depth),
	}
	if dt.revealed == len(dt.boundaries) {
		dt.SetComplete()
		res.Done = true
	}

	slog.Debug("tree step",
		mllog.AlgorithmKey, dt.Kind().String(),
		mllog.OperationKey, mllog.OperationStep,
		mllog.StepKey, dt.revealed,
	)
	return res, nil
}

// Reset discards the tree and its display state but keeps the points.
func (dt *DecisionTree) Reset() {
	dt.root = nil
	dt.boundaries = nil
	dt.regions = nil
	dt.revealed = 0
	dt.ResetProgress()
}

// Predict returns the majority label of the leaf containing (x, y).
func (dt *DecisionTree) Predict(x, y float64) (int, error) {
	if dt.root == nil {
		return geom.Unlabeled, errors.NewNotFittedError("DecisionTree", "Predict")
	}
	return Predict(dt.root, x, y), nil
}

// Root returns the built tree, or nil before the first Run/Step.
func (dt *DecisionTree) Root() *Node {
	return dt.root
}

// Visualize tints the leaf regions once the replay is finished, draws
// the revealed boundaries, then the labeled points on top.
func (dt *DecisionTree) Visualize(s algorithm.Surface) {
	if dt.IsComplete() {
		for _, r := range dt.regions {
			s.DrawRect(r.Bounds, algorithm.ClassFill(r.Label), true)
		}
	}

	for i := 0; i < dt.revealed; i++ {
		b := dt.boundaries[i]
		width := 2.0 - 0.4*float64(b.Depth)
		if width < 0.5 {
			width = 0.5
		}
		if b.Feature == FeatureX {
			s.DrawLine(b.Threshold, b.Region.MinY, b.Threshold, b.Region.MaxY, width, boundaryColor)
		} else {
			s.DrawLine(b.Region.MinX, b.Threshold, b.Region.MaxX, b.Threshold, width, boundaryColor)
		}
	}

	for _, p := range dt.points {
		s.DrawPoint(p.X, p.Y, 4, algorithm.ClassColor(p.Label))
	}
}

// Stats implements algorithm.Algorithm.
func (dt *DecisionTree) Stats() []algorithm.Stat {
	stats := []algorithm.Stat{
		{Label: "points", Value: fmt.Sprintf("%d", len(dt.points))},
		{Label: "maxDepth", Value: fmt.Sprintf("%d", dt.maxDepth)},
		{Label: "gini", Value: fmt.Sprintf("%.4f", Gini(dt.points))},
	}
	if dt.root != nil {
		stats = append(stats,
			algorithm.Stat{Label: "depth", Value: fmt.Sprintf("%d", dt.root.Depth())},
			algorithm.Stat{Label: "nodes", Value: fmt.Sprintf("%d", CountNodes(dt.root))},
			algorithm.Stat{Label: "leaves", Value: fmt.Sprintf("%d", len(dt.regions))},
		)
	}
	return stats
}

// Params implements algorithm.Algorithm.
func (dt *DecisionTree) Params() []algorithm.ParamSpec {
	return []algorithm.ParamSpec{
		{ID: "maxDepth", Min: 1, Max: 8, Step: 1, Default: 3},
		{ID: "minSamples", Min: 1, Max: 10, Step: 1, Default: 2},
	}
}

// SetParam implements algorithm.Algorithm. New values apply on the
// next build.
func (dt *DecisionTree) SetParam(id string, value float64) error {
	for _, spec := range dt.Params() {
		if spec.ID != id {
			continue
		}
		if !spec.Validate(value) {
			return errors.NewValidationError(id, fmt.Sprintf("out of range [%g, %g]", spec.Min, spec.Max), value)
		}
		switch id {
		case "maxDepth":
			dt.maxDepth = int(value)
		case "minSamples":
			dt.minSamples = int(value)
		}
		return nil
	}
	return errors.Wrapf(errors.ErrUnknownParam, "%q", id)
}
