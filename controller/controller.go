// Package controller wires a dataset to one active algorithm instance
// and dispatches UI-style events to it. Each Controller is a session:
// algorithms are constructed per session rather than shared, so no
// state leaks between sessions.
package controller

import (
	"image/color"
	"log/slog"

	"github.com/google/uuid"

	"github.com/YuminosukeSato/mlboard/cluster"
	"github.com/YuminosukeSato/mlboard/core/algorithm"
	"github.com/YuminosukeSato/mlboard/dataset"
	"github.com/YuminosukeSato/mlboard/geom"
	"github.com/YuminosukeSato/mlboard/pkg/errors"
	mllog "github.com/YuminosukeSato/mlboard/pkg/log"
	"github.com/YuminosukeSato/mlboard/regression"
	"github.com/YuminosukeSato/mlboard/tree"
)

// Controller owns the current dataset and the selected algorithm.
// Control flow is strictly: event in, algorithm mutates its own state,
// Redraw paints. Not safe for concurrent use; callers serialize events
// the way a UI event loop does.
type Controller struct {
	id     string
	width  float64
	height float64

	points []geom.Point
	algo   algorithm.Algorithm

	randomState int64
	logger      *slog.Logger

	// Cosmetic pulse around the most recently added point. Carries no
	// algorithmic state.
	pulseX      float64
	pulseY      float64
	pulsePhase  float64
	pulseActive bool
}

// Option configures a Controller.
type Option func(*Controller)

// WithRandomState fixes the seed handed to seeded algorithms (K-means
// centroid seeding). Negative means clock-seeded.
func WithRandomState(seed int64) Option {
	return func(c *Controller) {
		c.randomState = seed
	}
}

// New creates a session for a canvas of the given pixel size.
func New(width, height float64, options ...Option) *Controller {
	c := &Controller{
		id:          uuid.NewString(),
		width:       width,
		height:      height,
		randomState: -1,
	}
	for _, opt := range options {
		opt(c)
	}
	c.logger = slog.Default().With(mllog.SessionKey, c.id)
	return c
}

// ID returns the session identifier.
func (c *Controller) ID() string {
	return c.id
}

// SelectAlgorithm constructs a fresh instance of the given kind and
// initializes it with the current dataset. Any previous instance is
// dropped along with all of its state.
func (c *Controller) SelectAlgorithm(kind algorithm.Kind) error {
	switch kind {
	case algorithm.KindLinearRegression:
		c.algo = regression.NewLinearRegression()
	case algorithm.KindKMeans:
		c.algo = cluster.NewKMeans(cluster.WithRandomState(c.randomState))
	case algorithm.KindDecisionTree:
		c.algo = tree.NewDecisionTree(tree.WithBounds(geom.NewRect(0, 0, c.width, c.height)))
	default:
		return errors.NewValueError("Controller.SelectAlgorithm", "unknown algorithm kind")
	}

	c.logger.Debug("algorithm selected",
		mllog.AlgorithmKey, kind.String(),
		mllog.PointsKey, len(c.points),
	)
	return c.algo.Init(geom.ClonePoints(c.points))
}

// Algorithm returns the active algorithm, or nil when none is selected.
func (c *Controller) Algorithm() algorithm.Algorithm {
	return c.algo
}

// AddPoint appends an unlabeled point and re-initializes the active
// algorithm, since no algorithm state survives a dataset change.
func (c *Controller) AddPoint(x, y float64) error {
	return c.addPoint(geom.NewPoint(x, y))
}

// AddLabeledPoint appends a labeled point for classification demos.
func (c *Controller) AddLabeledPoint(x, y float64, label int) error {
	return c.addPoint(geom.NewLabeledPoint(x, y, label))
}

func (c *Controller) addPoint(p geom.Point) error {
	c.points = append(c.points, p)
	c.pulseX, c.pulseY = p.X, p.Y
	c.pulsePhase = 0
	c.pulseActive = true
	return c.reinit()
}

// SetPoints replaces the dataset with a copy of points.
func (c *Controller) SetPoints(points []geom.Point) error {
	c.points = geom.ClonePoints(points)
	c.pulseActive = false
	return c.reinit()
}

// Clear removes every point.
func (c *Controller) Clear() error {
	return c.SetPoints(nil)
}

// LoadPreset replaces the dataset with the named preset.
func (c *Controller) LoadPreset(name string) error {
	points, err := dataset.Preset(name)
	if err != nil {
		return err
	}
	c.logger.Debug("preset loaded", mllog.PresetKey, name, mllog.PointsKey, len(points))
	return c.SetPoints(points)
}

// Generate replaces the dataset with randomly generated points.
func (c *Controller) Generate(opts dataset.GenerateOptions) error {
	if opts.Width == 0 {
		opts.Width = c.width
	}
	if opts.Height == 0 {
		opts.Height = c.height
	}
	points, err := dataset.Generate(opts)
	if err != nil {
		return err
	}
	c.logger.Debug("dataset generated",
		mllog.PatternKey, string(opts.Pattern),
		mllog.PointsKey, len(points),
		mllog.SeedKey, opts.Seed,
	)
	return c.SetPoints(points)
}

func (c *Controller) reinit() error {
	if c.algo == nil {
		return nil
	}
	return c.algo.Init(geom.ClonePoints(c.points))
}

// Points returns a copy of the current dataset.
func (c *Controller) Points() []geom.Point {
	return geom.ClonePoints(c.points)
}

// Step advances the active algorithm by one stage.
func (c *Controller) Step() (algorithm.StepResult, error) {
	if c.algo == nil {
		return algorithm.StepResult{}, errors.NewValueError("Controller.Step", "no algorithm selected")
	}
	res, err := c.algo.Step()
	if err != nil {
		c.logger.Warn("step failed", mllog.ErrAttr(err))
		return res, err
	}
	c.logger.Debug("step",
		mllog.AlgorithmKey, c.algo.Kind().String(),
		mllog.OperationKey, mllog.OperationStep,
		"description", res.Description,
	)
	return res, nil
}

// Run executes the active algorithm to completion.
func (c *Controller) Run() error {
	if c.algo == nil {
		return errors.NewValueError("Controller.Run", "no algorithm selected")
	}
	if err := c.algo.Run(); err != nil {
		c.logger.Warn("run failed", mllog.ErrAttr(err))
		return err
	}
	c.logger.Debug("run",
		mllog.AlgorithmKey, c.algo.Kind().String(),
		mllog.OperationKey, mllog.OperationRun,
	)
	return nil
}

// Reset discards the active algorithm's derived state, keeping the
// dataset.
func (c *Controller) Reset() {
	if c.algo != nil {
		c.algo.Reset()
	}
}

// SetParam forwards a slider change to the active algorithm.
func (c *Controller) SetParam(id string, value float64) error {
	if c.algo == nil {
		return errors.NewValueError("Controller.SetParam", "no algorithm selected")
	}
	return c.algo.SetParam(id, value)
}

// Params returns the active algorithm's declared parameter surface.
func (c *Controller) Params() []algorithm.ParamSpec {
	if c.algo == nil {
		return nil
	}
	return c.algo.Params()
}

// Stats returns the active algorithm's display statistics.
func (c *Controller) Stats() []algorithm.Stat {
	if c.algo == nil {
		return nil
	}
	return c.algo.Stats()
}

var idlePointColor = color.RGBA{R: 0x78, G: 0x90, B: 0x9c, A: 0xff}

// pulseSurface is implemented by surfaces that can draw the cosmetic
// add-point pulse (the raster canvas does; test fakes need not).
type pulseSurface interface {
	DrawPulse(x, y, phase float64)
}

// Redraw paints the current state onto s: the active algorithm's view
// when one is selected, otherwise the bare points.
func (c *Controller) Redraw(s algorithm.Surface) {
	if c.algo != nil {
		c.algo.Visualize(s)
	} else {
		for _, p := range c.points {
			s.DrawPoint(p.X, p.Y, 4, idlePointColor)
		}
	}

	if c.pulseActive {
		if ps, ok := s.(pulseSurface); ok {
			ps.DrawPulse(c.pulseX, c.pulseY, c.pulsePhase)
		}
	}
}

// Tick advances the cosmetic pulse animation. dt is in seconds; the
// pulse lives for one second. Purely visual, fire-and-forget.
func (c *Controller) Tick(dt float64) {
	if !c.pulseActive {
		return
	}
	c.pulsePhase += dt
	if c.pulsePhase >= 1 {
		c.pulseActive = false
	}
}
