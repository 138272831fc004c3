// Package regression implements step-wise least-squares linear
// regression over 2D canvas points.
package regression

import (
	"fmt"
	"image/color"
	"log/slog"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"github.com/YuminosukeSato/mlboard/core/algorithm"
	"github.com/YuminosukeSato/mlboard/geom"
	"github.com/YuminosukeSato/mlboard/metrics"
	"github.com/YuminosukeSato/mlboard/pkg/errors"
	mllog "github.com/YuminosukeSato/mlboard/pkg/log"
)

// Stage enumerates the step machine of the regression walkthrough.
type Stage int

const (
	// StageMeans computes the coordinate means.
	StageMeans Stage = iota
	// StageSlope computes the least-squares slope.
	StageSlope
	// StageIntercept computes the intercept from the means and slope.
	StageIntercept
	// StageEvaluate derives predictions, residuals, MSE and R².
	StageEvaluate
	// StageComplete is the terminal stage.
	StageComplete
)

// String returns the display name of the stage.
func (s Stage) String() string {
	switch s {
	case StageMeans:
		return "means"
	case StageSlope:
		return "slope"
	case StageIntercept:
		return "intercept"
	case StageEvaluate:
		return "evaluate"
	case StageComplete:
		return "complete"
	default:
		return "unknown"
	}
}

// Model holds the fitted line and its derived diagnostics. Everything
// is recomputed wholesale on each run; nothing persists partially.
type Model struct {
	Slope       float64
	Intercept   float64
	Predictions []float64
	Residuals   []float64
	MSE         float64
	RSquared    float64
}

// LinearRegression fits y = slope*x + intercept by ordinary least
// squares and exposes the computation as a four-stage step machine
// (means, slope, intercept, evaluate).
//
// Not safe for concurrent use.
type LinearRegression struct {
	algorithm.Base

	points []geom.Point
	stage  Stage
	meanX  float64
	meanY  float64
	model  Model

	// learningRate is declared so the parameter surface matches the
	// other algorithms, but the closed-form fit never reads it.
	learningRate float64
}

// Option configures a LinearRegression.
type Option func(*LinearRegression)

// WithLearningRate sets the (unused) learning-rate tunable.
func WithLearningRate(lr float64) Option {
	return func(r *LinearRegression) {
		r.learningRate = lr
	}
}

// NewLinearRegression creates a regression module with default tunables.
func NewLinearRegression(options ...Option) *LinearRegression {
	lr := &LinearRegression{
		learningRate: 0.01,
		stage:        StageMeans,
	}
	for _, opt := range options {
		opt(lr)
	}
	return lr
}

// Kind implements algorithm.Algorithm.
func (lr *LinearRegression) Kind() algorithm.Kind {
	return algorithm.KindLinearRegression
}

// Init seeds the module with a fresh copy of points and discards all
// derived state.
func (lr *LinearRegression) Init(points []geom.Point) error {
	lr.points = geom.ClonePoints(points)
	lr.model = Model{}
	lr.meanX, lr.meanY = 0, 0
	lr.stage = StageMeans
	lr.ClearState()
	lr.SetInitialized()

	slog.Debug("regression initialized",
		mllog.AlgorithmKey, lr.Kind().String(),
		mllog.OperationKey, mllog.OperationInit,
		mllog.PointsKey, len(lr.points),
	)
	return nil
}

// Run fits the full model in one call. It requires at least two points.
func (lr *LinearRegression) Run() error {
	if !lr.IsInitialized() {
		return errors.NewNotFittedError("LinearRegression", "Run")
	}
	if len(lr.points) < 2 {
		return errors.NewInsufficientDataError("LinearRegression", 2, len(lr.points))
	}

	lr.computeMeans()
	lr.computeSlope()
	lr.computeIntercept()
	if err := lr.evaluate(); err != nil {
		return err
	}
	lr.stage = StageComplete
	lr.SetComplete()

	slog.Debug("regression fitted",
		mllog.AlgorithmKey, lr.Kind().String(),
		mllog.OperationKey, mllog.OperationRun,
		mllog.PointsKey, len(lr.points),
		mllog.MSEKey, lr.model.MSE,
		mllog.R2Key, lr.model.RSquared,
	)
	return nil
}

// Step advances the walkthrough by one stage and describes it. Stepping
// past the final stage returns the terminal description without
// mutating any state.
func (lr *LinearRegression) Step() (algorithm.StepResult, error) {
	if !lr.IsInitialized() {
		return algorithm.StepResult{}, errors.NewNotFittedError("LinearRegression", "Step")
	}
	if lr.stage == StageComplete {
		return algorithm.StepResult{Description: "Complete: the regression line is fitted.", Done: true}, nil
	}
	if len(lr.points) < 2 {
		return algorithm.StepResult{}, errors.NewInsufficientDataError("LinearRegression", 2, len(lr.points))
	}

	var res algorithm.StepResult
	switch lr.stage {
	case StageMeans:
		lr.computeMeans()
		res.Description = fmt.Sprintf("Computed means: mean x = %.2f, mean y = %.2f.", lr.meanX, lr.meanY)
		lr.stage = StageSlope

	case StageSlope:
		lr.computeSlope()
		res.Description = fmt.Sprintf("Computed slope = %.4f from the centered cross products.", lr.model.Slope)
		lr.stage = StageIntercept

	case StageIntercept:
		lr.computeIntercept()
		res.Description = fmt.Sprintf("Computed intercept = %.2f so the line passes through the mean point.", lr.model.Intercept)
		lr.stage = StageEvaluate

	case StageEvaluate:
		if err := lr.evaluate(); err != nil {
			return algorithm.StepResult{}, err
		}
		res.Description = fmt.Sprintf("Evaluated fit: MSE = %.2f, R2 = %.4f.", lr.model.MSE, lr.model.RSquared)
		res.Done = true
		lr.stage = StageComplete
		lr.SetComplete()
	}

	slog.Debug("regression step",
		mllog.AlgorithmKey, lr.Kind().String(),
		mllog.OperationKey, mllog.OperationStep,
		mllog.StageKey, lr.stage.String(),
	)
	return res, nil
}

// Reset zeroes all computed fields but keeps the point set.
func (lr *LinearRegression) Reset() {
	lr.model = Model{}
	lr.meanX, lr.meanY = 0, 0
	lr.stage = StageMeans
	lr.ResetProgress()
}

func (lr *LinearRegression) computeMeans() {
	xs, ys := geom.Coordinates(lr.points)
	lr.meanX = stat.Mean(xs, nil)
	lr.meanY = stat.Mean(ys, nil)
}

// computeSlope uses slope = Σ(xi-x̄)(yi-ȳ) / Σ(xi-x̄)². A dataset with
// no horizontal spread has denominator 0; the slope falls back to 0
// rather than producing NaN.
func (lr *LinearRegression) computeSlope() {
	var num, den float64
	for _, p := range lr.points {
		dx := p.X - lr.meanX
		num += dx * (p.Y - lr.meanY)
		den += dx * dx
	}
	if den == 0 {
		errors.Warn(errors.NewUndefinedMetricWarning("slope", "zero variance in x", 0))
		lr.model.Slope = 0
		return
	}
	lr.model.Slope = num / den
}

func (lr *LinearRegression) computeIntercept() {
	lr.model.Intercept = lr.meanY - lr.model.Slope*lr.meanX
}

func (lr *LinearRegression) evaluate() error {
	n := len(lr.points)
	preds := make([]float64, n)
	ys := make([]float64, n)
	for i, p := range lr.points {
		preds[i] = lr.model.Slope*p.X + lr.model.Intercept
		ys[i] = p.Y
	}

	yTrue := mat.NewVecDense(n, ys)
	yPred := mat.NewVecDense(n, preds)

	mse, err := metrics.MSE(yTrue, yPred)
	if err != nil {
		return err
	}
	r2, err := metrics.R2Score(yTrue, yPred)
	if err != nil {
		return err
	}
	residuals, err := metrics.Residuals(yTrue, yPred)
	if err != nil {
		return err
	}

	lr.model.Predictions = preds
	lr.model.Residuals = make([]float64, n)
	for i := 0; i < n; i++ {
		lr.model.Residuals[i] = residuals.AtVec(i)
	}
	lr.model.MSE = mse
	lr.model.RSquared = r2
	return nil
}

// Predict returns the fitted line's value at x.
func (lr *LinearRegression) Predict(x float64) (float64, error) {
	if !lr.IsComplete() {
		return 0, errors.NewNotFittedError("LinearRegression", "Predict")
	}
	return lr.model.Slope*x + lr.model.Intercept, nil
}

// Model returns a copy of the fitted model.
func (lr *LinearRegression) Model() Model {
	m := lr.model
	m.Predictions = append([]float64(nil), lr.model.Predictions...)
	m.Residuals = append([]float64(nil), lr.model.Residuals...)
	return m
}

// Stage returns the step machine's current stage.
func (lr *LinearRegression) Stage() Stage {
	return lr.stage
}

var (
	pointColor    = color.RGBA{R: 0x37, G: 0x47, B: 0x4f, A: 0xff}
	meanColor     = color.RGBA{R: 0xb0, G: 0xbe, B: 0xc5, A: 0xff}
	lineColor     = color.RGBA{R: 0x1e, G: 0x88, B: 0xe5, A: 0xff}
	residualColor = color.RGBA{R: 0xe5, G: 0x39, B: 0x35, A: 0xff}
)

// Visualize draws the points, and per stage: the mean crosshair, the
// fitted line, then the residual segments.
func (lr *LinearRegression) Visualize(s algorithm.Surface) {
	for _, p := range lr.points {
		s.DrawPoint(p.X, p.Y, 4, pointColor)
	}
	if lr.stage == StageMeans || len(lr.points) == 0 {
		return
	}

	minX, maxX := lr.points[0].X, lr.points[0].X
	for _, p := range lr.points {
		if p.X < minX {
			minX = p.X
		}
		if p.X > maxX {
			maxX = p.X
		}
	}

	// Mean crosshair once the means exist.
	s.DrawLine(lr.meanX, lr.meanY-10, lr.meanX, lr.meanY+10, 1, meanColor)
	s.DrawLine(lr.meanX-10, lr.meanY, lr.meanX+10, lr.meanY, 1, meanColor)

	if lr.stage >= StageEvaluate {
		x1, x2 := minX-20, maxX+20
		s.DrawLine(x1, lr.model.Slope*x1+lr.model.Intercept, x2, lr.model.Slope*x2+lr.model.Intercept, 2, lineColor)
	}
	if lr.stage == StageComplete {
		for i, p := range lr.points {
			s.DrawLine(p.X, p.Y, p.X, lr.model.Predictions[i], 1, residualColor)
		}
		s.DrawText(fmt.Sprintf("y = %.3fx + %.2f", lr.model.Slope, lr.model.Intercept), minX, 20, lineColor)
	}
}

// Stats implements algorithm.Algorithm.
func (lr *LinearRegression) Stats() []algorithm.Stat {
	return []algorithm.Stat{
		{Label: "stage", Value: lr.stage.String()},
		{Label: "points", Value: fmt.Sprintf("%d", len(lr.points))},
		{Label: "slope", Value: fmt.Sprintf("%.4f", lr.model.Slope)},
		{Label: "intercept", Value: fmt.Sprintf("%.2f", lr.model.Intercept)},
		{Label: "mse", Value: fmt.Sprintf("%.2f", lr.model.MSE)},
		{Label: "r2", Value: fmt.Sprintf("%.4f", lr.model.RSquared)},
	}
}

// Params implements algorithm.Algorithm. learningRate is part of the
// declared surface for UI parity even though the closed-form fit does
// not use it.
func (lr *LinearRegression) Params() []algorithm.ParamSpec {
	return []algorithm.ParamSpec{
		{ID: "learningRate", Min: 0.001, Max: 1, Step: 0.001, Default: 0.01},
	}
}

// SetParam implements algorithm.Algorithm.
func (lr *LinearRegression) SetParam(id string, value float64) error {
	switch id {
	case "learningRate":
		spec := lr.Params()[0]
		if !spec.Validate(value) {
			return errors.NewValidationError(id, fmt.Sprintf("out of range [%g, %g]", spec.Min, spec.Max), value)
		}
		lr.learningRate = value
		return nil
	default:
		return errors.Wrapf(errors.ErrUnknownParam, "%q", id)
	}
}
