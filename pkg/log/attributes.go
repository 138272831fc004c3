// Package log defines standard attribute keys for algorithm operations.
//
// Using these keys keeps the structured logs emitted by the controller
// and the algorithm packages uniform, so a run can be reconstructed
// from its log stream alone.
package log

// Algorithm and operation context.
const (
	// AlgorithmKey identifies the algorithm producing the record.
	// Values: "LinearRegression", "KMeans", "DecisionTree"
	AlgorithmKey = "algo.name"

	// OperationKey names the stepping-contract operation being performed.
	// Standard values: "init", "step", "run", "reset", "visualize"
	OperationKey = "algo.operation"

	// SessionKey carries the controller session identifier (a UUID).
	SessionKey = "session.id"

	// StageKey names the stage a step machine is in.
	// Examples: "means", "slope", "assign", "update"
	StageKey = "algo.stage"
)

// Data characteristics.
const (
	// PointsKey is the number of points in the active dataset.
	PointsKey = "data.points"

	// PresetKey names the preset a dataset was loaded from.
	PresetKey = "data.preset"

	// PatternKey names the generator pattern used for random data.
	PatternKey = "data.pattern"
)

// Training progress and diagnostics.
const (
	// IterationKey is the current iteration of an iterative algorithm.
	IterationKey = "training.iteration"

	// StepKey counts Step() calls on the active algorithm.
	StepKey = "training.step"

	// ConvergedKey records whether an iterative run converged.
	ConvergedKey = "training.converged"

	// WCSSKey is the within-cluster sum of squared distances.
	WCSSKey = "metrics.wcss"

	// MSEKey is the mean squared error of a fitted regression.
	MSEKey = "metrics.mse"

	// R2Key is the coefficient of determination of a fitted regression.
	R2Key = "metrics.r2"

	// SeedKey records the random seed for reproducibility.
	SeedKey = "config.random_seed"
)

// Standard operation values.
const (
	OperationInit      = "init"
	OperationStep      = "step"
	OperationRun       = "run"
	OperationReset     = "reset"
	OperationVisualize = "visualize"
)
