// Package algorithm defines the stepping contract shared by the three
// algorithm modules. The controller programs against this interface
// only; the concrete module is selected through the Kind enum rather
// than property lookup.
package algorithm

import (
	"image/color"

	"github.com/YuminosukeSato/mlboard/geom"
)

// Kind identifies an algorithm implementation.
type Kind int

const (
	// KindLinearRegression is closed-form least-squares regression.
	KindLinearRegression Kind = iota
	// KindKMeans is iterative K-means clustering.
	KindKMeans
	// KindDecisionTree is a depth-limited Gini decision tree.
	KindDecisionTree
)

// String returns the canonical name of the algorithm kind.
func (k Kind) String() string {
	switch k {
	case KindLinearRegression:
		return "LinearRegression"
	case KindKMeans:
		return "KMeans"
	case KindDecisionTree:
		return "DecisionTree"
	default:
		return "Unknown"
	}
}

// ParamSpec declares one tunable parameter the way a UI slider needs
// it: an identifier plus its range, step and default.
type ParamSpec struct {
	ID      string
	Min     float64
	Max     float64
	Step    float64
	Default float64
}

// Validate checks v against the declared range.
func (p ParamSpec) Validate(v float64) bool {
	return v >= p.Min && v <= p.Max
}

// Stat is one display statistic. Order matters for display, so stats
// are a slice rather than a map.
type Stat struct {
	Label string
	Value string
}

// StepResult is the outcome of a single Step call.
type StepResult struct {
	// Description is a human-readable account of what the step did.
	Description string
	// Done reports that the algorithm has completed; further Step calls
	// return the terminal description without mutating state.
	Done bool
}

// Algorithm is the contract every algorithm module implements.
//
// Lifecycle: Init seeds the module with a fresh copy of the dataset and
// resets all derived state. Run executes to completion. Step advances
// the module's step machine by one stage and reports what happened.
// Reset discards derived state but keeps the point set. All methods are
// synchronous and none are safe for concurrent use.
type Algorithm interface {
	Kind() Kind

	Init(points []geom.Point) error
	Step() (StepResult, error)
	Run() error
	Reset()

	Visualize(s Surface)
	Stats() []Stat

	Params() []ParamSpec
	SetParam(id string, value float64) error
}

// Surface is the stateless drawing collaborator consumed by Visualize.
// Coordinates are canvas pixels. Implementations own no algorithm
// state.
type Surface interface {
	DrawPoint(x, y, radius float64, c color.Color)
	DrawLine(x1, y1, x2, y2, width float64, c color.Color)
	DrawRect(r geom.Rect, c color.Color, fill bool)
	DrawText(s string, x, y float64, c color.Color)
	// DrawCentroid draws the labeled marker for centroid index.
	DrawCentroid(x, y float64, index int, c color.Color)
}
