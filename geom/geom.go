// Package geom provides the 2D primitives shared by every algorithm:
// points in canvas-pixel coordinates, axis-aligned rectangles, and the
// small statistical helpers the algorithms are built from.
package geom

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// Unlabeled marks a point whose class label has not been assigned.
// Labels are only meaningful for classification data.
const Unlabeled = -1

// Point is a single 2D sample in canvas-pixel coordinates.
type Point struct {
	X     float64
	Y     float64
	Label int
}

// NewPoint returns an unlabeled point at (x, y).
func NewPoint(x, y float64) Point {
	return Point{X: x, Y: y, Label: Unlabeled}
}

// NewLabeledPoint returns a point carrying a class label.
func NewLabeledPoint(x, y float64, label int) Point {
	return Point{X: x, Y: y, Label: label}
}

// Distance returns the Euclidean distance between p and q.
func Distance(p, q Point) float64 {
	return math.Hypot(p.X-q.X, p.Y-q.Y)
}

// SquaredDistance returns the squared Euclidean distance between p and q.
// Used where only relative order matters, avoiding the square root.
func SquaredDistance(p, q Point) float64 {
	dx := p.X - q.X
	dy := p.Y - q.Y
	return dx*dx + dy*dy
}

// Mean returns the coordinate-wise mean of points.
// The mean of an empty set is the unlabeled zero point.
func Mean(points []Point) Point {
	if len(points) == 0 {
		return Point{Label: Unlabeled}
	}
	xs, ys := Coordinates(points)
	return Point{X: stat.Mean(xs, nil), Y: stat.Mean(ys, nil), Label: Unlabeled}
}

// Coordinates splits points into parallel x and y slices.
func Coordinates(points []Point) (xs, ys []float64) {
	xs = make([]float64, len(points))
	ys = make([]float64, len(points))
	for i, p := range points {
		xs[i] = p.X
		ys[i] = p.Y
	}
	return xs, ys
}

// ClonePoints returns a fresh copy of points. Callers that hand a
// dataset to an algorithm use this to keep the original free of
// aliasing.
func ClonePoints(points []Point) []Point {
	if points == nil {
		return nil
	}
	clone := make([]Point, len(points))
	copy(clone, points)
	return clone
}

// Rect is an axis-aligned rectangle in canvas-pixel coordinates.
type Rect struct {
	MinX float64
	MinY float64
	MaxX float64
	MaxY float64
}

// NewRect returns the rectangle spanning (minX, minY) to (maxX, maxY).
func NewRect(minX, minY, maxX, maxY float64) Rect {
	return Rect{MinX: minX, MinY: minY, MaxX: maxX, MaxY: maxY}
}

// Width returns the horizontal extent of r.
func (r Rect) Width() float64 { return r.MaxX - r.MinX }

// Height returns the vertical extent of r.
func (r Rect) Height() float64 { return r.MaxY - r.MinY }

// Area returns the area of r.
func (r Rect) Area() float64 { return r.Width() * r.Height() }

// Contains reports whether (x, y) lies inside r. Min edges are inside
// and max edges are not, so rectangles produced by SplitX/SplitY
// partition their parent without double-counting.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.MinX && x < r.MaxX && y >= r.MinY && y < r.MaxY
}

// SplitX cuts r with the vertical line x = t.
func (r Rect) SplitX(t float64) (left, right Rect) {
	left = Rect{MinX: r.MinX, MinY: r.MinY, MaxX: t, MaxY: r.MaxY}
	right = Rect{MinX: t, MinY: r.MinY, MaxX: r.MaxX, MaxY: r.MaxY}
	return left, right
}

// SplitY cuts r with the horizontal line y = t. The halves are named
// in value space: low holds y < t, which is the top of the canvas.
func (r Rect) SplitY(t float64) (low, high Rect) {
	low = Rect{MinX: r.MinX, MinY: r.MinY, MaxX: r.MaxX, MaxY: t}
	high = Rect{MinX: r.MinX, MinY: t, MaxX: r.MaxX, MaxY: r.MaxY}
	return low, high
}
