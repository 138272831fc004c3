// Package tree implements a depth-limited binary decision tree over 2D
// canvas points, split on Gini impurity.
//
// Tree construction is pure: Build returns the node structure and
// nothing else. The boundary lines and leaf regions used for display
// are derived afterwards by traversal (see boundaries.go), so the tree
// itself stays canonical.
package tree

import (
	"sort"

	"github.com/YuminosukeSato/mlboard/geom"
)

// Feature selects the axis a split tests.
type Feature int

const (
	// FeatureX splits on the x coordinate.
	FeatureX Feature = iota
	// FeatureY splits on the y coordinate.
	FeatureY
)

// String returns "x" or "y".
func (f Feature) String() string {
	if f == FeatureX {
		return "x"
	}
	return "y"
}

func (f Feature) value(p geom.Point) float64 {
	if f == FeatureX {
		return p.X
	}
	return p.Y
}

// Node is one node of the tree. A node with no children is a leaf
// holding a majority label; an internal node tests value(Feature) <
// Threshold, sending smaller values left. Every node remembers the
// rectangle of the plane it governs and the impurity of its points.
type Node struct {
	Feature   Feature
	Threshold float64
	Left      *Node
	Right     *Node

	Label    int
	Count    int
	Impurity float64
	Bounds   geom.Rect
}

// IsLeaf reports whether n has no children.
func (n *Node) IsLeaf() bool {
	return n.Left == nil && n.Right == nil
}

// Depth returns the height of the subtree rooted at n, with a leaf at 0.
func (n *Node) Depth() int {
	if n.IsLeaf() {
		return 0
	}
	l, r := n.Left.Depth(), n.Right.Depth()
	if l > r {
		return l + 1
	}
	return r + 1
}

// Gini computes the Gini impurity 1 - Σp² over the label proportions
// in points. An empty or single-label set is pure (0).
func Gini(points []geom.Point) float64 {
	if len(points) == 0 {
		return 0
	}
	counts := map[int]int{}
	for _, p := range points {
		counts[p.Label]++
	}
	impurity := 1.0
	n := float64(len(points))
	for _, c := range counts {
		p := float64(c) / n
		impurity -= p * p
	}
	return impurity
}

// MajorityLabel returns the most frequent label in points, breaking
// ties toward the smaller label. The majority of an empty set is
// geom.Unlabeled.
func MajorityLabel(points []geom.Point) int {
	if len(points) == 0 {
		return geom.Unlabeled
	}
	counts := map[int]int{}
	for _, p := range points {
		counts[p.Label]++
	}
	best, bestCount := 0, -1
	for label, c := range counts {
		if c > bestCount || (c == bestCount && label < best) {
			best, bestCount = label, c
		}
	}
	return best
}

// Split is a candidate axis-aligned cut.
type Split struct {
	Feature   Feature
	Threshold float64
	// Impurity is the weighted Gini of the two sides after the cut.
	Impurity float64
}

// FindBestSplit exhaustively tries every midpoint between sorted
// distinct x values, then every midpoint between sorted distinct y
// values, and keeps the cut with minimum weighted Gini. The comparison
// is strict, so ties keep the first candidate found (x-axis before
// y-axis, ascending thresholds within an axis). O(n²) per call, which
// is fine at teaching scale.
//
// ok is false when neither axis has two distinct values to cut between.
func FindBestSplit(points []geom.Point) (best Split, ok bool) {
	n := float64(len(points))
	if n < 2 {
		return Split{}, false
	}

	for _, feature := range []Feature{FeatureX, FeatureY} {
		for _, threshold := range midpoints(points, feature) {
			var left, right []geom.Point
			for _, p := range points {
				if feature.value(p) < threshold {
					left = append(left, p)
				} else {
					right = append(right, p)
				}
			}

			weighted := (float64(len(left))*Gini(left) + float64(len(right))*Gini(right)) / n
			if !ok || weighted < best.Impurity {
				best = Split{Feature: feature, Threshold: threshold, Impurity: weighted}
				ok = true
			}
		}
	}
	return best, ok
}

// midpoints returns the midpoints between consecutive sorted distinct
// values of the feature, in ascending order.
func midpoints(points []geom.Point, feature Feature) []float64 {
	values := make([]float64, 0, len(points))
	for _, p := range points {
		values = append(values, feature.value(p))
	}
	sort.Float64s(values)

	var mids []float64
	for i := 1; i < len(values); i++ {
		if values[i] != values[i-1] {
			mids = append(mids, (values[i]+values[i-1])/2)
		}
	}
	return mids
}

// Config bounds the recursion.
type Config struct {
	MaxDepth   int
	MinSamples int
}

// Build grows the tree for points over the given bounds. Recursion
// stops at MaxDepth, below MinSamples, on a pure node, or when no cut
// separates the points. Build mutates nothing it is given and records
// no display state.
func Build(points []geom.Point, depth int, bounds geom.Rect, cfg Config) *Node {
	node := &Node{
		Label:    MajorityLabel(points),
		Count:    len(points),
		Impurity: Gini(points),
		Bounds:   bounds,
	}

	if depth >= cfg.MaxDepth || len(points) < cfg.MinSamples || node.Impurity == 0 {
		return node
	}

	split, ok := FindBestSplit(points)
	if !ok {
		return node
	}

	var left, right []geom.Point
	for _, p := range points {
		if split.Feature.value(p) < split.Threshold {
			left = append(left, p)
		} else {
			right = append(right, p)
		}
	}

	var leftBounds, rightBounds geom.Rect
	if split.Feature == FeatureX {
		leftBounds, rightBounds = bounds.SplitX(split.Threshold)
	} else {
		leftBounds, rightBounds = bounds.SplitY(split.Threshold)
	}

	node.Feature = split.Feature
	node.Threshold = split.Threshold
	node.Left = Build(left, depth+1, leftBounds, cfg)
	node.Right = Build(right, depth+1, rightBounds, cfg)
	return node
}

// Predict walks the tree from root and returns the label of the leaf
// containing (x, y). Values below a threshold go left.
func Predict(root *Node, x, y float64) int {
	node := root
	for !node.IsLeaf() {
		v := x
		if node.Feature == FeatureY {
			v = y
		}
		if v < node.Threshold {
			node = node.Left
		} else {
			node = node.Right
		}
	}
	return node.Label
}
