package tree

import "github.com/YuminosukeSato/mlboard/geom"

// Boundary is one split line for display: the cut an internal node
// makes, clipped to the rectangle that node governs. Boundaries are a
// pure function of the built tree, derived by traversal rather than
// recorded during construction.
type Boundary struct {
	Feature   Feature
	Threshold float64
	Region    geom.Rect
	Depth     int
}

// Region is one leaf's patch of the plane, for display tinting.
type Region struct {
	Bounds   geom.Rect
	Label    int
	Count    int
	Impurity float64
}

// Boundaries lists the split lines of the tree in pre-order (node,
// left subtree, right subtree), which is the order the recursive build
// discovered them in.
func Boundaries(root *Node) []Boundary {
	var out []Boundary
	var walk func(n *Node, depth int)
	walk = func(n *Node, depth int) {
		if n == nil || n.IsLeaf() {
			return
		}
		out = append(out, Boundary{
			Feature:   n.Feature,
			Threshold: n.Threshold,
			Region:    n.Bounds,
			Depth:     depth,
		})
		walk(n.Left, depth+1)
		walk(n.Right, depth+1)
	}
	walk(root, 0)
	return out
}

// Regions lists the leaf rectangles in pre-order. Together they tile
// the root bounds exactly.
func Regions(root *Node) []Region {
	var out []Region
	var walk func(n *Node)
	walk = func(n *Node) {
		if n == nil {
			return
		}
		if n.IsLeaf() {
			out = append(out, Region{
				Bounds:   n.Bounds,
				Label:    n.Label,
				Count:    n.Count,
				Impurity: n.Impurity,
			})
			return
		}
		walk(n.Left)
		walk(n.Right)
	}
	walk(root)
	return out
}

// CountNodes returns the total node count of the tree.
func CountNodes(root *Node) int {
	if root == nil {
		return 0
	}
	return 1 + CountNodes(root.Left) + CountNodes(root.Right)
}
