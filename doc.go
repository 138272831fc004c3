// Package mlboard is a teaching library that runs textbook machine
// learning algorithms over small 2D point sets, one step at a time,
// and draws every intermediate state onto a canvas.
//
// Three algorithms are included: least-squares linear regression,
// K-means clustering, and a depth-limited decision tree using Gini
// impurity. Each one implements the same stepping contract so that a
// caller can single-step through the computation and render what the
// algorithm "sees" at each stage.
//
// # Quick Start
//
//	package main
//
//	import (
//	    "fmt"
//	    "log"
//
//	    "github.com/YuminosukeSato/mlboard/dataset"
//	    "github.com/YuminosukeSato/mlboard/regression"
//	)
//
//	func main() {
//	    points, err := dataset.Preset("linear-trend")
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//
//	    lr := regression.NewLinearRegression()
//	    if err := lr.Init(points); err != nil {
//	        log.Fatal(err)
//	    }
//	    if err := lr.Run(); err != nil {
//	        log.Fatal(err)
//	    }
//
//	    fmt.Printf("y = %.3fx + %.3f (R2=%.3f)\n",
//	        lr.Model().Slope, lr.Model().Intercept, lr.Model().RSquared)
//	}
//
// # Packages
//
//   - geom: 2D points, rectangles and the shared numeric helpers
//   - dataset: named presets and a parameterized random generator
//   - core/algorithm: the stepping contract shared by all algorithms
//   - regression, cluster, tree: the three algorithm implementations
//   - render: gg-backed canvas surface and gonum/plot charts
//   - controller: session object that wires a dataset to an algorithm
//   - cmd/mlboard: CLI that renders per-step PNG frames
//
// All coordinates are canvas pixels; there is no normalization layer.
// The library is synchronous and single-threaded: every operation runs
// to completion inside the calling goroutine.
package mlboard
