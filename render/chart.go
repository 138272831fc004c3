package render

import (
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/YuminosukeSato/mlboard/geom"
	"github.com/YuminosukeSato/mlboard/pkg/errors"
)

// SaveRegressionChart writes a scatter-plus-fit-line chart of a fitted
// regression to path (format chosen by extension, e.g. .png).
//
// Chart axes use plot coordinates (y up), unlike the canvas, so the
// chart is the honest mathematical view of the same data.
func SaveRegressionChart(points []geom.Point, slope, intercept float64, path string) error {
	if len(points) == 0 {
		return errors.NewValueError("SaveRegressionChart", "no points to plot")
	}

	p := plot.New()
	p.Title.Text = "Least-squares fit"
	p.X.Label.Text = "x"
	p.Y.Label.Text = "y"
	p.Add(plotter.NewGrid())

	xys := make(plotter.XYs, len(points))
	for i, pt := range points {
		xys[i].X = pt.X
		xys[i].Y = pt.Y
	}
	scatter, err := plotter.NewScatter(xys)
	if err != nil {
		return errors.Wrap(err, "scatter")
	}

	line := plotter.NewFunction(func(x float64) float64 {
		return slope*x + intercept
	})

	p.Add(scatter, line)
	return p.Save(6*vg.Inch, 4*vg.Inch, path)
}

// SaveConvergenceChart writes the per-iteration WCSS curve of a
// K-means run to path. WCSS is non-increasing until convergence, so a
// flat tail is the visual signature of a fixed point.
func SaveConvergenceChart(wcss []float64, path string) error {
	if len(wcss) == 0 {
		return errors.NewValueError("SaveConvergenceChart", "empty history")
	}

	p := plot.New()
	p.Title.Text = "K-means convergence"
	p.X.Label.Text = "iteration"
	p.Y.Label.Text = "WCSS"
	p.Add(plotter.NewGrid())

	xys := make(plotter.XYs, len(wcss))
	for i, w := range wcss {
		xys[i].X = float64(i + 1)
		xys[i].Y = w
	}
	line, err := plotter.NewLine(xys)
	if err != nil {
		return errors.Wrap(err, "line")
	}

	p.Add(line)
	return p.Save(6*vg.Inch, 4*vg.Inch, path)
}
