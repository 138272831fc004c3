// Command mlboard runs one of the teaching algorithms over a preset or
// generated dataset and renders its states as PNG frames.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/YuminosukeSato/mlboard/cluster"
	"github.com/YuminosukeSato/mlboard/controller"
	"github.com/YuminosukeSato/mlboard/core/algorithm"
	"github.com/YuminosukeSato/mlboard/dataset"
	mllog "github.com/YuminosukeSato/mlboard/pkg/log"
	"github.com/YuminosukeSato/mlboard/regression"
	"github.com/YuminosukeSato/mlboard/render"
)

// stepCap bounds the frame loop against a stepper that never reports done.
const stepCap = 1000

var (
	flagAlgo     string
	flagPreset   string
	flagCount    int
	flagPattern  string
	flagSeed     int64
	flagK        int
	flagMaxDepth int
	flagSteps    bool
	flagOut      string
	flagWidth    int
	flagHeight   int
	flagLogLevel string
)

var rootCmd = &cobra.Command{
	Use:   "mlboard",
	Short: "Step-by-step visualization of textbook ML algorithms",
	Long: `mlboard runs linear regression, K-means or a decision tree over a
small 2D dataset and renders every intermediate state to PNG.`,
	SilenceUsage: true,
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run an algorithm and render its states",
	RunE:  runAlgorithm,
}

var presetsCmd = &cobra.Command{
	Use:   "presets",
	Short: "List the built-in datasets",
	Run: func(cmd *cobra.Command, args []string) {
		for _, name := range dataset.Names() {
			fmt.Println(name)
		}
	},
}

func init() {
	runCmd.Flags().StringVar(&flagAlgo, "algo", "regression", "algorithm: regression, kmeans or tree")
	runCmd.Flags().StringVar(&flagPreset, "preset", "", "built-in dataset name (see 'mlboard presets')")
	runCmd.Flags().IntVar(&flagCount, "count", 30, "generated point count when no preset is given")
	runCmd.Flags().StringVar(&flagPattern, "pattern", "random", "generator pattern: random, linear or clusters")
	runCmd.Flags().Int64Var(&flagSeed, "seed", -1, "random seed; negative seeds from the clock")
	runCmd.Flags().IntVar(&flagK, "k", 3, "cluster count for kmeans")
	runCmd.Flags().IntVar(&flagMaxDepth, "max-depth", 3, "depth limit for tree")
	runCmd.Flags().BoolVar(&flagSteps, "steps", false, "render one frame per step instead of only the final state")
	runCmd.Flags().StringVar(&flagOut, "out", "out", "output directory")
	runCmd.Flags().IntVar(&flagWidth, "width", 700, "canvas width in pixels")
	runCmd.Flags().IntVar(&flagHeight, "height", 500, "canvas height in pixels")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "warn", "log level: debug, info, warn or error")

	rootCmd.AddCommand(runCmd, presetsCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func parseKind(name string) (algorithm.Kind, error) {
	switch name {
	case "regression":
		return algorithm.KindLinearRegression, nil
	case "kmeans":
		return algorithm.KindKMeans, nil
	case "tree":
		return algorithm.KindDecisionTree, nil
	default:
		return 0, fmt.Errorf("unknown algorithm %q (want regression, kmeans or tree)", name)
	}
}

func runAlgorithm(cmd *cobra.Command, args []string) error {
	mllog.SetupLogger(flagLogLevel)
	mllog.SetupWarnLogger()

	kind, err := parseKind(flagAlgo)
	if err != nil {
		return err
	}

	ctrl := controller.New(float64(flagWidth), float64(flagHeight),
		controller.WithRandomState(flagSeed))

	if flagPreset != "" {
		if err := ctrl.LoadPreset(flagPreset); err != nil {
			return err
		}
	} else {
		seed := flagSeed
		if seed < 0 {
			seed = 0 // clock-seeded
		}
		if err := ctrl.Generate(dataset.GenerateOptions{
			Count:   flagCount,
			Pattern: dataset.Pattern(flagPattern),
			Seed:    seed,
		}); err != nil {
			return err
		}
	}

	if err := ctrl.SelectAlgorithm(kind); err != nil {
		return err
	}
	switch kind {
	case algorithm.KindKMeans:
		if err := ctrl.SetParam("k", float64(flagK)); err != nil {
			return err
		}
	case algorithm.KindDecisionTree:
		if err := ctrl.SetParam("maxDepth", float64(flagMaxDepth)); err != nil {
			return err
		}
	}

	if err := os.MkdirAll(flagOut, 0o755); err != nil {
		return err
	}

	canvas := render.NewCanvas(flagWidth, flagHeight)

	if flagSteps {
		for i := 0; i < stepCap; i++ {
			res, err := ctrl.Step()
			if err != nil {
				return err
			}
			fmt.Printf("step %3d: %s\n", i+1, res.Description)

			canvas.Clear()
			ctrl.Redraw(canvas)
			if err := canvas.SavePNG(filepath.Join(flagOut, fmt.Sprintf("frame_%03d.png", i+1))); err != nil {
				return err
			}
			if res.Done {
				break
			}
		}
	} else {
		if err := ctrl.Run(); err != nil {
			return err
		}
		canvas.Clear()
		ctrl.Redraw(canvas)
		if err := canvas.SavePNG(filepath.Join(flagOut, "final.png")); err != nil {
			return err
		}
	}

	if err := saveChart(ctrl, kind); err != nil {
		return err
	}

	for _, stat := range ctrl.Stats() {
		fmt.Printf("%-12s %s\n", stat.Label, stat.Value)
	}
	return nil
}

// saveChart writes the algorithm-specific diagnostic chart, when the
// algorithm has one.
func saveChart(ctrl *controller.Controller, kind algorithm.Kind) error {
	switch kind {
	case algorithm.KindLinearRegression:
		lr, ok := ctrl.Algorithm().(*regression.LinearRegression)
		if !ok || !lr.IsComplete() {
			return nil
		}
		m := lr.Model()
		return render.SaveRegressionChart(ctrl.Points(), m.Slope, m.Intercept,
			filepath.Join(flagOut, "fit.png"))

	case algorithm.KindKMeans:
		km, ok := ctrl.Algorithm().(*cluster.KMeans)
		if !ok {
			return nil
		}
		history := km.History()
		if len(history) == 0 {
			return nil
		}
		wcss := make([]float64, len(history))
		for i, snap := range history {
			wcss[i] = snap.WCSS
		}
		return render.SaveConvergenceChart(wcss, filepath.Join(flagOut, "convergence.png"))
	}
	return nil
}
