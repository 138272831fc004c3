// Package dataset provides the named preset point sets and the random
// generator that feed the algorithm modules. Every call returns a
// fresh copy, so callers can never alias the stored presets.
package dataset

import (
	"math/rand"
	"sort"
	"time"

	"gonum.org/v1/gonum/stat/distuv"

	"github.com/YuminosukeSato/mlboard/geom"
	"github.com/YuminosukeSato/mlboard/pkg/errors"
)

// Pattern selects the shape of randomly generated data.
type Pattern string

const (
	// PatternRandom scatters points uniformly over the canvas.
	PatternRandom Pattern = "random"
	// PatternLinear places points along a noisy line.
	PatternLinear Pattern = "linear"
	// PatternClusters draws points from a few Gaussian blobs.
	PatternClusters Pattern = "clusters"
)

// GenerateOptions parameterizes the random generator. Width and Height
// are the canvas dimensions in pixels. A Seed of 0 means "seed from
// the clock".
type GenerateOptions struct {
	Count   int
	Width   float64
	Height  float64
	Pattern Pattern
	Seed    int64
}

// margin keeps generated points away from the canvas edge.
const margin = 30.0

// Generate produces Count points in the given pattern.
func Generate(opts GenerateOptions) ([]geom.Point, error) {
	if opts.Count <= 0 {
		return nil, errors.NewValidationError("count", "must be positive", opts.Count)
	}
	if opts.Width <= 2*margin || opts.Height <= 2*margin {
		return nil, errors.NewValidationError("size", "canvas too small", []float64{opts.Width, opts.Height})
	}

	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	switch opts.Pattern {
	case PatternRandom, "":
		return generateRandom(opts, rng), nil
	case PatternLinear:
		return generateLinear(opts, rng), nil
	case PatternClusters:
		return generateClusters(opts, rng), nil
	default:
		return nil, errors.NewValidationError("pattern", "unknown pattern", string(opts.Pattern))
	}
}

func generateRandom(opts GenerateOptions, rng *rand.Rand) []geom.Point {
	points := make([]geom.Point, 0, opts.Count)
	for i := 0; i < opts.Count; i++ {
		x := margin + rng.Float64()*(opts.Width-2*margin)
		y := margin + rng.Float64()*(opts.Height-2*margin)
		points = append(points, geom.NewPoint(x, y))
	}
	return points
}

func generateLinear(opts GenerateOptions, rng *rand.Rand) []geom.Point {
	// A downhill line in canvas coordinates reads as an uphill trend on
	// screen, since y grows downward.
	slope := -(opts.Height - 2*margin) / (opts.Width - 2*margin)
	intercept := opts.Height - margin

	noise := distuv.Normal{Mu: 0, Sigma: opts.Height / 12, Src: rand.NewSource(rng.Int63()).(rand.Source64)}

	points := make([]geom.Point, 0, opts.Count)
	for i := 0; i < opts.Count; i++ {
		x := margin + rng.Float64()*(opts.Width-2*margin)
		y := intercept + slope*(x-margin) + noise.Rand()
		y = clamp(y, margin, opts.Height-margin)
		points = append(points, geom.NewPoint(x, y))
	}
	return points
}

func generateClusters(opts GenerateOptions, rng *rand.Rand) []geom.Point {
	const nBlobs = 3

	centers := make([]geom.Point, nBlobs)
	for i := range centers {
		centers[i] = geom.NewPoint(
			opts.Width*0.25+rng.Float64()*opts.Width*0.5,
			opts.Height*0.25+rng.Float64()*opts.Height*0.5,
		)
	}

	jitter := distuv.Normal{Mu: 0, Sigma: opts.Width / 18, Src: rand.NewSource(rng.Int63()).(rand.Source64)}

	points := make([]geom.Point, 0, opts.Count)
	for i := 0; i < opts.Count; i++ {
		c := centers[i%nBlobs]
		x := clamp(c.X+jitter.Rand(), margin, opts.Width-margin)
		y := clamp(c.Y+jitter.Rand(), margin, opts.Height-margin)
		points = append(points, geom.NewPoint(x, y))
	}
	return points
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// presets are the built-in teaching datasets, keyed by name. The
// coordinates assume the default 700x500 canvas.
var presets = map[string][]geom.Point{
	// Points on an exact line plus mild scatter; regression demo.
	"linear-trend": {
		geom.NewPoint(80, 420), geom.NewPoint(150, 380), geom.NewPoint(210, 360),
		geom.NewPoint(270, 310), geom.NewPoint(330, 290), geom.NewPoint(390, 240),
		geom.NewPoint(450, 210), geom.NewPoint(510, 170), geom.NewPoint(570, 130),
		geom.NewPoint(620, 100),
	},
	// Two well-separated triples; the K-means convergence demo.
	"two-clusters": {
		geom.NewPoint(120, 120), geom.NewPoint(150, 140), geom.NewPoint(130, 170),
		geom.NewPoint(540, 370), geom.NewPoint(570, 390), geom.NewPoint(550, 420),
	},
	// Three blobs of five points each.
	"three-clusters": {
		geom.NewPoint(110, 110), geom.NewPoint(140, 130), geom.NewPoint(120, 160),
		geom.NewPoint(160, 150), geom.NewPoint(135, 120),
		geom.NewPoint(560, 130), geom.NewPoint(590, 150), geom.NewPoint(570, 180),
		geom.NewPoint(610, 160), geom.NewPoint(585, 125),
		geom.NewPoint(330, 390), geom.NewPoint(360, 410), geom.NewPoint(340, 440),
		geom.NewPoint(380, 420), geom.NewPoint(355, 395),
	},
	// Pre-labeled halves around x=350; the decision-tree demo.
	"split-demo": {
		geom.NewLabeledPoint(100, 120, 0), geom.NewLabeledPoint(160, 250, 0),
		geom.NewLabeledPoint(220, 180, 0), geom.NewLabeledPoint(250, 360, 0),
		geom.NewLabeledPoint(300, 140, 0), geom.NewLabeledPoint(310, 420, 0),
		geom.NewLabeledPoint(400, 150, 1), geom.NewLabeledPoint(450, 300, 1),
		geom.NewLabeledPoint(500, 220, 1), geom.NewLabeledPoint(540, 400, 1),
		geom.NewLabeledPoint(600, 180, 1), geom.NewLabeledPoint(630, 330, 1),
	},
}

// Preset returns a fresh copy of the named preset.
func Preset(name string) ([]geom.Point, error) {
	points, ok := presets[name]
	if !ok {
		return nil, errors.Wrapf(errors.ErrUnknownPreset, "%q", name)
	}
	return geom.ClonePoints(points), nil
}

// Names returns the preset names in sorted order.
func Names() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
