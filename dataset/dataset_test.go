package dataset

import (
	"testing"

	"github.com/YuminosukeSato/mlboard/geom"
	"github.com/YuminosukeSato/mlboard/pkg/errors"
)

func TestGenerate(t *testing.T) {
	tests := []struct {
		name    string
		opts    GenerateOptions
		wantErr bool
	}{
		{
			name: "random",
			opts: GenerateOptions{Count: 25, Width: 700, Height: 500, Pattern: PatternRandom, Seed: 1},
		},
		{
			name: "empty pattern defaults to random",
			opts: GenerateOptions{Count: 10, Width: 700, Height: 500, Seed: 1},
		},
		{
			name: "linear",
			opts: GenerateOptions{Count: 40, Width: 700, Height: 500, Pattern: PatternLinear, Seed: 2},
		},
		{
			name: "clusters",
			opts: GenerateOptions{Count: 30, Width: 700, Height: 500, Pattern: PatternClusters, Seed: 3},
		},
		{
			name:    "zero count",
			opts:    GenerateOptions{Count: 0, Width: 700, Height: 500, Seed: 1},
			wantErr: true,
		},
		{
			name:    "canvas too small",
			opts:    GenerateOptions{Count: 10, Width: 40, Height: 40, Seed: 1},
			wantErr: true,
		},
		{
			name:    "unknown pattern",
			opts:    GenerateOptions{Count: 10, Width: 700, Height: 500, Pattern: "spiral", Seed: 1},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			points, err := Generate(tt.opts)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Generate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil {
				return
			}
			if len(points) != tt.opts.Count {
				t.Errorf("len(points) = %d, want %d", len(points), tt.opts.Count)
			}
			for i, p := range points {
				if p.X < 0 || p.X > tt.opts.Width || p.Y < 0 || p.Y > tt.opts.Height {
					t.Errorf("point %d = (%v, %v) outside %vx%v canvas", i, p.X, p.Y, tt.opts.Width, tt.opts.Height)
				}
			}
		})
	}
}

func TestGenerateDeterministic(t *testing.T) {
	opts := GenerateOptions{Count: 20, Width: 700, Height: 500, Pattern: PatternClusters, Seed: 42}

	a, err := Generate(opts)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	b, err := Generate(opts)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("same seed produced different points at %d: %v vs %v", i, a[i], b[i])
		}
	}
}

func TestPreset(t *testing.T) {
	points, err := Preset("two-clusters")
	if err != nil {
		t.Fatalf("Preset() error = %v", err)
	}
	if len(points) != 6 {
		t.Errorf("len(points) = %d, want 6", len(points))
	}

	// Presets hand out copies; callers must not be able to corrupt them.
	points[0].X = -1
	again, _ := Preset("two-clusters")
	if again[0].X == -1 {
		t.Error("mutating a returned preset changed the stored preset")
	}

	if _, err := Preset("no-such-preset"); !errors.Is(err, errors.ErrUnknownPreset) {
		t.Errorf("unknown preset error = %v, want ErrUnknownPreset", err)
	}
}

func TestPresetLabels(t *testing.T) {
	points, err := Preset("split-demo")
	if err != nil {
		t.Fatalf("Preset() error = %v", err)
	}
	for i, p := range points {
		if p.Label == geom.Unlabeled {
			t.Errorf("split-demo point %d is unlabeled", i)
		}
	}

	trend, _ := Preset("linear-trend")
	for i, p := range trend {
		if p.Label != geom.Unlabeled {
			t.Errorf("linear-trend point %d carries label %d", i, p.Label)
		}
	}
}

func TestNames(t *testing.T) {
	names := Names()
	if len(names) != 4 {
		t.Fatalf("len(Names()) = %d, want 4", len(names))
	}
	for i := 1; i < len(names); i++ {
		if names[i-1] >= names[i] {
			t.Errorf("Names() not sorted: %q before %q", names[i-1], names[i])
		}
	}
}
