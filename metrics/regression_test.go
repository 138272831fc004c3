package metrics

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/mlboard/pkg/errors"
)

func TestMSE(t *testing.T) {
	tests := []struct {
		name    string
		yTrue   *mat.VecDense
		yPred   *mat.VecDense
		want    float64
		wantErr bool
	}{
		{
			name:  "perfect prediction",
			yTrue: mat.NewVecDense(3, []float64{1, 2, 3}),
			yPred: mat.NewVecDense(3, []float64{1, 2, 3}),
			want:  0,
		},
		{
			name:  "simple case",
			yTrue: mat.NewVecDense(4, []float64{1, 2, 3, 4}),
			yPred: mat.NewVecDense(4, []float64{1.5, 2.5, 2.5, 3.5}),
			want:  0.25,
		},
		{
			name:    "dimension mismatch",
			yTrue:   mat.NewVecDense(3, []float64{1, 2, 3}),
			yPred:   mat.NewVecDense(2, []float64{1, 2}),
			wantErr: true,
		},
		{
			name:    "empty vectors",
			yTrue:   &mat.VecDense{},
			yPred:   &mat.VecDense{},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := MSE(tt.yTrue, tt.yPred)
			if (err != nil) != tt.wantErr {
				t.Errorf("MSE() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if err == nil && math.Abs(got-tt.want) > 1e-10 {
				t.Errorf("MSE() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRMSE(t *testing.T) {
	yTrue := mat.NewVecDense(4, []float64{1, 2, 3, 4})
	yPred := mat.NewVecDense(4, []float64{2, 3, 4, 5})

	got, err := RMSE(yTrue, yPred)
	if err != nil {
		t.Fatalf("RMSE() error = %v", err)
	}
	if math.Abs(got-1.0) > 1e-10 {
		t.Errorf("RMSE() = %v, want 1.0", got)
	}
}

func TestMAE(t *testing.T) {
	yTrue := mat.NewVecDense(3, []float64{1, 2, 3})
	yPred := mat.NewVecDense(3, []float64{2, 2, 1})

	got, err := MAE(yTrue, yPred)
	if err != nil {
		t.Fatalf("MAE() error = %v", err)
	}
	if math.Abs(got-1.0) > 1e-10 {
		t.Errorf("MAE() = %v, want 1.0", got)
	}
}

func TestR2Score(t *testing.T) {
	tests := []struct {
		name    string
		yTrue   *mat.VecDense
		yPred   *mat.VecDense
		want    float64
		wantErr bool
	}{
		{
			name:  "perfect fit",
			yTrue: mat.NewVecDense(3, []float64{1, 2, 3}),
			yPred: mat.NewVecDense(3, []float64{1, 2, 3}),
			want:  1,
		},
		{
			name:  "mean predictor scores zero",
			yTrue: mat.NewVecDense(4, []float64{1, 2, 3, 4}),
			yPred: mat.NewVecDense(4, []float64{2.5, 2.5, 2.5, 2.5}),
			want:  0,
		},
		{
			name:    "empty vectors",
			yTrue:   &mat.VecDense{},
			yPred:   &mat.VecDense{},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := R2Score(tt.yTrue, tt.yPred)
			if (err != nil) != tt.wantErr {
				t.Errorf("R2Score() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if err == nil && math.Abs(got-tt.want) > 1e-10 {
				t.Errorf("R2Score() = %v, want %v", got, tt.want)
			}
		})
	}
}

// A constant target makes R² ill-defined; the score degrades to 0 and a
// warning is raised rather than an error.
func TestR2ScoreZeroVariance(t *testing.T) {
	var warned error
	errors.SetWarningHandler(func(w error) { warned = w })
	defer errors.SetWarningHandler(nil)

	yTrue := mat.NewVecDense(3, []float64{5, 5, 5})
	yPred := mat.NewVecDense(3, []float64{4, 5, 6})

	got, err := R2Score(yTrue, yPred)
	if err != nil {
		t.Fatalf("R2Score() error = %v", err)
	}
	if got != 0 {
		t.Errorf("R2Score() = %v, want 0", got)
	}

	var umw *errors.UndefinedMetricWarning
	if !errors.As(warned, &umw) {
		t.Errorf("expected UndefinedMetricWarning, got %v", warned)
	}
}

func TestResiduals(t *testing.T) {
	yTrue := mat.NewVecDense(3, []float64{1, 4, 9})
	yPred := mat.NewVecDense(3, []float64{2, 4, 6})

	res, err := Residuals(yTrue, yPred)
	if err != nil {
		t.Fatalf("Residuals() error = %v", err)
	}
	want := []float64{-1, 0, 3}
	for i, w := range want {
		if math.Abs(res.AtVec(i)-w) > 1e-10 {
			t.Errorf("Residuals()[%d] = %v, want %v", i, res.AtVec(i), w)
		}
	}

	if _, err := Residuals(&mat.VecDense{}, &mat.VecDense{}); !errors.Is(err, errors.ErrEmptyData) {
		t.Errorf("Residuals() on empty vectors = %v, want ErrEmptyData", err)
	}
}
