package errors

import (
	"strings"
	"testing"
)

func TestNotFittedError(t *testing.T) {
	err := NewNotFittedError("KMeans", "Step")

	var nfe *NotFittedError
	if !As(err, &nfe) {
		t.Fatal("expected NotFittedError")
	}
	if nfe.ModelName != "KMeans" || nfe.Method != "Step" {
		t.Errorf("unexpected fields: %+v", nfe)
	}
	if !strings.Contains(err.Error(), "mlboard:") {
		t.Errorf("message %q should carry the mlboard prefix", err.Error())
	}
}

func TestInsufficientDataError(t *testing.T) {
	err := NewInsufficientDataError("LinearRegression", 2, 1)

	var ide *InsufficientDataError
	if !As(err, &ide) {
		t.Fatal("expected InsufficientDataError")
	}
	if ide.Required != 2 || ide.Got != 1 {
		t.Errorf("unexpected fields: %+v", ide)
	}
}

func TestDimensionError(t *testing.T) {
	err := NewDimensionError("MSE", 3, 2)

	var de *DimensionError
	if !As(err, &de) {
		t.Fatal("expected DimensionError")
	}
	if de.Expected != 3 || de.Got != 2 {
		t.Errorf("unexpected fields: %+v", de)
	}
}

func TestValidationError(t *testing.T) {
	err := NewValidationError("k", "out of range [1, 10]", 42.0)

	var ve *ValidationError
	if !As(err, &ve) {
		t.Fatal("expected ValidationError")
	}
	if ve.ParamName != "k" {
		t.Errorf("ParamName = %q, want k", ve.ParamName)
	}
}

func TestWrapPreservesType(t *testing.T) {
	base := NewValueError("Generate", "count must be positive")
	wrapped := Wrap(base, "loading dataset")

	var ve *ValueError
	if !As(wrapped, &ve) {
		t.Error("wrapping should preserve the concrete error type")
	}
	if !strings.Contains(wrapped.Error(), "loading dataset") {
		t.Errorf("wrapped message = %q", wrapped.Error())
	}
}

func TestWarnHandler(t *testing.T) {
	var got error
	SetWarningHandler(func(w error) { got = w })
	defer SetWarningHandler(nil)

	w := NewConvergenceWarning("KMeans", 50, "did not converge")
	Warn(w)

	var cw *ConvergenceWarning
	if !As(got, &cw) {
		t.Fatalf("handler received %v, want ConvergenceWarning", got)
	}
	if cw.Iterations != 50 {
		t.Errorf("Iterations = %d, want 50", cw.Iterations)
	}
}

func TestEmptyClusterWarning(t *testing.T) {
	w := NewEmptyClusterWarning(2, 7)
	if w.Cluster != 2 || w.Iteration != 7 {
		t.Errorf("unexpected fields: %+v", w)
	}
	if !strings.Contains(w.Error(), "cluster") {
		t.Errorf("message %q should mention the cluster", w.Error())
	}
}
