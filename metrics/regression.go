// Package metrics implements the regression evaluation metrics used by
// the algorithm modules.
package metrics

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/mlboard/pkg/errors"
)

// MSE computes the mean squared error between yTrue and yPred.
func MSE(yTrue, yPred *mat.VecDense) (float64, error) {
	n := yTrue.Len()
	if n == 0 {
		return 0, errors.Wrap(errors.ErrEmptyData, "MSE")
	}

	if yPred.Len() != n {
		return 0, errors.NewDimensionError("MSE", n, yPred.Len())
	}

	// MSE = (1/n) * Σ(yTrue - yPred)²
	var sum float64
	for i := 0; i < n; i++ {
		diff := yTrue.AtVec(i) - yPred.AtVec(i)
		sum += diff * diff
	}

	return sum / float64(n), nil
}

// RMSE computes the root mean squared error between yTrue and yPred.
func RMSE(yTrue, yPred *mat.VecDense) (float64, error) {
	mse, err := MSE(yTrue, yPred)
	if err != nil {
		return 0, err
	}
	return math.Sqrt(mse), nil
}

// MAE computes the mean absolute error between yTrue and yPred.
func MAE(yTrue, yPred *mat.VecDense) (float64, error) {
	n := yTrue.Len()
	if n == 0 {
		return 0, errors.Wrap(errors.ErrEmptyData, "MAE")
	}

	if yPred.Len() != n {
		return 0, errors.NewDimensionError("MAE", n, yPred.Len())
	}

	var sum float64
	for i := 0; i < n; i++ {
		sum += math.Abs(yTrue.AtVec(i) - yPred.AtVec(i))
	}

	return sum / float64(n), nil
}

// R2Score computes the coefficient of determination R² = 1 - SSres/SStot.
//
// When the target has zero variance (SStot == 0) the score is
// ill-defined; R2Score returns 0 and raises an UndefinedMetricWarning
// instead of failing, since a flat target is a legitimate input for a
// teaching dataset.
func R2Score(yTrue, yPred *mat.VecDense) (float64, error) {
	n := yTrue.Len()
	if n == 0 {
		return 0, errors.Wrap(errors.ErrEmptyData, "R2Score")
	}

	if yPred.Len() != n {
		return 0, errors.NewDimensionError("R2Score", n, yPred.Len())
	}

	var yMean float64
	for i := 0; i < n; i++ {
		yMean += yTrue.AtVec(i)
	}
	yMean /= float64(n)

	var ssTot, ssRes float64
	for i := 0; i < n; i++ {
		yi := yTrue.AtVec(i)
		pi := yPred.AtVec(i)

		ssTot += (yi - yMean) * (yi - yMean)
		ssRes += (yi - pi) * (yi - pi)
	}

	if ssTot == 0 {
		errors.Warn(errors.NewUndefinedMetricWarning("r2_score", "zero variance in y_true", 0))
		return 0, nil
	}

	return 1.0 - ssRes/ssTot, nil
}

// Residuals returns yTrue - yPred element-wise.
func Residuals(yTrue, yPred *mat.VecDense) (*mat.VecDense, error) {
	n := yTrue.Len()
	if n == 0 {
		return nil, errors.Wrap(errors.ErrEmptyData, "Residuals")
	}
	if yPred.Len() != n {
		return nil, errors.NewDimensionError("Residuals", n, yPred.Len())
	}

	res := mat.NewVecDense(n, nil)
	res.SubVec(yTrue, yPred)
	return res, nil
}
