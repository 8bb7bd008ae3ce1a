// Package loss provides loss functions over batched activation matrices.
package loss

import "gonum.org/v1/gonum/mat"

// Loss is a loss function with its error signal.
type Loss interface {
	// Forward computes the loss between predicted and true values.
	Forward(yPred, yTrue *mat.Dense) float64

	// Residual returns the error signal fed to Backward. Layers add their
	// momentum step, so the signal points from the prediction to the target.
	Residual(yPred, yTrue *mat.Dense) *mat.Dense
}

// MSE (Mean Squared Error) loss.
type MSE struct{}

// Forward computes mean squared error over every element of the batch:
// (1/n) * sum((y_pred - y_true)^2)
func (m MSE) Forward(yPred, yTrue *mat.Dense) float64 {
	checkShape("MSE", yPred, yTrue)

	var diff mat.Dense
	diff.Sub(yPred, yTrue)
	r, c := diff.Dims()
	norm := mat.Norm(&diff, 2)
	return norm * norm / float64(r*c)
}

// Residual computes y_true - y_pred.
func (m MSE) Residual(yPred, yTrue *mat.Dense) *mat.Dense {
	checkShape("MSE", yPred, yTrue)

	var res mat.Dense
	res.Sub(yTrue, yPred)
	return &res
}

func checkShape(name string, yPred, yTrue *mat.Dense) {
	pr, pc := yPred.Dims()
	tr, tc := yTrue.Dims()
	if pr != tr || pc != tc {
		panic(name + ": prediction and target must have same shape")
	}
}
