// Package loss provides comprehensive unit tests for loss functions.
package loss

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

// TestMSEForward tests mean squared error over a batch.
func TestMSEForward(t *testing.T) {
	yPred := mat.NewDense(2, 2, []float64{1, 2, 3, 4})
	yTrue := mat.NewDense(2, 2, []float64{1, 0, 3, 6})

	// Squared differences: 0, 4, 0, 4 -> mean 2
	assert.InDelta(t, 2.0, MSE{}.Forward(yPred, yTrue), 1e-12)
}

// TestMSEForwardPerfect tests that identical matrices give zero loss.
func TestMSEForwardPerfect(t *testing.T) {
	y := mat.NewDense(3, 1, []float64{0.5, -1, 2})
	assert.Equal(t, 0.0, MSE{}.Forward(y, y))
}

// TestMSEResidual tests that the residual points from prediction to target.
func TestMSEResidual(t *testing.T) {
	yPred := mat.NewDense(1, 3, []float64{1, 2, 3})
	yTrue := mat.NewDense(1, 3, []float64{2, 2, 0})

	res := MSE{}.Residual(yPred, yTrue)

	assert.Equal(t, []float64{1, 0, -3}, mat.Row(nil, 0, res))
}

// TestMSEShapeMismatch tests that mismatched shapes panic.
func TestMSEShapeMismatch(t *testing.T) {
	yPred := mat.NewDense(2, 1, nil)
	yTrue := mat.NewDense(1, 2, nil)

	require.Panics(t, func() { MSE{}.Forward(yPred, yTrue) })
	require.Panics(t, func() { MSE{}.Residual(yPred, yTrue) })
}
