// Package layer provides neural network layer implementations.
package layer

import "gonum.org/v1/gonum/mat"

// Default hyperparameters used when the training loop supplies none.
const (
	DefaultLearningRate = 0.1
	DefaultMomentum     = 0.5
)

// Layer is a neural network layer operating on batches.
// Activation and error matrices have one row per node and one column per sample.
type Layer interface {
	Forward(x *mat.Dense) (*mat.Dense, error)
	// Backward consumes the error signal for the last Forward call, updates
	// the layer's parameters and returns the error for the previous layer.
	Backward(grad *mat.Dense, learningRate, momentum float64) (*mat.Dense, error)
	Params() []float64
	InSize() int
	OutSize() int
}
