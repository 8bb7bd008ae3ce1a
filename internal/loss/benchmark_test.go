// Package loss provides benchmarks for loss functions.
package loss

import (
	"math/rand"
	"testing"

	"gonum.org/v1/gonum/mat"
)

// randomMatrix returns an r x c matrix of uniform values.
func randomMatrix(r, c int) *mat.Dense {
	data := make([]float64, r*c)
	for i := range data {
		data[i] = rand.Float64()
	}
	return mat.NewDense(r, c, data)
}

// BenchmarkMSEForward benchmarks MSE loss on a batch.
func BenchmarkMSEForward(b *testing.B) {
	yPred := randomMatrix(196, 32)
	yTrue := randomMatrix(196, 32)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = MSE{}.Forward(yPred, yTrue)
	}
}

// BenchmarkMSEResidual benchmarks the residual error signal.
func BenchmarkMSEResidual(b *testing.B) {
	yPred := randomMatrix(196, 32)
	yTrue := randomMatrix(196, 32)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = MSE{}.Residual(yPred, yTrue)
	}
}
