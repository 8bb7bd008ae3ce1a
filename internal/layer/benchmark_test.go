package layer

import (
	"math/rand"
	"testing"

	"gonum.org/v1/gonum/mat"
)

// randomBatch returns an n x samples matrix of uniform values.
func randomBatch(n, samples int) *mat.Dense {
	data := make([]float64, n*samples)
	for i := range data {
		data[i] = rand.Float64()
	}
	return mat.NewDense(n, samples, data)
}

func BenchmarkNewTopology(b *testing.B) {
	for i := 0; i < b.N; i++ {
		_, _ = NewTopology(Size{28, 28}, Size{2, 2}, 16)
	}
}

func BenchmarkMaxPoolingForward(b *testing.B) {
	p := newTestPooling(b, Size{28, 28}, Size{2, 2}, 8)
	x := randomBatch(p.InSize(), 32)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = p.Forward(x)
	}
}

func BenchmarkMaxPoolingForwardBackward(b *testing.B) {
	p := newTestPooling(b, Size{28, 28}, Size{2, 2}, 8)
	x := randomBatch(p.InSize(), 32)
	grad := randomBatch(p.OutSize(), 32)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = p.Forward(x)
		_, _ = p.Backward(grad, DefaultLearningRate, DefaultMomentum)
	}
}

func BenchmarkMaxPoolingForwardLargeBatch(b *testing.B) {
	p := newTestPooling(b, Size{28, 28}, Size{2, 2}, 8)
	x := randomBatch(p.InSize(), 256)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = p.Forward(x)
	}
}
