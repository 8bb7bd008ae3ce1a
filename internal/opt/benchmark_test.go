// Package opt provides benchmarks for optimizers.
package opt

import (
	"math/rand"
	"testing"
)

// fillRandom fills a slice with random values.
func fillRandom(slice []float64) {
	for i := range slice {
		slice[i] = rand.Float64()
	}
}

// BenchmarkMomentumStepInPlace benchmarks the heavy-ball update.
func BenchmarkMomentumStepInPlace(b *testing.B) {
	m := Momentum{LearningRate: 0.1, Momentum: 0.5}
	params := make([]float64, 1000)
	velocity := make([]float64, 1000)
	gradients := make([]float64, 1000)
	fillRandom(params)
	fillRandom(gradients)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		m.StepInPlace(params, velocity, gradients)
	}
}
