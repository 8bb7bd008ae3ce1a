// Package opt provides comprehensive unit tests for optimizers.
package opt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestMomentumFirstStep tests that the first step from zero velocity is a plain lr-scaled step.
func TestMomentumFirstStep(t *testing.T) {
	m := Momentum{LearningRate: 0.1, Momentum: 0.5}

	params := []float64{1.0, 0.0}
	velocity := []float64{0.0, 0.0}
	gradients := []float64{2.0, -0.5}

	m.StepInPlace(params, velocity, gradients)

	assert.InDelta(t, 0.2, velocity[0], 1e-12)
	assert.InDelta(t, -0.05, velocity[1], 1e-12)
	assert.InDelta(t, 1.2, params[0], 1e-12)
	assert.InDelta(t, -0.05, params[1], 1e-12)
}

// TestMomentumRecurrence tests v2 = m*(r*g) + r*g after two identical steps.
func TestMomentumRecurrence(t *testing.T) {
	const (
		r = 0.1
		m = 0.5
		g = 3.0
	)
	opt := Momentum{LearningRate: r, Momentum: m}

	params := []float64{1.0}
	velocity := []float64{0.0}

	opt.StepInPlace(params, velocity, []float64{g})
	opt.StepInPlace(params, velocity, []float64{g})

	assert.InDelta(t, m*(r*g)+r*g, velocity[0], 1e-12)
	assert.InDelta(t, 1.0+r*g+(m*r*g+r*g), params[0], 1e-12)
}

// TestMomentumZeroDecay tests that zero momentum reduces to plain gradient steps.
func TestMomentumZeroDecay(t *testing.T) {
	opt := Momentum{LearningRate: 0.5, Momentum: 0}

	params := []float64{0}
	velocity := []float64{10}

	opt.StepInPlace(params, velocity, []float64{1})

	assert.InDelta(t, 0.5, velocity[0], 1e-12)
	assert.InDelta(t, 0.5, params[0], 1e-12)
}

// TestMomentumLengthMismatch tests that mismatched slices panic.
func TestMomentumLengthMismatch(t *testing.T) {
	opt := Momentum{LearningRate: 0.1, Momentum: 0.5}

	require.Panics(t, func() {
		opt.StepInPlace([]float64{1, 2}, []float64{0}, []float64{1, 2})
	})
}

func TestConstantLR(t *testing.T) {
	s := ConstantLR{Rate: 0.25}
	for i := 0; i < 5; i++ {
		s.Step()
	}
	assert.Equal(t, 0.25, s.LR())
}

func TestStepLR(t *testing.T) {
	s := NewStepLR(0.1, 2, 0.5)

	tests := []struct {
		epoch int
		want  float64
	}{
		{0, 0.1},
		{1, 0.1},
		{2, 0.05},
		{3, 0.05},
		{4, 0.025},
	}

	for _, tt := range tests {
		for s.lastEpoch < tt.epoch {
			s.Step()
		}
		assert.InDelta(t, tt.want, s.LR(), 1e-12, "epoch %d", tt.epoch)
	}
}

func TestStepLRRejectsZeroStep(t *testing.T) {
	require.Panics(t, func() { NewStepLR(0.1, 0, 0.5) })
}
