// Package opt provides optimization algorithms.
package opt

// Momentum is the heavy-ball update used for layer calibration parameters.
//
// Gradients are taken against the residual error signal (target - output),
// so the velocity is added to the parameters rather than subtracted.
type Momentum struct {
	LearningRate float64
	Momentum     float64 // Decay applied to the previous velocity
}

// StepInPlace updates velocity and params in-place:
// velocity = momentum*velocity + lr*gradients; params += velocity
func (m Momentum) StepInPlace(params, velocity, gradients []float64) {
	n := len(params)
	if n != len(velocity) || n != len(gradients) {
		panic("Momentum: params, velocity and gradients must have same length")
	}

	for i := 0; i < n; i++ {
		velocity[i] = m.Momentum*velocity[i] + m.LearningRate*gradients[i]
		params[i] += velocity[i]
	}
}
