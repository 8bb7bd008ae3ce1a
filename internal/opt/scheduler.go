package opt

import "math"

// Scheduler supplies the learning rate handed to each backward call.
type Scheduler interface {
	// Step advances the schedule by one epoch.
	Step()
	LR() float64
}

// ConstantLR keeps the learning rate fixed.
type ConstantLR struct {
	Rate float64
}

func (s ConstantLR) Step()       {}
func (s ConstantLR) LR() float64 { return s.Rate }

// StepLR decays the learning rate by gamma every stepSize epochs.
type StepLR struct {
	stepSize  int
	gamma     float64
	lastEpoch int
	initialLR float64
}

func NewStepLR(initialLR float64, stepSize int, gamma float64) *StepLR {
	if stepSize <= 0 {
		panic("StepLR: stepSize must be positive")
	}
	return &StepLR{
		stepSize:  stepSize,
		gamma:     gamma,
		initialLR: initialLR,
	}
}

func (s *StepLR) Step() {
	s.lastEpoch++
}

// LR returns initialLR * gamma^(lastEpoch / stepSize).
func (s *StepLR) LR() float64 {
	return s.initialLR * math.Pow(s.gamma, float64(s.lastEpoch/s.stepSize))
}
