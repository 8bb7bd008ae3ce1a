package layer

import "errors"

var (
	// ErrIncompatibleGeometry is returned at construction when the pool
	// window does not evenly tile the input grid.
	ErrIncompatibleGeometry = errors.New("layer: input size and pool size are not compatible")

	// ErrDimensionMismatch is returned when an activation or error matrix
	// does not have the shape the layer expects.
	ErrDimensionMismatch = errors.New("layer: dimension mismatch")

	// ErrNoForwardContext is returned when Backward is called without a
	// preceding Forward whose winners have not been consumed yet.
	ErrNoForwardContext = errors.New("layer: backward called without a matching forward")
)
