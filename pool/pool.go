// Package pool exposes the max pooling layer and its training helpers.
package pool

import (
	"math/rand"

	"github.com/FlavioCFOliveira/maxpool/internal/layer"
	"github.com/FlavioCFOliveira/maxpool/internal/loss"
	"github.com/FlavioCFOliveira/maxpool/internal/net"
	"github.com/FlavioCFOliveira/maxpool/internal/opt"
)

// Re-export common types and functions for easier access
type (
	Size          = layer.Size
	Edge          = layer.Edge
	Topology      = layer.Topology
	PoolingConfig = layer.PoolingConfig
	MaxPooling    = layer.MaxPooling
	Layer         = layer.Layer
	Network       = net.Network
	Loss          = loss.Loss
	Scheduler     = opt.Scheduler
)

// Errors
var (
	ErrIncompatibleGeometry = layer.ErrIncompatibleGeometry
	ErrDimensionMismatch    = layer.ErrDimensionMismatch
	ErrNoForwardContext     = layer.ErrNoForwardContext
)

// Default hyperparameters
const (
	DefaultLearningRate = layer.DefaultLearningRate
	DefaultMomentum     = layer.DefaultMomentum
)

// MaxPool creates a max pooling layer over nFeatMap input-sized grids.
func MaxPool(rng *rand.Rand, input, window Size, nFeatMap int) (*MaxPooling, error) {
	return layer.NewMaxPooling(rng, PoolingConfig{
		InputSize: input,
		PoolSize:  window,
		NFeatMap:  nFeatMap,
	})
}

// NewTopology builds the pooling edge graph on its own.
func NewTopology(input, window Size, nFeatMap int) (*Topology, error) {
	return layer.NewTopology(input, window, nFeatMap)
}

// NewNetwork chains layers into a trainable network.
func NewNetwork(layers ...Layer) (*Network, error) {
	return net.New(layers...)
}
