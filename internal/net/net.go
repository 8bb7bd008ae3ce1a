// Package net provides core neural network types.
package net

import (
	"fmt"
	"io"

	"github.com/FlavioCFOliveira/maxpool/internal/layer"
	"github.com/FlavioCFOliveira/maxpool/internal/loss"
	"github.com/FlavioCFOliveira/maxpool/internal/opt"
	"gonum.org/v1/gonum/mat"
)

// Network is a collection of layers that can be forwarded and backwarded.
type Network struct {
	layers   []layer.Layer
	loss     loss.Loss
	sched    opt.Scheduler
	momentum float64
}

// New creates a network from layers whose sizes chain together.
// Training uses MSE, a constant default learning rate and the default momentum
// until Compile is called.
func New(layers ...layer.Layer) (*Network, error) {
	if len(layers) == 0 {
		return nil, fmt.Errorf("net: no layers")
	}
	for i := 1; i < len(layers); i++ {
		if layers[i-1].OutSize() != layers[i].InSize() {
			return nil, fmt.Errorf("%w: layer %d outputs %d nodes, layer %d expects %d",
				layer.ErrDimensionMismatch, i-1, layers[i-1].OutSize(), i, layers[i].InSize())
		}
	}
	return &Network{
		layers:   layers,
		loss:     loss.MSE{},
		sched:    opt.ConstantLR{Rate: layer.DefaultLearningRate},
		momentum: layer.DefaultMomentum,
	}, nil
}

// Compile configures the loss, the learning rate schedule and the momentum.
func (n *Network) Compile(lossFn loss.Loss, sched opt.Scheduler, momentum float64) {
	n.loss = lossFn
	n.sched = sched
	n.momentum = momentum
}

// Forward performs a forward pass through all layers.
func (n *Network) Forward(x *mat.Dense) (*mat.Dense, error) {
	curr := x
	for i, l := range n.layers {
		next, err := l.Forward(curr)
		if err != nil {
			return nil, fmt.Errorf("layer %d forward: %w", i, err)
		}
		curr = next
	}
	return curr, nil
}

// Backward performs a backward pass through all layers in reverse order.
func (n *Network) Backward(grad *mat.Dense, learningRate, momentum float64) (*mat.Dense, error) {
	curr := grad
	for i := len(n.layers) - 1; i >= 0; i-- {
		prev, err := n.layers[i].Backward(curr, learningRate, momentum)
		if err != nil {
			return nil, fmt.Errorf("layer %d backward: %w", i, err)
		}
		curr = prev
	}
	return curr, nil
}

// TrainBatch runs one forward/backward step on a batch and returns the loss
// measured before the update.
func (n *Network) TrainBatch(x, y *mat.Dense) (float64, error) {
	pred, err := n.Forward(x)
	if err != nil {
		return 0, err
	}
	pr, pc := pred.Dims()
	yr, yc := y.Dims()
	if pr != yr || pc != yc {
		return 0, fmt.Errorf("%w: target is %dx%d, prediction is %dx%d", layer.ErrDimensionMismatch, yr, yc, pr, pc)
	}

	batchLoss := n.loss.Forward(pred, y)
	if _, err := n.Backward(n.loss.Residual(pred, y), n.sched.LR(), n.momentum); err != nil {
		return 0, err
	}
	return batchLoss, nil
}

// Fit trains on batches for the given number of epochs.
// The epoch loss is the mean batch loss.
func (n *Network) Fit(xs, ys []*mat.Dense, epochs int, callbacks ...Callback) error {
	if len(xs) != len(ys) {
		return fmt.Errorf("net: %d input batches, %d target batches", len(xs), len(ys))
	}
	if len(xs) == 0 {
		return fmt.Errorf("net: no batches")
	}

	for _, cb := range callbacks {
		cb.OnTrainBegin(n)
	}
	defer func() {
		for _, cb := range callbacks {
			cb.OnTrainEnd(n)
		}
	}()

	for epoch := 1; epoch <= epochs; epoch++ {
		var total float64
		for i := range xs {
			batchLoss, err := n.TrainBatch(xs[i], ys[i])
			if err != nil {
				return fmt.Errorf("epoch %d batch %d: %w", epoch, i, err)
			}
			total += batchLoss
		}
		epochLoss := total / float64(len(xs))

		stop := false
		for _, cb := range callbacks {
			cb.OnEpochEnd(epoch, epochLoss, n)
			if s, ok := cb.(Stopper); ok && s.ShouldStop() {
				stop = true
			}
		}
		if stop {
			break
		}
	}
	return nil
}

// Evaluate calculates the loss on a batch without updating parameters.
func (n *Network) Evaluate(x, y *mat.Dense) (float64, error) {
	pred, err := n.Forward(x)
	if err != nil {
		return 0, err
	}
	return n.loss.Forward(pred, y), nil
}

// Layers returns the network's layers.
func (n *Network) Layers() []layer.Layer {
	return n.layers
}

// LearningRate returns the learning rate the next batch will use.
func (n *Network) LearningRate() float64 {
	return n.sched.LR()
}

// Params returns all layer parameters flattened.
func (n *Network) Params() []float64 {
	var params []float64
	for _, l := range n.layers {
		params = append(params, l.Params()...)
	}
	return params
}

// Summary writes a summary of the network architecture.
func (n *Network) Summary(w io.Writer) {
	fmt.Fprintln(w, "Model: Network")
	fmt.Fprintln(w, "_________________________________________________________________")
	fmt.Fprintf(w, "%-25s %-20s %-10s\n", "Layer (type)", "Output Shape", "Param #")
	fmt.Fprintln(w, "=================================================================")

	totalParams := 0
	for i, l := range n.layers {
		lType := fmt.Sprintf("%T", l)
		// Extract simple type name
		for j := len(lType) - 1; j >= 0; j-- {
			if lType[j] == '.' {
				lType = lType[j+1:]
				break
			}
		}

		outShape := fmt.Sprintf("(%d)", l.OutSize())
		params := len(l.Params())
		totalParams += params

		fmt.Fprintf(w, "%-25s %-20s %-10d\n", fmt.Sprintf("%s_%d", lType, i), outShape, params)
	}
	fmt.Fprintln(w, "=================================================================")
	fmt.Fprintf(w, "Total params: %d\n", totalParams)
	fmt.Fprintln(w, "_________________________________________________________________")
}
