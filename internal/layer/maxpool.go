package layer

import (
	"fmt"
	"math/rand"

	"github.com/FlavioCFOliveira/maxpool/internal/opt"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// PoolingConfig describes the geometry of a MaxPooling layer.
type PoolingConfig struct {
	InputSize Size // per feature map
	PoolSize  Size
	NFeatMap  int
}

// Validate checks that the pool window evenly tiles the input grid.
func (c PoolingConfig) Validate() error {
	if c.InputSize.Rows <= 0 || c.InputSize.Cols <= 0 || c.NFeatMap <= 0 {
		return fmt.Errorf("%w: input %v with %d feature maps", ErrIncompatibleGeometry, c.InputSize, c.NFeatMap)
	}
	if !c.InputSize.DivisibleBy(c.PoolSize) {
		return fmt.Errorf("%w: input %v, pool %v", ErrIncompatibleGeometry, c.InputSize, c.PoolSize)
	}
	return nil
}

// MaxPooling implements non-overlapping max pooling followed by a learned
// per-feature-map affine calibration: out = scale[f]*max(window) + bias[f].
//
// Forward records, for every output node and every sample, which candidate
// input won the window. The following Backward routes error only through
// those winners and updates scale and bias with momentum.
// A MaxPooling is not safe for concurrent use.
type MaxPooling struct {
	// Accepted for parity with layers that draw initial weights; never read.
	rng  *rand.Rand
	topo *Topology

	// Per-feature-map calibration and momentum velocities
	scale  []float64
	bias   []float64
	dscale []float64
	dbias  []float64

	// State of the last Forward call
	input    *mat.Dense
	output   *mat.Dense
	winners  []int // winners[o*nSamples+d] is the winning candidate of output o for sample d
	nSamples int
	primed   bool

	// Reusable gradient buffers
	gradScaleBuf []float64
	gradBiasBuf  []float64
}

// NewMaxPooling creates a max pooling layer with identity calibration
// (scale 1, bias 0). rng is kept for interface uniformity and is not consumed.
func NewMaxPooling(rng *rand.Rand, cfg PoolingConfig) (*MaxPooling, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	topo, err := NewTopology(cfg.InputSize, cfg.PoolSize, cfg.NFeatMap)
	if err != nil {
		return nil, err
	}

	n := cfg.NFeatMap
	scale := make([]float64, n)
	for i := range scale {
		scale[i] = 1.0
	}

	return &MaxPooling{
		rng:          rng,
		topo:         topo,
		scale:        scale,
		bias:         make([]float64, n),
		dscale:       make([]float64, n),
		dbias:        make([]float64, n),
		gradScaleBuf: make([]float64, n),
		gradBiasBuf:  make([]float64, n),
	}, nil
}

// Forward pools x, an InSize() x nSamples matrix, into an OutSize() x nSamples matrix.
// Ties within a window go to the first candidate in row-major window order.
func (p *MaxPooling) Forward(x *mat.Dense) (*mat.Dense, error) {
	rows, cols := x.Dims()
	if rows != p.topo.NInput() {
		return nil, fmt.Errorf("%w: forward input has %d rows, want %d", ErrDimensionMismatch, rows, p.topo.NInput())
	}
	if cols == 0 {
		return nil, fmt.Errorf("%w: forward input has no samples", ErrDimensionMismatch)
	}

	input := mat.DenseCopyOf(x)
	nOut := p.topo.NOutput()
	output := mat.NewDense(nOut, cols, nil)
	winners := make([]int, nOut*cols)

	forEachSampleChunk(cols, func(start, end int) {
		window := make([]float64, p.topo.PoolSize().Total())
		for d := start; d < end; d++ {
			for o := 0; o < nOut; o++ {
				edges := p.topo.OutputEdges(o)
				for e, edge := range edges {
					window[e] = input.At(edge.To, d)
				}
				best := floats.MaxIdx(window[:len(edges)])
				f := edges[best].FeatMap
				output.Set(o, d, p.scale[f]*window[best]+p.bias[f])
				winners[o*cols+d] = best
			}
		}
	})

	p.input = input
	p.output = output
	p.winners = winners
	p.nSamples = cols
	p.primed = true

	return output, nil
}

// Backward routes grad, an OutSize() x nSamples error matrix for the last
// Forward call, back to the winning inputs and updates scale and bias:
//
//	dscale = momentum*dscale + learningRate*gradScale; scale += dscale
//	dbias  = momentum*dbias  + learningRate*gradBias;  bias  += dbias
//
// The returned error uses the scale in effect during Forward.
func (p *MaxPooling) Backward(grad *mat.Dense, learningRate, momentum float64) (*mat.Dense, error) {
	if !p.primed {
		return nil, ErrNoForwardContext
	}
	rows, cols := grad.Dims()
	if rows != p.topo.NOutput() || cols != p.nSamples {
		return nil, fmt.Errorf("%w: backward error is %dx%d, want %dx%d",
			ErrDimensionMismatch, rows, cols, p.topo.NOutput(), p.nSamples)
	}

	nIn := p.topo.NInput()
	prevErr := mat.NewDense(nIn, cols, nil)

	// Step 1: error routing through the recorded winners only
	forEachSampleChunk(cols, func(start, end int) {
		for d := start; d < end; d++ {
			for i := 0; i < nIn; i++ {
				var sum float64
				for _, edge := range p.topo.InputEdges(i) {
					if p.isWinner(edge, d) {
						sum += p.scale[edge.FeatMap] * grad.At(edge.To, d)
					}
				}
				prevErr.Set(i, d, sum)
			}
		}
	})

	// Step 2: calibration gradients, normalized per feature map
	gradScale := p.gradScaleBuf
	gradBias := p.gradBiasBuf
	for f := range gradScale {
		gradScale[f] = 0
		gradBias[f] = 0
	}
	for d := 0; d < cols; d++ {
		for i := 0; i < nIn; i++ {
			for _, edge := range p.topo.InputEdges(i) {
				if p.isWinner(edge, d) {
					e := grad.At(edge.To, d)
					gradScale[edge.FeatMap] += p.input.At(i, d) * e
					gradBias[edge.FeatMap] += e
				}
			}
		}
	}
	norm := 1.0 / float64(cols*p.topo.OutputSize().Total())
	floats.Scale(norm, gradScale)
	floats.Scale(norm, gradBias)

	// Step 3: momentum update
	step := opt.Momentum{LearningRate: learningRate, Momentum: momentum}
	step.StepInPlace(p.scale, p.dscale, gradScale)
	step.StepInPlace(p.bias, p.dbias, gradBias)

	p.winners = nil
	p.primed = false

	return prevErr, nil
}

// isWinner reports whether the input side of edge won its window for sample d.
func (p *MaxPooling) isWinner(edge Edge, d int) bool {
	return p.winners[edge.To*p.nSamples+d] == edge.Rev
}

// Params returns the calibration parameters: all scales followed by all biases.
func (p *MaxPooling) Params() []float64 {
	params := make([]float64, 0, 2*len(p.scale))
	params = append(params, p.scale...)
	params = append(params, p.bias...)
	return params
}

// InSize returns the number of input nodes (feature maps * input cells).
func (p *MaxPooling) InSize() int {
	return p.topo.NInput()
}

// OutSize returns the number of output nodes (feature maps * output cells).
func (p *MaxPooling) OutSize() int {
	return p.topo.NOutput()
}

// Topology returns the layer's edge graph.
func (p *MaxPooling) Topology() *Topology {
	return p.topo
}

// Scale returns a copy of the per-feature-map scales.
func (p *MaxPooling) Scale() []float64 {
	return append([]float64(nil), p.scale...)
}

// Bias returns a copy of the per-feature-map biases.
func (p *MaxPooling) Bias() []float64 {
	return append([]float64(nil), p.bias...)
}

// Primed reports whether a Forward result is waiting for its Backward.
func (p *MaxPooling) Primed() bool {
	return p.primed
}

// Winners returns a copy of the winner table of the pending Forward call,
// indexed by output*nSamples+sample, or nil if the layer is not primed.
func (p *MaxPooling) Winners() []int {
	if !p.primed {
		return nil
	}
	return append([]int(nil), p.winners...)
}

// Output returns the result of the last Forward call.
func (p *MaxPooling) Output() *mat.Dense {
	return p.output
}
