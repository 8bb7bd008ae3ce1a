package layer

import "fmt"

// Edge connects a node on one side of the pooling boundary to a node on the
// other side.
type Edge struct {
	// To is the flat index of the counterpart node.
	To int
	// FeatMap is the feature map both endpoints belong to.
	FeatMap int
	// Rev is the position of the reciprocal edge in the counterpart's list.
	Rev int
}

// Topology is the static bipartite graph between the input units of a
// pooling layer and the output units owning their windows.
//
// Node indices are flat: feature map f, row y, col x of an input grid maps to
// f*input.Total() + y*input.Cols + x, and likewise for the output grid.
// A Topology is never modified after NewTopology returns.
type Topology struct {
	inputSize  Size
	poolSize   Size
	outputSize Size
	nFeatMap   int

	// in[i] lists the output owning input i; out[o] lists the inputs in
	// window o, in row-major window order.
	in  [][]Edge
	out [][]Edge
}

// NewTopology builds the edge graph for nFeatMap feature maps of input-sized
// grids pooled by non-overlapping pool-sized windows.
func NewTopology(input, pool Size, nFeatMap int) (*Topology, error) {
	if input.Rows <= 0 || input.Cols <= 0 || nFeatMap <= 0 {
		return nil, fmt.Errorf("%w: input %v with %d feature maps", ErrIncompatibleGeometry, input, nFeatMap)
	}
	if !input.DivisibleBy(pool) {
		return nil, fmt.Errorf("%w: input %v, pool %v", ErrIncompatibleGeometry, input, pool)
	}

	t := &Topology{
		inputSize:  input,
		poolSize:   pool,
		outputSize: input.Div(pool),
		nFeatMap:   nFeatMap,
	}
	t.in = make([][]Edge, input.Total()*nFeatMap)
	t.out = make([][]Edge, t.outputSize.Total()*nFeatMap)

	for f := 0; f < nFeatMap; f++ {
		for yout := 0; yout < t.outputSize.Rows; yout++ {
			for xout := 0; xout < t.outputSize.Cols; xout++ {
				t.connectWindow(f, yout, xout)
			}
		}
	}
	return t, nil
}

// connectWindow adds one edge pair per input cell of the window feeding
// output (yout, xout) of feature map f.
func (t *Topology) connectWindow(f, yout, xout int) {
	out := f*t.outputSize.Total() + yout*t.outputSize.Cols + xout
	if t.out[out] == nil {
		t.out[out] = make([]Edge, 0, t.poolSize.Total())
	}
	for dy := 0; dy < t.poolSize.Rows; dy++ {
		for dx := 0; dx < t.poolSize.Cols; dx++ {
			yin := yout*t.poolSize.Rows + dy
			xin := xout*t.poolSize.Cols + dx
			in := f*t.inputSize.Total() + yin*t.inputSize.Cols + xin
			t.addEdge(in, out, f)
		}
	}
}

func (t *Topology) addEdge(in, out, f int) {
	nIn := len(t.in[in])
	nOut := len(t.out[out])
	t.in[in] = append(t.in[in], Edge{To: out, FeatMap: f, Rev: nOut})
	t.out[out] = append(t.out[out], Edge{To: in, FeatMap: f, Rev: nIn})
}

// InputSize returns the per-feature-map input grid.
func (t *Topology) InputSize() Size { return t.inputSize }

// PoolSize returns the pooling window.
func (t *Topology) PoolSize() Size { return t.poolSize }

// OutputSize returns the per-feature-map output grid.
func (t *Topology) OutputSize() Size { return t.outputSize }

// NFeatMap returns the number of feature maps.
func (t *Topology) NFeatMap() int { return t.nFeatMap }

// NInput returns the number of input nodes across all feature maps.
func (t *Topology) NInput() int { return len(t.in) }

// NOutput returns the number of output nodes across all feature maps.
func (t *Topology) NOutput() int { return len(t.out) }

// InputEdges returns the edges from input node i to the output owning it.
// The returned slice must not be modified.
func (t *Topology) InputEdges(i int) []Edge { return t.in[i] }

// OutputEdges returns the candidate edges of output node o.
// The returned slice must not be modified.
func (t *Topology) OutputEdges(o int) []Edge { return t.out[o] }

// Verify checks that every edge is mirrored exactly by its reciprocal.
func (t *Topology) Verify() error {
	for o, edges := range t.out {
		for e, edge := range edges {
			if edge.To < 0 || edge.To >= len(t.in) || edge.Rev < 0 || edge.Rev >= len(t.in[edge.To]) {
				return fmt.Errorf("output %d edge %d: dangling reference to input %d/%d", o, e, edge.To, edge.Rev)
			}
			back := t.in[edge.To][edge.Rev]
			if back.To != o || back.Rev != e || back.FeatMap != edge.FeatMap {
				return fmt.Errorf("output %d edge %d: reciprocal points to output %d/%d", o, e, back.To, back.Rev)
			}
		}
	}
	for i, edges := range t.in {
		for e, edge := range edges {
			if edge.To < 0 || edge.To >= len(t.out) || edge.Rev < 0 || edge.Rev >= len(t.out[edge.To]) {
				return fmt.Errorf("input %d edge %d: dangling reference to output %d/%d", i, e, edge.To, edge.Rev)
			}
			back := t.out[edge.To][edge.Rev]
			if back.To != i || back.Rev != e {
				return fmt.Errorf("input %d edge %d: reciprocal points to input %d/%d", i, e, back.To, back.Rev)
			}
		}
	}
	return nil
}
