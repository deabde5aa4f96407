// Package neural evaluates small dense feed-forward networks: tanh on every
// hidden layer, identity on the output layer.
package neural

import (
	"errors"
	"fmt"
	"math"
	"math/rand/v2"
)

// Layer is one dense layer. Weights is indexed [output][input].
type Layer struct {
	Weights [][]float64 `yaml:"weights" json:"weights"`
	Biases  []float64   `yaml:"biases" json:"biases"`
}

func (l Layer) inputs() int {
	if len(l.Weights) == 0 {
		return 0
	}
	return len(l.Weights[0])
}

// Network is immutable after New and safe for concurrent Predict calls.
type Network struct {
	layers []Layer
}

// New validates layer shapes and returns the network. The final layer must
// have exactly one output.
func New(layers ...Layer) (*Network, error) {
	if len(layers) == 0 {
		return nil, errors.New("network has no layers")
	}
	prevOut := -1
	for i, l := range layers {
		if len(l.Weights) == 0 {
			return nil, fmt.Errorf("layer %d: no neurons", i)
		}
		if len(l.Biases) != len(l.Weights) {
			return nil, fmt.Errorf("layer %d: %d biases for %d neurons", i, len(l.Biases), len(l.Weights))
		}
		in := l.inputs()
		if in == 0 {
			return nil, fmt.Errorf("layer %d: no inputs", i)
		}
		for j, row := range l.Weights {
			if len(row) != in {
				return nil, fmt.Errorf("layer %d neuron %d: %d weights, want %d", i, j, len(row), in)
			}
		}
		if prevOut >= 0 && in != prevOut {
			return nil, fmt.Errorf("layer %d: takes %d inputs but layer %d emits %d", i, in, i-1, prevOut)
		}
		prevOut = len(l.Weights)
	}
	if prevOut != 1 {
		return nil, fmt.Errorf("output layer has %d neurons, want 1", prevOut)
	}
	return &Network{layers: layers}, nil
}

// Random builds a network with the given layer sizes (inputs first, output
// last, which must be 1) and uniform weights in [-scale, scale).
func Random(sizes []int, scale float64, seed uint64) (*Network, error) {
	if len(sizes) < 2 {
		return nil, fmt.Errorf("need at least input and output sizes, got %v", sizes)
	}
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	layers := make([]Layer, len(sizes)-1)
	for i := range layers {
		in, out := sizes[i], sizes[i+1]
		l := Layer{Weights: make([][]float64, out), Biases: make([]float64, out)}
		for j := range out {
			l.Weights[j] = make([]float64, in)
			for k := range in {
				l.Weights[j][k] = (rng.Float64()*2 - 1) * scale
			}
			l.Biases[j] = (rng.Float64()*2 - 1) * scale
		}
		layers[i] = l
	}
	return New(layers...)
}

// InputSize is the length Predict expects.
func (n *Network) InputSize() int { return n.layers[0].inputs() }

// Predict runs a forward pass. A wrong input length is a wiring bug and
// panics.
func (n *Network) Predict(input []float64) float64 {
	if len(input) != n.InputSize() {
		panic(fmt.Sprintf("neural: input has %d values, network expects %d", len(input), n.InputSize()))
	}
	act := input
	last := len(n.layers) - 1
	for i, l := range n.layers {
		next := make([]float64, len(l.Weights))
		for j, row := range l.Weights {
			sum := l.Biases[j]
			for k, w := range row {
				sum += w * act[k]
			}
			if i < last {
				sum = math.Tanh(sum)
			}
			next[j] = sum
		}
		act = next
	}
	return act[0]
}

// Layers returns the layer count.
func (n *Network) Layers() int { return len(n.layers) }
