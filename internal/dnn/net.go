package dnn

import (
	"fmt"

	netmath "github.com/drakos74/free-net/internal/math"
)

// DropContainer marks the nodes of a network that are active (true) or dropped (false).
type DropContainer []bool

// Net is an ordered sequence of fully connected layers.
// Weight and gradient buffers are owned by the caller.
type Net struct {
	inputSize int
	layers    []Layer
}

// NewNet creates a new network for the given input size.
func NewNet(inputSize int, layers ...Layer) *Net {
	return &Net{
		inputSize: inputSize,
		layers:    append(make([]Layer, 0, len(layers)), layers...),
	}
}

// FromConfig creates a network from its description.
func FromConfig(cfg Config) (*Net, error) {
	if cfg.Input <= 0 {
		return nil, fmt.Errorf("invalid input size: %d", cfg.Input)
	}
	n := NewNet(cfg.Input)
	for i, l := range cfg.Layers {
		if l.Nodes <= 0 {
			return nil, fmt.Errorf("invalid number of nodes for layer %d: %d", i, l.Nodes)
		}
		n.AddLayer(NewLayer(l.Nodes, l.Activation, l.Output))
	}
	return n, nil
}

// AddLayer appends a layer to the network.
func (n *Net) AddLayer(l Layer) *Net {
	n.layers = append(n.layers, l)
	return n
}

// InputSize returns the size of the input layer.
func (n *Net) InputSize() int {
	return n.inputSize
}

// OutputSize returns the number of nodes of the last layer.
func (n *Net) OutputSize() int {
	if len(n.layers) == 0 {
		return n.inputSize
	}
	return n.layers[len(n.layers)-1].NumNodes()
}

// Layers returns the layers of the network.
func (n *Net) Layers() []Layer {
	return append(make([]Layer, 0, len(n.layers)), n.layers...)
}

// NumWeights returns the number of weights of the layers at or after the training start layer.
func (n *Net) NumWeights(trainingStartLayer int) int {
	var num int
	prevNodes := n.inputSize
	for i, l := range n.layers {
		if i >= trainingStartLayer {
			num += l.NumWeights(prevNodes)
		}
		prevNodes = l.NumNodes()
	}
	return num
}

// NumNodes returns the number of nodes of the layers at or after the training start layer.
// The input layer counts as the layer before the first one and is included for a zero start.
func (n *Net) NumNodes(trainingStartLayer int) int {
	var num int
	if trainingStartLayer <= 0 {
		num = n.inputSize
	}
	for i, l := range n.layers {
		if i >= trainingStartLayer {
			num += l.NumNodes()
		}
	}
	return num
}

// FillDropContainer appends the drop markers for a layer of numNodes nodes.
// At least one node is always kept and the new markers are shuffled.
func (n *Net) FillDropContainer(dc DropContainer, dropFraction float64, numNodes int, rnd *netmath.Random) DropContainer {
	if numNodes <= 0 {
		return dc
	}
	numDrops := int(dropFraction * float64(numNodes))
	if numDrops >= numNodes {
		numDrops = numNodes - 1
	}
	if numDrops < 0 {
		numDrops = 0
	}
	start := len(dc)
	for i := 0; i < numNodes; i++ {
		dc = append(dc, i < numNodes-numDrops)
	}
	segment := dc[start:]
	rnd.Shuffle(len(segment), func(i, j int) {
		segment[i], segment[j] = segment[j], segment[i]
	})
	return dc
}

// DropContainer creates the drop markers for the whole network,
// the first fraction applies to the input layer, the next ones to the following layers.
// Missing fractions mean no dropout, the output layer is never dropped.
func (n *Net) DropContainer(fractions []float64, rnd *netmath.Random) DropContainer {
	dc := make(DropContainer, 0, n.NumNodes(0))
	fraction := func(i int) float64 {
		if i < len(fractions) && i < len(n.layers) {
			return fractions[i]
		}
		return 0
	}
	dc = n.FillDropContainer(dc, fraction(0), n.inputSize, rnd)
	for i, l := range n.layers {
		dc = n.FillDropContainer(dc, fraction(i+1), l.NumNodes(), rnd)
	}
	return dc
}
