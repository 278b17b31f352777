package dnn

import (
	"github.com/drakos74/free-net/internal/dnn/activation"
)

// Layer is the static description of a fully connected layer.
type Layer struct {
	numNodes int
	function activation.Function
	mode     OutputMode
}

// NewLayer creates a new layer.
func NewLayer(numNodes int, fn activation.Function, mode OutputMode) Layer {
	return Layer{
		numNodes: numNodes,
		function: fn,
		mode:     mode,
	}
}

// NumNodes returns the number of nodes of the layer.
func (l Layer) NumNodes() int {
	return l.numNodes
}

// Activation returns the activation function type of the layer.
func (l Layer) Activation() activation.Function {
	return l.function
}

// OutputMode returns the output mode of the layer.
func (l Layer) OutputMode() OutputMode {
	return l.mode
}

// NumWeights returns the number of weights connecting the layer to the previous one.
func (l Layer) NumWeights(prevNodes int) int {
	return l.numNodes * prevNodes
}

// Data creates the runtime data for the layer bound to the given buffers.
// Without a gradient buffer the data is created for inference only.
func (l Layer) Data(weights []float64, wv View, gradients []float64, gv View) (*LayerData, error) {
	if gradients == nil {
		return NewInferenceLayerData(l.numNodes, weights, wv, l.function, l.mode)
	}
	return NewLayerData(l.numNodes, weights, wv, gradients, gv, l.function, l.mode)
}

// LayerConfig is the serialisable description of a layer.
type LayerConfig struct {
	Nodes      int                 `json:"nodes"`
	Activation activation.Function `json:"activation"`
	Output     OutputMode          `json:"output"`
}

// Config is the serialisable description of a network.
type Config struct {
	Input  int           `json:"input"`
	Layers []LayerConfig `json:"layers"`
}
