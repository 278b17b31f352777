package dnn

import (
	"math"

	"github.com/drakos74/free-net/internal/dnn/activation"
	"github.com/drakos74/go-ex-machina/xmath"
	"gonum.org/v1/gonum/floats"
)

// LayerData holds the runtime values of one layer for a single forward and backward pass.
// Weights and gradients are views into buffers owned by the caller.
type LayerData struct {
	size int

	input          []float64
	values         []float64
	deltas         []float64
	valueGradients []float64

	weights   []float64
	gradients []float64

	function   activation.Function
	activation xmath.Op
	derivative xmath.Op

	isInputLayer bool
	hasWeights   bool
	hasGradients bool
	mode         OutputMode
}

// NewInputLayerData creates the data for an input layer of the given size.
// The input values need to be provided with SetInput before the layer is used.
func NewInputLayerData(size int) *LayerData {
	return &LayerData{
		size:         size,
		deltas:       make([]float64, size),
		isInputLayer: true,
		mode:         Direct,
	}
}

// NewInputLayerDataFrom creates the data for an input layer referencing the given input.
func NewInputLayerDataFrom(input []float64, mode OutputMode) *LayerData {
	return &LayerData{
		size:         len(input),
		input:        input,
		deltas:       make([]float64, len(input)),
		isInputLayer: true,
		mode:         mode,
	}
}

// NewLayerData creates the data for a hidden or output layer that is being trained.
func NewLayerData(size int, weights []float64, wv View, gradients []float64, gv View, fn activation.Function, mode OutputMode) (*LayerData, error) {
	if err := checkWeights(size, weights, wv); err != nil {
		return nil, err
	}
	if err := gv.check(gradients); err != nil {
		return nil, err
	}
	if gv.Length != wv.Length {
		return nil, sizeMismatch("gradient range %d does not match weight range %d", gv.Length, wv.Length)
	}
	return &LayerData{
		size:           size,
		values:         make([]float64, size),
		deltas:         make([]float64, size),
		valueGradients: make([]float64, size),
		weights:        wv.Slice(weights),
		gradients:      gv.Slice(gradients),
		function:       fn,
		activation:     fn.F(),
		derivative:     fn.D(),
		hasWeights:     true,
		hasGradients:   true,
		mode:           mode,
	}, nil
}

// NewInferenceLayerData creates the data for a hidden or output layer without gradients.
func NewInferenceLayerData(size int, weights []float64, wv View, fn activation.Function, mode OutputMode) (*LayerData, error) {
	if err := checkWeights(size, weights, wv); err != nil {
		return nil, err
	}
	return &LayerData{
		size:       size,
		values:     make([]float64, size),
		weights:    wv.Slice(weights),
		function:   fn,
		activation: fn.F(),
		derivative: fn.D(),
		hasWeights: true,
		mode:       mode,
	}, nil
}

func checkWeights(size int, weights []float64, wv View) error {
	if err := wv.check(weights); err != nil {
		return err
	}
	if size <= 0 || wv.Length%size != 0 {
		return sizeMismatch("weight range %d does not fit %d nodes", wv.Length, size)
	}
	return nil
}

// SetInput binds the input values of an input layer.
func (ld *LayerData) SetInput(input []float64) error {
	if !ld.isInputLayer {
		return sizeMismatch("input can only be set on an input layer")
	}
	if len(input) != ld.size {
		return sizeMismatch("input of size %d for layer of size %d", len(input), ld.size)
	}
	ld.input = input
	return nil
}

// Size returns the number of nodes.
func (ld *LayerData) Size() int {
	return ld.size
}

// Values returns the layer outputs, for input layers these are the input values.
func (ld *LayerData) Values() []float64 {
	if ld.isInputLayer {
		return ld.input
	}
	return ld.values
}

// Deltas returns the error signal of the layer.
func (ld *LayerData) Deltas() []float64 {
	return ld.deltas
}

// ValueGradients returns the gradients with respect to the pre-activation sums.
func (ld *LayerData) ValueGradients() []float64 {
	return ld.valueGradients
}

// Weights returns the weight view of the layer, nil for input layers.
func (ld *LayerData) Weights() []float64 {
	return ld.weights
}

// Gradients returns the gradient view of the layer, nil if the layer is not trained.
func (ld *LayerData) Gradients() []float64 {
	return ld.gradients
}

func (ld *LayerData) IsInputLayer() bool {
	return ld.isInputLayer
}

func (ld *LayerData) HasWeights() bool {
	return ld.hasWeights
}

func (ld *LayerData) HasGradients() bool {
	return ld.hasGradients
}

func (ld *LayerData) OutputMode() OutputMode {
	return ld.mode
}

// Function returns the activation function type of the layer.
func (ld *LayerData) Function() activation.Function {
	return ld.function
}

// Activation returns the activation function, nil for input layers.
func (ld *LayerData) Activation() xmath.Op {
	return ld.activation
}

// Derivative returns the derivative of the activation function, nil for input layers.
func (ld *LayerData) Derivative() xmath.Op {
	return ld.derivative
}

// Clear resets values, deltas and value gradients, leaving the external buffers untouched.
func (ld *LayerData) Clear() {
	for _, vv := range [][]float64{ld.values, ld.deltas, ld.valueGradients} {
		for i := range vv {
			vv[i] = 0
		}
	}
}

// ComputeProbabilities turns the layer values into probabilities according to the output mode.
// The values of the layer are left untouched.
func (ld *LayerData) ComputeProbabilities() []float64 {
	values := xmath.Vector(ld.Values())
	switch ld.mode {
	case Sigmoid:
		return values.Op(activation.Sigmoid.F())
	case Softmax:
		p := values.Op(math.Exp)
		// a zero sum leaves the exponentials as they are
		if sum := floats.Sum(p); sum != 0 {
			floats.Scale(1/sum, p)
		}
		return p
	}
	return values.Copy()
}
