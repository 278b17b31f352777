package dnn

import (
	"gonum.org/v1/gonum/mat"
)

// Pass is the chain of layer data for one forward and backward pass,
// the first element is the input layer.
type Pass []*LayerData

// Output returns the data of the last layer.
func (p Pass) Output() *LayerData {
	return p[len(p)-1]
}

// Prepare creates the layer data chain for a pass over the given input.
// The weight buffer holds the weights of all layers, laid out node by node
// over the nodes of the previous layer.
// The gradient buffer is aligned with the weights of the layers from trainingStartLayer on,
// earlier layers are not trained. A nil gradient buffer prepares an inference pass.
func (n *Net) Prepare(input []float64, weights, gradients []float64, trainingStartLayer int) (Pass, error) {
	if len(input) != n.inputSize {
		return nil, sizeMismatch("input of size %d for network input %d", len(input), n.inputSize)
	}
	if num := n.NumWeights(0); len(weights) < num {
		return nil, sizeMismatch("weight buffer of size %d for %d weights", len(weights), num)
	}
	if gradients != nil {
		if num := n.NumWeights(trainingStartLayer); len(gradients) < num {
			return nil, sizeMismatch("gradient buffer of size %d for %d trainable weights", len(gradients), num)
		}
	}

	pass := make(Pass, 0, len(n.layers)+1)
	pass = append(pass, NewInputLayerDataFrom(input, Direct))

	var offset, gradientOffset int
	prevNodes := n.inputSize
	for i, l := range n.layers {
		wv := View{Offset: offset, Length: l.NumWeights(prevNodes)}
		var ld *LayerData
		var err error
		if gradients != nil && i >= trainingStartLayer {
			gv := View{Offset: gradientOffset, Length: wv.Length}
			ld, err = l.Data(weights, wv, gradients, gv)
			gradientOffset = gv.End()
		} else {
			ld, err = l.Data(weights, wv, nil, View{})
		}
		if err != nil {
			return nil, err
		}
		pass = append(pass, ld)
		offset = wv.End()
		prevNodes = l.NumNodes()
	}
	return pass, nil
}

// Forward computes the values of all layers.
// A non-nil drop container disables the marked nodes, it needs to cover all nodes of the network.
func Forward(pass Pass, drop DropContainer) error {
	if err := checkPass(pass, drop); err != nil {
		return err
	}
	var dropOffset int
	for l := 1; l < len(pass); l++ {
		prev, curr := pass[l-1], pass[l]
		x := masked(prev.Values(), drop, dropOffset)
		dropOffset += prev.size

		w := mat.NewDense(curr.size, prev.size, curr.weights)
		sums := mat.NewVecDense(curr.size, nil)
		sums.MulVec(w, mat.NewVecDense(prev.size, x))

		for j := 0; j < curr.size; j++ {
			s := sums.AtVec(j)
			curr.values[j] = curr.activation(s)
			if curr.hasGradients {
				// local derivative, turned into the full gradient on the backward pass
				curr.valueGradients[j] = curr.derivative(s)
			}
		}
	}
	return nil
}

// Backward propagates the deltas of the output layer back through the network,
// accumulating the weight gradients into the gradient buffer.
// It needs to follow a Forward call on the same pass with the same drop container.
func Backward(pass Pass, drop DropContainer) error {
	if err := checkPass(pass, drop); err != nil {
		return err
	}
	dropOffset := 0
	for l := 0; l < len(pass)-1; l++ {
		dropOffset += pass[l].size
	}
	for l := len(pass) - 1; l > 0; l-- {
		prev, curr := pass[l-1], pass[l]
		if !curr.hasGradients {
			break
		}
		dropOffset -= prev.size

		for j := 0; j < curr.size; j++ {
			curr.valueGradients[j] *= curr.deltas[j]
		}
		vg := mat.NewVecDense(curr.size, curr.valueGradients)
		x := mat.NewVecDense(prev.size, masked(prev.Values(), drop, dropOffset))

		g := mat.NewDense(curr.size, prev.size, curr.gradients)
		g.RankOne(g, 1, vg, x)

		if prev.deltas == nil {
			// the previous layer is frozen
			break
		}
		w := mat.NewDense(curr.size, prev.size, curr.weights)
		deltas := mat.NewVecDense(prev.size, prev.deltas)
		deltas.MulVec(w.T(), vg)
		if drop != nil {
			for i := 0; i < prev.size; i++ {
				if !drop[dropOffset+i] {
					prev.deltas[i] = 0
				}
			}
		}
	}
	return nil
}

// Compute runs an inference pass and returns the output probabilities.
func (n *Net) Compute(input []float64, weights []float64) ([]float64, error) {
	pass, err := n.Prepare(input, weights, nil, 0)
	if err != nil {
		return nil, err
	}
	if err := Forward(pass, nil); err != nil {
		return nil, err
	}
	return pass.Output().ComputeProbabilities(), nil
}

func checkPass(pass Pass, drop DropContainer) error {
	if len(pass) == 0 || !pass[0].isInputLayer {
		return sizeMismatch("pass needs to start with an input layer")
	}
	if len(pass[0].Values()) != pass[0].size {
		return sizeMismatch("input of size %d for input layer of size %d", len(pass[0].Values()), pass[0].size)
	}
	num := pass[0].size
	for l := 1; l < len(pass); l++ {
		if len(pass[l].weights) != pass[l].size*pass[l-1].size {
			return sizeMismatch("layer %d has %d weights for %d x %d nodes", l, len(pass[l].weights), pass[l].size, pass[l-1].size)
		}
		num += pass[l].size
	}
	if drop != nil && len(drop) != num {
		return sizeMismatch("drop container of size %d for %d nodes", len(drop), num)
	}
	return nil
}

func masked(values []float64, drop DropContainer, offset int) []float64 {
	if drop == nil {
		return values
	}
	x := make([]float64, len(values))
	for i, v := range values {
		if drop[offset+i] {
			x[i] = v
		}
	}
	return x
}
