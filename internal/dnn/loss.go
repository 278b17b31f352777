package dnn

import (
	"fmt"
	"math"
	"strings"
)

// epsilon keeps the logarithms of the cross entropy finite.
const epsilon = 1e-12

// Loss enumerates the error functions evaluated on the output layer.
type Loss int

const (
	SumOfSquares Loss = iota
	// CrossEntropy is the binary cross entropy per node, it expects a sigmoid output.
	CrossEntropy
	// SoftmaxCrossEntropy expects a softmax output and a one-hot truth.
	SoftmaxCrossEntropy
)

func (l Loss) String() string {
	switch l {
	case SumOfSquares:
		return "sumofsquares"
	case CrossEntropy:
		return "crossentropy"
	case SoftmaxCrossEntropy:
		return "softmaxcrossentropy"
	}
	return fmt.Sprintf("loss(%d)", int(l))
}

// ParseLoss resolves the loss from its name.
func ParseLoss(s string) (Loss, error) {
	for _, l := range []Loss{SumOfSquares, CrossEntropy, SoftmaxCrossEntropy} {
		if l.String() == strings.ToLower(strings.TrimSpace(s)) {
			return l, nil
		}
	}
	return SumOfSquares, fmt.Errorf("unknown loss: %s", s)
}

// MarshalText encodes the loss by name.
func (l Loss) MarshalText() ([]byte, error) {
	return []byte(l.String()), nil
}

// UnmarshalText decodes the loss from its name.
func (l *Loss) UnmarshalText(b []byte) error {
	ll, err := ParseLoss(string(b))
	if err != nil {
		return err
	}
	*l = ll
	return nil
}

// Error computes the weighted error of the output layer against the truth
// and sets the output deltas with respect to the layer values.
func (l Loss) Error(out *LayerData, truth []float64, weight float64) (float64, error) {
	if len(truth) != out.Size() {
		return 0, sizeMismatch("truth of size %d for output of size %d", len(truth), out.Size())
	}
	p := out.ComputeProbabilities()
	deltas := out.Deltas()
	if deltas == nil {
		return 0, fmt.Errorf("output layer has no deltas")
	}
	if mode, ok := l.outputMode(); ok && out.OutputMode() != mode {
		return 0, fmt.Errorf("%s loss needs a %s output, got %s", l, mode, out.OutputMode())
	}

	var e float64
	switch l {
	case CrossEntropy:
		for i := range p {
			pp := clip(p[i])
			e -= truth[i]*math.Log(pp) + (1-truth[i])*math.Log(1-pp)
			deltas[i] = (p[i] - truth[i]) * weight
		}
	case SoftmaxCrossEntropy:
		for i := range p {
			e -= truth[i] * math.Log(clip(p[i]))
			deltas[i] = (p[i] - truth[i]) * weight
		}
	default:
		diff := make([]float64, len(p))
		for i := range p {
			diff[i] = p[i] - truth[i]
			e += 0.5 * diff[i] * diff[i]
		}
		for i := range p {
			switch out.OutputMode() {
			case Sigmoid:
				deltas[i] = diff[i] * p[i] * (1 - p[i])
			case Softmax:
				var d float64
				for j := range p {
					kronecker := 0.0
					if i == j {
						kronecker = 1
					}
					d += diff[j] * p[j] * (kronecker - p[i])
				}
				deltas[i] = d
			default:
				deltas[i] = diff[i]
			}
			deltas[i] *= weight
		}
	}
	return e * weight, nil
}

// outputMode returns the output mode the loss deltas are derived for.
func (l Loss) outputMode() (OutputMode, bool) {
	switch l {
	case CrossEntropy:
		return Sigmoid, true
	case SoftmaxCrossEntropy:
		return Softmax, true
	}
	return Direct, false
}

func clip(p float64) float64 {
	return math.Min(math.Max(p, epsilon), 1-epsilon)
}
