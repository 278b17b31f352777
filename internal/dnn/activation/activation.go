package activation

import (
	"fmt"
	"math"
	"strings"

	"github.com/drakos74/go-ex-machina/xmath"
)

const (
	// margin is the dead zone of the symmetric relu.
	margin = 0.3
	// shift is the offset of the shifted tanh.
	shift = 0.3
	// spread is the width factor of the gauss functions.
	spread = 6.0
)

// Function enumerates the supported activation functions.
type Function int

const (
	Zero Function = iota
	Linear
	Tanh
	ReLU
	SymmReLU
	TanhShift
	SoftSign
	Sigmoid
	Gauss
	GaussComplement
)

var names = map[Function]string{
	Zero:            "zero",
	Linear:          "linear",
	Tanh:            "tanh",
	ReLU:            "relu",
	SymmReLU:        "symmrelu",
	TanhShift:       "tanhshift",
	SoftSign:        "softsign",
	Sigmoid:         "sigmoid",
	Gauss:           "gauss",
	GaussComplement: "gausscomplement",
}

// Functions returns all activation functions.
func Functions() []Function {
	return []Function{Zero, Linear, Tanh, ReLU, SymmReLU, TanhShift, SoftSign, Sigmoid, Gauss, GaussComplement}
}

func (f Function) String() string {
	if name, ok := names[f]; ok {
		return name
	}
	return fmt.Sprintf("function(%d)", int(f))
}

// Parse resolves the activation function from its name.
func Parse(s string) (Function, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for f, name := range names {
		if name == s {
			return f, nil
		}
	}
	return Zero, fmt.Errorf("unknown activation function: %s", s)
}

// MarshalText encodes the function by name.
func (f Function) MarshalText() ([]byte, error) {
	if _, ok := names[f]; !ok {
		return nil, fmt.Errorf("unknown activation function: %d", int(f))
	}
	return []byte(f.String()), nil
}

// UnmarshalText decodes the function from its name.
func (f *Function) UnmarshalText(b []byte) error {
	ff, err := Parse(string(b))
	if err != nil {
		return err
	}
	*f = ff
	return nil
}

// F returns the activation function.
func (f Function) F() xmath.Op {
	switch f {
	case Linear:
		return linear
	case Tanh:
		return math.Tanh
	case ReLU:
		return relu
	case SymmReLU:
		return symmReLU
	case TanhShift:
		return tanhShift
	case SoftSign:
		return softSign
	case Sigmoid:
		return sigmoid
	case Gauss:
		return gauss
	case GaussComplement:
		return gaussComplement
	}
	return zero
}

// D returns the derivative of the activation function with respect to its input.
// It is the term multiplied into the deltas during back propagation.
func (f Function) D() xmath.Op {
	switch f {
	case Linear:
		return xmath.Unit
	case Tanh:
		return dTanh
	case ReLU:
		return dReLU
	case SymmReLU:
		return dSymmReLU
	case TanhShift:
		return dTanhShift
	case SoftSign:
		return dSoftSign
	case Sigmoid:
		return dSigmoid
	case Gauss:
		return dGauss
	case GaussComplement:
		return dGaussComplement
	}
	return zero
}

func zero(float64) float64 {
	return 0
}

func linear(x float64) float64 {
	return x
}

func dTanh(x float64) float64 {
	t := math.Tanh(x)
	return 1 - t*t
}

func relu(x float64) float64 {
	if x > 0 {
		return x
	}
	return 0
}

func dReLU(x float64) float64 {
	if x > 0 {
		return 1
	}
	return 0
}

func symmReLU(x float64) float64 {
	if x > margin {
		return x - margin
	}
	if x < -margin {
		return x + margin
	}
	return 0
}

func dSymmReLU(x float64) float64 {
	if x > margin || x < -margin {
		return 1
	}
	return 0
}

func tanhShift(x float64) float64 {
	return math.Tanh(x - shift)
}

func dTanhShift(x float64) float64 {
	return dTanh(x - shift)
}

func softSign(x float64) float64 {
	return x / (1 + math.Abs(x))
}

func dSoftSign(x float64) float64 {
	d := 1 + math.Abs(x)
	return 1 / (d * d)
}

func sigmoid(x float64) float64 {
	return 1.0 / (1.0 + math.Exp(-x))
}

func dSigmoid(x float64) float64 {
	p := sigmoid(x)
	return p * (1 - p)
}

func gauss(x float64) float64 {
	return math.Exp(-x * x * spread * spread)
}

func dGauss(x float64) float64 {
	return -2 * x * spread * spread * gauss(x)
}

func gaussComplement(x float64) float64 {
	return 1 - gauss(x)
}

func dGaussComplement(x float64) float64 {
	return 2 * x * spread * spread * gauss(x)
}
