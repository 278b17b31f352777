package math

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormat(t *testing.T) {

	type test struct {
		input  float64
		output string
	}

	tests := map[string]test{
		"0": {
			input:  0,
			output: "0.0000",
		},
		"-1": {
			input:  -1,
			output: "-1.0000",
		},
		"round": {
			input:  1.55555,
			output: "1.5556",
		},
		"nan": {
			input:  math.NaN(),
			output: "nan",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			s := Format(tt.input)
			assert.Equal(t, tt.output, s)
		})
	}

}

func TestSeries(t *testing.T) {
	assert.Equal(t, []float64{1, 1.5, 2, 2.5}, Series(1, 0.5, 4))
	assert.Empty(t, Series(0, 1, 0))
}

func TestIsValid(t *testing.T) {
	assert.True(t, IsValid(0))
	assert.False(t, IsValid(math.NaN()))
	assert.False(t, IsValid(math.Inf(-1)))
}

func TestFit(t *testing.T) {

	type test struct {
		x      []float64
		y      []float64
		degree int
		coeff  []float64
		err    bool
	}

	tests := map[string]test{
		"line": {
			x:      []float64{0, 1, 2, 3},
			y:      []float64{1, 3, 5, 7},
			degree: 1,
			coeff:  []float64{1, 2},
		},
		"parabola": {
			x:      []float64{-2, -1, 0, 1, 2},
			y:      []float64{4, 1, 0, 1, 4},
			degree: 2,
			coeff:  []float64{0, 0, 1},
		},
		"inconsistent": {
			x:      []float64{0, 1},
			y:      []float64{0},
			degree: 1,
			err:    true,
		},
		"not-enough-points": {
			x:      []float64{0},
			y:      []float64{0},
			degree: 1,
			err:    true,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			c, err := Fit(tt.x, tt.y, tt.degree)
			if tt.err {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, len(tt.coeff), len(c))
			for i := range tt.coeff {
				assert.InDelta(t, tt.coeff[i], c[i], 1e-9)
			}
		})
	}
}

func TestSlope(t *testing.T) {
	s, err := Slope([]float64{10, 8, 6, 4})
	assert.NoError(t, err)
	assert.InDelta(t, -2, s, 1e-9)
}
