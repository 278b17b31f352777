package settings

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/floats"
)

func samplesOf(sig, bkg []float64, weight float64) Samples {
	var s Samples
	for _, o := range sig {
		s.Add(o, 1, weight)
	}
	for _, o := range bkg {
		s.Add(o, 0, weight)
	}
	return s
}

func TestEvaluate_Separated(t *testing.T) {

	samples := samplesOf([]float64{0.8, 0.8}, []float64{0.2, 0.2}, 1)
	result, ok := Evaluate(samples, 0, 0, 0)
	assert.True(t, ok)

	assert.Equal(t, NumBinsROC, len(result.Cuts))
	assert.Equal(t, NumBinsROC, len(result.Efficiency))
	assert.Equal(t, NumBinsROC, len(result.Rejection))
	assert.Equal(t, NumBinsROC, len(result.Significance))
	assert.Equal(t, NumBinsData, len(result.X))
	assert.Equal(t, NumBinsData, len(result.OutputSig))
	assert.Equal(t, NumBinsData, len(result.OutputBkg))

	// the first cut keeps all background
	assert.Equal(t, 1.0, result.Efficiency[0])
	assert.Equal(t, 0.0, result.Rejection[0])
	assert.InDelta(t, 2/math.Sqrt(4), result.Significance[0], 1e-12)
	for i := 1; i < NumBinsROC; i++ {
		assert.Equal(t, 1.0, result.Efficiency[i])
		assert.Equal(t, 1.0, result.Rejection[i])
		assert.InDelta(t, math.Sqrt(2), result.Significance[i], 1e-12)
	}

	assert.InDelta(t, math.Sqrt(2), result.BestSignificance, 1e-12)
	assert.InDelta(t, 0.2006, result.BestCut, 1e-9)
	assert.True(t, result.BestCut > 0.2)
	assert.True(t, result.BestCut < 0.8)

	assert.Equal(t, 0.2, result.Cuts[0])
	assert.InDelta(t, 0.2+999*0.0006, result.Cuts[NumBinsROC-1], 1e-9)
}

func TestEvaluate_Inverted(t *testing.T) {

	samples := samplesOf([]float64{0.2}, []float64{0.8, 0.8, 0.8}, 1)
	result, ok := Evaluate(samples, 0, 0, 0)
	assert.True(t, ok)

	assert.Equal(t, 1.0, result.Efficiency[0])
	assert.Equal(t, 0.0, result.Rejection[0])
	for i := 1; i < NumBinsROC; i++ {
		assert.Equal(t, 0.0, result.Efficiency[i])
		// no background is ever below the cut
		assert.Equal(t, 0.0, result.Rejection[i])
		assert.Equal(t, 0.0, result.Significance[i])
	}
	assert.InDelta(t, 0.5, result.BestSignificance, 1e-12)
	assert.Equal(t, 0.2, result.BestCut)

	// the signal sits in the first bin of its distribution
	assert.Equal(t, 1.0, result.OutputSig[0])
}

func TestEvaluate_Invalid(t *testing.T) {

	type test struct {
		samples Samples
	}

	tests := map[string]test{
		"empty": {
			samples: Samples{},
		},
		"single-value": {
			samples: samplesOf([]float64{0.5, 0.5}, []float64{0.5}, 1),
		},
		"narrow-range": {
			samples: samplesOf([]float64{0.5}, []float64{0.55}, 1),
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			_, ok := Evaluate(tt.samples, 0, 0, 0)
			assert.False(t, ok)
		})
	}
}

func TestEvaluate_UndefinedOutputs(t *testing.T) {

	type test struct {
		samples Samples
	}

	tests := map[string]test{
		"nan-first": {
			samples: Samples{
				Outputs: []float64{math.NaN(), 0.2, 0.8},
				Targets: []float64{1, 1, 0},
				Weights: []float64{1, 1, 1},
			},
		},
		"nan-inside": {
			samples: Samples{
				Outputs: []float64{0.2, math.NaN(), 0.8},
				Targets: []float64{1, 1, 0},
				Weights: []float64{1, 1, 1},
			},
		},
		"positive-inf": {
			samples: Samples{
				Outputs: []float64{0.2, 0.8, math.Inf(1)},
				Targets: []float64{1, 0, 0},
				Weights: []float64{1, 1, 1},
			},
		},
		"negative-inf": {
			samples: Samples{
				Outputs: []float64{math.Inf(-1), 0.2, 0.8},
				Targets: []float64{1, 1, 0},
				Weights: []float64{1, 1, 1},
			},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			var result Result
			var ok bool
			assert.NotPanics(t, func() {
				result, ok = Evaluate(tt.samples, 0, 0, 0)
			})
			assert.True(t, ok)
			// only the finite samples are evaluated
			assert.Equal(t, 0.2, result.BestCut)
			assert.InDelta(t, 1/math.Sqrt(2), result.BestSignificance, 1e-12)
			assert.Equal(t, 1.0, result.OutputSig[0])
		})
	}

	_, ok := Evaluate(samplesOf([]float64{math.NaN()}, []float64{math.Inf(1)}, 1), 0, 0, 0)
	assert.False(t, ok)
}

func TestEvaluate_Scaling(t *testing.T) {

	samples := samplesOf([]float64{1, 1}, []float64{0, 0}, 1)

	type test struct {
		sumSig, sumBkg float64
		scaleTo        int
		significance   float64
	}

	tests := map[string]test{
		"plain": {
			significance: math.Sqrt(2),
		},
		"scale-to-events": {
			// 16 events for 4 samples scale all counts by 4
			scaleTo:      16,
			significance: math.Sqrt(8),
		},
		"class-weights": {
			sumSig:       4.5,
			sumBkg:       2,
			significance: math.Sqrt(9),
		},
		"single-class-weight-ignored": {
			sumSig:       4.5,
			significance: math.Sqrt(2),
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			result, ok := Evaluate(samples, tt.sumSig, tt.sumBkg, tt.scaleTo)
			assert.True(t, ok)
			assert.InDelta(t, tt.significance, result.BestSignificance, 1e-12)
			assert.InDelta(t, tt.significance, result.Significance[1], 1e-12)
			// efficiency and rejection are ratios and do not scale
			assert.Equal(t, 1.0, result.Efficiency[1])
			assert.Equal(t, 1.0, result.Rejection[1])
		})
	}
}

func TestEvaluate_Distributions(t *testing.T) {

	samples := samplesOf([]float64{0, 0, 0.5, 0.5}, []float64{0.5, 1}, 1)
	result, ok := Evaluate(samples, 0, 0, 0)
	assert.True(t, ok)

	assert.Equal(t, 0.0, result.X[0])
	assert.InDelta(t, 0.99, result.X[NumBinsData-1], 1e-9)

	assert.Equal(t, 0.5, result.OutputSig[0])
	assert.InDelta(t, 1, floats.Sum(result.OutputSig), 1e-12)
	// the maximum output falls beyond the last bin of the distribution
	assert.InDelta(t, 0.5, floats.Sum(result.OutputBkg), 1e-12)
}

func TestEvaluate_ZeroWeights(t *testing.T) {

	samples := samplesOf([]float64{1}, []float64{0}, 0)
	result, ok := Evaluate(samples, 0, 0, 0)
	assert.True(t, ok)

	for _, s := range result.Significance {
		assert.True(t, math.IsNaN(s))
	}
	assert.Equal(t, 0.0, result.BestSignificance)
	assert.Equal(t, 0.0, result.BestCut)
	// no counts at all keep the sentinels
	assert.Equal(t, 1.0, result.Efficiency[0])
	assert.Equal(t, 0.0, result.Rejection[0])
	assert.True(t, math.IsNaN(result.OutputSig[0]))
}

func TestSamples(t *testing.T) {
	var s Samples
	s.Add(0.1, 1, 2)
	s.Add(0.2, 0, 1)
	assert.Equal(t, 2, s.Len())
	assert.Equal(t, []float64{0.1, 0.2}, s.Outputs)
	assert.Equal(t, []float64{1, 0}, s.Targets)
	assert.Equal(t, []float64{2, 1}, s.Weights)
	s.Reset()
	assert.Equal(t, 0, s.Len())
}
