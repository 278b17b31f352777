package settings

import (
	"math"

	netmath "github.com/drakos74/free-net/internal/math"
	"gonum.org/v1/gonum/floats"
)

const (
	// NumBinsROC is the number of cuts the roc curve is evaluated at.
	NumBinsROC = 1000
	// NumBinsData is the number of bins of the output distributions.
	NumBinsData = 100
	// minBinSize is the smallest roc bin width an evaluation is done for.
	minBinSize = 0.0001
)

// Samples collects the network output, the truth and the weight of test samples.
type Samples struct {
	Outputs []float64
	Targets []float64
	Weights []float64
}

// Add appends a sample.
func (s *Samples) Add(output, target, weight float64) {
	s.Outputs = append(s.Outputs, output)
	s.Targets = append(s.Targets, target)
	s.Weights = append(s.Weights, weight)
}

// Len returns the number of samples.
func (s *Samples) Len() int {
	return len(s.Outputs)
}

// Reset drops all samples, keeping the allocated storage.
func (s *Samples) Reset() {
	s.Outputs = s.Outputs[:0]
	s.Targets = s.Targets[:0]
	s.Weights = s.Weights[:0]
}

// Result is the evaluation of a test cycle.
type Result struct {
	// Cuts are the output values at the lower edge of each roc bin.
	Cuts []float64
	// Efficiency is the signal efficiency for each cut.
	Efficiency []float64
	// Rejection is the background rejection for each cut.
	Rejection []float64
	// Significance is tp/sqrt(tp+fp) for each cut, undefined where both are zero.
	Significance []float64
	// X are the lower edges of the output distribution bins.
	X []float64
	// OutputSig is the normalised output distribution of the signal samples.
	OutputSig []float64
	// OutputBkg is the normalised output distribution of the background samples.
	OutputBkg []float64

	BestSignificance float64
	BestCut          float64
}

// Evaluate computes the roc curve, the significance for every cut and the output distributions.
// Samples with a target above 0.5 count as signal.
// If both weight sums are non-zero the sample weights are scaled by the sum of their class.
// With scaleToNumEvents set, the counts are scaled to that number of events.
// Samples with an undefined output are left out.
// It returns false if there are no valid samples or the outputs span a too narrow range.
func Evaluate(samples Samples, sumOfSigWeights, sumOfBkgWeights float64, scaleToNumEvents int) (Result, bool) {
	samples = valid(samples)
	if samples.Len() == 0 {
		return Result{}, false
	}

	minVal := floats.Min(samples.Outputs)
	maxVal := floats.Max(samples.Outputs)

	binSizeROC := (maxVal - minVal) / float64(NumBinsROC)
	binSizeData := (maxVal - minVal) / float64(NumBinsData)

	if math.Abs(binSizeROC) < minBinSize {
		return Result{}, false
	}

	// one more bin for the maximum output
	truePositives := make([]float64, NumBinsROC+1)
	falsePositives := make([]float64, NumBinsROC+1)
	trueNegatives := make([]float64, NumBinsROC+1)
	falseNegatives := make([]float64, NumBinsROC+1)

	datSig := make([]float64, NumBinsData+1)
	datBkg := make([]float64, NumBinsData+1)

	var sumWeightsSig, sumWeightsBkg float64

	for i, val := range samples.Outputs {
		weight := samples.Weights[i]
		isSignal := samples.Targets[i] > 0.5

		if sumOfSigWeights != 0 && sumOfBkgWeights != 0 {
			if isSignal {
				weight *= sumOfSigWeights
			} else {
				weight *= sumOfBkgWeights
			}
		}

		binROC := int((val - minVal) / binSizeROC)
		binData := int((val - minVal) / binSizeData)

		if isSignal {
			for n := 0; n <= binROC; n++ {
				truePositives[n] += weight
			}
			for n := binROC + 1; n < NumBinsROC; n++ {
				falseNegatives[n] += weight
			}
			datSig[binData] += weight
			sumWeightsSig += weight
		} else {
			for n := 0; n <= binROC; n++ {
				falsePositives[n] += weight
			}
			for n := binROC + 1; n < NumBinsROC; n++ {
				trueNegatives[n] += weight
			}
			datBkg[binData] += weight
			sumWeightsBkg += weight
		}
	}

	scale := 1.0
	if scaleToNumEvents > 0 {
		scale = float64(scaleToNumEvents) / float64(samples.Len())
	}

	result := Result{
		Cuts:         make([]float64, NumBinsROC),
		Efficiency:   make([]float64, NumBinsROC),
		Rejection:    make([]float64, NumBinsROC),
		Significance: make([]float64, NumBinsROC),
		X:            make([]float64, NumBinsData),
		OutputSig:    make([]float64, NumBinsData),
		OutputBkg:    make([]float64, NumBinsData),
	}

	for i := 0; i < NumBinsROC; i++ {
		tp := truePositives[i] * scale
		fp := falsePositives[i] * scale
		tn := trueNegatives[i] * scale
		fn := falseNegatives[i] * scale

		seff := 1.0
		if tp+fn != 0 {
			seff = tp / (tp + fn)
		}
		brej := 0.0
		if tn+fp != 0 {
			brej = tn / (tn + fp)
		}

		cut := float64(i)*binSizeROC + minVal
		// left undefined for tp = fp = 0
		significance := tp / math.Sqrt(tp+fp)
		if significance > result.BestSignificance {
			result.BestSignificance = significance
			result.BestCut = cut
		}

		result.Cuts[i] = cut
		result.Efficiency[i] = seff
		result.Rejection[i] = brej
		result.Significance[i] = significance
	}

	for i := 0; i < NumBinsData; i++ {
		result.X[i] = minVal + float64(i)*binSizeData
		result.OutputSig[i] = datSig[i] / sumWeightsSig
		result.OutputBkg[i] = datBkg[i] / sumWeightsBkg
	}

	return result, true
}

// valid returns the samples with a finite output.
func valid(samples Samples) Samples {
	for _, o := range samples.Outputs {
		if !netmath.IsValid(o) {
			var vv Samples
			for i, o := range samples.Outputs {
				if netmath.IsValid(o) {
					vv.Add(o, samples.Targets[i], samples.Weights[i])
				}
			}
			return vv
		}
	}
	return samples
}
