package settings

import (
	"github.com/drakos74/free-net/internal/monitor"
	"github.com/rs/zerolog/log"
)

// curves maintained by the classification settings
const (
	ROC          = "ROC"
	Significance = "Significance"
	OutputSig    = "OutputSig"
	OutputBkg    = "OutputBkg"
)

// Classification extends the settings with the evaluation of a binary classifier.
// Every test cycle computes the roc curve of the network output
// and the cut value with the best significance.
type Classification struct {
	*Settings

	samples Samples

	sumOfSigWeights  float64
	sumOfBkgWeights  float64
	scaleToNumEvents int

	cutValue      float64
	significances []float64
	last          *Result
}

// NewClassification creates classification settings on top of the given settings.
func NewClassification(s *Settings) *Classification {
	return &Classification{
		Settings:         s,
		scaleToNumEvents: s.cfg.ScaleToNumEvents,
	}
}

// StartTrainCycle sets up the curves of the monitor.
func (c *Classification) StartTrainCycle() {
	c.Settings.StartTrainCycle()
	c.create(ROC, monitor.Axis{Bins: 100, Max: 1}, monitor.Axis{Bins: 100, Max: 1})
	c.create(Significance, monitor.Axis{Bins: 100, Max: 1}, monitor.Axis{Bins: 100, Max: 3})
	c.create(OutputSig, monitor.Axis{Bins: 100, Max: 1})
	c.create(OutputBkg, monitor.Axis{Bins: 100, Max: 1})
	c.processEvents()
}

// StartTestCycle drops the samples of the previous test cycle.
func (c *Classification) StartTestCycle() {
	c.Settings.StartTestCycle()
	c.samples.Reset()
}

// TestSample records the output of the network for a test sample.
// A target above 0.5 marks a signal sample.
func (c *Classification) TestSample(err, output, target, weight float64) {
	c.Settings.TestSample(err, output, target, weight)
	c.samples.Add(output, target, weight)
}

// EndTestCycle evaluates the recorded samples.
// The cut value stays unchanged if there is nothing to evaluate.
func (c *Classification) EndTestCycle() {
	c.Settings.EndTestCycle()
	if c.samples.Len() == 0 {
		return
	}

	result, ok := Evaluate(c.samples, c.sumOfSigWeights, c.sumOfBkgWeights, c.scaleToNumEvents)
	if !ok {
		log.Debug().
			Str("settings", c.cfg.Name).
			Int("samples", c.samples.Len()).
			Msg("output range too narrow for evaluation")
		return
	}

	c.clear(ROC)
	c.clear(Significance)
	for i := range result.Cuts {
		c.addPoint(ROC, result.Efficiency[i], result.Rejection[i])
		c.addPoint(Significance, result.Cuts[i], result.Significance[i])
	}
	c.clear(OutputSig)
	c.clear(OutputBkg)
	for i := range result.X {
		c.addPoint(OutputSig, result.X[i], result.OutputSig[i])
		c.addPoint(OutputBkg, result.X[i], result.OutputBkg[i])
	}

	c.significances = append(c.significances, result.BestSignificance)
	c.cutValue = result.BestCut
	c.last = &result

	c.plot(ROC, "", 2, monitor.Red)
	c.plot(Significance, "", 3, monitor.Red)
	c.plot(OutputSig, "", 4, monitor.Red)
	c.plot(OutputBkg, "same", 4, monitor.Blue)
	c.processEvents()

	if c.observer != nil {
		c.observer.TestCycle(c.cfg.Name, result.BestSignificance, result.BestCut)
	}
	log.Info().
		Str("settings", c.cfg.Name).
		Int("samples", c.samples.Len()).
		Float64("significance", result.BestSignificance).
		Float64("cut", result.BestCut).
		Msg("test cycle")
}

// SetWeightSums sets the total weight of the signal and background samples.
// With both sums set, the sample weights are scaled by the sum of their class.
func (c *Classification) SetWeightSums(sumOfSigWeights, sumOfBkgWeights float64) {
	c.sumOfSigWeights = sumOfSigWeights
	c.sumOfBkgWeights = sumOfBkgWeights
}

// SetScaleToNumEvents scales the evaluation to the given number of events, 0 disables the scaling.
func (c *Classification) SetScaleToNumEvents(n int) {
	c.scaleToNumEvents = n
}

// CutValue returns the output value with the best significance of the last evaluated test cycle.
func (c *Classification) CutValue() float64 {
	return c.cutValue
}

// Significances returns the best significance of every evaluated test cycle.
func (c *Classification) Significances() []float64 {
	return append([]float64{}, c.significances...)
}

// LastResult returns the result of the last evaluated test cycle.
func (c *Classification) LastResult() (Result, bool) {
	if c.last == nil {
		return Result{}, false
	}
	return *c.last, true
}
