package main

import (
	"math"
	"runtime"
	"sync"

	"github.com/drakos74/free-net/internal/dnn"
	netmath "github.com/drakos74/free-net/internal/math"
	"github.com/drakos74/free-net/internal/settings"
	"github.com/rs/zerolog/log"
)

// Trainer runs the training cycles of a network against a classification evaluation.
type Trainer struct {
	net       *dnn.Net
	loss      dnn.Loss
	settings  *settings.Classification
	rnd       *netmath.Random
	sgd       *SGD
	weights   []float64
	gradients []float64
	maxEpochs int
}

// NewTrainer creates a trainer with gaussian initial weights.
func NewTrainer(net *dnn.Net, loss dnn.Loss, s *settings.Classification, rnd *netmath.Random, maxEpochs int) *Trainer {
	weights := make([]float64, net.NumWeights(0))
	var offset int
	prev := net.InputSize()
	for _, l := range net.Layers() {
		sigma := math.Sqrt(1 / float64(prev))
		for i := 0; i < l.NumWeights(prev); i++ {
			weights[offset+i] = rnd.Gauss(0, sigma)
		}
		offset += l.NumWeights(prev)
		prev = l.NumNodes()
	}
	return &Trainer{
		net:       net,
		loss:      loss,
		settings:  s,
		rnd:       rnd,
		sgd:       NewSGD(s.Settings, len(weights)),
		weights:   weights,
		gradients: make([]float64, len(weights)),
		maxEpochs: maxEpochs,
	}
}

// Weights returns the current weights.
func (t *Trainer) Weights() []float64 {
	return t.weights
}

// Train runs training epochs until the test error converges or the epochs run out.
// It returns the number of epochs run.
func (t *Trainer) Train(train, test []Event) (int, error) {
	s := t.settings
	sumSig, sumBkg := weightSums(test)
	s.SetWeightSums(sumSig, sumBkg)
	s.SetProgressLimits(0, float64(t.maxEpochs))

	for epoch := 1; epoch <= t.maxEpochs; epoch++ {
		s.StartTrainCycle()
		trainError, err := t.trainCycle(train)
		if err != nil {
			return epoch, err
		}
		s.EndTrainCycle(trainError)

		if epoch%s.TestRepetitions() != 0 {
			continue
		}

		testError, err := t.testCycle(test)
		if err != nil {
			return epoch, err
		}
		s.Cycle(float64(epoch), "training")
		if s.HasConverged(testError) {
			log.Info().
				Int("epoch", epoch).
				Float64("min-error", s.MinError()).
				Float64("cut", s.CutValue()).
				Msg("converged")
			return epoch, nil
		}
	}
	return t.maxEpochs, nil
}

func (t *Trainer) trainCycle(events []Event) (float64, error) {
	s := t.settings
	order := make([]int, len(events))
	for i := range order {
		order[i] = i
	}
	t.rnd.Shuffle(len(order), func(i, j int) {
		order[i], order[j] = order[j], order[i]
	})

	fractions := s.DropFractions()
	var drop dnn.DropContainer
	var sumError float64
	batchSize := s.BatchSize()
	for b := 0; b*batchSize < len(order); b++ {
		if len(fractions) > 0 && b%s.DropRepetitions() == 0 {
			drop = t.net.DropContainer(fractions, t.rnd)
		}
		end := (b + 1) * batchSize
		if end > len(order) {
			end = len(order)
		}
		for _, i := range order[b*batchSize : end] {
			ev := events[i]
			pass, err := t.net.Prepare(ev.Input, t.weights, t.gradients, 0)
			if err != nil {
				return 0, err
			}
			if err := dnn.Forward(pass, drop); err != nil {
				return 0, err
			}
			e, err := t.loss.Error(pass.Output(), ev.Truth, ev.Weight)
			if err != nil {
				return 0, err
			}
			if err := dnn.Backward(pass, drop); err != nil {
				return 0, err
			}
			sumError += e
			s.CountError(true)
			s.CountGradient(true)
		}
		t.sgd.Step(t.weights, t.gradients, end-b*batchSize)
	}
	if len(events) == 0 {
		return 0, nil
	}
	return sumError / float64(len(events)), nil
}

type testResult struct {
	err    float64
	output float64
}

func (t *Trainer) testCycle(events []Event) (float64, error) {
	s := t.settings
	weights := t.scaledWeights()

	results := make([]testResult, len(events))
	errs := make([]error, len(events))
	evaluate := func(from, to int) {
		layers := len(t.net.Layers())
		// the output layer needs deltas for the error, its gradients are discarded
		scratch := make([]float64, t.net.NumWeights(layers-1))
		for i := from; i < to; i++ {
			ev := events[i]
			pass, err := t.net.Prepare(ev.Input, weights, scratch, layers-1)
			if err != nil {
				errs[i] = err
				continue
			}
			if err := dnn.Forward(pass, nil); err != nil {
				errs[i] = err
				continue
			}
			e, err := t.loss.Error(pass.Output(), ev.Truth, ev.Weight)
			if err != nil {
				errs[i] = err
				continue
			}
			results[i] = testResult{
				err:    e,
				output: pass.Output().ComputeProbabilities()[0],
			}
		}
	}

	workers := 1
	if s.UseMultithreading() {
		workers = runtime.NumCPU()
	}
	chunk := (len(events) + workers - 1) / workers
	wg := new(sync.WaitGroup)
	for from := 0; from < len(events); from += chunk {
		to := from + chunk
		if to > len(events) {
			to = len(events)
		}
		wg.Add(1)
		go func(from, to int) {
			defer wg.Done()
			evaluate(from, to)
		}(from, to)
	}
	wg.Wait()

	s.StartTestCycle()
	var sumError, sumWeights float64
	for i, ev := range events {
		if errs[i] != nil {
			return 0, errs[i]
		}
		s.TestSample(results[i].err, results[i].output, ev.Truth[0], ev.Weight)
		s.CountError(false)
		sumError += results[i].err
		sumWeights += ev.Weight
	}
	s.EndTestCycle()
	if sumWeights == 0 {
		return 0, nil
	}
	return sumError / sumWeights, nil
}

// scaledWeights compensates for the dropout of the training,
// the weights of a layer are scaled by the keep fraction of the layer before it.
func (t *Trainer) scaledWeights() []float64 {
	weights := append([]float64{}, t.weights...)
	fractions := t.settings.DropFractions()
	var offset int
	prev := t.net.InputSize()
	for i, l := range t.net.Layers() {
		n := l.NumWeights(prev)
		if i < len(fractions) && fractions[i] > 0 {
			for j := offset; j < offset+n; j++ {
				weights[j] *= 1 - fractions[i]
			}
		}
		offset += n
		prev = l.NumNodes()
	}
	return weights
}
