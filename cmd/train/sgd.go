package main

import (
	"math"

	"github.com/drakos74/free-net/internal/settings"
	"gonum.org/v1/gonum/floats"
)

// SGD is a steepest gradient descent with momentum.
type SGD struct {
	learningRate   float64
	momentum       float64
	weightDecay    float64
	regularization settings.Regularization
	velocity       []float64
}

// NewSGD creates a new minimizer for the given number of weights.
func NewSGD(s *settings.Settings, numWeights int) *SGD {
	return &SGD{
		learningRate:   s.LearningRate(),
		momentum:       s.Momentum(),
		weightDecay:    s.WeightDecay(),
		regularization: s.Regularization(),
		velocity:       make([]float64, numWeights),
	}
}

// Step updates the weights from the gradients accumulated over the batch
// and clears the gradients for the next batch.
func (sgd *SGD) Step(weights, gradients []float64, batchSize int) {
	if batchSize <= 0 {
		return
	}
	floats.Scale(1/float64(batchSize), gradients)
	for i, w := range weights {
		g := gradients[i]
		switch sgd.regularization {
		case settings.L2:
			g += sgd.weightDecay * w
		case settings.L1, settings.L1Max:
			g += sgd.weightDecay * sign(w)
		}
		sgd.velocity[i] = sgd.momentum*sgd.velocity[i] - sgd.learningRate*g
		weights[i] += sgd.velocity[i]
		gradients[i] = 0
	}
}

func sign(x float64) float64 {
	if x == 0 {
		return 0
	}
	return math.Copysign(1, x)
}
