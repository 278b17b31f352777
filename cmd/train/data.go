package main

import (
	netmath "github.com/drakos74/free-net/internal/math"
)

// DataConfig describes the synthetic data set.
type DataConfig struct {
	Train int `json:"train"`
	Test  int `json:"test"`
	// Separation is the distance of the class means along every input dimension.
	Separation float64 `json:"separation"`
}

// Event is a single labelled sample.
type Event struct {
	Input  []float64
	Truth  []float64
	Weight float64
}

// IsSignal reports if the event belongs to the signal class.
func (e Event) IsSignal() bool {
	return e.Truth[0] > 0.5
}

// generate creates n events with gaussian inputs, alternating between signal and background.
func generate(rnd *netmath.Random, n, dim int, separation float64) []Event {
	events := make([]Event, n)
	for i := range events {
		mean := -separation / 2
		truth := 0.0
		if i%2 == 0 {
			mean = separation / 2
			truth = 1
		}
		input := make([]float64, dim)
		for j := range input {
			input[j] = rnd.Gauss(mean, 1)
		}
		events[i] = Event{
			Input:  input,
			Truth:  []float64{truth},
			Weight: 1,
		}
	}
	return events
}

// weightSums returns the total weight of the signal and background events.
func weightSums(events []Event) (sig, bkg float64) {
	for _, e := range events {
		if e.IsSignal() {
			sig += e.Weight
		} else {
			bkg += e.Weight
		}
	}
	return sig, bkg
}
