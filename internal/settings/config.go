package settings

import (
	"fmt"
)

// Regularization defines the weight regularization of the training.
type Regularization string

const (
	NoRegularization Regularization = "none"
	L1               Regularization = "l1"
	L2               Regularization = "l2"
	L1Max            Regularization = "l1max"
)

// Minimizer defines the minimization algorithm driving the training.
type Minimizer string

const (
	SteepestGradientDescent Minimizer = "steepest-gradient-descent"
)

// Config holds the parameters of a training run.
type Config struct {
	Name               string         `json:"name"`
	ConvergenceSteps   int            `json:"convergence_steps"`
	BatchSize          int            `json:"batch_size"`
	TestRepetitions    int            `json:"test_repetitions"`
	WeightDecay        float64        `json:"weight_decay"`
	Regularization     Regularization `json:"regularization"`
	Minimizer          Minimizer      `json:"minimizer"`
	LearningRate       float64        `json:"learning_rate"`
	Momentum           float64        `json:"momentum"`
	Repetitions        int            `json:"repetitions"`
	Multithreading     bool           `json:"multithreading"`
	BatchNormalization bool           `json:"batch_normalization"`
	DropFractions      []float64      `json:"drop_fractions"`
	DropRepetitions    int            `json:"drop_repetitions"`
	ScaleToNumEvents   int            `json:"scale_to_num_events"`
	// TrendWindow is the number of test errors kept for the error trend.
	TrendWindow int `json:"trend_window"`
	// Seed of the random source, zero picks a time based one.
	Seed uint64 `json:"seed"`
}

// DefaultConfig returns the default training parameters.
func DefaultConfig() Config {
	return Config{
		Name:             "dnn",
		ConvergenceSteps: 15,
		BatchSize:        10,
		TestRepetitions:  7,
		WeightDecay:      0,
		Regularization:   NoRegularization,
		Minimizer:        SteepestGradientDescent,
		LearningRate:     1e-5,
		Momentum:         0.3,
		Repetitions:      10,
		Multithreading:   true,
		DropRepetitions:  1,
		TrendWindow:      10,
	}
}

// Validate checks the parameters for consistency.
func (c Config) Validate() error {
	if c.ConvergenceSteps <= 0 {
		return fmt.Errorf("convergence steps must be positive: %d", c.ConvergenceSteps)
	}
	if c.BatchSize <= 0 {
		return fmt.Errorf("batch size must be positive: %d", c.BatchSize)
	}
	if c.TestRepetitions <= 0 {
		return fmt.Errorf("test repetitions must be positive: %d", c.TestRepetitions)
	}
	if c.DropRepetitions <= 0 {
		return fmt.Errorf("drop repetitions must be positive: %d", c.DropRepetitions)
	}
	if c.LearningRate < 0 {
		return fmt.Errorf("learning rate must not be negative: %v", c.LearningRate)
	}
	if c.TrendWindow < 0 {
		return fmt.Errorf("trend window must not be negative: %d", c.TrendWindow)
	}
	switch c.Regularization {
	case "", NoRegularization, L1, L2, L1Max:
	default:
		return fmt.Errorf("unknown regularization: %s", c.Regularization)
	}
	switch c.Minimizer {
	case "", SteepestGradientDescent:
	default:
		return fmt.Errorf("unknown minimizer: %s", c.Minimizer)
	}
	for i, f := range c.DropFractions {
		if f < 0 || f >= 1 {
			return fmt.Errorf("drop fraction %d out of range [0,1): %v", i, f)
		}
	}
	return nil
}
