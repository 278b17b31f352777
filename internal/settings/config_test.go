package settings

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConfig_Validate(t *testing.T) {

	type test struct {
		update func(c *Config)
		err    bool
	}

	tests := map[string]test{
		"default": {
			update: func(c *Config) {},
		},
		"zero-convergence-steps": {
			update: func(c *Config) { c.ConvergenceSteps = 0 },
			err:    true,
		},
		"zero-batch": {
			update: func(c *Config) { c.BatchSize = 0 },
			err:    true,
		},
		"zero-test-repetitions": {
			update: func(c *Config) { c.TestRepetitions = 0 },
			err:    true,
		},
		"zero-drop-repetitions": {
			update: func(c *Config) { c.DropRepetitions = 0 },
			err:    true,
		},
		"negative-learning-rate": {
			update: func(c *Config) { c.LearningRate = -0.1 },
			err:    true,
		},
		"unknown-regularization": {
			update: func(c *Config) { c.Regularization = "l3" },
			err:    true,
		},
		"unknown-minimizer": {
			update: func(c *Config) { c.Minimizer = "bfgs" },
			err:    true,
		},
		"drop-fraction-one": {
			update: func(c *Config) { c.DropFractions = []float64{0.2, 1} },
			err:    true,
		},
		"drop-fractions": {
			update: func(c *Config) { c.DropFractions = []float64{0, 0.5, 0.1} },
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.update(&cfg)
			err := cfg.Validate()
			if tt.err {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestConfig_JSON(t *testing.T) {
	cfg := DefaultConfig()
	err := json.Unmarshal([]byte(`{"name":"test","convergence_steps":3,"regularization":"l2","drop_fractions":[0.1,0.2]}`), &cfg)
	assert.NoError(t, err)
	assert.Equal(t, "test", cfg.Name)
	assert.Equal(t, 3, cfg.ConvergenceSteps)
	assert.Equal(t, L2, cfg.Regularization)
	assert.Equal(t, []float64{0.1, 0.2}, cfg.DropFractions)
	// untouched fields keep the defaults
	assert.Equal(t, 10, cfg.BatchSize)
	assert.Equal(t, 0.3, cfg.Momentum)
	assert.NoError(t, cfg.Validate())
}
