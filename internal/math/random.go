package math

import (
	"time"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"
)

// Random is a pseudo-random source for the training process.
// It is not safe for concurrent use, every goroutine should own its own instance.
type Random struct {
	seed uint64
	rnd  *rand.Rand
}

// NewRandom creates a new random source for the given seed.
// A zero seed picks the current time, so that runs are not reproducible.
func NewRandom(seed uint64) *Random {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return &Random{
		seed: seed,
		rnd:  rand.New(rand.NewSource(seed)),
	}
}

// Seed returns the seed the source was created with.
func (r *Random) Seed() uint64 {
	return r.seed
}

// Gauss draws from a normal distribution.
func (r *Random) Gauss(mean, sigma float64) float64 {
	return distuv.Normal{
		Mu:    mean,
		Sigma: sigma,
		Src:   r.rnd,
	}.Rand()
}

// Uniform draws uniformly from [min, max).
func (r *Random) Uniform(min, max float64) float64 {
	return distuv.Uniform{
		Min: min,
		Max: max,
		Src: r.rnd,
	}.Rand()
}

// Int draws an integer uniformly from [0, max).
func (r *Random) Int(max int) int {
	return r.rnd.Intn(max)
}

// StudentT draws from a standard student-t distribution with nu degrees of freedom.
func (r *Random) StudentT(nu float64) float64 {
	return distuv.StudentsT{
		Mu:    0,
		Sigma: 1,
		Nu:    nu,
		Src:   r.rnd,
	}.Rand()
}

// Shuffle permutes n elements through the given swap func.
func (r *Random) Shuffle(n int, swap func(i, j int)) {
	r.rnd.Shuffle(n, swap)
}
