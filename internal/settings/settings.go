package settings

import (
	"github.com/drakos74/free-net/internal/buffer"
	netmath "github.com/drakos74/free-net/internal/math"
	"github.com/drakos74/free-net/internal/metrics"
	"github.com/drakos74/free-net/internal/monitor"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const (
	// initialMinError is the starting point for the smallest test error.
	initialMinError = 1e10
	// improvement is the factor the test error needs to fall below to count as progress.
	improvement = 0.999
)

// Evaluator is driven by the training loop at the start and end of every cycle.
type Evaluator interface {
	StartTrainCycle()
	EndTrainCycle(err float64)
	StartTestCycle()
	TestSample(err, output, target, weight float64)
	EndTestCycle()
	HasConverged(testError float64) bool
}

// Counters tracks how often the error and its gradient were evaluated.
type Counters struct {
	E           int
	DE          int
	MiniBatchE  int
	MiniBatchDE int
}

// Settings holds the state of a training run.
type Settings struct {
	id  string
	cfg Config

	monitor  monitor.Monitor
	observer *metrics.Metrics

	convergenceCount    int
	maxConvergenceCount int
	minError            float64

	minProgress float64
	maxProgress float64

	counters    Counters
	trainErrors *buffer.Stats
	testErrors  *buffer.Stats
	history     *buffer.Buffer
}

// Option configures the settings.
type Option func(s *Settings)

// WithMonitor attaches a monitor for the training curves.
func WithMonitor(m monitor.Monitor) Option {
	return func(s *Settings) {
		s.monitor = m
	}
}

// WithObserver reports the training progress to the given metrics.
func WithObserver(m *metrics.Metrics) Option {
	return func(s *Settings) {
		s.observer = m
	}
}

// New creates new settings for the given config.
func New(cfg Config, opts ...Option) (*Settings, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	s := &Settings{
		id:          uuid.New().String(),
		cfg:         cfg,
		minError:    initialMinError,
		maxProgress: 100,
		trainErrors: buffer.NewStats(),
		testErrors:  buffer.NewStats(),
		history:     buffer.NewBuffer(cfg.TrendWindow),
		observer:    metrics.Observer,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// ID returns the unique id of the training run.
func (s *Settings) ID() string {
	return s.id
}

// Name returns the name of the settings.
func (s *Settings) Name() string {
	return s.cfg.Name
}

// Config returns the parameters of the run.
func (s *Settings) Config() Config {
	return s.cfg
}

func (s *Settings) ConvergenceSteps() int {
	return s.cfg.ConvergenceSteps
}

func (s *Settings) BatchSize() int {
	return s.cfg.BatchSize
}

func (s *Settings) TestRepetitions() int {
	return s.cfg.TestRepetitions
}

func (s *Settings) WeightDecay() float64 {
	return s.cfg.WeightDecay
}

func (s *Settings) Regularization() Regularization {
	return s.cfg.Regularization
}

func (s *Settings) Minimizer() Minimizer {
	return s.cfg.Minimizer
}

func (s *Settings) LearningRate() float64 {
	return s.cfg.LearningRate
}

func (s *Settings) Momentum() float64 {
	return s.cfg.Momentum
}

func (s *Settings) Repetitions() int {
	return s.cfg.Repetitions
}

func (s *Settings) UseMultithreading() bool {
	return s.cfg.Multithreading
}

func (s *Settings) DoBatchNormalization() bool {
	return s.cfg.BatchNormalization
}

func (s *Settings) DropRepetitions() int {
	return s.cfg.DropRepetitions
}

// DropFractions returns the drop out fractions per layer, starting with the input layer.
func (s *Settings) DropFractions() []float64 {
	return append([]float64{}, s.cfg.DropFractions...)
}

// ConvergenceCount returns the number of test cycles without improvement.
func (s *Settings) ConvergenceCount() int {
	return s.convergenceCount
}

// MaxConvergenceCount returns the longest streak of test cycles without improvement.
func (s *Settings) MaxConvergenceCount() int {
	return s.maxConvergenceCount
}

// MinError returns the smallest test error seen so far.
func (s *Settings) MinError() float64 {
	return s.minError
}

// HasConverged checks the test error against the best one so far
// and decides if the training should stop.
func (s *Settings) HasConverged(testError float64) bool {
	if testError < s.minError*improvement {
		s.convergenceCount = 0
		s.minError = testError
	} else {
		s.convergenceCount++
		if s.convergenceCount > s.maxConvergenceCount {
			s.maxConvergenceCount = s.convergenceCount
		}
	}
	s.history.Push(testError)

	if s.observer != nil {
		s.observer.Convergence(s.cfg.Name, s.convergenceCount, s.minError)
	}
	log.Debug().
		Str("settings", s.cfg.Name).
		Str("id", s.id).
		Float64("test-error", testError).
		Float64("min-error", s.minError).
		Int("convergence-count", s.convergenceCount).
		Int("convergence-steps", s.cfg.ConvergenceSteps).
		Msg("check convergence")

	return s.convergenceCount >= s.cfg.ConvergenceSteps || testError <= 0
}

// ErrorTrend returns the slope of the recent test errors.
func (s *Settings) ErrorTrend() (float64, bool) {
	errs := s.history.Get()
	if len(errs) < 2 {
		return 0, false
	}
	slope, err := netmath.Slope(errs)
	if err != nil {
		log.Error().Err(err).Floats64("errors", errs).Msg("could not fit error trend")
		return 0, false
	}
	return slope, true
}

// SetProgressLimits sets the range the progress is reported in.
func (s *Settings) SetProgressLimits(min, max float64) {
	s.minProgress = min
	s.maxProgress = max
}

// Cycle reports the progress of the training.
func (s *Settings) Cycle(progress float64, text string) {
	var pct float64
	if s.maxProgress != s.minProgress {
		pct = 100 * (progress - s.minProgress) / (s.maxProgress - s.minProgress)
	}
	log.Info().
		Str("settings", s.cfg.Name).
		Str("progress", netmath.Format(pct)).
		Msg(text)
}

// CountError records an evaluation of the error function.
func (s *Settings) CountError(miniBatch bool) {
	if miniBatch {
		s.counters.MiniBatchE++
		return
	}
	s.counters.E++
}

// CountGradient records an evaluation of the error gradient.
func (s *Settings) CountGradient(miniBatch bool) {
	if miniBatch {
		s.counters.MiniBatchDE++
		return
	}
	s.counters.DE++
}

// Counters returns the evaluation counters.
func (s *Settings) Counters() Counters {
	return s.counters
}

// TrainErrors returns the statistics of the errors reported for the current training cycle.
func (s *Settings) TrainErrors() buffer.Stats {
	return *s.trainErrors
}

// TestErrors returns the statistics of the errors reported for the current test cycle.
func (s *Settings) TestErrors() buffer.Stats {
	return *s.testErrors
}

// StartTrainCycle resets the training error statistics.
func (s *Settings) StartTrainCycle() {
	s.trainErrors.Reset()
}

// EndTrainCycle records the error of the training cycle.
func (s *Settings) EndTrainCycle(err float64) {
	s.trainErrors.Push(err)
	log.Debug().
		Str("settings", s.cfg.Name).
		Float64("train-error", err).
		Msg("end train cycle")
}

// StartTestCycle resets the test error statistics.
func (s *Settings) StartTestCycle() {
	s.testErrors.Reset()
}

// TestSample records the error of a test sample.
func (s *Settings) TestSample(err, output, target, weight float64) {
	s.testErrors.Push(err)
}

// EndTestCycle reports the test error statistics.
func (s *Settings) EndTestCycle() {
	if s.testErrors.Count() == 0 {
		return
	}
	log.Debug().
		Str("settings", s.cfg.Name).
		Int("samples", s.testErrors.Count()).
		Float64("avg-error", s.testErrors.Avg()).
		Float64("max-error", s.testErrors.Max()).
		Float64("var-error", s.testErrors.Variance()).
		Msg("end test cycle")
}

func (s *Settings) create(name string, axes ...monitor.Axis) {
	if s.monitor != nil {
		s.monitor.Create(name, axes...)
	}
}

func (s *Settings) clear(name string) {
	if s.monitor != nil {
		s.monitor.Clear(name)
	}
}

func (s *Settings) addPoint(name string, x, y float64) {
	if s.monitor != nil {
		s.monitor.AddPoint(name, x, y)
	}
}

func (s *Settings) plot(name string, options string, lineWidth int, color monitor.Color) {
	if s.monitor != nil {
		s.monitor.Plot(name, options, lineWidth, color)
	}
}

func (s *Settings) processEvents() {
	if s.monitor != nil {
		s.monitor.ProcessEvents()
	}
}
