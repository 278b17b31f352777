package metrics

import (
	"fmt"
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
)

// Observer is the process wide metrics collector.
var Observer = &Metrics{
	mutex:      new(sync.RWMutex),
	prometheus: NewPrometheusMetrics(),
}

func init() {
	prometheus.MustRegister(Observer.prometheus.Collectors()...)
}

// Metrics tracks the progress of the training process.
type Metrics struct {
	mutex      *sync.RWMutex
	prometheus Prometheus
	last       map[string]Snapshot
}

// Snapshot holds the last reported values for a settings instance.
type Snapshot struct {
	TestCycles       int
	BestSignificance float64
	CutValue         float64
	ConvergenceCount int
	MinError         float64
}

// TestCycle reports the outcome of a test cycle.
func (m *Metrics) TestCycle(settings string, bestSignificance, cutValue float64) {
	m.prometheus.TestCycles.WithLabelValues(settings).Inc()
	m.prometheus.BestSignificance.WithLabelValues(settings).Set(bestSignificance)
	m.prometheus.CutValue.WithLabelValues(settings).Set(cutValue)
	m.update(settings, func(s *Snapshot) {
		s.TestCycles++
		s.BestSignificance = bestSignificance
		s.CutValue = cutValue
	})
}

// Convergence reports the convergence state.
func (m *Metrics) Convergence(settings string, count int, minError float64) {
	m.prometheus.ConvergenceCount.WithLabelValues(settings).Set(float64(count))
	m.prometheus.MinError.WithLabelValues(settings).Set(minError)
	m.update(settings, func(s *Snapshot) {
		s.ConvergenceCount = count
		s.MinError = minError
	})
}

// Last returns the last reported values for the given settings.
func (m *Metrics) Last(settings string) (Snapshot, bool) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	s, ok := m.last[settings]
	return s, ok
}

func (m *Metrics) update(settings string, apply func(s *Snapshot)) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	if m.last == nil {
		m.last = make(map[string]Snapshot)
	}
	s := m.last[settings]
	apply(&s)
	m.last[settings] = s
}

// Serve exposes the metrics on the given port.
func Serve(port int) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	go func() {
		err := http.ListenAndServe(fmt.Sprintf(":%d", port), mux)
		if err != nil {
			log.Error().Err(err).Int("port", port).Msg("metrics server stopped")
		}
	}()
	log.Info().Int("port", port).Msg("serving metrics")
}
