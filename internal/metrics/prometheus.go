package metrics

import "github.com/prometheus/client_golang/prometheus"

const namespace = "dnn"

// Prometheus groups the prometheus collectors of the training process.
type Prometheus struct {
	BestSignificance *prometheus.GaugeVec
	CutValue         *prometheus.GaugeVec
	ConvergenceCount *prometheus.GaugeVec
	MinError         *prometheus.GaugeVec
	TestCycles       *prometheus.CounterVec
}

// NewPrometheusMetrics creates the collectors, labelled by the settings name.
func NewPrometheusMetrics() Prometheus {
	return Prometheus{
		BestSignificance: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "best_significance",
				Help:      "best significance of the last test cycle",
			}, []string{"settings"}),
		CutValue: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "cut_value",
				Help:      "output cut with the best significance",
			}, []string{"settings"}),
		ConvergenceCount: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "convergence_count",
				Help:      "test cycles without sufficient improvement",
			}, []string{"settings"}),
		MinError: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "min_error",
				Help:      "smallest test error so far",
			}, []string{"settings"}),
		TestCycles: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "test_cycles",
				Help:      "completed test cycles",
			}, []string{"settings"}),
	}
}

// Collectors returns all collectors for registration.
func (p Prometheus) Collectors() []prometheus.Collector {
	return []prometheus.Collector{
		p.BestSignificance,
		p.CutValue,
		p.ConvergenceCount,
		p.MinError,
		p.TestCycles,
	}
}
