// Package metrics exposes Prometheus collectors for validation and
// conversion outcomes.
package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "enrichkit"

// ValidationMetrics tracks schema-validation and tabular-conversion outcomes.
type ValidationMetrics struct {
	mu sync.Mutex

	attachmentsTotal *prometheus.CounterVec
	violationsTotal  *prometheus.CounterVec
	conversionsTotal *prometheus.CounterVec

	registerer prometheus.Registerer
	registered bool
}

func newCounterVec(subsystem, name, help string, labels []string) *prometheus.CounterVec {
	return prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      name,
			Help:      help,
		},
		labels,
	)
}

// NewValidationMetrics creates the collectors. A nil registerer falls back to
// the default Prometheus registerer.
func NewValidationMetrics(registerer prometheus.Registerer) *ValidationMetrics {
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}

	return &ValidationMetrics{
		registerer:       registerer,
		attachmentsTotal: newCounterVec("validation", "attachments_total", "Total number of event attachments processed, by slot and outcome", []string{"slot", "outcome"}),
		violationsTotal:  newCounterVec("validation", "violations_total", "Total number of schema violations, by violation kind", []string{"kind"}),
		conversionsTotal: newCounterVec("sqloutput", "conversions_total", "Total number of tabular conversions, by row-count mode and outcome", []string{"mode", "outcome"}),
	}
}

// Register registers the Prometheus collectors. Safe to call multiple times.
func (m *ValidationMetrics) Register() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.registered {
		return nil
	}

	collectors := []prometheus.Collector{
		m.attachmentsTotal,
		m.violationsTotal,
		m.conversionsTotal,
	}
	for _, c := range collectors {
		if err := m.registerer.Register(c); err != nil {
			if _, ok := err.(prometheus.AlreadyRegisteredError); !ok {
				return err
			}
		}
	}

	m.registered = true
	return nil
}

// ObserveAttachment records one processed attachment slot.
func (m *ValidationMetrics) ObserveAttachment(slot, outcome string) {
	m.attachmentsTotal.WithLabelValues(slot, outcome).Inc()
}

// ObserveViolation records one schema violation.
func (m *ValidationMetrics) ObserveViolation(kind string) {
	m.violationsTotal.WithLabelValues(kind).Inc()
}

// ObserveConversion records one tabular conversion attempt.
func (m *ValidationMetrics) ObserveConversion(mode, outcome string) {
	m.conversionsTotal.WithLabelValues(mode, outcome).Inc()
}
