package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	namespace = "rent"
	subsystem = "screen"
)

// Recorder counts rent screen actions, dataset fetches and live sessions.
// It satisfies rentview.ActionRecorder.
type Recorder struct {
	// ActionsTotal counts actions by name and outcome (success, failure, refused)
	ActionsTotal *prometheus.CounterVec

	// FetchesTotal counts dataset fetches by outcome
	FetchesTotal *prometheus.CounterVec

	// SessionsActive tracks mounted screens
	SessionsActive prometheus.Gauge
}

// NewRecorder registers the rent screen metrics on reg
func NewRecorder(reg prometheus.Registerer) *Recorder {
	factory := promauto.With(reg)
	return &Recorder{
		ActionsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "actions_total",
			Help:      "Rent screen actions by outcome",
		}, []string{"action", "outcome"}),
		FetchesTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "dataset_fetches_total",
			Help:      "Rent dataset fetches by outcome",
		}, []string{"outcome"}),
		SessionsActive: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "sessions_active",
			Help:      "Rent screen view sessions currently mounted",
		}),
	}
}

func (r *Recorder) ObserveAction(action, outcome string) {
	r.ActionsTotal.WithLabelValues(action, outcome).Inc()
}

func (r *Recorder) ObserveFetch(outcome string) {
	r.FetchesTotal.WithLabelValues(outcome).Inc()
}

// SetSessions reports the number of live sessions
func (r *Recorder) SetSessions(n int) {
	r.SessionsActive.Set(float64(n))
}
