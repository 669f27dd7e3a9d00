package observability

import (
	"context"
	"errors"

	"github.com/aretw0/tendril/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
)

// Namespace prefixes every metric name.
const Namespace = "tendril"

// Metrics holds the Prometheus collectors of the dialog engine.
type Metrics struct {
	IntentMatches *prometheus.CounterVec
	IntentScore   prometheus.Histogram
	SlotsFilled   *prometheus.CounterVec
	Turns         *prometheus.CounterVec
	TurnDuration  prometheus.Histogram
	TurnErrors    *prometheus.CounterVec
}

// NewMetrics creates the collectors and registers them with reg.
// A nil reg leaves them unregistered.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		IntentMatches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "intent_matches_total",
			Help:      "Total number of turns that selected each node.",
		}, []string{"node_id"}),
		IntentScore: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: Namespace,
			Name:      "intent_score",
			Help:      "Similarity score of the selected intent.",
			Buckets:   prometheus.LinearBuckets(0, 0.1, 11),
		}),
		SlotsFilled: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "slots_filled_total",
			Help:      "Total number of slot values extracted from utterances.",
		}, []string{"slot"}),
		Turns: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "turns_total",
			Help:      "Total number of completed turns by action.",
		}, []string{"action"}),
		TurnDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: Namespace,
			Name:      "turn_duration_seconds",
			Help:      "Duration of completed turns.",
			Buckets:   prometheus.ExponentialBuckets(0.00005, 4, 8),
		}),
		TurnErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "turn_errors_total",
			Help:      "Total number of failed turns by reason.",
		}, []string{"reason"}),
	}

	if reg != nil {
		for _, c := range m.collectors() {
			if err := reg.Register(c); err != nil {
				return nil, err
			}
		}
	}
	return m, nil
}

func (m *Metrics) collectors() []prometheus.Collector {
	return []prometheus.Collector{
		m.IntentMatches, m.IntentScore, m.SlotsFilled,
		m.Turns, m.TurnDuration, m.TurnErrors,
	}
}

// Hooks returns lifecycle hooks that record into the collectors.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnIntentMatched: func(ctx context.Context, e *domain.IntentEvent) {
			m.IntentMatches.WithLabelValues(e.NodeID).Inc()
			m.IntentScore.Observe(e.Score)
		},
		OnSlotFilled: func(ctx context.Context, e *domain.SlotEvent) {
			m.SlotsFilled.WithLabelValues(e.Slot).Inc()
		},
		OnTurnComplete: func(ctx context.Context, e *domain.TurnEvent) {
			m.Turns.WithLabelValues(string(e.Action)).Inc()
			m.TurnDuration.Observe(e.Duration.Seconds())
		},
	}
}

// ObserveError counts a failed turn under its reason.
func (m *Metrics) ObserveError(err error) {
	if err == nil {
		return
	}
	m.TurnErrors.WithLabelValues(ErrorReason(err)).Inc()
}

// ErrorReason classifies a turn error into a low-cardinality label.
func ErrorReason(err error) string {
	switch {
	case errors.Is(err, domain.ErrNoReachableIntent):
		return "no_reachable_intent"
	case errors.Is(err, domain.ErrUnresolvedReference):
		return "unresolved_reference"
	case errors.Is(err, domain.ErrSessionNotFound):
		return "session_not_found"
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return "canceled"
	}
	return "other"
}
