package metrics

import (
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var _ Metrics = (*Service)(nil)

// Service holds the Prometheus collectors for the scoring engine.
type Service struct {
	DeliveriesApplied  *prometheus.CounterVec
	DeliveriesRejected *prometheus.CounterVec
	InningsCompleted   *prometheus.CounterVec
	MatchesResolved    *prometheus.CounterVec
	ApplyDuration      prometheus.Histogram
	EventsPublished    *prometheus.CounterVec
}

// NewHandler serves the given gatherer, or the default one.
func NewHandler(gatherer ...prometheus.Gatherer) http.Handler {
	gath := prometheus.DefaultGatherer
	if len(gatherer) > 0 {
		gath = gatherer[0]
	}
	return promhttp.HandlerFor(gath, promhttp.HandlerOpts{})
}

// NewService creates and registers the collectors.
func NewService(registerer ...prometheus.Registerer) *Service {
	reg := prometheus.DefaultRegisterer
	if len(registerer) > 0 {
		reg = registerer[0]
	}

	s := &Service{
		DeliveriesApplied: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "cricket_deliveries_applied_total",
			Help: "Deliveries accepted by the processor.",
		}, []string{"profile", "extra_type"}),
		DeliveriesRejected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "cricket_deliveries_rejected_total",
			Help: "Deliveries rejected by the processor, by reason code.",
		}, []string{"reason"}),
		InningsCompleted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "cricket_innings_completed_total",
			Help: "Innings closed by the processor.",
		}, []string{"reason"}),
		MatchesResolved: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "cricket_matches_resolved_total",
			Help: "Match results resolved.",
		}, []string{"outcome"}),
		ApplyDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "cricket_apply_delivery_duration_seconds",
			Help:    "Time spent applying one delivery including ledger replay and append.",
			Buckets: []float64{0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}),
		EventsPublished: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "cricket_events_published_total",
			Help: "Outbound scoring events.",
		}, []string{"type", "ok"}),
	}

	reg.MustRegister(
		s.DeliveriesApplied,
		s.DeliveriesRejected,
		s.InningsCompleted,
		s.MatchesResolved,
		s.ApplyDuration,
		s.EventsPublished,
	)

	return s
}

func (s *Service) IncDeliveriesApplied(profile, extraType string) {
	s.DeliveriesApplied.WithLabelValues(profile, extraType).Inc()
}

func (s *Service) IncDeliveriesRejected(reason string) {
	s.DeliveriesRejected.WithLabelValues(reason).Inc()
}

func (s *Service) IncInningsCompleted(reason string) {
	s.InningsCompleted.WithLabelValues(reason).Inc()
}

func (s *Service) IncMatchesResolved(outcome string) {
	s.MatchesResolved.WithLabelValues(outcome).Inc()
}

func (s *Service) ObserveApplyDuration(seconds float64) {
	s.ApplyDuration.Observe(seconds)
}

func (s *Service) IncEventsPublished(eventType string, ok bool) {
	s.EventsPublished.WithLabelValues(eventType, strconv.FormatBool(ok)).Inc()
}
