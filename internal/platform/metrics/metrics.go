package metrics

// Metrics is the scoring engine's instrumentation surface.
type Metrics interface {
	IncDeliveriesApplied(profile, extraType string)
	IncDeliveriesRejected(reason string)
	IncInningsCompleted(reason string)
	IncMatchesResolved(outcome string)
	ObserveApplyDuration(seconds float64)
	IncEventsPublished(eventType string, ok bool)
}

type nop struct{}

// NewNop returns a Metrics that records nothing.
func NewNop() Metrics {
	return nop{}
}

func (nop) IncDeliveriesApplied(string, string) {}
func (nop) IncDeliveriesRejected(string)        {}
func (nop) IncInningsCompleted(string)          {}
func (nop) IncMatchesResolved(string)           {}
func (nop) ObserveApplyDuration(float64)        {}
func (nop) IncEventsPublished(string, bool)     {}
