package usecase

import (
	"context"
	"time"
)

const (
	EventInningsCompleted = "innings_completed"
	EventDeliveryVoided   = "delivery_voided"
	EventMatchResolved    = "match_resolved"
	EventStandingsUpdated = "standings_updated"
)

// DomainEvent is a boundary notification for out-of-process consumers.
type DomainEvent struct {
	ID            string         `json:"id"`
	Type          string         `json:"type"`
	MatchID       string         `json:"matchId"`
	TournamentID  string         `json:"tournamentId,omitempty"`
	InningsNumber int            `json:"inningsNumber,omitempty"`
	OccurredAt    time.Time      `json:"occurredAt"`
	Data          map[string]any `json:"data,omitempty"`
}

// EventPublisher delivers events at least once. Consumers dedupe on ID.
type EventPublisher interface {
	Publish(ctx context.Context, event DomainEvent) error
}

type noopEventPublisher struct{}

func NewNoopEventPublisher() EventPublisher {
	return noopEventPublisher{}
}

func (noopEventPublisher) Publish(context.Context, DomainEvent) error {
	return nil
}
