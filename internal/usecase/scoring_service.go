package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/cricket-scoring/internal/domain/match"
	"github.com/riskibarqy/cricket-scoring/internal/domain/scorecard"
	"github.com/riskibarqy/cricket-scoring/internal/platform/id"
	"github.com/riskibarqy/cricket-scoring/internal/platform/logging"
	"github.com/riskibarqy/cricket-scoring/internal/platform/metrics"
	"github.com/riskibarqy/cricket-scoring/internal/platform/resilience"
)

// ApplyDeliveryResult is the outcome of one accepted delivery.
type ApplyDeliveryResult struct {
	Sequence int
	Innings  match.Innings
	Delivery match.Delivery
	Event    *match.Event
}

type UndoDeliveryResult struct {
	Sequence int
	Voided   match.Delivery
	Innings  match.Innings
}

// ScoringService is the only writer of the delivery ledger. Writes for one
// match are serialised; reads never take the lock.
type ScoringService struct {
	matchRepo  match.Repository
	ledgerRepo match.LedgerRepository
	locks      *resilience.KeyedMutex
	publisher  EventPublisher
	metrics    metrics.Metrics
	idGen      id.Generator
	logger     *logging.Logger
	now        func() time.Time
}

func NewScoringService(
	matchRepo match.Repository,
	ledgerRepo match.LedgerRepository,
	locks *resilience.KeyedMutex,
	publisher EventPublisher,
	m metrics.Metrics,
	idGen id.Generator,
	logger *logging.Logger,
) *ScoringService {
	if locks == nil {
		locks = &resilience.KeyedMutex{}
	}
	if publisher == nil {
		publisher = NewNoopEventPublisher()
	}
	if m == nil {
		m = metrics.NewNop()
	}
	if idGen == nil {
		idGen = id.NewUUIDGenerator()
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &ScoringService{
		matchRepo:  matchRepo,
		ledgerRepo: ledgerRepo,
		locks:      locks,
		publisher:  publisher,
		metrics:    m,
		idGen:      idGen,
		logger:     logger,
		now:        time.Now,
	}
}

func (s *ScoringService) ApplyDelivery(ctx context.Context, matchID string, inningsNumber int, input match.Input) (ApplyDeliveryResult, error) {
	ctx, span := startSpan(ctx, "usecase.ScoringService.ApplyDelivery", matchAttrs(matchID, inningsNumber)...)
	defer span.End()

	started := s.now()
	unlock := s.locks.Lock(strings.TrimSpace(matchID))
	defer unlock()

	m, err := getMatch(ctx, s.matchRepo, matchID)
	if err != nil {
		return ApplyDeliveryResult{}, err
	}
	if err := requireCurrentInnings(m, inningsNumber); err != nil {
		return ApplyDeliveryResult{}, err
	}

	view, err := loadInnings(ctx, s.ledgerRepo, m, inningsNumber, 0)
	if err != nil {
		return ApplyDeliveryResult{}, err
	}
	if m.State != match.StateInningsInProgress && !view.setup.Completed {
		return ApplyDeliveryResult{}, conflictf("match %s is %s", m.ID, m.State)
	}
	state, err := view.replay(m)
	if err != nil {
		return ApplyDeliveryResult{}, err
	}

	applied, err := match.ApplyDelivery(m.Profile, state, input)
	if err != nil {
		if reason := match.RejectionReason(err); reason != "" {
			s.metrics.IncDeliveriesRejected(reason)
			s.logger.DebugContext(ctx, "delivery rejected", "match_id", m.ID, "innings", inningsNumber, "reason", reason)
		}
		return ApplyDeliveryResult{}, err
	}

	entry := match.Entry{
		MatchID:       m.ID,
		InningsNumber: inningsNumber,
		Sequence:      len(view.entries) + 1,
		Kind:          match.EntryDelivery,
		Delivery:      applied.Delivery,
		RecordedAt:    s.now().UTC(),
	}
	if err := s.ledgerRepo.Append(ctx, entry); err != nil {
		if errors.Is(err, match.ErrSequenceConflict) {
			return ApplyDeliveryResult{}, conflict(err)
		}
		return ApplyDeliveryResult{}, fmt.Errorf("append delivery: %w", err)
	}
	s.metrics.IncDeliveriesApplied(m.Profile.Name, string(applied.Delivery.ExtraType))

	if applied.Event != nil {
		if err := m.CompleteInnings(inningsNumber); err != nil {
			return ApplyDeliveryResult{}, conflict(err)
		}
		m.UpdatedAt = s.now().UTC()
		if err := s.matchRepo.Update(ctx, m); err != nil {
			return ApplyDeliveryResult{}, fmt.Errorf("update match: %w", err)
		}
		s.metrics.IncInningsCompleted(string(applied.Event.Reason))
		s.logger.InfoContext(ctx, "innings completed",
			"match_id", m.ID,
			"innings", inningsNumber,
			"reason", string(applied.Event.Reason),
			"runs", applied.Event.Runs,
			"wickets", applied.Event.Wickets,
		)
		s.publish(ctx, m, EventInningsCompleted, inningsNumber, map[string]any{
			"reason":     string(applied.Event.Reason),
			"runs":       applied.Event.Runs,
			"wickets":    applied.Event.Wickets,
			"legalBalls": applied.Event.LegalBalls,
		})
	}

	s.metrics.ObserveApplyDuration(s.now().Sub(started).Seconds())
	return ApplyDeliveryResult{
		Sequence: entry.Sequence,
		Innings:  applied.Innings,
		Delivery: applied.Delivery,
		Event:    applied.Event,
	}, nil
}

// UndoLastDelivery voids the most recent effective delivery and reopens the
// innings if that delivery had closed it.
func (s *ScoringService) UndoLastDelivery(ctx context.Context, matchID string, inningsNumber int) (UndoDeliveryResult, error) {
	ctx, span := startSpan(ctx, "usecase.ScoringService.UndoLastDelivery", matchAttrs(matchID, inningsNumber)...)
	defer span.End()

	unlock := s.locks.Lock(strings.TrimSpace(matchID))
	defer unlock()

	m, err := getMatch(ctx, s.matchRepo, matchID)
	if err != nil {
		return UndoDeliveryResult{}, err
	}
	if err := requireCurrentInnings(m, inningsNumber); err != nil {
		return UndoDeliveryResult{}, err
	}
	if m.State.Terminal() {
		return UndoDeliveryResult{}, conflictf("match %s is %s", m.ID, m.State)
	}

	view, err := loadInnings(ctx, s.ledgerRepo, m, inningsNumber, 0)
	if err != nil {
		return UndoDeliveryResult{}, err
	}

	last, _ := match.LastEffective(view.entries)
	void, err := match.VoidLast(view.entries, s.now().UTC())
	if err != nil {
		if errors.Is(err, match.ErrNothingToUndo) {
			return UndoDeliveryResult{}, conflict(err)
		}
		return UndoDeliveryResult{}, err
	}
	void.MatchID = m.ID
	void.InningsNumber = inningsNumber

	if err := s.ledgerRepo.Append(ctx, void); err != nil {
		if errors.Is(err, match.ErrSequenceConflict) {
			return UndoDeliveryResult{}, conflict(err)
		}
		return UndoDeliveryResult{}, fmt.Errorf("append void: %w", err)
	}

	entries := append(append([]match.Entry(nil), view.entries...), void)
	state, err := match.Replay(m.Profile, view.setup, match.Effective(entries))
	if err != nil {
		return UndoDeliveryResult{}, fmt.Errorf("rebuild innings after undo: %w", err)
	}

	if view.setup.Completed && !state.IsCompleted {
		if err := m.ReopenInnings(inningsNumber); err != nil {
			return UndoDeliveryResult{}, conflict(err)
		}
		m.UpdatedAt = s.now().UTC()
		if err := s.matchRepo.Update(ctx, m); err != nil {
			return UndoDeliveryResult{}, fmt.Errorf("update match: %w", err)
		}
	}

	s.logger.InfoContext(ctx, "delivery voided",
		"match_id", m.ID,
		"innings", inningsNumber,
		"voided_sequence", last.Sequence,
	)
	s.publish(ctx, m, EventDeliveryVoided, inningsNumber, map[string]any{
		"voidedSequence": last.Sequence,
	})

	return UndoDeliveryResult{
		Sequence: void.Sequence,
		Voided:   last.Delivery,
		Innings:  state,
	}, nil
}

// ListDeliveries returns the raw ledger including void markers.
func (s *ScoringService) ListDeliveries(ctx context.Context, matchID string, inningsNumber int) ([]match.Entry, error) {
	ctx, span := startSpan(ctx, "usecase.ScoringService.ListDeliveries", matchAttrs(matchID, inningsNumber)...)
	defer span.End()

	m, err := getMatch(ctx, s.matchRepo, matchID)
	if err != nil {
		return nil, err
	}
	view, err := loadInnings(ctx, s.ledgerRepo, m, inningsNumber, 0)
	if err != nil {
		return nil, err
	}
	return view.entries, nil
}

// GetInningsState replays the ledger snapshot into live innings state.
func (s *ScoringService) GetInningsState(ctx context.Context, matchID string, inningsNumber int) (match.Innings, error) {
	ctx, span := startSpan(ctx, "usecase.ScoringService.GetInningsState", matchAttrs(matchID, inningsNumber)...)
	defer span.End()

	m, err := getMatch(ctx, s.matchRepo, matchID)
	if err != nil {
		return match.Innings{}, err
	}
	view, err := loadInnings(ctx, s.ledgerRepo, m, inningsNumber, 0)
	if err != nil {
		return match.Innings{}, err
	}
	return view.replay(m)
}

// GetStatistics computes the scorecard over a snapshot of the ledger taken
// at call time.
func (s *ScoringService) GetStatistics(ctx context.Context, matchID string, inningsNumber int) (scorecard.Scorecard, error) {
	ctx, span := startSpan(ctx, "usecase.ScoringService.GetStatistics", matchAttrs(matchID, inningsNumber)...)
	defer span.End()

	m, err := getMatch(ctx, s.matchRepo, matchID)
	if err != nil {
		return scorecard.Scorecard{}, err
	}
	view, err := loadInnings(ctx, s.ledgerRepo, m, inningsNumber, 0)
	if err != nil {
		return scorecard.Scorecard{}, err
	}
	return scorecard.Compute(m.Profile, inningsNumber, view.deliveries), nil
}

func (s *ScoringService) publish(ctx context.Context, m match.Match, eventType string, inningsNumber int, data map[string]any) {
	publish(ctx, s.publisher, s.metrics, s.idGen, s.logger, s.now, DomainEvent{
		Type:          eventType,
		MatchID:       m.ID,
		TournamentID:  m.TournamentID,
		InningsNumber: inningsNumber,
		Data:          data,
	})
}

// publish never fails the caller; errors are logged and counted.
func publish(
	ctx context.Context,
	publisher EventPublisher,
	m metrics.Metrics,
	idGen id.Generator,
	logger *logging.Logger,
	now func() time.Time,
	event DomainEvent,
) {
	eventID, err := idGen.NewID()
	if err != nil {
		logger.WarnContext(ctx, "generate event id failed", "type", event.Type, "error", err)
		return
	}
	event.ID = eventID
	event.OccurredAt = now().UTC()

	err = publisher.Publish(ctx, event)
	m.IncEventsPublished(event.Type, err == nil)
	if err != nil {
		logger.WarnContext(ctx, "publish event failed",
			"type", event.Type,
			"match_id", event.MatchID,
			"error", err,
		)
	}
}

func requireCurrentInnings(m match.Match, number int) error {
	if _, err := inningsSetup(m, number); err != nil {
		return err
	}
	if number != len(m.Innings) {
		return conflictf("innings %d is not the current innings", number)
	}
	return nil
}
