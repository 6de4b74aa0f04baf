package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/cricket-scoring/internal/domain/match"
	"github.com/riskibarqy/cricket-scoring/internal/domain/result"
	"github.com/riskibarqy/cricket-scoring/internal/platform/id"
	"github.com/riskibarqy/cricket-scoring/internal/platform/logging"
	"github.com/riskibarqy/cricket-scoring/internal/platform/metrics"
	"github.com/riskibarqy/cricket-scoring/internal/platform/resilience"
)

// StandingsUpdater is the part of StandingService the resolver needs.
type StandingsUpdater interface {
	UpdateStandings(ctx context.Context, tournamentID string, res result.MatchResult) (StandingsUpdate, error)
}

type ResultService struct {
	matchRepo  match.Repository
	ledgerRepo match.LedgerRepository
	standings  StandingsUpdater
	locks      *resilience.KeyedMutex
	publisher  EventPublisher
	metrics    metrics.Metrics
	idGen      id.Generator
	logger     *logging.Logger
	now        func() time.Time
}

func NewResultService(
	matchRepo match.Repository,
	ledgerRepo match.LedgerRepository,
	standings StandingsUpdater,
	locks *resilience.KeyedMutex,
	publisher EventPublisher,
	m metrics.Metrics,
	idGen id.Generator,
	logger *logging.Logger,
) *ResultService {
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
	return &ResultService{
		matchRepo:  matchRepo,
		ledgerRepo: ledgerRepo,
		standings:  standings,
		locks:      locks,
		publisher:  publisher,
		metrics:    m,
		idGen:      idGen,
		logger:     logger,
		now:        time.Now,
	}
}

// ResolveMatch derives the result, moves the match to its terminal state and
// folds the result into the tournament table. Resolving an already finished
// match returns the same result and only retries the standings update, which
// the standings store applies at most once per match.
func (s *ResultService) ResolveMatch(ctx context.Context, matchID string) (result.MatchResult, error) {
	ctx, span := startSpan(ctx, "usecase.ResultService.ResolveMatch", matchAttrs(matchID, 0)...)
	defer span.End()

	unlock := s.locks.Lock(strings.TrimSpace(matchID))
	defer unlock()

	m, err := getMatch(ctx, s.matchRepo, matchID)
	if err != nil {
		return result.MatchResult{}, err
	}

	totals, err := inningsTotals(ctx, s.ledgerRepo, m)
	if err != nil {
		return result.MatchResult{}, err
	}
	res, err := resolveTotals(m, totals)
	if err != nil {
		return result.MatchResult{}, err
	}

	switch m.State {
	case match.StateCompleted, match.StateTied, match.StateNoResult:
		return res, s.applyStandings(ctx, m, res)
	case match.StateAbandoned:
		err = m.DeclareNoResult(res.Summary)
	default:
		err = m.Finish(res.MatchState(), res.WinnerTeamID, res.Summary)
	}
	if err != nil {
		return result.MatchResult{}, conflict(err)
	}

	m.UpdatedAt = s.now().UTC()
	if err := s.matchRepo.Update(ctx, m); err != nil {
		return result.MatchResult{}, fmt.Errorf("update match: %w", err)
	}
	s.metrics.IncMatchesResolved(string(res.Outcome))
	s.logger.InfoContext(ctx, "match resolved",
		"match_id", m.ID,
		"outcome", string(res.Outcome),
		"summary", res.Summary,
	)

	publish(ctx, s.publisher, s.metrics, s.idGen, s.logger, s.now, DomainEvent{
		Type:         EventMatchResolved,
		MatchID:      m.ID,
		TournamentID: m.TournamentID,
		Data: map[string]any{
			"outcome":      string(res.Outcome),
			"winnerTeamId": res.WinnerTeamID,
			"margin":       res.Margin,
			"summary":      res.Summary,
		},
	})

	return res, s.applyStandings(ctx, m, res)
}

func (s *ResultService) applyStandings(ctx context.Context, m match.Match, res result.MatchResult) error {
	if m.TournamentID == "" || s.standings == nil {
		return nil
	}
	if _, err := s.standings.UpdateStandings(ctx, m.TournamentID, res); err != nil {
		return fmt.Errorf("update standings: %w", err)
	}
	return nil
}

// IsIncomplete reports whether err came from resolving an unfinished match.
func IsIncomplete(err error) bool {
	var incomplete *result.IncompleteMatchError
	return errors.As(err, &incomplete)
}
