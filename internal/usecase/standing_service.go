package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/riskibarqy/cricket-scoring/internal/domain/match"
	"github.com/riskibarqy/cricket-scoring/internal/domain/result"
	"github.com/riskibarqy/cricket-scoring/internal/domain/standing"
	"github.com/riskibarqy/cricket-scoring/internal/platform/id"
	"github.com/riskibarqy/cricket-scoring/internal/platform/logging"
	"github.com/riskibarqy/cricket-scoring/internal/platform/metrics"
	"github.com/riskibarqy/cricket-scoring/internal/platform/resilience"
	"go.opentelemetry.io/otel/attribute"
)

type StandingsUpdate struct {
	TeamA   standing.TeamStanding
	TeamB   standing.TeamStanding
	Applied bool
}

type StandingServiceConfig struct {
	Rules          standing.Rules
	RebuildWorkers int
}

type StandingService struct {
	matchRepo    match.Repository
	ledgerRepo   match.LedgerRepository
	standingRepo standing.Repository
	locks        *resilience.KeyedMutex
	publisher    EventPublisher
	metrics      metrics.Metrics
	idGen        id.Generator
	cfg          StandingServiceConfig
	logger       *logging.Logger
	now          func() time.Time
}

func NewStandingService(
	matchRepo match.Repository,
	ledgerRepo match.LedgerRepository,
	standingRepo standing.Repository,
	publisher EventPublisher,
	m metrics.Metrics,
	idGen id.Generator,
	cfg StandingServiceConfig,
	logger *logging.Logger,
) *StandingService {
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
	if cfg.RebuildWorkers <= 0 {
		cfg.RebuildWorkers = 4
	}
	return &StandingService{
		matchRepo:    matchRepo,
		ledgerRepo:   ledgerRepo,
		standingRepo: standingRepo,
		locks:        &resilience.KeyedMutex{},
		publisher:    publisher,
		metrics:      m,
		idGen:        idGen,
		cfg:          cfg,
		logger:       logger,
		now:          time.Now,
	}
}

// UpdateStandings applies a resolved match to both teams exactly once.
// A repeated call for the same match returns the stored rows unchanged.
func (s *StandingService) UpdateStandings(ctx context.Context, tournamentID string, res result.MatchResult) (StandingsUpdate, error) {
	ctx, span := startSpan(ctx, "usecase.StandingService.UpdateStandings", attribute.String("cricket.tournament_id", tournamentID))
	defer span.End()

	tournamentID = strings.TrimSpace(tournamentID)
	if tournamentID == "" {
		return StandingsUpdate{}, invalidInputf("tournament id is required")
	}
	if res.MatchID == "" || res.TeamA == "" || res.TeamB == "" {
		return StandingsUpdate{}, invalidInputf("match result is incomplete")
	}

	unlock := s.locks.Lock(tournamentID)
	defer unlock()

	a, err := s.row(ctx, tournamentID, res.TeamA)
	if err != nil {
		return StandingsUpdate{}, err
	}
	b, err := s.row(ctx, tournamentID, res.TeamB)
	if err != nil {
		return StandingsUpdate{}, err
	}

	nextA, nextB, err := standing.Apply(s.cfg.Rules, a, b, res)
	if err != nil {
		return StandingsUpdate{}, invalidInput(err)
	}
	now := s.now().UTC()
	nextA.UpdatedAt = now
	nextB.UpdatedAt = now

	applied, err := s.standingRepo.ApplyMatch(ctx, tournamentID, res.MatchID, []standing.TeamStanding{nextA, nextB})
	if err != nil {
		return StandingsUpdate{}, fmt.Errorf("apply match to standings: %w", err)
	}
	if !applied {
		s.logger.InfoContext(ctx, "standings already include match", "tournament_id", tournamentID, "match_id", res.MatchID)
		return StandingsUpdate{TeamA: a, TeamB: b}, nil
	}

	publish(ctx, s.publisher, s.metrics, s.idGen, s.logger, s.now, DomainEvent{
		Type:         EventStandingsUpdated,
		MatchID:      res.MatchID,
		TournamentID: tournamentID,
	})
	return StandingsUpdate{TeamA: nextA, TeamB: nextB, Applied: true}, nil
}

func (s *StandingService) ListStandings(ctx context.Context, tournamentID string) ([]standing.TeamStanding, error) {
	ctx, span := startSpan(ctx, "usecase.StandingService.ListStandings", attribute.String("cricket.tournament_id", tournamentID))
	defer span.End()

	tournamentID = strings.TrimSpace(tournamentID)
	if tournamentID == "" {
		return nil, invalidInputf("tournament id is required")
	}

	items, err := s.standingRepo.ListByTournament(ctx, tournamentID)
	if err != nil {
		return nil, fmt.Errorf("list standings: %w", err)
	}
	return standing.Rank(items), nil
}

// RebuildStandings recomputes a tournament table from every finished match.
// Match results are re-derived from the ledgers on a worker pool and folded
// in creation order.
func (s *StandingService) RebuildStandings(ctx context.Context, tournamentID string) ([]standing.TeamStanding, error) {
	ctx, span := startSpan(ctx, "usecase.StandingService.RebuildStandings", attribute.String("cricket.tournament_id", tournamentID))
	defer span.End()

	tournamentID = strings.TrimSpace(tournamentID)
	if tournamentID == "" {
		return nil, invalidInputf("tournament id is required")
	}

	unlock := s.locks.Lock(tournamentID)
	defer unlock()

	matches, err := s.matchRepo.ListByTournament(ctx, tournamentID)
	if err != nil {
		return nil, fmt.Errorf("list tournament matches: %w", err)
	}
	finished := make([]match.Match, 0, len(matches))
	for _, m := range matches {
		switch m.State {
		case match.StateCompleted, match.StateTied, match.StateNoResult:
			finished = append(finished, m)
		}
	}
	sort.SliceStable(finished, func(i, j int) bool {
		if !finished[i].CreatedAt.Equal(finished[j].CreatedAt) {
			return finished[i].CreatedAt.Before(finished[j].CreatedAt)
		}
		return finished[i].ID < finished[j].ID
	})

	results, err := s.resolveAll(ctx, finished)
	if err != nil {
		return nil, err
	}

	rows := make(map[string]standing.TeamStanding)
	order := make([]string, 0)
	get := func(teamID string) standing.TeamStanding {
		row, ok := rows[teamID]
		if !ok {
			row = standing.TeamStanding{TournamentID: tournamentID, TeamID: teamID}
			order = append(order, teamID)
		}
		return row
	}

	now := s.now().UTC()
	matchIDs := make([]string, 0, len(results))
	for _, res := range results {
		a, b, err := standing.Apply(s.cfg.Rules, get(res.TeamA), get(res.TeamB), res)
		if err != nil {
			return nil, fmt.Errorf("fold match %s: %w", res.MatchID, err)
		}
		a.UpdatedAt, b.UpdatedAt = now, now
		rows[a.TeamID], rows[b.TeamID] = a, b
		matchIDs = append(matchIDs, res.MatchID)
	}

	out := make([]standing.TeamStanding, 0, len(order))
	for _, teamID := range order {
		out = append(out, rows[teamID])
	}
	if err := s.standingRepo.ReplaceByTournament(ctx, tournamentID, out, matchIDs); err != nil {
		return nil, fmt.Errorf("replace standings: %w", err)
	}

	s.logger.InfoContext(ctx, "standings rebuilt",
		"tournament_id", tournamentID,
		"matches", len(matchIDs),
		"teams", len(out),
	)
	return standing.Rank(out), nil
}

func (s *StandingService) resolveAll(ctx context.Context, matches []match.Match) ([]result.MatchResult, error) {
	results := make([]result.MatchResult, len(matches))
	if len(matches) == 0 {
		return results, nil
	}

	pool, err := ants.NewPool(min(s.cfg.RebuildWorkers, len(matches)))
	if err != nil {
		return nil, fmt.Errorf("create rebuild worker pool: %w", err)
	}
	defer pool.Release()

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		firstErr error
	)
	for i, m := range matches {
		wg.Add(1)
		submitErr := pool.Submit(func() {
			defer wg.Done()
			totals, err := inningsTotals(ctx, s.ledgerRepo, m)
			if err == nil {
				results[i], err = resolveTotals(m, totals)
			}
			if err != nil {
				mu.Lock()
				if firstErr == nil {
					firstErr = fmt.Errorf("resolve match %s: %w", m.ID, err)
				}
				mu.Unlock()
			}
		})
		if submitErr != nil {
			wg.Done()
			wg.Wait()
			return nil, fmt.Errorf("submit rebuild task: %w", submitErr)
		}
	}
	wg.Wait()

	if firstErr != nil {
		return nil, firstErr
	}
	return results, nil
}

func (s *StandingService) row(ctx context.Context, tournamentID, teamID string) (standing.TeamStanding, error) {
	row, exists, err := s.standingRepo.Get(ctx, tournamentID, teamID)
	if err != nil {
		return standing.TeamStanding{}, fmt.Errorf("get standing: %w", err)
	}
	if !exists {
		return standing.TeamStanding{TournamentID: tournamentID, TeamID: teamID}, nil
	}
	return row, nil
}
