package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/cricket-scoring/internal/domain/match"
	"github.com/riskibarqy/cricket-scoring/internal/domain/profile"
	"github.com/riskibarqy/cricket-scoring/internal/domain/scorecard"
	"github.com/riskibarqy/cricket-scoring/internal/platform/id"
	"github.com/riskibarqy/cricket-scoring/internal/platform/logging"
	"github.com/riskibarqy/cricket-scoring/internal/platform/resilience"
)

type CreateMatchInput struct {
	TournamentID string
	TeamA        string
	TeamB        string
	ProfileName  string
	// Profile overrides ProfileName when set.
	Profile *profile.Profile
}

type MatchService struct {
	matchRepo  match.Repository
	ledgerRepo match.LedgerRepository
	locks      *resilience.KeyedMutex
	idGen      id.Generator
	logger     *logging.Logger
	now        func() time.Time
}

func NewMatchService(
	matchRepo match.Repository,
	ledgerRepo match.LedgerRepository,
	locks *resilience.KeyedMutex,
	idGen id.Generator,
	logger *logging.Logger,
) *MatchService {
	if locks == nil {
		locks = &resilience.KeyedMutex{}
	}
	if idGen == nil {
		idGen = id.NewUUIDGenerator()
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &MatchService{
		matchRepo:  matchRepo,
		ledgerRepo: ledgerRepo,
		locks:      locks,
		idGen:      idGen,
		logger:     logger,
		now:        time.Now,
	}
}

func (s *MatchService) ListProfiles(ctx context.Context) []profile.Profile {
	_, span := startSpan(ctx, "usecase.MatchService.ListProfiles")
	defer span.End()

	return profile.Presets()
}

func (s *MatchService) CreateMatch(ctx context.Context, input CreateMatchInput) (match.Match, error) {
	ctx, span := startSpan(ctx, "usecase.MatchService.CreateMatch")
	defer span.End()

	teamA := strings.TrimSpace(input.TeamA)
	teamB := strings.TrimSpace(input.TeamB)
	if teamA == "" || teamB == "" {
		return match.Match{}, invalidInputf("both teams are required")
	}
	if teamA == teamB {
		return match.Match{}, invalidInputf("a team cannot play itself")
	}

	var p profile.Profile
	if input.Profile != nil {
		p = *input.Profile
	} else {
		name := strings.TrimSpace(input.ProfileName)
		if name == "" {
			name = profile.NameT20
		}
		var err error
		p, err = profile.Lookup(name)
		if err != nil {
			return match.Match{}, invalidInput(err)
		}
	}
	if err := p.Validate(); err != nil {
		return match.Match{}, invalidInput(err)
	}

	matchID, err := s.idGen.NewID()
	if err != nil {
		return match.Match{}, fmt.Errorf("generate match id: %w", err)
	}

	now := s.now().UTC()
	m := match.Match{
		ID:           matchID,
		TournamentID: strings.TrimSpace(input.TournamentID),
		TeamA:        teamA,
		TeamB:        teamB,
		Profile:      p,
		State:        match.StateScheduled,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.matchRepo.Create(ctx, m); err != nil {
		return match.Match{}, fmt.Errorf("create match: %w", err)
	}

	s.logger.InfoContext(ctx, "match created",
		"match_id", m.ID,
		"tournament_id", m.TournamentID,
		"profile", p.Name,
	)
	return m, nil
}

func (s *MatchService) GetMatch(ctx context.Context, matchID string) (match.Match, error) {
	ctx, span := startSpan(ctx, "usecase.MatchService.GetMatch", matchAttrs(matchID, 0)...)
	defer span.End()

	return getMatch(ctx, s.matchRepo, matchID)
}

func (s *MatchService) RecordToss(ctx context.Context, matchID, winner string, decision match.TossDecision) (match.Match, error) {
	ctx, span := startSpan(ctx, "usecase.MatchService.RecordToss", matchAttrs(matchID, 0)...)
	defer span.End()

	return s.transition(ctx, matchID, func(m *match.Match) error {
		return m.RecordToss(strings.TrimSpace(winner), decision)
	})
}

// StartInnings opens the given innings. The second innings target is derived
// from the first innings ledger.
func (s *MatchService) StartInnings(ctx context.Context, matchID string, number int) (match.Match, error) {
	ctx, span := startSpan(ctx, "usecase.MatchService.StartInnings", matchAttrs(matchID, number)...)
	defer span.End()

	if number != 1 && number != 2 {
		return match.Match{}, invalidInputf("innings number must be 1 or 2")
	}

	return s.transition(ctx, matchID, func(m *match.Match) error {
		firstRuns := 0
		if number == 2 && len(m.Innings) == 1 {
			view, err := loadInnings(ctx, s.ledgerRepo, *m, 1, 0)
			if err != nil {
				return err
			}
			firstRuns = scorecard.Compute(m.Profile, 1, view.deliveries).Totals.Runs
		}
		return m.StartInnings(number, firstRuns)
	})
}

func (s *MatchService) AbandonMatch(ctx context.Context, matchID string) (match.Match, error) {
	ctx, span := startSpan(ctx, "usecase.MatchService.AbandonMatch", matchAttrs(matchID, 0)...)
	defer span.End()

	return s.transition(ctx, matchID, func(m *match.Match) error {
		return m.Abandon()
	})
}

func (s *MatchService) transition(ctx context.Context, matchID string, apply func(*match.Match) error) (match.Match, error) {
	unlock := s.locks.Lock(strings.TrimSpace(matchID))
	defer unlock()

	m, err := getMatch(ctx, s.matchRepo, matchID)
	if err != nil {
		return match.Match{}, err
	}

	before := m.State
	if err := apply(&m); err != nil {
		if errors.Is(err, match.ErrInvalidTransition) {
			return match.Match{}, conflict(err)
		}
		return match.Match{}, err
	}

	m.UpdatedAt = s.now().UTC()
	if err := s.matchRepo.Update(ctx, m); err != nil {
		return match.Match{}, fmt.Errorf("update match: %w", err)
	}

	s.logger.InfoContext(ctx, "match state changed",
		"match_id", m.ID,
		"from", string(before),
		"to", string(m.State),
	)
	return m, nil
}
