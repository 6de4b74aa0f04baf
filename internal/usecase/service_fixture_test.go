package usecase

import (
	"context"
	"strconv"
	"sync"
	"testing"

	"github.com/riskibarqy/cricket-scoring/internal/domain/match"
	"github.com/riskibarqy/cricket-scoring/internal/domain/profile"
	"github.com/riskibarqy/cricket-scoring/internal/domain/standing"
	"github.com/riskibarqy/cricket-scoring/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/cricket-scoring/internal/platform/logging"
	"github.com/riskibarqy/cricket-scoring/internal/platform/resilience"
)

type recordingPublisher struct {
	mu     sync.Mutex
	events []DomainEvent
	err    error
}

func (p *recordingPublisher) Publish(_ context.Context, event DomainEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return p.err
}

func (p *recordingPublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.events))
	for _, e := range p.events {
		out = append(out, e.Type)
	}
	return out
}

type sequenceIDs struct {
	mu sync.Mutex
	n  int
}

func (g *sequenceIDs) NewID() (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.n++
	return "id-" + strconv.Itoa(g.n), nil
}

type services struct {
	matches   *MatchService
	scoring   *ScoringService
	results   *ResultService
	standings *StandingService
	publisher *recordingPublisher
	ledger    *memory.LedgerRepository
}

func newServices(t *testing.T) services {
	t.Helper()

	matchRepo := memory.NewMatchRepository()
	ledgerRepo := memory.NewLedgerRepository()
	standingRepo := memory.NewStandingRepository()
	locks := &resilience.KeyedMutex{}
	publisher := &recordingPublisher{}
	ids := &sequenceIDs{}
	logger := logging.NewNop()

	standings := NewStandingService(matchRepo, ledgerRepo, standingRepo, publisher, nil, ids,
		StandingServiceConfig{Rules: standing.DefaultRules(), RebuildWorkers: 2}, logger)

	return services{
		matches:   NewMatchService(matchRepo, ledgerRepo, locks, ids, logger),
		scoring:   NewScoringService(matchRepo, ledgerRepo, locks, publisher, nil, ids, logger),
		results:   NewResultService(matchRepo, ledgerRepo, standings, locks, publisher, nil, ids, logger),
		standings: standings,
		publisher: publisher,
		ledger:    ledgerRepo,
	}
}

func twoOverProfile() *profile.Profile {
	return &profile.Profile{
		Name:            "two-over",
		OversPerInnings: 2,
		BallsPerOver:    6,
		WideRuns:        1,
		NoBallRuns:      1,
		FreeHitEnabled:  true,
		MaxWickets:      10,
	}
}

// startedMatch creates a match between lions and tigers with lions batting first.
func startedMatch(t *testing.T, svc services, tournamentID string) match.Match {
	t.Helper()
	ctx := context.Background()

	m, err := svc.matches.CreateMatch(ctx, CreateMatchInput{
		TournamentID: tournamentID,
		TeamA:        "lions",
		TeamB:        "tigers",
		Profile:      twoOverProfile(),
	})
	if err != nil {
		t.Fatalf("create match: %v", err)
	}
	if _, err := svc.matches.RecordToss(ctx, m.ID, "lions", match.TossBat); err != nil {
		t.Fatalf("record toss: %v", err)
	}
	m, err = svc.matches.StartInnings(ctx, m.ID, 1)
	if err != nil {
		t.Fatalf("start innings 1: %v", err)
	}
	return m
}

// bowlSingles bowls n singles from the current state, changing bowler at
// each over boundary between b1 and b2.
func bowlSingles(t *testing.T, svc services, matchID string, innings, n int, opening bool) ApplyDeliveryResult {
	t.Helper()
	ctx := context.Background()

	var last ApplyDeliveryResult
	for i := 0; i < n; i++ {
		input := match.Input{RunsOffBat: 1}
		if opening && i == 0 {
			input.Striker, input.NonStriker = "s1", "s2"
		}
		state, err := svc.scoring.GetInningsState(ctx, matchID, innings)
		if err != nil {
			t.Fatalf("innings state: %v", err)
		}
		if state.CurrentBowler == "" {
			input.Bowler = "b1"
			if state.PreviousOverBowler == "b1" {
				input.Bowler = "b2"
			}
		}
		last, err = svc.scoring.ApplyDelivery(ctx, matchID, innings, input)
		if err != nil {
			t.Fatalf("delivery %d: %v", i+1, err)
		}
	}
	return last
}
