package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/riskibarqy/cricket-scoring/internal/domain/match"
	"github.com/riskibarqy/cricket-scoring/internal/domain/result"
	"github.com/riskibarqy/cricket-scoring/internal/domain/scorecard"
	"github.com/sourcegraph/conc"
)

// inningsView is one innings read back from the ledger.
type inningsView struct {
	setup      match.InningsSetup
	entries    []match.Entry
	deliveries []match.Delivery
}

func getMatch(ctx context.Context, repo match.Repository, matchID string) (match.Match, error) {
	matchID = strings.TrimSpace(matchID)
	if matchID == "" {
		return match.Match{}, invalidInputf("match id is required")
	}

	m, exists, err := repo.GetByID(ctx, matchID)
	if err != nil {
		return match.Match{}, fmt.Errorf("get match: %w", err)
	}
	if !exists {
		return match.Match{}, notFoundf("match=%s", matchID)
	}
	return m, nil
}

func inningsSetup(m match.Match, number int) (match.InningsSetup, error) {
	setup, err := m.Setup(number)
	if errors.Is(err, match.ErrInningsNotFound) {
		return match.InningsSetup{}, notFound(err)
	}
	return setup, err
}

// loadInnings reads the ledger bounded to limit entries; limit <= 0 reads a
// snapshot of the current length.
func loadInnings(ctx context.Context, ledger match.LedgerRepository, m match.Match, number, limit int) (inningsView, error) {
	setup, err := inningsSetup(m, number)
	if err != nil {
		return inningsView{}, err
	}

	if limit <= 0 {
		limit, err = ledger.Len(ctx, m.ID, number)
		if err != nil {
			return inningsView{}, fmt.Errorf("ledger length: %w", err)
		}
		if limit == 0 {
			return inningsView{setup: setup}, nil
		}
	}

	entries, err := ledger.List(ctx, m.ID, number, limit)
	if err != nil {
		return inningsView{}, fmt.Errorf("list ledger: %w", err)
	}

	return inningsView{
		setup:      setup,
		entries:    entries,
		deliveries: match.Effective(entries),
	}, nil
}

func (v inningsView) replay(m match.Match) (match.Innings, error) {
	state, err := match.Replay(m.Profile, v.setup, v.deliveries)
	if err != nil {
		return match.Innings{}, fmt.Errorf("rebuild innings %d of match %s: %w", v.setup.Number, m.ID, err)
	}
	return state, nil
}

// inningsTotals loads every started innings of a match concurrently.
func inningsTotals(ctx context.Context, ledger match.LedgerRepository, m match.Match) ([]result.InningsTotal, error) {
	totals := make([]result.InningsTotal, len(m.Innings))
	errs := make([]error, len(m.Innings))

	var wg conc.WaitGroup
	for i := range m.Innings {
		wg.Go(func() {
			view, err := loadInnings(ctx, ledger, m, i+1, 0)
			if err != nil {
				errs[i] = err
				return
			}
			card := scorecard.Compute(m.Profile, view.setup.Number, view.deliveries)
			totals[i] = result.TotalFromScorecard(view.setup, card)
		})
	}
	wg.Wait()

	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return totals, nil
}

// resolveTotals turns a match header plus its innings totals into a result.
func resolveTotals(m match.Match, totals []result.InningsTotal) (result.MatchResult, error) {
	if m.State == match.StateAbandoned || m.State == match.StateNoResult {
		return result.NoResult(m), nil
	}

	var first, second result.InningsTotal
	if len(totals) > 0 {
		first = totals[0]
	}
	if len(totals) > 1 {
		second = totals[1]
	}
	return result.Resolve(m, first, second)
}
