package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/riskibarqy/cricket-scoring/internal/domain/match"
)

type MatchRepository struct {
	mu    sync.RWMutex
	items map[string]match.Match
}

func NewMatchRepository() *MatchRepository {
	return &MatchRepository{items: make(map[string]match.Match)}
}

func (r *MatchRepository) Create(_ context.Context, m match.Match) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.items[m.ID]; exists {
		return fmt.Errorf("match %s already exists", m.ID)
	}
	r.items[m.ID] = cloneMatch(m)
	return nil
}

func (r *MatchRepository) GetByID(_ context.Context, matchID string) (match.Match, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	m, ok := r.items[matchID]
	if !ok {
		return match.Match{}, false, nil
	}
	return cloneMatch(m), true, nil
}

func (r *MatchRepository) Update(_ context.Context, m match.Match) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.items[m.ID]; !exists {
		return fmt.Errorf("match %s does not exist", m.ID)
	}
	r.items[m.ID] = cloneMatch(m)
	return nil
}

func (r *MatchRepository) ListByTournament(_ context.Context, tournamentID string) ([]match.Match, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]match.Match, 0)
	for _, m := range r.items {
		if m.TournamentID == tournamentID {
			out = append(out, cloneMatch(m))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func cloneMatch(m match.Match) match.Match {
	copied := m
	copied.Innings = append([]match.InningsSetup(nil), m.Innings...)
	return copied
}
