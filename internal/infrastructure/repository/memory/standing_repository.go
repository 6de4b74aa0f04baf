package memory

import (
	"context"
	"sync"

	"github.com/riskibarqy/cricket-scoring/internal/domain/standing"
)

type StandingRepository struct {
	mu      sync.RWMutex
	rows    map[string]map[string]standing.TeamStanding
	order   map[string][]string
	applied map[string]map[string]struct{}
}

func NewStandingRepository() *StandingRepository {
	return &StandingRepository{
		rows:    make(map[string]map[string]standing.TeamStanding),
		order:   make(map[string][]string),
		applied: make(map[string]map[string]struct{}),
	}
}

func (r *StandingRepository) ListByTournament(_ context.Context, tournamentID string) ([]standing.TeamStanding, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]standing.TeamStanding, 0, len(r.order[tournamentID]))
	for _, teamID := range r.order[tournamentID] {
		out = append(out, r.rows[tournamentID][teamID])
	}
	return out, nil
}

func (r *StandingRepository) Get(_ context.Context, tournamentID, teamID string) (standing.TeamStanding, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	row, ok := r.rows[tournamentID][teamID]
	return row, ok, nil
}

func (r *StandingRepository) ApplyMatch(_ context.Context, tournamentID, matchID string, rows []standing.TeamStanding) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	applied, ok := r.applied[tournamentID]
	if !ok {
		applied = make(map[string]struct{})
		r.applied[tournamentID] = applied
	}
	if _, done := applied[matchID]; done {
		return false, nil
	}

	for _, row := range rows {
		r.put(tournamentID, row)
	}
	applied[matchID] = struct{}{}
	return true, nil
}

func (r *StandingRepository) ReplaceByTournament(_ context.Context, tournamentID string, rows []standing.TeamStanding, matchIDs []string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.rows, tournamentID)
	delete(r.order, tournamentID)
	for _, row := range rows {
		r.put(tournamentID, row)
	}

	applied := make(map[string]struct{}, len(matchIDs))
	for _, matchID := range matchIDs {
		applied[matchID] = struct{}{}
	}
	r.applied[tournamentID] = applied
	return nil
}

func (r *StandingRepository) put(tournamentID string, row standing.TeamStanding) {
	table, ok := r.rows[tournamentID]
	if !ok {
		table = make(map[string]standing.TeamStanding)
		r.rows[tournamentID] = table
	}
	if _, exists := table[row.TeamID]; !exists {
		r.order[tournamentID] = append(r.order[tournamentID], row.TeamID)
	}
	row.TournamentID = tournamentID
	table[row.TeamID] = row
}
