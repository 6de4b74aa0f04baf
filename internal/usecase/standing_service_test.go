package usecase

import (
	"context"
	"testing"

	"github.com/riskibarqy/cricket-scoring/internal/domain/result"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStandingService_RebuildMatchesIncrementalTable(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc := newServices(t)

	won := playFirstInnings(t, svc, "cup")
	chaseToWin(t, svc, won.ID)
	_, err := svc.results.ResolveMatch(ctx, won.ID)
	require.NoError(t, err)

	tied := playFirstInnings(t, svc, "cup")
	bowlSingles(t, svc, tied.ID, 2, 12, true)
	_, err = svc.results.ResolveMatch(ctx, tied.ID)
	require.NoError(t, err)

	// still in progress and left out of both tables
	startedMatch(t, svc, "cup")

	incremental, err := svc.standings.ListStandings(ctx, "cup")
	require.NoError(t, err)

	rebuilt, err := svc.standings.RebuildStandings(ctx, "cup")
	require.NoError(t, err)
	require.Len(t, rebuilt, len(incremental))

	for i := range incremental {
		want, got := incremental[i], rebuilt[i]
		assert.Equal(t, want.TeamID, got.TeamID)
		assert.Equal(t, want.Played, got.Played)
		assert.Equal(t, want.Won, got.Won)
		assert.Equal(t, want.Lost, got.Lost)
		assert.Equal(t, want.Tied, got.Tied)
		assert.Equal(t, want.Points, got.Points)
		assert.Equal(t, want.RunsScored, got.RunsScored)
		assert.Equal(t, want.RunsConceded, got.RunsConceded)
		assert.InDelta(t, want.OversFaced, got.OversFaced, 1e-9)
		assert.InDelta(t, want.NetRunRate, got.NetRunRate, 1e-9)
	}

	tigers := rebuilt[0]
	assert.Equal(t, "tigers", tigers.TeamID)
	assert.Equal(t, 2, tigers.Played)
	assert.Equal(t, 3, tigers.Points)
	assert.Equal(t, 25, tigers.RunsScored)
	assert.Equal(t, 24, tigers.RunsConceded)

	// rebuilding records the applied set, so a late resolve does not double count
	update, err := svc.standings.UpdateStandings(ctx, "cup", result.MatchResult{
		MatchID: won.ID,
		TeamA:   "lions",
		TeamB:   "tigers",
		Outcome: result.OutcomeNoResult,
	})
	require.NoError(t, err)
	assert.False(t, update.Applied)
}

func TestStandingService_UpdateStandingsValidation(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc := newServices(t)

	tests := []struct {
		name         string
		tournamentID string
		res          result.MatchResult
	}{
		{name: "missing tournament", res: result.MatchResult{MatchID: "m1", TeamA: "a", TeamB: "b"}},
		{name: "missing match", tournamentID: "cup", res: result.MatchResult{TeamA: "a", TeamB: "b"}},
		{name: "missing team", tournamentID: "cup", res: result.MatchResult{MatchID: "m1", TeamA: "a"}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.standings.UpdateStandings(ctx, tc.tournamentID, tc.res)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestStandingService_ApplyOncePerMatch(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc := newServices(t)
	res := result.MatchResult{
		MatchID:      "m1",
		TeamA:        "a",
		TeamB:        "b",
		Outcome:      result.OutcomeWin,
		WinnerTeamID: "a",
		LoserTeamID:  "b",
		First:        result.InningsTotal{Number: 1, BattingSide: "a", BowlingSide: "b", Runs: 150, LegalBalls: 120, Completed: true},
		Second:       result.InningsTotal{Number: 2, BattingSide: "b", BowlingSide: "a", Runs: 120, LegalBalls: 120, Completed: true},
		BallsPerOver: 6,
		MaxWickets:   10,
	}

	first, err := svc.standings.UpdateStandings(ctx, "cup", res)
	require.NoError(t, err)
	assert.True(t, first.Applied)
	assert.Equal(t, 2, first.TeamA.Points)
	assert.InDelta(t, 1.5, first.TeamA.NetRunRate, 1e-9)
	assert.InDelta(t, -1.5, first.TeamB.NetRunRate, 1e-9)

	second, err := svc.standings.UpdateStandings(ctx, "cup", res)
	require.NoError(t, err)
	assert.False(t, second.Applied)
	assert.Equal(t, first.TeamA.Points, second.TeamA.Points)

	table, err := svc.standings.ListStandings(ctx, "cup")
	require.NoError(t, err)
	require.Len(t, table, 2)
	assert.Equal(t, []string{"a", "b"}, []string{table[0].TeamID, table[1].TeamID})
	assert.Equal(t, 1, table[0].Played)
	assert.Equal(t, []string{EventStandingsUpdated}, svc.publisher.types())
}

func TestStandingService_RebuildEmptyTournament(t *testing.T) {
	t.Parallel()

	svc := newServices(t)
	rows, err := svc.standings.RebuildStandings(context.Background(), "empty")
	require.NoError(t, err)
	assert.Empty(t, rows)

	_, err = svc.standings.RebuildStandings(context.Background(), "")
	assert.ErrorIs(t, err, ErrInvalidInput)
}
