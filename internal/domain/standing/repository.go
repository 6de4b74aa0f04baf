package standing

import "context"

type Repository interface {
	ListByTournament(ctx context.Context, tournamentID string) ([]TeamStanding, error)
	Get(ctx context.Context, tournamentID, teamID string) (TeamStanding, bool, error)
	// ApplyMatch stores both rows and marks matchID applied in one step. It
	// returns false without writing if matchID was already applied.
	ApplyMatch(ctx context.Context, tournamentID, matchID string, rows []TeamStanding) (bool, error)
	// ReplaceByTournament overwrites the table and its applied-match set.
	ReplaceByTournament(ctx context.Context, tournamentID string, rows []TeamStanding, matchIDs []string) error
}
