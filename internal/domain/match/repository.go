package match

import "context"

// Repository persists match headers.
type Repository interface {
	Create(ctx context.Context, m Match) error
	GetByID(ctx context.Context, matchID string) (Match, bool, error)
	Update(ctx context.Context, m Match) error
	ListByTournament(ctx context.Context, tournamentID string) ([]Match, error)
}

// LedgerRepository stores ledger entries. Append must reject an entry whose
// sequence is not exactly Len+1 with ErrSequenceConflict.
type LedgerRepository interface {
	Append(ctx context.Context, entry Entry) error
	// List returns entries in sequence order; limit <= 0 returns all.
	List(ctx context.Context, matchID string, inningsNumber, limit int) ([]Entry, error)
	Len(ctx context.Context, matchID string, inningsNumber int) (int, error)
}
