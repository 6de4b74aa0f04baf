package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/cricket-scoring/internal/domain/match"
	qb "github.com/riskibarqy/cricket-scoring/internal/platform/querybuilder"
)

// LedgerRepository keeps ledger entries in match_deliveries. The unique key
// on (match_public_id, innings_number, sequence) settles racing writers.
type LedgerRepository struct {
	db *sqlx.DB
}

func NewLedgerRepository(db *sqlx.DB) *LedgerRepository {
	return &LedgerRepository{db: db}
}

func (r *LedgerRepository) Append(ctx context.Context, entry match.Entry) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx append ledger entry: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	length, err := r.length(ctx, tx, entry.MatchID, entry.InningsNumber)
	if err != nil {
		return err
	}
	if entry.Sequence != length+1 {
		return fmt.Errorf("%w: got sequence %d, ledger has %d entries", match.ErrSequenceConflict, entry.Sequence, length)
	}

	query, args, err := qb.InsertModel("match_deliveries", ledgerEntryToModel(entry), "")
	if err != nil {
		return fmt.Errorf("build insert ledger entry query: %w", err)
	}
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: sequence %d already taken", match.ErrSequenceConflict, entry.Sequence)
		}
		return fmt.Errorf("insert ledger entry match=%s innings=%d sequence=%d: %w", entry.MatchID, entry.InningsNumber, entry.Sequence, err)
	}

	if err := tx.Commit(); err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: sequence %d already taken", match.ErrSequenceConflict, entry.Sequence)
		}
		return fmt.Errorf("commit append ledger entry tx: %w", err)
	}
	return nil
}

func (r *LedgerRepository) List(ctx context.Context, matchID string, inningsNumber, limit int) ([]match.Entry, error) {
	conditions := []qb.Condition{
		qb.Eq("match_public_id", matchID),
		qb.Eq("innings_number", inningsNumber),
	}
	if limit > 0 {
		conditions = append(conditions, qb.Lte("sequence", limit))
	}

	query, args, err := qb.Select(ledgerColumns...).From("match_deliveries").
		Where(conditions...).
		OrderBy("sequence").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list ledger query: %w", err)
	}

	var rows []ledgerEntryModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list ledger match=%s innings=%d: %w", matchID, inningsNumber, err)
	}

	out := make([]match.Entry, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func (r *LedgerRepository) Len(ctx context.Context, matchID string, inningsNumber int) (int, error) {
	return r.length(ctx, r.db, matchID, inningsNumber)
}

func (r *LedgerRepository) length(ctx context.Context, q sqlx.QueryerContext, matchID string, inningsNumber int) (int, error) {
	query, args, err := qb.Select("COUNT(*)").From("match_deliveries").
		Where(
			qb.Eq("match_public_id", matchID),
			qb.Eq("innings_number", inningsNumber),
		).
		ToSQL()
	if err != nil {
		return 0, fmt.Errorf("build ledger length query: %w", err)
	}

	var n int
	if err := sqlx.GetContext(ctx, q, &n, query, args...); err != nil {
		return 0, fmt.Errorf("ledger length match=%s innings=%d: %w", matchID, inningsNumber, err)
	}
	return n, nil
}
