package cache

import (
	"context"
	"strconv"

	"github.com/riskibarqy/cricket-scoring/internal/domain/match"
	basecache "github.com/riskibarqy/cricket-scoring/internal/platform/cache"
)

// LedgerRepository caches bounded ledger reads. The ledger is append-only, so
// the first n entries of an innings never change once written and a read
// keyed by its bound cannot go stale. Unbounded reads and Len always reach
// the underlying store.
type LedgerRepository struct {
	next  match.LedgerRepository
	cache *basecache.Store[[]match.Entry]
}

func NewLedgerRepository(next match.LedgerRepository, cache *basecache.Store[[]match.Entry]) *LedgerRepository {
	return &LedgerRepository{next: next, cache: cache}
}

func (r *LedgerRepository) Append(ctx context.Context, entry match.Entry) error {
	return r.next.Append(ctx, entry)
}

func (r *LedgerRepository) List(ctx context.Context, matchID string, inningsNumber, limit int) ([]match.Entry, error) {
	if limit <= 0 {
		return r.next.List(ctx, matchID, inningsNumber, limit)
	}

	items, err := r.cache.GetOrLoad(ctx, ledgerKey(matchID, inningsNumber, limit), func(ctx context.Context) ([]match.Entry, error) {
		items, err := r.next.List(ctx, matchID, inningsNumber, limit)
		if err != nil {
			return nil, err
		}
		return append([]match.Entry(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}
	return append([]match.Entry(nil), items...), nil
}

func (r *LedgerRepository) Len(ctx context.Context, matchID string, inningsNumber int) (int, error) {
	return r.next.Len(ctx, matchID, inningsNumber)
}

// Evict drops every cached prefix of a match.
func (r *LedgerRepository) Evict(ctx context.Context, matchID string) int {
	return r.cache.DeletePrefix(ctx, "ledger:"+matchID+":")
}

func ledgerKey(matchID string, inningsNumber, limit int) string {
	return "ledger:" + matchID + ":" + strconv.Itoa(inningsNumber) + ":" + strconv.Itoa(limit)
}
