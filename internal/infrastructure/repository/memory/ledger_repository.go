package memory

import (
	"context"
	"fmt"
	"strconv"
	"sync"

	"github.com/riskibarqy/cricket-scoring/internal/domain/match"
)

type LedgerRepository struct {
	mu      sync.RWMutex
	entries map[string][]match.Entry
}

func NewLedgerRepository() *LedgerRepository {
	return &LedgerRepository{entries: make(map[string][]match.Entry)}
}

func (r *LedgerRepository) Append(_ context.Context, entry match.Entry) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := ledgerKey(entry.MatchID, entry.InningsNumber)
	current := r.entries[key]
	if entry.Sequence != len(current)+1 {
		return fmt.Errorf("%w: match=%s innings=%d sequence=%d next=%d",
			match.ErrSequenceConflict, entry.MatchID, entry.InningsNumber, entry.Sequence, len(current)+1)
	}
	r.entries[key] = append(current, entry)
	return nil
}

func (r *LedgerRepository) List(_ context.Context, matchID string, inningsNumber, limit int) ([]match.Entry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	current := r.entries[ledgerKey(matchID, inningsNumber)]
	if limit > 0 && limit < len(current) {
		current = current[:limit]
	}
	return append([]match.Entry(nil), current...), nil
}

func (r *LedgerRepository) Len(_ context.Context, matchID string, inningsNumber int) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.entries[ledgerKey(matchID, inningsNumber)]), nil
}

func ledgerKey(matchID string, inningsNumber int) string {
	return matchID + "::" + strconv.Itoa(inningsNumber)
}
