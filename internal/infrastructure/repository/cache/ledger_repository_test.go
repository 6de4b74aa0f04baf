package cache

import (
	"context"
	"testing"
	"time"

	"github.com/riskibarqy/cricket-scoring/internal/domain/match"
	"github.com/riskibarqy/cricket-scoring/internal/infrastructure/repository/memory"
	basecache "github.com/riskibarqy/cricket-scoring/internal/platform/cache"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingLedger struct {
	match.LedgerRepository
	lists int
}

func (c *countingLedger) List(ctx context.Context, matchID string, inningsNumber, limit int) ([]match.Entry, error) {
	c.lists++
	return c.LedgerRepository.List(ctx, matchID, inningsNumber, limit)
}

func appendDeliveries(t *testing.T, repo match.LedgerRepository, n int) {
	t.Helper()
	for i := 1; i <= n; i++ {
		err := repo.Append(context.Background(), match.Entry{
			MatchID:       "m1",
			InningsNumber: 1,
			Sequence:      i,
			Kind:          match.EntryDelivery,
			Delivery:      match.Delivery{InningsNumber: 1, RunsOffBat: 1},
		})
		require.NoError(t, err)
	}
}

func TestLedgerRepository_BoundedReadsAreCached(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	inner := &countingLedger{LedgerRepository: memory.NewLedgerRepository()}
	repo := NewLedgerRepository(inner, basecache.NewStore[[]match.Entry](time.Minute))
	appendDeliveries(t, repo, 3)

	first, err := repo.List(ctx, "m1", 1, 3)
	require.NoError(t, err)
	require.Len(t, first, 3)

	first[0].Sequence = 99
	second, err := repo.List(ctx, "m1", 1, 3)
	require.NoError(t, err)
	assert.Equal(t, 1, second[0].Sequence)
	assert.Equal(t, 1, inner.lists)

	require.NoError(t, repo.Append(ctx, match.Entry{MatchID: "m1", InningsNumber: 1, Sequence: 4, Kind: match.EntryVoid, VoidsSequence: 3}))
	n, err := repo.Len(ctx, "m1", 1)
	require.NoError(t, err)
	assert.Equal(t, 4, n)

	longer, err := repo.List(ctx, "m1", 1, n)
	require.NoError(t, err)
	assert.Len(t, longer, 4)
	assert.Equal(t, 2, inner.lists)

	_, err = repo.List(ctx, "m1", 1, 0)
	require.NoError(t, err)
	assert.Equal(t, 3, inner.lists)

	assert.Equal(t, 2, repo.Evict(ctx, "m1"))
}
