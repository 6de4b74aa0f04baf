package memory

import (
	"context"
	"errors"
	"testing"

	"github.com/riskibarqy/cricket-scoring/internal/domain/match"
)

func TestLedgerRepository_AppendEnforcesSequence(t *testing.T) {
	ctx := context.Background()
	repo := NewLedgerRepository()

	for seq := 1; seq <= 3; seq++ {
		err := repo.Append(ctx, match.Entry{MatchID: "m1", InningsNumber: 1, Sequence: seq, Kind: match.EntryDelivery})
		if err != nil {
			t.Fatalf("append %d: %v", seq, err)
		}
	}

	err := repo.Append(ctx, match.Entry{MatchID: "m1", InningsNumber: 1, Sequence: 3, Kind: match.EntryDelivery})
	if !errors.Is(err, match.ErrSequenceConflict) {
		t.Fatalf("expected ErrSequenceConflict, got %v", err)
	}

	if n, _ := repo.Len(ctx, "m1", 1); n != 3 {
		t.Fatalf("expected length 3, got %d", n)
	}
	if n, _ := repo.Len(ctx, "m1", 2); n != 0 {
		t.Fatalf("expected second innings empty, got %d", n)
	}

	prefix, err := repo.List(ctx, "m1", 1, 2)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(prefix) != 2 || prefix[1].Sequence != 2 {
		t.Fatalf("unexpected prefix: %+v", prefix)
	}
}

func TestStandingRepository_ApplyMatchOnce(t *testing.T) {
	ctx := context.Background()
	repo := NewStandingRepository()

	applied, err := repo.ApplyMatch(ctx, "cup", "m1", nil)
	if err != nil || !applied {
		t.Fatalf("expected first apply, got applied=%v err=%v", applied, err)
	}
	applied, err = repo.ApplyMatch(ctx, "cup", "m1", nil)
	if err != nil || applied {
		t.Fatalf("expected duplicate apply skipped, got applied=%v err=%v", applied, err)
	}
}

func TestMatchRepository_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	repo := NewMatchRepository()
	if err := repo.Create(ctx, match.Match{ID: "m1", Innings: []match.InningsSetup{{Number: 1}}}); err != nil {
		t.Fatalf("create: %v", err)
	}

	got, _, _ := repo.GetByID(ctx, "m1")
	got.Innings[0].Completed = true

	again, _, _ := repo.GetByID(ctx, "m1")
	if again.Innings[0].Completed {
		t.Fatalf("stored match mutated through returned copy")
	}
}
