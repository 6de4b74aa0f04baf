package usecase

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/riskibarqy/cricket-scoring/internal/domain/match"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScoringService_InningsCompletesAndClosesMatchInnings(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc := newServices(t)
	m := startedMatch(t, svc, "")

	last := bowlSingles(t, svc, m.ID, 1, 12, true)
	require.NotNil(t, last.Event)
	assert.Equal(t, match.CompletionOversComplete, last.Event.Reason)
	assert.Equal(t, 12, last.Innings.Runs)
	assert.Equal(t, 12, last.Sequence)

	got, err := svc.matches.GetMatch(ctx, m.ID)
	require.NoError(t, err)
	assert.Equal(t, match.StateInningsBreak, got.State)
	assert.True(t, got.Innings[0].Completed)
	assert.Equal(t, []string{EventInningsCompleted}, svc.publisher.types())

	_, err = svc.scoring.ApplyDelivery(ctx, m.ID, 1, match.Input{Bowler: "b1"})
	assert.Equal(t, match.ReasonInningsCompleted, match.RejectionReason(err))

	card, err := svc.scoring.GetStatistics(ctx, m.ID, 1)
	require.NoError(t, err)
	assert.Equal(t, "2.0", card.Totals.Overs)
	assert.Equal(t, 12, card.Totals.Runs)
}

func TestScoringService_RejectionLeavesLedgerUntouched(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc := newServices(t)
	m := startedMatch(t, svc, "")

	_, err := svc.scoring.ApplyDelivery(ctx, m.ID, 1, match.Input{Striker: "s1", NonStriker: "s2", Bowler: "b1", ExtraType: match.ExtraNoBall})
	require.NoError(t, err)

	_, err = svc.scoring.ApplyDelivery(ctx, m.ID, 1, match.Input{IsWicket: true, WicketType: match.WicketBowled})
	var invalid *match.InvalidDeliveryError
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, match.ReasonFreeHitWicket, invalid.Reason)

	n, err := svc.ledger.Len(ctx, m.ID, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	res, err := svc.scoring.ApplyDelivery(ctx, m.ID, 1, match.Input{IsWicket: true, WicketType: match.WicketRunOut, DismissedBatsman: "s2", Fielder: "f1"})
	require.NoError(t, err)
	assert.True(t, res.Delivery.IsFreeHit)
	assert.Equal(t, 1, res.Innings.Wickets)
}

func TestScoringService_UndoReopensInnings(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc := newServices(t)
	m := startedMatch(t, svc, "")
	bowlSingles(t, svc, m.ID, 1, 12, true)

	undo, err := svc.scoring.UndoLastDelivery(ctx, m.ID, 1)
	require.NoError(t, err)
	assert.Equal(t, 13, undo.Sequence)
	assert.Equal(t, 11, undo.Innings.Runs)
	assert.False(t, undo.Innings.IsCompleted)
	assert.Equal(t, "b2", undo.Innings.CurrentBowler)

	got, err := svc.matches.GetMatch(ctx, m.ID)
	require.NoError(t, err)
	assert.Equal(t, match.StateInningsInProgress, got.State)
	assert.False(t, got.Innings[0].Completed)

	res, err := svc.scoring.ApplyDelivery(ctx, m.ID, 1, match.Input{RunsOffBat: 4, Boundary: true})
	require.NoError(t, err)
	require.NotNil(t, res.Event)
	assert.Equal(t, 15, res.Innings.Runs)

	entries, err := svc.scoring.ListDeliveries(ctx, m.ID, 1)
	require.NoError(t, err)
	assert.Len(t, entries, 14)
	assert.Equal(t, match.EntryVoid, entries[12].Kind)
	assert.Equal(t, 12, entries[12].VoidsSequence)
}

func TestScoringService_UndoWithEmptyLedger(t *testing.T) {
	t.Parallel()

	svc := newServices(t)
	m := startedMatch(t, svc, "")

	_, err := svc.scoring.UndoLastDelivery(context.Background(), m.ID, 1)
	assert.ErrorIs(t, err, ErrConflict)
	assert.ErrorIs(t, err, match.ErrNothingToUndo)
}

func TestScoringService_LookupErrors(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc := newServices(t)
	m := startedMatch(t, svc, "")

	_, err := svc.scoring.ApplyDelivery(ctx, "missing", 1, match.Input{})
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = svc.scoring.ApplyDelivery(ctx, m.ID, 2, match.Input{})
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, err, match.ErrInningsNotFound)

	_, err = svc.scoring.GetStatistics(ctx, " ", 1)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestScoringService_ConcurrentWritersAreSerialised(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc := newServices(t)
	m := startedMatch(t, svc, "")

	_, err := svc.scoring.ApplyDelivery(ctx, m.ID, 1, match.Input{Striker: "s1", NonStriker: "s2", Bowler: "b1"})
	require.NoError(t, err)

	var wg sync.WaitGroup
	errs := make(chan error, 5)
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.scoring.ApplyDelivery(ctx, m.ID, 1, match.Input{ExtraType: match.ExtraWide})
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	entries, err := svc.scoring.ListDeliveries(ctx, m.ID, 1)
	require.NoError(t, err)
	require.Len(t, entries, 6)
	for i, entry := range entries {
		assert.Equal(t, i+1, entry.Sequence)
	}

	state, err := svc.scoring.GetInningsState(ctx, m.ID, 1)
	require.NoError(t, err)
	assert.Equal(t, 5, state.Runs)
	assert.Equal(t, 1, state.LegalBalls)
}

func TestScoringService_PublishFailureDoesNotFailDelivery(t *testing.T) {
	t.Parallel()

	svc := newServices(t)
	svc.publisher.err = errors.New("webhook down")
	m := startedMatch(t, svc, "")

	last := bowlSingles(t, svc, m.ID, 1, 12, true)
	assert.NotNil(t, last.Event)
	assert.Len(t, svc.publisher.types(), 1)
}
