package match

import (
	"errors"
	"testing"
	"time"
)

func deliveryEntry(seq, runs int) Entry {
	return Entry{
		MatchID:       "m1",
		InningsNumber: 1,
		Sequence:      seq,
		Kind:          EntryDelivery,
		Delivery:      Delivery{InningsNumber: 1, RunsOffBat: runs},
	}
}

func TestEffectiveSkipsVoidedDeliveries(t *testing.T) {
	entries := []Entry{
		deliveryEntry(1, 1),
		deliveryEntry(2, 4),
		{MatchID: "m1", InningsNumber: 1, Sequence: 3, Kind: EntryVoid, VoidsSequence: 2},
		deliveryEntry(4, 6),
	}

	got := Effective(entries)
	if len(got) != 2 || got[0].RunsOffBat != 1 || got[1].RunsOffBat != 6 {
		t.Fatalf("unexpected effective deliveries: %+v", got)
	}

	last, ok := LastEffective(entries)
	if !ok || last.Sequence != 4 {
		t.Fatalf("expected last effective sequence 4, got %+v ok=%v", last, ok)
	}
}

func TestVoidLast(t *testing.T) {
	now := time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)
	entries := []Entry{deliveryEntry(1, 1), deliveryEntry(2, 2)}

	void, err := VoidLast(entries, now)
	if err != nil {
		t.Fatalf("void last: %v", err)
	}
	if void.Kind != EntryVoid || void.Sequence != 3 || void.VoidsSequence != 2 || !void.RecordedAt.Equal(now) {
		t.Fatalf("unexpected void entry: %+v", void)
	}

	entries = append(entries, void)
	void, err = VoidLast(entries, now)
	if err != nil || void.VoidsSequence != 1 || void.Sequence != 4 {
		t.Fatalf("expected second undo to void sequence 1, got %+v err=%v", void, err)
	}

	entries = append(entries, void)
	if _, err := VoidLast(entries, now); !errors.Is(err, ErrNothingToUndo) {
		t.Fatalf("expected ErrNothingToUndo, got %v", err)
	}
	if len(Effective(entries)) != 0 {
		t.Fatalf("expected empty effective ledger")
	}
}
