package match

import (
	"errors"
	"testing"
)

func scheduledMatch() Match {
	return Match{ID: "m1", TeamA: "lions", TeamB: "tigers", State: StateScheduled}
}

func TestMatchLifecycle(t *testing.T) {
	m := scheduledMatch()

	if err := m.StartInnings(1, 0); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("expected invalid transition before toss, got %v", err)
	}
	if err := m.RecordToss("eagles", TossBat); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("expected unknown toss winner rejected, got %v", err)
	}
	if err := m.RecordToss("lions", TossBowl); err != nil {
		t.Fatalf("record toss: %v", err)
	}
	if m.BattingFirstSide != "tigers" || m.State != StateTossDone {
		t.Fatalf("unexpected toss outcome: %+v", m)
	}

	if err := m.StartInnings(1, 0); err != nil {
		t.Fatalf("start innings 1: %v", err)
	}
	if err := m.StartInnings(2, 120); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("expected innings 2 blocked while innings 1 runs, got %v", err)
	}
	if err := m.CompleteInnings(1); err != nil {
		t.Fatalf("complete innings 1: %v", err)
	}
	if m.State != StateInningsBreak {
		t.Fatalf("expected innings break, got %s", m.State)
	}
	if err := m.Finish(StateCompleted, "tigers", ""); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("expected finish blocked, got %v", err)
	}

	if err := m.StartInnings(2, 150); err != nil {
		t.Fatalf("start innings 2: %v", err)
	}
	second, err := m.Setup(2)
	if err != nil {
		t.Fatalf("innings setup: %v", err)
	}
	if second.Target != 151 || second.BattingSide != "lions" || second.BowlingSide != "tigers" {
		t.Fatalf("unexpected second innings: %+v", second)
	}

	if err := m.CompleteInnings(2); err != nil {
		t.Fatalf("complete innings 2: %v", err)
	}
	if err := m.ReopenInnings(2); err != nil {
		t.Fatalf("reopen innings 2: %v", err)
	}
	if err := m.CompleteInnings(2); err != nil {
		t.Fatalf("complete innings 2 again: %v", err)
	}
	if err := m.Finish(StateTied, "", "Match tied"); err != nil {
		t.Fatalf("finish: %v", err)
	}
	if err := m.Abandon(); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("expected abandon blocked after finish, got %v", err)
	}
}

func TestMatchAbandonAndNoResult(t *testing.T) {
	m := scheduledMatch()
	if err := m.DeclareNoResult("rain"); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("expected no result to require abandonment, got %v", err)
	}
	if err := m.Abandon(); err != nil {
		t.Fatalf("abandon: %v", err)
	}
	if err := m.DeclareNoResult("No result"); err != nil {
		t.Fatalf("declare no result: %v", err)
	}
	if m.State != StateNoResult || !m.State.Terminal() {
		t.Fatalf("unexpected state %s", m.State)
	}
}

func TestMatchInningsSetupNotFound(t *testing.T) {
	m := scheduledMatch()
	if _, err := m.Setup(1); !errors.Is(err, ErrInningsNotFound) {
		t.Fatalf("expected ErrInningsNotFound, got %v", err)
	}
}
