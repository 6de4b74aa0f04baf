package scorecard

import (
	"reflect"
	"testing"

	"github.com/bytedance/sonic"
	"github.com/riskibarqy/cricket-scoring/internal/domain/match"
	"github.com/riskibarqy/cricket-scoring/internal/domain/profile"
	"github.com/xorcare/pointer"
)

func testProfile() profile.Profile {
	return profile.Profile{
		Name:            "test",
		OversPerInnings: 3,
		BallsPerOver:    6,
		WideRuns:        1,
		NoBallRuns:      1,
		FreeHitEnabled:  true,
		PowerplayOvers:  2,
		MaxWickets:      10,
	}
}

func record(t *testing.T, p profile.Profile, inputs []match.Input) []match.Delivery {
	t.Helper()
	state := match.NewInnings(match.InningsSetup{Number: 1, BattingSide: "team-a", BowlingSide: "team-b"})
	deliveries := make([]match.Delivery, 0, len(inputs))
	for i, input := range inputs {
		applied, err := match.ApplyDelivery(p, state, input)
		if err != nil {
			t.Fatalf("delivery %d: %v", i+1, err)
		}
		state = applied.Innings
		deliveries = append(deliveries, applied.Delivery)
	}
	return deliveries
}

func sampleLedger(t *testing.T) []match.Delivery {
	return record(t, testProfile(), []match.Input{
		{Striker: "s1", NonStriker: "s2", Bowler: "b1"},
		{}, {}, {}, {}, {},
		{Bowler: "b2", RunsOffBat: 4, Boundary: true},
		{ExtraType: match.ExtraWide},
		{ExtraType: match.ExtraLegBye, ExtraRuns: pointer.Int(1)},
		{IsWicket: true, WicketType: match.WicketCaught, Fielder: "f1"},
		{Striker: "s3", RunsOffBat: 1},
		{ExtraType: match.ExtraNoBall, RunsOffBat: 2},
		{RunsOffBat: 1, IsWicket: true, WicketType: match.WicketRunOut, DismissedBatsman: "s3", Fielder: "f2"},
		{Striker: "s4"},
		{Bowler: "b1", ExtraType: match.ExtraBye, ExtraRuns: pointer.Int(2)},
	})
}

func TestCompute_Totals(t *testing.T) {
	card := Compute(testProfile(), 1, sampleLedger(t))

	want := Totals{
		Runs:             13,
		Wickets:          2,
		LegalBalls:       13,
		Overs:            "2.1",
		RunRate:          6,
		Deliveries:       15,
		PowerplayRuns:    11,
		PowerplayWickets: 2,
	}
	if card.Totals != want {
		t.Fatalf("unexpected totals:\n got %+v\nwant %+v", card.Totals, want)
	}

	wantExtras := Extras{Wides: 1, NoBalls: 1, Byes: 2, LegByes: 1, Total: 5}
	if card.Extras != wantExtras {
		t.Fatalf("unexpected extras: %+v", card.Extras)
	}
}

func TestCompute_BattingCard(t *testing.T) {
	card := Compute(testProfile(), 1, sampleLedger(t))

	want := []BattingEntry{
		{Batsman: "s1", Position: 1, Runs: 0, Balls: 7, Status: StatusOut, Dismissal: "c f1 b b2"},
		{Batsman: "s2", Position: 2, Runs: 7, Balls: 5, Fours: 1, StrikeRate: 140, Status: StatusNotOut, Dismissal: "not out"},
		{Batsman: "s3", Position: 3, Runs: 1, Balls: 1, StrikeRate: 100, Status: StatusOut, Dismissal: "run out (f2)"},
		{Batsman: "s4", Position: 4, Runs: 0, Balls: 1, Status: StatusNotOut, Dismissal: "not out"},
	}
	if !reflect.DeepEqual(card.Batting, want) {
		t.Fatalf("unexpected batting card:\n got %+v\nwant %+v", card.Batting, want)
	}
}

func TestCompute_DidNotBatDiffersFromNotOut(t *testing.T) {
	deliveries := record(t, testProfile(), []match.Input{{Striker: "s1", NonStriker: "s2", Bowler: "b1"}})
	card := Compute(testProfile(), 1, deliveries)

	if card.Batting[0].Status != StatusNotOut || card.Batting[1].Status != StatusDidNotBat {
		t.Fatalf("unexpected statuses: %+v", card.Batting)
	}
	if card.Batting[1].Dismissal != "did not bat" {
		t.Fatalf("unexpected dismissal text %q", card.Batting[1].Dismissal)
	}
}

func TestCompute_BowlingCard(t *testing.T) {
	card := Compute(testProfile(), 1, sampleLedger(t))

	want := []BowlingEntry{
		{Bowler: "b1", LegalBalls: 7, Overs: "1.1", Maidens: 1, Runs: 0, Wickets: 0, Economy: 0, Dots: 7},
		{Bowler: "b2", LegalBalls: 6, Overs: "1.0", Maidens: 0, Runs: 10, Wickets: 1, Economy: 10, Dots: 3, Wides: 1, NoBalls: 1, Fours: 1},
	}
	if !reflect.DeepEqual(card.Bowling, want) {
		t.Fatalf("unexpected bowling card:\n got %+v\nwant %+v", card.Bowling, want)
	}

	if len(card.Overs) != 3 || !card.Overs[0].Maiden || card.Overs[1].Runs != 10 || card.Overs[2].Maiden {
		t.Fatalf("unexpected overs: %+v", card.Overs)
	}
}

func TestCompute_FallOfWicketsAndPartnerships(t *testing.T) {
	card := Compute(testProfile(), 1, sampleLedger(t))

	wantFOW := []FallOfWicket{
		{Wicket: 1, Batsman: "s1", Runs: 6, Over: "1.3"},
		{Wicket: 2, Batsman: "s3", Runs: 11, Over: "1.5"},
	}
	if !reflect.DeepEqual(card.FallOfWickets, wantFOW) {
		t.Fatalf("unexpected fall of wickets: %+v", card.FallOfWickets)
	}

	wantPartnerships := []Partnership{
		{Wicket: 1, BatsmanA: "s1", BatsmanB: "s2", RunsA: 0, RunsB: 4, Runs: 6, Balls: 9},
		{Wicket: 2, BatsmanA: "s3", BatsmanB: "s2", RunsA: 1, RunsB: 3, Runs: 5, Balls: 2},
		{Wicket: 3, BatsmanA: "s4", BatsmanB: "s2", Runs: 2, Balls: 2, Unbroken: true},
	}
	if !reflect.DeepEqual(card.Partnerships, wantPartnerships) {
		t.Fatalf("unexpected partnerships:\n got %+v\nwant %+v", card.Partnerships, wantPartnerships)
	}

	wantFielding := []FieldingEntry{{Fielder: "f1", Catches: 1}, {Fielder: "f2", RunOuts: 1}}
	if !reflect.DeepEqual(card.Fielding, wantFielding) {
		t.Fatalf("unexpected fielding: %+v", card.Fielding)
	}
}

func TestCompute_LedgerSumHoldsForEveryPrefix(t *testing.T) {
	p := testProfile()
	deliveries := sampleLedger(t)

	for n := 0; n <= len(deliveries); n++ {
		card := ComputePrefix(p, 1, deliveries, n)
		batted := 0
		for _, entry := range card.Batting {
			batted += entry.Runs
		}
		if batted+card.Extras.Total != card.Totals.Runs {
			t.Fatalf("prefix %d: batting %d + extras %d != total %d", n, batted, card.Extras.Total, card.Totals.Runs)
		}
		if card.Totals.Deliveries != n {
			t.Fatalf("prefix %d: computed %d deliveries", n, card.Totals.Deliveries)
		}
	}
}

func TestCompute_IsIdempotent(t *testing.T) {
	p := testProfile()
	deliveries := sampleLedger(t)

	first, err := sonic.Marshal(Compute(p, 1, deliveries))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	second, err := sonic.Marshal(Compute(p, 1, deliveries))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(first) != string(second) {
		t.Fatalf("replay output differs")
	}
}

func TestCompute_TwelveSingles(t *testing.T) {
	p := testProfile()
	p.OversPerInnings = 2

	inputs := []match.Input{{Striker: "s1", NonStriker: "s2", Bowler: "b1", RunsOffBat: 1}}
	for i := 1; i < 12; i++ {
		bowler := "b1"
		if i >= 6 {
			bowler = "b2"
		}
		inputs = append(inputs, match.Input{Bowler: bowler, RunsOffBat: 1})
	}

	card := Compute(p, 1, record(t, p, inputs))
	if card.Totals.Runs != 12 || card.Totals.Wickets != 0 || card.Totals.Overs != "2.0" {
		t.Fatalf("unexpected totals: %+v", card.Totals)
	}
	if len(card.Partnerships) != 1 || !card.Partnerships[0].Unbroken || card.Partnerships[0].Runs != 12 {
		t.Fatalf("unexpected partnerships: %+v", card.Partnerships)
	}
}

func TestDismissalText(t *testing.T) {
	tests := map[match.WicketType]string{
		match.WicketBowled:          "b Bumrah",
		match.WicketCaught:          "c Root b Bumrah",
		match.WicketCaughtBehind:    "c †Root b Bumrah",
		match.WicketCaughtAndBowled: "c & b Bumrah",
		match.WicketLBW:             "lbw b Bumrah",
		match.WicketStumped:         "st †Root b Bumrah",
		match.WicketHitWicket:       "hit wicket b Bumrah",
		match.WicketRunOut:          "run out (Root)",
	}
	for wicketType, want := range tests {
		if got := DismissalText(wicketType, "Bumrah", "Root"); got != want {
			t.Fatalf("%s: got %q want %q", wicketType, got, want)
		}
	}
}

func TestCompute_NoBallByesAreNotChargedToBowler(t *testing.T) {
	p := testProfile()
	card := Compute(p, 1, record(t, p, []match.Input{
		{Striker: "s1", NonStriker: "s2", Bowler: "b1", ExtraType: match.ExtraNoBall, ExtraRuns: pointer.Int(3)},
		{ExtraType: match.ExtraNoBall, RunsOffBat: 4, Boundary: true},
		{RunsOffBat: 1},
	}))

	wantExtras := Extras{NoBalls: 2, Byes: 2, Total: 4}
	if card.Extras != wantExtras {
		t.Fatalf("unexpected extras: %+v", card.Extras)
	}
	if len(card.Bowling) != 1 || card.Bowling[0].Runs != 7 || card.Bowling[0].NoBalls != 2 {
		t.Fatalf("unexpected bowling card: %+v", card.Bowling)
	}
	if card.Totals.Runs != 9 || card.Overs[0].Runs != 7 {
		t.Fatalf("unexpected totals %+v overs %+v", card.Totals, card.Overs)
	}
}

func TestCompute_RetiredHurtKeepsPartnershipWicketNumbers(t *testing.T) {
	p := testProfile()
	card := Compute(p, 1, record(t, p, []match.Input{
		{Striker: "s1", NonStriker: "s2", Bowler: "b1", RunsOffBat: 1},
		{IsWicket: true, WicketType: match.WicketRetiredHurt, DismissedBatsman: "s1"},
		{NonStriker: "s3", RunsOffBat: 2},
		{IsWicket: true, WicketType: match.WicketBowled},
		{Striker: "s4"},
	}))

	wantFOW := []FallOfWicket{{Wicket: 1, Batsman: "s2", Runs: 3, Over: "0.3"}}
	if !reflect.DeepEqual(card.FallOfWickets, wantFOW) {
		t.Fatalf("unexpected fall of wickets: %+v", card.FallOfWickets)
	}

	wantPartnerships := []Partnership{
		{Wicket: 1, BatsmanA: "s1", BatsmanB: "s2", RunsA: 1, Runs: 1, Balls: 1, RetiredHurt: true},
		{Wicket: 1, BatsmanA: "s2", BatsmanB: "s3", RunsA: 2, Runs: 2, Balls: 2},
		{Wicket: 2, BatsmanA: "s4", BatsmanB: "s3", Balls: 1, Unbroken: true},
	}
	if !reflect.DeepEqual(card.Partnerships, wantPartnerships) {
		t.Fatalf("unexpected partnerships:\n got %+v\nwant %+v", card.Partnerships, wantPartnerships)
	}
	if card.Batting[0].Status != StatusRetiredHurt {
		t.Fatalf("expected s1 retired hurt, got %+v", card.Batting[0])
	}
}
