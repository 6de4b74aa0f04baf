package match

import "testing"

func TestDelivery_BowlerRuns(t *testing.T) {
	tests := []struct {
		name       string
		delivery   Delivery
		bowlerRuns int
		byes       int
	}{
		{name: "runs off bat", delivery: Delivery{RunsOffBat: 4}, bowlerRuns: 4},
		{name: "wide with runs", delivery: Delivery{ExtraType: ExtraWide, ExtraRuns: 3}, bowlerRuns: 3},
		{name: "no-ball penalty", delivery: Delivery{ExtraType: ExtraNoBall, ExtraRuns: 1}, bowlerRuns: 1},
		{name: "no-ball hit for six", delivery: Delivery{ExtraType: ExtraNoBall, RunsOffBat: 6, ExtraRuns: 1}, bowlerRuns: 7},
		{name: "byes off a no-ball", delivery: Delivery{ExtraType: ExtraNoBall, ExtraRuns: 3}, bowlerRuns: 1, byes: 2},
		{name: "bye", delivery: Delivery{ExtraType: ExtraBye, ExtraRuns: 2}},
		{name: "leg bye", delivery: Delivery{ExtraType: ExtraLegBye, ExtraRuns: 1}},
		{name: "penalty", delivery: Delivery{ExtraType: ExtraPenalty, ExtraRuns: 5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.delivery.BowlerRuns(1); got != tt.bowlerRuns {
				t.Fatalf("BowlerRuns() = %d, want %d", got, tt.bowlerRuns)
			}
			if got := tt.delivery.NoBallByes(1); got != tt.byes {
				t.Fatalf("NoBallByes() = %d, want %d", got, tt.byes)
			}
		})
	}
}
