package scorecard

import (
	"math"

	"github.com/riskibarqy/cricket-scoring/internal/domain/match"
	"github.com/riskibarqy/cricket-scoring/internal/domain/profile"
)

// Compute replays the effective deliveries of one innings in ledger order.
// It reads nothing but its arguments, so equal inputs give equal cards.
func Compute(p profile.Profile, inningsNumber int, deliveries []match.Delivery) Scorecard {
	b := newBuilder(p, inningsNumber)
	for _, d := range deliveries {
		b.add(d)
	}
	return b.finish()
}

// ComputePrefix computes the card for the first limit deliveries, which is
// how readers take a consistent snapshot of a growing ledger.
func ComputePrefix(p profile.Profile, inningsNumber int, deliveries []match.Delivery, limit int) Scorecard {
	if limit >= 0 && limit < len(deliveries) {
		deliveries = deliveries[:limit]
	}
	return Compute(p, inningsNumber, deliveries)
}

type batterState struct {
	entry       BattingEntry
	dismissed   bool
	retiredHurt bool
}

type builder struct {
	profile profile.Profile
	card    Scorecard

	batters     []*batterState
	batterIndex map[string]*batterState
	bowlers     []*BowlingEntry
	bowlerIndex map[string]*BowlingEntry
	fielders    []*FieldingEntry
	fielderIdx  map[string]*FieldingEntry
	overs       map[int]*OverSummary
	overOrder   []int

	partnership *Partnership
}

func newBuilder(p profile.Profile, inningsNumber int) *builder {
	return &builder{
		profile:     p,
		card:        Scorecard{InningsNumber: inningsNumber},
		batterIndex: make(map[string]*batterState),
		bowlerIndex: make(map[string]*BowlingEntry),
		fielderIdx:  make(map[string]*FieldingEntry),
		overs:       make(map[int]*OverSummary),
	}
}

func (b *builder) add(d match.Delivery) {
	b.addTotals(d)
	b.addExtras(d)
	b.addBatting(d)
	b.addBowling(d)
	b.addPartnership(d)

	if d.IsWicket {
		b.addFielding(d)
	}
	if d.CountsAsWicket() {
		b.card.FallOfWickets = append(b.card.FallOfWickets, FallOfWicket{
			Wicket:  b.card.Totals.Wickets,
			Batsman: d.DismissedBatsman,
			Runs:    b.card.Totals.Runs,
			Over:    profile.FormatOvers(b.card.Totals.LegalBalls, b.profile.BallsPerOver),
		})
	}
}

func (b *builder) addTotals(d match.Delivery) {
	t := &b.card.Totals
	t.Deliveries++
	t.Runs += d.TotalRuns()
	if d.IsLegal() {
		t.LegalBalls++
	}
	if d.CountsAsWicket() {
		t.Wickets++
	}
	if d.IsPowerplay {
		t.PowerplayRuns += d.TotalRuns()
		if d.CountsAsWicket() {
			t.PowerplayWickets++
		}
	}
}

func (b *builder) addExtras(d match.Delivery) {
	e := &b.card.Extras
	switch d.ExtraType {
	case match.ExtraWide:
		e.Wides += d.ExtraRuns
	case match.ExtraNoBall:
		byes := d.NoBallByes(b.profile.NoBallRuns)
		e.NoBalls += d.ExtraRuns - byes
		e.Byes += byes
	case match.ExtraBye:
		e.Byes += d.ExtraRuns
	case match.ExtraLegBye:
		e.LegByes += d.ExtraRuns
	case match.ExtraPenalty:
		e.Penalty += d.ExtraRuns
	}
	e.Total += d.ExtraRuns
}

func (b *builder) batter(name string) *batterState {
	if s, ok := b.batterIndex[name]; ok {
		return s
	}
	s := &batterState{entry: BattingEntry{Batsman: name, Position: len(b.batters) + 1}}
	b.batters = append(b.batters, s)
	b.batterIndex[name] = s
	return s
}

func (b *builder) addBatting(d match.Delivery) {
	striker := b.batter(d.Striker)
	nonStriker := b.batter(d.NonStriker)
	striker.retiredHurt = false
	nonStriker.retiredHurt = false

	striker.entry.Runs += d.RunsOffBat
	if d.FacedByStriker() {
		striker.entry.Balls++
	}
	if d.Boundary && d.RunsOffBat == 4 {
		striker.entry.Fours++
	}
	if d.RunsOffBat == 6 {
		striker.entry.Sixes++
	}

	if !d.IsWicket {
		return
	}
	out := b.batter(d.DismissedBatsman)
	if d.WicketType == match.WicketRetiredHurt {
		out.retiredHurt = true
		return
	}
	out.dismissed = true
	out.entry.Dismissal = DismissalText(d.WicketType, d.Bowler, d.Fielder)
}

func (b *builder) addBowling(d match.Delivery) {
	if d.IsOffBall() || d.Bowler == "" {
		return
	}

	entry, ok := b.bowlerIndex[d.Bowler]
	if !ok {
		entry = &BowlingEntry{Bowler: d.Bowler}
		b.bowlers = append(b.bowlers, entry)
		b.bowlerIndex[d.Bowler] = entry
	}

	conceded := d.BowlerRuns(b.profile.NoBallRuns)
	entry.Runs += conceded
	switch d.ExtraType {
	case match.ExtraWide:
		entry.Wides++
	case match.ExtraNoBall:
		entry.NoBalls++
	}
	if d.IsLegal() {
		entry.LegalBalls++
		if conceded == 0 {
			entry.Dots++
		}
	}
	if d.Boundary && d.RunsOffBat == 4 {
		entry.Fours++
	}
	if d.RunsOffBat == 6 {
		entry.Sixes++
	}
	if d.IsWicket && d.WicketType.CreditedToBowler() {
		entry.Wickets++
	}

	over, ok := b.overs[d.OverNumber]
	if !ok {
		over = &OverSummary{Over: d.OverNumber, Bowler: d.Bowler}
		b.overs[d.OverNumber] = over
		b.overOrder = append(b.overOrder, d.OverNumber)
	}
	over.Runs += conceded
	if d.IsLegal() {
		over.Balls++
	}
	if d.IsWicket && d.WicketType.CreditedToBowler() {
		over.Wickets++
	}
}

func (b *builder) addFielding(d match.Delivery) {
	var credit func(*FieldingEntry)
	switch d.WicketType {
	case match.WicketCaught, match.WicketCaughtBehind, match.WicketCaughtAndBowled:
		credit = func(f *FieldingEntry) { f.Catches++ }
	case match.WicketStumped:
		credit = func(f *FieldingEntry) { f.Stumpings++ }
	case match.WicketRunOut:
		credit = func(f *FieldingEntry) { f.RunOuts++ }
	default:
		return
	}
	if d.Fielder == "" {
		return
	}

	entry, ok := b.fielderIdx[d.Fielder]
	if !ok {
		entry = &FieldingEntry{Fielder: d.Fielder}
		b.fielders = append(b.fielders, entry)
		b.fielderIdx[d.Fielder] = entry
	}
	credit(entry)
}

func (b *builder) addPartnership(d match.Delivery) {
	if b.partnership == nil {
		// Totals already include d.
		fallen := b.card.Totals.Wickets
		if d.CountsAsWicket() {
			fallen--
		}
		b.partnership = &Partnership{
			Wicket:   fallen + 1,
			BatsmanA: d.Striker,
			BatsmanB: d.NonStriker,
		}
	}
	p := b.partnership
	p.Runs += d.TotalRuns()
	if d.IsLegal() {
		p.Balls++
	}
	switch d.Striker {
	case p.BatsmanA:
		p.RunsA += d.RunsOffBat
	case p.BatsmanB:
		p.RunsB += d.RunsOffBat
	}

	if d.IsWicket {
		p.RetiredHurt = !d.CountsAsWicket()
		b.card.Partnerships = append(b.card.Partnerships, *p)
		b.partnership = nil
	}
}

func (b *builder) finish() Scorecard {
	card := b.card
	bpo := b.profile.BallsPerOver

	card.Totals.Overs = profile.FormatOvers(card.Totals.LegalBalls, bpo)
	card.Totals.RunRate = round2(profile.RunRate(card.Totals.Runs, card.Totals.LegalBalls, bpo))

	card.Batting = make([]BattingEntry, 0, len(b.batters))
	for _, s := range b.batters {
		entry := s.entry
		switch {
		case s.dismissed:
			entry.Status = StatusOut
		case s.retiredHurt:
			entry.Status = StatusRetiredHurt
			entry.Dismissal = DismissalText(match.WicketRetiredHurt, "", "")
		case entry.Balls == 0:
			entry.Status = StatusDidNotBat
			entry.Dismissal = "did not bat"
		default:
			entry.Status = StatusNotOut
			entry.Dismissal = "not out"
		}
		if entry.Balls > 0 {
			entry.StrikeRate = round2(float64(entry.Runs) * 100 / float64(entry.Balls))
		}
		card.Batting = append(card.Batting, entry)
	}

	maidens := make(map[string]int)
	card.Overs = make([]OverSummary, 0, len(b.overOrder))
	for _, number := range b.overOrder {
		over := *b.overs[number]
		over.Maiden = over.Balls == bpo && over.Runs == 0
		if over.Maiden {
			maidens[over.Bowler]++
		}
		card.Overs = append(card.Overs, over)
	}

	card.Bowling = make([]BowlingEntry, 0, len(b.bowlers))
	for _, entry := range b.bowlers {
		out := *entry
		out.Overs = profile.FormatOvers(out.LegalBalls, bpo)
		out.Maidens = maidens[out.Bowler]
		out.Economy = round2(profile.RunRate(out.Runs, out.LegalBalls, bpo))
		card.Bowling = append(card.Bowling, out)
	}

	card.Fielding = make([]FieldingEntry, 0, len(b.fielders))
	for _, entry := range b.fielders {
		card.Fielding = append(card.Fielding, *entry)
	}

	card.Partnerships = append([]Partnership(nil), b.card.Partnerships...)
	if b.partnership != nil {
		open := *b.partnership
		open.Unbroken = true
		card.Partnerships = append(card.Partnerships, open)
	}
	card.FallOfWickets = append([]FallOfWicket(nil), b.card.FallOfWickets...)

	return card
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
