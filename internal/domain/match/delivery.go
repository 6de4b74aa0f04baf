package match

// ExtraType classifies the extras attached to a delivery.
type ExtraType string

const (
	ExtraNone    ExtraType = "none"
	ExtraWide    ExtraType = "wide"
	ExtraNoBall  ExtraType = "no_ball"
	ExtraBye     ExtraType = "bye"
	ExtraLegBye  ExtraType = "leg_bye"
	ExtraPenalty ExtraType = "penalty"
)

var knownExtraTypes = map[ExtraType]struct{}{
	ExtraNone:    {},
	ExtraWide:    {},
	ExtraNoBall:  {},
	ExtraBye:     {},
	ExtraLegBye:  {},
	ExtraPenalty: {},
}

func (e ExtraType) Valid() bool {
	_, ok := knownExtraTypes[e]
	return ok
}

// ConsumesBall reports whether the delivery counts toward the over.
func (e ExtraType) ConsumesBall() bool {
	switch e {
	case ExtraNone, ExtraBye, ExtraLegBye:
		return true
	default:
		return false
	}
}

// Illegal reports wides and no-balls.
func (e ExtraType) Illegal() bool {
	return e == ExtraWide || e == ExtraNoBall
}

// WicketType is the mode of dismissal.
type WicketType string

const (
	WicketBowled           WicketType = "bowled"
	WicketCaught           WicketType = "caught"
	WicketCaughtBehind     WicketType = "caught_behind"
	WicketCaughtAndBowled  WicketType = "caught_and_bowled"
	WicketLBW              WicketType = "lbw"
	WicketRunOut           WicketType = "run_out"
	WicketStumped          WicketType = "stumped"
	WicketHitWicket        WicketType = "hit_wicket"
	WicketObstructingField WicketType = "obstructing_field"
	WicketTimedOut         WicketType = "timed_out"
	WicketRetiredHurt      WicketType = "retired_hurt"
	WicketRetiredOut       WicketType = "retired_out"
)

var knownWicketTypes = map[WicketType]struct{}{
	WicketBowled:           {},
	WicketCaught:           {},
	WicketCaughtBehind:     {},
	WicketCaughtAndBowled:  {},
	WicketLBW:              {},
	WicketRunOut:           {},
	WicketStumped:          {},
	WicketHitWicket:        {},
	WicketObstructingField: {},
	WicketTimedOut:         {},
	WicketRetiredHurt:      {},
	WicketRetiredOut:       {},
}

func (w WicketType) Valid() bool {
	_, ok := knownWicketTypes[w]
	return ok
}

// CreditedToBowler reports dismissals that count in the bowler's figures.
func (w WicketType) CreditedToBowler() bool {
	switch w {
	case WicketBowled, WicketCaught, WicketCaughtBehind, WicketCaughtAndBowled,
		WicketLBW, WicketStumped, WicketHitWicket:
		return true
	default:
		return false
	}
}

// CountsAsWicket is false only for a batsman retiring hurt, who may resume.
func (w WicketType) CountsAsWicket() bool {
	return w != WicketRetiredHurt
}

// StrikerOnly reports dismissals that can only happen to the striker.
func (w WicketType) StrikerOnly() bool {
	return w.CreditedToBowler()
}

// OffBall reports dismissals recorded between deliveries. They take no ball
// from the over and involve no bowler.
func (w WicketType) OffBall() bool {
	return w == WicketTimedOut || w == WicketRetiredHurt || w == WicketRetiredOut
}

func (w WicketType) RequiresFielder() bool {
	switch w {
	case WicketCaught, WicketCaughtBehind, WicketStumped:
		return true
	default:
		return false
	}
}

func (w WicketType) allowedOn(extra ExtraType) bool {
	if w.OffBall() {
		return extra == ExtraNone
	}
	switch extra {
	case ExtraWide:
		return w == WicketStumped || w == WicketRunOut || w == WicketHitWicket || w == WicketObstructingField
	case ExtraNoBall:
		return w == WicketRunOut || w == WicketObstructingField
	case ExtraPenalty:
		return false
	default:
		return true
	}
}

// Input is one delivery as submitted by the scorer. Empty batsman and bowler
// fields default to the innings' current state.
type Input struct {
	Striker          string
	NonStriker       string
	Bowler           string
	RunsOffBat       int
	ExtraType        ExtraType
	ExtraRuns        *int
	Boundary         bool
	IsWicket         bool
	WicketType       WicketType
	DismissedBatsman string
	Fielder          string
}

// Delivery is an immutable ledger record.
type Delivery struct {
	InningsNumber    int
	OverNumber       int
	BallInOver       int
	Striker          string
	NonStriker       string
	Bowler           string
	RunsOffBat       int
	ExtraRuns        int
	ExtraType        ExtraType
	Boundary         bool
	IsWicket         bool
	WicketType       WicketType
	DismissedBatsman string
	Fielder          string
	IsPowerplay      bool
	IsFreeHit        bool
}

func (d Delivery) TotalRuns() int {
	return d.RunsOffBat + d.ExtraRuns
}

// IsLegal reports whether the delivery consumed a ball of the over.
func (d Delivery) IsLegal() bool {
	return d.ExtraType.ConsumesBall() && !d.IsOffBall()
}

// IsOffBall reports records that are not a ball bowled: penalty awards and
// retirements or time-outs.
func (d Delivery) IsOffBall() bool {
	return d.ExtraType == ExtraPenalty || (d.IsWicket && d.WicketType.OffBall())
}

// FacedByStriker reports whether the striker is charged with a ball faced.
func (d Delivery) FacedByStriker() bool {
	return d.ExtraType != ExtraWide && !d.IsOffBall()
}

// CountsAsWicket reports whether the delivery adds to the innings wicket count.
func (d Delivery) CountsAsWicket() bool {
	return d.IsWicket && d.WicketType.CountsAsWicket()
}

// BowlerRuns is what the delivery costs the bowler: bat runs, every wide run
// and the no-ball penalty. Byes and leg-byes, including those run off a
// no-ball, and penalty runs are excluded. noBallRuns is the profile's no-ball
// penalty.
func (d Delivery) BowlerRuns(noBallRuns int) int {
	switch d.ExtraType {
	case ExtraNone:
		return d.RunsOffBat
	case ExtraWide:
		return d.ExtraRuns
	case ExtraNoBall:
		return d.RunsOffBat + d.ExtraRuns - d.NoBallByes(noBallRuns)
	default:
		return 0
	}
}

// NoBallByes is the part of a no-ball's extras run by the batsmen beyond the
// penalty. The ledger does not separate byes from leg-byes here, so the
// scorecard books them as byes.
func (d Delivery) NoBallByes(noBallRuns int) int {
	if d.ExtraType != ExtraNoBall || d.ExtraRuns <= noBallRuns {
		return 0
	}
	return d.ExtraRuns - noBallRuns
}

// InputFromDelivery rebuilds the input that produced d, used by replay.
func InputFromDelivery(d Delivery) Input {
	extraRuns := d.ExtraRuns
	return Input{
		Striker:          d.Striker,
		NonStriker:       d.NonStriker,
		Bowler:           d.Bowler,
		RunsOffBat:       d.RunsOffBat,
		ExtraType:        d.ExtraType,
		ExtraRuns:        &extraRuns,
		Boundary:         d.Boundary,
		IsWicket:         d.IsWicket,
		WicketType:       d.WicketType,
		DismissedBatsman: d.DismissedBatsman,
		Fielder:          d.Fielder,
	}
}
