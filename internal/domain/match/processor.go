package match

import (
	"github.com/riskibarqy/cricket-scoring/internal/domain/profile"
)

type EventType string

const EventInningsCompleted EventType = "innings_completed"

// Event signals an innings boundary to the caller.
type Event struct {
	Type          EventType
	InningsNumber int
	Reason        CompletionReason
	Runs          int
	Wickets       int
	LegalBalls    int
}

// Applied is the outcome of one accepted delivery.
type Applied struct {
	Innings  Innings
	Delivery Delivery
	Event    *Event
}

// ApplyDelivery validates input against the innings state and returns the
// next state with the recorded delivery. The passed innings is not modified.
func ApplyDelivery(p profile.Profile, in Innings, input Input) (Applied, error) {
	if in.IsCompleted {
		return Applied{}, reject(ReasonInningsCompleted, "innings %d is completed", in.Number)
	}

	extraType := input.ExtraType
	if extraType == "" {
		extraType = ExtraNone
	}
	if !extraType.Valid() {
		return Applied{}, reject(ReasonUnknownExtraType, "%q", input.ExtraType)
	}

	extraRuns, err := resolveExtraRuns(p, extraType, input)
	if err != nil {
		return Applied{}, err
	}

	striker, nonStriker, err := resolveBatsmen(in, input)
	if err != nil {
		return Applied{}, err
	}

	offBall := extraType == ExtraPenalty || (input.IsWicket && input.WicketType.OffBall())
	bowler, err := resolveBowler(p, in, offBall, input.Bowler)
	if err != nil {
		return Applied{}, err
	}

	freeHit := p.FreeHitEnabled && in.IsFreeHitNext
	delivery := Delivery{
		InningsNumber: in.Number,
		OverNumber:    in.CurrentOver,
		BallInOver:    in.CurrentBallInOver,
		Striker:       striker,
		NonStriker:    nonStriker,
		Bowler:        bowler,
		RunsOffBat:    input.RunsOffBat,
		ExtraRuns:     extraRuns,
		ExtraType:     extraType,
		Boundary:      input.Boundary,
		IsPowerplay:   p.IsPowerplay(in.CurrentOver),
		IsFreeHit:     freeHit,
	}
	if err := resolveWicket(&delivery, input, freeHit); err != nil {
		return Applied{}, err
	}

	next := in.clone()
	next.Deliveries++
	next.Runs += delivery.TotalRuns()
	next.Striker = striker
	next.NonStriker = nonStriker
	if !offBall {
		next.CurrentBowler = bowler
	}
	if delivery.IsLegal() {
		next.LegalBalls++
		next.CurrentBallInOver++
	}
	if delivery.CountsAsWicket() {
		next.Wickets++
		next.dismissed[delivery.DismissedBatsman] = struct{}{}
	}

	if runsRun(p, delivery)%2 == 1 {
		next.Striker, next.NonStriker = next.NonStriker, next.Striker
	}

	switch {
	case !p.FreeHitEnabled:
		next.IsFreeHitNext = false
	case extraType == ExtraNoBall:
		next.IsFreeHitNext = true
	case extraType == ExtraWide || offBall:
		next.IsFreeHitNext = in.IsFreeHitNext
	default:
		next.IsFreeHitNext = false
	}

	if delivery.IsWicket {
		switch delivery.DismissedBatsman {
		case next.Striker:
			next.Striker = ""
		case next.NonStriker:
			next.NonStriker = ""
		}
	}

	overEnded := delivery.IsLegal() && next.CurrentBallInOver >= p.BallsPerOver
	if overEnded {
		next.CurrentBallInOver = 0
		next.CurrentOver++
		next.PreviousOverBowler = bowler
		next.bowlerOvers[bowler]++
		next.CurrentBowler = ""
	}

	reason := completionReason(p, next)
	// Batsmen change ends after an over unless it closed the innings.
	if overEnded && reason == CompletionNone {
		next.Striker, next.NonStriker = next.NonStriker, next.Striker
	}

	var event *Event
	if reason != CompletionNone {
		next.IsCompleted = true
		next.CompletionReason = reason
		event = &Event{
			Type:          EventInningsCompleted,
			InningsNumber: next.Number,
			Reason:        reason,
			Runs:          next.Runs,
			Wickets:       next.Wickets,
			LegalBalls:    next.LegalBalls,
		}
	}

	return Applied{Innings: next, Delivery: delivery, Event: event}, nil
}

func resolveExtraRuns(p profile.Profile, extraType ExtraType, input Input) (int, error) {
	if input.RunsOffBat < 0 {
		return 0, reject(ReasonInvalidRuns, "runs off bat=%d", input.RunsOffBat)
	}
	if input.ExtraRuns != nil && *input.ExtraRuns < 0 {
		return 0, reject(ReasonInvalidRuns, "extra runs=%d", *input.ExtraRuns)
	}

	switch extraType {
	case ExtraNone:
		if input.ExtraRuns != nil && *input.ExtraRuns != 0 {
			return 0, reject(ReasonInvalidRuns, "extra runs without extra type")
		}
		return 0, nil
	case ExtraWide, ExtraNoBall:
		if extraType == ExtraWide && input.RunsOffBat > 0 {
			return 0, reject(ReasonRunsOffBatOnExtra, "wide")
		}
		penalty := p.WideRuns
		if extraType == ExtraNoBall {
			penalty = p.NoBallRuns
		}
		if input.ExtraRuns == nil {
			return penalty, nil
		}
		if *input.ExtraRuns < penalty {
			return 0, reject(ReasonExtraRunsBelowPenalty, "%s extra runs=%d minimum=%d", extraType, *input.ExtraRuns, penalty)
		}
		return *input.ExtraRuns, nil
	default:
		if input.RunsOffBat > 0 {
			return 0, reject(ReasonRunsOffBatOnExtra, "%s", extraType)
		}
		if input.ExtraRuns == nil || *input.ExtraRuns == 0 {
			return 0, reject(ReasonMissingExtraRuns, "%s", extraType)
		}
		return *input.ExtraRuns, nil
	}
}

func resolveBatsmen(in Innings, input Input) (string, string, error) {
	striker, err := resolveSlot(in.Striker, input.Striker, "striker")
	if err != nil {
		return "", "", err
	}
	nonStriker, err := resolveSlot(in.NonStriker, input.NonStriker, "non-striker")
	if err != nil {
		return "", "", err
	}
	if striker == nonStriker {
		return "", "", reject(ReasonSameBatsman, "%s", striker)
	}
	for _, batsman := range []string{striker, nonStriker} {
		if in.IsDismissed(batsman) {
			return "", "", reject(ReasonBatsmanAlreadyDismissed, "%s", batsman)
		}
	}
	return striker, nonStriker, nil
}

func resolveSlot(current, supplied, name string) (string, error) {
	switch {
	case supplied == "" && current == "":
		return "", reject(ReasonMissingBatsman, "%s is required", name)
	case supplied == "":
		return current, nil
	case current != "" && supplied != current:
		return "", reject(ReasonBatsmanMismatch, "%s at crease is %s, got %s", name, current, supplied)
	default:
		return supplied, nil
	}
}

func resolveBowler(p profile.Profile, in Innings, offBall bool, supplied string) (string, error) {
	if offBall {
		return in.CurrentBowler, nil
	}

	bowler := supplied
	if bowler == "" {
		bowler = in.CurrentBowler
	}
	if bowler == "" {
		return "", reject(ReasonMissingBowler, "over %d needs a bowler", in.CurrentOver+1)
	}

	if in.CurrentBowler != "" {
		if bowler != in.CurrentBowler {
			return "", reject(ReasonBowlerChangeMidOver, "%s is bowling over %d", in.CurrentBowler, in.CurrentOver+1)
		}
		return bowler, nil
	}

	if bowler == in.PreviousOverBowler {
		return "", reject(ReasonConsecutiveOvers, "%s bowled the previous over", bowler)
	}
	if p.MaxOversPerBowler > 0 && in.OversBowledBy(bowler) >= p.MaxOversPerBowler {
		return "", reject(ReasonBowlerOverLimit, "%s has bowled %d overs", bowler, in.OversBowledBy(bowler))
	}
	return bowler, nil
}

func resolveWicket(d *Delivery, input Input, freeHit bool) error {
	if !input.IsWicket {
		if input.WicketType != "" {
			return reject(ReasonWicketTypeWithoutWicket, "%s", input.WicketType)
		}
		return nil
	}

	wicketType := input.WicketType
	if wicketType == "" {
		return reject(ReasonWicketTypeRequired, "")
	}
	if !wicketType.Valid() {
		return reject(ReasonUnknownWicketType, "%q", wicketType)
	}
	if wicketType.OffBall() && d.TotalRuns() != 0 {
		return reject(ReasonInvalidRuns, "%s with runs", wicketType)
	}
	if freeHit && wicketType != WicketRunOut && !wicketType.OffBall() {
		return reject(ReasonFreeHitWicket, "%s on a free hit", wicketType)
	}
	if !wicketType.allowedOn(d.ExtraType) {
		return reject(ReasonIllegalWicketOnExtra, "%s on %s", wicketType, d.ExtraType)
	}

	dismissed := input.DismissedBatsman
	if dismissed == "" {
		if wicketType == WicketRunOut {
			return reject(ReasonMissingDismissedBatsman, "run out needs the dismissed batsman")
		}
		dismissed = d.Striker
	}
	if dismissed != d.Striker && dismissed != d.NonStriker {
		return reject(ReasonDismissedNotAtCrease, "%s", dismissed)
	}
	if wicketType.StrikerOnly() && dismissed != d.Striker {
		return reject(ReasonDismissedNotStriker, "%s cannot dismiss the non-striker", wicketType)
	}

	fielder := input.Fielder
	if wicketType == WicketCaughtAndBowled && fielder == "" {
		fielder = d.Bowler
	}
	if wicketType.RequiresFielder() && fielder == "" {
		return reject(ReasonMissingFielder, "%s", wicketType)
	}

	d.IsWicket = true
	d.WicketType = wicketType
	d.DismissedBatsman = dismissed
	d.Fielder = fielder
	return nil
}

// runsRun counts the runs the batsmen physically ran, which decides strike.
func runsRun(p profile.Profile, d Delivery) int {
	if d.Boundary {
		return 0
	}
	switch d.ExtraType {
	case ExtraNone:
		return d.RunsOffBat
	case ExtraBye, ExtraLegBye:
		return d.ExtraRuns
	case ExtraWide:
		return d.ExtraRuns - p.WideRuns
	case ExtraNoBall:
		return d.RunsOffBat + d.ExtraRuns - p.NoBallRuns
	default:
		return 0
	}
}

func completionReason(p profile.Profile, in Innings) CompletionReason {
	switch {
	case in.Target > 0 && in.Runs >= in.Target:
		return CompletionTargetReached
	case in.Wickets >= p.MaxWickets:
		return CompletionAllOut
	case p.Bounded() && in.CurrentOver >= p.OversPerInnings:
		return CompletionOversComplete
	default:
		return CompletionNone
	}
}
