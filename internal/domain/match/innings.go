package match

// CompletionReason explains why an innings ended.
type CompletionReason string

const (
	CompletionNone          CompletionReason = ""
	CompletionTargetReached CompletionReason = "target_reached"
	CompletionAllOut        CompletionReason = "all_out"
	CompletionOversComplete CompletionReason = "overs_complete"
)

// InningsSetup is the part of an innings fixed when it starts.
type InningsSetup struct {
	Number      int
	BattingSide string
	BowlingSide string
	// Target is the score needed to win; zero for the first innings.
	Target    int
	Completed bool
}

// Innings is the live state of one innings. It is only ever produced by
// ApplyDelivery or Replay.
type Innings struct {
	Number      int
	BattingSide string
	BowlingSide string
	Target      int

	Runs       int
	Wickets    int
	LegalBalls int
	Deliveries int

	CurrentOver        int
	CurrentBallInOver  int
	Striker            string
	NonStriker         string
	CurrentBowler      string
	PreviousOverBowler string
	IsFreeHitNext      bool

	IsCompleted      bool
	CompletionReason CompletionReason

	bowlerOvers map[string]int
	dismissed   map[string]struct{}
}

func NewInnings(setup InningsSetup) Innings {
	return Innings{
		Number:      setup.Number,
		BattingSide: setup.BattingSide,
		BowlingSide: setup.BowlingSide,
		Target:      setup.Target,
	}
}

// OversBowledBy returns completed overs for a bowler.
func (in Innings) OversBowledBy(bowler string) int {
	return in.bowlerOvers[bowler]
}

func (in Innings) IsDismissed(batsman string) bool {
	_, ok := in.dismissed[batsman]
	return ok
}

// RunsNeeded is zero for a first innings.
func (in Innings) RunsNeeded() int {
	if in.Target <= 0 || in.Runs >= in.Target {
		return 0
	}
	return in.Target - in.Runs
}

func (in Innings) clone() Innings {
	out := in
	out.bowlerOvers = make(map[string]int, len(in.bowlerOvers)+1)
	for k, v := range in.bowlerOvers {
		out.bowlerOvers[k] = v
	}
	out.dismissed = make(map[string]struct{}, len(in.dismissed)+1)
	for k := range in.dismissed {
		out.dismissed[k] = struct{}{}
	}
	return out
}
