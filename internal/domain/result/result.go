package result

import (
	"fmt"
	"strings"

	"github.com/riskibarqy/cricket-scoring/internal/domain/match"
	"github.com/riskibarqy/cricket-scoring/internal/domain/scorecard"
)

type Outcome string

const (
	OutcomeWin      Outcome = "win"
	OutcomeTie      Outcome = "tie"
	OutcomeNoResult Outcome = "no_result"
)

// InningsTotal is the final line of one innings as the resolver sees it.
type InningsTotal struct {
	Number      int
	BattingSide string
	BowlingSide string
	Runs        int
	Wickets     int
	LegalBalls  int
	Completed   bool
}

// AllOut reports whether the batting side lost all its permitted wickets.
func (t InningsTotal) AllOut(maxWickets int) bool {
	return maxWickets > 0 && t.Wickets >= maxWickets
}

// MatchResult is the resolved outcome handed to the standings updater.
type MatchResult struct {
	MatchID        string
	TournamentID   string
	Outcome        Outcome
	WinnerTeamID   string
	LoserTeamID    string
	MarginRuns     int
	MarginWickets  int
	BallsRemaining int
	Margin         string
	Summary        string
	TeamA          string
	TeamB          string
	First          InningsTotal
	Second         InningsTotal
	BallsPerOver   int
	MaxLegalBalls  int
	MaxWickets     int
}

// IncompleteMatchError is returned when a result is requested before both
// innings have finished.
type IncompleteMatchError struct {
	MatchID string
	Pending []int
}

func (e *IncompleteMatchError) Error() string {
	parts := make([]string, 0, len(e.Pending))
	for _, n := range e.Pending {
		parts = append(parts, fmt.Sprintf("%d", n))
	}
	return fmt.Sprintf("match %s is incomplete: innings %s not completed", e.MatchID, strings.Join(parts, ","))
}

// TotalFromScorecard pairs an innings setup with its computed totals.
func TotalFromScorecard(setup match.InningsSetup, card scorecard.Scorecard) InningsTotal {
	return InningsTotal{
		Number:      setup.Number,
		BattingSide: setup.BattingSide,
		BowlingSide: setup.BowlingSide,
		Runs:        card.Totals.Runs,
		Wickets:     card.Totals.Wickets,
		LegalBalls:  card.Totals.LegalBalls,
		Completed:   setup.Completed,
	}
}

// Resolve derives win, loss or tie from the two innings totals.
func Resolve(m match.Match, first, second InningsTotal) (MatchResult, error) {
	if m.State == match.StateAbandoned || m.State == match.StateNoResult {
		return NoResult(m), nil
	}

	var pending []int
	if !first.Completed {
		pending = append(pending, 1)
	}
	if !second.Completed {
		pending = append(pending, 2)
	}
	if len(pending) > 0 {
		return MatchResult{}, &IncompleteMatchError{MatchID: m.ID, Pending: pending}
	}

	res := base(m)
	res.First = first
	res.Second = second

	switch {
	case second.Runs > first.Runs:
		res.Outcome = OutcomeWin
		res.WinnerTeamID = second.BattingSide
		res.LoserTeamID = first.BattingSide
		res.MarginWickets = m.Profile.MaxWickets - second.Wickets
		res.Margin = plural(res.MarginWickets, "wicket")
		if res.MaxLegalBalls > 0 {
			res.BallsRemaining = max(res.MaxLegalBalls-second.LegalBalls, 0)
		}
		res.Summary = fmt.Sprintf("%s won by %s", res.WinnerTeamID, res.Margin)
		if res.BallsRemaining > 0 {
			res.Summary += fmt.Sprintf(" (%s remaining)", plural(res.BallsRemaining, "ball"))
		}
	case first.Runs > second.Runs:
		res.Outcome = OutcomeWin
		res.WinnerTeamID = first.BattingSide
		res.LoserTeamID = second.BattingSide
		res.MarginRuns = first.Runs - second.Runs
		res.Margin = plural(res.MarginRuns, "run")
		res.Summary = fmt.Sprintf("%s won by %s", res.WinnerTeamID, res.Margin)
	default:
		res.Outcome = OutcomeTie
		res.Summary = "Match tied"
	}
	return res, nil
}

// NoResult is the result of an abandoned match. It is an explicit decision
// by the caller and is never derived from the scores.
func NoResult(m match.Match) MatchResult {
	res := base(m)
	res.Outcome = OutcomeNoResult
	res.Summary = "No result"
	return res
}

func base(m match.Match) MatchResult {
	return MatchResult{
		MatchID:       m.ID,
		TournamentID:  m.TournamentID,
		TeamA:         m.TeamA,
		TeamB:         m.TeamB,
		BallsPerOver:  m.Profile.BallsPerOver,
		MaxLegalBalls: m.Profile.MaxLegalBalls(),
		MaxWickets:    m.Profile.MaxWickets,
	}
}

// MatchState maps an outcome onto the terminal match state.
func (r MatchResult) MatchState() match.State {
	switch r.Outcome {
	case OutcomeWin:
		return match.StateCompleted
	case OutcomeTie:
		return match.StateTied
	default:
		return match.StateNoResult
	}
}

func plural(n int, unit string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", unit)
	}
	return fmt.Sprintf("%d %ss", n, unit)
}
