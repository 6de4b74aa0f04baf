package standing

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/riskibarqy/cricket-scoring/internal/domain/profile"
	"github.com/riskibarqy/cricket-scoring/internal/domain/result"
)

var ErrTeamMismatch = errors.New("standing does not belong to match")

// Apply folds one resolved match into the standings of its two teams and
// returns the updated rows in the order given.
func Apply(rules Rules, a, b TeamStanding, res result.MatchResult) (TeamStanding, TeamStanding, error) {
	if !belongs(a.TeamID, res) || !belongs(b.TeamID, res) || a.TeamID == b.TeamID {
		return a, b, fmt.Errorf("%w: teams=%s,%s match=%s", ErrTeamMismatch, a.TeamID, b.TeamID, res.MatchID)
	}

	a = applyTeam(rules, a, res)
	b = applyTeam(rules, b, res)
	return a, b, nil
}

func belongs(teamID string, res result.MatchResult) bool {
	return teamID != "" && (teamID == res.TeamA || teamID == res.TeamB)
}

func applyTeam(rules Rules, s TeamStanding, res result.MatchResult) TeamStanding {
	s.Played++
	s.LastMatchID = res.MatchID

	switch {
	case res.Outcome == result.OutcomeNoResult:
		s.NoResult++
		s.Points += rules.Points.NoResult
		s.NetRunRate = NetRunRate(s)
		return s
	case res.Outcome == result.OutcomeTie:
		s.Tied++
		s.Points += rules.Points.Tie
	case res.WinnerTeamID == s.TeamID:
		s.Won++
		s.Points += rules.Points.Win
	default:
		s.Lost++
		s.Points += rules.Points.Loss
	}

	for _, innings := range []result.InningsTotal{res.First, res.Second} {
		overs := inningsOvers(rules, innings, res)
		switch s.TeamID {
		case innings.BattingSide:
			s.RunsScored += innings.Runs
			s.OversFaced += overs
		case innings.BowlingSide:
			s.RunsConceded += innings.Runs
			s.OversBowled += overs
		}
	}
	s.NetRunRate = NetRunRate(s)
	return s
}

func inningsOvers(rules Rules, innings result.InningsTotal, res result.MatchResult) float64 {
	balls := innings.LegalBalls
	if rules.AllOutUsesFullQuota && res.MaxLegalBalls > 0 && innings.AllOut(res.MaxWickets) {
		balls = res.MaxLegalBalls
	}
	return profile.OversDecimal(balls, res.BallsPerOver)
}

// NetRunRate is recomputed from the accumulated totals every time.
func NetRunRate(s TeamStanding) float64 {
	var scoring, conceding float64
	if s.OversFaced > 0 {
		scoring = float64(s.RunsScored) / s.OversFaced
	}
	if s.OversBowled > 0 {
		conceding = float64(s.RunsConceded) / s.OversBowled
	}
	return math.Round((scoring-conceding)*1000) / 1000
}

// Rank orders a table by points, net run rate, wins, then team id.
func Rank(items []TeamStanding) []TeamStanding {
	out := append([]TeamStanding(nil), items...)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Points != out[j].Points {
			return out[i].Points > out[j].Points
		}
		if out[i].NetRunRate != out[j].NetRunRate {
			return out[i].NetRunRate > out[j].NetRunRate
		}
		if out[i].Won != out[j].Won {
			return out[i].Won > out[j].Won
		}
		return out[i].TeamID < out[j].TeamID
	})
	return out
}
