package match

import (
	"fmt"
	"time"

	"github.com/riskibarqy/cricket-scoring/internal/domain/profile"
)

// State is the match lifecycle position.
type State string

const (
	StateScheduled         State = "scheduled"
	StateTossDone          State = "toss_done"
	StateInningsInProgress State = "innings_in_progress"
	StateInningsBreak      State = "innings_break"
	StateCompleted         State = "completed"
	StateTied              State = "tied"
	StateNoResult          State = "no_result"
	StateAbandoned         State = "abandoned"
)

func (s State) Terminal() bool {
	switch s {
	case StateCompleted, StateTied, StateNoResult, StateAbandoned:
		return true
	default:
		return false
	}
}

type TossDecision string

const (
	TossBat  TossDecision = "bat"
	TossBowl TossDecision = "bowl"
)

// Match is the persisted match header. Innings state itself is derived from
// the ledger.
type Match struct {
	ID               string
	TournamentID     string
	TeamA            string
	TeamB            string
	Profile          profile.Profile
	TossWinner       string
	TossDecision     TossDecision
	BattingFirstSide string
	Innings          []InningsSetup
	State            State
	WinnerTeamID     string
	ResultSummary    string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

func (m Match) Opponent(teamID string) string {
	if teamID == m.TeamA {
		return m.TeamB
	}
	return m.TeamA
}

func (m Match) HasTeam(teamID string) bool {
	return teamID != "" && (teamID == m.TeamA || teamID == m.TeamB)
}

// CurrentInnings returns the setup of the innings in play, if any.
func (m Match) CurrentInnings() (InningsSetup, bool) {
	if len(m.Innings) == 0 {
		return InningsSetup{}, false
	}
	return m.Innings[len(m.Innings)-1], true
}

func (m Match) Setup(number int) (InningsSetup, error) {
	if number < 1 || number > len(m.Innings) {
		return InningsSetup{}, fmt.Errorf("%w: match=%s innings=%d", ErrInningsNotFound, m.ID, number)
	}
	return m.Innings[number-1], nil
}

// BothInningsCompleted reports whether the result can be derived.
func (m Match) BothInningsCompleted() bool {
	return len(m.Innings) == 2 && m.Innings[0].Completed && m.Innings[1].Completed
}

func (m *Match) RecordToss(winner string, decision TossDecision) error {
	if m.State != StateScheduled {
		return fmt.Errorf("%w: toss from %s", ErrInvalidTransition, m.State)
	}
	if !m.HasTeam(winner) {
		return fmt.Errorf("%w: toss winner %q is not in match", ErrInvalidTransition, winner)
	}
	switch decision {
	case TossBat:
		m.BattingFirstSide = winner
	case TossBowl:
		m.BattingFirstSide = m.Opponent(winner)
	default:
		return fmt.Errorf("%w: toss decision %q", ErrInvalidTransition, decision)
	}
	m.TossWinner = winner
	m.TossDecision = decision
	m.State = StateTossDone
	return nil
}

// StartInnings opens innings 1 after the toss, or innings 2 after the break
// with target firstInningsRuns+1.
func (m *Match) StartInnings(number, firstInningsRuns int) error {
	switch {
	case number == 1 && m.State == StateTossDone && len(m.Innings) == 0:
		m.Innings = append(m.Innings, InningsSetup{
			Number:      1,
			BattingSide: m.BattingFirstSide,
			BowlingSide: m.Opponent(m.BattingFirstSide),
		})
	case number == 2 && m.State == StateInningsBreak && len(m.Innings) == 1:
		if firstInningsRuns < 0 {
			return fmt.Errorf("%w: first innings runs=%d", ErrInvalidTransition, firstInningsRuns)
		}
		first := m.Innings[0]
		m.Innings = append(m.Innings, InningsSetup{
			Number:      2,
			BattingSide: first.BowlingSide,
			BowlingSide: first.BattingSide,
			Target:      firstInningsRuns + 1,
		})
	default:
		return fmt.Errorf("%w: start innings %d from %s", ErrInvalidTransition, number, m.State)
	}
	m.State = StateInningsInProgress
	return nil
}

func (m *Match) CompleteInnings(number int) error {
	if m.State != StateInningsInProgress || number != len(m.Innings) || m.Innings[number-1].Completed {
		return fmt.Errorf("%w: complete innings %d from %s", ErrInvalidTransition, number, m.State)
	}
	m.Innings[number-1].Completed = true
	if number == 1 {
		m.State = StateInningsBreak
	}
	return nil
}

// ReopenInnings undoes CompleteInnings after the final ball is voided.
func (m *Match) ReopenInnings(number int) error {
	if number < 1 || number != len(m.Innings) || !m.Innings[number-1].Completed || m.State.Terminal() {
		return fmt.Errorf("%w: reopen innings %d from %s", ErrInvalidTransition, number, m.State)
	}
	m.Innings[number-1].Completed = false
	m.State = StateInningsInProgress
	return nil
}

// Finish moves a fully played match to Completed or Tied.
func (m *Match) Finish(outcome State, winnerTeamID, summary string) error {
	if outcome != StateCompleted && outcome != StateTied {
		return fmt.Errorf("%w: finish as %s", ErrInvalidTransition, outcome)
	}
	if m.State.Terminal() || !m.BothInningsCompleted() {
		return fmt.Errorf("%w: finish from %s", ErrInvalidTransition, m.State)
	}
	m.State = outcome
	m.WinnerTeamID = winnerTeamID
	m.ResultSummary = summary
	return nil
}

func (m *Match) Abandon() error {
	if m.State.Terminal() {
		return fmt.Errorf("%w: abandon from %s", ErrInvalidTransition, m.State)
	}
	m.State = StateAbandoned
	return nil
}

// DeclareNoResult closes an abandoned match.
func (m *Match) DeclareNoResult(summary string) error {
	if m.State != StateAbandoned {
		return fmt.Errorf("%w: no result from %s", ErrInvalidTransition, m.State)
	}
	m.State = StateNoResult
	m.WinnerTeamID = ""
	m.ResultSummary = summary
	return nil
}
