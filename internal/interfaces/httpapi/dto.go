package httpapi

import (
	"time"

	"github.com/riskibarqy/cricket-scoring/internal/domain/match"
	"github.com/riskibarqy/cricket-scoring/internal/domain/profile"
	"github.com/riskibarqy/cricket-scoring/internal/domain/result"
	"github.com/riskibarqy/cricket-scoring/internal/domain/scorecard"
	"github.com/riskibarqy/cricket-scoring/internal/domain/standing"
	"github.com/riskibarqy/cricket-scoring/internal/usecase"
)

type profileRequest struct {
	Name              string `json:"name" validate:"required,max=40"`
	OversPerInnings   int    `json:"overs_per_innings" validate:"min=0"`
	BallsPerOver      int    `json:"balls_per_over" validate:"min=1"`
	WideRuns          int    `json:"wide_runs" validate:"min=0"`
	NoBallRuns        int    `json:"no_ball_runs" validate:"min=0"`
	FreeHitEnabled    bool   `json:"free_hit_enabled"`
	PowerplayOvers    int    `json:"powerplay_overs" validate:"min=0"`
	MaxOversPerBowler int    `json:"max_overs_per_bowler" validate:"min=0"`
	MaxWickets        int    `json:"max_wickets" validate:"min=1"`
}

type createMatchRequest struct {
	TournamentID string          `json:"tournament_id" validate:"omitempty,max=64"`
	TeamA        string          `json:"team_a" validate:"required,max=64"`
	TeamB        string          `json:"team_b" validate:"required,max=64,nefield=TeamA"`
	ProfileName  string          `json:"profile" validate:"omitempty,max=40"`
	Profile      *profileRequest `json:"custom_profile" validate:"omitempty"`
}

type recordTossRequest struct {
	Winner   string `json:"winner" validate:"required"`
	Decision string `json:"decision" validate:"required,oneof=bat bowl"`
}

// deliveryRequest leaves rule checks to the processor so rejections carry
// its reason codes.
type deliveryRequest struct {
	Striker          string `json:"striker" validate:"max=64"`
	NonStriker       string `json:"non_striker" validate:"max=64"`
	Bowler           string `json:"bowler" validate:"max=64"`
	RunsOffBat       int    `json:"runs_off_bat"`
	ExtraType        string `json:"extra_type" validate:"max=16"`
	ExtraRuns        *int   `json:"extra_runs"`
	Boundary         bool   `json:"boundary"`
	IsWicket         bool   `json:"is_wicket"`
	WicketType       string `json:"wicket_type" validate:"max=32"`
	DismissedBatsman string `json:"dismissed_batsman" validate:"max=64"`
	Fielder          string `json:"fielder" validate:"max=64"`
}

func (r createMatchRequest) toInput() usecase.CreateMatchInput {
	input := usecase.CreateMatchInput{
		TournamentID: r.TournamentID,
		TeamA:        r.TeamA,
		TeamB:        r.TeamB,
		ProfileName:  r.ProfileName,
	}
	if r.Profile != nil {
		input.Profile = &profile.Profile{
			Name:              r.Profile.Name,
			OversPerInnings:   r.Profile.OversPerInnings,
			BallsPerOver:      r.Profile.BallsPerOver,
			WideRuns:          r.Profile.WideRuns,
			NoBallRuns:        r.Profile.NoBallRuns,
			FreeHitEnabled:    r.Profile.FreeHitEnabled,
			PowerplayOvers:    r.Profile.PowerplayOvers,
			MaxOversPerBowler: r.Profile.MaxOversPerBowler,
			MaxWickets:        r.Profile.MaxWickets,
		}
	}
	return input
}

func (r deliveryRequest) toInput() match.Input {
	extra := match.ExtraType(r.ExtraType)
	if extra == "" {
		extra = match.ExtraNone
	}
	return match.Input{
		Striker:          r.Striker,
		NonStriker:       r.NonStriker,
		Bowler:           r.Bowler,
		RunsOffBat:       r.RunsOffBat,
		ExtraType:        extra,
		ExtraRuns:        r.ExtraRuns,
		Boundary:         r.Boundary,
		IsWicket:         r.IsWicket,
		WicketType:       match.WicketType(r.WicketType),
		DismissedBatsman: r.DismissedBatsman,
		Fielder:          r.Fielder,
	}
}

type profileDTO struct {
	Name              string `json:"name"`
	OversPerInnings   int    `json:"overs_per_innings"`
	BallsPerOver      int    `json:"balls_per_over"`
	WideRuns          int    `json:"wide_runs"`
	NoBallRuns        int    `json:"no_ball_runs"`
	FreeHitEnabled    bool   `json:"free_hit_enabled"`
	PowerplayOvers    int    `json:"powerplay_overs"`
	MaxOversPerBowler int    `json:"max_overs_per_bowler"`
	MaxWickets        int    `json:"max_wickets"`
}

type inningsSetupDTO struct {
	Number      int    `json:"number"`
	BattingSide string `json:"batting_side"`
	BowlingSide string `json:"bowling_side"`
	Target      int    `json:"target,omitempty"`
	Completed   bool   `json:"completed"`
}

type matchDTO struct {
	ID               string            `json:"id"`
	TournamentID     string            `json:"tournament_id,omitempty"`
	TeamA            string            `json:"team_a"`
	TeamB            string            `json:"team_b"`
	Profile          profileDTO        `json:"profile"`
	TossWinner       string            `json:"toss_winner,omitempty"`
	TossDecision     string            `json:"toss_decision,omitempty"`
	BattingFirstSide string            `json:"batting_first_side,omitempty"`
	Innings          []inningsSetupDTO `json:"innings"`
	State            string            `json:"state"`
	WinnerTeamID     string            `json:"winner_team_id,omitempty"`
	ResultSummary    string            `json:"result_summary,omitempty"`
	CreatedAt        time.Time         `json:"created_at"`
	UpdatedAt        time.Time         `json:"updated_at"`
}

type inningsStateDTO struct {
	Number             int    `json:"number"`
	BattingSide        string `json:"batting_side"`
	BowlingSide        string `json:"bowling_side"`
	Target             int    `json:"target,omitempty"`
	RunsNeeded         int    `json:"runs_needed,omitempty"`
	Runs               int    `json:"runs"`
	Wickets            int    `json:"wickets"`
	LegalBalls         int    `json:"legal_balls"`
	Overs              string `json:"overs"`
	CurrentOver        int    `json:"current_over"`
	CurrentBallInOver  int    `json:"current_ball_in_over"`
	Striker            string `json:"striker,omitempty"`
	NonStriker         string `json:"non_striker,omitempty"`
	CurrentBowler      string `json:"current_bowler,omitempty"`
	PreviousOverBowler string `json:"previous_over_bowler,omitempty"`
	IsFreeHitNext      bool   `json:"is_free_hit_next"`
	IsCompleted        bool   `json:"is_completed"`
	CompletionReason   string `json:"completion_reason,omitempty"`
}

type deliveryDTO struct {
	InningsNumber    int    `json:"innings_number"`
	OverNumber       int    `json:"over_number"`
	BallInOver       int    `json:"ball_in_over"`
	Striker          string `json:"striker"`
	NonStriker       string `json:"non_striker"`
	Bowler           string `json:"bowler,omitempty"`
	RunsOffBat       int    `json:"runs_off_bat"`
	ExtraRuns        int    `json:"extra_runs"`
	ExtraType        string `json:"extra_type"`
	Boundary         bool   `json:"boundary"`
	IsWicket         bool   `json:"is_wicket"`
	WicketType       string `json:"wicket_type,omitempty"`
	DismissedBatsman string `json:"dismissed_batsman,omitempty"`
	Fielder          string `json:"fielder,omitempty"`
	IsPowerplay      bool   `json:"is_powerplay"`
	IsFreeHit        bool   `json:"is_free_hit"`
}

type ledgerEntryDTO struct {
	Sequence      int          `json:"sequence"`
	Kind          string       `json:"kind"`
	Delivery      *deliveryDTO `json:"delivery,omitempty"`
	VoidsSequence int          `json:"voids_sequence,omitempty"`
	RecordedAt    time.Time    `json:"recorded_at"`
}

type inningsEventDTO struct {
	Type       string `json:"type"`
	Reason     string `json:"reason"`
	Runs       int    `json:"runs"`
	Wickets    int    `json:"wickets"`
	LegalBalls int    `json:"legal_balls"`
}

type applyDeliveryDTO struct {
	Sequence int              `json:"sequence"`
	Delivery deliveryDTO      `json:"delivery"`
	Innings  inningsStateDTO  `json:"innings"`
	Event    *inningsEventDTO `json:"event,omitempty"`
}

type undoDeliveryDTO struct {
	Sequence int             `json:"sequence"`
	Voided   deliveryDTO     `json:"voided"`
	Innings  inningsStateDTO `json:"innings"`
}

type battingEntryDTO struct {
	Batsman    string  `json:"batsman"`
	Position   int     `json:"position"`
	Runs       int     `json:"runs"`
	Balls      int     `json:"balls"`
	Fours      int     `json:"fours"`
	Sixes      int     `json:"sixes"`
	StrikeRate float64 `json:"strike_rate"`
	Status     string  `json:"status"`
	Dismissal  string  `json:"dismissal,omitempty"`
}

type bowlingEntryDTO struct {
	Bowler  string  `json:"bowler"`
	Overs   string  `json:"overs"`
	Maidens int     `json:"maidens"`
	Runs    int     `json:"runs"`
	Wickets int     `json:"wickets"`
	Economy float64 `json:"economy"`
	Dots    int     `json:"dots"`
	Wides   int     `json:"wides"`
	NoBalls int     `json:"no_balls"`
	Fours   int     `json:"fours"`
	Sixes   int     `json:"sixes"`
}

type fieldingEntryDTO struct {
	Fielder   string `json:"fielder"`
	Catches   int    `json:"catches"`
	Stumpings int    `json:"stumpings"`
	RunOuts   int    `json:"run_outs"`
}

type fallOfWicketDTO struct {
	Wicket  int    `json:"wicket"`
	Batsman string `json:"batsman"`
	Runs    int    `json:"runs"`
	Over    string `json:"over"`
}

type partnershipDTO struct {
	Wicket      int    `json:"wicket"`
	BatsmanA    string `json:"batsman_a"`
	BatsmanB    string `json:"batsman_b"`
	RunsA       int    `json:"runs_a"`
	RunsB       int    `json:"runs_b"`
	Runs        int    `json:"runs"`
	Balls       int    `json:"balls"`
	Unbroken    bool   `json:"unbroken"`
	RetiredHurt bool   `json:"retired_hurt"`
}

type overSummaryDTO struct {
	Over    int    `json:"over"`
	Bowler  string `json:"bowler"`
	Runs    int    `json:"runs"`
	Wickets int    `json:"wickets"`
	Balls   int    `json:"balls"`
	Maiden  bool   `json:"maiden"`
}

type extrasDTO struct {
	Wides   int `json:"wides"`
	NoBalls int `json:"no_balls"`
	Byes    int `json:"byes"`
	LegByes int `json:"leg_byes"`
	Penalty int `json:"penalty"`
	Total   int `json:"total"`
}

type totalsDTO struct {
	Runs             int     `json:"runs"`
	Wickets          int     `json:"wickets"`
	LegalBalls       int     `json:"legal_balls"`
	Overs            string  `json:"overs"`
	RunRate          float64 `json:"run_rate"`
	Deliveries       int     `json:"deliveries"`
	PowerplayRuns    int     `json:"powerplay_runs"`
	PowerplayWickets int     `json:"powerplay_wickets"`
}

type scorecardDTO struct {
	InningsNumber int                `json:"innings_number"`
	Batting       []battingEntryDTO  `json:"batting"`
	Bowling       []bowlingEntryDTO  `json:"bowling"`
	Fielding      []fieldingEntryDTO `json:"fielding"`
	FallOfWickets []fallOfWicketDTO  `json:"fall_of_wickets"`
	Partnerships  []partnershipDTO   `json:"partnerships"`
	Overs         []overSummaryDTO   `json:"overs"`
	Extras        extrasDTO          `json:"extras"`
	Totals        totalsDTO          `json:"totals"`
}

type inningsTotalDTO struct {
	Number      int    `json:"number"`
	BattingSide string `json:"batting_side"`
	Runs        int    `json:"runs"`
	Wickets     int    `json:"wickets"`
	Overs       string `json:"overs"`
	Completed   bool   `json:"completed"`
}

type matchResultDTO struct {
	MatchID        string            `json:"match_id"`
	TournamentID   string            `json:"tournament_id,omitempty"`
	Outcome        string            `json:"outcome"`
	WinnerTeamID   string            `json:"winner_team_id,omitempty"`
	LoserTeamID    string            `json:"loser_team_id,omitempty"`
	MarginRuns     int               `json:"margin_runs,omitempty"`
	MarginWickets  int               `json:"margin_wickets,omitempty"`
	BallsRemaining int               `json:"balls_remaining,omitempty"`
	Margin         string            `json:"margin,omitempty"`
	Summary        string            `json:"summary"`
	Innings        []inningsTotalDTO `json:"innings"`
}

type teamStandingDTO struct {
	Position     int     `json:"position"`
	TeamID       string  `json:"team_id"`
	Played       int     `json:"played"`
	Won          int     `json:"won"`
	Lost         int     `json:"lost"`
	Tied         int     `json:"tied"`
	NoResult     int     `json:"no_result"`
	Points       int     `json:"points"`
	RunsScored   int     `json:"runs_scored"`
	OversFaced   float64 `json:"overs_faced"`
	RunsConceded int     `json:"runs_conceded"`
	OversBowled  float64 `json:"overs_bowled"`
	NetRunRate   float64 `json:"net_run_rate"`
	LastMatchID  string  `json:"last_match_id,omitempty"`
}

func profileToDTO(p profile.Profile) profileDTO {
	return profileDTO{
		Name:              p.Name,
		OversPerInnings:   p.OversPerInnings,
		BallsPerOver:      p.BallsPerOver,
		WideRuns:          p.WideRuns,
		NoBallRuns:        p.NoBallRuns,
		FreeHitEnabled:    p.FreeHitEnabled,
		PowerplayOvers:    p.PowerplayOvers,
		MaxOversPerBowler: p.MaxOversPerBowler,
		MaxWickets:        p.MaxWickets,
	}
}

func matchToDTO(m match.Match) matchDTO {
	innings := make([]inningsSetupDTO, 0, len(m.Innings))
	for _, in := range m.Innings {
		innings = append(innings, inningsSetupDTO{
			Number:      in.Number,
			BattingSide: in.BattingSide,
			BowlingSide: in.BowlingSide,
			Target:      in.Target,
			Completed:   in.Completed,
		})
	}

	return matchDTO{
		ID:               m.ID,
		TournamentID:     m.TournamentID,
		TeamA:            m.TeamA,
		TeamB:            m.TeamB,
		Profile:          profileToDTO(m.Profile),
		TossWinner:       m.TossWinner,
		TossDecision:     string(m.TossDecision),
		BattingFirstSide: m.BattingFirstSide,
		Innings:          innings,
		State:            string(m.State),
		WinnerTeamID:     m.WinnerTeamID,
		ResultSummary:    m.ResultSummary,
		CreatedAt:        m.CreatedAt,
		UpdatedAt:        m.UpdatedAt,
	}
}

func inningsToDTO(in match.Innings, ballsPerOver int) inningsStateDTO {
	out := inningsStateDTO{
		Number:             in.Number,
		BattingSide:        in.BattingSide,
		BowlingSide:        in.BowlingSide,
		Target:             in.Target,
		Runs:               in.Runs,
		Wickets:            in.Wickets,
		LegalBalls:         in.LegalBalls,
		Overs:              profile.FormatOvers(in.LegalBalls, ballsPerOver),
		CurrentOver:        in.CurrentOver,
		CurrentBallInOver:  in.CurrentBallInOver,
		Striker:            in.Striker,
		NonStriker:         in.NonStriker,
		CurrentBowler:      in.CurrentBowler,
		PreviousOverBowler: in.PreviousOverBowler,
		IsFreeHitNext:      in.IsFreeHitNext,
		IsCompleted:        in.IsCompleted,
		CompletionReason:   string(in.CompletionReason),
	}
	out.RunsNeeded = in.RunsNeeded()
	return out
}

func deliveryToDTO(d match.Delivery) deliveryDTO {
	return deliveryDTO{
		InningsNumber:    d.InningsNumber,
		OverNumber:       d.OverNumber,
		BallInOver:       d.BallInOver,
		Striker:          d.Striker,
		NonStriker:       d.NonStriker,
		Bowler:           d.Bowler,
		RunsOffBat:       d.RunsOffBat,
		ExtraRuns:        d.ExtraRuns,
		ExtraType:        string(d.ExtraType),
		Boundary:         d.Boundary,
		IsWicket:         d.IsWicket,
		WicketType:       string(d.WicketType),
		DismissedBatsman: d.DismissedBatsman,
		Fielder:          d.Fielder,
		IsPowerplay:      d.IsPowerplay,
		IsFreeHit:        d.IsFreeHit,
	}
}

func entryToDTO(e match.Entry) ledgerEntryDTO {
	out := ledgerEntryDTO{
		Sequence:      e.Sequence,
		Kind:          string(e.Kind),
		VoidsSequence: e.VoidsSequence,
		RecordedAt:    e.RecordedAt,
	}
	if e.Kind == match.EntryDelivery {
		d := deliveryToDTO(e.Delivery)
		out.Delivery = &d
	}
	return out
}

func eventToDTO(ev *match.Event) *inningsEventDTO {
	if ev == nil {
		return nil
	}
	return &inningsEventDTO{
		Type:       string(ev.Type),
		Reason:     string(ev.Reason),
		Runs:       ev.Runs,
		Wickets:    ev.Wickets,
		LegalBalls: ev.LegalBalls,
	}
}

func scorecardToDTO(card scorecard.Scorecard) scorecardDTO {
	out := scorecardDTO{
		InningsNumber: card.InningsNumber,
		Batting:       make([]battingEntryDTO, 0, len(card.Batting)),
		Bowling:       make([]bowlingEntryDTO, 0, len(card.Bowling)),
		Fielding:      make([]fieldingEntryDTO, 0, len(card.Fielding)),
		FallOfWickets: make([]fallOfWicketDTO, 0, len(card.FallOfWickets)),
		Partnerships:  make([]partnershipDTO, 0, len(card.Partnerships)),
		Overs:         make([]overSummaryDTO, 0, len(card.Overs)),
		Extras: extrasDTO{
			Wides:   card.Extras.Wides,
			NoBalls: card.Extras.NoBalls,
			Byes:    card.Extras.Byes,
			LegByes: card.Extras.LegByes,
			Penalty: card.Extras.Penalty,
			Total:   card.Extras.Total,
		},
		Totals: totalsDTO{
			Runs:             card.Totals.Runs,
			Wickets:          card.Totals.Wickets,
			LegalBalls:       card.Totals.LegalBalls,
			Overs:            card.Totals.Overs,
			RunRate:          card.Totals.RunRate,
			Deliveries:       card.Totals.Deliveries,
			PowerplayRuns:    card.Totals.PowerplayRuns,
			PowerplayWickets: card.Totals.PowerplayWickets,
		},
	}
	for _, b := range card.Batting {
		out.Batting = append(out.Batting, battingEntryDTO{
			Batsman:    b.Batsman,
			Position:   b.Position,
			Runs:       b.Runs,
			Balls:      b.Balls,
			Fours:      b.Fours,
			Sixes:      b.Sixes,
			StrikeRate: b.StrikeRate,
			Status:     string(b.Status),
			Dismissal:  b.Dismissal,
		})
	}
	for _, b := range card.Bowling {
		out.Bowling = append(out.Bowling, bowlingEntryDTO{
			Bowler:  b.Bowler,
			Overs:   b.Overs,
			Maidens: b.Maidens,
			Runs:    b.Runs,
			Wickets: b.Wickets,
			Economy: b.Economy,
			Dots:    b.Dots,
			Wides:   b.Wides,
			NoBalls: b.NoBalls,
			Fours:   b.Fours,
			Sixes:   b.Sixes,
		})
	}
	for _, f := range card.Fielding {
		out.Fielding = append(out.Fielding, fieldingEntryDTO(f))
	}
	for _, f := range card.FallOfWickets {
		out.FallOfWickets = append(out.FallOfWickets, fallOfWicketDTO(f))
	}
	for _, p := range card.Partnerships {
		out.Partnerships = append(out.Partnerships, partnershipDTO(p))
	}
	for _, o := range card.Overs {
		out.Overs = append(out.Overs, overSummaryDTO(o))
	}
	return out
}

func resultToDTO(res result.MatchResult) matchResultDTO {
	innings := make([]inningsTotalDTO, 0, 2)
	for _, total := range []result.InningsTotal{res.First, res.Second} {
		if total.Number == 0 {
			continue
		}
		innings = append(innings, inningsTotalDTO{
			Number:      total.Number,
			BattingSide: total.BattingSide,
			Runs:        total.Runs,
			Wickets:     total.Wickets,
			Overs:       profile.FormatOvers(total.LegalBalls, res.BallsPerOver),
			Completed:   total.Completed,
		})
	}

	return matchResultDTO{
		MatchID:        res.MatchID,
		TournamentID:   res.TournamentID,
		Outcome:        string(res.Outcome),
		WinnerTeamID:   res.WinnerTeamID,
		LoserTeamID:    res.LoserTeamID,
		MarginRuns:     res.MarginRuns,
		MarginWickets:  res.MarginWickets,
		BallsRemaining: res.BallsRemaining,
		Margin:         res.Margin,
		Summary:        res.Summary,
		Innings:        innings,
	}
}

func standingsToDTO(rows []standing.TeamStanding) []teamStandingDTO {
	out := make([]teamStandingDTO, 0, len(rows))
	for i, row := range rows {
		out = append(out, teamStandingDTO{
			Position:     i + 1,
			TeamID:       row.TeamID,
			Played:       row.Played,
			Won:          row.Won,
			Lost:         row.Lost,
			Tied:         row.Tied,
			NoResult:     row.NoResult,
			Points:       row.Points,
			RunsScored:   row.RunsScored,
			OversFaced:   row.OversFaced,
			RunsConceded: row.RunsConceded,
			OversBowled:  row.OversBowled,
			NetRunRate:   row.NetRunRate,
			LastMatchID:  row.LastMatchID,
		})
	}
	return out
}
