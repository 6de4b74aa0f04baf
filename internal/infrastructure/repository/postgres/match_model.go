package postgres

import (
	"time"

	"github.com/riskibarqy/cricket-scoring/internal/domain/match"
	"github.com/riskibarqy/cricket-scoring/internal/domain/profile"
)

type matchTableModel struct {
	ID               int64      `db:"id"`
	PublicID         string     `db:"public_id"`
	TournamentID     string     `db:"tournament_id"`
	TeamA            string     `db:"team_a"`
	TeamB            string     `db:"team_b"`
	Profile          []byte     `db:"profile"`
	TossWinner       string     `db:"toss_winner"`
	TossDecision     string     `db:"toss_decision"`
	BattingFirstSide string     `db:"batting_first_side"`
	Innings          []byte     `db:"innings"`
	State            string     `db:"state"`
	WinnerTeamID     string     `db:"winner_team_id"`
	ResultSummary    string     `db:"result_summary"`
	CreatedAt        time.Time  `db:"created_at"`
	UpdatedAt        time.Time  `db:"updated_at"`
	DeletedAt        *time.Time `db:"deleted_at"`
}

type matchInsertModel struct {
	PublicID         string    `db:"public_id"`
	TournamentID     string    `db:"tournament_id"`
	TeamA            string    `db:"team_a"`
	TeamB            string    `db:"team_b"`
	Profile          string    `db:"profile"`
	TossWinner       string    `db:"toss_winner"`
	TossDecision     string    `db:"toss_decision"`
	BattingFirstSide string    `db:"batting_first_side"`
	Innings          string    `db:"innings"`
	State            string    `db:"state"`
	WinnerTeamID     string    `db:"winner_team_id"`
	ResultSummary    string    `db:"result_summary"`
	CreatedAt        time.Time `db:"created_at"`
	UpdatedAt        time.Time `db:"updated_at"`
}

// profileDocument is the jsonb shape of a match profile.
type profileDocument struct {
	Name              string `json:"name"`
	OversPerInnings   int    `json:"oversPerInnings"`
	BallsPerOver      int    `json:"ballsPerOver"`
	WideRuns          int    `json:"wideRuns"`
	NoBallRuns        int    `json:"noBallRuns"`
	FreeHitEnabled    bool   `json:"freeHitEnabled"`
	PowerplayOvers    int    `json:"powerplayOvers"`
	MaxOversPerBowler int    `json:"maxOversPerBowler"`
	MaxWickets        int    `json:"maxWickets"`
}

type inningsDocument struct {
	Number      int    `json:"number"`
	BattingSide string `json:"battingSide"`
	BowlingSide string `json:"bowlingSide"`
	Target      int    `json:"target,omitempty"`
	Completed   bool   `json:"completed"`
}

func profileToDocument(p profile.Profile) profileDocument {
	return profileDocument{
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

func (d profileDocument) toDomain() profile.Profile {
	return profile.Profile{
		Name:              d.Name,
		OversPerInnings:   d.OversPerInnings,
		BallsPerOver:      d.BallsPerOver,
		WideRuns:          d.WideRuns,
		NoBallRuns:        d.NoBallRuns,
		FreeHitEnabled:    d.FreeHitEnabled,
		PowerplayOvers:    d.PowerplayOvers,
		MaxOversPerBowler: d.MaxOversPerBowler,
		MaxWickets:        d.MaxWickets,
	}
}

func inningsToDocuments(items []match.InningsSetup) []inningsDocument {
	out := make([]inningsDocument, 0, len(items))
	for _, item := range items {
		out = append(out, inningsDocument{
			Number:      item.Number,
			BattingSide: item.BattingSide,
			BowlingSide: item.BowlingSide,
			Target:      item.Target,
			Completed:   item.Completed,
		})
	}
	return out
}

func inningsFromDocuments(items []inningsDocument) []match.InningsSetup {
	out := make([]match.InningsSetup, 0, len(items))
	for _, item := range items {
		out = append(out, match.InningsSetup{
			Number:      item.Number,
			BattingSide: item.BattingSide,
			BowlingSide: item.BowlingSide,
			Target:      item.Target,
			Completed:   item.Completed,
		})
	}
	return out
}
