package postgres

import "time"

type standingTableModel struct {
	ID           int64     `db:"id"`
	TournamentID string    `db:"tournament_id"`
	TeamID       string    `db:"team_id"`
	Played       int       `db:"played"`
	Won          int       `db:"won"`
	Lost         int       `db:"lost"`
	Tied         int       `db:"tied"`
	NoResult     int       `db:"no_result"`
	Points       int       `db:"points"`
	RunsScored   int       `db:"runs_scored"`
	OversFaced   float64   `db:"overs_faced"`
	RunsConceded int       `db:"runs_conceded"`
	OversBowled  float64   `db:"overs_bowled"`
	NetRunRate   float64   `db:"net_run_rate"`
	LastMatchID  string    `db:"last_match_public_id"`
	CreatedAt    time.Time `db:"created_at"`
	UpdatedAt    time.Time `db:"updated_at"`
}

type standingInsertModel struct {
	TournamentID string    `db:"tournament_id"`
	TeamID       string    `db:"team_id"`
	Played       int       `db:"played"`
	Won          int       `db:"won"`
	Lost         int       `db:"lost"`
	Tied         int       `db:"tied"`
	NoResult     int       `db:"no_result"`
	Points       int       `db:"points"`
	RunsScored   int       `db:"runs_scored"`
	OversFaced   float64   `db:"overs_faced"`
	RunsConceded int       `db:"runs_conceded"`
	OversBowled  float64   `db:"overs_bowled"`
	NetRunRate   float64   `db:"net_run_rate"`
	LastMatchID  string    `db:"last_match_public_id"`
	UpdatedAt    time.Time `db:"updated_at"`
}
