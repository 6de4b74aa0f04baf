package standing

import "time"

// TeamStanding is one team's row in a tournament table.
type TeamStanding struct {
	TournamentID string
	TeamID       string
	Played       int
	Won          int
	Lost         int
	Tied         int
	NoResult     int
	Points       int
	RunsScored   int
	OversFaced   float64
	RunsConceded int
	OversBowled  float64
	NetRunRate   float64
	LastMatchID  string
	UpdatedAt    time.Time
}

// PointsTable awards points per outcome.
type PointsTable struct {
	Win      int
	Tie      int
	Loss     int
	NoResult int
}

func DefaultPointsTable() PointsTable {
	return PointsTable{Win: 2, Tie: 1, Loss: 0, NoResult: 0}
}

// Rules configure how a match result is folded into standings.
type Rules struct {
	Points PointsTable
	// AllOutUsesFullQuota charges a side bowled out early with its full
	// over quota when computing net run rate.
	AllOutUsesFullQuota bool
}

func DefaultRules() Rules {
	return Rules{Points: DefaultPointsTable()}
}
