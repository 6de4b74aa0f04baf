package scorecard

type BattingStatus string

const (
	StatusNotOut      BattingStatus = "not_out"
	StatusOut         BattingStatus = "out"
	StatusRetiredHurt BattingStatus = "retired_hurt"
	StatusDidNotBat   BattingStatus = "did_not_bat"
)

// Scorecard is the full statistical projection of one innings ledger.
type Scorecard struct {
	InningsNumber int
	Batting       []BattingEntry
	Bowling       []BowlingEntry
	Fielding      []FieldingEntry
	FallOfWickets []FallOfWicket
	Partnerships  []Partnership
	Overs         []OverSummary
	Extras        Extras
	Totals        Totals
}

type BattingEntry struct {
	Batsman    string
	Position   int
	Runs       int
	Balls      int
	Fours      int
	Sixes      int
	StrikeRate float64
	Status     BattingStatus
	Dismissal  string
}

type BowlingEntry struct {
	Bowler     string
	LegalBalls int
	Overs      string
	Maidens    int
	Runs       int
	Wickets    int
	Economy    float64
	Dots       int
	Wides      int
	NoBalls    int
	Fours      int
	Sixes      int
}

type FieldingEntry struct {
	Fielder   string
	Catches   int
	Stumpings int
	RunOuts   int
}

type FallOfWicket struct {
	Wicket  int
	Batsman string
	Runs    int
	Over    string
}

// Partnership is one stand. Wicket is the fall-of-wicket number that ends it;
// a stand broken by a retired-hurt batsman is marked RetiredHurt and the next
// stand keeps the same Wicket number.
type Partnership struct {
	Wicket      int
	BatsmanA    string
	BatsmanB    string
	RunsA       int
	RunsB       int
	Runs        int
	Balls       int
	Unbroken    bool
	RetiredHurt bool
}

// OverSummary covers one over number; Maiden follows the full-over rule.
type OverSummary struct {
	Over    int
	Bowler  string
	Runs    int
	Wickets int
	Balls   int
	Maiden  bool
}

type Extras struct {
	Wides   int
	NoBalls int
	Byes    int
	LegByes int
	Penalty int
	Total   int
}

type Totals struct {
	Runs             int
	Wickets          int
	LegalBalls       int
	Overs            string
	RunRate          float64
	Deliveries       int
	PowerplayRuns    int
	PowerplayWickets int
}
