package main

import (
	"fmt"
	"io"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/riskibarqy/cricket-scoring/internal/domain/profile"
	"github.com/riskibarqy/cricket-scoring/internal/domain/scorecard"
	"github.com/spf13/cobra"
)

func newTable(title string) table.Writer {
	tbl := table.NewWriter()
	tbl.SetStyle(table.StyleLight)
	tbl.SetTitle(title)
	tbl.Style().Options.SeparateRows = false
	return tbl
}

func renderReplay(out io.Writer, p profile.Profile, res replayResult, card scorecard.Scorecard, showOvers bool) error {
	in := res.Innings
	status := "in progress"
	if in.IsCompleted {
		status = string(in.CompletionReason)
	}
	summary := fmt.Sprintf("Innings %d (%s): %d/%d in %s overs, %s",
		card.InningsNumber, p.Name, in.Runs, in.Wickets, profile.FormatOvers(in.LegalBalls, p.BallsPerOver), status)
	if need := in.RunsNeeded(); need > 0 && !in.IsCompleted {
		summary += fmt.Sprintf(", %d needed", need)
	}
	if _, err := fmt.Fprintln(out, summary); err != nil {
		return err
	}

	sections := []table.Writer{battingTable(card), bowlingTable(card), fallOfWicketsTable(card), partnershipsTable(card)}
	if showOvers {
		sections = append(sections, oversTable(card))
	}
	for _, tbl := range sections {
		if _, err := fmt.Fprintf(out, "\n%s\n", tbl.Render()); err != nil {
			return err
		}
	}
	return nil
}

func battingTable(card scorecard.Scorecard) table.Writer {
	tbl := newTable("Batting")
	tbl.AppendHeader(table.Row{"Batsman", "Dismissal", "R", "B", "4s", "6s", "SR"})
	for _, b := range card.Batting {
		dismissal := b.Dismissal
		if b.Status == scorecard.StatusNotOut {
			dismissal = "not out"
		}
		tbl.AppendRow(table.Row{b.Batsman, dismissal, b.Runs, b.Balls, b.Fours, b.Sixes, formatRate(b.StrikeRate)})
	}
	e := card.Extras
	tbl.AppendRow(table.Row{"Extras", fmt.Sprintf("w %d, nb %d, b %d, lb %d, p %d", e.Wides, e.NoBalls, e.Byes, e.LegByes, e.Penalty), e.Total})
	tbl.AppendFooter(table.Row{"Total", fmt.Sprintf("%d/%d (%s ov, RR %s)", card.Totals.Runs, card.Totals.Wickets, card.Totals.Overs, formatRate(card.Totals.RunRate))})
	tbl.SetColumnConfigs(numericColumns(3, 7))
	return tbl
}

func bowlingTable(card scorecard.Scorecard) table.Writer {
	tbl := newTable("Bowling")
	tbl.AppendHeader(table.Row{"Bowler", "O", "M", "R", "W", "Econ", "0s", "Wd", "NB"})
	for _, b := range card.Bowling {
		tbl.AppendRow(table.Row{b.Bowler, b.Overs, b.Maidens, b.Runs, b.Wickets, formatRate(b.Economy), b.Dots, b.Wides, b.NoBalls})
	}
	tbl.SetColumnConfigs(numericColumns(2, 9))
	return tbl
}

func fallOfWicketsTable(card scorecard.Scorecard) table.Writer {
	tbl := newTable("Fall of wickets")
	tbl.AppendHeader(table.Row{"#", "Batsman", "Score", "Over"})
	for _, f := range card.FallOfWickets {
		tbl.AppendRow(table.Row{f.Wicket, f.Batsman, f.Runs, f.Over})
	}
	return tbl
}

func partnershipsTable(card scorecard.Scorecard) table.Writer {
	tbl := newTable("Partnerships")
	tbl.AppendHeader(table.Row{"Wkt", "Pair", "Runs", "Balls"})
	for _, p := range card.Partnerships {
		runs := strconv.Itoa(p.Runs)
		switch {
		case p.Unbroken:
			runs += "*"
		case p.RetiredHurt:
			runs += " (rh)"
		}
		pair := fmt.Sprintf("%s %d, %s %d", p.BatsmanA, p.RunsA, p.BatsmanB, p.RunsB)
		tbl.AppendRow(table.Row{p.Wicket, pair, runs, p.Balls})
	}
	return tbl
}

func oversTable(card scorecard.Scorecard) table.Writer {
	tbl := newTable("Overs")
	tbl.AppendHeader(table.Row{"Over", "Bowler", "Runs", "Wkts", "Maiden"})
	for _, o := range card.Overs {
		maiden := ""
		if o.Maiden {
			maiden = "M"
		}
		tbl.AppendRow(table.Row{o.Over + 1, o.Bowler, o.Runs, o.Wickets, maiden})
	}
	return tbl
}

// numericColumns right-aligns columns from..to (1-based, inclusive).
func numericColumns(from, to int) []table.ColumnConfig {
	configs := make([]table.ColumnConfig, 0, to-from+1)
	for n := from; n <= to; n++ {
		configs = append(configs, table.ColumnConfig{Number: n, Align: text.AlignRight})
	}
	return configs
}

func formatRate(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

func newProfilesCommand(out io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "profiles",
		Short: "List the built-in match profiles",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			tbl := newTable("Profiles")
			tbl.AppendHeader(table.Row{"Name", "Overs", "Balls/over", "Wide", "No-ball", "Free hit", "Powerplay", "Bowler max", "Wickets"})
			for _, p := range profile.Presets() {
				tbl.AppendRow(table.Row{p.Name, p.OversPerInnings, p.BallsPerOver, p.WideRuns, p.NoBallRuns, p.FreeHitEnabled, p.PowerplayOvers, p.MaxOversPerBowler, p.MaxWickets})
			}
			_, err := fmt.Fprintln(out, tbl.Render())
			return err
		},
	}
}
