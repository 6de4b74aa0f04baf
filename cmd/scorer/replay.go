package main

import (
	"fmt"
	"io"
	"os"

	"github.com/bytedance/sonic"
	"github.com/riskibarqy/cricket-scoring/internal/domain/match"
	"github.com/riskibarqy/cricket-scoring/internal/domain/profile"
	"github.com/riskibarqy/cricket-scoring/internal/domain/scorecard"
	"github.com/spf13/cobra"
)

// deliveryLine mirrors the HTTP delivery request body.
type deliveryLine struct {
	Striker          string `json:"striker"`
	NonStriker       string `json:"non_striker"`
	Bowler           string `json:"bowler"`
	RunsOffBat       int    `json:"runs_off_bat"`
	ExtraType        string `json:"extra_type"`
	ExtraRuns        *int   `json:"extra_runs"`
	Boundary         bool   `json:"boundary"`
	IsWicket         bool   `json:"is_wicket"`
	WicketType       string `json:"wicket_type"`
	DismissedBatsman string `json:"dismissed_batsman"`
	Fielder          string `json:"fielder"`
}

func (l deliveryLine) toInput() match.Input {
	return match.Input{
		Striker:          l.Striker,
		NonStriker:       l.NonStriker,
		Bowler:           l.Bowler,
		RunsOffBat:       l.RunsOffBat,
		ExtraType:        match.ExtraType(l.ExtraType),
		ExtraRuns:        l.ExtraRuns,
		Boundary:         l.Boundary,
		IsWicket:         l.IsWicket,
		WicketType:       match.WicketType(l.WicketType),
		DismissedBatsman: l.DismissedBatsman,
		Fielder:          l.Fielder,
	}
}

type replayOptions struct {
	profile  string
	file     string
	innings  int
	batting  string
	bowling  string
	target   int
	showOver bool
}

type replayResult struct {
	Innings    match.Innings
	Deliveries []match.Delivery
	Events     []match.Event
}

func newReplayCommand(out io.Writer) *cobra.Command {
	opts := replayOptions{}

	cmd := &cobra.Command{
		Use:   "replay",
		Short: "Replay a JSON array of deliveries and print the scorecard",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			p, err := profile.Lookup(opts.profile)
			if err != nil {
				return err
			}
			raw, err := os.ReadFile(opts.file)
			if err != nil {
				return fmt.Errorf("read deliveries: %w", err)
			}

			var lines []deliveryLine
			if err := sonic.Unmarshal(raw, &lines); err != nil {
				return fmt.Errorf("decode deliveries %s: %w", opts.file, err)
			}

			res, err := replayLines(p, match.InningsSetup{
				Number:      opts.innings,
				BattingSide: opts.batting,
				BowlingSide: opts.bowling,
				Target:      opts.target,
			}, lines)
			if err != nil {
				return err
			}

			card := scorecard.Compute(p, opts.innings, res.Deliveries)
			return renderReplay(out, p, res, card, opts.showOver)
		},
	}

	cmd.Flags().StringVarP(&opts.profile, "profile", "p", "t20", "match profile preset")
	cmd.Flags().StringVarP(&opts.file, "file", "f", "", "JSON file holding an array of deliveries")
	cmd.Flags().IntVar(&opts.innings, "innings", 1, "innings number")
	cmd.Flags().StringVar(&opts.batting, "batting", "A", "batting side")
	cmd.Flags().StringVar(&opts.bowling, "bowling", "B", "bowling side")
	cmd.Flags().IntVar(&opts.target, "target", 0, "runs needed to win; 0 for a first innings")
	cmd.Flags().BoolVar(&opts.showOver, "overs", false, "also print the over-by-over summary")
	_ = cmd.MarkFlagRequired("file")

	return cmd
}

// replayLines applies every line in order and stops at the first rejection.
func replayLines(p profile.Profile, setup match.InningsSetup, lines []deliveryLine) (replayResult, error) {
	res := replayResult{
		Innings:    match.NewInnings(setup),
		Deliveries: make([]match.Delivery, 0, len(lines)),
	}
	for i, line := range lines {
		applied, err := match.ApplyDelivery(p, res.Innings, line.toInput())
		if err != nil {
			if reason := match.RejectionReason(err); reason != "" {
				return res, fmt.Errorf("delivery %d rejected (%s): %w", i+1, reason, err)
			}
			return res, fmt.Errorf("delivery %d: %w", i+1, err)
		}
		res.Innings = applied.Innings
		res.Deliveries = append(res.Deliveries, applied.Delivery)
		if applied.Event != nil {
			res.Events = append(res.Events, *applied.Event)
		}
	}
	return res, nil
}
