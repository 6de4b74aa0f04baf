package postgres

import (
	"time"

	"github.com/riskibarqy/cricket-scoring/internal/domain/match"
)

var ledgerColumns = []string{
	"match_public_id",
	"innings_number",
	"sequence",
	"kind",
	"voids_sequence",
	"over_number",
	"ball_in_over",
	"striker",
	"non_striker",
	"bowler",
	"runs_off_bat",
	"extra_runs",
	"extra_type",
	"boundary",
	"is_wicket",
	"wicket_type",
	"dismissed_batsman",
	"fielder",
	"is_powerplay",
	"is_free_hit",
	"recorded_at",
}

type ledgerEntryModel struct {
	MatchID          string    `db:"match_public_id"`
	InningsNumber    int       `db:"innings_number"`
	Sequence         int       `db:"sequence"`
	Kind             string    `db:"kind"`
	VoidsSequence    int       `db:"voids_sequence"`
	OverNumber       int       `db:"over_number"`
	BallInOver       int       `db:"ball_in_over"`
	Striker          string    `db:"striker"`
	NonStriker       string    `db:"non_striker"`
	Bowler           string    `db:"bowler"`
	RunsOffBat       int       `db:"runs_off_bat"`
	ExtraRuns        int       `db:"extra_runs"`
	ExtraType        string    `db:"extra_type"`
	Boundary         bool      `db:"boundary"`
	IsWicket         bool      `db:"is_wicket"`
	WicketType       string    `db:"wicket_type"`
	DismissedBatsman string    `db:"dismissed_batsman"`
	Fielder          string    `db:"fielder"`
	IsPowerplay      bool      `db:"is_powerplay"`
	IsFreeHit        bool      `db:"is_free_hit"`
	RecordedAt       time.Time `db:"recorded_at"`
}

func ledgerEntryToModel(entry match.Entry) ledgerEntryModel {
	d := entry.Delivery
	return ledgerEntryModel{
		MatchID:          entry.MatchID,
		InningsNumber:    entry.InningsNumber,
		Sequence:         entry.Sequence,
		Kind:             string(entry.Kind),
		VoidsSequence:    entry.VoidsSequence,
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
		RecordedAt:       entry.RecordedAt,
	}
}

func (m ledgerEntryModel) toDomain() match.Entry {
	entry := match.Entry{
		MatchID:       m.MatchID,
		InningsNumber: m.InningsNumber,
		Sequence:      m.Sequence,
		Kind:          match.EntryKind(m.Kind),
		VoidsSequence: m.VoidsSequence,
		RecordedAt:    m.RecordedAt,
	}
	if entry.Kind == match.EntryDelivery {
		entry.Delivery = match.Delivery{
			InningsNumber:    m.InningsNumber,
			OverNumber:       m.OverNumber,
			BallInOver:       m.BallInOver,
			Striker:          m.Striker,
			NonStriker:       m.NonStriker,
			Bowler:           m.Bowler,
			RunsOffBat:       m.RunsOffBat,
			ExtraRuns:        m.ExtraRuns,
			ExtraType:        match.ExtraType(m.ExtraType),
			Boundary:         m.Boundary,
			IsWicket:         m.IsWicket,
			WicketType:       match.WicketType(m.WicketType),
			DismissedBatsman: m.DismissedBatsman,
			Fielder:          m.Fielder,
			IsPowerplay:      m.IsPowerplay,
			IsFreeHit:        m.IsFreeHit,
		}
	}
	return entry
}
