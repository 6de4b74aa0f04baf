package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/riskibarqy/cricket-scoring/internal/domain/match"
	"github.com/riskibarqy/cricket-scoring/internal/domain/profile"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleDeliveries = `[
	{"striker": "s1", "non_striker": "s2", "bowler": "b1", "runs_off_bat": 4, "boundary": true},
	{"runs_off_bat": 1},
	{"extra_type": "wide"}
]`

func TestReplayLines(t *testing.T) {
	p, err := profile.Lookup(profile.NameT10)
	require.NoError(t, err)

	lines := []deliveryLine{
		{Striker: "s1", NonStriker: "s2", Bowler: "b1", RunsOffBat: 4, Boundary: true},
		{RunsOffBat: 1},
		{ExtraType: string(match.ExtraWide)},
	}
	res, err := replayLines(p, match.InningsSetup{Number: 1, BattingSide: "A", BowlingSide: "B"}, lines)
	require.NoError(t, err)

	assert.Equal(t, 6, res.Innings.Runs)
	assert.Equal(t, 2, res.Innings.LegalBalls)
	assert.Equal(t, "s2", res.Innings.Striker)
	assert.Len(t, res.Deliveries, 3)
	assert.Empty(t, res.Events)
}

func TestReplayLines_StopsAtRejection(t *testing.T) {
	p, err := profile.Lookup(profile.NameT10)
	require.NoError(t, err)

	lines := []deliveryLine{
		{Striker: "s1", NonStriker: "s2", Bowler: "b1", RunsOffBat: 1},
		{ExtraType: string(match.ExtraWide), RunsOffBat: 2},
	}
	res, err := replayLines(p, match.InningsSetup{Number: 1, BattingSide: "A", BowlingSide: "B"}, lines)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "delivery 2 rejected (runs_off_bat_on_extra)")
	assert.Equal(t, "runs_off_bat_on_extra", match.RejectionReason(err))
	assert.Len(t, res.Deliveries, 1)
}

func TestReplayCommand_PrintsScorecard(t *testing.T) {
	file := filepath.Join(t.TempDir(), "deliveries.json")
	require.NoError(t, os.WriteFile(file, []byte(sampleDeliveries), 0o600))

	var out bytes.Buffer
	cmd := newReplayCommand(&out)
	cmd.SetArgs([]string{"--profile", "t10", "--file", file, "--overs"})
	require.NoError(t, cmd.Execute())

	got := out.String()
	assert.True(t, strings.HasPrefix(got, "Innings 1 (t10): 6/0 in 0.2 overs, in progress"), got)
	for _, want := range []string{"Batting", "Bowling", "Partnerships", "Overs", "s1", "b1"} {
		assert.Contains(t, got, want)
	}
}

func TestReplayCommand_UnknownProfile(t *testing.T) {
	var out bytes.Buffer
	cmd := newReplayCommand(&out)
	cmd.SetArgs([]string{"--profile", "hundred", "--file", "missing.json"})
	err := cmd.Execute()
	require.Error(t, err)
	assert.ErrorIs(t, err, profile.ErrUnknownProfile)
}

func TestProfilesCommand(t *testing.T) {
	var out bytes.Buffer
	cmd := newProfilesCommand(&out)
	cmd.SetArgs(nil)
	require.NoError(t, cmd.Execute())

	for _, name := range []string{profile.NameT20, profile.NameODI, profile.NameT10} {
		assert.Contains(t, out.String(), name)
	}
}
