package profile

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	ErrInvalidProfile = errors.New("invalid match profile")
	ErrUnknownProfile = errors.New("unknown match profile")
)

// Profile is the rule set a match is scored under. It is created once and
// passed by value into every processor call.
type Profile struct {
	Name              string
	OversPerInnings   int
	BallsPerOver      int
	WideRuns          int
	NoBallRuns        int
	FreeHitEnabled    bool
	PowerplayOvers    int
	MaxOversPerBowler int
	MaxWickets        int
}

const (
	NameT20    = "t20"
	NameODI    = "odi"
	NameT10    = "t10"
	NameClub40 = "club40"
	NamePairs  = "pairs"
)

var presets = map[string]Profile{
	NameT20: {
		Name:              NameT20,
		OversPerInnings:   20,
		BallsPerOver:      6,
		WideRuns:          1,
		NoBallRuns:        1,
		FreeHitEnabled:    true,
		PowerplayOvers:    6,
		MaxOversPerBowler: 4,
		MaxWickets:        10,
	},
	NameODI: {
		Name:              NameODI,
		OversPerInnings:   50,
		BallsPerOver:      6,
		WideRuns:          1,
		NoBallRuns:        1,
		FreeHitEnabled:    true,
		PowerplayOvers:    10,
		MaxOversPerBowler: 10,
		MaxWickets:        10,
	},
	NameT10: {
		Name:              NameT10,
		OversPerInnings:   10,
		BallsPerOver:      6,
		WideRuns:          1,
		NoBallRuns:        1,
		FreeHitEnabled:    true,
		PowerplayOvers:    3,
		MaxOversPerBowler: 2,
		MaxWickets:        10,
	},
	NameClub40: {
		Name:              NameClub40,
		OversPerInnings:   40,
		BallsPerOver:      6,
		WideRuns:          1,
		NoBallRuns:        1,
		FreeHitEnabled:    false,
		PowerplayOvers:    0,
		MaxOversPerBowler: 8,
		MaxWickets:        10,
	},
	NamePairs: {
		Name:              NamePairs,
		OversPerInnings:   16,
		BallsPerOver:      6,
		WideRuns:          2,
		NoBallRuns:        2,
		FreeHitEnabled:    false,
		PowerplayOvers:    0,
		MaxOversPerBowler: 3,
		MaxWickets:        5,
	},
}

// Lookup returns a built-in profile by name.
func Lookup(name string) (Profile, error) {
	p, ok := presets[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return Profile{}, fmt.Errorf("%w: %s", ErrUnknownProfile, name)
	}
	return p, nil
}

// Presets lists the built-in profiles ordered by name.
func Presets() []Profile {
	out := make([]Profile, 0, len(presets))
	for _, p := range presets {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

func (p Profile) Validate() error {
	if p.OversPerInnings < 0 {
		return fmt.Errorf("%w: overs per innings must be >= 0", ErrInvalidProfile)
	}
	if p.BallsPerOver < 1 {
		return fmt.Errorf("%w: balls per over must be >= 1", ErrInvalidProfile)
	}
	if p.WideRuns < 0 || p.NoBallRuns < 0 {
		return fmt.Errorf("%w: wide and no-ball runs must be >= 0", ErrInvalidProfile)
	}
	if p.PowerplayOvers < 0 {
		return fmt.Errorf("%w: powerplay overs must be >= 0", ErrInvalidProfile)
	}
	if p.Bounded() && p.PowerplayOvers > p.OversPerInnings {
		return fmt.Errorf("%w: powerplay overs=%d exceed overs per innings=%d", ErrInvalidProfile, p.PowerplayOvers, p.OversPerInnings)
	}
	if p.MaxOversPerBowler < 0 {
		return fmt.Errorf("%w: max overs per bowler must be >= 0", ErrInvalidProfile)
	}
	if p.MaxWickets < 1 {
		return fmt.Errorf("%w: max wickets must be >= 1", ErrInvalidProfile)
	}
	return nil
}

// Bounded reports whether innings are limited by overs.
func (p Profile) Bounded() bool {
	return p.OversPerInnings > 0
}

// MaxLegalBalls is the legal-ball quota of one innings, 0 when unlimited.
func (p Profile) MaxLegalBalls() int {
	if !p.Bounded() {
		return 0
	}
	return p.OversPerInnings * p.BallsPerOver
}

// IsPowerplay reports whether the zero-indexed over falls in the powerplay.
func (p Profile) IsPowerplay(over int) bool {
	return over >= 0 && over < p.PowerplayOvers
}
