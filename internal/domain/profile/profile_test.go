package profile

import (
	"errors"
	"testing"
)

func TestLookup(t *testing.T) {
	p, err := Lookup(" T20 ")
	if err != nil {
		t.Fatalf("lookup t20: %v", err)
	}
	if p.OversPerInnings != 20 || p.MaxOversPerBowler != 4 || !p.FreeHitEnabled {
		t.Fatalf("unexpected t20 profile: %+v", p)
	}

	if _, err := Lookup("hundred"); !errors.Is(err, ErrUnknownProfile) {
		t.Fatalf("expected ErrUnknownProfile, got %v", err)
	}
}

func TestPresetsAreValid(t *testing.T) {
	for _, p := range Presets() {
		if err := p.Validate(); err != nil {
			t.Fatalf("preset %s invalid: %v", p.Name, err)
		}
	}
}

func TestValidate(t *testing.T) {
	base, _ := Lookup(NameT20)

	tests := []struct {
		name   string
		mutate func(*Profile)
		ok     bool
	}{
		{name: "valid", mutate: func(*Profile) {}, ok: true},
		{name: "unlimited overs", mutate: func(p *Profile) { p.OversPerInnings = 0; p.PowerplayOvers = 0 }, ok: true},
		{name: "zero balls per over", mutate: func(p *Profile) { p.BallsPerOver = 0 }},
		{name: "negative wide runs", mutate: func(p *Profile) { p.WideRuns = -1 }},
		{name: "powerplay longer than innings", mutate: func(p *Profile) { p.PowerplayOvers = 21 }},
		{name: "no wickets", mutate: func(p *Profile) { p.MaxWickets = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := base
			tt.mutate(&p)
			err := p.Validate()
			if tt.ok && err != nil {
				t.Fatalf("expected valid, got %v", err)
			}
			if !tt.ok && !errors.Is(err, ErrInvalidProfile) {
				t.Fatalf("expected ErrInvalidProfile, got %v", err)
			}
		})
	}
}

func TestFormatOversAndDecimal(t *testing.T) {
	tests := []struct {
		balls   int
		bpo     int
		text    string
		decimal float64
	}{
		{balls: 0, bpo: 6, text: "0.0", decimal: 0},
		{balls: 12, bpo: 6, text: "2.0", decimal: 2},
		{balls: 111, bpo: 6, text: "18.3", decimal: 18.5},
		{balls: 7, bpo: 8, text: "0.7", decimal: 0.875},
	}

	for _, tt := range tests {
		if got := FormatOvers(tt.balls, tt.bpo); got != tt.text {
			t.Fatalf("FormatOvers(%d,%d)=%q want %q", tt.balls, tt.bpo, got, tt.text)
		}
		if got := OversDecimal(tt.balls, tt.bpo); got != tt.decimal {
			t.Fatalf("OversDecimal(%d,%d)=%v want %v", tt.balls, tt.bpo, got, tt.decimal)
		}
	}
}

func TestIsPowerplay(t *testing.T) {
	p, _ := Lookup(NameT20)
	if !p.IsPowerplay(0) || !p.IsPowerplay(5) || p.IsPowerplay(6) {
		t.Fatalf("unexpected powerplay window for %+v", p)
	}
}
