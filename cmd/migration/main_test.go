package main

import "testing"

func TestParseSteps(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		want    int
		wantErr bool
	}{
		{name: "default one step", args: nil, want: 1},
		{name: "explicit", args: []string{" 3 "}, want: 3},
		{name: "zero", args: []string{"0"}, wantErr: true},
		{name: "not a number", args: []string{"many"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseSteps(tt.args)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error for %v", tt.args)
				}
				return
			}
			if err != nil {
				t.Fatalf("parse steps: %v", err)
			}
			if got != tt.want {
				t.Fatalf("expected %d steps, got %d", tt.want, got)
			}
		})
	}
}

func TestParseVersionAndTarget(t *testing.T) {
	if v, err := parseVersion("1"); err != nil || v != 1 {
		t.Fatalf("parse version: got %d, %v", v, err)
	}
	if _, err := parseVersion("-1"); err == nil {
		t.Fatalf("expected error for negative version")
	}
	if target, err := parseTarget("2"); err != nil || target != 2 {
		t.Fatalf("parse target: got %d, %v", target, err)
	}
	if _, err := parseTarget("-2"); err == nil {
		t.Fatalf("expected error for negative target")
	}
}

func TestResolveMigrationsDir(t *testing.T) {
	dir := t.TempDir()
	got, err := resolveMigrationsDir(dir)
	if err != nil {
		t.Fatalf("resolve dir: %v", err)
	}
	if got != dir {
		t.Fatalf("expected %q, got %q", dir, got)
	}
}
