package pipeline

import (
	"testing"

	"github.com/arnavnair220/nba-cap-optimizer/internal/domain"
	"github.com/arnavnair220/nba-cap-optimizer/internal/domain/stats"
	"github.com/arnavnair220/nba-cap-optimizer/internal/providers"
)

func TestValidateStint(t *testing.T) {
	valid := providers.StintRow{
		Name:        "Shai Gilgeous-Alexander",
		Season:      "2024-25",
		Team:        "OKC",
		GamesPlayed: domain.Int(76),
		Minutes:     domain.Float64(2600),
		PerGame: stats.PerGame{
			Points: domain.Float64(32.7),
			FGPct:  domain.Float64(0.519),
		},
	}

	cases := []struct {
		name   string
		mutate func(*providers.StintRow)
		wantOK bool
	}{
		{"plausible row", func(r *providers.StintRow) {}, true},
		{"absent fields pass", func(r *providers.StintRow) {
			r.GamesPlayed = nil
			r.Minutes = nil
			r.PerGame = stats.PerGame{}
		}, true},
		{"negative games", func(r *providers.StintRow) {
			r.GamesPlayed = domain.Int(-1)
		}, false},
		{"negative minutes", func(r *providers.StintRow) {
			r.Minutes = domain.Float64(-10)
		}, false},
		{"points beyond ceiling", func(r *providers.StintRow) {
			r.PerGame.Points = domain.Float64(120)
		}, false},
		{"fg pct above one", func(r *providers.StintRow) {
			r.PerGame.FGPct = domain.Float64(1.5)
		}, false},
		{"ts pct negative", func(r *providers.StintRow) {
			r.Advanced.TSPct = domain.Float64(-0.2)
		}, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			row := valid
			tc.mutate(&row)
			err := validateStint(row)
			if tc.wantOK && err != nil {
				t.Fatalf("unexpected rejection: %v", err)
			}
			if !tc.wantOK && err == nil {
				t.Fatal("expected rejection")
			}
		})
	}
}

func TestValidateSalary(t *testing.T) {
	if err := validateSalary(providers.SalaryRow{AnnualSalary: 40_000_000}); err != nil {
		t.Fatalf("unexpected rejection: %v", err)
	}
	if err := validateSalary(providers.SalaryRow{AnnualSalary: -1}); err == nil {
		t.Fatal("expected rejection of negative salary")
	}
}
