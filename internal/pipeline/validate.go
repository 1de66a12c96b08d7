package pipeline

import (
	"fmt"

	"github.com/arnavnair220/nba-cap-optimizer/internal/domain"
	"github.com/arnavnair220/nba-cap-optimizer/internal/providers"
)

// Plausible per-game ceilings. Absent fields pass; only reported values are
// bounded, and the floor is always zero.
const (
	maxPointsPerGame    = 80.0
	maxReboundsPerGame  = 30.0
	maxAssistsPerGame   = 25.0
	maxStealsPerGame    = 10.0
	maxBlocksPerGame    = 10.0
	maxTurnoversPerGame = 15.0
)

// validateStint reports the first implausible value in a raw stat row.
func validateStint(row providers.StintRow) error {
	if v, ok := domain.IntValue(row.GamesPlayed); ok && v < 0 {
		return fmt.Errorf("games played %d is negative", v)
	}
	if v, ok := domain.Float64Value(row.Minutes); ok && v < 0 {
		return fmt.Errorf("minutes %.1f is negative", v)
	}

	bounded := []struct {
		name string
		v    *float64
		max  float64
	}{
		{"points per game", row.PerGame.Points, maxPointsPerGame},
		{"rebounds per game", row.PerGame.Rebounds, maxReboundsPerGame},
		{"assists per game", row.PerGame.Assists, maxAssistsPerGame},
		{"steals per game", row.PerGame.Steals, maxStealsPerGame},
		{"blocks per game", row.PerGame.Blocks, maxBlocksPerGame},
		{"turnovers per game", row.PerGame.Turnovers, maxTurnoversPerGame},
	}
	for _, c := range bounded {
		if v, ok := domain.Float64Value(c.v); ok && (v < 0 || v > c.max) {
			return fmt.Errorf("%s %.1f outside [0, %.0f]", c.name, v, c.max)
		}
	}

	fractions := []struct {
		name string
		v    *float64
	}{
		{"fg pct", row.PerGame.FGPct},
		{"fg3 pct", row.PerGame.FG3Pct},
		{"fg2 pct", row.PerGame.FG2Pct},
		{"ft pct", row.PerGame.FTPct},
		{"ts pct", row.Advanced.TSPct},
		{"efg pct", row.Advanced.EFGPct},
	}
	for _, c := range fractions {
		if v, ok := domain.Float64Value(c.v); ok && (v < 0 || v > 1) {
			return fmt.Errorf("%s %.3f outside [0, 1]", c.name, v)
		}
	}
	return nil
}

// validateSalary reports an implausible raw salary row.
func validateSalary(row providers.SalaryRow) error {
	if row.AnnualSalary < 0 {
		return fmt.Errorf("annual salary %d is negative", row.AnnualSalary)
	}
	return nil
}
