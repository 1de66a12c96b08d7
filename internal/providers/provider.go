// Package providers defines how raw source rows enter the engine. Providers
// deal in name-keyed rows exactly as the feeds report them; identity
// resolution and normalization happen downstream.
package providers

import (
	"context"

	"github.com/arnavnair220/nba-cap-optimizer/internal/domain/stats"
)

// RosterRow is one raw roster sighting: a name string in one source feed.
type RosterRow struct {
	Name   string `json:"name"`
	Season string `json:"season"`
	Source string `json:"source"`
}

// SalaryRow is one raw salary report before identity resolution.
type SalaryRow struct {
	Name         string `json:"name"`
	Season       string `json:"season"`
	AnnualSalary int64  `json:"annualSalary"`
	Source       string `json:"source"`
}

// StintRow is one raw per-team stat row. A traded player produces one row per
// team plus, in some sources, an explicit combined row flagged IsTotal.
type StintRow struct {
	Name        string         `json:"name"`
	Season      string         `json:"season"`
	Team        string         `json:"team"`
	IsTotal     bool           `json:"isTotal"`
	Position    string         `json:"position"`
	Age         *int           `json:"age"`
	GamesPlayed *int           `json:"gamesPlayed"`
	Minutes     *float64       `json:"minutes"`
	PerGame     stats.PerGame  `json:"perGame"`
	Advanced    stats.Advanced `json:"advanced"`
	Source      string         `json:"source"`
}

// RosterProvider fetches raw roster rows for a season.
type RosterProvider interface {
	FetchRoster(ctx context.Context, season string) ([]RosterRow, error)
}

// SalaryProvider fetches raw salary rows for a season.
type SalaryProvider interface {
	FetchSalaries(ctx context.Context, season string) ([]SalaryRow, error)
}

// StintProvider fetches raw per-team-stint stat rows for a season.
type StintProvider interface {
	FetchStints(ctx context.Context, season string) ([]StintRow, error)
}

// PredictionProvider fetches the externally computed fair-value lookup,
// keyed by canonical player id.
type PredictionProvider interface {
	FetchPredictions(ctx context.Context, season string) (map[int64]float64, error)
}

// DataProvider combines all provider capabilities.
type DataProvider interface {
	RosterProvider
	SalaryProvider
	StintProvider
	PredictionProvider
}
