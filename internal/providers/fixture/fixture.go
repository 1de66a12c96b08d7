// Package fixture reads feed files from a local directory laid out as
// {dir}/{season}/{roster,salaries,stints,predictions}.json, the daily drop
// produced by the external fetch step.
package fixture

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/arnavnair220/nba-cap-optimizer/internal/providers"
)

// Source rows some feeds carry that are league summaries, not players.
var summaryRows = map[string]struct{}{
	"League Average": {},
}

// Provider loads raw rows from feed files on disk.
type Provider struct {
	dir string
}

// New creates a file-backed provider rooted at dir.
func New(dir string) *Provider {
	return &Provider{dir: dir}
}

type rosterFeed struct {
	Season  string `json:"season"`
	Source  string `json:"source"`
	Players []struct {
		Name string `json:"name"`
	} `json:"players"`
}

type salaryFeed struct {
	Season   string `json:"season"`
	Source   string `json:"source"`
	Salaries []struct {
		Name         string `json:"name"`
		AnnualSalary int64  `json:"annualSalary"`
		Source       string `json:"source"`
	} `json:"salaries"`
}

type stintFeed struct {
	Season string               `json:"season"`
	Source string               `json:"source"`
	Rows   []providers.StintRow `json:"rows"`
}

type predictionFeed struct {
	Season      string `json:"season"`
	Predictions []struct {
		PlayerID       int64   `json:"playerId"`
		PredictedValue float64 `json:"predictedValue"`
	} `json:"predictions"`
}

// FetchRoster reads roster.json for the season.
func (p *Provider) FetchRoster(ctx context.Context, season string) ([]providers.RosterRow, error) {
	var feed rosterFeed
	if err := p.decode(ctx, season, "roster.json", &feed); err != nil {
		return nil, err
	}
	rows := make([]providers.RosterRow, 0, len(feed.Players))
	for _, entry := range feed.Players {
		if _, skip := summaryRows[entry.Name]; skip {
			continue
		}
		rows = append(rows, providers.RosterRow{
			Name:   entry.Name,
			Season: season,
			Source: feed.Source,
		})
	}
	return rows, nil
}

// FetchSalaries reads salaries.json for the season. Per-row sources override
// the feed-level source tag.
func (p *Provider) FetchSalaries(ctx context.Context, season string) ([]providers.SalaryRow, error) {
	var feed salaryFeed
	if err := p.decode(ctx, season, "salaries.json", &feed); err != nil {
		return nil, err
	}
	rows := make([]providers.SalaryRow, 0, len(feed.Salaries))
	for _, entry := range feed.Salaries {
		source := entry.Source
		if source == "" {
			source = feed.Source
		}
		rows = append(rows, providers.SalaryRow{
			Name:         entry.Name,
			Season:       season,
			AnnualSalary: entry.AnnualSalary,
			Source:       source,
		})
	}
	return rows, nil
}

// FetchStints reads stints.json for the season, dropping summary rows.
func (p *Provider) FetchStints(ctx context.Context, season string) ([]providers.StintRow, error) {
	var feed stintFeed
	if err := p.decode(ctx, season, "stints.json", &feed); err != nil {
		return nil, err
	}
	rows := make([]providers.StintRow, 0, len(feed.Rows))
	for _, row := range feed.Rows {
		if _, skip := summaryRows[row.Name]; skip {
			continue
		}
		row.Season = season
		if row.Source == "" {
			row.Source = feed.Source
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// FetchPredictions reads predictions.json for the season.
func (p *Provider) FetchPredictions(ctx context.Context, season string) (map[int64]float64, error) {
	var feed predictionFeed
	if err := p.decode(ctx, season, "predictions.json", &feed); err != nil {
		return nil, err
	}
	preds := make(map[int64]float64, len(feed.Predictions))
	for _, entry := range feed.Predictions {
		preds[entry.PlayerID] = entry.PredictedValue
	}
	return preds, nil
}

func (p *Provider) decode(ctx context.Context, season, file string, payload any) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	path := filepath.Join(p.dir, season, file)
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open feed: %w", err)
	}
	defer f.Close()

	if err := json.NewDecoder(f).Decode(payload); err != nil {
		return &providers.MalformedFeedError{Feed: path, Err: err}
	}
	return nil
}
