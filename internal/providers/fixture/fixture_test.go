package fixture

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/arnavnair220/nba-cap-optimizer/internal/providers"
)

func writeFeed(t *testing.T, dir, season, file, content string) {
	t.Helper()
	seasonDir := filepath.Join(dir, season)
	if err := os.MkdirAll(seasonDir, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(seasonDir, file), []byte(content), 0o644); err != nil {
		t.Fatalf("write feed: %v", err)
	}
}

func TestFetchRosterSkipsSummaryRows(t *testing.T) {
	dir := t.TempDir()
	writeFeed(t, dir, "2023-24", "roster.json", `{
		"season": "2023-24",
		"source": "nba_api",
		"players": [
			{"name": "Luka Dončić"},
			{"name": "League Average"},
			{"name": "Jayson Tatum"}
		]
	}`)

	rows, err := New(dir).FetchRoster(context.Background(), "2023-24")
	if err != nil {
		t.Fatalf("FetchRoster returned error: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows after skipping summary, got %d", len(rows))
	}
	if rows[0].Source != "nba_api" || rows[0].Season != "2023-24" {
		t.Errorf("unexpected row %+v", rows[0])
	}
}

func TestFetchSalariesRowSourceOverridesFeedSource(t *testing.T) {
	dir := t.TempDir()
	writeFeed(t, dir, "2023-24", "salaries.json", `{
		"season": "2023-24",
		"source": "espn",
		"salaries": [
			{"name": "Luka Dončić", "annualSalary": 40064220},
			{"name": "Jayson Tatum", "annualSalary": 32600060, "source": "spotrac"}
		]
	}`)

	rows, err := New(dir).FetchSalaries(context.Background(), "2023-24")
	if err != nil {
		t.Fatalf("FetchSalaries returned error: %v", err)
	}
	if rows[0].Source != "espn" {
		t.Errorf("row 0 source = %q, want feed default espn", rows[0].Source)
	}
	if rows[1].Source != "spotrac" {
		t.Errorf("row 1 source = %q, want spotrac", rows[1].Source)
	}
}

func TestFetchStints(t *testing.T) {
	dir := t.TempDir()
	writeFeed(t, dir, "2023-24", "stints.json", `{
		"season": "2023-24",
		"source": "bbref",
		"rows": [
			{"name": "Luka Dončić", "team": "DAL", "position": "PG", "gamesPlayed": 70,
			 "minutes": 2624, "perGame": {"points": 33.9}},
			{"name": "League Average", "team": ""}
		]
	}`)

	rows, err := New(dir).FetchStints(context.Background(), "2023-24")
	if err != nil {
		t.Fatalf("FetchStints returned error: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(rows))
	}
	row := rows[0]
	if row.Team != "DAL" || row.Source != "bbref" || row.Season != "2023-24" {
		t.Errorf("unexpected row %+v", row)
	}
	if row.PerGame.Points == nil || *row.PerGame.Points != 33.9 {
		t.Errorf("points not decoded: %+v", row.PerGame)
	}
	if row.PerGame.Rebounds != nil {
		t.Error("absent stat must decode to nil, not zero")
	}
}

func TestFetchPredictions(t *testing.T) {
	dir := t.TempDir()
	writeFeed(t, dir, "2023-24", "predictions.json", `{
		"season": "2023-24",
		"predictions": [{"playerId": 1, "predictedValue": 38500000.5}]
	}`)

	preds, err := New(dir).FetchPredictions(context.Background(), "2023-24")
	if err != nil {
		t.Fatalf("FetchPredictions returned error: %v", err)
	}
	if preds[1] != 38500000.5 {
		t.Errorf("prediction = %v, want 38500000.5", preds[1])
	}
}

func TestMalformedFeedIsTyped(t *testing.T) {
	dir := t.TempDir()
	writeFeed(t, dir, "2023-24", "roster.json", `{not json`)

	_, err := New(dir).FetchRoster(context.Background(), "2023-24")
	var malformed *providers.MalformedFeedError
	if !errors.As(err, &malformed) {
		t.Fatalf("error = %v, want MalformedFeedError", err)
	}
}

func TestMissingFeedErrors(t *testing.T) {
	_, err := New(t.TempDir()).FetchRoster(context.Background(), "2023-24")
	if err == nil {
		t.Fatal("expected error for missing feed file")
	}
}
