package pipeline

import (
	"context"
	"testing"

	"github.com/arnavnair220/nba-cap-optimizer/internal/config"
	"github.com/arnavnair220/nba-cap-optimizer/internal/domain"
	"github.com/arnavnair220/nba-cap-optimizer/internal/domain/players"
	"github.com/arnavnair220/nba-cap-optimizer/internal/domain/stats"
	"github.com/arnavnair220/nba-cap-optimizer/internal/metrics"
	"github.com/arnavnair220/nba-cap-optimizer/internal/providers"
)

type stubProvider struct {
	roster      map[string][]providers.RosterRow
	salaries    map[string][]providers.SalaryRow
	stints      map[string][]providers.StintRow
	predictions map[string]map[int64]float64
	fetchErr    error
}

func (s *stubProvider) FetchRoster(_ context.Context, season string) ([]providers.RosterRow, error) {
	if s.fetchErr != nil {
		return nil, s.fetchErr
	}
	return s.roster[season], nil
}

func (s *stubProvider) FetchSalaries(_ context.Context, season string) ([]providers.SalaryRow, error) {
	if s.fetchErr != nil {
		return nil, s.fetchErr
	}
	return s.salaries[season], nil
}

func (s *stubProvider) FetchStints(_ context.Context, season string) ([]providers.StintRow, error) {
	if s.fetchErr != nil {
		return nil, s.fetchErr
	}
	return s.stints[season], nil
}

func (s *stubProvider) FetchPredictions(_ context.Context, season string) (map[int64]float64, error) {
	if s.fetchErr != nil {
		return nil, s.fetchErr
	}
	return s.predictions[season], nil
}

func newTestPipeline(p providers.DataProvider, policy config.Sources) *Pipeline {
	return New(p, policy, 2, nil, metrics.NewRecorder())
}

func perGamePoints(ppg float64) stats.PerGame {
	return stats.PerGame{Points: domain.Float64(ppg)}
}

func TestRunSingleStintRoundTrip(t *testing.T) {
	provider := &stubProvider{
		stints: map[string][]providers.StintRow{
			"2024-25": {{
				Name:        "Nikola Jokic",
				Season:      "2024-25",
				Team:        "DEN",
				Position:    "C",
				GamesPlayed: domain.Int(70),
				Minutes:     domain.Float64(2400),
				Source:      "bbref",
			}},
		},
		salaries: map[string][]providers.SalaryRow{
			"2024-25": {{
				Name:         "Nikola Jokic",
				Season:       "2024-25",
				AnnualSalary: 51_415_938,
				Source:       "espn",
			}},
		},
	}

	snap, report, err := newTestPipeline(provider, config.DefaultSources()).Run(context.Background(), []string{"2024-25"}, nil)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if len(snap.Players) != 1 {
		t.Fatalf("expected 1 player, got %d", len(snap.Players))
	}
	if len(snap.Facts) != 1 {
		t.Fatalf("expected 1 fact, got %d", len(snap.Facts))
	}
	fact := snap.Facts[0]
	if !fact.HasStats || !fact.HasSalary {
		t.Fatalf("expected fact with both sides, got %+v", fact)
	}
	if fact.PrimaryTeam != "DEN" {
		t.Fatalf("expected primary team DEN, got %s", fact.PrimaryTeam)
	}
	if fact.AnnualSalary == nil || *fact.AnnualSalary != 51_415_938 {
		t.Fatalf("unexpected salary %+v", fact.AnnualSalary)
	}
	if len(snap.Teams) != 1 || snap.Teams[0].Team != "DEN" {
		t.Fatalf("expected one DEN summary, got %+v", snap.Teams)
	}
	if snap.Teams[0].TotalPayroll != 51_415_938 {
		t.Fatalf("unexpected payroll %d", snap.Teams[0].TotalPayroll)
	}
	if report.FactsBuilt != 1 || report.SalaryMatchRate != 1.0 {
		t.Fatalf("unexpected report %+v", report)
	}
}

func TestRunResolvesDiacriticsAcrossFeeds(t *testing.T) {
	provider := &stubProvider{
		stints: map[string][]providers.StintRow{
			"2024-25": {{
				Name:    "Luka Dončić",
				Season:  "2024-25",
				Team:    "DAL",
				Minutes: domain.Float64(2500),
				Source:  "bbref",
			}},
		},
		salaries: map[string][]providers.SalaryRow{
			"2024-25": {{
				Name:         "Luka Doncic",
				Season:       "2024-25",
				AnnualSalary: 43_031_940,
				Source:       "espn",
			}},
		},
	}

	snap, _, err := newTestPipeline(provider, config.DefaultSources()).Run(context.Background(), []string{"2024-25"}, nil)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(snap.Players) != 1 {
		t.Fatalf("expected both spellings to resolve to one player, got %d", len(snap.Players))
	}
	if len(snap.Facts) != 1 || !snap.Facts[0].HasSalary || !snap.Facts[0].HasStats {
		t.Fatalf("expected one joined fact, got %+v", snap.Facts)
	}
}

func TestRunTradedPlayerRecombines(t *testing.T) {
	provider := &stubProvider{
		stints: map[string][]providers.StintRow{
			"2024-25": {
				{
					Name:        "Trade Target",
					Season:      "2024-25",
					Team:        "BRK",
					GamesPlayed: domain.Int(20),
					Minutes:     domain.Float64(500),
					PerGame:     perGamePoints(10),
					Source:      "bbref",
				},
				{
					Name:        "Trade Target",
					Season:      "2024-25",
					Team:        "PHO",
					GamesPlayed: domain.Int(30),
					Minutes:     domain.Float64(750),
					PerGame:     perGamePoints(20),
					Source:      "bbref",
				},
			},
		},
	}

	snap, _, err := newTestPipeline(provider, config.DefaultSources()).Run(context.Background(), []string{"2024-25"}, nil)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(snap.Facts) != 1 {
		t.Fatalf("expected one fact for traded player, got %d", len(snap.Facts))
	}
	fact := snap.Facts[0]
	// minutes-weighted: (500*10 + 750*20) / 1250 = 16
	if fact.PerGame.Points == nil || *fact.PerGame.Points != 16.0 {
		t.Fatalf("expected 16.0 ppg, got %+v", fact.PerGame.Points)
	}
	// heavier stint wins, remapped from the legacy abbreviation
	if fact.PrimaryTeam != "PHX" {
		t.Fatalf("expected primary team PHX, got %s", fact.PrimaryTeam)
	}
}

func TestRunSalaryConflictAuditedNotJoined(t *testing.T) {
	provider := &stubProvider{
		stints: map[string][]providers.StintRow{
			"2024-25": {{
				Name:    "Disputed Deal",
				Season:  "2024-25",
				Team:    "BOS",
				Minutes: domain.Float64(1000),
				Source:  "bbref",
			}},
		},
		salaries: map[string][]providers.SalaryRow{
			"2024-25": {
				{Name: "Disputed Deal", Season: "2024-25", AnnualSalary: 10_000_000, Source: "hoopshype"},
				{Name: "Disputed Deal", Season: "2024-25", AnnualSalary: 20_000_000, Source: "spotrac"},
			},
		},
	}

	snap, report, err := newTestPipeline(provider, config.DefaultSources()).Run(context.Background(), []string{"2024-25"}, nil)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(snap.Conflicts) != 1 {
		t.Fatalf("expected 1 conflict, got %d", len(snap.Conflicts))
	}
	if len(snap.Facts) != 1 {
		t.Fatalf("expected fact despite conflict, got %d", len(snap.Facts))
	}
	if snap.Facts[0].HasSalary {
		t.Fatalf("conflicted salary must not join: %+v", snap.Facts[0])
	}
	if report.SalaryConflicts != 1 {
		t.Fatalf("expected 1 conflict in report, got %d", report.SalaryConflicts)
	}
}

func TestRunRejectsUnresolvableRows(t *testing.T) {
	provider := &stubProvider{
		roster: map[string][]providers.RosterRow{
			"2024-25": {
				{Name: "Jamal Murray", Season: "2024-25", Source: "espn"},
				{Name: "???", Season: "2024-25", Source: "espn"},
			},
		},
	}

	snap, report, err := newTestPipeline(provider, config.DefaultSources()).Run(context.Background(), []string{"2024-25"}, nil)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if report.RowsRejected != 1 {
		t.Fatalf("expected 1 rejected row, got %d", report.RowsRejected)
	}
	if len(snap.Players) != 1 {
		t.Fatalf("expected 1 player, got %d", len(snap.Players))
	}
}

func TestRunRejectsImplausibleStatRow(t *testing.T) {
	provider := &stubProvider{
		stints: map[string][]providers.StintRow{
			"2024-25": {
				{
					Name:    "Jamal Murray",
					Season:  "2024-25",
					Team:    "DEN",
					Minutes: domain.Float64(2000),
					PerGame: perGamePoints(21.4),
					Source:  "bbref",
				},
				{
					Name:    "Aaron Gordon",
					Season:  "2024-25",
					Team:    "DEN",
					Minutes: domain.Float64(1800),
					PerGame: stats.PerGame{
						Points: domain.Float64(14.7),
						FGPct:  domain.Float64(1.5),
					},
					Source: "bbref",
				},
			},
		},
	}

	snap, report, err := newTestPipeline(provider, config.DefaultSources()).Run(context.Background(), []string{"2024-25"}, nil)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if report.RowsRejected != 1 {
		t.Fatalf("expected 1 rejected row, got %d", report.RowsRejected)
	}
	if len(snap.Facts) != 1 {
		t.Fatalf("expected only the plausible row to publish, got %d facts", len(snap.Facts))
	}
	if snap.Facts[0].PlayerID != snap.Players[0].ID {
		t.Fatalf("fact keyed to %d, want %d", snap.Facts[0].PlayerID, snap.Players[0].ID)
	}
}

func TestRunPriorPlayersKeepStableIDs(t *testing.T) {
	provider := &stubProvider{
		stints: map[string][]providers.StintRow{
			"2024-25": {{
				Name:    "Jamal Murray",
				Season:  "2024-25",
				Team:    "DEN",
				Minutes: domain.Float64(2000),
				Source:  "bbref",
			}},
		},
	}
	prior := []players.Player{
		{ID: 42, FullName: "Jamal Murray", Aliases: []string{"jamal murray"}},
	}

	snap, _, err := newTestPipeline(provider, config.DefaultSources()).Run(context.Background(), []string{"2024-25"}, prior)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(snap.Facts) != 1 || snap.Facts[0].PlayerID != 42 {
		t.Fatalf("expected fact keyed to prior id 42, got %+v", snap.Facts)
	}
}

func TestRunPredictionsDriveValuation(t *testing.T) {
	provider := &stubProvider{
		stints: map[string][]providers.StintRow{
			"2024-25": {{
				Name:    "Jamal Murray",
				Season:  "2024-25",
				Team:    "DEN",
				Minutes: domain.Float64(2000),
				Source:  "bbref",
			}},
		},
		salaries: map[string][]providers.SalaryRow{
			"2024-25": {{
				Name:         "Jamal Murray",
				Season:       "2024-25",
				AnnualSalary: 36_000_000,
				Source:       "espn",
			}},
		},
		predictions: map[string]map[int64]float64{
			"2024-25": {1: 40_000_000},
		},
	}

	snap, report, err := newTestPipeline(provider, config.DefaultSources()).Run(context.Background(), []string{"2024-25"}, nil)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(snap.Valuations) != 1 {
		t.Fatalf("expected 1 valuation, got %d", len(snap.Valuations))
	}
	v := snap.Valuations[0]
	if v.DeviationAbs == nil || *v.DeviationAbs != -4_000_000 {
		t.Fatalf("unexpected deviation %+v", v.DeviationAbs)
	}
	if !v.Ranked() {
		t.Fatalf("expected ranked record, got %+v", v)
	}
	if report.Unranked != 0 {
		t.Fatalf("expected no unranked records, got %d", report.Unranked)
	}
}

func TestRunFetchErrorFailsClosed(t *testing.T) {
	provider := &stubProvider{fetchErr: context.DeadlineExceeded}

	snap, _, err := newTestPipeline(provider, config.DefaultSources()).Run(context.Background(), []string{"2024-25"}, nil)
	if err == nil {
		t.Fatal("expected fetch error")
	}
	if len(snap.Facts) != 0 || len(snap.Players) != 0 {
		t.Fatalf("expected empty snapshot on failure, got %+v", snap)
	}
}

func TestRunCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	provider := &stubProvider{}
	_, _, err := newTestPipeline(provider, config.DefaultSources()).Run(ctx, []string{"2024-25"}, nil)
	if err == nil {
		t.Fatal("expected error from cancelled context")
	}
}
