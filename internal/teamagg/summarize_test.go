package teamagg

import (
	"testing"

	"github.com/arnavnair220/nba-cap-optimizer/internal/domain"
	domainfacts "github.com/arnavnair220/nba-cap-optimizer/internal/domain/facts"
	"github.com/arnavnair220/nba-cap-optimizer/internal/domain/stats"
)

func fact(playerID int64, team string, salary int64, ppg float64) domainfacts.PlayerSeasonFact {
	f := domainfacts.PlayerSeasonFact{
		PlayerID:    playerID,
		Season:      "2023-24",
		PrimaryTeam: team,
		HasStats:    true,
		PerGame:     stats.PerGame{Points: domain.Float64(ppg)},
	}
	if salary > 0 {
		f.AnnualSalary = domain.Int64(salary)
		f.HasSalary = true
	}
	return f
}

func TestSummarizePayrollEqualsSumOfSalariedFacts(t *testing.T) {
	rows := []domainfacts.PlayerSeasonFact{
		fact(1, "BOS", 30_000_000, 27.0),
		fact(2, "BOS", 10_000_000, 14.0),
		fact(3, "BOS", 0, 6.5), // stats, no salary
	}

	result := Summarize(rows)

	if len(result.Summaries) != 1 {
		t.Fatalf("expected 1 summary, got %d", len(result.Summaries))
	}
	s := result.Summaries[0]
	if s.TotalPayroll != 40_000_000 {
		t.Errorf("payroll = %d, want exactly 40000000", s.TotalPayroll)
	}
	if s.RosterCount != 3 {
		t.Errorf("roster = %d, want 3 regardless of salary presence", s.RosterCount)
	}
	if s.RosterWithSalary != 2 {
		t.Errorf("salaried roster = %d, want 2", s.RosterWithSalary)
	}
	if got, _ := domain.Float64Value(s.AvgSalary); got != 20_000_000 {
		t.Errorf("avg salary = %v, want 20000000", got)
	}
	if got, _ := domain.Int64Value(s.MinSalary); got != 10_000_000 {
		t.Errorf("min salary = %v, want 10000000", got)
	}
	if got, _ := domain.Int64Value(s.TopPaidPlayerID); got != 1 {
		t.Errorf("top paid = player %v, want 1", got)
	}
}

func TestSummarizePerformanceAverages(t *testing.T) {
	rows := []domainfacts.PlayerSeasonFact{
		fact(1, "BOS", 1, 20.0),
		fact(2, "BOS", 1, 10.0),
	}

	s := Summarize(rows).Summaries[0]

	if got, _ := domain.Float64Value(s.TotalPoints); got != 30.0 {
		t.Errorf("total points = %v, want 30", got)
	}
	if got, _ := domain.Float64Value(s.AvgPoints); got != 15.0 {
		t.Errorf("avg points = %v, want 15", got)
	}
	if s.AvgRebounds != nil {
		t.Error("rebounds reported nowhere must stay absent")
	}
}

func TestSummarizeExcludesUnattributedFactsCounted(t *testing.T) {
	rows := []domainfacts.PlayerSeasonFact{
		fact(1, "BOS", 1, 20.0),
		fact(2, "", 1, 10.0),
		fact(3, stats.MultiTeamMarker, 1, 10.0),
	}

	result := Summarize(rows)

	if result.Excluded != 2 {
		t.Errorf("excluded = %d, want 2", result.Excluded)
	}
	if len(result.Summaries) != 1 || result.Summaries[0].RosterCount != 1 {
		t.Errorf("unexpected summaries %+v", result.Summaries)
	}
}

func TestSummarizeDeterministicOrder(t *testing.T) {
	rows := []domainfacts.PlayerSeasonFact{
		fact(1, "LAL", 1, 1),
		fact(2, "BOS", 1, 1),
		fact(3, "DEN", 1, 1),
	}

	first := Summarize(rows)
	second := Summarize(rows)

	for i := range first.Summaries {
		if first.Summaries[i].Team != second.Summaries[i].Team {
			t.Fatalf("order differs between runs: %v vs %v", first.Summaries, second.Summaries)
		}
	}
	if first.Summaries[0].Team != "BOS" || first.Summaries[2].Team != "LAL" {
		t.Errorf("summaries not sorted by team: %+v", first.Summaries)
	}
}

func TestSummarizeNoIncrementalState(t *testing.T) {
	rows := []domainfacts.PlayerSeasonFact{fact(1, "BOS", 5, 20.0)}

	Summarize(rows)
	s := Summarize(rows).Summaries[0]

	if s.TotalPayroll != 5 || s.RosterCount != 1 {
		t.Errorf("second run differs: %+v", s)
	}
}
