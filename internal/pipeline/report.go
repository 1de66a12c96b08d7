package pipeline

import "time"

// Report summarizes one run for operators. It is informational: the
// authoritative output is the published snapshot.
type Report struct {
	RunID   string
	RunDate string
	Seasons []string

	// RowsRejected counts raw rows dropped because their name could not
	// resolve to a canonical player.
	RowsRejected int
	// SalaryConflicts counts player-seasons whose salary figures disagreed
	// beyond tolerance and were routed to the audit sink.
	SalaryConflicts int
	FactsBuilt      int
	// SalaryMatchRate is the share of facts with stats that also carry an
	// accepted salary.
	SalaryMatchRate float64
	// TeamExcluded counts facts left out of team rollups for having no
	// attributable team.
	TeamExcluded int
	// Unranked counts valuation records excluded from ranking.
	Unranked int

	Duration time.Duration
}
