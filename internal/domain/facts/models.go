package facts

import "github.com/arnavnair220/nba-cap-optimizer/internal/domain/stats"

// PlayerSeasonFact is the canonical reconciled unit: exactly one per
// (player, season). HasStats/HasSalary record which join sides were actually
// observed; a fact with stats and no salary (or the reverse) is a legal state,
// never an error.
type PlayerSeasonFact struct {
	PlayerID    int64          `json:"playerId"`
	Season      string         `json:"season"`
	PrimaryTeam string         `json:"primaryTeam"`
	Position    string         `json:"position"`
	Age         *int           `json:"age"`
	GamesPlayed *int           `json:"gamesPlayed"`
	Minutes     *float64       `json:"minutes"`
	PerGame     stats.PerGame  `json:"perGame"`
	Advanced    stats.Advanced `json:"advanced"`

	AnnualSalary *int64 `json:"annualSalary"`
	SalarySource string `json:"salarySource,omitempty"`
	HasStats     bool   `json:"hasStats"`
	HasSalary    bool   `json:"hasSalary"`
}

// TeamSeasonSummary is the rollup of facts whose primary team is this team.
// TotalPayroll sums annual salary over salaried facts exactly; RosterCount
// counts facts regardless of salary presence.
type TeamSeasonSummary struct {
	Team             string `json:"team"`
	Season           string `json:"season"`
	TotalPayroll     int64  `json:"totalPayroll"`
	RosterCount      int    `json:"rosterCount"`
	RosterWithSalary int    `json:"rosterWithSalary"`

	AvgSalary       *float64 `json:"avgSalary"`
	MinSalary       *int64   `json:"minSalary"`
	MaxSalary       *int64   `json:"maxSalary"`
	TopPaidPlayerID *int64   `json:"topPaidPlayerId"`
	TopPaidSalary   *int64   `json:"topPaidSalary"`

	TotalPoints   *float64 `json:"totalPoints"`
	TotalRebounds *float64 `json:"totalRebounds"`
	TotalAssists  *float64 `json:"totalAssists"`
	AvgPoints     *float64 `json:"avgPoints"`
	AvgRebounds   *float64 `json:"avgRebounds"`
	AvgAssists    *float64 `json:"avgAssists"`
}

// ValuationRecord compares predicted fair value against actual pay for one
// fact. It is derived output: recomputed in full on every run, never mutated
// in place. Rank fields are nil for facts excluded from ranking.
type ValuationRecord struct {
	PlayerID       int64    `json:"playerId"`
	Season         string   `json:"season"`
	Position       string   `json:"position"`
	PredictedValue *float64 `json:"predictedValue"`
	ActualSalary   *int64   `json:"actualSalary"`
	DeviationAbs   *float64 `json:"deviationAbs"`
	DeviationPct   *float64 `json:"deviationPct"`
	LeagueRank     *int     `json:"leagueRank"`
	PositionRank   *int     `json:"positionRank"`
}

// Ranked reports whether the record participated in ranking.
func (v ValuationRecord) Ranked() bool {
	return v.LeagueRank != nil
}
