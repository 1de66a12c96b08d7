// Package teamagg rolls player-season facts up into team-season summaries.
package teamagg

import (
	"sort"

	"github.com/arnavnair220/nba-cap-optimizer/internal/domain"
	domainfacts "github.com/arnavnair220/nba-cap-optimizer/internal/domain/facts"
	"github.com/arnavnair220/nba-cap-optimizer/internal/domain/stats"
)

// Result carries the summaries plus the count of facts that could not be
// attributed to a team. Exclusions are counted, never silently dropped.
type Result struct {
	Summaries []domainfacts.TeamSeasonSummary
	Excluded  int
}

type groupKey struct {
	team   string
	season string
}

// Summarize recomputes every team-season rollup from the fact table alone; it
// holds no incremental state. Facts without a resolved primary team, including
// multi-team marker facts whose per-team split is unknown, are excluded and
// counted.
func Summarize(factRows []domainfacts.PlayerSeasonFact) Result {
	groups := make(map[groupKey][]domainfacts.PlayerSeasonFact)
	excluded := 0
	for _, fact := range factRows {
		if fact.PrimaryTeam == "" || fact.PrimaryTeam == stats.MultiTeamMarker {
			excluded++
			continue
		}
		k := groupKey{team: fact.PrimaryTeam, season: fact.Season}
		groups[k] = append(groups[k], fact)
	}

	summaries := make([]domainfacts.TeamSeasonSummary, 0, len(groups))
	for k, members := range groups {
		summaries = append(summaries, summarizeGroup(k, members))
	}
	sort.Slice(summaries, func(i, j int) bool {
		if summaries[i].Season != summaries[j].Season {
			return summaries[i].Season < summaries[j].Season
		}
		return summaries[i].Team < summaries[j].Team
	})
	return Result{Summaries: summaries, Excluded: excluded}
}

func summarizeGroup(k groupKey, members []domainfacts.PlayerSeasonFact) domainfacts.TeamSeasonSummary {
	summary := domainfacts.TeamSeasonSummary{
		Team:        k.team,
		Season:      k.season,
		RosterCount: len(members),
	}

	var payroll int64
	var minSalary, maxSalary, topPaidID int64
	for _, fact := range members {
		amount, ok := domain.Int64Value(fact.AnnualSalary)
		if !fact.HasSalary || !ok {
			continue
		}
		payroll += amount
		if summary.RosterWithSalary == 0 || amount < minSalary {
			minSalary = amount
		}
		// Ties on the top salary keep the lowest player id for determinism.
		if summary.RosterWithSalary == 0 || amount > maxSalary ||
			(amount == maxSalary && fact.PlayerID < topPaidID) {
			maxSalary = amount
			topPaidID = fact.PlayerID
		}
		summary.RosterWithSalary++
	}
	summary.TotalPayroll = payroll
	if summary.RosterWithSalary > 0 {
		summary.AvgSalary = domain.Float64(float64(payroll) / float64(summary.RosterWithSalary))
		summary.MinSalary = domain.Int64(minSalary)
		summary.MaxSalary = domain.Int64(maxSalary)
		summary.TopPaidPlayerID = domain.Int64(topPaidID)
		summary.TopPaidSalary = domain.Int64(maxSalary)
	}

	summary.TotalPoints, summary.AvgPoints = totalAndAvg(members, func(f domainfacts.PlayerSeasonFact) *float64 { return f.PerGame.Points })
	summary.TotalRebounds, summary.AvgRebounds = totalAndAvg(members, func(f domainfacts.PlayerSeasonFact) *float64 { return f.PerGame.Rebounds })
	summary.TotalAssists, summary.AvgAssists = totalAndAvg(members, func(f domainfacts.PlayerSeasonFact) *float64 { return f.PerGame.Assists })
	return summary
}

// totalAndAvg aggregates a per-game stat across the facts that report it.
func totalAndAvg(members []domainfacts.PlayerSeasonFact, get func(domainfacts.PlayerSeasonFact) *float64) (*float64, *float64) {
	var sum float64
	count := 0
	for _, fact := range members {
		if v, ok := domain.Float64Value(get(fact)); ok {
			sum += v
			count++
		}
	}
	if count == 0 {
		return nil, nil
	}
	return domain.Float64(sum), domain.Float64(sum / float64(count))
}
