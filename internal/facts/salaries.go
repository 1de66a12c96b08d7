// Package facts joins resolved identities, aggregated season stats, and
// normalized salaries into the canonical player-season fact table.
package facts

import (
	"sort"

	"github.com/arnavnair220/nba-cap-optimizer/internal/config"
	"github.com/arnavnair220/nba-cap-optimizer/internal/domain/salaries"
)

// salaryTolerance is the relative disagreement two unranked sources may have
// and still count as agreeing (fraction of the larger figure). Figures within
// one dollar always agree regardless of magnitude.
const (
	salaryTolerance  = 0.01
	salaryAgreeFloor = 1
)

// Key identifies one player-season.
type Key struct {
	PlayerID int64
	Season   string
}

// SalaryResult is the outcome of collapsing raw salary rows to at most one
// figure per player-season. Conflicted keys carry no accepted figure but stay
// listed for audit; nothing is silently averaged.
type SalaryResult struct {
	Accepted  map[Key]salaries.Record
	Conflicts []salaries.Conflict
}

// NormalizeSalaries reconciles duplicate source rows per (player, season):
// the highest-ranked source in the authority order wins outright; sources
// outside the order must agree within tolerance, resolved to the
// lexicographically first source for determinism.
func NormalizeSalaries(rows []salaries.Record, policy config.Sources) SalaryResult {
	grouped := make(map[Key][]salaries.Record)
	for _, row := range rows {
		k := Key{PlayerID: row.PlayerID, Season: row.Season}
		grouped[k] = append(grouped[k], row)
	}

	result := SalaryResult{Accepted: make(map[Key]salaries.Record, len(grouped))}
	keys := sortedKeys(grouped)
	for _, k := range keys {
		group := grouped[k]
		if rec, ok := reconcileGroup(group, policy); ok {
			result.Accepted[k] = rec
			continue
		}
		sort.Slice(group, func(i, j int) bool {
			if group[i].Source != group[j].Source {
				return group[i].Source < group[j].Source
			}
			return group[i].AnnualSalary < group[j].AnnualSalary
		})
		result.Conflicts = append(result.Conflicts, salaries.Conflict{
			PlayerID: k.PlayerID,
			Season:   k.Season,
			Rows:     group,
		})
	}
	return result
}

func reconcileGroup(group []salaries.Record, policy config.Sources) (salaries.Record, bool) {
	if len(group) == 1 {
		return group[0], true
	}

	if best, ok := bestAuthority(group, policy); ok {
		// The authoritative source overrides everyone else, but it must not
		// disagree with itself.
		if agreeWithin(best, salaryTolerance) {
			return best[0], true
		}
		return salaries.Record{}, false
	}

	if agreeWithin(group, salaryTolerance) {
		chosen := group[0]
		for _, row := range group[1:] {
			if row.Source < chosen.Source {
				chosen = row
			}
		}
		return chosen, true
	}
	return salaries.Record{}, false
}

// bestAuthority returns every row from the highest-ranked source present.
func bestAuthority(group []salaries.Record, policy config.Sources) ([]salaries.Record, bool) {
	bestRank := -1
	var best []salaries.Record
	for _, row := range group {
		rank, ok := policy.AuthorityRank(row.Source)
		if !ok {
			continue
		}
		switch {
		case bestRank == -1 || rank < bestRank:
			bestRank = rank
			best = []salaries.Record{row}
		case rank == bestRank:
			best = append(best, row)
		}
	}
	return best, bestRank >= 0
}

func agreeWithin(group []salaries.Record, tolerance float64) bool {
	lo, hi := group[0].AnnualSalary, group[0].AnnualSalary
	for _, row := range group[1:] {
		if row.AnnualSalary < lo {
			lo = row.AnnualSalary
		}
		if row.AnnualSalary > hi {
			hi = row.AnnualSalary
		}
	}
	if hi == lo {
		return true
	}
	allowed := tolerance * float64(hi)
	if allowed < salaryAgreeFloor {
		allowed = salaryAgreeFloor
	}
	return float64(hi-lo) <= allowed
}

func sortedKeys(grouped map[Key][]salaries.Record) []Key {
	keys := make([]Key, 0, len(grouped))
	for k := range grouped {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].Season != keys[j].Season {
			return keys[i].Season < keys[j].Season
		}
		return keys[i].PlayerID < keys[j].PlayerID
	})
	return keys
}
