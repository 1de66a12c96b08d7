package facts

import (
	"sort"

	"github.com/arnavnair220/nba-cap-optimizer/internal/domain"
	domainfacts "github.com/arnavnair220/nba-cap-optimizer/internal/domain/facts"
	"github.com/arnavnair220/nba-cap-optimizer/internal/domain/stats"
)

// Build joins aggregated season lines against normalized salaries, producing
// exactly one fact per (player, season) sorted by season then player id.
//
// Either join side may be missing: stats with no salary and salary with no
// stats are both legal facts, flagged accurately. Conflicted salaries produce
// a fact without a salary so the player-season stays visible downstream. The
// builder never fabricates a value for a field it did not observe.
func Build(lines []stats.SeasonLine, salaryResult SalaryResult) []domainfacts.PlayerSeasonFact {
	byKey := make(map[Key]domainfacts.PlayerSeasonFact, len(lines))

	for _, line := range lines {
		k := Key{PlayerID: line.PlayerID, Season: line.Season}
		byKey[k] = domainfacts.PlayerSeasonFact{
			PlayerID:    line.PlayerID,
			Season:      line.Season,
			PrimaryTeam: line.PrimaryTeam,
			Position:    line.Position,
			Age:         line.Age,
			GamesPlayed: line.GamesPlayed,
			Minutes:     line.Minutes,
			PerGame:     line.PerGame,
			Advanced:    line.Advanced,
			HasStats:    true,
		}
	}

	for k, rec := range salaryResult.Accepted {
		fact, ok := byKey[k]
		if !ok {
			fact = domainfacts.PlayerSeasonFact{PlayerID: k.PlayerID, Season: k.Season}
		}
		fact.AnnualSalary = domain.Int64(rec.AnnualSalary)
		fact.SalarySource = rec.Source
		fact.HasSalary = true
		byKey[k] = fact
	}

	// Conflicted player-seasons keep a fact without a salary.
	for _, conflict := range salaryResult.Conflicts {
		k := Key{PlayerID: conflict.PlayerID, Season: conflict.Season}
		if _, ok := byKey[k]; !ok {
			byKey[k] = domainfacts.PlayerSeasonFact{PlayerID: k.PlayerID, Season: k.Season}
		}
	}

	result := make([]domainfacts.PlayerSeasonFact, 0, len(byKey))
	for _, fact := range byKey {
		result = append(result, fact)
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Season != result[j].Season {
			return result[i].Season < result[j].Season
		}
		return result[i].PlayerID < result[j].PlayerID
	})
	return result
}
