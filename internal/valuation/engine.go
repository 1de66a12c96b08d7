// Package valuation compares predicted fair value against actual pay and
// ranks the deviation league-wide and within position cohorts.
package valuation

import (
	"sort"

	"github.com/arnavnair220/nba-cap-optimizer/internal/domain"
	domainfacts "github.com/arnavnair220/nba-cap-optimizer/internal/domain/facts"
	"github.com/arnavnair220/nba-cap-optimizer/internal/facts"
)

// Source supplies the externally computed predicted value for a player-season.
// The prediction model itself is an opaque collaborator.
type Source interface {
	PredictedValue(playerID int64, season string) (float64, bool)
}

// MapSource is a Source backed by a plain lookup table.
type MapSource map[facts.Key]float64

// PredictedValue implements Source.
func (m MapSource) PredictedValue(playerID int64, season string) (float64, bool) {
	v, ok := m[facts.Key{PlayerID: playerID, Season: season}]
	return v, ok
}

// Evaluate derives a valuation record per fact. deviation_abs is actual minus
// predicted; deviation_pct is undefined (absent, not zero) when the predicted
// value is zero or either input is missing. Facts lacking a defined
// deviation_pct are retained unranked.
//
// Ranking orders eligible facts per season by deviation_pct ascending, most
// undervalued first, ties broken by player id; position ranks repeat the
// ordering within each position cohort. Identical inputs produce
// byte-identical output.
func Evaluate(factRows []domainfacts.PlayerSeasonFact, preds Source) []domainfacts.ValuationRecord {
	records := make([]domainfacts.ValuationRecord, 0, len(factRows))
	for _, fact := range factRows {
		rec := domainfacts.ValuationRecord{
			PlayerID: fact.PlayerID,
			Season:   fact.Season,
			Position: fact.Position,
		}
		if fact.HasSalary {
			rec.ActualSalary = fact.AnnualSalary
		}
		if predicted, ok := preds.PredictedValue(fact.PlayerID, fact.Season); ok {
			rec.PredictedValue = domain.Float64(predicted)
		}
		if actual, ok := domain.Int64Value(rec.ActualSalary); ok && rec.PredictedValue != nil {
			deviation := float64(actual) - *rec.PredictedValue
			rec.DeviationAbs = domain.Float64(deviation)
			if *rec.PredictedValue != 0 {
				rec.DeviationPct = domain.Float64(deviation / *rec.PredictedValue)
			}
		}
		records = append(records, rec)
	}

	rank(records)

	sort.Slice(records, func(i, j int) bool {
		if records[i].Season != records[j].Season {
			return records[i].Season < records[j].Season
		}
		return records[i].PlayerID < records[j].PlayerID
	})
	return records
}

func rank(records []domainfacts.ValuationRecord) {
	leagueCohorts := make(map[string][]*domainfacts.ValuationRecord)
	positionCohorts := make(map[string][]*domainfacts.ValuationRecord)
	for i := range records {
		rec := &records[i]
		if rec.DeviationPct == nil {
			continue
		}
		leagueCohorts[rec.Season] = append(leagueCohorts[rec.Season], rec)
		posKey := rec.Season + "|" + rec.Position
		positionCohorts[posKey] = append(positionCohorts[posKey], rec)
	}

	for _, cohort := range leagueCohorts {
		orderCohort(cohort)
		for i, rec := range cohort {
			rec.LeagueRank = domain.Int(i + 1)
		}
	}
	for _, cohort := range positionCohorts {
		orderCohort(cohort)
		for i, rec := range cohort {
			rec.PositionRank = domain.Int(i + 1)
		}
	}
}

// orderCohort sorts most undervalued first; the player id tiebreak makes the
// total order deterministic.
func orderCohort(cohort []*domainfacts.ValuationRecord) {
	sort.Slice(cohort, func(i, j int) bool {
		if *cohort[i].DeviationPct != *cohort[j].DeviationPct {
			return *cohort[i].DeviationPct < *cohort[j].DeviationPct
		}
		return cohort[i].PlayerID < cohort[j].PlayerID
	})
}
