// Package aggregate collapses a player's team-stint stat rows for one season
// into a single canonical season line.
package aggregate

import (
	"errors"
	"fmt"
	"sort"

	"github.com/arnavnair220/nba-cap-optimizer/internal/domain"
	"github.com/arnavnair220/nba-cap-optimizer/internal/domain/stats"
)

// ErrNoRows marks an aggregation call with no input rows.
var ErrNoRows = errors.New("aggregate: no stint rows")

// Season produces the canonical aggregated row for one (player, season).
//
// When the source already supplies an explicit season-total row it wins over
// manual recombination. Otherwise per-game rates recombine as minutes-weighted
// averages (games-weighted when any stint lacks minutes), cumulative advanced
// metrics sum, and games/minutes sum. The primary team is the stint with the
// most minutes, ties to the later stint; a lone explicit total row with no
// per-stint breakdown keeps the multi-team marker because the split is unknown.
func Season(rows []stats.StintLine) (stats.SeasonLine, error) {
	if len(rows) == 0 {
		return stats.SeasonLine{}, ErrNoRows
	}
	playerID, season := rows[0].PlayerID, rows[0].Season
	for _, row := range rows[1:] {
		if row.PlayerID != playerID || row.Season != season {
			return stats.SeasonLine{}, fmt.Errorf("aggregate: mixed keys (%d,%s) and (%d,%s)",
				playerID, season, row.PlayerID, row.Season)
		}
	}

	var total *stats.StintLine
	stints := make([]stats.StintLine, 0, len(rows))
	for i := range rows {
		if rows[i].IsTotal || rows[i].Team == stats.MultiTeamMarker {
			if total == nil {
				total = &rows[i]
			}
			continue
		}
		stints = append(stints, rows[i])
	}
	sort.SliceStable(stints, func(i, j int) bool { return stints[i].Seq < stints[j].Seq })

	out := stats.SeasonLine{
		PlayerID:    playerID,
		Season:      season,
		PrimaryTeam: primaryTeam(stints),
	}

	if total != nil {
		out.Position = total.Position
		out.Age = copyInt(total.Age)
		out.GamesPlayed = copyInt(total.GamesPlayed)
		out.Minutes = copyFloat(total.Minutes)
		out.PerGame = copyPerGame(total.PerGame)
		out.Advanced = copyAdvanced(total.Advanced)
		if out.PrimaryTeam == "" {
			out.PrimaryTeam = stats.MultiTeamMarker
		}
		return out, nil
	}

	if len(stints) == 1 {
		only := stints[0]
		out.Position = only.Position
		out.Age = copyInt(only.Age)
		out.GamesPlayed = copyInt(only.GamesPlayed)
		out.Minutes = copyFloat(only.Minutes)
		out.PerGame = copyPerGame(only.PerGame)
		out.Advanced = copyAdvanced(only.Advanced)
		return out, nil
	}

	out.GamesPlayed = sumInts(stints, func(s stats.StintLine) *int { return s.GamesPlayed })
	out.Minutes = sumFloats(stints, func(s stats.StintLine) *float64 { return s.Minutes })

	weights, ok := stintWeights(stints)
	if ok {
		out.PerGame = recombinePerGame(stints, weights)
		out.Advanced = recombineAdvanced(stints, weights)
	}
	// No usable weights (zero recorded minutes and games everywhere): stat
	// fields stay absent rather than divide-by-zero defaults.

	if lead := heaviestStint(stints, weights); lead != nil {
		out.Position = lead.Position
		out.Age = copyInt(lead.Age)
	} else {
		out.Position = stints[len(stints)-1].Position
		out.Age = copyInt(stints[len(stints)-1].Age)
	}
	return out, nil
}

// primaryTeam picks the stint with the most minutes; ties go to the later
// stint. When any stint lacks minutes the whole comparison falls back to
// games played so every weight is on one scale.
func primaryTeam(stints []stats.StintLine) string {
	allMinutes := true
	for _, s := range stints {
		if _, ok := domain.Float64Value(s.Minutes); !ok {
			allMinutes = false
			break
		}
	}

	best := ""
	bestWeight := -1.0
	for _, s := range stints {
		w := 0.0
		if allMinutes {
			w, _ = domain.Float64Value(s.Minutes)
		} else if g, ok := domain.IntValue(s.GamesPlayed); ok {
			w = float64(g)
		}
		if w >= bestWeight {
			bestWeight = w
			best = s.Team
		}
	}
	return best
}

// stintWeights returns per-stint recombination weights: minutes when every
// stint reports them, otherwise games played. A zero total weight means no
// weighted average is defined.
func stintWeights(stints []stats.StintLine) ([]float64, bool) {
	weights := make([]float64, len(stints))
	allMinutes := true
	for i, s := range stints {
		v, ok := domain.Float64Value(s.Minutes)
		if !ok {
			allMinutes = false
			break
		}
		weights[i] = v
	}
	if !allMinutes {
		for i, s := range stints {
			g, ok := domain.IntValue(s.GamesPlayed)
			if !ok {
				return nil, false
			}
			weights[i] = float64(g)
		}
	}
	totalWeight := 0.0
	for _, w := range weights {
		totalWeight += w
	}
	if totalWeight <= 0 {
		return nil, false
	}
	return weights, true
}

func heaviestStint(stints []stats.StintLine, weights []float64) *stats.StintLine {
	if len(weights) != len(stints) {
		return nil
	}
	best := -1
	bestWeight := -1.0
	for i := range stints {
		if weights[i] >= bestWeight {
			bestWeight = weights[i]
			best = i
		}
	}
	if best < 0 {
		return nil
	}
	return &stints[best]
}

func recombinePerGame(stints []stats.StintLine, weights []float64) stats.PerGame {
	rate := func(get func(stats.StintLine) *float64) *float64 {
		return weightedAvg(stints, weights, get)
	}
	return stats.PerGame{
		Points:      rate(func(s stats.StintLine) *float64 { return s.PerGame.Points }),
		Rebounds:    rate(func(s stats.StintLine) *float64 { return s.PerGame.Rebounds }),
		OffRebounds: rate(func(s stats.StintLine) *float64 { return s.PerGame.OffRebounds }),
		DefRebounds: rate(func(s stats.StintLine) *float64 { return s.PerGame.DefRebounds }),
		Assists:     rate(func(s stats.StintLine) *float64 { return s.PerGame.Assists }),
		Steals:      rate(func(s stats.StintLine) *float64 { return s.PerGame.Steals }),
		Blocks:      rate(func(s stats.StintLine) *float64 { return s.PerGame.Blocks }),
		Turnovers:   rate(func(s stats.StintLine) *float64 { return s.PerGame.Turnovers }),
		Fouls:       rate(func(s stats.StintLine) *float64 { return s.PerGame.Fouls }),
		FGM:         rate(func(s stats.StintLine) *float64 { return s.PerGame.FGM }),
		FGA:         rate(func(s stats.StintLine) *float64 { return s.PerGame.FGA }),
		FGPct:       rate(func(s stats.StintLine) *float64 { return s.PerGame.FGPct }),
		FG3M:        rate(func(s stats.StintLine) *float64 { return s.PerGame.FG3M }),
		FG3A:        rate(func(s stats.StintLine) *float64 { return s.PerGame.FG3A }),
		FG3Pct:      rate(func(s stats.StintLine) *float64 { return s.PerGame.FG3Pct }),
		FG2M:        rate(func(s stats.StintLine) *float64 { return s.PerGame.FG2M }),
		FG2A:        rate(func(s stats.StintLine) *float64 { return s.PerGame.FG2A }),
		FG2Pct:      rate(func(s stats.StintLine) *float64 { return s.PerGame.FG2Pct }),
		FTM:         rate(func(s stats.StintLine) *float64 { return s.PerGame.FTM }),
		FTA:         rate(func(s stats.StintLine) *float64 { return s.PerGame.FTA }),
		FTPct:       rate(func(s stats.StintLine) *float64 { return s.PerGame.FTPct }),
	}
}

func recombineAdvanced(stints []stats.StintLine, weights []float64) stats.Advanced {
	rate := func(get func(stats.StintLine) *float64) *float64 {
		return weightedAvg(stints, weights, get)
	}
	cumulative := func(get func(stats.StintLine) *float64) *float64 {
		return sumFloats(stints, get)
	}
	return stats.Advanced{
		PER:    rate(func(s stats.StintLine) *float64 { return s.Advanced.PER }),
		TSPct:  rate(func(s stats.StintLine) *float64 { return s.Advanced.TSPct }),
		EFGPct: rate(func(s stats.StintLine) *float64 { return s.Advanced.EFGPct }),
		USGPct: rate(func(s stats.StintLine) *float64 { return s.Advanced.USGPct }),
		WS:     cumulative(func(s stats.StintLine) *float64 { return s.Advanced.WS }),
		OWS:    cumulative(func(s stats.StintLine) *float64 { return s.Advanced.OWS }),
		DWS:    cumulative(func(s stats.StintLine) *float64 { return s.Advanced.DWS }),
		WS48:   rate(func(s stats.StintLine) *float64 { return s.Advanced.WS48 }),
		BPM:    rate(func(s stats.StintLine) *float64 { return s.Advanced.BPM }),
		OBPM:   rate(func(s stats.StintLine) *float64 { return s.Advanced.OBPM }),
		DBPM:   rate(func(s stats.StintLine) *float64 { return s.Advanced.DBPM }),
		VORP:   cumulative(func(s stats.StintLine) *float64 { return s.Advanced.VORP }),
		ORBPct: rate(func(s stats.StintLine) *float64 { return s.Advanced.ORBPct }),
		DRBPct: rate(func(s stats.StintLine) *float64 { return s.Advanced.DRBPct }),
		TRBPct: rate(func(s stats.StintLine) *float64 { return s.Advanced.TRBPct }),
		ASTPct: rate(func(s stats.StintLine) *float64 { return s.Advanced.ASTPct }),
		STLPct: rate(func(s stats.StintLine) *float64 { return s.Advanced.STLPct }),
		BLKPct: rate(func(s stats.StintLine) *float64 { return s.Advanced.BLKPct }),
		TOVPct: rate(func(s stats.StintLine) *float64 { return s.Advanced.TOVPct }),
	}
}

// weightedAvg averages a rate field over the stints that report it, weighting
// each stint by its share of the total so low-volume stints are not
// double-counted.
func weightedAvg(stints []stats.StintLine, weights []float64, get func(stats.StintLine) *float64) *float64 {
	var sum, weight float64
	seen := false
	for i, s := range stints {
		v, ok := domain.Float64Value(get(s))
		if !ok {
			continue
		}
		sum += v * weights[i]
		weight += weights[i]
		seen = true
	}
	if !seen || weight <= 0 {
		return nil
	}
	return domain.Float64(sum / weight)
}

func sumFloats(stints []stats.StintLine, get func(stats.StintLine) *float64) *float64 {
	var sum float64
	seen := false
	for _, s := range stints {
		if v, ok := domain.Float64Value(get(s)); ok {
			sum += v
			seen = true
		}
	}
	if !seen {
		return nil
	}
	return domain.Float64(sum)
}

func sumInts(stints []stats.StintLine, get func(stats.StintLine) *int) *int {
	var sum int
	seen := false
	for _, s := range stints {
		if v, ok := domain.IntValue(get(s)); ok {
			sum += v
			seen = true
		}
	}
	if !seen {
		return nil
	}
	return domain.Int(sum)
}

func copyInt(p *int) *int {
	if p == nil {
		return nil
	}
	return domain.Int(*p)
}

func copyFloat(p *float64) *float64 {
	if p == nil {
		return nil
	}
	return domain.Float64(*p)
}

func copyPerGame(pg stats.PerGame) stats.PerGame {
	return stats.PerGame{
		Points:      copyFloat(pg.Points),
		Rebounds:    copyFloat(pg.Rebounds),
		OffRebounds: copyFloat(pg.OffRebounds),
		DefRebounds: copyFloat(pg.DefRebounds),
		Assists:     copyFloat(pg.Assists),
		Steals:      copyFloat(pg.Steals),
		Blocks:      copyFloat(pg.Blocks),
		Turnovers:   copyFloat(pg.Turnovers),
		Fouls:       copyFloat(pg.Fouls),
		FGM:         copyFloat(pg.FGM),
		FGA:         copyFloat(pg.FGA),
		FGPct:       copyFloat(pg.FGPct),
		FG3M:        copyFloat(pg.FG3M),
		FG3A:        copyFloat(pg.FG3A),
		FG3Pct:      copyFloat(pg.FG3Pct),
		FG2M:        copyFloat(pg.FG2M),
		FG2A:        copyFloat(pg.FG2A),
		FG2Pct:      copyFloat(pg.FG2Pct),
		FTM:         copyFloat(pg.FTM),
		FTA:         copyFloat(pg.FTA),
		FTPct:       copyFloat(pg.FTPct),
	}
}

func copyAdvanced(adv stats.Advanced) stats.Advanced {
	return stats.Advanced{
		PER:    copyFloat(adv.PER),
		TSPct:  copyFloat(adv.TSPct),
		EFGPct: copyFloat(adv.EFGPct),
		USGPct: copyFloat(adv.USGPct),
		WS:     copyFloat(adv.WS),
		OWS:    copyFloat(adv.OWS),
		DWS:    copyFloat(adv.DWS),
		WS48:   copyFloat(adv.WS48),
		BPM:    copyFloat(adv.BPM),
		OBPM:   copyFloat(adv.OBPM),
		DBPM:   copyFloat(adv.DBPM),
		VORP:   copyFloat(adv.VORP),
		ORBPct: copyFloat(adv.ORBPct),
		DRBPct: copyFloat(adv.DRBPct),
		TRBPct: copyFloat(adv.TRBPct),
		ASTPct: copyFloat(adv.ASTPct),
		STLPct: copyFloat(adv.STLPct),
		BLKPct: copyFloat(adv.BLKPct),
		TOVPct: copyFloat(adv.TOVPct),
	}
}
