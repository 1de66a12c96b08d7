package pipeline

import (
	"context"
	"errors"
	"time"

	"github.com/arnavnair220/nba-cap-optimizer/internal/domain/players"
	"github.com/arnavnair220/nba-cap-optimizer/internal/domain/salaries"
	"github.com/arnavnair220/nba-cap-optimizer/internal/domain/stats"
	"github.com/arnavnair220/nba-cap-optimizer/internal/facts"
	"github.com/arnavnair220/nba-cap-optimizer/internal/identity"
	"github.com/arnavnair220/nba-cap-optimizer/internal/logging"
	"github.com/arnavnair220/nba-cap-optimizer/internal/valuation"
)

// resolvedFeeds holds every feed after identity resolution, keyed by
// canonical player id.
type resolvedFeeds struct {
	stints      []stats.StintLine
	salaries    []salaries.Record
	predictions valuation.MapSource
}

func (p *Pipeline) resolve(ctx context.Context, feeds []seasonFeeds, prior []players.Player, report *Report) (*resolvedFeeds, *identity.Registry, error) {
	start := time.Now()

	registry, err := p.newRegistry(prior)
	if err != nil {
		p.recorder.RecordStage(stageResolve, time.Since(start), err)
		return nil, nil, err
	}

	resolved := &resolvedFeeds{predictions: make(valuation.MapSource)}
	rejected := 0

	for _, f := range feeds {
		if err := ctx.Err(); err != nil {
			p.recorder.RecordStage(stageResolve, time.Since(start), err)
			return nil, nil, err
		}

		// Roster rows seed the registry so players appear even when a
		// season has no stat or salary row for them yet.
		for _, row := range f.roster {
			if _, err := registry.Resolve(row.Name); err != nil {
				rejected++
				p.logRejected(row.Name, row.Season, row.Source, err)
			}
		}

		seq := make(map[int64]int)
		for _, row := range f.stints {
			if err := validateStint(row); err != nil {
				rejected++
				p.logInvalid(row.Name, row.Season, row.Source, err)
				continue
			}
			id, err := registry.Resolve(row.Name)
			if err != nil {
				rejected++
				p.logRejected(row.Name, row.Season, row.Source, err)
				continue
			}
			line := stats.StintLine{
				PlayerID:    id,
				Season:      row.Season,
				Team:        p.normalizeTeam(row.Team),
				IsTotal:     row.IsTotal,
				Seq:         seq[id],
				Position:    row.Position,
				Age:         row.Age,
				GamesPlayed: row.GamesPlayed,
				Minutes:     row.Minutes,
				PerGame:     row.PerGame,
				Advanced:    row.Advanced,
			}
			seq[id]++
			resolved.stints = append(resolved.stints, line)
		}

		for _, row := range f.salaries {
			if err := validateSalary(row); err != nil {
				rejected++
				p.logInvalid(row.Name, row.Season, row.Source, err)
				continue
			}
			id, err := registry.Resolve(row.Name)
			if err != nil {
				rejected++
				p.logRejected(row.Name, row.Season, row.Source, err)
				continue
			}
			resolved.salaries = append(resolved.salaries, salaries.Record{
				PlayerID:     id,
				Season:       row.Season,
				AnnualSalary: row.AnnualSalary,
				Source:       row.Source,
			})
		}

		for id, value := range f.predictions {
			k := facts.Key{PlayerID: registry.Canonical(id), Season: f.season}
			resolved.predictions[k] = value
		}
	}

	p.recorder.RecordRowsRejected(rejected)
	report.RowsRejected = rejected
	p.recorder.RecordStage(stageResolve, time.Since(start), nil)
	logging.Info(p.logger, "identities resolved",
		logging.FieldCount, registry.Len(),
		"rejected", rejected)
	return resolved, registry, nil
}

// newRegistry rebuilds the registry from the prior run's players and applies
// the operator alias overrides before any feed row is resolved.
func (p *Pipeline) newRegistry(prior []players.Player) (*identity.Registry, error) {
	registry := identity.NewRegistry()
	if len(prior) > 0 {
		var err error
		registry, err = identity.NewRegistryFromPlayers(prior)
		if err != nil {
			return nil, err
		}
	}
	for raw, canonical := range p.policy.AliasOverrides {
		id, err := registry.Resolve(canonical)
		if err != nil {
			return nil, err
		}
		if err := registry.AddAlias(raw, id); err != nil {
			return nil, err
		}
	}
	return registry, nil
}

func (p *Pipeline) normalizeTeam(abbrev string) string {
	if canonical, ok := p.policy.TeamOverrides[abbrev]; ok {
		return canonical
	}
	return stats.NormalizeTeam(abbrev)
}

func (p *Pipeline) logRejected(name, season, source string, err error) {
	if !errors.Is(err, identity.ErrUnresolvable) {
		logging.Error(p.logger, "identity resolution failed", err,
			logging.FieldSeason, season,
			logging.FieldSource, source)
		return
	}
	logging.Warn(p.logger, "row rejected: unresolvable name",
		"name", name,
		logging.FieldSeason, season,
		logging.FieldSource, source)
}

func (p *Pipeline) logInvalid(name, season, source string, err error) {
	logging.Warn(p.logger, "row rejected: implausible value",
		"name", name,
		"reason", err.Error(),
		logging.FieldSeason, season,
		logging.FieldSource, source)
}
