// Package pipeline orchestrates one batch run: fetch raw feeds, resolve
// identities, aggregate stints, normalize salaries, build facts, and derive
// team rollups and valuations. A run either completes every stage or
// publishes nothing.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/arnavnair220/nba-cap-optimizer/internal/aggregate"
	"github.com/arnavnair220/nba-cap-optimizer/internal/config"
	domainfacts "github.com/arnavnair220/nba-cap-optimizer/internal/domain/facts"
	"github.com/arnavnair220/nba-cap-optimizer/internal/domain/players"
	"github.com/arnavnair220/nba-cap-optimizer/internal/domain/stats"
	"github.com/arnavnair220/nba-cap-optimizer/internal/facts"
	"github.com/arnavnair220/nba-cap-optimizer/internal/logging"
	"github.com/arnavnair220/nba-cap-optimizer/internal/metrics"
	"github.com/arnavnair220/nba-cap-optimizer/internal/providers"
	"github.com/arnavnair220/nba-cap-optimizer/internal/snapshots"
	"github.com/arnavnair220/nba-cap-optimizer/internal/teamagg"
	"github.com/arnavnair220/nba-cap-optimizer/internal/timeutil"
	"github.com/arnavnair220/nba-cap-optimizer/internal/valuation"
)

const (
	stageFetch     = "fetch"
	stageResolve   = "resolve"
	stageAggregate = "aggregate"
	stageSalaries  = "salaries"
	stageFacts     = "facts"
	stageTeams     = "teams"
	stageValuation = "valuation"
)

// Pipeline runs the reconciliation engine end to end for a set of seasons.
type Pipeline struct {
	provider providers.DataProvider
	policy   config.Sources
	workers  int
	logger   *slog.Logger
	recorder *metrics.Recorder
}

// New constructs a Pipeline. workers caps fan-out within the aggregate stage;
// values below 1 are treated as 1.
func New(provider providers.DataProvider, policy config.Sources, workers int, logger *slog.Logger, recorder *metrics.Recorder) *Pipeline {
	if workers < 1 {
		workers = 1
	}
	return &Pipeline{
		provider: provider,
		policy:   policy,
		workers:  workers,
		logger:   logger,
		recorder: recorder,
	}
}

// Run executes one batch run over the given seasons. prior carries canonical
// players from the previous published run so ids stay stable across runs; it
// may be nil for a first run. The returned snapshot is complete and
// publishable only when err is nil.
func (p *Pipeline) Run(ctx context.Context, seasons []string, prior []players.Player) (snapshots.RunSnapshot, Report, error) {
	started := time.Now()
	report := Report{
		RunID:   uuid.NewString(),
		RunDate: timeutil.FormatDate(started.UTC()),
		Seasons: append([]string(nil), seasons...),
	}
	sort.Strings(report.Seasons)

	snap, err := p.run(ctx, &report, prior)
	report.Duration = time.Since(started)
	p.recorder.RecordRun(report.Duration, err)
	if err != nil {
		logging.Error(p.logger, "pipeline run failed", err,
			logging.FieldRunID, report.RunID,
			logging.FieldDurationMS, report.Duration.Milliseconds())
		return snapshots.RunSnapshot{}, report, err
	}

	logging.Info(p.logger, "pipeline run complete",
		logging.FieldRunID, report.RunID,
		logging.FieldCount, report.FactsBuilt,
		logging.FieldDurationMS, report.Duration.Milliseconds())
	return snap, report, nil
}

func (p *Pipeline) run(ctx context.Context, report *Report, prior []players.Player) (snapshots.RunSnapshot, error) {
	feeds, err := p.fetch(ctx, report.Seasons)
	if err != nil {
		return snapshots.RunSnapshot{}, err
	}

	resolved, registry, err := p.resolve(ctx, feeds, prior, report)
	if err != nil {
		return snapshots.RunSnapshot{}, err
	}

	lines, salaryResult, err := p.aggregateAndNormalize(ctx, resolved, report)
	if err != nil {
		return snapshots.RunSnapshot{}, err
	}

	factStart := time.Now()
	factRows := facts.Build(lines, salaryResult)
	p.recorder.RecordStage(stageFacts, time.Since(factStart), nil)
	p.recorder.RecordFactsBuilt(len(factRows))
	report.FactsBuilt = len(factRows)
	report.SalaryMatchRate = salaryMatchRate(factRows)

	teams, valuations, err := p.derive(ctx, factRows, resolved.predictions, report)
	if err != nil {
		return snapshots.RunSnapshot{}, err
	}

	if err := ctx.Err(); err != nil {
		return snapshots.RunSnapshot{}, err
	}

	return snapshots.RunSnapshot{
		Date:       report.RunDate,
		Players:    registry.Players(),
		Facts:      factRows,
		Teams:      teams,
		Valuations: valuations,
		Conflicts:  salaryResult.Conflicts,
	}, nil
}

// seasonFeeds is everything fetched for one season, still name-keyed.
type seasonFeeds struct {
	season      string
	roster      []providers.RosterRow
	salaries    []providers.SalaryRow
	stints      []providers.StintRow
	predictions map[int64]float64
}

func (p *Pipeline) fetch(ctx context.Context, seasons []string) ([]seasonFeeds, error) {
	start := time.Now()
	feeds := make([]seasonFeeds, 0, len(seasons))
	var err error
	defer func() { p.recorder.RecordStage(stageFetch, time.Since(start), err) }()

	for _, season := range seasons {
		var f seasonFeeds
		f.season = season
		if f.roster, err = fetchFeed(p, "roster", season, func() ([]providers.RosterRow, error) {
			return p.provider.FetchRoster(ctx, season)
		}); err != nil {
			return nil, err
		}
		if f.salaries, err = fetchFeed(p, "salaries", season, func() ([]providers.SalaryRow, error) {
			return p.provider.FetchSalaries(ctx, season)
		}); err != nil {
			return nil, err
		}
		if f.stints, err = fetchFeed(p, "stints", season, func() ([]providers.StintRow, error) {
			return p.provider.FetchStints(ctx, season)
		}); err != nil {
			return nil, err
		}
		if f.predictions, err = fetchFeed(p, "predictions", season, func() (map[int64]float64, error) {
			return p.provider.FetchPredictions(ctx, season)
		}); err != nil {
			return nil, err
		}
		feeds = append(feeds, f)
	}
	return feeds, nil
}

func fetchFeed[T any](p *Pipeline, feed, season string, fetch func() (T, error)) (T, error) {
	start := time.Now()
	result, err := fetch()
	p.recorder.RecordProviderAttempt(feed, time.Since(start), err)
	if err != nil {
		return result, fmt.Errorf("fetch %s %s: %w", feed, season, err)
	}
	return result, nil
}

func (p *Pipeline) aggregateAndNormalize(ctx context.Context, resolved *resolvedFeeds, report *Report) ([]stats.SeasonLine, facts.SalaryResult, error) {
	var (
		wg           sync.WaitGroup
		lines        []stats.SeasonLine
		aggErr       error
		salaryResult facts.SalaryResult
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		start := time.Now()
		lines, aggErr = p.aggregateStints(ctx, resolved.stints)
		p.recorder.RecordStage(stageAggregate, time.Since(start), aggErr)
	}()
	go func() {
		defer wg.Done()
		start := time.Now()
		salaryResult = facts.NormalizeSalaries(resolved.salaries, p.policy)
		p.recorder.RecordStage(stageSalaries, time.Since(start), nil)
	}()
	wg.Wait()

	if aggErr != nil {
		return nil, facts.SalaryResult{}, aggErr
	}

	p.recorder.RecordSalaryConflicts(len(salaryResult.Conflicts))
	report.SalaryConflicts = len(salaryResult.Conflicts)
	for _, c := range salaryResult.Conflicts {
		logging.Warn(p.logger, "salary conflict audited",
			logging.FieldPlayerID, c.PlayerID,
			logging.FieldSeason, c.Season,
			logging.FieldCount, len(c.Rows))
	}
	return lines, salaryResult, nil
}

// aggregateStints fans season aggregation out across a bounded worker pool.
// Each (player, season) group is independent, so partitioning by group key is
// safe and the output order is restored by sorting afterwards.
func (p *Pipeline) aggregateStints(ctx context.Context, stintLines []stats.StintLine) ([]stats.SeasonLine, error) {
	type groupKey struct {
		playerID int64
		season   string
	}
	groups := make(map[groupKey][]stats.StintLine)
	for _, line := range stintLines {
		k := groupKey{playerID: line.PlayerID, season: line.Season}
		groups[k] = append(groups[k], line)
	}

	keys := make([]groupKey, 0, len(groups))
	for k := range groups {
		keys = append(keys, k)
	}

	var (
		mu       sync.Mutex
		wg       sync.WaitGroup
		lines    = make([]stats.SeasonLine, 0, len(keys))
		firstErr error
	)
	work := make(chan groupKey)

	for i := 0; i < p.workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for k := range work {
				line, err := aggregate.Season(groups[k])
				mu.Lock()
				if err != nil {
					if firstErr == nil {
						firstErr = fmt.Errorf("aggregate player %d season %s: %w", k.playerID, k.season, err)
					}
				} else {
					lines = append(lines, line)
				}
				mu.Unlock()
			}
		}()
	}

	for _, k := range keys {
		select {
		case work <- k:
		case <-ctx.Done():
			close(work)
			wg.Wait()
			return nil, ctx.Err()
		}
	}
	close(work)
	wg.Wait()

	if firstErr != nil {
		return nil, firstErr
	}

	sort.Slice(lines, func(i, j int) bool {
		if lines[i].Season != lines[j].Season {
			return lines[i].Season < lines[j].Season
		}
		return lines[i].PlayerID < lines[j].PlayerID
	})
	return lines, nil
}

func (p *Pipeline) derive(ctx context.Context, factRows []domainfacts.PlayerSeasonFact, preds valuation.MapSource, report *Report) ([]domainfacts.TeamSeasonSummary, []domainfacts.ValuationRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}

	var (
		wg         sync.WaitGroup
		teamResult teamagg.Result
		valuations []domainfacts.ValuationRecord
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		start := time.Now()
		teamResult = teamagg.Summarize(factRows)
		p.recorder.RecordStage(stageTeams, time.Since(start), nil)
	}()
	go func() {
		defer wg.Done()
		start := time.Now()
		valuations = valuation.Evaluate(factRows, preds)
		p.recorder.RecordStage(stageValuation, time.Since(start), nil)
	}()
	wg.Wait()

	report.TeamExcluded = teamResult.Excluded
	for _, v := range valuations {
		if !v.Ranked() {
			report.Unranked++
		}
	}
	return teamResult.Summaries, valuations, nil
}

func salaryMatchRate(factRows []domainfacts.PlayerSeasonFact) float64 {
	withStats := 0
	matched := 0
	for _, f := range factRows {
		if !f.HasStats {
			continue
		}
		withStats++
		if f.HasSalary {
			matched++
		}
	}
	if withStats == 0 {
		return 0
	}
	return float64(matched) / float64(withStats)
}
