package database

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/arnavnair220/nba-cap-optimizer/internal/snapshots"
)

// Sink upserts run output into PostgreSQL.
type Sink struct {
	pool *pgxpool.Pool
}

func NewSink(pool *pgxpool.Pool) *Sink {
	return &Sink{pool: pool}
}

// PublishRun writes every kind of the run inside one transaction. Keys are
// upserted rather than appended: a rerun for the same seasons replaces the
// prior rows for those keys. Conflicts recorded in earlier runs are cleared
// first so the table always reflects the latest run only.
func (s *Sink) PublishRun(ctx context.Context, snap snapshots.RunSnapshot) error {
	if s == nil || s.pool == nil {
		return fmt.Errorf("database sink not configured")
	}

	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := upsertPlayers(ctx, tx, snap); err != nil {
		return fmt.Errorf("players: %w", err)
	}
	if err := upsertFacts(ctx, tx, snap); err != nil {
		return fmt.Errorf("facts: %w", err)
	}
	if err := upsertTeams(ctx, tx, snap); err != nil {
		return fmt.Errorf("teams: %w", err)
	}
	if err := upsertValuations(ctx, tx, snap); err != nil {
		return fmt.Errorf("valuations: %w", err)
	}
	if err := replaceConflicts(ctx, tx, snap); err != nil {
		return fmt.Errorf("conflicts: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

func upsertPlayers(ctx context.Context, tx pgx.Tx, snap snapshots.RunSnapshot) error {
	const q = `INSERT INTO players (id, full_name, aliases)
		VALUES ($1, $2, $3)
		ON CONFLICT (id) DO UPDATE SET
			full_name = EXCLUDED.full_name,
			aliases   = EXCLUDED.aliases`
	for _, p := range snap.Players {
		if _, err := tx.Exec(ctx, q, p.ID, p.FullName, p.Aliases); err != nil {
			return err
		}
	}
	return nil
}

func upsertFacts(ctx context.Context, tx pgx.Tx, snap snapshots.RunSnapshot) error {
	const q = `INSERT INTO player_season_facts (
			player_id, season, primary_team, position, age, games_played, minutes,
			per_game, advanced, annual_salary, salary_source, has_stats, has_salary
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8::jsonb, $9::jsonb, $10, $11, $12, $13)
		ON CONFLICT (player_id, season) DO UPDATE SET
			primary_team  = EXCLUDED.primary_team,
			position      = EXCLUDED.position,
			age           = EXCLUDED.age,
			games_played  = EXCLUDED.games_played,
			minutes       = EXCLUDED.minutes,
			per_game      = EXCLUDED.per_game,
			advanced      = EXCLUDED.advanced,
			annual_salary = EXCLUDED.annual_salary,
			salary_source = EXCLUDED.salary_source,
			has_stats     = EXCLUDED.has_stats,
			has_salary    = EXCLUDED.has_salary`
	for _, f := range snap.Facts {
		perGame, err := json.Marshal(f.PerGame)
		if err != nil {
			return err
		}
		advanced, err := json.Marshal(f.Advanced)
		if err != nil {
			return err
		}
		_, err = tx.Exec(ctx, q,
			f.PlayerID, f.Season, f.PrimaryTeam, f.Position, f.Age, f.GamesPlayed, f.Minutes,
			string(perGame), string(advanced), f.AnnualSalary, f.SalarySource, f.HasStats, f.HasSalary,
		)
		if err != nil {
			return err
		}
	}
	return nil
}

func upsertTeams(ctx context.Context, tx pgx.Tx, snap snapshots.RunSnapshot) error {
	const q = `INSERT INTO team_season_summaries (
			team, season, total_payroll, roster_count, roster_with_salary,
			avg_salary, min_salary, max_salary, top_paid_player_id, top_paid_salary,
			total_points, total_rebounds, total_assists, avg_points, avg_rebounds, avg_assists
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
		ON CONFLICT (team, season) DO UPDATE SET
			total_payroll      = EXCLUDED.total_payroll,
			roster_count       = EXCLUDED.roster_count,
			roster_with_salary = EXCLUDED.roster_with_salary,
			avg_salary         = EXCLUDED.avg_salary,
			min_salary         = EXCLUDED.min_salary,
			max_salary         = EXCLUDED.max_salary,
			top_paid_player_id = EXCLUDED.top_paid_player_id,
			top_paid_salary    = EXCLUDED.top_paid_salary,
			total_points       = EXCLUDED.total_points,
			total_rebounds     = EXCLUDED.total_rebounds,
			total_assists      = EXCLUDED.total_assists,
			avg_points         = EXCLUDED.avg_points,
			avg_rebounds       = EXCLUDED.avg_rebounds,
			avg_assists        = EXCLUDED.avg_assists`
	for _, team := range snap.Teams {
		_, err := tx.Exec(ctx, q,
			team.Team, team.Season, team.TotalPayroll, team.RosterCount, team.RosterWithSalary,
			team.AvgSalary, team.MinSalary, team.MaxSalary, team.TopPaidPlayerID, team.TopPaidSalary,
			team.TotalPoints, team.TotalRebounds, team.TotalAssists, team.AvgPoints, team.AvgRebounds, team.AvgAssists,
		)
		if err != nil {
			return err
		}
	}
	return nil
}

func upsertValuations(ctx context.Context, tx pgx.Tx, snap snapshots.RunSnapshot) error {
	const q = `INSERT INTO valuations (
			player_id, season, position, predicted_value, actual_salary,
			deviation_abs, deviation_pct, league_rank, position_rank
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (player_id, season) DO UPDATE SET
			position        = EXCLUDED.position,
			predicted_value = EXCLUDED.predicted_value,
			actual_salary   = EXCLUDED.actual_salary,
			deviation_abs   = EXCLUDED.deviation_abs,
			deviation_pct   = EXCLUDED.deviation_pct,
			league_rank     = EXCLUDED.league_rank,
			position_rank   = EXCLUDED.position_rank`
	for _, v := range snap.Valuations {
		_, err := tx.Exec(ctx, q,
			v.PlayerID, v.Season, v.Position, v.PredictedValue, v.ActualSalary,
			v.DeviationAbs, v.DeviationPct, v.LeagueRank, v.PositionRank,
		)
		if err != nil {
			return err
		}
	}
	return nil
}

func replaceConflicts(ctx context.Context, tx pgx.Tx, snap snapshots.RunSnapshot) error {
	if _, err := tx.Exec(ctx, `DELETE FROM salary_conflicts`); err != nil {
		return err
	}
	const q = `INSERT INTO salary_conflicts (player_id, season, rows)
		VALUES ($1, $2, $3::jsonb)`
	for _, c := range snap.Conflicts {
		rows, err := json.Marshal(c.Rows)
		if err != nil {
			return err
		}
		if _, err := tx.Exec(ctx, q, c.PlayerID, c.Season, string(rows)); err != nil {
			return err
		}
	}
	return nil
}
