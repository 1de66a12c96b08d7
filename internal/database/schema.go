package database

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS players (
		id         BIGINT PRIMARY KEY,
		full_name  TEXT NOT NULL,
		aliases    TEXT[] NOT NULL DEFAULT '{}'
	)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS players_full_name_idx ON players (full_name)`,
	`CREATE TABLE IF NOT EXISTS player_season_facts (
		player_id     BIGINT NOT NULL REFERENCES players (id),
		season        TEXT NOT NULL,
		primary_team  TEXT NOT NULL DEFAULT '',
		position      TEXT NOT NULL DEFAULT '',
		age           INT,
		games_played  INT,
		minutes       DOUBLE PRECISION,
		per_game      JSONB NOT NULL DEFAULT '{}',
		advanced      JSONB NOT NULL DEFAULT '{}',
		annual_salary BIGINT,
		salary_source TEXT NOT NULL DEFAULT '',
		has_stats     BOOLEAN NOT NULL DEFAULT FALSE,
		has_salary    BOOLEAN NOT NULL DEFAULT FALSE,
		PRIMARY KEY (player_id, season)
	)`,
	`CREATE TABLE IF NOT EXISTS team_season_summaries (
		team               TEXT NOT NULL,
		season             TEXT NOT NULL,
		total_payroll      BIGINT NOT NULL DEFAULT 0,
		roster_count       INT NOT NULL DEFAULT 0,
		roster_with_salary INT NOT NULL DEFAULT 0,
		avg_salary         DOUBLE PRECISION,
		min_salary         BIGINT,
		max_salary         BIGINT,
		top_paid_player_id BIGINT,
		top_paid_salary    BIGINT,
		total_points       DOUBLE PRECISION,
		total_rebounds     DOUBLE PRECISION,
		total_assists      DOUBLE PRECISION,
		avg_points         DOUBLE PRECISION,
		avg_rebounds       DOUBLE PRECISION,
		avg_assists        DOUBLE PRECISION,
		PRIMARY KEY (team, season)
	)`,
	`CREATE TABLE IF NOT EXISTS valuations (
		player_id       BIGINT NOT NULL,
		season          TEXT NOT NULL,
		position        TEXT NOT NULL DEFAULT '',
		predicted_value DOUBLE PRECISION,
		actual_salary   BIGINT,
		deviation_abs   DOUBLE PRECISION,
		deviation_pct   DOUBLE PRECISION,
		league_rank     INT,
		position_rank   INT,
		PRIMARY KEY (player_id, season)
	)`,
	`CREATE TABLE IF NOT EXISTS salary_conflicts (
		player_id BIGINT NOT NULL,
		season    TEXT NOT NULL,
		rows      JSONB NOT NULL DEFAULT '[]',
		PRIMARY KEY (player_id, season)
	)`,
}

// EnsureSchema creates the sink tables when they do not exist yet.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	for _, stmt := range schemaStatements {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}
