package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/arnavnair220/nba-cap-optimizer/internal/timeutil"
)

func newRunCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run <season> [season ...]",
		Short: "Run the reconciliation pipeline for one or more seasons",
		Long:  "Fetches roster, salary, stat, and prediction feeds for the given seasons, reconciles them into player-season facts, and publishes the run snapshot.",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runRun,
	}
}

func runRun(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	for _, season := range args {
		if _, err := timeutil.ParseSeason(season); err != nil {
			return fmt.Errorf("invalid season %q: %w", season, err)
		}
	}

	a, err := buildApp(ctx)
	if err != nil {
		return err
	}
	defer a.close(ctx)

	return a.runSeasons(ctx, args)
}
