package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/arnavnair220/nba-cap-optimizer/internal/timeutil"
)

func newBackfillCmd() *cobra.Command {
	var first, last string

	cmd := &cobra.Command{
		Use:   "backfill",
		Short: "Run the pipeline across a contiguous range of seasons",
		Long:  "Expands --first through --last into the full season list and runs the pipeline once over all of them, so cross-season output is published atomically.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			seasons, err := timeutil.SeasonRange(first, last)
			if err != nil {
				return err
			}

			a, err := buildApp(cmd.Context())
			if err != nil {
				return err
			}
			defer a.close(cmd.Context())

			fmt.Printf("backfilling %d seasons (%s through %s)\n", len(seasons), first, last)
			return a.runSeasons(cmd.Context(), seasons)
		},
	}

	cmd.Flags().StringVar(&first, "first", "", "First season of the range, e.g. 2015-16 (required)")
	cmd.Flags().StringVar(&last, "last", "", "Last season of the range, e.g. 2024-25 (required)")
	_ = cmd.MarkFlagRequired("first")
	_ = cmd.MarkFlagRequired("last")

	return cmd
}
