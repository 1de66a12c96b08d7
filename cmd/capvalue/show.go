package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/arnavnair220/nba-cap-optimizer/internal/store"
)

func newShowCmd() *cobra.Command {
	var team, season string

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Inspect the latest published run",
		Long:  "Loads the latest run snapshot and prints team summaries and valuation extremes, optionally filtered by team and season.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := buildApp(cmd.Context())
			if err != nil {
				return err
			}
			defer a.close(cmd.Context())

			latest, err := a.store.LatestDate()
			if err != nil {
				return err
			}
			if latest == "" {
				return fmt.Errorf("no published run to show")
			}

			snap, err := a.store.LoadRun(latest)
			if err != nil {
				return err
			}

			mem := store.NewMemoryStore()
			mem.ReplaceGeneration(store.Generation{
				RunDate:    snap.Date,
				Facts:      snap.Facts,
				Teams:      snap.Teams,
				Valuations: snap.Valuations,
			})

			fmt.Printf("run %s: %d facts, %d team summaries, %d valuations\n",
				mem.RunDate(), len(mem.ListFacts()), len(mem.ListTeams()), len(mem.ListValuations()))

			if team != "" && season != "" {
				summary, ok := mem.GetTeam(team, season)
				if !ok {
					return fmt.Errorf("no summary for %s %s", team, season)
				}
				fmt.Printf("%s %s: payroll %d across %d players (%d salaried)\n",
					summary.Team, summary.Season, summary.TotalPayroll, summary.RosterCount, summary.RosterWithSalary)
				return nil
			}

			for _, summary := range mem.ListTeams() {
				if team != "" && summary.Team != team {
					continue
				}
				if season != "" && summary.Season != season {
					continue
				}
				fmt.Printf("%s %s: payroll %d, roster %d\n",
					summary.Team, summary.Season, summary.TotalPayroll, summary.RosterCount)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&team, "team", "", "Filter by team abbreviation")
	cmd.Flags().StringVar(&season, "season", "", "Filter by season, e.g. 2024-25")

	return cmd
}
