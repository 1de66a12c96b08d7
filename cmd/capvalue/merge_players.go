package main

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/spf13/cobra"

	domainfacts "github.com/arnavnair220/nba-cap-optimizer/internal/domain/facts"
	"github.com/arnavnair220/nba-cap-optimizer/internal/domain/salaries"
	"github.com/arnavnair220/nba-cap-optimizer/internal/identity"
	"github.com/arnavnair220/nba-cap-optimizer/internal/snapshots"
)

func newMergePlayersCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "merge-players <primary-id> <duplicate-id>",
		Short: "Manually merge two canonical players",
		Long:  "Re-points every alias of the duplicate player at the primary and republishes the latest snapshot. Use when automatic normalization created two players for one person.",
		Args:  cobra.ExactArgs(2),
		RunE:  runMergePlayers,
	}
}

func runMergePlayers(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	primary, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid primary id %q: %w", args[0], err)
	}
	duplicate, err := strconv.ParseInt(args[1], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid duplicate id %q: %w", args[1], err)
	}

	a, err := buildApp(ctx)
	if err != nil {
		return err
	}
	defer a.close(ctx)

	latest, err := a.store.LatestDate()
	if err != nil {
		return err
	}
	if latest == "" {
		return fmt.Errorf("no published run to merge against")
	}

	snap, err := a.store.LoadRun(latest)
	if err != nil {
		return err
	}

	registry, err := identity.NewRegistryFromPlayers(snap.Players)
	if err != nil {
		return err
	}
	if err := registry.Merge(primary, duplicate); err != nil {
		return err
	}

	rekeySnapshot(&snap, registry)

	if err := a.writer.WriteRun(snap); err != nil {
		return fmt.Errorf("republishing snapshot: %w", err)
	}

	fmt.Printf("merged player %d into %d and republished the latest snapshot\n", duplicate, primary)
	return nil
}

// rekeySnapshot re-points every derived row at its merged canonical id and
// keeps one row per (player, season) where the merge made keys collide.
func rekeySnapshot(snap *snapshots.RunSnapshot, registry *identity.Registry) {
	snap.Players = registry.Players()
	snap.Facts = coalesce(snap.Facts, registry,
		func(f *domainfacts.PlayerSeasonFact) *int64 { return &f.PlayerID },
		func(f *domainfacts.PlayerSeasonFact) string { return f.Season })
	snap.Valuations = coalesce(snap.Valuations, registry,
		func(v *domainfacts.ValuationRecord) *int64 { return &v.PlayerID },
		func(v *domainfacts.ValuationRecord) string { return v.Season })
	snap.Conflicts = coalesceConflicts(snap.Conflicts, registry)
}

// coalesce re-keys rows by canonical id, dropping collisions: the surviving
// player's own row wins over a row re-pointed from a merged duplicate, so a
// duplicate's row only survives for seasons the primary never covered.
func coalesce[T any](rows []T, registry *identity.Registry, id func(*T) *int64, season func(*T) string) []T {
	type key struct {
		playerID int64
		season   string
	}
	seen := make(map[key]int, len(rows))
	out := make([]T, 0, len(rows))
	for _, row := range rows {
		owned := *id(&row)
		*id(&row) = registry.Canonical(owned)
		k := key{*id(&row), season(&row)}
		if i, ok := seen[k]; ok {
			if owned == k.playerID {
				out[i] = row
			}
			continue
		}
		seen[k] = len(out)
		out = append(out, row)
	}
	return out
}

// coalesceConflicts re-keys audit rows and joins colliding row lists so no
// disagreeing source figure disappears from the trail.
func coalesceConflicts(conflicts []salaries.Conflict, registry *identity.Registry) []salaries.Conflict {
	type key struct {
		playerID int64
		season   string
	}
	seen := make(map[key]int, len(conflicts))
	out := make([]salaries.Conflict, 0, len(conflicts))
	for _, c := range conflicts {
		c.PlayerID = registry.Canonical(c.PlayerID)
		for i := range c.Rows {
			c.Rows[i].PlayerID = c.PlayerID
		}
		k := key{c.PlayerID, c.Season}
		if i, ok := seen[k]; ok {
			merged := &out[i]
			merged.Rows = append(merged.Rows, c.Rows...)
			sort.Slice(merged.Rows, func(a, b int) bool {
				if merged.Rows[a].Source != merged.Rows[b].Source {
					return merged.Rows[a].Source < merged.Rows[b].Source
				}
				return merged.Rows[a].AnnualSalary < merged.Rows[b].AnnualSalary
			})
			continue
		}
		seen[k] = len(out)
		out = append(out, c)
	}
	return out
}
