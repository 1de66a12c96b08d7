package main

import (
	"testing"

	domainfacts "github.com/arnavnair220/nba-cap-optimizer/internal/domain/facts"
	"github.com/arnavnair220/nba-cap-optimizer/internal/domain/players"
	"github.com/arnavnair220/nba-cap-optimizer/internal/domain/salaries"
	"github.com/arnavnair220/nba-cap-optimizer/internal/identity"
	"github.com/arnavnair220/nba-cap-optimizer/internal/snapshots"
)

func mergedRegistry(t *testing.T) *identity.Registry {
	t.Helper()
	registry, err := identity.NewRegistryFromPlayers([]players.Player{
		{ID: 1, FullName: "Jalen Williams"},
		{ID: 2, FullName: "Jaylin Williams"},
	})
	if err != nil {
		t.Fatalf("NewRegistryFromPlayers: %v", err)
	}
	if err := registry.Merge(1, 2); err != nil {
		t.Fatalf("Merge: %v", err)
	}
	return registry
}

func TestRekeySnapshotCoalescesCollidingFacts(t *testing.T) {
	registry := mergedRegistry(t)
	snap := snapshots.RunSnapshot{
		Date: "2025-08-29",
		Facts: []domainfacts.PlayerSeasonFact{
			{PlayerID: 1, Season: "2024-25", PrimaryTeam: "OKC", HasStats: true},
			{PlayerID: 2, Season: "2024-25", PrimaryTeam: "TOT"},
			{PlayerID: 2, Season: "2023-24", PrimaryTeam: "OKC"},
		},
	}

	rekeySnapshot(&snap, registry)

	if len(snap.Facts) != 2 {
		t.Fatalf("expected one fact per (player, season), got %d", len(snap.Facts))
	}
	for _, fact := range snap.Facts {
		if fact.PlayerID != 1 {
			t.Fatalf("fact still keyed to %d after merge", fact.PlayerID)
		}
	}
	if snap.Facts[0].Season != "2024-25" || snap.Facts[0].PrimaryTeam != "OKC" {
		t.Fatalf("surviving player's own row must win the collision, got %+v", snap.Facts[0])
	}
	if snap.Facts[1].Season != "2023-24" {
		t.Fatalf("uncontested duplicate season must survive re-keyed, got %+v", snap.Facts[1])
	}
	if len(snap.Players) != 1 || snap.Players[0].ID != 1 {
		t.Fatalf("expected only the surviving player, got %+v", snap.Players)
	}
}

func TestRekeySnapshotPrimaryRowWinsRegardlessOfOrder(t *testing.T) {
	registry := mergedRegistry(t)
	snap := snapshots.RunSnapshot{
		Date: "2025-08-29",
		Valuations: []domainfacts.ValuationRecord{
			{PlayerID: 2, Season: "2024-25", Position: "C"},
			{PlayerID: 1, Season: "2024-25", Position: "F"},
		},
	}

	rekeySnapshot(&snap, registry)

	if len(snap.Valuations) != 1 {
		t.Fatalf("expected one valuation per (player, season), got %d", len(snap.Valuations))
	}
	got := snap.Valuations[0]
	if got.PlayerID != 1 || got.Position != "F" {
		t.Fatalf("expected the primary's own row to win, got %+v", got)
	}
}

func TestRekeySnapshotJoinsCollidingConflicts(t *testing.T) {
	registry := mergedRegistry(t)
	snap := snapshots.RunSnapshot{
		Date: "2025-08-29",
		Conflicts: []salaries.Conflict{
			{PlayerID: 1, Season: "2024-25", Rows: []salaries.Record{
				{PlayerID: 1, Season: "2024-25", AnnualSalary: 4_000_000, Source: "spotrac"},
			}},
			{PlayerID: 2, Season: "2024-25", Rows: []salaries.Record{
				{PlayerID: 2, Season: "2024-25", AnnualSalary: 3_900_000, Source: "hoopshype"},
			}},
		},
	}

	rekeySnapshot(&snap, registry)

	if len(snap.Conflicts) != 1 {
		t.Fatalf("expected colliding conflicts to join, got %d", len(snap.Conflicts))
	}
	joined := snap.Conflicts[0]
	if joined.PlayerID != 1 || len(joined.Rows) != 2 {
		t.Fatalf("expected both audit rows under the surviving id, got %+v", joined)
	}
	if joined.Rows[0].Source != "hoopshype" || joined.Rows[1].Source != "spotrac" {
		t.Fatalf("expected rows sorted by source, got %+v", joined.Rows)
	}
	for _, row := range joined.Rows {
		if row.PlayerID != 1 {
			t.Fatalf("audit row still keyed to %d after merge", row.PlayerID)
		}
	}
}
