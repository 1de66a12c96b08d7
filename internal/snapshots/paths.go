package snapshots

import (
	"fmt"
	"path/filepath"
)

type snapshotKind string

const (
	kindPlayers    snapshotKind = "players"
	kindFacts      snapshotKind = "facts"
	kindTeams      snapshotKind = "teams"
	kindValuations snapshotKind = "valuations"
	kindConflicts  snapshotKind = "conflicts"
)

var allKinds = []snapshotKind{kindPlayers, kindFacts, kindTeams, kindValuations, kindConflicts}

// SnapshotPath builds the path to one kind's snapshot for a given date.
func snapshotPath(basePath string, kind snapshotKind, date string) string {
	return filepath.Join(basePath, string(kind), fmt.Sprintf("%s.json", date))
}
