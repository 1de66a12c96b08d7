package snapshots

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/arnavnair220/nba-cap-optimizer/internal/domain/players"
)

// FSStore reads previously published run snapshots back from disk.
type FSStore struct {
	basePath string
}

func NewFSStore(basePath string) *FSStore {
	return &FSStore{basePath: basePath}
}

// LatestDate returns the most recent published run date, or "" when no run
// has been published yet.
func (s *FSStore) LatestDate() (string, error) {
	m, err := readManifest(filepath.Join(s.basePath, "manifest.json"), 0)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", err
	}
	if len(m.Runs.Dates) == 0 {
		return "", nil
	}
	return m.Runs.Dates[len(m.Runs.Dates)-1], nil
}

// LoadRun reads every kind published for the given date.
func (s *FSStore) LoadRun(date string) (RunSnapshot, error) {
	snap := RunSnapshot{Date: date}

	var pp playersPayload
	if err := s.loadKind(kindPlayers, date, &pp); err != nil {
		return RunSnapshot{}, err
	}
	var fp factsPayload
	if err := s.loadKind(kindFacts, date, &fp); err != nil {
		return RunSnapshot{}, err
	}
	var tp teamsPayload
	if err := s.loadKind(kindTeams, date, &tp); err != nil {
		return RunSnapshot{}, err
	}
	var vp valuationsPayload
	if err := s.loadKind(kindValuations, date, &vp); err != nil {
		return RunSnapshot{}, err
	}
	var cp conflictsPayload
	if err := s.loadKind(kindConflicts, date, &cp); err != nil {
		return RunSnapshot{}, err
	}

	snap.Players = pp.Players
	snap.Facts = fp.Facts
	snap.Teams = tp.Teams
	snap.Valuations = vp.Valuations
	snap.Conflicts = cp.Conflicts
	return snap, nil
}

// LoadPlayers reads just the identity registry kind for the given date. Used
// to carry canonical IDs forward across runs without loading the full run.
func (s *FSStore) LoadPlayers(date string) ([]players.Player, error) {
	var pp playersPayload
	if err := s.loadKind(kindPlayers, date, &pp); err != nil {
		return nil, err
	}
	return pp.Players, nil
}

func (s *FSStore) loadKind(kind snapshotKind, date string, out any) error {
	path := snapshotPath(s.basePath, kind, date)
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open %s snapshot for %s: %w", kind, date, err)
	}
	defer f.Close()
	if err := json.NewDecoder(f).Decode(out); err != nil {
		return fmt.Errorf("decode %s snapshot for %s: %w", kind, date, err)
	}
	return nil
}
