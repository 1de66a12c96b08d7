package snapshots

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	domainfacts "github.com/arnavnair220/nba-cap-optimizer/internal/domain/facts"
	"github.com/arnavnair220/nba-cap-optimizer/internal/domain/players"
	"github.com/arnavnair220/nba-cap-optimizer/internal/domain/salaries"
	"github.com/arnavnair220/nba-cap-optimizer/internal/timeutil"
)

// RunSnapshot is one run's complete replacement output. Downstream consumers
// see either all of it or the previous generation unchanged.
type RunSnapshot struct {
	Date       string                          `json:"date"`
	Players    []players.Player                `json:"players"`
	Facts      []domainfacts.PlayerSeasonFact  `json:"facts"`
	Teams      []domainfacts.TeamSeasonSummary `json:"teams"`
	Valuations []domainfacts.ValuationRecord   `json:"valuations"`
	Conflicts  []salaries.Conflict             `json:"conflicts"`
}

// Writer persists run snapshots and the manifest with pruning.
type Writer struct {
	basePath      string
	retentionDays int
}

// NewWriter constructs a writer rooted at basePath with a rolling window retention.
func NewWriter(basePath string, retentionDays int) *Writer {
	if retentionDays <= 0 {
		retentionDays = 14
	}
	return &Writer{
		basePath:      basePath,
		retentionDays: retentionDays,
	}
}

// BasePath exposes the writer root path (primarily for testing).
func (w *Writer) BasePath() string {
	if w == nil {
		return ""
	}
	return w.basePath
}

// WriteRun publishes every kind for the run date. All files are staged as
// temporaries first and renamed only once each stage succeeded, so a failed
// run never replaces a prior generation with a partial one. Payload slices are
// sorted before encoding so identical runs produce byte-identical snapshots.
func (w *Writer) WriteRun(snap RunSnapshot) error {
	if w == nil {
		return fmt.Errorf("snapshot writer not configured")
	}
	if snap.Date == "" {
		return fmt.Errorf("snapshot date required")
	}
	sortSnapshot(&snap)

	staged := make(map[snapshotKind]string, len(allKinds))
	cleanup := func() {
		for _, tmp := range staged {
			_ = os.Remove(tmp)
		}
	}

	for _, kind := range allKinds {
		target := snapshotPath(w.basePath, kind, snap.Date)
		if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
			cleanup()
			return err
		}
		data, err := json.MarshalIndent(kindPayload(kind, snap), "", "  ")
		if err != nil {
			cleanup()
			return err
		}
		tmp := target + ".tmp"
		if err := os.WriteFile(tmp, data, 0o644); err != nil {
			cleanup()
			return err
		}
		staged[kind] = tmp
	}

	for _, kind := range allKinds {
		target := snapshotPath(w.basePath, kind, snap.Date)
		if err := os.Rename(staged[kind], target); err != nil {
			cleanup()
			return err
		}
		delete(staged, kind)
	}

	return w.updateManifest(snap.Date)
}

type playersPayload struct {
	Date    string           `json:"date"`
	Players []players.Player `json:"players"`
}

type factsPayload struct {
	Date  string                         `json:"date"`
	Facts []domainfacts.PlayerSeasonFact `json:"facts"`
}

type teamsPayload struct {
	Date  string                          `json:"date"`
	Teams []domainfacts.TeamSeasonSummary `json:"teams"`
}

type valuationsPayload struct {
	Date       string                        `json:"date"`
	Valuations []domainfacts.ValuationRecord `json:"valuations"`
}

type conflictsPayload struct {
	Date      string              `json:"date"`
	Conflicts []salaries.Conflict `json:"conflicts"`
}

func kindPayload(kind snapshotKind, snap RunSnapshot) any {
	switch kind {
	case kindPlayers:
		return playersPayload{Date: snap.Date, Players: snap.Players}
	case kindFacts:
		return factsPayload{Date: snap.Date, Facts: snap.Facts}
	case kindTeams:
		return teamsPayload{Date: snap.Date, Teams: snap.Teams}
	case kindValuations:
		return valuationsPayload{Date: snap.Date, Valuations: snap.Valuations}
	case kindConflicts:
		return conflictsPayload{Date: snap.Date, Conflicts: snap.Conflicts}
	default:
		return nil
	}
}

func sortSnapshot(snap *RunSnapshot) {
	sort.Slice(snap.Players, func(i, j int) bool { return snap.Players[i].ID < snap.Players[j].ID })
	sort.Slice(snap.Facts, func(i, j int) bool {
		if snap.Facts[i].Season != snap.Facts[j].Season {
			return snap.Facts[i].Season < snap.Facts[j].Season
		}
		return snap.Facts[i].PlayerID < snap.Facts[j].PlayerID
	})
	sort.Slice(snap.Teams, func(i, j int) bool {
		if snap.Teams[i].Season != snap.Teams[j].Season {
			return snap.Teams[i].Season < snap.Teams[j].Season
		}
		return snap.Teams[i].Team < snap.Teams[j].Team
	})
	sort.Slice(snap.Valuations, func(i, j int) bool {
		if snap.Valuations[i].Season != snap.Valuations[j].Season {
			return snap.Valuations[i].Season < snap.Valuations[j].Season
		}
		return snap.Valuations[i].PlayerID < snap.Valuations[j].PlayerID
	})
	sort.Slice(snap.Conflicts, func(i, j int) bool {
		if snap.Conflicts[i].Season != snap.Conflicts[j].Season {
			return snap.Conflicts[i].Season < snap.Conflicts[j].Season
		}
		return snap.Conflicts[i].PlayerID < snap.Conflicts[j].PlayerID
	})
}

func (w *Writer) updateManifest(date string) error {
	manifestPath := filepath.Join(w.basePath, "manifest.json")
	m, _ := readManifest(manifestPath, w.retentionDays)
	now := time.Now().UTC()

	dates, err := w.listDates()
	if err != nil {
		return err
	}
	if !containsDate(dates, date) {
		dates = append(dates, date)
	}
	pruned, err := w.pruneOldSnapshots(dates)
	if err != nil {
		return err
	}

	m.Runs.Dates = pruned
	m.Runs.LastRefreshed = now
	m.Retention.Days = w.retentionDays

	return writeManifest(w.basePath, m)
}

func containsDate(dates []string, date string) bool {
	for _, d := range dates {
		if d == date {
			return true
		}
	}
	return false
}

func (w *Writer) listDates() ([]string, error) {
	seen := make(map[string]struct{})
	var dates []string
	for _, kind := range allKinds {
		dir := filepath.Join(w.basePath, string(kind))
		entries, err := os.ReadDir(dir)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, err
		}
		for _, e := range entries {
			if e.IsDir() {
				continue
			}
			name := e.Name()
			if filepath.Ext(name) != ".json" {
				continue
			}
			base := name[:len(name)-len(".json")]
			if _, ok := seen[base]; ok {
				continue
			}
			seen[base] = struct{}{}
			dates = append(dates, base)
		}
	}
	sort.Strings(dates)
	return dates, nil
}

func (w *Writer) pruneOldSnapshots(dates []string) ([]string, error) {
	now := time.Now().UTC()
	cutoff := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC).AddDate(0, 0, -w.retentionDays)
	var keep []string
	for _, d := range dates {
		parsed, err := timeutil.ParseDate(d)
		if err != nil {
			keep = append(keep, d)
			continue
		}
		if parsed.Before(cutoff) {
			for _, kind := range allKinds {
				_ = os.Remove(snapshotPath(w.basePath, kind, d))
			}
			continue
		}
		keep = append(keep, d)
	}
	sort.Strings(keep)
	return keep, nil
}
