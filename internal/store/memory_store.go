package store

import (
	"sync"

	domainfacts "github.com/arnavnair220/nba-cap-optimizer/internal/domain/facts"
)

// Generation is one complete published run. Readers always see a whole
// generation; a run in progress never bleeds into query results.
type Generation struct {
	RunDate    string
	Facts      []domainfacts.PlayerSeasonFact
	Teams      []domainfacts.TeamSeasonSummary
	Valuations []domainfacts.ValuationRecord
}

// MemoryStore keeps the latest published generation in memory behind a
// read/write lock. Replacement is whole-set: ReplaceGeneration swaps every
// slice at once.
type MemoryStore struct {
	mu  sync.RWMutex
	gen Generation
}

// NewMemoryStore constructs an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// ReplaceGeneration swaps in a new run's output wholesale.
func (s *MemoryStore) ReplaceGeneration(gen Generation) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.gen = gen
}

// RunDate returns the date of the currently published generation, or "" when
// nothing has been published.
func (s *MemoryStore) RunDate() string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.gen.RunDate
}

// ListFacts returns a copy of the current player-season facts.
func (s *MemoryStore) ListFacts() []domainfacts.PlayerSeasonFact {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]domainfacts.PlayerSeasonFact, len(s.gen.Facts))
	copy(result, s.gen.Facts)
	return result
}

// ListTeams returns a copy of the current team-season summaries.
func (s *MemoryStore) ListTeams() []domainfacts.TeamSeasonSummary {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]domainfacts.TeamSeasonSummary, len(s.gen.Teams))
	copy(result, s.gen.Teams)
	return result
}

// ListValuations returns a copy of the current valuation records.
func (s *MemoryStore) ListValuations() []domainfacts.ValuationRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]domainfacts.ValuationRecord, len(s.gen.Valuations))
	copy(result, s.gen.Valuations)
	return result
}

// GetFact retrieves a single player-season fact.
func (s *MemoryStore) GetFact(playerID int64, season string) (domainfacts.PlayerSeasonFact, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, f := range s.gen.Facts {
		if f.PlayerID == playerID && f.Season == season {
			return f, true
		}
	}
	return domainfacts.PlayerSeasonFact{}, false
}

// GetTeam retrieves a single team-season summary.
func (s *MemoryStore) GetTeam(team, season string) (domainfacts.TeamSeasonSummary, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, t := range s.gen.Teams {
		if t.Team == team && t.Season == season {
			return t, true
		}
	}
	return domainfacts.TeamSeasonSummary{}, false
}
