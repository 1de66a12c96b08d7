package identity

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/arnavnair220/nba-cap-optimizer/internal/domain/players"
)

// ErrUnresolvable marks a raw name that normalizes to nothing; the row is
// rejected and counted, the batch continues.
var ErrUnresolvable = errors.New("identity: name cannot be normalized")

// Registry is the explicit mutable alias index every source name passes
// through. Resolution order: exact alias match, normalized match, then a new
// Player. An alias, once attached, stays with its player for the life of the
// dataset; only Merge re-points it.
//
// Two real people whose names normalize identically collapse to one player.
// That ambiguity is a known limitation of name-keyed sources; Merge (and alias
// overrides) are the correction path.
type Registry struct {
	mu      sync.RWMutex
	players map[int64]*players.Player
	byAlias map[string]int64
	byNorm  map[string]int64
	merged  map[int64]int64
	nextID  int64
}

// NewRegistry constructs an empty Registry.
func NewRegistry() *Registry {
	return &Registry{
		players: make(map[int64]*players.Player),
		byAlias: make(map[string]int64),
		byNorm:  make(map[string]int64),
		merged:  make(map[int64]int64),
		nextID:  1,
	}
}

// NewRegistryFromPlayers rebuilds a Registry from a persisted player set.
func NewRegistryFromPlayers(list []players.Player) (*Registry, error) {
	r := NewRegistry()
	for _, p := range list {
		if p.ID <= 0 {
			return nil, fmt.Errorf("identity: player %q has invalid id %d", p.FullName, p.ID)
		}
		if _, ok := r.players[p.ID]; ok {
			return nil, fmt.Errorf("identity: duplicate player id %d", p.ID)
		}
		cp := p
		cp.Aliases = append([]string(nil), p.Aliases...)
		sort.Strings(cp.Aliases)
		r.players[p.ID] = &cp
		if p.ID >= r.nextID {
			r.nextID = p.ID + 1
		}
		for _, alias := range cp.Aliases {
			if owner, ok := r.byAlias[alias]; ok && owner != p.ID {
				return nil, fmt.Errorf("identity: alias %q claimed by players %d and %d", alias, owner, p.ID)
			}
			r.byAlias[alias] = p.ID
			if n := Normalize(alias); n != "" {
				if owner, ok := r.byNorm[n]; ok && owner != p.ID {
					return nil, fmt.Errorf("identity: normalized alias %q claimed by players %d and %d", n, owner, p.ID)
				}
				r.byNorm[n] = p.ID
			}
		}
	}
	return r, nil
}

// Resolve maps a raw name to its canonical player id, creating a Player on
// first sighting. Growth of the alias set is the only mutation resolution
// performs.
func (r *Registry) Resolve(rawName string) (int64, error) {
	normalized := Normalize(rawName)
	if normalized == "" {
		return 0, fmt.Errorf("%w: %q", ErrUnresolvable, rawName)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if id, ok := r.byAlias[rawName]; ok {
		return r.canonicalLocked(id), nil
	}
	if id, ok := r.byNorm[normalized]; ok {
		id = r.canonicalLocked(id)
		r.attachLocked(id, rawName)
		return id, nil
	}

	id := r.nextID
	r.nextID++
	p := &players.Player{
		ID:       id,
		FullName: DisplayName(rawName),
		Aliases:  []string{rawName},
	}
	r.players[id] = p
	r.byAlias[rawName] = id
	r.byNorm[normalized] = id
	return id, nil
}

// AddAlias pins a raw spelling to an existing player, for operator overrides
// where normalization alone matches the wrong person or nobody.
func (r *Registry) AddAlias(rawName string, id int64) error {
	normalized := Normalize(rawName)
	if normalized == "" {
		return fmt.Errorf("%w: %q", ErrUnresolvable, rawName)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	id = r.canonicalLocked(id)
	if _, ok := r.players[id]; !ok {
		return fmt.Errorf("identity: no player with id %d", id)
	}
	if owner, ok := r.byAlias[rawName]; ok {
		if r.canonicalLocked(owner) == id {
			return nil
		}
		return fmt.Errorf("identity: alias %q already attached to player %d", rawName, owner)
	}
	r.attachLocked(id, rawName)
	r.byNorm[normalized] = id
	return nil
}

// Merge consolidates the duplicate player into the primary: alias sets join,
// every index entry re-points, and subsequent lookups of the retired id follow
// to the primary. Merging an already-merged pair is a no-op.
func (r *Registry) Merge(primary, duplicate int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	primary = r.canonicalLocked(primary)
	duplicate = r.canonicalLocked(duplicate)
	if primary == duplicate {
		return nil
	}
	dst, ok := r.players[primary]
	if !ok {
		return fmt.Errorf("identity: no player with id %d", primary)
	}
	src, ok := r.players[duplicate]
	if !ok {
		return fmt.Errorf("identity: no player with id %d", duplicate)
	}

	for _, alias := range src.Aliases {
		r.byAlias[alias] = primary
		if n := Normalize(alias); n != "" {
			r.byNorm[n] = primary
		}
		if !dst.HasAlias(alias) {
			dst.Aliases = append(dst.Aliases, alias)
		}
	}
	sort.Strings(dst.Aliases)
	delete(r.players, duplicate)
	r.merged[duplicate] = primary
	return nil
}

// Canonical follows merge chains to the surviving player id.
func (r *Registry) Canonical(id int64) int64 {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.canonicalLocked(id)
}

// Player returns a copy of the player with the given id, following merges.
func (r *Registry) Player(id int64) (players.Player, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.players[r.canonicalLocked(id)]
	if !ok {
		return players.Player{}, false
	}
	cp := *p
	cp.Aliases = append([]string(nil), p.Aliases...)
	return cp, true
}

// Players returns every canonical player sorted by id.
func (r *Registry) Players() []players.Player {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]players.Player, 0, len(r.players))
	for _, p := range r.players {
		cp := *p
		cp.Aliases = append([]string(nil), p.Aliases...)
		result = append(result, cp)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result
}

// Len reports the number of canonical players.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.players)
}

func (r *Registry) attachLocked(id int64, rawName string) {
	r.byAlias[rawName] = id
	p := r.players[id]
	if p.HasAlias(rawName) {
		return
	}
	p.Aliases = append(p.Aliases, rawName)
	sort.Strings(p.Aliases)
}

func (r *Registry) canonicalLocked(id int64) int64 {
	for {
		next, ok := r.merged[id]
		if !ok {
			return id
		}
		id = next
	}
}
