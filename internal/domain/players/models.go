package players

// Player is the canonical identity every name variant resolves to.
// Aliases holds each raw spelling observed across sources; the slice is kept
// sorted so serialized players compare byte-for-byte across runs.
type Player struct {
	ID       int64    `json:"id"`
	FullName string   `json:"fullName"`
	Aliases  []string `json:"aliases"`
}

// HasAlias reports whether the exact raw spelling is already attached.
func (p Player) HasAlias(raw string) bool {
	for _, a := range p.Aliases {
		if a == raw {
			return true
		}
	}
	return false
}
