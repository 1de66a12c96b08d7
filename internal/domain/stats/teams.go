package stats

// basketball-reference abbreviations that differ from the NBA API spelling.
var abbreviationRemap = map[string]string{
	"BRK": "BKN",
	"CHO": "CHA",
	"PHO": "PHX",
}

// NormalizeTeam maps source team abbreviations onto the canonical NBA form.
// Unknown abbreviations pass through unchanged.
func NormalizeTeam(abbrev string) string {
	if canonical, ok := abbreviationRemap[abbrev]; ok {
		return canonical
	}
	return abbrev
}
