package stats

// MultiTeamMarker is the pseudo-team some sources use for a precomputed
// season-total row covering every stint of a traded player.
const MultiTeamMarker = "TOT"

// PerGame holds the per-game rate columns of the persisted schema.
// Every field is optional: feeds differ in completeness and a nil value means
// the source did not report the stat, not that it was zero.
type PerGame struct {
	Points      *float64 `json:"points"`
	Rebounds    *float64 `json:"rebounds"`
	OffRebounds *float64 `json:"oreb"`
	DefRebounds *float64 `json:"dreb"`
	Assists     *float64 `json:"assists"`
	Steals      *float64 `json:"steals"`
	Blocks      *float64 `json:"blocks"`
	Turnovers   *float64 `json:"turnovers"`
	Fouls       *float64 `json:"fouls"`
	FGM         *float64 `json:"fgm"`
	FGA         *float64 `json:"fga"`
	FGPct       *float64 `json:"fgPct"`
	FG3M        *float64 `json:"fg3m"`
	FG3A        *float64 `json:"fg3a"`
	FG3Pct      *float64 `json:"fg3Pct"`
	FG2M        *float64 `json:"fg2m"`
	FG2A        *float64 `json:"fg2a"`
	FG2Pct      *float64 `json:"fg2Pct"`
	FTM         *float64 `json:"ftm"`
	FTA         *float64 `json:"fta"`
	FTPct       *float64 `json:"ftPct"`
}

// Advanced holds the advanced-metric columns. Cumulative metrics (WS, OWS,
// DWS, VORP) sum across stints; the rest are rates and recombine as weighted
// averages.
type Advanced struct {
	PER    *float64 `json:"per"`
	TSPct  *float64 `json:"tsPct"`
	EFGPct *float64 `json:"efgPct"`
	USGPct *float64 `json:"usgPct"`
	WS     *float64 `json:"ws"`
	OWS    *float64 `json:"ows"`
	DWS    *float64 `json:"dws"`
	WS48   *float64 `json:"wsPer48"`
	BPM    *float64 `json:"bpm"`
	OBPM   *float64 `json:"obpm"`
	DBPM   *float64 `json:"dbpm"`
	VORP   *float64 `json:"vorp"`
	ORBPct *float64 `json:"orbPct"`
	DRBPct *float64 `json:"drbPct"`
	TRBPct *float64 `json:"trbPct"`
	ASTPct *float64 `json:"astPct"`
	STLPct *float64 `json:"stlPct"`
	BLKPct *float64 `json:"blkPct"`
	TOVPct *float64 `json:"tovPct"`
}

// StintLine is one resolved (player, season, team) stat row. Seq preserves the
// source row order, which the feeds emit chronologically; it breaks
// primary-team ties for players traded twice into equal minutes.
type StintLine struct {
	PlayerID    int64    `json:"playerId"`
	Season      string   `json:"season"`
	Team        string   `json:"team"`
	IsTotal     bool     `json:"isTotal"`
	Seq         int      `json:"seq"`
	Position    string   `json:"position"`
	Age         *int     `json:"age"`
	GamesPlayed *int     `json:"gamesPlayed"`
	Minutes     *float64 `json:"minutes"`
	PerGame     PerGame  `json:"perGame"`
	Advanced    Advanced `json:"advanced"`
}

// SeasonLine is the canonical aggregated stat row for one (player, season).
// PrimaryTeam is the stint with the most minutes, or MultiTeamMarker when the
// source supplied only a combined row with no per-team breakdown.
type SeasonLine struct {
	PlayerID    int64    `json:"playerId"`
	Season      string   `json:"season"`
	PrimaryTeam string   `json:"primaryTeam"`
	Position    string   `json:"position"`
	Age         *int     `json:"age"`
	GamesPlayed *int     `json:"gamesPlayed"`
	Minutes     *float64 `json:"minutes"`
	PerGame     PerGame  `json:"perGame"`
	Advanced    Advanced `json:"advanced"`
}
