package salaries

// Record is one resolved salary row before normalization. Multiple sources may
// report the same (player, season); normalization reduces them to at most one.
type Record struct {
	PlayerID     int64  `json:"playerId"`
	Season       string `json:"season"`
	AnnualSalary int64  `json:"annualSalary"`
	Source       string `json:"source"`
}

// Conflict records disagreeing source rows for one (player, season) that could
// not be reconciled. Conflicted player-seasons carry no salary on their fact
// but stay visible for audit.
type Conflict struct {
	PlayerID int64    `json:"playerId"`
	Season   string   `json:"season"`
	Rows     []Record `json:"rows"`
}
