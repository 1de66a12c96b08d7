// Package database provides the optional PostgreSQL sink for run output.
//
// The sink mirrors the published snapshot: canonical players, player-season
// facts, team-season summaries, valuation records, and audited salary
// conflicts. All writes for one run happen in a single transaction so a
// failed run leaves the previous contents untouched.
package database
