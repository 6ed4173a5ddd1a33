package models

// TeamRef identifies a team for aggregation. Resolution against a match is
// by exact ID, or case-insensitive exact name match - never fuzzy.
type TeamRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Match is one game (on one map) within a series, as produced by the
// vendor normalizer. Immutable once built.
type Match struct {
	ID        string       `json:"id"`
	SeriesID  string       `json:"series_id"`
	StartTime string       `json:"start_time"` // ISO-8601-ish, may be malformed
	MapName   string       `json:"map_name"`
	Teams     []TeamResult `json:"teams"` // ordered, >= 2 entries
}

// TeamResult is one side's outcome within a match.
type TeamResult struct {
	TeamID   string   `json:"team_id"`
	TeamName string   `json:"team_name"`
	Score    float64  `json:"score"`               // missing upstream -> 0
	IsWinner *bool    `json:"is_winner,omitempty"` // nil when unknown
	Players  []Player `json:"players,omitempty"`
}

// Player identity is by ID; the name may drift across matches and the
// latest occurrence wins when aggregating.
type Player struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	TeamID string `json:"team_id"`
}
