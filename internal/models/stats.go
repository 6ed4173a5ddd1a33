package models

// Confidence encodes sample-size adequacy. It is always one of exactly
// three values and is never interpolated.
type Confidence string

const (
	ConfidenceHigh   Confidence = "High"
	ConfidenceMedium Confidence = "Medium"
	ConfidenceLow    Confidence = "Low"
)

// Aggression is a coarse tempo classification derived from average score.
type Aggression string

const (
	AggressionHigh   Aggression = "High"
	AggressionMedium Aggression = "Medium"
	AggressionLow    Aggression = "Low"
)

// TrendDirection labels the recent-vs-previous win-rate comparison.
type TrendDirection string

const (
	TrendUp   TrendDirection = "Up"
	TrendDown TrendDirection = "Down"
	TrendFlat TrendDirection = "Flat"
)

// MapStat is the per-map slice of a team's history.
type MapStat struct {
	MapName       string  `json:"map_name"`
	MatchesPlayed int     `json:"matches_played"`
	WinRate       float64 `json:"win_rate"` // 0..1
}

// MapPerformance is a player's record on a single map.
type MapPerformance struct {
	MapName string  `json:"map_name"`
	Matches int     `json:"matches"`
	WinRate float64 `json:"win_rate"` // 0..1
}

// PlayerTendency summarizes one player's recent behavior.
type PlayerTendency struct {
	PlayerID    string           `json:"player_id"`
	PlayerName  string           `json:"player_name"`
	Matches     int              `json:"matches"`
	WinRate     float64          `json:"win_rate"` // 0..1
	Maps        []MapPerformance `json:"maps,omitempty"`
	TopPicks    []string         `json:"top_picks,omitempty"` // externally supplied, capped
	ClutchLabel Confidence       `json:"clutch_label,omitempty"`
	CloseGames  int              `json:"close_games"`
}

// RosterStability estimates lineup consistency over recent matches.
type RosterStability struct {
	Confidence        Confidence `json:"confidence"`
	MatchesConsidered int        `json:"matches_considered"`
	CorePlayers       []Player   `json:"core_players"` // sorted by name
	UniquePlayersSeen int        `json:"unique_players_seen"`
}

// WinRateTrend compares the most recent window against the one before it.
type WinRateTrend struct {
	Direction       TrendDirection `json:"direction"`
	DeltaPctPoints  float64        `json:"delta_pct_points"`
	RecentWinRate   float64        `json:"recent_win_rate"` // 0..1
	PreviousWinRate float64        `json:"previous_win_rate"`
	RecentSample    int            `json:"recent_sample"`
	PreviousSample  int            `json:"previous_sample"`
}

// RawInputMatch is one row of the bounded input digest.
type RawInputMatch struct {
	MatchID   string `json:"match_id"`
	SeriesID  string `json:"series_id"`
	StartTime string `json:"start_time"`
	MapName   string `json:"map_name"`
	Score     string `json:"score"`
	Result    string `json:"result"` // "W", "L" or "?"
}

// RawInputs is a time-descending digest of the matches the engine saw,
// bounded so transparency payloads stay small.
type RawInputs struct {
	Matches   []RawInputMatch `json:"matches"`
	Truncated bool            `json:"truncated"`
	Total     int             `json:"total"`
}
