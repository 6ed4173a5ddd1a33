package models

import "time"

// Evidence is the report's audit block: what data the conclusions rest on.
type Evidence struct {
	WindowStart       *time.Time     `json:"window_start,omitempty"`
	WindowEnd         *time.Time     `json:"window_end,omitempty"`
	MatchesAnalyzed   int            `json:"matches_analyzed"`
	DistinctMaps      int            `json:"distinct_maps"`
	SeriesIDs         []string       `json:"series_ids"`
	WinRateConfidence Confidence     `json:"win_rate_confidence"`
	Trend             *WinRateTrend  `json:"trend,omitempty"`
}

// ScoutReport is the single-team scouting output consumed by the renderer.
type ScoutReport struct {
	ReportID         string           `json:"report_id"`
	Team             TeamRef          `json:"team"`
	GeneratedAt      time.Time        `json:"generated_at"`
	WinProbability   int              `json:"win_probability"` // 0..100
	Evidence         Evidence         `json:"evidence"`
	KeyInsights      []string         `json:"key_insights"`
	HowToWin         []HowToWinItem   `json:"how_to_win"` // 1..5 entries
	MapStats         []MapStat        `json:"map_stats"`
	Roster           []Player         `json:"roster"`
	RosterStability  *RosterStability `json:"roster_stability,omitempty"`
	PlayerTendencies []PlayerTendency `json:"player_tendencies,omitempty"`
	Aggression       Aggression       `json:"aggression"`
	AverageScore     int              `json:"average_score"`
	MatchesAnalyzed  int              `json:"matches_analyzed"`
	RawInputs        *RawInputs       `json:"raw_inputs,omitempty"`
	Engine           *EngineResult    `json:"engine,omitempty"` // transparency only
	DemoData         bool             `json:"demo_data,omitempty"`
}

// MapPoolDelta compares both teams' record on one shared map.
type MapPoolDelta struct {
	MapName       string  `json:"map_name"`
	OurWinRate    float64 `json:"our_win_rate"`
	TheirWinRate  float64 `json:"their_win_rate"`
	Advantage     float64 `json:"advantage"` // ours minus theirs, -1..1
	OurMatches    int     `json:"our_matches"`
	TheirMatches  int     `json:"their_matches"`
}

// MatchupSide is one team's aggregate view inside a matchup report.
type MatchupSide struct {
	Team         TeamRef    `json:"team"`
	WinRate      int        `json:"win_rate"` // 0..100
	MapStats     []MapStat  `json:"map_stats"`
	Aggression   Aggression `json:"aggression"`
	AverageScore int        `json:"average_score"`
	Matches      int        `json:"matches"`
}

// MatchupReport is the two-team comparison payload. HowToWin holds the
// matchup-specific ranked list; OpponentReport keeps the opponent-only
// scouting view for reference.
type MatchupReport struct {
	ReportID       string             `json:"report_id"`
	GeneratedAt    time.Time          `json:"generated_at"`
	Us             MatchupSide        `json:"us"`
	Opponent       MatchupSide        `json:"opponent"`
	MapPoolDeltas  []MapPoolDelta     `json:"map_pool_deltas"`
	HowToWin       []MatchupCandidate `json:"how_to_win"`
	OpponentReport *ScoutReport       `json:"opponent_report,omitempty"`
	DemoData       bool               `json:"demo_data,omitempty"`
}
