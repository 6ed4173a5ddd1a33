package models

// ScoutRequest asks for a single-team scouting report.
type ScoutRequest struct {
	Team          string `json:"team" validate:"required,min=2,max=120"`
	TimeframeDays int    `json:"timeframe_days" validate:"omitempty,min=1,max=365"`
	MaxMatches    int    `json:"max_matches" validate:"omitempty,min=1,max=50"`
	Transparency  bool   `json:"transparency"`
}

// MatchupRequest asks for a two-team comparison report.
type MatchupRequest struct {
	OurTeam       string `json:"our_team" validate:"required,min=2,max=120"`
	OpponentTeam  string `json:"opponent_team" validate:"required,min=2,max=120"`
	TimeframeDays int    `json:"timeframe_days" validate:"omitempty,min=1,max=365"`
	MaxMatches    int    `json:"max_matches" validate:"omitempty,min=1,max=50"`
	Transparency  bool   `json:"transparency"`
}

// ResolveTeamResponse is the team-directory lookup payload.
type ResolveTeamResponse struct {
	Team   TeamRef `json:"team"`
	Source string  `json:"source"` // "store", "vendor" or "demo"
}
