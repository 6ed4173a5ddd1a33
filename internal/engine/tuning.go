// Package engine implements the scouting statistics and recommendation
// pipeline. Every function here is pure and total: no I/O, no errors, no
// shared state. Insufficient data yields low-confidence or fallback output,
// never a failure, so the engine is safe to call concurrently for
// independent reports.
package engine

import "github.com/lassestilvang/scoutmaster-3000-sub000/internal/models"

// Tuning collects every heuristic threshold and rule weight in one place so
// they can be tested and tuned per game title without touching rule logic.
type Tuning struct {
	// Aggression profile cutoffs on average score.
	AggressionHigh   float64
	AggressionMedium float64

	// Confidence label -> numeric multiplier.
	FactorHigh   float64
	FactorMedium float64
	FactorLow    float64

	// Roster stability.
	RosterWindow       int     // most recent matches with roster data considered
	CoreShare          float64 // appearance share that makes a player "core"
	StabilityHighMin   int     // matches considered for High confidence
	StabilityMediumMin int     // matches considered for Medium confidence
	ChurnSlack         int     // unique players allowed above typical roster size

	// Close-match heuristic. Tuned for round-based score ranges; revisit
	// before enabling tendencies for titles with open-ended scores.
	CloseScoreCeiling float64 // scores at or below this use the tight margin
	CloseMarginTight  float64
	CloseMarginWide   float64
	ClutchMinClose    int
	ClutchHighClose   int
	ClutchHighRate    float64
	ClutchMediumRate  float64
	TopPicksCap       int

	// Win-rate trend windows.
	TrendWindow   int
	TrendMinTotal int
	TrendMinSide  int
	TrendBandPct  float64 // |delta| below this is Flat

	// Single-team rules.
	WeakMapWinRate    float64
	WeakMapHighGames  int
	WeakMapMedGames   int
	WeakMapExploitDiv float64
	LowSampleGames    int
	MomentumHighGames int
	MomentumMedGames  int
	MomentumLowBar    int // win rate (0..100) below which momentum is exploitable
	MomentumHighBar   int // win rate above which rhythm disruption applies
	NarrowPoolMaps    int
	NarrowPoolGames   int
	ScarcityGames     int
	SelectTop         int
	RawInputLimit     int

	// Per-rule severity/exploitability weights.
	Weights RuleWeights

	// Matchup rules.
	MatchupAdvantage  float64
	MatchupHighGames  int
	MatchupMedGames   int
	MatchupLowPenalty float64
	MatchupTop        int
}

// RuleWeights holds the fixed severity/exploitability pairs of rules that do
// not derive them from the data.
type RuleWeights struct {
	MapCautionSeverity   float64
	MapCautionExploit    float64
	MomentumLowExploit   float64
	MomentumHighSeverity float64
	MomentumHighExploit  float64
	PlaystyleSeverity    float64
	PlaystyleExploit     float64
	BreadthSeverity      float64
	BreadthExploit       float64
	ScarcitySeverity     float64
	ScarcityExploit      float64
	FallbackSeverity     float64
	FallbackExploit      float64
}

// DefaultTuning returns the production heuristics.
func DefaultTuning() Tuning {
	return Tuning{
		AggressionHigh:   12,
		AggressionMedium: 8,

		FactorHigh:   1.0,
		FactorMedium: 0.7,
		FactorLow:    0.4,

		RosterWindow:       10,
		CoreShare:          0.8,
		StabilityHighMin:   5,
		StabilityMediumMin: 3,
		ChurnSlack:         1,

		CloseScoreCeiling: 5,
		CloseMarginTight:  1,
		CloseMarginWide:   2,
		ClutchMinClose:    2,
		ClutchHighClose:   3,
		ClutchHighRate:    0.66,
		ClutchMediumRate:  0.5,
		TopPicksCap:       5,

		TrendWindow:   5,
		TrendMinTotal: 4,
		TrendMinSide:  2,
		TrendBandPct:  5,

		WeakMapWinRate:    0.45,
		WeakMapHighGames:  4,
		WeakMapMedGames:   3,
		WeakMapExploitDiv: 6,
		LowSampleGames:    3,
		MomentumHighGames: 8,
		MomentumMedGames:  4,
		MomentumLowBar:    40,
		MomentumHighBar:   70,
		NarrowPoolMaps:    3,
		NarrowPoolGames:   3,
		ScarcityGames:     3,
		SelectTop:         5,
		RawInputLimit:     20,

		Weights: RuleWeights{
			MapCautionSeverity:   0.35,
			MapCautionExploit:    0.4,
			MomentumLowExploit:   0.8,
			MomentumHighSeverity: 0.35,
			MomentumHighExploit:  0.6,
			PlaystyleSeverity:    0.6,
			PlaystyleExploit:     0.7,
			BreadthSeverity:      0.55,
			BreadthExploit:       0.7,
			ScarcitySeverity:     0.4,
			ScarcityExploit:      0.6,
			FallbackSeverity:     0.35,
			FallbackExploit:      0.5,
		},

		MatchupAdvantage:  0.15,
		MatchupHighGames:  4,
		MatchupMedGames:   2,
		MatchupLowPenalty: 6,
		MatchupTop:        5,
	}
}

func (t Tuning) factor(c models.Confidence) float64 {
	switch c {
	case models.ConfidenceHigh:
		return t.FactorHigh
	case models.ConfidenceMedium:
		return t.FactorMedium
	default:
		return t.FactorLow
	}
}
