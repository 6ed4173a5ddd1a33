package engine

import (
	"fmt"
	"math"

	"github.com/lassestilvang/scoutmaster-3000-sub000/internal/models"
)

// Rule names double as candidate ID prefixes.
const (
	RuleMapWeakness   = "map-weakness"
	RuleMapCaution    = "map-sample-caution"
	RuleMomentum      = "momentum"
	RulePlaystyle     = "playstyle-counter"
	RuleMapPoolWidth  = "map-pool-breadth"
	RuleDataScarcity  = "data-scarcity"
	RuleFallback      = "fallback"
	RuleNoData        = "no-data-fallback"
)

// rule is one entry of the ordered registry. Evaluation order is the
// declared order below and is the tie-break for equal impact, so it must
// stay explicit rather than implicit in call sequence.
type rule struct {
	name string
	eval func(TeamStats, Tuning) []models.Candidate
}

func ruleRegistry() []rule {
	return []rule{
		{RuleMapWeakness, evalMapWeakness},
		{RuleMomentum, evalMomentum},
		{RulePlaystyle, evalPlaystyle},
		{RuleMapPoolWidth, evalMapPoolBreadth},
		{RuleDataScarcity, evalDataScarcity},
	}
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}

// breakdown applies the fixed impact formula:
// impact = round(100 * clamp01(severity) * clamp01(exploitability) * confidenceFactor).
func breakdown(severity, exploitability float64, conf models.Confidence, t Tuning) models.CandidateBreakdown {
	factor := t.factor(conf)
	return models.CandidateBreakdown{
		WeaknessSeverity: clamp01(severity),
		Exploitability:   clamp01(exploitability),
		Confidence:       conf,
		ConfidenceFactor: factor,
		Impact:           int(math.Round(100 * clamp01(severity) * clamp01(exploitability) * factor)),
	}
}

// overallConfidence buckets sample size for the team-wide rules.
func overallConfidence(matches int, t Tuning) models.Confidence {
	switch {
	case matches >= t.MomentumHighGames:
		return models.ConfidenceHigh
	case matches >= t.MomentumMedGames:
		return models.ConfidenceMedium
	default:
		return models.ConfidenceLow
	}
}

// GenerateCandidates runs the ordered rule registry against the aggregated
// stats. It always returns at least one candidate: guardrails cover thin
// data and a fundamentals fallback covers the empty case.
func GenerateCandidates(stats TeamStats, t Tuning) []models.Candidate {
	// With zero matches there is nothing to reason about; short-circuit to
	// a single zero-impact fallback rather than running rules on nothing.
	if stats.Matches == 0 {
		return []models.Candidate{{
			ID:        RuleNoData + "-1",
			Rule:      RuleNoData,
			Insight:   "No match history available: scout from scrims and drill default fundamentals.",
			Evidence:  "No matches were found for this team in the requested window.",
			Breakdown: breakdown(1, 0, models.ConfidenceLow, t),
		}}
	}

	var out []models.Candidate
	for _, r := range ruleRegistry() {
		for _, c := range r.eval(stats, t) {
			c.Rule = r.name
			c.ID = fmt.Sprintf("%s-%d", r.name, len(out)+1)
			out = append(out, c)
		}
	}

	if len(out) == 0 {
		out = append(out, models.Candidate{
			ID:        RuleFallback + "-1",
			Rule:      RuleFallback,
			Insight:   "No clear statistical weakness found: win on fundamentals, utility discipline and mid-round calls.",
			Evidence:  fmt.Sprintf("%d matches analyzed without a standout exploitable pattern.", stats.Matches),
			Breakdown: breakdown(t.Weights.FallbackSeverity, t.Weights.FallbackExploit, models.ConfidenceLow, t),
		})
	}
	return out
}

// evalMapWeakness emits one candidate per weak map, plus a low-sample
// caution when no map qualifies but the data is too thin to trust.
func evalMapWeakness(stats TeamStats, t Tuning) []models.Candidate {
	var out []models.Candidate
	for _, ms := range stats.MapStats {
		if ms.WinRate >= t.WeakMapWinRate || ms.MatchesPlayed < 1 {
			continue
		}
		conf := models.ConfidenceLow
		switch {
		case ms.MatchesPlayed >= t.WeakMapHighGames:
			conf = models.ConfidenceHigh
		case ms.MatchesPlayed >= t.WeakMapMedGames:
			conf = models.ConfidenceMedium
		}
		evidence := fmt.Sprintf("They won %.0f%% of %d matches on %s.",
			ms.WinRate*100, ms.MatchesPlayed, ms.MapName)
		if ms.MatchesPlayed < t.LowSampleGames {
			evidence += " Sample is small; treat this read with caution."
		}
		out = append(out, models.Candidate{
			Insight: fmt.Sprintf("Force %s in the veto and open with rehearsed set executes.", ms.MapName),
			Evidence: evidence,
			Breakdown: breakdown(
				1-ms.WinRate,
				math.Min(1, float64(ms.MatchesPlayed)/t.WeakMapExploitDiv),
				conf, t),
		})
	}
	if len(out) > 0 {
		return out
	}

	// Guardrail: no weak map, but even the best-sampled map is thin.
	if len(stats.MapStats) > 0 && stats.MapStats[0].MatchesPlayed < t.LowSampleGames && stats.Matches >= 2 {
		return []models.Candidate{{
			Insight: "Treat map-specific conclusions cautiously and prepare flexible strategies.",
			Evidence: fmt.Sprintf("Best-sampled map has only %d matches across %d total.",
				stats.MapStats[0].MatchesPlayed, stats.Matches),
			Breakdown: breakdown(t.Weights.MapCautionSeverity, t.Weights.MapCautionExploit, models.ConfidenceLow, t),
		}}
	}
	return nil
}

func evalMomentum(stats TeamStats, t Tuning) []models.Candidate {
	conf := overallConfidence(stats.Matches, t)
	switch {
	case stats.WinRate < t.MomentumLowBar:
		return []models.Candidate{{
			Insight: "Apply aggressive early pressure; they are losing more than they win and tilt under momentum swings.",
			Evidence: fmt.Sprintf("Overall win rate is %d%% across %d matches.",
				stats.WinRate, stats.Matches),
			Breakdown: breakdown(
				float64(t.MomentumLowBar-stats.WinRate)/float64(t.MomentumLowBar),
				t.Weights.MomentumLowExploit, conf, t),
		}}
	case stats.WinRate > t.MomentumHighBar:
		return []models.Candidate{{
			Insight: "Disrupt their rhythm with early timeouts and off-tempo rounds; confident teams dislike broken pacing.",
			Evidence: fmt.Sprintf("Overall win rate is %d%% across %d matches.",
				stats.WinRate, stats.Matches),
			Breakdown: breakdown(t.Weights.MomentumHighSeverity, t.Weights.MomentumHighExploit, conf, t),
		}}
	}
	return nil
}

func evalPlaystyle(stats TeamStats, t Tuning) []models.Candidate {
	conf := overallConfidence(stats.Matches, t)
	switch stats.Aggression {
	case models.AggressionHigh:
		return []models.Candidate{{
			Insight: "Prioritize defensive utility and crossfire setups to blunt their aggressive tempo.",
			Evidence: fmt.Sprintf("High-aggression profile: average score %d per match.",
				stats.AverageScore),
			Breakdown: breakdown(t.Weights.PlaystyleSeverity, t.Weights.PlaystyleExploit, conf, t),
		}}
	case models.AggressionLow:
		return []models.Candidate{{
			Insight: "Initiate fast-paced executes before their slow defaults develop.",
			Evidence: fmt.Sprintf("Low-aggression profile: average score %d per match.",
				stats.AverageScore),
			Breakdown: breakdown(t.Weights.PlaystyleSeverity, t.Weights.PlaystyleExploit, conf, t),
		}}
	}
	return nil
}

func evalMapPoolBreadth(stats TeamStats, t Tuning) []models.Candidate {
	if len(stats.MapStats) >= t.NarrowPoolMaps || stats.Matches < t.NarrowPoolGames {
		return nil
	}
	conf := overallConfidence(stats.Matches, t)
	return []models.Candidate{{
		Insight: "Punish their narrow map pool: ban comfort picks and drag them onto unfamiliar ground.",
		Evidence: fmt.Sprintf("Only %d distinct maps across %d matches.",
			len(stats.MapStats), stats.Matches),
		Breakdown: breakdown(t.Weights.BreadthSeverity, t.Weights.BreadthExploit, conf, t),
	}}
}

func evalDataScarcity(stats TeamStats, t Tuning) []models.Candidate {
	if stats.Matches >= t.ScarcityGames {
		return nil
	}
	return []models.Candidate{{
		Insight: "Prepare for unknown strategies; scouting data is too thin to rely on.",
		Evidence: fmt.Sprintf("Only %d matches available for analysis.", stats.Matches),
		Breakdown: breakdown(t.Weights.ScarcitySeverity, t.Weights.ScarcityExploit, models.ConfidenceLow, t),
	}}
}
