package engine

import (
	"fmt"
	"math"
	"sort"

	"github.com/lassestilvang/scoutmaster-3000-sub000/internal/models"
)

// Matchup rule names.
const (
	MatchupRuleMapEdge    = "map-advantage"
	MatchupRuleMapSteer   = "map-steer"
	MatchupRuleAggression = "aggression-mismatch"
	MatchupRuleBreadth    = "pool-breadth-mismatch"
	MatchupRuleDefault    = "matchup-default"
)

func matchupConfidence(minSample int, t Tuning) models.Confidence {
	switch {
	case minSample >= t.MatchupHighGames:
		return models.ConfidenceHigh
	case minSample >= t.MatchupMedGames:
		return models.ConfidenceMedium
	default:
		return models.ConfidenceLow
	}
}

// Matchup cross-compares two aggregated teams and returns a ranked,
// de-duplicated recommendation list. Empty when either side has no matches.
func Matchup(ours, theirs TeamStats, t Tuning) []models.MatchupCandidate {
	if ours.Matches == 0 || theirs.Matches == 0 {
		return []models.MatchupCandidate{}
	}

	theirMaps := make(map[string]models.MapStat, len(theirs.MapStats))
	for _, ms := range theirs.MapStats {
		theirMaps[ms.MapName] = ms
	}
	var out []models.MatchupCandidate
	add := func(rule string, c models.MatchupCandidate) {
		c.Rule = rule
		c.ID = fmt.Sprintf("%s-%d", rule, len(out)+1)
		out = append(out, c)
	}

	// Shared-map advantage. Iterates our map order (played desc) so output
	// is deterministic.
	sharedSeen := false
	for _, ms := range ours.MapStats {
		their, ok := theirMaps[ms.MapName]
		if !ok {
			continue
		}
		sharedSeen = true
		minSample := ms.MatchesPlayed
		if their.MatchesPlayed < minSample {
			minSample = their.MatchesPlayed
		}
		if minSample < 1 {
			continue
		}
		advantage := ms.WinRate - their.WinRate
		conf := matchupConfidence(minSample, t)
		score := math.Abs(advantage)*100 + float64(minSample)*4
		if conf == models.ConfidenceLow {
			score -= t.MatchupLowPenalty
		}
		evidence := fmt.Sprintf("We win %.0f%% vs their %.0f%% on %s (min %d matches per side).",
			ms.WinRate*100, their.WinRate*100, ms.MapName, minSample)
		switch {
		case advantage >= t.MatchupAdvantage:
			add(MatchupRuleMapEdge, models.MatchupCandidate{
				Insight:    fmt.Sprintf("Prioritize %s in the veto; the head-to-head numbers favor us there.", ms.MapName),
				Evidence:   evidence,
				Confidence: conf,
				Score:      score,
			})
		case advantage <= -t.MatchupAdvantage:
			add(MatchupRuleMapEdge, models.MatchupCandidate{
				Insight:    fmt.Sprintf("Avoid %s; their record there clearly beats ours.", ms.MapName),
				Evidence:   evidence,
				Confidence: conf,
				Score:      score - 2,
			})
		}
	}

	// Disjoint pools: steer toward our comfort, away from theirs.
	if !sharedSeen {
		if best, ok := bestMap(ours.MapStats, 2); ok {
			add(MatchupRuleMapSteer, models.MatchupCandidate{
				Insight: fmt.Sprintf("Steer the veto toward %s; they have no recorded games there and it is our strongest map.", best.MapName),
				Evidence: fmt.Sprintf("We won %.0f%% of %d matches on %s; opponent untested there.",
					best.WinRate*100, best.MatchesPlayed, best.MapName),
				Confidence: matchupConfidence(best.MatchesPlayed, t),
				Score:      58 + float64(best.MatchesPlayed)*3 + best.WinRate*15,
			})
		}
		if best, ok := bestMap(theirs.MapStats, 2); ok {
			add(MatchupRuleMapSteer, models.MatchupCandidate{
				Insight: fmt.Sprintf("Avoid %s; it is their comfort pick and we have no games on it.", best.MapName),
				Evidence: fmt.Sprintf("They won %.0f%% of %d matches on %s; we are untested there.",
					best.WinRate*100, best.MatchesPlayed, best.MapName),
				Confidence: matchupConfidence(best.MatchesPlayed, t),
				Score:      55 + float64(best.MatchesPlayed)*3 + best.WinRate*10,
			})
		}
	}

	// Aggression mismatch.
	if theirs.Aggression == models.AggressionHigh && ours.Aggression != models.AggressionHigh {
		add(MatchupRuleAggression, models.MatchupCandidate{
			Insight: "Plan anti-rush setups: stack early utility and keep retake discipline against their tempo.",
			Evidence: fmt.Sprintf("Opponent aggression is High (avg score %d) against our %s profile.",
				theirs.AverageScore, ours.Aggression),
			Confidence: models.ConfidenceMedium,
			Score:      55,
		})
	}
	if ours.Aggression == models.AggressionHigh && theirs.Aggression != models.AggressionHigh {
		add(MatchupRuleAggression, models.MatchupCandidate{
			Insight: "Increase tempo and force early fights; they are not built to match our pace.",
			Evidence: fmt.Sprintf("Our aggression is High (avg score %d) against their %s profile.",
				ours.AverageScore, theirs.Aggression),
			Confidence: models.ConfidenceMedium,
			Score:      52,
		})
	}

	// Pool breadth mismatch.
	if len(theirs.MapStats) <= 2 && len(ours.MapStats) >= 4 {
		add(MatchupRuleBreadth, models.MatchupCandidate{
			Insight: "Extend the series: our wider map pool wins attrition once their two comfort maps are gone.",
			Evidence: fmt.Sprintf("Opponent has %d maps on record against our %d.",
				len(theirs.MapStats), len(ours.MapStats)),
			Confidence: models.ConfidenceMedium,
			Score:      45,
		})
	}

	if len(out) == 0 {
		add(MatchupRuleDefault, models.MatchupCandidate{
			Insight:    "No structural edge found; lean on comfort picks and out-prepare them on shared maps.",
			Evidence:   "Neither side shows a decisive statistical mismatch.",
			Confidence: models.ConfidenceLow,
			Score:      10,
		})
	}

	// De-duplicate by insight text, keeping the first (higher-priority rule)
	// occurrence.
	seen := make(map[string]bool, len(out))
	deduped := out[:0]
	for _, c := range out {
		if seen[c.Insight] {
			continue
		}
		seen[c.Insight] = true
		deduped = append(deduped, c)
	}

	sort.SliceStable(deduped, func(i, j int) bool {
		return deduped[i].Score > deduped[j].Score
	})
	top := t.MatchupTop
	if top <= 0 {
		top = DefaultTuning().MatchupTop
	}
	if len(deduped) > top {
		deduped = deduped[:top]
	}
	return deduped
}

// bestMap picks the strongest map by win rate, preferring maps with at
// least minGames played; falls back to any map when none qualify.
func bestMap(stats []models.MapStat, minGames int) (models.MapStat, bool) {
	if len(stats) == 0 {
		return models.MapStat{}, false
	}
	pick := func(candidates []models.MapStat) (models.MapStat, bool) {
		if len(candidates) == 0 {
			return models.MapStat{}, false
		}
		best := candidates[0]
		for _, ms := range candidates[1:] {
			if ms.WinRate > best.WinRate ||
				(ms.WinRate == best.WinRate && ms.MatchesPlayed > best.MatchesPlayed) {
				best = ms
			}
		}
		return best, true
	}

	var sampled []models.MapStat
	for _, ms := range stats {
		if ms.MatchesPlayed >= minGames {
			sampled = append(sampled, ms)
		}
	}
	if best, ok := pick(sampled); ok {
		return best, true
	}
	return pick(stats)
}
