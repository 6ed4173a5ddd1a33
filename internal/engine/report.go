package engine

import (
	"fmt"

	"github.com/lassestilvang/scoutmaster-3000-sub000/internal/models"
)

// Evidence sample-size buckets for the overall win-rate confidence.
const (
	winRateHighSample   = 10
	winRateMediumSample = 5
)

// BuildEvidence assembles the report's audit block from the raw matches and
// the aggregated stats. The analysis window covers only parsable timestamps.
func BuildEvidence(matches []models.Match, stats TeamStats) models.Evidence {
	ev := models.Evidence{
		MatchesAnalyzed: stats.Matches,
		DistinctMaps:    len(stats.MapStats),
		Trend:           stats.Trend,
	}

	switch {
	case stats.Matches >= winRateHighSample:
		ev.WinRateConfidence = models.ConfidenceHigh
	case stats.Matches >= winRateMediumSample:
		ev.WinRateConfidence = models.ConfidenceMedium
	default:
		ev.WinRateConfidence = models.ConfidenceLow
	}

	seen := map[string]bool{}
	for _, m := range matches {
		if m.SeriesID != "" && !seen[m.SeriesID] {
			seen[m.SeriesID] = true
			ev.SeriesIDs = append(ev.SeriesIDs, m.SeriesID)
		}
		ts, ok := parseStart(m.StartTime)
		if !ok {
			continue
		}
		if ev.WindowStart == nil || ts.Before(*ev.WindowStart) {
			start := ts
			ev.WindowStart = &start
		}
		if ev.WindowEnd == nil || ts.After(*ev.WindowEnd) {
			end := ts
			ev.WindowEnd = &end
		}
	}
	return ev
}

// KeyInsights renders the headline free-text observations.
func KeyInsights(stats TeamStats) []string {
	if stats.Matches == 0 {
		return []string{"No match history available for this team in the requested window."}
	}

	insights := []string{
		fmt.Sprintf("Won %d%% of the last %d matches.", stats.WinRate, stats.Matches),
		fmt.Sprintf("%s-aggression playstyle with an average score of %d.", stats.Aggression, stats.AverageScore),
	}

	if len(stats.MapStats) > 0 {
		best := stats.MapStats[0]
		worst := stats.MapStats[0]
		for _, ms := range stats.MapStats {
			if ms.WinRate > best.WinRate {
				best = ms
			}
			if ms.WinRate < worst.WinRate {
				worst = ms
			}
		}
		insights = append(insights, fmt.Sprintf("Strongest map: %s (%.0f%% over %d matches); weakest: %s (%.0f%% over %d).",
			best.MapName, best.WinRate*100, best.MatchesPlayed,
			worst.MapName, worst.WinRate*100, worst.MatchesPlayed))
	}

	if stats.Trend != nil && stats.Trend.Direction != models.TrendFlat {
		verb := "improving"
		if stats.Trend.Direction == models.TrendDown {
			verb = "declining"
		}
		insights = append(insights, fmt.Sprintf("Form is %s: %+.0f percentage points over the last %d matches.",
			verb, stats.Trend.DeltaPctPoints, stats.Trend.RecentSample))
	}

	if stats.Stability != nil && len(stats.Stability.CorePlayers) > 0 {
		insights = append(insights, fmt.Sprintf("Core roster of %d players over the last %d matches (%s confidence).",
			len(stats.Stability.CorePlayers), stats.Stability.MatchesConsidered, stats.Stability.Confidence))
	}

	return insights
}

// BuildScoutReport runs the single-team pipeline end to end and assembles
// the renderer-facing payload. ReportID, GeneratedAt and the demo flag are
// the caller's concern.
func BuildScoutReport(matches []models.Match, ref models.TeamRef, topPicks map[string][]string, t Tuning, transparency bool) models.ScoutReport {
	stats := AggregateTeam(matches, ref, topPicks, t)
	result := HowToWin(stats, t)

	report := models.ScoutReport{
		Team:             ref,
		WinProbability:   stats.WinRate,
		Evidence:         BuildEvidence(matches, stats),
		KeyInsights:      KeyInsights(stats),
		HowToWin:         result.Selected,
		MapStats:         stats.MapStats,
		Roster:           stats.Roster,
		RosterStability:  stats.Stability,
		PlayerTendencies: stats.Tendencies,
		Aggression:       stats.Aggression,
		AverageScore:     stats.AverageScore,
		MatchesAnalyzed:  stats.Matches,
	}
	if transparency {
		engineResult := result
		report.Engine = &engineResult
		raw := stats.RawInputs
		report.RawInputs = &raw
	}
	return report
}

// BuildMatchupReport assembles the two-sided comparison payload. The
// opponent-only ranked candidate list stays available for reference while
// HowToWin carries the matchup-specific list.
func BuildMatchupReport(ourMatches []models.Match, ourRef models.TeamRef, oppMatches []models.Match, oppRef models.TeamRef, t Tuning, transparency bool) models.MatchupReport {
	ours := AggregateTeam(ourMatches, ourRef, nil, t)
	theirs := AggregateTeam(oppMatches, oppRef, nil, t)

	opponentReport := BuildScoutReport(oppMatches, oppRef, nil, t, transparency)
	report := models.MatchupReport{
		Us:             side(ours),
		Opponent:       side(theirs),
		MapPoolDeltas:  mapPoolDeltas(ours, theirs),
		HowToWin:       Matchup(ours, theirs, t),
		OpponentReport: &opponentReport,
	}
	return report
}

func side(stats TeamStats) models.MatchupSide {
	return models.MatchupSide{
		Team:         stats.Team,
		WinRate:      stats.WinRate,
		MapStats:     stats.MapStats,
		Aggression:   stats.Aggression,
		AverageScore: stats.AverageScore,
		Matches:      stats.Matches,
	}
}

func mapPoolDeltas(ours, theirs TeamStats) []models.MapPoolDelta {
	theirMaps := make(map[string]models.MapStat, len(theirs.MapStats))
	for _, ms := range theirs.MapStats {
		theirMaps[ms.MapName] = ms
	}
	var out []models.MapPoolDelta
	for _, ms := range ours.MapStats {
		their, ok := theirMaps[ms.MapName]
		if !ok {
			continue
		}
		out = append(out, models.MapPoolDelta{
			MapName:      ms.MapName,
			OurWinRate:   ms.WinRate,
			TheirWinRate: their.WinRate,
			Advantage:    ms.WinRate - their.WinRate,
			OurMatches:   ms.MatchesPlayed,
			TheirMatches: their.MatchesPlayed,
		})
	}
	return out
}
