package engine

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/lassestilvang/scoutmaster-3000-sub000/internal/models"
)

// TeamStats is the aggregated view of one team's match history that the
// recommendation rules consume. Built once per report by AggregateTeam.
type TeamStats struct {
	Team         models.TeamRef
	Matches      int
	WinRate      int // 0..100
	AverageScore int
	Aggression   models.Aggression
	MapStats     []models.MapStat
	Roster       []models.Player
	Stability    *models.RosterStability
	Tendencies   []models.PlayerTendency
	Trend        *models.WinRateTrend
	RawInputs    models.RawInputs
}

// AggregateTeam runs the full aggregation pass. topPicks is an optional
// externally-supplied playerID -> favorite picks map merged into tendencies.
func AggregateTeam(matches []models.Match, ref models.TeamRef, topPicks map[string][]string, t Tuning) TeamStats {
	avg := AverageScore(matches, ref)
	return TeamStats{
		Team:         ref,
		Matches:      len(matches),
		WinRate:      WinRate(matches, ref),
		AverageScore: avg,
		Aggression:   AggressionProfile(avg, t),
		MapStats:     MapStats(matches, ref),
		Roster:       RecentRoster(matches, ref),
		Stability:    RosterStability(matches, ref, t),
		Tendencies:   PlayerTendencies(matches, ref, topPicks, t),
		Trend:        WinRateTrend(matches, ref, t),
		RawInputs:    BuildRawInputs(matches, ref, t.RawInputLimit),
	}
}

// resolveTeam finds ref's result within a match: exact ID match first, then
// case-insensitive exact name match. Never partial or fuzzy.
func resolveTeam(m models.Match, ref models.TeamRef) (models.TeamResult, bool) {
	if ref.ID != "" {
		for _, tr := range m.Teams {
			if tr.TeamID == ref.ID {
				return tr, true
			}
		}
	}
	if ref.Name != "" {
		for _, tr := range m.Teams {
			if strings.EqualFold(tr.TeamName, ref.Name) {
				return tr, true
			}
		}
	}
	return models.TeamResult{}, false
}

// opponentScore returns the highest score among the other sides of a match.
func opponentScore(m models.Match, ours models.TeamResult) float64 {
	best := 0.0
	for _, tr := range m.Teams {
		if tr.TeamID == ours.TeamID && tr.TeamName == ours.TeamName {
			continue
		}
		if tr.Score > best {
			best = tr.Score
		}
	}
	return best
}

func isWin(tr models.TeamResult) bool {
	return tr.IsWinner != nil && *tr.IsWinner
}

// startTimeLayouts are tried in order when parsing vendor timestamps.
var startTimeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// parseStart best-effort parses a vendor timestamp. The second return is
// false for malformed input; such matches stay in the data set but are
// excluded from time-window arithmetic.
func parseStart(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range startTimeLayouts {
		if ts, err := time.Parse(layout, s); err == nil {
			return ts, true
		}
	}
	return time.Time{}, false
}

// sortByTimeDesc returns a copy sorted most-recent first. Matches with
// unparsable timestamps sort after all parsable ones, keeping input order.
func sortByTimeDesc(matches []models.Match) []models.Match {
	out := make([]models.Match, len(matches))
	copy(out, matches)
	sort.SliceStable(out, func(i, j int) bool {
		ti, oki := parseStart(out[i].StartTime)
		tj, okj := parseStart(out[j].StartTime)
		if oki && okj {
			return ti.After(tj)
		}
		return oki && !okj
	})
	return out
}

// WinRate returns the rounded percentage of wins over all input matches.
// Zero for empty input.
func WinRate(matches []models.Match, ref models.TeamRef) int {
	if len(matches) == 0 {
		return 0
	}
	wins := 0
	for _, m := range matches {
		if tr, ok := resolveTeam(m, ref); ok && isWin(tr) {
			wins++
		}
	}
	return int(math.Round(100 * float64(wins) / float64(len(matches))))
}

// MapStats groups the team's matches by map. Sorted by matches played
// descending, then map name, so output is deterministic.
func MapStats(matches []models.Match, ref models.TeamRef) []models.MapStat {
	type bucket struct {
		played int
		wins   int
	}
	buckets := map[string]*bucket{}
	for _, m := range matches {
		tr, ok := resolveTeam(m, ref)
		if !ok {
			continue
		}
		b := buckets[m.MapName]
		if b == nil {
			b = &bucket{}
			buckets[m.MapName] = b
		}
		b.played++
		if isWin(tr) {
			b.wins++
		}
	}
	out := make([]models.MapStat, 0, len(buckets))
	for name, b := range buckets {
		out = append(out, models.MapStat{
			MapName:       name,
			MatchesPlayed: b.played,
			WinRate:       float64(b.wins) / float64(b.played),
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].MatchesPlayed != out[j].MatchesPlayed {
			return out[i].MatchesPlayed > out[j].MatchesPlayed
		}
		return out[i].MapName < out[j].MapName
	})
	return out
}

// AverageScore returns the rounded mean of the team's scores. Zero when the
// team appears in no matches.
func AverageScore(matches []models.Match, ref models.TeamRef) int {
	sum, n := 0.0, 0
	for _, m := range matches {
		if tr, ok := resolveTeam(m, ref); ok {
			sum += tr.Score
			n++
		}
	}
	if n == 0 {
		return 0
	}
	return int(math.Round(sum / float64(n)))
}

// AggressionProfile classifies tempo from the average score.
func AggressionProfile(avgScore int, t Tuning) models.Aggression {
	switch {
	case float64(avgScore) > t.AggressionHigh:
		return models.AggressionHigh
	case float64(avgScore) > t.AggressionMedium:
		return models.AggressionMedium
	default:
		return models.AggressionLow
	}
}

// RecentRoster returns the team's players in its most recent match.
func RecentRoster(matches []models.Match, ref models.TeamRef) []models.Player {
	for _, m := range sortByTimeDesc(matches) {
		if tr, ok := resolveTeam(m, ref); ok {
			return tr.Players
		}
	}
	return nil
}

// RosterStability estimates lineup consistency over the most recent matches
// that carry roster data. Returns nil when no match has roster data.
func RosterStability(matches []models.Match, ref models.TeamRef, t Tuning) *models.RosterStability {
	type seen struct {
		player models.Player
		count  int
	}
	var considered int
	var typicalRoster int
	appearances := map[string]*seen{}

	for _, m := range sortByTimeDesc(matches) {
		if considered >= t.RosterWindow {
			break
		}
		tr, ok := resolveTeam(m, ref)
		if !ok || len(tr.Players) == 0 {
			continue
		}
		considered++
		if len(tr.Players) > typicalRoster {
			typicalRoster = len(tr.Players)
		}
		for _, p := range tr.Players {
			s := appearances[p.ID]
			if s == nil {
				// First occurrence while walking time-descending, so the
				// latest name wins.
				appearances[p.ID] = &seen{player: p, count: 1}
				continue
			}
			s.count++
		}
	}
	if considered == 0 {
		return nil
	}

	threshold := int(math.Ceil(float64(considered) * t.CoreShare))
	var core []models.Player
	for _, s := range appearances {
		if s.count >= threshold {
			core = append(core, s.player)
		}
	}
	sort.Slice(core, func(i, j int) bool { return core[i].Name < core[j].Name })

	unique := len(appearances)
	lowChurn := unique <= typicalRoster+t.ChurnSlack
	confidence := models.ConfidenceLow
	switch {
	case considered >= t.StabilityHighMin && lowChurn:
		confidence = models.ConfidenceHigh
	case considered >= t.StabilityMediumMin && lowChurn:
		confidence = models.ConfidenceMedium
	}

	return &models.RosterStability{
		Confidence:        confidence,
		MatchesConsidered: considered,
		CorePlayers:       core,
		UniquePlayersSeen: unique,
	}
}

// isCloseMatch applies the round-range margin heuristic: within 1 point for
// short score ranges, within 2 otherwise.
func isCloseMatch(ours, theirs float64, t Tuning) bool {
	margin := t.CloseMarginWide
	if math.Max(ours, theirs) <= t.CloseScoreCeiling {
		margin = t.CloseMarginTight
	}
	return math.Abs(ours-theirs) <= margin
}

// PlayerTendencies builds per-player records: sample size, win rate, per-map
// performance and a clutch label derived from close-match results.
func PlayerTendencies(matches []models.Match, ref models.TeamRef, topPicks map[string][]string, t Tuning) []models.PlayerTendency {
	type acc struct {
		player     models.Player
		played     int
		wins       int
		closeGames int
		closeWins  int
		mapPlayed  map[string]int
		mapWins    map[string]int
	}
	accs := map[string]*acc{}
	var order []string

	for _, m := range sortByTimeDesc(matches) {
		tr, ok := resolveTeam(m, ref)
		if !ok {
			continue
		}
		won := isWin(tr)
		closeGame := isCloseMatch(tr.Score, opponentScore(m, tr), t)
		for _, p := range tr.Players {
			a := accs[p.ID]
			if a == nil {
				a = &acc{player: p, mapPlayed: map[string]int{}, mapWins: map[string]int{}}
				accs[p.ID] = a
				order = append(order, p.ID)
			}
			a.played++
			a.mapPlayed[m.MapName]++
			if won {
				a.wins++
				a.mapWins[m.MapName]++
			}
			if closeGame {
				a.closeGames++
				if won {
					a.closeWins++
				}
			}
		}
	}

	out := make([]models.PlayerTendency, 0, len(accs))
	for _, id := range order {
		a := accs[id]
		pt := models.PlayerTendency{
			PlayerID:   id,
			PlayerName: a.player.Name,
			Matches:    a.played,
			WinRate:    float64(a.wins) / float64(a.played),
			CloseGames: a.closeGames,
		}

		maps := make([]models.MapPerformance, 0, len(a.mapPlayed))
		for name, n := range a.mapPlayed {
			maps = append(maps, models.MapPerformance{
				MapName: name,
				Matches: n,
				WinRate: float64(a.mapWins[name]) / float64(n),
			})
		}
		sort.Slice(maps, func(i, j int) bool {
			if maps[i].Matches != maps[j].Matches {
				return maps[i].Matches > maps[j].Matches
			}
			return maps[i].MapName < maps[j].MapName
		})
		pt.Maps = maps

		// Clutch label only with a minimal close-match sample.
		if a.closeGames >= t.ClutchMinClose {
			closeRate := float64(a.closeWins) / float64(a.closeGames)
			switch {
			case a.closeGames >= t.ClutchHighClose && closeRate >= t.ClutchHighRate:
				pt.ClutchLabel = models.ConfidenceHigh
			case closeRate >= t.ClutchMediumRate:
				pt.ClutchLabel = models.ConfidenceMedium
			default:
				pt.ClutchLabel = models.ConfidenceLow
			}
		}

		if picks := topPicks[id]; len(picks) > 0 {
			if len(picks) > t.TopPicksCap {
				picks = picks[:t.TopPicksCap]
			}
			pt.TopPicks = picks
		}
		out = append(out, pt)
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Matches != out[j].Matches {
			return out[i].Matches > out[j].Matches
		}
		return out[i].PlayerName < out[j].PlayerName
	})
	return out
}

// WinRateTrend compares the most recent window against the one before it.
// Nil when there is not enough history for both windows.
func WinRateTrend(matches []models.Match, ref models.TeamRef, t Tuning) *models.WinRateTrend {
	if len(matches) < t.TrendMinTotal {
		return nil
	}
	ordered := sortByTimeDesc(matches)

	recent := ordered
	if len(recent) > t.TrendWindow {
		recent = recent[:t.TrendWindow]
	}
	var previous []models.Match
	if len(ordered) > len(recent) {
		previous = ordered[len(recent):]
		if len(previous) > t.TrendWindow {
			previous = previous[:t.TrendWindow]
		}
	}
	if len(recent) < t.TrendMinSide || len(previous) < t.TrendMinSide {
		return nil
	}

	rate := func(window []models.Match) float64 {
		wins := 0
		for _, m := range window {
			if tr, ok := resolveTeam(m, ref); ok && isWin(tr) {
				wins++
			}
		}
		return float64(wins) / float64(len(window))
	}

	recentRate := rate(recent)
	previousRate := rate(previous)
	delta := (recentRate - previousRate) * 100

	direction := models.TrendFlat
	switch {
	case delta >= t.TrendBandPct:
		direction = models.TrendUp
	case delta <= -t.TrendBandPct:
		direction = models.TrendDown
	}

	return &models.WinRateTrend{
		Direction:       direction,
		DeltaPctPoints:  delta,
		RecentWinRate:   recentRate,
		PreviousWinRate: previousRate,
		RecentSample:    len(recent),
		PreviousSample:  len(previous),
	}
}

// FilterByTimeframe keeps matches from the last timeframeDays. Matches with
// unparsable timestamps are kept; non-positive timeframes are a no-op.
func FilterByTimeframe(matches []models.Match, timeframeDays int, now time.Time) []models.Match {
	if timeframeDays <= 0 {
		return matches
	}
	cutoff := now.AddDate(0, 0, -timeframeDays)
	out := make([]models.Match, 0, len(matches))
	for _, m := range matches {
		ts, ok := parseStart(m.StartTime)
		if !ok || !ts.Before(cutoff) {
			out = append(out, m)
		}
	}
	return out
}

// BuildRawInputs produces a bounded time-descending digest of the input
// matches for transparency payloads.
func BuildRawInputs(matches []models.Match, ref models.TeamRef, limit int) models.RawInputs {
	if limit <= 0 {
		limit = DefaultTuning().RawInputLimit
	}
	ordered := sortByTimeDesc(matches)
	truncated := len(ordered) > limit
	if truncated {
		ordered = ordered[:limit]
	}

	rows := make([]models.RawInputMatch, 0, len(ordered))
	for _, m := range ordered {
		row := models.RawInputMatch{
			MatchID:   m.ID,
			SeriesID:  m.SeriesID,
			StartTime: m.StartTime,
			MapName:   m.MapName,
			Result:    "?",
		}
		if tr, ok := resolveTeam(m, ref); ok {
			row.Score = fmt.Sprintf("%g-%g", tr.Score, opponentScore(m, tr))
			if tr.IsWinner != nil {
				if *tr.IsWinner {
					row.Result = "W"
				} else {
					row.Result = "L"
				}
			}
		}
		rows = append(rows, row)
	}

	return models.RawInputs{Matches: rows, Truncated: truncated, Total: len(matches)}
}
