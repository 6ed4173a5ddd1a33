package engine

import (
	"fmt"
	"sort"

	"github.com/lassestilvang/scoutmaster-3000-sub000/internal/models"
)

// Formula is the scoring description surfaced in transparency payloads.
const Formula = "impact = weaknessSeverity × exploitability × confidence"

// Rank sorts candidates by impact, selects the top slice and labels every
// candidate with its selection status. Equal impacts keep generation order
// (rule-declaration order), which makes ranking fully deterministic.
func Rank(candidates []models.Candidate, t Tuning) models.EngineResult {
	ranked := make([]models.Candidate, len(candidates))
	copy(ranked, candidates)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Breakdown.Impact > ranked[j].Breakdown.Impact
	})

	top := t.SelectTop
	if top <= 0 {
		top = DefaultTuning().SelectTop
	}
	if top > len(ranked) {
		top = len(ranked)
	}

	cutoff := 0
	if top > 0 {
		cutoff = ranked[top-1].Breakdown.Impact
	}

	selected := make([]models.HowToWinItem, 0, top)
	for i := range ranked {
		isSelected := i < top
		lowConf := ranked[i].Breakdown.Confidence == models.ConfidenceLow
		ranked[i].Status = models.NewCandidateStatus(isSelected, lowConf)
		if isSelected {
			selected = append(selected, models.HowToWinItem{
				Insight:  ranked[i].Insight,
				Evidence: ranked[i].Evidence,
			})
			continue
		}
		ranked[i].WhyNotSelected = fmt.Sprintf(
			"impact %d did not reach the selection cutoff of %d",
			ranked[i].Breakdown.Impact, cutoff)
	}

	return models.EngineResult{
		Selected:   selected,
		Candidates: ranked,
		Formula:    Formula,
	}
}

// HowToWin is the full single-team pipeline: rules then ranking.
func HowToWin(stats TeamStats, t Tuning) models.EngineResult {
	return Rank(GenerateCandidates(stats, t), t)
}
