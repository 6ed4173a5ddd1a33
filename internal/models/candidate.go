package models

// CandidateStatus is the closed selected/not-selected x normal/low-confidence
// enumeration. Keeping it a closed set (rather than concatenating strings at
// render time) lets callers switch exhaustively.
type CandidateStatus string

const (
	StatusSelected                 CandidateStatus = "Selected"
	StatusLowConfidenceSelected    CandidateStatus = "LowConfidenceSelected"
	StatusNotSelected              CandidateStatus = "NotSelected"
	StatusLowConfidenceNotSelected CandidateStatus = "LowConfidenceNotSelected"
)

// NewCandidateStatus maps the two independent axes onto the closed enum.
func NewCandidateStatus(selected, lowConfidence bool) CandidateStatus {
	switch {
	case selected && lowConfidence:
		return StatusLowConfidenceSelected
	case selected:
		return StatusSelected
	case lowConfidence:
		return StatusLowConfidenceNotSelected
	default:
		return StatusNotSelected
	}
}

// Selected reports whether the status is on the selected axis.
func (s CandidateStatus) Selected() bool {
	return s == StatusSelected || s == StatusLowConfidenceSelected
}

// CandidateBreakdown exposes every factor of the impact formula so the
// transparency UI can show its work.
type CandidateBreakdown struct {
	WeaknessSeverity float64    `json:"weakness_severity"` // 0..1
	Exploitability   float64    `json:"exploitability"`    // 0..1
	Confidence       Confidence `json:"confidence"`
	ConfidenceFactor float64    `json:"confidence_factor"`
	Impact           int        `json:"impact"` // 0..100
}

// Candidate is one scored recommendation produced by a rule before
// ranking and selection.
type Candidate struct {
	ID             string             `json:"id"`
	Rule           string             `json:"rule"`
	Insight        string             `json:"insight"`
	Evidence       string             `json:"evidence"`
	Status         CandidateStatus    `json:"status"`
	Breakdown      CandidateBreakdown `json:"breakdown"`
	WhyNotSelected string             `json:"why_not_selected,omitempty"`
}

// HowToWinItem is one selected recommendation as rendered in a report.
type HowToWinItem struct {
	Insight  string `json:"insight"`
	Evidence string `json:"evidence"`
}

// EngineResult carries the full ranked candidate set alongside the
// selected top insights, for transparency and debugging UIs.
type EngineResult struct {
	Selected   []HowToWinItem `json:"selected"`
	Candidates []Candidate    `json:"candidates"`
	Formula    string         `json:"formula"`
}

// MatchupCandidate is one two-team recommendation. Matchup scores are an
// open scale rather than the 0..100 impact of single-team candidates.
type MatchupCandidate struct {
	ID         string     `json:"id"`
	Rule       string     `json:"rule"`
	Insight    string     `json:"insight"`
	Evidence   string     `json:"evidence"`
	Confidence Confidence `json:"confidence"`
	Score      float64    `json:"score"`
}
