package assemble

import (
	"reportlens/domain/report"
)

// Banding thresholds on the canonical 0-100 confidence scale.
const (
	highBandAt     = 80.0
	moderateBandAt = 50.0
)

// band classifies an already-normalized confidence figure. Scale conversion
// happens once, in extract.NormalizeConfidence; a fractional input here means
// the run really is below 1% confident.
func band(c float64) (report.ConfidenceBand, int, string) {
	switch {
	case c >= highBandAt:
		return report.BandHigh, 3, "teal"
	case c >= moderateBandAt:
		return report.BandModerate, 2, "amber"
	default:
		return report.BandLow, 1, "muted"
	}
}

// briefStatus derives the brief's status label and accent from the same
// banding, with the safe-mode floor: blocking guidance forces the limited
// amber state regardless of score.
func briefStatus(confidence float64, safeMode bool, guidance []report.GuidanceEntry) (string, string) {
	if safeMode && len(guidance) > 0 {
		return "limited", "amber"
	}
	b, _, tone := band(confidence)
	switch b {
	case report.BandHigh:
		return "high", tone
	case report.BandModerate:
		return "moderate", tone
	default:
		return "limited", tone
	}
}
