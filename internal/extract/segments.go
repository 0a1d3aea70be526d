package extract

import (
	"strings"

	"github.com/tidwall/gjson"

	"reportlens/domain/report"
	"reportlens/domain/snapshot"
)

// maxSegments bounds how many persona entries are considered. The cap exists
// to bound downstream rendering cost, not for correctness.
const maxSegments = 8

// Segments extracts persona/cluster records from the snapshot. Entries without
// a name or with a non-positive size are skipped rather than repaired.
func Segments(snap *snapshot.Snapshot) []report.Segment {
	var segs []report.Segment
	for _, entry := range snap.Personas() {
		if len(segs) >= maxSegments {
			break
		}
		seg, ok := parseSegment(entry)
		if !ok {
			continue
		}
		segs = append(segs, seg)
	}
	return segs
}

func parseSegment(entry gjson.Result) (report.Segment, bool) {
	name := firstString(entry, "name", "persona", "label")
	if name == "" {
		return report.Segment{}, false
	}
	size := firstNumber(entry, "size", "count", "members")
	if size <= 0 {
		return report.Segment{}, false
	}
	return report.Segment{
		Name:              name,
		DisplayName:       firstString(entry, "display_name", "displayName"),
		Size:              int(size),
		AvgValue:          firstNumber(entry, "avg_value", "average_value", "avg_spend"),
		RiskLevel:         parseRisk(firstString(entry, "risk_level", "risk")),
		KeyTrait:          firstString(entry, "key_trait", "trait"),
		RecommendedAction: firstString(entry, "recommended_action", "action"),
	}, true
}

func parseRisk(raw string) report.RiskLevel {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "low":
		return report.RiskLow
	case "moderate", "medium":
		return report.RiskModerate
	case "high":
		return report.RiskHigh
	}
	return report.RiskUnknown
}

func firstString(entry gjson.Result, keys ...string) string {
	for _, k := range keys {
		if r := entry.Get(k); r.Type == gjson.String && strings.TrimSpace(r.String()) != "" {
			return strings.TrimSpace(r.String())
		}
	}
	return ""
}

func firstNumber(entry gjson.Result, keys ...string) float64 {
	for _, k := range keys {
		if r := entry.Get(k); r.Type == gjson.Number {
			return r.Float()
		}
	}
	return 0
}
