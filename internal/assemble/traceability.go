package assemble

import (
	"strings"

	"reportlens/domain/report"
	"reportlens/domain/snapshot"
)

// phraseLink pairs a report phrase with the evidence panel that backs it.
// The table is ordered so traceability output is deterministic.
type phraseLink struct {
	phrase     string
	evidenceID string
}

var phraseTable = []phraseLink{
	{"data quality", "evidence-quality"},
	{"segment", "evidence-segments"},
	{"correlation", "evidence-correlations"},
	{"anomal", "evidence-anomalies"},
	{"feature importance", "evidence-importance"},
	{"distribution", "evidence-distributions"},
}

// traceability scans the designated analysis section for table phrases,
// case-insensitively. Each phrase records at most one link, on its first
// occurrence; phrases sharing an evidence id are not deduplicated further.
func traceability(sections []snapshot.Section) []report.EvidenceLink {
	sec, ok := snapshot.FindSection(sections, "detailed", "analysis", "findings")
	if !ok {
		return nil
	}
	text := strings.ToLower(sec.Content)

	var links []report.EvidenceLink
	for _, pl := range phraseTable {
		if strings.Contains(text, pl.phrase) {
			links = append(links, report.EvidenceLink{Phrase: pl.phrase, EvidenceID: pl.evidenceID})
		}
	}
	return links
}
