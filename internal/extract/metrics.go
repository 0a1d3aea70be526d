package extract

import (
	"reportlens/domain/report"
	"reportlens/domain/snapshot"
)

// NormalizeConfidence maps a confidence figure onto the canonical 0-100 scale.
// Backends report either 0-1 fractions or 0-100 percentages; values at or
// below 1 are treated as fractions. This is the single normalization point:
// every threshold downstream compares against 0-100 only.
func NormalizeConfidence(v float64) float64 {
	if v <= 1.0 {
		return v * 100
	}
	return v
}

// Metrics derives the summary metrics from a snapshot, falling back to
// key-value scans of the flattened report text when structured fields are
// absent. A metric that is neither structurally nor textually present stays
// nil; no value is ever manufactured from unrelated numbers.
func Metrics(snap *snapshot.Snapshot, text string) report.ExtractedMetrics {
	var m report.ExtractedMetrics

	if v, ok := snap.QualityScore(); ok && v >= 0 && v <= 100 {
		m.DataQualityScore = &v
	} else if v, ok := scanNumber(text, `data quality(?: score)?`, `quality score`); ok && v >= 0 && v <= 100 {
		m.DataQualityScore = &v
	}

	if v, ok := snap.RecordsProcessed(); ok {
		m.RecordsProcessed = &v
	} else if v, ok := scanNumber(text, `records (?:processed|analyzed)`, `rows analyzed`, `total records`); ok && v >= 0 {
		n := int(v)
		m.RecordsProcessed = &n
	}

	if v, ok := snap.Confidence(); ok && v >= 0 {
		c := NormalizeConfidence(v)
		if c <= 100 {
			m.ConfidenceLevel = &c
		}
	} else if v, ok := scanNumber(text, `confidence(?: level)?`); ok && v >= 0 {
		c := NormalizeConfidence(v)
		if c <= 100 {
			m.ConfidenceLevel = &c
		}
	}

	return m
}
