package extract

import (
	"reportlens/domain/report"
	"reportlens/domain/snapshot"
)

// Caps on how many enhanced-analytics entries are considered. Like
// maxSegments, these bound rendering cost and are not correctness rules.
const (
	maxCorrelations = 10
	maxImportances  = 10
	maxSkews        = 10
)

// Correlations extracts valid column correlation pairs. Entries with missing
// column names or a coefficient outside [-1, 1] are dropped.
func Correlations(snap *snapshot.Snapshot) []report.CorrelationPair {
	var pairs []report.CorrelationPair
	for _, entry := range snap.Correlations() {
		if len(pairs) >= maxCorrelations {
			break
		}
		c1 := firstString(entry, "column1", "col1", "x")
		c2 := firstString(entry, "column2", "col2", "y")
		if c1 == "" || c2 == "" {
			continue
		}
		r := entry.Get("correlation")
		if !r.Exists() {
			r = entry.Get("value")
		}
		v := r.Float()
		if !r.Exists() || v < -1 || v > 1 {
			continue
		}
		pairs = append(pairs, report.CorrelationPair{Column1: c1, Column2: c2, Correlation: v})
	}
	return pairs
}

// Skews extracts per-column distribution skewness entries.
func Skews(snap *snapshot.Snapshot) []report.ColumnSkew {
	var skews []report.ColumnSkew
	for _, entry := range snap.Distributions() {
		if len(skews) >= maxSkews {
			break
		}
		col := firstString(entry, "column", "name")
		s := entry.Get("skewness")
		if col == "" || !s.Exists() {
			continue
		}
		skews = append(skews, report.ColumnSkew{Column: col, Skewness: s.Float()})
	}
	return skews
}

// Importances extracts feature importance weights.
func Importances(snap *snapshot.Snapshot) []report.FeatureWeight {
	var weights []report.FeatureWeight
	for _, entry := range snap.FeatureImportance() {
		if len(weights) >= maxImportances {
			break
		}
		f := firstString(entry, "feature", "name", "column")
		w := entry.Get("importance")
		if !w.Exists() {
			w = entry.Get("weight")
		}
		if f == "" || !w.Exists() || w.Float() < 0 {
			continue
		}
		weights = append(weights, report.FeatureWeight{Feature: f, Importance: w.Float()})
	}
	return weights
}

// Anomalies extracts the anomaly summary, scanning the report text for
// "N anomalies" / "anomaly rate: X%" phrasings when the structured block is
// absent. Returns nil when nothing about anomalies is derivable.
func Anomalies(snap *snapshot.Snapshot, text string) *report.AnomalySummary {
	if count, ok := snap.AnomalyCount(); ok {
		summary := &report.AnomalySummary{Count: count}
		if pct, ok := snap.AnomalyPercentage(); ok {
			summary.Percentage = &pct
		}
		return summary
	}

	if v, ok := scanNumber(text, `anomal(?:ies|y count)`, `anomalies detected`); ok && v >= 0 {
		summary := &report.AnomalySummary{Count: int(v)}
		if pct, ok := scanNumber(text, `anomaly (?:rate|percentage)`); ok && pct >= 0 && pct <= 100 {
			summary.Percentage = &pct
		}
		return summary
	}
	return nil
}
