// Package guidance translates raw backend diagnostic codes into explanations
// a report reader can act on.
package guidance

import (
	"strings"

	"github.com/tidwall/gjson"

	"reportlens/domain/report"
)

// entry is the catalog value for one known diagnostic key.
type entry struct {
	explanation string
	remediation string
}

// catalog maps known guardrail keys to guidance. Keys the backend invents
// that are not listed here are still surfaced, carrying the raw key as their
// explanation; nothing is dropped silently.
var catalog = map[string]entry{
	"insufficient_rows": {
		explanation: "The dataset has too few rows for reliable analysis",
		remediation: "Upload a dataset with at least a few hundred rows",
	},
	"missing_target_column": {
		explanation: "No target column could be identified for the requested analysis",
		remediation: "Name a target column explicitly or include an outcome-like column",
	},
	"high_null_rate": {
		explanation: "One or more columns are mostly empty",
		remediation: "Fill or drop sparse columns before re-running",
	},
	"low_variance": {
		explanation: "Key columns barely vary, so no patterns can be separated",
		remediation: "Check that the export includes the full value range",
	},
	"duplicate_key_columns": {
		explanation: "Multiple columns appear to be identifiers for the same entity",
		remediation: "Keep a single identifier column and remove the duplicates",
	},
	"unsupported_file_type": {
		explanation: "The uploaded file format is not supported",
		remediation: "Upload a .csv or .xlsx export",
	},
	"single_column_dataset": {
		explanation: "Only one column was found, so relationships cannot be analyzed",
		remediation: "Include the related columns in the export",
	},
	"mixed_type_column": {
		explanation: "A column mixes numbers and text, which blocks numeric analysis",
		remediation: "Split or clean the column so each holds a single type",
	},
}

// sentinel prefixes that mark diagnostic lines in free-text guardrail output.
var sentinels = []string{"Reason:", "Blocker:"}

// Map turns a raw diagnostics payload into guidance entries. The payload may
// be a JSON object of guardrail keys or free text; malformed JSON degrades to
// the free-text line scan rather than failing.
func Map(raw string) []report.GuidanceEntry {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil
	}
	if gjson.Valid(trimmed) {
		if parsed := gjson.Parse(trimmed); parsed.IsObject() {
			return fromObject(parsed)
		}
	}
	return fromText(trimmed)
}

// fromObject emits one entry per populated failing key.
func fromObject(obj gjson.Result) []report.GuidanceEntry {
	var entries []report.GuidanceEntry
	obj.ForEach(func(key, value gjson.Result) bool {
		if !failing(value) {
			return true
		}
		entries = append(entries, lookup(key.String()))
		return true
	})
	return entries
}

// failing reports whether a guardrail value indicates a triggered diagnostic:
// boolean true, a non-empty string, or a non-empty array.
func failing(value gjson.Result) bool {
	switch {
	case value.Type == gjson.True:
		return true
	case value.Type == gjson.String:
		return strings.TrimSpace(value.String()) != ""
	case value.IsArray():
		return len(value.Array()) > 0
	}
	return false
}

// fromText extracts codes from lines carrying a sentinel prefix.
func fromText(text string) []report.GuidanceEntry {
	var entries []report.GuidanceEntry
	for _, line := range strings.Split(text, "\n") {
		for _, sentinel := range sentinels {
			idx := strings.Index(line, sentinel)
			if idx < 0 {
				continue
			}
			code := strings.TrimSpace(line[idx+len(sentinel):])
			if code == "" {
				continue
			}
			entries = append(entries, lookup(code))
			break
		}
	}
	return entries
}

// lookup resolves a raw code against the catalog. Unknown codes are kept
// as-is: the raw key becomes the explanation.
func lookup(code string) report.GuidanceEntry {
	normalized := strings.ToLower(strings.TrimSpace(code))
	normalized = strings.ReplaceAll(normalized, " ", "_")
	if e, ok := catalog[normalized]; ok {
		return report.GuidanceEntry{
			Code:        normalized,
			Explanation: e.explanation,
			Remediation: e.remediation,
		}
	}
	return report.GuidanceEntry{Code: code, Explanation: code}
}
