package extract

import (
	"regexp"
	"strings"

	"reportlens/domain/report"
	"reportlens/domain/snapshot"
)

// maxKeyFindings bounds how many findings are lifted from the summary text.
const maxKeyFindings = 5

var bulletLine = regexp.MustCompile(`(?m)^\s*(?:[-*]|\d+[.)])\s+(.+)$`)

// Brief derives the executive brief from the summary section: the first
// sentence becomes the headline and bullet lines become key findings. When no
// summary section exists the brief is absent.
func Brief(sections []snapshot.Section) *report.ExecutiveBrief {
	sec, ok := snapshot.FindSection(sections, "executive", "summary")
	if !ok {
		return nil
	}

	brief := &report.ExecutiveBrief{}
	text := strings.TrimSpace(sec.Content)
	if idx := strings.IndexAny(text, ".!?"); idx > 0 {
		brief.Headline = strings.TrimSpace(text[:idx+1])
	} else if text != "" {
		brief.Headline = text
	}

	for _, m := range bulletLine.FindAllStringSubmatch(sec.Content, -1) {
		if len(brief.KeyFindings) >= maxKeyFindings {
			break
		}
		if f := strings.TrimSpace(m[1]); f != "" {
			brief.KeyFindings = append(brief.KeyFindings, f)
		}
	}
	return brief
}
