package extract

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/gomarkdown/markdown/ast"
	"github.com/gomarkdown/markdown/parser"
)

// FlattenMarkdown reduces a markdown section to plain text, one block per
// line, so the key-value scanners see "Data quality score: 87" rather than
// heading markers and emphasis runes.
func FlattenMarkdown(src string) string {
	if strings.TrimSpace(src) == "" {
		return ""
	}
	p := parser.NewWithExtensions(parser.CommonExtensions)
	doc := p.Parse([]byte(src))

	var b strings.Builder
	ast.WalkFunc(doc, func(node ast.Node, entering bool) ast.WalkStatus {
		if entering {
			if leaf := node.AsLeaf(); leaf != nil && len(leaf.Literal) > 0 {
				b.Write(leaf.Literal)
			}
			return ast.GoToNext
		}
		switch node.(type) {
		case *ast.Paragraph, *ast.Heading, *ast.ListItem, *ast.TableRow:
			b.WriteByte('\n')
		}
		return ast.GoToNext
	})
	return b.String()
}

// number matches an integer or decimal with optional thousands separators.
const number = `([0-9][0-9,]*(?:\.[0-9]+)?)`

// scanNumber finds the first case-insensitive "<key> : <number>" occurrence
// for any of the given key patterns. Keys are regex fragments.
func scanNumber(text string, keys ...string) (float64, bool) {
	for _, key := range keys {
		re := regexp.MustCompile(`(?i)` + key + `\s*[:=]\s*\$?` + number)
		m := re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		v, err := strconv.ParseFloat(strings.ReplaceAll(m[1], ",", ""), 64)
		if err != nil {
			continue
		}
		return v, true
	}
	return 0, false
}
