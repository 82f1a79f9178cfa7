package review

import "strings"

const quoteChars = "\"'`"

// Locate finds the line that erroneousLine refers to in the current state of
// doc. Tiers are tried in order (exact, normalized, substring) and within a
// tier the first line from the top wins, so duplicated lines always resolve
// to their first occurrence.
func Locate(doc *Document, erroneousLine string) MatchResult {
	needle := normalizeLine(erroneousLine)
	if needle == "" {
		return MatchResult{Strategy: StrategyNotFound}
	}
	collapsed := collapseSpace(needle)

	for i, l := range doc.lines {
		if normalizeLine(l) == needle {
			return MatchResult{Found: true, Line: i, Strategy: StrategyExact}
		}
	}
	for i, l := range doc.lines {
		if collapseSpace(normalizeLine(l)) == collapsed {
			return MatchResult{Found: true, Line: i, Strategy: StrategyNormalized}
		}
	}
	for i, l := range doc.lines {
		if strings.Contains(collapseSpace(normalizeLine(l)), collapsed) {
			return MatchResult{Found: true, Line: i, Strategy: StrategySubstring}
		}
	}
	return MatchResult{Strategy: StrategyNotFound}
}

// normalizeLine trims surrounding whitespace and strips one layer of quote
// characters from each end.
func normalizeLine(s string) string {
	s = strings.TrimSpace(s)
	if s != "" && strings.ContainsRune(quoteChars, rune(s[0])) {
		s = s[1:]
	}
	if s != "" && strings.ContainsRune(quoteChars, rune(s[len(s)-1])) {
		s = s[:len(s)-1]
	}
	return strings.TrimSpace(s)
}

func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
