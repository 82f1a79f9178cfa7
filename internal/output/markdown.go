package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/dshills/ohmyfix/internal/review"
)

// MarkdownWriter outputs a markdown report with one collapsible section per
// file that had findings.
type MarkdownWriter struct{}

func (m *MarkdownWriter) Write(w io.Writer, report *review.Report) error {
	ew := &errWriter{w: w}
	tot := report.Totals

	ew.printf("## OhMyFix Report\n\n")
	if report.DryRun {
		ew.printf("_Dry run: no files were written._\n\n")
	}

	ew.printf("| Status | Count |\n")
	ew.printf("|--------|-------|\n")
	ew.printf("| Applied | %d |\n", tot.Applied)
	ew.printf("| Skipped | %d |\n", tot.Skipped)
	ew.printf("| Unmatched | %d |\n", tot.Unmatched)
	if tot.Blocked > 0 {
		ew.printf("| Blocked | %d |\n", tot.Blocked)
	}
	if tot.NotReviewed > 0 {
		ew.printf("| Not reviewed | %d |\n", tot.NotReviewed)
	}
	ew.printf("| **Total** | **%d** |\n\n", tot.Found)

	if tot.Found == 0 {
		ew.println("No errors found. :white_check_mark:")
		return ew.err
	}

	for _, f := range report.Files {
		if len(f.Findings) == 0 {
			continue
		}
		ew.printf("<details>\n<summary><code>%s</code> (%d)</summary>\n\n", f.Path, len(f.Findings))
		lang := review.FenceTag(f.Path)
		for _, fr := range f.Findings {
			ew.printf("#### %s %s\n\n", statusIcon(fr.Status), fr.Status)
			if n := lineNumber(fr); n > 0 {
				ew.printf("**Line %d** (%s match)\n\n", n, fr.Match.Strategy)
			}
			ew.printf("Error: `%s`\n\n", strings.ReplaceAll(fr.Finding.ErroneousLine, "`", "'"))
			if fr.Finding.Description != "" {
				ew.printf("%s\n\n", fr.Finding.Description)
			}
			ew.printf("```%s\n%s\n```\n\n", lang, fr.Finding.Solution)
		}
		ew.printf("</details>\n\n")
	}

	ew.printf("*Completed in %dms*\n", report.TotalMs)
	return ew.err
}

func statusIcon(s review.Status) string {
	switch s {
	case review.StatusApplied:
		return ":white_check_mark:"
	case review.StatusSkipped:
		return ":fast_forward:"
	case review.StatusUnmatched:
		return ":grey_question:"
	case review.StatusBlocked:
		return ":no_entry:"
	default:
		return ":white_circle:"
	}
}
