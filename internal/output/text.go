package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/dshills/ohmyfix/internal/review"
)

// TextWriter outputs a human-readable text report.
type TextWriter struct{}

func (t *TextWriter) Write(w io.Writer, report *review.Report) error {
	ew := &errWriter{w: w}

	header := "OhMyFix: " + report.Mode + " mode"
	if report.DryRun {
		header += ", dry run"
	}
	ew.println(header)
	ew.println(strings.Repeat("─", 60))

	for _, f := range report.Files {
		ew.printf("\n%s %s\n", fileIcon(f), f.Path)
		switch {
		case f.Error != "":
			ew.printf("  %s\n", f.Error)
			continue
		case f.Outcome.NoFindings:
			ew.println("  No errors found")
			continue
		case f.Outcome.Degraded:
			ew.println("  Model reply could not be parsed")
			continue
		}
		for _, fr := range f.Findings {
			loc := "?"
			if n := lineNumber(fr); n > 0 {
				loc = fmt.Sprintf("%d", n)
			}
			ew.printf("  %-12s line %-5s %s\n", fr.Status, loc, fr.Finding.ErroneousLine)
			for _, line := range wrapText(fr.Finding.Description, 70) {
				if line != "" {
					ew.printf("      %s\n", line)
				}
			}
		}
	}

	tot := report.Totals
	ew.printf("\n%s\n", strings.Repeat("─", 60))
	ew.printf("Files: %d | Findings: %d | Applied: %d | Skipped: %d | Unmatched: %d",
		len(report.Files), tot.Found, tot.Applied, tot.Skipped, tot.Unmatched)
	if tot.Blocked > 0 {
		ew.printf(" | Blocked: %d", tot.Blocked)
	}
	if tot.NotReviewed > 0 {
		ew.printf(" | Not reviewed: %d", tot.NotReviewed)
	}
	ew.println("")
	ew.printf("Completed in %dms\n", report.TotalMs)

	return ew.err
}

func fileIcon(f review.FileReport) string {
	switch {
	case f.Error != "":
		return "[!]"
	case f.Changed:
		return "[~]"
	case f.Outcome.Found == 0:
		return "[✓]"
	default:
		return "[-]"
	}
}

// errWriter wraps an io.Writer and captures the first error.
type errWriter struct {
	w   io.Writer
	err error
}

func (ew *errWriter) printf(format string, args ...any) {
	if ew.err != nil {
		return
	}
	_, ew.err = fmt.Fprintf(ew.w, format, args...)
}

func (ew *errWriter) println(s string) {
	if ew.err != nil {
		return
	}
	_, ew.err = fmt.Fprintln(ew.w, s)
}

func wrapText(text string, width int) []string {
	if len(text) <= width {
		return []string{text}
	}
	var lines []string
	words := strings.Fields(text)
	var current strings.Builder
	for _, word := range words {
		if current.Len()+len(word)+1 > width && current.Len() > 0 {
			lines = append(lines, current.String())
			current.Reset()
		}
		if current.Len() > 0 {
			current.WriteString(" ")
		}
		current.WriteString(word)
	}
	if current.Len() > 0 {
		lines = append(lines, current.String())
	}
	return lines
}
