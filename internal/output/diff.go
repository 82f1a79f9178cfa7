package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/sergi/go-diff/diffmatchpatch"
)

// diffContext is the number of unchanged lines shown around each change.
const diffContext = 3

type diffLine struct {
	op   diffmatchpatch.Operation
	text string
}

// WriteDiff renders a unified-style line diff of original against final.
// Nothing is written when the texts are equal. With color set, added and
// removed lines are styled for w.
func WriteDiff(w io.Writer, path, original, final string, color bool) error {
	if original == final {
		return nil
	}
	lines := lineDiff(original, final)

	add, del, hunk := plainRender, plainRender, plainRender
	if color {
		r := lipgloss.NewRenderer(w)
		add = r.NewStyle().Foreground(lipgloss.Color("42")).Render
		del = r.NewStyle().Foreground(lipgloss.Color("196")).Render
		hunk = r.NewStyle().Foreground(lipgloss.Color("81")).Render
	}

	ew := &errWriter{w: w}
	ew.printf("--- a/%s\n+++ b/%s\n", path, path)

	oldLine, newLine := 1, 1
	lastShown := -2
	for i, l := range lines {
		if !nearChange(lines, i) {
			if l.op == diffmatchpatch.DiffEqual {
				oldLine++
				newLine++
			}
			continue
		}
		if lastShown != i-1 {
			ew.println(hunk(fmt.Sprintf("@@ -%d +%d @@", oldLine, newLine)))
		}
		lastShown = i
		switch l.op {
		case diffmatchpatch.DiffEqual:
			ew.println(" " + l.text)
			oldLine++
			newLine++
		case diffmatchpatch.DiffDelete:
			ew.println(del("-" + l.text))
			oldLine++
		case diffmatchpatch.DiffInsert:
			ew.println(add("+" + l.text))
			newLine++
		}
	}
	return ew.err
}

func plainRender(s ...string) string { return strings.Join(s, " ") }

// lineDiff diffs two texts line by line.
func lineDiff(original, final string) []diffLine {
	dmp := diffmatchpatch.New()
	a, b, index := dmp.DiffLinesToChars(original, final)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), index)

	var out []diffLine
	for _, d := range diffs {
		text := strings.TrimSuffix(d.Text, "\n")
		for _, l := range strings.Split(text, "\n") {
			out = append(out, diffLine{op: d.Type, text: strings.TrimSuffix(l, "\r")})
		}
	}
	return out
}

// nearChange reports whether line i is a change or within diffContext lines
// of one.
func nearChange(lines []diffLine, i int) bool {
	lo, hi := max(0, i-diffContext), min(len(lines)-1, i+diffContext)
	for j := lo; j <= hi; j++ {
		if lines[j].op != diffmatchpatch.DiffEqual {
			return true
		}
	}
	return false
}
