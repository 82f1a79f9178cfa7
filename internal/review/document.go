package review

import (
	"fmt"
	"strings"
)

// Document is the mutable line view of the text being patched. Each line
// keeps its own terminator ("\n", "\r\n", or "" for a last line without
// one), so untouched lines serialize byte for byte.
type Document struct {
	lines []string
	ends  []string
}

// NewDocument splits text into lines.
func NewDocument(text string) *Document {
	d := &Document{}
	for text != "" {
		i := strings.IndexByte(text, '\n')
		if i < 0 {
			d.lines = append(d.lines, text)
			d.ends = append(d.ends, "")
			break
		}
		line, end := text[:i], "\n"
		if strings.HasSuffix(line, "\r") {
			line, end = line[:len(line)-1], "\r\n"
		}
		d.lines = append(d.lines, line)
		d.ends = append(d.ends, end)
		text = text[i+1:]
	}
	if len(d.lines) == 0 {
		d.lines, d.ends = []string{""}, []string{""}
	}
	return d
}

// Lines returns a copy of the current lines.
func (d *Document) Lines() []string {
	out := make([]string, len(d.lines))
	copy(out, d.lines)
	return out
}

// Len returns the current number of lines.
func (d *Document) Len() int { return len(d.lines) }

// Line returns the line at index i.
func (d *Document) Line(i int) string { return d.lines[i] }

// Replace substitutes the line at index i with solution. A multi-line
// solution expands in place, so indices after i shift by the number of
// extra lines. The last inserted line takes the replaced line's terminator;
// the ones before it take the document's first terminator.
func (d *Document) Replace(i int, solution string) error {
	if i < 0 || i >= len(d.lines) {
		return fmt.Errorf("line %d is out of range (0-%d)", i, len(d.lines)-1)
	}
	solution = strings.ReplaceAll(solution, "\r\n", "\n")
	repl := strings.Split(solution, "\n")

	inner := d.ends[i]
	if inner == "" {
		inner = d.firstEnd()
	}
	ends := make([]string, len(repl))
	for k := range ends {
		ends[k] = inner
	}
	ends[len(ends)-1] = d.ends[i]

	d.lines = splice(d.lines, i, repl)
	d.ends = splice(d.ends, i, ends)
	return nil
}

func (d *Document) firstEnd() string {
	for _, e := range d.ends {
		if e != "" {
			return e
		}
	}
	return "\n"
}

func splice(s []string, i int, repl []string) []string {
	out := make([]string, 0, len(s)+len(repl)-1)
	out = append(out, s[:i]...)
	out = append(out, repl...)
	return append(out, s[i+1:]...)
}

// String serializes the document with its original line endings.
func (d *Document) String() string {
	var b strings.Builder
	for k, l := range d.lines {
		b.WriteString(l)
		b.WriteString(d.ends[k])
	}
	return b.String()
}

// Reindent prefixes every line of solution with the leading whitespace of
// target when the solution itself carries no indentation on its first line.
// Blank lines are left empty.
func Reindent(target, solution string) string {
	indent := leadingWhitespace(target)
	if indent == "" || solution == "" || leadingWhitespace(solution) != "" {
		return solution
	}
	lines := strings.Split(solution, "\n")
	for i, l := range lines {
		if strings.TrimSpace(l) == "" {
			lines[i] = ""
			continue
		}
		lines[i] = indent + l
	}
	return strings.Join(lines, "\n")
}

func leadingWhitespace(s string) string {
	return s[:len(s)-len(strings.TrimLeft(s, " \t"))]
}
