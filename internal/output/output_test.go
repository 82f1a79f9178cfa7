package output

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/ohmyfix/internal/review"
)

func sampleReport() *review.Report {
	r := &review.Report{Tool: "ohmyfix", Version: "1.0", RunID: "run-1", Mode: "codebase", Files: []review.FileReport{}}
	r.AddFile(review.FileReport{
		Path:    "app.js",
		Changed: true,
		Findings: []review.FindingResult{
			{
				Finding: review.Finding{ErroneousLine: "consol.log(a)", Description: "console is misspelled", Solution: "console.log(a)"},
				Status:  review.StatusApplied,
				Match:   review.MatchResult{Found: true, Line: 4, Strategy: review.StrategyExact},
			},
			{
				Finding: review.Finding{ErroneousLine: "nowhere()", Solution: "somewhere()"},
				Status:  review.StatusUnmatched,
				Match:   review.MatchResult{Strategy: review.StrategyNotFound},
			},
		},
		Outcome: review.Outcome{Found: 2, Applied: 1, Unmatched: 1},
	})
	r.AddFile(review.FileReport{Path: "clean.js", Findings: []review.FindingResult{}, Outcome: review.Outcome{NoFindings: true}})
	r.AddFile(review.FileReport{Path: ".env", Error: review.SkippedByPathPolicy, Findings: []review.FindingResult{}})
	return r
}

func TestGetWriter(t *testing.T) {
	for _, f := range Formats {
		_, err := GetWriter(f)
		assert.NoError(t, err, f)
	}
	_, err := GetWriter("xml")
	assert.Error(t, err)
}

func TestTextWriter(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, (&TextWriter{}).Write(&buf, sampleReport()))
	out := buf.String()

	assert.Contains(t, out, "codebase mode")
	assert.Contains(t, out, "[~] app.js")
	assert.Contains(t, out, "applied      line 5     consol.log(a)")
	assert.Contains(t, out, "unmatched    line ?     nowhere()")
	assert.Contains(t, out, "console is misspelled")
	assert.Contains(t, out, "clean.js\n  No errors found")
	assert.Contains(t, out, "[!] .env")
	assert.Contains(t, out, "Files: 3 | Findings: 2 | Applied: 1 | Skipped: 0 | Unmatched: 1")
}

func TestTextWriter_DryRun(t *testing.T) {
	r := review.NewReport("file", true)
	var buf bytes.Buffer
	require.NoError(t, (&TextWriter{}).Write(&buf, r))
	assert.Contains(t, buf.String(), "file mode, dry run")
}

func TestJSONWriter(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, (&JSONWriter{}).Write(&buf, sampleReport()))

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, "ohmyfix", decoded["tool"])
	assert.Equal(t, "run-1", decoded["runId"])
	files := decoded["files"].([]any)
	assert.Len(t, files, 3)
	first := files[0].(map[string]any)
	assert.NotContains(t, first, "Original")
	assert.Equal(t, float64(1), decoded["totals"].(map[string]any)["applied"])
}

func TestMarkdownWriter(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, (&MarkdownWriter{}).Write(&buf, sampleReport()))
	out := buf.String()

	assert.Contains(t, out, "## OhMyFix Report")
	assert.Contains(t, out, "| Applied | 1 |")
	assert.Contains(t, out, "<summary><code>app.js</code> (2)</summary>")
	assert.Contains(t, out, "**Line 5** (exact match)")
	assert.Contains(t, out, "```javascript\nconsole.log(a)\n```")
	assert.NotContains(t, out, "clean.js")
}

func TestMarkdownWriter_NoFindings(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, (&MarkdownWriter{}).Write(&buf, review.NewReport("file", false)))
	assert.Contains(t, buf.String(), "No errors found.")
}

func TestSARIFWriter(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, (&SARIFWriter{}).Write(&buf, sampleReport()))

	var log sarifLog
	require.NoError(t, json.Unmarshal(buf.Bytes(), &log))
	assert.Equal(t, "2.1.0", log.Version)
	require.Len(t, log.Runs, 1)
	results := log.Runs[0].Results
	require.Len(t, results, 2)

	assert.Equal(t, "note", results[0].Level)
	assert.Equal(t, "console is misspelled", results[0].Message.Text)
	require.NotNil(t, results[0].Locations[0].PhysicalLocation.Region)
	assert.Equal(t, 5, results[0].Locations[0].PhysicalLocation.Region.StartLine)

	assert.Equal(t, "warning", results[1].Level)
	assert.Equal(t, "Error: nowhere()", results[1].Message.Text)
	assert.Nil(t, results[1].Locations[0].PhysicalLocation.Region)
}

func TestWriteReport_ToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.json")
	require.NoError(t, WriteReport(sampleReport(), "json", path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "{"))
}

func TestWrapText(t *testing.T) {
	lines := wrapText(strings.Repeat("word ", 30), 20)
	assert.Greater(t, len(lines), 1)
	for _, l := range lines {
		assert.LessOrEqual(t, len(l), 20)
	}
}
