package review

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_Sentinel(t *testing.T) {
	for _, raw := range []string{"No errors found", "  No errors found\n", "\nNo errors found\r\n"} {
		res := Parse(raw)
		assert.True(t, res.NoFindings, "%q", raw)
		assert.False(t, res.Degraded)
		assert.NotNil(t, res.Findings)
		assert.Empty(t, res.Findings)
	}
}

func TestParse_SentinelInsideProseIsNotClean(t *testing.T) {
	res := Parse("I looked carefully. No errors found")
	assert.False(t, res.NoFindings)
	assert.True(t, res.Degraded)
}

func TestParse_SinglePair(t *testing.T) {
	raw := "Error: let a = 1\nSolution: ```javascript\nlet a = 1;\n```\n"

	res := Parse(raw)
	require.Len(t, res.Findings, 1)
	assert.Equal(t, "let a = 1", res.Findings[0].ErroneousLine)
	assert.Equal(t, "let a = 1;", res.Findings[0].Solution)
	assert.False(t, res.Findings[0].Partial)
	assert.False(t, res.Degraded)
	assert.Zero(t, res.PartialSolutions)
}

func TestParse_MultiplePairsInOrder(t *testing.T) {
	raw := `Error: pritn("a")
The function name is misspelled.
Solution: ` + "```python" + `
print("a")
` + "```" + `

Error: if x = 1:
Solution: ` + "```python" + `
if x == 1:
` + "```"

	res := Parse(raw)
	require.Len(t, res.Findings, 2)
	assert.Equal(t, `pritn("a")`, res.Findings[0].ErroneousLine)
	assert.Equal(t, "The function name is misspelled.", res.Findings[0].Description)
	assert.Equal(t, `print("a")`, res.Findings[0].Solution)
	assert.Equal(t, "if x = 1:", res.Findings[1].ErroneousLine)
	assert.Equal(t, "if x == 1:", res.Findings[1].Solution)
	assert.Empty(t, res.Findings[1].Description)
}

func TestParse_FenceOnNextLine(t *testing.T) {
	raw := "Error: x := foo(\nSolution:\n\n```go\nx := foo()\n```"

	res := Parse(raw)
	require.Len(t, res.Findings, 1)
	assert.Equal(t, "x := foo()", res.Findings[0].Solution)
}

func TestParse_MultiLineSolution(t *testing.T) {
	raw := "Error: if (a) {\nSolution: ```js\nif (a) {\n  b();\n```"

	res := Parse(raw)
	require.Len(t, res.Findings, 1)
	assert.Equal(t, "if (a) {\n  b();", res.Findings[0].Solution)
	assert.False(t, res.Findings[0].Partial)
}

func TestParse_UnterminatedSolution(t *testing.T) {
	raw := "Error: a\nSolution: ```\nb\nc"

	res := Parse(raw)
	require.Len(t, res.Findings, 1)
	assert.Equal(t, "b\nc", res.Findings[0].Solution)
	assert.True(t, res.Findings[0].Partial)
	assert.Equal(t, 1, res.PartialSolutions)
	assert.False(t, res.Degraded)
}

func TestParse_ErrorWithoutSolutionDropped(t *testing.T) {
	raw := "Error: first line\nSome prose\nError: second line\nSolution: ```\nfixed\n```\nError: dangling"

	res := Parse(raw)
	require.Len(t, res.Findings, 1)
	assert.Equal(t, "second line", res.Findings[0].ErroneousLine)
	assert.Equal(t, "fixed", res.Findings[0].Solution)
	assert.Empty(t, res.Findings[0].Description)
}

func TestParse_OrphanSolutionDropped(t *testing.T) {
	raw := "Solution: ```\nnothing to attach\n```\nError: a\nSolution: ```\nb\n```"

	res := Parse(raw)
	require.Len(t, res.Findings, 1)
	assert.Equal(t, "a", res.Findings[0].ErroneousLine)
	assert.Equal(t, "b", res.Findings[0].Solution)
}

func TestParse_SolutionWithoutFenceFallsBack(t *testing.T) {
	raw := "Error: a\nSolution: just prose\nmore prose\nSolution: ```\nb\n```"

	res := Parse(raw)
	require.Len(t, res.Findings, 1)
	assert.Equal(t, "a", res.Findings[0].ErroneousLine)
	assert.Equal(t, "b", res.Findings[0].Solution)
	assert.Equal(t, "more prose", res.Findings[0].Description)
}

func TestParse_CRLFAndIndentedMarkers(t *testing.T) {
	raw := "  Error: y = 2\r\n  Solution: ```\r\ny = 3\r\n  ```\r\n"

	res := Parse(raw)
	require.Len(t, res.Findings, 1)
	assert.Equal(t, "y = 2", res.Findings[0].ErroneousLine)
	assert.Equal(t, "y = 3", res.Findings[0].Solution)
}

func TestParse_Degraded(t *testing.T) {
	res := Parse("The code looks mostly fine but I am not sure.")
	assert.True(t, res.Degraded)
	assert.False(t, res.NoFindings)
	assert.NotNil(t, res.Findings)
	assert.Empty(t, res.Findings)

	for _, raw := range []string{"", "   ", "\n\n"} {
		empty := Parse(raw)
		assert.True(t, empty.Degraded, "%q", raw)
		assert.False(t, empty.NoFindings, "%q", raw)
		assert.Empty(t, empty.Findings)
	}
}
