package output

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteDiff_Equal(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteDiff(&buf, "a.js", "x\n", "x\n", false))
	assert.Empty(t, buf.String())
}

func TestWriteDiff_SingleLine(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteDiff(&buf, "a.js", "let a = 1\nconsole.log(a)\n", "let a = 1;\nconsole.log(a)\n", false))

	want := "--- a/a.js\n+++ b/a.js\n@@ -1 +1 @@\n-let a = 1\n+let a = 1;\n console.log(a)\n"
	assert.Equal(t, want, buf.String())
}

func TestWriteDiff_ContextAndHunks(t *testing.T) {
	var orig, final []string
	for i := 1; i <= 20; i++ {
		line := "line" + string(rune('a'+i-1))
		orig = append(orig, line)
		switch i {
		case 2:
			final = append(final, "CHANGED")
		case 18:
			final = append(final, line, "INSERTED")
		default:
			final = append(final, line)
		}
	}

	var buf bytes.Buffer
	require.NoError(t, WriteDiff(&buf, "f", strings.Join(orig, "\n")+"\n", strings.Join(final, "\n")+"\n", false))
	out := buf.String()

	assert.Equal(t, 2, strings.Count(out, "@@ -"))
	assert.Contains(t, out, "-lineb\n+CHANGED\n")
	assert.Contains(t, out, "+INSERTED\n")
	assert.NotContains(t, out, "linej")
	assert.Contains(t, out, "@@ -16 +16 @@")
}
