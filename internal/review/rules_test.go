package review

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadRules_Empty(t *testing.T) {
	rules, err := LoadRules("")
	require.NoError(t, err)
	assert.Nil(t, rules)
}

func TestLoadRules_JSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.json")
	content := `{"focus":["typos"],"ignore":["style"],"required":[{"id":"R1","text":"Check brackets"}]}`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	rules, err := LoadRules(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"typos"}, rules.Focus)
	assert.Equal(t, []string{"style"}, rules.Ignore)
	require.Len(t, rules.Required, 1)
	assert.Equal(t, "R1", rules.Required[0].ID)
}

func TestLoadRules_YAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.yaml")
	content := "focus:\n  - undefined names\nrequired:\n  - id: R2\n    text: Check imports\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	rules, err := LoadRules(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"undefined names"}, rules.Focus)
	require.Len(t, rules.Required, 1)
	assert.Equal(t, RequiredCheck{ID: "R2", Text: "Check imports"}, rules.Required[0])
}

func TestLoadRules_Invalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	_, err := LoadRules(path)
	assert.Error(t, err)

	_, err = LoadRules(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestBuildRulesPromptSection(t *testing.T) {
	assert.Empty(t, BuildRulesPromptSection(nil))

	section := BuildRulesPromptSection(&Rules{
		Focus:    []string{"typos", "syntax"},
		Ignore:   []string{"naming"},
		Required: []RequiredCheck{{ID: "R1", Text: "Balanced braces"}},
	})
	assert.Contains(t, section, "Focus areas: typos, syntax")
	assert.Contains(t, section, "Do not report: naming")
	assert.Contains(t, section, "- [R1] Balanced braces")
}
