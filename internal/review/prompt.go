package review

import (
	"fmt"
	"path/filepath"
	"strings"
)

// PromptVersion is mixed into cache keys so that prompt changes invalidate
// cached replies.
const PromptVersion = "2"

const systemPrompt = `You are a meticulous code checker. You receive one source file and report only syntax errors and typos (for example undefined variables, misspelled identifiers, wrong method names, unbalanced brackets, missing semicolons where the language requires them).

Rules:
1. Do not report style issues, refactorings or design concerns.
2. For each error, quote the exact erroneous line from the file, unchanged.
3. You may add one short explanation line after the Error line.
4. For each error, give only the corrected replacement for that line as the solution. The solution may span several lines if the fix needs them.
5. Report errors in the order they appear in the file.

Format every error exactly like this:

Error: <exact erroneous line>
<optional one-line explanation>
Solution: ` + "```" + `<language>
<corrected code>
` + "```" + `

If there are no errors, respond with exactly: ` + NoErrorsSentinel

// SystemPrompt returns the system prompt for the model.
func SystemPrompt() string {
	return systemPrompt
}

// BuildUserPrompt constructs the user prompt for one file.
func BuildUserPrompt(path, content string, rules *Rules) string {
	var b strings.Builder

	lang := DetectLanguage(path)
	if lang != "" {
		fmt.Fprintf(&b, "Analyze this %s code from file %q.\n", lang, path)
	} else {
		fmt.Fprintf(&b, "Analyze this code from file %q.\n", path)
	}

	if rulesSection := BuildRulesPromptSection(rules); rulesSection != "" {
		b.WriteString(rulesSection)
	}

	fmt.Fprintf(&b, "\n```%s\n", FenceTag(path))
	b.WriteString(content)
	if !strings.HasSuffix(content, "\n") {
		b.WriteString("\n")
	}
	b.WriteString("```\n")

	return b.String()
}

type language struct {
	name  string
	fence string
}

var languages = map[string]language{
	".go":    {"Go", "go"},
	".py":    {"Python", "python"},
	".js":    {"JavaScript", "javascript"},
	".mjs":   {"JavaScript", "javascript"},
	".cjs":   {"JavaScript", "javascript"},
	".ts":    {"TypeScript", "typescript"},
	".tsx":   {"TypeScript/React", "tsx"},
	".jsx":   {"JavaScript/React", "jsx"},
	".rs":    {"Rust", "rust"},
	".java":  {"Java", "java"},
	".rb":    {"Ruby", "ruby"},
	".cpp":   {"C++", "cpp"},
	".c":     {"C", "c"},
	".h":     {"C/C++", "c"},
	".cs":    {"C#", "csharp"},
	".php":   {"PHP", "php"},
	".swift": {"Swift", "swift"},
	".kt":    {"Kotlin", "kotlin"},
	".sql":   {"SQL", "sql"},
	".sh":    {"Shell", "bash"},
	".yaml":  {"YAML", "yaml"},
	".yml":   {"YAML", "yaml"},
	".json":  {"JSON", "json"},
}

// DetectLanguage returns a human-readable language name for path, or "".
func DetectLanguage(path string) string {
	return languages[strings.ToLower(filepath.Ext(path))].name
}

// FenceTag returns the info string used for fenced code blocks of path.
func FenceTag(path string) string {
	return languages[strings.ToLower(filepath.Ext(path))].fence
}
