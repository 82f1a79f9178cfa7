package review

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Rules is a rules pack loaded from --rules. Files ending in .yaml or .yml
// are read as YAML, everything else as JSON.
type Rules struct {
	Focus    []string        `json:"focus,omitempty" yaml:"focus,omitempty"`
	Ignore   []string        `json:"ignore,omitempty" yaml:"ignore,omitempty"`
	Required []RequiredCheck `json:"required,omitempty" yaml:"required,omitempty"`
}

// RequiredCheck is a check the model must always evaluate.
type RequiredCheck struct {
	ID   string `json:"id" yaml:"id"`
	Text string `json:"text" yaml:"text"`
}

// LoadRules loads a rules file from disk. Returns nil Rules and nil error if path is empty.
func LoadRules(path string) (*Rules, error) {
	if path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading rules file: %w", err)
	}
	var rules Rules
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &rules); err != nil {
			return nil, fmt.Errorf("parsing rules file: %w", err)
		}
	default:
		if err := json.Unmarshal(data, &rules); err != nil {
			return nil, fmt.Errorf("parsing rules file: %w", err)
		}
	}
	return &rules, nil
}

// BuildRulesPromptSection returns additional prompt instructions derived from rules.
func BuildRulesPromptSection(rules *Rules) string {
	if rules == nil {
		return ""
	}

	var b strings.Builder

	if len(rules.Focus) > 0 {
		fmt.Fprintf(&b, "\nFocus areas: %s. Prioritize errors of these kinds.\n",
			strings.Join(rules.Focus, ", "))
	}

	if len(rules.Ignore) > 0 {
		fmt.Fprintf(&b, "\nDo not report: %s.\n", strings.Join(rules.Ignore, ", "))
	}

	if len(rules.Required) > 0 {
		b.WriteString("\nRequired checks (always evaluate these):\n")
		for _, req := range rules.Required {
			fmt.Fprintf(&b, "- [%s] %s\n", req.ID, req.Text)
		}
	}

	return b.String()
}
