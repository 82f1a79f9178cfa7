package output

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/dshills/ohmyfix/internal/review"
)

// SARIFWriter outputs findings in SARIF v2.1.0 format.
type SARIFWriter struct{}

func (s *SARIFWriter) Write(w io.Writer, report *review.Report) error {
	sarif := buildSARIF(report)
	data, err := json.MarshalIndent(sarif, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling SARIF: %w", err)
	}
	_, err = w.Write(data)
	if err != nil {
		return fmt.Errorf("writing SARIF: %w", err)
	}
	_, err = fmt.Fprintln(w)
	return err
}

// SARIF schema types (v2.1.0)

type sarifLog struct {
	Version string     `json:"version"`
	Schema  string     `json:"$schema"`
	Runs    []sarifRun `json:"runs"`
}

type sarifRun struct {
	Tool    sarifTool     `json:"tool"`
	Results []sarifResult `json:"results"`
}

type sarifTool struct {
	Driver sarifDriver `json:"driver"`
}

type sarifDriver struct {
	Name    string      `json:"name"`
	Version string      `json:"version"`
	Rules   []sarifRule `json:"rules"`
}

type sarifRule struct {
	ID               string             `json:"id"`
	ShortDescription sarifMessage       `json:"shortDescription"`
	DefaultConfig    sarifDefaultConfig `json:"defaultConfiguration"`
}

type sarifDefaultConfig struct {
	Level string `json:"level"`
}

type sarifResult struct {
	RuleID     string          `json:"ruleId"`
	Level      string          `json:"level"`
	Message    sarifMessage    `json:"message"`
	Locations  []sarifLocation `json:"locations,omitempty"`
	Fixes      []sarifFix      `json:"fixes,omitempty"`
	Properties sarifProperties `json:"properties"`
}

type sarifProperties struct {
	Status   review.Status   `json:"status"`
	Strategy review.Strategy `json:"matchStrategy"`
}

type sarifMessage struct {
	Text string `json:"text"`
}

type sarifLocation struct {
	PhysicalLocation sarifPhysicalLocation `json:"physicalLocation"`
}

type sarifPhysicalLocation struct {
	ArtifactLocation sarifArtifactLocation `json:"artifactLocation"`
	Region           *sarifRegion          `json:"region,omitempty"`
}

type sarifArtifactLocation struct {
	URI string `json:"uri"`
}

type sarifRegion struct {
	StartLine int `json:"startLine"`
}

type sarifFix struct {
	Description sarifMessage `json:"description"`
}

const sarifRuleID = "ohmyfix/syntax-or-typo"

func buildSARIF(report *review.Report) sarifLog {
	results := []sarifResult{}
	for _, f := range report.Files {
		for _, fr := range f.Findings {
			msg := fr.Finding.Description
			if msg == "" {
				msg = "Error: " + fr.Finding.ErroneousLine
			}
			loc := sarifPhysicalLocation{ArtifactLocation: sarifArtifactLocation{URI: f.Path}}
			if n := lineNumber(fr); n > 0 {
				loc.Region = &sarifRegion{StartLine: n}
			}
			results = append(results, sarifResult{
				RuleID:     sarifRuleID,
				Level:      statusToLevel(fr.Status),
				Message:    sarifMessage{Text: msg},
				Locations:  []sarifLocation{{PhysicalLocation: loc}},
				Fixes:      []sarifFix{{Description: sarifMessage{Text: fr.Finding.Solution}}},
				Properties: sarifProperties{Status: fr.Status, Strategy: fr.Match.Strategy},
			})
		}
	}

	return sarifLog{
		Version: "2.1.0",
		Schema:  "https://raw.githubusercontent.com/oasis-tcs/sarif-spec/main/sarif-2.1/schema/sarif-schema-2.1.0.json",
		Runs: []sarifRun{
			{
				Tool: sarifTool{
					Driver: sarifDriver{
						Name:    report.Tool,
						Version: report.Version,
						Rules: []sarifRule{{
							ID:               sarifRuleID,
							ShortDescription: sarifMessage{Text: "Syntax error or typo reported by the model"},
							DefaultConfig:    sarifDefaultConfig{Level: "warning"},
						}},
					},
				},
				Results: results,
			},
		},
	}
}

// statusToLevel maps a finding's status to a SARIF level: fixed findings are
// notes, findings still present in the file are errors.
func statusToLevel(s review.Status) string {
	switch s {
	case review.StatusApplied:
		return "note"
	case review.StatusUnmatched:
		return "warning"
	default:
		return "error"
	}
}
