package review

import "github.com/google/uuid"

// Finding is one defect/fix pair extracted from a model reply.
type Finding struct {
	// Description is optional prose the model wrote between the Error and
	// Solution markers.
	Description   string `json:"description,omitempty"`
	ErroneousLine string `json:"erroneousLine"`
	Solution      string `json:"solution"`
	// Partial is set when the solution block was never closed and the
	// solution is everything up to the end of the reply.
	Partial bool `json:"partial,omitempty"`
}

// Strategy names the matching tier that located a line.
type Strategy string

const (
	StrategyExact      Strategy = "exact"
	StrategyNormalized Strategy = "normalized"
	StrategySubstring  Strategy = "substring"
	StrategyNotFound   Strategy = "not_found"
)

// MatchResult is the outcome of locating a finding's target line.
// Line is a zero-based index and is only meaningful when Found is true.
type MatchResult struct {
	Found    bool     `json:"found"`
	Line     int      `json:"line"`
	Strategy Strategy `json:"strategy"`
}

// Status records what happened to a single finding during a session.
type Status string

const (
	StatusApplied     Status = "applied"
	StatusSkipped     Status = "skipped"
	StatusUnmatched   Status = "unmatched"
	StatusBlocked     Status = "blocked"
	StatusNotReviewed Status = "not_reviewed"
)

// FindingResult pairs a finding with its status and match.
type FindingResult struct {
	Finding Finding     `json:"finding"`
	Status  Status      `json:"status"`
	Match   MatchResult `json:"match"`
}

// Outcome aggregates the counters of one review pass.
type Outcome struct {
	Found       int `json:"found"`
	Applied     int `json:"applied"`
	Skipped     int `json:"skipped"`
	Unmatched   int `json:"unmatched"`
	Blocked     int `json:"blocked"`
	NotReviewed int `json:"notReviewed"`

	// NoFindings is set when the model answered with the clean sentinel.
	NoFindings bool `json:"noFindings"`
	// Degraded is set when the reply was not the sentinel but no
	// well-formed finding could be extracted from it.
	Degraded         bool `json:"degraded"`
	PartialSolutions int  `json:"partialSolutions"`
	Aborted          bool `json:"aborted"`
}

// Add accumulates o2 into o. Degraded and Aborted are OR-ed; NoFindings
// describes a single reply and is not carried into totals.
func (o *Outcome) Add(o2 Outcome) {
	o.Found += o2.Found
	o.Applied += o2.Applied
	o.Skipped += o2.Skipped
	o.Unmatched += o2.Unmatched
	o.Blocked += o2.Blocked
	o.NotReviewed += o2.NotReviewed
	o.PartialSolutions += o2.PartialSolutions
	o.Degraded = o.Degraded || o2.Degraded
	o.Aborted = o.Aborted || o2.Aborted
}

// Timing contains per-file performance metrics.
type Timing struct {
	LLMMs   int64 `json:"llmMs"`
	TotalMs int64 `json:"totalMs"`
}

// FileReport is the result of reviewing a single file or snippet.
type FileReport struct {
	Path       string          `json:"path"`
	Provider   string          `json:"provider"`
	Model      string          `json:"model"`
	Original   string          `json:"-"`
	Final      string          `json:"-"`
	Changed    bool            `json:"changed"`
	Written    bool            `json:"written"`
	Cached     bool            `json:"cached"`
	TokensUsed int             `json:"tokensUsed"`
	Findings   []FindingResult `json:"findings"`
	Outcome    Outcome         `json:"outcome"`
	Timing     Timing          `json:"timing"`
	Error      string          `json:"error,omitempty"`
}

// Report is the top-level output structure for a run over one or more files.
type Report struct {
	Tool    string       `json:"tool"`
	Version string       `json:"version"`
	RunID   string       `json:"runId"`
	Mode    string       `json:"mode"`
	DryRun  bool         `json:"dryRun"`
	Files   []FileReport `json:"files"`
	Totals  Outcome      `json:"totals"`
	TotalMs int64        `json:"totalMs"`
}

// NewReport returns an empty report for the given mode.
func NewReport(mode string, dryRun bool) *Report {
	return &Report{
		Tool:    "ohmyfix",
		Version: "1.0",
		RunID:   NewRunID(),
		Mode:    mode,
		DryRun:  dryRun,
		Files:   []FileReport{},
	}
}

// AddFile appends a file report and folds its outcome into the totals.
func (r *Report) AddFile(fr FileReport) {
	r.Files = append(r.Files, fr)
	r.Totals.Add(fr.Outcome)
}

// NewRunID returns a random identifier for a run.
func NewRunID() string {
	return uuid.NewString()
}
