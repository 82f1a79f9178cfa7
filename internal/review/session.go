package review

import (
	"context"
	"fmt"
)

// Decision is a caller's verdict on a proposed finding.
type Decision int

const (
	Accept Decision = iota
	Skip
	// Quit stops the session; remaining findings are not reviewed.
	Quit
)

func (d Decision) String() string {
	switch d {
	case Accept:
		return "accept"
	case Skip:
		return "skip"
	case Quit:
		return "quit"
	default:
		return fmt.Sprintf("Decision(%d)", int(d))
	}
}

// Proposal is what a Decider is shown before a finding is applied.
type Proposal struct {
	Path    string
	Index   int // zero-based position among the parsed findings
	Total   int
	Finding Finding
}

// Decider is consulted once per finding, in order. It may block (for
// example on user input); no other finding is in flight meanwhile.
type Decider interface {
	Decide(ctx context.Context, p Proposal) (Decision, error)
}

// DecideFunc adapts a function to the Decider interface.
type DecideFunc func(ctx context.Context, p Proposal) (Decision, error)

func (f DecideFunc) Decide(ctx context.Context, p Proposal) (Decision, error) {
	return f(ctx, p)
}

// AcceptAll accepts every finding.
var AcceptAll Decider = DecideFunc(func(context.Context, Proposal) (Decision, error) {
	return Accept, nil
})

// RejectAll skips every finding.
var RejectAll Decider = DecideFunc(func(context.Context, Proposal) (Decision, error) {
	return Skip, nil
})

// SessionOptions tunes a Session.
type SessionOptions struct {
	// Path labels proposals; it is not read.
	Path string
	// PreserveIndent re-applies the target line's indentation to solutions
	// that come back unindented.
	PreserveIndent bool
	// Guard, when set, is asked before prompting. Findings it rejects are
	// recorded as blocked and never reach the Decider.
	Guard func(Finding) bool
}

// Result is the final state of a session.
type Result struct {
	Text     string
	Findings []FindingResult
	Outcome  Outcome
}

// Session owns one document for the duration of a review pass.
type Session struct {
	doc    *Document
	decide Decider
	opts   SessionOptions
}

// NewSession creates a session over original.
func NewSession(original string, decide Decider, opts SessionOptions) *Session {
	return &Session{
		doc:    NewDocument(original),
		decide: decide,
		opts:   opts,
	}
}

// Run parses raw and walks its findings in order. Each accepted finding is
// matched against the document as left by all earlier edits. Run returns an
// error only when the Decider fails; the partial Result is still valid.
func (s *Session) Run(ctx context.Context, raw string) (Result, error) {
	parsed := Parse(raw)
	res := Result{
		Findings: make([]FindingResult, 0, len(parsed.Findings)),
		Outcome: Outcome{
			Found:            len(parsed.Findings),
			NoFindings:       parsed.NoFindings,
			Degraded:         parsed.Degraded,
			PartialSolutions: parsed.PartialSolutions,
		},
	}
	if parsed.NoFindings {
		res.Text = s.doc.String()
		return res, nil
	}

	var runErr error
	for i, f := range parsed.Findings {
		if res.Outcome.Aborted {
			res.record(f, StatusNotReviewed, MatchResult{Strategy: StrategyNotFound})
			continue
		}
		if ctx.Err() != nil {
			res.Outcome.Aborted = true
			res.record(f, StatusNotReviewed, MatchResult{Strategy: StrategyNotFound})
			continue
		}
		if s.opts.Guard != nil && !s.opts.Guard(f) {
			res.record(f, StatusBlocked, MatchResult{Strategy: StrategyNotFound})
			continue
		}

		d, err := s.decide.Decide(ctx, Proposal{
			Path:    s.opts.Path,
			Index:   i,
			Total:   len(parsed.Findings),
			Finding: f,
		})
		if err != nil {
			runErr = fmt.Errorf("deciding finding %d: %w", i+1, err)
			d = Quit
		}

		switch d {
		case Accept:
			st, m := s.apply(f)
			res.record(f, st, m)
		case Quit:
			res.Outcome.Aborted = true
			res.record(f, StatusNotReviewed, MatchResult{Strategy: StrategyNotFound})
		default:
			res.record(f, StatusSkipped, MatchResult{Strategy: StrategyNotFound})
		}
	}

	res.Text = s.doc.String()
	return res, runErr
}

// apply runs match-then-patch as one step.
func (s *Session) apply(f Finding) (Status, MatchResult) {
	m := Locate(s.doc, f.ErroneousLine)
	if !m.Found {
		return StatusUnmatched, m
	}
	solution := f.Solution
	if s.opts.PreserveIndent {
		solution = Reindent(s.doc.Line(m.Line), solution)
	}
	if err := s.doc.Replace(m.Line, solution); err != nil {
		return StatusUnmatched, MatchResult{Strategy: StrategyNotFound}
	}
	return StatusApplied, m
}

func (r *Result) record(f Finding, st Status, m MatchResult) {
	r.Findings = append(r.Findings, FindingResult{Finding: f, Status: st, Match: m})
	switch st {
	case StatusApplied:
		r.Outcome.Applied++
	case StatusSkipped:
		r.Outcome.Skipped++
	case StatusUnmatched:
		r.Outcome.Unmatched++
	case StatusBlocked:
		r.Outcome.Blocked++
	case StatusNotReviewed:
		r.Outcome.NotReviewed++
	}
}
