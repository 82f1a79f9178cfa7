package review

import (
	"strings"
)

const (
	errorMarker    = "Error:"
	solutionMarker = "Solution:"
	fenceMarker    = "```"

	// NoErrorsSentinel is the exact reply a model gives for clean input.
	NoErrorsSentinel = "No errors found"
)

// ParseResult is the output of [Parse].
type ParseResult struct {
	Findings []Finding
	// NoFindings is set when the reply was the clean sentinel.
	NoFindings bool
	// Degraded is set when a non-empty reply produced zero findings.
	Degraded bool
	// PartialSolutions counts findings whose solution block never closed.
	PartialSolutions int
}

type parserState int

const (
	stateIdle parserState = iota
	// stateAwaitingSolution: an Error line was seen, collecting description
	// prose until a Solution marker.
	stateAwaitingSolution
	// stateAwaitingFence: a Solution marker without an inline fence; the
	// next non-blank line must open the block.
	stateAwaitingFence
	// stateInSolution: inside a fenced solution block.
	stateInSolution
)

type parser struct {
	state parserState
	// orphan marks a solution block with no pending finding; its content is
	// consumed and dropped.
	orphan   bool
	pending  Finding
	desc     []string
	solution []string
	result   ParseResult
}

// Parse tokenizes a raw model reply into ordered findings. It never fails:
// malformed input degrades to fewer or partial findings.
func Parse(raw string) ParseResult {
	if strings.TrimSpace(raw) == NoErrorsSentinel {
		return ParseResult{Findings: []Finding{}, NoFindings: true}
	}

	p := &parser{}
	raw = strings.ReplaceAll(raw, "\r\n", "\n")
	for _, line := range strings.Split(raw, "\n") {
		p.feed(line)
	}
	p.finish()

	if p.result.Findings == nil {
		p.result.Findings = []Finding{}
	}
	// Not the sentinel and nothing usable, empty replies included.
	if len(p.result.Findings) == 0 {
		p.result.Degraded = true
	}
	return p.result
}

func (p *parser) feed(line string) {
	trimmed := strings.TrimLeft(line, " \t")

	switch p.state {
	case stateInSolution:
		if strings.HasPrefix(trimmed, fenceMarker) {
			p.closeSolution(false)
			return
		}
		p.solution = append(p.solution, line)

	case stateAwaitingFence:
		switch {
		case strings.TrimSpace(line) == "":
		case strings.HasPrefix(trimmed, fenceMarker):
			p.state = stateInSolution
		default:
			// Not a solution block after all; treat the line afresh.
			p.resetToPending()
			p.feed(line)
		}

	default:
		switch {
		case strings.HasPrefix(trimmed, errorMarker):
			// Last write wins: an unsolved pending finding is replaced.
			p.pending = Finding{
				ErroneousLine: strings.TrimSpace(strings.TrimPrefix(trimmed, errorMarker)),
			}
			p.desc = nil
			p.orphan = false
			p.state = stateAwaitingSolution
		case strings.HasPrefix(trimmed, solutionMarker):
			p.orphan = p.state != stateAwaitingSolution
			rest := strings.TrimSpace(strings.TrimPrefix(trimmed, solutionMarker))
			p.solution = nil
			if strings.HasPrefix(rest, fenceMarker) {
				p.state = stateInSolution
			} else {
				p.state = stateAwaitingFence
			}
		case p.state == stateAwaitingSolution:
			if s := strings.TrimSpace(line); s != "" {
				p.desc = append(p.desc, s)
			}
		}
	}
}

// resetToPending abandons a Solution marker that was not followed by a fence.
func (p *parser) resetToPending() {
	if p.orphan {
		p.state = stateIdle
		p.orphan = false
		return
	}
	p.state = stateAwaitingSolution
}

func (p *parser) closeSolution(partial bool) {
	if !p.orphan {
		f := p.pending
		f.Description = strings.Join(p.desc, " ")
		f.Solution = strings.TrimSpace(strings.Join(p.solution, "\n"))
		f.Partial = partial
		p.result.Findings = append(p.result.Findings, f)
		if partial {
			p.result.PartialSolutions++
		}
	}
	p.pending = Finding{}
	p.desc = nil
	p.solution = nil
	p.orphan = false
	p.state = stateIdle
}

// finish handles end of input. A pending finding without a solution is
// dropped; an open solution block becomes a partial finding.
func (p *parser) finish() {
	if p.state == stateInSolution {
		p.closeSolution(true)
	}
}
