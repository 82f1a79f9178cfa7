package ui

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/dshills/ohmyfix/internal/review"
)

// ErrNoInput is returned when the input stream ends before an answer.
var ErrNoInput = errors.New("no input: use --yes to accept fixes non-interactively")

// Prompter asks questions on out and reads answers line by line from in.
type Prompter struct {
	in     *bufio.Reader
	out    io.Writer
	styles Styles
}

// NewPrompter creates a Prompter.
func NewPrompter(in io.Reader, out io.Writer, styles Styles) *Prompter {
	return &Prompter{in: bufio.NewReader(in), out: out, styles: styles}
}

// Styles returns the prompter's styles.
func (p *Prompter) Styles() Styles { return p.styles }

// Decide shows a finding and asks whether to apply it. An empty answer
// accepts.
func (p *Prompter) Decide(ctx context.Context, prop review.Proposal) (review.Decision, error) {
	fmt.Fprint(p.out, p.RenderProposal(prop))
	for {
		if err := ctx.Err(); err != nil {
			return review.Quit, err
		}
		fmt.Fprint(p.out, "Apply this fix? [Y/n/q] ")
		answer, err := p.readLine()
		if err != nil {
			return review.Quit, err
		}
		switch strings.ToLower(answer) {
		case "", "y", "yes":
			return review.Accept, nil
		case "n", "no", "s", "skip":
			return review.Skip, nil
		case "q", "quit":
			return review.Quit, nil
		default:
			fmt.Fprintln(p.out, p.styles.render(p.styles.Warning, "Please answer y, n or q."))
		}
	}
}

// RenderProposal formats a finding as a note.
func (p *Prompter) RenderProposal(prop review.Proposal) string {
	s := p.styles
	var b strings.Builder
	b.WriteString(s.render(s.Error, "✗ Error:") + " " + prop.Finding.ErroneousLine + "\n")
	if prop.Finding.Description != "" {
		b.WriteString(s.render(s.Dim, prop.Finding.Description) + "\n")
	}
	b.WriteString("\n" + s.render(s.Solution, "Solution:") + "\n")
	b.WriteString(prop.Finding.Solution)
	if prop.Finding.Partial {
		b.WriteString("\n" + s.render(s.Warning, "(solution block was not closed)"))
	}
	title := fmt.Sprintf("File: %s [%d/%d]", prop.Path, prop.Index+1, prop.Total)
	return "\n" + s.Note(title, b.String())
}

// Confirm asks a yes/no question. An empty answer returns def.
func (p *Prompter) Confirm(question string, def bool) (bool, error) {
	hint := "[y/N]"
	if def {
		hint = "[Y/n]"
	}
	for {
		fmt.Fprintf(p.out, "%s %s ", question, hint)
		answer, err := p.readLine()
		if err != nil {
			return false, err
		}
		switch strings.ToLower(answer) {
		case "":
			return def, nil
		case "y", "yes":
			return true, nil
		case "n", "no":
			return false, nil
		}
	}
}

// Ask reads a free-form answer, re-asking while validate rejects it.
func (p *Prompter) Ask(question string, validate func(string) error) (string, error) {
	for {
		fmt.Fprintf(p.out, "%s ", question)
		answer, err := p.readLine()
		if err != nil {
			return "", err
		}
		if validate == nil {
			return answer, nil
		}
		if verr := validate(answer); verr != nil {
			fmt.Fprintln(p.out, p.styles.render(p.styles.Error, verr.Error()))
			continue
		}
		return answer, nil
	}
}

// Option is one entry of a Menu.
type Option struct {
	Value string
	Label string
}

// Menu prints a numbered list and returns the Value of the chosen option.
func (p *Prompter) Menu(title string, options []Option) (string, error) {
	if len(options) == 0 {
		return "", errors.New("menu has no options")
	}
	fmt.Fprintln(p.out, p.styles.render(p.styles.Title, title))
	for i, o := range options {
		fmt.Fprintf(p.out, "  %d) %s\n", i+1, o.Label)
	}
	for {
		fmt.Fprintf(p.out, "Choose [1-%d]: ", len(options))
		answer, err := p.readLine()
		if err != nil {
			return "", err
		}
		n, err := strconv.Atoi(answer)
		if err == nil && n >= 1 && n <= len(options) {
			return options[n-1].Value, nil
		}
		for _, o := range options {
			if strings.EqualFold(answer, o.Value) {
				return o.Value, nil
			}
		}
	}
}

// Success prints a success line.
func (p *Prompter) Success(msg string) {
	fmt.Fprintln(p.out, p.styles.render(p.styles.Success, "✓ "+msg))
}

// Warn prints a warning line.
func (p *Prompter) Warn(msg string) {
	fmt.Fprintln(p.out, p.styles.render(p.styles.Warning, "⚠ "+msg))
}

func (p *Prompter) readLine() (string, error) {
	line, err := p.in.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && line != "" {
			return strings.TrimSpace(line), nil
		}
		if errors.Is(err, io.EOF) {
			return "", ErrNoInput
		}
		return "", fmt.Errorf("reading input: %w", err)
	}
	return strings.TrimSpace(line), nil
}
