package review

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/dshills/ohmyfix/internal/cache"
	"github.com/dshills/ohmyfix/internal/providers"
	"github.com/dshills/ohmyfix/internal/redact"
)

// Engine reviews one file at a time against a provider.
type Engine struct {
	Provider providers.Provider
	Model    string
	// Cache may be nil.
	Cache *cache.Cache
	Rules *Rules

	// Redact scrubs secrets from content before it is sent. Findings whose
	// solution carries the placeholder are then blocked.
	Redact      bool
	RedactPaths []string

	PreserveIndent bool
	MaxTokens      int

	// Logf, when set, receives verbose progress lines.
	Logf func(format string, args ...any)
}

// Target is the text to review. Path labels it and selects the language.
type Target struct {
	Path    string
	Content string
}

// SkippedByPathPolicy is reported in FileReport.Error for files the redaction
// path policy keeps away from the provider.
const SkippedByPathPolicy = "skipped: path matches a redaction pattern"

// ReviewFile sends t to the provider (or reuses a cached reply), then walks
// the findings through a Session driven by decide. The returned report is
// populated even when an error is returned.
func (e *Engine) ReviewFile(ctx context.Context, t Target, decide Decider) (FileReport, error) {
	start := time.Now()
	fr := FileReport{
		Path:     t.Path,
		Provider: e.Provider.Name(),
		Model:    e.Model,
		Original: t.Content,
		Final:    t.Content,
		Findings: []FindingResult{},
	}

	if e.Redact && redact.ShouldRedactPath(t.Path, e.RedactPaths) {
		e.logf("%s: %s", t.Path, SkippedByPathPolicy)
		fr.Error = SkippedByPathPolicy
		fr.Timing.TotalMs = time.Since(start).Milliseconds()
		return fr, nil
	}
	if strings.TrimSpace(t.Content) == "" {
		fr.Outcome.NoFindings = true
		fr.Timing.TotalMs = time.Since(start).Milliseconds()
		return fr, nil
	}

	content := t.Content
	if e.Redact {
		var n int
		content, n = redact.Secrets(content)
		if n > 0 {
			e.logf("%s: redacted %d secret(s)", t.Path, n)
		}
	}

	userPrompt := BuildUserPrompt(t.Path, content, e.Rules)
	key := cache.BuildKey(fr.Provider, e.Model, PromptVersion, userPrompt)

	raw, err := e.generate(ctx, key, userPrompt, &fr)
	if err != nil {
		fr.Error = err.Error()
		fr.Timing.TotalMs = time.Since(start).Milliseconds()
		return fr, fmt.Errorf("reviewing %s: %w", t.Path, err)
	}

	opts := SessionOptions{Path: t.Path, PreserveIndent: e.PreserveIndent}
	if e.Redact {
		opts.Guard = func(f Finding) bool { return !redact.Contains(f.Solution) }
	}
	res, err := NewSession(t.Content, decide, opts).Run(ctx, raw)

	fr.Final = res.Text
	fr.Changed = res.Text != t.Content
	fr.Findings = res.Findings
	fr.Outcome = res.Outcome
	fr.Timing.TotalMs = time.Since(start).Milliseconds()
	e.logf("%s: %d found, %d applied, %d skipped, %d unmatched",
		t.Path, res.Outcome.Found, res.Outcome.Applied, res.Outcome.Skipped, res.Outcome.Unmatched)

	if err != nil {
		fr.Error = err.Error()
		return fr, fmt.Errorf("reviewing %s: %w", t.Path, err)
	}
	return fr, nil
}

// generate returns the raw model reply for userPrompt, consulting the cache
// first.
func (e *Engine) generate(ctx context.Context, key, userPrompt string, fr *FileReport) (string, error) {
	if e.Cache != nil {
		if entry, ok := e.Cache.Lookup(key); ok {
			e.logf("%s: cache hit", fr.Path)
			fr.Cached = true
			return entry.Response, nil
		}
	}

	maxTokens := e.MaxTokens
	if maxTokens == 0 {
		maxTokens = 4096
	}
	e.logf("%s: calling %s (%s)", fr.Path, fr.Provider, e.Model)
	llmStart := time.Now()
	resp, err := e.Provider.Generate(ctx, providers.Request{
		SystemPrompt: SystemPrompt(),
		UserPrompt:   userPrompt,
		MaxTokens:    maxTokens,
	})
	fr.Timing.LLMMs = time.Since(llmStart).Milliseconds()
	if err != nil {
		return "", fmt.Errorf("provider %s: %w", fr.Provider, err)
	}
	fr.TokensUsed = resp.TokensUsed

	if e.Cache != nil {
		err := e.Cache.Store(cache.Entry{
			Key:      key,
			Provider: fr.Provider,
			Model:    e.Model,
			Response: resp.Content,
			Tokens:   resp.TokensUsed,
		})
		if err != nil {
			e.logf("%s: cache store failed: %v", fr.Path, err)
		}
	}
	return resp.Content, nil
}

func (e *Engine) logf(format string, args ...any) {
	if e.Logf != nil {
		e.Logf(format, args...)
	}
}
