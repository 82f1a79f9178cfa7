package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"time"

	"github.com/dshills/ohmyfix/internal/cache"
	"github.com/dshills/ohmyfix/internal/config"
	"github.com/dshills/ohmyfix/internal/output"
	"github.com/dshills/ohmyfix/internal/providers"
	"github.com/dshills/ohmyfix/internal/review"
	"github.com/dshills/ohmyfix/internal/ui"
	"github.com/dshills/ohmyfix/internal/workspace"
	"github.com/spf13/cobra"
)

// Shared fix flags
var (
	flagProvider string
	flagModel    string
	flagYes      bool
	flagDryRun   bool
	flagFormat   string
	flagReport   string
	flagFailOn   string
	flagRules    string
	flagNoRedact bool
	flagNoCache  bool
	flagVerbose  bool
	flagInclude  string
	flagExclude  string
)

// Snippet flags
var (
	flagSnippetIn   string
	flagSnippetOut  string
	flagSnippetPath string
)

// newProvider is swapped out in tests.
var newProvider = providers.New

func addFixFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&flagProvider, "provider", "", "LLM provider (gemini, openai, anthropic, ollama, lmstudio)")
	cmd.Flags().StringVar(&flagModel, "model", "", "Model name")
	cmd.Flags().BoolVarP(&flagYes, "yes", "y", false, "Apply every fix without asking")
	cmd.Flags().BoolVar(&flagDryRun, "dry-run", false, "Accept every fix but write nothing; print diffs instead")
	cmd.Flags().StringVar(&flagFormat, "format", "", "Report format (text, json, markdown, sarif)")
	cmd.Flags().StringVar(&flagReport, "report", "", "Report output path (default: stdout)")
	cmd.Flags().StringVar(&flagFailOn, "fail-on", "", "Exit 1 on: none, findings, unmatched")
	cmd.Flags().StringVar(&flagRules, "rules", "", "Rules file path (JSON or YAML)")
	cmd.Flags().BoolVar(&flagNoRedact, "no-redact", false, "Disable secret redaction (use with caution)")
	cmd.Flags().BoolVar(&flagNoCache, "no-cache", false, "Do not read or write cached model replies")
	cmd.Flags().BoolVarP(&flagVerbose, "verbose", "v", false, "Print processing steps to stderr")
	cmd.Flags().StringVar(&flagInclude, "include", "", "Include file path globs (comma-separated)")
	cmd.Flags().StringVar(&flagExclude, "exclude", "", "Exclude file path globs (comma-separated)")
}

func buildOverrides() map[string]string {
	m := make(map[string]string)
	if flagProvider != "" {
		m["provider"] = flagProvider
	}
	if flagModel != "" {
		m["model"] = flagModel
	}
	if flagFormat != "" {
		m["format"] = flagFormat
	}
	if flagFailOn != "" {
		m["failOn"] = flagFailOn
	}
	if flagRules != "" {
		m["rulesFile"] = flagRules
	}
	if flagInclude != "" {
		m["include"] = flagInclude
	}
	return m
}

func splitComma(s string) []string {
	parts := strings.Split(s, ",")
	var result []string
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			result = append(result, p)
		}
	}
	return result
}

// loadFixConfig resolves the effective config for a fix command and applies
// the flags that only narrow it.
func loadFixConfig() (config.Config, error) {
	cfg, err := config.Load(buildOverrides())
	if err != nil {
		return cfg, err
	}
	if flagExclude != "" {
		cfg.Exclude = append(cfg.Exclude, splitComma(flagExclude)...)
	}
	if flagNoRedact {
		cfg.Privacy.RedactSecrets = false
		fmt.Fprintln(os.Stderr, "WARNING: secret redaction is disabled")
	}
	if flagNoCache {
		cfg.Cache.Enabled = false
	}
	if _, err := output.GetWriter(cfg.Format); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func verboseLogger() func(string, ...any) {
	logger := log.New(os.Stderr, "", 0)
	return func(msg string, args ...any) {
		if flagVerbose {
			logger.Printf(msg, args...)
		}
	}
}

func buildEngine(cfg config.Config, logf func(string, ...any)) (*review.Engine, error) {
	logf("Resolving LLM provider")
	p, err := newProvider(cfg.Provider, cfg.Model)
	if err != nil {
		return nil, err
	}
	logf("Using provider: %s (%s)", p.Name(), cfg.Model)

	rules, err := review.LoadRules(cfg.RulesFile)
	if err != nil {
		return nil, fmt.Errorf("loading rules: %w", err)
	}

	e := &review.Engine{
		Provider:       p,
		Model:          cfg.Model,
		Rules:          rules,
		Redact:         cfg.Privacy.RedactSecrets,
		RedactPaths:    cfg.Privacy.RedactPaths,
		PreserveIndent: cfg.PreserveIndent,
		Logf:           logf,
	}
	if cfg.Cache.Enabled {
		c, err := cache.New(true, cfg.Cache.Dir, cfg.Cache.TTLSeconds)
		if err != nil {
			logf("Cache unavailable: %v", err)
		} else {
			e.Cache = c
		}
	}
	return e, nil
}

// openDecider picks who answers "Apply this fix?". stdinBusy is set when
// stdin carries the input text, in which case prompts read from the
// controlling terminal.
func openDecider(cfg config.Config, stdinBusy bool) (review.Decider, func(), error) {
	if flagYes || flagDryRun {
		return review.AcceptAll, func() {}, nil
	}
	styles := ui.NewStyles(os.Stderr, ui.UsePlain(cfg.Theme, os.Stderr))
	if !stdinBusy {
		return ui.NewPrompter(os.Stdin, os.Stderr, styles), func() {}, nil
	}
	tty, err := os.Open("/dev/tty")
	if err != nil {
		return nil, nil, fmt.Errorf("no terminal to ask on: %w", ui.ErrNoInput)
	}
	return ui.NewPrompter(tty, os.Stderr, styles), func() { tty.Close() }, nil
}

// fixFiles reviews paths one at a time, writes accepted fixes back, and
// reports. decide may be nil, in which case one is opened from the flags.
func fixFiles(ctx context.Context, mode string, paths []string, cfg config.Config, decide review.Decider) {
	logf := verboseLogger()
	engine, err := buildEngine(cfg, logf)
	if err != nil {
		fail(err)
		return
	}
	if decide == nil {
		d, closeInput, err := openDecider(cfg, false)
		if err != nil {
			fail(err)
			return
		}
		defer closeInput()
		decide = d
	}

	color := !ui.UsePlain(cfg.Theme, os.Stderr)
	report := review.NewReport(mode, flagDryRun)
	start := time.Now()
	var runErr error

	for _, path := range paths {
		if ctx.Err() != nil {
			break
		}
		data, err := os.ReadFile(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			report.AddFile(review.FileReport{Path: path, Error: err.Error(), Findings: []review.FindingResult{}})
			runErr = err
			continue
		}
		logf("Reviewing %s (%d bytes)", path, len(data))
		fr, err := engine.ReviewFile(ctx, review.Target{Path: path, Content: string(data)}, decide)
		if fr.Changed {
			if flagDryRun {
				if werr := output.WriteDiff(os.Stderr, path, fr.Original, fr.Final, color); werr != nil {
					logf("Warning: failed to render diff: %v", werr)
				}
			} else if werr := writeBack(path, fr.Final); werr != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", werr)
				runErr = werr
			} else {
				fr.Written = true
				logf("Wrote %s", path)
			}
		}
		report.AddFile(fr)

		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			runErr = err
			if providers.IsAuthError(err) || errors.Is(err, ui.ErrNoInput) {
				break
			}
			continue
		}
		if fr.Outcome.Aborted {
			logf("Stopped at %s", path)
			break
		}
	}
	report.TotalMs = time.Since(start).Milliseconds()

	if err := output.WriteReport(report, cfg.Format, flagReport); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing output: %v\n", err)
		exitCode = ExitRuntimeError
		return
	}
	exitCode = exitCodeFor(report, cfg.FailOn, runErr)
}

// writeBack replaces path's content, keeping its permissions.
func writeBack(path, content string) error {
	mode := os.FileMode(0o644)
	if info, err := os.Stat(path); err == nil {
		mode = info.Mode().Perm()
	}
	if err := os.WriteFile(path, []byte(content), mode); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

// exitCodeFor maps a finished run to a process exit code. Errors win over
// the fail-on gate.
func exitCodeFor(report *review.Report, failOn string, err error) int {
	if err != nil {
		return errorExitCode(err)
	}
	switch failOn {
	case config.FailOnFindings:
		if report.Totals.Found > 0 {
			return ExitFindings
		}
	case config.FailOnUnmatched:
		if report.Totals.Unmatched > 0 {
			return ExitFindings
		}
	}
	return ExitSuccess
}

func errorExitCode(err error) int {
	switch {
	case providers.IsAuthError(err):
		return ExitAuthError
	case errors.Is(err, ui.ErrNoInput):
		return ExitUsageError
	default:
		return ExitRuntimeError
	}
}

// fail prints err and records its exit code.
func fail(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	exitCode = errorExitCode(err)
}

var fixCmd = &cobra.Command{
	Use:   "fix",
	Short: "Find and fix syntax errors and typos",
	Long:  "Ask an LLM for syntax errors and typos, then apply the fixes you confirm. Use subcommands to choose what to fix.",
}

var fixFileCmd = &cobra.Command{
	Use:   "file <path>...",
	Short: "Fix specific files",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadFixConfig()
		if err != nil {
			return err
		}
		fixFiles(cmd.Context(), "file", args, cfg, nil)
		return nil
	},
}

var fixCodebaseCmd = &cobra.Command{
	Use:   "codebase [root]",
	Short: "Fix every candidate file under root (default: current directory)",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadFixConfig()
		if err != nil {
			return err
		}
		root := "."
		if len(args) == 1 {
			root = args[0]
		}
		fixCodebase(cmd.Context(), root, cfg, nil)
		return nil
	},
}

// fixCodebase discovers files under root and fixes them.
func fixCodebase(ctx context.Context, root string, cfg config.Config, decide review.Decider) {
	paths := discover(ctx, root, cfg)
	if len(paths) == 0 {
		fmt.Fprintf(os.Stderr, "No candidate files found under %s\n", root)
		return
	}
	fmt.Fprintf(os.Stderr, "Reviewing %d file(s)\n", len(paths))
	fixFiles(ctx, "codebase", paths, cfg, decide)
}

func discover(ctx context.Context, root string, cfg config.Config) []string {
	lister := workspace.NewLister(root, workspace.Options{
		Include:      cfg.Include,
		Exclude:      cfg.Exclude,
		MaxFileBytes: int64(cfg.MaxFileBytes),
	})
	var paths []string
	for path := range lister.Files(ctx, root) {
		if cfg.MaxFiles > 0 && len(paths) >= cfg.MaxFiles {
			fmt.Fprintf(os.Stderr, "Warning: stopping at maxFiles=%d\n", cfg.MaxFiles)
			break
		}
		paths = append(paths, path)
	}
	return paths
}

var fixSnippetCmd = &cobra.Command{
	Use:   "snippet",
	Short: "Fix a snippet read from stdin (or --in) and print the result",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadFixConfig()
		if err != nil {
			return err
		}
		fixSnippet(cmd.Context(), cfg)
		return nil
	},
}

func fixSnippet(ctx context.Context, cfg config.Config) {
	var (
		content []byte
		err     error
	)
	if flagSnippetIn != "" {
		content, err = os.ReadFile(flagSnippetIn)
	} else {
		content, err = io.ReadAll(os.Stdin)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading input: %v\n", err)
		exitCode = ExitRuntimeError
		return
	}

	path := flagSnippetPath
	if path == "" {
		path = flagSnippetIn
	}
	if path == "" {
		path = "snippet"
	}

	logf := verboseLogger()
	engine, err := buildEngine(cfg, logf)
	if err != nil {
		fail(err)
		return
	}
	decide, closeInput, err := openDecider(cfg, flagSnippetIn == "")
	if err != nil {
		fail(err)
		return
	}
	defer closeInput()

	report := review.NewReport("snippet", flagDryRun)
	fr, runErr := engine.ReviewFile(ctx, review.Target{Path: path, Content: string(content)}, decide)
	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", runErr)
	}

	if flagDryRun {
		if fr.Changed {
			color := !ui.UsePlain(cfg.Theme, os.Stderr)
			if err := output.WriteDiff(os.Stderr, path, fr.Original, fr.Final, color); err != nil {
				logf("Warning: failed to render diff: %v", err)
			}
		}
	} else if flagSnippetOut != "" {
		if err := os.WriteFile(flagSnippetOut, []byte(fr.Final), 0o644); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			exitCode = ExitRuntimeError
			return
		}
		fr.Written = true
	} else {
		fmt.Fprint(os.Stdout, fr.Final)
	}
	report.AddFile(fr)
	report.TotalMs = fr.Timing.TotalMs

	if flagReport != "" {
		if err := output.WriteReport(report, cfg.Format, flagReport); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing output: %v\n", err)
			exitCode = ExitRuntimeError
			return
		}
	}
	exitCode = exitCodeFor(report, cfg.FailOn, runErr)
}

func init() {
	fixCmd.AddCommand(fixFileCmd)
	fixCmd.AddCommand(fixCodebaseCmd)
	fixCmd.AddCommand(fixSnippetCmd)

	for _, cmd := range []*cobra.Command{fixFileCmd, fixCodebaseCmd, fixSnippetCmd} {
		addFixFlags(cmd)
	}

	fixSnippetCmd.Flags().StringVar(&flagSnippetIn, "in", "", "Read the snippet from this file instead of stdin")
	fixSnippetCmd.Flags().StringVar(&flagSnippetOut, "out", "", "Write the fixed snippet to this file instead of stdout")
	fixSnippetCmd.Flags().StringVar(&flagSnippetPath, "path", "", "File name used for language detection and messages")
}
