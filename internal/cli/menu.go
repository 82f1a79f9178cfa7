package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/dshills/ohmyfix/internal/config"
	"github.com/dshills/ohmyfix/internal/depfix"
	"github.com/dshills/ohmyfix/internal/ui"
)

var menuOptions = []ui.Option{
	{Value: "depfix", Label: "🔧 Fix dependency conflicts"},
	{Value: "review", Label: "🤖 AI code review"},
}

// runMenu is the no-argument entry point.
func runMenu(ctx context.Context) error {
	cfg, err := loadFixConfig()
	if err != nil {
		return err
	}
	styles := ui.NewStyles(os.Stderr, ui.UsePlain(cfg.Theme, os.Stderr))
	runMenuWith(ctx, cfg, ui.NewPrompter(os.Stdin, os.Stderr, styles), os.Stderr)
	return nil
}

// runMenuWith asks on p and runs the chosen task with the same prompter, so
// stdin is read through one buffer. Prompts and notes go to errOut; stdout
// carries only results.
func runMenuWith(ctx context.Context, cfg config.Config, p *ui.Prompter, errOut io.Writer) {
	if cfg.Provider == "gemini" && os.Getenv(googleKeyEnv) == "" && os.Getenv("GEMINI_API_KEY") == "" {
		p.Warn("No Google API key found. Please run `ohmyfix setup` to configure it.")
	}

	choice, err := p.Menu("What do you need help with?", menuOptions)
	if err != nil {
		fail(err)
		return
	}

	switch choice {
	case "depfix":
		res, err := depfix.Check("package.json")
		if err != nil {
			fail(err)
			return
		}
		printConflicts(os.Stdout, res)
	case "review":
		fixCodebase(ctx, ".", cfg, p)
		if exitCode != ExitSuccess {
			return
		}
	}

	fmt.Fprintln(errOut)
	p.Success("You're all set!")
}
