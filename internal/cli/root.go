package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/dshills/ohmyfix/internal/config"
	"github.com/spf13/cobra"
)

const version = "1.0.1"

// Exit codes
const (
	ExitSuccess      = 0
	ExitFindings     = 1
	ExitUsageError   = 2
	ExitAuthError    = 3
	ExitRuntimeError = 4
)

// dotEnvPath is loaded before any command runs and written by setup.
const dotEnvPath = ".env"

var rootCmd = &cobra.Command{
	Use:   "ohmyfix",
	Short: "AI-assisted syntax and typo fixer",
	Long: "ohmyfix asks an LLM for syntax errors and typos in your code and applies " +
		"the fixes you confirm, one line at a time. Run without arguments for an interactive menu.",
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runMenu(cmd.Context())
	},
}

// Run executes the root command and returns an exit code.
func Run() int {
	if err := config.LoadDotEnv(dotEnvPath); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}

	rootCmd.AddCommand(fixCmd)
	rootCmd.AddCommand(depsCmd)
	rootCmd.AddCommand(setupCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(modelsCmd)
	rootCmd.AddCommand(cacheCmd)
	rootCmd.AddCommand(versionCmd)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		// Cobra already prints the error
		return ExitUsageError
	}

	return exitCode
}

// exitCode is set by command handlers to control the process exit code.
var exitCode = ExitSuccess

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print ohmyfix version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(os.Stdout, "ohmyfix version %s\n", version)
	},
}
