package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"slices"
	"time"

	"github.com/dshills/ohmyfix/internal/config"
	"github.com/dshills/ohmyfix/internal/providers"
	"github.com/spf13/cobra"
)

// alternativeModels lists models worth trying per provider besides the one
// config.DefaultModel picks.
var alternativeModels = map[string][]string{
	"gemini":    {"gemini-1.5-pro", "gemini-2.0-flash", "gemini-2.5-flash"},
	"openai":    {"gpt-4o", "gpt-4.1-mini"},
	"anthropic": {"claude-3-5-haiku-latest"},
	"ollama":    {"qwen2.5-coder", "codellama"},
}

// catalog returns provider's models with the default first.
func catalog(provider string) []string {
	def := config.DefaultModel(provider)
	models := []string{def}
	for _, m := range alternativeModels[provider] {
		if !slices.Contains(models, m) {
			models = append(models, m)
		}
	}
	return models
}

func printCatalog(w io.Writer) {
	for _, name := range providers.Names() {
		fmt.Fprintf(w, "%s:\n", name)
		for i, m := range catalog(name) {
			if i == 0 {
				fmt.Fprintf(w, "  * %s (default)\n", m)
				continue
			}
			fmt.Fprintf(w, "    %s\n", m)
		}
	}
}

// ping sends a one-word prompt through the configured provider.
func ping(ctx context.Context, cfg config.Config) error {
	p, err := newProvider(cfg.Provider, cfg.Model)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()
	_, err = p.Generate(ctx, providers.Request{
		SystemPrompt: "Respond with exactly: ok",
		UserPrompt:   "ping",
		MaxTokens:    10,
	})
	return err
}

var modelsCmd = &cobra.Command{
	Use:   "models",
	Short: "Provider and model management",
}

var modelsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List providers and suggested models",
	Run: func(cmd *cobra.Command, args []string) {
		printCatalog(os.Stdout)
	},
}

var modelsDoctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check that the configured provider answers",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(buildOverrides())
		if err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "Checking %s (%s)...\n", cfg.Provider, cfg.Model)
		if err := ping(cmd.Context(), cfg); err != nil {
			fail(err)
			return nil
		}
		fmt.Fprintf(os.Stdout, "OK: %s answered with %s\n", cfg.Provider, cfg.Model)
		return nil
	},
}

func init() {
	modelsCmd.AddCommand(modelsListCmd)
	modelsCmd.AddCommand(modelsDoctorCmd)
	modelsDoctorCmd.Flags().StringVar(&flagProvider, "provider", "", "Provider to check")
	modelsDoctorCmd.Flags().StringVar(&flagModel, "model", "", "Model to check")
}
