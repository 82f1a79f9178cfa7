package cli

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/dshills/ohmyfix/internal/config"
	"github.com/dshills/ohmyfix/internal/ui"
	"github.com/spf13/cobra"
)

const googleKeyEnv = "GOOGLE_API_KEY"

var flagEnvFile string

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Save your Google Generative AI API key to .env",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		styles := ui.NewStyles(os.Stdout, ui.UsePlain(ui.ThemeAuto, os.Stdout))
		p := ui.NewPrompter(os.Stdin, os.Stdout, styles)
		if err := runSetup(p, flagEnvFile); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			exitCode = errorExitCode(err)
		}
		return nil
	},
}

func runSetup(p *ui.Prompter, envFile string) error {
	key, err := p.Ask("Please enter your Google Generative AI API key (get it from https://makersuite.google.com/app/apikey):", validateGoogleKey)
	if err != nil {
		return err
	}
	if err := config.WriteDotEnvKey(envFile, googleKeyEnv, key); err != nil {
		return err
	}
	p.Success("Setup complete! Your API key has been saved to " + envFile)
	return nil
}

func validateGoogleKey(value string) error {
	if !strings.HasPrefix(value, "AI") || strings.ContainsAny(value, " \t") {
		return errors.New(`please enter a valid Google API key starting with "AI"`)
	}
	return nil
}

func init() {
	setupCmd.Flags().StringVar(&flagEnvFile, "env-file", dotEnvPath, "File to write the key to")
}
