package cli

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/dshills/ohmyfix/internal/depfix"
	"github.com/spf13/cobra"
)

var depsCmd = &cobra.Command{
	Use:   "deps [package.json]",
	Short: "Report packages pinned differently in dependencies and devDependencies",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := "package.json"
		if len(args) == 1 {
			path = args[0]
		}
		res, err := depfix.Check(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			exitCode = ExitRuntimeError
			return nil
		}
		printConflicts(os.Stdout, res)
		if len(res.Conflicts) > 0 {
			exitCode = ExitFindings
		}
		return nil
	},
}

func printConflicts(w io.Writer, res depfix.Result) {
	switch {
	case res.Empty:
		fmt.Fprintln(w, "No dependencies to check")
	case len(res.Conflicts) == 0:
		fmt.Fprintln(w, "No conflicts found!")
	default:
		fmt.Fprintf(w, "Found %s!\n", formatCount(len(res.Conflicts), "conflict"))
		for _, c := range res.Conflicts {
			fmt.Fprintln(w, c.String())
		}
	}
}

// formatCount renders n with a singular or plural noun.
func formatCount(n int, noun string) string {
	if n == 1 {
		return "1 " + noun
	}
	return strconv.Itoa(n) + " " + noun + "s"
}
