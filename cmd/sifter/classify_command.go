package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"sifter/internal/classification"
)

func newClassifyCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "classify <path>...",
		Short: "Classify one or more files",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withClassifier(func(classifier *classification.Classifier) error {
				outcomes := classifier.ClassifyAll(cmd.Context(), args)
				if jsonOutput {
					return writeJSON(cmd, outcomes)
				}
				out := cmd.OutOrStdout()
				for i, outcome := range outcomes {
					if i > 0 {
						fmt.Fprintln(out)
					}
					printOutcome(out, outcome)
				}
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit machine-readable JSON")
	return cmd
}

func printOutcome(out io.Writer, outcome *classification.Outcome) {
	result := outcome.Result
	fmt.Fprintf(out, "%s\n", outcome.Path)
	fmt.Fprintf(out, "  category:   %s\n", result.Category)
	fmt.Fprintf(out, "  confidence: %.2f\n", result.Confidence)
	fmt.Fprintf(out, "  type:       %s\n", outcome.CoarseType)
	if outcome.Queued {
		fmt.Fprintf(out, "  queued:     yes (%s)\n", outcome.QueueID)
	} else {
		fmt.Fprintln(out, "  queued:     no")
	}
	if len(result.Conflicts) > 0 {
		fmt.Fprintln(out, "  conflicts:")
		for _, conflict := range result.Conflicts {
			fmt.Fprintf(out, "    - %s\n", conflict)
		}
	}
	fmt.Fprintln(out, "  trace:")
	for _, line := range result.DecisionTrace {
		fmt.Fprintf(out, "    - %s\n", line)
	}
}
