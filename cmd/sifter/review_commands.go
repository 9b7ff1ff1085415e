package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"sifter/internal/history"
	"sifter/internal/reviewqueue"
)

// Confidence recorded for a human-verified pattern. Deliberately below the
// obvious-dominance range: history informs, it never overrules.
const verifiedPatternConfidence = 0.8

func newReviewCommand(ctx *commandContext) *cobra.Command {
	reviewCmd := &cobra.Command{
		Use:   "review",
		Short: "Work through queued classifications",
	}

	reviewCmd.AddCommand(newReviewListCommand(ctx))
	reviewCmd.AddCommand(newReviewResolveCommand(ctx))
	reviewCmd.AddCommand(newReviewDismissCommand(ctx))

	return reviewCmd
}

func newReviewListCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List entries awaiting review",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withQueue(func(store *reviewqueue.Store) error {
				entries, err := store.List(cmd.Context(), reviewqueue.StatusPending)
				if err != nil {
					return err
				}
				if len(entries) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "Nothing awaiting review")
					return nil
				}
				rows := make([][]string, 0, len(entries))
				for _, entry := range entries {
					suggestion := entry.Category
					for _, candidate := range entry.Candidates {
						if candidate.Category != entry.Category {
							suggestion = fmt.Sprintf("%s (or %s?)", entry.Category, candidate.Category)
							break
						}
					}
					rows = append(rows, []string{
						shortID(entry.ID),
						filepath.Base(entry.Path),
						suggestion,
						fmt.Sprintf("%.2f", entry.Confidence),
					})
				}
				table := renderTable(
					[]string{"ID", "File", "Suggestion", "Confidence"},
					rows,
					[]columnAlignment{alignLeft, alignLeft, alignLeft, alignRight},
				)
				fmt.Fprintln(cmd.OutOrStdout(), table)
				return nil
			})
		},
	}
}

func newReviewResolveCommand(ctx *commandContext) *cobra.Command {
	var keyword string

	cmd := &cobra.Command{
		Use:   "resolve <id> <category>",
		Short: "Assign a final category to a queued entry",
		Long: "Assign a final category to a queued entry. The file's extension " +
			"(and optional keyword) is recorded as a verified pattern, so future " +
			"classifications of similar files gain a history signal.",
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			category := strings.ToLower(strings.TrimSpace(args[1]))
			if category == "" {
				return fmt.Errorf("category is required")
			}
			return ctx.withQueue(func(store *reviewqueue.Store) error {
				entry, err := resolveEntry(cmd, store, args[0])
				if err != nil {
					return err
				}
				resolved, err := store.Resolve(cmd.Context(), entry.ID, category)
				if err != nil {
					return err
				}

				extension := strings.ToLower(filepath.Ext(resolved.Path))
				recordErr := ctx.withHistory(func(patterns *history.Store) error {
					return patterns.Record(cmd.Context(), category, extension, strings.TrimSpace(keyword), verifiedPatternConfidence)
				})

				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "Resolved %s as %s\n", shortID(resolved.ID), category)
				if recordErr != nil {
					fmt.Fprintf(out, "Warning: could not record verified pattern: %v\n", recordErr)
				} else {
					fmt.Fprintf(out, "Recorded verified pattern (extension %q)\n", extension)
				}
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&keyword, "keyword", "", "Filename keyword to record alongside the extension")
	return cmd
}

func newReviewDismissCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "dismiss <id>",
		Short: "Drop a queued entry without classifying it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withQueue(func(store *reviewqueue.Store) error {
				entry, err := resolveEntry(cmd, store, args[0])
				if err != nil {
					return err
				}
				dismissed, err := store.Dismiss(cmd.Context(), entry.ID)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Dismissed %s\n", shortID(dismissed.ID))
				return nil
			})
		},
	}
}
