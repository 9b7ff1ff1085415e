package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"sifter/internal/reviewqueue"
)

func newQueueCommand(ctx *commandContext) *cobra.Command {
	queueCmd := &cobra.Command{
		Use:   "queue",
		Short: "Inspect the review queue",
	}

	queueCmd.AddCommand(newQueueListCommand(ctx))
	queueCmd.AddCommand(newQueueShowCommand(ctx))

	return queueCmd
}

func newQueueListCommand(ctx *commandContext) *cobra.Command {
	var statusFlag string
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List review queue entries",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withQueue(func(store *reviewqueue.Store) error {
				status := reviewqueue.Status(strings.ToLower(strings.TrimSpace(statusFlag)))
				if status != "" && !status.Valid() {
					return fmt.Errorf("unknown status %q (expected pending, resolved, or dismissed)", statusFlag)
				}
				entries, err := store.List(cmd.Context(), status)
				if err != nil {
					return err
				}
				if jsonOutput {
					return writeJSON(cmd, entries)
				}
				if len(entries) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "Review queue is empty")
					return nil
				}
				rows := make([][]string, 0, len(entries))
				for _, entry := range entries {
					rows = append(rows, []string{
						shortID(entry.ID),
						entry.Path,
						entry.Category,
						fmt.Sprintf("%.2f", entry.Confidence),
						string(entry.Status),
						fmt.Sprintf("%d", len(entry.Conflicts)),
					})
				}
				table := renderTable(
					[]string{"ID", "Path", "Category", "Confidence", "Status", "Conflicts"},
					rows,
					[]columnAlignment{alignLeft, alignLeft, alignLeft, alignRight, alignLeft, alignRight},
				)
				fmt.Fprintln(cmd.OutOrStdout(), table)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&statusFlag, "status", "", "Filter by status (pending, resolved, dismissed)")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit machine-readable JSON")
	return cmd
}

func newQueueShowCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show one review queue entry in full",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withQueue(func(store *reviewqueue.Store) error {
				entry, err := resolveEntry(cmd, store, args[0])
				if err != nil {
					return err
				}
				if jsonOutput {
					return writeJSON(cmd, entry)
				}
				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "ID:         %s\n", entry.ID)
				fmt.Fprintf(out, "Path:       %s\n", entry.Path)
				fmt.Fprintf(out, "Type:       %s\n", entry.CoarseType)
				fmt.Fprintf(out, "Category:   %s\n", entry.Category)
				fmt.Fprintf(out, "Confidence: %.2f\n", entry.Confidence)
				fmt.Fprintf(out, "Status:     %s\n", entry.Status)
				if entry.ResolvedCategory != "" {
					fmt.Fprintf(out, "Resolved:   %s\n", entry.ResolvedCategory)
				}
				fmt.Fprintf(out, "Created:    %s\n", entry.CreatedAt.Local().Format("2006-01-02 15:04:05"))
				if len(entry.Conflicts) > 0 {
					fmt.Fprintln(out, "Conflicts:")
					for _, conflict := range entry.Conflicts {
						fmt.Fprintf(out, "  - %s\n", conflict)
					}
				}
				if len(entry.Candidates) > 0 {
					fmt.Fprintln(out, "Candidates:")
					for _, candidate := range entry.Candidates {
						fmt.Fprintf(out, "  - %s: %s (%.2f, weight %.1f)\n",
							candidate.Source, candidate.Category, candidate.Confidence, candidate.Weight)
					}
				}
				fmt.Fprintln(out, "Trace:")
				for _, line := range entry.DecisionTrace {
					fmt.Fprintf(out, "  - %s\n", line)
				}
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit machine-readable JSON")
	return cmd
}

// resolveEntry accepts either a full entry id or an unambiguous prefix.
func resolveEntry(cmd *cobra.Command, store *reviewqueue.Store, arg string) (*reviewqueue.Entry, error) {
	arg = strings.TrimSpace(arg)
	if arg == "" {
		return nil, fmt.Errorf("entry id is required")
	}
	if entry, err := store.GetByID(cmd.Context(), arg); err == nil {
		return entry, nil
	}
	entries, err := store.List(cmd.Context(), "")
	if err != nil {
		return nil, err
	}
	var match *reviewqueue.Entry
	for _, entry := range entries {
		if strings.HasPrefix(entry.ID, arg) {
			if match != nil {
				return nil, fmt.Errorf("entry id prefix %q is ambiguous", arg)
			}
			match = entry
		}
	}
	if match == nil {
		return nil, fmt.Errorf("no review queue entry matches %q", arg)
	}
	return match, nil
}

func shortID(id string) string {
	if len(id) <= 12 {
		return id
	}
	return id[:12]
}
