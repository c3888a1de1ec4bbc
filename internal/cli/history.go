package cli

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/reqshift/reqshift/internal/history"
	"github.com/spf13/cobra"
)

// HistoryOptions holds options for the history command.
type HistoryOptions struct {
	Limit     int
	Operation string
	Clear     bool
	KeepLast  int
}

// newHistoryCommand creates the history command.
func newHistoryCommand(root *rootOptions) *cobra.Command {
	opts := &HistoryOptions{}

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show past import and conversion operations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHistory(cmd, root, opts)
		},
	}

	cmd.Flags().IntVarP(&opts.Limit, "limit", "n", 20, "Maximum entries to show")
	cmd.Flags().StringVar(&opts.Operation, "operation", "", "Filter by operation (import, convert, replace, vars-import, vars-export)")
	cmd.Flags().BoolVar(&opts.Clear, "clear", false, "Delete all history entries")
	cmd.Flags().IntVar(&opts.KeepLast, "keep-last", 0, "Prune history down to the newest N entries")

	return cmd
}

func runHistory(cmd *cobra.Command, root *rootOptions, opts *HistoryOptions) error {
	store, err := root.openHistory()
	if err != nil {
		return fmt.Errorf("failed to open history: %w", err)
	}
	defer store.Close()

	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	if opts.Clear {
		if err := store.Clear(ctx); err != nil {
			return err
		}
		fmt.Fprintln(out, "History cleared")
		return nil
	}

	if opts.KeepLast > 0 {
		result, err := store.Prune(ctx, history.PruneOptions{KeepLast: opts.KeepLast})
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "Pruned %d entries\n", result.DeletedCount)
		return nil
	}

	entries, err := store.List(ctx, history.QueryOptions{
		Operation: history.Operation(opts.Operation),
		Limit:     opts.Limit,
	})
	if err != nil {
		return err
	}

	if len(entries) == 0 {
		fmt.Fprintln(out, "No history entries")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "WHEN\tOPERATION\tCOLLECTION\tSOURCE\tTARGET\tDETAIL")
	for _, entry := range entries {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
			entry.Timestamp.Local().Format(time.DateTime),
			entry.Operation, entry.CollectionName,
			entry.SourceFormat, entry.TargetFormat, entry.Detail)
	}
	return w.Flush()
}
