package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/reqshift/reqshift/internal/storage/filesystem"
	"github.com/spf13/cobra"
)

// ListOptions holds options for the list command.
type ListOptions struct {
	Search string
}

// newListCommand creates the list command.
func newListCommand(root *rootOptions) *cobra.Command {
	opts := &ListOptions{}

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List collections saved in the library",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(cmd, root, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Search, "search", "s", "", "Filter by name or description")

	return cmd
}

func runList(cmd *cobra.Command, root *rootOptions, opts *ListOptions) error {
	library, err := root.openLibrary()
	if err != nil {
		return fmt.Errorf("failed to open library: %w", err)
	}

	ctx := cmd.Context()
	var metas []filesystem.CollectionMeta
	if opts.Search != "" {
		metas, err = library.Search(ctx, opts.Search)
	} else {
		metas, err = library.List(ctx)
	}
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(metas) == 0 {
		fmt.Fprintln(out, "No collections in the library")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tTYPE\tSOURCE\tREQUESTS\tVARIABLES")
	for _, meta := range metas {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\t%d\n",
			meta.ID, meta.Name, meta.Type, meta.SourceFormat,
			meta.RequestCount, meta.VariableCount)
	}
	return w.Flush()
}
