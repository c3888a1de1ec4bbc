package cli

import (
	"fmt"
	"time"

	"github.com/reqshift/reqshift/internal/history"
	"github.com/spf13/cobra"
)

// ImportOptions holds options for the import command.
type ImportOptions struct {
	Format string
	Save   bool
}

// newImportCommand creates the import command.
func newImportCommand(root *rootOptions) *cobra.Command {
	opts := &ImportOptions{}

	cmd := &cobra.Command{
		Use:   "import FILE",
		Short: "Import a collection file",
		Long:  "Import a Postman, Insomnia, Thunder Client, dotenv, CSV, or generic JSON file and show what it contains.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runImport(cmd, root, args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Format, "format", "f", "auto", "Source format (auto, postman, insomnia, thunderclient, env, csv, json)")
	cmd.Flags().BoolVar(&opts.Save, "save", false, "Save the imported collection to the library")

	return cmd
}

func runImport(cmd *cobra.Command, root *rootOptions, path string, opts *ImportOptions) error {
	result, err := importCollectionFile(cmd, path, opts.Format)
	if err != nil {
		return err
	}
	ctx := cmd.Context()

	out := cmd.OutOrStdout()
	coll := result.Collection
	fmt.Fprintf(out, "Imported %q (%s)\n", coll.Name, result.SourceFormat)
	fmt.Fprintf(out, "  Type:      %s\n", coll.Type)
	fmt.Fprintf(out, "  Requests:  %d\n", result.RequestCount)
	fmt.Fprintf(out, "  Folders:   %d\n", result.FolderCount)
	fmt.Fprintf(out, "  Variables: %d\n", result.VariableCount)

	if opts.Save {
		library, err := root.openLibrary()
		if err != nil {
			return fmt.Errorf("failed to open library: %w", err)
		}
		if err := library.Save(ctx, coll); err != nil {
			return fmt.Errorf("failed to save collection: %w", err)
		}
		fmt.Fprintf(out, "Saved to library as %s\n", coll.ID)
	}

	root.recordHistory(ctx, history.Entry{
		Timestamp:      time.Now().UTC(),
		Operation:      history.OpImport,
		SourceFormat:   string(result.SourceFormat),
		SourcePath:     path,
		CollectionID:   coll.ID,
		CollectionName: coll.Name,
		RequestCount:   result.RequestCount,
		FolderCount:    result.FolderCount,
		VariableCount:  result.VariableCount,
	})

	return nil
}
