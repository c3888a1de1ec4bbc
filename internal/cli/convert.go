package cli

import (
	"fmt"
	"time"

	"github.com/atotto/clipboard"
	"github.com/reqshift/reqshift/internal/exporter"
	"github.com/reqshift/reqshift/internal/history"
	"github.com/reqshift/reqshift/internal/placeholder"
	"github.com/spf13/cobra"
)

// ConvertOptions holds options for the convert command.
type ConvertOptions struct {
	From    string
	To      string
	Output  string
	Copy    bool
	Resolve bool
}

// newConvertCommand creates the convert command.
func newConvertCommand(root *rootOptions) *cobra.Command {
	opts := &ConvertOptions{}

	cmd := &cobra.Command{
		Use:   "convert FILE",
		Short: "Convert a collection to another format",
		Long:  "Convert a collection file between Postman, Insomnia, Thunder Client, generic JSON, and dotenv formats.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConvert(cmd, root, args[0], opts)
		},
	}

	cmd.Flags().StringVar(&opts.From, "from", "auto", "Source format (auto, postman, insomnia, thunderclient, env, csv, json)")
	cmd.Flags().StringVar(&opts.To, "to", "", "Target format (postman, insomnia, thunderclient, json, env)")
	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "Output file (default: stdout)")
	cmd.Flags().BoolVar(&opts.Copy, "copy", false, "Copy the converted output to the clipboard")
	cmd.Flags().BoolVar(&opts.Resolve, "resolve", false, "Substitute {{variable}} placeholders with the collection's own values")
	cmd.MarkFlagRequired("to")

	return cmd
}

func runConvert(cmd *cobra.Command, root *rootOptions, path string, opts *ConvertOptions) error {
	target, err := parseExportFormat(opts.To)
	if err != nil {
		return err
	}

	imported, err := importCollectionFile(cmd, path, opts.From)
	if err != nil {
		return err
	}
	ctx := cmd.Context()

	coll := imported.Collection
	if opts.Resolve {
		// Undefined placeholders survive substitution untouched.
		resolver := placeholder.NewResolver(coll, true)
		coll, err = resolver.ResolveCollection(coll)
		if err != nil {
			return fmt.Errorf("failed to resolve placeholders: %w", err)
		}
	}

	result, err := exporter.NewDefaultRegistry().Export(ctx, target, coll)
	if err != nil {
		return fmt.Errorf("export failed: %w", err)
	}

	if err := writeResult(cmd, opts.Output, result); err != nil {
		return err
	}

	if opts.Copy {
		if err := clipboard.WriteAll(string(result.Content)); err != nil {
			return fmt.Errorf("failed to copy to clipboard: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Copied to clipboard")
	}

	root.recordHistory(ctx, history.Entry{
		Timestamp:      time.Now().UTC(),
		Operation:      history.OpConvert,
		SourceFormat:   string(imported.SourceFormat),
		TargetFormat:   string(target),
		SourcePath:     path,
		CollectionID:   coll.ID,
		CollectionName: coll.Name,
		RequestCount:   imported.RequestCount,
		FolderCount:    imported.FolderCount,
		VariableCount:  imported.VariableCount,
	})

	return nil
}
