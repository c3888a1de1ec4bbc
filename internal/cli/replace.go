package cli

import (
	"fmt"
	"time"

	"github.com/reqshift/reqshift/internal/bulk"
	"github.com/reqshift/reqshift/internal/exporter"
	"github.com/reqshift/reqshift/internal/history"
	"github.com/spf13/cobra"
)

// ReplaceOptions holds options for the replace command.
type ReplaceOptions struct {
	Find          string
	Replace       string
	Scope         string
	CaseSensitive bool
	From          string
	To            string
	Output        string
}

// newReplaceCommand creates the replace command.
func newReplaceCommand(root *rootOptions) *cobra.Command {
	opts := &ReplaceOptions{}

	cmd := &cobra.Command{
		Use:   "replace FILE",
		Short: "Find and replace text across a collection",
		Long:  "Replace every occurrence of a literal substring in a collection's variable values, URLs, headers, and bodies, then write the result back out.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReplace(cmd, root, args[0], opts)
		},
	}

	cmd.Flags().StringVar(&opts.Find, "find", "", "Literal text to find")
	cmd.Flags().StringVar(&opts.Replace, "replace", "", "Replacement text")
	cmd.Flags().StringVar(&opts.Scope, "scope", "all", "Where to replace (all, variables, requests)")
	cmd.Flags().BoolVar(&opts.CaseSensitive, "case-sensitive", false, "Match case exactly")
	cmd.Flags().StringVar(&opts.From, "from", "auto", "Source format")
	cmd.Flags().StringVar(&opts.To, "to", "", "Target format (default: same as source)")
	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "Output file (default: stdout)")
	cmd.MarkFlagRequired("find")

	return cmd
}

func runReplace(cmd *cobra.Command, root *rootOptions, path string, opts *ReplaceOptions) error {
	switch opts.Scope {
	case string(bulk.ScopeAll), string(bulk.ScopeVariables), string(bulk.ScopeRequests):
	default:
		return fmt.Errorf("unknown scope %q (all, variables, requests)", opts.Scope)
	}

	imported, err := importCollectionFile(cmd, path, opts.From)
	if err != nil {
		return err
	}
	ctx := cmd.Context()

	result := bulk.Replace(imported.Collection, bulk.ReplaceOptions{
		Find:          opts.Find,
		Replace:       opts.Replace,
		Scope:         bulk.Scope(opts.Scope),
		CaseSensitive: opts.CaseSensitive,
	})

	target := exportFormatFor(imported.SourceFormat)
	if opts.To != "" {
		target, err = parseExportFormat(opts.To)
		if err != nil {
			return err
		}
	}

	exported, err := exporter.NewDefaultRegistry().Export(ctx, target, result.Collection)
	if err != nil {
		return fmt.Errorf("export failed: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Replaced %d occurrence(s)\n", result.Count)
	if err := writeResult(cmd, opts.Output, exported); err != nil {
		return err
	}

	root.recordHistory(ctx, history.Entry{
		Timestamp:      time.Now().UTC(),
		Operation:      history.OpReplace,
		SourceFormat:   string(imported.SourceFormat),
		TargetFormat:   string(target),
		SourcePath:     path,
		CollectionID:   result.Collection.ID,
		CollectionName: result.Collection.Name,
		RequestCount:   imported.RequestCount,
		FolderCount:    imported.FolderCount,
		VariableCount:  imported.VariableCount,
		Detail:         fmt.Sprintf("find=%q replaced=%d", opts.Find, result.Count),
	})

	return nil
}
