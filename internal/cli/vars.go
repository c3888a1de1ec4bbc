package cli

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/reqshift/reqshift/internal/bulk"
	"github.com/reqshift/reqshift/internal/exporter"
	"github.com/reqshift/reqshift/internal/history"
	"github.com/reqshift/reqshift/internal/placeholder"
	"github.com/spf13/cobra"
)

// newVarsCommand creates the vars command group.
func newVarsCommand(root *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "vars",
		Short: "Work with a collection's variables",
	}

	cmd.AddCommand(newVarsExportCommand(root))
	cmd.AddCommand(newVarsImportCommand(root))
	cmd.AddCommand(newVarsScanCommand())

	return cmd
}

// VarsExportOptions holds options for vars export.
type VarsExportOptions struct {
	From   string
	Format string
	Output string
}

func newVarsExportCommand(root *rootOptions) *cobra.Command {
	opts := &VarsExportOptions{}

	cmd := &cobra.Command{
		Use:   "export FILE",
		Short: "Export a collection's variables as JSON or CSV",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runVarsExport(cmd, root, args[0], opts)
		},
	}

	cmd.Flags().StringVar(&opts.From, "from", "auto", "Source format")
	cmd.Flags().StringVar(&opts.Format, "format", "json", "Variable format (json, csv)")
	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "Output file (default: stdout)")

	return cmd
}

func runVarsExport(cmd *cobra.Command, root *rootOptions, path string, opts *VarsExportOptions) error {
	imported, err := importCollectionFile(cmd, path, opts.From)
	if err != nil {
		return err
	}

	content, err := bulk.ExportVariables(imported.Collection, bulk.VarFormat(opts.Format))
	if err != nil {
		return err
	}

	if err := writeRaw(cmd, opts.Output, content); err != nil {
		return err
	}

	root.recordHistory(cmd.Context(), history.Entry{
		Timestamp:      time.Now().UTC(),
		Operation:      history.OpVarsExport,
		SourceFormat:   string(imported.SourceFormat),
		TargetFormat:   opts.Format,
		SourcePath:     path,
		CollectionID:   imported.Collection.ID,
		CollectionName: imported.Collection.Name,
		VariableCount:  imported.VariableCount,
	})

	return nil
}

// VarsImportOptions holds options for vars import.
type VarsImportOptions struct {
	From   string
	Format string
	To     string
	Output string
}

func newVarsImportCommand(root *rootOptions) *cobra.Command {
	opts := &VarsImportOptions{}

	cmd := &cobra.Command{
		Use:   "import FILE VARSFILE",
		Short: "Replace a collection's variables from a JSON or CSV file",
		Long:  "Parse a variable document and write a copy of the collection whose variable set is fully replaced by it. The variable file is parsed in full before anything changes.",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runVarsImport(cmd, root, args[0], args[1], opts)
		},
	}

	cmd.Flags().StringVar(&opts.From, "from", "auto", "Collection source format")
	cmd.Flags().StringVar(&opts.Format, "format", "", "Variable format (json, csv; default: by extension)")
	cmd.Flags().StringVar(&opts.To, "to", "", "Target format (default: same as source)")
	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "Output file (default: stdout)")

	return cmd
}

func runVarsImport(cmd *cobra.Command, root *rootOptions, collPath, varsPath string, opts *VarsImportOptions) error {
	imported, err := importCollectionFile(cmd, collPath, opts.From)
	if err != nil {
		return err
	}

	varsContent, err := readInput(varsPath)
	if err != nil {
		return err
	}

	format := bulk.VarFormat(opts.Format)
	if format == "" {
		if strings.EqualFold(filepath.Ext(varsPath), ".csv") {
			format = bulk.VarFormatCSV
		} else {
			format = bulk.VarFormatJSON
		}
	}

	updated, err := bulk.ImportVariables(imported.Collection, varsContent, format)
	if err != nil {
		return fmt.Errorf("variable import failed: %w", err)
	}

	target := exportFormatFor(imported.SourceFormat)
	if opts.To != "" {
		target, err = parseExportFormat(opts.To)
		if err != nil {
			return err
		}
	}

	exported, err := exporter.NewDefaultRegistry().Export(cmd.Context(), target, updated)
	if err != nil {
		return fmt.Errorf("export failed: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Replaced variables: %d -> %d\n", imported.VariableCount, len(updated.Variables))
	if err := writeResult(cmd, opts.Output, exported); err != nil {
		return err
	}

	root.recordHistory(cmd.Context(), history.Entry{
		Timestamp:      time.Now().UTC(),
		Operation:      history.OpVarsImport,
		SourceFormat:   string(imported.SourceFormat),
		TargetFormat:   string(target),
		SourcePath:     collPath,
		CollectionID:   updated.ID,
		CollectionName: updated.Name,
		VariableCount:  len(updated.Variables),
		Detail:         fmt.Sprintf("vars file %s", varsPath),
	})

	return nil
}

// VarsScanOptions holds options for vars scan.
type VarsScanOptions struct {
	From string
}

func newVarsScanCommand() *cobra.Command {
	opts := &VarsScanOptions{}

	cmd := &cobra.Command{
		Use:   "scan FILE",
		Short: "List {{variable}} placeholders used by a collection",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runVarsScan(cmd, args[0], opts)
		},
	}

	cmd.Flags().StringVar(&opts.From, "from", "auto", "Source format")

	return cmd
}

func runVarsScan(cmd *cobra.Command, path string, opts *VarsScanOptions) error {
	imported, err := importCollectionFile(cmd, path, opts.From)
	if err != nil {
		return err
	}

	coll := imported.Collection
	names := placeholder.ExtractFromCollection(coll)
	defined := coll.VariableMap()

	out := cmd.OutOrStdout()
	if len(names) == 0 {
		fmt.Fprintln(out, "No placeholders found")
		return nil
	}

	undefined := 0
	for _, name := range names {
		if _, ok := defined[name]; ok {
			fmt.Fprintf(out, "  %s\n", name)
		} else {
			fmt.Fprintf(out, "  %s (undefined)\n", name)
			undefined++
		}
	}

	fmt.Fprintf(out, "%d placeholder(s), %d undefined\n", len(names), undefined)
	return nil
}
