package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/reqshift/reqshift/internal/exporter"
	"github.com/reqshift/reqshift/internal/importer"
	"github.com/spf13/cobra"
)

// readInput loads the file to operate on.
func readInput(path string) ([]byte, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return content, nil
}

// writeResult writes exported content to the output path, or to stdout
// when no path is given. A path without an extension gains the target
// format's default one.
func writeResult(cmd *cobra.Command, outputPath string, result *exporter.ExportResult) error {
	if outputPath == "" {
		fmt.Fprintln(cmd.OutOrStdout(), string(result.Content))
		return nil
	}

	if filepath.Ext(outputPath) == "" {
		outputPath += result.FileExtension
	}

	if err := os.WriteFile(outputPath, result.Content, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", outputPath, err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", outputPath)
	return nil
}

// writeRaw writes arbitrary content to the output path, or to stdout
// when no path is given.
func writeRaw(cmd *cobra.Command, outputPath string, content []byte) error {
	if outputPath == "" {
		fmt.Fprintln(cmd.OutOrStdout(), string(content))
		return nil
	}

	if err := os.WriteFile(outputPath, content, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", outputPath, err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", outputPath)
	return nil
}

// exportFormatFor maps a source format onto the exporter that renders it
// back out. CSV has no collection-level exporter, so CSV-sourced
// collections render as generic JSON.
func exportFormatFor(source importer.Format) exporter.Format {
	switch source {
	case importer.FormatPostman:
		return exporter.FormatPostman
	case importer.FormatInsomnia:
		return exporter.FormatInsomnia
	case importer.FormatThunderClient:
		return exporter.FormatThunderClient
	case importer.FormatEnv:
		return exporter.FormatEnv
	default:
		return exporter.FormatJSON
	}
}

// importCollectionFile is the shared import step of every command that
// operates on a collection file.
func importCollectionFile(cmd *cobra.Command, path, from string) (*importer.ImportResult, error) {
	content, err := readInput(path)
	if err != nil {
		return nil, err
	}

	registry := importer.NewDefaultRegistry()
	ctx := cmd.Context()

	var imported *importer.ImportResult
	if from == "auto" {
		imported, err = registry.ImportFile(ctx, path, content)
	} else {
		imported, err = registry.Import(ctx, importer.Format(from), content)
	}
	if err != nil {
		return nil, fmt.Errorf("import failed: %w", err)
	}
	return imported, nil
}

// parseExportFormat validates a --to flag value.
func parseExportFormat(value string) (exporter.Format, error) {
	switch f := exporter.Format(strings.ToLower(value)); f {
	case exporter.FormatPostman, exporter.FormatInsomnia, exporter.FormatThunderClient,
		exporter.FormatJSON, exporter.FormatEnv:
		return f, nil
	default:
		return "", fmt.Errorf("unknown target format %q (postman, insomnia, thunderclient, json, env)", value)
	}
}
