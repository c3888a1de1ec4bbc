package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/reqshift/reqshift/internal/importer"
	"github.com/spf13/cobra"
)

// newDetectCommand creates the detect command.
func newDetectCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "detect FILE",
		Short: "Detect the format of a collection file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDetect(cmd, args[0])
		},
	}
}

func runDetect(cmd *cobra.Command, path string) error {
	content, err := readInput(path)
	if err != nil {
		return err
	}

	// Extension routing mirrors the import path: .env and .csv never go
	// through structural detection.
	var format importer.Format
	switch strings.ToLower(filepath.Ext(path)) {
	case ".env":
		format = importer.FormatEnv
	case ".csv":
		format = importer.FormatCSV
	default:
		format = importer.Detect(content)
	}

	fmt.Fprintln(cmd.OutOrStdout(), string(format))

	if format == importer.FormatUnknown {
		return fmt.Errorf("%w: content does not match any known collection format", importer.ErrInvalidFormat)
	}
	return nil
}
