package cli

import (
	"context"
	"os"
	"path/filepath"

	"github.com/reqshift/reqshift/internal/history"
	"github.com/reqshift/reqshift/internal/history/sqlite"
	"github.com/reqshift/reqshift/internal/storage/filesystem"
	"github.com/spf13/cobra"
)

// rootOptions holds flags shared by every subcommand.
type rootOptions struct {
	dataDir string
}

// NewRootCommand creates the root command.
func NewRootCommand(version string) *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:          "reqshift",
		Short:        "Reqshift - convert API collections between formats",
		Long:         "Reqshift imports, converts, and edits API collections across Postman, Insomnia, Thunder Client, dotenv, CSV, and generic JSON formats.",
		Version:      version,
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringVar(&opts.dataDir, "data-dir", defaultDataDir(), "Directory for the collection library and operation history")

	// Add subcommands
	cmd.AddCommand(newImportCommand(opts))
	cmd.AddCommand(newConvertCommand(opts))
	cmd.AddCommand(newDetectCommand())
	cmd.AddCommand(newReplaceCommand(opts))
	cmd.AddCommand(newVarsCommand(opts))
	cmd.AddCommand(newListCommand(opts))
	cmd.AddCommand(newHistoryCommand(opts))

	return cmd
}

func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".reqshift"
	}
	return filepath.Join(home, ".reqshift")
}

func (o *rootOptions) openLibrary() (*filesystem.LibraryStore, error) {
	return filesystem.NewLibraryStore(filepath.Join(o.dataDir, "collections"))
}

func (o *rootOptions) openHistory() (history.Store, error) {
	if err := os.MkdirAll(o.dataDir, 0755); err != nil {
		return nil, err
	}
	return sqlite.New(filepath.Join(o.dataDir, "history.db"))
}

// recordHistory logs an operation, best effort. A broken history database
// never fails the operation itself.
func (o *rootOptions) recordHistory(ctx context.Context, entry history.Entry) {
	store, err := o.openHistory()
	if err != nil {
		return
	}
	defer store.Close()
	store.Add(ctx, entry)
}
