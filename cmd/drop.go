package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/spf13/cobra"

	"github.com/pable/fraglog/internal/storage"
)

var dropForce bool

// dropCmd deletes the session database file.
var dropCmd = &cobra.Command{
	Use:   "drop",
	Short: "Delete the session database",
	Long:  "Permanently delete the SQLite session database and its WAL files. Stored sessions are rebuilt only by parsing the transcripts again.",
	Args:  cobra.NoArgs,
	RunE:  runDrop,
}

func init() {
	dropCmd.Flags().BoolVarP(&dropForce, "force", "f", false, "skip confirmation prompt")
}

func runDrop(cmd *cobra.Command, args []string) error {
	if !dropForce {
		fmt.Fprintf(os.Stderr, "This will permanently delete: %s\n", dbPath)
		fmt.Fprintf(os.Stderr, "Re-run with --force to confirm.\n")
		return nil
	}
	err := storage.Remove(dbPath)
	if errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintln(os.Stdout, "Database does not exist, nothing to drop.")
		return nil
	}
	if err != nil {
		return err
	}
	fmt.Fprintf(os.Stdout, "Deleted: %s\n", dbPath)
	return nil
}
