package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pable/fraglog/internal/aggregator"
	"github.com/pable/fraglog/internal/storage"
)

var exportOut string

var exportCmd = &cobra.Command{
	Use:   "export <hash-prefix>",
	Short: "Export a stored session as a JSON report",
	Long: `Write the stored session as {"matches": [...], "aggregate": {...}}.
Each Score carries name, score, kills, deaths, suicides, kdr and matches;
an infinite kdr (kills without deaths) is written as the string "inf".`,
	Args: cobra.ExactArgs(1),
	RunE: runExport,
}

func init() {
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "-", "output file ('-' for stdout)")
}

func runExport(cmd *cobra.Command, args []string) error {
	db, err := storage.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer db.Close()

	summary, session, err := loadSession(db, args[0])
	if err != nil {
		return err
	}
	if summary == nil {
		return fmt.Errorf("session not found: %s", args[0])
	}
	return writeJSONReport(exportOut, session, aggregator.Aggregate(session))
}
