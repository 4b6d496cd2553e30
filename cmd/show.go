package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pable/fraglog/internal/aggregator"
	"github.com/pable/fraglog/internal/model"
	"github.com/pable/fraglog/internal/report"
	"github.com/pable/fraglog/internal/storage"
)

var (
	showFocus     string
	showAggregate bool
)

var showCmd = &cobra.Command{
	Use:   "show <hash-prefix>",
	Short: "Show stored match stats by session hash prefix",
	Args:  cobra.ExactArgs(1),
	RunE:  runShow,
}

func init() {
	showCmd.Flags().StringVar(&showFocus, "player", "", "highlight player name")
	showCmd.Flags().BoolVar(&showAggregate, "aggregate", false, "only print the session totals")
}

func runShow(cmd *cobra.Command, args []string) error {
	prefix := args[0]

	db, err := storage.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer db.Close()

	summary, session, err := loadSession(db, prefix)
	if err != nil {
		return err
	}
	if summary == nil {
		fmt.Fprintf(os.Stderr, "No session found with hash prefix %q\n", prefix)
		return nil
	}

	fmt.Fprintf(os.Stdout, "\nSession %s  |  %s  |  Parsed: %s\n", summary.Hash[:12], summary.Source, summary.ParsedAt)
	if !showAggregate {
		for i, m := range session {
			report.PrintMatch(os.Stdout, i+1, m, showFocus)
		}
	}
	report.PrintAggregate(os.Stdout, aggregator.Aggregate(session), showFocus)
	return nil
}

func loadSession(db *storage.DB, prefix string) (*model.SessionSummary, model.Session, error) {
	summary, err := db.GetSessionByPrefix(prefix)
	if err != nil {
		return nil, nil, fmt.Errorf("query session: %w", err)
	}
	if summary == nil {
		return nil, nil, nil
	}
	session, err := db.GetMatchReports(summary.Hash)
	if err != nil {
		return nil, nil, fmt.Errorf("get match reports: %w", err)
	}
	return summary, session, nil
}
