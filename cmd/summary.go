package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pable/fraglog/internal/aggregator"
	"github.com/pable/fraglog/internal/report"
	"github.com/pable/fraglog/internal/storage"
)

var summaryFocus string

// summaryCmd aggregates every stored match into one set of totals.
var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Show totals across every stored session",
	Long: `Merge the match reports of every stored session into one leaderboard,
PvP table and weapon breakdown, using the same aggregation as a single session.`,
	Args: cobra.NoArgs,
	RunE: runSummary,
}

func init() {
	summaryCmd.Flags().StringVar(&summaryFocus, "player", "", "highlight player name")
}

func runSummary(cmd *cobra.Command, args []string) error {
	db, err := storage.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer db.Close()

	sessions, err := db.ListSessions()
	if err != nil {
		return fmt.Errorf("list sessions: %w", err)
	}
	if len(sessions) == 0 {
		fmt.Fprintln(os.Stdout, "No sessions stored yet. Run 'fraglog parse <transcript.log>' to add one.")
		return nil
	}

	all, err := db.GetAllMatchReports()
	if err != nil {
		return fmt.Errorf("get match reports: %w", err)
	}

	fmt.Fprintf(os.Stdout, "\n=== Database Summary ===\n\n")
	fmt.Fprintf(os.Stdout, "  Sessions stored : %d\n", len(sessions))
	fmt.Fprintf(os.Stdout, "  Matches         : %d\n", len(all))
	fmt.Fprintf(os.Stdout, "  Date range      : %s → %s\n", sessions[len(sessions)-1].ParsedAt, sessions[0].ParsedAt)

	agg := aggregator.Aggregate(all)
	fmt.Fprintf(os.Stdout, "  Players seen    : %d\n", len(agg.Leaderboard))
	report.PrintAggregate(os.Stdout, agg, summaryFocus)
	return nil
}
