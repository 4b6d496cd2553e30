package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pable/fraglog/internal/report"
	"github.com/pable/fraglog/internal/storage"
)

var sqlCmd = &cobra.Command{
	Use:   "sql <query>",
	Short: "Run a raw SQL query against the session database",
	Long: `Run an arbitrary SQL query against the session database and print results as a table.

Schema overview:
  sessions(hash, source, parsed_at, match_count)
  matches(session_hash, match_index, gametime)
  match_players(session_hash, match_index, name, suicides, lives_json)
  leaderboard_rows(session_hash, match_index, rank, name, kills, deaths, suicides)
  pvp_rows(session_hash, match_index, name, rank, opponent, kills, deaths)
  weapon_rows(session_hash, match_index, name, weapon, kills, deaths, suicides)

Example: fraglog sql "SELECT name, SUM(kills) FROM leaderboard_rows GROUP BY name"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSQL,
}

func runSQL(cmd *cobra.Command, args []string) error {
	query := strings.TrimSpace(strings.Join(args, " "))
	if query == "" {
		return fmt.Errorf("empty query")
	}
	db, err := storage.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}
	defer db.Close()

	cols, rows, err := db.QueryRaw(query)
	if err != nil {
		return err
	}
	report.PrintQueryResult(os.Stdout, cols, rows)
	return nil
}

