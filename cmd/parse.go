package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/pable/fraglog/internal/aggregator"
	"github.com/pable/fraglog/internal/model"
	"github.com/pable/fraglog/internal/parser"
	"github.com/pable/fraglog/internal/report"
	"github.com/pable/fraglog/internal/storage"
)

var (
	parseFocus   string
	parseJSON    string
	parseNoStore bool
	parseQuiet   bool
)

var parseCmd = &cobra.Command{
	Use:   "parse <transcript.log>",
	Short: "Parse a server transcript and store its match stats",
	Args:  cobra.ExactArgs(1),
	RunE:  runParse,
}

func init() {
	parseCmd.Flags().StringVar(&parseFocus, "player", "", "focus player name")
	parseCmd.Flags().StringVar(&parseJSON, "json", "", "write the JSON report to this file ('-' for stdout)")
	parseCmd.Flags().BoolVar(&parseNoStore, "no-store", false, "do not write the session to the database")
	parseCmd.Flags().BoolVarP(&parseQuiet, "quiet", "q", false, "skip table output")
}

func runParse(cmd *cobra.Command, args []string) error {
	logPath := args[0]

	if !parseQuiet && parseJSON != "-" {
		fmt.Fprintf(os.Stdout, "Parsing %s...\n", logPath)
	}
	res, err := parser.ParseFile(logPath, logger)
	if err != nil {
		return fmt.Errorf("parse transcript: %w", err)
	}
	logger.Info("transcript parsed",
		slog.String("hash", res.Hash[:12]),
		slog.Int("lines", res.Lines),
		slog.Int("matches", len(res.Session)),
		slog.Int("unknown", len(res.Diagnostics)))

	if !parseNoStore {
		if err := storeSession(logPath, res); err != nil {
			return err
		}
	}

	agg := aggregator.Aggregate(res.Session)

	if parseJSON != "" {
		if err := writeJSONReport(parseJSON, res.Session, agg); err != nil {
			return err
		}
	}
	if parseQuiet || parseJSON == "-" {
		return nil
	}

	for i, m := range res.Session {
		report.PrintMatch(os.Stdout, i+1, m, parseFocus)
	}
	report.PrintAggregate(os.Stdout, agg, parseFocus)
	report.PrintDiagnostics(os.Stdout, res.Diagnostics, cfg.Top)
	return nil
}

func storeSession(logPath string, res *parser.Result) error {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return fmt.Errorf("create db dir: %w", err)
	}

	db, err := storage.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer db.Close()

	exists, err := db.SessionExists(res.Hash)
	if err != nil {
		return fmt.Errorf("check session: %w", err)
	}
	if exists {
		logger.Info("session already stored", slog.String("hash", res.Hash[:12]))
		return nil
	}

	abs, err := filepath.Abs(logPath)
	if err != nil {
		abs = logPath
	}
	summary := model.SessionSummary{
		Hash:     res.Hash,
		Source:   abs,
		ParsedAt: time.Now().UTC().Format(time.RFC3339),
	}
	if err := db.InsertSession(summary, res.Session); err != nil {
		return fmt.Errorf("insert session: %w", err)
	}
	logger.Info("session stored", slog.String("hash", res.Hash[:12]), slog.Int("matches", len(res.Session)))
	return nil
}

func writeJSONReport(path string, session model.Session, agg model.Aggregate) error {
	if path == "-" {
		return report.WriteJSON(os.Stdout, session, agg)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create report: %w", err)
	}
	if err := report.WriteJSON(f, session, agg); err != nil {
		f.Close()
		return fmt.Errorf("write report: %w", err)
	}
	return f.Close()
}
