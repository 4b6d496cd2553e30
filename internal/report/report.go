package report

import (
	"fmt"
	"io"
	"maps"
	"math"
	"slices"
	"strconv"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/pable/fraglog/internal/model"
)

var cHeader = color.New(color.FgCyan, color.Bold)

func newTable(w io.Writer) *tablewriter.Table {
	return tablewriter.NewTable(w, tablewriter.WithConfig(tablewriter.Config{
		Row:    tw.CellConfig{Alignment: tw.CellAlignment{Global: tw.AlignRight}},
		Header: tw.CellConfig{Alignment: tw.CellAlignment{Global: tw.AlignCenter}},
	}))
}

// FormatKDR renders a kill/death ratio, using "inf" for a deathless fragger.
func FormatKDR(s model.Score) string {
	kdr := s.KDR()
	if math.IsInf(kdr, 1) {
		return model.KDRInf
	}
	return fmt.Sprintf("%.2f", kdr)
}

// PrintMatchHeader prints a one-line header for match number n (1-based).
func PrintMatchHeader(w io.Writer, n int, m *model.MatchReport) {
	gametime := m.Gametime
	if gametime == "" {
		gametime = "-"
	}
	cHeader.Fprintf(w, "\nMatch %d  |  Started: %s  |  Players: %d\n\n", n, gametime, len(m.Players))
}

// PrintSectionHeader prints a titled divider.
func PrintSectionHeader(w io.Writer, title string) {
	cHeader.Fprintf(w, "\n--- %s ---\n\n", title)
}

// PrintLeaderboard prints a ranked leaderboard. If focus is non-empty, that
// player's row is marked with ">".
func PrintLeaderboard(w io.Writer, board []model.Score, focus string) {
	table := newTable(w)
	table.Header(" ", "#", "PLAYER", "SCORE", "K", "D", "SUI", "K/D", "MATCHES")

	for i, s := range board {
		marker := " "
		if focus != "" && s.Name == focus {
			marker = ">"
		}
		table.Append(
			marker,
			strconv.Itoa(i+1),
			s.Name,
			strconv.Itoa(s.Points()),
			strconv.Itoa(s.Kills),
			strconv.Itoa(s.Deaths),
			strconv.Itoa(s.Suicides),
			FormatKDR(s),
			strconv.Itoa(s.Matches),
		)
	}
	table.Render()
}

// PrintPvPTable prints one row per (player, opponent) pair, players in name
// order and opponents in the stored order. If focus is non-empty only that
// player's rows are shown.
func PrintPvPTable(w io.Writer, pvp map[string][]model.Score, focus string) {
	table := newTable(w)
	table.Header("PLAYER", "OPPONENT", "K", "D", "NET", "K/D")

	for _, name := range slices.Sorted(maps.Keys(pvp)) {
		if focus != "" && name != focus {
			continue
		}
		for _, opp := range pvp[name] {
			table.Append(
				name,
				opp.Name,
				strconv.Itoa(opp.Kills),
				strconv.Itoa(opp.Deaths),
				strconv.Itoa(opp.Kills-opp.Deaths),
				FormatKDR(opp),
			)
		}
	}
	table.Render()
}

// PrintWeaponTable prints a per-player, per-weapon breakdown.
// If focus is non-empty, only rows for that player are shown.
func PrintWeaponTable(w io.Writer, byName map[string]map[string]model.Score, focus string) {
	table := newTable(w)
	table.Header("PLAYER", "WEAPON", "K", "D", "SUI")

	for _, name := range slices.Sorted(maps.Keys(byName)) {
		if focus != "" && name != focus {
			continue
		}
		tally := byName[name]
		for _, weapon := range slices.Sorted(maps.Keys(tally)) {
			s := tally[weapon]
			table.Append(
				name,
				weapon,
				strconv.Itoa(s.Kills),
				strconv.Itoa(s.Deaths),
				strconv.Itoa(s.Suicides),
			)
		}
	}
	table.Render()
}

// PrintWeaponAggTable prints weapon totals, most frags first.
func PrintWeaponAggTable(w io.Writer, agg map[string]model.Score) {
	weapons := slices.Sorted(maps.Keys(agg))
	slices.SortStableFunc(weapons, func(a, b string) int {
		return agg[b].Kills - agg[a].Kills
	})

	table := newTable(w)
	table.Header("WEAPON", "KILLS", "SUICIDES", "MATCHES")
	for _, weapon := range weapons {
		s := agg[weapon]
		table.Append(
			weapon,
			strconv.Itoa(s.Kills),
			strconv.Itoa(s.Suicides),
			strconv.Itoa(s.Matches),
		)
	}
	table.Render()
}

// PrintMatch prints every table of one finalized match.
func PrintMatch(w io.Writer, n int, m *model.MatchReport, focus string) {
	PrintMatchHeader(w, n, m)
	PrintLeaderboard(w, m.Leaderboard, focus)
	PrintSectionHeader(w, "PvP")
	PrintPvPTable(w, m.PvP, focus)
	PrintSectionHeader(w, "Weapons")
	PrintWeaponTable(w, m.WeaponsByName, focus)
}

// PrintAggregate prints the session-wide totals.
func PrintAggregate(w io.Writer, agg model.Aggregate, focus string) {
	PrintSectionHeader(w, "Session Leaderboard")
	PrintLeaderboard(w, agg.Leaderboard, focus)
	PrintSectionHeader(w, "Session PvP")
	PrintPvPTable(w, agg.PvP, focus)
	PrintSectionHeader(w, "Session Weapons")
	PrintWeaponAggTable(w, agg.WeaponsAgg)
}

// PrintSessionList prints stored sessions, newest first as given.
func PrintSessionList(w io.Writer, sessions []model.SessionSummary) {
	table := newTable(w)
	table.Header("HASH", "PARSED", "MATCHES", "SOURCE")
	for _, s := range sessions {
		table.Append(shortHash(s.Hash), s.ParsedAt, strconv.Itoa(s.MatchCount), s.Source)
	}
	table.Render()
}

// PrintQueryResult tabulates a raw query result followed by its row count.
func PrintQueryResult(w io.Writer, cols []string, rows [][]string) {
	if len(rows) == 0 {
		fmt.Fprintln(w, "(no rows)")
		return
	}
	table := newTable(w)
	table.Header(toAny(cols)...)
	for _, row := range rows {
		table.Append(toAny(row)...)
	}
	table.Render()
	fmt.Fprintf(w, "\n(%d rows)\n", len(rows))
}

func toAny(cells []string) []any {
	out := make([]any, len(cells))
	for i, c := range cells {
		out[i] = c
	}
	return out
}

// PrintDiagnostics lists unrecognised lines, at most limit of them (0 = all).
func PrintDiagnostics(w io.Writer, diags []model.Diagnostic, limit int) {
	if len(diags) == 0 {
		return
	}
	PrintSectionHeader(w, fmt.Sprintf("Unknown lines (%d)", len(diags)))
	for i, d := range diags {
		if limit > 0 && i >= limit {
			fmt.Fprintf(w, "  ... %d more\n", len(diags)-limit)
			break
		}
		fmt.Fprintf(w, "  %6d  %s\n", d.Line, d.Text)
	}
}

func shortHash(h string) string {
	if len(h) > 12 {
		return h[:12]
	}
	return h
}
