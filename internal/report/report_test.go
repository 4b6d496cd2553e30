package report

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/fatih/color"

	"github.com/pable/fraglog/internal/model"
)

func init() {
	color.NoColor = true
}

func TestFormatKDR(t *testing.T) {
	cases := []struct {
		s    model.Score
		want string
	}{
		{model.Score{Kills: 3, Deaths: 2}, "1.50"},
		{model.Score{Kills: 2}, "inf"},
		{model.Score{}, "0.00"},
		{model.Score{Deaths: 4}, "0.00"},
	}
	for _, c := range cases {
		if got := FormatKDR(c.s); got != c.want {
			t.Errorf("FormatKDR(%+v) = %q, want %q", c.s, got, c.want)
		}
	}
}

func TestPrintLeaderboard(t *testing.T) {
	board := []model.Score{
		{Name: "Bob", Kills: 2, Matches: 1},
		{Name: "Alice", Kills: 1, Deaths: 2, Matches: 1},
	}
	var buf bytes.Buffer
	PrintLeaderboard(&buf, board, "Alice")
	out := buf.String()

	for _, want := range []string{"PLAYER", "Bob", "Alice", "inf", "0.50", ">"} {
		if !strings.Contains(out, want) {
			t.Errorf("leaderboard output missing %q:\n%s", want, out)
		}
	}
	if strings.Index(out, "Bob") > strings.Index(out, "Alice") {
		t.Errorf("expected Bob before Alice:\n%s", out)
	}
}

func TestPrintPvPTable_Focus(t *testing.T) {
	pvp := map[string][]model.Score{
		"Alice": {{Name: "Bob", Kills: 1, Deaths: 2, Matches: 1}},
		"Bob":   {{Name: "Alice", Kills: 2, Deaths: 1, Matches: 1}},
	}
	var buf bytes.Buffer
	PrintPvPTable(&buf, pvp, "Bob")
	out := buf.String()
	if !strings.Contains(out, "2.00") {
		t.Errorf("expected Bob's 2.00 kdr against Alice:\n%s", out)
	}
	if strings.Contains(out, "0.50") {
		t.Errorf("Alice's rows should be filtered out:\n%s", out)
	}
}

func TestPrintDiagnostics_Limit(t *testing.T) {
	diags := []model.Diagnostic{
		{Line: 3, Text: "Server crashed??"},
		{Line: 9, Text: "???"},
		{Line: 12, Text: "garbage"},
	}
	var buf bytes.Buffer
	PrintDiagnostics(&buf, diags, 2)
	out := buf.String()
	if !strings.Contains(out, "Server crashed??") {
		t.Errorf("missing first diagnostic:\n%s", out)
	}
	if strings.Contains(out, "garbage") {
		t.Errorf("diagnostic past the limit was printed:\n%s", out)
	}
	if !strings.Contains(out, "1 more") {
		t.Errorf("missing overflow note:\n%s", out)
	}

	buf.Reset()
	PrintDiagnostics(&buf, nil, 0)
	if buf.Len() != 0 {
		t.Errorf("expected no output for no diagnostics, got %q", buf.String())
	}
}

func TestWriteJSON(t *testing.T) {
	bob := model.Score{Name: "Bob", Kills: 2, Matches: 1}
	alice := model.Score{Name: "Alice", Kills: 1, Deaths: 2, Matches: 1}
	session := model.Session{{
		Gametime: "T0",
		Players: map[string]model.PlayerReport{
			"Bob":   {Lives: [][]string{{"Alice", "Alice"}}, Kills: map[string]int{"Alice": 2}, Deaths: map[string]int{}},
			"Alice": {Lives: [][]string{{}, {"Bob"}, {}}, Kills: map[string]int{"Bob": 1}, Deaths: map[string]int{"Bob": 2}},
		},
		Leaderboard: []model.Score{bob, alice},
	}}
	agg := model.Aggregate{Leaderboard: []model.Score{bob, alice}}

	var buf bytes.Buffer
	if err := WriteJSON(&buf, session, agg); err != nil {
		t.Fatalf("WriteJSON: %v", err)
	}
	out := buf.String()
	for _, want := range []string{`"matches"`, `"aggregate"`, `"kdr": "inf"`, `"gametime": "T0"`} {
		if !strings.Contains(out, want) {
			t.Errorf("JSON output missing %s:\n%s", want, out)
		}
	}

	var doc Document
	if err := json.Unmarshal(buf.Bytes(), &doc); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(doc.Matches) != 1 || doc.Matches[0].Leaderboard[0] != bob {
		t.Errorf("unexpected decoded matches %+v", doc.Matches)
	}
	if doc.Aggregate.Leaderboard[1] != alice {
		t.Errorf("unexpected decoded aggregate %+v", doc.Aggregate.Leaderboard)
	}
}

func TestWriteJSON_EmptySession(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteJSON(&buf, nil, model.Aggregate{}); err != nil {
		t.Fatalf("WriteJSON: %v", err)
	}
	if !strings.Contains(buf.String(), `"matches": []`) {
		t.Errorf("expected an empty matches array:\n%s", buf.String())
	}
}

func TestPrintQueryResult(t *testing.T) {
	var buf bytes.Buffer
	PrintQueryResult(&buf, []string{"name", "kills"}, [][]string{{"Bob", "2"}, {"Alice", "1"}})
	out := buf.String()
	for _, want := range []string{"Bob", "Alice", "(2 rows)"} {
		if !strings.Contains(out, want) {
			t.Errorf("query output missing %q:\n%s", want, out)
		}
	}

	buf.Reset()
	PrintQueryResult(&buf, []string{"name"}, nil)
	if got := buf.String(); got != "(no rows)\n" {
		t.Errorf("expected (no rows), got %q", got)
	}
}
