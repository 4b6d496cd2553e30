package parser

import (
	"slices"
	"strings"
	"testing"

	"github.com/pable/fraglog/internal/model"
)

type classifyCase struct {
	line   string
	kind   model.EventKind
	label  string
	victim string
	killer string
}

// classifyCases holds one row per kill and suicide phrasing in patterns.go.
// Kills use victim Alice and killer Bob; suicides use victim Carl.
var classifyCases = []classifyCase{
	{"Server using port 26000", model.EventIgnored, "", "", ""},
	{":scores:dm_1", model.EventIgnored, "", "", ""},
	{`"fraglimit" changed to "30"`, model.EventIgnored, "", "", ""},
	{"=== Log started (2012-03-04 20:00:00) ===", model.EventMatchStart, "", "", ""},
	{"Bob wins", model.EventWin, "", "", ""},

	{"Alice connected", model.EventState, "connected", "", ""},
	{"Alice is spectating now", model.EventState, "spectating", "", ""},
	{"Alice is playing now", model.EventState, "playing", "", ""},
	{"Bob: gg", model.EventState, "chat", "", ""},
	{"Bob drew first blood", model.EventState, "firstblood", "", ""},
	{"Bob has 5 frags in a row", model.EventState, "streak", "", ""},
	{"Bob's 5 kill spree was ended by Alice", model.EventState, "streakend", "", ""},
	{"Bob ended it all after a 5 kill spree", model.EventState, "streakendsuicide", "", ""},
	{"Bob made a TRIPLE FRAG", model.EventState, "triple", "", ""},
	{"Bob unleashes RAGE", model.EventState, "rage", "", ""},
	{"Bob starts the MASSACRE", model.EventState, "massacre", "", ""},
	{"Bob executes MAYHEM!", model.EventState, "mayhem", "", ""},
	{`Client "Alice" dropped`, model.EventState, "dropped", "", ""},
	{"Alice disconnected", model.EventState, "disconnected", "", ""},

	{"Alice was gunned by Bob", model.EventKill, "shotgun", "Alice", "Bob"},
	{"Alice was riddled full of holes by Bob", model.EventKill, "machinegun", "Alice", "Bob"},
	{"Alice was sniped by Bob", model.EventKill, "nex", "Alice", "Bob"},
	{"Alice has been vaporized by Bob", model.EventKill, "nex", "Alice", "Bob"},
	{"Alice could not hide from Bob's Crylink", model.EventKill, "crylink", "Alice", "Bob"},
	{"Alice took a close look at Bob's Crylink", model.EventKill, "crylink", "Alice", "Bob"},
	{"Alice was too close to Bob's Crylink", model.EventKill, "crylink", "Alice", "Bob"},
	{"Alice almost dodged Bob's rocket", model.EventKill, "rocket", "Alice", "Bob"},
	{"Alice ate Bob's rocket", model.EventKill, "rocket", "Alice", "Bob"},
	{"Alice hoped Bob's missiles wouldn't bounce", model.EventKill, "rocket", "Alice", "Bob"},
	{"Alice got too close to Bob's blue beam", model.EventKill, "blue", "Alice", "Bob"},
	{"Alice was blasted by Bob's blue beam", model.EventKill, "blue", "Alice", "Bob"},
	{"Alice got in touch with Bob's blue ball", model.EventKill, "blue", "Alice", "Bob"},
	{"Alice felt the electrifying air of Bob's combo", model.EventKill, "bluecombo", "Alice", "Bob"},
	{"Alice almost dodged Bob's grenade", model.EventKill, "grenade", "Alice", "Bob"},
	{"Alice ate Bob's grenade", model.EventKill, "grenade", "Alice", "Bob"},
	{"Alice was telefragged by Bob", model.EventKill, "telefrag", "Alice", "Bob"},
	{"Alice was pummeled by Bob", model.EventKill, "pummel", "Alice", "Bob"},
	{"Alice was grounded by Bob", model.EventKill, "grounded", "Alice", "Bob"},
	{"Alice was slimed by Bob", model.EventKill, "slimed", "Alice", "Bob"},
	{"Alice was cooked by Bob", model.EventKill, "lava", "Alice", "Bob"},
	{"Alice was thrown into a world of hurt by Bob", model.EventKill, "bounds", "Alice", "Bob"},

	{"Carl detonated", model.EventSuicide, "detonated", "Carl", ""},
	{"Carl played with plasma", model.EventSuicide, "plasma", "Carl", ""},
	{"Carl could not remember where he put plasma", model.EventSuicide, "plasma", "Carl", ""},
	{"Carl played with tiny rockets", model.EventSuicide, "rocket", "Carl", ""},
	{"Carl was slimed", model.EventSuicide, "slimed", "Carl", ""},
	{"Carl succeeded at self-destructing himself with the Crylink", model.EventSuicide, "crylink", "Carl", ""},
	{"Carl exploded", model.EventSuicide, "explode", "Carl", ""},
	{"Carl was in the wrong place", model.EventSuicide, "bounds", "Carl", ""},
	{"Carl hit the ground with a crunch", model.EventSuicide, "fall", "Carl", ""},

	{"Server crashed??", model.EventUnknown, "", "", ""},
}

func TestClassify(t *testing.T) {
	for _, tc := range classifyCases {
		ev := Classify(tc.line)
		if ev.Kind != tc.kind {
			t.Errorf("%q: want kind %v, got %v", tc.line, tc.kind, ev.Kind)
			continue
		}
		if ev.Label != tc.label {
			t.Errorf("%q: want label %q, got %q", tc.line, tc.label, ev.Label)
		}
		if ev.Victim != tc.victim || ev.Killer != tc.killer {
			t.Errorf("%q: want victim=%q killer=%q, got victim=%q killer=%q",
				tc.line, tc.victim, tc.killer, ev.Victim, ev.Killer)
		}
	}
}

// phrasing renders a family pattern as a concrete line.
func phrasing(pattern, victim, killer string) string {
	return strings.NewReplacer(
		`(?P<victim>.*)`, victim,
		`(?P<killer>.*)`, killer,
	).Replace(pattern)
}

// Every phrasing in the family tables must have a row in classifyCases, so a
// new alternative cannot land without its roles being pinned.
func TestClassify_EveryPhrasingCovered(t *testing.T) {
	rows := make(map[string]classifyCase, len(classifyCases))
	for _, tc := range classifyCases {
		rows[tc.line] = tc
	}

	for _, fam := range killFamilies {
		for _, re := range fam.alternatives {
			line := phrasing(re.String(), "Alice", "Bob")
			tc, ok := rows[line]
			if !ok {
				t.Errorf("kill phrasing %q (%s) has no classifyCases row", line, fam.weapon)
				continue
			}
			if tc.kind != model.EventKill || tc.label != fam.weapon || tc.victim != "Alice" || tc.killer != "Bob" {
				t.Errorf("row %q does not pin %s with victim Alice and killer Bob: %+v", line, fam.weapon, tc)
			}
		}
	}
	for _, fam := range suicideFamilies {
		for _, re := range fam.alternatives {
			line := phrasing(re.String(), "Carl", "")
			tc, ok := rows[line]
			if !ok {
				t.Errorf("suicide phrasing %q (%s) has no classifyCases row", line, fam.cause)
				continue
			}
			if tc.kind != model.EventSuicide || tc.label != fam.cause || tc.victim != "Carl" {
				t.Errorf("row %q does not pin %s with victim Carl: %+v", line, fam.cause, tc)
			}
		}
	}
	for _, sp := range statePatterns {
		found := false
		for _, tc := range classifyCases {
			if tc.kind == model.EventState && tc.label == sp.label {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("state pattern %s has no classifyCases row", sp.label)
		}
	}
}

func TestClassify_Captures(t *testing.T) {
	ev := Classify("=== Log started (T0) ===")
	if ev.Timestamp != "T0" {
		t.Errorf("expected timestamp T0, got %q", ev.Timestamp)
	}
	ev = Classify("Bob wins")
	if ev.Winner != "Bob" {
		t.Errorf("expected winner Bob, got %q", ev.Winner)
	}
	ev = Classify("Bob's 7 kill spree was ended by Alice")
	if !slices.Equal(ev.Names, []string{"Bob", "7", "Alice"}) {
		t.Errorf("unexpected state captures %v", ev.Names)
	}
}

func TestClassify_Precedence(t *testing.T) {
	// A win phrase outranks every later family.
	if ev := Classify("Alice was gunned by Bob wins"); ev.Kind != model.EventWin {
		t.Errorf("expected win to take precedence, got %v", ev.Kind)
	}
	// Kill phrasings are tried before the shorter suicide phrasing.
	ev := Classify("Alice was slimed by Bob")
	if ev.Kind != model.EventKill || ev.Killer != "Bob" {
		t.Errorf("expected slimed kill, got %+v", ev)
	}
	// Ignore filter runs before the log-start header.
	if ev := Classify("=== Log started (done!) ==="); ev.Kind != model.EventIgnored {
		t.Errorf("expected ignored, got %v", ev.Kind)
	}
}

func TestClassify_EmptyNameFallsThrough(t *testing.T) {
	ev := Classify(" was gunned by Bob")
	if ev.Kind == model.EventKill {
		t.Errorf("kill without a victim should not classify as a kill: %+v", ev)
	}
}

func TestClassify_Deterministic(t *testing.T) {
	line := "Alice ate Bob's rocket"
	first := Classify(line)
	for i := 0; i < 50; i++ {
		if ev := Classify(line); ev.Label != first.Label || ev.Victim != first.Victim {
			t.Fatalf("classification changed between runs: %+v vs %+v", first, ev)
		}
	}
}

func TestCleanLine(t *testing.T) {
	cases := map[string]string{
		"  ^1Alice^7 was gunned by ^2Bob\r\n": "Alice was gunned by Bob",
		"\x05Bob wins":                       "Bob wins",
		"plain":                              "plain",
	}
	for in, want := range cases {
		if got := CleanLine(in); got != want {
			t.Errorf("CleanLine(%q): want %q, got %q", in, want, got)
		}
	}
}
