package parser

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"

	"github.com/pable/fraglog/internal/model"
)

var colorCodeRe = regexp.MustCompile(`\^.`)

// CleanLine strips surrounding whitespace, ^x colour codes and control runes
// so the line can be matched literally.
func CleanLine(raw string) string {
	s := colorCodeRe.ReplaceAllString(strings.TrimSpace(raw), "")
	out, _, err := transform.String(runes.Remove(runes.In(unicode.Cc)), s)
	if err != nil {
		return s
	}
	return out
}

// Classify maps one cleaned line to exactly one event.
// Precedence: ignore filter, log start, win, state, kill, suicide, unknown.
func Classify(line string) model.Event {
	for _, sub := range ignoredSubstrings {
		if strings.Contains(line, sub) {
			return model.Event{Kind: model.EventIgnored}
		}
	}

	if m := matchStartRe.FindStringSubmatch(line); m != nil {
		return model.Event{Kind: model.EventMatchStart, Timestamp: m[1]}
	}

	if m := winRe.FindStringSubmatch(line); m != nil {
		return model.Event{Kind: model.EventWin, Winner: m[1]}
	}

	for _, sp := range statePatterns {
		if m := sp.re.FindStringSubmatch(line); m != nil {
			return model.Event{Kind: model.EventState, Label: sp.label, Names: m[1:]}
		}
	}

	for _, fam := range killFamilies {
		for _, re := range fam.alternatives {
			m := re.FindStringSubmatch(line)
			if m == nil {
				continue
			}
			victim := m[re.SubexpIndex("victim")]
			killer := m[re.SubexpIndex("killer")]
			if victim == "" || killer == "" {
				continue
			}
			return model.Event{Kind: model.EventKill, Label: fam.weapon, Victim: victim, Killer: killer}
		}
	}

	for _, fam := range suicideFamilies {
		for _, re := range fam.alternatives {
			m := re.FindStringSubmatch(line)
			if m == nil {
				continue
			}
			victim := m[re.SubexpIndex("victim")]
			if victim == "" {
				continue
			}
			return model.Event{Kind: model.EventSuicide, Label: fam.cause, Victim: victim}
		}
	}

	return model.Event{Kind: model.EventUnknown}
}
