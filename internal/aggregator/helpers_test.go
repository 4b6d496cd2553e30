package aggregator

import "github.com/pable/fraglog/internal/model"

// event is a compact kill (killer set) or suicide (killer empty) for test matches.
type event struct {
	weapon, victim, killer string
}

// buildMatch replays events into a fresh in-progress match.
func buildMatch(gametime string, events ...event) *model.Match {
	m := model.NewMatch()
	m.Gametime = gametime
	for _, e := range events {
		if e.killer == "" {
			m.RecordSuicide(e.weapon, e.victim)
			continue
		}
		m.RecordKill(e.weapon, e.victim, e.killer)
	}
	return m
}

func findScore(scores []model.Score, name string) (model.Score, bool) {
	for _, s := range scores {
		if s.Name == name {
			return s, true
		}
	}
	return model.Score{}, false
}
