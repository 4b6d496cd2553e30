package aggregator

import (
	"maps"
	"slices"

	"github.com/pable/fraglog/internal/model"
)

// Finalize closes m and derives its immutable report. It returns nil for an
// Empty match. lastTime is used when m has no gametime of its own.
// m must not be used afterwards.
func Finalize(m *model.Match, lastTime string) *model.MatchReport {
	if m == nil || !m.InProgress() {
		return nil
	}

	gametime := m.Gametime
	if gametime == "" {
		gametime = lastTime
	}

	report := &model.MatchReport{
		Gametime:      gametime,
		Players:       make(map[string]model.PlayerReport, len(m.Players)),
		PvP:           make(map[string][]model.Score, len(m.Players)),
		WeaponsByName: make(map[string]map[string]model.Score),
		WeaponsAgg:    make(map[string]model.Score),
	}

	// ---- Pass 1: close every open life and freeze ledgers. ----
	for name, p := range m.Players {
		p.PushCurLife()
		report.Players[name] = model.PlayerReport{
			Lives:    p.Lives,
			Kills:    maps.Clone(p.Kills),
			Deaths:   maps.Clone(p.Deaths),
			Suicides: p.Suicides,
		}
	}

	// ---- Pass 2: leaderboard. ----
	board := make([]model.Score, 0, len(m.Players))
	for name, p := range m.Players {
		board = append(board, model.Score{
			Name:     name,
			Kills:    p.TotalKills(),
			Deaths:   p.TotalDeaths(),
			Suicides: p.Suicides,
			Matches:  1,
		})
	}
	model.SortScores(board)
	report.Leaderboard = board

	// ---- Pass 3: PvP, one Score per opponent met. ----
	for name, p := range m.Players {
		opponents := make(map[string]struct{}, len(p.Kills)+len(p.Deaths))
		for opp := range p.Kills {
			opponents[opp] = struct{}{}
		}
		for opp := range p.Deaths {
			opponents[opp] = struct{}{}
		}
		if len(opponents) == 0 {
			continue
		}

		var scores []model.Score
		for _, opp := range slices.Sorted(maps.Keys(opponents)) {
			scores = append(scores, model.Score{
				Name:    opp,
				Kills:   p.Kills[opp],
				Deaths:  p.Deaths[opp],
				Matches: 1,
			})
		}
		scores = groupByName(scores)
		model.SortScores(scores)
		report.PvP[name] = scores
	}

	// ---- Pass 4: weapon attribution. ----
	for weapon, records := range m.Weapons {
		for _, r := range records {
			if r.IsSuicide() {
				bumpWeapon(report.WeaponsByName, r.Victim, weapon, func(s *model.Score) { s.Suicides++ })
				agg := weaponEntry(report.WeaponsAgg, weapon)
				agg.Suicides++
				report.WeaponsAgg[weapon] = agg
				continue
			}
			bumpWeapon(report.WeaponsByName, r.Killer, weapon, func(s *model.Score) { s.Kills++ })
			bumpWeapon(report.WeaponsByName, r.Victim, weapon, func(s *model.Score) { s.Deaths++ })
			agg := weaponEntry(report.WeaponsAgg, weapon)
			agg.Kills++
			report.WeaponsAgg[weapon] = agg
		}
	}

	// The mutable logs are not carried into the report.
	m.Scoreboard = nil
	m.Weapons = nil
	return report
}

// weaponEntry returns the per-match record for weapon, defaulting to a fresh
// one-match Score.
func weaponEntry(tally map[string]model.Score, weapon string) model.Score {
	if s, ok := tally[weapon]; ok {
		return s
	}
	return model.Score{Matches: 1}
}

func bumpWeapon(byName map[string]map[string]model.Score, name, weapon string, bump func(*model.Score)) {
	tally, ok := byName[name]
	if !ok {
		tally = make(map[string]model.Score)
		byName[name] = tally
	}
	s := weaponEntry(tally, weapon)
	bump(&s)
	tally[weapon] = s
}

// groupByName sums scores sharing a name. The result is ordered by name.
func groupByName(scores []model.Score) []model.Score {
	groups := make(map[string][]model.Score)
	for _, s := range scores {
		groups[s.Name] = append(groups[s.Name], s)
	}
	out := make([]model.Score, 0, len(groups))
	for _, name := range slices.Sorted(maps.Keys(groups)) {
		out = append(out, model.SumScores(groups[name]))
	}
	return out
}
