package aggregator

import (
	"maps"
	"slices"

	"github.com/pable/fraglog/internal/model"
)

// Aggregate merges every match report of a session into session-wide totals.
// Reports are read only.
func Aggregate(session model.Session) model.Aggregate {
	// ---- Pass 1: global leaderboard. ----
	var flat []model.Score
	for _, m := range session {
		flat = append(flat, m.Leaderboard...)
	}
	board := groupByName(flat)
	model.SortScores(board)

	// ---- Pass 2: global PvP, ordered by opponent name. ----
	concat := make(map[string][]model.Score)
	for _, m := range session {
		for name, opps := range m.PvP {
			concat[name] = append(concat[name], opps...)
		}
	}
	pvp := make(map[string][]model.Score, len(concat))
	for name, opps := range concat {
		pvp[name] = groupByName(opps)
	}

	// ---- Pass 3: weapons per player, then across players. ----
	byName := make(map[string]map[string]model.Score)
	for _, m := range session {
		for name, tally := range m.WeaponsByName {
			merged, ok := byName[name]
			if !ok {
				merged = make(map[string]model.Score)
				byName[name] = merged
			}
			mergeWeapons(merged, tally)
		}
	}

	agg := make(map[string]model.Score)
	for _, name := range slices.Sorted(maps.Keys(byName)) {
		mergeWeapons(agg, byName[name])
	}

	return model.Aggregate{
		Leaderboard:   board,
		PvP:           pvp,
		WeaponsByName: byName,
		WeaponsAgg:    agg,
	}
}

// mergeWeapons adds every weapon Score of src into dst.
func mergeWeapons(dst, src map[string]model.Score) {
	for weapon, s := range src {
		cur, ok := dst[weapon]
		if !ok {
			cur = model.ZeroScore
		}
		dst[weapon] = cur.Add(s)
	}
}
