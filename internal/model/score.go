package model

import (
	"cmp"
	"encoding/json"
	"math"
	"slices"
)

// Score is a summable kill/death/suicide tally. Name is optional.
type Score struct {
	Name     string
	Kills    int
	Deaths   int
	Suicides int
	Matches  int // contributing matches
}

// ZeroScore is the identity of Add. Matches is 0, unlike a per-match record.
var ZeroScore = Score{}

// Points is kills minus suicides.
func (s Score) Points() int {
	return s.Kills - s.Suicides
}

// KDR returns kills/deaths. With no deaths it is 0 without kills and +Inf otherwise.
func (s Score) KDR() float64 {
	if s.Deaths == 0 {
		if s.Kills == 0 {
			return 0
		}
		return math.Inf(1)
	}
	return float64(s.Kills) / float64(s.Deaths)
}

// Add sums two scores, keeping the first non-empty name.
func (s Score) Add(o Score) Score {
	name := s.Name
	if name == "" {
		name = o.Name
	}
	return Score{
		Name:     name,
		Kills:    s.Kills + o.Kills,
		Deaths:   s.Deaths + o.Deaths,
		Suicides: s.Suicides + o.Suicides,
		Matches:  s.Matches + o.Matches,
	}
}

// SumScores folds scores starting from ZeroScore.
func SumScores(scores []Score) Score {
	total := ZeroScore
	for _, s := range scores {
		total = total.Add(s)
	}
	return total
}

// CompareScores returns a positive value when a ranks above b.
// Order: points, then kills, then suicides, then deaths; higher wins at every step.
func CompareScores(a, b Score) int {
	if c := cmp.Compare(a.Points(), b.Points()); c != 0 {
		return c
	}
	if c := cmp.Compare(a.Kills, b.Kills); c != 0 {
		return c
	}
	// More suicides, then more deaths, rank higher on an otherwise exact tie.
	if c := cmp.Compare(a.Suicides, b.Suicides); c != 0 {
		return c
	}
	return cmp.Compare(a.Deaths, b.Deaths)
}

// SortScores sorts in place, best first. Exact ties fall back to name ascending.
func SortScores(scores []Score) {
	slices.SortFunc(scores, func(a, b Score) int {
		if c := CompareScores(b, a); c != 0 {
			return c
		}
		return cmp.Compare(a.Name, b.Name)
	})
}

// KDRInf is the JSON form of an infinite KDR.
const KDRInf = "inf"

type scoreJSON struct {
	Name     string `json:"name,omitempty"`
	Score    int    `json:"score"`
	Kills    int    `json:"kills"`
	Deaths   int    `json:"deaths"`
	Suicides int    `json:"suicides"`
	KDR      any    `json:"kdr"`
	Matches  int    `json:"matches"`
}

// MarshalJSON emits the derived score and kdr; an infinite kdr becomes the string "inf".
func (s Score) MarshalJSON() ([]byte, error) {
	var kdr any = s.KDR()
	if math.IsInf(s.KDR(), 1) {
		kdr = KDRInf
	}
	return json.Marshal(scoreJSON{
		Name:     s.Name,
		Score:    s.Points(),
		Kills:    s.Kills,
		Deaths:   s.Deaths,
		Suicides: s.Suicides,
		KDR:      kdr,
		Matches:  s.Matches,
	})
}

// UnmarshalJSON reads the form produced by MarshalJSON. Derived fields are ignored.
func (s *Score) UnmarshalJSON(data []byte) error {
	var raw scoreJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*s = Score{
		Name:     raw.Name,
		Kills:    raw.Kills,
		Deaths:   raw.Deaths,
		Suicides: raw.Suicides,
		Matches:  raw.Matches,
	}
	return nil
}
