package model

// ---- Events emitted by the line classifier ----

// EventKind identifies which family a classified line belongs to.
type EventKind int

const (
	EventIgnored EventKind = iota
	EventMatchStart
	EventWin
	EventState
	EventKill
	EventSuicide
	EventUnknown
)

func (k EventKind) String() string {
	switch k {
	case EventIgnored:
		return "ignored"
	case EventMatchStart:
		return "match-start"
	case EventWin:
		return "win"
	case EventState:
		return "state"
	case EventKill:
		return "kill"
	case EventSuicide:
		return "suicide"
	default:
		return "unknown"
	}
}

// Event is one classified transcript line. Only the fields relevant to Kind are set.
type Event struct {
	Kind EventKind

	Timestamp string   // MatchStart
	Label     string   // State label, kill weapon or suicide cause
	Names     []string // State: matched names in capture order
	Winner    string   // Win

	Killer string // Kill
	Victim string // Kill, Suicide
}

// Diagnostic records a transcript line that matched no known pattern.
type Diagnostic struct {
	Line int    // zero-based index into the input
	Text string // cleaned line text
}

// ---- Mutable per-match state owned by the parser ----

// ScoreEntry is one chronological tally delta in a match scoreboard.
type ScoreEntry struct {
	Player   string
	Kills    int
	Deaths   int
	Suicides int
	Weapon   string // weapon or environmental cause
}

// KillRecord is one entry of a weapon log. An empty Killer marks a suicide.
type KillRecord struct {
	Killer string
	Victim string
}

// IsSuicide reports whether the record is a singleton suicide record.
func (r KillRecord) IsSuicide() bool { return r.Killer == "" }

// Player holds the running ledger for one name within one match.
type Player struct {
	Lives    [][]string     // closed life segments, each the victims killed during that life
	CurLife  []string       // the open segment
	Kills    map[string]int // opponent -> times killed
	Deaths   map[string]int // opponent -> times killed by
	Suicides int
}

// NewPlayer returns an empty ledger.
func NewPlayer() *Player {
	return &Player{
		Lives:   [][]string{},
		CurLife: []string{},
		Kills:   make(map[string]int),
		Deaths:  make(map[string]int),
	}
}

// PushCurLife closes the current life segment, even if it is empty.
func (p *Player) PushCurLife() {
	p.Lives = append(p.Lives, p.CurLife)
	p.CurLife = []string{}
}

// TotalKills sums the kills map.
func (p *Player) TotalKills() int {
	n := 0
	for _, c := range p.Kills {
		n += c
	}
	return n
}

// TotalDeaths sums the deaths map.
func (p *Player) TotalDeaths() int {
	n := 0
	for _, c := range p.Deaths {
		n += c
	}
	return n
}

// Clone returns a deep copy of the ledger.
func (p *Player) Clone() *Player {
	c := &Player{
		Lives:    make([][]string, len(p.Lives)),
		CurLife:  append([]string{}, p.CurLife...),
		Kills:    make(map[string]int, len(p.Kills)),
		Deaths:   make(map[string]int, len(p.Deaths)),
		Suicides: p.Suicides,
	}
	for i, life := range p.Lives {
		c.Lives[i] = append([]string{}, life...)
	}
	for k, v := range p.Kills {
		c.Kills[k] = v
	}
	for k, v := range p.Deaths {
		c.Deaths[k] = v
	}
	return c
}

// Match is the in-progress state of one match.
type Match struct {
	Gametime   string // empty until a log-started header or the final fallback
	Scoreboard []ScoreEntry
	Players    map[string]*Player
	Weapons    map[string][]KillRecord
}

// NewMatch returns an Empty match.
func NewMatch() *Match {
	return &Match{
		Players: make(map[string]*Player),
		Weapons: make(map[string][]KillRecord),
	}
}

// Player returns the ledger for name, creating it on first reference.
func (m *Match) Player(name string) *Player {
	p, ok := m.Players[name]
	if !ok {
		p = NewPlayer()
		m.Players[name] = p
	}
	return p
}

// InProgress reports whether at least one scoreboard event has been recorded.
func (m *Match) InProgress() bool { return len(m.Scoreboard) > 0 }

// RecordKill applies a frag of victim by killer with weapon.
func (m *Match) RecordKill(weapon, victim, killer string) {
	k := m.Player(killer)
	k.Kills[victim]++
	k.CurLife = append(k.CurLife, victim)

	v := m.Player(victim)
	v.Deaths[killer]++
	v.PushCurLife()

	m.Weapons[weapon] = append(m.Weapons[weapon], KillRecord{Killer: killer, Victim: victim})
	m.Scoreboard = append(m.Scoreboard,
		ScoreEntry{Player: killer, Kills: 1, Weapon: weapon},
		ScoreEntry{Player: victim, Deaths: 1, Weapon: weapon},
	)
}

// RecordSuicide applies a self-inflicted or environmental death.
func (m *Match) RecordSuicide(cause, victim string) {
	v := m.Player(victim)
	v.Suicides++
	v.PushCurLife()

	m.Weapons[cause] = append(m.Weapons[cause], KillRecord{Victim: victim})
	m.Scoreboard = append(m.Scoreboard, ScoreEntry{Player: victim, Suicides: 1, Weapon: cause})
}

// Clone returns a deep copy of the match.
func (m *Match) Clone() *Match {
	c := &Match{
		Gametime:   m.Gametime,
		Scoreboard: append([]ScoreEntry(nil), m.Scoreboard...),
		Players:    make(map[string]*Player, len(m.Players)),
		Weapons:    make(map[string][]KillRecord, len(m.Weapons)),
	}
	for name, p := range m.Players {
		c.Players[name] = p.Clone()
	}
	for w, recs := range m.Weapons {
		c.Weapons[w] = append([]KillRecord(nil), recs...)
	}
	return c
}

// ---- Finalized reports ----

// PlayerReport is the frozen ledger of one player in a finalized match.
type PlayerReport struct {
	Lives    [][]string     `json:"lives"`
	Kills    map[string]int `json:"kills"`
	Deaths   map[string]int `json:"deaths"`
	Suicides int            `json:"suicides"`
}

// MatchReport is the immutable result of finalizing a match.
type MatchReport struct {
	Gametime      string                      `json:"gametime"`
	Players       map[string]PlayerReport     `json:"players"`
	Leaderboard   []Score                     `json:"leaderboard"`
	PvP           map[string][]Score          `json:"pvp"`
	WeaponsByName map[string]map[string]Score `json:"weapons_by_name"`
	WeaponsAgg    map[string]Score            `json:"weapons_agg"`
}

// Session is the ordered list of finalized matches of one transcript.
type Session []*MatchReport

// Aggregate holds session-wide totals.
type Aggregate struct {
	Leaderboard   []Score                     `json:"leaderboard"`
	PvP           map[string][]Score          `json:"pvp"`
	WeaponsByName map[string]map[string]Score `json:"weapons_by_name"`
	WeaponsAgg    map[string]Score            `json:"weapons_agg"`
}

// SessionSummary is a lightweight record for list/show commands.
type SessionSummary struct {
	Hash       string
	Source     string
	ParsedAt   string
	MatchCount int
}
