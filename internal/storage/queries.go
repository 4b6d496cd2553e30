package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/pable/fraglog/internal/model"
)

// SessionExists returns true if a session with the given hash is already stored.
func (db *DB) SessionExists(hash string) (bool, error) {
	var count int
	err := db.conn.QueryRow("SELECT COUNT(1) FROM sessions WHERE hash = ?", hash).Scan(&count)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// InsertSession stores a session summary and every match report in one
// transaction. Uses INSERT OR REPLACE for idempotency.
func (db *DB) InsertSession(summary model.SessionSummary, session model.Session) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	// Replacing a session drops its old rows through the cascade.
	if _, err := tx.Exec(`DELETE FROM sessions WHERE hash = ?`, summary.Hash); err != nil {
		return fmt.Errorf("clear session %s: %w", summary.Hash, err)
	}
	if _, err := tx.Exec(`
		INSERT INTO sessions(hash, source, parsed_at, match_count)
		VALUES (?, ?, ?, ?)`,
		summary.Hash, summary.Source, summary.ParsedAt, len(session),
	); err != nil {
		return fmt.Errorf("insert session: %w", err)
	}

	for i, m := range session {
		if err := insertMatch(tx, summary.Hash, i, m); err != nil {
			return fmt.Errorf("insert match %d: %w", i, err)
		}
	}
	return tx.Commit()
}

func insertMatch(tx *sql.Tx, hash string, idx int, m *model.MatchReport) error {
	if _, err := tx.Exec(`
		INSERT OR REPLACE INTO matches(session_hash, match_index, gametime) VALUES (?, ?, ?)`,
		hash, idx, m.Gametime,
	); err != nil {
		return err
	}

	for name, p := range m.Players {
		lives, err := json.Marshal(p.Lives)
		if err != nil {
			return fmt.Errorf("encode lives for %s: %w", name, err)
		}
		if _, err := tx.Exec(`
			INSERT OR REPLACE INTO match_players(session_hash, match_index, name, suicides, lives_json)
			VALUES (?, ?, ?, ?, ?)`,
			hash, idx, name, p.Suicides, string(lives),
		); err != nil {
			return fmt.Errorf("insert match_players for %s: %w", name, err)
		}
	}

	for rank, s := range m.Leaderboard {
		if _, err := tx.Exec(`
			INSERT OR REPLACE INTO leaderboard_rows(session_hash, match_index, rank, name, kills, deaths, suicides)
			VALUES (?, ?, ?, ?, ?, ?, ?)`,
			hash, idx, rank, s.Name, s.Kills, s.Deaths, s.Suicides,
		); err != nil {
			return fmt.Errorf("insert leaderboard_rows for %s: %w", s.Name, err)
		}
	}

	for name, opps := range m.PvP {
		for rank, s := range opps {
			if _, err := tx.Exec(`
				INSERT OR REPLACE INTO pvp_rows(session_hash, match_index, name, rank, opponent, kills, deaths)
				VALUES (?, ?, ?, ?, ?, ?, ?)`,
				hash, idx, name, rank, s.Name, s.Kills, s.Deaths,
			); err != nil {
				return fmt.Errorf("insert pvp_rows for %s/%s: %w", name, s.Name, err)
			}
		}
	}

	for name, tally := range m.WeaponsByName {
		for weapon, s := range tally {
			if _, err := tx.Exec(`
				INSERT OR REPLACE INTO weapon_rows(session_hash, match_index, name, weapon, kills, deaths, suicides)
				VALUES (?, ?, ?, ?, ?, ?, ?)`,
				hash, idx, name, weapon, s.Kills, s.Deaths, s.Suicides,
			); err != nil {
				return fmt.Errorf("insert weapon_rows for %s/%s: %w", name, weapon, err)
			}
		}
	}
	return nil
}

// ListSessions returns all stored session summaries ordered by parsed_at desc.
func (db *DB) ListSessions() ([]model.SessionSummary, error) {
	rows, err := db.conn.Query(`
		SELECT hash, source, parsed_at, match_count
		FROM sessions ORDER BY parsed_at DESC, hash`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.SessionSummary
	for rows.Next() {
		var s model.SessionSummary
		if err := rows.Scan(&s.Hash, &s.Source, &s.ParsedAt, &s.MatchCount); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// GetSessionByPrefix finds the first session whose hash starts with the given
// prefix. The prefix is compared literally.
func (db *DB) GetSessionByPrefix(prefix string) (*model.SessionSummary, error) {
	var s model.SessionSummary
	err := db.conn.QueryRow(`
		SELECT hash, source, parsed_at, match_count
		FROM sessions WHERE substr(hash, 1, length(?1)) = ?1
		ORDER BY hash LIMIT 1`, prefix).
		Scan(&s.Hash, &s.Source, &s.ParsedAt, &s.MatchCount)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// GetMatchReports rebuilds the match reports of one session in match order.
func (db *DB) GetMatchReports(hash string) (model.Session, error) {
	rows, err := db.conn.Query(`
		SELECT match_index, gametime FROM matches
		WHERE session_hash = ? ORDER BY match_index`, hash)
	if err != nil {
		return nil, err
	}

	var (
		session model.Session
		indexes []int
	)
	for rows.Next() {
		var idx int
		m := newReport()
		if err := rows.Scan(&idx, &m.Gametime); err != nil {
			rows.Close()
			return nil, err
		}
		session = append(session, m)
		indexes = append(indexes, idx)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, err
	}
	rows.Close()

	for i, idx := range indexes {
		if err := db.loadMatch(hash, idx, session[i]); err != nil {
			return nil, fmt.Errorf("load match %d: %w", idx, err)
		}
	}
	return session, nil
}

// GetAllMatchReports returns the matches of every stored session, oldest
// session first.
func (db *DB) GetAllMatchReports() (model.Session, error) {
	sessions, err := db.ListSessions()
	if err != nil {
		return nil, err
	}
	var all model.Session
	for i := len(sessions) - 1; i >= 0; i-- {
		reports, err := db.GetMatchReports(sessions[i].Hash)
		if err != nil {
			return nil, fmt.Errorf("session %s: %w", sessions[i].Hash, err)
		}
		all = append(all, reports...)
	}
	return all, nil
}

func newReport() *model.MatchReport {
	return &model.MatchReport{
		Players:       make(map[string]model.PlayerReport),
		PvP:           make(map[string][]model.Score),
		WeaponsByName: make(map[string]map[string]model.Score),
		WeaponsAgg:    make(map[string]model.Score),
	}
}

func (db *DB) loadMatch(hash string, idx int, m *model.MatchReport) error {
	// Players.
	rows, err := db.conn.Query(`
		SELECT name, suicides, lives_json FROM match_players
		WHERE session_hash = ? AND match_index = ?`, hash, idx)
	if err != nil {
		return err
	}
	for rows.Next() {
		var (
			name, livesJSON string
			p               model.PlayerReport
		)
		if err := rows.Scan(&name, &p.Suicides, &livesJSON); err != nil {
			rows.Close()
			return err
		}
		if err := json.Unmarshal([]byte(livesJSON), &p.Lives); err != nil {
			rows.Close()
			return fmt.Errorf("decode lives for %s: %w", name, err)
		}
		p.Kills = make(map[string]int)
		p.Deaths = make(map[string]int)
		m.Players[name] = p
	}
	if err := closeRows(rows); err != nil {
		return err
	}

	// Leaderboard.
	rows, err = db.conn.Query(`
		SELECT name, kills, deaths, suicides FROM leaderboard_rows
		WHERE session_hash = ? AND match_index = ? ORDER BY rank`, hash, idx)
	if err != nil {
		return err
	}
	for rows.Next() {
		s := model.Score{Matches: 1}
		if err := rows.Scan(&s.Name, &s.Kills, &s.Deaths, &s.Suicides); err != nil {
			rows.Close()
			return err
		}
		m.Leaderboard = append(m.Leaderboard, s)
	}
	if err := closeRows(rows); err != nil {
		return err
	}

	// PvP; the per-player kill/death maps are the non-zero pvp cells.
	rows, err = db.conn.Query(`
		SELECT name, opponent, kills, deaths FROM pvp_rows
		WHERE session_hash = ? AND match_index = ? ORDER BY name, rank`, hash, idx)
	if err != nil {
		return err
	}
	for rows.Next() {
		var name string
		s := model.Score{Matches: 1}
		if err := rows.Scan(&name, &s.Name, &s.Kills, &s.Deaths); err != nil {
			rows.Close()
			return err
		}
		m.PvP[name] = append(m.PvP[name], s)
		if p, ok := m.Players[name]; ok {
			if s.Kills > 0 {
				p.Kills[s.Name] = s.Kills
			}
			if s.Deaths > 0 {
				p.Deaths[s.Name] = s.Deaths
			}
		}
	}
	if err := closeRows(rows); err != nil {
		return err
	}

	// Weapons; the aggregate is the per-player kills and suicides summed.
	rows, err = db.conn.Query(`
		SELECT name, weapon, kills, deaths, suicides FROM weapon_rows
		WHERE session_hash = ? AND match_index = ?`, hash, idx)
	if err != nil {
		return err
	}
	for rows.Next() {
		var name, weapon string
		s := model.Score{Matches: 1}
		if err := rows.Scan(&name, &weapon, &s.Kills, &s.Deaths, &s.Suicides); err != nil {
			rows.Close()
			return err
		}
		tally, ok := m.WeaponsByName[name]
		if !ok {
			tally = make(map[string]model.Score)
			m.WeaponsByName[name] = tally
		}
		tally[weapon] = s

		agg, ok := m.WeaponsAgg[weapon]
		if !ok {
			agg = model.Score{Matches: 1}
		}
		agg.Kills += s.Kills
		agg.Suicides += s.Suicides
		m.WeaponsAgg[weapon] = agg
	}
	return closeRows(rows)
}

func closeRows(rows *sql.Rows) error {
	err := rows.Err()
	if cerr := rows.Close(); err == nil {
		err = cerr
	}
	return err
}

// QueryRaw runs an arbitrary query and returns column names and stringified rows.
func (db *DB) QueryRaw(query string) ([]string, [][]string, error) {
	rows, err := db.conn.Query(query)
	if err != nil {
		return nil, nil, fmt.Errorf("query: %w", err)
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, nil, err
	}

	var out [][]string
	for rows.Next() {
		vals := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range vals {
			ptrs[i] = &vals[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, nil, err
		}
		row := make([]string, len(cols))
		for i, v := range vals {
			switch t := v.(type) {
			case nil:
				row[i] = "NULL"
			case []byte:
				row[i] = string(t)
			default:
				row[i] = fmt.Sprint(t)
			}
		}
		out = append(out, row)
	}
	return cols, out, rows.Err()
}
