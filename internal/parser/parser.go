package parser

import (
	"bufio"
	"crypto/sha256"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/pable/fraglog/internal/aggregator"
	"github.com/pable/fraglog/internal/model"
)

// Parser is the single-pass match state machine. It owns the current match
// and every ledger in it until the match is finalized.
type Parser struct {
	log *slog.Logger

	cur      *model.Match
	lastTime string
	line     int

	session model.Session
	diags   []model.Diagnostic
}

// New returns a parser in the Empty state. A nil logger discards output.
func New(logger *slog.Logger) *Parser {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Parser{
		log: logger,
		cur: model.NewMatch(),
	}
}

// Feed classifies one cleaned line and applies it to the current match.
func (p *Parser) Feed(line string) model.Event {
	idx := p.line
	p.line++

	ev := Classify(line)
	switch ev.Kind {
	case model.EventMatchStart:
		p.finish()
		p.cur.Gametime = ev.Timestamp
		p.lastTime = ev.Timestamp
	case model.EventWin:
		p.finish()
	case model.EventKill:
		p.cur.RecordKill(ev.Label, ev.Victim, ev.Killer)
	case model.EventSuicide:
		p.cur.RecordSuicide(ev.Label, ev.Victim)
	case model.EventUnknown:
		p.diags = append(p.diags, model.Diagnostic{Line: idx, Text: line})
		p.log.Warn("unknown line", slog.Int("line", idx), slog.String("text", line))
	}
	return ev
}

// skip counts a line that could not be read and records why.
func (p *Parser) skip(reason string) {
	idx := p.line
	p.line++
	p.diags = append(p.diags, model.Diagnostic{Line: idx, Text: reason})
	p.log.Warn("line skipped", slog.Int("line", idx), slog.String("reason", reason))
}

// finish finalizes the current match if it recorded anything and opens a fresh one.
func (p *Parser) finish() {
	if r := aggregator.Finalize(p.cur, p.lastTime); r != nil {
		p.session = append(p.session, r)
		p.log.Debug("match finalized",
			slog.Int("match", len(p.session)),
			slog.String("gametime", r.Gametime),
			slog.Int("players", len(r.Players)))
	}
	p.cur = model.NewMatch()
}

// Snapshot returns the current match as a partial report without changing
// parser state. It returns nil while the match is Empty.
func (p *Parser) Snapshot() *model.MatchReport {
	if !p.cur.InProgress() {
		return nil
	}
	return aggregator.Finalize(p.cur.Clone(), p.lastTime)
}

// Session returns the matches finalized so far.
func (p *Parser) Session() model.Session { return p.session }

// Diagnostics returns every unknown line seen so far.
func (p *Parser) Diagnostics() []model.Diagnostic { return p.diags }

// Close performs the end-of-input finalize and returns the session.
func (p *Parser) Close() model.Session {
	p.finish()
	return p.session
}

// ParseLines runs cleaned lines through a fresh parser.
func ParseLines(lines []string, logger *slog.Logger) (model.Session, []model.Diagnostic) {
	p := New(logger)
	for _, l := range lines {
		p.Feed(l)
	}
	return p.Close(), p.Diagnostics()
}

// Result is the outcome of parsing one transcript.
type Result struct {
	Hash        string // sha256 of the raw input
	Lines       int
	Session     model.Session
	Diagnostics []model.Diagnostic
}

// MaxLineBytes caps one transcript line. Longer lines are skipped and
// reported as diagnostics.
const MaxLineBytes = 1024 * 1024

// ParseReader cleans and parses every line of r.
func ParseReader(r io.Reader, logger *slog.Logger) (*Result, error) {
	h := sha256.New()
	br := bufio.NewReaderSize(io.TeeReader(r, h), 64*1024)

	p := New(logger)
	for {
		line, tooLong, err := readLine(br, MaxLineBytes)
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read transcript: %w", err)
		}
		if tooLong {
			p.skip(fmt.Sprintf("line longer than %d bytes skipped", MaxLineBytes))
			continue
		}
		p.Feed(CleanLine(line))
	}

	return &Result{
		Hash:        fmt.Sprintf("%x", h.Sum(nil)),
		Lines:       p.line,
		Session:     p.Close(),
		Diagnostics: p.Diagnostics(),
	}, nil
}

// readLine returns the next line without its terminator. A line over limit
// is consumed in full and reported with tooLong set and no text.
func readLine(br *bufio.Reader, limit int) (line string, tooLong bool, err error) {
	var buf []byte
	for {
		chunk, isPrefix, err := br.ReadLine()
		if err != nil {
			return "", false, err
		}
		if !tooLong {
			if len(buf)+len(chunk) > limit {
				tooLong, buf = true, nil
			} else {
				buf = append(buf, chunk...)
			}
		}
		if !isPrefix {
			return string(buf), tooLong, nil
		}
	}
}

// ParseFile parses the transcript at path.
func ParseFile(path string, logger *slog.Logger) (*Result, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open transcript: %w", err)
	}
	defer f.Close()
	return ParseReader(f, logger)
}
