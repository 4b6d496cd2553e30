package report

import (
	"encoding/json"
	"io"

	"github.com/pable/fraglog/internal/model"
)

// Document is the top-level JSON report.
type Document struct {
	Matches   model.Session   `json:"matches"`
	Aggregate model.Aggregate `json:"aggregate"`
}

// WriteJSON writes the indented report. Every kdr is a number except +Inf,
// which is written as the string "inf".
func WriteJSON(w io.Writer, session model.Session, agg model.Aggregate) error {
	if session == nil {
		session = model.Session{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(Document{Matches: session, Aggregate: agg})
}
