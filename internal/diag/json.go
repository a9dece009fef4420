package diag

import (
	"encoding/json"
	"io"
)

// LocationJSON is a 1-based position; Line and Col are omitted for
// whole-file messages.
type LocationJSON struct {
	Module  string `json:"module"`
	Line    uint32 `json:"line,omitempty"`
	Col     uint32 `json:"col,omitempty"`
	EndLine uint32 `json:"end_line,omitempty"`
	EndCol  uint32 `json:"end_col,omitempty"`
}

// NoteJSON представляет дополнительную заметку для JSON
type NoteJSON struct {
	Message  string       `json:"message"`
	Location LocationJSON `json:"location"`
}

// DiagnosticJSON представляет диагностику в JSON формате
type DiagnosticJSON struct {
	Severity string       `json:"severity"`
	Code     string       `json:"code"`
	Message  string       `json:"message"`
	Location LocationJSON `json:"location"`
	Notes    []NoteJSON   `json:"notes,omitempty"`
}

// DiagnosticsOutput представляет корневую структуру JSON вывода
type DiagnosticsOutput struct {
	Diagnostics []DiagnosticJSON `json:"diagnostics"`
	Count       int              `json:"count"`
	Errors      int              `json:"errors"`
	Warnings    int              `json:"warnings"`
}

func makeLocation(ctx Context) LocationJSON {
	loc := LocationJSON{Module: ctx.Module.String()}
	if ctx.HasRange {
		loc.Line = ctx.Range.Start.Line + 1
		loc.Col = ctx.Range.Start.Col + 1
		loc.EndLine = ctx.Range.End.Line + 1
		loc.EndCol = ctx.Range.End.Col + 1
	}
	return loc
}

// BuildOutput формирует структуру JSON-вывода без сериализации.
func BuildOutput(msgs []Message) DiagnosticsOutput {
	out := DiagnosticsOutput{
		Diagnostics: make([]DiagnosticJSON, 0, len(msgs)),
		Count:       len(msgs),
	}
	for i := range msgs {
		m := &msgs[i]
		switch m.Severity {
		case SevError:
			out.Errors++
		case SevWarning:
			out.Warnings++
		}
		d := DiagnosticJSON{
			Severity: m.Severity.Label(),
			Code:     m.Code.ID(),
			Message:  m.Text,
			Location: makeLocation(m.Context),
		}
		for _, n := range m.Notes {
			d.Notes = append(d.Notes, NoteJSON{Message: n.Text, Location: makeLocation(n.Context)})
		}
		out.Diagnostics = append(out.Diagnostics, d)
	}
	return out
}

// WriteJSON writes msgs as one indented JSON document.
func WriteJSON(w io.Writer, msgs []Message) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(BuildOutput(msgs))
}
