package diag

import (
	"fmt"
	"strings"
)

type shortLine struct {
	Severity string
	Code     string
	Path     string
	Line     uint32
	Column   uint32
	HasPos   bool
	Message  string
}

// FormatShort renders one line per message in emission order:
//
//	error SYN2020 logic/core:3:1 expected a top-level item
//
// Positions are 1-based; whole-file messages have no position.
func FormatShort(msgs []Message, includeNotes bool) string {
	if len(msgs) == 0 {
		return ""
	}
	rendered := make([]shortLine, 0, len(msgs))
	for i := range msgs {
		rendered = appendMessage(rendered, &msgs[i], includeNotes)
	}

	var b strings.Builder
	for i, d := range rendered {
		if d.HasPos {
			fmt.Fprintf(&b, "%s %s %s:%d:%d %s", d.Severity, d.Code, d.Path, d.Line, d.Column, d.Message)
		} else {
			fmt.Fprintf(&b, "%s %s %s %s", d.Severity, d.Code, d.Path, d.Message)
		}
		if i < len(rendered)-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

func appendMessage(out []shortLine, m *Message, includeNotes bool) []shortLine {
	out = append(out, lineFor(m.Severity.Label(), m.Code, m.Context, m.Text))
	if includeNotes {
		for _, note := range m.Notes {
			out = append(out, lineFor("note", m.Code, note.Context, note.Text))
		}
	}
	return out
}

func lineFor(sev string, code Code, ctx Context, text string) shortLine {
	l := shortLine{
		Severity: sev,
		Code:     code.ID(),
		Path:     ctx.Module.String(),
		Message:  sanitizeMessage(text),
	}
	if ctx.HasRange {
		l.HasPos = true
		l.Line = ctx.Range.Start.Line + 1
		l.Column = ctx.Range.Start.Col + 1
	}
	return l
}

func sanitizeMessage(msg string) string {
	msg = strings.ReplaceAll(msg, "\r\n", "\n")
	msg = strings.ReplaceAll(msg, "\r", "\n")
	msg = strings.ReplaceAll(msg, "\n", " ")
	return strings.TrimSpace(msg)
}
