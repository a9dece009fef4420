package diag

import (
	"shoumei/internal/source"
)

// Context locates a message: a whole module file, or a range inside it.
type Context struct {
	Module   source.ModulePath
	Range    source.Range
	HasRange bool
}

// InFile points at a module file with no finer location.
func InFile(module source.ModulePath) Context {
	return Context{Module: module}
}

// InRange points at a range within a module file.
func InRange(module source.ModulePath, rng source.Range) Context {
	return Context{Module: module, Range: rng, HasRange: true}
}

func (c Context) String() string {
	if !c.HasRange {
		return c.Module.String()
	}
	return c.Module.String() + ":" + c.Range.Start.String()
}

type Note struct {
	Context Context
	Text    string
}

// Message is a single reported problem or informational note.
type Message struct {
	Text     string
	Severity Severity
	Code     Code
	Context  Context
	Notes    []Note
}

func New(sev Severity, code Code, ctx Context, text string) Message {
	return Message{
		Severity: sev,
		Code:     code,
		Context:  ctx,
		Text:     text,
	}
}

func NewError(code Code, ctx Context, text string) Message {
	return New(SevError, code, ctx, text)
}

func NewWarning(code Code, ctx Context, text string) Message {
	return New(SevWarning, code, ctx, text)
}

func NewInfo(code Code, ctx Context, text string) Message {
	return New(SevInfo, code, ctx, text)
}

func (m Message) WithNote(ctx Context, text string) Message {
	notes := make([]Note, len(m.Notes), len(m.Notes)+1)
	copy(notes, m.Notes)
	m.Notes = append(notes, Note{Context: ctx, Text: text})
	return m
}

func (m Message) String() string {
	return m.Severity.Label() + " " + m.Code.ID() + " " + m.Context.String() + " " + m.Text
}
