package lexer

import (
	"fmt"

	"shoumei/internal/diag"
	"shoumei/internal/source"
	"shoumei/internal/token"
)

// Tokens is the output of the lexing pass.
type Tokens struct {
	Items []token.Token
}

// Len returns the number of tokens including layout tokens.
func (t Tokens) Len() int { return len(t.Items) }

// Significant returns the tokens without Indent, Newline and EOF.
func (t Tokens) Significant() []token.Token {
	out := make([]token.Token, 0, len(t.Items))
	for _, tok := range t.Items {
		if !tok.IsLayout() {
			out = append(out, tok)
		}
	}
	return out
}

// Lexer accumulates tokens and diagnostics for one module.
type Lexer struct {
	module source.ModulePath
	out    []token.Token
	msgs   []diag.Message
	cur    cursor
}

// Lex scans every line of a module. Problems are reported as diagnostics and
// scanning always continues, so the result is Ok unless the caller denies it.
func Lex(module source.ModulePath, lines []string) diag.Result[Tokens] {
	lx := &Lexer{module: module}
	for i, text := range lines {
		lx.scanLine(source.ToU32(i), text)
	}
	last := source.ToU32(len(lines))
	lx.out = append(lx.out, token.Token{
		Kind:  token.EOF,
		Range: source.RangeAt(source.NewLocation(last, 0)),
	})
	return diag.OkWith(Tokens{Items: lx.out}, lx.msgs...)
}

func (lx *Lexer) scanLine(line uint32, text string) {
	lx.cur = newCursor(line, text)
	indent := lx.scanIndent()
	if lx.cur.EOL() || lx.atComment() {
		// пустая строка или только комментарий
		return
	}
	lx.emit(token.Indent, indent)
	lx.checkTrailing()

	tabReported := false
	for !lx.cur.EOL() {
		r := lx.cur.Peek()
		switch {
		case r == ' ':
			lx.cur.Bump()
		case r == '\t':
			start := lx.cur.Mark()
			lx.cur.Bump()
			if !tabReported {
				tabReported = true
				lx.warn(diag.LexTabInLine, lx.cur.RangeFrom(start), "tab character outside indentation")
			}
		case lx.atComment():
			lx.cur.off = lx.cur.limit()
		case isIdentStart(r):
			lx.scanIdent()
		case isDigit(r):
			lx.scanNumber()
		default:
			lx.scanPunct()
		}
	}
	lx.out = append(lx.out, token.Token{
		Kind:  token.Newline,
		Range: source.RangeAt(lx.cur.Loc()),
	})
}

func (lx *Lexer) emit(kind token.Kind, from uint32) {
	lx.out = append(lx.out, token.Token{
		Kind:  kind,
		Text:  lx.cur.Text(from),
		Range: lx.cur.RangeFrom(from),
	})
}

func (lx *Lexer) report(sev diag.Severity, code diag.Code, rng source.Range, text string) {
	lx.msgs = append(lx.msgs, diag.New(sev, code, diag.InRange(lx.module, rng), text))
}

func (lx *Lexer) errorf(code diag.Code, rng source.Range, format string, args ...any) {
	lx.report(diag.SevError, code, rng, fmt.Sprintf(format, args...))
}

func (lx *Lexer) warn(code diag.Code, rng source.Range, text string) {
	lx.report(diag.SevWarning, code, rng, text)
}
