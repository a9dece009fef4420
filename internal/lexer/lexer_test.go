package lexer

import (
	"testing"

	"shoumei/internal/diag"
	"shoumei/internal/source"
	"shoumei/internal/token"
)

var testModule = source.MustModulePath("test")

func lexOK(t *testing.T, lines ...string) (Tokens, []diag.Message) {
	t.Helper()
	res := Lex(testModule, lines)
	toks, ok := res.Value()
	if !ok {
		t.Fatalf("lex failed: %v", res.Diagnostics())
	}
	return toks, res.Diagnostics()
}

func kinds(toks []token.Token) []token.Kind {
	out := make([]token.Kind, len(toks))
	for i, tok := range toks {
		out[i] = tok.Kind
	}
	return out
}

func equalKinds(a, b []token.Kind) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestLexItemLine(t *testing.T) {
	toks, msgs := lexOK(t, "theorem refl : (a : nat) -> Eq a a")
	if len(msgs) != 0 {
		t.Fatalf("unexpected diagnostics: %v", msgs)
	}
	want := []token.Kind{
		token.Indent,
		token.KwTheorem, token.Ident, token.Colon,
		token.LParen, token.Ident, token.Colon, token.Ident, token.RParen,
		token.Arrow, token.Ident, token.Ident, token.Ident,
		token.Newline, token.EOF,
	}
	if got := kinds(toks.Items); !equalKinds(got, want) {
		t.Fatalf("kinds = %v, want %v", got, want)
	}
	arrow := toks.Items[9]
	if arrow.Text != "->" || arrow.Range != source.NewRange(0, 25, 27) {
		t.Fatalf("arrow token = %v", arrow)
	}
}

func TestLexSkipsBlankAndCommentLines(t *testing.T) {
	toks, msgs := lexOK(t, "-- header", "", "   ", "import logic/core -- trailing comment", "  -- indented comment")
	if len(msgs) != 0 {
		t.Fatalf("unexpected diagnostics: %v", msgs)
	}
	want := []token.Kind{
		token.Indent, token.KwImport, token.Ident, token.Slash, token.Ident, token.Newline,
		token.EOF,
	}
	if got := kinds(toks.Items); !equalKinds(got, want) {
		t.Fatalf("kinds = %v, want %v", got, want)
	}
	if toks.Items[1].Range.Start.Line != 3 {
		t.Fatalf("import should be on line 3, got %v", toks.Items[1].Range)
	}
	if eof := toks.Items[len(toks.Items)-1]; eof.Range.Start.Line != 5 {
		t.Fatalf("EOF should follow the last line, got %v", eof.Range)
	}
}

func TestLexIndentToken(t *testing.T) {
	toks, _ := lexOK(t, "def a : Type", "    body")
	var indents []string
	for _, tok := range toks.Items {
		if tok.Kind == token.Indent {
			indents = append(indents, tok.Text)
		}
	}
	if len(indents) != 2 || indents[0] != "" || indents[1] != "    " {
		t.Fatalf("indents = %q", indents)
	}
}

func TestLexDiagnostics(t *testing.T) {
	tests := []struct {
		name string
		line string
		code diag.Code
		sev  diag.Severity
		rng  source.Range
	}{
		{"unknown char", "def a ? b", diag.LexUnknownChar, diag.SevError, source.NewRange(0, 6, 7)},
		{"lone minus", "a - b", diag.LexUnknownChar, diag.SevError, source.NewRange(0, 2, 3)},
		{"trailing whitespace", "def a : Type  ", diag.LexTrailingWhitespace, diag.SevWarning, source.NewRange(0, 12, 14)},
		{"tab in line", "def a :\tType", diag.LexTabInLine, diag.SevWarning, source.NewRange(0, 7, 8)},
		{"bad number", "x 12ab y", diag.LexBadNumber, diag.SevError, source.NewRange(0, 2, 6)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := Lex(testModule, []string{tt.line})
			if !res.IsOk() {
				t.Fatalf("lexing never fails on its own")
			}
			msgs := res.Diagnostics()
			if len(msgs) != 1 {
				t.Fatalf("want 1 diagnostic, got %v", msgs)
			}
			m := msgs[0]
			if m.Code != tt.code || m.Severity != tt.sev || !m.Context.HasRange || m.Context.Range != tt.rng {
				t.Fatalf("got %v at %v", m, m.Context.Range)
			}
			if !m.Context.Module.Equal(testModule) {
				t.Fatalf("wrong module %v", m.Context.Module)
			}
		})
	}
}

func TestLexContinuesAfterUnknownChar(t *testing.T) {
	toks, msgs := lexOK(t, "a ? b")
	if len(msgs) != 1 {
		t.Fatalf("want one error, got %v", msgs)
	}
	sig := toks.Significant()
	if len(sig) != 3 || sig[1].Kind != token.Invalid || sig[2].Text != "b" {
		t.Fatalf("tokens = %v", sig)
	}
	if msgs[0].Severity != diag.SevError {
		t.Fatalf("unknown char must be an error")
	}
}

func TestLexTabReportedOncePerLine(t *testing.T) {
	_, msgs := lexOK(t, "a\tb\tc")
	if len(msgs) != 1 || msgs[0].Code != diag.LexTabInLine {
		t.Fatalf("got %v", msgs)
	}
}

func TestLexNormalizesIdentifiers(t *testing.T) {
	toks, _ := lexOK(t, "def cafe\u0301 : Type")
	ident := toks.Significant()[1]
	if ident.Text != "caf\u00e9" {
		t.Fatalf("identifier not NFC: %q", ident.Text)
	}
	// columns count runes of the source line, before normalisation
	if ident.Range != source.NewRange(0, 4, 9) {
		t.Fatalf("range = %v", ident.Range)
	}
}

func TestLexPrimesAndUnicode(t *testing.T) {
	toks, msgs := lexOK(t, "def n' : \u03b1 -> \u03b1")
	if len(msgs) != 0 {
		t.Fatalf("unexpected diagnostics: %v", msgs)
	}
	sig := toks.Significant()
	if sig[1].Text != "n'" || sig[3].Text != "\u03b1" || sig[3].Kind != token.Ident {
		t.Fatalf("tokens = %v", sig)
	}
}
