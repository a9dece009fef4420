package testkit

import (
	"testing"

	"shoumei/internal/diag"
	"shoumei/internal/lexer"
	"shoumei/internal/source"
	"shoumei/internal/token"
)

func TestTokenInvariantsHoldForLexer(t *testing.T) {
	lines := []string{"def a : Type", "", "theorem t : (x : a) -> a  "}
	mod := source.MustModulePath("main")
	res := lexer.Lex(mod, lines)
	toks, ok := res.Value()
	if !ok {
		t.Fatal("lexing failed")
	}
	if err := CheckTokenInvariants(toks, lines); err != nil {
		t.Fatal(err)
	}
	if err := CheckMessageInvariants(mod, res.Diagnostics(), lines); err != nil {
		t.Fatal(err)
	}
}

func TestTokenInvariantsCatchBadRanges(t *testing.T) {
	lines := []string{"ab"}
	eof := token.Token{Kind: token.EOF, Range: source.RangeAt(source.NewLocation(1, 0))}
	tests := []struct {
		name string
		toks []token.Token
	}{
		{"empty", nil},
		{"past line end", []token.Token{{Kind: token.Ident, Text: "abc", Range: source.NewRange(0, 1, 5)}, eof}},
		{"out of order", []token.Token{
			{Kind: token.Ident, Text: "b", Range: source.NewRange(0, 1, 2)},
			{Kind: token.Ident, Text: "a", Range: source.NewRange(0, 0, 1)},
			eof,
		}},
		{"missing EOF", []token.Token{{Kind: token.Ident, Text: "ab", Range: source.NewRange(0, 0, 2)}}},
		{"early EOF", []token.Token{eof, eof}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := CheckTokenInvariants(lexer.Tokens{Items: tt.toks}, lines); err == nil {
				t.Fatal("expected an invariant violation")
			}
		})
	}
}

func TestMessageInvariants(t *testing.T) {
	mod := source.MustModulePath("main")
	lines := []string{"def a : b"}

	ok := []diag.Message{
		diag.NewError(diag.SemaUnresolvedSymbol, diag.InRange(mod, source.NewRange(0, 8, 9)), "unknown name"),
		diag.NewError(diag.IOCannotOpen, diag.InFile(mod), "cannot open file"),
	}
	if err := CheckMessageInvariants(mod, ok, lines); err != nil {
		t.Fatal(err)
	}

	bad := [][]diag.Message{
		{diag.NewError(diag.UnknownCode, diag.InFile(mod), "no code")},
		{diag.NewError(diag.SynExpectType, diag.InRange(mod, source.NewRange(0, 8, 20)), "too wide")},
		{diag.NewError(diag.SynExpectType, diag.InFile(source.MustModulePath("other")), "wrong module")},
		{diag.NewError(diag.SynExpectType, diag.InFile(mod), "bad note").
			WithNote(diag.InRange(mod, source.NewRange(4, 0, 1)), "past the end")},
	}
	for i, msgs := range bad {
		if err := CheckMessageInvariants(mod, msgs, lines); err == nil {
			t.Errorf("case %d: expected an invariant violation", i)
		}
	}
}
