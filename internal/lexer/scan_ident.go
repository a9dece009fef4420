package lexer

import (
	"unicode"

	"golang.org/x/text/unicode/norm"

	"shoumei/internal/token"
)

func isIdentStart(r rune) bool {
	return r == '_' || unicode.IsLetter(r)
}

func isIdentContinue(r rune) bool {
	return isIdentStart(r) || unicode.IsDigit(r) || r == '\'' || unicode.Is(unicode.Mn, r)
}

// scanIdent reads an identifier or keyword. Identifier text is NFC-normalised
// so that differently composed spellings name the same item.
func (lx *Lexer) scanIdent() {
	start := lx.cur.Mark()
	for !lx.cur.EOL() && isIdentContinue(lx.cur.Peek()) {
		lx.cur.Bump()
	}
	text := norm.NFC.String(lx.cur.Text(start))
	kind := token.Ident
	if kw, ok := token.LookupKeyword(text); ok {
		kind = kw
	}
	lx.out = append(lx.out, token.Token{
		Kind:  kind,
		Text:  text,
		Range: lx.cur.RangeFrom(start),
	})
}
