package lexer

import (
	"shoumei/internal/diag"
	"shoumei/internal/token"
)

func isDigit(r rune) bool { return r >= '0' && r <= '9' }

// scanNumber reads a decimal literal. Letters glued to the digits make the
// whole run a malformed number.
func (lx *Lexer) scanNumber() {
	start := lx.cur.Mark()
	for isDigit(lx.cur.Peek()) {
		lx.cur.Bump()
	}
	if !lx.cur.EOL() && isIdentStart(lx.cur.Peek()) {
		for !lx.cur.EOL() && isIdentContinue(lx.cur.Peek()) {
			lx.cur.Bump()
		}
		rng := lx.cur.RangeFrom(start)
		lx.errorf(diag.LexBadNumber, rng, "malformed number %q", lx.cur.Text(start))
		lx.emit(token.Invalid, start)
		return
	}
	lx.emit(token.Number, start)
}
