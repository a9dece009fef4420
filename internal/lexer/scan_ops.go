package lexer

import (
	"shoumei/internal/diag"
	"shoumei/internal/token"
)

var singles = map[rune]token.Kind{
	'(': token.LParen,
	')': token.RParen,
	'[': token.LBracket,
	']': token.RBracket,
	'{': token.LBrace,
	'}': token.RBrace,
	':': token.Colon,
	',': token.Comma,
	'.': token.Dot,
	'=': token.Assign,
	'/': token.Slash,
}

func (lx *Lexer) scanPunct() {
	start := lx.cur.Mark()
	if r0, r1, ok := lx.cur.Peek2(); ok && r0 == '-' && r1 == '>' {
		lx.cur.Bump()
		lx.cur.Bump()
		lx.emit(token.Arrow, start)
		return
	}
	r := lx.cur.Bump()
	if kind, ok := singles[r]; ok {
		lx.emit(kind, start)
		return
	}
	lx.errorf(diag.LexUnknownChar, lx.cur.RangeFrom(start), "unknown character %q", r)
	lx.emit(token.Invalid, start)
}
