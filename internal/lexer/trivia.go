package lexer

import (
	"shoumei/internal/diag"
	"shoumei/internal/source"
)

// scanIndent consumes leading spaces and tabs and returns where they began.
func (lx *Lexer) scanIndent() uint32 {
	start := lx.cur.Mark()
	for r := lx.cur.Peek(); r == ' ' || r == '\t'; r = lx.cur.Peek() {
		lx.cur.Bump()
	}
	return start
}

func (lx *Lexer) atComment() bool {
	r0, r1, ok := lx.cur.Peek2()
	return ok && r0 == '-' && r1 == '-'
}

// checkTrailing warns once about whitespace at the end of the line.
func (lx *Lexer) checkTrailing() {
	runes := lx.cur.runes
	end := len(runes)
	start := end
	for start > 0 && (runes[start-1] == ' ' || runes[start-1] == '\t') {
		start--
	}
	if start == end {
		return
	}
	rng := source.NewRange(lx.cur.line, source.ToU32(start), source.ToU32(end))
	lx.warn(diag.LexTrailingWhitespace, rng, "trailing whitespace")
}
