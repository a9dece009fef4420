package lexer

import "shoumei/internal/source"

// cursor walks the runes of a single line.
type cursor struct {
	line  uint32
	runes []rune
	off   uint32
}

func newCursor(line uint32, text string) cursor {
	return cursor{line: line, runes: []rune(text)}
}

func (c *cursor) limit() uint32 {
	return source.ToU32(len(c.runes))
}

// EOL проверяет, достигнут ли конец строки
func (c *cursor) EOL() bool {
	return c.off >= c.limit()
}

// Peek возвращает текущую руну или 0 в конце строки
func (c *cursor) Peek() rune {
	if c.EOL() {
		return 0
	}
	return c.runes[c.off]
}

// Peek2 возвращает текущую и следующую руну
func (c *cursor) Peek2() (r0, r1 rune, ok bool) {
	if c.off+1 >= c.limit() {
		return 0, 0, false
	}
	return c.runes[c.off], c.runes[c.off+1], true
}

// Bump сдвигает курсор на одну руну
func (c *cursor) Bump() rune {
	if c.EOL() {
		return 0
	}
	r := c.runes[c.off]
	c.off++
	return r
}

func (c *cursor) Mark() uint32 { return c.off }

func (c *cursor) Text(from uint32) string {
	return string(c.runes[from:c.off])
}

func (c *cursor) RangeFrom(from uint32) source.Range {
	return source.NewRange(c.line, from, c.off)
}

func (c *cursor) Loc() source.Location {
	return source.NewLocation(c.line, c.off)
}
