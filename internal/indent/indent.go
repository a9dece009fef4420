// Package indent groups lexed lines into a tree by their leading whitespace.
package indent

import (
	"fmt"
	"strings"

	"shoumei/internal/diag"
	"shoumei/internal/lexer"
	"shoumei/internal/source"
	"shoumei/internal/token"
)

// Line is one source line without its layout tokens.
type Line struct {
	Depth    uint32
	Tokens   []token.Token
	Range    source.Range
	Children []*Line
}

// Block is the output of the indentation pass: the top-level lines of a module.
type Block struct {
	Lines []*Line
}

// Walk visits every line depth-first in source order.
func (b Block) Walk(fn func(l *Line, level int)) {
	var walk func(lines []*Line, level int)
	walk = func(lines []*Line, level int) {
		for _, l := range lines {
			fn(l, level)
			walk(l.Children, level+1)
		}
	}
	walk(b.Lines, 0)
}

type frame struct {
	depth uint32
	list  *[]*Line
}

type builder struct {
	module source.ModulePath
	stack  []frame
	msgs   []diag.Message
}

// Structure builds the line tree. Tabs in indentation and dedents to a depth
// that no enclosing line uses are errors; such lines are still attached at
// the nearest shallower level so later lines keep their structure.
func Structure(module source.ModulePath, toks lexer.Tokens) diag.Result[Block] {
	var block Block
	b := &builder{module: module}
	b.stack = []frame{{depth: 0, list: &block.Lines}}

	items := toks.Items
	for i := 0; i < len(items); i++ {
		if items[i].Kind != token.Indent {
			continue
		}
		ind := items[i]
		j := i + 1
		for j < len(items) && items[j].Kind != token.Newline && items[j].Kind != token.EOF {
			j++
		}
		line := &Line{
			Depth:  b.depth(ind),
			Tokens: items[i+1 : j],
		}
		line.Range = lineRange(ind, line.Tokens)
		b.place(line)
		i = j
	}
	return diag.OkWith(block, b.msgs...)
}

func (b *builder) depth(ind token.Token) uint32 {
	if strings.ContainsRune(ind.Text, '\t') {
		b.errorf(diag.SynTabIndent, ind.Range, "tab character in indentation")
	}
	return source.ToU32(len([]rune(ind.Text)))
}

func (b *builder) place(line *Line) {
	top := b.stack[len(b.stack)-1]
	switch {
	case line.Depth > top.depth:
		list := *top.list
		if len(list) == 0 {
			b.errorf(diag.SynUnexpectedIndent, line.Range, "unexpected indentation")
			*top.list = append(list, line)
			return
		}
		parent := list[len(list)-1]
		b.stack = append(b.stack, frame{depth: line.Depth, list: &parent.Children})
		parent.Children = append(parent.Children, line)
	default:
		for len(b.stack) > 1 && line.Depth < b.stack[len(b.stack)-1].depth {
			b.stack = b.stack[:len(b.stack)-1]
		}
		top = b.stack[len(b.stack)-1]
		if line.Depth != top.depth {
			b.errorf(diag.SynBadDedent, line.Range,
				"dedent to column %d does not match any enclosing indentation", line.Depth)
		}
		*top.list = append(*top.list, line)
	}
}

func (b *builder) errorf(code diag.Code, rng source.Range, format string, args ...any) {
	msg := diag.NewError(code, diag.InRange(b.module, rng), fmt.Sprintf(format, args...))
	b.msgs = append(b.msgs, msg)
}

func lineRange(ind token.Token, toks []token.Token) source.Range {
	if len(toks) == 0 {
		return ind.Range
	}
	return toks[0].Range.Union(toks[len(toks)-1].Range)
}
