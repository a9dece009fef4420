// Package brackets nests the tokens of each line into bracket trees.
package brackets

import (
	"fmt"

	"shoumei/internal/diag"
	"shoumei/internal/indent"
	"shoumei/internal/source"
	"shoumei/internal/token"
)

// Node is either a single token or a bracket group. For groups Token is the
// opening bracket and Close the closing one; an unclosed group has a zero
// Close token.
type Node struct {
	Token    token.Token
	Close    token.Token
	Group    bool
	Children []Node
}

// Range covers the node including both brackets.
func (n Node) Range() source.Range {
	if !n.Group || n.Close.Kind == token.Invalid {
		rng := n.Token.Range
		if len(n.Children) > 0 {
			rng = rng.Union(n.Children[len(n.Children)-1].Range())
		}
		return rng
	}
	return n.Token.Range.Union(n.Close.Range)
}

// Is reports whether the node is a single token of the given kind.
func (n Node) Is(kind token.Kind) bool {
	return !n.Group && n.Token.Kind == kind
}

// Line is an indented line whose tokens have been nested.
type Line struct {
	Nodes    []Node
	Range    source.Range
	Children []*Line
}

// Block is the output of the bracket pass.
type Block struct {
	Lines []*Line
}

type matcher struct {
	module source.ModulePath
	msgs   []diag.Message
}

// Match nests brackets line by line. Groups never span lines.
func Match(module source.ModulePath, in indent.Block) diag.Result[Block] {
	m := &matcher{module: module}
	out := Block{Lines: m.lines(in.Lines)}
	return diag.OkWith(out, m.msgs...)
}

func (m *matcher) lines(in []*indent.Line) []*Line {
	if len(in) == 0 {
		return nil
	}
	out := make([]*Line, 0, len(in))
	for _, l := range in {
		out = append(out, &Line{
			Nodes:    m.nest(l.Tokens),
			Range:    l.Range,
			Children: m.lines(l.Children),
		})
	}
	return out
}

func (m *matcher) nest(toks []token.Token) []Node {
	root := &Node{Group: true}
	stack := []*Node{root}
	for _, tok := range toks {
		top := stack[len(stack)-1]
		switch {
		case tok.Kind.IsOpen():
			top.Children = append(top.Children, Node{Token: tok, Group: true})
			stack = append(stack, &top.Children[len(top.Children)-1])
		case tok.Kind.IsClose():
			if len(stack) == 1 {
				m.errorf(diag.SynUnexpectedClose, tok.Range, "unexpected %s", tok.Kind)
				continue
			}
			if want := top.Token.Kind.Closer(); want != tok.Kind {
				m.report(diag.NewError(diag.SynMismatchedBracket, diag.InRange(m.module, tok.Range),
					fmt.Sprintf("expected %s, found %s", want, tok.Kind)).
					WithNote(diag.InRange(m.module, top.Token.Range), "group opened here"))
			}
			top.Close = tok
			stack = stack[:len(stack)-1]
		default:
			top.Children = append(top.Children, Node{Token: tok})
		}
	}
	for i := len(stack) - 1; i > 0; i-- {
		open := stack[i].Token
		m.errorf(diag.SynUnclosedBracket, open.Range, "unclosed %s", open.Kind)
	}
	return root.Children
}

func (m *matcher) report(msg diag.Message) {
	m.msgs = append(m.msgs, msg)
}

func (m *matcher) errorf(code diag.Code, rng source.Range, format string, args ...any) {
	m.report(diag.NewError(code, diag.InRange(m.module, rng), fmt.Sprintf(format, args...)))
}
