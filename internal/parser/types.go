package parser

import (
	"shoumei/internal/brackets"
	"shoumei/internal/diag"
	"shoumei/internal/source"
	"shoumei/internal/token"
)

// parseType разбирает
//
//	type  := app ( '->' type )?
//	       | '(' ident ':' type ')' '->' type
//	app   := atom atom*
//	atom  := ident | '(' type ')'
//
// missing is where to point when the node list is empty.
func (p *Parser) parseType(nodes []brackets.Node, missing source.Range) (TypeExpr, bool) {
	arrow := indexOf(nodes, token.Arrow)
	if arrow < 0 {
		return p.parseApp(nodes, missing)
	}
	left, right := nodes[:arrow], nodes[arrow+1:]
	to, ok := p.parseType(right, endOf(nodes[arrow].Range()))
	if !ok {
		return nil, false
	}

	expr := &ArrowExpr{To: to}
	if len(left) == 1 && isBinderGroup(left[0]) {
		group := left[0]
		name := group.Children[0]
		if !name.Is(token.Ident) {
			p.errorf(diag.SynExpectIdentifier, name.Range(), "expected binder name, found %s", describe(name))
			return nil, false
		}
		from, ok := p.parseType(group.Children[2:], endOf(group.Children[1].Range()))
		if !ok {
			return nil, false
		}
		expr.Binder = name.Token.Text
		expr.BinderRange = name.Range()
		expr.From = from
		expr.Rng = group.Range().Union(to.Range())
		return expr, true
	}

	from, ok := p.parseApp(left, startOf(nodes[arrow].Range()))
	if !ok {
		return nil, false
	}
	expr.From = from
	expr.Rng = from.Range().Union(to.Range())
	return expr, true
}

func (p *Parser) parseApp(nodes []brackets.Node, missing source.Range) (TypeExpr, bool) {
	if len(nodes) == 0 {
		p.errorf(diag.SynExpectType, missing, "expected type")
		return nil, false
	}
	atoms := make([]TypeExpr, 0, len(nodes))
	for _, n := range nodes {
		atom, ok := p.parseAtom(n)
		if !ok {
			return nil, false
		}
		atoms = append(atoms, atom)
	}
	if len(atoms) == 1 {
		return atoms[0], true
	}
	return &AppExpr{
		Head: atoms[0],
		Args: atoms[1:],
		Rng:  atoms[0].Range().Union(atoms[len(atoms)-1].Range()),
	}, true
}

func (p *Parser) parseAtom(n brackets.Node) (TypeExpr, bool) {
	switch {
	case n.Is(token.Ident):
		return &NameExpr{Name: n.Token.Text, Rng: n.Range()}, true
	case n.Group && n.Token.Kind == token.LParen:
		if isBinderGroup(n) {
			p.errorf(diag.SynUnexpectedToken, n.Range(), "binder must be followed by '->'")
			return nil, false
		}
		inner, ok := p.parseType(n.Children, endOf(n.Token.Range))
		if !ok {
			return nil, false
		}
		return inner, true
	default:
		p.errorf(diag.SynExpectType, n.Range(), "expected type, found %s", describe(n))
		return nil, false
	}
}

// isBinderGroup reports whether n looks like `(name : type)`.
func isBinderGroup(n brackets.Node) bool {
	return n.Group && n.Token.Kind == token.LParen &&
		len(n.Children) >= 2 && n.Children[1].Is(token.Colon)
}

func indexOf(nodes []brackets.Node, kind token.Kind) int {
	for i, n := range nodes {
		if n.Is(kind) {
			return i
		}
	}
	return -1
}
