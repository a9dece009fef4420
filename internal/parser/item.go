package parser

import (
	"shoumei/internal/brackets"
	"shoumei/internal/diag"
	"shoumei/internal/token"
)

// parseItem распознаёт формы
//
//	def name : type
//	theorem name : type
//	  body...
func (p *Parser) parseItem(line *brackets.Line) (*Item, bool) {
	nodes := line.Nodes
	item := &Item{Kind: ItemDef, Range: line.Range, Body: line.Children}
	if nodes[0].Is(token.KwTheorem) {
		item.Kind = ItemTheorem
	}

	if len(nodes) < 2 || !nodes[1].Is(token.Ident) {
		at := endOf(nodes[0].Range())
		if len(nodes) >= 2 {
			at = nodes[1].Range()
		}
		p.errorf(diag.SynExpectIdentifier, at, "expected name after '%s'", item.Kind)
		return nil, false
	}
	item.Name = nodes[1].Token.Text
	item.NameRange = nodes[1].Range()

	if len(nodes) < 3 || !nodes[2].Is(token.Colon) {
		at := endOf(item.NameRange)
		if len(nodes) >= 3 {
			at = nodes[2].Range()
		}
		p.errorf(diag.SynExpectColon, at, "expected ':' after %q", item.Name)
		return nil, false
	}

	typ, ok := p.parseType(nodes[3:], endOf(nodes[2].Range()))
	if !ok {
		return nil, false
	}
	item.Type = typ
	return item, true
}
