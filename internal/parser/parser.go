// Package parser turns bracket trees into declarations.
package parser

import (
	"fmt"

	"shoumei/internal/brackets"
	"shoumei/internal/diag"
	"shoumei/internal/source"
	"shoumei/internal/token"
)

// Parser — состояние парсера на один модуль
type Parser struct {
	module source.ModulePath
	msgs   []diag.Message
}

// Parse reads every top-level line as an import or a declaration. A line
// that is neither is reported and skipped; parsing continues with the next.
func Parse(module source.ModulePath, block brackets.Block) diag.Result[*Module] {
	p := &Parser{module: module}
	mod := &Module{Path: module}
	for _, line := range block.Lines {
		if len(line.Nodes) == 0 {
			continue
		}
		head := line.Nodes[0]
		switch {
		case head.Is(token.KwImport):
			if imp, ok := p.parseImport(line); ok {
				mod.Imports = append(mod.Imports, imp)
			}
		case head.Is(token.KwDef), head.Is(token.KwTheorem):
			if item, ok := p.parseItem(line); ok {
				mod.Items = append(mod.Items, item)
			}
		default:
			p.errorf(diag.SynExpectItem, head.Range(),
				"expected 'import', 'def' or 'theorem', found %s", describe(head))
		}
	}
	return diag.OkWith(mod, p.msgs...)
}

func (p *Parser) report(msg diag.Message) {
	p.msgs = append(p.msgs, msg)
}

func (p *Parser) errorf(code diag.Code, rng source.Range, format string, args ...any) {
	p.report(diag.NewError(code, diag.InRange(p.module, rng), fmt.Sprintf(format, args...)))
}

// describe names a node for messages.
func describe(n brackets.Node) string {
	if n.Group {
		return "group " + n.Token.Kind.String()
	}
	if n.Token.Kind == token.Ident || n.Token.Kind == token.Number {
		return fmt.Sprintf("%s %q", n.Token.Kind, n.Token.Text)
	}
	return n.Token.Kind.String()
}

// endOf is an empty range just past the given one, used when something is
// missing at the end of a line.
func endOf(rng source.Range) source.Range {
	return source.Range{Start: rng.End, End: rng.End}
}

func startOf(rng source.Range) source.Range {
	return source.Range{Start: rng.Start, End: rng.Start}
}
