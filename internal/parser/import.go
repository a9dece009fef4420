package parser

import (
	"shoumei/internal/brackets"
	"shoumei/internal/diag"
	"shoumei/internal/source"
	"shoumei/internal/token"
)

// parseImport распознаёт форму
//
//	import segment/segment/...
func (p *Parser) parseImport(line *brackets.Line) (Import, bool) {
	if len(line.Children) > 0 {
		p.errorf(diag.SynUnexpectedIndent, line.Children[0].Range, "import cannot have an indented body")
	}
	nodes := line.Nodes[1:]
	if len(nodes) == 0 {
		p.errorf(diag.SynInvalidImportPath, endOf(line.Range), "expected module path after 'import'")
		return Import{}, false
	}
	segs := make([]string, 0, (len(nodes)+1)/2)
	for i, n := range nodes {
		want := token.Ident
		if i%2 == 1 {
			want = token.Slash
		}
		if !n.Is(want) {
			p.errorf(diag.SynInvalidImportPath, n.Range(), "invalid import path: unexpected %s", describe(n))
			return Import{}, false
		}
		if want == token.Ident {
			segs = append(segs, n.Token.Text)
		}
	}
	last := nodes[len(nodes)-1]
	if last.Is(token.Slash) {
		p.errorf(diag.SynInvalidImportPath, last.Range(), "invalid import path: trailing '/'")
		return Import{}, false
	}
	path, err := source.NewModulePath(segs...)
	if err != nil {
		p.errorf(diag.SynInvalidImportPath, line.Range, "invalid import path: %v", err)
		return Import{}, false
	}
	return Import{Path: path, Range: line.Range}, true
}
