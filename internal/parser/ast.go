package parser

import (
	"shoumei/internal/brackets"
	"shoumei/internal/source"
)

// Module is the parse tree of one module.
type Module struct {
	Path    source.ModulePath
	Imports []Import
	Items   []*Item
}

// ImportPaths returns the imported modules in source order, without repeats.
func (m *Module) ImportPaths() []source.ModulePath {
	seen := make(map[string]struct{}, len(m.Imports))
	out := make([]source.ModulePath, 0, len(m.Imports))
	for _, imp := range m.Imports {
		if _, dup := seen[imp.Path.Key()]; dup {
			continue
		}
		seen[imp.Path.Key()] = struct{}{}
		out = append(out, imp.Path)
	}
	return out
}

// Import is an `import a/b/c` line.
type Import struct {
	Path  source.ModulePath
	Range source.Range
}

// ItemKind distinguishes declarations.
type ItemKind uint8

const (
	ItemDef ItemKind = iota
	ItemTheorem
)

func (k ItemKind) String() string {
	switch k {
	case ItemDef:
		return "def"
	case ItemTheorem:
		return "theorem"
	default:
		return "item"
	}
}

// Item is a named declaration with its type and optional indented body.
type Item struct {
	Kind      ItemKind
	Name      string
	NameRange source.Range
	Type      TypeExpr
	Body      []*brackets.Line
	Range     source.Range
}

// TypeExpr is a type written in the source.
type TypeExpr interface {
	Range() source.Range
	typeExpr()
}

// NameExpr refers to a type or item by name.
type NameExpr struct {
	Name string
	Rng  source.Range
}

// ArrowExpr is `From -> To`, or `(Binder : From) -> To` when Binder is set.
type ArrowExpr struct {
	Binder      string
	BinderRange source.Range
	From        TypeExpr
	To          TypeExpr
	Rng         source.Range
}

// AppExpr applies Head to Args: `Eq a a`.
type AppExpr struct {
	Head TypeExpr
	Args []TypeExpr
	Rng  source.Range
}

func (e *NameExpr) Range() source.Range  { return e.Rng }
func (e *ArrowExpr) Range() source.Range { return e.Rng }
func (e *AppExpr) Range() source.Range   { return e.Rng }

func (*NameExpr) typeExpr()  {}
func (*ArrowExpr) typeExpr() {}
func (*AppExpr) typeExpr()   {}
