// Package index resolves every name used in a module's declarations.
package index

import (
	"fmt"

	"shoumei/internal/diag"
	"shoumei/internal/parser"
	"shoumei/internal/source"
	"shoumei/internal/types"
)

// Target says what a reference resolved to.
type Target uint8

const (
	TargetUnresolved Target = iota
	TargetBuiltin
	TargetBinder
	TargetLocal
	TargetImported
	// TargetExternal marks a name left open because an imported module is
	// not in the project cache.
	TargetExternal
)

func (t Target) String() string {
	switch t {
	case TargetBuiltin:
		return "builtin"
	case TargetBinder:
		return "binder"
	case TargetLocal:
		return "local"
	case TargetImported:
		return "imported"
	case TargetExternal:
		return "external"
	default:
		return "unresolved"
	}
}

// Symbol is a declaration of this module.
type Symbol struct {
	Name source.QualifiedName
	Kind parser.ItemKind
	Type types.TypeID
}

// Reference is one use of a name inside a declared type.
type Reference struct {
	Name   string
	Range  source.Range
	Target Target
	// Resolved is set for local and imported targets.
	Resolved source.QualifiedName
	// Item is the declaration the reference occurs in.
	Item string
}

// Index is the output of the indexing pass.
type Index struct {
	Module  source.ModulePath
	Symbols []Symbol
	Refs    []Reference
	Imports []source.ModulePath
}

// Symbol looks up a declaration of this module by name.
func (ix *Index) Symbol(name string) (Symbol, bool) {
	for _, s := range ix.Symbols {
		if s.Name.Name == name {
			return s, true
		}
	}
	return Symbol{}, false
}

// RefsTo returns the references that resolved to qn.
func (ix *Index) RefsTo(qn source.QualifiedName) []Reference {
	var out []Reference
	for _, r := range ix.Refs {
		if r.Resolved.Equal(qn) {
			out = append(out, r)
		}
	}
	return out
}

type resolver struct {
	module  source.ModulePath
	own     *types.Table
	project *types.Project
	imports []source.ModulePath
	open    bool
	ix      *Index
	msgs    []diag.Message
}

// Build indexes mod against the project cache. The module's own table must be
// in the cache. Names must resolve to a binder in scope, a declaration of the
// module, a builtin sort or a declaration of an imported module; anything else
// is an error unless some import is missing from the cache.
func Build(module source.ModulePath, mod *parser.Module, project *types.Project) diag.Result[*Index] {
	own, _ := project.Lookup(module)
	r := &resolver{
		module:  module,
		own:     own,
		project: project,
		imports: mod.ImportPaths(),
		ix:      &Index{Module: module},
	}
	r.ix.Imports = r.imports
	for _, imp := range r.imports {
		if _, ok := project.Lookup(imp); !ok {
			r.open = true
		}
	}

	for _, item := range mod.Items {
		entry, ok := own.Lookup(item.Name)
		if !ok || entry.Range != item.NameRange {
			// duplicate declarations are reported by the types pass
			continue
		}
		r.ix.Symbols = append(r.ix.Symbols, Symbol{
			Name: source.QualifiedName{Module: module, Name: item.Name, Range: item.NameRange},
			Kind: item.Kind,
			Type: entry.Type,
		})
		r.walk(item.Name, item.Type, nil)
	}
	return diag.OkWith(r.ix, r.msgs...)
}

func (r *resolver) walk(item string, e parser.TypeExpr, scope []string) {
	switch e := e.(type) {
	case *parser.NameExpr:
		r.resolve(item, e, scope)
	case *parser.AppExpr:
		r.walk(item, e.Head, scope)
		for _, a := range e.Args {
			r.walk(item, a, scope)
		}
	case *parser.ArrowExpr:
		r.walk(item, e.From, scope)
		if e.Binder != "" {
			scope = append(scope[:len(scope):len(scope)], e.Binder)
		}
		r.walk(item, e.To, scope)
	}
}

func (r *resolver) resolve(item string, e *parser.NameExpr, scope []string) {
	ref := Reference{Name: e.Name, Range: e.Rng, Item: item}
	switch {
	case inScope(scope, e.Name):
		ref.Target = TargetBinder
	case r.local(e.Name, &ref):
	case types.IsBuiltin(e.Name):
		ref.Target = TargetBuiltin
	case r.imported(e.Name, &ref):
	case r.open:
		ref.Target = TargetExternal
	default:
		r.msgs = append(r.msgs, diag.NewError(diag.SemaUnresolvedSymbol,
			diag.InRange(r.module, e.Rng), fmt.Sprintf("unknown name %q", e.Name)))
	}
	r.ix.Refs = append(r.ix.Refs, ref)
}

func (r *resolver) local(name string, ref *Reference) bool {
	entry, ok := r.own.Lookup(name)
	if !ok {
		return false
	}
	ref.Target = TargetLocal
	ref.Resolved = source.QualifiedName{Module: r.module, Name: name, Range: entry.Range}
	return true
}

// imported picks the first import, in source order, declaring name.
func (r *resolver) imported(name string, ref *Reference) bool {
	for _, imp := range r.imports {
		table, ok := r.project.Lookup(imp)
		if !ok {
			continue
		}
		if entry, ok := table.Lookup(name); ok {
			ref.Target = TargetImported
			ref.Resolved = source.QualifiedName{Module: imp, Name: name, Range: entry.Range}
			return true
		}
	}
	return false
}

func inScope(scope []string, name string) bool {
	for i := len(scope) - 1; i >= 0; i-- {
		if scope[i] == name {
			return true
		}
	}
	return false
}
