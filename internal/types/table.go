package types

import (
	"fmt"
	"unicode"
	"unicode/utf8"

	"shoumei/internal/diag"
	"shoumei/internal/parser"
	"shoumei/internal/source"
)

// Entry is one declared name.
type Entry struct {
	Name  string
	Kind  parser.ItemKind
	Type  TypeID
	Range source.Range
}

// Table is the output of the types pass for one module.
type Table struct {
	Module  source.ModulePath
	Types   *Interner
	entries []Entry
	byName  map[string]int
}

func newTable(module source.ModulePath) *Table {
	return &Table{
		Module: module,
		Types:  NewInterner(),
		byName: make(map[string]int),
	}
}

// Lookup finds a declaration by name.
func (t *Table) Lookup(name string) (Entry, bool) {
	if t == nil {
		return Entry{}, false
	}
	i, ok := t.byName[name]
	if !ok {
		return Entry{}, false
	}
	return t.entries[i], true
}

// Entries returns declarations in source order.
func (t *Table) Entries() []Entry {
	if t == nil {
		return nil
	}
	return t.entries
}

func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.entries)
}

// TypeString renders the declared type of name.
func (t *Table) TypeString(name string) string {
	e, ok := t.Lookup(name)
	if !ok {
		return ""
	}
	return t.Types.Format(e.Type)
}

type checker struct {
	table *Table
	msgs  []diag.Message
}

// Check records every declaration of mod with its interned type. Duplicate
// names are errors and keep the first declaration; a def named with an
// upper-case letter is a style warning.
func Check(module source.ModulePath, mod *parser.Module) diag.Result[*Table] {
	c := &checker{table: newTable(module)}
	for _, item := range mod.Items {
		c.declare(item)
	}
	return diag.OkWith(c.table, c.msgs...)
}

func (c *checker) declare(item *parser.Item) {
	t := c.table
	ctx := diag.InRange(t.Module, item.NameRange)
	if prev, dup := t.Lookup(item.Name); dup {
		msg := diag.NewError(diag.SemaDuplicateSymbol, ctx, fmt.Sprintf("%q is already declared", item.Name)).
			WithNote(diag.InRange(t.Module, prev.Range), "previous declaration here")
		c.msgs = append(c.msgs, msg)
		return
	}
	if IsBuiltin(item.Name) {
		c.msgs = append(c.msgs, diag.NewWarning(diag.SemaShadowSymbol, ctx,
			fmt.Sprintf("declaration %q shadows the builtin sort", item.Name)))
	}
	if item.Kind == parser.ItemDef && startsUpper(item.Name) {
		c.msgs = append(c.msgs, diag.NewWarning(diag.SemaNameStyle, ctx,
			fmt.Sprintf("def %q should start with a lower-case letter", item.Name)))
	}
	t.byName[item.Name] = len(t.entries)
	t.entries = append(t.entries, Entry{
		Name:  item.Name,
		Kind:  item.Kind,
		Type:  c.intern(item.Type),
		Range: item.NameRange,
	})
}

func (c *checker) intern(e parser.TypeExpr) TypeID {
	in := c.table.Types
	switch e := e.(type) {
	case *parser.NameExpr:
		return in.Named(e.Name)
	case *parser.ArrowExpr:
		return in.Arrow(e.Binder, c.intern(e.From), c.intern(e.To))
	case *parser.AppExpr:
		args := make([]TypeID, len(e.Args))
		for i, a := range e.Args {
			args[i] = c.intern(a)
		}
		return in.App(c.intern(e.Head), args...)
	default:
		return NoTypeID
	}
}

func startsUpper(name string) bool {
	r, _ := utf8.DecodeRuneInString(name)
	return unicode.IsUpper(r)
}
