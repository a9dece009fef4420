package types

import (
	"slices"

	"shoumei/internal/source"
)

// Project holds the type tables of every module known so far, keyed by
// module path.
type Project struct {
	tables map[string]*Table
}

func NewProject() *Project {
	return &Project{tables: make(map[string]*Table)}
}

// Insert stores table under path, replacing any previous table.
func (p *Project) Insert(path source.ModulePath, table *Table) {
	p.tables[path.Key()] = table
}

// Lookup returns the table of path.
func (p *Project) Lookup(path source.ModulePath) (*Table, bool) {
	if p == nil {
		return nil, false
	}
	t, ok := p.tables[path.Key()]
	return t, ok
}

func (p *Project) Len() int {
	if p == nil {
		return 0
	}
	return len(p.tables)
}

// Paths returns the module paths in the project in sorted order.
func (p *Project) Paths() []source.ModulePath {
	if p == nil {
		return nil
	}
	out := make([]source.ModulePath, 0, len(p.tables))
	for _, t := range p.tables {
		out = append(out, t.Module)
	}
	slices.SortFunc(out, source.ModulePath.Compare)
	return out
}
