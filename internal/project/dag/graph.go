package dag

import (
	"fmt"
	"slices"
	"strings"

	"shoumei/internal/diag"
	"shoumei/internal/project"
)

// Graph is the import graph over an index. Edges to missing modules are
// kept; Indeg only counts edges between present modules.
type Graph struct {
	Edges   [][]ModuleID
	Indeg   []int
	Present []bool
}

// ModuleNode is one loaded module as seen by the graph builder.
type ModuleNode struct {
	Meta     project.ModuleMeta
	Reporter diag.Reporter // nil: graph problems of this module are not reported
	Broken   bool
	FirstErr *diag.Message
}

// ModuleSlot is the per-id view after BuildGraph. Absent slots only
// carry Meta.Path.
type ModuleSlot struct {
	ModuleNode
	Present bool
}

// errorf returns nil when the slot has no reporter; builders are nil-safe.
func (s *ModuleSlot) errorf(code diag.Code, ctx diag.Context, format string, args ...any) *diag.ReportBuilder {
	if s.Reporter == nil {
		return nil
	}
	return diag.ReportError(s.Reporter, code, ctx, fmt.Sprintf(format, args...))
}

// BuildGraph places nodes into their index slots and links imports.
// A second node for the same path is a duplicate; self imports and
// imports of modules never loaded are reported on the importer.
func BuildGraph(idx ModuleIndex, nodes []ModuleNode) (Graph, []ModuleSlot) {
	n := len(idx.IDToPath)
	g := Graph{
		Edges:   make([][]ModuleID, n),
		Indeg:   make([]int, n),
		Present: make([]bool, n),
	}
	slots := make([]ModuleSlot, n)
	for i, path := range idx.IDToPath {
		slots[i].Meta.Path = path
	}
	for _, node := range nodes {
		place(idx, slots, node)
	}
	for i := range slots {
		g.Present[i] = slots[i].Present
	}
	for from := range slots {
		if slots[from].Present {
			link(idx, &g, &slots[from], toID(from))
		}
	}
	return g, slots
}

func place(idx ModuleIndex, slots []ModuleSlot, node ModuleNode) {
	id, ok := idx.Lookup(node.Meta.Path)
	if !ok {
		return
	}
	slot := &slots[id]
	if slot.Present {
		dup := ModuleSlot{ModuleNode: node}
		dup.errorf(diag.ProjDuplicateModule, diag.InFile(node.Meta.Path), "duplicate module %q", node.Meta.Path.String()).
			WithNote(diag.InFile(slot.Meta.Path), "previous declaration").
			Emit()
		return
	}
	slot.ModuleNode = node
	slot.Present = true
}

func link(idx ModuleIndex, g *Graph, slot *ModuleSlot, from ModuleID) {
	name := slot.Meta.Path.String()
	for _, imp := range slot.Meta.Imports {
		to, ok := idx.Lookup(imp.Path)
		if !ok || slices.Contains(g.Edges[from], to) {
			continue
		}
		at := diag.InRange(slot.Meta.Path, imp.Range)
		switch {
		case to == from:
			slot.errorf(diag.ProjSelfImport, at, "module %q imports itself", name).Emit()
			continue
		case g.Present[to]:
			g.Indeg[to]++
		default:
			slot.errorf(diag.ProjMissingModule, at, "module %q imports missing module %q", name, idx.Name(to)).Emit()
		}
		g.Edges[from] = append(g.Edges[from], to)
	}
	slices.Sort(g.Edges[from])
}

// ReportCycles reports every module left on a cycle, naming all of them.
func ReportCycles(idx ModuleIndex, slots []ModuleSlot, topo *Topo) {
	if !topo.Cyclic {
		return
	}
	names := make([]string, len(topo.Cycles))
	for i, id := range topo.Cycles {
		names[i] = idx.Name(id)
	}
	chain := strings.Join(names, " -> ")
	for _, id := range topo.Cycles {
		slot := &slots[id]
		slot.errorf(diag.ProjImportCycle, diag.InFile(slot.Meta.Path),
			"module %q participates in an import cycle: %s", slot.Meta.Path.String(), chain).Emit()
	}
}

// ReportBrokenDeps reports each import of a broken module once per import
// site, with the dependency's first error as a note.
func ReportBrokenDeps(idx ModuleIndex, slots []ModuleSlot) {
	for i := range slots {
		slot := &slots[i]
		if !slot.Present || slot.Reporter == nil {
			continue
		}
		seen := make(map[string]bool)
		for _, imp := range slot.Meta.Imports {
			to, ok := idx.Lookup(imp.Path)
			if !ok || !slots[to].Broken {
				continue
			}
			site := imp.Path.Key() + "|" + imp.Range.String()
			if seen[site] {
				continue
			}
			seen[site] = true
			b := slot.errorf(diag.ProjDependencyFailed, diag.InRange(slot.Meta.Path, imp.Range),
				"dependency module %q has errors", imp.Path.String())
			if first := slots[to].FirstErr; first != nil {
				b.WithNote(first.Context, "first error in dependency: "+first.Text)
			}
			b.Emit()
		}
	}
}

// ModuleHashes folds each module's content hash with the hashes of its
// dependencies, dependencies first. Modules on a cycle keep their content hash.
func ModuleHashes(g Graph, slots []ModuleSlot, topo *Topo) []project.Digest {
	out := make([]project.Digest, len(slots))
	for i := range slots {
		out[i] = slots[i].Meta.ContentHash
	}
	for _, id := range topo.DependencyOrder() {
		deps := make([]project.Digest, 0, len(g.Edges[id]))
		for _, to := range g.Edges[id] {
			if g.Present[to] {
				deps = append(deps, out[to])
			}
		}
		out[id] = project.Combine(slots[id].Meta.ContentHash, deps...)
	}
	return out
}
