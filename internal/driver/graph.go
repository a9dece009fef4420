package driver

import (
	"shoumei/internal/diag"
	"shoumei/internal/project"
	"shoumei/internal/project/dag"
)

// ModuleGraph is the import graph of everything a loader has seen.
type ModuleGraph struct {
	Index  dag.ModuleIndex
	Graph  dag.Graph
	Slots  []dag.ModuleSlot
	Topo   *dag.Topo
	Hashes []project.Digest
}

// Graph builds the import graph of the cached modules. Graph-level problems
// (imports of modules that failed, cycles) are reported to r, which may be nil.
func (l *Loader) Graph(r diag.Reporter) *ModuleGraph {
	entries := l.cache.Entries()
	metas := make([]project.ModuleMeta, 0, len(entries))
	nodes := make([]dag.ModuleNode, 0, len(entries))
	for _, e := range entries {
		meta := project.ModuleMeta{
			Path:        e.Path,
			Imports:     e.Imports,
			ContentHash: e.Content,
		}
		metas = append(metas, meta)
		nodes = append(nodes, dag.ModuleNode{
			Meta:     meta,
			Reporter: r,
			Broken:   !e.Present(),
			FirstErr: e.FirstErr,
		})
	}
	idx := dag.BuildIndex(metas)
	g, slots := dag.BuildGraph(idx, nodes)
	topo := dag.ToposortKahn(g)
	if r != nil {
		dag.ReportCycles(idx, slots, topo)
		dag.ReportBrokenDeps(idx, slots)
	}
	hashes := dag.ModuleHashes(g, slots, topo)
	for i := range slots {
		slots[i].Meta.ModuleHash = hashes[i]
	}
	return &ModuleGraph{
		Index:  idx,
		Graph:  g,
		Slots:  slots,
		Topo:   topo,
		Hashes: hashes,
	}
}
