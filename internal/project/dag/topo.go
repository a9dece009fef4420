package dag

import "slices"

// Topo is the result of ToposortKahn.
type Topo struct {
	Order   []ModuleID   // importers first, present modules only
	Batches [][]ModuleID // waves; members of a wave never import each other
	Cyclic  bool
	Cycles  []ModuleID // present modules left with unresolved imports
}

// ToposortKahn orders present modules importers first: a module appears
// before everything it imports. Missing modules are skipped. Each wave is
// sorted by id so the order is stable across runs.
func ToposortKahn(g Graph) *Topo {
	pending := slices.Clone(g.Indeg)
	topo := &Topo{}

	var wave []ModuleID
	remaining := 0
	for i, present := range g.Present {
		if !present {
			continue
		}
		remaining++
		if pending[i] == 0 {
			wave = append(wave, toID(i))
		}
	}

	for len(wave) > 0 {
		slices.Sort(wave)
		topo.Batches = append(topo.Batches, wave)
		topo.Order = append(topo.Order, wave...)
		remaining -= len(wave)

		var next []ModuleID
		for _, id := range wave {
			for _, to := range g.Edges[id] {
				if !g.Present[to] {
					continue
				}
				if pending[to]--; pending[to] == 0 {
					next = append(next, to)
				}
			}
		}
		wave = next
	}

	if remaining > 0 {
		topo.Cyclic = true
		for i, present := range g.Present {
			if present && pending[i] > 0 {
				topo.Cycles = append(topo.Cycles, toID(i))
			}
		}
	}
	return topo
}

// DependencyOrder returns Order reversed: every module after its imports.
func (t *Topo) DependencyOrder() []ModuleID {
	out := slices.Clone(t.Order)
	slices.Reverse(out)
	return out
}
