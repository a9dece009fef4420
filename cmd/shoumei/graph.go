package main

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"shoumei/internal/diag"
	"shoumei/internal/driver"
	"shoumei/internal/project/dag"
)

func newGraphCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "graph [module...]",
		Short: "Print the module import graph in dependency order",
		Long: `Graph loads the given modules (all modules under the root by default)
with a single loader and prints every loaded module, dependencies first,
with its imports, load status, module hash and scheduling batch.`,
		RunE: runGraph,
	}
	cmd.Flags().Bool("importers-first", false, "list importers before the modules they import")
	return cmd
}

func runGraph(cmd *cobra.Command, args []string) error {
	importersFirst, err := cmd.Flags().GetBool("importers-first")
	if err != nil {
		return fmt.Errorf("failed to get importers-first flag: %w", err)
	}

	cleanup, err := beginRun(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	s, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	if _, err := setupColor(cmd); err != nil {
		return err
	}
	roots, err := resolveModules(s, args)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	loaded := diag.NewBag(0)
	loader := driver.NewLoader(s.driverOptions(), diag.BagReporter{Bag: loaded})
	for _, root := range roots {
		loader.Load(ctx, root)
	}
	graphBag := diag.NewBag(0)
	mg := loader.Graph(diag.MultiReporter{diag.BagReporter{Bag: graphBag}, traceReporter(ctx)})

	renderGraph(cmd.OutOrStdout(), mg, importersFirst)

	// the loader already warned at every failed import
	graphBag.Filter(func(m *diag.Message) bool {
		return m.Code != diag.ProjDependencyFailed
	})
	loaded.Merge(graphBag)

	all := settleMessages(loaded, s.warningsAsErrors)
	shown, omitted := limitMessages(all, s.maxDiagnostics)
	printShort(cmd.ErrOrStderr(), shown, true)
	if omitted > 0 {
		fmt.Fprintf(cmd.ErrOrStderr(), "... %d more diagnostics not shown (--max-diagnostics)\n", omitted)
	}
	if all.HasErrors() {
		return errDiagnostics
	}
	return nil
}

func moduleStatus(mg *driver.ModuleGraph, id dag.ModuleID, inCycle map[dag.ModuleID]bool) string {
	slot := mg.Slots[int(id)]
	switch {
	case !slot.Present:
		return "missing"
	case inCycle[id]:
		return "cycle"
	case slot.Broken:
		return "failed"
	default:
		return "ok"
	}
}

func renderGraph(out io.Writer, mg *driver.ModuleGraph, importersFirst bool) {
	order := mg.Topo.DependencyOrder()
	if importersFirst {
		order = mg.Topo.Order
	}
	batchOf := make(map[dag.ModuleID]int, len(mg.Slots))
	for i, batch := range mg.Topo.Batches {
		for _, id := range batch {
			batchOf[id] = i + 1
		}
	}
	inCycle := make(map[dag.ModuleID]bool, len(mg.Topo.Cycles))
	for _, id := range mg.Topo.Cycles {
		inCycle[id] = true
	}
	listed := make(map[dag.ModuleID]bool, len(mg.Slots))
	for _, id := range order {
		listed[id] = true
	}
	// модули вне порядка: циклы и отсутствующие
	for i := range mg.Slots {
		id := dag.ModuleID(i)
		if !listed[id] {
			order = append(order, id)
		}
	}

	var tableBuffer bytes.Buffer
	table := tablewriter.NewWriter(&tableBuffer)
	table.SetHeader([]string{"#", "Module", "Imports", "Status", "Hash", "Batch"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetAutoWrapText(false)
	table.SetColumnAlignment([]int{
		tablewriter.ALIGN_RIGHT,
		tablewriter.ALIGN_LEFT,
		tablewriter.ALIGN_LEFT,
		tablewriter.ALIGN_CENTER,
		tablewriter.ALIGN_LEFT,
		tablewriter.ALIGN_CENTER,
	})

	failed := 0
	for n, id := range order {
		slot := mg.Slots[int(id)]
		imports := make([]string, 0, len(slot.Meta.Imports))
		for _, imp := range slot.Meta.Imports {
			imports = append(imports, imp.Path.String())
		}
		status := moduleStatus(mg, id, inCycle)
		if status != "ok" {
			failed++
		}
		hash, batch := "-", "-"
		if slot.Present {
			hash = mg.Hashes[int(id)].Short()
		}
		if b, ok := batchOf[id]; ok {
			batch = fmt.Sprintf("%d", b)
		}
		table.Append([]string{
			fmt.Sprintf("%d", n+1),
			mg.Index.Name(id),
			strings.Join(imports, ", "),
			status,
			hash,
			batch,
		})
	}
	table.SetFooter([]string{
		"",
		"TOTAL",
		fmt.Sprintf("%d modules", len(order)),
		fmt.Sprintf("%d not ok", failed),
		"",
		fmt.Sprintf("%d batches", len(mg.Topo.Batches)),
	})
	table.Render()

	fmt.Fprint(out, tableBuffer.String())
}
