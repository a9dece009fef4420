package main

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGraphDependencyOrder(t *testing.T) {
	dir := t.TempDir()
	writeModule(t, dir, "base", "def nat : Type")
	writeModule(t, dir, "mid", "import base", "def one : nat")
	writeModule(t, dir, "top", "import mid", "import base", "def two : nat")

	stdout, stderr, err := runCLI(t, dir, "graph", "top")

	require.NoError(t, err, stderr)
	base := strings.Index(stdout, "base ")
	mid := strings.Index(stdout, "mid ")
	top := strings.Index(stdout, "top ")
	require.True(t, base >= 0 && mid >= 0 && top >= 0, stdout)
	assert.Less(t, base, mid)
	assert.Less(t, mid, top)
	assert.Contains(t, stdout, "mid, base")
	assert.Contains(t, stdout, "3 BATCHES")
}

func TestGraphImportersFirst(t *testing.T) {
	dir := t.TempDir()
	writeModule(t, dir, "base", "def nat : Type")
	writeModule(t, dir, "top", "import base")

	stdout, _, err := runCLI(t, dir, "graph", "--importers-first", "top")

	require.NoError(t, err)
	assert.Less(t, strings.Index(stdout, "top "), strings.Index(stdout, "base "))
}

func TestGraphFailedDependency(t *testing.T) {
	dir := t.TempDir()
	writeModule(t, dir, "top", "import gone")

	stdout, stderr, err := runCLI(t, dir, "graph", "top")

	require.ErrorIs(t, err, errDiagnostics)
	assert.Contains(t, stdout, "failed")
	assert.Contains(t, stderr, "error IO4001 gone cannot open file")
	assert.Contains(t, stderr, "warning PRJ5007 top:1:")
	assert.Equal(t, 1, strings.Count(stderr, "warning PRJ5007"), stderr)
}

func TestGraphReportsCycles(t *testing.T) {
	dir := t.TempDir()
	writeModule(t, dir, "a", "import b")
	writeModule(t, dir, "b", "import a")

	stdout, stderr, err := runCLI(t, dir, "graph", "a")

	require.ErrorIs(t, err, errDiagnostics)
	assert.Contains(t, stdout, "cycle")
	assert.Contains(t, stderr, "cyclic module inclusion detected")
	assert.Contains(t, stderr, "participates in an import cycle")
}

func TestGraphTracesGraphDiagnostics(t *testing.T) {
	dir := t.TempDir()
	writeModule(t, dir, "a", "import b")
	writeModule(t, dir, "b", "import a")
	traceFile := filepath.Join(t.TempDir(), "graph.trace")

	_, _, err := runCLI(t, dir, "--trace", traceFile, "--trace-level", "debug", "graph", "a")

	require.ErrorIs(t, err, errDiagnostics)
	data := readFile(t, traceFile)
	assert.Contains(t, data, "PRJ5004")
	assert.Contains(t, data, "participates in an import cycle")
}

func TestGraphCycleMembersFail(t *testing.T) {
	dir := t.TempDir()
	writeModule(t, dir, "a", "import b", "def x : Type")
	writeModule(t, dir, "b", "import a", "def y : Type")

	_, stderr, err := runCLI(t, dir, "graph", "a")

	require.ErrorIs(t, err, errDiagnostics)
	assert.Equal(t, 1, strings.Count(stderr, "error PRJ5004 a cyclic module inclusion detected"), stderr)
	assert.Contains(t, stderr, "error PRJ5007 a:1:")
	assert.Contains(t, stderr, `dependency module "b" failed to load`)
}
