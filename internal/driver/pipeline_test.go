package driver

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shoumei/internal/diag"
	"shoumei/internal/trace"
)

func TestCompileMissingFile(t *testing.T) {
	d := New(Options{Root: t.TempDir(), Ext: testExt})
	main := mp(t, "main")

	res := d.Compile(context.Background(), main)

	require.False(t, res.IsOk())
	msgs := res.Diagnostics()
	require.Len(t, msgs, 1)
	assert.Equal(t, diag.IOCannotOpen, msgs[0].Code)
	assert.Equal(t, diag.SevError, msgs[0].Severity)
	assert.Equal(t, "cannot open file", msgs[0].Text)
	assert.False(t, msgs[0].Context.HasRange)
	assert.True(t, msgs[0].Context.Module.Equal(main))
}

func TestCompileInvalidUTF8(t *testing.T) {
	root := t.TempDir()
	writeRaw(t, root, "bad", []byte("def a : Type\ndef b : Type\ndef \xff : Type\ndef c : Type\n"))
	d := New(Options{Root: root, Ext: testExt})

	res := d.Compile(context.Background(), mp(t, "bad"))

	require.False(t, res.IsOk())
	msgs := res.Diagnostics()
	require.Len(t, msgs, 1)
	assert.Equal(t, diag.IOInvalidUTF8, msgs[0].Code)
	assert.Equal(t, "file contained invalid UTF-8 on line 3", msgs[0].Text)
}

func TestCompileWarningStaysOk(t *testing.T) {
	root := t.TempDir()
	writeModule(t, root, "main", "def nat : Type   ", "def zero : nat")
	d := New(Options{Root: root, Ext: testExt})

	res := d.Compile(context.Background(), mp(t, "main"))

	mod, ok := res.Value()
	require.True(t, ok, "diagnostics: %v", res.Diagnostics())
	require.Len(t, res.Diagnostics(), 1)
	assert.Equal(t, diag.SevWarning, res.Diagnostics()[0].Severity)
	assert.Equal(t, diag.LexTrailingWhitespace, res.Diagnostics()[0].Code)
	assert.Len(t, mod.Items, 2)
}

func TestParserErrorStopsPipeline(t *testing.T) {
	root := t.TempDir()
	writeModule(t, root, "main", "def nat : Type", "lemma oops : nat")
	c := newCounter()
	d := New(Options{Root: root, Ext: testExt, Passes: c.passes()})

	res := d.Compile(context.Background(), mp(t, "main"))

	require.False(t, res.IsOk())
	assert.Equal(t, []diag.Code{diag.SynExpectItem}, codes(res.Diagnostics()))
	assert.Equal(t, 1, c.calls["lex"])
	assert.Equal(t, 1, c.calls["parse"])
	assert.Zero(t, c.calls["types"])
	assert.Zero(t, c.calls["index"])
}

func TestLexErrorStopsBeforeIndent(t *testing.T) {
	root := t.TempDir()
	writeModule(t, root, "main", "def nat : Type ?")
	c := newCounter()
	d := New(Options{Root: root, Ext: testExt, Passes: c.passes()})

	res := d.Compile(context.Background(), mp(t, "main"))

	require.False(t, res.IsOk())
	assert.Equal(t, 1, c.calls["lex"])
	assert.Zero(t, c.calls["indent"])
}

func TestCompileRunsEveryPassOnce(t *testing.T) {
	root := t.TempDir()
	writeModule(t, root, "main",
		"def nat : Type",
		"def eq : nat -> nat -> Prop",
		"theorem refl : (a : nat) -> eq a a",
		"  trivial",
	)
	c := newCounter()
	d := New(Options{Root: root, Ext: testExt, Passes: c.passes()})

	res := d.CompileFull(context.Background(), mp(t, "main"))

	out, ok := res.Value()
	require.True(t, ok, "diagnostics: %v", res.Diagnostics())
	assert.Empty(t, res.Diagnostics())
	for _, pass := range []string{"lex", "indent", "brackets", "parse", "types", "index"} {
		assert.Equal(t, 1, c.calls[pass], pass)
	}
	assert.Equal(t, 3, out.Types.Len())
	assert.Len(t, out.Index.Symbols, 3)
	assert.Equal(t, "(a : nat) -> eq a a", out.Types.TypeString("refl"))
}

func TestCompileUnknownNameFails(t *testing.T) {
	root := t.TempDir()
	writeModule(t, root, "main", "def zero : nat")
	d := New(Options{Root: root, Ext: testExt})

	res := d.Compile(context.Background(), mp(t, "main"))

	require.False(t, res.IsOk())
	assert.Equal(t, []diag.Code{diag.SemaUnresolvedSymbol}, codes(res.Diagnostics()))
}

func TestParseAndAnalyzeSplit(t *testing.T) {
	root := t.TempDir()
	writeModule(t, root, "main", "def nat : Type")
	c := newCounter()
	d := New(Options{Root: root, Ext: testExt, Passes: c.passes()})
	ctx := context.Background()

	mod, ok := d.Parse(ctx, mp(t, "main")).Value()
	require.True(t, ok)
	assert.Zero(t, c.calls["types"])

	out, ok := d.Analyze(ctx, mp(t, "main"), mod, nil).Value()
	require.True(t, ok)
	assert.Same(t, mod, out.Module)
	assert.Equal(t, 1, c.calls["types"])
	assert.Equal(t, 1, c.calls["index"])
}

func TestTokens(t *testing.T) {
	root := t.TempDir()
	writeModule(t, root, "main", "def nat : Type")
	d := New(Options{Root: root, Ext: testExt})

	toks, ok := d.Tokens(context.Background(), mp(t, "main")).Value()
	require.True(t, ok)
	assert.Len(t, toks.Significant(), 4)
}

func TestTimingsMessage(t *testing.T) {
	root := t.TempDir()
	writeModule(t, root, "main", "def nat : Type")
	d := New(Options{Root: root, Ext: testExt, Timings: true})

	res := d.Compile(context.Background(), mp(t, "main"))

	require.True(t, res.IsOk())
	msgs := res.Diagnostics()
	require.Len(t, msgs, 1)
	assert.Equal(t, diag.ObsTimings, msgs[0].Code)
	assert.Equal(t, diag.SevInfo, msgs[0].Severity)
	require.Len(t, msgs[0].Notes, 1)

	var payload timingPayload
	require.NoError(t, json.Unmarshal([]byte(msgs[0].Notes[0].Text), &payload))
	assert.Equal(t, "main", payload.Path)
	assert.Len(t, payload.Phases, 6)
}

func TestPassSpansAreTraced(t *testing.T) {
	root := t.TempDir()
	writeModule(t, root, "main", "def nat : Type")
	ring := trace.NewRingTracer(64, trace.LevelDetail)
	ctx := trace.WithTracer(context.Background(), ring)

	require.True(t, New(Options{Root: root, Ext: testExt}).Compile(ctx, mp(t, "main")).IsOk())

	var begun []string
	for _, ev := range ring.Snapshot() {
		if ev.Kind == trace.KindSpanBegin && ev.Scope == trace.ScopePass {
			begun = append(begun, ev.Name)
		}
	}
	assert.Equal(t, []string{"lex", "indent", "brackets", "parse", "types", "index"}, begun)
}

func TestImportLoadsNestUnderImporter(t *testing.T) {
	root := t.TempDir()
	writeModule(t, root, "base", "def nat : Type")
	writeModule(t, root, "main", "import base", "def n : nat")
	ring := trace.NewRingTracer(64, trace.LevelPhase)
	ctx := trace.WithTracer(context.Background(), ring)

	_, ok := NewLoader(Options{Root: root, Ext: testExt}, nil).Load(ctx, mp(t, "main"))
	require.True(t, ok)

	spans := map[string]trace.Event{}
	for _, ev := range ring.Snapshot() {
		if ev.Kind == trace.KindSpanEnd && ev.Scope == trace.ScopeModule {
			spans[ev.Extra["module"]] = ev
		}
	}
	require.Len(t, spans, 2)
	assert.Zero(t, spans["main"].ParentID)
	assert.Equal(t, spans["main"].SpanID, spans["base"].ParentID)
}

func TestDebugTracesEachDiagnostic(t *testing.T) {
	root := t.TempDir()
	writeModule(t, root, "main", "def n : missing")
	ring := trace.NewRingTracer(64, trace.LevelDebug)
	ctx := trace.WithTracer(context.Background(), ring)

	require.False(t, New(Options{Root: root, Ext: testExt}).Compile(ctx, mp(t, "main")).IsOk())

	var points []string
	for _, ev := range ring.Snapshot() {
		if ev.Kind == trace.KindPoint && ev.Scope == trace.ScopeDiag {
			points = append(points, ev.Name)
		}
	}
	assert.Equal(t, []string{diag.SemaUnresolvedSymbol.ID()}, points)
}
