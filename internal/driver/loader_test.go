package driver

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shoumei/internal/diag"
	"shoumei/internal/index"
)

func newTestLoader(t *testing.T, root string, c *counter, sink diag.Reporter) *Loader {
	t.Helper()
	opts := Options{Root: root, Ext: testExt}
	if c != nil {
		opts.Passes = c.passes()
	}
	return NewLoader(opts, sink)
}

func TestLoaderMissingModule(t *testing.T) {
	l := newTestLoader(t, t.TempDir(), nil, nil)
	main := mp(t, "main")

	compiled, ok := l.Load(context.Background(), main)

	assert.False(t, ok)
	assert.Nil(t, compiled)
	cached, known := l.Module(main)
	assert.True(t, known, "a failed module is still cached")
	assert.Nil(t, cached)

	msgs := l.TakeErrorEmitter().Take()
	require.Len(t, msgs, 1)
	assert.Equal(t, "cannot open file", msgs[0].Text)
	assert.Equal(t, diag.IOCannotOpen, msgs[0].Code)
}

func TestLoaderImportsAndResolves(t *testing.T) {
	root := t.TempDir()
	writeModule(t, root, "logic/core", "def nat : Type", "def eq : nat -> nat -> Prop")
	writeModule(t, root, "main",
		"import logic/core",
		"theorem refl : (a : nat) -> eq a a",
	)
	l := newTestLoader(t, root, nil, nil)

	compiled, ok := l.Load(context.Background(), mp(t, "main"))

	require.True(t, ok, "messages: %v", l.emitter.Messages())
	var imported []string
	for _, ref := range compiled.Index.Refs {
		if ref.Target == index.TargetImported {
			imported = append(imported, ref.Resolved.String())
		}
	}
	assert.Equal(t, []string{"logic/core:nat", "logic/core:eq"}, imported)

	core, known := l.Module(mp(t, "logic/core"))
	assert.True(t, known)
	assert.NotNil(t, core)
	assert.Empty(t, l.TakeErrorEmitter().Take())
}

func TestLoaderCycleTerminates(t *testing.T) {
	root := t.TempDir()
	writeModule(t, root, "a", "import b", "def x : Type")
	writeModule(t, root, "b", "import a", "def y : Type")
	c := newCounter()
	l := newTestLoader(t, root, c, nil)

	compiled, ok := l.Load(context.Background(), mp(t, "a"))

	assert.False(t, ok)
	assert.Nil(t, compiled)
	msgs := l.TakeErrorEmitter().Take()
	require.Equal(t, []diag.Code{diag.ProjImportCycle, diag.ProjDependencyFailed}, codes(msgs))
	cycle := msgs[0]
	assert.Equal(t, "cyclic module inclusion detected", cycle.Text)
	assert.True(t, cycle.Context.Module.Equal(mp(t, "a")))
	require.Len(t, cycle.Notes, 1)
	assert.True(t, cycle.Notes[0].Context.Module.Equal(mp(t, "b")))
	assert.Equal(t, uint32(0), cycle.Notes[0].Context.Range.Start.Line, "points at the import line")
	assert.Equal(t, diag.SevError, msgs[1].Severity)
	assert.True(t, msgs[1].Context.Module.Equal(mp(t, "a")))

	assert.Equal(t, 1, c.calls["lex:a"])
	assert.Equal(t, 1, c.calls["lex:b"])
	for _, name := range []string{"a", "b"} {
		got, known := l.Module(mp(t, name))
		assert.True(t, known, name)
		assert.Nil(t, got, "%s sits on a cycle and must not be usable", name)
	}
}

func TestLoaderCycleMembersCannotUseEachOther(t *testing.T) {
	root := t.TempDir()
	writeModule(t, root, "a", "import b", "def x : Type", "theorem ta : y")
	writeModule(t, root, "b", "import a", "def y : Type", "theorem tb : x")
	l := newTestLoader(t, root, nil, nil)

	_, okA := l.Load(context.Background(), mp(t, "a"))
	_, okB := l.Load(context.Background(), mp(t, "b"))

	assert.False(t, okA)
	assert.False(t, okB)
	assert.Equal(t, 1, countCode(l.TakeErrorEmitter().Take(), diag.ProjImportCycle))
}

func TestLoaderModuleOutsideCycleOnlyWarns(t *testing.T) {
	root := t.TempDir()
	writeModule(t, root, "top", "import b", "def t : Type")
	writeModule(t, root, "b", "import c", "def y : Type")
	writeModule(t, root, "c", "import b", "def z : Type")
	l := newTestLoader(t, root, nil, nil)

	_, ok := l.Load(context.Background(), mp(t, "top"))

	assert.True(t, ok)
	msgs := l.TakeErrorEmitter().Take()
	require.Equal(t, []diag.Code{diag.ProjImportCycle, diag.ProjDependencyFailed, diag.ProjDependencyFailed}, codes(msgs))
	assert.Equal(t, diag.SevError, msgs[1].Severity, "b is on the cycle")
	assert.True(t, msgs[1].Context.Module.Equal(mp(t, "b")))
	assert.Equal(t, diag.SevWarning, msgs[2].Severity, "top only imports it")
	assert.True(t, msgs[2].Context.Module.Equal(mp(t, "top")))
}

func TestLoaderSelfImportIsCycle(t *testing.T) {
	root := t.TempDir()
	writeModule(t, root, "a", "import a", "def x : Type")
	l := newTestLoader(t, root, nil, nil)

	_, _ = l.Load(context.Background(), mp(t, "a"))

	msgs := l.TakeErrorEmitter().Take()
	assert.Equal(t, []diag.Code{diag.ProjImportCycle}, codes(msgs))
}

func TestLoaderDiamondIsNotCycle(t *testing.T) {
	root := t.TempDir()
	writeModule(t, root, "base", "def nat : Type")
	writeModule(t, root, "left", "import base", "def l : nat")
	writeModule(t, root, "right", "import base", "def r : nat")
	writeModule(t, root, "top", "import left", "import right", "def t : Type")
	c := newCounter()
	l := newTestLoader(t, root, c, nil)

	_, ok := l.Load(context.Background(), mp(t, "top"))

	require.True(t, ok)
	assert.Empty(t, l.TakeErrorEmitter().Take())
	assert.Equal(t, 1, c.calls["lex:base"], "shared import is loaded once")
	assert.Len(t, l.Modules(), 4)

	g := l.Graph(nil)
	assert.False(t, g.Topo.Cyclic)
	order := g.Topo.DependencyOrder()
	assert.Equal(t, "base", g.Index.Name(order[0]))
	assert.Equal(t, "top", g.Index.Name(order[len(order)-1]))
	for i, slot := range g.Slots {
		assert.False(t, slot.Meta.ContentHash.IsZero())
		assert.Equal(t, g.Hashes[i], slot.Meta.ModuleHash)
	}
}

func TestLoaderMemoizes(t *testing.T) {
	root := t.TempDir()
	writeModule(t, root, "main", "def nat : Type")
	c := newCounter()
	l := newTestLoader(t, root, c, nil)
	ctx := context.Background()

	first, ok := l.Load(ctx, mp(t, "main"))
	require.True(t, ok)
	second, ok := l.Load(ctx, mp(t, "main"))
	require.True(t, ok)

	assert.Same(t, first, second)
	assert.Equal(t, 1, c.calls["lex"])
}

func TestLoaderMemoizesFailure(t *testing.T) {
	l := newTestLoader(t, t.TempDir(), nil, nil)
	ctx := context.Background()

	_, ok := l.Load(ctx, mp(t, "missing"))
	require.False(t, ok)
	_, ok = l.Load(ctx, mp(t, "missing"))
	require.False(t, ok)

	assert.Len(t, l.TakeErrorEmitter().Take(), 1, "a cached failure is not reported again")
}

func TestLoaderAlwaysReload(t *testing.T) {
	root := t.TempDir()
	writeModule(t, root, "main", "def nat : Type")
	c := newCounter()
	l := NewLoader(Options{Root: root, Ext: testExt, AlwaysReload: true, Passes: c.passes()}, nil)
	ctx := context.Background()

	_, ok := l.Load(ctx, mp(t, "main"))
	require.True(t, ok)
	writeModule(t, root, "main", "def nat : Type", "def zero : nat")
	reloaded, ok := l.Load(ctx, mp(t, "main"))
	require.True(t, ok)

	assert.Equal(t, 2, c.calls["lex"])
	assert.Equal(t, 2, reloaded.Types.Len())
	cached, _ := l.Module(mp(t, "main"))
	assert.Same(t, reloaded, cached, "reload overwrites the cache entry")
}

func TestLoaderDependencyFailed(t *testing.T) {
	root := t.TempDir()
	writeModule(t, root, "lib", "def nat : Type", "junk")
	writeModule(t, root, "main", "import lib", "def zero : nat")
	l := newTestLoader(t, root, nil, nil)

	_, ok := l.Load(context.Background(), mp(t, "main"))

	assert.True(t, ok, "names of a failed import stay open")
	msgs := l.TakeErrorEmitter().Take()
	require.Equal(t, []diag.Code{diag.SynExpectItem, diag.ProjDependencyFailed}, codes(msgs))
	warn := msgs[1]
	assert.Equal(t, diag.SevWarning, warn.Severity)
	assert.True(t, warn.Context.Module.Equal(mp(t, "main")))
	require.Len(t, warn.Notes, 1)
	assert.Contains(t, warn.Notes[0].Text, "first error in dependency")

	broken := diag.NewBag(0)
	g := l.Graph(diag.BagReporter{Bag: broken})
	assert.False(t, g.Topo.Cyclic)
	assert.Equal(t, []diag.Code{diag.ProjDependencyFailed}, codes(broken.Items()))
}

func TestTakeErrorEmitterIsOneShot(t *testing.T) {
	var forwarded []diag.Message
	sink := diag.ReporterFunc(func(m diag.Message) { forwarded = append(forwarded, m) })
	l := newTestLoader(t, t.TempDir(), nil, sink)
	ctx := context.Background()

	_, _ = l.Load(ctx, mp(t, "one"))
	first := l.TakeErrorEmitter()
	assert.Equal(t, 1, first.Len())
	assert.Equal(t, 0, l.TakeErrorEmitter().Len())

	_, _ = l.Load(ctx, mp(t, "two"))
	assert.Equal(t, 1, l.TakeErrorEmitter().Len())
	assert.Len(t, forwarded, 2, "the fresh emitter keeps forwarding to the sink")
	assert.Equal(t, 1, first.Len(), "a taken emitter is not written to again")
}
